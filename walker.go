package bookshelf

import (
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
)

// Unbounded is the Walker depth without limit.
const Unbounded = -1

// SortBy is the order of items within a level.
type SortBy int

const (
	ByName  SortBy = iota // case sensitive on the item name.
	ByPrice               // ascending on the latest price.
)

// ParseSortBy parses a sort method, unknown methods fall back to ByName.
func ParseSortBy(s string) SortBy {
	switch s {
	case "price":
		return ByPrice
	default:
		return ByName
	}
}

func (s SortBy) String() string {
	if s == ByPrice {
		return "price"
	}
	return "name"
}

// Entry is an item and its path relative to the home.
type Entry struct {
	Path string // slash separated.
	Item *Item
}

// Level is one shelf as visited by the Walker.
type Level struct {
	Path    string   // shelf path relative to the home, "" for the home.
	Depth   int      // 0 for the starting shelf.
	Items   []Entry  // filtered and sorted.
	Shelves []string // names of the immediate sub-shelves.
}

// Walker enumerates a shelf subtree one level at a time.
//
// The walk is read only, and it is not a snapshot: concurrent modifications of
// the tree are undefined behavior, the walker reads whatever is present at
// visit time.
type Walker struct {
	Home    *Home
	Depth   int  // Unbounded, 0 for the starting shelf only.
	Flatten bool // merge all items into a single level keyed by the starting shelf.
	Filters []Filter
	SortBy  SortBy
}

// NewWalker returns a walker of unbounded depth.
func NewWalker(h *Home) *Walker { return &Walker{Home: h, Depth: Unbounded} }

// Walk returns the sequence of levels from the shelf.
//
// Without Flatten, every shelf yields its own level, pre-order with children
// in ascending name order. With Flatten, a single level is yielded.
//
// A directory reached twice through symlinks is only visited the first time.
//
// An error is yielded once, and stops the walk: ErrOutOfScope if any visited
// path resolves outside of the home, ErrShelfNotFound if the shelf does not
// exist.
func (w *Walker) Walk(shelf string) iter.Seq2[*Level, error] {
	return func(yield func(*Level, error) bool) {
		start, err := w.Home.Resolve(shelf)
		if err != nil {
			yield(nil, err)
			return
		}

		var flat *Level
		if w.Flatten {
			flat = &Level{Path: w.Home.Rel(start)}
		}

		type node struct {
			dir   string
			depth int
		}
		stack := []node{{start, 0}}
		visited := make(map[string]bool) // by resolved directory.
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			resolved, err := filepath.EvalSymlinks(n.dir)
			if err != nil {
				resolved = n.dir // read reports it.
			}
			if visited[resolved] {
				log.Debug("skipping already visited shelf", "path", w.Home.Rel(n.dir))
				continue
			}
			visited[resolved] = true

			items, shelves, err := w.read(n.dir)
			if err != nil {
				yield(nil, err)
				return
			}
			if w.Depth == Unbounded || n.depth < w.Depth {
				// reversed so that they are popped in ascending order.
				for i := len(shelves) - 1; i >= 0; i-- {
					stack = append(stack, node{filepath.Join(n.dir, shelves[i]), n.depth + 1})
				}
			}

			if flat != nil {
				flat.Items = append(flat.Items, items...)
				if n.depth == 0 {
					flat.Shelves = shelves
				}
				continue
			}
			w.sort(items)
			level := &Level{Path: w.Home.Rel(n.dir), Depth: n.depth, Items: items, Shelves: shelves}
			if !yield(level, nil) {
				return
			}
		}
		if flat != nil {
			w.sort(flat.Items)
			yield(flat, nil)
		}
	}
}

// Shelves returns the names of the immediate sub-shelves of shelf.
func (w *Walker) Shelves(shelf string) ([]string, error) {
	dir, err := w.Home.Resolve(shelf)
	if err != nil {
		return nil, err
	}
	_, shelves, err := w.list(dir)
	return shelves, err
}

// list splits the directory content into item and shelf names, in directory
// order.
func (w *Walker) list(dir string) (items, shelves []string, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, fmt.Errorf("%q: %w", w.Home.Rel(dir), ErrShelfNotFound)
		}
		return nil, nil, fmt.Errorf("cannot read shelf %q: %w", w.Home.Rel(dir), err)
	}
	for _, e := range entries {
		name := e.Name()
		if name == ReservedDir {
			continue
		}
		p := filepath.Join(dir, name)
		if e.Type()&fs.ModeSymlink != 0 {
			if err := w.Home.check(p); err != nil {
				if errors.Is(err, ErrShelfNotFound) {
					log.Debug("skipping dangling symlink", "path", w.Home.Rel(p))
					continue
				}
				return nil, nil, err
			}
			info, err := os.Stat(p)
			if err != nil || !info.IsDir() {
				continue
			}
		} else if !e.IsDir() {
			continue
		}

		if isItemDir(p) {
			items = append(items, name)
		} else {
			shelves = append(shelves, name)
		}
	}
	return items, shelves, nil
}

// read returns the filtered entries of a directory and its sub-shelf names.
func (w *Walker) read(dir string) ([]Entry, []string, error) {
	names, shelves, err := w.list(dir)
	if err != nil {
		return nil, nil, err
	}
	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		p := filepath.Join(dir, name)
		it, err := ReadItem(p)
		if errors.Is(err, fs.ErrNotExist) {
			// removed since the directory was listed.
			log.Debug("skipping vanished item", "path", w.Home.Rel(p))
			continue
		}
		if err != nil {
			return nil, nil, err
		}
		if !Match(it, w.Filters...) {
			continue
		}
		entries = append(entries, Entry{Path: w.Home.Rel(p), Item: it})
	}
	return entries, shelves, nil
}

// sort sorts entries in place, keeping the directory order for ties.
func (w *Walker) sort(entries []Entry) {
	switch w.SortBy {
	case ByPrice:
		slices.SortStableFunc(entries, func(a, b Entry) int {
			return a.Item.LatestPrice().Cmp(b.Item.LatestPrice())
		})
	default:
		slices.SortStableFunc(entries, func(a, b Entry) int {
			return strings.Compare(a.Item.Name, b.Item.Name)
		})
	}
}
