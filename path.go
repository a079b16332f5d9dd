package bookshelf

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Home is the root shelf of a bookshelf.
//
// Every path access goes through Home so that nothing resolves outside of it,
// neither lexically with ".." segments nor through symlinks.
type Home struct {
	root string // absolute, symlinks resolved.
}

// OpenHome returns the Home rooted in dir, that must be an existing directory.
func OpenHome(dir string) (*Home, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot open home %q: %w", dir, err)
	}
	root, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, fmt.Errorf("cannot open home %q: %w", dir, err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("cannot open home %q: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("cannot open home %q: not a directory", dir)
	}
	return &Home{root: root}, nil
}

// Root returns the absolute path of the home.
func (h *Home) Root() string { return h.root }

// contains reports whether p is lexically inside the home.
func (h *Home) contains(p string) bool {
	rel, err := filepath.Rel(h.root, p)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// abs returns the absolute lexical path of a shelf.
//
// A shelf is either a slash separated path relative to the home, or an
// absolute path.
func (h *Home) abs(shelf string) (string, error) {
	p := filepath.FromSlash(shelf)
	if !filepath.IsAbs(p) {
		p = filepath.Join(h.root, p)
	}
	p = filepath.Clean(p)
	if !h.contains(p) {
		return "", fmt.Errorf("%q: %w", shelf, ErrOutOfScope)
	}
	return p, nil
}

// check verifies that an existing path does not escape the home through symlinks.
func (h *Home) check(p string) error {
	resolved, err := filepath.EvalSymlinks(p)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%q: %w", h.Rel(p), ErrShelfNotFound)
	}
	if err != nil {
		return fmt.Errorf("cannot resolve %q: %w", h.Rel(p), err)
	}
	if !h.contains(resolved) {
		return fmt.Errorf("%q resolves to %q: %w", h.Rel(p), resolved, ErrOutOfScope)
	}
	return nil
}

// Resolve returns the absolute path of an existing shelf.
//
// It fails with ErrOutOfScope if the shelf resolves outside the home, and
// ErrShelfNotFound if it does not exist or is not a directory.
func (h *Home) Resolve(shelf string) (string, error) {
	p, err := h.abs(shelf)
	if err != nil {
		return "", err
	}
	if err := h.check(p); err != nil {
		return "", err
	}
	info, err := os.Stat(p)
	if err != nil {
		return "", fmt.Errorf("%q: %w", shelf, ErrShelfNotFound)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%q is not a directory: %w", shelf, ErrShelfNotFound)
	}
	return p, nil
}

// Rel returns the slash separated path of p relative to the home.
// The home itself is "".
func (h *Home) Rel(p string) string {
	rel, err := filepath.Rel(h.root, p)
	if err != nil || rel == "." {
		return ""
	}
	return filepath.ToSlash(rel)
}

// ReadItem reads the item of an entry path.
func (h *Home) ReadItem(path string) (*Item, error) {
	p, err := h.abs(path)
	if err != nil {
		return nil, err
	}
	if err := h.check(p); err != nil {
		return nil, err
	}
	return ReadItem(p)
}

// WriteItem overwrites the metadata file of an existing entry.
func (h *Home) WriteItem(e Entry) error {
	p, err := h.abs(e.Path)
	if err != nil {
		return err
	}
	if err := h.check(p); err != nil {
		return err
	}
	return WriteItem(p, e.Item)
}

// CreateItem creates a new item directory named after name in shelf, and
// writes the item into it. Missing shelves are created.
//
// It returns the entry of the new item.
func (h *Home) CreateItem(shelf, name string, it *Item) (Entry, error) {
	dir, err := h.abs(shelf)
	if err != nil {
		return Entry{}, err
	}
	// The deepest existing ancestor must not escape the home.
	existing := dir
	for {
		if _, err := os.Lstat(existing); err == nil {
			break
		}
		existing = filepath.Dir(existing)
	}
	if err := h.check(existing); err != nil {
		return Entry{}, err
	}

	if strings.ContainsAny(name, `/\`) {
		return Entry{}, fmt.Errorf("invalid item name %q", name)
	}
	p := filepath.Join(dir, name+"-"+uuid.NewString())
	if err := os.MkdirAll(p, 0755); err != nil {
		return Entry{}, fmt.Errorf("cannot create item %q: %w", name, err)
	}
	if err := WriteItem(p, it); err != nil {
		return Entry{}, err
	}
	return Entry{Path: h.Rel(p), Item: it}, nil
}
