package bookshelf

import "iter"

// Shelf is the summary of a single level.
type Shelf struct {
	Path    string
	Depth   int
	Shelves []string // immediate sub-shelves.
	Rows    []Row
	Count   int    // number of items.
	Total   Money  // sum of the latest prices of the shelf's own items.
	Grand   *Money // Total plus the children's Grand, nil unless recursive.
}

// Listing is the summary of a walk.
type Listing struct {
	Shelves []*Shelf
	Count   int
	Total   Money  // sum over all the visited levels.
	Grand   *Money // Grand of the starting shelf, nil unless recursive.
}

// SummaryOptions configures Summarize.
type SummaryOptions struct {
	Recursive bool // compute grand totals.
	Group     GroupOptions
}

// Summarize consumes the levels of a walk, grouping their items into rows and
// accumulating price totals.
//
// Totals are computed on filtered items only. Grand totals are only computed
// when recursive: a non recursive summary has no grand total at all.
func Summarize(levels iter.Seq2[*Level, error], opt SummaryOptions) (*Listing, error) {
	l := new(Listing)
	// stack of the ancestors of the current level, levels come in pre-order.
	var stack []*Shelf
	pop := func() {
		child := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if len(stack) > 0 {
			parent := stack[len(stack)-1]
			sum := parent.Grand.Add(*child.Grand)
			parent.Grand = &sum
		}
	}

	for level, err := range levels {
		if err != nil {
			return nil, err
		}
		s := &Shelf{
			Path:    level.Path,
			Depth:   level.Depth,
			Shelves: level.Shelves,
			Rows:    Group(level.Items, opt.Group),
			Count:   len(level.Items),
		}
		for _, e := range level.Items {
			s.Total = s.Total.Add(e.Item.LatestPrice())
		}
		l.Shelves = append(l.Shelves, s)
		l.Count += s.Count
		l.Total = l.Total.Add(s.Total)

		if !opt.Recursive {
			continue
		}
		grand := s.Total
		s.Grand = &grand
		for len(stack) > 0 && stack[len(stack)-1].Depth >= s.Depth {
			pop()
		}
		stack = append(stack, s)
	}
	if !opt.Recursive {
		return l, nil
	}
	for len(stack) > 0 {
		pop()
	}
	if len(l.Shelves) > 0 {
		l.Grand = l.Shelves[0].Grand
	} else {
		l.Grand = new(Money)
	}
	return l, nil
}
