package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/etnz/bookshelf"
	"github.com/etnz/bookshelf/renderer"
	"github.com/google/subcommands"
)

type lsCmd struct {
	quiet     bool
	recursive bool
	depth     int
	flatten   bool
	sortBy    string
	reprints  bool
	noGroup   bool
}

func (*lsCmd) Name() string     { return "ls" }
func (*lsCmd) Synopsis() string { return "list the items of a shelf with their prices" }
func (*lsCmd) Usage() string {
	return `bookshelf ls [-q] [-r] [-depth N] [-flatten] [-sort-by name|price] [-reprints] [-no-group] [SHELF]

  Lists the items of SHELF (the home by default), grouping identical copies
  into a single line, followed by the total price of the shelf.

  Without -r, the sub-shelves are only named. With -r, they are listed too
  and a grand total is printed.

`
}

func (c *lsCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.quiet, "q", false, "print only shelves and totals")
	f.BoolVar(&c.recursive, "r", false, "list sub-shelves recursively")
	f.IntVar(&c.depth, "depth", bookshelf.Unbounded, "maximum depth of the recursion, unbounded if negative")
	f.BoolVar(&c.flatten, "flatten", false, "merge all the shelves into a single list")
	f.StringVar(&c.sortBy, "sort-by", "name", "sort items by name or price")
	f.BoolVar(&c.reprints, "reprints", false, "group all the printings of the same item together")
	f.BoolVar(&c.noGroup, "no-group", false, "one line per copy")
}

func (c *lsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	shelf, ok := shelfArg(f)
	if !ok {
		fmt.Fprintln(stderr, "at most one shelf expected")
		return subcommands.ExitUsageError
	}
	a, err := openApp()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	depth := c.depth
	if !c.recursive && depth < 0 {
		depth = 0
	}
	w := &bookshelf.Walker{
		Home:    a.home,
		Depth:   depth,
		Flatten: c.flatten,
		SortBy:  bookshelf.ParseSortBy(c.sortBy),
	}
	if w.SortBy != bookshelf.ByName && !c.noGroup {
		log.Warn("only adjacent copies are grouped, sorting by price may split groups", "sort-by", w.SortBy)
	}

	mode := bookshelf.VariantIdentity
	if c.reprints {
		mode = bookshelf.FamilyIdentity
	}
	l, err := bookshelf.Summarize(w.Walk(shelf), bookshelf.SummaryOptions{
		Recursive: c.recursive,
		Group:     bookshelf.GroupOptions{Disabled: c.noGroup, Key: a.providers.KeyFunc(mode)},
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error listing %q: %v\n", shelf, err)
		return subcommands.ExitFailure
	}

	fmt.Fprint(stdout, renderer.RenderListing(l, a.providers, renderer.ListingOptions{
		Quiet:      c.quiet,
		OnlyTitle:  c.reprints,
		SubShelves: !c.recursive && depth == 0 && !c.flatten,
		Styles:     styles(),
	}))
	return subcommands.ExitSuccess
}
