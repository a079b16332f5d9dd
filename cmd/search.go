package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/bookshelf"
	"github.com/etnz/bookshelf/renderer"
	"github.com/google/subcommands"
)

type searchCmd struct {
	name     string
	set      string
	finish   string
	typ      string
	minPrice decimalFlag
	maxPrice decimalFlag
	depth    int
	flatten  bool
	sortBy   string
}

func (*searchCmd) Name() string     { return "search" }
func (*searchCmd) Synopsis() string { return "find items matching criteria in a shelf and its sub-shelves" }
func (*searchCmd) Usage() string {
	return `bookshelf search [-name S] [-set S] [-finish F] [-type T] [-min-price P] [-max-price P] [-depth N] [-flatten] [-sort-by name|price] [SHELF]

  Lists the items of SHELF and its sub-shelves matching all the criteria.
  Shelves without matching items are not printed, totals only count
  matching items.

`
}

func (c *searchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "name contains, case insensitive")
	f.StringVar(&c.set, "set", "", "set code")
	f.StringVar(&c.finish, "finish", "", "finish: plain, foil or etched")
	f.StringVar(&c.typ, "type", "", "provider type")
	f.Var(&c.minPrice, "min-price", "minimum latest price")
	f.Var(&c.maxPrice, "max-price", "maximum latest price")
	f.IntVar(&c.depth, "depth", bookshelf.Unbounded, "maximum depth of the recursion, unbounded if negative")
	f.BoolVar(&c.flatten, "flatten", false, "merge all the shelves into a single list")
	f.StringVar(&c.sortBy, "sort-by", "name", "sort items by name or price")
}

// filters returns the filters of the set criteria.
func (c *searchCmd) filters() ([]bookshelf.Filter, error) {
	var filters []bookshelf.Filter
	if c.name != "" {
		filters = append(filters, bookshelf.NameContains(c.name))
	}
	if c.set != "" {
		filters = append(filters, bookshelf.SetIs(c.set))
	}
	if c.finish != "" {
		finish, err := bookshelf.ParseFinish(c.finish)
		if err != nil {
			return nil, err
		}
		filters = append(filters, bookshelf.FinishIs(finish))
	}
	if c.typ != "" {
		filters = append(filters, bookshelf.TypeIs(c.typ))
	}
	if c.minPrice.value != nil {
		filters = append(filters, bookshelf.PriceAtLeast(*c.minPrice.value))
	}
	if c.maxPrice.value != nil {
		filters = append(filters, bookshelf.PriceAtMost(*c.maxPrice.value))
	}
	return filters, nil
}

func (c *searchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	shelf, ok := shelfArg(f)
	if !ok {
		fmt.Fprintln(stderr, "at most one shelf expected")
		return subcommands.ExitUsageError
	}
	filters, err := c.filters()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	a, err := openApp()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	w := &bookshelf.Walker{
		Home:    a.home,
		Depth:   c.depth,
		Flatten: c.flatten,
		Filters: filters,
		SortBy:  bookshelf.ParseSortBy(c.sortBy),
	}
	l, err := bookshelf.Summarize(w.Walk(shelf), bookshelf.SummaryOptions{
		Recursive: true,
		Group:     bookshelf.GroupOptions{Key: a.providers.KeyFunc(bookshelf.VariantIdentity)},
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error searching %q: %v\n", shelf, err)
		return subcommands.ExitFailure
	}
	fmt.Fprint(stdout, renderer.RenderListing(l, a.providers, renderer.ListingOptions{
		SkipEmpty: true,
		Styles:    styles(),
	}))
	return subcommands.ExitSuccess
}
