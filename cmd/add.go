package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/etnz/bookshelf"
	"github.com/google/subcommands"
)

type addCmd struct {
	times  int
	foil   bool
	etched bool
	set    string
	price  decimalFlag
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "add copies of a catalog entry to a shelf" }
func (*addCmd) Usage() string {
	return `bookshelf add [-times N] [-foil|-etched] [-set SET] [-price P] SHELF ENTRY

  Looks ENTRY up in the catalog of the provider configured for SHELF and
  creates N new items in SHELF, missing shelves are created.

  -set selects the printing by a prefix of "set#collector_number", "*"
  selects the most recent one. When several printings match, they are listed
  and nothing is added.

Usage Examples:
$ bookshelf add -set m10 -foil mtg/red "Lightning Bolt"

`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.times, "times", 1, "number of copies to add")
	f.BoolVar(&c.foil, "foil", false, "foil finish")
	f.BoolVar(&c.etched, "etched", false, "etched finish")
	f.StringVar(&c.set, "set", "", `printing selector, a prefix of "set#collector_number" or "*" for the latest`)
	f.Var(&c.price, "price", "price to record instead of the catalog price")
}

// dirName is the item directory name prefix for an entry.
var dirName = strings.NewReplacer("/", "_", `\`, "_").Replace

func (c *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(stderr, "SHELF and ENTRY expected")
		return subcommands.ExitUsageError
	}
	shelf, entry := f.Arg(0), f.Arg(1)
	if c.foil && c.etched {
		fmt.Fprintln(stderr, "choose either -foil or -etched, or none")
		return subcommands.ExitUsageError
	}
	if c.times < 1 {
		fmt.Fprintf(stderr, "invalid number of copies %d\n", c.times)
		return subcommands.ExitUsageError
	}
	finish := bookshelf.Plain
	switch {
	case c.foil:
		finish = bookshelf.Foil
	case c.etched:
		finish = bookshelf.Etched
	}

	a, err := openApp()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	p, ok := a.providers.Resolve(shelf)
	if !ok {
		fmt.Fprintf(stderr, "Error: no provider configured for shelf %q\n", shelf)
		return subcommands.ExitFailure
	}

	it, err := p.Lookup(ctx, bookshelf.Query{Entry: entry, Set: c.set, Finish: finish, Price: c.price.value})
	var ambiguous *bookshelf.AmbiguousError
	switch {
	case errors.As(err, &ambiguous):
		fmt.Fprintf(stderr, "%q matches %d printings, select one with -set:\n", entry, len(ambiguous.Candidates))
		for _, cand := range ambiguous.Candidates {
			fmt.Fprintf(stderr, "  %s\n", cand)
		}
		return subcommands.ExitFailure
	case errors.Is(err, bookshelf.ErrNoEntry):
		fmt.Fprintf(stderr, "Nothing found for %q: %v\n", entry, err)
		return subcommands.ExitFailure
	case err != nil:
		fmt.Fprintf(stderr, "Error looking up %q: %v\n", entry, err)
		return subcommands.ExitFailure
	}

	fmt.Fprintf(stdout, "Adding %s @ %s\n", p.Line(it, false, c.times), shelf)
	for range c.times {
		e, err := a.home.CreateItem(shelf, dirName(entry), it)
		if err != nil {
			fmt.Fprintf(stderr, "Error adding %q: %v\n", entry, err)
			return subcommands.ExitFailure
		}
		fmt.Fprintln(stdout, e.Path)
	}
	return subcommands.ExitSuccess
}
