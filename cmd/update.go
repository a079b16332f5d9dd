package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/bookshelf"
	"github.com/etnz/bookshelf/renderer"
	"github.com/google/subcommands"
)

type updateCmd struct {
	recursive bool
	depth     int
	minChange decimalFlag
	dry       bool
}

func (*updateCmd) Name() string     { return "update" }
func (*updateCmd) Synopsis() string { return "refresh the prices of the items of a shelf" }
func (*updateCmd) Usage() string {
	return `bookshelf update [-r] [-depth N] [-min-change X] [-dry] [SHELF]

  Fetches the current price of every distinct item of SHELF (the home by
  default) once, and appends it to the price history of all its copies.

  Changes smaller than -min-change are neither recorded nor reported. The
  total fluctuation of the reported changes is printed last.

`
}

func (c *updateCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.recursive, "r", false, "update sub-shelves recursively")
	f.IntVar(&c.depth, "depth", bookshelf.Unbounded, "maximum depth of the recursion, unbounded if negative")
	f.Var(&c.minChange, "min-change", "minimum absolute price change to record")
	f.BoolVar(&c.dry, "dry", false, "report the changes without writing them")
}

func (c *updateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	w := &bookshelf.Walker{Home: a.home, Depth: depth}
	collection, err := bookshelf.Collect(w.Walk(shelf), a.providers.KeyFunc(bookshelf.VariantIdentity))
	if err != nil {
		fmt.Fprintf(stderr, "Error reading %q: %v\n", shelf, err)
		return subcommands.ExitFailure
	}

	opt := bookshelf.UpdateOptions{Dry: c.dry, Writer: a.home}
	if c.minChange.value != nil {
		opt.MinChange = *c.minChange.value
	}
	report, err := bookshelf.Update(ctx, collection, a.providers, opt)
	if report != nil {
		fmt.Fprint(stdout, renderer.RenderUpdate(report, renderer.UpdateOptions{Dry: c.dry, Styles: styles()}))
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error updating prices: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
