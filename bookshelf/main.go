// Command bookshelf manages a collection stored as a tree of directories.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/bookshelf/cmd"
	"github.com/google/subcommands"
)

func main() {
	cmd.LoadEnv()
	cmd.Completion().Complete("bookshelf")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	flag.Parse()
	cmd.SetupLogging()
	os.Exit(int(commander.Execute(context.Background())))
}
