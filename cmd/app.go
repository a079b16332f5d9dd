// Package cmd implements the CLI application to manage a bookshelf.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/log"
	"github.com/etnz/bookshelf"
	"github.com/etnz/bookshelf/mtg"
	"github.com/etnz/bookshelf/renderer"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Commands of the application.
var Commands = []subcommands.Command{
	&lsCmd{},
	&searchCmd{},
	&addCmd{},
	&updateCmd{},
	&topicCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var homeFlag = flag.String("home", "", "bookshelf home directory (default $BOOKSHELF_HOME or ~/bookshelf)")
var verbose = flag.Bool("v", false, "verbose logging")

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
	styles           = renderer.DefaultStyles
)

// LoadEnv loads the optional environment file of the user configuration
// directory. Variables already set are not overridden.
func LoadEnv() {
	dir, err := os.UserConfigDir()
	if err != nil {
		return
	}
	file := filepath.Join(dir, "bookshelf", "env")
	if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn("cannot load environment file", "file", file, "err", err)
	}
}

// SetupLogging sets the log level from the command line flags.
func SetupLogging() {
	log.SetOutput(os.Stderr)
	log.SetLevel(log.WarnLevel)
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}
}

// homeDir returns the bookshelf home directory.
func homeDir() (string, error) {
	if *homeFlag != "" {
		return *homeFlag, nil
	}
	if h := os.Getenv("BOOKSHELF_HOME"); h != "" {
		return h, nil
	}
	dir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot locate the bookshelf home: %w", err)
	}
	return filepath.Join(dir, "bookshelf"), nil
}

// app is what commands need from the environment.
type app struct {
	home      *bookshelf.Home
	config    *bookshelf.Config
	providers *bookshelf.Providers
}

// openApp opens the home and loads its configuration.
func openApp() (*app, error) {
	dir, err := homeDir()
	if err != nil {
		return nil, err
	}
	home, err := bookshelf.OpenHome(dir)
	if err != nil {
		return nil, err
	}
	cfg, err := bookshelf.LoadConfig(home)
	if err != nil {
		return nil, err
	}
	providers := new(bookshelf.Providers)
	for _, sc := range cfg.Shelves {
		p, err := newProvider(sc)
		if err != nil {
			return nil, err
		}
		if err := providers.Register(sc.Prefix, p); err != nil {
			return nil, err
		}
	}
	log.Debug("home opened", "root", home.Root(), "shelves", len(cfg.Shelves))
	return &app{home: home, config: cfg, providers: providers}, nil
}

// newProvider creates the provider configured for a shelf.
func newProvider(sc bookshelf.ShelfConfig) (bookshelf.Provider, error) {
	switch sc.Provider {
	case mtg.Type:
		currency := sc.Currency
		if currency == "" {
			currency = "eur"
		}
		p := mtg.New(currency)
		if sc.Endpoint != "" {
			p.BaseURL = strings.TrimSuffix(sc.Endpoint, "/")
		}
		return p, nil
	}
	return nil, fmt.Errorf("shelf %q: unknown provider %q", sc.Prefix, sc.Provider)
}

// shelfArg returns the optional shelf argument.
func shelfArg(f *flag.FlagSet) (string, bool) {
	switch f.NArg() {
	case 0:
		return "", true
	case 1:
		return f.Arg(0), true
	}
	return "", false
}

// decimalFlag is a flag.Value for optional decimals.
type decimalFlag struct {
	value *decimal.Decimal
}

func (d *decimalFlag) String() string {
	if d.value == nil {
		return ""
	}
	return d.value.String()
}

func (d *decimalFlag) Set(s string) error {
	v, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("invalid decimal %q", s)
	}
	d.value = &v
	return nil
}

// printMarkdown renders markdown to the terminal.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Fprint(stdout, md)
		return
	}
	fmt.Fprint(stdout, out)
}
