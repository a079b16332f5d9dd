package cmd

import (
	"flag"
	"path"
	"strings"

	"github.com/etnz/bookshelf"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion returns the shell completion of the application.
//
// Sub-commands and their flags are read from the Commands, shelf arguments
// are predicted from the home.
func Completion() *complete.Command {
	root := &complete.Command{
		Sub: make(map[string]*complete.Command),
		Flags: map[string]complete.Predictor{
			"home": predict.Dirs("*"),
			"v":    predict.Nothing,
		},
	}
	for _, c := range Commands {
		fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(fs)
		sub := &complete.Command{Flags: make(map[string]complete.Predictor)}
		fs.VisitAll(func(f *flag.Flag) {
			sub.Flags[f.Name] = flagPredictor(f)
		})
		if c.Name() != "topic" {
			sub.Args = complete.PredictFunc(predictShelves)
		}
		root.Sub[c.Name()] = sub
	}
	return root
}

// boolFlag is implemented by boolean flag values.
type boolFlag interface {
	IsBoolFlag() bool
}

func flagPredictor(f *flag.Flag) complete.Predictor {
	if b, ok := f.Value.(boolFlag); ok && b.IsBoolFlag() {
		return predict.Nothing
	}
	switch f.Name {
	case "sort-by":
		return predict.Set{bookshelf.ByName.String(), bookshelf.ByPrice.String()}
	case "finish":
		return predict.Set{"plain", string(bookshelf.Foil), string(bookshelf.Etched)}
	}
	return predict.Something
}

// predictShelves predicts the shelves starting with prefix.
func predictShelves(prefix string) []string {
	a, err := openApp()
	if err != nil {
		return nil
	}
	parent := ""
	if i := strings.LastIndex(prefix, "/"); i >= 0 {
		parent = prefix[:i]
	}
	shelves, err := bookshelf.NewWalker(a.home).Shelves(parent)
	if err != nil {
		return nil
	}
	var options []string
	for _, s := range shelves {
		options = append(options, path.Join(parent, s)+"/")
	}
	return options
}
