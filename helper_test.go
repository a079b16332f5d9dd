package bookshelf

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

// day is the reference date of all test prices.
var day = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

// card is a helper for tests to create an item with a price history in eur.
func card(name, id string, finish Finish, prices ...float64) *Item {
	it := &Item{
		Type:            "mtg",
		Version:         "1.0",
		Name:            name,
		FamilyID:        "oracle-" + name,
		ExternalID:      id,
		Set:             "tst",
		CollectorNumber: id,
		Finish:          finish,
	}
	for i, p := range prices {
		it.PriceHistory = append(it.PriceHistory, PriceEntry{
			Date:     day.AddDate(0, 0, i),
			Price:    decimal.NewFromFloat(p),
			Currency: "eur",
		})
	}
	return it
}

// newHome creates a home in a temporary directory.
//
// Keys are slash separated paths, items are written in that directory, a nil
// item creates an empty shelf.
func newHome(t *testing.T, items map[string]*Item) *Home {
	t.Helper()
	root := t.TempDir()
	for path, it := range items {
		dir := filepath.Join(root, filepath.FromSlash(path))
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("cannot create %q: %v", path, err)
		}
		if it == nil {
			continue
		}
		if err := WriteItem(dir, it); err != nil {
			t.Fatalf("cannot write %q: %v", path, err)
		}
	}
	h, err := OpenHome(root)
	if err != nil {
		t.Fatalf("OpenHome() error: %v", err)
	}
	return h
}

// dec is a helper for tests to create decimals from const.
func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

// levels walks the shelf and fails the test on error.
func levels(t *testing.T, w *Walker, shelf string) []*Level {
	t.Helper()
	var list []*Level
	for level, err := range w.Walk(shelf) {
		if err != nil {
			t.Fatalf("Walk(%q) error: %v", shelf, err)
		}
		list = append(list, level)
	}
	return list
}

// paths returns the entry paths of a list of entries.
func paths(entries []Entry) []string {
	list := make([]string, 0, len(entries))
	for _, e := range entries {
		list = append(list, e.Path)
	}
	return list
}
