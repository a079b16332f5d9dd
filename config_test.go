package bookshelf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadConfig(t *testing.T) {
	h := newHome(t, nil)

	cfg, err := LoadConfig(h)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("LoadConfig() without file mismatch (-want +got):\n%s", diff)
	}

	content := `
[[shelf]]
prefix = "cards/mtg"
provider = "mtg"
currency = "usd"

[[shelf]]
prefix = "cards/foreign"
provider = "mtg"
currency = "eur"
`
	if err := os.WriteFile(filepath.Join(h.Root(), ConfigFile), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err = LoadConfig(h)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	want := &Config{Shelves: []ShelfConfig{
		{Prefix: "cards/mtg", Provider: "mtg", Currency: "usd"},
		{Prefix: "cards/foreign", Provider: "mtg", Currency: "eur"},
	}}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("LoadConfig() mismatch (-want +got):\n%s", diff)
	}

	os.WriteFile(filepath.Join(h.Root(), ConfigFile), []byte("[[shelf]]\nprefix = \"x\"\n"), 0644)
	if _, err := LoadConfig(h); err == nil {
		t.Error("LoadConfig() of a shelf without provider expected an error")
	}
}
