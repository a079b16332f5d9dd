package bookshelf

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// legacy is a metadata file as written by the first version of the tool.
const legacy = `{"bookshelf_type": "mtg", "version": "1.0", "name": "Lightning Bolt", "oracle_id": "4457ed35", "scryfall_id": "e3285e6b", "set": "m10", "collector_number": "146", "finish": null, "price_history": [{"date": "2023-05-01T12:34:56.123456Z", "price": 1.25, "currency": "eur"}], "extra": true}`

func TestReadLegacyItem(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, MetadataFile), []byte(legacy), 0644); err != nil {
		t.Fatal(err)
	}
	it, err := ReadItem(dir)
	if err != nil {
		t.Fatalf("ReadItem() error: %v", err)
	}
	want := &Item{
		Type:            "mtg",
		Version:         "1.0",
		Name:            "Lightning Bolt",
		FamilyID:        "4457ed35",
		ExternalID:      "e3285e6b",
		Set:             "m10",
		CollectorNumber: "146",
		Finish:          Plain,
	}
	got := *it
	got.PriceHistory = nil
	if diff := cmp.Diff(*want, got); diff != "" {
		t.Errorf("ReadItem() mismatch (-want +got):\n%s", diff)
	}
	latest, ok := it.Latest()
	if !ok || !latest.Price.Equal(dec(1.25)) || latest.Currency != "eur" {
		t.Errorf("latest price = %+v, want 1.25 eur", latest)
	}
	if want := time.Date(2023, 5, 1, 12, 34, 56, 123456000, time.UTC); !latest.Date.Equal(want) {
		t.Errorf("latest date = %v, want %v", latest.Date, want)
	}
}

func TestWriteItem(t *testing.T) {
	dir := t.TempDir()
	it := card("Lightning Bolt", "b", Foil, 0.1, 12.3456789)
	if err := WriteItem(dir, it); err != nil {
		t.Fatalf("WriteItem() error: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, MetadataFile))
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)
	for _, want := range []string{
		"{\n  \"bookshelf_type\": \"mtg\",\n",
		`"finish": "foil"`,
		`"price": 12.3456789,`,
		`"date": "2025-03-02T12:00:00Z"`,
	} {
		if !strings.Contains(content, want) {
			t.Errorf("WriteItem() content misses %q:\n%s", want, content)
		}
	}

	back, err := ReadItem(dir)
	if err != nil {
		t.Fatalf("ReadItem() error: %v", err)
	}
	if !back.LatestPrice().Value().Equal(dec(12.3456789)) {
		t.Errorf("price precision lost: %v", back.LatestPrice().Value())
	}
	if back.Finish != Foil {
		t.Errorf("finish = %q, want foil", back.Finish)
	}
}

func TestWritePlainItemOmitsFinish(t *testing.T) {
	dir := t.TempDir()
	if err := WriteItem(dir, card("Shock", "s", Plain, 1)); err != nil {
		t.Fatalf("WriteItem() error: %v", err)
	}
	data, _ := os.ReadFile(filepath.Join(dir, MetadataFile))
	if strings.Contains(string(data), "finish") {
		t.Errorf("plain item has a finish:\n%s", data)
	}
}

func TestReadItemErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := ReadItem(dir); err == nil {
		t.Error("ReadItem() of a directory without metadata expected an error")
	}
	os.WriteFile(filepath.Join(dir, MetadataFile), []byte(`{"finish":"gold"}`), 0644)
	if _, err := ReadItem(dir); err == nil {
		t.Error("ReadItem() with an invalid finish expected an error")
	}
}

func TestAppendKeepsChronology(t *testing.T) {
	it := card("Bolt", "b", Plain, 1, 2)
	if err := it.Append(PriceEntry{Date: day, Price: dec(3)}); err == nil {
		t.Error("Append() of an older entry expected an error")
	}
	if err := it.Append(PriceEntry{Date: day.AddDate(0, 0, 1), Price: dec(3)}); err != nil {
		t.Errorf("Append() of a same day entry error: %v", err)
	}
}
