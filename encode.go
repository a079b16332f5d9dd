package bookshelf

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
)

// This file contains the encoding of items into their metadata file.
//
// The metadata file is a single JSON object, indented for human diffability.
// Keys are those of the historical bookshelf format so that existing shelves
// stay readable. Decoding is permissive: unknown keys are ignored and missing
// keys are left to their zero value.

// MarshalJSON writes the entry with the price as a JSON number in full precision.
func (e PriceEntry) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("date", e.Date.UTC().Format(time.RFC3339Nano))
	w.Append("price", json.Number(e.Price.String()))
	w.Append("currency", e.Currency)
	return w.MarshalJSON()
}

func (e *PriceEntry) UnmarshalJSON(data []byte) error {
	var j struct {
		Date     time.Time       `json:"date"`
		Price    decimal.Decimal `json:"price"`
		Currency string          `json:"currency"`
	}
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	*e = PriceEntry{Date: j.Date, Price: j.Price, Currency: j.Currency}
	return nil
}

func (it Item) MarshalJSON() ([]byte, error) {
	history := it.PriceHistory
	if history == nil {
		history = []PriceEntry{}
	}
	var w jsonObjectWriter
	w.Append("bookshelf_type", it.Type)
	w.Append("version", it.Version)
	w.Append("name", it.Name)
	w.Append("oracle_id", it.FamilyID)
	w.Append("scryfall_id", it.ExternalID)
	w.Append("set", it.Set)
	w.Append("collector_number", it.CollectorNumber)
	w.Optional("finish", it.Finish)
	w.Append("price_history", history)
	return w.MarshalJSON()
}

func (it *Item) UnmarshalJSON(data []byte) error {
	// j is the object read from the file using json parser.
	var j struct {
		Type            string       `json:"bookshelf_type"`
		Version         string       `json:"version"`
		Name            string       `json:"name"`
		FamilyID        string       `json:"oracle_id"`
		ExternalID      string       `json:"scryfall_id"`
		Set             string       `json:"set"`
		CollectorNumber string       `json:"collector_number"`
		Finish          *string      `json:"finish"` // null in old files.
		PriceHistory    []PriceEntry `json:"price_history"`
	}
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	var finish Finish
	if j.Finish != nil {
		f, err := ParseFinish(*j.Finish)
		if err != nil {
			return err
		}
		finish = f
	}
	*it = Item{
		Type:            j.Type,
		Version:         j.Version,
		Name:            j.Name,
		FamilyID:        j.FamilyID,
		ExternalID:      j.ExternalID,
		Set:             j.Set,
		CollectorNumber: j.CollectorNumber,
		Finish:          finish,
		PriceHistory:    j.PriceHistory,
	}
	return nil
}

// ReadItem decodes the item stored in the directory dir.
func ReadItem(dir string) (*Item, error) {
	filename := filepath.Join(dir, MetadataFile)
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("cannot read item: %w", err)
	}
	it := new(Item)
	if err := json.Unmarshal(data, it); err != nil {
		return nil, fmt.Errorf("format error %q: %w", filename, err)
	}
	return it, nil
}

// WriteItem encodes the item into the directory dir, overwriting the previous
// metadata file.
func WriteItem(dir string, it *Item) error {
	data, err := json.MarshalIndent(it, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot encode item %q: %w", it.Name, err)
	}
	data = append(data, '\n')
	filename := filepath.Join(dir, MetadataFile)
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("cannot write item: %w", err)
	}
	return nil
}

// isItemDir returns true if dir contains a metadata file.
func isItemDir(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, MetadataFile))
	return err == nil && info.Mode().IsRegular()
}
