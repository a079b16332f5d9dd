package bookshelf

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// MetadataFile is the name of the file marking a directory as an item.
	MetadataFile = ".bookshelf.metadata"
	// ReservedDir is never traversed, whatever its content.
	ReservedDir = ".git"
)

// Finish is the physical variant of an item.
type Finish string

const (
	Plain  Finish = ""
	Foil   Finish = "foil"
	Etched Finish = "etched"
)

// ParseFinish parses a finish name, "" and "plain" are the plain finish.
func ParseFinish(s string) (Finish, error) {
	switch s {
	case "", "plain":
		return Plain, nil
	case string(Foil):
		return Foil, nil
	case string(Etched):
		return Etched, nil
	}
	return Plain, fmt.Errorf("invalid finish %q: must be one of plain, foil, etched", s)
}

// PriceEntry is a single point of an item price history.
type PriceEntry struct {
	Date     time.Time
	Price    decimal.Decimal
	Currency string
}

// Money returns the entry price as Money.
func (e PriceEntry) Money() Money { return M(e.Price, e.Currency) }

// Item is the metadata of one physical copy of a collected thing.
type Item struct {
	Type            string // provider type that owns the record.
	Version         string // provider schema version.
	Name            string // display title.
	FamilyID        string // shared by all printings of the same logical item.
	ExternalID      string // catalog specific identifier of this printing.
	Set             string
	CollectorNumber string
	Finish          Finish
	PriceHistory    []PriceEntry // append only, chronological.
}

// Latest returns the latest price entry, false if the history is empty.
func (it *Item) Latest() (PriceEntry, bool) {
	if len(it.PriceHistory) == 0 {
		return PriceEntry{}, false
	}
	return it.PriceHistory[len(it.PriceHistory)-1], true
}

// LatestPrice returns the latest known price, zero if there is none.
func (it *Item) LatestPrice() Money {
	e, _ := it.Latest()
	return e.Money()
}

// Append adds a new entry to the price history.
//
// Entries cannot be dated before the latest one.
func (it *Item) Append(e PriceEntry) error {
	if last, ok := it.Latest(); ok && e.Date.Before(last.Date) {
		return fmt.Errorf("cannot append price dated %s to %q: history ends on %s", e.Date.Format(time.RFC3339), it.Name, last.Date.Format(time.RFC3339))
	}
	it.PriceHistory = append(it.PriceHistory, e)
	return nil
}

// Variant returns the human identifier of the printing "set#collector_number".
func (it *Item) Variant() string { return it.Set + "#" + it.CollectorNumber }

// Identity selects how copies are considered the same.
type Identity int

const (
	// VariantIdentity distinguishes printings and finishes: a foil copy is not
	// the same as a plain copy.
	VariantIdentity Identity = iota
	// FamilyIdentity merges all printings and finishes of the same logical item.
	FamilyIdentity
)

// Key returns the identity key of an item.
func (id Identity) Key(it *Item) string {
	switch id {
	case FamilyIdentity:
		if it.FamilyID == "" {
			return "name:" + it.Name
		}
		return it.FamilyID
	default:
		ext := it.ExternalID
		if ext == "" {
			ext = it.Variant()
		}
		return ext + "/" + string(it.Finish)
	}
}

// Of returns the identity key of the entry's item, it is a KeyFunc.
func (id Identity) Of(e Entry) string { return id.Key(e.Item) }

// KeyFunc computes the identity key of an entry.
type KeyFunc func(Entry) string
