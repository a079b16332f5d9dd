package bookshelf

import (
	"context"
	"fmt"
	"path"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// Query describes a catalog entry to look up.
type Query struct {
	Entry  string           // the entry name.
	Set    string           // variant selector, "*" for the latest printing.
	Finish Finish
	Price  *decimal.Decimal // overrides the catalog price when set.
}

// Provider is the capability owning a family of items: it knows how to look
// them up in a catalog, price them and format them.
type Provider interface {
	// Type is the provider type recorded in the items it creates.
	Type() string
	// Lookup creates a new item from the catalog.
	//
	// It fails with ErrNoEntry, ErrNoPrice or an *AmbiguousError.
	Lookup(ctx context.Context, q Query) (*Item, error)
	// Price returns the current price of an item.
	Price(ctx context.Context, it *Item) (PriceEntry, error)
	// Title returns the display title of an item.
	Title(it *Item) string
	// Line returns the display line of an item with its number of copies.
	Line(it *Item, onlyTitle bool, multiples int) string
	// IdentityKey returns the identity key of an item.
	IdentityKey(it *Item, mode Identity) string
}

// Providers maps shelf path prefixes to providers.
//
// Its zero value is ready to use.
type Providers struct {
	prefixes []string // sorted, longest first.
	byPrefix map[string]Provider
	byType   map[string]Provider
}

// Register the provider for all the shelves under prefix.
func (ps *Providers) Register(prefix string, p Provider) error {
	prefix = strings.Trim(prefix, "/")
	if ps.byPrefix == nil {
		ps.byPrefix = make(map[string]Provider)
		ps.byType = make(map[string]Provider)
	}
	if _, exists := ps.byPrefix[prefix]; exists {
		return fmt.Errorf("shelf prefix %q is already registered", prefix)
	}
	ps.byPrefix[prefix] = p
	ps.prefixes = append(ps.prefixes, prefix)
	slices.SortFunc(ps.prefixes, func(a, b string) int { return len(b) - len(a) })
	if _, exists := ps.byType[p.Type()]; !exists {
		ps.byType[p.Type()] = p
	}
	return nil
}

// Resolve returns the provider of the longest prefix containing the shelf.
func (ps *Providers) Resolve(shelf string) (Provider, bool) {
	shelf = strings.Trim(shelf, "/")
	for _, prefix := range ps.prefixes {
		if prefix == "" || shelf == prefix || strings.HasPrefix(shelf, prefix+"/") {
			return ps.byPrefix[prefix], true
		}
	}
	return nil, false
}

// Owner returns the provider owning the entry: the provider of the longest
// prefix containing its shelf when it handles the item type, otherwise the
// first provider registered for that type.
func (ps *Providers) Owner(e Entry) (Provider, bool) {
	_, p, ok := ps.owner(e)
	return p, ok
}

// owner returns the owning provider and the prefix it is registered for.
// Owners found by type only have a "type:" pseudo prefix.
func (ps *Providers) owner(e Entry) (string, Provider, bool) {
	shelf := path.Dir(e.Path)
	for _, prefix := range ps.prefixes {
		if prefix == "" || shelf == prefix || strings.HasPrefix(shelf, prefix+"/") {
			if p := ps.byPrefix[prefix]; p.Type() == e.Item.Type {
				return prefix, p, true
			}
			break
		}
	}
	p, ok := ps.byType[e.Item.Type]
	return "type:" + e.Item.Type, p, ok
}

// KeyFunc returns the identity key function delegating to entry owners.
// Keys of different owners never collide. Entries without an owner use the
// mode's default key.
func (ps *Providers) KeyFunc(mode Identity) KeyFunc {
	return func(e Entry) string {
		if prefix, p, ok := ps.owner(e); ok {
			return prefix + "|" + p.IdentityKey(e.Item, mode)
		}
		return mode.Key(e.Item)
	}
}

// Price returns the current price of an entry from its owner.
func (ps *Providers) Price(ctx context.Context, e Entry) (PriceEntry, error) {
	p, ok := ps.Owner(e)
	if !ok {
		return PriceEntry{}, fmt.Errorf("no provider for items of type %q", e.Item.Type)
	}
	return p.Price(ctx, e.Item)
}

// Line formats an entry with its owner, or with a generic line when the item
// has no owner.
func (ps *Providers) Line(e Entry, onlyTitle bool, multiples int) string {
	if p, ok := ps.Owner(e); ok {
		return p.Line(e.Item, onlyTitle, multiples)
	}
	if onlyTitle {
		return fmt.Sprintf("%dx %s", multiples, e.Item.Name)
	}
	return fmt.Sprintf("%dx %s [%s]", multiples, e.Item.Name, e.Item.LatestPrice())
}
