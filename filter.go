package bookshelf

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Filter is a predicate over items.
type Filter func(*Item) bool

// Match reports whether all filters accept the item.
func Match(it *Item, filters ...Filter) bool {
	for _, f := range filters {
		if !f(it) {
			return false
		}
	}
	return true
}

// NameContains accepts items whose name contains s, ignoring case.
func NameContains(s string) Filter {
	s = strings.ToLower(s)
	return func(it *Item) bool { return strings.Contains(strings.ToLower(it.Name), s) }
}

// SetIs accepts items from the set code, ignoring case.
func SetIs(code string) Filter {
	return func(it *Item) bool { return strings.EqualFold(it.Set, code) }
}

// FinishIs accepts items with that exact finish.
func FinishIs(f Finish) Filter {
	return func(it *Item) bool { return it.Finish == f }
}

// TypeIs accepts items owned by the provider type t.
func TypeIs(t string) Filter {
	return func(it *Item) bool { return it.Type == t }
}

// PriceAtLeast accepts items whose latest price is at least p.
func PriceAtLeast(p decimal.Decimal) Filter {
	return func(it *Item) bool { return it.LatestPrice().Value().GreaterThanOrEqual(p) }
}

// PriceAtMost accepts items whose latest price is at most p.
func PriceAtMost(p decimal.Decimal) Filter {
	return func(it *Item) bool { return it.LatestPrice().Value().LessThanOrEqual(p) }
}
