package bookshelf

import (
	"iter"
	"maps"
	"slices"
)

// Collection maps an identity key to all the copies sharing it.
type Collection map[string][]Entry

// Collect gathers all the items of the levels by identity key.
//
// An empty sequence yields an empty collection. Items are not modified.
func Collect(levels iter.Seq2[*Level, error], key KeyFunc) (Collection, error) {
	if key == nil {
		key = VariantIdentity.Of
	}
	c := make(Collection)
	for level, err := range levels {
		if err != nil {
			return nil, err
		}
		for _, e := range level.Items {
			k := key(e)
			c[k] = append(c[k], e)
		}
	}
	return c, nil
}

// Keys returns the identity keys in ascending order.
func (c Collection) Keys() []string { return slices.Sorted(maps.Keys(c)) }

// Len returns the total number of copies.
func (c Collection) Len() int {
	n := 0
	for _, entries := range c {
		n += len(entries)
	}
	return n
}
