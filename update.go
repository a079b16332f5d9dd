package bookshelf

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"
)

// This file contains the price update of a collection.
//
// One price is fetched per identity key, and applied to every copy sharing
// that key.

// Pricer supplies the current price of an entry, Providers is one.
type Pricer interface {
	Price(ctx context.Context, e Entry) (PriceEntry, error)
}

// ItemWriter persists an updated item.
type ItemWriter interface {
	WriteItem(e Entry) error
}

// UpdateOptions configures Update.
type UpdateOptions struct {
	// MinChange suppresses changes whose absolute value is below it.
	MinChange decimal.Decimal
	// Dry computes and reports changes without appending nor writing anything.
	Dry bool
	// Writer persists updated items, it is not used when Dry.
	Writer ItemWriter
}

// Change is the price change of a single copy.
type Change struct {
	Entry
	Previous Money // zero if the copy had no price.
	Current  Money
	Delta    Money
}

// UpdateReport is the outcome of Update.
type UpdateReport struct {
	Changes     []Change
	Fluctuation Money // signed sum of the reported deltas.
	Unchanged   int   // copies below the minimum change.
	Failed      int   // copies that could not be priced or written.
}

// Delta returns the price change carried by the latest entry of a history:
// the difference with the previous entry, or the whole price when it is the
// only entry.
//
// A first price is thus counted as a gain from zero.
func Delta(history []PriceEntry) Money {
	switch n := len(history); n {
	case 0:
		return Money{}
	case 1:
		return history[0].Money()
	default:
		return history[n-1].Money().Sub(history[n-2].Money())
	}
}

// Update fetches a price for every identity of the collection and appends it
// to all the copies.
//
// The delta of a copy is the Delta of its history with the new entry
// appended: the difference with its previous latest price, or the whole new
// price when it had none. Copies whose delta is below MinChange in absolute
// value are left untouched. An item is only modified once it has been
// written successfully.
//
// Failures are local to the identity being updated: they are joined into the
// returned error and the update goes on with the other identities. The report
// is always returned.
func Update(ctx context.Context, c Collection, p Pricer, opt UpdateOptions) (*UpdateReport, error) {
	r := new(UpdateReport)
	var errs error
	for _, key := range c.Keys() {
		if err := ctx.Err(); err != nil {
			return r, errors.Join(errs, err)
		}
		copies := c[key]
		entry, err := p.Price(ctx, copies[0])
		if err != nil {
			r.Failed += len(copies)
			errs = errors.Join(errs, fmt.Errorf("cannot price %q: %w", copies[0].Path, err))
			continue
		}

		for _, e := range copies {
			previous, _ := e.Item.Latest()
			history := append(e.Item.PriceHistory[:len(e.Item.PriceHistory):len(e.Item.PriceHistory)], entry)
			delta := Delta(history)
			if delta.Abs().LessThan(opt.MinChange) {
				r.Unchanged++
				continue
			}

			if !opt.Dry {
				next := *e.Item
				next.PriceHistory = e.Item.PriceHistory[:len(e.Item.PriceHistory):len(e.Item.PriceHistory)]
				if err := next.Append(entry); err != nil {
					r.Failed++
					errs = errors.Join(errs, err)
					continue
				}
				if err := opt.Writer.WriteItem(Entry{Path: e.Path, Item: &next}); err != nil {
					r.Failed++
					errs = errors.Join(errs, err)
					continue
				}
				*e.Item = next
				log.Debug("price updated", "path", e.Path, "price", entry.Price)
			}

			r.Changes = append(r.Changes, Change{
				Entry:    e,
				Previous: previous.Money(),
				Current:  entry.Money(),
				Delta:    delta,
			})
			r.Fluctuation = r.Fluctuation.Add(delta)
		}
	}
	return r, errs
}
