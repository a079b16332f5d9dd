// Package mtg prices Magic: The Gathering cards with the Scryfall API.
package mtg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/bookshelf"
	"github.com/shopspring/decimal"
)

const (
	// Type is recorded in every item created by the provider.
	Type = "mtg"
	// Version of the item schema.
	Version = "1.0"
	// BaseURL of the Scryfall API.
	BaseURL = "https://api.scryfall.com"
)

// Provider looks up and prices cards in a single currency.
type Provider struct {
	Currency string
	BaseURL  string
	Client   *http.Client

	now func() time.Time
}

// New returns a provider pricing in currency, with a daily cache of the
// Scryfall responses.
func New(currency string) *Provider {
	return &Provider{
		Currency: strings.ToLower(currency),
		BaseURL:  BaseURL,
		Client:   newDailyCachingClient(filepath.Join(os.TempDir(), "bookshelf-scryfall")),
		now:      time.Now,
	}
}

// Type implements bookshelf.Provider.
func (p *Provider) Type() string { return Type }

// card is a printing as returned by Scryfall.
type card struct {
	ID              string `json:"id"`
	OracleID        string `json:"oracle_id"`
	Name            string `json:"name"`
	Set             string `json:"set"`
	CollectorNumber string `json:"collector_number"`

	raw any // the whole object, for jsonpath queries.
}

func (c *card) UnmarshalJSON(b []byte) error {
	type plain card
	if err := json.Unmarshal(b, (*plain)(c)); err != nil {
		return err
	}
	return json.Unmarshal(b, &c.raw)
}

// variant returns "set#collector_number".
func (c *card) variant() string { return c.Set + "#" + c.CollectorNumber }

// page is a page of a Scryfall list.
type page struct {
	Data     []*card `json:"data"`
	HasMore  bool    `json:"has_more"`
	NextPage string  `json:"next_page"`
}

func (p *Provider) get(ctx context.Context, addr string, data any) error {
	err := jwget(ctx, p.Client, addr, data)
	var se *statusError
	if errors.As(err, &se) && se.Code == http.StatusNotFound {
		return fmt.Errorf("%s: %w", addr, bookshelf.ErrNoEntry)
	}
	return err
}

// named returns the card with that exact name.
func (p *Provider) named(ctx context.Context, name string) (*card, error) {
	var c card
	addr := p.BaseURL + "/cards/named?exact=" + url.QueryEscape(name)
	if err := p.get(ctx, addr, &c); err != nil {
		return nil, fmt.Errorf("cannot find %q: %w", name, err)
	}
	if c.OracleID == "" {
		return nil, fmt.Errorf("cannot find %q: %w", name, bookshelf.ErrNoEntry)
	}
	return &c, nil
}

// printings returns all the printings of a card, the most recent first.
func (p *Provider) printings(ctx context.Context, oracleID string) ([]*card, error) {
	q := url.Values{}
	q.Set("order", "released")
	q.Set("unique", "prints")
	q.Set("q", "oracle_id:"+oracleID)
	addr := p.BaseURL + "/cards/search?" + q.Encode()

	var cards []*card
	for addr != "" {
		var pg page
		if err := p.get(ctx, addr, &pg); err != nil {
			return nil, fmt.Errorf("cannot list printings of %q: %w", oracleID, err)
		}
		cards = append(cards, pg.Data...)
		addr = ""
		if pg.HasMore {
			addr = pg.NextPage
		}
	}
	return cards, nil
}

// selectPrinting selects the printing matching the selector.
//
// "*" selects the most recent printing, otherwise the selector must be a
// prefix of exactly one "set#collector_number". An empty selector is
// accepted only when there is a single printing.
func selectPrinting(name, selector string, cards []*card) (*card, error) {
	if len(cards) == 0 {
		return nil, fmt.Errorf("no printing of %q: %w", name, bookshelf.ErrNoEntry)
	}
	if selector == "*" || (selector == "" && len(cards) == 1) {
		return cards[0], nil
	}
	var found []*card
	if selector != "" {
		for _, c := range cards {
			if strings.HasPrefix(c.variant(), selector) {
				found = append(found, c)
			}
		}
	}
	if len(found) == 1 {
		return found[0], nil
	}
	if len(found) == 0 {
		found = cards
	}
	candidates := make([]string, len(found))
	for i, c := range found {
		candidates[i] = c.variant()
	}
	return nil, &bookshelf.AmbiguousError{Query: name + " " + selector, Candidates: candidates}
}

// price extracts the price of a finish from a card.
func (p *Provider) price(c *card, finish bookshelf.Finish) (decimal.Decimal, error) {
	if p.Currency == "eur" && finish == bookshelf.Etched {
		finish = bookshelf.Foil // no etched price in eur.
	}
	key := p.Currency
	if finish != bookshelf.Plain {
		key += "_" + string(finish)
	}
	path := "$.prices." + key
	jval, err := jsonpath.Get(path, c.raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s %s %s: %w", c.Name, c.variant(), key, bookshelf.ErrNoPrice)
	}
	var v decimal.Decimal
	switch val := jval.(type) {
	case string:
		if v, err = decimal.NewFromString(val); err != nil {
			return decimal.Zero, fmt.Errorf("invalid price %q for %s %s: %w", val, c.Name, c.variant(), err)
		}
	case float64:
		v = decimal.NewFromFloat(val)
	}
	if v.IsZero() {
		return decimal.Zero, fmt.Errorf("%s %s %s: %w", c.Name, c.variant(), key, bookshelf.ErrNoPrice)
	}
	return v, nil
}

// Lookup implements bookshelf.Provider.
func (p *Provider) Lookup(ctx context.Context, q bookshelf.Query) (*bookshelf.Item, error) {
	named, err := p.named(ctx, q.Entry)
	if err != nil {
		return nil, err
	}
	cards, err := p.printings(ctx, named.OracleID)
	if err != nil {
		return nil, err
	}
	c, err := selectPrinting(q.Entry, q.Set, cards)
	if err != nil {
		return nil, err
	}

	var price decimal.Decimal
	if q.Price != nil {
		price = *q.Price
	} else if price, err = p.price(c, q.Finish); err != nil {
		return nil, err
	}

	it := &bookshelf.Item{
		Type:            Type,
		Version:         Version,
		Name:            c.Name,
		FamilyID:        named.OracleID,
		ExternalID:      c.ID,
		Set:             c.Set,
		CollectorNumber: c.CollectorNumber,
		Finish:          q.Finish,
	}
	it.PriceHistory = []bookshelf.PriceEntry{{Date: p.now().UTC(), Price: price, Currency: p.Currency}}
	return it, nil
}

// Price implements bookshelf.Provider.
func (p *Provider) Price(ctx context.Context, it *bookshelf.Item) (bookshelf.PriceEntry, error) {
	if it.ExternalID == "" {
		return bookshelf.PriceEntry{}, fmt.Errorf("%s has no scryfall id: %w", it.Name, bookshelf.ErrNoEntry)
	}
	var c card
	if err := p.get(ctx, p.BaseURL+"/cards/"+url.PathEscape(it.ExternalID), &c); err != nil {
		return bookshelf.PriceEntry{}, fmt.Errorf("cannot price %s: %w", it.Name, err)
	}
	v, err := p.price(&c, it.Finish)
	if err != nil {
		return bookshelf.PriceEntry{}, err
	}
	return bookshelf.PriceEntry{Date: p.now().UTC(), Price: v, Currency: p.Currency}, nil
}

// Title implements bookshelf.Provider.
func (p *Provider) Title(it *bookshelf.Item) string { return it.Name }

// Line implements bookshelf.Provider.
//
// The line is "Nx Name [set#cn] [finish] [price]", or "Nx Name" when only the
// title is requested.
func (p *Provider) Line(it *bookshelf.Item, onlyTitle bool, multiples int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%dx %s", multiples, p.Title(it))
	if onlyTitle {
		return b.String()
	}
	fmt.Fprintf(&b, " [%s]", it.Variant())
	if it.Finish != bookshelf.Plain {
		fmt.Fprintf(&b, " [%s]", it.Finish)
	}
	fmt.Fprintf(&b, " [%s]", it.LatestPrice())
	return b.String()
}

// IdentityKey implements bookshelf.Provider.
//
// Variants are identified by scryfall id and finish, families by oracle id.
func (p *Provider) IdentityKey(it *bookshelf.Item, mode bookshelf.Identity) string {
	return mode.Key(it)
}
