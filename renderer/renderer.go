// Package renderer renders listings and price updates as text.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"text/template"

	"github.com/etnz/bookshelf"
)

//go:embed templates/*.tmpl
var templates embed.FS

// LineFormatter formats the line of an item, bookshelf.Providers is one.
type LineFormatter interface {
	Line(e bookshelf.Entry, onlyTitle bool, multiples int) string
}

// ListingOptions holds configuration for rendering a listing.
type ListingOptions struct {
	Quiet      bool // only headers and totals.
	OnlyTitle  bool // rows merge several variants.
	SubShelves bool // list the sub-shelves that were not entered.
	SkipEmpty  bool // skip shelves without rows.
	Styles     Styles
}

// RenderListing renders a listing, one line per row under a header per shelf.
func RenderListing(l *bookshelf.Listing, f LineFormatter, opt ListingOptions) string {
	st := opt.Styles
	funcs := template.FuncMap{
		"header": func(p string) string {
			if p == "" {
				p = "."
			}
			return st.Header.Render("==> " + p)
		},
		"line": func(r bookshelf.Row) string {
			return st.Line.Render(f.Line(r.Entry, opt.OnlyTitle, r.Count()))
		},
		"total": func(label string, m bookshelf.Money) string {
			return st.Total.Render(label+":") + " " + m.String()
		},
		"visible": func(s *bookshelf.Shelf) bool { return !opt.SkipEmpty || len(s.Rows) > 0 },
		"join":    path.Join,
	}
	data := struct {
		Listing *bookshelf.Listing
		ListingOptions
	}{l, opt}
	return renderTemplate("listing", "templates/listing.tmpl", funcs, data)
}

// UpdateOptions holds configuration for rendering a price update report.
type UpdateOptions struct {
	Dry    bool
	Styles Styles
}

// RenderUpdate renders the changes of a price update and its fluctuation.
func RenderUpdate(r *bookshelf.UpdateReport, opt UpdateOptions) string {
	st := opt.Styles
	signed := func(m bookshelf.Money) string {
		switch {
		case m.Value().IsPositive():
			return st.Gain.Render(m.SignedString())
		case m.Value().IsNegative():
			return st.Loss.Render(m.SignedString())
		}
		return m.String()
	}
	funcs := template.FuncMap{
		"change": func(c bookshelf.Change) string {
			return fmt.Sprintf("%s %s: %s -> %s (%s)", c.Item.Name, st.Muted.Render(c.Path), c.Previous, c.Current, signed(c.Delta))
		},
		"fluctuation": func(m bookshelf.Money) string {
			return st.Total.Render("Fluctuation:") + " " + signed(m)
		},
		"summary": func(r *bookshelf.UpdateReport, dry bool) string {
			s := fmt.Sprintf("%d changed, %d unchanged, %d failed", len(r.Changes), r.Unchanged, r.Failed)
			if dry {
				s += ", dry run: nothing written"
			}
			return st.Muted.Render(s)
		},
	}
	data := struct {
		Report *bookshelf.UpdateReport
		Dry    bool
	}{r, opt.Dry}
	return renderTemplate("update", "templates/update.tmpl", funcs, data)
}

// renderTemplate renders an embedded template.
func renderTemplate(name, file string, funcs template.FuncMap, data any) string {
	content, err := fs.ReadFile(templates, file)
	if err != nil {
		return fmt.Sprintf("error reading template %q: %v", file, err)
	}
	tmpl, err := template.New(name).Funcs(funcs).Parse(string(content))
	if err != nil {
		return fmt.Sprintf("error parsing template %q: %v", file, err)
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", name, err)
	}
	return b.String()
}
