// Package library holds the loaded quote catalog.
//
// Catalog is the source of truth for quote data in memory. It is populated
// once per load pass by the loader and is immutable afterwards - user state
// (favorites, hidden, roster order) lives elsewhere and joins back to quotes
// through their stable IDs.
package library

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
)

// Quote is a single line of a work. Immutable after load.
type Quote struct {
	ID       string // stable across reloads of the same file content
	Text     string
	Author   string // display name
	AuthorID string
	Work     string
	Year     int
	Satire   bool
	Seq      int // position within the work
	Ordinal  int // position within the load pass
}

// Work is one text file of quotes.
type Work struct {
	Title     string
	Year      int
	SourceURL string
	Satire    bool
	Quotes    []Quote
}

// Author owns an ordered list of works.
type Author struct {
	ID         string
	Name       string
	ImagePath  string
	Works      []Work
	SingleWork bool
}

// QuoteID derives the stable identifier for a quote.
//
// The ID is content-addressed from the author name, work title and the
// quote's position within the work, so reloading unchanged files yields
// identical IDs and preference sets keyed on them stay valid.
func QuoteID(author, work string, seq int) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%d", author, work, seq)))
	return hex.EncodeToString(sum[:])[:16]
}

// AuthorID derives the stable identifier for an author from its library
// folder name. The display name stays a display attribute only.
func AuthorID(name string) string {
	sum := sha256.Sum256([]byte("author|" + name))
	return hex.EncodeToString(sum[:])[:16]
}

// Catalog is the loaded content store.
type Catalog struct {
	authors       []*Author
	quotes        []Quote
	quotesByID    map[string]Quote
	authorsByID   map[string]*Author
	authorsByName map[string]*Author
}

// NewCatalog builds a catalog from loaded authors. Authors are sorted by
// name; quote lookup indexes are built once here.
func NewCatalog(authors []*Author) *Catalog {
	sorted := make([]*Author, len(authors))
	copy(sorted, authors)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	c := &Catalog{
		authors:       sorted,
		quotesByID:    make(map[string]Quote),
		authorsByID:   make(map[string]*Author),
		authorsByName: make(map[string]*Author),
	}
	for _, a := range sorted {
		a.SingleWork = len(a.Works) == 1
		c.authorsByID[a.ID] = a
		c.authorsByName[a.Name] = a
		for _, w := range a.Works {
			for _, q := range w.Quotes {
				c.quotes = append(c.quotes, q)
				c.quotesByID[q.ID] = q
			}
		}
	}
	return c
}

// Authors returns all authors, sorted by name.
func (c *Catalog) Authors() []*Author {
	return c.authors
}

// Quotes returns every quote in load order.
func (c *Catalog) Quotes() []Quote {
	return c.quotes
}

// QuoteByID looks up a quote by its stable ID.
func (c *Catalog) QuoteByID(id string) (Quote, bool) {
	q, ok := c.quotesByID[id]
	return q, ok
}

// AuthorByID looks up an author by its stable ID.
func (c *Catalog) AuthorByID(id string) (*Author, bool) {
	a, ok := c.authorsByID[id]
	return a, ok
}

// AuthorByName looks up an author by display name.
func (c *Catalog) AuthorByName(name string) (*Author, bool) {
	a, ok := c.authorsByName[name]
	return a, ok
}

// Empty reports whether the catalog holds no quotes.
func (c *Catalog) Empty() bool {
	return c == nil || len(c.quotes) == 0
}

// Placeholder is the sentinel quote shown when no library has loaded yet.
// It signals "data not ready" to the presentation layer instead of failing.
func Placeholder() Quote {
	return Quote{
		ID:     "placeholder",
		Text:   "No quotes loaded yet. Point quotedeck at a library directory to get started.",
		Author: "quotedeck",
		Work:   "Welcome",
	}
}
