// Package feed derives reading queues from the catalog and user state.
// All functions are pure: quotes in, quotes out. No side effects.
package feed

import (
	"math/rand/v2"

	"quotedeck/internal/library"
)

// Queue display names for the built-in launch options.
const (
	NameMain      = "Feed"
	NameAll       = "All Quotes"
	NameStarred   = "Starred"
	NameFavorites = "Favorites"
)

// Filters is the user state applied when refreshing the main feed pool.
type Filters struct {
	ActiveAuthors map[string]bool // author IDs before the roster divider
	ExcludedWorks map[string]bool // work titles
	NotBased      map[string]bool // disliked quote IDs
	Hidden        map[string]bool // hidden quote IDs
	ShowSatire    bool
}

// Refresh returns the main-feed candidate pool: quotes whose author is
// active, whose work is not excluded, whose ID is neither disliked nor
// hidden, and which pass the satire toggle.
func Refresh(quotes []library.Quote, f Filters) []library.Quote {
	result := make([]library.Quote, 0, len(quotes))
	for _, q := range quotes {
		if !f.ActiveAuthors[q.AuthorID] {
			continue
		}
		if f.ExcludedWorks[q.Work] {
			continue
		}
		if f.NotBased[q.ID] || f.Hidden[q.ID] {
			continue
		}
		if q.Satire && !f.ShowSatire {
			continue
		}
		result = append(result, q)
	}
	return result
}

// Shuffle returns a fresh uniform random permutation. A new order on every
// call; the order carries no meaning beyond session variety, so no seed is
// persisted.
func Shuffle(quotes []library.Quote) []library.Quote {
	out := make([]library.Quote, len(quotes))
	copy(out, quotes)
	rand.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// BuildMain builds the shuffled main feed queue. An empty catalog yields the
// single placeholder quote so the reader always has something to show.
func BuildMain(cat *library.Catalog, f Filters) ([]library.Quote, string) {
	if cat.Empty() {
		return []library.Quote{library.Placeholder()}, NameMain
	}
	return Shuffle(Refresh(cat.Quotes(), f)), NameMain
}

// BuildAll builds the all-quotes queue: everything except hidden and
// disliked quotes, satire-filtered, shuffled.
func BuildAll(cat *library.Catalog, hidden, notBased map[string]bool, showSatire bool) ([]library.Quote, string) {
	if cat.Empty() {
		return []library.Quote{library.Placeholder()}, NameAll
	}
	pool := make([]library.Quote, 0, len(cat.Quotes()))
	for _, q := range cat.Quotes() {
		if hidden[q.ID] || notBased[q.ID] {
			continue
		}
		if q.Satire && !showSatire {
			continue
		}
		pool = append(pool, q)
	}
	return Shuffle(pool), NameAll
}

// BuildStarred builds the queue of quotes by starred authors, excluding
// hidden quotes, shuffled.
func BuildStarred(cat *library.Catalog, starred, hidden map[string]bool) ([]library.Quote, string) {
	if cat.Empty() {
		return []library.Quote{library.Placeholder()}, NameStarred
	}
	pool := make([]library.Quote, 0, len(cat.Quotes()))
	for _, q := range cat.Quotes() {
		if !starred[q.AuthorID] || hidden[q.ID] {
			continue
		}
		pool = append(pool, q)
	}
	return Shuffle(pool), NameStarred
}

// BuildFavorites builds the queue of favorited quotes, excluding hidden
// quotes, shuffled.
func BuildFavorites(cat *library.Catalog, favorites, hidden map[string]bool) ([]library.Quote, string) {
	if cat.Empty() {
		return []library.Quote{library.Placeholder()}, NameFavorites
	}
	pool := make([]library.Quote, 0, len(favorites))
	for _, q := range cat.Quotes() {
		if !favorites[q.ID] || hidden[q.ID] {
			continue
		}
		pool = append(pool, q)
	}
	return Shuffle(pool), NameFavorites
}
