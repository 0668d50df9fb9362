// Package roster maintains the ordered author roster.
//
// The roster is a single ordered sequence of author entries plus exactly one
// divider entry. Authors before the divider are active (included in the main
// feed), authors after it are inactive. The divider itself is a movable
// entry, so a drag reorder can redefine the partition.
package roster

import (
	"sort"
	"strings"

	"quotedeck/internal/library"
)

// DividerToken is the sentinel stored in the persisted order list to mark
// the divider position.
const DividerToken = "---"

// defaultPriority seeds the active region on first launch, before any order
// has been saved. Matched as case-sensitive substrings of author names.
var defaultPriority = []string{
	"Marcus Aurelius",
	"Seneca",
	"Epictetus",
	"Dostoevsky",
	"Nietzsche",
	"Twain",
}

// Entry is one roster row: an author reference or the divider.
type Entry struct {
	AuthorID string
	Name     string // display name, empty for the divider
	Divider  bool
}

// Roster is the ordered author sequence. Not safe for concurrent use; it is
// mutated only from discrete user actions on the UI goroutine.
type Roster struct {
	entries []Entry
}

// Build reconciles catalog authors against a previously saved order.
//
// Saved entries keep their relative order; saved IDs that no longer exist
// are dropped; authors missing from the saved order are appended at the end,
// after the divider, so new authors default to inactive. With no saved order
// the defaultPriority authors are placed active, everyone else inactive.
// The single-divider invariant holds on return regardless of how mangled
// the saved order was.
func Build(authors []*library.Author, savedOrder []string) *Roster {
	byID := make(map[string]*library.Author, len(authors))
	for _, a := range authors {
		byID[a.ID] = a
	}

	r := &Roster{}
	if len(savedOrder) == 0 {
		r.entries = defaultOrder(authors)
		return r
	}

	seen := make(map[string]bool, len(authors))
	haveDivider := false
	for _, tok := range savedOrder {
		if tok == DividerToken {
			if haveDivider {
				continue
			}
			haveDivider = true
			r.entries = append(r.entries, Entry{Divider: true})
			continue
		}
		a, ok := byID[tok]
		if !ok || seen[tok] {
			continue
		}
		seen[tok] = true
		r.entries = append(r.entries, Entry{AuthorID: a.ID, Name: a.Name})
	}
	if !haveDivider {
		r.entries = append([]Entry{{Divider: true}}, r.entries...)
	}

	var missing []*library.Author
	for _, a := range authors {
		if !seen[a.ID] {
			missing = append(missing, a)
		}
	}
	sort.Slice(missing, func(i, j int) bool { return missing[i].Name < missing[j].Name })
	for _, a := range missing {
		r.entries = append(r.entries, Entry{AuthorID: a.ID, Name: a.Name})
	}
	return r
}

// defaultOrder places priority authors active, the rest inactive by name.
func defaultOrder(authors []*library.Author) []Entry {
	remaining := make([]*library.Author, len(authors))
	copy(remaining, authors)
	sort.Slice(remaining, func(i, j int) bool { return remaining[i].Name < remaining[j].Name })

	var entries []Entry
	used := make(map[string]bool)
	for _, want := range defaultPriority {
		for _, a := range remaining {
			if used[a.ID] {
				continue
			}
			if strings.Contains(a.Name, want) {
				used[a.ID] = true
				entries = append(entries, Entry{AuthorID: a.ID, Name: a.Name})
			}
		}
	}
	entries = append(entries, Entry{Divider: true})
	for _, a := range remaining {
		if !used[a.ID] {
			entries = append(entries, Entry{AuthorID: a.ID, Name: a.Name})
		}
	}
	return entries
}

// Entries returns a copy of the roster rows.
func (r *Roster) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Len returns the number of rows including the divider.
func (r *Roster) Len() int {
	return len(r.entries)
}

// dividerIndex locates the first divider, repairing the roster by inserting
// one at position 0 if persistence ever corrupted it away.
func (r *Roster) dividerIndex() int {
	for i, e := range r.entries {
		if e.Divider {
			return i
		}
	}
	r.entries = append([]Entry{{Divider: true}}, r.entries...)
	return 0
}

// IsActive reports whether the author sits strictly before the divider.
func (r *Roster) IsActive(authorID string) bool {
	div := r.dividerIndex()
	for i, e := range r.entries {
		if e.AuthorID == authorID {
			return i < div
		}
	}
	return false
}

// ActiveIDs returns the IDs of all active authors in roster order. The scan
// stops at the first divider, so even a roster that somehow grew a second
// divider partitions consistently.
func (r *Roster) ActiveIDs() []string {
	var ids []string
	for _, e := range r.entries {
		if e.Divider {
			break
		}
		ids = append(ids, e.AuthorID)
	}
	return ids
}

// ToggleActive flips an author across the divider: inactive authors move to
// the start of the active region, active authors to the end of the inactive
// region. Unknown IDs are a no-op.
func (r *Roster) ToggleActive(authorID string) {
	div := r.dividerIndex()
	idx := -1
	for i, e := range r.entries {
		if e.AuthorID == authorID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}

	entry := r.entries[idx]
	r.entries = append(r.entries[:idx], r.entries[idx+1:]...)
	if idx < div {
		// Was active: append to the very end (end of inactive region).
		r.entries = append(r.entries, entry)
	} else {
		// Was inactive: insert at the start of the active region.
		r.entries = append([]Entry{entry}, r.entries...)
	}
}

// Move removes the rows at the given indices and reinserts them, in order,
// at the target index (interpreted against the list with the rows removed).
// The divider moves like any other row. Out-of-range indices are ignored.
func (r *Roster) Move(from []int, to int) {
	if len(from) == 0 {
		return
	}
	picked := make(map[int]bool, len(from))
	for _, i := range from {
		if i >= 0 && i < len(r.entries) {
			picked[i] = true
		}
	}
	if len(picked) == 0 {
		return
	}

	var moving, rest []Entry
	for i, e := range r.entries {
		if picked[i] {
			moving = append(moving, e)
		} else {
			rest = append(rest, e)
		}
	}
	if to < 0 {
		to = 0
	}
	if to > len(rest) {
		to = len(rest)
	}

	entries := make([]Entry, 0, len(r.entries))
	entries = append(entries, rest[:to]...)
	entries = append(entries, moving...)
	entries = append(entries, rest[to:]...)
	r.entries = entries
	r.dividerIndex() // repair if the divider was somehow lost
}

// Encode serializes the roster to the persisted order list: author IDs in
// order with DividerToken at the divider position.
func (r *Roster) Encode() []string {
	r.dividerIndex()
	out := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		if e.Divider {
			out = append(out, DividerToken)
		} else {
			out = append(out, e.AuthorID)
		}
	}
	return out
}
