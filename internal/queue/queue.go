// Package queue manages the active reading queue.
//
// The manager is a small state machine over one ordered quote list and a
// cursor: empty, or populated with the cursor on some entry. It is mutated
// only from discrete user actions; it is not safe for concurrent use.
package queue

import (
	"time"

	"github.com/google/uuid"

	"quotedeck/internal/library"
	"quotedeck/internal/store"
)

// SyncFunc receives the queue state after every wholesale change, for
// publishing to the widget snapshot.
type SyncFunc func(quotes []library.Quote, name, cursorID string)

// ViewedFunc is called when the cursor lands on a quote.
type ViewedFunc func(quoteID string)

// Manager holds the active queue.
type Manager struct {
	quotes   []library.Quote
	name     string
	cursorID string

	// OnSync, if set, is invoked after SetQueue, Append, Remove and Move.
	OnSync SyncFunc
	// OnViewed, if set, is invoked by Advance for read-history tracking.
	OnViewed ViewedFunc
}

// NewManager returns an empty manager.
func NewManager() *Manager {
	return &Manager{}
}

// SetQueue replaces the queue wholesale. The cursor moves to the first
// element, or clears when the new queue is empty.
func (m *Manager) SetQueue(quotes []library.Quote, name string) {
	m.quotes = make([]library.Quote, len(quotes))
	copy(m.quotes, quotes)
	m.name = name
	if len(m.quotes) > 0 {
		m.cursorID = m.quotes[0].ID
	} else {
		m.cursorID = ""
	}
	m.sync()
}

// Append adds quotes to the tail. The cursor only moves if the queue was
// empty.
func (m *Manager) Append(quotes []library.Quote) {
	wasEmpty := len(m.quotes) == 0
	m.quotes = append(m.quotes, quotes...)
	if wasEmpty && len(m.quotes) > 0 {
		m.cursorID = m.quotes[0].ID
	}
	m.sync()
}

// Remove deletes the first entry matching the quote's stable ID. If the
// removed entry held the cursor, the cursor advances to the entry that
// followed it (the policy the feed UI expects: the next card slides in),
// clearing only when the queue empties.
func (m *Manager) Remove(quote library.Quote) {
	idx := m.indexOf(quote.ID)
	if idx < 0 {
		return
	}
	wasCursor := m.cursorID == quote.ID
	m.quotes = append(m.quotes[:idx], m.quotes[idx+1:]...)
	if wasCursor {
		switch {
		case len(m.quotes) == 0:
			m.cursorID = ""
		case idx < len(m.quotes):
			m.cursorID = m.quotes[idx].ID
		default:
			m.cursorID = m.quotes[len(m.quotes)-1].ID
		}
	}
	m.sync()
}

// Move reorders a single entry. The cursor follows its quote by identity;
// only the displayed index shifts.
func (m *Manager) Move(from, to int) {
	if from < 0 || from >= len(m.quotes) || to < 0 || to >= len(m.quotes) || from == to {
		return
	}
	q := m.quotes[from]
	m.quotes = append(m.quotes[:from], m.quotes[from+1:]...)
	rest := make([]library.Quote, 0, len(m.quotes)+1)
	rest = append(rest, m.quotes[:to]...)
	rest = append(rest, q)
	rest = append(rest, m.quotes[to:]...)
	m.quotes = rest
	m.sync()
}

// Advance moves the cursor to the viewed quote and records it in read
// history. Re-advancing to the current quote is a no-op.
func (m *Manager) Advance(quote library.Quote) {
	if m.cursorID != quote.ID {
		m.cursorID = quote.ID
	}
	if m.OnViewed != nil {
		m.OnViewed(quote.ID)
	}
}

// Quotes returns a copy of the queue.
func (m *Manager) Quotes() []library.Quote {
	out := make([]library.Quote, len(m.quotes))
	copy(out, m.quotes)
	return out
}

// Name returns the queue's display name.
func (m *Manager) Name() string {
	return m.name
}

// Len returns the queue length.
func (m *Manager) Len() int {
	return len(m.quotes)
}

// Current returns the quote under the cursor.
func (m *Manager) Current() (library.Quote, bool) {
	idx := m.indexOf(m.cursorID)
	if idx < 0 {
		return library.Quote{}, false
	}
	return m.quotes[idx], true
}

// Position returns the cursor's 1-based position and the queue total.
// Position 0 means no cursor.
func (m *Manager) Position() (int, int) {
	idx := m.indexOf(m.cursorID)
	if idx < 0 {
		return 0, len(m.quotes)
	}
	return idx + 1, len(m.quotes)
}

// Save snapshots the current queue into a new saved-queue record.
func (m *Manager) Save(name string) store.SavedQueue {
	ids := make([]string, len(m.quotes))
	for i, q := range m.quotes {
		ids[i] = q.ID
	}
	return store.SavedQueue{
		ID:        uuid.NewString(),
		Name:      name,
		QuoteIDs:  ids,
		CreatedAt: time.Now(),
	}
}

// Restore resolves a saved queue against the catalog and, if anything
// resolved, makes it the active queue. IDs no longer in the catalog are
// silently dropped. When nothing resolves (the underlying files changed
// out from under the save), the restore is a no-op and Restore returns
// false - the previous queue stays active.
func (m *Manager) Restore(saved store.SavedQueue, cat *library.Catalog) bool {
	var resolved []library.Quote
	for _, id := range saved.QuoteIDs {
		if q, ok := cat.QuoteByID(id); ok {
			resolved = append(resolved, q)
		}
	}
	if len(resolved) == 0 {
		return false
	}
	m.SetQueue(resolved, saved.Name)
	return true
}

func (m *Manager) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, q := range m.quotes {
		if q.ID == id {
			return i
		}
	}
	return -1
}

func (m *Manager) sync() {
	if m.OnSync != nil {
		m.OnSync(m.Quotes(), m.name, m.cursorID)
	}
}
