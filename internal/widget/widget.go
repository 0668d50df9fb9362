// Package widget is the data boundary between the reader app and the
// widget renderer.
//
// The two processes share the SQLite store without locking, so the boundary
// is explicit about ownership: the app's Publisher is the only writer of the
// snapshot row, the widget's Reader only reads it. The widget owns exactly
// one key of its own (the rotation index). Everything is last-writer-wins
// and eventually consistent; a stale read renders a slightly old quote,
// never an error.
package widget

import (
	"encoding/json"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"quotedeck/internal/library"
	"quotedeck/internal/logging"
	"quotedeck/internal/store"
)

// publishInterval throttles snapshot writes so a user holding the next key
// doesn't turn every cursor move into a disk write.
const publishInterval = 2 * time.Second

// SnapshotQuote is one rotation candidate in the published snapshot.
type SnapshotQuote struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Author   string `json:"author"`
	Work     string `json:"work"`
	Position int    `json:"position"`
	Total    int    `json:"total"`
}

// Snapshot is the full widget payload: the active queue plus favorite IDs,
// versioned so the reader can tell snapshots apart.
type Snapshot struct {
	Version     int64           `json:"version"`
	QueueName   string          `json:"queue_name"`
	CursorID    string          `json:"cursor_id"`
	Quotes      []SnapshotQuote `json:"quotes"`
	FavoriteIDs []string        `json:"favorite_ids"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Publisher writes snapshots. App side only.
type Publisher struct {
	st      *store.Store
	limiter *rate.Limiter
	version int64
	pending *Snapshot
}

// NewPublisher creates a throttled snapshot publisher.
func NewPublisher(st *store.Store) *Publisher {
	return &Publisher{
		st:      st,
		limiter: rate.NewLimiter(rate.Every(publishInterval), 1),
	}
}

// Publish records the queue state and, rate permitting, writes it to the
// store. Throttled calls keep the snapshot pending; Flush writes it out.
func (p *Publisher) Publish(quotes []library.Quote, name, cursorID string, favorites map[string]bool) {
	p.version++
	snap := &Snapshot{
		Version:   p.version,
		QueueName: name,
		CursorID:  cursorID,
		UpdatedAt: time.Now(),
	}
	total := len(quotes)
	for i, q := range quotes {
		snap.Quotes = append(snap.Quotes, SnapshotQuote{
			ID:       q.ID,
			Text:     q.Text,
			Author:   q.Author,
			Work:     q.Work,
			Position: i + 1,
			Total:    total,
		})
	}
	for id := range favorites {
		snap.FavoriteIDs = append(snap.FavoriteIDs, id)
	}

	p.pending = snap
	if p.limiter.Allow() {
		p.Flush()
	}
}

// Flush writes the pending snapshot, if any. Called on shutdown so the
// widget never misses the session's final state.
func (p *Publisher) Flush() {
	if p.pending == nil {
		return
	}
	payload, err := json.Marshal(p.pending)
	if err != nil {
		logging.Error("failed to marshal widget snapshot", "error", err)
		return
	}
	if err := p.st.WriteWidgetSnapshot(p.pending.Version, payload, p.pending.UpdatedAt); err != nil {
		logging.Warn("failed to write widget snapshot", "error", err)
		return
	}
	p.pending = nil
}

// Reader consumes snapshots. Widget side only.
type Reader struct {
	st *store.Store
}

// NewReader creates a snapshot reader.
func NewReader(st *store.Store) *Reader {
	return &Reader{st: st}
}

// Load returns the latest snapshot. ok is false when the app has never
// published one.
func (r *Reader) Load() (Snapshot, bool, error) {
	_, payload, _, ok, err := r.st.WidgetSnapshot()
	if err != nil || !ok {
		return Snapshot{}, false, err
	}
	var snap Snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		// Corrupt payload: treat as never published rather than failing.
		logging.Warn("discarding unreadable widget snapshot", "error", err)
		return Snapshot{}, false, nil
	}
	return snap, true, nil
}

// Rotation returns the widget's current rotation index.
func (r *Reader) Rotation() int {
	v, err := r.st.GetSetting(store.SettingWidgetRotation)
	if err != nil || v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

// Rotate advances the rotation index and persists it. This is the one
// widget-side write, on a key the app never touches.
func (r *Reader) Rotate() int {
	n := r.Rotation() + 1
	if err := r.st.SetSetting(store.SettingWidgetRotation, strconv.Itoa(n)); err != nil {
		logging.Warn("failed to persist widget rotation", "error", err)
	}
	return n
}

// Current picks the quote the widget should render: the rotation index
// walking the snapshot queue, wrapping around. ok is false on an empty
// snapshot.
func (r *Reader) Current(snap Snapshot) (SnapshotQuote, bool) {
	if len(snap.Quotes) == 0 {
		return SnapshotQuote{}, false
	}
	return snap.Quotes[r.Rotation()%len(snap.Quotes)], true
}
