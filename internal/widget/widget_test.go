package widget

import (
	"path/filepath"
	"testing"
	"time"

	"quotedeck/internal/library"
	"quotedeck/internal/store"
)

func testStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func sampleQuotes() []library.Quote {
	return []library.Quote{
		{ID: "q1", Text: "first", Author: "Seneca", Work: "Letters"},
		{ID: "q2", Text: "second", Author: "Seneca", Work: "Letters"},
		{ID: "q3", Text: "third", Author: "Twain", Work: "Essays"},
	}
}

func TestPublishLoadRoundTrip(t *testing.T) {
	st := testStore(t)
	pub := NewPublisher(st)
	reader := NewReader(st)

	favorites := map[string]bool{"q2": true}
	pub.Publish(sampleQuotes(), "Feed", "q2", favorites)

	snap, ok, err := reader.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !ok {
		t.Fatal("snapshot not published")
	}
	if snap.QueueName != "Feed" || snap.CursorID != "q2" {
		t.Errorf("snapshot header: %q cursor %q", snap.QueueName, snap.CursorID)
	}
	if len(snap.Quotes) != 3 {
		t.Fatalf("snapshot quotes = %d", len(snap.Quotes))
	}
	if snap.Quotes[0].Position != 1 || snap.Quotes[0].Total != 3 {
		t.Errorf("position fields: %d/%d", snap.Quotes[0].Position, snap.Quotes[0].Total)
	}
	if len(snap.FavoriteIDs) != 1 || snap.FavoriteIDs[0] != "q2" {
		t.Errorf("favorite IDs: %v", snap.FavoriteIDs)
	}
}

func TestLoadNeverPublished(t *testing.T) {
	reader := NewReader(testStore(t))
	_, ok, err := reader.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ok {
		t.Error("fresh store should report no snapshot")
	}
}

func TestLoadCorruptSnapshot(t *testing.T) {
	st := testStore(t)
	if err := st.WriteWidgetSnapshot(1, []byte("{not json"), time.Now()); err != nil {
		t.Fatalf("WriteWidgetSnapshot: %v", err)
	}
	_, ok, err := NewReader(st).Load()
	if err != nil {
		t.Fatalf("corrupt payload should not error: %v", err)
	}
	if ok {
		t.Error("corrupt payload should read as never-published")
	}
}

func TestPublishThrottleAndFlush(t *testing.T) {
	st := testStore(t)
	pub := NewPublisher(st)
	reader := NewReader(st)

	// First publish passes the limiter and lands immediately.
	pub.Publish(sampleQuotes(), "Feed", "q1", nil)
	// Rapid follow-ups are throttled: the store keeps the first version.
	pub.Publish(sampleQuotes(), "Feed", "q2", nil)
	pub.Publish(sampleQuotes(), "Feed", "q3", nil)

	snap, ok, err := reader.Load()
	if err != nil || !ok {
		t.Fatalf("Load: ok=%v err=%v", ok, err)
	}
	if snap.CursorID != "q1" {
		t.Errorf("throttled publishes reached the store: cursor %q", snap.CursorID)
	}

	// Flush writes the newest pending state.
	pub.Flush()
	snap, _, err = reader.Load()
	if err != nil {
		t.Fatalf("Load after flush: %v", err)
	}
	if snap.CursorID != "q3" {
		t.Errorf("flush did not write the latest state: cursor %q", snap.CursorID)
	}
	if snap.Version != 3 {
		t.Errorf("version = %d, want 3", snap.Version)
	}
}

func TestRotation(t *testing.T) {
	st := testStore(t)
	reader := NewReader(st)

	if reader.Rotation() != 0 {
		t.Errorf("fresh rotation = %d", reader.Rotation())
	}
	if n := reader.Rotate(); n != 1 {
		t.Errorf("Rotate = %d", n)
	}
	if n := reader.Rotate(); n != 2 {
		t.Errorf("second Rotate = %d", n)
	}
	if reader.Rotation() != 2 {
		t.Errorf("persisted rotation = %d", reader.Rotation())
	}
}

func TestCurrentWrapsAround(t *testing.T) {
	st := testStore(t)
	pub := NewPublisher(st)
	reader := NewReader(st)

	pub.Publish(sampleQuotes(), "Feed", "q1", nil)
	snap, _, _ := reader.Load()

	q, ok := reader.Current(snap)
	if !ok || q.ID != "q1" {
		t.Fatalf("Current = %v ok=%v", q, ok)
	}

	for i := 0; i < 4; i++ {
		reader.Rotate()
	}
	// Rotation 4 over 3 quotes wraps to index 1.
	q, ok = reader.Current(snap)
	if !ok || q.ID != "q2" {
		t.Errorf("Current after wrap = %v", q.ID)
	}
}

func TestCurrentEmptySnapshot(t *testing.T) {
	reader := NewReader(testStore(t))
	if _, ok := reader.Current(Snapshot{}); ok {
		t.Error("empty snapshot should have no current quote")
	}
}
