package store

import (
	"path/filepath"
	"testing"
	"time"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenInMemory(t *testing.T) {
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:): %v", err)
	}
	defer s.Close()
	if _, err := s.QuoteCount(); err != nil {
		t.Fatalf("QuoteCount on fresh store: %v", err)
	}
}

func TestReplaceQuotes(t *testing.T) {
	s := testStore(t)

	first := []QuoteRow{
		{ID: "q1", Text: "one", Author: "A", AuthorID: "a1", Work: "W", Year: 65, Seq: 0, Ordinal: 0},
		{ID: "q2", Text: "two", Author: "A", AuthorID: "a1", Work: "W", Satire: true, Seq: 1, Ordinal: 1},
	}
	if err := s.ReplaceQuotes(first); err != nil {
		t.Fatalf("ReplaceQuotes: %v", err)
	}

	count, err := s.QuoteCount()
	if err != nil || count != 2 {
		t.Fatalf("QuoteCount = %d, err %v", count, err)
	}

	q, ok, err := s.QuoteByID("q2")
	if err != nil || !ok {
		t.Fatalf("QuoteByID: ok=%v err=%v", ok, err)
	}
	if q.Text != "two" || !q.Satire {
		t.Errorf("row mismatch: %+v", q)
	}

	// Replace is wholesale: old rows must not survive.
	if err := s.ReplaceQuotes([]QuoteRow{{ID: "q3", Text: "three", Author: "B", AuthorID: "b1", Work: "X"}}); err != nil {
		t.Fatalf("ReplaceQuotes: %v", err)
	}
	if _, ok, _ := s.QuoteByID("q1"); ok {
		t.Error("old quote survived replacement")
	}
	rows, err := s.Quotes()
	if err != nil || len(rows) != 1 {
		t.Fatalf("Quotes after replace: %d rows, err %v", len(rows), err)
	}
}

func TestQuotesOrderedByOrdinal(t *testing.T) {
	s := testStore(t)
	rows := []QuoteRow{
		{ID: "q1", Text: "later", Author: "A", AuthorID: "a", Work: "W", Ordinal: 5},
		{ID: "q2", Text: "earlier", Author: "A", AuthorID: "a", Work: "W", Ordinal: 1},
	}
	if err := s.ReplaceQuotes(rows); err != nil {
		t.Fatalf("ReplaceQuotes: %v", err)
	}
	got, err := s.Quotes()
	if err != nil {
		t.Fatalf("Quotes: %v", err)
	}
	if got[0].ID != "q2" || got[1].ID != "q1" {
		t.Errorf("quotes not ordered by ordinal: %s, %s", got[0].ID, got[1].ID)
	}
}

func TestMembers(t *testing.T) {
	s := testStore(t)

	if err := s.AddMember(SetFavorites, "q1"); err != nil {
		t.Fatalf("AddMember: %v", err)
	}
	// Adding the same member twice must be idempotent.
	if err := s.AddMember(SetFavorites, "q1"); err != nil {
		t.Fatalf("AddMember (repeat): %v", err)
	}
	if err := s.AddMember(SetHidden, "q2"); err != nil {
		t.Fatalf("AddMember: %v", err)
	}

	favs, err := s.Members(SetFavorites)
	if err != nil {
		t.Fatalf("Members: %v", err)
	}
	if len(favs) != 1 || !favs["q1"] {
		t.Errorf("favorites = %v", favs)
	}

	// Sets are isolated from each other.
	hidden, _ := s.Members(SetHidden)
	if hidden["q1"] {
		t.Error("member leaked across sets")
	}

	if err := s.RemoveMember(SetFavorites, "q1"); err != nil {
		t.Fatalf("RemoveMember: %v", err)
	}
	favs, _ = s.Members(SetFavorites)
	if len(favs) != 0 {
		t.Errorf("favorites after removal = %v", favs)
	}

	// Removing a missing member is a no-op, not an error.
	if err := s.RemoveMember(SetFavorites, "nothere"); err != nil {
		t.Errorf("RemoveMember of absent member: %v", err)
	}
}

func TestRosterRoundTrip(t *testing.T) {
	s := testStore(t)

	empty, err := s.Roster()
	if err != nil {
		t.Fatalf("Roster on fresh store: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("fresh roster = %v", empty)
	}

	order := []string{"a1", "---", "b2", "c3"}
	if err := s.SaveRoster(order); err != nil {
		t.Fatalf("SaveRoster: %v", err)
	}
	got, err := s.Roster()
	if err != nil {
		t.Fatalf("Roster: %v", err)
	}
	if len(got) != len(order) {
		t.Fatalf("roster = %v, want %v", got, order)
	}
	for i := range order {
		if got[i] != order[i] {
			t.Fatalf("roster = %v, want %v", got, order)
		}
	}

	// Saving again replaces, never appends.
	if err := s.SaveRoster([]string{"b2", "---"}); err != nil {
		t.Fatalf("SaveRoster: %v", err)
	}
	got, _ = s.Roster()
	if len(got) != 2 || got[0] != "b2" {
		t.Errorf("roster after resave = %v", got)
	}
}

func TestSavedQueues(t *testing.T) {
	s := testStore(t)

	q1 := SavedQueue{ID: "id1", Name: "morning", QuoteIDs: []string{"a", "b", "c"}, CreatedAt: time.Now().Add(-time.Hour)}
	q2 := SavedQueue{ID: "id2", Name: "evening", QuoteIDs: []string{"c"}, CreatedAt: time.Now()}
	if err := s.SaveQueue(q1); err != nil {
		t.Fatalf("SaveQueue: %v", err)
	}
	if err := s.SaveQueue(q2); err != nil {
		t.Fatalf("SaveQueue: %v", err)
	}

	got, ok, err := s.SavedQueueByID("id1")
	if err != nil || !ok {
		t.Fatalf("SavedQueueByID: ok=%v err=%v", ok, err)
	}
	if got.Name != "morning" || len(got.QuoteIDs) != 3 || got.QuoteIDs[1] != "b" {
		t.Errorf("queue mismatch: %+v", got)
	}

	all, err := s.SavedQueues()
	if err != nil || len(all) != 2 {
		t.Fatalf("SavedQueues: %d, err %v", len(all), err)
	}

	if err := s.DeleteQueue("id1"); err != nil {
		t.Fatalf("DeleteQueue: %v", err)
	}
	if _, ok, _ := s.SavedQueueByID("id1"); ok {
		t.Error("deleted queue still present")
	}
	if _, ok, _ := s.SavedQueueByID("id2"); !ok {
		t.Error("delete removed the wrong queue")
	}
}

func TestSettings(t *testing.T) {
	s := testStore(t)

	v, err := s.GetSetting(SettingPendingOpen)
	if err != nil {
		t.Fatalf("GetSetting on fresh store: %v", err)
	}
	if v != "" {
		t.Errorf("unset setting = %q", v)
	}

	if err := s.SetSetting(SettingPendingOpen, "q1"); err != nil {
		t.Fatalf("SetSetting: %v", err)
	}
	if err := s.SetSetting(SettingPendingOpen, "q2"); err != nil {
		t.Fatalf("SetSetting (overwrite): %v", err)
	}
	v, _ = s.GetSetting(SettingPendingOpen)
	if v != "q2" {
		t.Errorf("setting = %q, want q2", v)
	}

	if err := s.DeleteSetting(SettingPendingOpen); err != nil {
		t.Fatalf("DeleteSetting: %v", err)
	}
	v, _ = s.GetSetting(SettingPendingOpen)
	if v != "" {
		t.Errorf("setting after delete = %q", v)
	}
}

func TestWidgetSnapshot(t *testing.T) {
	s := testStore(t)

	_, _, _, ok, err := s.WidgetSnapshot()
	if err != nil {
		t.Fatalf("WidgetSnapshot on fresh store: %v", err)
	}
	if ok {
		t.Error("fresh store should have no snapshot")
	}

	now := time.Now().Truncate(time.Second)
	if err := s.WriteWidgetSnapshot(3, []byte(`{"version":3}`), now); err != nil {
		t.Fatalf("WriteWidgetSnapshot: %v", err)
	}
	// The snapshot is a single row: a second write replaces it.
	if err := s.WriteWidgetSnapshot(4, []byte(`{"version":4}`), now.Add(time.Minute)); err != nil {
		t.Fatalf("WriteWidgetSnapshot: %v", err)
	}

	version, payload, updatedAt, ok, err := s.WidgetSnapshot()
	if err != nil || !ok {
		t.Fatalf("WidgetSnapshot: ok=%v err=%v", ok, err)
	}
	if version != 4 {
		t.Errorf("version = %d", version)
	}
	if string(payload) != `{"version":4}` {
		t.Errorf("payload = %s", payload)
	}
	if updatedAt.Before(now) {
		t.Errorf("updatedAt = %v", updatedAt)
	}
}
