package roster

import (
	"testing"

	"quotedeck/internal/library"
)

func authorsNamed(names ...string) []*library.Author {
	out := make([]*library.Author, len(names))
	for i, n := range names {
		out[i] = &library.Author{ID: library.AuthorID(n), Name: n}
	}
	return out
}

func id(name string) string { return library.AuthorID(name) }

// order flattens the roster to names with "---" for the divider, for
// readable assertions.
func order(r *Roster) []string {
	var out []string
	for _, e := range r.Entries() {
		if e.Divider {
			out = append(out, DividerToken)
		} else {
			out = append(out, e.Name)
		}
	}
	return out
}

func assertOrder(t *testing.T, r *Roster, want ...string) {
	t.Helper()
	got := order(r)
	if len(got) != len(want) {
		t.Fatalf("roster order %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("roster order %v, want %v", got, want)
		}
	}
}

func TestBuildDefaultOrder(t *testing.T) {
	r := Build(authorsNamed("Aristotle", "Seneca", "Mark Twain"), nil)

	// Priority authors active (matched by substring), the rest inactive by
	// name.
	assertOrder(t, r, "Seneca", "Mark Twain", DividerToken, "Aristotle")
	if !r.IsActive(id("Seneca")) {
		t.Error("Seneca should be active by default")
	}
	if r.IsActive(id("Aristotle")) {
		t.Error("Aristotle should be inactive by default")
	}
}

func TestBuildFromSavedOrder(t *testing.T) {
	authors := authorsNamed("A", "B", "C")
	saved := []string{id("C"), DividerToken, id("A"), id("B")}
	r := Build(authors, saved)
	assertOrder(t, r, "C", DividerToken, "A", "B")
}

func TestBuildDropsUnknownAndDuplicateIDs(t *testing.T) {
	authors := authorsNamed("A", "B")
	saved := []string{id("A"), "deadbeefdeadbeef", id("A"), DividerToken, id("B")}
	r := Build(authors, saved)
	assertOrder(t, r, "A", DividerToken, "B")
}

func TestBuildNewAuthorsAppendInactive(t *testing.T) {
	authors := authorsNamed("A", "B", "New2", "New1")
	saved := []string{id("A"), DividerToken, id("B")}
	r := Build(authors, saved)
	// Missing authors land after everything, sorted by name, hence inactive.
	assertOrder(t, r, "A", DividerToken, "B", "New1", "New2")
	if r.IsActive(id("New1")) {
		t.Error("new author should default to inactive")
	}
}

func TestBuildRepairsMissingDivider(t *testing.T) {
	authors := authorsNamed("A", "B")
	r := Build(authors, []string{id("A"), id("B")})
	// No divider in the saved order: everything becomes inactive.
	assertOrder(t, r, DividerToken, "A", "B")
}

func TestBuildCollapsesExtraDividers(t *testing.T) {
	authors := authorsNamed("A", "B")
	r := Build(authors, []string{id("A"), DividerToken, DividerToken, id("B")})
	assertOrder(t, r, "A", DividerToken, "B")
}

func TestToggleActive(t *testing.T) {
	authors := authorsNamed("A", "B", "C")
	r := Build(authors, []string{id("A"), id("B"), DividerToken, id("C")})

	// Inactive -> front of the active region.
	r.ToggleActive(id("C"))
	assertOrder(t, r, "C", "A", "B", DividerToken)

	// Active -> end of the inactive region.
	r.ToggleActive(id("C"))
	assertOrder(t, r, "A", "B", DividerToken, "C")

	// Unknown ID is a no-op.
	r.ToggleActive("deadbeefdeadbeef")
	assertOrder(t, r, "A", "B", DividerToken, "C")
}

func TestActiveIDsStopAtDivider(t *testing.T) {
	authors := authorsNamed("A", "B", "C")
	r := Build(authors, []string{id("A"), DividerToken, id("B"), id("C")})
	ids := r.ActiveIDs()
	if len(ids) != 1 || ids[0] != id("A") {
		t.Errorf("ActiveIDs = %v, want [%s]", ids, id("A"))
	}
}

func TestMoveSingleEntry(t *testing.T) {
	authors := authorsNamed("A", "B", "C")
	r := Build(authors, []string{id("A"), id("B"), DividerToken, id("C")})

	// Move C (index 3) above the divider (to index 1): it becomes active.
	r.Move([]int{3}, 1)
	assertOrder(t, r, "A", "C", "B", DividerToken)
	if !r.IsActive(id("C")) {
		t.Error("C should be active after moving above the divider")
	}
}

func TestMoveDivider(t *testing.T) {
	authors := authorsNamed("A", "B", "C")
	r := Build(authors, []string{id("A"), id("B"), DividerToken, id("C")})

	// Drag the divider to the top: everyone becomes inactive.
	r.Move([]int{2}, 0)
	assertOrder(t, r, DividerToken, "A", "B", "C")
	if len(r.ActiveIDs()) != 0 {
		t.Errorf("expected no active authors, got %v", r.ActiveIDs())
	}
}

func TestMoveMultipleEntries(t *testing.T) {
	authors := authorsNamed("A", "B", "C", "D")
	r := Build(authors, []string{id("A"), id("B"), id("C"), DividerToken, id("D")})

	// Move B and C together after the divider. The target index counts
	// against the list with the moved rows removed: [A, ---, D].
	r.Move([]int{1, 2}, 2)
	assertOrder(t, r, "A", DividerToken, "B", "C", "D")
}

func TestMoveOutOfRangeIgnored(t *testing.T) {
	authors := authorsNamed("A", "B")
	r := Build(authors, []string{id("A"), DividerToken, id("B")})
	r.Move([]int{99}, 0)
	assertOrder(t, r, "A", DividerToken, "B")
}

func TestEncodeRoundTrip(t *testing.T) {
	authors := authorsNamed("A", "B", "C")
	saved := []string{id("B"), DividerToken, id("C"), id("A")}
	r := Build(authors, saved)

	encoded := r.Encode()
	again := Build(authors, encoded)
	assertOrder(t, again, order(r)...)
}
