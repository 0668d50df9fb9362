package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"quotedeck/internal/coord"
	"quotedeck/internal/library"
)

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func testQuotes() []library.Quote {
	return []library.Quote{
		{ID: "q1", Text: "first quote", Author: "Seneca", Work: "Letters"},
		{ID: "q2", Text: "second quote", Author: "Seneca", Work: "Letters"},
		{ID: "q3", Text: "third quote", Author: "Twain", Work: "Essays"},
	}
}

func newTestApp() *App {
	app := NewApp(Config{
		IsFavorite: func(string) bool { return false },
		ShowSatire: func() bool { return true },
	})
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return app
}

func loadQueue(app *App, quotes []library.Quote) {
	app.Update(QueueLoaded{Quotes: quotes, Name: "Feed"})
	app.loading = false
}

func TestQueueLoadedReplacesReader(t *testing.T) {
	app := newTestApp()
	loadQueue(app, testQuotes())

	if app.queueName != "Feed" || len(app.quotes) != 3 || app.index != 0 {
		t.Fatalf("state after load: name=%q len=%d index=%d", app.queueName, len(app.quotes), app.index)
	}
	view := app.View()
	if !strings.Contains(view, "first quote") {
		t.Error("view does not show the first quote")
	}
}

func TestQueueLoadedHonorsCursor(t *testing.T) {
	app := newTestApp()
	app.Update(QueueLoaded{Quotes: testQuotes(), Name: "Feed", Cursor: "q3"})
	if app.index != 2 {
		t.Errorf("index = %d, want cursor position", app.index)
	}
}

func TestNavigationClampsAtEdges(t *testing.T) {
	app := newTestApp()
	loadQueue(app, testQuotes())

	app.Update(keyMsg("k")) // prev at the start is a no-op
	if app.index != 0 {
		t.Errorf("index = %d after prev at start", app.index)
	}

	app.Update(keyMsg("j"))
	app.Update(keyMsg("j"))
	app.Update(keyMsg("j")) // next at the end is a no-op
	if app.index != 2 {
		t.Errorf("index = %d, want clamped at 2", app.index)
	}
}

func TestNavigationReportsAdvance(t *testing.T) {
	var advanced []string
	app := newTestApp()
	app.cfg.Advance = func(id string) tea.Cmd {
		advanced = append(advanced, id)
		return nil
	}
	loadQueue(app, testQuotes())

	app.Update(keyMsg("j"))
	app.Update(keyMsg("j"))
	if len(advanced) != 2 || advanced[0] != "q2" || advanced[1] != "q3" {
		t.Errorf("advanced = %v", advanced)
	}
}

func TestStaleGenerationIgnored(t *testing.T) {
	applied := 0
	app := newTestApp()
	app.cfg.ApplyLoad = func(msg coord.LoadComplete) tea.Cmd {
		applied++
		return nil
	}

	cat := library.NewCatalog(nil)
	app.Update(coord.LoadComplete{Catalog: cat, Generation: 5})
	app.Update(coord.LoadComplete{Catalog: cat, Generation: 3}) // stale
	app.Update(coord.LoadComplete{Catalog: cat, Generation: 6})

	if applied != 2 {
		t.Errorf("ApplyLoad called %d times, want stale generation dropped", applied)
	}
	if app.lastGen != 6 {
		t.Errorf("lastGen = %d", app.lastGen)
	}
}

func TestModeSwitching(t *testing.T) {
	rosterLoads := 0
	app := newTestApp()
	app.cfg.LoadRoster = func() tea.Cmd {
		rosterLoads++
		return nil
	}
	app.cfg.BuildMain = func() tea.Cmd { return nil }
	loadQueue(app, testQuotes())

	app.Update(keyMsg("r"))
	if app.mode != modeRoster {
		t.Fatalf("mode = %v after r", app.mode)
	}
	if rosterLoads != 1 {
		t.Errorf("roster loaded %d times", rosterLoads)
	}

	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if app.mode != modeReader {
		t.Errorf("mode = %v after esc", app.mode)
	}
}

func TestHideRemovesCurrentLocally(t *testing.T) {
	var hidden []string
	app := newTestApp()
	app.cfg.ToggleHidden = func(id string) tea.Cmd {
		hidden = append(hidden, id)
		return nil
	}
	loadQueue(app, testQuotes())

	app.Update(keyMsg("x"))
	if len(hidden) != 1 || hidden[0] != "q1" {
		t.Fatalf("hidden = %v", hidden)
	}
	if len(app.quotes) != 2 || app.quotes[0].ID != "q2" {
		t.Errorf("local queue after hide: len=%d first=%s", len(app.quotes), app.quotes[0].ID)
	}
	// The following card is now current.
	view := app.View()
	if !strings.Contains(view, "second quote") {
		t.Error("next card not shown after hide")
	}
}

func TestEmptyQueueView(t *testing.T) {
	app := newTestApp()
	loadQueue(app, nil)
	if !strings.Contains(app.View(), "queue is empty") {
		t.Error("empty queue message missing")
	}
}

func TestStatusFlash(t *testing.T) {
	app := newTestApp()
	loadQueue(app, testQuotes())
	app.Update(Status{Text: "★ favorited"})
	if !strings.Contains(app.View(), "★ favorited") {
		t.Error("flash not rendered in status bar")
	}
}
