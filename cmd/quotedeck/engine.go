package main

import (
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"quotedeck/internal/config"
	"quotedeck/internal/coord"
	"quotedeck/internal/feed"
	"quotedeck/internal/library"
	"quotedeck/internal/logging"
	"quotedeck/internal/prefs"
	"quotedeck/internal/queue"
	"quotedeck/internal/roster"
	"quotedeck/internal/store"
	"quotedeck/internal/ui"
	"quotedeck/internal/widget"
)

// engine owns the mutable session state behind the UI: catalog, roster,
// preference sets, the active queue and the widget publisher. UI commands
// run on their own goroutines, so every entry point locks.
type engine struct {
	mu   sync.Mutex
	st   *store.Store
	cfg  *config.Config
	cat  *library.Catalog
	ros  *roster.Roster
	sets *prefs.Sets
	mgr  *queue.Manager
	pub  *widget.Publisher

	firstLoad bool
}

func newEngine(st *store.Store, cfg *config.Config, sets *prefs.Sets) *engine {
	e := &engine{
		st:        st,
		cfg:       cfg,
		cat:       library.NewCatalog(nil),
		ros:       roster.Build(nil, nil),
		sets:      sets,
		mgr:       queue.NewManager(),
		pub:       widget.NewPublisher(st),
		firstLoad: true,
	}
	e.mgr.OnSync = func(quotes []library.Quote, name, cursorID string) {
		e.pub.Publish(quotes, name, cursorID, sets.Members(store.SetFavorites))
	}
	e.mgr.OnViewed = func(quoteID string) {
		sets.Add(store.SetViewed, quoteID)
	}
	return e
}

// uiConfig binds every UI action to an engine method.
func (e *engine) uiConfig() ui.Config {
	return ui.Config{
		BuildMain:      func() tea.Cmd { return e.buildCmd(config.LaunchMain) },
		BuildAll:       func() tea.Cmd { return e.buildCmd(config.LaunchAll) },
		BuildFavorites: func() tea.Cmd { return e.buildCmd(config.LaunchFavorites) },
		BuildStarred:   func() tea.Cmd { return e.buildCmd(config.LaunchStarred) },
		Shuffle:        func() tea.Cmd { return cmd(e.shuffle) },

		ToggleFavorite: func(id string) tea.Cmd { return cmd(func() tea.Msg { return e.toggleFavorite(id) }) },
		ToggleStarred:  func(id string) tea.Cmd { return cmd(func() tea.Msg { return e.toggleStarred(id) }) },
		ToggleHidden:   func(id string) tea.Cmd { return cmd(func() tea.Msg { return e.toggleQuoteSet(store.SetHidden, id, "hidden") }) },
		ToggleNotBased: func(id string) tea.Cmd { return cmd(func() tea.Msg { return e.toggleQuoteSet(store.SetNotBased, id, "not based") }) },
		ExcludeWork:    func(authorID, work string) tea.Cmd { return cmd(func() tea.Msg { return e.excludeWork(work) }) },
		ToggleSatire:   func() tea.Cmd { return cmd(e.toggleSatire) },
		ToggleBookKind: func(id string) tea.Cmd { return cmd(func() tea.Msg { return e.toggleBookKind(id) }) },
		Advance:        func(id string) tea.Cmd { return cmd(func() tea.Msg { return e.advance(id) }) },

		SaveQueue:    func(name string) tea.Cmd { return cmd(func() tea.Msg { return e.saveQueue(name) }) },
		RestoreQueue: func(id string) tea.Cmd { return cmd(func() tea.Msg { return e.restoreQueue(id) }) },
		DeleteQueue:  func(id string) tea.Cmd { return cmd(func() tea.Msg { return e.deleteQueue(id) }) },
		LoadQueues:   func() tea.Cmd { return cmd(e.loadQueues) },

		LoadRoster:   func() tea.Cmd { return cmd(e.loadRoster) },
		RosterToggle: func(id string) tea.Cmd { return cmd(func() tea.Msg { return e.rosterToggle(id) }) },
		RosterMove:   func(from, to int) tea.Cmd { return cmd(func() tea.Msg { return e.rosterMove(from, to) }) },

		ApplyLoad: func(msg coord.LoadComplete) tea.Cmd { return cmd(func() tea.Msg { return e.applyLoad(msg) }) },

		IsFavorite:   e.isFavorite,
		IsBookAuthor: e.isBookAuthor,
		ShowSatire:   e.showSatire,
	}
}

// cmd adapts a message-producing func into a tea.Cmd.
func cmd(f func() tea.Msg) tea.Cmd {
	return f
}

// applyLoad installs a freshly loaded catalog: reconcile the roster against
// it, then build the startup queue (first load honors the launch option and
// any pending deep-link open) or rebuild the current queue in place.
func (e *engine) applyLoad(msg coord.LoadComplete) tea.Msg {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.cat = msg.Catalog

	savedOrder, err := e.st.Roster()
	if err != nil {
		logging.Warn("failed to read saved roster order", "error", err)
	}
	e.ros = roster.Build(e.cat.Authors(), savedOrder)
	if err := e.st.SaveRoster(e.ros.Encode()); err != nil {
		logging.Warn("failed to persist roster order", "error", err)
	}

	if e.firstLoad {
		e.firstLoad = false
		if msg := e.consumePendingOpen(); msg != nil {
			return msg
		}
		return e.buildLaunch(e.cfg.Launch)
	}

	// Live reload: rebuild whatever queue is showing, keeping the cursor
	// when its quote survived the reload.
	return e.rebuildCurrent()
}

// consumePendingOpen handles a deep-link open request left by qdctl: jump
// to the named quote in the all-quotes queue. The setting is one-shot.
func (e *engine) consumePendingOpen() tea.Msg {
	id, err := e.st.GetSetting(store.SettingPendingOpen)
	if err != nil || id == "" {
		return nil
	}
	if err := e.st.DeleteSetting(store.SettingPendingOpen); err != nil {
		logging.Warn("failed to clear pending open", "error", err)
	}
	if _, ok := e.cat.QuoteByID(id); !ok {
		logging.Info("pending open quote no longer in library", "quote", id)
		return nil
	}
	quotes, name := feed.BuildAll(e.cat,
		e.sets.Members(store.SetHidden), e.sets.Members(store.SetNotBased), e.cfg.ShowSatire)
	e.mgr.SetQueue(quotes, name)
	if q, ok := e.cat.QuoteByID(id); ok {
		e.mgr.Advance(q)
	}
	logging.Info("opened quote from deep link", "quote", id)
	return ui.QueueLoaded{Quotes: e.mgr.Quotes(), Name: name, Cursor: id}
}

// buildCmd builds one of the named queues and persists it as the launch
// option.
func (e *engine) buildCmd(launch string) tea.Cmd {
	return cmd(func() tea.Msg {
		e.mu.Lock()
		defer e.mu.Unlock()
		msg := e.buildLaunch(launch)
		e.cfg.Launch = launch
		if err := e.cfg.Save(); err != nil {
			logging.Warn("failed to persist launch option", "error", err)
		}
		return msg
	})
}

// buildLaunch builds the queue for a launch option. Callers hold the lock.
func (e *engine) buildLaunch(launch string) tea.Msg {
	if id, ok := strings.CutPrefix(launch, config.LaunchSavedPrefix); ok {
		if msg := e.restoreLocked(id); msg != nil {
			return msg
		}
		launch = config.LaunchMain
	}

	var quotes []library.Quote
	var name string
	switch launch {
	case config.LaunchAll:
		quotes, name = feed.BuildAll(e.cat,
			e.sets.Members(store.SetHidden), e.sets.Members(store.SetNotBased), e.cfg.ShowSatire)
	case config.LaunchFavorites:
		quotes, name = feed.BuildFavorites(e.cat,
			e.sets.Members(store.SetFavorites), e.sets.Members(store.SetHidden))
	case config.LaunchStarred:
		quotes, name = feed.BuildStarred(e.cat,
			e.sets.Members(store.SetStarred), e.sets.Members(store.SetHidden))
	default:
		quotes, name = feed.BuildMain(e.cat, e.filters())
	}
	e.mgr.SetQueue(quotes, name)
	return ui.QueueLoaded{Quotes: quotes, Name: name}
}

// rebuildCurrent rebuilds the active queue from the current catalog and
// filters, preserving the cursor where possible. Callers hold the lock.
func (e *engine) rebuildCurrent() tea.Msg {
	cursor := ""
	if q, ok := e.mgr.Current(); ok {
		cursor = q.ID
	}

	var launch string
	switch e.mgr.Name() {
	case feed.NameAll:
		launch = config.LaunchAll
	case feed.NameFavorites:
		launch = config.LaunchFavorites
	case feed.NameStarred:
		launch = config.LaunchStarred
	default:
		// Main feed, or a restored saved queue: the persisted launch
		// option still names it, so rebuilding from that re-restores
		// saved queues instead of dumping the user back into the feed.
		launch = e.cfg.Launch
	}
	msg := e.buildLaunch(launch)
	loaded, ok := msg.(ui.QueueLoaded)
	if !ok {
		return msg
	}
	for _, q := range loaded.Quotes {
		if q.ID == cursor {
			loaded.Cursor = cursor
			if cq, ok := e.cat.QuoteByID(cursor); ok {
				e.mgr.Advance(cq)
			}
			break
		}
	}
	return loaded
}

// filters snapshots the main-feed filter state. Callers hold the lock.
func (e *engine) filters() feed.Filters {
	active := make(map[string]bool)
	for _, id := range e.ros.ActiveIDs() {
		active[id] = true
	}
	return feed.Filters{
		ActiveAuthors: active,
		ExcludedWorks: e.sets.Members(store.SetExcludedWorks),
		NotBased:      e.sets.Members(store.SetNotBased),
		Hidden:        e.sets.Members(store.SetHidden),
		ShowSatire:    e.cfg.ShowSatire,
	}
}

func (e *engine) shuffle() tea.Msg {
	e.mu.Lock()
	defer e.mu.Unlock()
	quotes := feed.Shuffle(e.mgr.Quotes())
	e.mgr.SetQueue(quotes, e.mgr.Name())
	return ui.QueueLoaded{Quotes: quotes, Name: e.mgr.Name()}
}

func (e *engine) toggleFavorite(quoteID string) tea.Msg {
	e.mu.Lock()
	defer e.mu.Unlock()
	on := e.sets.Toggle(store.SetFavorites, quoteID)
	e.publish()
	if on {
		return ui.Status{Text: "★ favorited"}
	}
	return ui.Status{Text: "unfavorited"}
}

func (e *engine) toggleStarred(authorID string) tea.Msg {
	e.mu.Lock()
	defer e.mu.Unlock()
	on := e.sets.Toggle(store.SetStarred, authorID)
	name := authorID
	if a, ok := e.cat.AuthorByID(authorID); ok {
		name = a.Name
	}
	if on {
		return ui.Status{Text: "starred " + name}
	}
	return ui.Status{Text: "unstarred " + name}
}

// toggleQuoteSet backs hide and not-based: flip membership and mirror the
// UI's local removal in the queue manager.
func (e *engine) toggleQuoteSet(set, quoteID, label string) tea.Msg {
	e.mu.Lock()
	defer e.mu.Unlock()
	on := e.sets.Toggle(set, quoteID)
	if on {
		if q, ok := e.cat.QuoteByID(quoteID); ok {
			e.mgr.Remove(q)
		}
		return ui.Status{Text: "marked " + label}
	}
	return ui.Status{Text: "unmarked " + label}
}

// excludeWork toggles a work's exclusion and rebuilds the current queue so
// every quote from that work leaves (or rejoins) at once.
func (e *engine) excludeWork(work string) tea.Msg {
	e.mu.Lock()
	defer e.mu.Unlock()
	on := e.sets.Toggle(store.SetExcludedWorks, work)
	logging.Info("work exclusion toggled", "work", work, "excluded", on)
	return e.rebuildCurrent()
}

func (e *engine) toggleSatire() tea.Msg {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cfg.ShowSatire = !e.cfg.ShowSatire
	if err := e.cfg.Save(); err != nil {
		logging.Warn("failed to persist satire toggle", "error", err)
	}
	return e.rebuildCurrent()
}

// The read closures run on the UI goroutine during View, concurrently with
// command goroutines, so they take the lock like everything else.

func (e *engine) isFavorite(quoteID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sets.Has(store.SetFavorites, quoteID)
}

func (e *engine) showSatire() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cfg.ShowSatire
}

// isBookAuthor reports whether an author reads as a book (the folder is a
// source in itself) rather than a person. Single-work authors default to
// book; membership in the override set flips the default either way.
func (e *engine) isBookAuthor(authorID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.bookKindLocked(authorID)
}

func (e *engine) bookKindLocked(authorID string) bool {
	base := false
	if a, ok := e.cat.AuthorByID(authorID); ok {
		base = a.SingleWork
	}
	if e.sets.Has(store.SetBookAuthors, authorID) {
		return !base
	}
	return base
}

func (e *engine) toggleBookKind(authorID string) tea.Msg {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sets.Toggle(store.SetBookAuthors, authorID)
	if e.bookKindLocked(authorID) {
		return ui.Status{Text: "author shown as book"}
	}
	return ui.Status{Text: "author shown as figure"}
}

func (e *engine) advance(quoteID string) tea.Msg {
	e.mu.Lock()
	defer e.mu.Unlock()
	q, ok := e.cat.QuoteByID(quoteID)
	if !ok {
		return nil
	}
	e.mgr.Advance(q)
	e.publish()
	return nil
}

func (e *engine) saveQueue(name string) tea.Msg {
	e.mu.Lock()
	defer e.mu.Unlock()
	sq := e.mgr.Save(name)
	if err := e.st.SaveQueue(sq); err != nil {
		return ui.QueueSaved{Err: err}
	}
	logging.Info("queue saved", "name", name, "quotes", len(sq.QuoteIDs))
	return ui.QueueSaved{Queue: sq}
}

func (e *engine) restoreQueue(queueID string) tea.Msg {
	e.mu.Lock()
	defer e.mu.Unlock()
	if msg := e.restoreLocked(queueID); msg != nil {
		e.cfg.Launch = config.LaunchSavedPrefix + queueID
		if err := e.cfg.Save(); err != nil {
			logging.Warn("failed to persist launch option", "error", err)
		}
		return msg
	}
	return ui.Status{Text: "queue no longer resolves against the library"}
}

// restoreLocked restores a saved queue, returning nil when it cannot be
// restored. Callers hold the lock.
func (e *engine) restoreLocked(queueID string) tea.Msg {
	sq, ok, err := e.st.SavedQueueByID(queueID)
	if err != nil {
		return ui.QueueLoaded{Err: err}
	}
	if !ok {
		return nil
	}
	if !e.mgr.Restore(sq, e.cat) {
		return nil
	}
	cursor := ""
	if q, ok := e.mgr.Current(); ok {
		cursor = q.ID
	}
	return ui.QueueLoaded{Quotes: e.mgr.Quotes(), Name: sq.Name, Cursor: cursor}
}

func (e *engine) deleteQueue(queueID string) tea.Msg {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.st.DeleteQueue(queueID); err != nil {
		return ui.Status{Text: "delete failed: " + err.Error()}
	}
	if e.cfg.Launch == config.LaunchSavedPrefix+queueID {
		e.cfg.Launch = config.LaunchMain
		if err := e.cfg.Save(); err != nil {
			logging.Warn("failed to persist launch option", "error", err)
		}
	}
	return e.loadQueuesLocked()
}

func (e *engine) loadQueues() tea.Msg {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loadQueuesLocked()
}

func (e *engine) loadQueuesLocked() tea.Msg {
	queues, err := e.st.SavedQueues()
	if err != nil {
		return ui.Status{Text: "cannot list saved queues: " + err.Error()}
	}
	return ui.QueuesLoaded{Queues: queues}
}

func (e *engine) loadRoster() tea.Msg {
	e.mu.Lock()
	defer e.mu.Unlock()
	return ui.RosterLoaded{Entries: e.ros.Entries()}
}

func (e *engine) rosterToggle(authorID string) tea.Msg {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ros.ToggleActive(authorID)
	e.persistRoster()
	return ui.RosterLoaded{Entries: e.ros.Entries()}
}

func (e *engine) rosterMove(from, to int) tea.Msg {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ros.Move([]int{from}, to)
	e.persistRoster()
	return ui.RosterLoaded{Entries: e.ros.Entries()}
}

func (e *engine) persistRoster() {
	if err := e.st.SaveRoster(e.ros.Encode()); err != nil {
		logging.Warn("failed to persist roster order", "error", err)
	}
}

// publish pushes the current queue state to the widget snapshot.
func (e *engine) publish() {
	cursor := ""
	if q, ok := e.mgr.Current(); ok {
		cursor = q.ID
	}
	e.pub.Publish(e.mgr.Quotes(), e.mgr.Name(), cursor, e.sets.Members(store.SetFavorites))
}

// shutdown flushes whatever the throttle held back.
func (e *engine) shutdown() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pub.Flush()
}
