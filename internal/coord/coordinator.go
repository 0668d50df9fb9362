// Package coord runs library loads off the UI goroutine.
//
// Loads are one-shot background tasks: the coordinator parses the library,
// persists the quote snapshot and reports completion into the running
// Bubble Tea program. A monotonic generation counter guards overlap - if a
// reload starts while an earlier load is still parsing, the earlier result
// is discarded when it finally lands, so a slow stale load can never
// overwrite a newer one.
package coord

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"quotedeck/internal/library"
	"quotedeck/internal/loader"
	"quotedeck/internal/logging"
	"quotedeck/internal/store"
)

// reloadDebounce coalesces bursts of filesystem events into one reload.
const reloadDebounce = 500 * time.Millisecond

// LoadComplete is sent to the program when a load pass finishes.
type LoadComplete struct {
	Catalog    *library.Catalog
	Generation uint64
	Err        error
}

// sender is the tea.Program surface the coordinator needs. Interface for
// testing.
type sender interface {
	Send(tea.Msg)
}

// loadFunc parses a library root. Injectable for testing.
type loadFunc func(ctx context.Context, root string) (*library.Catalog, error)

// Coordinator manages background library loads.
// Uses context cancellation as the only stop mechanism.
type Coordinator struct {
	root string
	st   *store.Store
	load loadFunc
	gen  atomic.Uint64
	wg   sync.WaitGroup
}

// NewCoordinator creates a coordinator for the given library root.
func NewCoordinator(root string, st *store.Store) *Coordinator {
	return &Coordinator{root: root, st: st, load: loader.Load}
}

// newCoordinatorWithLoader allows injecting a custom loader (for testing).
func newCoordinatorWithLoader(root string, st *store.Store, load loadFunc) *Coordinator {
	return &Coordinator{root: root, st: st, load: load}
}

// Start kicks off the initial load and begins watching the library root for
// changes. Call with a cancellable context.
func (c *Coordinator) Start(ctx context.Context, program sender) {
	c.Reload(ctx, program)
	c.watch(ctx, program)
}

// Reload starts a new load pass in the background. Any load already in
// flight is superseded: its result will carry a stale generation and be
// dropped on completion.
func (c *Coordinator) Reload(ctx context.Context, program sender) {
	gen := c.gen.Add(1)
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		cat, err := c.load(ctx, c.root)
		if gen != c.gen.Load() {
			logging.Debug("discarding superseded load", "generation", gen)
			return
		}
		if err == nil && c.st != nil {
			if serr := c.snapshot(cat); serr != nil {
				logging.Warn("failed to persist quote snapshot", "error", serr)
			}
		}
		if program != nil {
			program.Send(LoadComplete{Catalog: cat, Generation: gen, Err: err})
		}
	}()
}

// snapshot writes the loaded quotes to the shared store for the widget and
// qdctl.
func (c *Coordinator) snapshot(cat *library.Catalog) error {
	quotes := cat.Quotes()
	rows := make([]store.QuoteRow, len(quotes))
	for i, q := range quotes {
		rows[i] = store.QuoteRow{
			ID:       q.ID,
			Text:     q.Text,
			Author:   q.Author,
			AuthorID: q.AuthorID,
			Work:     q.Work,
			Year:     q.Year,
			Satire:   q.Satire,
			Seq:      q.Seq,
			Ordinal:  q.Ordinal,
		}
	}
	return c.st.ReplaceQuotes(rows)
}

// watch triggers a debounced reload whenever the library root changes.
// Watch setup failure downgrades to no live reload; the app still works.
func (c *Coordinator) watch(ctx context.Context, program sender) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logging.Warn("library watch unavailable", "error", err)
		return
	}
	if err := watcher.Add(c.root); err != nil {
		logging.Warn("cannot watch library root", "root", c.root, "error", err)
		watcher.Close()
		return
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer watcher.Close()

		var debounce *time.Timer
		for {
			select {
			case <-ctx.Done():
				if debounce != nil {
					debounce.Stop()
				}
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				if debounce != nil {
					debounce.Stop()
				}
				debounce = time.AfterFunc(reloadDebounce, func() {
					logging.Info("library changed, reloading", "event", ev.Name)
					c.Reload(ctx, program)
				})
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logging.Warn("library watch error", "error", err)
			}
		}
	}()
}

// Wait blocks until background goroutines exit. Call after canceling the
// context passed to Start.
func (c *Coordinator) Wait() {
	c.wg.Wait()
}
