package ui

import (
	"quotedeck/internal/library"
	"quotedeck/internal/roster"
	"quotedeck/internal/store"
)

// QueueLoaded replaces the reader's queue. Cursor, when non-empty, names
// the quote the reader should land on.
type QueueLoaded struct {
	Quotes []library.Quote
	Name   string
	Cursor string
	Err    error
}

// RosterLoaded replaces the roster editor's rows.
type RosterLoaded struct {
	Entries []roster.Entry
}

// QueuesLoaded replaces the queue picker's rows.
type QueuesLoaded struct {
	Queues []store.SavedQueue
}

// QueueSaved confirms a save-queue action.
type QueueSaved struct {
	Queue store.SavedQueue
	Err   error
}

// Status flashes a short message in the status bar.
type Status struct {
	Text string
}

// frameMsg drives the quote slide animation.
type frameMsg struct{}
