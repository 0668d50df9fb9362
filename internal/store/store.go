// Package store provides the shared SQLite store.
//
// One database file is shared by the reader app, the widget renderer and
// qdctl. WAL mode keeps cross-process reads cheap. The store is best-effort,
// last-writer-wins state, not a transactional boundary: each row family has
// a single writing process (the app writes the quote snapshot, preference
// sets, roster and saved queues; the widget writes only its rotation key).
//
// Thread safety: all methods are safe for concurrent use via an internal
// mutex. Sequences of operations require external coordination.
package store

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // pure-Go SQLite driver, no CGO
)

// Preference set names. Each is a flat membership list in pref_sets.
const (
	SetFavorites     = "favorites"
	SetStarred       = "starred"
	SetExcludedWorks = "excluded_works"
	SetNotBased      = "not_based"
	SetHidden        = "hidden"
	SetViewed        = "viewed"
	SetBookAuthors   = "book_authors" // author kind override: membership flips the default kind
)

// Settings keys. The launch option and satire flag live in the JSON config;
// settings holds only the cross-process KV state.
const (
	SettingWidgetRotation = "widget_rotation"
	SettingPendingOpen    = "pending_open"
)

// QuoteRow is the persisted snapshot form of a loaded quote.
type QuoteRow struct {
	ID       string
	Text     string
	Author   string
	AuthorID string
	Work     string
	Year     int
	Satire   bool
	Seq      int
	Ordinal  int
}

// SavedQueue is a named, persisted snapshot of an ordered quote-ID list.
type SavedQueue struct {
	ID        string
	Name      string
	QuoteIDs  []string
	CreatedAt time.Time
}

// Store handles SQLite persistence. Concrete type, not an interface.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Open creates a Store at the given path, creating tables as needed.
// ":memory:" is supported for tests.
func Open(path string) (*Store, error) {
	connStr := path
	if path == ":memory:" {
		// Shared cache so every pooled connection sees the same database.
		connStr = "file::memory:?cache=shared"
	}

	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if path != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable WAL mode: %w", err)
		}
	}

	s := &Store{db: db}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}
	return s, nil
}

func (s *Store) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS quotes (
		id TEXT PRIMARY KEY,
		text TEXT NOT NULL,
		author TEXT NOT NULL,
		author_id TEXT NOT NULL,
		work TEXT NOT NULL,
		year INTEGER DEFAULT 0,
		satire INTEGER DEFAULT 0,
		seq INTEGER NOT NULL,
		ordinal INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_quotes_author ON quotes(author_id);
	CREATE INDEX IF NOT EXISTS idx_quotes_ordinal ON quotes(ordinal);

	CREATE TABLE IF NOT EXISTS pref_sets (
		set_name TEXT NOT NULL,
		member TEXT NOT NULL,
		PRIMARY KEY (set_name, member)
	);

	CREATE TABLE IF NOT EXISTS roster (
		position INTEGER PRIMARY KEY,
		entry TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS saved_queues (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);
	CREATE TABLE IF NOT EXISTS saved_queue_items (
		queue_id TEXT NOT NULL REFERENCES saved_queues(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		quote_id TEXT NOT NULL,
		PRIMARY KEY (queue_id, position)
	);

	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS widget_snapshot (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		version INTEGER NOT NULL,
		payload TEXT NOT NULL,
		updated_at DATETIME NOT NULL
	);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// --- Quote snapshot ---

// ReplaceQuotes atomically replaces the all-quotes snapshot with the result
// of a new load pass.
func (s *Store) ReplaceQuotes(rows []QuoteRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM quotes"); err != nil {
		return fmt.Errorf("clear quotes: %w", err)
	}
	stmt, err := tx.Prepare(`
		INSERT INTO quotes (id, text, author, author_id, work, year, satire, seq, ordinal)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, q := range rows {
		satire := 0
		if q.Satire {
			satire = 1
		}
		if _, err := stmt.Exec(q.ID, q.Text, q.Author, q.AuthorID, q.Work, q.Year, satire, q.Seq, q.Ordinal); err != nil {
			return fmt.Errorf("insert quote %s: %w", q.ID, err)
		}
	}
	return tx.Commit()
}

// Quotes returns the snapshot in load order.
func (s *Store) Quotes() ([]QuoteRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, text, author, author_id, work, year, satire, seq, ordinal
		FROM quotes ORDER BY ordinal
	`)
	if err != nil {
		return nil, fmt.Errorf("query quotes: %w", err)
	}
	defer rows.Close()
	return scanQuotes(rows)
}

// QuoteByID looks one quote up in the snapshot.
func (s *Store) QuoteByID(id string) (QuoteRow, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var q QuoteRow
	var satire int
	err := s.db.QueryRow(`
		SELECT id, text, author, author_id, work, year, satire, seq, ordinal
		FROM quotes WHERE id = ?
	`, id).Scan(&q.ID, &q.Text, &q.Author, &q.AuthorID, &q.Work, &q.Year, &satire, &q.Seq, &q.Ordinal)
	if err == sql.ErrNoRows {
		return QuoteRow{}, false, nil
	}
	if err != nil {
		return QuoteRow{}, false, fmt.Errorf("query quote: %w", err)
	}
	q.Satire = satire != 0
	return q, true, nil
}

// QuoteCount returns the number of quotes in the snapshot.
func (s *Store) QuoteCount() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM quotes").Scan(&n); err != nil {
		return 0, fmt.Errorf("count quotes: %w", err)
	}
	return n, nil
}

func scanQuotes(rows *sql.Rows) ([]QuoteRow, error) {
	var out []QuoteRow
	for rows.Next() {
		var q QuoteRow
		var satire int
		if err := rows.Scan(&q.ID, &q.Text, &q.Author, &q.AuthorID, &q.Work, &q.Year, &satire, &q.Seq, &q.Ordinal); err != nil {
			return nil, fmt.Errorf("scan quote: %w", err)
		}
		q.Satire = satire != 0
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quotes: %w", err)
	}
	return out, nil
}

// --- Preference sets ---

// AddMember inserts a member into a set. Idempotent.
func (s *Store) AddMember(set, member string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("INSERT OR IGNORE INTO pref_sets (set_name, member) VALUES (?, ?)", set, member)
	if err != nil {
		return fmt.Errorf("add member: %w", err)
	}
	return nil
}

// RemoveMember deletes a member from a set. Removing an absent member is a
// no-op.
func (s *Store) RemoveMember(set, member string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("DELETE FROM pref_sets WHERE set_name = ? AND member = ?", set, member)
	if err != nil {
		return fmt.Errorf("remove member: %w", err)
	}
	return nil
}

// Members returns all members of a set.
func (s *Store) Members(set string) (map[string]bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT member FROM pref_sets WHERE set_name = ?", set)
	if err != nil {
		return nil, fmt.Errorf("query members: %w", err)
	}
	defer rows.Close()

	members := make(map[string]bool)
	for rows.Next() {
		var m string
		if err := rows.Scan(&m); err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		members[m] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate members: %w", err)
	}
	return members, nil
}

// --- Roster order ---

// SaveRoster replaces the persisted roster order list.
func (s *Store) SaveRoster(order []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM roster"); err != nil {
		return fmt.Errorf("clear roster: %w", err)
	}
	stmt, err := tx.Prepare("INSERT INTO roster (position, entry) VALUES (?, ?)")
	if err != nil {
		return fmt.Errorf("prepare roster insert: %w", err)
	}
	defer stmt.Close()

	for i, e := range order {
		if _, err := stmt.Exec(i, e); err != nil {
			return fmt.Errorf("insert roster entry: %w", err)
		}
	}
	return tx.Commit()
}

// Roster returns the persisted roster order list, empty if never saved.
func (s *Store) Roster() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT entry FROM roster ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("query roster: %w", err)
	}
	defer rows.Close()

	var order []string
	for rows.Next() {
		var e string
		if err := rows.Scan(&e); err != nil {
			return nil, fmt.Errorf("scan roster entry: %w", err)
		}
		order = append(order, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate roster: %w", err)
	}
	return order, nil
}

// --- Saved queues ---

// SaveQueue persists a saved queue, one record plus its ordered items.
func (s *Store) SaveQueue(q SavedQueue) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		"INSERT OR REPLACE INTO saved_queues (id, name, created_at) VALUES (?, ?, ?)",
		q.ID, q.Name, q.CreatedAt,
	); err != nil {
		return fmt.Errorf("insert saved queue: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM saved_queue_items WHERE queue_id = ?", q.ID); err != nil {
		return fmt.Errorf("clear queue items: %w", err)
	}
	stmt, err := tx.Prepare("INSERT INTO saved_queue_items (queue_id, position, quote_id) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare item insert: %w", err)
	}
	defer stmt.Close()
	for i, id := range q.QuoteIDs {
		if _, err := stmt.Exec(q.ID, i, id); err != nil {
			return fmt.Errorf("insert queue item: %w", err)
		}
	}
	return tx.Commit()
}

// SavedQueues returns all saved queues, newest first, items included.
func (s *Store) SavedQueues() ([]SavedQueue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT id, name, created_at FROM saved_queues ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("query saved queues: %w", err)
	}
	defer rows.Close()

	var queues []SavedQueue
	for rows.Next() {
		var q SavedQueue
		if err := rows.Scan(&q.ID, &q.Name, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan saved queue: %w", err)
		}
		queues = append(queues, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate saved queues: %w", err)
	}

	for i := range queues {
		ids, err := s.queueItems(queues[i].ID)
		if err != nil {
			return nil, err
		}
		queues[i].QuoteIDs = ids
	}
	return queues, nil
}

// SavedQueueByID returns one saved queue with its items.
func (s *Store) SavedQueueByID(id string) (SavedQueue, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var q SavedQueue
	err := s.db.QueryRow("SELECT id, name, created_at FROM saved_queues WHERE id = ?", id).
		Scan(&q.ID, &q.Name, &q.CreatedAt)
	if err == sql.ErrNoRows {
		return SavedQueue{}, false, nil
	}
	if err != nil {
		return SavedQueue{}, false, fmt.Errorf("query saved queue: %w", err)
	}
	q.QuoteIDs, err = s.queueItems(id)
	if err != nil {
		return SavedQueue{}, false, err
	}
	return q, true, nil
}

func (s *Store) queueItems(queueID string) ([]string, error) {
	rows, err := s.db.Query(
		"SELECT quote_id FROM saved_queue_items WHERE queue_id = ? ORDER BY position", queueID)
	if err != nil {
		return nil, fmt.Errorf("query queue items: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan queue item: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate queue items: %w", err)
	}
	return ids, nil
}

// DeleteQueue removes a saved queue and its items.
func (s *Store) DeleteQueue(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()
	if _, err := tx.Exec("DELETE FROM saved_queue_items WHERE queue_id = ?", id); err != nil {
		return fmt.Errorf("delete queue items: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM saved_queues WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete queue: %w", err)
	}
	return tx.Commit()
}

// --- Settings ---

// SetSetting saves a settings value.
func (s *Store) SetSetting(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		"INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value)
	if err != nil {
		return fmt.Errorf("set setting: %w", err)
	}
	return nil
}

// GetSetting returns a settings value, "" if unset.
func (s *Store) GetSetting(key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var v string
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&v)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get setting: %w", err)
	}
	return v, nil
}

// DeleteSetting removes a settings key. Absent keys are a no-op.
func (s *Store) DeleteSetting(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM settings WHERE key = ?", key); err != nil {
		return fmt.Errorf("delete setting: %w", err)
	}
	return nil
}

// --- Widget snapshot ---

// WriteWidgetSnapshot replaces the single widget snapshot row.
func (s *Store) WriteWidgetSnapshot(version int64, payload []byte, updatedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO widget_snapshot (id, version, payload, updated_at) VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET version = excluded.version,
			payload = excluded.payload, updated_at = excluded.updated_at
	`, version, string(payload), updatedAt)
	if err != nil {
		return fmt.Errorf("write widget snapshot: %w", err)
	}
	return nil
}

// WidgetSnapshot returns the latest snapshot row. ok is false when no
// snapshot has ever been published.
func (s *Store) WidgetSnapshot() (version int64, payload []byte, updatedAt time.Time, ok bool, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var p string
	err = s.db.QueryRow("SELECT version, payload, updated_at FROM widget_snapshot WHERE id = 1").
		Scan(&version, &p, &updatedAt)
	if err == sql.ErrNoRows {
		return 0, nil, time.Time{}, false, nil
	}
	if err != nil {
		return 0, nil, time.Time{}, false, fmt.Errorf("read widget snapshot: %w", err)
	}
	return version, []byte(p), updatedAt, true, nil
}
