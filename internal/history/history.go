// Package history keeps an audit log of admin mutations in SQLite. Seed
// files carry no record of who changed what when; the history database fills
// that gap for the /api/history endpoint and post-incident digging.
package history

import (
	"database/sql"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"git.home.luguber.info/inful/blogsmith/internal/errors"
	"git.home.luguber.info/inful/blogsmith/internal/logfields"
)

// Entry is one recorded mutation.
type Entry struct {
	ID        int64     `json:"id"`
	Action    string    `json:"action"`
	Kind      string    `json:"kind"`
	EntityID  string    `json:"entity_id"`
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Log is a SQLite-backed audit log. It satisfies admin.AuditRecorder.
type Log struct {
	db *sql.DB
	mu sync.RWMutex

	now func() time.Time
}

// Open creates or opens the audit database at path. Use ":memory:" for an
// in-memory database in tests.
func Open(path string) (*Log, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return nil, errors.Storage("create history directory", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Storage("open history database", err)
	}

	log := &Log{db: db, now: time.Now}
	if err := log.initialize(); err != nil {
		_ = db.Close()
		return nil, errors.Storage("initialize history schema", err)
	}
	return log, nil
}

func (l *Log) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS mutations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		action TEXT NOT NULL,
		kind TEXT NOT NULL,
		entity_id TEXT NOT NULL,
		detail TEXT,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_mutations_kind ON mutations(kind);
	CREATE INDEX IF NOT EXISTS idx_mutations_created_at ON mutations(created_at);
	`
	_, err := l.db.Exec(schema)
	return err
}

// WithClock injects a clock (for tests).
func (l *Log) WithClock(now func() time.Time) *Log {
	l.now = now
	return l
}

// Record appends one mutation entry. Recording is best-effort: a failed
// insert is logged and swallowed so an audit problem never fails a mutation.
func (l *Log) Record(action, kind, entityID, detail string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	_, err := l.db.Exec(
		"INSERT INTO mutations (action, kind, entity_id, detail, created_at) VALUES (?, ?, ?, ?, ?)",
		action, kind, entityID, detail, l.now().Unix(),
	)
	if err != nil {
		slog.Warn("Failed to record mutation", slog.String("action", action), logfields.Kind(kind), logfields.Error(err))
	}
}

// Recent returns the newest limit entries, newest first.
func (l *Log) Recent(limit int) ([]Entry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}
	rows, err := l.db.Query(
		"SELECT id, action, kind, entity_id, detail, created_at FROM mutations ORDER BY id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, errors.Storage("query history", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var detail sql.NullString
		var created int64
		if err := rows.Scan(&e.ID, &e.Action, &e.Kind, &e.EntityID, &detail, &created); err != nil {
			return nil, errors.Storage("scan history row", err)
		}
		e.Detail = detail.String
		e.CreatedAt = time.Unix(created, 0).UTC()
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Storage("iterate history rows", err)
	}
	return entries, nil
}

// Close releases the database handle.
func (l *Log) Close() error {
	return l.db.Close()
}
