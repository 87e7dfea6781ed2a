package accounting

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // pure-Go driver registration, no cgo
)

// Store is a durable, cross-session audit trail alongside the per-session
// JSON log, which remains the primary record. It is deliberately a single
// table — this is a lookup aid for "what did session X do", not a general
// audit-log replacement.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// OpenStore opens (creating if absent) a SQLite database at path and
// ensures its schema exists.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}
	if _, err := db.Exec(`PRAGMA journal_mode=WAL`); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}
	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

func createSchema(db *sql.DB) error {
	_, err := db.Exec(`
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		started_at TEXT NOT NULL,
		success INTEGER NOT NULL,
		failed INTEGER NOT NULL,
		reboot_pending INTEGER NOT NULL,
		manual_review INTEGER NOT NULL,
		freed_logical INTEGER NOT NULL,
		freed_physical INTEGER NOT NULL,
		skipped_bytes INTEGER NOT NULL,
		summary TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_sessions_started_at ON sessions(started_at);
	`)
	return err
}

// Save persists s's final totals as one row.
func (st *Store) Save(ctx context.Context, s *Session) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	success, failed, rebootPending, manualReview := s.Counts()
	freedLogical, freedPhysical, skipped := s.Bytes()

	_, err := st.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO sessions
			(id, started_at, success, failed, reboot_pending, manual_review, freed_logical, freed_physical, skipped_bytes, summary)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, s.ID, s.Start.UTC().Format(time.RFC3339), success, failed, rebootPending, manualReview,
		freedLogical, freedPhysical, skipped, s.Summary())
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// SessionRow is one row read back from the store.
type SessionRow struct {
	ID            string
	StartedAt     time.Time
	Success       int64
	Failed        int64
	RebootPending int64
	ManualReview  int64
	FreedLogical  int64
	FreedPhysical int64
	SkippedBytes  int64
	Summary       string
}

// Recent returns the most recent sessions, newest first, up to limit rows.
func (st *Store) Recent(ctx context.Context, limit int) ([]SessionRow, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	rows, err := st.db.QueryContext(ctx, `
		SELECT id, started_at, success, failed, reboot_pending, manual_review, freed_logical, freed_physical, skipped_bytes, summary
		FROM sessions ORDER BY started_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionRow
	for rows.Next() {
		var r SessionRow
		var started string
		if err := rows.Scan(&r.ID, &started, &r.Success, &r.Failed, &r.RebootPending, &r.ManualReview,
			&r.FreedLogical, &r.FreedPhysical, &r.SkippedBytes, &r.Summary); err != nil {
			return nil, fmt.Errorf("scan session row: %w", err)
		}
		r.StartedAt, _ = time.Parse(time.RFC3339, started)
		out = append(out, r)
	}
	return out, rows.Err()
}

// Close closes the underlying database connection.
func (st *Store) Close() error {
	return st.db.Close()
}
