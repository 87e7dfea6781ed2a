package accounting

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// maxSessionLogFiles is how many cleanup_*.json documents are kept in a
// session log directory before the oldest are trimmed.
const maxSessionLogFiles = 10

// sessionDocument is the pretty-printed report written once per session —
// distinct from internal/logger's line-delimited operational log.
type sessionDocument struct {
	ID            string          `json:"id"`
	StartedAt     time.Time       `json:"started_at"`
	EndedAt       time.Time       `json:"ended_at"`
	Success       int64           `json:"success"`
	Failed        int64           `json:"failed"`
	RebootPending int64           `json:"reboot_pending"`
	ManualReview  int64           `json:"manual_review"`
	FreedLogical  int64           `json:"freed_logical_bytes"`
	FreedPhysical int64           `json:"freed_physical_bytes"`
	SkippedBytes  int64           `json:"skipped_bytes"`
	Summary       string          `json:"summary"`
	Records       []OutcomeRecord `json:"records"`
}

// SessionLogWriter writes one pretty-printed JSON document per session into
// its own dir, keeping only the maxSessionLogFiles most recent documents.
// Each document gets its own timestamped filename rather than relying on a
// rotating logger's backup-naming scheme, since the on-disk name is part of
// the format callers (and support staff reading a machine's logs) rely on.
type SessionLogWriter struct {
	dir string
}

// NewSessionLogWriter opens a writer rooted at dir (created on first Write),
// e.g. "<app-data>/logs", writing one "cleanup_YYYYMMDD_HHMMSS.json" file
// per session.
func NewSessionLogWriter(dir string) *SessionLogWriter {
	return &SessionLogWriter{dir: dir}
}

// Write marshals s as a complete session document and writes it to
// "<dir>/cleanup_YYYYMMDD_HHMMSS.json", then trims the directory down to the
// maxSessionLogFiles most recent documents. A marshal or write failure is
// returned, never panicked — the caller treats the session log the same as
// the SQLite store: best-effort, non-fatal to the command that produced the
// session.
func (w *SessionLogWriter) Write(s *Session) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("create session log dir: %w", err)
	}

	success, failed, rebootPending, manualReview := s.Counts()
	freedLogical, freedPhysical, skipped := s.Bytes()
	ended := time.Now().UTC()

	doc := sessionDocument{
		ID:            s.ID,
		StartedAt:     s.Start.UTC(),
		EndedAt:       ended,
		Success:       success,
		Failed:        failed,
		RebootPending: rebootPending,
		ManualReview:  manualReview,
		FreedLogical:  freedLogical,
		FreedPhysical: freedPhysical,
		SkippedBytes:  skipped,
		Summary:       s.Summary(),
		Records:       s.Records(),
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session document: %w", err)
	}
	data = append(data, '\n')

	filename := fmt.Sprintf("cleanup_%s.json", ended.Format("20060102_150405"))
	path := filepath.Join(w.dir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write session document: %w", err)
	}

	trimSessionLogs(w.dir)
	return nil
}

// trimSessionLogs removes the oldest cleanup_*.json documents in dir beyond
// maxSessionLogFiles. Failures are silent — a full directory is not worth
// failing the session over.
func trimSessionLogs(dir string) {
	matches, err := filepath.Glob(filepath.Join(dir, "cleanup_*.json"))
	if err != nil || len(matches) <= maxSessionLogFiles {
		return
	}

	sort.Strings(matches)
	for _, old := range matches[:len(matches)-maxSessionLogFiles] {
		os.Remove(old)
	}
}

// Close is a no-op retained so callers can keep treating SessionLogWriter as
// a closeable resource alongside the SQLite store.
func (w *SessionLogWriter) Close() error {
	return nil
}
