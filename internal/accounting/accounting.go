// Package accounting implements atomic per-session counters and byte
// accumulators, a human-readable summary line, and the per-candidate
// outcome ledger.
package accounting

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/cy-infamous/lightc/internal/deletion"
)

// OutcomeRecord is one candidate's reported result, retained for the
// session's detailed outcome list.
type OutcomeRecord struct {
	Path            string
	Category        string
	Success         bool
	LogicalSize     int64
	PhysicalSize    int64
	FailureKind     string
	MarkedForReboot bool
}

// Session aggregates outcomes for one scan-or-delete invocation. Counters
// and byte accumulators use atomic fetch-add with relaxed ordering —
// commutativity is all that is required under the planner's concurrent
// category fan-out.
type Session struct {
	ID    string
	Start time.Time

	success       int64
	failed        int64
	rebootPending int64
	manualReview  int64

	freedLogical  int64
	freedPhysical int64
	skippedBytes  int64

	records []OutcomeRecord
}

// New starts a session tagged with a fresh UUID.
func New() *Session {
	return &Session{ID: uuid.NewString(), Start: time.Now()}
}

// RecordDeletion folds one Deletion Engine outcome into the session's
// counters and detailed record list. A candidate contributes to exactly
// one bucket: success, reboot-pending, or failed/manual-review.
func (s *Session) RecordDeletion(category string, out deletion.Outcome) {
	rec := OutcomeRecord{
		Path:            out.Path,
		Category:        category,
		Success:         out.Success,
		LogicalSize:     out.LogicalSize,
		PhysicalSize:    out.PhysicalSize,
		FailureKind:     out.FailureKind.String(),
		MarkedForReboot: out.MarkedForReboot,
	}
	s.records = append(s.records, rec)

	switch {
	case out.Success:
		atomic.AddInt64(&s.success, 1)
		atomic.AddInt64(&s.freedLogical, out.LogicalSize)
		atomic.AddInt64(&s.freedPhysical, out.PhysicalSize)
	case out.MarkedForReboot:
		atomic.AddInt64(&s.rebootPending, 1)
	default:
		atomic.AddInt64(&s.failed, 1)
		atomic.AddInt64(&s.skippedBytes, out.LogicalSize)
	}
}

// RecordManualReview folds in a leftover entry whose executable-presence
// gate rejected deletion — not a hard failure, tracked separately.
func (s *Session) RecordManualReview(path string, logicalSize int64) {
	atomic.AddInt64(&s.manualReview, 1)
	s.records = append(s.records, OutcomeRecord{
		Path:        path,
		LogicalSize: logicalSize,
		FailureKind: "ManualReview",
	})
}

// Counts returns the four mutually-exclusive bucket totals. Their sum
// equals the number of candidates processed.
func (s *Session) Counts() (success, failed, rebootPending, manualReview int64) {
	return atomic.LoadInt64(&s.success), atomic.LoadInt64(&s.failed),
		atomic.LoadInt64(&s.rebootPending), atomic.LoadInt64(&s.manualReview)
}

// Bytes returns the three accumulators.
func (s *Session) Bytes() (freedLogical, freedPhysical, skipped int64) {
	return atomic.LoadInt64(&s.freedLogical), atomic.LoadInt64(&s.freedPhysical),
		atomic.LoadInt64(&s.skippedBytes)
}

// NeedsReboot reports whether any candidate was marked for reboot.
func (s *Session) NeedsReboot() bool {
	return atomic.LoadInt64(&s.rebootPending) > 0
}

// Records returns the detailed per-candidate outcome list in completion
// order (non-deterministic under parallel fan-out by design).
func (s *Session) Records() []OutcomeRecord {
	return s.records
}

// Summary synthesizes the one-line human-unit summary: freed, skipped, and
// reboot-pending, in GiB if >= 1024 MiB, MiB if >= 1 MiB, else KiB.
func (s *Session) Summary() string {
	_, freedPhysical, skipped := s.Bytes()
	_, _, rebootPending, _ := s.Counts()

	units := func(b int64) string {
		switch {
		case b >= 1<<30:
			return fmt.Sprintf("%.2f GiB", float64(b)/(1<<30))
		case b >= 1<<20:
			return fmt.Sprintf("%.2f MiB", float64(b)/(1<<20))
		default:
			return fmt.Sprintf("%.2f KiB", float64(b)/(1<<10))
		}
	}

	parts := []string{"freed " + units(freedPhysical)}
	if skipped > 0 {
		parts = append(parts, "skipped "+units(skipped))
	}
	if rebootPending > 0 {
		parts = append(parts, "reboot-pending "+pluralize(rebootPending, "item"))
	}

	out := parts[0]
	for _, p := range parts[1:] {
		out += ", " + p
	}
	return out
}

func pluralize(n int64, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return humanize.Comma(n) + " " + noun + "s"
}
