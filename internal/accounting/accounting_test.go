package accounting

import (
	"strings"
	"testing"

	"github.com/cy-infamous/lightc/internal/deletion"
)

func TestRecordDeletionBucketsAreMutuallyExclusive(t *testing.T) {
	s := New()
	s.RecordDeletion("windows-temp", deletion.Outcome{Path: "a", Success: true, LogicalSize: 100, PhysicalSize: 4096})
	s.RecordDeletion("windows-temp", deletion.Outcome{Path: "b", MarkedForReboot: true, FailureKind: deletion.MarkedForReboot})
	s.RecordDeletion("windows-temp", deletion.Outcome{Path: "c", FailureKind: deletion.PermissionDenied, LogicalSize: 50})
	s.RecordManualReview("d", 10)

	success, failed, rebootPending, manualReview := s.Counts()
	if success != 1 || failed != 1 || rebootPending != 1 || manualReview != 1 {
		t.Fatalf("expected one in each bucket, got success=%d failed=%d reboot=%d manual=%d",
			success, failed, rebootPending, manualReview)
	}
	if len(s.Records()) != 4 {
		t.Fatalf("expected 4 detailed records, got %d", len(s.Records()))
	}
}

func TestBytesAccumulate(t *testing.T) {
	s := New()
	s.RecordDeletion("c", deletion.Outcome{Success: true, LogicalSize: 100, PhysicalSize: 4096})
	s.RecordDeletion("c", deletion.Outcome{FailureKind: deletion.Other, LogicalSize: 25})

	freedLogical, freedPhysical, skipped := s.Bytes()
	if freedLogical != 100 || freedPhysical != 4096 || skipped != 25 {
		t.Fatalf("unexpected byte accumulation: logical=%d physical=%d skipped=%d", freedLogical, freedPhysical, skipped)
	}
}

func TestSummaryOmitsZeroParts(t *testing.T) {
	s := New()
	s.RecordDeletion("c", deletion.Outcome{Success: true, LogicalSize: 100, PhysicalSize: 4096})
	summary := s.Summary()
	if summary == "" {
		t.Fatal("expected a non-empty summary")
	}
	if strings.Contains(summary, "skipped") || strings.Contains(summary, "reboot-pending") {
		t.Fatalf("expected zero skipped/reboot-pending parts to be omitted, got %q", summary)
	}
}

func TestNeedsReboot(t *testing.T) {
	s := New()
	if s.NeedsReboot() {
		t.Fatal("a fresh session should not need reboot")
	}
	s.RecordDeletion("c", deletion.Outcome{MarkedForReboot: true, FailureKind: deletion.MarkedForReboot})
	if !s.NeedsReboot() {
		t.Fatal("expected NeedsReboot true after a reboot-pending outcome")
	}
}
