package accounting

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/cy-infamous/lightc/internal/deletion"
)

func TestSessionLogWriterProducesOneDocumentPerSession(t *testing.T) {
	dir := t.TempDir()
	w := NewSessionLogWriter(dir)
	defer w.Close()

	s := New()
	s.RecordDeletion("windows-temp", deletion.Outcome{Path: "a", Success: true, LogicalSize: 100, PhysicalSize: 4096})

	if err := w.Write(s); err != nil {
		t.Fatalf("Write: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) == 0 {
		t.Fatal("expected at least one rotated session document on disk")
	}

	var doc sessionDocument
	found := false
	for _, e := range entries {
		if filepath.Ext(e.Name()) != ".json" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			t.Fatalf("ReadFile: %v", err)
		}
		if len(data) == 0 {
			continue
		}
		if err := json.Unmarshal(data, &doc); err != nil {
			t.Fatalf("Unmarshal %s: %v", e.Name(), err)
		}
		found = true
	}
	if !found {
		t.Fatal("no non-empty rotated session document found")
	}
	if doc.ID != s.ID {
		t.Fatalf("expected session id %s, got %s", s.ID, doc.ID)
	}
	if doc.Success != 1 {
		t.Fatalf("expected 1 success, got %d", doc.Success)
	}
	if len(doc.Records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(doc.Records))
	}
}

func TestSessionLogWriterFilenameFormat(t *testing.T) {
	dir := t.TempDir()
	w := NewSessionLogWriter(dir)
	defer w.Close()

	s := New()
	if err := w.Write(s); err != nil {
		t.Fatalf("Write: %v", err)
	}

	matches, err := filepath.Glob(filepath.Join(dir, "cleanup_*.json"))
	if err != nil {
		t.Fatalf("Glob: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected exactly one cleanup_*.json file, got %v", matches)
	}

	name := filepath.Base(matches[0])
	if len(name) != len("cleanup_20060102_150405.json") {
		t.Fatalf("unexpected filename shape: %s", name)
	}
}

func TestSessionLogWriterTrimsOldDocuments(t *testing.T) {
	dir := t.TempDir()
	w := NewSessionLogWriter(dir)
	defer w.Close()

	for i := 0; i < maxSessionLogFiles+3; i++ {
		name := filepath.Join(dir, fmt.Sprintf("cleanup_202001%02d_000000.json", i+1))
		if err := os.WriteFile(name, []byte("{}"), 0o644); err != nil {
			t.Fatalf("seed WriteFile: %v", err)
		}
	}

	trimSessionLogs(dir)

	matches, err := filepath.Glob(filepath.Join(dir, "cleanup_*.json"))
	if err != nil {
		t.Fatalf("Glob: %v", err)
	}
	if len(matches) != maxSessionLogFiles {
		t.Fatalf("expected %d files after trim, got %d", maxSessionLogFiles, len(matches))
	}
}
