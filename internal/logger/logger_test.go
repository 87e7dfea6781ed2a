package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestLevelString(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelDebug, "debug"},
		{LevelInfo, "info"},
		{LevelWarn, "warn"},
		{LevelError, "error"},
		{Level(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("Level(%d).String() = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"bogus", LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestJSONLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelWarn, &buf)
	l.Info("should not appear")
	l.Warn("should appear")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected exactly one line logged, got %d: %q", len(lines), buf.String())
	}

	var entry logEntry
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("expected valid JSON line: %v", err)
	}
	if entry.Message != "should appear" || entry.Level != "warn" {
		t.Fatalf("unexpected entry: %+v", entry)
	}
}

func TestWithFieldsMerges(t *testing.T) {
	var buf bytes.Buffer
	base := New(LevelDebug, &buf).WithFields(F("session", "abc"))
	base.Info("msg", F("path", `C:\Temp`))

	var entry logEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if entry.Fields["session"] != "abc" || entry.Fields["path"] != `C:\Temp` {
		t.Fatalf("expected merged fields, got %+v", entry.Fields)
	}
}

func TestNopLoggerDiscardsEverything(t *testing.T) {
	l := NewNop()
	l.Info("noop")
	derived := l.WithFields(F("x", 1))
	derived.Error("still noop")
}
