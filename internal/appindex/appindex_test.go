package appindex

import (
	"testing"

	"github.com/cy-infamous/lightc/internal/pathutil"
)

func TestIsInstalledRejectsShortToken(t *testing.T) {
	idx := &Index{tokens: []string{"my cool game launcher"}}
	if idx.IsInstalled("abc") {
		t.Fatal("a token shorter than 4 chars must never count as installed")
	}
}

func TestIsInstalledSubstringMatch(t *testing.T) {
	idx := &Index{tokens: []string{pathutil.Lower("Epic Games Launcher")}}
	if !idx.IsInstalled("Epic Games") {
		t.Fatal("expected substring match against indexed token")
	}
	if idx.IsInstalled("Origin") {
		t.Fatal("unrelated token should not match")
	}
}

func TestSanitizeStripsControlChars(t *testing.T) {
	got := sanitize("Good\x00Name\x07", 100)
	if got != "GoodName" {
		t.Fatalf("expected control chars stripped, got %q", got)
	}
}

func TestSanitizeTruncates(t *testing.T) {
	got := sanitize("0123456789", 5)
	if got != "01234" {
		t.Fatalf("expected truncation to 5 chars, got %q", got)
	}
}

func TestAppendTokenSkipsBlank(t *testing.T) {
	tokens := appendToken(nil, "   ")
	if len(tokens) != 0 {
		t.Fatal("blank token should not be appended")
	}
}
