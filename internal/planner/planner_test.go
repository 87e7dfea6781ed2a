package planner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cy-infamous/lightc/internal/category"
)

func TestIsProtectedTree(t *testing.T) {
	if !isProtectedTree(`C:\Windows\System32\drivers`) {
		t.Fatal("System32 subtree should be protected")
	}
	if isProtectedTree(`C:\Users\alice\Documents`) {
		t.Fatal("an ordinary user path should not be protected")
	}
}

func TestWalkTargetMatchesPatternedFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "setup.log"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "keep.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	def := category.Definition{
		Category: category.LogFiles,
		Patterns: []string{"*.log"},
	}

	var result CategoryResult
	walkTarget(dir, def, &result)

	if len(result.Items) != 1 {
		t.Fatalf("expected exactly 1 matched item, got %d", len(result.Items))
	}
	if filepath.Base(result.Items[0].Path) != "setup.log" {
		t.Fatalf("expected setup.log to match, got %s", result.Items[0].Path)
	}
}

func TestDirSizeRespectsDepthCap(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "a", "b", "c")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(nested, "deep.bin"), make([]byte, 100), 0o644); err != nil {
		t.Fatal(err)
	}

	if got := dirSize(dir, 0, 20); got != 100 {
		t.Fatalf("expected 100 bytes within depth cap, got %d", got)
	}
	if got := dirSize(dir, 0, 1); got != 0 {
		t.Fatalf("expected 0 bytes when depth cap excludes the nested file, got %d", got)
	}
}

func TestTotalSizeAndItems(t *testing.T) {
	results := []CategoryResult{
		{TotalSize: 10, Items: []FileCandidate{{}, {}}},
		{TotalSize: 5, Items: []FileCandidate{{}}},
	}
	if TotalSize(results) != 15 {
		t.Fatal("expected combined total size of 15")
	}
	if TotalItems(results) != 3 {
		t.Fatal("expected combined item count of 3")
	}
}
