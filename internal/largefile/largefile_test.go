package largefile

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestScanReturnsLargestFilesDescending(t *testing.T) {
	dir := t.TempDir()
	sizes := []int{10, 500, 5000, 50, 100}
	for i, sz := range sizes {
		p := filepath.Join(dir, "f"+string(rune('0'+i)))
		if err := os.WriteFile(p, make([]byte, sz), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	files, cancelledFlag, err := Scan(context.Background(), dir, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cancelledFlag {
		t.Fatal("did not expect cancellation")
	}
	if len(files) != len(sizes) {
		t.Fatalf("expected %d files, got %d", len(sizes), len(files))
	}
	for i := 1; i < len(files); i++ {
		if files[i].Size > files[i-1].Size {
			t.Fatalf("results not descending at index %d: %+v", i, files)
		}
	}
	if files[0].Size != 5000 {
		t.Fatalf("expected largest file first, got %d", files[0].Size)
	}
}

func TestScanRespectsCancelledContext(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 5; i++ {
		p := filepath.Join(dir, "f"+string(rune('0'+i)))
		_ = os.WriteFile(p, make([]byte, 10), 0o644)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, wasCancelled, err := Scan(ctx, dir, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !wasCancelled {
		t.Fatal("expected cancellation to be observed")
	}
}
