package leftover

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestIsWhitelistedDotPrefix(t *testing.T) {
	if !isWhitelisted(".git") {
		t.Fatal("dot-prefixed directories should be whitelisted")
	}
}

func TestIsWhitelistedVendorSubstring(t *testing.T) {
	if !isWhitelisted("NVIDIA Corporation") {
		t.Fatal("NVIDIA should match the vendor whitelist")
	}
	if isWhitelisted("SomeRandomAbandonedApp") {
		t.Fatal("an unrelated app name should not be whitelisted")
	}
}

func TestDirSizeAndCount(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.bin"), make([]byte, 50), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "b.bin"), make([]byte, 50), 0o644); err != nil {
		t.Fatal(err)
	}
	size, count := dirSizeAndCount(dir)
	if size != 100 || count != 2 {
		t.Fatalf("expected size=100 count=2, got size=%d count=%d", size, count)
	}
}

type fakeIndex struct{ installed map[string]bool }

func (f fakeIndex) IsInstalled(token string) bool { return f.installed[token] }

func TestScanRejectsFreshAndSmallDirs(t *testing.T) {
	root := t.TempDir()
	t.Setenv("LOCALAPPDATA", root)
	t.Setenv("APPDATA", "")
	t.Setenv("ProgramData", "")

	freshBig := filepath.Join(root, "FreshOrphan")
	if err := os.MkdirAll(freshBig, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(freshBig, "big.bin"), make([]byte, 2<<20), 0o644); err != nil {
		t.Fatal(err)
	}

	oldSmall := filepath.Join(root, "SmallOrphan")
	if err := os.MkdirAll(oldSmall, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(oldSmall, "small.bin"), make([]byte, 1024), 0o644); err != nil {
		t.Fatal(err)
	}
	old := time.Now().Add(-60 * 24 * time.Hour)
	if err := os.Chtimes(oldSmall, old, old); err != nil {
		t.Fatal(err)
	}

	entries := Scan(fakeIndex{}, Thresholds{FreshnessAge: 30 * 24 * time.Hour, MinSize: 1 << 20})
	for _, e := range entries {
		if e.Path == freshBig {
			t.Fatal("a freshly modified directory must not survive the freshness gate")
		}
		if e.Path == oldSmall {
			t.Fatal("a directory below the size floor must not survive the size gate")
		}
	}
}

func TestScanHonorsInstalledIndex(t *testing.T) {
	root := t.TempDir()
	t.Setenv("LOCALAPPDATA", root)
	t.Setenv("APPDATA", "")
	t.Setenv("ProgramData", "")

	dir := filepath.Join(root, "SomeInstalledApp")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "big.bin"), make([]byte, 2<<20), 0o644); err != nil {
		t.Fatal(err)
	}
	old := time.Now().Add(-60 * 24 * time.Hour)
	if err := os.Chtimes(dir, old, old); err != nil {
		t.Fatal(err)
	}

	idx := fakeIndex{installed: map[string]bool{"someinstalledapp": true}}
	entries := Scan(idx, DefaultThresholds())
	for _, e := range entries {
		if e.Path == dir {
			t.Fatal("an installed app's directory must be rejected by the installed-index gate")
		}
	}
}
