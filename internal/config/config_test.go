package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultMatchesStockThresholds(t *testing.T) {
	d := Default()
	if d.Leftover.FreshnessAgeDays != 30 {
		t.Errorf("expected 30 day freshness default, got %d", d.Leftover.FreshnessAgeDays)
	}
	if d.Leftover.MinSizeBytes != 1<<20 {
		t.Errorf("expected 1 MiB size floor default, got %d", d.Leftover.MinSizeBytes)
	}
	if d.Scan.WalkDepth != 10 || d.Scan.DirSizeDepth != 20 {
		t.Errorf("unexpected scan depth defaults: %+v", d.Scan)
	}
}

func TestFreshnessAgeConvertsToDuration(t *testing.T) {
	c := LeftoverConfig{FreshnessAgeDays: 30}
	if c.FreshnessAge() != 30*24*time.Hour {
		t.Errorf("expected 30 days as a duration, got %v", c.FreshnessAge())
	}
}

func TestLoadFallsBackToDefaultsWithoutFile(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(filepath.Join(dir, "nonexistent.yaml"))
	if err != nil {
		t.Fatalf("expected no error on a missing config file, got %v", err)
	}
	if cfg.Leftover.FreshnessAgeDays != 30 {
		t.Errorf("expected default freshness when no file present, got %d", cfg.Leftover.FreshnessAgeDays)
	}
}

func TestLoadReadsYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("leftover:\n  freshness_age_days: 14\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Leftover.FreshnessAgeDays != 14 {
		t.Errorf("expected file value 14, got %d", cfg.Leftover.FreshnessAgeDays)
	}
}

func TestLoadHonorsEnvOverride(t *testing.T) {
	t.Setenv("LIGHTC_LEFTOVER_FRESHNESS_AGE_DAYS", "7")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Leftover.FreshnessAgeDays != 7 {
		t.Errorf("expected env override 7, got %d", cfg.Leftover.FreshnessAgeDays)
	}
}
