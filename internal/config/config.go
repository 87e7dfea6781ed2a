// Package config loads the tunable thresholds that sit above the
// process-constant category catalog: leftover freshness/size gates, walk
// depth caps, cluster-size overrides, and logging/accounting destinations.
package config

import (
	"time"
)

// Config is the complete layered configuration.
type Config struct {
	Scan       ScanConfig       `mapstructure:"scan" yaml:"scan"`
	Leftover   LeftoverConfig   `mapstructure:"leftover" yaml:"leftover"`
	Deletion   DeletionConfig   `mapstructure:"deletion" yaml:"deletion"`
	Logging    LoggingConfig    `mapstructure:"logging" yaml:"logging"`
	Accounting AccountingConfig `mapstructure:"accounting" yaml:"accounting"`
}

// ScanConfig configures the scan planner's filesystem walk.
type ScanConfig struct {
	WalkDepth   int `mapstructure:"walk_depth" yaml:"walk_depth"`
	DirSizeDepth int `mapstructure:"dir_size_depth" yaml:"dir_size_depth"`
}

// LeftoverConfig configures the leftover resolver's freshness/size gates.
type LeftoverConfig struct {
	FreshnessAgeDays int   `mapstructure:"freshness_age_days" yaml:"freshness_age_days"`
	MinSizeBytes     int64 `mapstructure:"min_size_bytes" yaml:"min_size_bytes"`
	ExecutableScanDepth int `mapstructure:"executable_scan_depth" yaml:"executable_scan_depth"`
	ExecutableScanMaxHits int `mapstructure:"executable_scan_max_hits" yaml:"executable_scan_max_hits"`
}

// FreshnessAge returns the leftover freshness gate as a time.Duration.
func (c LeftoverConfig) FreshnessAge() time.Duration {
	return time.Duration(c.FreshnessAgeDays) * 24 * time.Hour
}

// DeletionConfig configures the deletion engine.
type DeletionConfig struct {
	// ClusterSizeOverride, if nonzero, is used instead of querying the
	// drive's actual cluster size — useful for tests and for drives whose
	// GetDiskFreeSpace call is unavailable.
	ClusterSizeOverride int64 `mapstructure:"cluster_size_override" yaml:"cluster_size_override"`
}

// LoggingConfig configures the structured logger.
type LoggingConfig struct {
	Level      string `mapstructure:"level" yaml:"level"`
	FilePath   string `mapstructure:"file_path" yaml:"file_path"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" yaml:"max_size_mb"`
}

// AccountingConfig configures the durable session store.
type AccountingConfig struct {
	DBPath          string `mapstructure:"db_path" yaml:"db_path"`
	MetricsEnabled  bool   `mapstructure:"metrics_enabled" yaml:"metrics_enabled"`
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		Scan: ScanConfig{
			WalkDepth:    10,
			DirSizeDepth: 20,
		},
		Leftover: LeftoverConfig{
			FreshnessAgeDays:      30,
			MinSizeBytes:          1 << 20,
			ExecutableScanDepth:   5,
			ExecutableScanMaxHits: 10,
		},
		Deletion: DeletionConfig{
			ClusterSizeOverride: 0,
		},
		Logging: LoggingConfig{
			Level:     "info",
			FilePath:  "",
			MaxSizeMB: 50,
		},
		Accounting: AccountingConfig{
			DBPath:         "",
			MetricsEnabled: false,
		},
	}
}
