package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "LIGHTC"

// Load searches, in priority order, an explicit path, LIGHTC_CONFIG_DIR,
// %USERPROFILE%\.lightc, and the current directory for a config.yaml,
// then layers a .env file (if present next to the resolved config file)
// and LIGHTC_-prefixed environment variables on top. A config file found
// nowhere is not an error — Default() values are used instead.
func Load(explicitPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v, Default())

	configDir := ""
	switch {
	case explicitPath != "":
		v.SetConfigFile(explicitPath)
		configDir = filepath.Dir(explicitPath)
	default:
		if envDir := os.Getenv("LIGHTC_CONFIG_DIR"); envDir != "" {
			v.AddConfigPath(envDir)
			configDir = envDir
		}
		if home := os.Getenv("USERPROFILE"); home != "" {
			v.AddConfigPath(filepath.Join(home, ".lightc"))
		}
		v.AddConfigPath(".")
	}

	if configDir != "" {
		loadDotEnv(filepath.Join(configDir, ".env"))
	} else {
		loadDotEnv(".env")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg := Default()
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, nil
}

func loadDotEnv(path string) {
	if _, err := os.Stat(path); err == nil {
		_ = godotenv.Load(path)
	}
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("scan.walk_depth", d.Scan.WalkDepth)
	v.SetDefault("scan.dir_size_depth", d.Scan.DirSizeDepth)

	v.SetDefault("leftover.freshness_age_days", d.Leftover.FreshnessAgeDays)
	v.SetDefault("leftover.min_size_bytes", d.Leftover.MinSizeBytes)
	v.SetDefault("leftover.executable_scan_depth", d.Leftover.ExecutableScanDepth)
	v.SetDefault("leftover.executable_scan_max_hits", d.Leftover.ExecutableScanMaxHits)

	v.SetDefault("deletion.cluster_size_override", d.Deletion.ClusterSizeOverride)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.file_path", d.Logging.FilePath)
	v.SetDefault("logging.max_size_mb", d.Logging.MaxSizeMB)

	v.SetDefault("accounting.db_path", d.Accounting.DBPath)
	v.SetDefault("accounting.metrics_enabled", d.Accounting.MetricsEnabled)
}
