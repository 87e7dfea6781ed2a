package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/cobra"

	"github.com/cy-infamous/lightc/internal/accounting"
	"github.com/cy-infamous/lightc/internal/config"
	"github.com/cy-infamous/lightc/internal/orchestrator"
	"github.com/cy-infamous/lightc/internal/ui"
)

var (
	cfgOnce sync.Once
	cfg     *config.Config
)

// loadedConfig lazily loads the layered config (file + env) once per process
// and falls back to config.Default() on any load error — a missing or
// malformed config.yaml should never block a cleanup command.
func loadedConfig() *config.Config {
	cfgOnce.Do(func() {
		loaded, err := config.Load(os.Getenv("LIGHTC_CONFIG_FILE"))
		if err != nil {
			d := config.Default()
			loaded = &d
		}
		cfg = loaded
	})
	return cfg
}

// systemDrive returns the drive letter (e.g. "C:\") the cleanup core
// targets, falling back to C: when the environment variable is unset.
func systemDrive() string {
	if v := os.Getenv("SystemDrive"); v != "" {
		return v + `\`
	}
	return `C:\`
}

// buildCore scans the registry-derived installed-app index and opens the
// deletion engine against the system drive, with a spinner while the
// index builds (it can take a few seconds on a machine with many apps).
func buildCore(ctx context.Context, showAll bool) (*orchestrator.Core, error) {
	spin := ui.NewInlineSpinner()
	spin.Start("Indexing installed applications...")
	core, err := orchestrator.NewCore(ctx, showAll, systemDrive())
	if err != nil {
		spin.StopWithError(fmt.Sprintf("Failed to build installed-app index: %s", err))
		return nil, err
	}
	spin.Stop(fmt.Sprintf("Indexed %d installed applications", len(core.Index.Apps)))
	return core, nil
}

// persistSession saves s's final totals to the durable cross-session
// SQLite store alongside the per-session JSON log. A store failure is
// logged but never fails the command — the accounting store is a lookup
// aid, not the primary record.
func persistSession(s *accounting.Session) {
	appData := os.Getenv("LOCALAPPDATA")

	dbPath := loadedConfig().Accounting.DBPath
	if dbPath == "" {
		dbPath = os.Getenv("LIGHTC_ACCOUNTING_DB")
	}
	if dbPath == "" && appData != "" {
		dbPath = filepath.Join(appData, "LightC", "sessions.db")
	}
	if dbPath != "" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err == nil {
			if store, err := accounting.OpenStore(dbPath); err != nil {
				fmt.Fprintf(os.Stderr, "%s session store unavailable: %s\n", ui.MutedStyle().Render(ui.IconWarning), err)
			} else {
				if err := store.Save(context.Background(), s); err != nil {
					fmt.Fprintf(os.Stderr, "%s session not persisted: %s\n", ui.MutedStyle().Render(ui.IconWarning), err)
				}
				store.Close()
			}
		}
	}

	if appData == "" {
		return
	}
	logDir := filepath.Join(appData, "LightC", "logs")
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return
	}
	w := accounting.NewSessionLogWriter(logDir)
	defer w.Close()
	if err := w.Write(s); err != nil {
		fmt.Fprintf(os.Stderr, "%s session log not written: %s\n", ui.MutedStyle().Render(ui.IconWarning), err)
	}
}

func fatal(cmd *cobra.Command, err error) {
	fmt.Fprintf(os.Stderr, "%s %s\n", ui.ErrorStyle().Render(ui.IconError), err)
	os.Exit(1)
}
