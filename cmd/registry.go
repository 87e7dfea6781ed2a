package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cy-infamous/lightc/internal/orchestrator"
	"github.com/cy-infamous/lightc/internal/registryresolver"
	"github.com/cy-infamous/lightc/internal/ui"
)

var scanRegistryCmd = &cobra.Command{
	Use:   "scan-registry",
	Short: "Find orphaned registry entries",
	Long: `Scans MUI cache, user-hive software keys, and application associations
for orphans: MUI cache values and application associations whose executable
no longer exists, and empty user-hive software keys no installed application
claims.`,
	Run: runScanRegistry,
}

func runScanRegistry(cmd *cobra.Command, args []string) {
	core, err := buildCore(context.Background(), false)
	if err != nil {
		return
	}
	entries := orchestrator.ScanRegistry(core.Index)
	if len(entries) == 0 {
		fmt.Println(ui.InfoStyle().Render("  No orphaned registry entries found."))
		return
	}
	for _, e := range entries {
		fmt.Printf("  %s [%s] %s\\%s — %s\n", ui.IconCorner, e.Kind, e.HivePath, e.Name, e.Issue)
	}
}

var deleteRegistryCmd = &cobra.Command{
	Use:   "delete-registry <entry-index...>",
	Short: "Back up and delete orphaned registry entries",
	Long: `Re-scans for orphaned registry entries, exports a .reg backup file,
and deletes the entries at the given 1-based indices from that scan
(as printed by scan-registry). The backup is written before any entry is
removed; if it fails, nothing is deleted.`,
	Args: cobra.MinimumNArgs(1),
	Run:  runDeleteRegistry,
}

func init() {
	deleteRegistryCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview without deleting")
}

func runDeleteRegistry(cmd *cobra.Command, args []string) {
	core, err := buildCore(context.Background(), false)
	if err != nil {
		return
	}
	all := orchestrator.ScanRegistry(core.Index)

	var selected []registryresolver.Entry
	for _, a := range args {
		idx := parseIndex(a)
		if idx < 1 || idx > len(all) {
			fatal(cmd, fmt.Errorf("index %s out of range (1-%d)", a, len(all)))
		}
		selected = append(selected, all[idx-1])
	}

	if !dryRun {
		confirmed, cerr := ui.DangerConfirm(fmt.Sprintf("Back up and delete %d registry entries?", len(selected)))
		if cerr != nil || !confirmed {
			fmt.Println(ui.MutedStyle().Render("  Cancelled."))
			return
		}
	}
	if dryRun {
		for _, e := range selected {
			fmt.Printf("  DRY RUN: would delete %s\\%s\n", e.HivePath, e.Name)
		}
		return
	}

	backupPath, outcomes, derr := orchestrator.DeleteRegistry(selected)
	if derr != nil {
		fatal(cmd, derr)
	}
	fmt.Printf("  %s Backup written to %s\n", ui.IconCheck, backupPath)
	for _, o := range outcomes {
		if o.Success {
			fmt.Printf("  %s %s\\%s\n", ui.IconCheck, o.Entry.HivePath, o.Entry.Name)
		} else {
			fmt.Printf("  %s %s\\%s: %s\n", ui.IconError, o.Entry.HivePath, o.Entry.Name, o.Err)
		}
	}
}

func parseIndex(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return -1
		}
		n = n*10 + int(r-'0')
	}
	return n
}
