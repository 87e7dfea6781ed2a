package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cy-infamous/lightc/internal/accounting"
	"github.com/cy-infamous/lightc/internal/leftover"
	"github.com/cy-infamous/lightc/internal/orchestrator"
	"github.com/cy-infamous/lightc/internal/ui"
)

var scanLeftoversCmd = &cobra.Command{
	Use:   "scan-leftovers",
	Short: "Find orphaned application data under well-known app-data roots",
	Run:   runScanLeftovers,
}

func runScanLeftovers(cmd *cobra.Command, args []string) {
	core, err := buildCore(context.Background(), false)
	if err != nil {
		return
	}
	lcfg := loadedConfig().Leftover
	entries := orchestrator.ScanLeftoversWithThresholds(core.Index, leftover.Thresholds{
		FreshnessAge: lcfg.FreshnessAge(),
		MinSize:      lcfg.MinSizeBytes,
	})
	if len(entries) == 0 {
		fmt.Println(ui.InfoStyle().Render("  No leftover application data found."))
		return
	}
	for _, e := range entries {
		fmt.Printf("  %s %-50s %s  (%s, %d files)\n",
			ui.IconFolder, ui.FormatPathWidth(e.Path, 50), ui.FormatSize(e.Size), e.Root, e.FileCount)
	}
}

var deleteLeftoversCmd = &cobra.Command{
	Use:   "delete-leftovers-permanent <path...>",
	Short: "Permanently delete orphaned application data",
	Long: `Runs the leftover-specific safety gate (registry presence, executable
presence) against each path and deletes only what survives. Paths flagged
as containing executables are reported for manual review instead of being
deleted.`,
	Args: cobra.MinimumNArgs(1),
	Run:  runDeleteLeftovers,
}

func init() {
	deleteLeftoversCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview without deleting")
}

func runDeleteLeftovers(cmd *cobra.Command, args []string) {
	core, err := buildCore(context.Background(), false)
	if err != nil {
		return
	}

	if !dryRun {
		confirmed, cerr := ui.DangerConfirm(fmt.Sprintf("Permanently delete %d leftover path(s)?", len(args)))
		if cerr != nil || !confirmed {
			fmt.Println(ui.MutedStyle().Render("  Cancelled."))
			return
		}
	}

	session := accounting.New()
	entries := make([]leftover.Entry, 0, len(args))
	for _, p := range args {
		entries = append(entries, leftover.Entry{Path: p})
	}

	if dryRun {
		for _, e := range entries {
			fmt.Printf("  DRY RUN: would evaluate and delete %s\n", e.Path)
		}
		return
	}

	outcomes := orchestrator.DeleteLeftoversPermanent(core, session, entries)
	for _, o := range outcomes {
		switch {
		case o.NeedsManualReview:
			fmt.Printf("  %s %s needs manual review (contains: %v)\n", ui.IconWarning, o.Path, o.Executables)
		case o.Success:
			fmt.Printf("  %s %s freed %s\n", ui.IconCheck, o.Path, ui.FormatSize(o.PhysicalSize))
		default:
			fmt.Printf("  %s %s failed: %s\n", ui.IconError, o.Path, o.FailureMessage)
		}
	}
	fmt.Println(session.Summary())
	persistSession(session)
}

var checkLeftoverSafetyCmd = &cobra.Command{
	Use:   "check-leftover-safety <path>",
	Short: "Evaluate the safety gate against a path without deleting it",
	Args:  cobra.ExactArgs(1),
	Run:   runCheckLeftoverSafety,
}

func runCheckLeftoverSafety(cmd *cobra.Command, args []string) {
	core, err := buildCore(context.Background(), false)
	if err != nil {
		return
	}
	verdict := orchestrator.CheckLeftoverSafety(core.Index, args[0])
	if verdict.Allowed() {
		fmt.Println(ui.SuccessStyle().Render(fmt.Sprintf("  %s Safe to delete", ui.IconCheck)))
		return
	}
	fmt.Println(ui.WarningStyle().Render(fmt.Sprintf("  %s %s: %s", ui.IconWarning, verdict.Kind, verdict.Reason)))
}
