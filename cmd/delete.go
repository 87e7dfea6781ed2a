package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cy-infamous/lightc/internal/accounting"
	"github.com/cy-infamous/lightc/internal/orchestrator"
	"github.com/cy-infamous/lightc/internal/ui"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <path...>",
	Short: "Delete junk-scan candidates through the safety gate",
	Long: `Runs the base safety gate against each path and, for everything that
passes, attempts the tiered deletion strategy (direct remove, strip
read-only attributes, take ownership, mark for reboot). Reports per-entry
outcomes and session totals.`,
	Args: cobra.MinimumNArgs(1),
	Run:  runDelete,
}

var enhancedDeleteCmd = &cobra.Command{
	Use:   "enhanced-delete <path...>",
	Short: "Delete with physical-size accounting and reboot-pending detail",
	Args:  cobra.MinimumNArgs(1),
	Run:   runEnhancedDelete,
}

func init() {
	deleteCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview without deleting")
	enhancedDeleteCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview without deleting")
}

func runDelete(cmd *cobra.Command, args []string)         { runDeleteRequests(cmd, args, false) }
func runEnhancedDelete(cmd *cobra.Command, args []string) { runDeleteRequests(cmd, args, true) }

func runDeleteRequests(cmd *cobra.Command, args []string, enhanced bool) {
	if dryRun {
		for _, p := range args {
			fmt.Printf("  DRY RUN: would evaluate and delete %s\n", p)
		}
		return
	}

	confirmed, cerr := ui.DangerConfirm(fmt.Sprintf("Delete %d path(s)?", len(args)))
	if cerr != nil || !confirmed {
		fmt.Println(ui.MutedStyle().Render("  Cancelled."))
		return
	}

	core, err := buildCore(context.Background(), false)
	if err != nil {
		return
	}

	reqs := make([]orchestrator.DeleteRequest, 0, len(args))
	for _, p := range args {
		isDir := false
		if info, statErr := os.Stat(p); statErr == nil {
			isDir = info.IsDir()
		}
		reqs = append(reqs, orchestrator.DeleteRequest{Path: p, IsDir: isDir})
	}

	session := accounting.New()
	var results []string
	doDelete := orchestrator.Delete
	if enhanced {
		doDelete = orchestrator.EnhancedDelete
	}
	for _, o := range doDelete(core, session, "Manual", reqs) {
		if o.Success {
			results = append(results, fmt.Sprintf("  %s %s freed %s", ui.IconCheck, o.Path, ui.FormatSize(o.PhysicalSize)))
		} else if o.MarkedForReboot {
			results = append(results, fmt.Sprintf("  %s %s will be removed on reboot", ui.IconWarning, o.Path))
		} else {
			results = append(results, fmt.Sprintf("  %s %s failed: %s", ui.IconError, o.Path, o.FailureMessage))
		}
	}
	for _, line := range results {
		fmt.Println(line)
	}
	fmt.Println(session.Summary())
	persistSession(session)
}
