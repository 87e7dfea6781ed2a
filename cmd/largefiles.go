package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/cy-infamous/lightc/internal/largefile"
	"github.com/cy-infamous/lightc/internal/orchestrator"
	"github.com/cy-infamous/lightc/internal/ui"
)

var largeFilesCmd = &cobra.Command{
	Use:   "scan-large-files",
	Short: "Find the 50 largest files on the system drive",
	Long: `Walks the system drive and reports the 50 largest files by size.
Progress is printed at most once per 200ms or per 1,000 visited entries.
Press Ctrl-C to cancel the walk and print whatever was found so far.`,
	Run: runScanLargeFiles,
}

func runScanLargeFiles(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	visited := 0
	files, wasCancelled, err := orchestrator.ScanLargeFiles(ctx, systemDrive(), func(p largefile.Progress) {
		visited = p.Visited
		fmt.Printf("\r%s scanning… %d entries visited, now at %s",
			ui.MutedStyle().Render(ui.IconReload), p.Visited, ui.FormatPathWidth(p.CurrentPath, 50))
	})
	fmt.Print("\r\033[K")
	if err != nil {
		fatal(cmd, err)
	}
	if wasCancelled {
		fmt.Println(ui.WarningStyle().Render(fmt.Sprintf("  %s Scan cancelled after %d entries — partial results:", ui.IconWarning, visited)))
	}

	for i, f := range files {
		fmt.Printf("  %2d. %-60s %s\n", i+1, ui.FormatPathWidth(f.Path, 60), ui.FormatSize(f.Size))
	}
}

var cancelLargeFileScanCmd = &cobra.Command{
	Use:   "cancel-large-file-scan",
	Short: "Set this process's large-file scan cancellation flag",
	Long: `Sets the process-wide flag a running large-file walk polls. The flag
belongs to the lightc process that sets it, so running this as a separate
command does not stop a scan in another lightc process; press Ctrl-C in
that process instead.`,
	Run: func(cmd *cobra.Command, args []string) {
		orchestrator.CancelLargeFileScan()
	},
}
