package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cy-infamous/lightc/internal/ui"
)

var (
	// Global flags
	debug  bool
	dryRun bool

	// Version info populated from main
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// SetVersionInfo sets build-time version information.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

var rootCmd = &cobra.Command{
	Use:   "lightc",
	Short: "Safety-gated Windows system-drive cleanup",
	Long: `lightc - a Windows system-drive cleanup tool.

Scans well-known junk categories, orphaned application leftovers, and
stale registry entries, and deletes only what survives a multi-layer
safety gate.`,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("lightc %s (commit %s, built %s)\n", appVersion, appCommit, appDate)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Assign Run in init() to break the initialization cycle between
	// rootCmd and runInteractiveMenu (which references rootCmd).
	rootCmd.Run = func(cmd *cobra.Command, args []string) {
		runInteractiveMenu()
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Show detailed operation logs")

	rootCmd.AddCommand(scanJunkCmd)
	rootCmd.AddCommand(scanCategoryCmd)
	rootCmd.AddCommand(largeFilesCmd)
	rootCmd.AddCommand(cancelLargeFileScanCmd)
	rootCmd.AddCommand(scanLeftoversCmd)
	rootCmd.AddCommand(scanRegistryCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(enhancedDeleteCmd)
	rootCmd.AddCommand(deleteLeftoversCmd)
	rootCmd.AddCommand(deleteRegistryCmd)
	rootCmd.AddCommand(checkLeftoverSafetyCmd)
	rootCmd.AddCommand(uninstallCmd)
	rootCmd.AddCommand(versionCmd)
}

// runInteractiveMenu launches the full-screen interactive main menu. When
// the user selects a command, it exits the menu and executes the
// corresponding cobra subcommand.
func runInteractiveMenu() {
	fmt.Print(ui.ShowBrandBanner())

	selected, err := runMainMenu()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s Menu error: %v\n", ui.IconError, err)
		os.Exit(1)
	}

	// User quit without selecting — clean exit.
	if selected == "" {
		return
	}

	// Execute the selected subcommand via cobra.
	rootCmd.SetArgs([]string{selected})
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
