package uninstall

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/cy-infamous/lightc/internal/accounting"
	"github.com/cy-infamous/lightc/internal/deletion"
	"github.com/cy-infamous/lightc/internal/ui"
)

// uninstallTimeout bounds how long a single uninstall process (or msiexec
// invocation) is allowed to run before it's killed and treated as a failure.
const uninstallTimeout = 120 * time.Second

// productGUIDPattern extracts an MSI product code, e.g.
// {AC76BA86-7AD7-1033-7B44-AC0F074E4100}, out of an UninstallString.
var productGUIDPattern = regexp.MustCompile(`\{[0-9A-Fa-f-]+\}`)

// UninstallApp runs the uninstall command recorded for app, preferring
// QuietUninstallString when quiet is requested and present. MSI-driven
// uninstalls are detected and re-dispatched through msiexec directly rather
// than replayed as a raw command line, since msiexec needs /qn /norestart
// appended for a truly silent run.
func UninstallApp(app InstalledApp, quiet bool) error {
	cmdLine := selectUninstallString(app, quiet)
	if cmdLine == "" {
		return fmt.Errorf("no uninstall command recorded for %q", app.Name)
	}
	if strings.Contains(strings.ToLower(cmdLine), "msiexec") {
		return runMSIUninstall(cmdLine, quiet)
	}
	return runUninstallCommand(cmdLine)
}

func selectUninstallString(app InstalledApp, quiet bool) string {
	if quiet && app.QuietUninstallString != "" {
		return app.QuietUninstallString
	}
	return app.UninstallString
}

// runMSIUninstall pulls the product GUID out of cmdLine and re-invokes
// msiexec with it directly; if no GUID can be found the original command
// line is replayed as-is rather than failing outright.
func runMSIUninstall(cmdLine string, quiet bool) error {
	guid := productGUIDPattern.FindString(cmdLine)
	if guid == "" {
		return runUninstallCommand(cmdLine)
	}

	args := []string{"/x", guid}
	if quiet {
		args = append(args, "/qn", "/norestart")
	}

	ctx, cancel := context.WithTimeout(context.Background(), uninstallTimeout)
	defer cancel()

	output, err := exec.CommandContext(ctx, "msiexec.exe", args...).CombinedOutput()
	if err != nil {
		return translateExitError(err, output)
	}
	return nil
}

// executablePath pulls the target executable out of an uninstall command
// line, handling both a quoted path ("C:\Program Files\App\uninst.exe" /S)
// and an unquoted one (C:\app\uninstall.exe /silent).
func executablePath(cmdLine string) string {
	cmdLine = strings.TrimSpace(cmdLine)
	if cmdLine == "" {
		return ""
	}
	if cmdLine[0] == '"' {
		if end := strings.Index(cmdLine[1:], `"`); end >= 0 {
			return cmdLine[1 : end+1]
		}
		return ""
	}
	if idx := strings.Index(strings.ToLower(cmdLine), ".exe"); idx >= 0 {
		return cmdLine[:idx+4]
	}
	if i := strings.IndexByte(cmdLine, ' '); i >= 0 {
		return cmdLine[:i]
	}
	return cmdLine
}

// runUninstallCommand executes cmdLine. It prefers CreateProcess with the
// parsed executable resolved on disk and the full command line passed
// through SysProcAttr.CmdLine — CreateProcess never interprets shell
// metacharacters (& | > <), so a malicious or malformed UninstallString
// can't chain an extra command. Only when the executable can't be found on
// disk (PATH-relative uninstallers, rare in practice) does it fall back to
// cmd.exe /C.
func runUninstallCommand(cmdLine string) error {
	ctx, cancel := context.WithTimeout(context.Background(), uninstallTimeout)
	defer cancel()

	if exe := executablePath(cmdLine); exe != "" {
		if _, err := os.Stat(exe); err == nil {
			cmd := exec.CommandContext(ctx, exe)
			cmd.SysProcAttr = &syscall.SysProcAttr{CmdLine: cmdLine}
			output, runErr := cmd.CombinedOutput()
			if runErr != nil {
				return translateExitError(runErr, output)
			}
			return nil
		}
	}

	output, err := exec.CommandContext(ctx, "cmd.exe", "/C", cmdLine).CombinedOutput()
	if err != nil {
		return translateExitError(err, output)
	}
	return nil
}

// translateExitError turns a raw exec error into a message a user reviewing
// a failed batch uninstall can act on, recognizing the MSI exit codes that
// mean "already gone" or "succeeded but needs a reboot" rather than failure.
func translateExitError(err error, output []byte) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("uninstall timed out after %s", uninstallTimeout)
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return fmt.Errorf("uninstall command error: %w", err)
	}

	switch exitErr.ExitCode() {
	case 1605:
		return fmt.Errorf("product is not currently installed (exit code 1605)")
	case 1641, 3010:
		return fmt.Errorf("uninstall succeeded — restart required (exit code %d)", exitErr.ExitCode())
	default:
		detail := strings.TrimSpace(string(output))
		if len(detail) > 200 {
			detail = detail[:200] + "..."
		}
		if detail == "" {
			return fmt.Errorf("uninstall failed (exit code %d)", exitErr.ExitCode())
		}
		return fmt.Errorf("uninstall failed (exit code %d): %s", exitErr.ExitCode(), detail)
	}
}

// RunBatchUninstall prints a numbered list of apps, reads a comma-separated
// selection (or "all") from stdin, confirms once for the whole batch, and
// then uninstalls each selected app in turn (preferring the quiet uninstall
// string) — stopping on the first unresolvable input rather than guessing
// at partial intent.
func RunBatchUninstall(apps []InstalledApp, dryRun bool) error {
	if len(apps) == 0 {
		fmt.Println(ui.MutedStyle().Render("  No applications to uninstall."))
		return nil
	}

	fmt.Println()
	for i, app := range apps {
		fmt.Printf("  %2d. %-40s %s\n", i+1, app.Name, ui.FormatSize(app.EstimatedSize))
	}

	line, err := ui.ReadLine("\nSelect apps to uninstall (e.g. 1,3,5 or \"all\"), blank to cancel: ")
	if err != nil {
		return fmt.Errorf("read selection: %w", err)
	}
	line = strings.TrimSpace(line)
	if line == "" {
		fmt.Println(ui.MutedStyle().Render("  Cancelled."))
		return nil
	}

	selected, err := resolveSelection(line, apps)
	if err != nil {
		return err
	}

	if dryRun {
		for _, app := range selected {
			fmt.Printf("  DRY RUN: would uninstall %s\n", app.Name)
		}
		return nil
	}

	confirmed, err := ui.DangerConfirm(fmt.Sprintf("Uninstall %d application(s)?", len(selected)))
	if err != nil || !confirmed {
		fmt.Println(ui.MutedStyle().Render("  Cancelled."))
		return nil
	}

	session := accounting.New()
	for _, app := range selected {
		spin := ui.NewInlineSpinner()
		spin.Start(fmt.Sprintf("Uninstalling %s...", app.Name))
		uninstErr := UninstallApp(app, true)
		if uninstErr != nil {
			spin.StopWithError(fmt.Sprintf("%s: %s", app.Name, uninstErr))
		} else {
			spin.Stop(fmt.Sprintf("Uninstalled %s", app.Name))
		}
		recordBatchOutcome(session, app, uninstErr)
	}

	success, failed, _, _ := session.Counts()
	fmt.Printf("\n  %d succeeded, %d failed\n", success, failed)
	return nil
}

func recordBatchOutcome(s *accounting.Session, app InstalledApp, err error) {
	out := deletion.Outcome{
		Path:         app.Name,
		Success:      err == nil,
		LogicalSize:  app.EstimatedSize,
		PhysicalSize: app.EstimatedSize,
	}
	if err != nil {
		out.FailureKind = deletion.Other
		out.FailureMessage = err.Error()
	}
	s.RecordDeletion("Uninstall", out)
}

func resolveSelection(line string, apps []InstalledApp) ([]InstalledApp, error) {
	if strings.EqualFold(line, "all") {
		return apps, nil
	}

	var selected []InstalledApp
	for _, tok := range strings.Split(line, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		n, err := strconv.Atoi(tok)
		if err != nil || n < 1 || n > len(apps) {
			return nil, fmt.Errorf("invalid selection %q (valid range 1-%d)", tok, len(apps))
		}
		selected = append(selected, apps[n-1])
	}
	if len(selected) == 0 {
		return nil, fmt.Errorf("no valid selections in %q", line)
	}
	return selected, nil
}
