// Package externaltools wraps the handful of external utilities lightc can
// shell out to — take-ownership permission
// grants, hibernation control, component-store cleanup, the disk-cleanup
// wizard, and "show in folder". Every call suppresses window creation and
// reports outcome via exit status plus captured output; a failure here
// never corrupts core state, it only prevents the one operation requested.
package externaltools

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"syscall"
	"time"
)

const defaultTimeout = 60 * time.Second

// run executes name with args, suppressing window creation, and returns a
// wrapped error including trimmed combined output on failure.
func run(ctx context.Context, name string, args ...string) (string, error) {
	cctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cmd := exec.CommandContext(cctx, name, args...)
	cmd.SysProcAttr = &syscall.SysProcAttr{HideWindow: true}

	out, err := cmd.CombinedOutput()
	trimmed := strings.TrimSpace(string(out))
	if err != nil {
		return trimmed, fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, trimmed)
	}
	return trimmed, nil
}

// GrantOwnership invokes takeown /f <path> [/r /d y] to acquire ownership
// ahead of an icacls permission grant. The deletion engine does not call it:
// internal/deletion's take-ownership tier changes the owner and ACL itself.
func GrantOwnership(ctx context.Context, path string, recursive bool) error {
	args := []string{"/f", path}
	if recursive {
		args = append(args, "/r", "/d", "y")
	}
	_, err := run(ctx, "takeown", args...)
	if err != nil {
		return fmt.Errorf("grant ownership of %s: %w", path, err)
	}
	return nil
}

// GrantFullControl invokes icacls <path> /grant <principal>:F to restore
// full control after an ownership grant.
func GrantFullControl(ctx context.Context, path, principal string) error {
	_, err := run(ctx, "icacls", path, "/grant", principal+":F")
	if err != nil {
		return fmt.Errorf("grant full control of %s to %s: %w", path, principal, err)
	}
	return nil
}

// StopService stops a Windows service by name via net stop, ignoring
// "not started" failures — the Windows-Update category deletion special-
// case needs wuauserv stopped before its cache is safe to clear.
func StopService(ctx context.Context, name string) error {
	out, err := run(ctx, "net", "stop", name)
	if err != nil && !strings.Contains(strings.ToLower(out), "not started") {
		return fmt.Errorf("stop service %s: %w", name, err)
	}
	return nil
}

// StartService starts a Windows service by name via net start, treating
// "already been started" as success.
func StartService(ctx context.Context, name string) error {
	out, err := run(ctx, "net", "start", name)
	if err != nil && !strings.Contains(strings.ToLower(out), "already been started") {
		return fmt.Errorf("start service %s: %w", name, err)
	}
	return nil
}

// DisableHibernation turns off hibernation support (and deletes hiberfil.sys)
// via powercfg /hibernate off.
func DisableHibernation(ctx context.Context) error {
	_, err := run(ctx, "powercfg", "/hibernate", "off")
	if err != nil {
		return fmt.Errorf("disable hibernation: %w", err)
	}
	return nil
}

// EnableHibernation restores hibernation support via powercfg /hibernate on.
func EnableHibernation(ctx context.Context) error {
	_, err := run(ctx, "powercfg", "/hibernate", "on")
	if err != nil {
		return fmt.Errorf("enable hibernation: %w", err)
	}
	return nil
}

// CleanComponentStore runs the WinSxS component-store cleanup via DISM.
func CleanComponentStore(ctx context.Context) (string, error) {
	out, err := run(ctx, "dism.exe", "/Online", "/Cleanup-Image", "/StartComponentCleanup")
	if err != nil {
		return out, fmt.Errorf("clean component store: %w", err)
	}
	return out, nil
}

// LaunchDiskCleanupWizard starts the interactive Windows Disk Cleanup
// wizard (cleanmgr.exe) for the given drive letter, e.g. "C". The wizard
// runs detached; this call returns as soon as the process has started.
func LaunchDiskCleanupWizard(drive string) error {
	cmd := exec.Command("cleanmgr.exe", "/d", drive)
	cmd.SysProcAttr = &syscall.SysProcAttr{HideWindow: true}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("launch disk cleanup wizard: %w", err)
	}
	return nil
}

// ShowInFolder opens File Explorer with path selected, via
// explorer.exe /select,<path>.
func ShowInFolder(path string) error {
	cmd := exec.Command("explorer.exe", "/select,"+path)
	cmd.SysProcAttr = &syscall.SysProcAttr{HideWindow: true}
	// explorer.exe returns a nonzero/odd exit code even on success in some
	// Windows builds; only a failure to start the process is reported.
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("show %s in folder: %w", path, err)
	}
	return nil
}
