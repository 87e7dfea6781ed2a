// Package sysinfo wraps disk free-space and OS build reads used to report
// session context (how full is the drive, what Windows build is this). It
// is a front-end collaborator — no core package (safety, deletion, planner,
// leftover, registryresolver, accounting) imports it.
package sysinfo

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/yusufpapurcu/wmi"
)

// DiskUsage is a snapshot of one drive's capacity.
type DiskUsage struct {
	Path        string
	TotalBytes  uint64
	FreeBytes   uint64
	UsedBytes   uint64
	UsedPercent float64
}

// ReadDiskUsage reports the usage of the drive containing path, e.g. `C:\`.
func ReadDiskUsage(path string) (DiskUsage, error) {
	st, err := disk.Usage(path)
	if err != nil {
		return DiskUsage{}, fmt.Errorf("reading disk usage for %s: %w", path, err)
	}
	return DiskUsage{
		Path:        path,
		TotalBytes:  st.Total,
		FreeBytes:   st.Free,
		UsedBytes:   st.Used,
		UsedPercent: st.UsedPercent,
	}, nil
}

// OSInfo is the build identity of the running Windows host.
type OSInfo struct {
	Platform        string
	PlatformVersion string
	KernelVersion   string
	Build           string
}

// ReadOSInfo reads the OS platform/version via gopsutil, then supplements
// the build number via WMI's Win32_OperatingSystem (gopsutil does not
// expose the raw build number on Windows).
func ReadOSInfo(ctx context.Context) (OSInfo, error) {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return OSInfo{}, fmt.Errorf("reading host info: %w", err)
	}
	out := OSInfo{
		Platform:        info.Platform,
		PlatformVersion: info.PlatformVersion,
		KernelVersion:   info.KernelVersion,
	}
	out.Build = readWMIBuildNumber(ctx)
	return out, nil
}

type win32OS struct {
	BuildNumber string
}

func readWMIBuildNumber(ctx context.Context) string {
	type result struct {
		rows []win32OS
		err  error
	}
	done := make(chan result, 1)
	go func() {
		var rows []win32OS
		err := wmi.Query("SELECT BuildNumber FROM Win32_OperatingSystem", &rows)
		done <- result{rows: rows, err: err}
	}()

	select {
	case <-ctx.Done():
		return ""
	case r := <-done:
		if r.err != nil || len(r.rows) == 0 {
			return ""
		}
		return r.rows[0].BuildNumber
	}
}
