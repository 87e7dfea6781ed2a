package sysinfo

import "testing"

func TestDiskUsagePercentIsWithinRange(t *testing.T) {
	du := DiskUsage{TotalBytes: 1000, FreeBytes: 250, UsedBytes: 750, UsedPercent: 75.0}
	if du.UsedPercent < 0 || du.UsedPercent > 100 {
		t.Fatalf("expected UsedPercent within [0,100], got %v", du.UsedPercent)
	}
	if du.UsedBytes+du.FreeBytes != du.TotalBytes {
		t.Fatalf("used+free should equal total, got %d+%d != %d", du.UsedBytes, du.FreeBytes, du.TotalBytes)
	}
}
