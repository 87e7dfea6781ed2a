// Package deletion implements the tiered remove strategy (direct,
// strip-attributes, take-ownership, mark-for-reboot), cluster-aligned
// physical-size accounting, and structured failure classification.
package deletion

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	acl "github.com/hectane/go-acl"
	aclapi "github.com/hectane/go-acl/api"
	"golang.org/x/sys/windows"

	"github.com/cy-infamous/lightc/internal/safety"
)

// FailureKind classifies why a candidate was not freed.
type FailureKind int

const (
	FailureNone FailureKind = iota
	NotFound
	PermissionDenied
	FileLocked
	SystemProtected
	OutOfScope
	MarkedForReboot
	Other
)

func (k FailureKind) String() string {
	switch k {
	case FailureNone:
		return "None"
	case NotFound:
		return "NotFound"
	case PermissionDenied:
		return "PermissionDenied"
	case FileLocked:
		return "FileLocked"
	case SystemProtected:
		return "SystemProtected"
	case OutOfScope:
		return "OutOfScope"
	case MarkedForReboot:
		return "MarkedForReboot"
	case Other:
		return "Other"
	}
	return "Unknown"
}

// Outcome is the per-candidate result. Success implies FailureKind ==
// FailureNone && !MarkedForReboot; MarkedForReboot implies FailureKind ==
// MarkedForReboot; PhysicalSize >= LogicalSize whenever LogicalSize > 0.
type Outcome struct {
	Path            string
	Success         bool
	LogicalSize     int64
	PhysicalSize    int64
	FailureKind     FailureKind
	FailureMessage  string
	MarkedForReboot bool
}

// Candidate is what the Engine needs to attempt a delete. CachedSize, if
// nonzero, is reused as the logical size instead of re-walking the directory
// (or stat-ing the file) — the caller (typically the scan planner) has
// usually already computed it. A zero CachedSize is always recomputed.
type Candidate struct {
	Path       string
	IsDir      bool
	CachedSize int64
}

// Engine owns the process's cluster-size reading and performs the tiered
// strategy. Construct one per session with New.
type Engine struct {
	clusterSize int64
}

// New queries the cluster size of drive (e.g. `C:\`) and falls back to 4096
// on any failure.
func New(drive string) *Engine {
	return &Engine{clusterSize: queryClusterSize(drive)}
}

func queryClusterSize(drive string) int64 {
	const fallback = 4096
	rootPtr, err := windows.UTF16PtrFromString(drive)
	if err != nil {
		return fallback
	}
	var sectorsPerCluster, bytesPerSector, freeClusters, totalClusters uint32
	if err := windows.GetDiskFreeSpace(rootPtr, &sectorsPerCluster, &bytesPerSector, &freeClusters, &totalClusters); err != nil {
		return fallback
	}
	size := int64(sectorsPerCluster) * int64(bytesPerSector)
	if size <= 0 {
		return fallback
	}
	return size
}

// ClusterSize returns the engine's cluster size in bytes.
func (e *Engine) ClusterSize() int64 { return e.clusterSize }

// PhysicalSize rounds logical up to the nearest multiple of cluster. Zero
// maps to zero.
func PhysicalSize(logical, cluster int64) int64 {
	if logical <= 0 {
		return 0
	}
	if cluster <= 0 {
		cluster = 4096
	}
	return ((logical + cluster - 1) / cluster) * cluster
}

// Delete evaluates the safety gate and, if it passes, runs the tiered
// removal strategy. The gate is always consulted here regardless of
// whether a caller already checked it upstream — the engine never bypasses
// the gate.
func (e *Engine) Delete(cand Candidate) Outcome {
	verdict := safety.Evaluate(safety.Candidate{Path: cand.Path, IsDir: cand.IsDir}, safety.Extras{})
	if !verdict.Allowed() {
		kind := SystemProtected
		if verdict.Kind == safety.OutOfScope {
			kind = OutOfScope
		}
		return Outcome{
			Path:           cand.Path,
			FailureKind:    kind,
			FailureMessage: fmt.Sprintf("gate rejected: %s(%s)", verdict.Kind, verdict.Reason),
		}
	}

	logical := cand.CachedSize
	if cand.IsDir && logical == 0 {
		logical = dirSize(cand.Path, 0, 20)
	} else if !cand.IsDir && logical == 0 {
		if info, err := os.Stat(cand.Path); err == nil {
			logical = info.Size()
		}
	}

	err := directRemove(cand.Path, cand.IsDir)
	if err == nil {
		return e.success(cand.Path, logical)
	}

	if isPermissionDenied(err) {
		if stripErr := stripAttributes(cand.Path, cand.IsDir); stripErr == nil {
			if err2 := directRemove(cand.Path, cand.IsDir); err2 == nil {
				return e.success(cand.Path, logical)
			} else {
				err = err2
			}
		}
	}

	if safety.AllowsOwnership(cand.Path) {
		if ownErr := takeOwnership(cand.Path, cand.IsDir); ownErr == nil {
			if err3 := directRemove(cand.Path, cand.IsDir); err3 == nil {
				return e.success(cand.Path, logical)
			} else {
				err = err3
			}
		}
	}

	if pathExists(cand.Path) && looksLockedOrAccessDenied(err) {
		if rebootErr := markForReboot(cand.Path, cand.IsDir); rebootErr == nil {
			return Outcome{
				Path:            cand.Path,
				LogicalSize:     logical,
				PhysicalSize:    PhysicalSize(logical, e.clusterSize),
				FailureKind:     MarkedForReboot,
				MarkedForReboot: true,
			}
		}
	}

	return Outcome{
		Path:           cand.Path,
		LogicalSize:    logical,
		PhysicalSize:   PhysicalSize(logical, e.clusterSize),
		FailureKind:    classify(err),
		FailureMessage: err.Error(),
	}
}

func (e *Engine) success(path string, logical int64) Outcome {
	return Outcome{
		Path:         path,
		Success:      true,
		LogicalSize:  logical,
		PhysicalSize: PhysicalSize(logical, e.clusterSize),
	}
}

func directRemove(path string, isDir bool) error {
	if isDir {
		return os.RemoveAll(path)
	}
	return os.Remove(path)
}

func pathExists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

func isPermissionDenied(err error) bool {
	if err == nil {
		return false
	}
	return os.IsPermission(err) || strings.Contains(strings.ToLower(err.Error()), "access is denied")
}

func looksLockedOrAccessDenied(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	// NOTE: string matching on translated Windows error text is
	// locale-sensitive; a production build should inspect the underlying
	// syscall error code instead.
	return strings.Contains(msg, "being used by another process") ||
		strings.Contains(msg, "sharing violation") ||
		strings.Contains(msg, "access is denied") ||
		strings.Contains(msg, "access denied")
}

func classify(err error) FailureKind {
	if err == nil {
		return FailureNone
	}
	if os.IsNotExist(err) {
		return NotFound
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "access is denied") || strings.Contains(msg, "access denied") || os.IsPermission(err) {
		return PermissionDenied
	}
	if strings.Contains(msg, "sharing violation") || strings.Contains(msg, "being used by another process") {
		return FileLocked
	}
	return Other
}

const (
	fileAttributeReadonly = 0x1
	fileAttributeHidden   = 0x2
	fileAttributeSystem   = 0x4
)

// stripAttributes clears read-only, hidden, and system bits (individually,
// preserving any other bits) on path, or on every entry under path if isDir.
func stripAttributes(path string, isDir bool) error {
	if !isDir {
		return clearAttrs(path)
	}
	return filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		_ = clearAttrs(p)
		return nil
	})
}

func clearAttrs(path string) error {
	ptr, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return err
	}
	attrs, err := windows.GetFileAttributes(ptr)
	if err != nil {
		return err
	}
	attrs &^= fileAttributeReadonly | fileAttributeHidden | fileAttributeSystem
	return windows.SetFileAttributes(ptr, attrs)
}

// takeOwnership grants the current process's principal full control over
// path (recursively for directories), continuing past per-entry errors.
func takeOwnership(path string, isDir bool) error {
	token, err := getCurrentProcessUserSID()
	if err != nil {
		return err
	}

	apply := func(p string) error {
		if err := aclapi.SetNamedSecurityInfo(
			p,
			aclapi.SE_FILE_OBJECT,
			aclapi.OWNER_SECURITY_INFORMATION,
			token,
			nil,
			0,
			0,
		); err != nil {
			return err
		}
		return acl.Chmod(p, 0o777)
	}

	if !isDir {
		return apply(path)
	}

	rootErr := apply(path)
	_ = filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		_ = apply(p)
		return nil
	})
	return rootErr
}

func getCurrentProcessUserSID() (*windows.SID, error) {
	tok := windows.GetCurrentProcessToken()
	user, err := tok.GetTokenUser()
	if err != nil {
		return nil, err
	}
	return user.User.Sid, nil
}

// markForReboot submits path (and, for a directory, every contained file
// plus the directory itself) to the OS's rename-on-next-boot list with a
// null destination — the GLOSSARY's definition of reboot-pending.
func markForReboot(path string, isDir bool) error {
	if isDir {
		var files []string
		walkErr := filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
			if err != nil {
				return nil
			}
			if !info.IsDir() {
				files = append(files, p)
			}
			return nil
		})
		if walkErr != nil {
			return walkErr
		}
		for _, f := range files {
			if err := moveFileDelayed(f); err != nil {
				return err
			}
		}
		return moveFileDelayed(path)
	}
	return moveFileDelayed(path)
}

func moveFileDelayed(path string) error {
	ptr, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return err
	}
	return windows.MoveFileEx(ptr, nil, windows.MOVEFILE_DELAY_UNTIL_REBOOT)
}

// dirSize sums the sizes of every file under path up to depth maxDepth.
func dirSize(path string, depth, maxDepth int) int64 {
	if depth > maxDepth {
		return 0
	}
	var total int64
	entries, err := os.ReadDir(path)
	if err != nil {
		return 0
	}
	for _, entry := range entries {
		full := filepath.Join(path, entry.Name())
		if entry.IsDir() {
			total += dirSize(full, depth+1, maxDepth)
			continue
		}
		if info, err := entry.Info(); err == nil {
			total += info.Size()
		}
	}
	return total
}
