// Package leftover implements orphan-application-data discovery under the
// three well-known app-data roots, gated by a static whitelist, the
// installed-app index, and freshness/size thresholds.
package leftover

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/cy-infamous/lightc/internal/deletion"
	"github.com/cy-infamous/lightc/internal/pathutil"
	"github.com/cy-infamous/lightc/internal/safety"
)

// Root tags which of the three well-known app-data roots an entry came from.
type Root string

const (
	RootLocal     Root = "local"
	RootRoaming   Root = "roaming"
	RootProgramData Root = "program-data"
)

// Thresholds are the tunable gates applied after the static whitelist and
// installed-index checks.
type Thresholds struct {
	FreshnessAge time.Duration // default 30 days
	MinSize      int64         // default 1 MiB
}

// DefaultThresholds returns the stock freshness/size gates.
func DefaultThresholds() Thresholds {
	return Thresholds{
		FreshnessAge: 30 * 24 * time.Hour,
		MinSize:      1 << 20,
	}
}

// Entry is one surviving orphaned directory.
type Entry struct {
	Path       string
	Root       Root
	Size       int64
	FileCount  int
	ModTime    int64 // unix seconds
}

// whitelistSubstrings covers Microsoft/Windows system folders, common driver
// vendors, major runtimes, mainstream end-user apps, and anything beginning
// with a dot — rejected before any further gate runs.
var whitelistSubstrings = []string{
	"microsoft", "windows", "nvidia", "intel", "amd", "realtek",
	".net", "java", "python", "node", "vcredist", "directx",
	"google", "mozilla", "adobe", "spotify", "steam", "discord", "zoom",
}

func isWhitelisted(name string) bool {
	lname := pathutil.Lower(name)
	if strings.HasPrefix(lname, ".") {
		return true
	}
	for _, s := range whitelistSubstrings {
		if strings.Contains(lname, s) {
			return true
		}
	}
	return false
}

// installedIndex is the narrow interface this package needs from
// internal/appindex.Index.
type installedIndex interface {
	IsInstalled(token string) bool
}

// Roots resolves the three well-known app-data roots from the environment.
func Roots() map[Root]string {
	m := map[Root]string{}
	if v := os.Getenv("LOCALAPPDATA"); v != "" {
		m[RootLocal] = v
	}
	if v := os.Getenv("APPDATA"); v != "" {
		m[RootRoaming] = v
	}
	if v := os.Getenv("ProgramData"); v != "" {
		m[RootProgramData] = v
	}
	return m
}

// Scan enumerates immediate subdirectories of every resolved root, applies
// the whitelist, installed-index, freshness, and size gates in order, and
// returns surviving entries sorted by size descending.
func Scan(idx installedIndex, th Thresholds) []Entry {
	var entries []Entry
	now := time.Now()

	for root, path := range Roots() {
		children, err := os.ReadDir(path)
		if err != nil {
			continue
		}
		for _, child := range children {
			if !child.IsDir() {
				continue
			}
			name := child.Name()

			if isWhitelisted(name) {
				continue
			}
			if idx != nil && idx.IsInstalled(pathutil.Lower(name)) {
				continue
			}

			full := filepath.Join(path, name)
			info, err := child.Info()
			if err != nil {
				continue
			}
			if now.Sub(info.ModTime()) < th.FreshnessAge {
				continue
			}

			size, count := dirSizeAndCount(full)
			if size < th.MinSize {
				continue
			}

			entries = append(entries, Entry{
				Path:      full,
				Root:      root,
				Size:      size,
				FileCount: count,
				ModTime:   info.ModTime().Unix(),
			})
		}
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Size > entries[j].Size })
	return entries
}

func dirSizeAndCount(path string) (int64, int) {
	var size int64
	var count int
	_ = filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if info, infoErr := d.Info(); infoErr == nil {
			size += info.Size()
			count++
		}
		return nil
	})
	return size, count
}

// DeleteOutcome adds the leftover-specific review flag on top of the
// Deletion Engine's Outcome.
type DeleteOutcome struct {
	deletion.Outcome
	NeedsManualReview bool
	Executables       []string
}

// ScanExecutablesForSafetyCheck exposes the bounded executable scan for
// standalone safety checks run outside an actual leftover-delete flow
// (internal/orchestrator's check-leftover-safety operation).
func ScanExecutablesForSafetyCheck(dir string) []string {
	return scanExecutables(dir)
}

// scanExecutables performs the bounded recursive scan gate layer 7 needs:
// depth cap 5, first 10 hits.
func scanExecutables(dir string) []string {
	const maxDepth = 5
	const maxHits = 10
	execExts := map[string]bool{
		"exe": true, "dll": true, "sys": true, "drv": true,
		"ocx": true, "cpl": true, "scr": true,
	}

	var hits []string
	rootDepth := strings.Count(filepath.Clean(dir), string(os.PathSeparator))
	_ = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || len(hits) >= maxHits {
			return nil
		}
		if path == dir {
			return nil
		}
		depth := strings.Count(path, string(os.PathSeparator)) - rootDepth
		if depth > maxDepth {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		ext := pathutil.Extension(path)
		if execExts[ext] {
			hits = append(hits, d.Name())
			if len(hits) >= maxHits {
				return filepath.SkipAll
			}
		}
		return nil
	})
	return hits
}

// Delete runs the Leftover-specific Safety Gate layers (registry presence,
// executable presence) and, if they pass, the Deletion Engine. An
// executable-presence rejection is not a hard failure — it is surfaced as
// NeedsManualReview with the collected hit list, and no delete is attempted.
func Delete(engine *deletion.Engine, idx installedIndex, entry Entry) DeleteOutcome {
	verdict := safety.Evaluate(safety.Candidate{Path: entry.Path, IsDir: true}, safety.Extras{
		RunLeftoverLayers: true,
		InstalledIndex:    idx,
		ScanExecutables:   scanExecutables,
	})

	if verdict.Kind == safety.ContainsExecutables {
		return DeleteOutcome{
			Outcome:           deletion.Outcome{Path: entry.Path, LogicalSize: entry.Size, PhysicalSize: deletion.PhysicalSize(entry.Size, engine.ClusterSize())},
			NeedsManualReview: true,
			Executables:       verdict.Executables,
		}
	}
	if !verdict.Allowed() {
		kind := deletion.SystemProtected
		if verdict.Kind == safety.OutOfScope {
			kind = deletion.OutOfScope
		}
		return DeleteOutcome{
			Outcome: deletion.Outcome{
				Path:         entry.Path,
				LogicalSize:  entry.Size,
				PhysicalSize: deletion.PhysicalSize(entry.Size, engine.ClusterSize()),
				FailureKind:  kind,
			},
		}
	}

	out := engine.Delete(deletion.Candidate{Path: entry.Path, IsDir: true, CachedSize: entry.Size})
	return DeleteOutcome{Outcome: out}
}
