// Package orchestrator is the invocation-surface layer the front-end
// (CLI commands today, an RPC boundary in principle) calls into. It wires
// the nine core packages together into the eleven operations a caller can
// request — scan, delete, and registry-resolution requests — translating
// between their narrow package-level APIs and one request/result shape
// per operation. It holds no gate or deletion logic of its own.
package orchestrator

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/cy-infamous/lightc/internal/accounting"
	"github.com/cy-infamous/lightc/internal/appindex"
	"github.com/cy-infamous/lightc/internal/category"
	"github.com/cy-infamous/lightc/internal/deletion"
	"github.com/cy-infamous/lightc/internal/externaltools"
	"github.com/cy-infamous/lightc/internal/largefile"
	"github.com/cy-infamous/lightc/internal/leftover"
	"github.com/cy-infamous/lightc/internal/planner"
	"github.com/cy-infamous/lightc/internal/registryresolver"
	"github.com/cy-infamous/lightc/internal/safety"
)

// windowsUpdateService is stopped before and restarted after clearing the
// Windows-Update category's cache, mirroring the stock cleanup flow that
// requires the service to release its file locks first.
const windowsUpdateService = "wuauserv"

// Core bundles the long-lived, read-only-after-construction collaborators
// a session needs: the installed-app index and the deletion engine's
// cluster-size reading. Build one per CLI invocation (or once and reuse,
// for a long-running front-end).
type Core struct {
	Index  *appindex.Index
	Engine *deletion.Engine
}

// NewCore builds the installed-app index and queries the system drive's
// cluster size. showAll mirrors appindex.Build's flag.
func NewCore(ctx context.Context, showAll bool, systemDrive string) (*Core, error) {
	idx, err := appindex.Build(ctx, showAll)
	if err != nil {
		return nil, fmt.Errorf("build installed-app index: %w", err)
	}
	return &Core{Index: idx, Engine: deletion.New(systemDrive)}, nil
}

// ScanJunk resolves and walks every requested category (or every category
// when names is empty) and returns one CategoryResult per attempted
// category plus the combined totals.
func ScanJunk(ctx context.Context, names []string) ([]planner.CategoryResult, int64, int, error) {
	cats := category.All()
	if len(names) > 0 {
		cats = resolveCategoryNames(names)
	}
	results, err := planner.Scan(ctx, cats)
	if err != nil {
		return nil, 0, 0, err
	}
	return results, planner.TotalSize(results), planner.TotalItems(results), nil
}

// ScanCategoryByName resolves a single category by its display name and
// scans it in isolation.
func ScanCategoryByName(ctx context.Context, name string) (planner.CategoryResult, error) {
	cats := resolveCategoryNames([]string{name})
	if len(cats) == 0 {
		return planner.CategoryResult{}, fmt.Errorf("unknown category %q", name)
	}
	results, err := planner.Scan(ctx, cats[:1])
	if err != nil {
		return planner.CategoryResult{}, err
	}
	return results[0], nil
}

func resolveCategoryNames(names []string) []category.Category {
	byDisplay := make(map[string]category.Category)
	for _, c := range category.All() {
		def, _ := category.Get(c)
		byDisplay[def.DisplayName] = c
	}
	var out []category.Category
	for _, n := range names {
		if c, ok := byDisplay[n]; ok {
			out = append(out, c)
			continue
		}
		// fall back to treating n as the raw Category value itself
		out = append(out, category.Category(n))
	}
	return out
}

// ScanLargeFiles walks systemDrive for the 50 largest files, delivering
// throttled progress to onProgress. It returns the result set and whether
// the walk was cut short by CancelLargeFileScan or ctx cancellation.
func ScanLargeFiles(ctx context.Context, systemDrive string, onProgress func(largefile.Progress)) ([]largefile.File, bool, error) {
	return largefile.Scan(ctx, systemDrive, onProgress)
}

// CancelLargeFileScan sets the process-wide cancellation flag the active
// large-file walk polls at each directory-entry boundary.
func CancelLargeFileScan() {
	largefile.Cancel()
}

// ScanLeftovers finds orphan app-data directories using the stock
// freshness/size thresholds, sorted by size descending.
func ScanLeftovers(idx *appindex.Index) []leftover.Entry {
	return ScanLeftoversWithThresholds(idx, leftover.DefaultThresholds())
}

// ScanLeftoversWithThresholds is ScanLeftovers with caller-supplied
// freshness/size gates, letting configured overrides (internal/config) take
// effect without touching the stock defaults.
func ScanLeftoversWithThresholds(idx *appindex.Index, thresholds leftover.Thresholds) []leftover.Entry {
	return leftover.Scan(idx, thresholds)
}

// ScanRegistry runs all three registry-orphan scans (MUI cache, user-hive
// software keys, application associations) and concatenates the results.
func ScanRegistry(idx *appindex.Index) []registryresolver.Entry {
	var out []registryresolver.Entry
	out = append(out, registryresolver.ScanMuiCache()...)
	out = append(out, registryresolver.ScanSoftwareKeys(idx)...)
	out = append(out, registryresolver.ScanApplicationAssociations(idx)...)
	return out
}

// DeleteRequest describes one deletion candidate, as surfaced by a prior
// scan-junk or scan-large-files call.
type DeleteRequest struct {
	Path       string
	IsDir      bool
	CachedSize int64
}

// Delete runs the base Safety Gate (no leftover-specific layers, matching
// scan-junk/scan-large-files candidates which are never orphan app data)
// against each path, then the tiered Deletion Engine for every candidate
// that passes, accumulating outcomes into session.
func Delete(core *Core, session *accounting.Session, categoryLabel string, reqs []DeleteRequest) []deletion.Outcome {
	if categoryLabel == string(category.WindowsUpdate) {
		ctx := context.Background()
		if err := externaltools.StopService(ctx, windowsUpdateService); err == nil {
			defer externaltools.StartService(ctx, windowsUpdateService)
		}
	}

	outcomes := make([]deletion.Outcome, 0, len(reqs))
	for _, r := range reqs {
		verdict := safety.Evaluate(safety.Candidate{Path: r.Path, IsDir: r.IsDir}, safety.Extras{})
		if !verdict.Allowed() {
			kind := deletion.SystemProtected
			if verdict.Kind == safety.OutOfScope {
				kind = deletion.OutOfScope
			}
			out := deletion.Outcome{
				Path:           r.Path,
				Success:        false,
				FailureKind:    kind,
				FailureMessage: fmt.Sprintf("%s: %s", verdict.Kind, verdict.Reason),
			}
			outcomes = append(outcomes, out)
			session.RecordDeletion(categoryLabel, out)
			continue
		}
		out := core.Engine.Delete(deletion.Candidate{Path: r.Path, IsDir: r.IsDir, CachedSize: r.CachedSize})
		outcomes = append(outcomes, out)
		session.RecordDeletion(categoryLabel, out)
	}
	return outcomes
}

// EnhancedDelete is Delete's entry point for callers that want the same
// per-entry physical-size/reboot-pending detail the Outcome already
// carries — the shape is identical, named separately to match the
// invocation surface's own naming.
func EnhancedDelete(core *Core, session *accounting.Session, categoryLabel string, reqs []DeleteRequest) []deletion.Outcome {
	return Delete(core, session, categoryLabel, reqs)
}

// DeleteLeftoversPermanent runs the leftover-specific gate layers (registry
// presence, executable presence) against each path before attempting the
// tiered delete, and reports manual-review flags for anything the gate
// would not silently allow.
func DeleteLeftoversPermanent(core *Core, session *accounting.Session, entries []leftover.Entry) []leftover.DeleteOutcome {
	outcomes := make([]leftover.DeleteOutcome, 0, len(entries))
	for _, e := range entries {
		out := leftover.Delete(core.Engine, core.Index, e)
		outcomes = append(outcomes, out)
		if out.NeedsManualReview {
			session.RecordManualReview(e.Path, e.Size)
		} else {
			session.RecordDeletion("Leftover", out.Outcome)
		}
	}
	return outcomes
}

// DeleteRegistry exports a backup before removing any entry; if the
// backup write fails, no entries are removed and the error is returned.
func DeleteRegistry(entries []registryresolver.Entry) (string, []registryresolver.DeleteOutcome, error) {
	return registryresolver.DeleteEntries(entries, time.Now())
}

// CheckLeftoverSafety evaluates the full leftover gate stack against a
// single path and reports the resulting verdict, without deleting
// anything.
func CheckLeftoverSafety(idx *appindex.Index, path string) safety.Verdict {
	info, err := os.Stat(path)
	isDir := err == nil && info.IsDir()
	return safety.Evaluate(safety.Candidate{Path: path, IsDir: isDir}, safety.Extras{
		RunLeftoverLayers: true,
		InstalledIndex:    idx,
		ScanExecutables:   scanExecutablesShallow,
	})
}

// scanExecutablesShallow mirrors internal/leftover's bounded executable
// scan (depth cap 5, first 10 hits) for a standalone safety check outside
// an actual leftover-delete flow.
func scanExecutablesShallow(dir string) []string {
	return leftover.ScanExecutablesForSafetyCheck(dir)
}
