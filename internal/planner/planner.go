// Package planner resolves a category's scan-path templates into concrete
// targets, walks them depth-first with a protected-tree prefilter and a
// depth cap, and emits matched FileCandidates with directory sizes rolled
// up. Categories run concurrently across a worker pool.
package planner

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/cy-infamous/lightc/internal/category"
	"github.com/cy-infamous/lightc/internal/pathutil"
)

// DefaultWalkDepth is the default depth cap for a category scan.
const DefaultWalkDepth = 10

// DirSizeDepth is the depth cap applied when rolling up a directory
// candidate's recursive size — a second, independent walk from the scan walk.
const DirSizeDepth = 20

// protectedTreeSubstrings prunes descent into subtrees the scan must never
// enumerate further.
var protectedTreeSubstrings = []string{
	`system32`, `syswow64`, `winsxs`, `assembly`,
	`\windows\servicing`, `\windows\installer`, `\windows\logs\cbs`,
	`\program files`, `\program files (x86)`,
	`\programdata\microsoft\windows defender`,
	`\users\default`,
}

func isProtectedTree(path string) bool {
	lp := pathutil.Lower(path)
	for _, s := range protectedTreeSubstrings {
		if strings.Contains(lp, s) {
			return true
		}
	}
	return false
}

// FileCandidate is a single matched scan result.
type FileCandidate struct {
	Path        string
	LogicalSize int64
	ModTime     int64 // unix seconds
	IsDir       bool
	Category    category.Category
}

// CategoryResult aggregates one category's candidates.
type CategoryResult struct {
	Category  category.Category
	Items     []FileCandidate
	TotalSize int64
}

// Scan resolves and walks every category in cats concurrently, one worker
// per category, and returns one CategoryResult per category that was
// attempted (a category with no matches still appears, with an empty Items
// slice).
func Scan(ctx context.Context, cats []category.Category) ([]CategoryResult, error) {
	results := make([]CategoryResult, len(cats))
	g, gctx := errgroup.WithContext(ctx)

	for i, c := range cats {
		i, c := i, c
		g.Go(func() error {
			results[i] = scanOne(gctx, c)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func scanOne(ctx context.Context, cat category.Category) CategoryResult {
	def, ok := category.Get(cat)
	result := CategoryResult{Category: cat}
	if !ok {
		return result
	}

	for _, tmpl := range def.Templates {
		root, resolved := tmpl.Resolve()
		if !resolved {
			continue
		}
		if ctx.Err() != nil {
			return result
		}
		walkTarget(root, def, &result)
	}

	for _, item := range result.Items {
		result.TotalSize += item.LogicalSize
	}
	return result
}

func walkTarget(root string, def category.Definition, result *CategoryResult) {
	info, err := os.Lstat(root)
	if err != nil {
		return
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return
	}

	if !info.IsDir() {
		if def.Matches(info.Name()) {
			result.Items = append(result.Items, FileCandidate{
				Path:        root,
				LogicalSize: info.Size(),
				ModTime:     info.ModTime().Unix(),
				Category:    def.Category,
			})
		}
		return
	}

	rootDepth := strings.Count(filepath.Clean(root), string(os.PathSeparator))

	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if path == root {
			return nil
		}

		if d.Type()&os.ModeSymlink != 0 {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		depth := strings.Count(path, string(os.PathSeparator)) - rootDepth
		if depth > DefaultWalkDepth {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if isProtectedTree(path) {
				return filepath.SkipDir
			}
			if def.Matches(d.Name()) {
				size := dirSize(path, 0, DirSizeDepth)
				modTime := int64(0)
				if info, infoErr := d.Info(); infoErr == nil {
					modTime = info.ModTime().Unix()
				}
				result.Items = append(result.Items, FileCandidate{
					Path:        path,
					LogicalSize: size,
					ModTime:     modTime,
					IsDir:       true,
					Category:    def.Category,
				})
				return filepath.SkipDir
			}
			return nil
		}

		if !def.Matches(d.Name()) {
			return nil
		}
		info, infoErr := d.Info()
		if infoErr != nil {
			return nil
		}
		result.Items = append(result.Items, FileCandidate{
			Path:        path,
			LogicalSize: info.Size(),
			ModTime:     info.ModTime().Unix(),
			Category:    def.Category,
		})
		return nil
	})
}

// dirSize sums contained file sizes, capped at maxDepth — a directory walked
// a second time during sizing is capped independently of the scan walk's
// own depth cap.
func dirSize(path string, depth, maxDepth int) int64 {
	if depth > maxDepth {
		return 0
	}
	var total int64
	entries, err := os.ReadDir(path)
	if err != nil {
		return 0
	}
	for _, e := range entries {
		full := filepath.Join(path, e.Name())
		if e.IsDir() {
			total += dirSize(full, depth+1, maxDepth)
			continue
		}
		if info, err := e.Info(); err == nil {
			total += info.Size()
		}
	}
	return total
}

// TotalSize sums TotalSize across every result.
func TotalSize(results []CategoryResult) int64 {
	var total int64
	for _, r := range results {
		total += r.TotalSize
	}
	return total
}

// TotalItems sums item counts across every result.
func TotalItems(results []CategoryResult) int {
	var total int
	for _, r := range results {
		total += len(r.Items)
	}
	return total
}
