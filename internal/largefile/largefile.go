// Package largefile walks the system drive for the 50 largest files,
// reporting throttled progress and honoring a process-wide cancellation
// flag polled at each directory-entry boundary.
package largefile

import (
	"container/heap"
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"
)

// File is one entry in the result set.
type File struct {
	Path    string
	Size    int64
	ModTime int64 // unix seconds
}

const topN = 50

// progressInterval and progressEntryStep bound how often Progress fires:
// at most once per 200ms or once per 1,000 visited entries, whichever
// comes first.
const (
	progressInterval  = 200 * time.Millisecond
	progressEntryStep = 1000
)

// Progress is delivered at most once per 200ms or per 1,000 visited
// filesystem entries.
type Progress struct {
	CurrentPath string
	Visited     int
}

// cancelled is the process-wide cancellation flag for the large-file scan
// pipeline. Only one scan runs at a time by convention of the caller.
var cancelled atomic.Bool

// Cancel sets the process-wide flag; the active Scan observes it at the
// next directory-entry boundary and returns its partial top-N heap.
func Cancel() {
	cancelled.Store(true)
}

// minHeap keeps the topN largest files seen so far, smallest at the root
// so a new candidate only needs comparing against the current minimum.
type minHeap []File

func (h minHeap) Len() int            { return len(h) }
func (h minHeap) Less(i, j int) bool  { return h[i].Size < h[j].Size }
func (h minHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *minHeap) Push(x interface{}) { *h = append(*h, x.(File)) }
func (h *minHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// Scan walks root (e.g. `C:\`) depth-first, tracking the topN largest
// files by size. It returns descending-by-size as soon as the walk
// completes, is cancelled via Cancel, or ctx is done — in every case the
// partial heap contents collected so far.
func Scan(ctx context.Context, root string, onProgress func(Progress)) ([]File, bool, error) {
	cancelled.Store(false)
	h := &minHeap{}
	heap.Init(h)

	visited := 0
	lastReport := time.Now()
	wasCancelled := false

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			// IO failures are swallowed per entry; the walk continues.
			return nil
		}
		if ctx.Err() != nil || cancelled.Load() {
			wasCancelled = true
			return filepath.SkipAll
		}

		visited++
		if onProgress != nil && (visited%progressEntryStep == 0 || time.Since(lastReport) >= progressInterval) {
			onProgress(Progress{CurrentPath: path, Visited: visited})
			lastReport = time.Now()
		}

		if d.IsDir() {
			return nil
		}
		info, infoErr := d.Info()
		if infoErr != nil {
			return nil
		}

		size := info.Size()
		if h.Len() < topN {
			heap.Push(h, File{Path: path, Size: size, ModTime: info.ModTime().Unix()})
		} else if size > (*h)[0].Size {
			heap.Pop(h)
			heap.Push(h, File{Path: path, Size: size, ModTime: info.ModTime().Unix()})
		}
		return nil
	})
	if err != nil {
		return nil, wasCancelled, err
	}

	out := make([]File, h.Len())
	copy(out, *h)
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	sortDesc(out)
	return out, wasCancelled, nil
}

func sortDesc(files []File) {
	for i := 1; i < len(files); i++ {
		for j := i; j > 0 && files[j].Size > files[j-1].Size; j-- {
			files[j], files[j-1] = files[j-1], files[j]
		}
	}
}
