// Package pathutil implements the case-insensitive path comparison and
// environment-variable expansion primitives every other core package builds
// on.
package pathutil

import (
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
)

// fold is the Unicode-aware case fold used for all path comparisons. It is
// stricter than strings.ToLower for non-ASCII casing (Turkish İ, German ß
// in install paths written by non-English installers) without changing
// behavior for the ASCII paths that make up the overwhelming majority of
// Windows filesystem/registry content this package compares.
var fold = cases.Fold()

// Lower case-folds s for comparison. The original casing is never discarded
// from the value a caller stores — Lower is only ever applied at comparison
// time, never before storing a path for display or IO.
func Lower(s string) string {
	return fold.String(s)
}

// normalize strips all trailing separators so that "...\Desktop" and
// "...\Desktop\" compare identically before any suffix/equality check.
func normalize(p string) string {
	p = strings.TrimRight(p, `\/`)
	return p
}

// HasPrefix reports whether p starts with prefix q, case-insensitively, on a
// path-segment boundary: `C:\Windows2\x` does not start with `C:\Windows`.
func HasPrefix(p, q string) bool {
	lp, lq := Lower(normalize(p)), Lower(normalize(q))
	if !strings.HasPrefix(lp, lq) {
		return false
	}
	return len(lp) == len(lq) || lq == "" || lp[len(lq)] == '\\' || lp[len(lq)] == '/'
}

// HasSuffix reports whether p ends with suffix q, case-insensitively, after
// trimming trailing separators from both sides.
func HasSuffix(p, q string) bool {
	return strings.HasSuffix(Lower(normalize(p)), Lower(normalize(q)))
}

// Contains reports whether p contains q anywhere, case-insensitively.
func Contains(p, q string) bool {
	return strings.Contains(Lower(p), Lower(q))
}

// Equal reports case-insensitive equality after trailing-separator
// normalization.
func Equal(p, q string) bool {
	return Lower(normalize(p)) == Lower(normalize(q))
}

// Basename returns filepath.Base(p), unmodified casing.
func Basename(p string) string {
	return filepath.Base(p)
}

// Extension returns the lowercased extension of p without the leading dot,
// e.g. Extension(`C:\x\drivers\old.SYS`) == "sys". Returns "" for a path
// with no extension.
func Extension(p string) string {
	ext := filepath.Ext(p)
	return strings.TrimPrefix(Lower(ext), ".")
}

// IsDriveRoot reports whether p is exactly a drive root like `C:\` — length
// at most 3 and ending in a separator.
func IsDriveRoot(p string) bool {
	return len(p) <= 3 && strings.HasSuffix(p, `\`)
}

// Env resolves %VAR% and $VAR/${VAR} syntax against the process environment.
// An unresolved %VAR% collapses to empty string rather than an error.
func Env(s string) string {
	result := s
	for {
		start := strings.IndexByte(result, '%')
		if start == -1 {
			break
		}
		end := strings.IndexByte(result[start+1:], '%')
		if end == -1 {
			break
		}
		end += start + 1
		name := result[start+1 : end]
		if name == "" {
			result = result[:start] + "%" + result[end+1:]
			continue
		}
		result = result[:start] + os.Getenv(name) + result[end+1:]
	}
	return os.ExpandEnv(result)
}
