// Package category implements the closed, process-constant table of junk
// categories, their scan-path templates, and their filename glob patterns.
package category

import (
	"os"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/cy-infamous/lightc/internal/pathutil"
)

// Category is a closed sum type by convention (a string underlying type
// plus the constants below) — there is no registration mechanism and no
// caller may introduce a new value.
type Category string

const (
	WindowsTemp     Category = "windows-temp"
	SystemCache     Category = "system-cache"
	BrowserCache    Category = "browser-cache"
	RecycleBin      Category = "recycle-bin"
	WindowsUpdate   Category = "windows-update"
	ThumbnailCache  Category = "thumbnail-cache"
	LogFiles        Category = "log-files"
	MemoryDump      Category = "memory-dump"
	OldInstall      Category = "old-install"
	AppCache        Category = "app-cache"
	FontCache       Category = "font-cache"
	ErrorReports    Category = "error-reports"
	InstallerTemp   Category = "installer-temp"
	ClipboardCache  Category = "clipboard-cache"
)

// TemplateKind distinguishes the two ScanPathTemplate variants.
type TemplateKind int

const (
	// Fixed is a template whose path never varies by environment.
	Fixed TemplateKind = iota
	// EnvBased resolves an environment variable, optionally joined with a
	// fixed subpath.
	EnvBased
)

// ScanPathTemplate is a tagged Fixed/EnvBased path source.
type ScanPathTemplate struct {
	Kind    TemplateKind
	Path    string // Fixed: the absolute path itself.
	EnvVar  string // EnvBased: the variable name, e.g. "LOCALAPPDATA".
	SubPath string // EnvBased: optional subpath joined after the resolved var.
}

// FixedPath constructs a Fixed template.
func FixedPath(p string) ScanPathTemplate {
	return ScanPathTemplate{Kind: Fixed, Path: p}
}

// EnvPath constructs an EnvBased template.
func EnvPath(envVar, sub string) ScanPathTemplate {
	return ScanPathTemplate{Kind: EnvBased, EnvVar: envVar, SubPath: sub}
}

// Resolve returns (path, true) if the template resolves to a path that
// currently exists, or ("", false) otherwise — an EnvBased template whose
// variable is unset, or any template whose resolved path is absent from
// disk, yields false. Resolution itself never errors — an unresolved
// template is simply skipped by the caller.
func (t ScanPathTemplate) Resolve() (string, bool) {
	var p string
	switch t.Kind {
	case Fixed:
		p = t.Path
	case EnvBased:
		v := os.Getenv(t.EnvVar)
		if v == "" {
			return "", false
		}
		if t.SubPath != "" {
			p = pathutil.Env(v + `\` + t.SubPath)
		} else {
			p = v
		}
	}
	if p == "" {
		return "", false
	}
	if _, err := os.Stat(p); err != nil {
		return "", false
	}
	return p, true
}

// Definition is the static, process-constant attribute set for one Category.
type Definition struct {
	Category    Category
	DisplayName string
	Description string
	RiskLevel   int // 1 (safest) .. 5
	Templates   []ScanPathTemplate
	Patterns    []string // glob patterns, matched case-insensitively
}

// catalog is built once and never mutated. Declaration order is the walked
// order within each category.
var catalog = buildCatalog()

func buildCatalog() map[Category]Definition {
	sr := systemRoot()
	pd := programData()
	sd := systemDrive()

	defs := []Definition{
		{
			Category:    WindowsTemp,
			DisplayName: "Windows Temp",
			Description: "System-wide temporary files under %SystemRoot%\\Temp",
			RiskLevel:   1,
			Templates:   []ScanPathTemplate{FixedPath(sr + `\Temp`)},
			Patterns:    []string{"*"},
		},
		{
			Category:    SystemCache,
			DisplayName: "System Cache",
			Description: "CBS/DISM servicing logs and Delivery Optimization cache",
			RiskLevel:   2,
			Templates: []ScanPathTemplate{
				FixedPath(sr + `\Logs\CBS`),
				FixedPath(sr + `\Logs\DISM`),
				FixedPath(sr + `\SoftwareDistribution\DeliveryOptimization`),
			},
			Patterns: []string{"*"},
		},
		{
			Category:    BrowserCache,
			DisplayName: "Browser Cache",
			Description: "Chrome, Edge, Firefox, and Brave on-disk caches",
			RiskLevel:   1,
			Templates: []ScanPathTemplate{
				EnvPath("LOCALAPPDATA", `Google\Chrome\User Data\Default\Cache`),
				EnvPath("LOCALAPPDATA", `Google\Chrome\User Data\Default\Code Cache`),
				EnvPath("LOCALAPPDATA", `Microsoft\Edge\User Data\Default\Cache`),
				EnvPath("LOCALAPPDATA", `BraveSoftware\Brave-Browser\User Data\Default\Cache`),
			},
			Patterns: []string{"*"},
		},
		{
			Category:    RecycleBin,
			DisplayName: "Recycle Bin",
			Description: "Contents of the system drive's $Recycle.Bin",
			RiskLevel:   2,
			Templates:   []ScanPathTemplate{FixedPath(sd + `$Recycle.Bin`)},
			Patterns:    []string{"*"},
		},
		{
			Category:    WindowsUpdate,
			DisplayName: "Windows Update Cache",
			Description: "Downloaded update payloads awaiting installation cleanup",
			RiskLevel:   2,
			Templates:   []ScanPathTemplate{FixedPath(sr + `\SoftwareDistribution\Download`)},
			Patterns:    []string{"*"},
		},
		{
			Category:    ThumbnailCache,
			DisplayName: "Thumbnail Cache",
			Description: "Explorer thumbnail database files",
			RiskLevel:   1,
			Templates:   []ScanPathTemplate{EnvPath("LOCALAPPDATA", `Microsoft\Windows\Explorer`)},
			Patterns:    []string{"thumbcache_*.db", "iconcache_*.db"},
		},
		{
			Category:    LogFiles,
			DisplayName: "Log Files",
			Description: "User- and app-data-level .log files",
			RiskLevel:   1,
			Templates: []ScanPathTemplate{
				EnvPath("LOCALAPPDATA", "Temp"),
				EnvPath("APPDATA", ""),
			},
			Patterns: []string{"*.log"},
		},
		{
			Category:    MemoryDump,
			DisplayName: "Memory Dumps",
			Description: "Kernel memory dump and minidump crash files",
			RiskLevel:   1,
			Templates: []ScanPathTemplate{
				FixedPath(sr + `\MEMORY.DMP`),
				FixedPath(sr + `\Minidump`),
			},
			Patterns: []string{"*.dmp", "*.mdmp", "*"},
		},
		{
			Category:    OldInstall,
			DisplayName: "Previous Windows Installation",
			Description: "Windows.old left behind by an in-place upgrade",
			RiskLevel:   5,
			Templates:   []ScanPathTemplate{FixedPath(sd + `Windows.old`)},
			Patterns:    []string{"*"},
		},
		{
			Category:    AppCache,
			DisplayName: "Application Cache",
			Description: "Generic per-user application cache directories",
			RiskLevel:   2,
			Templates: []ScanPathTemplate{
				EnvPath("LOCALAPPDATA", ""),
			},
			Patterns: []string{"*cache*"},
		},
		{
			Category:    FontCache,
			DisplayName: "Font Cache",
			Description: "Windows font cache service data (rebuilds automatically)",
			RiskLevel:   3,
			Templates:   []ScanPathTemplate{FixedPath(sr + `\ServiceProfiles\LocalService\AppData\Local\FontCache`)},
			Patterns:    []string{"*"},
		},
		{
			Category:    ErrorReports,
			DisplayName: "Windows Error Reports",
			Description: "WER queue/archive crash diagnostics",
			RiskLevel:   1,
			Templates: []ScanPathTemplate{
				EnvPath("LOCALAPPDATA", `Microsoft\Windows\WER\ReportArchive`),
				EnvPath("LOCALAPPDATA", `Microsoft\Windows\WER\ReportQueue`),
				FixedPath(pd + `\Microsoft\Windows\WER\ReportQueue`),
			},
			Patterns: []string{"*"},
		},
		{
			Category:    InstallerTemp,
			DisplayName: "Installer Temp",
			Description: "Leftover MSI/EXE installer staging files",
			RiskLevel:   2,
			Templates: []ScanPathTemplate{
				EnvPath("LOCALAPPDATA", "Temp"),
			},
			Patterns: []string{"*.msi", "*.msp", "~*.tmp", "is-*.tmp"},
		},
		{
			Category:    ClipboardCache,
			DisplayName: "Clipboard History Cache",
			Description: "Windows cloud clipboard local cache",
			RiskLevel:   1,
			Templates:   []ScanPathTemplate{EnvPath("LOCALAPPDATA", `Microsoft\Windows\Clipboard`)},
			Patterns:    []string{"*"},
		},
	}

	m := make(map[Category]Definition, len(defs))
	for _, d := range defs {
		m[d.Category] = d
	}
	return m
}

// All returns every category in a stable, declaration order.
func All() []Category {
	order := []Category{
		WindowsTemp, SystemCache, BrowserCache, RecycleBin, WindowsUpdate,
		ThumbnailCache, LogFiles, MemoryDump, OldInstall, AppCache,
		FontCache, ErrorReports, InstallerTemp, ClipboardCache,
	}
	return order
}

// Get returns the static Definition for a Category. The bool is false for
// any value outside the closed set (defensive; cannot happen via the
// exported constants).
func Get(c Category) (Definition, bool) {
	d, ok := catalog[c]
	return d, ok
}

// Matches reports whether name (a basename, no directory component) matches
// any of d's glob patterns. Matching is case-insensitive; a bare "*" pattern
// matches every name including ones doublestar would otherwise treat
// specially, since filenames under scan never contain a path separator.
func (d Definition) Matches(name string) bool {
	lname := pathutil.Lower(name)
	for _, pat := range d.Patterns {
		if pat == "*" {
			return true
		}
		ok, err := doublestar.Match(pathutil.Lower(pat), lname)
		if err == nil && ok {
			return true
		}
	}
	return false
}

func systemRoot() string {
	if v := os.Getenv("SystemRoot"); v != "" {
		return v
	}
	return `C:\Windows`
}

func programData() string {
	if v := os.Getenv("ProgramData"); v != "" {
		return v
	}
	return `C:\ProgramData`
}

func systemDrive() string {
	sr := systemRoot()
	if len(sr) >= 2 {
		return sr[:2] + `\`
	}
	return `C:\`
}
