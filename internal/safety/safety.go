// Package safety implements the fixed, ordered deny/allow predicate stack
// every deletion candidate must pass, whether it came from the scan
// planner, the leftover resolver, or the registry resolver.
package safety

import (
	"os"
	"strings"

	"github.com/cy-infamous/lightc/internal/pathutil"
)

// Kind tags a Verdict's variant.
type Kind int

const (
	Safe Kind = iota
	ProtectedPathPrefix
	ProtectedFileName
	ProtectedExtensionInSystemDir
	UserCriticalRoot
	DriveRoot
	OutOfScope
	FoundInRegistry
	ContainsExecutables
)

func (k Kind) String() string {
	switch k {
	case Safe:
		return "Safe"
	case ProtectedPathPrefix:
		return "ProtectedPathPrefix"
	case ProtectedFileName:
		return "ProtectedFileName"
	case ProtectedExtensionInSystemDir:
		return "ProtectedExtensionInSystemDir"
	case UserCriticalRoot:
		return "UserCriticalRoot"
	case DriveRoot:
		return "DriveRoot"
	case OutOfScope:
		return "OutOfScope"
	case FoundInRegistry:
		return "FoundInRegistry"
	case ContainsExecutables:
		return "ContainsExecutables"
	}
	return "Unknown"
}

// Verdict is the Gate's tagged-variant result. Reason carries the variant's
// payload (the matched prefix, file name, extension, root suffix, or
// registry field=value pair); Executables carries ContainsExecutables'
// collected hit list.
type Verdict struct {
	Kind        Kind
	Reason      string
	Executables []string
}

// Allowed reports whether the candidate may proceed.
func (v Verdict) Allowed() bool {
	return v.Kind == Safe
}

func safe() Verdict { return Verdict{Kind: Safe} }

func deny(kind Kind, reason string) Verdict {
	return Verdict{Kind: kind, Reason: reason}
}

// protectedPrefixes is the vocabulary for layer 1, grounded on the never-
// delete path list: the Windows system subtrees, Program Files variants,
// the default user profile, public desktop, ProgramData's Windows-owned
// subtrees, Recovery, and the recycle-bin root.
func protectedPrefixes() []string {
	sr := systemRoot()
	sd := systemDrive()
	pd := programData()

	return []string{
		strings.ToLower(sr + `\system32`),
		strings.ToLower(sr + `\syswow64`),
		strings.ToLower(sr + `\winsxs`),
		strings.ToLower(sr + `\assembly`),
		strings.ToLower(sr + `\system32\config`),
		strings.ToLower(sr + `\servicing`),
		strings.ToLower(sr + `\installer`),
		strings.ToLower(sr + `\logs\cbs`),
		strings.ToLower(sd + `program files`),
		strings.ToLower(sd + `program files (x86)`),
		strings.ToLower(sd + `users\default`),
		strings.ToLower(sd + `users\public\desktop`),
		strings.ToLower(pd + `\microsoft\windows defender`),
		strings.ToLower(pd + `\microsoft\windows`),
		strings.ToLower(sd + `recovery`),
		strings.ToLower(sd + `$recycle.bin`),
	}
}

// protectedFileNames is layer 2's fixed set: system-critical files whose
// deletion would break Windows or destroy irreplaceable user data.
var protectedFileNames = map[string]bool{
	"ntdll.dll":     true,
	"kernel32.dll":  true,
	"kernelbase.dll": true,
	"ntoskrnl.exe":  true,
	"bootmgr":       true,
	"bootmgr.efi":   true,
	"winload.exe":   true,
	"winload.efi":   true,
	"pagefile.sys":  true,
	"swapfile.sys":  true,
	"hiberfil.sys":  true,
	"ntuser.dat":    true,
	"usrclass.dat":  true,
	"desktop.ini":   true,
	// social/chat app data whose loss destroys irreplaceable user history.
	"index.db":      true,
	"msgstore.db":   true,
	"accounts.json": true,
}

// systemDirExtensions is layer 3's protected extension set — only applies
// to paths containing "\windows\".
var systemDirExtensions = map[string]bool{
	"sys": true, "dll": true, "exe": true, "drv": true, "ocx": true,
	"cpl": true, "msi": true, "msp": true, "msu": true, "cat": true,
	"mum": true, "manifest": true,
}

// userCriticalRootSuffixes is layer 4's fixed set — these are rejected only
// as the root itself; sub-trees beneath them are allowed.
var userCriticalRootSuffixes = []string{
	`\appdata\local`, `\appdata\roaming`, `\documents`, `\desktop`, `\downloads`,
}

// safeOwnershipSubstrings gates the Take-Ownership escalation: ownership may
// only be reassigned under a low-sensitivity subtree, regardless of what the
// base layers already permitted.
var safeOwnershipSubstrings = []string{
	`\temp`, `\tmp`, `\cache`, `\prefetch`, `$recycle.bin`,
}

// registryWhitelistSubstrings gates the Registry Resolver's own candidate
// keys (distinct from the filesystem layers above, but part of the same
// package since both are Gate vocabularies).
var registryWhitelistSubstrings = []string{
	`microsoft`, `windows`, `wow6432node\classes`, `intel`, `nvidia`, `amd`,
	`realtek`, `.net framework`, `microsoft visual c++`, `directx`,
}

// Candidate is the minimal shape the Gate needs for the base five layers.
type Candidate struct {
	Path  string
	IsDir bool
}

// Extras carries the optional, caller-supplied inputs the Leftover-specific
// layers need; a zero-value Extras runs only the base five layers.
type Extras struct {
	// RunLeftoverLayers enables layers 6-7.
	RunLeftoverLayers bool
	InstalledIndex    installedIndex
	// ScanExecutables, if non-nil, performs the bounded recursive scan for
	// layer 7. It must return at most the first executables found, already
	// depth-limited by the caller (depth cap 5, first 10 hits).
	ScanExecutables func(dir string) []string

	// CheckOwnership, when true, also evaluates the Take-Ownership positive
	// list after the base five layers and folds a failure into the verdict
	// as OutOfScope. The Deletion Engine does not set it; it calls
	// AllowsOwnership directly before attempting escalation.
	CheckOwnership bool
}

// installedIndex is the minimal interface the Gate needs from
// internal/appindex.Index, kept narrow so this package does not import
// appindex and create a cycle.
type installedIndex interface {
	IsInstalled(token string) bool
}

// Evaluate runs the fixed layer sequence against cand and returns the first
// non-Safe verdict, or Safe if every layer passes. Evaluate performs no IO
// beyond Extras.ScanExecutables, which the caller supplies pre-bounded.
func Evaluate(cand Candidate, extras Extras) Verdict {
	lp := pathutil.Lower(cand.Path)

	// Layer 1: Protected Path Prefix.
	for _, prefix := range protectedPrefixes() {
		if strings.HasPrefix(lp, prefix) {
			return deny(ProtectedPathPrefix, prefix)
		}
	}

	// Layer 2: Protected File Name.
	base := strings.ToLower(pathutil.Basename(cand.Path))
	if protectedFileNames[base] {
		return deny(ProtectedFileName, base)
	}

	// Layer 3: Extension-in-System-Dir.
	if strings.Contains(lp, `\windows\`) {
		ext := pathutil.Extension(cand.Path)
		if systemDirExtensions[ext] {
			return deny(ProtectedExtensionInSystemDir, ext)
		}
	}

	// Layer 4: User-Critical Roots (the root itself only, not sub-trees).
	normalized := strings.TrimRight(lp, `\`)
	for _, suffix := range userCriticalRootSuffixes {
		if strings.HasSuffix(normalized, suffix) {
			return deny(UserCriticalRoot, suffix)
		}
	}

	// Layer 5: Drive Root.
	if len(cand.Path) <= 3 && strings.HasSuffix(cand.Path, `\`) {
		return deny(DriveRoot, cand.Path)
	}

	if extras.CheckOwnership && !AllowsOwnership(cand.Path) {
		return deny(OutOfScope, "outside the take-ownership positive list")
	}

	if !extras.RunLeftoverLayers {
		return safe()
	}

	// Layer 6: Registry Presence.
	if extras.InstalledIndex != nil && extras.InstalledIndex.IsInstalled(base) {
		return deny(FoundInRegistry, base)
	}

	// Layer 7: Executable Presence.
	if extras.ScanExecutables != nil {
		hits := extras.ScanExecutables(cand.Path)
		if len(hits) > 0 {
			return Verdict{Kind: ContainsExecutables, Executables: hits}
		}
	}

	return safe()
}

// AllowsOwnership evaluates the Take-Ownership positive list independently
// of Evaluate's deny-first layers — ownership escalation requires that the
// path *contain* one of the safe-ownership substrings, on top of whatever
// Evaluate already permitted.
func AllowsOwnership(path string) bool {
	lp := pathutil.Lower(path)
	for _, s := range safeOwnershipSubstrings {
		if strings.Contains(lp, s) {
			return true
		}
	}
	return false
}

// RegistryKeyAllowed reports whether keyPath survives the registry
// whitelist — used by the Registry Resolver before the installed-app and
// orphan checks it layers on top.
func RegistryKeyAllowed(keyPath string) bool {
	lp := pathutil.Lower(keyPath)
	for _, s := range registryWhitelistSubstrings {
		if strings.Contains(lp, s) {
			return false
		}
	}
	return true
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
