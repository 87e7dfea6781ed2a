// Package registryresolver implements the Registry Resolver (spec
// component H): it scans the MUI cache, the current user's Software hive,
// and the Classes-root Applications key for orphan entries, exports a
// mandatory .reg backup before any mutation, and performs the gated delete.
package registryresolver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sys/windows/registry"

	"github.com/cy-infamous/lightc/internal/pathutil"
	"github.com/cy-infamous/lightc/internal/safety"
)

// Kind tags which of the three scan areas an entry came from.
type Kind string

const (
	MuiCache             Kind = "MuiCache"
	SoftwareKey          Kind = "SoftwareKey"
	ApplicationAssociation Kind = "ApplicationAssociation"
)

// Entry is one orphan registry finding.
type Entry struct {
	HivePath       string // fully-qualified, textual
	Name           string // value name (MuiCache) or subkey name (others)
	Kind           Kind
	AssociatedPath string // filesystem path the entry referenced, if any
	Issue          string
	RiskLevel      int
}

// installedIndex is the narrow interface this package needs from
// internal/appindex.Index.
type installedIndex interface {
	IsInstalled(token string) bool
}

const muiCacheExplorer = `Software\Microsoft\Windows\ShellNoRoam\MUICache`
const muiCacheShell = `Software\Classes\Local Settings\Software\Microsoft\Windows\Shell\MuiCache`
const softwareRoot = `Software`
const classesApplications = `Software\Classes\Applications`

// ScanMuiCache parses every value name under the two known MUI cache
// locations for an embedded filesystem path, emitting an orphan when the
// referenced file no longer exists.
func ScanMuiCache() []Entry {
	var entries []Entry
	for _, path := range []string{muiCacheExplorer, muiCacheShell} {
		entries = append(entries, scanMuiCacheKey(path)...)
	}
	return entries
}

func scanMuiCacheKey(path string) []Entry {
	key, err := registry.OpenKey(registry.CURRENT_USER, path, registry.QUERY_VALUE)
	if err != nil {
		return nil
	}
	defer key.Close()

	names, err := key.ReadValueNames(-1)
	if err != nil {
		return nil
	}

	var entries []Entry
	for _, name := range names {
		fsPath, ok := extractFSPath(name)
		if !ok {
			continue
		}
		if _, statErr := os.Stat(fsPath); statErr == nil {
			continue
		}
		entries = append(entries, Entry{
			HivePath:       `HKCU\` + path,
			Name:           name,
			Kind:           MuiCache,
			AssociatedPath: fsPath,
			Issue:          "referenced executable no longer exists",
			RiskLevel:      1,
		})
	}
	return entries
}

// extractFSPath strips a leading "@" and locates the first ".exe" or ".dll"
// occurrence, requiring a drive-letter prefix on the result.
func extractFSPath(name string) (string, bool) {
	s := strings.TrimPrefix(name, "@")
	lower := pathutil.Lower(s)

	idx := -1
	for _, ext := range []string{".exe", ".dll"} {
		if i := strings.Index(lower, ext); i != -1 {
			end := i + len(ext)
			if idx == -1 || end < idx {
				idx = end
			}
		}
	}
	if idx == -1 {
		return "", false
	}
	candidate := s[:idx]
	if len(candidate) < 3 || candidate[1] != ':' {
		return "", false
	}
	return candidate, true
}

// ScanSoftwareKeys enumerates immediate subkeys of HKCU\Software, rejecting
// via the registry whitelist and the Installed-App Index, then skips any
// subkey that still holds a value or child key: only empty keys are emitted
// as orphans.
func ScanSoftwareKeys(idx installedIndex) []Entry {
	key, err := registry.OpenKey(registry.CURRENT_USER, softwareRoot, registry.ENUMERATE_SUB_KEYS)
	if err != nil {
		return nil
	}
	defer key.Close()

	names, err := key.ReadSubKeyNames(-1)
	if err != nil {
		return nil
	}

	var entries []Entry
	for _, name := range names {
		keyPath := softwareRoot + `\` + name
		if !safety.RegistryKeyAllowed(keyPath) {
			continue
		}
		if idx != nil && idx.IsInstalled(pathutil.Lower(name)) {
			continue
		}
		if hasContent(registry.CURRENT_USER, keyPath) {
			continue
		}
		entries = append(entries, Entry{
			HivePath:  `HKCU\` + keyPath,
			Name:      name,
			Kind:      SoftwareKey,
			Issue:     "empty key with no installed application reference",
			RiskLevel: 3,
		})
	}
	return entries
}

func hasContent(root registry.Key, path string) bool {
	sub, err := registry.OpenKey(root, path, registry.QUERY_VALUE|registry.ENUMERATE_SUB_KEYS)
	if err != nil {
		return false
	}
	defer sub.Close()

	if names, err := sub.ReadValueNames(1); err == nil && len(names) > 0 {
		return true
	}
	if names, err := sub.ReadSubKeyNames(1); err == nil && len(names) > 0 {
		return true
	}
	return false
}

// applicationAssociationSources lists every hive view that carries its own
// Classes\Applications tree. CLASSES_ROOT is the merged view the shell
// actually resolves associations through — it folds in HKLM\Software\Classes
// alongside HKCU\Software\Classes, so a machine-wide association registered
// only under HKLM is invisible to a scan that only ever opens CURRENT_USER.
// Under CLASSES_ROOT the Applications key already hangs directly off the
// root (CLASSES_ROOT *is* "Software\Classes"), so its path has no prefix.
var applicationAssociationSources = []struct {
	root       registry.Key
	path       string
	hivePrefix string
}{
	{registry.CURRENT_USER, classesApplications, `HKCU\`},
	{registry.CLASSES_ROOT, `Applications`, `HKCR\`},
}

// ScanApplicationAssociations enumerates Classes\Applications subkeys across
// every source in applicationAssociationSources, parses each shell\open\command
// value, and emits an orphan when the referenced executable is no longer on
// disk.
func ScanApplicationAssociations(idx installedIndex) []Entry {
	var entries []Entry
	for _, src := range applicationAssociationSources {
		entries = append(entries, scanApplicationAssociationSource(idx, src.root, src.path, src.hivePrefix)...)
	}
	return entries
}

func scanApplicationAssociationSource(idx installedIndex, root registry.Key, basePath, hivePrefix string) []Entry {
	key, err := registry.OpenKey(root, basePath, registry.ENUMERATE_SUB_KEYS)
	if err != nil {
		return nil
	}
	defer key.Close()

	names, err := key.ReadSubKeyNames(-1)
	if err != nil {
		return nil
	}

	var entries []Entry
	for _, name := range names {
		keyPath := basePath + `\` + name
		if !safety.RegistryKeyAllowed(keyPath) {
			continue
		}
		if idx != nil && idx.IsInstalled(pathutil.Lower(name)) {
			continue
		}

		cmd, ok := readOpenCommand(root, keyPath)
		if !ok {
			continue
		}
		exe := parseFirstToken(cmd)
		if exe == "" {
			continue
		}
		if _, statErr := os.Stat(exe); statErr == nil {
			continue
		}

		entries = append(entries, Entry{
			HivePath:       hivePrefix + keyPath,
			Name:           name,
			Kind:           ApplicationAssociation,
			AssociatedPath: exe,
			Issue:          "associated executable no longer exists",
			RiskLevel:      3,
		})
	}
	return entries
}

func readOpenCommand(root registry.Key, keyPath string) (string, bool) {
	path := keyPath + `\shell\open\command`
	key, err := registry.OpenKey(root, path, registry.QUERY_VALUE)
	if err != nil {
		return "", false
	}
	defer key.Close()

	val, _, err := key.GetStringValue("")
	if err != nil {
		return "", false
	}
	return val, true
}

func parseFirstToken(cmd string) string {
	cmd = strings.TrimSpace(cmd)
	if cmd == "" {
		return ""
	}
	if cmd[0] == '"' {
		if end := strings.Index(cmd[1:], `"`); end != -1 {
			return cmd[1 : end+1]
		}
		return strings.TrimPrefix(cmd, `"`)
	}
	if i := strings.IndexByte(cmd, ' '); i != -1 {
		return cmd[:i]
	}
	return cmd
}

// BackupDir is the directory under the user's documents folder that
// registry .reg backups are written to.
func BackupDir() string {
	home := os.Getenv("USERPROFILE")
	return filepath.Join(home, "Documents", "LightC", "RegistryBackups")
}

// ExportBackup writes a textual .reg-format backup of entries to a
// timestamped file under BackupDir and returns its path. Each section holds
// the entry's key path and, for a MuiCache entry, its value name with empty
// data; value data and the values and subkeys beneath an entry's key are
// not exported. The export must
// succeed and be flushed before any corresponding delete is attempted — a
// backup failure is fatal for the whole delete request.
func ExportBackup(entries []Entry, now time.Time) (string, error) {
	dir := BackupDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}

	filename := fmt.Sprintf("lightc_registry_backup_%s.reg", now.Format("20060102_150405"))
	path := filepath.Join(dir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create backup file: %w", err)
	}

	fmt.Fprintf(f, "Windows Registry Editor Version 5.00\n\n")
	fmt.Fprintf(f, "; lightc registry backup — %s\n", now.Format(time.RFC3339))
	fmt.Fprintf(f, "; restoring this file does not undo filesystem changes; review before applying.\n\n")

	for _, e := range entries {
		fmt.Fprintf(f, "[%s]\n", e.HivePath)
		if e.Kind == MuiCache {
			fmt.Fprintf(f, "\"%s\"=\"\"\n", e.Name)
		}
		fmt.Fprintln(f)
	}

	if err := f.Sync(); err != nil {
		f.Close()
		return "", fmt.Errorf("flush backup file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close backup file: %w", err)
	}

	return path, nil
}

// DeleteOutcome is the per-entry delete result.
type DeleteOutcome struct {
	Entry   Entry
	Success bool
	Err     error
}

// DeleteEntries exports entries as a backup first; if the backup write
// fails, no entries are removed. Otherwise it deletes each entry per its
// kind — MuiCache removes the named value, the other kinds remove the
// named subkey and all descendants — continuing past individual failures.
func DeleteEntries(entries []Entry, now time.Time) (backupPath string, outcomes []DeleteOutcome, err error) {
	backupPath, err = ExportBackup(entries, now)
	if err != nil {
		return "", nil, fmt.Errorf("registry backup failed, aborting delete: %w", err)
	}

	for _, e := range entries {
		outcomes = append(outcomes, deleteOne(e))
	}
	return backupPath, outcomes, nil
}

func deleteOne(e Entry) DeleteOutcome {
	keyPath, root := splitHivePath(e.HivePath)

	if e.Kind == MuiCache {
		key, err := registry.OpenKey(root, keyPath, registry.SET_VALUE)
		if err != nil {
			return DeleteOutcome{Entry: e, Err: err}
		}
		defer key.Close()
		if err := key.DeleteValue(e.Name); err != nil {
			return DeleteOutcome{Entry: e, Err: err}
		}
		return DeleteOutcome{Entry: e, Success: true}
	}

	if err := registry.DeleteKey(root, keyPath); err != nil {
		if err := deleteKeyRecursive(root, keyPath); err != nil {
			return DeleteOutcome{Entry: e, Err: err}
		}
	}
	return DeleteOutcome{Entry: e, Success: true}
}

func deleteKeyRecursive(root registry.Key, path string) error {
	key, err := registry.OpenKey(root, path, registry.ENUMERATE_SUB_KEYS)
	if err == nil {
		subs, _ := key.ReadSubKeyNames(-1)
		key.Close()
		for _, s := range subs {
			_ = deleteKeyRecursive(root, path+`\`+s)
		}
	}
	return registry.DeleteKey(root, path)
}

func splitHivePath(full string) (keyPath string, root registry.Key) {
	if strings.HasPrefix(full, `HKCU\`) {
		return strings.TrimPrefix(full, `HKCU\`), registry.CURRENT_USER
	}
	if strings.HasPrefix(full, `HKLM\`) {
		return strings.TrimPrefix(full, `HKLM\`), registry.LOCAL_MACHINE
	}
	if strings.HasPrefix(full, `HKCR\`) {
		return strings.TrimPrefix(full, `HKCR\`), registry.CLASSES_ROOT
	}
	return full, registry.CURRENT_USER
}
