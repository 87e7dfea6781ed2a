// Package appindex builds a registry-derived picture of what software is
// currently installed, used by the safety gate and leftover resolver to
// tell an active app's data apart from an orphaned one's.
package appindex

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/yusufpapurcu/wmi"
	"golang.org/x/sys/windows/registry"

	"github.com/cy-infamous/lightc/internal/pathutil"
)

// App is one entry read from an uninstall registry key.
type App struct {
	Name                 string
	Version              string
	Publisher            string
	InstallDate          string
	EstimatedSize        int64
	UninstallString      string
	QuietUninstallString string
	InstallLocation      string
	BundleID             string
	IsSystemComponent    bool
}

type registrySource struct {
	root registry.Key
	path string
}

var uninstallSources = []registrySource{
	{registry.LOCAL_MACHINE, `SOFTWARE\Microsoft\Windows\CurrentVersion\Uninstall`},
	{registry.LOCAL_MACHINE, `SOFTWARE\WOW6432Node\Microsoft\Windows\CurrentVersion\Uninstall`},
	{registry.CURRENT_USER, `SOFTWARE\Microsoft\Windows\CurrentVersion\Uninstall`},
}

var kbPattern = regexp.MustCompile(`(?i)\bKB\d{6,}\b`)

// Index is the flattened, queryable view of installed software built from
// the registry hives. It is immutable once constructed.
type Index struct {
	Apps []App

	// tokens holds every lowercased Name/Publisher/InstallLocation/basename
	// fragment worth substring-matching against.
	tokens []string
}

// Build scans all three uninstall hives plus a best-effort WMI secondary
// source and returns the combined, deduplicated Index. showAll controls
// whether system components and KB-update entries are included in Apps —
// the flat token set used by IsInstalled always includes everything found,
// regardless of showAll, since the Safety Gate must not be fooled by an
// app hidden from the human-facing uninstall list.
func Build(ctx context.Context, showAll bool) (*Index, error) {
	seen := make(map[string]bool)
	var apps, all []App

	for _, src := range uninstallSources {
		found, err := readAppsFromKey(src.root, src.path)
		if err != nil {
			continue
		}
		for _, app := range found {
			key := strings.ToLower(app.Name + "|" + app.Version)
			if seen[key] {
				continue
			}
			seen[key] = true
			all = append(all, app)

			if !showAll {
				if app.Name == "" || app.IsSystemComponent || kbPattern.MatchString(app.Name) {
					continue
				}
			}
			apps = append(apps, app)
		}
	}

	idx := &Index{Apps: apps}
	idx.tokens = buildTokens(all)

	if wmiApps, err := readWMIProducts(ctx); err == nil {
		idx.tokens = append(idx.tokens, buildTokensFromWMI(wmiApps)...)
	}

	sort.Slice(idx.Apps, func(i, j int) bool {
		return idx.Apps[i].EstimatedSize > idx.Apps[j].EstimatedSize
	})

	return idx, nil
}

func buildTokens(apps []App) []string {
	var tokens []string
	for _, a := range apps {
		tokens = appendToken(tokens, a.Name)
		tokens = appendToken(tokens, a.Publisher)
		tokens = appendToken(tokens, a.InstallLocation)
		if a.InstallLocation != "" {
			tokens = appendToken(tokens, pathutil.Basename(a.InstallLocation))
		}
	}
	return tokens
}

// minTokenLen is the floor both the query token and every indexed token
// must meet before IsInstalled will treat a substring match as evidence —
// a 2-3 character Publisher/InstallLocation fragment (a stray "any" or
// "net") has too many false positives to safely match against.
const minTokenLen = 4

func appendToken(tokens []string, s string) []string {
	s = strings.TrimSpace(s)
	if len(s) < minTokenLen {
		return tokens
	}
	return append(tokens, pathutil.Lower(s))
}

// IsInstalled applies a minimum-length substring heuristic: both the query
// token and the indexed field it's compared against must be at least
// minTokenLen characters. Shorter tokens are never treated as installed-app
// evidence on either side of the comparison.
func (idx *Index) IsInstalled(token string) bool {
	token = strings.TrimSpace(token)
	if len(token) < minTokenLen {
		return false
	}
	lt := pathutil.Lower(token)
	for _, t := range idx.tokens {
		if strings.Contains(t, lt) || strings.Contains(lt, t) {
			return true
		}
	}
	return false
}

func readAppsFromKey(root registry.Key, path string) ([]App, error) {
	key, err := registry.OpenKey(root, path, registry.ENUMERATE_SUB_KEYS|registry.QUERY_VALUE)
	if err != nil {
		return nil, err
	}
	defer key.Close()

	subkeys, err := key.ReadSubKeyNames(-1)
	if err != nil {
		return nil, err
	}

	var apps []App
	for _, name := range subkeys {
		app, readErr := readAppFromSubKey(root, path+`\`+name)
		if readErr != nil {
			continue
		}
		if app.Name == "" {
			continue
		}
		apps = append(apps, app)
	}
	return apps, nil
}

func readAppFromSubKey(root registry.Key, path string) (App, error) {
	key, err := registry.OpenKey(root, path, registry.QUERY_VALUE)
	if err != nil {
		return App{}, err
	}
	defer key.Close()

	app := App{
		Name:                 sanitize(readStringValue(key, "DisplayName"), 512),
		Version:              sanitize(readStringValue(key, "DisplayVersion"), 128),
		Publisher:            sanitize(readStringValue(key, "Publisher"), 256),
		InstallDate:          sanitize(readStringValue(key, "InstallDate"), 32),
		UninstallString:      sanitize(readStringValue(key, "UninstallString"), 2048),
		QuietUninstallString: sanitize(readStringValue(key, "QuietUninstallString"), 2048),
		InstallLocation:      sanitize(readStringValue(key, "InstallLocation"), 1024),
		BundleID:             sanitize(readStringValue(key, "BundleCachePath"), 1024),
	}

	if size, _, sizeErr := key.GetIntegerValue("EstimatedSize"); sizeErr == nil {
		app.EstimatedSize = int64(size) * 1024
	}
	if sc, _, scErr := key.GetIntegerValue("SystemComponent"); scErr == nil {
		app.IsSystemComponent = sc == 1
	}

	return app, nil
}

func readStringValue(key registry.Key, name string) string {
	val, _, err := key.GetStringValue(name)
	if err != nil {
		return ""
	}
	return val
}

func sanitize(s string, maxLen int) string {
	if len(s) > maxLen {
		s = s[:maxLen]
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsControl(r) && r != '\t' {
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

// win32Product mirrors the WMI Win32_Product class fields this package reads.
type win32Product struct {
	Name        string
	Vendor      string
	InstallLocation string
}

// readWMIProducts is a secondary, best-effort installed-software source.
// Win32_Product is notoriously slow and occasionally triggers MSI repair
// scans as a side effect of querying it, so any failure here is silent and
// never blocks Build — the registry hives remain the primary source.
func readWMIProducts(ctx context.Context) ([]win32Product, error) {
	var dst []win32Product
	done := make(chan error, 1)
	go func() {
		done <- wmi.Query("SELECT Name, Vendor, InstallLocation FROM Win32_Product", &dst)
	}()
	select {
	case err := <-done:
		if err != nil {
			return nil, err
		}
		return dst, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func buildTokensFromWMI(products []win32Product) []string {
	var tokens []string
	for _, p := range products {
		tokens = appendToken(tokens, p.Name)
		tokens = appendToken(tokens, p.Vendor)
		tokens = appendToken(tokens, p.InstallLocation)
	}
	return tokens
}
