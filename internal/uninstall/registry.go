// Package uninstall implements the uninstall command:
// listing, filtering, and selecting installed applications, then driving
// their uninstall process to completion. App discovery itself is delegated
// to internal/appindex — the same registry-derived index the Safety Gate
// and leftover resolver consult — so this package never re-derives its own,
// independently-drifting view of what's installed.
package uninstall

import (
	"context"
	"strings"

	"github.com/cy-infamous/lightc/internal/appindex"
	"github.com/cy-infamous/lightc/internal/pathutil"
)

// InstalledApp is the registry-derived app record this package lists and
// acts on — an alias for appindex.App rather than a parallel struct, so a
// field added to one index is never silently missing from the other.
type InstalledApp = appindex.App

// GetInstalledApps builds the installed-application index (registry hives
// plus a best-effort WMI pass) and returns its human-facing app list.
// showAll controls whether system components and Windows updates are
// included — see appindex.Build. Entries without a DisplayName are never
// listed.
func GetInstalledApps(showAll bool) ([]InstalledApp, error) {
	idx, err := appindex.Build(context.Background(), showAll)
	if err != nil {
		return nil, err
	}
	return idx.Apps, nil
}

// FilterByPath returns the apps whose InstallLocation or bundle cache path
// falls under root, case-insensitively — used to scope the uninstall list
// to the current directory by default instead of listing every
// installed application regardless of where it lives.
func FilterByPath(apps []InstalledApp, root string) []InstalledApp {
	var filtered []InstalledApp
	for _, app := range apps {
		if app.InstallLocation != "" && pathutil.HasPrefix(app.InstallLocation, root) {
			filtered = append(filtered, app)
			continue
		}
		if app.BundleID != "" && pathutil.HasPrefix(app.BundleID, root) {
			filtered = append(filtered, app)
		}
	}
	return filtered
}

// FilterByName returns the apps whose Name contains search, case-insensitively.
func FilterByName(apps []InstalledApp, search string) []InstalledApp {
	if search == "" {
		return apps
	}
	lower := strings.ToLower(search)
	var filtered []InstalledApp
	for _, app := range apps {
		if strings.Contains(strings.ToLower(app.Name), lower) {
			filtered = append(filtered, app)
		}
	}
	return filtered
}
