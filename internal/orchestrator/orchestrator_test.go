package orchestrator

import (
	"testing"

	"github.com/cy-infamous/lightc/internal/category"
)

func TestResolveCategoryNamesMatchesDisplayName(t *testing.T) {
	all := category.All()
	if len(all) == 0 {
		t.Fatal("expected a non-empty category catalog")
	}
	def, _ := category.Get(all[0])

	resolved := resolveCategoryNames([]string{def.DisplayName})
	if len(resolved) != 1 || resolved[0] != all[0] {
		t.Fatalf("expected %v, got %v", all[0], resolved)
	}
}

func TestResolveCategoryNamesFallsBackToRawValue(t *testing.T) {
	resolved := resolveCategoryNames([]string{"not-a-display-name"})
	if len(resolved) != 1 || resolved[0] != category.Category("not-a-display-name") {
		t.Fatalf("expected fallback raw category, got %v", resolved)
	}
}
