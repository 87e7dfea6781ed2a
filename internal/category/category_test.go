package category

import "testing"

func TestAllMatchesCatalog(t *testing.T) {
	for _, c := range All() {
		if _, ok := Get(c); !ok {
			t.Errorf("category %q listed in All() has no catalog Definition", c)
		}
	}
}

func TestMatchesExactSuffixPattern(t *testing.T) {
	d, _ := Get(ThumbnailCache)
	if !d.Matches("thumbcache_256.db") {
		t.Fatal("expected thumbcache_256.db to match thumbcache_*.db")
	}
	if d.Matches("notes.txt") {
		t.Fatal("notes.txt should not match thumbnail cache patterns")
	}
}

func TestMatchesCaseInsensitive(t *testing.T) {
	d, _ := Get(LogFiles)
	if !d.Matches("SETUP.LOG") {
		t.Fatal("expected case-insensitive match against *.log")
	}
}

func TestMatchesWildcardAll(t *testing.T) {
	d, _ := Get(WindowsTemp)
	if !d.Matches("anything.bin") {
		t.Fatal("bare * pattern should match any name")
	}
}

func TestFixedTemplateResolvesOnlyIfPresent(t *testing.T) {
	tmpl := FixedPath(`Z:\definitely\does\not\exist\anywhere`)
	if _, ok := tmpl.Resolve(); ok {
		t.Fatal("expected Resolve to report false for a nonexistent fixed path")
	}
}

func TestEnvTemplateResolvesFalseWhenUnset(t *testing.T) {
	tmpl := EnvPath("LIGHTC_TEST_VAR_NOT_SET", "sub")
	if _, ok := tmpl.Resolve(); ok {
		t.Fatal("expected Resolve to report false for an unset env var")
	}
}
