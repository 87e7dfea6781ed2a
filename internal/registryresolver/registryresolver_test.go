package registryresolver

import "testing"

func TestExtractFSPathRequiresDriveLetter(t *testing.T) {
	path, ok := extractFSPath(`@C:\Program Files\Foo\foo.exe,-1`)
	if !ok || path != `C:\Program Files\Foo\foo.exe` {
		t.Fatalf("expected C:\\Program Files\\Foo\\foo.exe, got %q ok=%v", path, ok)
	}
}

func TestExtractFSPathRejectsNoDriveLetter(t *testing.T) {
	if _, ok := extractFSPath(`relative\path\foo.exe`); ok {
		t.Fatal("a path without a drive-letter prefix must be rejected")
	}
}

func TestExtractFSPathRejectsNoExtension(t *testing.T) {
	if _, ok := extractFSPath(`C:\Some\Random\Thing`); ok {
		t.Fatal("a name with no .exe/.dll marker must be rejected")
	}
}

func TestParseFirstTokenQuoted(t *testing.T) {
	if got := parseFirstToken(`"C:\Program Files\App\app.exe" --flag`); got != `C:\Program Files\App\app.exe` {
		t.Fatalf("expected quoted path extracted, got %q", got)
	}
}

func TestParseFirstTokenUnquoted(t *testing.T) {
	if got := parseFirstToken(`C:\App\app.exe --flag`); got != `C:\App\app.exe` {
		t.Fatalf("expected unquoted first token, got %q", got)
	}
}

func TestSplitHivePath(t *testing.T) {
	path, _ := splitHivePath(`HKCU\Software\Foo`)
	if path != `Software\Foo` {
		t.Fatalf("expected Software\\Foo, got %q", path)
	}
}
