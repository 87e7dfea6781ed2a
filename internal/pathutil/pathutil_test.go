package pathutil

import "testing"

func TestHasPrefixCaseInsensitive(t *testing.T) {
	if !HasPrefix(`C:\Windows\System32\drivers\old.sys`, `c:\windows\system32`) {
		t.Fatal("expected prefix match")
	}
	if HasPrefix(`C:\Windows2\thing`, `c:\windows`) {
		t.Fatal("should not match on partial segment boundary violation via naive prefix")
	}
}

func TestHasSuffixTrailingSeparator(t *testing.T) {
	if !HasSuffix(`C:\Users\alice\Desktop`, `\desktop`) {
		t.Fatal("expected suffix match without trailing slash")
	}
	if !HasSuffix(`C:\Users\alice\Desktop\`, `\desktop`) {
		t.Fatal("expected suffix match with trailing slash normalized away")
	}
	if HasSuffix(`C:\Users\alice\Desktop\scratch.txt`, `\desktop`) {
		t.Fatal("should not match a file under Desktop")
	}
}

func TestExtension(t *testing.T) {
	cases := map[string]string{
		`C:\x\drivers\old.SYS`: "sys",
		`C:\x\noext`:           "",
		`C:\x\archive.tar.gz`:  "gz",
	}
	for in, want := range cases {
		if got := Extension(in); got != want {
			t.Errorf("Extension(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestIsDriveRoot(t *testing.T) {
	if !IsDriveRoot(`c:\`) {
		t.Fatal(`"c:\" should be a drive root`)
	}
	if IsDriveRoot(`c:\foo`) {
		t.Fatal(`"c:\foo" should not be a drive root`)
	}
}

func TestEnvUnresolvedCollapses(t *testing.T) {
	got := Env("%DEFINITELY_NOT_SET_XYZ%\\sub")
	if got != `\sub` {
		t.Fatalf("expected unresolved var to collapse to empty, got %q", got)
	}
}

func TestEnvEscapedPercent(t *testing.T) {
	got := Env("100%%done")
	if got != "100%done" {
		t.Fatalf("expected %%%% to collapse to %%, got %q", got)
	}
}
