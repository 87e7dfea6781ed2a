package safety

import "testing"

func TestLayer1ProtectedPathPrefix(t *testing.T) {
	t.Setenv("SystemRoot", `C:\Windows`)
	v := Evaluate(Candidate{Path: `C:\Windows\System32\drivers\old.sys`}, Extras{})
	if v.Kind != ProtectedPathPrefix {
		t.Fatalf("expected ProtectedPathPrefix, got %v (%s)", v.Kind, v.Reason)
	}
}

func TestLayer2ProtectedFileName(t *testing.T) {
	v := Evaluate(Candidate{Path: `D:\anywhere\ntdll.dll`}, Extras{})
	if v.Kind != ProtectedFileName || v.Reason != "ntdll.dll" {
		t.Fatalf("expected ProtectedFileName(ntdll.dll), got %v (%s)", v.Kind, v.Reason)
	}
}

func TestLayer3ExtensionInSystemDir(t *testing.T) {
	t.Setenv("SystemRoot", `C:\Windows`)
	v := Evaluate(Candidate{Path: `C:\Windows\weird_folder\thing.dll`}, Extras{})
	if v.Kind != ProtectedExtensionInSystemDir || v.Reason != "dll" {
		t.Fatalf("expected ProtectedExtensionInSystemDir(dll), got %v (%s)", v.Kind, v.Reason)
	}
}

func TestLayer4UserCriticalRootExactOnly(t *testing.T) {
	t.Setenv("SystemRoot", `C:\Windows`)
	v := Evaluate(Candidate{Path: `C:\Users\alice\Desktop`}, Extras{})
	if v.Kind != UserCriticalRoot || v.Reason != `\desktop` {
		t.Fatalf("expected UserCriticalRoot(\\desktop), got %v (%s)", v.Kind, v.Reason)
	}

	v = Evaluate(Candidate{Path: `C:\Users\alice\Desktop\scratch.txt`}, Extras{})
	if v.Kind != Safe {
		t.Fatalf("expected Safe for a file under Desktop, got %v (%s)", v.Kind, v.Reason)
	}
}

func TestLayer5DriveRoot(t *testing.T) {
	t.Setenv("SystemRoot", `C:\Windows`)
	v := Evaluate(Candidate{Path: `c:\`}, Extras{})
	if v.Kind != DriveRoot {
		t.Fatalf("expected DriveRoot, got %v", v.Kind)
	}
	v = Evaluate(Candidate{Path: `c:\foo`}, Extras{})
	if v.Kind != Safe {
		t.Fatalf("expected c:\\foo to be Safe, got %v", v.Kind)
	}
}

type fakeIndex struct{ installed map[string]bool }

func (f fakeIndex) IsInstalled(token string) bool { return f.installed[token] }

func TestLayer6RegistryPresence(t *testing.T) {
	t.Setenv("SystemRoot", `C:\Windows`)
	idx := fakeIndex{installed: map[string]bool{"epicgameslauncher": true}}
	v := Evaluate(Candidate{Path: `C:\Users\alice\AppData\Local\EpicGamesLauncher`, IsDir: true}, Extras{
		RunLeftoverLayers: true,
		InstalledIndex:    idx,
	})
	if v.Kind != FoundInRegistry {
		t.Fatalf("expected FoundInRegistry, got %v", v.Kind)
	}
}

func TestLayer7ExecutablePresence(t *testing.T) {
	t.Setenv("SystemRoot", `C:\Windows`)
	v := Evaluate(Candidate{Path: `C:\Users\alice\AppData\Local\SomeOrphan`, IsDir: true}, Extras{
		RunLeftoverLayers: true,
		ScanExecutables: func(dir string) []string {
			return []string{"game.exe"}
		},
	})
	if v.Kind != ContainsExecutables || len(v.Executables) != 1 || v.Executables[0] != "game.exe" {
		t.Fatalf("expected ContainsExecutables([game.exe]), got %v %v", v.Kind, v.Executables)
	}
}

func TestAllowsOwnershipPositiveList(t *testing.T) {
	if !AllowsOwnership(`C:\Windows\Temp\stuck.tmp`) {
		t.Fatal("expected temp path to be ownership-eligible")
	}
	if AllowsOwnership(`C:\Users\alice\Documents\important.docx`) {
		t.Fatal("documents path must not be ownership-eligible")
	}
}

func TestRegistryKeyAllowed(t *testing.T) {
	if RegistryKeyAllowed(`HKCU\Software\Microsoft\Windows\CurrentVersion`) {
		t.Fatal("microsoft/windows keys should be filtered by the whitelist")
	}
	if !RegistryKeyAllowed(`HKCU\Software\SomeRandomOrphanedApp`) {
		t.Fatal("an unrelated app key should pass the whitelist")
	}
}
