package deletion

import (
	"errors"
	"testing"
)

func TestPhysicalSizeBoundaries(t *testing.T) {
	cases := []struct {
		logical, cluster, want int64
	}{
		{0, 4096, 0},
		{1, 4096, 4096},
		{4097, 4096, 8192},
		{4096, 4096, 4096},
		{512, 512, 512},
		{513, 512, 1024},
		{65536, 65536, 65536},
	}
	for _, c := range cases {
		got := PhysicalSize(c.logical, c.cluster)
		if got != c.want {
			t.Errorf("PhysicalSize(%d, %d) = %d, want %d", c.logical, c.cluster, got, c.want)
		}
	}
}

func TestPhysicalSizeFallsBackOnZeroCluster(t *testing.T) {
	if got := PhysicalSize(1, 0); got != 4096 {
		t.Fatalf("expected fallback to 4096-byte cluster, got %d", got)
	}
}

func TestClassifyLockedVsPermission(t *testing.T) {
	if classify(nil) != FailureNone {
		t.Fatal("nil error should classify as FailureNone")
	}
	if got := classify(errors.New("Access is denied.")); got != PermissionDenied {
		t.Fatalf("expected PermissionDenied, got %v", got)
	}
	if got := classify(errors.New("The process cannot access the file because it is being used by another process.")); got != FileLocked {
		t.Fatalf("expected FileLocked, got %v", got)
	}
}

func TestGateRejectsProtectedCandidate(t *testing.T) {
	t.Setenv("SystemRoot", `C:\Windows`)
	e := &Engine{clusterSize: 4096}
	out := e.Delete(Candidate{Path: `C:\Windows\System32\drivers\old.sys`})
	if out.Success {
		t.Fatal("a protected-prefix path must never be attempted")
	}
	if out.FailureKind != SystemProtected {
		t.Fatalf("expected SystemProtected, got %v", out.FailureKind)
	}
}
