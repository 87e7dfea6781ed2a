package externaltools

import (
	"context"
	"testing"
)

func TestRunWrapsFailureWithOutput(t *testing.T) {
	_, err := run(context.Background(), "cmd.exe", "/C", "exit 1")
	if err == nil {
		t.Fatal("expected an error from a nonzero exit")
	}
}

func TestRunSucceedsOnZeroExit(t *testing.T) {
	out, err := run(context.Background(), "cmd.exe", "/C", "echo hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out == "" {
		t.Fatal("expected non-empty output from echo")
	}
}
