package deps

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestCheckBinaries(t *testing.T) {
	binDir := t.TempDir()
	present := filepath.Join(binDir, "present")
	script := []byte("#!/bin/sh\nexit 0\n")
	if err := os.WriteFile(present, script, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
	}

	results := CheckBinaries(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}

	if !results[0].Available {
		t.Fatalf("expected first requirement to be available, got %#v", results[0])
	}

	if results[1].Available {
		t.Fatalf("expected missing binary to be unavailable")
	}
	if results[1].Detail == "" {
		t.Fatalf("expected detail message for missing binary")
	}

	if results[1].Command != "clearly-not-present-binary" {
		t.Fatalf("unexpected command recorded: %s", results[1].Command)
	}

	if results[0].Detail != "" {
		t.Fatalf("unexpected detail for available dependency: %s", results[0].Detail)
	}
}

func TestCheckBinariesEmptyCommand(t *testing.T) {
	results := CheckBinaries([]Requirement{{Name: "Unset"}})
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Available {
		t.Fatal("expected unconfigured command to be unavailable")
	}
	if results[0].Detail != "command not configured" {
		t.Fatalf("unexpected detail: %s", results[0].Detail)
	}
}

func TestResolveYtdlpManaged(t *testing.T) {
	tmp := t.TempDir()
	managed := filepath.Join(tmp, "yt-dlp")
	if err := os.WriteFile(managed, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}

	status := ResolveYtdlp(managed)
	if !status.Available {
		t.Fatalf("expected managed binary to be available, got detail %q", status.Detail)
	}
	if status.Command != managed {
		t.Fatalf("expected command %q, got %q", managed, status.Command)
	}
}

func TestResolveYtdlpPathFallback(t *testing.T) {
	tmp := t.TempDir()
	binDir := filepath.Join(tmp, "bin")
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		t.Fatalf("mkdir bin: %v", err)
	}
	fallback := filepath.Join(binDir, "yt-dlp")
	if err := os.WriteFile(fallback, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	t.Setenv("PATH", binDir)

	status := ResolveYtdlp(filepath.Join(tmp, "missing", "yt-dlp"))
	if !status.Available {
		t.Fatalf("expected PATH fallback to be available, got detail %q", status.Detail)
	}
	if status.Command != fallback {
		t.Fatalf("expected command %q, got %q", fallback, status.Command)
	}
}

func TestResolveYtdlpNotFound(t *testing.T) {
	t.Setenv("PATH", "")
	status := ResolveYtdlp("")
	if status.Available {
		t.Fatal("expected resolution to fail")
	}
	if status.Detail == "" {
		t.Fatal("expected detail message when yt-dlp is unavailable")
	}
}

func TestVersion(t *testing.T) {
	tmp := t.TempDir()
	tool := filepath.Join(tmp, "tool")
	script := []byte("#!/bin/sh\necho 'tool 1.2.3'\necho 'extra line'\n")
	if err := os.WriteFile(tool, script, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}

	got := Version(context.Background(), tool)
	if got != "tool 1.2.3" {
		t.Fatalf("Version = %q, want %q", got, "tool 1.2.3")
	}

	if got := Version(context.Background(), ""); got != "" {
		t.Fatalf("expected empty version for blank command, got %q", got)
	}
	if got := Version(context.Background(), filepath.Join(tmp, "missing")); got != "" {
		t.Fatalf("expected empty version for missing binary, got %q", got)
	}
}
