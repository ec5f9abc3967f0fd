package runtimepath

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDir_UsesXDGRuntimeDirWhenSet(t *testing.T) {
	td := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", td)

	got, err := Dir()
	if err != nil {
		t.Fatalf("Dir() error: %v", err)
	}
	if got != td {
		t.Fatalf("Dir() = %q, want %q", got, td)
	}
}

func TestDir_FallbacksWhenXDGRuntimeDirMissing(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", "")

	got, err := Dir()
	if err != nil {
		t.Fatalf("Dir() error: %v", err)
	}

	wantRun := fmt.Sprintf("/run/user/%d", os.Getuid())
	wantTmp := fmt.Sprintf("/tmp/snaptile-runtime-%d", os.Getuid())
	if got != wantRun && got != wantTmp {
		t.Fatalf("Dir() = %q, want %q or %q", got, wantRun, wantTmp)
	}
}

func TestSocketPathAndPIDPath(t *testing.T) {
	td := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", td)
	t.Setenv(SocketEnv, "")

	socket, err := SocketPath()
	if err != nil {
		t.Fatalf("SocketPath() error: %v", err)
	}
	if !strings.HasSuffix(socket, "/snaptile.sock") {
		t.Fatalf("SocketPath() = %q, missing suffix", socket)
	}

	pid, err := PIDPath()
	if err != nil {
		t.Fatalf("PIDPath() error: %v", err)
	}
	if pid != filepath.Join(td, "snaptile.pid") {
		t.Fatalf("PIDPath() = %q", pid)
	}
}

func TestSocketPath_EnvOverride(t *testing.T) {
	want := filepath.Join(t.TempDir(), "custom.sock")
	t.Setenv(SocketEnv, want)

	got, err := SocketPath()
	if err != nil {
		t.Fatalf("SocketPath() error: %v", err)
	}
	if got != want {
		t.Fatalf("SocketPath() = %q, want %q", got, want)
	}
}
