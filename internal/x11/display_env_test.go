package x11

import (
	"os"
	"path/filepath"
	"testing"
)

func stubSocketDir(t *testing.T, names ...string) {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0600); err != nil {
			t.Fatalf("write socket stub: %v", err)
		}
	}
	prev := x11SocketDir
	x11SocketDir = dir
	t.Cleanup(func() { x11SocketDir = prev })
}

func TestResolveDisplay_Precedence(t *testing.T) {
	stubSocketDir(t, "X0", "X3")
	t.Setenv("XAUTHORITY", "/tmp/existing")

	tests := []struct {
		name   string
		cfg    string
		envDis string
		want   string
	}{
		{"config wins", ":5", ":7", ":5"},
		{"env next", "", ":7", ":7"},
		{"highest socket last", "", "", ":3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DISPLAY", tt.envDis)
			got, err := ResolveDisplay(tt.cfg, "")
			if err != nil {
				t.Fatalf("ResolveDisplay: %v", err)
			}
			if got != tt.want {
				t.Fatalf("ResolveDisplay = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveDisplay_NoDisplay(t *testing.T) {
	stubSocketDir(t, "not-a-socket")
	t.Setenv("DISPLAY", "")
	if _, err := ResolveDisplay("", ""); err == nil {
		t.Fatalf("expected error without any display")
	}
}

func TestResolveDisplay_XAuthorityFallback(t *testing.T) {
	home := t.TempDir()
	xauth := filepath.Join(home, ".Xauthority")
	if err := os.WriteFile(xauth, []byte("cookie"), 0600); err != nil {
		t.Fatalf("write xauthority: %v", err)
	}
	t.Setenv("HOME", home)
	t.Setenv("XAUTHORITY", "")

	prev := userHomeFn
	userHomeFn = func() (string, error) { return home, nil }
	t.Cleanup(func() { userHomeFn = prev })

	if _, err := ResolveDisplay(":1", ""); err != nil {
		t.Fatalf("ResolveDisplay: %v", err)
	}
	if got := os.Getenv("XAUTHORITY"); got != xauth {
		t.Fatalf("XAUTHORITY = %q, want %q", got, xauth)
	}
}

func TestResolveDisplay_ConfiguredXAuthority(t *testing.T) {
	t.Setenv("XAUTHORITY", "")
	if _, err := ResolveDisplay(":1", "/tmp/cfg-xauth"); err != nil {
		t.Fatalf("ResolveDisplay: %v", err)
	}
	if got := os.Getenv("XAUTHORITY"); got != "/tmp/cfg-xauth" {
		t.Fatalf("XAUTHORITY = %q, want /tmp/cfg-xauth", got)
	}
}

func TestClipArea(t *testing.T) {
	root := Area{Width: 1920, Height: 1080}
	tests := []struct {
		name string
		area Area
		want Area
	}{
		{"panel on top", Area{Y: 32, Width: 1920, Height: 1048}, Area{Y: 32, Width: 1920, Height: 1048}},
		{"oversized", Area{X: -10, Y: -10, Width: 4000, Height: 4000}, root},
		{"disjoint", Area{X: 3000, Y: 0, Width: 100, Height: 100}, root},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := clipArea(root, tt.area); got != tt.want {
				t.Fatalf("clipArea = %+v, want %+v", got, tt.want)
			}
		})
	}
}
