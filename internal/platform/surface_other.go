//go:build !linux

package platform

import (
	"fmt"
	"runtime"

	"github.com/1broseidon/snaptile/internal/tiling"
)

// X11Surface is unavailable on this platform.
type X11Surface struct{}

func NewX11Surface(display string, xauthority string) (*X11Surface, error) {
	return nil, fmt.Errorf("x11 surface is not supported on %s", runtime.GOOS)
}

func (s *X11Surface) Name() string { return "x11" }

func (s *X11Surface) Surface() (tiling.Rect, error) {
	return tiling.Rect{}, fmt.Errorf("x11 surface is not supported on %s", runtime.GOOS)
}

func (s *X11Surface) Close() error { return nil }
