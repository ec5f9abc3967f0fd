//go:build linux

package platform

import (
	"fmt"
	"sync"

	"github.com/1broseidon/snaptile/internal/tiling"
	"github.com/1broseidon/snaptile/internal/x11"
)

// X11Surface reports the EWMH work area of the current desktop.
type X11Surface struct {
	mu   sync.Mutex
	conn *x11.Connection
}

var _ SurfaceProvider = (*X11Surface)(nil)

// NewX11Surface connects to the X server for display (or $DISPLAY).
func NewX11Surface(display string, xauthority string) (*X11Surface, error) {
	resolved, err := x11.ResolveDisplay(display, xauthority)
	if err != nil {
		return nil, err
	}
	conn, err := x11.NewConnection(resolved)
	if err != nil {
		return nil, err
	}
	return &X11Surface{conn: conn}, nil
}

func (s *X11Surface) Name() string { return "x11" }

func (s *X11Surface) Surface() (tiling.Rect, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		return tiling.Rect{}, fmt.Errorf("x11 surface is closed")
	}
	area, err := s.conn.WorkArea()
	if err != nil {
		return tiling.Rect{}, err
	}
	return tiling.Rect{X: area.X, Y: area.Y, Width: area.Width, Height: area.Height}, nil
}

// Close disconnects from the X server.
func (s *X11Surface) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn != nil {
		s.conn.Close()
		s.conn = nil
	}
	return nil
}
