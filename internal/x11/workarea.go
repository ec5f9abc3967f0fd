package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
)

// Area is a rectangle in root window coordinates.
type Area struct {
	X      int
	Y      int
	Width  int
	Height int
}

// RootGeometry returns the full size of the root window.
func (c *Connection) RootGeometry() (Area, error) {
	geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(c.Root)).Reply()
	if err != nil {
		return Area{}, fmt.Errorf("failed to get root geometry: %w", err)
	}
	return Area{
		X:      int(geom.X),
		Y:      int(geom.Y),
		Width:  int(geom.Width),
		Height: int(geom.Height),
	}, nil
}

// GetCurrentDesktop returns the current virtual desktop number (0-indexed).
func (c *Connection) GetCurrentDesktop() (int, error) {
	desktop, err := ewmh.CurrentDesktopGet(c.XUtil)
	if err != nil {
		return 0, fmt.Errorf("failed to get current desktop: %w", err)
	}
	return int(desktop), nil
}

// WorkArea returns the usable area of the current desktop (excluding panels
// and docks) from _NET_WORKAREA. Window managers without EWMH support get the
// root geometry instead.
func (c *Connection) WorkArea() (Area, error) {
	root, err := c.RootGeometry()
	if err != nil {
		return Area{}, err
	}

	workArea, err := ewmh.WorkareaGet(c.XUtil)
	if err != nil || len(workArea) == 0 {
		return root, nil
	}

	desktopIndex := 0
	if current, err := c.GetCurrentDesktop(); err == nil && current >= 0 && current < len(workArea) {
		desktopIndex = current
	}
	wa := workArea[desktopIndex]

	return clipArea(root, Area{
		X:      int(wa.X),
		Y:      int(wa.Y),
		Width:  int(wa.Width),
		Height: int(wa.Height),
	}), nil
}

// clipArea intersects area with bounds, returning bounds when they do not
// overlap.
func clipArea(bounds, area Area) Area {
	x1 := max(bounds.X, area.X)
	y1 := max(bounds.Y, area.Y)
	x2 := min(bounds.X+bounds.Width, area.X+area.Width)
	y2 := min(bounds.Y+bounds.Height, area.Y+area.Height)
	if x2 <= x1 || y2 <= y1 {
		return bounds
	}
	return Area{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}
