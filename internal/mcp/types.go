package mcp

import "github.com/1broseidon/snaptile/internal/tiling"

// WindowInput addresses a single window.
type WindowInput struct {
	WindowID string `json:"window_id" jsonschema:"ID of the target window"`
}

// CreateWindowInput is the input for the create_window tool.
type CreateWindowInput struct{}

// CreateWindowOutput is the output for the create_window tool.
type CreateWindowOutput struct {
	WindowID string      `json:"window_id"`
	Rect     tiling.Rect `json:"rect"`
	Tag      string      `json:"tag"`
}

// ListWindowsInput is the input for the list_windows tool.
type ListWindowsInput struct{}

// WindowInfo describes a single window.
type WindowInfo struct {
	ID        string      `json:"id"`
	Tag       string      `json:"tag"`
	Placement string      `json:"placement"`
	Rect      tiling.Rect `json:"rect"`
	Z         int         `json:"z,omitempty"`
}

// ListWindowsOutput is the output for the list_windows tool.
type ListWindowsOutput struct {
	Surface tiling.Rect  `json:"surface"`
	Windows []WindowInfo `json:"windows"`
}

// GetLayoutInput is the input for the get_layout tool.
type GetLayoutInput struct {
	Width  int `json:"width,omitempty" jsonschema:"Preview width in characters (default: 60)"`
	Height int `json:"height,omitempty" jsonschema:"Preview height in characters (default: 20)"`
}

// LeafInfo is one leaf of the layout tree.
type LeafInfo struct {
	Path     string      `json:"path"`
	Type     string      `json:"type"`
	WindowID string      `json:"window_id,omitempty"`
	Rect     tiling.Rect `json:"rect"`
}

// GetLayoutOutput is the output for the get_layout tool.
type GetLayoutOutput struct {
	Layout  string     `json:"layout"`
	Leaves  []LeafInfo `json:"leaves"`
	Preview string     `json:"preview"`
	Phase   string     `json:"phase"`
}

// MoveWindowInput is the input for the move_window tool.
type MoveWindowInput struct {
	WindowID string `json:"window_id" jsonschema:"ID of a floating window"`
	X        int    `json:"x" jsonschema:"New left edge in surface pixels"`
	Y        int    `json:"y" jsonschema:"New top edge in surface pixels"`
}

// SnapWindowInput is the input for the snap_window tool.
type SnapWindowInput struct {
	WindowID  string `json:"window_id" jsonschema:"ID of a floating window"`
	Path      string `json:"path,omitempty" jsonschema:"Target leaf: none (empty surface), root, or child indices such as 0,1 (default: none)"`
	Direction string `json:"direction" jsonschema:"Edge to snap against: left, right, top or bottom"`
}

// UnsnapWindowInput is the input for the unsnap_window tool.
type UnsnapWindowInput struct {
	WindowID string `json:"window_id" jsonschema:"ID of a tiled window"`
	X        int    `json:"x" jsonschema:"Left edge of the floating window"`
	Y        int    `json:"y" jsonschema:"Top edge of the floating window"`
}

// DragWindowInput is the input for the drag_window tool.
type DragWindowInput struct {
	WindowID string `json:"window_id" jsonschema:"ID of the window to drag"`
	FromX    int    `json:"from_x" jsonschema:"Pointer press X"`
	FromY    int    `json:"from_y" jsonschema:"Pointer press Y"`
	ToX      int    `json:"to_x" jsonschema:"Pointer release X"`
	ToY      int    `json:"to_y" jsonschema:"Pointer release Y"`
	Steps    int    `json:"steps,omitempty" jsonschema:"Number of intermediate pointer moves (default: 10)"`
}

// DragWindowOutput is the output for the drag_window tool.
type DragWindowOutput struct {
	Committed bool   `json:"committed"`
	Direction string `json:"direction,omitempty"`
	Path      string `json:"path,omitempty"`
	Layout    string `json:"layout"`
}

// ChangedOutput reports whether a tool changed the desktop.
type ChangedOutput struct {
	Changed bool   `json:"changed"`
	Layout  string `json:"layout"`
}
