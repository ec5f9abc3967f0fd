package ipc

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/1broseidon/snaptile/internal/desktop"
	"github.com/1broseidon/snaptile/internal/gesture"
	"github.com/1broseidon/snaptile/internal/tiling"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandReload       CommandType = "RELOAD"
	CommandGetStatus    CommandType = "GET_STATUS"
	CommandGetState     CommandType = "GET_STATE"
	CommandCreateWindow CommandType = "CREATE_WINDOW"
	CommandMoveWindow   CommandType = "MOVE_WINDOW"
	CommandBringToFront CommandType = "BRING_TO_FRONT"
	CommandCloseWindow  CommandType = "CLOSE_WINDOW"
	CommandSnapWindow   CommandType = "SNAP_WINDOW"
	CommandUnsnapWindow CommandType = "UNSNAP_WINDOW"
	CommandPointerDown  CommandType = "POINTER_DOWN"
	CommandPointerMove  CommandType = "POINTER_MOVE"
	CommandPointerUp    CommandType = "POINTER_UP"
)

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// StatusData represents the data returned by GET_STATUS
type StatusData struct {
	DaemonRunning bool        `json:"daemon_running"`
	UptimeSeconds int64       `json:"uptime_seconds"`
	SurfaceSource string      `json:"surface_source"`
	Surface       tiling.Rect `json:"surface"`
	WindowCount   int         `json:"window_count"`
	FloatingCount int         `json:"floating_count"`
	TiledCount    int         `json:"tiled_count"`
	Phase         string      `json:"phase"`
	Layout        string      `json:"layout"`
}

// WindowPayload addresses a single window.
type WindowPayload struct {
	WindowID string `json:"window_id"`
}

// PositionPayload carries a window and a surface position. Used by
// MOVE_WINDOW, UNSNAP_WINDOW and POINTER_DOWN.
type PositionPayload struct {
	WindowID string `json:"window_id"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
}

// SnapWindowPayload is the payload for SNAP_WINDOW. A null path targets an
// empty surface; [] is the root.
type SnapWindowPayload struct {
	WindowID  string           `json:"window_id"`
	Path      tiling.Path      `json:"path"`
	Direction tiling.Direction `json:"direction"`
}

// PointerMovePayload is the payload for POINTER_MOVE.
type PointerMovePayload struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// CreateWindowData is returned by CREATE_WINDOW.
type CreateWindowData struct {
	WindowID string `json:"window_id"`
}

// ChangedData reports whether a command changed anything. Unknown windows
// are not errors; they simply leave the state unchanged.
type ChangedData struct {
	Changed bool `json:"changed"`
}

// PointerUpData is returned by POINTER_UP.
type PointerUpData struct {
	Committed bool `json:"committed"`
}

// WindowInfo describes a live window and where it currently sits.
type WindowInfo struct {
	ID        string      `json:"id"`
	Title     string      `json:"title"`
	Tag       string      `json:"tag"`
	Placement string      `json:"placement"`
	Rect      tiling.Rect `json:"rect"`
	Z         int         `json:"z,omitempty"`
}

// LeafInfo is one leaf rectangle of the layout tree.
type LeafInfo struct {
	Path     tiling.Path `json:"path"`
	Type     string      `json:"type"`
	WindowID string      `json:"window_id,omitempty"`
	Rect     tiling.Rect `json:"rect"`
}

// StateData is returned by GET_STATE.
type StateData struct {
	Surface  tiling.Rect             `json:"surface"`
	Windows  []WindowInfo            `json:"windows"`
	Floating []desktop.FloatingEntry `json:"floating"`
	Tree     *tiling.NodeJSON        `json:"tree"`
	Layout   string                  `json:"layout"`
	Leaves   []LeafInfo              `json:"leaves"`
	NextZ    int                     `json:"next_z"`
	Phase    string                  `json:"phase"`
	Dragging string                  `json:"dragging,omitempty"`
	Intent   *gesture.Intent         `json:"intent,omitempty"`
}

// NewStateData flattens a controller snapshot for the wire.
func NewStateData(snap gesture.Snapshot) StateData {
	state := snap.Desktop
	root := state.Root()

	leaves := tiling.Leaves(root, snap.Surface)
	leafInfos := make([]LeafInfo, 0, len(leaves))
	tiledRects := make(map[string]tiling.Rect, len(leaves))
	for _, leaf := range leaves {
		info := LeafInfo{Path: leaf.Path, Rect: leaf.Rect}
		switch n := leaf.Node.(type) {
		case *tiling.Slot:
			info.Type = tiling.TypeWindow
			info.WindowID = n.WindowID
			tiledRects[n.WindowID] = leaf.Rect
		case *tiling.Empty:
			info.Type = tiling.TypeEmpty
		}
		leafInfos = append(leafInfos, info)
	}

	windows := make([]WindowInfo, 0, state.WindowCount())
	for _, w := range state.Windows() {
		info := WindowInfo{
			ID:        w.ID,
			Title:     w.Title,
			Tag:       w.Tag,
			Placement: state.Placement(w.ID).String(),
		}
		if f, ok := state.FloatingEntry(w.ID); ok {
			info.Rect = f.Rect()
			info.Z = f.Z
		} else if r, ok := tiledRects[w.ID]; ok {
			info.Rect = r
		}
		windows = append(windows, info)
	}

	return StateData{
		Surface:  snap.Surface,
		Windows:  windows,
		Floating: state.FloatingByZ(),
		Tree:     tiling.Encode(root),
		Layout:   tiling.String(root),
		Leaves:   leafInfos,
		NextZ:    state.NextZ(),
		Phase:    snap.Phase.String(),
		Dragging: snap.Dragging,
		Intent:   snap.Intent,
	}
}

// Window returns the info for id.
func (d StateData) Window(id string) (WindowInfo, bool) {
	for _, w := range d.Windows {
		if w.ID == id {
			return w, true
		}
	}
	return WindowInfo{}, false
}

// Root decodes the tree back into nodes.
func (d StateData) Root() (tiling.Node, error) {
	return tiling.Decode(d.Tree)
}

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data interface{}) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: "OK",
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: "ERROR",
		Error:  errMsg,
	}
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}

func sortedCommands() []string {
	cmds := []string{
		string(CommandReload),
		string(CommandGetStatus),
		string(CommandGetState),
		string(CommandCreateWindow),
		string(CommandMoveWindow),
		string(CommandBringToFront),
		string(CommandCloseWindow),
		string(CommandSnapWindow),
		string(CommandUnsnapWindow),
		string(CommandPointerDown),
		string(CommandPointerMove),
		string(CommandPointerUp),
	}
	sort.Strings(cmds)
	return cmds
}
