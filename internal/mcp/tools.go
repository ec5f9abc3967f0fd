package mcp

import (
	"context"
	"fmt"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/snaptile/internal/ipc"
	"github.com/1broseidon/snaptile/internal/tiling"
)

const (
	defaultPreviewWidth  = 60
	defaultPreviewHeight = 20
	defaultDragSteps     = 10
	maxDragSteps         = 200
)

func (s *Server) handleCreateWindow(_ context.Context, _ *mcpsdk.CallToolRequest, _ CreateWindowInput) (*mcpsdk.CallToolResult, CreateWindowOutput, error) {
	id, err := s.engine.CreateWindow()
	if err != nil {
		return nil, CreateWindowOutput{}, err
	}

	out := CreateWindowOutput{WindowID: id}
	if state, err := s.engine.GetState(); err == nil {
		if w, ok := state.Window(id); ok {
			out.Rect = w.Rect
			out.Tag = w.Tag
		}
	}
	s.logger.Info("mcp: window created", "window", id)
	return nil, out, nil
}

func (s *Server) handleListWindows(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListWindowsInput) (*mcpsdk.CallToolResult, ListWindowsOutput, error) {
	state, err := s.engine.GetState()
	if err != nil {
		return nil, ListWindowsOutput{}, err
	}

	windows := make([]WindowInfo, 0, len(state.Windows))
	for _, w := range state.Windows {
		windows = append(windows, WindowInfo{
			ID:        w.ID,
			Tag:       w.Tag,
			Placement: w.Placement,
			Rect:      w.Rect,
			Z:         w.Z,
		})
	}
	return nil, ListWindowsOutput{Surface: state.Surface, Windows: windows}, nil
}

func (s *Server) handleGetLayout(_ context.Context, _ *mcpsdk.CallToolRequest, args GetLayoutInput) (*mcpsdk.CallToolResult, GetLayoutOutput, error) {
	state, err := s.engine.GetState()
	if err != nil {
		return nil, GetLayoutOutput{}, err
	}
	root, err := state.Root()
	if err != nil {
		return nil, GetLayoutOutput{}, fmt.Errorf("daemon returned an invalid tree: %w", err)
	}

	width := args.Width
	if width <= 0 {
		width = defaultPreviewWidth
	}
	height := args.Height
	if height <= 0 {
		height = defaultPreviewHeight
	}

	leaves := make([]LeafInfo, 0, len(state.Leaves))
	for _, leaf := range state.Leaves {
		leaves = append(leaves, LeafInfo{
			Path:     leaf.Path.String(),
			Type:     leaf.Type,
			WindowID: leaf.WindowID,
			Rect:     leaf.Rect,
		})
	}

	preview := tiling.RenderASCII(root, leafLabel, width, height)
	return nil, GetLayoutOutput{
		Layout:  state.Layout,
		Leaves:  leaves,
		Preview: strings.Join(preview, "\n"),
		Phase:   state.Phase,
	}, nil
}

func (s *Server) handleMoveWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args MoveWindowInput) (*mcpsdk.CallToolResult, ChangedOutput, error) {
	if err := requireWindow(args.WindowID); err != nil {
		return nil, ChangedOutput{}, err
	}
	changed, err := s.engine.MoveWindow(args.WindowID, args.X, args.Y)
	return s.changedResult(changed, err)
}

func (s *Server) handleBringToFront(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowInput) (*mcpsdk.CallToolResult, ChangedOutput, error) {
	if err := requireWindow(args.WindowID); err != nil {
		return nil, ChangedOutput{}, err
	}
	changed, err := s.engine.BringToFront(args.WindowID)
	return s.changedResult(changed, err)
}

func (s *Server) handleCloseWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowInput) (*mcpsdk.CallToolResult, ChangedOutput, error) {
	if err := requireWindow(args.WindowID); err != nil {
		return nil, ChangedOutput{}, err
	}
	changed, err := s.engine.CloseWindow(args.WindowID)
	if err == nil && changed {
		s.logger.Info("mcp: window closed", "window", args.WindowID)
	}
	return s.changedResult(changed, err)
}

func (s *Server) handleSnapWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args SnapWindowInput) (*mcpsdk.CallToolResult, ChangedOutput, error) {
	if err := requireWindow(args.WindowID); err != nil {
		return nil, ChangedOutput{}, err
	}
	path, err := tiling.ParsePath(args.Path)
	if err != nil {
		return nil, ChangedOutput{}, err
	}
	dir, err := tiling.ParseDirection(args.Direction)
	if err != nil {
		return nil, ChangedOutput{}, err
	}

	changed, err := s.engine.SnapWindow(args.WindowID, path, dir)
	if err == nil && !changed {
		s.logger.Debug("mcp: snap rejected", "window", args.WindowID, "path", path.String(), "direction", dir)
	}
	return s.changedResult(changed, err)
}

func (s *Server) handleUnsnapWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args UnsnapWindowInput) (*mcpsdk.CallToolResult, ChangedOutput, error) {
	if err := requireWindow(args.WindowID); err != nil {
		return nil, ChangedOutput{}, err
	}
	changed, err := s.engine.UnsnapWindow(args.WindowID, args.X, args.Y)
	return s.changedResult(changed, err)
}

func (s *Server) handleDragWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args DragWindowInput) (*mcpsdk.CallToolResult, DragWindowOutput, error) {
	if err := requireWindow(args.WindowID); err != nil {
		return nil, DragWindowOutput{}, err
	}
	steps := args.Steps
	if steps <= 0 {
		steps = defaultDragSteps
	}
	if steps > maxDragSteps {
		steps = maxDragSteps
	}

	started, err := s.engine.PointerDown(args.WindowID, args.FromX, args.FromY)
	if err != nil {
		return nil, DragWindowOutput{}, err
	}
	if !started {
		return nil, DragWindowOutput{}, fmt.Errorf("window %q not found", args.WindowID)
	}

	var last *ipc.StateData
	for i := 1; i <= steps; i++ {
		x := args.FromX + (args.ToX-args.FromX)*i/steps
		y := args.FromY + (args.ToY-args.FromY)*i/steps
		last, err = s.engine.PointerMove(x, y)
		if err != nil {
			// Release so the daemon is not left mid-gesture.
			_, _ = s.engine.PointerUp()
			return nil, DragWindowOutput{}, err
		}
	}

	out := DragWindowOutput{}
	if last != nil && last.Intent != nil {
		out.Direction = string(last.Intent.Direction)
		out.Path = last.Intent.Path.String()
	}

	out.Committed, err = s.engine.PointerUp()
	if err != nil {
		return nil, DragWindowOutput{}, err
	}
	if !out.Committed {
		out.Direction = ""
		out.Path = ""
	}

	state, err := s.engine.GetState()
	if err != nil {
		return nil, DragWindowOutput{}, err
	}
	out.Layout = state.Layout
	s.logger.Info("mcp: drag finished", "window", args.WindowID, "committed", out.Committed, "layout", out.Layout)
	return nil, out, nil
}

func (s *Server) changedResult(changed bool, err error) (*mcpsdk.CallToolResult, ChangedOutput, error) {
	if err != nil {
		return nil, ChangedOutput{}, err
	}
	out := ChangedOutput{Changed: changed}
	if state, err := s.engine.GetState(); err == nil {
		out.Layout = state.Layout
	}
	return nil, out, nil
}

func requireWindow(id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("window_id is required")
	}
	return nil
}

func leafLabel(n tiling.Node) string {
	if slot, ok := n.(*tiling.Slot); ok {
		return shortID(slot.WindowID)
	}
	return ""
}

// shortID trims UUIDs to their first group for previews.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}
