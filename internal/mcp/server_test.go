package mcp

import (
	"context"
	"math/rand"
	"strings"
	"testing"

	"github.com/1broseidon/snaptile/internal/gesture"
	"github.com/1broseidon/snaptile/internal/ipc"
	"github.com/1broseidon/snaptile/internal/tiling"
)

// controllerEngine runs the tools against an in-process controller.
type controllerEngine struct {
	ctrl *gesture.Controller
}

func (e *controllerEngine) GetState() (*ipc.StateData, error) {
	state := ipc.NewStateData(e.ctrl.Snapshot())
	return &state, nil
}

func (e *controllerEngine) CreateWindow() (string, error) { return e.ctrl.CreateWindow(), nil }

func (e *controllerEngine) MoveWindow(id string, x, y int) (bool, error) {
	return e.ctrl.MoveWindow(id, x, y), nil
}

func (e *controllerEngine) BringToFront(id string) (bool, error) { return e.ctrl.BringToFront(id), nil }

func (e *controllerEngine) CloseWindow(id string) (bool, error) { return e.ctrl.CloseWindow(id), nil }

func (e *controllerEngine) SnapWindow(id string, path tiling.Path, dir tiling.Direction) (bool, error) {
	return e.ctrl.SnapWindow(id, path, dir), nil
}

func (e *controllerEngine) UnsnapWindow(id string, x, y int) (bool, error) {
	return e.ctrl.UnsnapWindow(id, x, y), nil
}

func (e *controllerEngine) PointerDown(id string, x, y int) (bool, error) {
	return e.ctrl.PointerDown(id, x, y), nil
}

func (e *controllerEngine) PointerMove(x, y int) (*ipc.StateData, error) {
	e.ctrl.OnPointerMove(x, y)
	return e.GetState()
}

func (e *controllerEngine) PointerUp() (bool, error) { return e.ctrl.OnPointerUp(), nil }

func newTestServer(t *testing.T, ids ...string) (*Server, *gesture.Controller) {
	t.Helper()
	next := 0
	ctrl := gesture.NewController(gesture.Options{
		Surface: tiling.Rect{Width: 1200, Height: 800},
		Rand:    rand.New(rand.NewSource(1)),
		NewID: func() string {
			if next >= len(ids) {
				t.Fatalf("ran out of test ids")
			}
			id := ids[next]
			next++
			return id
		},
	})
	s, err := NewServer(&controllerEngine{ctrl: ctrl}, nil)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	return s, ctrl
}

func TestNewServer_RequiresEngine(t *testing.T) {
	if _, err := NewServer(nil, nil); err == nil {
		t.Fatalf("expected error without engine")
	}
}

func TestCreateAndListWindows(t *testing.T) {
	s, _ := newTestServer(t, "A", "B")
	ctx := context.Background()

	_, created, err := s.handleCreateWindow(ctx, nil, CreateWindowInput{})
	if err != nil {
		t.Fatalf("create_window: %v", err)
	}
	if created.WindowID != "A" || created.Rect.Width != 300 || created.Rect.Height != 200 || created.Tag == "" {
		t.Fatalf("unexpected create output %+v", created)
	}
	s.handleCreateWindow(ctx, nil, CreateWindowInput{})

	_, list, err := s.handleListWindows(ctx, nil, ListWindowsInput{})
	if err != nil {
		t.Fatalf("list_windows: %v", err)
	}
	if len(list.Windows) != 2 {
		t.Fatalf("expected 2 windows, got %d", len(list.Windows))
	}
	for _, w := range list.Windows {
		if w.Placement != "floating" {
			t.Fatalf("window %s placement = %s", w.ID, w.Placement)
		}
	}
}

func TestSnapWindowTool(t *testing.T) {
	s, _ := newTestServer(t, "A", "B")
	ctx := context.Background()
	s.handleCreateWindow(ctx, nil, CreateWindowInput{})
	s.handleCreateWindow(ctx, nil, CreateWindowInput{})

	tests := []struct {
		name    string
		in      SnapWindowInput
		changed bool
		layout  string
		wantErr string
	}{
		{"missing id", SnapWindowInput{Direction: "left"}, false, "", "window_id"},
		{"bad direction", SnapWindowInput{WindowID: "A", Direction: "up"}, false, "", "invalid direction"},
		{"bad path", SnapWindowInput{WindowID: "A", Path: "3", Direction: "left"}, false, "", "invalid path"},
		{"seed root", SnapWindowInput{WindowID: "A", Direction: "top"}, true, "column(A,empty)", ""},
		{"path none on non-empty tree", SnapWindowInput{WindowID: "B", Direction: "top"}, false, "column(A,empty)", ""},
		{"fill empty", SnapWindowInput{WindowID: "B", Path: "1", Direction: "bottom"}, true, "column(A,B)", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, out, err := s.handleSnapWindow(ctx, nil, tt.in)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("snap_window: %v", err)
			}
			if out.Changed != tt.changed || out.Layout != tt.layout {
				t.Fatalf("got %+v, want changed=%v layout=%s", out, tt.changed, tt.layout)
			}
		})
	}
}

func TestDragWindowTool_SnapsFloatingWindow(t *testing.T) {
	s, ctrl := newTestServer(t, "A")
	ctx := context.Background()
	s.handleCreateWindow(ctx, nil, CreateWindowInput{})
	ctrl.MoveWindow("A", 400, 300)

	// Window left edge travels from 400 to 10, inside the 30px margin.
	_, out, err := s.handleDragWindow(ctx, nil, DragWindowInput{
		WindowID: "A", FromX: 450, FromY: 310, ToX: 60, ToY: 310, Steps: 5,
	})
	if err != nil {
		t.Fatalf("drag_window: %v", err)
	}
	if !out.Committed || out.Direction != "left" || out.Path != "none" {
		t.Fatalf("unexpected drag output %+v", out)
	}
	if out.Layout != "row(A,empty)" {
		t.Fatalf("layout = %s, want row(A,empty)", out.Layout)
	}
	if ctrl.Phase() != gesture.PhaseIdle {
		t.Fatalf("expected idle after drag, got %s", ctrl.Phase())
	}
}

func TestDragWindowTool_UnsnapsTiledWindow(t *testing.T) {
	s, ctrl := newTestServer(t, "A", "B")
	ctx := context.Background()
	s.handleCreateWindow(ctx, nil, CreateWindowInput{})
	s.handleCreateWindow(ctx, nil, CreateWindowInput{})
	ctrl.SnapWindow("A", nil, tiling.DirLeft)
	ctrl.SnapWindow("B", tiling.Path{1}, tiling.DirRight)

	_, out, err := s.handleDragWindow(ctx, nil, DragWindowInput{
		WindowID: "B", FromX: 900, FromY: 400, ToX: 900, ToY: 500, Steps: 4,
	})
	if err != nil {
		t.Fatalf("drag_window: %v", err)
	}
	if out.Committed {
		t.Fatalf("expected no snap in the middle of the surface, got %+v", out)
	}
	if out.Layout != "A" {
		t.Fatalf("layout = %s, want A", out.Layout)
	}

	_, list, _ := s.handleListWindows(ctx, nil, ListWindowsInput{})
	for _, w := range list.Windows {
		if w.ID == "B" && w.Placement != "floating" {
			t.Fatalf("expected B floating after unsnap, got %s", w.Placement)
		}
	}
}

func TestDragWindowTool_UnknownWindow(t *testing.T) {
	s, _ := newTestServer(t)
	if _, _, err := s.handleDragWindow(context.Background(), nil, DragWindowInput{WindowID: "ghost"}); err == nil {
		t.Fatalf("expected error for unknown window")
	}
}

func TestGetLayoutTool(t *testing.T) {
	s, ctrl := newTestServer(t, "A")
	ctx := context.Background()
	s.handleCreateWindow(ctx, nil, CreateWindowInput{})
	ctrl.SnapWindow("A", nil, tiling.DirRight)

	_, out, err := s.handleGetLayout(ctx, nil, GetLayoutInput{Width: 20, Height: 6})
	if err != nil {
		t.Fatalf("get_layout: %v", err)
	}
	if out.Layout != "row(empty,A)" {
		t.Fatalf("layout = %s", out.Layout)
	}
	if len(out.Leaves) != 2 || out.Leaves[0].Type != "empty" || out.Leaves[1].WindowID != "A" {
		t.Fatalf("unexpected leaves %+v", out.Leaves)
	}
	if out.Leaves[1].Path != "[1]" {
		t.Fatalf("leaf path = %s, want [1]", out.Leaves[1].Path)
	}
	lines := strings.Split(out.Preview, "\n")
	if len(lines) != 6 {
		t.Fatalf("expected 6 preview lines, got %d", len(lines))
	}
	if !strings.Contains(out.Preview, "A") {
		t.Fatalf("preview missing window label:\n%s", out.Preview)
	}
}

func TestShortID(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"1b9d6bcd-bbfd-4b2d-9b5d-ab8dfbbd4bed", "1b9d6bcd"},
		{"A", "A"},
		{"-x", "-x"},
	}
	for _, tt := range tests {
		if got := shortID(tt.in); got != tt.want {
			t.Errorf("shortID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
