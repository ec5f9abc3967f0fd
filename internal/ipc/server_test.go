package ipc

import (
	"encoding/json"
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/1broseidon/snaptile/internal/config"
	"github.com/1broseidon/snaptile/internal/gesture"
	"github.com/1broseidon/snaptile/internal/tiling"
)

func newTestServer(t *testing.T, ids ...string) *Server {
	t.Helper()

	dir, err := os.MkdirTemp("", "snaptile-ipc")
	if err != nil {
		t.Fatalf("MkdirTemp: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })
	t.Setenv("SNAPTILE_SOCKET", filepath.Join(dir, "s.sock"))

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

	srv, err := NewServer(config.DefaultConfig(), ctrl, make(chan struct{}, 1))
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	return srv
}

func request(t *testing.T, cmd CommandType, payload any) *Request {
	t.Helper()
	req := &Request{Command: cmd}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		req.Payload = data
	}
	return req
}

func decodeData(t *testing.T, resp *Response, out any) {
	t.Helper()
	if resp.Status != "OK" {
		t.Fatalf("expected OK, got %s: %s", resp.Status, resp.Error)
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		t.Fatalf("decode data: %v", err)
	}
}

func TestHandleCommand_SnapAndState(t *testing.T) {
	srv := newTestServer(t, "A", "B")

	var created CreateWindowData
	decodeData(t, srv.handleCommand(request(t, CommandCreateWindow, nil)), &created)
	if created.WindowID != "A" {
		t.Fatalf("expected id A, got %q", created.WindowID)
	}
	srv.handleCommand(request(t, CommandCreateWindow, nil))

	var changed ChangedData
	decodeData(t, srv.handleCommand(request(t, CommandSnapWindow, SnapWindowPayload{
		WindowID: "A", Direction: tiling.DirLeft,
	})), &changed)
	if !changed.Changed {
		t.Fatalf("expected A to snap onto the empty surface")
	}

	decodeData(t, srv.handleCommand(request(t, CommandSnapWindow, SnapWindowPayload{
		WindowID: "B", Path: tiling.Path{1}, Direction: tiling.DirRight,
	})), &changed)
	if !changed.Changed {
		t.Fatalf("expected B to fill the empty half")
	}

	var state StateData
	decodeData(t, srv.handleCommand(request(t, CommandGetState, nil)), &state)
	if state.Layout != "row(A,B)" {
		t.Fatalf("layout = %s, want row(A,B)", state.Layout)
	}
	if len(state.Floating) != 0 {
		t.Fatalf("expected no floating windows, got %d", len(state.Floating))
	}
	b, ok := state.Window("B")
	if !ok {
		t.Fatalf("window B missing from state")
	}
	if b.Placement != "tiled" || b.Rect != (tiling.Rect{X: 600, Width: 600, Height: 800}) {
		t.Fatalf("unexpected B info %+v", b)
	}
	root, err := state.Root()
	if err != nil {
		t.Fatalf("Root: %v", err)
	}
	if !tiling.Equal(root, srv.ctrl.Desktop().Root()) {
		t.Fatalf("decoded tree differs from controller tree")
	}

	var status StatusData
	decodeData(t, srv.handleCommand(request(t, CommandGetStatus, nil)), &status)
	if status.WindowCount != 2 || status.TiledCount != 2 || status.FloatingCount != 0 {
		t.Fatalf("unexpected status %+v", status)
	}
}

func TestHandleCommand_UnknownWindowIsNotAnError(t *testing.T) {
	srv := newTestServer(t)
	var changed ChangedData
	decodeData(t, srv.handleCommand(request(t, CommandCloseWindow, WindowPayload{WindowID: "ghost"})), &changed)
	if changed.Changed {
		t.Fatalf("expected unchanged for unknown window")
	}
}

func TestHandleCommand_Errors(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name string
		req  *Request
		want string
	}{
		{"unknown command", &Request{Command: "TILE"}, "Unknown command"},
		{"missing payload", &Request{Command: CommandMoveWindow}, "payload is required"},
		{"bad json", &Request{Command: CommandMoveWindow, Payload: json.RawMessage(`{"window_id":`)}, "Invalid move payload"},
		{"unknown field", &Request{Command: CommandBringToFront, Payload: json.RawMessage(`{"id":"A"}`)}, "unknown field"},
		{"missing id", request(t, CommandCloseWindow, WindowPayload{}), "window_id is required"},
		{"bad direction", request(t, CommandSnapWindow, SnapWindowPayload{WindowID: "A", Direction: "up"}), "invalid direction"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := srv.handleCommand(tt.req)
			if resp.Status != "ERROR" {
				t.Fatalf("expected ERROR, got %s", resp.Status)
			}
			if !strings.Contains(resp.Error, tt.want) {
				t.Fatalf("error %q does not mention %q", resp.Error, tt.want)
			}
		})
	}
}

func TestHandleReload(t *testing.T) {
	srv := newTestServer(t)
	cfg := config.DefaultConfig()
	cfg.SurfaceSource = config.SurfaceStatic
	srv.loadConfig = func() (*config.Config, error) { return cfg, nil }

	if resp := srv.handleCommand(&Request{Command: CommandReload}); resp.Status != "OK" {
		t.Fatalf("reload failed: %s", resp.Error)
	}
	if srv.GetConfig() != cfg {
		t.Fatalf("expected config swapped")
	}
	select {
	case <-srv.reloadChan:
	default:
		t.Fatalf("expected reload notification")
	}

	srv.loadConfig = func() (*config.Config, error) { return nil, errors.New("bad yaml") }
	resp := srv.handleCommand(&Request{Command: CommandReload})
	if resp.Status != "ERROR" || !strings.Contains(resp.Error, "bad yaml") {
		t.Fatalf("expected reload error, got %+v", resp)
	}
	if srv.GetConfig() != cfg {
		t.Fatalf("failed reload must keep the previous config")
	}
}

func TestServerClientRoundTrip(t *testing.T) {
	srv := newTestServer(t, "A")
	if err := srv.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer srv.Stop()

	client := NewClient()
	if err := client.Ping(); err != nil {
		t.Fatalf("Ping: %v", err)
	}

	id, err := client.CreateWindow()
	if err != nil {
		t.Fatalf("CreateWindow: %v", err)
	}
	if ok, err := client.MoveWindow(id, 100, 100); err != nil || !ok {
		t.Fatalf("MoveWindow = %v, %v", ok, err)
	}

	// Drag the window onto the empty surface until the left edge sits inside
	// the margin.
	if ok, err := client.PointerDown(id, 150, 110); err != nil || !ok {
		t.Fatalf("PointerDown = %v, %v", ok, err)
	}
	state, err := client.PointerMove(60, 110)
	if err != nil {
		t.Fatalf("PointerMove: %v", err)
	}
	if state.Intent == nil || state.Intent.Path != nil || state.Intent.Direction != tiling.DirLeft {
		t.Fatalf("expected left intent on empty surface, got %+v", state.Intent)
	}
	committed, err := client.PointerUp()
	if err != nil || !committed {
		t.Fatalf("PointerUp = %v, %v", committed, err)
	}

	state, err = client.GetState()
	if err != nil {
		t.Fatalf("GetState: %v", err)
	}
	if state.Layout != "row(A,empty)" {
		t.Fatalf("layout = %s, want row(A,empty)", state.Layout)
	}

	if _, err := client.SnapWindow(id, nil, "sideways"); err == nil {
		t.Fatalf("expected daemon error for bad direction")
	}
}

func TestClient_NoDaemon(t *testing.T) {
	client := NewClientWithSocket(filepath.Join(t.TempDir(), "missing.sock"))
	if err := client.Ping(); err == nil {
		t.Fatalf("expected connection error")
	}
}
