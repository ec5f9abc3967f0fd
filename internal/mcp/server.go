package mcp

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/snaptile/internal/ipc"
	"github.com/1broseidon/snaptile/internal/tiling"
)

const (
	ServerName    = "snaptile"
	ServerVersion = "0.1.0"
)

// EngineClient is the daemon surface the tools drive. *ipc.Client satisfies it.
type EngineClient interface {
	GetState() (*ipc.StateData, error)
	CreateWindow() (string, error)
	MoveWindow(id string, x, y int) (bool, error)
	BringToFront(id string) (bool, error)
	CloseWindow(id string) (bool, error)
	SnapWindow(id string, path tiling.Path, dir tiling.Direction) (bool, error)
	UnsnapWindow(id string, x, y int) (bool, error)
	PointerDown(id string, x, y int) (bool, error)
	PointerMove(x, y int) (*ipc.StateData, error)
	PointerUp() (bool, error)
}

// Server exposes the tiling engine as MCP tools.
type Server struct {
	mcpServer *mcpsdk.Server
	engine    EngineClient
	logger    *slog.Logger
}

// NewServer creates a new MCP server backed by engine. Logs go to logger;
// stdout is reserved for the transport.
func NewServer(engine EngineClient, logger *slog.Logger) (*Server, error) {
	if engine == nil {
		return nil, fmt.Errorf("mcp server requires an engine")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	s := &Server{
		engine: engine,
		logger: logger,
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s, nil
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "create_window",
		Description: "Open a new 300x200 floating window at a random position on the surface. Returns the window ID for future reference.",
	}, s.handleCreateWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_windows",
		Description: "List every window with its placement (floating or tiled), rectangle and stacking order.",
	}, s.handleListWindows)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_layout",
		Description: "Describe the tiling layout: a compact tree form such as row(A,column(B,empty)), every leaf with its path and rectangle, and an ASCII preview.",
	}, s.handleGetLayout)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "move_window",
		Description: "Move a floating window so its top-left corner sits at (x, y). Tiled windows are not affected.",
	}, s.handleMoveWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "bring_to_front",
		Description: "Raise a floating window above all other floating windows.",
	}, s.handleBringToFront)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "close_window",
		Description: "Close a window. A tiled window's sibling takes over the space it leaves.",
	}, s.handleCloseWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "snap_window",
		Description: "Tile a floating window against an edge of a layout leaf. Use path none when the layout is empty; filling an empty leaf replaces it, snapping onto a window splits that leaf in half.",
	}, s.handleSnapWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "unsnap_window",
		Description: "Pull a tiled window out of the layout and float it at (x, y). Its sibling takes over the freed space.",
	}, s.handleUnsnapWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "drag_window",
		Description: "Simulate a pointer drag: press on the window at (from_x, from_y), move in steps to (to_x, to_y) and release. Dragging a tiled window unsnaps it; releasing near an edge snaps it.",
	}, s.handleDragWindow)
}
