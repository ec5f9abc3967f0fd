package ipc

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/1broseidon/snaptile/internal/config"
	"github.com/1broseidon/snaptile/internal/gesture"
	"github.com/1broseidon/snaptile/internal/runtimepath"
	"github.com/1broseidon/snaptile/internal/tiling"
)

// Server handles IPC requests from clients
type Server struct {
	socketPath   string
	listener     net.Listener
	cfg          *config.Config
	cfgMu        sync.RWMutex
	ctrl         *gesture.Controller
	loadConfig   func() (*config.Config, error)
	startTime    time.Time
	reloadChan   chan struct{}
	shuttingDown bool
	shutdownMu   sync.Mutex
}

// NewServer creates a new IPC server
func NewServer(cfg *config.Config, ctrl *gesture.Controller, reloadChan chan struct{}) (*Server, error) {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve IPC socket path: %w", err)
	}

	// Remove existing socket if present
	os.Remove(socketPath)

	return &Server{
		socketPath: socketPath,
		cfg:        cfg,
		ctrl:       ctrl,
		loadConfig: config.Load,
		startTime:  time.Now(),
		reloadChan: reloadChan,
	}, nil
}

// SocketPath returns the path the server listens on.
func (s *Server) SocketPath() string {
	return s.socketPath
}

// Start begins listening for IPC connections
func (s *Server) Start() error {
	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	// Set socket permissions
	if err := os.Chmod(s.socketPath, 0600); err != nil {
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	log.Printf("IPC server listening on %s", s.socketPath)

	go s.acceptLoop()

	return nil
}

func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.shutdownMu.Lock()
			if s.shuttingDown {
				s.shutdownMu.Unlock()
				return
			}
			s.shutdownMu.Unlock()
			log.Printf("IPC accept error: %v", err)
			continue
		}

		go s.handleConnection(conn)
	}
}

// handleConnection handles a single IPC connection
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)

	// Read the request (expect JSON on a single line)
	data, err := reader.ReadBytes('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		log.Printf("IPC read error: %v", err)
		return
	}

	req, err := ParseRequest(data)
	if err != nil {
		s.sendError(conn, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	resp := s.handleCommand(req)

	respData, err := resp.Marshal()
	if err != nil {
		log.Printf("Failed to marshal response: %v", err)
		return
	}

	respData = append(respData, '\n')
	if _, err := conn.Write(respData); err != nil {
		log.Printf("Failed to send response: %v", err)
	}
}

// handleCommand processes an IPC command and returns a response
func (s *Server) handleCommand(req *Request) *Response {
	switch req.Command {
	case CommandReload:
		return s.handleReload()
	case CommandGetStatus:
		return s.handleGetStatus()
	case CommandGetState:
		return s.handleGetState()
	case CommandCreateWindow:
		return s.handleCreateWindow()
	case CommandMoveWindow:
		return s.handleMoveWindow(req.Payload)
	case CommandBringToFront:
		return s.handleWindowCommand(req.Payload, s.ctrl.BringToFront)
	case CommandCloseWindow:
		return s.handleWindowCommand(req.Payload, s.ctrl.CloseWindow)
	case CommandSnapWindow:
		return s.handleSnapWindow(req.Payload)
	case CommandUnsnapWindow:
		return s.handleUnsnapWindow(req.Payload)
	case CommandPointerDown:
		return s.handlePointerDown(req.Payload)
	case CommandPointerMove:
		return s.handlePointerMove(req.Payload)
	case CommandPointerUp:
		return s.handlePointerUp()
	default:
		return NewErrorResponse(fmt.Sprintf("Unknown command: %s (known: %s)", req.Command, strings.Join(sortedCommands(), ", ")))
	}
}

// handleReload reloads the configuration
func (s *Server) handleReload() *Response {
	log.Println("IPC: Received RELOAD command")

	newCfg, err := s.loadConfig()
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to reload config: %v", err))
	}

	s.cfgMu.Lock()
	s.cfg = newCfg
	s.cfgMu.Unlock()
	s.ctrl.SetSettings(newCfg.GestureSettings())

	// Notify the main daemon via channel (non-blocking)
	select {
	case s.reloadChan <- struct{}{}:
	default:
	}

	log.Println("IPC: Config reloaded successfully")

	return okResponse(nil)
}

// handleGetStatus returns current daemon status
func (s *Server) handleGetStatus() *Response {
	snap := s.ctrl.Snapshot()
	state := snap.Desktop

	s.cfgMu.RLock()
	source := string(s.cfg.SurfaceSource)
	s.cfgMu.RUnlock()

	floating := len(state.Floating())
	status := StatusData{
		DaemonRunning: true,
		UptimeSeconds: int64(time.Since(s.startTime).Seconds()),
		SurfaceSource: source,
		Surface:       snap.Surface,
		WindowCount:   state.WindowCount(),
		FloatingCount: floating,
		TiledCount:    len(tiling.Windows(state.Root())),
		Phase:         snap.Phase.String(),
		Layout:        tiling.String(state.Root()),
	}
	return okResponse(status)
}

func (s *Server) handleGetState() *Response {
	return okResponse(NewStateData(s.ctrl.Snapshot()))
}

func (s *Server) handleCreateWindow() *Response {
	id := s.ctrl.CreateWindow()
	return okResponse(CreateWindowData{WindowID: id})
}

func (s *Server) handleMoveWindow(payload json.RawMessage) *Response {
	var req PositionPayload
	if err := decodePayload(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid move payload: %v", err))
	}
	if req.WindowID == "" {
		return NewErrorResponse("window_id is required")
	}
	return okResponse(ChangedData{Changed: s.ctrl.MoveWindow(req.WindowID, req.X, req.Y)})
}

func (s *Server) handleWindowCommand(payload json.RawMessage, fn func(string) bool) *Response {
	var req WindowPayload
	if err := decodePayload(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid window payload: %v", err))
	}
	if req.WindowID == "" {
		return NewErrorResponse("window_id is required")
	}
	return okResponse(ChangedData{Changed: fn(req.WindowID)})
}

func (s *Server) handleSnapWindow(payload json.RawMessage) *Response {
	var req SnapWindowPayload
	if err := decodePayload(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid snap payload: %v", err))
	}
	if req.WindowID == "" {
		return NewErrorResponse("window_id is required")
	}
	if !req.Direction.Valid() {
		return NewErrorResponse(fmt.Sprintf("invalid direction %q (want left, right, top or bottom)", req.Direction))
	}
	log.Printf("IPC: Snap %s at %s (%s)", req.WindowID, req.Path, req.Direction)
	return okResponse(ChangedData{Changed: s.ctrl.SnapWindow(req.WindowID, req.Path, req.Direction)})
}

func (s *Server) handleUnsnapWindow(payload json.RawMessage) *Response {
	var req PositionPayload
	if err := decodePayload(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid unsnap payload: %v", err))
	}
	if req.WindowID == "" {
		return NewErrorResponse("window_id is required")
	}
	return okResponse(ChangedData{Changed: s.ctrl.UnsnapWindow(req.WindowID, req.X, req.Y)})
}

func (s *Server) handlePointerDown(payload json.RawMessage) *Response {
	var req PositionPayload
	if err := decodePayload(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid pointer payload: %v", err))
	}
	if req.WindowID == "" {
		return NewErrorResponse("window_id is required")
	}
	return okResponse(ChangedData{Changed: s.ctrl.PointerDown(req.WindowID, req.X, req.Y)})
}

func (s *Server) handlePointerMove(payload json.RawMessage) *Response {
	var req PointerMovePayload
	if err := decodePayload(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid pointer payload: %v", err))
	}
	s.ctrl.OnPointerMove(req.X, req.Y)
	return okResponse(NewStateData(s.ctrl.Snapshot()))
}

func (s *Server) handlePointerUp() *Response {
	return okResponse(PointerUpData{Committed: s.ctrl.OnPointerUp()})
}

// sendError sends an error response
func (s *Server) sendError(conn net.Conn, errMsg string) {
	resp := NewErrorResponse(errMsg)
	data, _ := resp.Marshal()
	data = append(data, '\n')
	conn.Write(data)
}

// Stop gracefully shuts down the IPC server
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	os.Remove(s.socketPath)
}

// GetConfig returns the current config (thread-safe)
func (s *Server) GetConfig() *config.Config {
	s.cfgMu.RLock()
	defer s.cfgMu.RUnlock()
	return s.cfg
}

// UpdateConfig updates the config (thread-safe)
func (s *Server) UpdateConfig(cfg *config.Config) {
	s.cfgMu.Lock()
	defer s.cfgMu.Unlock()
	s.cfg = cfg
}

func decodePayload(payload json.RawMessage, out any) error {
	if len(payload) == 0 {
		return fmt.Errorf("payload is required")
	}
	dec := json.NewDecoder(strings.NewReader(string(payload)))
	dec.DisallowUnknownFields()
	return dec.Decode(out)
}

func okResponse(data any) *Response {
	resp, err := NewOKResponse(data)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}
