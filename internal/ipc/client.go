package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/1broseidon/snaptile/internal/runtimepath"
	"github.com/1broseidon/snaptile/internal/tiling"
)

// Client handles IPC communication with the daemon
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient creates a new IPC client
func NewClient() *Client {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		// Keep constructor non-failing; sendRequest surfaces connection errors.
		socketPath = ""
	}

	return NewClientWithSocket(socketPath)
}

// NewClientWithSocket creates a client bound to an explicit socket path.
func NewClientWithSocket(socketPath string) *Client {
	return &Client{
		socketPath: socketPath,
		timeout:    5 * time.Second,
	}
}

// sendRequest sends a request and waits for a response
func (c *Client) sendRequest(req *Request) (*Response, error) {
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to daemon: %w (is the daemon running?)", err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(c.timeout))

	reqData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	reqData = append(reqData, '\n')
	if _, err := conn.Write(reqData); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	reader := bufio.NewReader(conn)
	respData, err := reader.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var resp Response
	if err := json.Unmarshal(respData, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if resp.Status == "ERROR" {
		return nil, fmt.Errorf("daemon error: %s", resp.Error)
	}

	return &resp, nil
}

// call sends command with an optional payload and decodes the reply into out.
func (c *Client) call(cmd CommandType, payload any, out any) error {
	req := &Request{Command: cmd}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal %s payload: %w", cmd, err)
		}
		req.Payload = data
	}

	resp, err := c.sendRequest(req)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		return fmt.Errorf("failed to parse %s data: %w", cmd, err)
	}
	return nil
}

func (c *Client) changed(cmd CommandType, payload any) (bool, error) {
	var data ChangedData
	if err := c.call(cmd, payload, &data); err != nil {
		return false, err
	}
	return data.Changed, nil
}

// Reload sends a RELOAD command to the daemon
func (c *Client) Reload() error {
	return c.call(CommandReload, nil, nil)
}

// GetStatus retrieves daemon status
func (c *Client) GetStatus() (*StatusData, error) {
	var status StatusData
	if err := c.call(CommandGetStatus, nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// GetState retrieves the full desktop state.
func (c *Client) GetState() (*StateData, error) {
	var state StateData
	if err := c.call(CommandGetState, nil, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// CreateWindow opens a new floating window and returns its ID.
func (c *Client) CreateWindow() (string, error) {
	var data CreateWindowData
	if err := c.call(CommandCreateWindow, nil, &data); err != nil {
		return "", err
	}
	return data.WindowID, nil
}

// MoveWindow repositions a floating window.
func (c *Client) MoveWindow(id string, x, y int) (bool, error) {
	return c.changed(CommandMoveWindow, PositionPayload{WindowID: id, X: x, Y: y})
}

// BringToFront raises a floating window.
func (c *Client) BringToFront(id string) (bool, error) {
	return c.changed(CommandBringToFront, WindowPayload{WindowID: id})
}

// CloseWindow removes a window wherever it lives.
func (c *Client) CloseWindow(id string) (bool, error) {
	return c.changed(CommandCloseWindow, WindowPayload{WindowID: id})
}

// SnapWindow tiles a floating window against the leaf at path. A nil path
// targets the empty surface.
func (c *Client) SnapWindow(id string, path tiling.Path, dir tiling.Direction) (bool, error) {
	return c.changed(CommandSnapWindow, SnapWindowPayload{WindowID: id, Path: path, Direction: dir})
}

// UnsnapWindow pulls a tiled window out of the layout to (x, y).
func (c *Client) UnsnapWindow(id string, x, y int) (bool, error) {
	return c.changed(CommandUnsnapWindow, PositionPayload{WindowID: id, X: x, Y: y})
}

// PointerDown presses the pointer on a window at a surface point.
func (c *Client) PointerDown(id string, x, y int) (bool, error) {
	return c.changed(CommandPointerDown, PositionPayload{WindowID: id, X: x, Y: y})
}

// PointerMove reports pointer motion and returns the resulting state.
func (c *Client) PointerMove(x, y int) (*StateData, error) {
	var state StateData
	if err := c.call(CommandPointerMove, PointerMovePayload{X: x, Y: y}, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// PointerUp releases the pointer and reports whether a snap was committed.
func (c *Client) PointerUp() (bool, error) {
	var data PointerUpData
	if err := c.call(CommandPointerUp, nil, &data); err != nil {
		return false, err
	}
	return data.Committed, nil
}

// Ping checks if the daemon is responding
func (c *Client) Ping() error {
	_, err := c.GetStatus()
	return err
}
