package ipc

import (
	"errors"
	"fmt"
	"net"
	"os/exec"
	"sync"
	"time"
)

// Common client errors.
var (
	ErrNotConnected     = errors.New("not connected to suyand")
	ErrDaemonNotRunning = errors.New("suyand is not running")
)

// ClientConfig configures the IPC client used by the TSF shim.
type ClientConfig struct {
	ConnectTimeout time.Duration
	RequestTimeout time.Duration
	SpawnPath      string // absolute path to the suyand executable, for connect_or_spawn
	SpawnRetries   int
	SpawnBackoff   time.Duration
}

// DefaultClientConfig is the connect-or-spawn timing a thin TSF shim
// should use: a fixed backoff retried up to ~2s total.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		ConnectTimeout: 2 * time.Second,
		RequestTimeout: 2 * time.Second,
		SpawnRetries:   10,
		SpawnBackoff:   200 * time.Millisecond,
	}
}

// Client is a single-connection, strict request/response client: one
// outstanding request at a time, matching the server's per-connection
// handling loop.
type Client struct {
	cfg  ClientConfig
	mu   sync.Mutex
	conn net.Conn
}

// NewClient creates a Client that has not yet connected.
func NewClient(cfg ClientConfig) *Client {
	return &Client{cfg: cfg}
}

// Connect dials the named pipe. If no server is listening and
// SpawnPath is set, it starts that executable with exec.Command (no
// window-hiding process attributes are set) and retries with fixed
// backoff.
func (c *Client) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	conn, err := Dial()
	if err == nil {
		c.conn = conn
		return nil
	}

	if c.cfg.SpawnPath == "" {
		return fmt.Errorf("%w: %v", ErrDaemonNotRunning, err)
	}

	cmd := exec.Command(c.cfg.SpawnPath)
	if spawnErr := cmd.Start(); spawnErr != nil {
		return fmt.Errorf("spawn suyand: %w", spawnErr)
	}

	retries := c.cfg.SpawnRetries
	if retries <= 0 {
		retries = 10
	}
	backoff := c.cfg.SpawnBackoff
	if backoff <= 0 {
		backoff = 200 * time.Millisecond
	}

	var lastErr error
	for i := 0; i < retries; i++ {
		time.Sleep(backoff)
		conn, err = Dial()
		if err == nil {
			c.conn = conn
			return nil
		}
		lastErr = err
	}

	return fmt.Errorf("%w after spawn: %v", ErrDaemonNotRunning, lastErr)
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}

// Call sends one request and waits for its response. Only one Call
// may be in flight at a time; the caller serializes its own requests,
// matching the TSF editsession model where key events are processed
// one at a time.
func (c *Client) Call(req Request) (Response, []byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return Response{}, nil, ErrNotConnected
	}

	if c.cfg.RequestTimeout > 0 {
		c.conn.SetDeadline(time.Now().Add(c.cfg.RequestTimeout))
	}

	if err := WriteRequest(c.conn, req, nil); err != nil {
		return Response{}, nil, fmt.Errorf("send request: %w", err)
	}

	resp, data, err := ReadResponse(c.conn)
	if err != nil {
		return Response{}, nil, fmt.Errorf("read response: %w", err)
	}
	return resp, data, nil
}
