//go:build windows

package ipc

import (
	"fmt"
	"net"
	"syscall"
	"time"
	"unsafe"
)

// Named pipe constants.
const (
	pipeAccessDuplex       = 0x00000003
	pipeTypeMessage        = 0x00000004
	pipeReadmodeMessage    = 0x00000002
	pipeWait               = 0x00000000
	pipeUnlimitedInstances = 255
	pipeBufferSize         = 64 * 1024
	errorPipeConnected     = 535
)

var (
	kernel32                = syscall.NewLazyDLL("kernel32.dll")
	procCreateNamedPipeW    = kernel32.NewProc("CreateNamedPipeW")
	procConnectNamedPipe    = kernel32.NewProc("ConnectNamedPipe")
	procDisconnectNamedPipe = kernel32.NewProc("DisconnectNamedPipe")
)

// Listen opens the well-known SuYan named pipe and returns a
// net.Listener that accepts one TSF client connection per Accept call.
// Each Accept creates a new pipe instance with an unlimited instance
// count and no first-instance flag, so a second suyand process can
// create instances of the same pipe name too.
func Listen() (net.Listener, error) {
	return &pipeListener{pipeName: PipeName}, nil
}

type pipeListener struct {
	pipeName string
	closed   bool
}

func (l *pipeListener) Accept() (net.Conn, error) {
	if l.closed {
		return nil, net.ErrClosed
	}

	handle, err := createNamedPipe(l.pipeName)
	if err != nil {
		return nil, fmt.Errorf("create pipe: %w", err)
	}

	if err := connectNamedPipe(handle); err != nil {
		syscall.CloseHandle(handle)
		return nil, fmt.Errorf("connect pipe: %w", err)
	}

	return &pipeConn{handle: handle, pipeName: l.pipeName}, nil
}

func (l *pipeListener) Close() error {
	l.closed = true
	return nil
}

func (l *pipeListener) Addr() net.Addr {
	return pipeAddr(l.pipeName)
}

func createNamedPipe(name string) (syscall.Handle, error) {
	pipeName, err := syscall.UTF16PtrFromString(name)
	if err != nil {
		return syscall.InvalidHandle, err
	}

	handle, _, err := procCreateNamedPipeW.Call(
		uintptr(unsafe.Pointer(pipeName)),
		pipeAccessDuplex,
		pipeTypeMessage|pipeReadmodeMessage|pipeWait,
		pipeUnlimitedInstances,
		pipeBufferSize,
		pipeBufferSize,
		0,
		0, // default security descriptor: current user only
	)

	if handle == uintptr(syscall.InvalidHandle) {
		return syscall.InvalidHandle, err
	}
	return syscall.Handle(handle), nil
}

func connectNamedPipe(handle syscall.Handle) error {
	r, _, err := procConnectNamedPipe.Call(uintptr(handle), 0)
	if r == 0 {
		if errno, ok := err.(syscall.Errno); ok && errno == errorPipeConnected {
			return nil
		}
		return err
	}
	return nil
}

func disconnectNamedPipe(handle syscall.Handle) error {
	r, _, err := procDisconnectNamedPipe.Call(uintptr(handle))
	if r == 0 {
		return err
	}
	return nil
}

// pipeConn implements net.Conn over a connected named-pipe handle.
type pipeConn struct {
	handle   syscall.Handle
	pipeName string
}

func (c *pipeConn) Read(b []byte) (int, error) {
	var n uint32
	err := syscall.ReadFile(c.handle, b, &n, nil)
	return int(n), err
}

func (c *pipeConn) Write(b []byte) (int, error) {
	var n uint32
	err := syscall.WriteFile(c.handle, b, &n, nil)
	return int(n), err
}

func (c *pipeConn) Close() error {
	disconnectNamedPipe(c.handle)
	return syscall.CloseHandle(c.handle)
}

func (c *pipeConn) LocalAddr() net.Addr  { return pipeAddr(c.pipeName) }
func (c *pipeConn) RemoteAddr() net.Addr { return pipeAddr(c.pipeName) }

// Named pipes created with PIPE_WAIT don't support overlapped-style
// per-call deadlines through this synchronous handle, so these are
// no-ops: the server's ReadTimeout and the client's RequestTimeout
// have no effect on pipe connections, and a blocking Read waits until
// data arrives or the pipe is closed.
func (c *pipeConn) SetDeadline(t time.Time) error      { return nil }
func (c *pipeConn) SetReadDeadline(t time.Time) error  { return nil }
func (c *pipeConn) SetWriteDeadline(t time.Time) error { return nil }

type pipeAddr string

func (a pipeAddr) Network() string { return "pipe" }
func (a pipeAddr) String() string  { return string(a) }

// Dial connects to a running suyand server's named pipe.
func Dial() (net.Conn, error) {
	name, err := syscall.UTF16PtrFromString(PipeName)
	if err != nil {
		return nil, err
	}
	handle, err := syscall.CreateFile(
		name,
		syscall.GENERIC_READ|syscall.GENERIC_WRITE,
		0,
		nil,
		syscall.OPEN_EXISTING,
		0,
		0,
	)
	if err != nil {
		return nil, fmt.Errorf("open pipe: %w", err)
	}
	return &pipeConn{handle: handle, pipeName: PipeName}, nil
}
