//go:build windows

// suyan-tsf is the Windows TSF client shim's Go-side contract: the
// thin translation between ITfKeyEventSink/ITfTextInputProcessor
// callbacks and the named-pipe protocol internal/ipc defines. The COM
// class objects and registry registration a real text-service DLL
// needs are out of scope here — this package owns everything on the
// Go side of that boundary, ready to be called from a small cgo/COM
// host once one exists.
package main

import (
	"fmt"
	"sync"

	"suyan/internal/ipc"
	"suyan/internal/keycodec"
)

// KeyEvent carries the raw parameters an ITfKeyEventSink callback
// receives from Windows, before any codec translation: the virtual-key
// code, its scancode and extended-key flag, and the held modifier
// state.
type KeyEvent struct {
	VK       uint32
	Scancode uint32
	Extended bool
	Shift    bool
	Control  bool
	Alt      bool
	CapsLock bool
}

// convertKeyEvent normalizes a raw Windows key event into the keysym
// and wire-level modifier flags the IPC protocol carries. ok is false
// for bare modifier-key presses and any key the codec doesn't map —
// neither is forwarded to suyand.
func convertKeyEvent(evt KeyEvent) (keysym uint32, mods ipc.ModifierFlags, ok bool) {
	if keycodec.IsModifierKey(evt.VK) {
		return 0, 0, false
	}
	keysym, ok = keycodec.Convert(evt.VK, evt.Scancode, evt.Extended, evt.Shift, evt.CapsLock)
	if !ok {
		return 0, 0, false
	}
	return keysym, wireModifiers(evt.Shift, evt.Control, evt.Alt), true
}

// wireModifiers packs the held-modifier booleans into the wire
// protocol's ModifierFlags bitmask; the inverse of handler.go's
// convertModifiers on the server side.
func wireModifiers(shift, control, alt bool) ipc.ModifierFlags {
	var out ipc.ModifierFlags
	if shift {
		out |= ipc.ModShift
	}
	if control {
		out |= ipc.ModControl
	}
	if alt {
		out |= ipc.ModAlt
	}
	return out
}

// Shim is bound to one ITfTextInputProcessor activation: one IPC
// connection and one server-side session, mirroring
// tsf_client.h's TSFClient member layout (m_ipc + an implicit session).
type Shim struct {
	client    *ipc.Client
	mu        sync.Mutex
	sessionID uint32
	connected bool
}

// NewShim creates a Shim with the default client configuration; call
// Activate before using it.
func NewShim(spawnPath string) *Shim {
	cfg := ipc.DefaultClientConfig()
	cfg.SpawnPath = spawnPath
	return &Shim{client: ipc.NewClient(cfg)}
}

// Activate connects to suyand (spawning it if not already running) and
// opens a session, the Go-side equivalent of TSFClient::Activate.
func (s *Shim) Activate() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.client.Connect(); err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	s.connected = true

	resp, data, err := s.client.Call(ipc.Request{Cmd: ipc.CmdStartSession})
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	if resp.ResultCode != ipc.ResultOK || len(data) < 4 {
		return fmt.Errorf("start session: server returned %v", resp.ResultCode)
	}
	s.sessionID = decodeSessionID(data)
	return nil
}

// Deactivate ends the session and closes the connection, the
// counterpart to TSFClient::Deactivate.
func (s *Shim) Deactivate() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.connected {
		return nil
	}
	_, _, _ = s.client.Call(ipc.Request{Cmd: ipc.CmdEndSession, SessionID: s.sessionID})
	s.connected = false
	return s.client.Close()
}

// OnSetFocus forwards ITfThreadMgrEventSink::OnSetFocus/focus change.
func (s *Shim) OnSetFocus(focused bool) error {
	cmd := ipc.CmdFocusOut
	if focused {
		cmd = ipc.CmdFocusIn
	}
	_, _, err := s.call(ipc.Request{Cmd: cmd})
	return err
}

// OnTestKeyDown mirrors ITfKeyEventSink::OnTestKeyDown: ask whether the
// key would be consumed without committing to handling it.
func (s *Shim) OnTestKeyDown(evt KeyEvent) (eaten bool, err error) {
	keysym, mods, ok := convertKeyEvent(evt)
	if !ok {
		return false, nil
	}
	resp, data, err := s.call(ipc.Request{Cmd: ipc.CmdTestKey, Param1: keysym, Param2: uint32(mods)})
	if err != nil {
		return false, err
	}
	return decodeEaten(resp, data), nil
}

// OnKeyDown mirrors ITfKeyEventSink::OnKeyDown: process the key and
// report both whether it was consumed and any text it committed.
func (s *Shim) OnKeyDown(evt KeyEvent) (eaten bool, committed string, err error) {
	keysym, mods, ok := convertKeyEvent(evt)
	if !ok {
		return false, "", nil
	}
	resp, data, err := s.call(ipc.Request{Cmd: ipc.CmdProcessKey, Param1: keysym, Param2: uint32(mods)})
	if err != nil {
		return false, "", err
	}
	eaten = decodeEaten(resp, data)
	if len(data) > 1 {
		committed, err = ipc.DecodeUTF16LE(data[1:])
	}
	return eaten, committed, err
}

// UpdateCursorPosition mirrors TSFClient::updateCursorPosition,
// reporting the caret's screen position so the server can place the
// candidate window.
func (s *Shim) UpdateCursorPosition(x, y int16) error {
	_, _, err := s.call(ipc.Request{Cmd: ipc.CmdUpdatePosition, Param1: ipc.PackCoordinates(x, y)})
	return err
}

// SelectCandidate commits the candidate at index.
func (s *Shim) SelectCandidate(index int) (committed string, err error) {
	resp, data, err := s.call(ipc.Request{Cmd: ipc.CmdSelectCandidate, Param1: uint32(index)})
	if err != nil {
		return "", err
	}
	if resp.ResultCode != ipc.ResultOK {
		return "", fmt.Errorf("select candidate %d: %v", index, resp.ResultCode)
	}
	return ipc.DecodeUTF16LE(data)
}

// Commit forces commit of the in-flight composition.
func (s *Shim) Commit() (string, error) {
	resp, data, err := s.call(ipc.Request{Cmd: ipc.CmdCommit})
	if err != nil {
		return "", err
	}
	if resp.ResultCode != ipc.ResultOK {
		return "", fmt.Errorf("commit: %v", resp.ResultCode)
	}
	return ipc.DecodeUTF16LE(data)
}

// Clear discards the in-flight composition.
func (s *Shim) Clear() error {
	_, _, err := s.call(ipc.Request{Cmd: ipc.CmdClear})
	return err
}

func (s *Shim) call(req ipc.Request) (ipc.Response, []byte, error) {
	s.mu.Lock()
	req.SessionID = s.sessionID
	client := s.client
	s.mu.Unlock()
	return client.Call(req)
}

func decodeEaten(resp ipc.Response, data []byte) bool {
	return resp.ResultCode == ipc.ResultOK && len(data) > 0 && data[0] == 1
}

func decodeSessionID(data []byte) uint32 {
	return uint32(data[0]) | uint32(data[1])<<8 | uint32(data[2])<<16 | uint32(data[3])<<24
}
