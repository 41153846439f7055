package main

import (
	"context"
	"encoding/binary"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"suyan/internal/candidate"
	"suyan/internal/candidatewindow"
	"suyan/internal/caret"
	"suyan/internal/config"
	"suyan/internal/engine"
	"suyan/internal/inputsession"
	"suyan/internal/ipc"
	"suyan/internal/keycodec"
	"suyan/internal/registry"
)

// defaultScreen stands in for the monitor the caret currently sits on.
// suyan-tsf and suyand always share the interactive desktop session, so
// a single full-HD-sized bound is a reasonable placement clamp until
// per-monitor geometry is wired in.
var defaultScreen = candidatewindow.Rect{X: 0, Y: 0, W: 1920, H: 1080}

// sessionHandler bridges the framed IPC protocol to the session
// registry, composition engine, candidate window, and caret locator.
// One instance is shared by every connection the server accepts.
type sessionHandler struct {
	registry *registry.Registry
	engine   engine.Engine
	window   *candidatewindow.Window
	locator  *caret.Locator
	cfg      *config.Store
	log      *slog.Logger

	mu        sync.Mutex
	lastCaret caret.Rect
	haveCaret bool

	// windowMu serializes every Show/Hide call: the candidate window is
	// a single on-screen surface shared across connections, matching
	// the single-designated-owner rule the clipboard store follows too.
	windowMu sync.Mutex
}

func newSessionHandler(reg *registry.Registry, eng engine.Engine, window *candidatewindow.Window, locator *caret.Locator, cfg *config.Store, log *slog.Logger) *sessionHandler {
	return &sessionHandler{
		registry: reg,
		engine:   eng,
		window:   window,
		locator:  locator,
		cfg:      cfg,
		log:      log,
	}
}

// HandleRequest implements ipc.Handler.
func (h *sessionHandler) HandleRequest(_ context.Context, req ipc.Request, _ []byte) (ipc.Result, []byte) {
	if req.Cmd == ipc.CmdStartSession {
		return h.startSession()
	}
	if req.Cmd == ipc.CmdShutdown || req.Cmd == ipc.CmdEcho {
		return ipc.ResultOK, nil
	}

	sess, ok := h.session(req.SessionID)
	if !ok {
		return ipc.ResultInvalidSession, nil
	}

	switch req.Cmd {
	case ipc.CmdEndSession:
		return h.endSession(req.SessionID)
	case ipc.CmdProcessKey:
		return h.processKey(sess, req)
	case ipc.CmdTestKey:
		return h.testKey(sess, req)
	case ipc.CmdFocusIn:
		sess.FocusIn()
		return ipc.ResultOK, nil
	case ipc.CmdFocusOut:
		sess.FocusOut()
		h.forgetCaret()
		h.hideWindow()
		return ipc.ResultOK, nil
	case ipc.CmdUpdatePosition:
		return h.updatePosition(req)
	case ipc.CmdCommit:
		return h.commit(sess)
	case ipc.CmdClear:
		sess.Clear()
		h.refreshWindow(sess)
		return ipc.ResultOK, nil
	case ipc.CmdSelectCandidate:
		return h.selectCandidate(sess, req)
	default:
		return ipc.ResultUnknownCommand, nil
	}
}

func (h *sessionHandler) session(handle uint32) (*inputsession.Session, bool) {
	raw, ok := h.registry.Get(handle)
	if !ok {
		return nil, false
	}
	sess, ok := raw.(*inputsession.Session)
	return sess, ok
}

func (h *sessionHandler) startSession() (ipc.Result, []byte) {
	sess := inputsession.New(uuid.NewString(), h.engine)
	if h.cfg != nil {
		sess.SetDirection(h.cfg.Snapshot().Layout.Direction != "vertical")
	}
	handle := h.registry.Register(sess)

	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, handle)
	return ipc.ResultOK, buf
}

func (h *sessionHandler) endSession(handle uint32) (ipc.Result, []byte) {
	if err := h.registry.Unregister(handle); err != nil {
		return ipc.ResultInvalidSession, nil
	}
	h.forgetCaret()
	h.hideWindow()
	return ipc.ResultOK, nil
}

func (h *sessionHandler) hideWindow() {
	if h.window == nil {
		return
	}
	h.windowMu.Lock()
	defer h.windowMu.Unlock()
	h.window.Hide()
}

func (h *sessionHandler) processKey(sess *inputsession.Session, req ipc.Request) (ipc.Result, []byte) {
	mods := convertModifiers(ipc.ModifierFlags(req.Param2))
	committed, consumed := sess.ProcessKey(req.Param1, mods)
	h.refreshWindow(sess)
	return ipc.ResultOK, encodeKeyResult(consumed, committed)
}

func (h *sessionHandler) testKey(sess *inputsession.Session, req ipc.Request) (ipc.Result, []byte) {
	mods := convertModifiers(ipc.ModifierFlags(req.Param2))
	consumed := sess.TestKey(req.Param1, mods)
	return ipc.ResultOK, encodeKeyResult(consumed, "")
}

func (h *sessionHandler) commit(sess *inputsession.Session) (ipc.Result, []byte) {
	committed := sess.Commit()
	h.refreshWindow(sess)
	return ipc.ResultOK, ipc.EncodeUTF16LE(committed)
}

func (h *sessionHandler) selectCandidate(sess *inputsession.Session, req ipc.Request) (ipc.Result, []byte) {
	committed, ok := sess.SelectCandidate(int(req.Param1))
	h.refreshWindow(sess)
	if !ok {
		return ipc.ResultEngineError, nil
	}
	return ipc.ResultOK, ipc.EncodeUTF16LE(committed)
}

// updatePosition records where the TSF shim reports the text caret to
// be. The client side always knows this more precisely than the
// server's own caret-locator cascade, since it runs in the focused
// application's process.
func (h *sessionHandler) updatePosition(req ipc.Request) (ipc.Result, []byte) {
	x, y := ipc.UnpackCoordinates(req.Param1)
	h.mu.Lock()
	h.lastCaret = caret.Rect{X: int(x), Y: int(y), W: 1, H: 16}
	h.haveCaret = true
	h.mu.Unlock()
	return ipc.ResultOK, nil
}

func (h *sessionHandler) forgetCaret() {
	h.mu.Lock()
	h.haveCaret = false
	h.mu.Unlock()
	h.locator.Reset()
}

func (h *sessionHandler) caretRect() caret.Rect {
	h.mu.Lock()
	r, have := h.lastCaret, h.haveCaret
	h.mu.Unlock()
	if have {
		return r
	}
	r, _ = h.locator.Locate()
	return r
}

// refreshWindow shows or hides the candidate window to match sess's
// current composition state, placed beside the last known caret
// position.
func (h *sessionHandler) refreshWindow(sess *inputsession.Session) {
	if h.window == nil {
		return
	}

	state := sess.State()
	if !state.IsComposing || len(state.Candidates) == 0 {
		h.hideWindow()
		return
	}

	horizontal := true
	if h.cfg != nil {
		horizontal = h.cfg.Snapshot().Layout.Direction != "vertical"
	}
	dir := directionFor(state, horizontal)

	layout := candidate.Compute(state, dir, candidate.DefaultStyle())
	cr := h.caretRect()
	x, y := candidatewindow.Place(
		candidatewindow.Rect{X: cr.X, Y: cr.Y, W: cr.W, H: cr.H},
		layout.Size.W, layout.Size.H, defaultScreen,
	)

	h.windowMu.Lock()
	h.window.Show(candidatewindow.Rect{X: x, Y: y, W: layout.Size.W, H: layout.Size.H}, state, dir)
	h.windowMu.Unlock()
}

func directionFor(state inputsession.State, horizontal bool) candidate.Direction {
	switch {
	case state.IsExpanded && horizontal:
		return candidate.ExpandedHorizontal
	case state.IsExpanded:
		return candidate.ExpandedVertical
	case horizontal:
		return candidate.Horizontal
	default:
		return candidate.Vertical
	}
}

// convertModifiers translates the wire's ModifierFlags bitmask to
// keycodec.Modifiers; the two enums assign different bit positions to
// the same keys.
func convertModifiers(mods ipc.ModifierFlags) keycodec.Modifiers {
	var out keycodec.Modifiers
	if mods&ipc.ModShift != 0 {
		out |= keycodec.ModShift
	}
	if mods&ipc.ModControl != 0 {
		out |= keycodec.ModControl
	}
	if mods&ipc.ModAlt != 0 {
		out |= keycodec.ModAlt
	}
	return out
}

// encodeKeyResult packs a consumed flag and the text (if any) a key
// event committed into one response payload: a leading flag byte
// followed by the UTF-16LE committed text.
func encodeKeyResult(consumed bool, committed string) []byte {
	out := make([]byte, 1, 1+len(committed)*2)
	if consumed {
		out[0] = 1
	}
	return append(out, ipc.EncodeUTF16LE(committed)...)
}
