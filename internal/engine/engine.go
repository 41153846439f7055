// Package engine defines the contract for the embedded Chinese
// composition engine. The engine itself — the RIME-style pinyin
// composition algorithm, dictionary lookups, and frequency tables —
// is an external collaborator out of scope for this repository; this
// package only describes the boundary inputsession.Session talks to,
// plus a deterministic fake for tests.
package engine

// Session is one composition session hosted by the engine. A new
// Session is created per registry.Session (per connected TSF client),
// one engine session per input session.
type Session interface {
	// ProcessKey feeds one keysym/modifier pair into the composition
	// buffer and reports whether the key was consumed.
	ProcessKey(keysym uint32, modifiers uint32) (consumed bool)

	// TestKey reports whether ProcessKey would consume this key,
	// without mutating composition state. Used by the TSF shim's
	// ITfKeyEventSink::OnTestKeyDown.
	TestKey(keysym uint32, modifiers uint32) bool

	// SelectCandidate commits the candidate at index and returns the
	// committed text.
	SelectCandidate(index int) (committed string, ok bool)

	// PageUp/PageDown move the visible candidate page.
	PageUp() bool
	PageDown() bool

	// Commit forces commit of the current best/raw composition and
	// clears it, returning the committed text.
	Commit() string

	// Clear discards the current composition without committing.
	Clear()

	// State returns the current composition snapshot for the
	// candidate window and TSF display attributes to render.
	State() State
}

// Engine creates per-connection composition Sessions.
type Engine interface {
	StartSession() Session
}
