// Package inputsession implements the per-connection input state
// machine: mode switching, temporary-English escape, digit-follow
// punctuation conversion, and expanded candidate navigation. The
// actual Chinese composition (pinyin -> candidates) is delegated to
// an engine.Session; this package owns everything around that black
// box.
package inputsession

import "suyan/internal/engine"

// Mode, Candidate, State and DefaultPageSize are defined in the engine
// package (State is returned by engine.Session.State and needs to
// carry Mode without an import cycle back into this package) and
// re-exported here under their inputsession-facing names.
type (
	Mode      = engine.Mode
	Candidate = engine.Candidate
	State     = engine.State
)

const (
	ModeChinese     = engine.ModeChinese
	ModeEnglish     = engine.ModeEnglish
	ModeTempEnglish = engine.ModeTempEnglish

	// DefaultPageSize matches the original engine's default candidate
	// page size.
	DefaultPageSize = engine.DefaultPageSize
)
