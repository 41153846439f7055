package engine

import (
	"strings"
	"sync"
)

// Fake is a deterministic composition engine for tests: it buffers
// lowercase letters as raw input and offers three synthesized
// candidates (the raw input repeated once, twice and three times),
// with no real pinyin dictionary. It exists so
// inputsession and the IPC dispatcher can be tested without the real
// embedded engine.
type Fake struct{}

// NewFake returns an Engine backed by Fake sessions.
func NewFake() Engine { return Fake{} }

func (Fake) StartSession() Session { return &fakeSession{} }

type fakeSession struct {
	mu      sync.Mutex
	raw     string
	page    int
	pending bool
}

const fakePageSize = DefaultPageSize

func (s *fakeSession) ProcessKey(keysym uint32, modifiers uint32) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case keysym >= 'a' && keysym <= 'z':
		s.raw += string(rune(keysym))
		s.pending = true
		return true
	default:
		return false
	}
}

func (s *fakeSession) TestKey(keysym uint32, modifiers uint32) bool {
	return keysym >= 'a' && keysym <= 'z'
}

func (s *fakeSession) candidates() []Candidate {
	if s.raw == "" {
		return nil
	}
	cands := make([]Candidate, 0, 3)
	for i := 0; i < 3; i++ {
		cands = append(cands, Candidate{
			Text:  strings.Repeat(s.raw, i+1),
			Index: i,
		})
	}
	return cands
}

func (s *fakeSession) SelectCandidate(index int) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cands := s.candidates()
	if index < 0 || index >= len(cands) {
		return "", false
	}
	committed := cands[index].Text
	s.raw = ""
	s.pending = false
	s.page = 0
	return committed, true
}

func (s *fakeSession) PageUp() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.page == 0 {
		return false
	}
	s.page--
	return true
}

func (s *fakeSession) PageDown() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.page++
	return true
}

func (s *fakeSession) Commit() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	committed := s.raw
	s.raw = ""
	s.pending = false
	s.page = 0
	return committed
}

func (s *fakeSession) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.raw = ""
	s.pending = false
	s.page = 0
}

func (s *fakeSession) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	cands := s.candidates()
	return State{
		Preedit:         s.raw,
		RawInput:        s.raw,
		Candidates:      cands,
		PageIndex:       s.page,
		PageSize:        fakePageSize,
		IsComposing:     s.pending,
		TotalCandidates: len(cands),
	}
}
