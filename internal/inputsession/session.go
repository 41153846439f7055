package inputsession

import (
	"sync"

	"suyan/internal/engine"
	"suyan/internal/keycodec"
)

// punctuationMap converts half-width ASCII punctuation typed in
// Chinese mode to its full-width counterpart, the conventional IME
// behavior for everything except a decimal point immediately
// following a digit (see shouldKeepHalfWidth).
var punctuationMap = map[rune]rune{
	',': '，',
	'.': '。',
	'?': '？',
	'!': '！',
	':': '：',
	';': '；',
	'\\': '、',
}

// Session is the per-connection input state machine: it owns mode
// switching, the temporary-English escape, digit-follow punctuation
// conversion, and expanded candidate navigation, delegating actual
// pinyin composition to an engine.Session.
type Session struct {
	mu sync.Mutex

	id      string
	eng     engine.Session
	mode    Mode
	focused bool

	// horizontal selects which physical arrow expands the candidate
	// grid: Down in a horizontal layout, Right in a vertical one.
	horizontal bool

	tempEnglishBuffer string
	lastCommittedChar rune

	isExpanded     bool
	expandedRows   int
	currentRow     int
	currentCol     int
	expandedGroups [][]Candidate
}

// maxExpandedGroups caps how many candidate pages
// loadExpandedGroupsLocked pulls in when the expanded grid opens.
// growExpandedGroupsLocked appends past this cap and never drops
// earlier groups, so a grid the selection has moved through can hold
// more than five groups.
const maxExpandedGroups = 5

// New creates a session bound to a freshly started engine session.
func New(id string, eng engine.Engine) *Session {
	return &Session{
		id:         id,
		eng:        eng.StartSession(),
		mode:       ModeChinese,
		horizontal: true,
	}
}

// SetDirection records which candidate layout direction is in effect,
// so arrow-key handling knows which key expands the candidate grid.
func (s *Session) SetDirection(horizontal bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.horizontal = horizontal
}

// ID returns the session's registry identifier.
func (s *Session) ID() string { return s.id }

// FocusIn/FocusOut track whether the owning text field currently has
// input focus, so stray key events delivered after focus has left
// without a matching FOCUS_IN can be dropped.
func (s *Session) FocusIn()  { s.mu.Lock(); s.focused = true; s.mu.Unlock() }
func (s *Session) FocusOut() { s.mu.Lock(); s.focused = false; s.mu.Unlock() }

// Focused reports whether the session currently has focus.
func (s *Session) Focused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.focused
}

// Mode returns the current input mode.
func (s *Session) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// SetMode forces the session into mode, clearing any in-flight
// composition or temp-English buffer.
func (s *Session) SetMode(m Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setModeLocked(m)
}

func (s *Session) setModeLocked(m Mode) {
	if s.mode == ModeTempEnglish && m != ModeTempEnglish {
		s.tempEnglishBuffer = ""
	}
	s.mode = m
}

// ToggleMode switches between Chinese and English, for a tray-menu
// toggle; ProcessKey applies the same toggledMode switch itself for
// the Ctrl+Space accelerator.
func (s *Session) ToggleMode() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setModeLocked(toggledMode(s.mode))
}

func toggledMode(m Mode) Mode {
	if m == ModeEnglish {
		return ModeChinese
	}
	return ModeEnglish
}

// ProcessKey feeds one key event through the state machine. consumed
// reports whether the key was handled here (the TSF shim should not
// forward it to the host application).
func (s *Session) ProcessKey(keysym uint32, mods keycodec.Modifiers) (committed string, consumed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if keysym == keycodec.KeySpace && mods&keycodec.ModControl != 0 && !s.eng.State().IsComposing {
		s.setModeLocked(toggledMode(s.mode))
		return "", true
	}

	if keycodec.IsNavigationKeysym(keysym) {
		return "", s.handleArrowKeysLocked(keysym)
	}

	switch s.mode {
	case ModeEnglish:
		return "", false // pass straight through to the host app
	case ModeTempEnglish:
		return s.handleTempEnglishLocked(keysym, mods)
	default:
		return s.handleChineseLocked(keysym, mods)
	}
}

// shouldEnterTempEnglish triggers the temp-English escape when the
// user holds Shift over a letter while nothing is composing yet —
// the conventional "type one run of Latin text without leaving
// Chinese mode" gesture (e.g. typing a CamelCase identifier).
func (s *Session) shouldEnterTempEnglish(keysym uint32, mods keycodec.Modifiers) bool {
	if s.eng.State().IsComposing {
		return false
	}
	isLetter := keysym >= 'a' && keysym <= 'z' || keysym >= 'A' && keysym <= 'Z'
	return isLetter && mods&keycodec.ModShift != 0
}

func (s *Session) handleChineseLocked(keysym uint32, mods keycodec.Modifiers) (string, bool) {
	if s.shouldEnterTempEnglish(keysym, mods) {
		s.mode = ModeTempEnglish
		s.tempEnglishBuffer = ""
		return s.handleTempEnglishLocked(keysym, mods)
	}

	composing := s.eng.State().IsComposing

	if !composing && keysym >= '0' && keysym <= '9' {
		digit := string(rune(keysym))
		s.recordCommit(digit)
		return digit, true
	}

	if s.isExpanded && keysym != keycodec.KeySpace && keysym != keycodec.KeyReturn && keysym != keycodec.KeyEscape {
		// backspace or any character key drops the expanded grid but
		// leaves the engine's composition untouched
		if keysym == keycodec.KeyBackSpace || keycodec.IsCharacterKeysym(keysym) {
			s.resetExpandedLocked()
		}
	}

	if keysym == keycodec.KeySpace || keysym == keycodec.KeyReturn {
		if composing {
			if s.isExpanded {
				committed, ok := s.selectHighlightedExpandedLocked()
				s.resetExpandedLocked()
				if ok {
					s.recordCommit(committed)
				}
				return committed, true
			}
			committed := s.eng.Commit()
			s.recordCommit(committed)
			return committed, true
		}
	}

	if keysym == keycodec.KeyBackSpace && !composing {
		return "", false
	}

	if keysym == keycodec.KeyEscape {
		if s.isExpanded {
			s.resetExpandedLocked()
			return "", true
		}
		s.eng.Clear()
		s.resetExpandedLocked()
		return "", true
	}

	if converted, ok := s.convertPunctuationLocked(keysym); ok {
		text := string(converted)
		s.recordCommit(text)
		return text, true
	}

	consumed := s.eng.ProcessKey(keysym, uint32(mods))
	return "", consumed
}

// convertPunctuationLocked applies the digit-follow rule: a period
// typed immediately after a digit is kept half-width (decimal point),
// every other mapped punctuation mark (and a period following
// anything else) converts to its full-width form.
func (s *Session) convertPunctuationLocked(keysym uint32) (rune, bool) {
	full, mapped := punctuationMap[rune(keysym)]
	if !mapped {
		return 0, false
	}
	if rune(keysym) == '.' && s.lastCommittedChar >= '0' && s.lastCommittedChar <= '9' {
		return '.', true
	}
	return full, true
}

func (s *Session) handleTempEnglishLocked(keysym uint32, mods keycodec.Modifiers) (string, bool) {
	switch keysym {
	case keycodec.KeySpace, keycodec.KeyReturn:
		committed := s.commitTempEnglishBufferLocked()
		if keysym == keycodec.KeySpace {
			committed += " "
		}
		s.exitTempEnglishLocked()
		return committed, true
	case keycodec.KeyEscape:
		s.tempEnglishBuffer = ""
		s.exitTempEnglishLocked()
		return "", true
	case keycodec.KeyBackSpace:
		if len(s.tempEnglishBuffer) == 0 {
			s.exitTempEnglishLocked()
			return "", false
		}
		s.tempEnglishBuffer = s.tempEnglishBuffer[:len(s.tempEnglishBuffer)-1]
		return "", true
	}

	if keycodec.IsCharacterKeysym(keysym) {
		s.tempEnglishBuffer += string(rune(keysym))
		return "", true
	}

	// any other key ends the temp-English run without consuming it
	committed := s.commitTempEnglishBufferLocked()
	s.exitTempEnglishLocked()
	_ = committed
	return committed, false
}

func (s *Session) commitTempEnglishBufferLocked() string {
	out := s.tempEnglishBuffer
	s.recordCommit(out)
	return out
}

func (s *Session) exitTempEnglishLocked() {
	s.tempEnglishBuffer = ""
	s.mode = ModeChinese
}

func (s *Session) recordCommit(text string) {
	if text == "" {
		return
	}
	s.lastCommittedChar = rune(text[len(text)-1])
}

// TestKey reports whether ProcessKey would consume this key, without
// mutating any session state — ITfKeyEventSink::OnTestKeyDown needs an
// answer before committing to OnKeyDown.
func (s *Session) TestKey(keysym uint32, mods keycodec.Modifiers) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if keycodec.IsNavigationKeysym(keysym) {
		return s.eng.State().IsComposing
	}

	switch s.mode {
	case ModeEnglish:
		return false
	case ModeTempEnglish:
		return true
	default:
		if s.shouldEnterTempEnglish(keysym, mods) {
			return true
		}
		if !s.eng.State().IsComposing && keysym >= '0' && keysym <= '9' {
			return true
		}
		if _, mapped := punctuationMap[rune(keysym)]; mapped {
			return true
		}
		return s.eng.TestKey(keysym, uint32(mods))
	}
}

func (s *Session) resetExpandedLocked() {
	s.isExpanded = false
	s.expandedRows = 0
	s.currentRow = 0
	s.currentCol = 0
	s.expandedGroups = nil
}

// loadExpandedGroupsLocked pulls successive engine pages into
// expandedGroups (one group per page) until maxExpandedGroups are
// cached or the engine reports no more pages, then rewinds the
// engine's own page cursor back to where it started.
func (s *Session) loadExpandedGroupsLocked() {
	st := s.eng.State()
	groups := [][]Candidate{st.Candidates}
	paged := 0
	for len(groups) < maxExpandedGroups && st.HasMorePages {
		if !s.eng.PageDown() {
			break
		}
		paged++
		st = s.eng.State()
		groups = append(groups, st.Candidates)
	}
	for i := 0; i < paged; i++ {
		s.eng.PageUp()
	}

	s.expandedGroups = groups
	s.isExpanded = true
	s.expandedRows = len(groups)
	s.currentRow = 0
	s.currentCol = 0
}

// growExpandedGroupsLocked appends one more group, the engine page
// after the last loaded one, when the selection moves past the last
// currently-loaded row; if the engine has no such page the grid and
// the selection stay as they are.
func (s *Session) growExpandedGroupsLocked() {
	loaded := len(s.expandedGroups)
	paged := 0
	for paged < loaded && s.eng.PageDown() {
		paged++
	}
	st := s.eng.State()
	for i := 0; i < paged; i++ {
		s.eng.PageUp()
	}
	if paged < loaded {
		return
	}
	s.expandedGroups = append(s.expandedGroups, st.Candidates)
	s.expandedRows = len(s.expandedGroups)
	s.currentRow++
	s.clampColumnLocked()
}

func (s *Session) currentGroupSizeLocked() int {
	if s.currentRow < 0 || s.currentRow >= len(s.expandedGroups) {
		return 0
	}
	return len(s.expandedGroups[s.currentRow])
}

func (s *Session) clampColumnLocked() {
	max := s.currentGroupSizeLocked() - 1
	if max < 0 {
		max = 0
	}
	if s.currentCol > max {
		s.currentCol = max
	}
}

// selectHighlightedExpandedLocked commits the candidate currently
// highlighted in the expanded grid by re-navigating the engine to it:
// rewind to page 0 (already there), page forward to the highlighted
// row's page, then select the in-page column.
func (s *Session) selectHighlightedExpandedLocked() (string, bool) {
	row, col := s.currentRow, s.currentCol
	for i := 0; i < row; i++ {
		s.eng.PageDown()
	}
	committed, ok := s.eng.SelectCandidate(col)
	if !ok {
		for i := 0; i < row; i++ {
			s.eng.PageUp()
		}
	}
	return committed, ok
}

func (s *Session) handleArrowKeysLocked(keysym uint32) bool {
	state := s.eng.State()
	if !state.IsComposing {
		return false
	}

	expandKey, contractKey := keycodec.KeyDown, keycodec.KeyUp
	groupPrev, groupNext := keycodec.KeyUp, keycodec.KeyDown
	colPrev, colNext := keycodec.KeyLeft, keycodec.KeyRight
	if !s.horizontal {
		expandKey, contractKey = keycodec.KeyRight, keycodec.KeyLeft
		groupPrev, groupNext = keycodec.KeyLeft, keycodec.KeyRight
		colPrev, colNext = keycodec.KeyUp, keycodec.KeyDown
	}

	if !s.isExpanded {
		switch keysym {
		case expandKey:
			s.loadExpandedGroupsLocked()
			return true
		case contractKey:
			return true // nothing to contract yet
		case keycodec.KeyPageUp:
			return s.eng.PageUp()
		case keycodec.KeyPageDown:
			return s.eng.PageDown()
		default:
			return false
		}
	}

	switch keysym {
	case colPrev:
		if s.currentCol > 0 {
			s.currentCol--
		}
	case colNext:
		if s.currentCol < s.currentGroupSizeLocked()-1 {
			s.currentCol++
		}
	case groupPrev:
		if s.currentRow > 0 {
			s.currentRow--
			s.clampColumnLocked()
		}
	case groupNext:
		if s.currentRow < s.expandedRows-1 {
			s.currentRow++
			s.clampColumnLocked()
		} else {
			s.growExpandedGroupsLocked()
		}
	case keycodec.KeyPageUp, keycodec.KeyPageDown:
		return true
	default:
		// any other navigation key leaves the expanded grid, composition intact
		s.resetExpandedLocked()
		return true
	}
	return true
}

// SelectCandidate commits the candidate at index.
func (s *Session) SelectCandidate(index int) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	committed, ok := s.eng.SelectCandidate(index)
	if ok {
		s.recordCommit(committed)
		s.resetExpandedLocked()
	}
	return committed, ok
}

// Commit forces commit of whatever is currently composing.
func (s *Session) Commit() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	committed := s.eng.Commit()
	s.recordCommit(committed)
	s.resetExpandedLocked()
	return committed
}

// Clear discards any in-flight composition.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.eng.Clear()
	s.resetExpandedLocked()
}

// State returns a full snapshot for the candidate window, overlaying
// this session's mode/expanded-navigation state onto the engine's
// composition snapshot.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.eng.State()
	st.Mode = s.mode
	st.IsExpanded = s.isExpanded
	st.ExpandedRows = s.expandedRows
	st.CurrentRow = s.currentRow
	st.CurrentCol = s.currentCol
	if s.mode == ModeTempEnglish {
		st.Preedit = s.tempEnglishBuffer
		st.RawInput = s.tempEnglishBuffer
	}
	return st
}
