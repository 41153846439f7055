package inputsession

import (
	"testing"

	"github.com/stretchr/testify/require"

	"suyan/internal/engine"
	"suyan/internal/keycodec"
)

func newTestSession() *Session {
	return New("s1", engine.NewFake())
}

func TestComposeAndCommitWithSpace(t *testing.T) {
	s := newTestSession()
	for _, c := range "ni" {
		_, consumed := s.ProcessKey(uint32(c), keycodec.ModNone)
		require.True(t, consumed)
	}
	require.True(t, s.State().IsComposing)

	committed, consumed := s.ProcessKey(keycodec.KeySpace, keycodec.ModNone)
	require.True(t, consumed)
	require.Equal(t, "ni", committed)
	require.False(t, s.State().IsComposing)
}

func TestSelectCandidateCommits(t *testing.T) {
	s := newTestSession()
	s.ProcessKey('h', keycodec.ModNone)
	s.ProcessKey('i', keycodec.ModNone)

	committed, ok := s.SelectCandidate(1)
	require.True(t, ok)
	require.Equal(t, "hihi", committed)
}

func TestToggleModePassesThroughInEnglish(t *testing.T) {
	s := newTestSession()
	s.ToggleMode()
	require.Equal(t, ModeEnglish, s.Mode())

	_, consumed := s.ProcessKey('x', keycodec.ModNone)
	require.False(t, consumed, "english mode should not consume character keys")
}

func TestCtrlSpaceTogglesMode(t *testing.T) {
	s := newTestSession()
	_, consumed := s.ProcessKey(keycodec.KeySpace, keycodec.ModControl)
	require.True(t, consumed)
	require.Equal(t, ModeEnglish, s.Mode())

	_, consumed = s.ProcessKey(keycodec.KeySpace, keycodec.ModControl)
	require.True(t, consumed)
	require.Equal(t, ModeChinese, s.Mode())
}

func TestCtrlSpaceDoesNotToggleMidComposition(t *testing.T) {
	s := newTestSession()
	s.ProcessKey('n', keycodec.ModNone)
	_, consumed := s.ProcessKey(keycodec.KeySpace, keycodec.ModControl)
	require.True(t, consumed, "Ctrl+Space mid-composition commits the composition instead of toggling")
	require.Equal(t, ModeChinese, s.Mode())
}

func TestTempEnglishEscapeAndReturnToChinese(t *testing.T) {
	s := newTestSession()
	_, consumed := s.ProcessKey('A', keycodec.ModShift)
	require.True(t, consumed)
	require.Equal(t, ModeTempEnglish, s.Mode())

	s.ProcessKey('b', keycodec.ModNone)
	s.ProcessKey('c', keycodec.ModNone)

	committed, consumed := s.ProcessKey(keycodec.KeySpace, keycodec.ModNone)
	require.True(t, consumed)
	require.Equal(t, "Abc ", committed)
	require.Equal(t, ModeChinese, s.Mode())
}

func TestBareDigitCommitsWithoutReachingEngine(t *testing.T) {
	s := newTestSession()
	committed, consumed := s.ProcessKey('5', keycodec.ModNone)
	require.True(t, consumed)
	require.Equal(t, "5", committed)
	require.False(t, s.State().IsComposing, "the digit must never reach the engine")
}

func TestDigitFollowedByPeriodStaysHalfWidth(t *testing.T) {
	s := newTestSession()
	s.ProcessKey('3', keycodec.ModNone)
	committed, consumed := s.ProcessKey('.', keycodec.ModNone)
	require.True(t, consumed)
	require.Equal(t, ".", committed)
}

func TestPunctuationConvertsToFullWidthByDefault(t *testing.T) {
	s := newTestSession()
	s.recordCommit("x")
	committed, consumed := s.ProcessKey('.', keycodec.ModNone)
	require.True(t, consumed)
	require.Equal(t, "。", committed)
}

func TestArrowDownEntersExpandedViewAndSelectsHighlighted(t *testing.T) {
	s := newTestSession()
	s.ProcessKey('a', keycodec.ModNone)

	_, consumed := s.ProcessKey(keycodec.KeyDown, keycodec.ModNone)
	require.True(t, consumed)
	require.True(t, s.State().IsExpanded)
	require.Equal(t, 0, s.currentCol)

	_, consumed = s.ProcessKey(keycodec.KeyRight, keycodec.ModNone)
	require.True(t, consumed)
	require.Equal(t, 1, s.currentCol)

	_, consumed = s.ProcessKey(keycodec.KeyRight, keycodec.ModNone)
	require.True(t, consumed)
	require.Equal(t, 2, s.currentCol)

	// clamped at the last column of the group
	_, consumed = s.ProcessKey(keycodec.KeyRight, keycodec.ModNone)
	require.True(t, consumed)
	require.Equal(t, 2, s.currentCol)

	committed, consumed := s.ProcessKey(keycodec.KeyReturn, keycodec.ModNone)
	require.True(t, consumed)
	require.Equal(t, "aaa", committed)
	require.False(t, s.State().IsComposing)
	require.False(t, s.State().IsExpanded)
}

func TestEscapeInExpandedViewKeepsComposition(t *testing.T) {
	s := newTestSession()
	s.ProcessKey('a', keycodec.ModNone)
	s.ProcessKey(keycodec.KeyDown, keycodec.ModNone)
	require.True(t, s.State().IsExpanded)

	_, consumed := s.ProcessKey(keycodec.KeyEscape, keycodec.ModNone)
	require.True(t, consumed)
	require.False(t, s.State().IsExpanded)
	require.True(t, s.State().IsComposing)
}

func TestEscapeClearsComposition(t *testing.T) {
	s := newTestSession()
	s.ProcessKey('a', keycodec.ModNone)
	require.True(t, s.State().IsComposing)

	_, consumed := s.ProcessKey(keycodec.KeyEscape, keycodec.ModNone)
	require.True(t, consumed)
	require.False(t, s.State().IsComposing)
}
