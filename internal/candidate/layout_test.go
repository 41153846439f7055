package candidate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"suyan/internal/inputsession"
)

func threeCandidates() inputsession.State {
	return inputsession.State{
		Preedit: "ni",
		Candidates: []inputsession.Candidate{
			{Text: "你", Index: 0},
			{Text: "泥", Index: 1},
			{Text: "妮", Index: 2},
		},
	}
}

func TestHorizontalLayoutOrdersLeftToRight(t *testing.T) {
	layout := Compute(threeCandidates(), Horizontal, DefaultStyle())
	require.Len(t, layout.Candidates, 3)
	for i := 1; i < len(layout.Candidates); i++ {
		require.Greater(t, layout.Candidates[i].X, layout.Candidates[i-1].X)
		require.Equal(t, layout.Candidates[0].Y, layout.Candidates[i].Y)
	}
}

func TestVerticalLayoutStacksTopToBottom(t *testing.T) {
	layout := Compute(threeCandidates(), Vertical, DefaultStyle())
	require.Len(t, layout.Candidates, 3)
	for i := 1; i < len(layout.Candidates); i++ {
		require.Greater(t, layout.Candidates[i].Y, layout.Candidates[i-1].Y)
	}
}

func TestExpandedHorizontalFillsRowsThenColumns(t *testing.T) {
	state := threeCandidates()
	state.ExpandedRows = 2
	layout := Compute(state, ExpandedHorizontal, DefaultStyle())
	require.Len(t, layout.Candidates, 3)
	// candidate 0 and 1 are in the first row, same Y
	require.Equal(t, layout.Candidates[0].Y, layout.Candidates[1].Y)
	// candidate 2 wraps to a new row
	require.Greater(t, layout.Candidates[2].Y, layout.Candidates[0].Y)
}

func TestPreeditRectPresentWhenShown(t *testing.T) {
	layout := Compute(threeCandidates(), Horizontal, DefaultStyle())
	require.Greater(t, layout.PreeditRect.H, 0)
}

func TestPreeditHiddenWhenConfigured(t *testing.T) {
	style := DefaultStyle()
	style.ShowPreedit = false
	layout := Compute(threeCandidates(), Horizontal, style)
	require.Equal(t, 0, layout.PreeditRect.H)
}

func TestLayoutSizeCoversAllCandidates(t *testing.T) {
	layout := Compute(threeCandidates(), Horizontal, DefaultStyle())
	last := layout.Candidates[len(layout.Candidates)-1]
	require.GreaterOrEqual(t, layout.Size.W, last.X+last.W)
}
