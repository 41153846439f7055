// Package candidate computes the pure geometry of the candidate list:
// where each candidate's rectangle sits for a given layout direction,
// with no drawing or windowing concerns attached. candidatewindow
// consumes a Layout to place and draw the actual on-screen surface.
package candidate

import "suyan/internal/inputsession"

// Direction selects how candidates are arranged relative to each other.
type Direction int

const (
	Horizontal Direction = iota
	Vertical
	ExpandedHorizontal
	ExpandedVertical
)

// Rect is an integer pixel rectangle relative to the candidate
// window's top-left corner.
type Rect struct {
	X, Y, W, H int
}

// Style carries the size inputs a layout needs. Every caller in this
// repository uses DefaultStyle; no Style is derived from the active
// theme (internal/theme).
type Style struct {
	CandidateHeight int
	CandidateGap    int
	Padding         int
	LabelWidth      int
	CharWidth       int // average rendered glyph width, used to size text
	ShowComment     bool
	ShowPreedit     bool
}

// DefaultStyle mirrors the original view's defaults: no comment shown,
// preedit shown (Windows TSF needs it inside the candidate box).
func DefaultStyle() Style {
	return Style{
		CandidateHeight: 24,
		CandidateGap:    8,
		Padding:         6,
		LabelWidth:      14,
		CharWidth:       14,
		ShowComment:     false,
		ShowPreedit:     true,
	}
}

// Layout is the computed geometry for one State snapshot: a rectangle
// per candidate plus the overall content size.
type Layout struct {
	PreeditRect Rect
	Candidates  []Rect
	Size        struct{ W, H int }
}

// candidateWidth estimates the pixel width of one candidate's label +
// text (+ comment, if shown).
func candidateWidth(style Style, c inputsession.Candidate) int {
	w := style.LabelWidth + len([]rune(c.Text))*style.CharWidth
	if style.ShowComment && c.Comment != "" {
		w += len([]rune(c.Comment))*style.CharWidth/2 + style.CandidateGap
	}
	return w + style.Padding*2
}

// Compute lays out state's candidates for the given direction and
// style, returning each candidate's rectangle and the window's
// required content size.
func Compute(state inputsession.State, dir Direction, style Style) Layout {
	var layout Layout

	yOffset := 0
	if style.ShowPreedit && state.Preedit != "" {
		h := style.CandidateHeight
		layout.PreeditRect = Rect{X: style.Padding, Y: style.Padding, W: 0, H: h}
		yOffset = h + style.Padding
	}

	switch dir {
	case Vertical:
		layout.Candidates, layout.Size.W, layout.Size.H = computeVertical(state, style, yOffset)
	case ExpandedHorizontal:
		layout.Candidates, layout.Size.W, layout.Size.H = computeExpandedHorizontal(state, style, yOffset)
	case ExpandedVertical:
		layout.Candidates, layout.Size.W, layout.Size.H = computeExpandedVertical(state, style, yOffset)
	default:
		layout.Candidates, layout.Size.W, layout.Size.H = computeHorizontal(state, style, yOffset)
	}

	if layout.PreeditRect.H > 0 {
		layout.PreeditRect.W = layout.Size.W - style.Padding*2
	}
	return layout
}

func computeHorizontal(state inputsession.State, style Style, yOffset int) ([]Rect, int, int) {
	x := style.Padding
	y := yOffset + style.Padding
	rects := make([]Rect, len(state.Candidates))
	for i, c := range state.Candidates {
		w := candidateWidth(style, c)
		rects[i] = Rect{X: x, Y: y, W: w, H: style.CandidateHeight}
		x += w + style.CandidateGap
	}
	totalW := x - style.CandidateGap + style.Padding
	totalH := y + style.CandidateHeight + style.Padding
	return rects, totalW, totalH
}

func computeVertical(state inputsession.State, style Style, yOffset int) ([]Rect, int, int) {
	x := style.Padding
	y := yOffset + style.Padding
	maxW := 0
	rects := make([]Rect, len(state.Candidates))
	for i, c := range state.Candidates {
		w := candidateWidth(style, c)
		if w > maxW {
			maxW = w
		}
		rects[i] = Rect{X: x, Y: y, W: w, H: style.CandidateHeight}
		y += style.CandidateHeight + style.CandidateGap
	}
	totalW := maxW + style.Padding*2
	totalH := y - style.CandidateGap + style.Padding
	return rects, totalW, totalH
}

// computeExpandedHorizontal arranges candidates into state.ExpandedRows
// rows, each row laid out left-to-right, matching the original's
// drawCandidatesExpanded (a multi-row grid read row-major).
func computeExpandedHorizontal(state inputsession.State, style Style, yOffset int) ([]Rect, int, int) {
	rows := state.ExpandedRows
	if rows <= 0 {
		rows = 1
	}
	cols := (len(state.Candidates) + rows - 1) / rows
	if cols == 0 {
		cols = 1
	}

	colWidths := make([]int, cols)
	for i, c := range state.Candidates {
		col := i % cols
		w := candidateWidth(style, c)
		if w > colWidths[col] {
			colWidths[col] = w
		}
	}

	rects := make([]Rect, len(state.Candidates))
	colX := make([]int, cols)
	x := style.Padding
	for col := 0; col < cols; col++ {
		colX[col] = x
		x += colWidths[col] + style.CandidateGap
	}

	for i := range state.Candidates {
		row := i / cols
		col := i % cols
		y := yOffset + style.Padding + row*(style.CandidateHeight+style.CandidateGap)
		rects[i] = Rect{X: colX[col], Y: y, W: colWidths[col], H: style.CandidateHeight}
	}

	totalW := x - style.CandidateGap + style.Padding
	totalH := yOffset + style.Padding + rows*(style.CandidateHeight+style.CandidateGap) - style.CandidateGap + style.Padding
	return rects, totalW, totalH
}

// computeExpandedVertical arranges candidates into state.ExpandedRows
// columns read top-to-bottom, matching drawCandidatesExpandedVertical.
func computeExpandedVertical(state inputsession.State, style Style, yOffset int) ([]Rect, int, int) {
	cols := state.ExpandedRows
	if cols <= 0 {
		cols = 1
	}
	rows := (len(state.Candidates) + cols - 1) / cols
	if rows == 0 {
		rows = 1
	}

	maxW := 0
	for _, c := range state.Candidates {
		if w := candidateWidth(style, c); w > maxW {
			maxW = w
		}
	}

	rects := make([]Rect, len(state.Candidates))
	for i := range state.Candidates {
		col := i / rows
		row := i % rows
		x := style.Padding + col*(maxW+style.CandidateGap)
		y := yOffset + style.Padding + row*(style.CandidateHeight+style.CandidateGap)
		rects[i] = Rect{X: x, Y: y, W: maxW, H: style.CandidateHeight}
	}

	cols = (len(state.Candidates) + rows - 1) / rows
	if cols == 0 {
		cols = 1
	}
	totalW := cols*(maxW+style.CandidateGap) - style.CandidateGap + style.Padding*2
	totalH := yOffset + style.Padding + rows*(style.CandidateHeight+style.CandidateGap) - style.CandidateGap + style.Padding
	return rects, totalW, totalH
}
