package candidatewindow

import (
	"image"
	"image/color"

	"gioui.org/app"
	"gioui.org/font/gofont"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"suyan/internal/candidate"
	"suyan/internal/inputsession"
)

// Window hosts a candidate.Layout on screen in an undecorated gio
// window on every platform. On Windows, window_windows.go additionally
// flags that window as a non-activating topmost tool window.
type Window struct {
	win     *app.Window
	theme   *material.Theme
	visible bool
	pending renderRequest
}

// New creates a hidden candidate window.
func New() *Window {
	return &Window{theme: material.NewTheme()}
}

// Show renders state at the given screen position. Calling Show again
// while already visible repositions and redraws the same window.
func (w *Window) Show(pos Rect, state inputsession.State, dir candidate.Direction) {
	if w.win == nil {
		w.win = new(app.Window)
		w.win.Option(app.Decorated(false), app.Title("suyan-candidates"))
		w.theme.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()))
		go w.loop()
		go platformPin("suyan-candidates")
	}
	w.visible = true
	w.win.Option(
		app.Size(unit.Dp(pos.W), unit.Dp(pos.H)),
		app.Pos(unit.Dp(pos.X), unit.Dp(pos.Y)),
	)
	w.pending = renderRequest{state: state, dir: dir}
	w.win.Invalidate()
}

// Hide dismisses the window without destroying it, so the next Show
// reuses the same OS window and its event loop goroutine.
func (w *Window) Hide() {
	w.visible = false
	if w.win != nil {
		w.win.Perform(system.ActionMinimize)
	}
}

type renderRequest struct {
	state inputsession.State
	dir   candidate.Direction
}

func (w *Window) loop() {
	var ops op.Ops
	for e := range w.win.Events() {
		if fe, ok := e.(system.FrameEvent); ok {
			ops.Reset()
			gtx := layout.NewContext(&ops, fe)
			w.paint(gtx)
			fe.Frame(gtx.Ops)
		}
	}
}

func (w *Window) paint(gtx layout.Context) {
	req := w.pending
	computed := candidate.Compute(req.state, req.dir, candidate.DefaultStyle())

	paint.Fill(gtx.Ops, color.NRGBA{R: 250, G: 250, B: 245, A: 255})

	for i, r := range computed.Candidates {
		bg := color.NRGBA{R: 250, G: 250, B: 245, A: 255}
		if i == req.state.HighlightedIndex {
			bg = color.NRGBA{R: 210, G: 230, B: 255, A: 255}
		}
		stack := op.Offset(image.Pt(r.X, r.Y)).Push(gtx.Ops)
		area := clip.Rect{Max: image.Pt(r.W, r.H)}.Push(gtx.Ops)
		paint.ColorOp{Color: bg}.Add(gtx.Ops)
		paint.PaintOp{}.Add(gtx.Ops)
		area.Pop()
		stack.Pop()
	}
}
