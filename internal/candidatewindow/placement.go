// Package candidatewindow places and hosts the on-screen candidate
// surface: a non-activating, always-on-top window positioned next to
// the text caret, clamped to stay on screen.
package candidatewindow

// Rect is a screen-space pixel rectangle (X,Y is top-left).
type Rect struct {
	X, Y, W, H int
}

// Place computes where to draw a window of size winW x winH so that
// it sits just below-left of caret, without running off the edges of
// screen. This mirrors showAtNative's overflow handling: if the
// window would overflow the right edge, shift it left; if it would
// overflow the bottom edge, flip it above the caret instead.
func Place(caret Rect, winW, winH int, screen Rect) (x, y int) {
	x = caret.X
	y = caret.Y + caret.H

	if x+winW > screen.X+screen.W {
		x = screen.X + screen.W - winW
	}
	if x < screen.X {
		x = screen.X
	}

	if y+winH > screen.Y+screen.H {
		// flip above the caret
		y = caret.Y - winH
	}
	if y < screen.Y {
		y = screen.Y
	}

	return x, y
}
