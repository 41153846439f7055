package caret

import "testing"

func fail() (Rect, bool) { return Rect{}, false }

func TestLocateUsesFirstSuccessfulProbe(t *testing.T) {
	l := New(fail, func() (Rect, bool) { return Rect{X: 10, Y: 20, W: 1, H: 16}, true }, fail, fail)
	r, src := l.Locate()
	if src != SourceGetCaretPos {
		t.Fatalf("source = %v, want SourceGetCaretPos", src)
	}
	if r.X != 10 || r.Y != 20 {
		t.Fatalf("rect = %+v", r)
	}
}

func TestLocateFallsBackToLastKnown(t *testing.T) {
	calls := 0
	flaky := func() (Rect, bool) {
		calls++
		if calls == 1 {
			return Rect{X: 5, Y: 5, W: 1, H: 1}, true
		}
		return Rect{}, false
	}
	l := New(nil, flaky, nil, nil)

	r1, _ := l.Locate()
	if r1.X != 5 {
		t.Fatalf("first locate = %+v", r1)
	}

	r2, src := l.Locate()
	if src != SourceLastKnown {
		t.Fatalf("source = %v, want SourceLastKnown", src)
	}
	if r2 != r1 {
		t.Fatalf("last known rect = %+v, want %+v", r2, r1)
	}
}

func TestLocateFallsBackToMouseCursorWhenNothingElseWorks(t *testing.T) {
	mouse := func() (Rect, bool) { return Rect{X: 1, Y: 1, W: 0, H: 0}, true }
	l := New(nil, nil, nil, mouse)
	_, src := l.Locate()
	if src != SourceMouseCursor {
		t.Fatalf("source = %v, want SourceMouseCursor", src)
	}
}

func TestResetClearsLastKnown(t *testing.T) {
	once := true
	probe := func() (Rect, bool) {
		if once {
			once = false
			return Rect{X: 3, Y: 3, W: 1, H: 1}, true
		}
		return Rect{}, false
	}
	l := New(nil, probe, nil, nil)
	l.Locate()
	l.Reset()
	_, src := l.Locate()
	if src == SourceLastKnown {
		t.Fatalf("expected last-known to be cleared after Reset")
	}
}
