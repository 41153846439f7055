//go:build !windows

package caret

// NewPlatformLocator builds a Locator with no real probes outside
// Windows: the GUI-thread-info/GetCaretPos/IMM cascade is Win32-only.
// With no probe that can succeed, the last-known-rect step stays empty
// and Locate returns the zero Rect; the caret position reported by
// UpdatePosition requests is kept by cmd/suyand's handler, not here.
func NewPlatformLocator() *Locator {
	return New(nil, nil, nil, nil)
}
