//go:build windows

package caret

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32   = windows.NewLazySystemDLL("user32.dll")
	imm32    = windows.NewLazySystemDLL("imm32.dll")
	procGUI  = user32.NewProc("GetGUIThreadInfo")
	procPos  = user32.NewProc("GetCaretPos")
	procCurs = user32.NewProc("GetCursorPos")
	procIMC  = imm32.NewProc("ImmGetContext")
	procICW  = imm32.NewProc("ImmGetCompositionWindow")
)

type point struct{ X, Y int32 }
type rect struct{ Left, Top, Right, Bottom int32 }

// guiThreadInfo struct layout matches the Win32 GUITHREADINFO.
type guiThreadInfo struct {
	cbSize        uint32
	flags         uint32
	hwndActive    uintptr
	hwndFocus     uintptr
	hwndCapture   uintptr
	hwndMenuOwner uintptr
	hwndMoveSize  uintptr
	hwndCaret     uintptr
	rcCaret       rect
}

// compositionForm matches Win32 COMPOSITIONFORM for
// ImmGetCompositionWindow's CFS_POINT style.
type compositionForm struct {
	style          uint32
	ptCurrentPos   point
	rcArea         rect
}

// NewPlatformLocator builds a Locator wired to the real Win32 caret
// probes, in cascade order.
func NewPlatformLocator() *Locator {
	return New(guiThreadInfoProbe, getCaretPosProbe, immCompositionProbe, mouseCursorProbe)
}

func guiThreadInfoProbe() (Rect, bool) {
	var info guiThreadInfo
	info.cbSize = uint32(unsafe.Sizeof(info))
	r, _, _ := procGUI.Call(0, uintptr(unsafe.Pointer(&info)))
	if r == 0 || info.hwndCaret == 0 {
		return Rect{}, false
	}
	return rectToCaret(info.rcCaret), true
}

func getCaretPosProbe() (Rect, bool) {
	var p point
	r, _, _ := procPos.Call(uintptr(unsafe.Pointer(&p)))
	if r == 0 {
		return Rect{}, false
	}
	return Rect{X: int(p.X), Y: int(p.Y), W: 1, H: 16}, true
}

func immCompositionProbe() (Rect, bool) {
	var info guiThreadInfo
	info.cbSize = uint32(unsafe.Sizeof(info))
	if r, _, _ := procGUI.Call(0, uintptr(unsafe.Pointer(&info))); r == 0 || info.hwndFocus == 0 {
		return Rect{}, false
	}

	himc, _, _ := procIMC.Call(info.hwndFocus)
	if himc == 0 {
		return Rect{}, false
	}

	var form compositionForm
	r, _, _ := procICW.Call(himc, 0, uintptr(unsafe.Pointer(&form)))
	if r == 0 {
		return Rect{}, false
	}
	return Rect{X: int(form.ptCurrentPos.X), Y: int(form.ptCurrentPos.Y), W: 1, H: 16}, true
}

func mouseCursorProbe() (Rect, bool) {
	var p point
	r, _, _ := procCurs.Call(uintptr(unsafe.Pointer(&p)))
	if r == 0 {
		return Rect{}, false
	}
	return Rect{X: int(p.X), Y: int(p.Y), W: 0, H: 0}, true
}

func rectToCaret(r rect) Rect {
	return Rect{X: int(r.Left), Y: int(r.Top), W: int(r.Right - r.Left), H: int(r.Bottom - r.Top)}
}
