//go:build windows

package candidatewindow

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	gwlExStyle     = -20
	wsExNoActivate = 0x08000000
	wsExTopmost    = 0x00000008
	wsExToolWindow = 0x00000080

	swpNoSize     = 0x0001
	swpNoMove     = 0x0002
	swpNoActivate = 0x0010
	hwndTopmost   = ^uintptr(0) // -1
)

var (
	user32               = windows.NewLazySystemDLL("user32.dll")
	procFindWindowW      = user32.NewProc("FindWindowW")
	procSetWindowLongPtr = user32.NewProc("SetWindowLongPtrW")
	procSetWindowPos     = user32.NewProc("SetWindowPosW")
)

// platformPin finds the hosting gio window by its fixed title and
// flags it WS_EX_NOACTIVATE | WS_EX_TOPMOST | WS_EX_TOOLWINDOW so it
// never steals focus from the edited document and never shows in the
// taskbar or Alt-Tab list.
func platformPin(title string) {
	titlePtr, err := windows.UTF16PtrFromString(title)
	if err != nil {
		return
	}
	hwnd, _, _ := procFindWindowW.Call(0, uintptr(unsafe.Pointer(titlePtr)))
	if hwnd == 0 {
		return
	}

	procSetWindowLongPtr.Call(hwnd, uintptr(gwlExStyle),
		uintptr(wsExNoActivate|wsExTopmost|wsExToolWindow))
	procSetWindowPos.Call(hwnd, hwndTopmost, 0, 0, 0, 0,
		uintptr(swpNoActivate|swpNoMove|swpNoSize))
}
