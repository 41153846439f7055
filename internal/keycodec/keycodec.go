// Package keycodec converts Windows virtual-key codes into the X11
// keysym-style codes the composition engine expects.
//
//   - printable ASCII characters use their ASCII value (0x20-0x7e)
//   - function/navigation/numeric-pad keys use the 0xff00-0xffff range
//   - modifier keys use the 0xffe0-0xffef range
package keycodec

// KeyCode enumerates the X11 keysym values the engine understands.
// Values match suyan::KeyCode from the original key_converter header.
const (
	KeyBackSpace uint32 = 0xff08
	KeyTab       uint32 = 0xff09
	KeyReturn    uint32 = 0xff0d
	KeyEscape    uint32 = 0xff1b
	KeySpace     uint32 = 0x0020

	KeyHome     uint32 = 0xff50
	KeyLeft     uint32 = 0xff51
	KeyUp       uint32 = 0xff52
	KeyRight    uint32 = 0xff53
	KeyDown     uint32 = 0xff54
	KeyPageUp   uint32 = 0xff55
	KeyPageDown uint32 = 0xff56
	KeyEnd      uint32 = 0xff57
	KeyInsert   uint32 = 0xff63
	KeyDelete   uint32 = 0xffff

	KeyNumLock    uint32 = 0xff7f
	KeyScrollLock uint32 = 0xff14
	KeyPause      uint32 = 0xff13
	KeyPrint      uint32 = 0xff61
	KeyMenu       uint32 = 0xff67
	KeyCapsLock   uint32 = 0xffe5

	KeyShiftL   uint32 = 0xffe1
	KeyShiftR   uint32 = 0xffe2
	KeyControlL uint32 = 0xffe3
	KeyControlR uint32 = 0xffe4
	KeyAltL     uint32 = 0xffe9
	KeyAltR     uint32 = 0xffea

	// KP_* mirror the numeric-pad twins of the main-cluster keys above,
	// selected when the Windows extended-key flag is clear.
	KeyKPEnter    uint32 = 0xff8d
	KeyKPHome     uint32 = 0xff95
	KeyKPLeft     uint32 = 0xff96
	KeyKPUp       uint32 = 0xff97
	KeyKPRight    uint32 = 0xff98
	KeyKPDown     uint32 = 0xff99
	KeyKPPageUp   uint32 = 0xff9a
	KeyKPPageDown uint32 = 0xff9b
	KeyKPEnd      uint32 = 0xff9c
	KeyKPInsert   uint32 = 0xff9e
	KeyKPDelete   uint32 = 0xff9f
	KeyKP0        uint32 = 0xffb0
	KeyKP9        uint32 = 0xffb9
	KeyKPMultiply uint32 = 0xffaa
	KeyKPAdd      uint32 = 0xffab
	KeyKPSeparator uint32 = 0xffac
	KeyKPSubtract uint32 = 0xffad
	KeyKPDecimal  uint32 = 0xffae
	KeyKPDivide   uint32 = 0xffaf

	// KeyF1 is the base of the F1-F24 keysym range (0xffbe..0xffd5).
	KeyF1 uint32 = 0xffbe

	KeyMinus    uint32 = '-'
	KeyEqual    uint32 = '='
	KeyBracketL uint32 = '['
	KeyBracketR uint32 = ']'
)

// Modifiers mirrors suyan::KeyModifier: a bitmask of held modifier keys.
type Modifiers uint32

const (
	ModNone    Modifiers = 0
	ModShift   Modifiers = 1 << 0
	ModControl Modifiers = 1 << 2
	ModAlt     Modifiers = 1 << 3
	ModSuper   Modifiers = 1 << 6
)

// Windows virtual-key constants used by Convert. Named the way
// winuser.h names them; only the subset the codec dispatches on.
const (
	vkBack     = 0x08
	vkTab      = 0x09
	vkReturn   = 0x0d
	vkShift    = 0x10
	vkControl  = 0x11
	vkMenu     = 0x12
	vkPause    = 0x13
	vkCapital  = 0x14
	vkEscape   = 0x1b
	vkSpace    = 0x20
	vkPrior    = 0x21
	vkNext     = 0x22
	vkEnd      = 0x23
	vkHome     = 0x24
	vkLeft     = 0x25
	vkUp       = 0x26
	vkRight    = 0x27
	vkDown     = 0x28
	vkSnapshot = 0x2c
	vkInsert   = 0x2d
	vkDelete   = 0x2e
	vk0        = 0x30
	vk9        = 0x39
	vkA        = 0x41
	vkZ        = 0x5a
	vkLWin     = 0x5b
	vkRWin     = 0x5c
	vkApps     = 0x5d
	vkNumpad0  = 0x60
	vkNumpad9  = 0x69
	vkMultiply = 0x6a
	vkAdd      = 0x6b
	vkSeparator = 0x6c
	vkSubtract = 0x6d
	vkDecimal  = 0x6e
	vkDivide   = 0x6f
	vkF1       = 0x70
	vkF24      = 0x87
	vkNumlock  = 0x90
	vkScroll   = 0x91
	vkLShift   = 0xa0
	vkRShift   = 0xa1
	vkLCtrl    = 0xa2
	vkRCtrl    = 0xa3
	vkLMenu    = 0xa4
	vkRMenu    = 0xa5
	vkOem1     = 0xba // ;:
	vkOemPlus  = 0xbb // =+
	vkOemComm  = 0xbc // ,<
	vkOemMin   = 0xbd // -_
	vkOemPer   = 0xbe // .>
	vkOem2     = 0xbf // /?
	vkOem3     = 0xc0 // `~
	vkOem4     = 0xdb // [{
	vkOem5     = 0xdc // \|
	vkOem6     = 0xdd // ]}
	vkOem7     = 0xde // '"
)

// scRShift is the make scancode of the right Shift key, the only
// reliable way to tell left Shift from right Shift apart: both report
// the bare VK_SHIFT virtual-key code.
const scRShift = 0x36

// shiftedDigit maps an unshifted digit character to its shifted symbol
// on a US keyboard layout, the only layout the client shim targets.
var shiftedDigit = map[byte]byte{
	'0': ')', '1': '!', '2': '@', '3': '#', '4': '$',
	'5': '%', '6': '^', '7': '&', '8': '*', '9': '(',
}

var oemUnshifted = map[uint32]byte{
	vkOem1: ';', vkOemPlus: '=', vkOemComm: ',', vkOemMin: '-',
	vkOemPer: '.', vkOem2: '/', vkOem3: '`', vkOem4: '[',
	vkOem5: '\\', vkOem6: ']', vkOem7: '\'',
}

var oemShifted = map[uint32]byte{
	vkOem1: ':', vkOemPlus: '+', vkOemComm: '<', vkOemMin: '_',
	vkOemPer: '>', vkOem2: '?', vkOem3: '~', vkOem4: '{',
	vkOem5: '|', vkOem6: '}', vkOem7: '"',
}

// navMainKeysym and navKPKeysym hold the two keysyms a shared
// navigation-cluster virtual-key code can mean: the dedicated edit/
// arrow key (extended flag set) or its numeric-pad twin (extended
// flag clear).
var navMainKeysym = map[uint32]uint32{
	vkHome: KeyHome, vkEnd: KeyEnd, vkLeft: KeyLeft, vkRight: KeyRight,
	vkUp: KeyUp, vkDown: KeyDown, vkPrior: KeyPageUp, vkNext: KeyPageDown,
	vkInsert: KeyInsert, vkDelete: KeyDelete,
}

var navKPKeysym = map[uint32]uint32{
	vkHome: KeyKPHome, vkEnd: KeyKPEnd, vkLeft: KeyKPLeft, vkRight: KeyKPRight,
	vkUp: KeyKPUp, vkDown: KeyKPDown, vkPrior: KeyKPPageUp, vkNext: KeyKPPageDown,
	vkInsert: KeyKPInsert, vkDelete: KeyKPDelete,
}

// kpOperator maps the dedicated numeric-pad operator keys (these have
// no main-cluster twin, so extended/non-extended doesn't apply).
var kpOperator = map[uint32]uint32{
	vkMultiply: KeyKPMultiply, vkAdd: KeyKPAdd, vkSeparator: KeyKPSeparator,
	vkSubtract: KeyKPSubtract, vkDecimal: KeyKPDecimal, vkDivide: KeyKPDivide,
}

// Convert translates a Windows key event into an X11-style keysym. ok
// is false when the key has no RIME-meaningful mapping (most system
// keys, media keys, IME composition keys).
//
// scancode and extended disambiguate the handful of virtual-key codes
// Windows reuses for two physically different keys: Enter (main
// keyboard vs. numeric-pad), the navigation cluster (dedicated edit
// keys vs. numeric pad with Num Lock off), and bare Control/Alt/Shift
// (left vs. right physical key). shift and capsLock together decide
// letter case.
func Convert(vk, scancode uint32, extended, shift, capsLock bool) (keysym uint32, ok bool) {
	switch {
	case vk >= vkA && vk <= vkZ:
		c := vk - vkA + 'a'
		if shift != capsLock {
			c -= 'a' - 'A'
		}
		return c, true

	case vk >= vk0 && vk <= vk9:
		if shift {
			return uint32(shiftedDigit[byte(vk-vk0+'0')]), true
		}
		return vk - vk0 + '0', true

	case vk == vkSpace:
		return KeySpace, true
	case vk == vkReturn:
		if extended {
			return KeyKPEnter, true
		}
		return KeyReturn, true
	case vk == vkBack:
		return KeyBackSpace, true
	case vk == vkTab:
		return KeyTab, true
	case vk == vkEscape:
		return KeyEscape, true
	case vk == vkCapital:
		return KeyCapsLock, true
	case vk == vkNumlock:
		return KeyNumLock, true
	case vk == vkScroll:
		return KeyScrollLock, true
	case vk == vkPause:
		return KeyPause, true
	case vk == vkSnapshot:
		return KeyPrint, true
	case vk == vkApps:
		return KeyMenu, true

	case IsNavigationKey(vk):
		if extended {
			return navMainKeysym[vk], true
		}
		return navKPKeysym[vk], true

	case vk == vkShift:
		if scancode == scRShift {
			return KeyShiftR, true
		}
		return KeyShiftL, true
	case vk == vkLShift:
		return KeyShiftL, true
	case vk == vkRShift:
		return KeyShiftR, true
	case vk == vkControl:
		if extended {
			return KeyControlR, true
		}
		return KeyControlL, true
	case vk == vkLCtrl:
		return KeyControlL, true
	case vk == vkRCtrl:
		return KeyControlR, true
	case vk == vkMenu:
		if extended {
			return KeyAltR, true
		}
		return KeyAltL, true
	case vk == vkLMenu:
		return KeyAltL, true
	case vk == vkRMenu:
		return KeyAltR, true

	case IsNumpadKey(vk):
		return KeyKP0 + (vk - vkNumpad0), true
	case vk == vkMultiply || vk == vkAdd || vk == vkSeparator ||
		vk == vkSubtract || vk == vkDecimal || vk == vkDivide:
		return kpOperator[vk], true

	case IsFunctionKey(vk):
		return KeyF1 + (vk - vkF1), true
	}

	if vk == vkOem1 || vk == vkOemPlus || vk == vkOemComm ||
		vk == vkOemMin || vk == vkOemPer || vk == vkOem2 || vk == vkOem3 ||
		vk == vkOem4 || vk == vkOem5 || vk == vkOem6 || vk == vkOem7 {
		if shift {
			return uint32(oemShifted[vk]), true
		}
		return uint32(oemUnshifted[vk]), true
	}

	return 0, false
}

// ConvertModifiers packs the held-modifier flags into the engine's
// KeyModifier bitmask.
func ConvertModifiers(shift, control, alt, super bool) Modifiers {
	var m Modifiers
	if shift {
		m |= ModShift
	}
	if control {
		m |= ModControl
	}
	if alt {
		m |= ModAlt
	}
	if super {
		m |= ModSuper
	}
	return m
}

// IsCharacterKey reports whether vk produces a printable character:
// letters, digits, OEM punctuation keys, or space.
func IsCharacterKey(vk uint32) bool {
	switch {
	case vk >= vkA && vk <= vkZ:
		return true
	case vk >= vk0 && vk <= vk9:
		return true
	case vk == vkSpace:
		return true
	case vk == vkOem1 || vk == vkOemPlus || vk == vkOemComm || vk == vkOemMin ||
		vk == vkOemPer || vk == vkOem2 || vk == vkOem3 || vk == vkOem4 ||
		vk == vkOem5 || vk == vkOem6 || vk == vkOem7:
		return true
	}
	return false
}

// IsCharacterKeysym reports whether keysym (a value Convert already
// produced) is a printable character, i.e. falls in the ASCII
// printable range this package reserves for it.
func IsCharacterKeysym(keysym uint32) bool {
	return keysym >= 0x20 && keysym <= 0x7e
}

// IsModifierKey reports whether vk is Shift, Ctrl, Alt or the Windows key.
func IsModifierKey(vk uint32) bool {
	switch vk {
	case vkShift, vkControl, vkMenu,
		vkLShift, vkRShift, vkLCtrl, vkRCtrl, vkLMenu, vkRMenu,
		vkLWin, vkRWin:
		return true
	}
	return false
}

// IsFunctionKey reports whether vk is F1-F24.
func IsFunctionKey(vk uint32) bool {
	return vk >= vkF1 && vk <= vkF24
}

// IsNumpadKey reports whether vk is a numeric-pad digit key (0-9).
func IsNumpadKey(vk uint32) bool {
	return vk >= vkNumpad0 && vk <= vkNumpad9
}

// IsNavigationKey reports whether vk is one of the virtual-key codes
// shared by the edit/arrow cluster and its numeric-pad twin: Home,
// End, the four arrows, PageUp, PageDown, Insert, Delete.
func IsNavigationKey(vk uint32) bool {
	switch vk {
	case vkLeft, vkRight, vkUp, vkDown, vkHome, vkEnd, vkPrior, vkNext, vkInsert, vkDelete:
		return true
	}
	return false
}

// IsNavigationKeysym reports whether keysym (a value Convert already
// produced) is a navigation-cluster key, main or numeric-pad.
func IsNavigationKeysym(keysym uint32) bool {
	switch keysym {
	case KeyLeft, KeyRight, KeyUp, KeyDown, KeyHome, KeyEnd, KeyPageUp, KeyPageDown,
		KeyKPLeft, KeyKPRight, KeyKPUp, KeyKPDown, KeyKPHome, KeyKPEnd, KeyKPPageUp, KeyKPPageDown:
		return true
	}
	return false
}
