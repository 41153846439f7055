package keycodec

import "testing"

func TestConvertLetters(t *testing.T) {
	ks, ok := Convert(vkA, 0, false, false, false)
	if !ok || ks != 'a' {
		t.Fatalf("Convert(vkA) = %v,%v want 'a',true", ks, ok)
	}
	ks, ok = Convert(vkA, 0, false, true, false)
	if !ok || ks != 'A' {
		t.Fatalf("Convert(vkA,shift) = %v,%v want 'A',true", ks, ok)
	}
	// CapsLock alone uppercases; Shift+CapsLock cancels back to lowercase.
	ks, ok = Convert(vkA, 0, false, false, true)
	if !ok || ks != 'A' {
		t.Fatalf("Convert(vkA,capsLock) = %v,%v want 'A',true", ks, ok)
	}
	ks, ok = Convert(vkA, 0, false, true, true)
	if !ok || ks != 'a' {
		t.Fatalf("Convert(vkA,shift+capsLock) = %v,%v want 'a',true", ks, ok)
	}
}

func TestConvertDigitsShifted(t *testing.T) {
	ks, ok := Convert(vk0+1, 0, false, true, false) // '1' -> '!'
	if !ok || ks != '!' {
		t.Fatalf("shifted '1' = %v,%v want '!',true", ks, ok)
	}
}

func TestConvertMainClusterKeys(t *testing.T) {
	cases := map[uint32]uint32{
		vkBack:   KeyBackSpace,
		vkEscape: KeyEscape,
	}
	for vk, want := range cases {
		got, ok := Convert(vk, 0, false, false, false)
		if !ok || got != want {
			t.Fatalf("Convert(%#x) = %#x,%v want %#x", vk, got, ok, want)
		}
	}
}

func TestConvertUnmapped(t *testing.T) {
	if _, ok := Convert(0x01, 0, false, false, false); ok {
		t.Fatalf("expected vk 0x01 to be unmapped")
	}
}

func TestConvertEnterExtendedSelectsNumpad(t *testing.T) {
	got, ok := Convert(vkReturn, 0, false, false, false)
	if !ok || got != KeyReturn {
		t.Fatalf("Convert(Return) = %#x,%v want KeyReturn", got, ok)
	}
	got, ok = Convert(vkReturn, 0, true, false, false)
	if !ok || got != KeyKPEnter {
		t.Fatalf("Convert(Return,extended) = %#x,%v want KeyKPEnter", got, ok)
	}
}

func TestConvertNavigationClusterExtendedVsNumpad(t *testing.T) {
	got, ok := Convert(vkDelete, 0, true, false, false)
	if !ok || got != KeyDelete {
		t.Fatalf("Convert(Delete,extended) = %#x,%v want KeyDelete", got, ok)
	}
	got, ok = Convert(vkDelete, 0, false, false, false)
	if !ok || got != KeyKPDelete {
		t.Fatalf("Convert(Delete,!extended) = %#x,%v want KeyKPDelete", got, ok)
	}
	got, ok = Convert(vkLeft, 0, true, false, false)
	if !ok || got != KeyLeft {
		t.Fatalf("Convert(Left,extended) = %#x,%v want KeyLeft", got, ok)
	}
	got, ok = Convert(vkLeft, 0, false, false, false)
	if !ok || got != KeyKPLeft {
		t.Fatalf("Convert(Left,!extended) = %#x,%v want KeyKPLeft", got, ok)
	}
	got, ok = Convert(vkPrior, 0, true, false, false)
	if !ok || got != KeyPageUp {
		t.Fatalf("Convert(Prior,extended) = %#x,%v want KeyPageUp", got, ok)
	}
}

func TestConvertBareShiftUsesScancodeForSide(t *testing.T) {
	got, ok := Convert(vkShift, 0x2a, false, false, false)
	if !ok || got != KeyShiftL {
		t.Fatalf("Convert(bare shift, sc 0x2a) = %#x,%v want KeyShiftL", got, ok)
	}
	got, ok = Convert(vkShift, scRShift, false, false, false)
	if !ok || got != KeyShiftR {
		t.Fatalf("Convert(bare shift, sc 0x36) = %#x,%v want KeyShiftR", got, ok)
	}
}

func TestConvertBareControlAltUseExtendedForSide(t *testing.T) {
	got, ok := Convert(vkControl, 0, false, false, false)
	if !ok || got != KeyControlL {
		t.Fatalf("Convert(bare control) = %#x,%v want KeyControlL", got, ok)
	}
	got, ok = Convert(vkControl, 0, true, false, false)
	if !ok || got != KeyControlR {
		t.Fatalf("Convert(bare control,extended) = %#x,%v want KeyControlR", got, ok)
	}
	got, ok = Convert(vkMenu, 0, false, false, false)
	if !ok || got != KeyAltL {
		t.Fatalf("Convert(bare menu) = %#x,%v want KeyAltL", got, ok)
	}
	got, ok = Convert(vkMenu, 0, true, false, false)
	if !ok || got != KeyAltR {
		t.Fatalf("Convert(bare menu,extended) = %#x,%v want KeyAltR", got, ok)
	}
}

func TestConvertNumpadDigitsAndOperators(t *testing.T) {
	got, ok := Convert(vkNumpad0+5, 0, false, false, false)
	if !ok || got != KeyKP0+5 {
		t.Fatalf("Convert(numpad 5) = %#x,%v want KP_5", got, ok)
	}
	got, ok = Convert(vkAdd, 0, false, false, false)
	if !ok || got != KeyKPAdd {
		t.Fatalf("Convert(numpad +) = %#x,%v want KP_Add", got, ok)
	}
}

func TestConvertFunctionKeyRange(t *testing.T) {
	got, ok := Convert(vkF1, 0, false, false, false)
	if !ok || got != KeyF1 {
		t.Fatalf("Convert(F1) = %#x,%v want KeyF1", got, ok)
	}
	got, ok = Convert(vkF1+11, 0, false, false, false) // F12
	if !ok || got != KeyF1+11 {
		t.Fatalf("Convert(F12) = %#x,%v want KeyF1+11", got, ok)
	}
}

func TestConvertModifiers(t *testing.T) {
	m := ConvertModifiers(true, false, true, false)
	if m != ModShift|ModAlt {
		t.Fatalf("ConvertModifiers = %v want Shift|Alt", m)
	}
}

func TestKeyClassPredicates(t *testing.T) {
	if !IsCharacterKey(vkA) || IsCharacterKey(vkF1) {
		t.Fatalf("IsCharacterKey misclassified")
	}
	if !IsModifierKey(vkLShift) || IsModifierKey(vkA) {
		t.Fatalf("IsModifierKey misclassified")
	}
	if !IsFunctionKey(vkF1) || IsFunctionKey(vkA) {
		t.Fatalf("IsFunctionKey misclassified")
	}
	if !IsNavigationKey(vkHome) || IsNavigationKey(vkA) {
		t.Fatalf("IsNavigationKey misclassified")
	}
	if !IsNumpadKey(vkNumpad0+3) || IsNumpadKey(vkA) {
		t.Fatalf("IsNumpadKey misclassified")
	}
}

func TestKeysymClassPredicates(t *testing.T) {
	if !IsCharacterKeysym('a') || IsCharacterKeysym(KeyLeft) {
		t.Fatalf("IsCharacterKeysym misclassified")
	}
	if !IsNavigationKeysym(KeyLeft) || !IsNavigationKeysym(KeyKPLeft) || IsNavigationKeysym('a') {
		t.Fatalf("IsNavigationKeysym misclassified")
	}
}
