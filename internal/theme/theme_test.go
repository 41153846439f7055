package theme

import "testing"

func TestDefaultThemeValidates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default theme failed validation: %v", err)
	}
}

func TestValidateRejectsOpacityOutOfRange(t *testing.T) {
	th := Default()
	th.Opacity = 150
	if err := th.Validate(); err != ErrOpacityRange {
		t.Fatalf("err = %v, want ErrOpacityRange", err)
	}
}

func TestValidateRejectsNonPositiveFontSize(t *testing.T) {
	th := Default()
	th.FontSize = 0
	if err := th.Validate(); err != ErrFontSize {
		t.Fatalf("err = %v, want ErrFontSize", err)
	}
}
