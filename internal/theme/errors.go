package theme

import "errors"

var (
	ErrOpacityRange = errors.New("theme: opacity must be between 0 and 100")
	ErrFontSize     = errors.New("theme: font_size must be positive")
)
