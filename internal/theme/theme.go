// Package theme defines the flat appearance document that drives
// candidate-window rendering: colors, fonts, and spacing. It is pure
// data — config owns loading, validating, and hot-reloading it.
package theme

// Color is an 8-bit-per-channel RGBA color. It has no custom YAML
// decoding: theme documents give it as a mapping with r, g, b and a
// keys, and a "#rrggbbaa" hex string is not parsed.
type Color struct {
	R, G, B, A uint8
}

// Theme is the full set of visual knobs for the candidate window, per
// the flat color/font/spacing contract.
type Theme struct {
	Name string `yaml:"name"`

	Background    Color `yaml:"background"`
	Border        Color `yaml:"border"`
	Text          Color `yaml:"text"`
	HighlightText Color `yaml:"highlight_text"`
	HighlightBg   Color `yaml:"highlight_bg"`
	Preedit       Color `yaml:"preedit"`
	Label         Color `yaml:"label"`
	Comment       Color `yaml:"comment"`

	FontFamily string  `yaml:"font_family"`
	FontSize   float64 `yaml:"font_size"`

	Opacity          int     `yaml:"opacity"`
	CornerRadius     float64 `yaml:"corner_radius"`
	BorderWidth      float64 `yaml:"border_width"`
	CandidateSpacing float64 `yaml:"candidate_spacing"`
	Padding          float64 `yaml:"padding"`
}

// Default returns the built-in light theme shipped when no user theme
// file is present or selected.
func Default() Theme {
	return Theme{
		Name:             "default",
		Background:       Color{R: 250, G: 250, B: 245, A: 255},
		Border:           Color{R: 200, G: 200, B: 200, A: 255},
		Text:             Color{R: 30, G: 30, B: 30, A: 255},
		HighlightText:    Color{R: 20, G: 20, B: 20, A: 255},
		HighlightBg:      Color{R: 210, G: 230, B: 255, A: 255},
		Preedit:          Color{R: 60, G: 60, B: 60, A: 255},
		Label:            Color{R: 120, G: 120, B: 120, A: 255},
		Comment:          Color{R: 150, G: 150, B: 150, A: 255},
		FontFamily:       "Microsoft YaHei",
		FontSize:         14,
		Opacity:          100,
		CornerRadius:     4,
		BorderWidth:      1,
		CandidateSpacing: 12,
		Padding:          8,
	}
}

// Validate enforces the ranges a theme document must stay within so a
// malformed user file cannot crash rendering.
func (t Theme) Validate() error {
	if t.Opacity < 0 || t.Opacity > 100 {
		return ErrOpacityRange
	}
	if t.FontSize <= 0 {
		return ErrFontSize
	}
	return nil
}
