package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeThemeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write theme file: %v", err)
	}
	return path
}

func TestLoadThemeAcceptsValidDocument(t *testing.T) {
	path := writeThemeFile(t, `
name: custom
font_family: Sarasa Gothic
font_size: 15
opacity: 90
`)
	th, err := LoadTheme(path)
	if err != nil {
		t.Fatalf("LoadTheme: %v", err)
	}
	if th.Name != "custom" || th.FontSize != 15 {
		t.Fatalf("theme = %+v", th)
	}
}

func TestLoadThemeRejectsMissingRequiredField(t *testing.T) {
	path := writeThemeFile(t, `
font_family: Sarasa Gothic
font_size: 15
`)
	if _, err := LoadTheme(path); err == nil {
		t.Fatal("expected schema validation error for missing name")
	}
}

func TestLoadThemeRejectsOpacityOutOfRange(t *testing.T) {
	path := writeThemeFile(t, `
name: bad
font_family: X
font_size: 10
opacity: 200
`)
	if _, err := LoadTheme(path); err == nil {
		t.Fatal("expected schema validation error for opacity out of range")
	}
}
