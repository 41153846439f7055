package config

import (
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Layout.PageSize != 9 {
		t.Fatalf("PageSize = %d, want default 9", cfg.Layout.PageSize)
	}
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := DefaultConfig()
	cfg.ThemeName = "dark"
	cfg.Layout.PageSize = 5

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.ThemeName != "dark" || loaded.Layout.PageSize != 5 {
		t.Fatalf("loaded = %+v", loaded)
	}
}

func TestValidateRejectsBadPageSize(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Layout.PageSize = 0
	if err := cfg.Validate(); err != ErrPageSizeRange {
		t.Fatalf("err = %v, want ErrPageSizeRange", err)
	}
}

func TestValidateRejectsEmptyDatabasePath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DatabasePath = ""
	if err := cfg.Validate(); err != ErrDatabasePathRequired {
		t.Fatalf("err = %v, want ErrDatabasePathRequired", err)
	}
}
