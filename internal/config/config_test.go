package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Width != DefaultWidth || cfg.Height != DefaultHeight {
		t.Errorf("dimensions %dx%d, want %dx%d", cfg.Width, cfg.Height, DefaultWidth, DefaultHeight)
	}
	if cfg.Carver != "prim" {
		t.Errorf("carver %q, want prim", cfg.Carver)
	}
	if !cfg.AutoPlace {
		t.Error("auto placement should default on")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maze.yaml")
	data := []byte("width: 31\nheight: 15\nseed: 7\ncarver: backtracker\nstart:\n  x: 3\n  y: 3\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 31 || cfg.Height != 15 || cfg.Seed != 7 {
		t.Errorf("loaded %dx%d seed %d", cfg.Width, cfg.Height, cfg.Seed)
	}
	if cfg.Carver != "backtracker" {
		t.Errorf("carver %q", cfg.Carver)
	}
	if cfg.Start == nil || cfg.Start.X != 3 || cfg.Start.Y != 3 {
		t.Errorf("start override %+v", cfg.Start)
	}
	// Unset fields keep defaults.
	if cfg.FPS != DefaultFPS || cfg.Steps.CarveOps != DefaultCarveOps {
		t.Errorf("defaults lost: fps %d carve_ops %d", cfg.FPS, cfg.Steps.CarveOps)
	}
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maze.yaml")
	if err := os.WriteFile(path, []byte("braiding: 2.0\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected validation error for braiding 2.0")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("classic")
	if cfg == nil {
		t.Fatal("classic preset missing")
	}
	if cfg.Width != 21 || cfg.Height != 21 {
		t.Errorf("classic = %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.FPS != DefaultFPS {
		t.Error("preset did not inherit defaults")
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for unknown preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) != len(Presets) {
		t.Errorf("ListPresets() returned %d names", len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("names not sorted: %v", names)
		}
	}
}
