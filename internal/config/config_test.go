package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/san-kum/plexus/internal/field"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Theme != "neon" {
		t.Errorf("expected theme neon, got %s", cfg.Theme)
	}
	if cfg.Field.Density != 15000 {
		t.Errorf("expected density 15000, got %v", cfg.Field.Density)
	}
	if cfg.Typewriter.HoldDelay != 1500*time.Millisecond {
		t.Errorf("expected 1500ms hold, got %v", cfg.Typewriter.HoldDelay)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plexus.yaml")

	cfg := DefaultConfig()
	cfg.Theme = "ocean"
	cfg.Field.LinkDistance = 120
	cfg.Clock.Label = "UTC"
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Theme != "ocean" {
		t.Errorf("expected theme ocean, got %s", loaded.Theme)
	}
	if loaded.Field.LinkDistance != 120 {
		t.Errorf("expected link distance 120, got %v", loaded.Field.LinkDistance)
	}
	if loaded.Clock.Label != "UTC" {
		t.Errorf("expected clock label UTC, got %s", loaded.Clock.Label)
	}
	if loaded.Field.PointerColor.R != 168 {
		t.Errorf("expected pointer color to survive, got %+v", loaded.Field.PointerColor)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.FPS != DefaultFPS {
		t.Errorf("expected default fps, got %d", cfg.FPS)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("PLEXUS_THEME", "retro")
	t.Setenv("PLEXUS_FIELD__DENSITY", "9000")
	t.Setenv("PLEXUS_SERVER__ADDR", ":9999")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Theme != "retro" {
		t.Errorf("expected theme retro, got %s", cfg.Theme)
	}
	if cfg.Field.Density != 9000 {
		t.Errorf("expected density 9000, got %v", cfg.Field.Density)
	}
	if cfg.Server.Addr != ":9999" {
		t.Errorf("expected addr :9999, got %s", cfg.Server.Addr)
	}
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("theme: [unterminated"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed yaml")
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Field.Density = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for zero density")
	}

	cfg = DefaultConfig()
	cfg.FPS = -1
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for negative fps")
	}

	cfg = DefaultConfig()
	cfg.Terminal.ScrollOffset = cfg.Terminal.ActiveOffset
	if err := cfg.Validate(); err == nil {
		t.Error("expected error when a jump would land outside the active range")
	}

	cfg = DefaultConfig()
	cfg.Server.Width = cfg.Server.MaxWidth + 1
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for a server surface over the max")
	}
}

func TestGetPreset(t *testing.T) {
	p := GetPreset("dense")
	if p == nil {
		t.Fatal("expected preset, got nil")
	}
	if p.Density != 8000 {
		t.Errorf("expected density 8000, got %v", p.Density)
	}
	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if *GetPreset("classic") != field.DefaultParams() {
		t.Error("classic preset should equal defaults")
	}
}

func TestApplyPreset_KeepsColors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Field.LinkColor = field.RGBA(1, 2, 3, 1)
	if err := cfg.ApplyPreset("swarm"); err != nil {
		t.Fatal(err)
	}
	if cfg.Field.Speed != 1.2 {
		t.Errorf("expected speed 1.2, got %v", cfg.Field.Speed)
	}
	if cfg.Field.LinkColor != field.RGBA(1, 2, 3, 1) {
		t.Errorf("expected custom link color kept, got %+v", cfg.Field.LinkColor)
	}
	if err := cfg.ApplyPreset("bogus"); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != len(Presets) {
		t.Errorf("expected %d presets, got %d", len(Presets), len(presets))
	}
	if presets[0] != "calm" {
		t.Errorf("expected sorted names, first is %s", presets[0])
	}
}
