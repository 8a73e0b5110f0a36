package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load defaults: %v", err)
	}

	if cfg.Screen.Width != 800 || cfg.Screen.Height != 600 {
		t.Errorf("screen = %dx%d, want 800x600", cfg.Screen.Width, cfg.Screen.Height)
	}
	if cfg.Grid.Width != 300 || cfg.Grid.Height != 200 {
		t.Errorf("grid = %dx%d, want 300x200", cfg.Grid.Width, cfg.Grid.Height)
	}
	if cfg.Fluid.Iterations != 20 {
		t.Errorf("iterations = %d, want 20", cfg.Fluid.Iterations)
	}
	if cfg.Derived.DT32 != 0.016 {
		t.Errorf("DT32 = %v, want 0.016", cfg.Derived.DT32)
	}
	if cfg.Derived.StatsWindowTicks != 62 {
		t.Errorf("StatsWindowTicks = %d, want 62", cfg.Derived.StatsWindowTicks)
	}

	names := []string{"Blue", "Red", "Green", "Purple"}
	if len(cfg.Palette) != len(names) {
		t.Fatalf("palette has %d entries, want %d", len(cfg.Palette), len(names))
	}
	for i, n := range names {
		if cfg.Palette[i].Name != n {
			t.Errorf("palette[%d] = %q, want %q", i, cfg.Palette[i].Name, n)
		}
	}
	if p, ok := cfg.Color("Purple"); !ok || p.R != 255 || p.G != 0 || p.B != 255 {
		t.Errorf("Purple = %+v, %v", p, ok)
	}
	if len(cfg.Scenario) == 0 {
		t.Error("expected a default scenario")
	}
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := writeFile(t, `
grid:
  width: 64
fluid:
  tolerance: 0.001
palette:
  - { name: White, r: 255, g: 255, b: 255 }
scenario: []
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Grid.Width != 64 || cfg.Grid.Height != 200 {
		t.Errorf("grid = %dx%d, want 64x200", cfg.Grid.Width, cfg.Grid.Height)
	}
	if cfg.Fluid.Tolerance != 0.001 || cfg.Fluid.Iterations != 20 {
		t.Errorf("fluid = %+v", cfg.Fluid)
	}
	if len(cfg.Palette) != 1 || cfg.Palette[0].Name != "White" {
		t.Errorf("palette = %+v, want only White", cfg.Palette)
	}
	if len(cfg.Scenario) != 0 {
		t.Errorf("scenario has %d entries, want 0", len(cfg.Scenario))
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"tiny grid", "grid: {width: 2, height: 10}"},
		{"zero dt", "fluid: {dt: 0}"},
		{"negative viscosity", "fluid: {viscosity: -1}"},
		{"no iterations", "fluid: {iterations: 0}"},
		{"negative tolerance", "fluid: {tolerance: -0.1}"},
		{"empty palette", "palette: []"},
		{"duplicate palette", "palette: [{name: A}, {name: A}]"},
		{"unknown kind", "scenario: [{kind: vortex}]"},
		{"unknown color", "scenario: [{kind: density, color: Orange}]"},
		{"negative tick", "scenario: [{kind: reset, tick: -1}]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.body))
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("Load error = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load error = %v, want ErrNotExist", err)
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Fluid.IsolateChannels = true
	cfg.Explosion.Power = 42

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !got.Fluid.IsolateChannels || got.Explosion.Power != 42 {
		t.Errorf("reloaded fluid=%+v explosion=%+v", got.Fluid, got.Explosion)
	}
	if len(got.Scenario) != len(cfg.Scenario) {
		t.Errorf("scenario length %d, want %d", len(got.Scenario), len(cfg.Scenario))
	}
}

func TestCfgPanicsBeforeInit(t *testing.T) {
	saved := global
	global = nil
	defer func() {
		global = saved
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	Cfg()
}
