package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/fluid/config"
)

func TestNormalizeRoundTrip(t *testing.T) {
	pv := NewParamVector()
	raw := []float64{-4.2, -1.5}

	back := pv.Denormalize(pv.Normalize(raw))
	for i := range raw {
		if math.Abs(back[i]-raw[i]) > 1e-12 {
			t.Errorf("param %d: %v -> %v", i, raw[i], back[i])
		}
	}

	n := pv.Normalize(pv.DefaultVector())
	for i, v := range n {
		if v != 0.5 {
			t.Errorf("default %s normalizes to %v, want 0.5", pv.Params[i].Name, v)
		}
	}
}

func TestClamp(t *testing.T) {
	pv := NewParamVector()
	got := pv.Clamp([]float64{-20, 3})
	if got[0] != -6 || got[1] != -1 {
		t.Errorf("Clamp = %v, want [-6 -1]", got)
	}
}

func TestApplyAndExtract(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	pv := NewParamVector()

	// Defaults (1e-7) sit below the search range.
	got := pv.ExtractFromConfig(cfg)
	if got[0] != -6 || got[1] != -6 {
		t.Errorf("extracted defaults = %v, want clamp to -6", got)
	}

	pv.ApplyToConfig(cfg, []float64{-3, -2})
	if math.Abs(cfg.Fluid.Viscosity-1e-3) > 1e-15 || math.Abs(cfg.Fluid.Diffusion-1e-2) > 1e-15 {
		t.Errorf("applied rates = %v, %v", cfg.Fluid.Viscosity, cfg.Fluid.Diffusion)
	}
	if cfg.Derived.Viscosity32 != float32(cfg.Fluid.Viscosity) {
		t.Errorf("Viscosity32 = %v not refreshed", cfg.Derived.Viscosity32)
	}

	back := pv.ExtractFromConfig(cfg)
	if math.Abs(back[0]+3) > 1e-9 || math.Abs(back[1]+2) > 1e-9 {
		t.Errorf("extract after apply = %v, want [-3 -2]", back)
	}
}
