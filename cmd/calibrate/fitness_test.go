package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/fluid/config"
	"github.com/pthm-cable/fluid/fluid"
)

func smallConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Grid.Width = 24
	cfg.Grid.Height = 18
	cfg.Fluid.Iterations = 8
	return cfg
}

func TestImpulsesSeedEnergy(t *testing.T) {
	for _, imp := range Impulses {
		t.Run(imp.Name, func(t *testing.T) {
			sim, err := fluid.New(24, 18, 0, 0, 0.016)
			if err != nil {
				t.Fatal(err)
			}
			if err := imp.Apply(sim); err != nil {
				t.Fatalf("Apply: %v", err)
			}
			if sim.KineticEnergy() <= 0 {
				t.Error("impulse added no velocity")
			}
			total := sim.Mass(fluid.Red) + sim.Mass(fluid.Blue)
			if total <= 0 {
				t.Error("impulse added no dye")
			}
		})
	}
}

func TestEvaluate(t *testing.T) {
	pv := NewParamVector()
	fe := NewFitnessEvaluator(pv, 12, smallConfig(t))
	fe.EnergyTarget = 0.5
	fe.PeakTarget = 0.9

	fitness := fe.Evaluate(pv.DefaultVector())
	if math.IsNaN(fitness) || math.IsInf(fitness, 0) || fitness < 0 {
		t.Fatalf("fitness = %v", fitness)
	}

	ret := fe.LastRetention()
	if ret.Energy <= 0 || ret.Energy > 1.5 {
		t.Errorf("energy retention = %v", ret.Energy)
	}
	if ret.Peak <= 0 {
		t.Errorf("peak retention = %v", ret.Peak)
	}

	want := ((ret.Energy-0.5)*(ret.Energy-0.5) + (ret.Peak-0.9)*(ret.Peak-0.9))
	// Mean of per-impulse scores is at least the score of the mean.
	if fitness < want-1e-12 {
		t.Errorf("fitness %v below score of mean retention %v", fitness, want)
	}
}

func TestViscosityDampsEnergy(t *testing.T) {
	pv := NewParamVector()
	fe := NewFitnessEvaluator(pv, 12, smallConfig(t))

	fe.Evaluate([]float64{-6, -6})
	thin := fe.LastRetention().Energy

	fe.Evaluate([]float64{-1, -6})
	thick := fe.LastRetention().Energy

	if thick >= thin {
		t.Errorf("energy retention with high viscosity %v not below low viscosity %v", thick, thin)
	}
}

func TestEvaluateDoesNotMutateBase(t *testing.T) {
	cfg := smallConfig(t)
	fe := NewFitnessEvaluator(NewParamVector(), 4, cfg)
	fe.Evaluate([]float64{-2, -2})

	if cfg.Fluid.Viscosity != 1e-7 {
		t.Errorf("base viscosity changed to %v", cfg.Fluid.Viscosity)
	}
}
