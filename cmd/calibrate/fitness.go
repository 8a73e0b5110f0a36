package main

import (
	"fmt"
	"math"
	"sync"

	"gonum.org/v1/gonum/floats"

	"github.com/pthm-cable/fluid/config"
	"github.com/pthm-cable/fluid/fluid"
)

// Impulse seeds a fresh simulation with a test pattern.
type Impulse struct {
	Name  string
	Apply func(sim *fluid.Simulation) error
}

// Impulses are the patterns every evaluation runs.
var Impulses = []Impulse{
	{Name: "vortex", Apply: applyVortex},
	{Name: "jet", Apply: applyJet},
}

// applyVortex spins a disc of dyed fluid in the middle of the grid. The rim
// moves about one cell per step.
func applyVortex(sim *fluid.Simulation) error {
	g := sim.Grid()
	cx, cy := g.Width/2, g.Height/2
	r := min(g.Width, g.Height) / 5
	if r < 2 {
		r = 2
	}
	omega := 1 / (float32(r) * sim.Timestep() * float32(g.Width-2))

	for y := cy - r; y <= cy+r; y++ {
		for x := cx - r; x <= cx+r; x++ {
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy > r*r || !g.InBounds(x, y) {
				continue
			}
			if err := sim.AddVelocity(x, y, -float32(dy)*omega, float32(dx)*omega); err != nil {
				return err
			}
			if err := sim.AddDensity(x, y, 255, 255, 0, 0); err != nil {
				return err
			}
		}
	}
	return nil
}

// applyJet pushes a dyed horizontal band from the left third of the grid.
func applyJet(sim *fluid.Simulation) error {
	g := sim.Grid()
	cy := g.Height / 2
	half := max(g.Height/20, 1)
	speed := 1 / (sim.Timestep() * float32(g.Width-2))

	for y := cy - half; y <= cy+half; y++ {
		for x := 1; x < g.Width/3; x++ {
			if err := sim.AddVelocity(x, y, speed, 0); err != nil {
				return err
			}
			if err := sim.AddDensity(x, y, 255, 0, 0, 255); err != nil {
				return err
			}
		}
	}
	return nil
}

// Retention compares a run after its first step with its final state.
type Retention struct {
	Energy float64 // Kinetic energy after the last step over after the first
	Peak   float64 // Peak density after the last step over after the first
}

// FitnessEvaluator runs impulse simulations and scores how far their
// retention is from the targets.
type FitnessEvaluator struct {
	params     *ParamVector
	baseConfig *config.Config
	steps      int

	EnergyTarget float64
	PeakTarget   float64

	mu   sync.Mutex
	last Retention
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, steps int, baseCfg *config.Config) *FitnessEvaluator {
	if steps < 2 {
		steps = 2
	}
	return &FitnessEvaluator{
		params:     params,
		baseConfig: baseCfg,
		steps:      steps,
	}
}

// LastRetention returns the mean retention of the most recent evaluation.
func (fe *FitnessEvaluator) LastRetention() Retention {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.last
}

// Evaluate returns the squared distance from the targets, averaged over
// Impulses (lower = better). Runs that fail score +Inf.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	results := make([]Retention, len(Impulses))
	errs := make([]error, len(Impulses))
	var wg sync.WaitGroup
	for i, imp := range Impulses {
		wg.Add(1)
		go func(idx int, imp Impulse) {
			defer wg.Done()
			results[idx], errs[idx] = fe.run(cfg, imp)
		}(i, imp)
	}
	wg.Wait()

	var mean Retention
	fitness := 0.0
	for i, r := range results {
		if errs[i] != nil {
			return math.Inf(1)
		}
		mean.Energy += r.Energy
		mean.Peak += r.Peak
		fitness += fe.score(r)
	}
	n := float64(len(results))
	mean.Energy /= n
	mean.Peak /= n

	fe.mu.Lock()
	fe.last = mean
	fe.mu.Unlock()

	return fitness / n
}

func (fe *FitnessEvaluator) score(r Retention) float64 {
	de := r.Energy - fe.EnergyTarget
	dp := r.Peak - fe.PeakTarget
	return de*de + dp*dp
}

// run measures retention of one impulse under cfg.
func (fe *FitnessEvaluator) run(cfg *config.Config, imp Impulse) (Retention, error) {
	sim, err := fluid.New(
		cfg.Grid.Width, cfg.Grid.Height,
		cfg.Derived.Diffusion32, cfg.Derived.Viscosity32, cfg.Derived.DT32,
		fluid.WithSolver(fluid.Solver{
			Iterations:      cfg.Fluid.Iterations,
			Tolerance:       float32(cfg.Fluid.Tolerance),
			IsolateChannels: cfg.Fluid.IsolateChannels,
		}),
	)
	if err != nil {
		return Retention{}, err
	}
	if err := imp.Apply(sim); err != nil {
		return Retention{}, fmt.Errorf("%s impulse: %w", imp.Name, err)
	}

	var buf []float32
	var dens []float64
	peak := func() float64 {
		m := 0.0
		for _, c := range fluid.Channels {
			buf = sim.CopyDensity(c, buf)
			dens = widen(dens, buf)
			m = math.Max(m, floats.Max(dens))
		}
		return m
	}

	sim.Step()
	e1, p1 := float64(sim.KineticEnergy()), peak()
	if e1 == 0 || p1 == 0 {
		return Retention{}, fmt.Errorf("%s impulse left no energy", imp.Name)
	}

	for i := 1; i < fe.steps; i++ {
		sim.Step()
	}
	return Retention{
		Energy: float64(sim.KineticEnergy()) / e1,
		Peak:   peak() / p1,
	}, nil
}

func widen(dst []float64, src []float32) []float64 {
	if cap(dst) < len(src) {
		dst = make([]float64, len(src))
	}
	dst = dst[:len(src)]
	for i, v := range src {
		dst[i] = float64(v)
	}
	return dst
}

// copyConfig returns a shallow copy of the base config. Only scalar fields
// are changed by ApplyToConfig, so shared slices are safe.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}
