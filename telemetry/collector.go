package telemetry

import (
	"github.com/pthm-cable/fluid/config"
	"github.com/pthm-cable/fluid/fluid"
)

// Collector accumulates per-tick diagnostics and injection events within
// time windows and produces WindowStats.
type Collector struct {
	windowDurationTicks int64
	dt                  float32

	// Current window tracking
	windowStartTick int64

	// Per-tick samples for the current window
	energy     []float64
	divergence []float64
	sweeps     []float64
	maxSpeed   float64

	// Event counters for current window
	densities  int
	velocities int
	explosions int
	resets     int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	ticksPerWindow := int64(windowDurationSec / float64(dt))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
		energy:              make([]float64, 0, ticksPerWindow),
		divergence:          make([]float64, 0, ticksPerWindow),
		sweeps:              make([]float64, 0, ticksPerWindow),
	}
}

// RecordInjection counts one injection of the given kind
// (config.InjectDensity, InjectVelocity, InjectExplosion or InjectReset).
func (c *Collector) RecordInjection(kind string) {
	switch kind {
	case config.InjectDensity:
		c.densities++
	case config.InjectVelocity:
		c.velocities++
	case config.InjectExplosion:
		c.explosions++
	case config.InjectReset:
		c.resets++
	}
}

// RecordTick samples the diagnostics of a completed step.
func (c *Collector) RecordTick(d fluid.Diagnostics) {
	c.energy = append(c.energy, float64(d.KineticEnergy))
	c.divergence = append(c.divergence, float64(d.DivergencePost))
	c.sweeps = append(c.sweeps, float64(d.SweepsLastStep))
	if s := float64(d.MaxSpeed); s > c.maxSpeed {
		c.maxSpeed = s
	}
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int64) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats from the window samples and the diagnostics
// at window end, then resets for the next window.
func (c *Collector) Flush(currentTick int64, end fluid.Diagnostics) WindowStats {
	energy := ComputeSeriesStats(c.energy)
	div := ComputeSeriesStats(c.divergence)
	sweeps := ComputeSeriesStats(c.sweeps)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * float64(c.dt),

		MassRed:   float64(end.Mass[fluid.Red]),
		MassGreen: float64(end.Mass[fluid.Green]),
		MassBlue:  float64(end.Mass[fluid.Blue]),

		EnergyEnd:  float64(end.KineticEnergy),
		EnergyMean: energy.Mean,
		EnergyMax:  energy.Max,
		MaxSpeed:   c.maxSpeed,

		DivergenceMean: div.Mean,
		DivergenceP50:  div.P50,
		DivergenceP90:  div.P90,
		DivergenceMax:  div.Max,
		DivergencePre:  float64(end.DivergencePre),

		SweepsMean: sweeps.Mean,

		Densities:  c.densities,
		Velocities: c.velocities,
		Explosions: c.explosions,
		Resets:     c.resets,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.energy = c.energy[:0]
	c.divergence = c.divergence[:0]
	c.sweeps = c.sweeps[:0]
	c.maxSpeed = 0
	c.densities = 0
	c.velocities = 0
	c.explosions = 0
	c.resets = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int64 {
	return c.windowDurationTicks
}
