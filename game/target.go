package game

import (
	"github.com/pthm-cable/fluid/config"
	"github.com/pthm-cable/fluid/fluid"
	"github.com/pthm-cable/fluid/telemetry"
)

// countingTarget forwards injections to the simulation and counts the
// successful ones in the stats collector.
type countingTarget struct {
	sim       *fluid.Simulation
	collector *telemetry.Collector
}

func (t countingTarget) AddDensity(x, y int, amount float32, r, g, b uint8) error {
	if err := t.sim.AddDensity(x, y, amount, r, g, b); err != nil {
		return err
	}
	t.collector.RecordInjection(config.InjectDensity)
	return nil
}

func (t countingTarget) AddVelocity(x, y int, dx, dy float32) error {
	if err := t.sim.AddVelocity(x, y, dx, dy); err != nil {
		return err
	}
	t.collector.RecordInjection(config.InjectVelocity)
	return nil
}

func (t countingTarget) CreateExplosion(x, y int, power float32, r, g, b uint8) error {
	if err := t.sim.CreateExplosion(x, y, power, r, g, b); err != nil {
		return err
	}
	t.collector.RecordInjection(config.InjectExplosion)
	return nil
}

func (t countingTarget) Reset() {
	t.sim.Reset()
	t.collector.RecordInjection(config.InjectReset)
}
