package game

import (
	"log/slog"

	"github.com/pthm-cable/fluid/fluid"
)

// logRunSummary logs the final field diagnostics at shutdown.
func (g *Game) logRunSummary() {
	d := g.sim.Diagnostics()
	grid := g.sim.Grid()

	slog.Info("simulation finished",
		"tick", g.tick,
		"grid_w", grid.Width,
		"grid_h", grid.Height,
		"mass_red", d.Mass[fluid.Red],
		"mass_green", d.Mass[fluid.Green],
		"mass_blue", d.Mass[fluid.Blue],
		"kinetic_energy", d.KineticEnergy,
		"max_speed", d.MaxSpeed,
		"divergence", d.DivergencePost,
		"windows", g.history.Len(),
	)
}
