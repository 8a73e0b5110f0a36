package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/fluid/ui"
)

// handleOverlayKeys toggles overlays bound to pressed keys.
func (g *Game) handleOverlayKeys() {
	for _, o := range g.overlays.Overlays() {
		if o.Key == 0 || !rl.IsKeyPressed(o.Key) {
			continue
		}
		on := g.overlays.Toggle(o.ID)
		slog.Debug("overlay toggled", "overlay", string(o.ID), "on", on)

		if o.ID == ui.OverlaySmooth {
			g.densityRenderer.SetSmooth(on)
		}
	}
}

// drawActiveOverlays renders every enabled overlay.
func (g *Game) drawActiveOverlays() {
	if g.overlays.On(ui.OverlayVelocity) {
		g.velocityOverlay.Draw(g.sim, g.viewport)
	}
	if g.overlays.On(ui.OverlayStats) {
		g.statsPanel.Draw(g.sim.Diagnostics(), g.maxSweeps())
	}
	if g.overlays.On(ui.OverlayPerf) {
		g.perfPanel.Draw(g.perfCollector.Stats())
	}
}

// maxSweeps is the sweep count of a step where no solve exits early:
// two velocity diffusions, two projections and three density diffusions.
func (g *Game) maxSweeps() int {
	return 7 * g.sim.Solver().Iterations
}
