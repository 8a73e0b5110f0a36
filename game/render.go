package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/fluid/ui"
)

// Draw renders the current frame.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	g.densityRenderer.Update(g.sim)
	g.densityRenderer.Draw(g.screenWidth, g.screenHeight)

	g.drawActiveOverlays()
	g.drawUI()

	rl.EndDrawing()
}

// drawUI renders the HUD, panels and help popup.
func (g *Game) drawUI() {
	sw, sh := int32(g.screenWidth), int32(g.screenHeight)
	color := g.palette.Current()

	g.hud.Draw(ui.HUDData{
		ColorName:      color.Name,
		Swatch:         rl.Color{R: color.R, G: color.G, B: color.B, A: 255},
		Tool:           g.tool.String(),
		Tick:           g.tick,
		StepsPerUpdate: g.stepsPerUpdate,
		FPS:            rl.GetFPS(),
		Paused:         g.paused,
		ScreenWidth:    sw,
		ScreenHeight:   sh,
	})

	g.controlsPanel.Draw(g.overlays)

	action := g.tuningPanel.Draw(&g.tuning, g.paused)
	g.applyTuning(action)

	g.help.Draw(sw, sh)
}

// applyTuning pushes slider values into the solver and handles buttons.
func (g *Game) applyTuning(action ui.TuningAction) {
	if g.sim.Diffusion() != g.tuning.Diffusion {
		g.sim.SetDiffusion(g.tuning.Diffusion)
	}
	if g.sim.Viscosity() != g.tuning.Viscosity {
		g.sim.SetViscosity(g.tuning.Viscosity)
	}
	if action.Reset {
		g.Reset()
	}
	if action.Pause {
		g.paused = !g.paused
	}
}

// layoutPanels anchors the panels to the current window size.
func (g *Game) layoutPanels() {
	sw, sh := int32(g.screenWidth), int32(g.screenHeight)

	x, y := ui.AnchorTopRight.Origin(sw, sh, 300, 0, 10)
	g.tuningPanel.SetPosition(x, y+30)

	x, y = ui.AnchorBottomRight.Origin(sw, sh, 260, 170, 10)
	g.statsPanel.SetPosition(x, y-20)

	x, y = ui.AnchorBottomLeft.Origin(sw, sh, 260, 160, 10)
	g.perfPanel.SetPosition(x, y-20)
}
