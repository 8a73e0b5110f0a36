package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/pthm-cable/fluid/controls"
)

// handleInput processes keyboard and mouse input for one frame.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) {
		g.stepsPerUpdate = clampSteps(g.stepsPerUpdate - 1)
	}
	if rl.IsKeyPressed(rl.KeyPeriod) {
		g.stepsPerUpdate = clampSteps(g.stepsPerUpdate + 1)
	}

	if rl.IsKeyPressed(rl.KeyT) {
		g.tool = g.tool.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyC) {
		g.Reset()
	}
	if rl.IsKeyPressed(rl.KeyH) {
		g.help.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyF1) {
		g.tuningPanel.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyO) {
		g.controlsPanel.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyS) {
		g.saveSnapshot(nil)
	}

	g.handleOverlayKeys()
	g.handleMouse()
}

// handleMouse applies the current tool.
func (g *Game) handleMouse() {
	mouse := rl.GetMousePosition()
	sx, sy := int(mouse.X), int(mouse.Y)
	color := g.palette.Current()

	if rl.IsMouseButtonPressed(rl.MouseButtonRight) {
		g.palette.Cycle()
	}

	if rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
		g.brush.end()
	}

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) && !g.tuningPanel.Contains(int32(sx), int32(sy)) {
		switch g.tool {
		case controls.ToolExplosion:
			gx, gy, ok := g.viewport.ScreenToGrid(sx, sy)
			if !ok {
				return
			}
			if err := g.target().CreateExplosion(gx, gy, g.tuning.ExplosionPower, color.R, color.G, color.B); err != nil {
				slog.Warn("explosion rejected", "x", gx, "y", gy, "error", err)
			}
		default:
			g.brush.begin(sx, sy)
		}
	}

	st, ok := g.brush.move(g.viewport, sx, sy)
	if !ok {
		return
	}
	t := g.target()
	if err := t.AddDensity(st.X, st.Y, g.tuning.BrushDensity, color.R, color.G, color.B); err != nil {
		slog.Warn("density rejected", "x", st.X, "y", st.Y, "error", err)
	}
	if err := t.AddVelocity(st.X, st.Y, st.DX, st.DY); err != nil {
		slog.Warn("velocity rejected", "x", st.X, "y", st.Y, "error", err)
	}
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h

	g.viewport.Resize(int(w), int(h))
	g.layoutPanels()
}
