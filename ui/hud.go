package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/pthm-cable/fluid/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	ColorName      string
	Swatch         rl.Color
	Tool           string
	Tick           int64
	StepsPerUpdate int
	FPS            int32
	Paused         bool
	ScreenWidth    int32
	ScreenHeight   int32
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
	fontSize int32
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
		fontSize: 20,
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	colorText := "Color: " + data.ColorName
	rl.DrawText(colorText, 10, 10, h.fontSize, rl.White)
	swatchX := 10 + rl.MeasureText(colorText, h.fontSize) + 8
	rl.DrawRectangle(swatchX, 12, 16, 16, data.Swatch)
	rl.DrawRectangleLines(swatchX, 12, 16, 16, rl.White)

	rl.DrawText("Tool: "+data.Tool, 10, 40, h.fontSize, rl.White)
	rl.DrawText("Help (H)", data.ScreenWidth-100, 10, h.fontSize, rl.White)

	statusText := fmt.Sprintf("Tick: %d | Steps/frame: %d | FPS: %d", data.Tick, data.StepsPerUpdate, data.FPS)
	rl.DrawText(statusText, 10, data.ScreenHeight-25, 14, rl.LightGray)
	if data.Paused {
		rl.DrawText("PAUSED", 10, 70, h.fontSize, rl.Yellow)
	}
}

// PerfPanel renders the solver phase timings.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the tick rate and one load bar per solver phase, filled by
// the phase's share of the tick.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	r := p.renderer
	t := r.Theme
	const width = 260
	r.DrawPanel(p.x, p.y, width, int32(len(telemetry.Phases)+2)*(t.LineHeight+2)+t.Padding*2)

	x := p.x + t.Padding
	y := r.DrawSectionHeader(x, p.y+t.Padding, "Solver Timing")
	y = r.DrawLabelValue(x, y, "Tick", fmt.Sprintf("%s  %.0f/s",
		stats.AvgTickDuration.Round(time.Microsecond), stats.TicksPerSecond))

	for _, name := range telemetry.Phases {
		if _, ok := stats.PhaseAvg[name]; !ok {
			continue
		}
		y = r.DrawLoadBar(x, y, name, float32(stats.PhasePct[name]), 100, width-t.Padding*2)
	}
}
