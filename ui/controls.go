package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/pthm-cable/fluid/fluid"
)

// ControlsPanel lists the overlay toggles and their keys.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewControlsPanel creates a hidden controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Draw renders the overlay list grouped by heading and returns the Y
// below it.
func (c *ControlsPanel) Draw(overlays *OverlayRegistry) int32 {
	if !c.visible {
		return c.y
	}

	r := c.renderer
	pad := r.Theme.Padding
	line := r.Theme.LineHeight

	groups := overlays.Groups()
	rows := int32(len(groups) + len(overlays.Overlays()))
	r.DrawPanel(c.x, c.y, c.width, rows*line+line+pad*3)

	y := c.y + pad
	rl.DrawText("Overlays", c.x+pad, y, 16, rl.White)
	y += line + 4

	for _, g := range groups {
		y = r.DrawSectionHeader(c.x+pad, y, g.String())
		for _, o := range overlays.Group(g) {
			c.drawRow(c.x+pad, y, c.width-pad*2, o, overlays.On(o.ID))
			y += line
		}
		y += 4
	}
	return y
}

// drawRow draws a status dot, the overlay label and its key right-aligned.
func (c *ControlsPanel) drawRow(x, y, width int32, o Overlay, on bool) {
	t := c.renderer.Theme

	dot, text := t.Muted, t.Label
	if on {
		dot, text = t.Load[0], rl.White
	}
	rl.DrawRectangle(x, y+2, 8, 8, dot)
	rl.DrawText(o.Label, x+14, y, t.TextSize, text)

	if key := o.KeyLabel(); key != "" {
		key = "[" + key + "]"
		rl.DrawText(key, x+width-rl.MeasureText(key, t.TextSize), y, t.TextSize, t.Value)
	}
}

// StatsPanel renders the diagnostics of the current field.
type StatsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewStatsPanel creates a new field stats panel.
func NewStatsPanel(x, y, width int32) *StatsPanel {
	return &StatsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (s *StatsPanel) SetPosition(x, y int32) {
	s.x = x
	s.y = y
}

// Draw renders d. maxSweeps is the most sweeps one step can take.
func (s *StatsPanel) Draw(d fluid.Diagnostics, maxSweeps int) int32 {
	r := s.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight
	inner := s.width - padding*2

	panelHeight := lineHeight*9 + padding*2 + 4
	r.DrawPanel(s.x, s.y, s.width, panelHeight)

	x := s.x + padding
	y := s.y + padding

	rl.DrawText("Field Stats", x, y, 14, rl.White)
	y += lineHeight + 2

	for _, c := range fluid.Channels {
		y = r.DrawLabelValue(x, y, "Mass "+c.String(), fmt.Sprintf("%.1f", d.Mass[c]))
	}
	y = r.DrawLabelValue(x, y, "Energy", fmt.Sprintf("%.3f", d.KineticEnergy))
	y = r.DrawLabelValue(x, y, "Max speed", fmt.Sprintf("%.3f", d.MaxSpeed))
	y = r.DrawLabelValue(x, y, "Div pre/post", fmt.Sprintf("%.2e / %.2e", d.DivergencePre, d.DivergencePost))
	y = r.DrawLoadBar(x, y, "Sweeps", float32(d.SweepsLastStep), float32(maxSweeps), inner)
	return y
}
