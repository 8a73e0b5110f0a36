package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Renderer draws panel primitives with a shared Theme. Every Draw method
// returns the Y of the next line.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel draws a bordered panel background.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.Panel)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.Border)
}

func (r *Renderer) DrawSectionHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.HeaderSize, r.Theme.Header)
	return y + r.Theme.LineHeight
}

// DrawLabelValue draws "label:" with value aligned at LabelWidth.
func (r *Renderer) DrawLabelValue(x, y int32, label, value string) int32 {
	t := r.Theme
	rl.DrawText(label+":", x, y, t.TextSize, t.Label)
	rl.DrawText(value, x+t.LabelWidth, y, t.TextSize, t.Value)
	return y + t.LineHeight
}

// DrawLoadBar draws current out of max as a bar colored by how full it is,
// followed by the numbers.
func (r *Renderer) DrawLoadBar(x, y int32, label string, current, max float32, width int32) int32 {
	t := r.Theme
	ratio := barRatio(current, max)

	bx := x + t.LabelWidth
	bw := width - t.LabelWidth - 60

	rl.DrawText(label+":", x, y, t.TextSize, t.Label)
	rl.DrawRectangle(bx, y+3, bw, t.BarHeight, t.Track)
	rl.DrawRectangle(bx, y+3, int32(float32(bw)*ratio), t.BarHeight, t.Load[loadLevel(ratio)])
	rl.DrawText(fmt.Sprintf("%.0f/%.0f", current, max), bx+bw+5, y, t.TextSize, t.Value)
	return y + t.LineHeight + 2
}

// DrawColorSwatch draws "label:" followed by a filled square of c.
func (r *Renderer) DrawColorSwatch(x, y int32, label string, c rl.Color) int32 {
	t := r.Theme
	rl.DrawText(label+":", x, y, t.TextSize, t.Label)
	rl.DrawRectangle(x+t.LabelWidth, y+1, 12, 12, c)
	rl.DrawRectangleLines(x+t.LabelWidth, y+1, 12, 12, t.Border)
	return y + t.LineHeight
}

// barRatio clamps current/limit into [0, 1].
func barRatio(current, limit float32) float32 {
	if limit <= 0 {
		return 0
	}
	return min(max(current/limit, 0), 1)
}

// loadLevel picks the Theme.Load entry for a fill ratio.
func loadLevel(ratio float32) int {
	switch {
	case ratio >= 0.9:
		return 2
	case ratio >= 0.6:
		return 1
	default:
		return 0
	}
}
