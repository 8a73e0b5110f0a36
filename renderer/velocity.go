package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/pthm-cable/fluid/fluid"
	"github.com/pthm-cable/fluid/viewport"
)

// VelocityOverlay draws the velocity field as line segments sampled on a
// coarse lattice of cells.
type VelocityOverlay struct {
	Stride    int     // Cells between samples
	Scale     float32 // Pixels per unit of velocity
	MaxLength float32 // Clamp on segment length in pixels
	Color     rl.Color

	vx, vy []float32
}

// NewVelocityOverlay creates an overlay with default styling.
func NewVelocityOverlay() *VelocityOverlay {
	return &VelocityOverlay{
		Stride:    10,
		Scale:     2,
		MaxLength: 30,
		Color:     rl.Color{R: 255, G: 255, B: 255, A: 140},
	}
}

// Draw renders one segment per sampled cell, starting at the cell centre.
func (o *VelocityOverlay) Draw(sim *fluid.Simulation, vp *viewport.Viewport) {
	g := sim.Grid()
	o.vx, o.vy = sim.CopyVelocity(o.vx, o.vy)
	cw, ch := vp.CellSize()

	for y := o.Stride / 2; y < g.Height; y += o.Stride {
		for x := o.Stride / 2; x < g.Width; x += o.Stride {
			idx := g.Index(x, y)
			dx := o.vx[idx] * o.Scale
			dy := o.vy[idx] * o.Scale

			length := float32(math.Hypot(float64(dx), float64(dy)))
			if length < 0.5 {
				continue
			}
			if length > o.MaxLength {
				k := o.MaxLength / length
				dx *= k
				dy *= k
			}

			sx, sy := vp.GridToScreen(x, y)
			start := rl.Vector2{X: sx + cw/2, Y: sy + ch/2}
			end := rl.Vector2{X: start.X + dx, Y: start.Y + dy}
			rl.DrawLineV(start, end, o.Color)
			rl.DrawCircleV(end, 1.5, o.Color)
		}
	}
}
