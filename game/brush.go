package game

import "github.com/pthm-cable/fluid/viewport"

// brush tracks a left-button drag with the fluid tool.
type brush struct {
	velocityScale float32

	dragging     bool
	prevX, prevY int
}

// stroke is one drag segment resolved to the grid.
type stroke struct {
	X, Y   int     // Cell under the cursor
	DX, DY float32 // Velocity from the pixel delta
}

// begin starts a drag at pixel (sx, sy).
func (b *brush) begin(sx, sy int) {
	b.dragging = true
	b.prevX, b.prevY = sx, sy
}

// end stops the drag.
func (b *brush) end() {
	b.dragging = false
}

// move advances the drag to pixel (sx, sy). It reports a stroke only while
// dragging, when the cursor actually moved and lies inside the window.
func (b *brush) move(vp *viewport.Viewport, sx, sy int) (stroke, bool) {
	if !b.dragging || (sx == b.prevX && sy == b.prevY) {
		return stroke{}, false
	}

	dx := float32(sx-b.prevX) * b.velocityScale
	dy := float32(sy-b.prevY) * b.velocityScale
	b.prevX, b.prevY = sx, sy

	gx, gy, ok := vp.ScreenToGrid(sx, sy)
	if !ok {
		return stroke{}, false
	}
	return stroke{X: gx, Y: gy, DX: dx, DY: dy}, true
}
