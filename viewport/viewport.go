// Package viewport maps between window pixels and simulation grid cells.
package viewport

// Viewport stretches a fixed grid over the whole window.
// The grid never pans or zooms; only the window size changes.
type Viewport struct {
	// Window dimensions in pixels
	ScreenW, ScreenH int

	// Grid dimensions in cells
	GridW, GridH int
}

// New creates a viewport for a grid of gridW×gridH cells drawn into a
// screenW×screenH window.
func New(screenW, screenH, gridW, gridH int) *Viewport {
	return &Viewport{
		ScreenW: screenW,
		ScreenH: screenH,
		GridW:   gridW,
		GridH:   gridH,
	}
}

// ScreenToGrid converts a pixel position to the cell under it using integer
// scaling (sx·gridW / screenW). ok is false when the pixel lies outside the
// window, e.g. while a drag continues past its edge.
func (v *Viewport) ScreenToGrid(sx, sy int) (gx, gy int, ok bool) {
	if sx < 0 || sy < 0 || sx >= v.ScreenW || sy >= v.ScreenH {
		return 0, 0, false
	}
	return sx * v.GridW / v.ScreenW, sy * v.GridH / v.ScreenH, true
}

// GridToScreen returns the top-left pixel of cell (gx, gy).
func (v *Viewport) GridToScreen(gx, gy int) (sx, sy float32) {
	cw, ch := v.CellSize()
	return float32(gx) * cw, float32(gy) * ch
}

// CellSize returns the on-screen size of one cell.
func (v *Viewport) CellSize() (w, h float32) {
	return float32(v.ScreenW) / float32(v.GridW), float32(v.ScreenH) / float32(v.GridH)
}

// Scale converts a pixel delta to the equivalent delta in cells.
func (v *Viewport) Scale(dx, dy float32) (gx, gy float32) {
	cw, ch := v.CellSize()
	return dx / cw, dy / ch
}

// Resize updates the window dimensions. Non-positive sizes are ignored,
// which happens while a window is minimised.
func (v *Viewport) Resize(screenW, screenH int) {
	if screenW <= 0 || screenH <= 0 {
		return
	}
	v.ScreenW = screenW
	v.ScreenH = screenH
}
