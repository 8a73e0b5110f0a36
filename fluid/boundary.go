package fluid

// Kind selects the solid-wall reflection rule applied to a field's edges.
type Kind uint8

const (
	// Density covers scalar fields (color channels, pressure, divergence):
	// every edge mirrors its interior neighbour.
	Density Kind = iota
	// VelocityX negates across the left and right walls.
	VelocityX
	// VelocityY negates across the top and bottom walls.
	VelocityY
)

func (k Kind) String() string {
	switch k {
	case Density:
		return "density"
	case VelocityX:
		return "velocity_x"
	case VelocityY:
		return "velocity_y"
	default:
		return "unknown"
	}
}

// setBoundary rebuilds the four edges of f from the adjacent interior
// row/column, then each corner as the mean of its two edge neighbours.
func (g Grid) setBoundary(k Kind, f []float32) {
	w, h := g.Width, g.Height

	for x := 1; x < w-1; x++ {
		top, bottom := f[g.Index(x, 1)], f[g.Index(x, h-2)]
		if k == VelocityY {
			top, bottom = -top, -bottom
		}
		f[g.Index(x, 0)] = top
		f[g.Index(x, h-1)] = bottom
	}
	for y := 1; y < h-1; y++ {
		left, right := f[g.Index(1, y)], f[g.Index(w-2, y)]
		if k == VelocityX {
			left, right = -left, -right
		}
		f[g.Index(0, y)] = left
		f[g.Index(w-1, y)] = right
	}

	f[g.Index(0, 0)] = 0.5 * (f[g.Index(1, 0)] + f[g.Index(0, 1)])
	f[g.Index(0, h-1)] = 0.5 * (f[g.Index(1, h-1)] + f[g.Index(0, h-2)])
	f[g.Index(w-1, 0)] = 0.5 * (f[g.Index(w-2, 0)] + f[g.Index(w-1, 1)])
	f[g.Index(w-1, h-1)] = 0.5 * (f[g.Index(w-2, h-1)] + f[g.Index(w-1, h-2)])
}
