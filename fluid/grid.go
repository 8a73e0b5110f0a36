// Package fluid implements a fixed-grid stable-fluids solver.
//
// A Simulation advances a 2D velocity field and three density channels
// (red, green, blue) one timestep at a time using implicit diffusion,
// pressure projection and semi-Lagrangian advection. Every field is a flat
// float32 buffer addressed by Grid.Index; edge and corner cells are always
// reconstructed from the interior and never written directly by a solver.
package fluid

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCoordinate is returned when an injection targets a cell
	// outside [0,width)×[0,height).
	ErrInvalidCoordinate = errors.New("fluid: invalid coordinate")

	// ErrAllocation is returned when the field buffers cannot be allocated
	// for the requested dimensions.
	ErrAllocation = errors.New("fluid: allocation failed")
)

// MinDimension is the smallest width or height with at least one interior cell.
const MinDimension = 3

// Grid holds the fixed dimensions shared by every field of a simulation.
type Grid struct {
	Width, Height int
}

// Index maps (x, y) to a buffer position. No bounds check; solver loops only.
func (g Grid) Index(x, y int) int {
	return x + y*g.Width
}

// Cells returns the number of cells in one field buffer.
func (g Grid) Cells() int {
	return g.Width * g.Height
}

// InBounds reports whether (x, y) lies in [0,width)×[0,height).
func (g Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// Checked maps (x, y) to a buffer position, failing with ErrInvalidCoordinate
// when the cell is out of range.
func (g Grid) Checked(x, y int) (int, error) {
	if !g.InBounds(x, y) {
		return 0, fmt.Errorf("%w: (%d, %d) outside %dx%d grid", ErrInvalidCoordinate, x, y, g.Width, g.Height)
	}
	return g.Index(x, y), nil
}

// validate checks that the grid has an interior and that its cell count
// fits in an int.
func (g Grid) validate() error {
	if g.Width < MinDimension || g.Height < MinDimension {
		return fmt.Errorf("%w: grid %dx%d smaller than %dx%d", ErrAllocation, g.Width, g.Height, MinDimension, MinDimension)
	}
	cells := g.Width * g.Height
	if cells/g.Width != g.Height || cells*numBuffers/numBuffers != cells {
		return fmt.Errorf("%w: grid %dx%d overflows buffer size", ErrAllocation, g.Width, g.Height)
	}
	return nil
}
