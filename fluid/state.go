package fluid

import (
	"errors"
	"fmt"
)

// ErrStateMismatch is returned by Restore when a State does not fit the grid.
var ErrStateMismatch = errors.New("fluid: state does not match grid")

// State is a copy of every field that carries over between steps.
// Restoring it and stepping reproduces the uninterrupted run exactly.
type State struct {
	Width   int          `json:"width"`
	Height  int          `json:"height"`
	Steps   int64        `json:"steps"`
	Density [3][]float32 `json:"density"`
	VX      []float32    `json:"vx"`
	VY      []float32    `json:"vy"`
	PrevX   []float32    `json:"prev_x"`
	PrevY   []float32    `json:"prev_y"`
}

// State returns a deep copy of the persistent fields.
func (s *Simulation) State() State {
	st := State{
		Width:  s.grid.Width,
		Height: s.grid.Height,
		Steps:  s.steps,
		VX:     copyInto(nil, s.vx),
		VY:     copyInto(nil, s.vy),
		PrevX:  copyInto(nil, s.prevX),
		PrevY:  copyInto(nil, s.prevY),
	}
	for _, c := range Channels {
		st.Density[c] = copyInto(nil, s.density[c])
	}
	return st
}

// Restore replaces the persistent fields with st. Scratch buffers are
// zeroed. The simulation is left unchanged on error.
func (s *Simulation) Restore(st State) error {
	if st.Width != s.grid.Width || st.Height != s.grid.Height {
		return fmt.Errorf("%w: state %dx%d, grid %dx%d", ErrStateMismatch, st.Width, st.Height, s.grid.Width, s.grid.Height)
	}
	n := s.grid.Cells()
	fields := [][]float32{st.Density[Red], st.Density[Green], st.Density[Blue], st.VX, st.VY, st.PrevX, st.PrevY}
	for _, f := range fields {
		if len(f) != n {
			return fmt.Errorf("%w: field has %d cells, want %d", ErrStateMismatch, len(f), n)
		}
	}

	clear(s.slab)
	for _, c := range Channels {
		copy(s.density[c], st.Density[c])
	}
	copy(s.vx, st.VX)
	copy(s.vy, st.VY)
	copy(s.prevX, st.PrevX)
	copy(s.prevY, st.PrevY)
	s.steps = st.Steps
	s.sweeps = 0
	return nil
}
