package fluid

import "math"

// DefaultIterations is the fixed Gauss-Seidel sweep count used by both the
// diffusion and the pressure solve.
const DefaultIterations = 20

// Solver tunes the elliptic solves. The zero Tolerance keeps the cost of a
// step fixed at Iterations sweeps per solve.
type Solver struct {
	// Iterations caps the number of relaxation sweeps per solve.
	Iterations int
	// Tolerance, when positive, ends a solve early once the largest
	// per-cell update of a sweep drops below it.
	Tolerance float32
	// IsolateChannels zeroes the shared density scratch buffer before each
	// color channel is diffused instead of carrying over the previous
	// channel's solution as the initial guess.
	IsolateChannels bool
}

// DefaultSolver returns the fixed-cost configuration.
func DefaultSolver() Solver {
	return Solver{Iterations: DefaultIterations}
}

// relax runs Gauss-Seidel sweeps of x = (x0 + a·Σneighbours) / c over the
// interior, rebuilding boundaries with kind k after every sweep. Returns the
// number of sweeps performed.
//
// Sweep order is x outer, y inner; it determines which neighbours are
// already updated and therefore the exact result.
func (s *Simulation) relax(k Kind, x, x0 []float32, a, c float32) int {
	g := s.grid
	w := g.Width
	tol := s.solver.Tolerance

	sweeps := 0
	for sweeps < s.solver.Iterations {
		var maxDelta float32
		for i := 1; i < g.Width-1; i++ {
			for j := 1; j < g.Height-1; j++ {
				idx := g.Index(i, j)
				v := (x0[idx] + a*(x[idx+1]+x[idx-1]+x[idx+w]+x[idx-w])) / c
				if tol > 0 {
					d := v - x[idx]
					if d < 0 {
						d = -d
					}
					if d > maxDelta {
						maxDelta = d
					}
				}
				x[idx] = v
			}
		}
		g.setBoundary(k, x)
		sweeps++

		if tol > 0 && maxDelta < tol {
			break
		}
	}
	s.sweeps += sweeps
	return sweeps
}

// diffuse solves (I − a·Δ)x = x0 with a = dt·rate·(w−2)·(h−2).
func (s *Simulation) diffuse(k Kind, x, x0 []float32, rate float32) {
	a := s.dt * rate * float32(s.grid.Width-2) * float32(s.grid.Height-2)
	s.relax(k, x, x0, a, 1+4*a)
}

// divergenceAt returns the scaled central-difference divergence at interior
// index i. Both axes are scaled by the grid width.
func (s *Simulation) divergenceAt(vx, vy []float32, i int) float32 {
	w := s.grid.Width
	return -0.5 * (vx[i+1] - vx[i-1] + vy[i+w] - vy[i-w]) / float32(w)
}

// project removes the gradient part of (vx, vy) using p and div as scratch,
// leaving an approximately divergence-free field.
func (s *Simulation) project(vx, vy, p, div []float32) {
	g := s.grid
	w := g.Width
	scale := float32(w)

	for i := 1; i < g.Width-1; i++ {
		for j := 1; j < g.Height-1; j++ {
			idx := g.Index(i, j)
			div[idx] = s.divergenceAt(vx, vy, idx)
			p[idx] = 0
		}
	}
	g.setBoundary(Density, div)
	g.setBoundary(Density, p)

	s.relax(Density, p, div, 1, 4)

	for i := 1; i < g.Width-1; i++ {
		for j := 1; j < g.Height-1; j++ {
			idx := g.Index(i, j)
			vx[idx] -= 0.5 * (p[idx+1] - p[idx-1]) * scale
			vy[idx] -= 0.5 * (p[idx+w] - p[idx-w]) * scale
		}
	}
	g.setBoundary(VelocityX, vx)
	g.setBoundary(VelocityY, vy)
}

// advect transports d0 into d along (vx, vy) by tracing each interior cell
// backwards one timestep and bilinearly sampling d0 at the source point.
func (s *Simulation) advect(k Kind, d, d0, vx, vy []float32) {
	g := s.grid
	dtx := s.dt * float32(g.Width-2)
	dty := s.dt * float32(g.Height-2)
	maxX := float32(g.Width) - 1.5
	maxY := float32(g.Height) - 1.5

	for i := 1; i < g.Width-1; i++ {
		for j := 1; j < g.Height-1; j++ {
			idx := g.Index(i, j)
			x := float32(i) - dtx*vx[idx]
			y := float32(j) - dty*vy[idx]

			// Clamping keeps all four interpolation corners on the grid.
			x = min(max(x, 0.5), maxX)
			y = min(max(y, 0.5), maxY)

			fx := float32(math.Floor(float64(x)))
			fy := float32(math.Floor(float64(y)))
			s1 := x - fx
			s0 := 1 - s1
			t1 := y - fy
			t0 := 1 - t1

			i0, j0 := int(fx), int(fy)
			i1, j1 := i0+1, j0+1

			d[idx] = s0*(t0*d0[g.Index(i0, j0)]+t1*d0[g.Index(i0, j1)]) +
				s1*(t0*d0[g.Index(i1, j0)]+t1*d0[g.Index(i1, j1)])
		}
	}
	g.setBoundary(k, d)
}
