package fluid

import (
	"math"

	"gonum.org/v1/gonum/blas/blas32"
)

// Diagnostics summarises the current state for telemetry.
type Diagnostics struct {
	Mass           [numChannels]float32
	KineticEnergy  float32
	MaxSpeed       float32
	DivergencePre  float32 // interior L2 divergence fed to the last projection
	DivergencePost float32 // interior L2 divergence of the current velocity
	SweepsLastStep int
}

func vec(data []float32) blas32.Vector {
	return blas32.Vector{N: len(data), Inc: 1, Data: data}
}

// Mass returns the sum of absolute values of channel c.
func (s *Simulation) Mass(c Channel) float32 {
	return blas32.Asum(vec(s.density[c]))
}

// KineticEnergy returns ½·Σ(vx² + vy²) over the whole grid.
func (s *Simulation) KineticEnergy() float32 {
	x, y := vec(s.vx), vec(s.vy)
	return 0.5 * (blas32.Dot(x, x) + blas32.Dot(y, y))
}

// MaxSpeed returns the largest velocity magnitude on the grid.
func (s *Simulation) MaxSpeed() float32 {
	var best float32
	for i := range s.vx {
		sq := s.vx[i]*s.vx[i] + s.vy[i]*s.vy[i]
		if sq > best {
			best = sq
		}
	}
	return float32(math.Sqrt(float64(best)))
}

// DivergenceNorm returns the interior L2 norm of the divergence of the
// current velocity field, using the same stencil as the projection.
func (s *Simulation) DivergenceNorm() float32 {
	return s.divergenceNorm(s.vx, s.vy)
}

func (s *Simulation) divergenceNorm(vx, vy []float32) float32 {
	g := s.grid
	clear(s.probe)
	for j := 1; j < g.Height-1; j++ {
		for i := 1; i < g.Width-1; i++ {
			idx := g.Index(i, j)
			s.probe[idx] = s.divergenceAt(vx, vy, idx)
		}
	}
	return s.interiorNorm(s.probe)
}

// interiorNorm is the L2 norm of f restricted to interior cells.
func (s *Simulation) interiorNorm(f []float32) float32 {
	g := s.grid
	var sum float64
	for j := 1; j < g.Height-1; j++ {
		row := f[g.Index(1, j):g.Index(g.Width-1, j)]
		n := float64(blas32.Nrm2(vec(row)))
		sum += n * n
	}
	return float32(math.Sqrt(sum))
}

// Diagnostics collects mass, energy and divergence figures. DivergencePre is
// read from the projection scratch buffer, so it describes the input of the
// final projection of the last Step.
func (s *Simulation) Diagnostics() Diagnostics {
	d := Diagnostics{
		KineticEnergy:  s.KineticEnergy(),
		MaxSpeed:       s.MaxSpeed(),
		DivergencePre:  s.interiorNorm(s.div),
		DivergencePost: s.DivergenceNorm(),
		SweepsLastStep: s.sweeps,
	}
	for _, c := range Channels {
		d.Mass[c] = s.Mass(c)
	}
	return d
}
