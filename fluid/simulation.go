package fluid

import "fmt"

// Channel identifies one of the three density (color) fields.
type Channel int

const (
	Red Channel = iota
	Green
	Blue
	numChannels
)

func (c Channel) String() string {
	switch c {
	case Red:
		return "red"
	case Green:
		return "green"
	case Blue:
		return "blue"
	default:
		return "unknown"
	}
}

// Channels lists the density channels in processing order.
var Channels = [numChannels]Channel{Red, Green, Blue}

// Phase names reported to a PhaseTimer during Step.
const (
	PhaseDiffuseVelocity = "diffuse_velocity"
	PhaseProject         = "project"
	PhaseAdvectVelocity  = "advect_velocity"
	PhaseDensity         = "density"
)

// PhaseTimer receives a call at the start of each solver stage.
// telemetry.PerfCollector satisfies it.
type PhaseTimer interface {
	StartPhase(phase string)
}

// numBuffers is the count of field buffers carved out of one allocation:
// three densities, velocity, previous velocity, density scratch, pressure,
// divergence and the divergence probe used by diagnostics.
const numBuffers = 11

// Simulation owns every field buffer of one fluid instance. It is not safe
// for concurrent use.
type Simulation struct {
	grid      Grid
	dt        float32
	diffusion float32
	viscosity float32
	solver    Solver
	timer     PhaseTimer

	// slab backs every buffer below so Reset is a single clear.
	slab []float32

	density      [numChannels][]float32
	vx, vy       []float32
	prevX, prevY []float32
	scratch      []float32
	pressure     []float32
	div          []float32
	probe        []float32

	steps  int64
	sweeps int
}

// Option configures a Simulation at construction.
type Option func(*Simulation)

// WithSolver replaces the default fixed-iteration solver settings.
func WithSolver(cfg Solver) Option {
	return func(s *Simulation) {
		if cfg.Iterations < 1 {
			cfg.Iterations = DefaultIterations
		}
		s.solver = cfg
	}
}

// WithPhaseTimer reports solver stages to t during Step.
func WithPhaseTimer(t PhaseTimer) Option {
	return func(s *Simulation) {
		s.timer = t
	}
}

// New allocates a width×height simulation with every field zeroed.
// diffusion applies to the density channels and viscosity to velocity; dt is
// the fixed timestep.
func New(width, height int, diffusion, viscosity, dt float32, opts ...Option) (sim *Simulation, err error) {
	g := Grid{Width: width, Height: height}
	if err := g.validate(); err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			sim = nil
			err = fmt.Errorf("%w: %dx%d: %v", ErrAllocation, width, height, r)
		}
	}()

	s := &Simulation{
		grid:      g,
		dt:        dt,
		diffusion: diffusion,
		viscosity: viscosity,
		solver:    DefaultSolver(),
	}
	for _, opt := range opts {
		opt(s)
	}

	n := g.Cells()
	s.slab = make([]float32, n*numBuffers)
	next := 0
	carve := func() []float32 {
		b := s.slab[next : next+n : next+n]
		next += n
		return b
	}
	for c := range s.density {
		s.density[c] = carve()
	}
	s.vx, s.vy = carve(), carve()
	s.prevX, s.prevY = carve(), carve()
	s.scratch = carve()
	s.pressure = carve()
	s.div = carve()
	s.probe = carve()

	return s, nil
}

// Grid returns the simulation dimensions.
func (s *Simulation) Grid() Grid { return s.grid }

// Timestep returns dt.
func (s *Simulation) Timestep() float32 { return s.dt }

// Diffusion returns the density diffusion rate.
func (s *Simulation) Diffusion() float32 { return s.diffusion }

// Viscosity returns the velocity diffusion rate.
func (s *Simulation) Viscosity() float32 { return s.viscosity }

// SetDiffusion changes the density diffusion rate for subsequent steps.
func (s *Simulation) SetDiffusion(rate float32) { s.diffusion = rate }

// SetViscosity changes the velocity diffusion rate for subsequent steps.
func (s *Simulation) SetViscosity(rate float32) { s.viscosity = rate }

// Solver returns the active solver settings.
func (s *Simulation) Solver() Solver { return s.solver }

// Steps returns the number of completed steps since construction or Reset.
func (s *Simulation) Steps() int64 { return s.steps }

// Sweeps returns the relaxation sweeps performed by the last Step.
func (s *Simulation) Sweeps() int { return s.sweeps }

func (s *Simulation) phase(name string) {
	if s.timer != nil {
		s.timer.StartPhase(name)
	}
}

// Step advances the simulation by one timestep:
// diffuse velocity, project, self-advect velocity, project, then diffuse and
// advect each density channel through the updated velocity.
func (s *Simulation) Step() {
	s.sweeps = 0

	s.phase(PhaseDiffuseVelocity)
	s.diffuse(VelocityX, s.prevX, s.vx, s.viscosity)
	s.diffuse(VelocityY, s.prevY, s.vy, s.viscosity)

	s.phase(PhaseProject)
	s.project(s.prevX, s.prevY, s.pressure, s.div)

	s.phase(PhaseAdvectVelocity)
	s.advect(VelocityX, s.vx, s.prevX, s.prevX, s.prevY)
	s.advect(VelocityY, s.vy, s.prevY, s.prevX, s.prevY)

	s.phase(PhaseProject)
	s.project(s.vx, s.vy, s.pressure, s.div)

	s.phase(PhaseDensity)
	// The scratch buffer starts each step zeroed but is shared by the three
	// channels unless IsolateChannels is set.
	clear(s.scratch)
	for _, ch := range Channels {
		if s.solver.IsolateChannels {
			clear(s.scratch)
		}
		s.diffuse(Density, s.scratch, s.density[ch], s.diffusion)
		s.advect(Density, s.density[ch], s.scratch, s.vx, s.vy)
	}

	s.steps++
}

// Reset zeroes every field, scratch buffers included. Dimensions and
// parameters are unchanged.
func (s *Simulation) Reset() {
	clear(s.slab)
	s.steps = 0
	s.sweeps = 0
}

// DensityAt returns channel c at (x, y).
func (s *Simulation) DensityAt(c Channel, x, y int) (float32, error) {
	idx, err := s.grid.Checked(x, y)
	if err != nil {
		return 0, err
	}
	return s.density[c][idx], nil
}

// VelocityAt returns the velocity components at (x, y).
func (s *Simulation) VelocityAt(x, y int) (vx, vy float32, err error) {
	idx, err := s.grid.Checked(x, y)
	if err != nil {
		return 0, 0, err
	}
	return s.vx[idx], s.vy[idx], nil
}

// CopyDensity copies channel c into dst, growing it if needed, and returns it.
func (s *Simulation) CopyDensity(c Channel, dst []float32) []float32 {
	return copyInto(dst, s.density[c])
}

// CopyVelocity copies both velocity components into dstX and dstY.
func (s *Simulation) CopyVelocity(dstX, dstY []float32) ([]float32, []float32) {
	return copyInto(dstX, s.vx), copyInto(dstY, s.vy)
}

func copyInto(dst, src []float32) []float32 {
	if cap(dst) < len(src) {
		dst = make([]float32, len(src))
	}
	dst = dst[:len(src)]
	copy(dst, src)
	return dst
}
