package fluid

import "math"

// Explosion shape constants. The radius does not scale with power.
const (
	ExplosionRadius         = 20
	explosionDensityScale   = 10
	explosionVelocityScale  = 50
	explosionCentreEpsilon  = 0.1
	densityAmountNormalizer = 255
)

// AddDensity deposits amount/255 of each color component at (x, y).
// Channels accumulate without clamping; values above 1 saturate only when
// rendered.
func (s *Simulation) AddDensity(x, y int, amount float32, r, g, b uint8) error {
	idx, err := s.grid.Checked(x, y)
	if err != nil {
		return err
	}
	s.addDensity(idx, amount, r, g, b)
	return nil
}

func (s *Simulation) addDensity(idx int, amount float32, r, g, b uint8) {
	n := amount / densityAmountNormalizer
	s.density[Red][idx] += n * float32(r)
	s.density[Green][idx] += n * float32(g)
	s.density[Blue][idx] += n * float32(b)
}

// AddVelocity adds (dx, dy) to the velocity at (x, y).
func (s *Simulation) AddVelocity(x, y int, dx, dy float32) error {
	idx, err := s.grid.Checked(x, y)
	if err != nil {
		return err
	}
	s.vx[idx] += dx
	s.vy[idx] += dy
	return nil
}

// CreateExplosion injects a radial burst centred on (x, y): density and an
// outward velocity impulse, both with cubic falloff over ExplosionRadius
// cells. Cells of the disc that fall outside the grid are skipped.
func (s *Simulation) CreateExplosion(x, y int, power float32, r, g, b uint8) error {
	if _, err := s.grid.Checked(x, y); err != nil {
		return err
	}

	const radius = float32(ExplosionRadius)
	amount := power * explosionDensityScale

	for i := -ExplosionRadius; i <= ExplosionRadius; i++ {
		for j := -ExplosionRadius; j <= ExplosionRadius; j++ {
			dist := float32(math.Sqrt(float64(i*i + j*j)))
			if dist > radius {
				continue
			}
			cx, cy := x+i, y+j
			if !s.grid.InBounds(cx, cy) {
				continue
			}

			falloff := (radius - dist) / radius
			falloff = falloff * falloff * falloff

			idx := s.grid.Index(cx, cy)
			s.addDensity(idx, amount*falloff, r, g, b)

			if dist > explosionCentreEpsilon {
				s.vx[idx] += float32(i) / dist * power * falloff * explosionVelocityScale
				s.vy[idx] += float32(j) / dist * power * falloff * explosionVelocityScale
			}
		}
	}
	return nil
}
