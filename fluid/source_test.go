package fluid

import (
	"errors"
	"math"
	"testing"
)

func TestInjectionRejectsOutOfRange(t *testing.T) {
	s := newTestSim(t, 10, 8, 0, 0)

	coords := []struct{ x, y int }{
		{-1, 0}, {0, -1}, {10, 0}, {0, 8}, {100, 100},
	}
	for _, c := range coords {
		if err := s.AddDensity(c.x, c.y, 100, 255, 0, 0); !errors.Is(err, ErrInvalidCoordinate) {
			t.Errorf("AddDensity(%d,%d) error = %v", c.x, c.y, err)
		}
		if err := s.AddVelocity(c.x, c.y, 1, 1); !errors.Is(err, ErrInvalidCoordinate) {
			t.Errorf("AddVelocity(%d,%d) error = %v", c.x, c.y, err)
		}
		if err := s.CreateExplosion(c.x, c.y, 10, 255, 0, 0); !errors.Is(err, ErrInvalidCoordinate) {
			t.Errorf("CreateExplosion(%d,%d) error = %v", c.x, c.y, err)
		}
	}
	assertAllZero(t, s)
}

func TestAddDensityNormalizesAmount(t *testing.T) {
	s := newTestSim(t, 10, 10, 0, 0)

	if err := s.AddDensity(2, 3, 255, 255, 0, 128); err != nil {
		t.Fatal(err)
	}
	r, _ := s.DensityAt(Red, 2, 3)
	g, _ := s.DensityAt(Green, 2, 3)
	b, _ := s.DensityAt(Blue, 2, 3)
	if r != 255 || g != 0 || b != 128 {
		t.Errorf("density = (%v, %v, %v), want (255, 0, 128)", r, g, b)
	}

	// Accumulates without clamping.
	_ = s.AddDensity(2, 3, 255, 255, 0, 0)
	if r, _ := s.DensityAt(Red, 2, 3); r != 510 {
		t.Errorf("red after second add = %v, want 510", r)
	}
}

func TestAddVelocityIsRaw(t *testing.T) {
	s := newTestSim(t, 10, 10, 0, 0)
	_ = s.AddVelocity(0, 9, 1000, -3)
	_ = s.AddVelocity(0, 9, 1, 1)

	vx, vy, err := s.VelocityAt(0, 9)
	if err != nil {
		t.Fatal(err)
	}
	if vx != 1001 || vy != -2 {
		t.Errorf("velocity = (%v, %v), want (1001, -2)", vx, vy)
	}
}

func TestExplosionRotationalSymmetry(t *testing.T) {
	s := newTestSim(t, 64, 64, 0, 0)
	const cx, cy = 32, 32

	if err := s.CreateExplosion(cx, cy, 5, 255, 128, 64); err != nil {
		t.Fatal(err)
	}

	g := s.grid
	for i := -ExplosionRadius; i <= ExplosionRadius; i++ {
		for j := -ExplosionRadius; j <= ExplosionRadius; j++ {
			a := g.Index(cx+i, cy+j)
			b := g.Index(cx-i, cy-j)
			for _, ch := range Channels {
				if s.density[ch][a] != s.density[ch][b] {
					t.Fatalf("%v density (%d,%d)=%v vs (%d,%d)=%v", ch, i, j, s.density[ch][a], -i, -j, s.density[ch][b])
				}
			}
			if s.vx[a] != -s.vx[b] || s.vy[a] != -s.vy[b] {
				t.Fatalf("velocity at offset (%d,%d) not antisymmetric", i, j)
			}
		}
	}
}

func TestExplosionShape(t *testing.T) {
	s := newTestSim(t, 64, 64, 0, 0)
	_ = s.CreateExplosion(32, 32, 2, 255, 0, 0)

	centre, _ := s.DensityAt(Red, 32, 32)
	// power·10 at full falloff, normalised by 255 and scaled by r=255.
	if math.Abs(float64(centre-20)) > 1e-4 {
		t.Errorf("centre density = %v, want 20", centre)
	}
	if vx, vy, _ := s.VelocityAt(32, 32); vx != 0 || vy != 0 {
		t.Errorf("centre velocity = (%v, %v), want 0", vx, vy)
	}

	if vx, _, _ := s.VelocityAt(40, 32); vx <= 0 {
		t.Errorf("expected outward vx right of centre, got %v", vx)
	}
	if _, vy, _ := s.VelocityAt(32, 25); vy >= 0 {
		t.Errorf("expected outward (negative) vy above centre, got %v", vy)
	}

	// Rim cells at exactly the radius receive zero falloff; beyond it nothing.
	if v, _ := s.DensityAt(Red, 32+ExplosionRadius, 32); v != 0 {
		t.Errorf("rim density = %v, want 0", v)
	}
	if v, _ := s.DensityAt(Red, 32+ExplosionRadius+1, 32); v != 0 {
		t.Errorf("outside density = %v, want 0", v)
	}
	if v, _ := s.DensityAt(Red, 32+15, 32+15); v != 0 {
		t.Errorf("corner of bounding box should be outside disc, got %v", v)
	}
}

func TestExplosionClipsAtEdges(t *testing.T) {
	s := newTestSim(t, 30, 30, 0, 0)

	if err := s.CreateExplosion(0, 0, 10, 0, 255, 0); err != nil {
		t.Fatalf("explosion at corner: %v", err)
	}
	if v, _ := s.DensityAt(Green, 0, 0); v <= 0 {
		t.Errorf("expected density at corner centre, got %v", v)
	}
	if v, _ := s.DensityAt(Green, 5, 5); v <= 0 {
		t.Errorf("expected density inside disc, got %v", v)
	}
}
