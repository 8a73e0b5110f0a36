package fluid

import (
	"image/color"
	"math"
	"testing"
)

func TestChannelByte(t *testing.T) {
	tests := []struct {
		name string
		in   float32
		want uint8
	}{
		{"zero", 0, 0},
		{"negative", -3, 0},
		{"half truncates", 0.5, 127},
		{"one", 1, 255},
		{"saturates", 40, 255},
		{"nan", float32(math.NaN()), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := channelByte(tt.in); got != tt.want {
				t.Errorf("channelByte(%v) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestPixelsLayout(t *testing.T) {
	s := newTestSim(t, 4, 3, 0, 0)
	s.density[Red][s.grid.Index(2, 1)] = 1
	s.density[Blue][s.grid.Index(2, 1)] = 0.5

	pix := s.Pixels(nil)
	if len(pix) != 4*3*4 {
		t.Fatalf("len(pix) = %d, want 48", len(pix))
	}
	o := (2 + 1*4) * 4
	if pix[o] != 255 || pix[o+1] != 0 || pix[o+2] != 127 || pix[o+3] != 255 {
		t.Errorf("pixel = %v, want [255 0 127 255]", pix[o:o+4])
	}
	if pix[0] != 0 || pix[3] != 255 {
		t.Errorf("empty pixel = %v", pix[0:4])
	}

	c, err := s.ColorAt(2, 1)
	if err != nil {
		t.Fatal(err)
	}
	if c != (color.RGBA{R: 255, B: 127, A: 255}) {
		t.Errorf("ColorAt = %v", c)
	}

	cols := s.Colors(nil)
	if len(cols) != 12 || cols[s.grid.Index(2, 1)] != c {
		t.Errorf("Colors()[%d] = %v, want %v", s.grid.Index(2, 1), cols[s.grid.Index(2, 1)], c)
	}

	img := s.Image()
	if got := img.RGBAAt(2, 1); got != c {
		t.Errorf("Image pixel = %v, want %v", got, c)
	}
	if _, err := s.ColorAt(4, 0); err == nil {
		t.Error("expected error for out-of-range ColorAt")
	}
}

func TestDiagnostics(t *testing.T) {
	s := newTestSim(t, 20, 20, 0, 0)
	_ = s.AddDensity(5, 5, 255, 255, 0, 0)
	_ = s.AddVelocity(10, 10, 3, 4)

	d := s.Diagnostics()
	if d.Mass[Red] != 255 || d.Mass[Green] != 0 {
		t.Errorf("mass = %v", d.Mass)
	}
	if math.Abs(float64(d.KineticEnergy-12.5)) > 1e-5 {
		t.Errorf("kinetic energy = %v, want 12.5", d.KineticEnergy)
	}
	if math.Abs(float64(d.MaxSpeed-5)) > 1e-5 {
		t.Errorf("max speed = %v, want 5", d.MaxSpeed)
	}
	if d.DivergencePost <= 0 {
		t.Error("expected non-zero divergence for injected impulse")
	}

	s.Step()
	d = s.Diagnostics()
	if d.DivergencePost >= d.DivergencePre {
		t.Errorf("post-projection divergence %v should be below pre %v", d.DivergencePost, d.DivergencePre)
	}
	if d.SweepsLastStep != 7*DefaultIterations {
		t.Errorf("sweeps = %d", d.SweepsLastStep)
	}
}
