package controls

import (
	"errors"
	"fmt"
	"testing"

	"github.com/pthm-cable/fluid/config"
)

var errOutside = errors.New("outside")

type recordingTarget struct {
	calls []string
}

func (r *recordingTarget) AddDensity(x, y int, amount float32, red, g, b uint8) error {
	if x < 0 {
		return errOutside
	}
	r.calls = append(r.calls, fmt.Sprintf("density %d,%d %g %d/%d/%d", x, y, amount, red, g, b))
	return nil
}

func (r *recordingTarget) AddVelocity(x, y int, dx, dy float32) error {
	r.calls = append(r.calls, fmt.Sprintf("velocity %d,%d %g,%g", x, y, dx, dy))
	return nil
}

func (r *recordingTarget) CreateExplosion(x, y int, power float32, red, g, b uint8) error {
	r.calls = append(r.calls, fmt.Sprintf("explosion %d,%d %g %d/%d/%d", x, y, power, red, g, b))
	return nil
}

func (r *recordingTarget) Reset() {
	r.calls = append(r.calls, "reset")
}

func TestInjectionFires(t *testing.T) {
	tests := []struct {
		name string
		inj  Injection
		tick int64
		want bool
	}{
		{"once before", Injection{Tick: 5}, 4, false},
		{"once on tick", Injection{Tick: 5}, 5, true},
		{"once after", Injection{Tick: 5}, 6, false},
		{"repeat start", Injection{Tick: 10, Every: 3}, 10, true},
		{"repeat between", Injection{Tick: 10, Every: 3}, 12, false},
		{"repeat hit", Injection{Tick: 10, Every: 3}, 13, true},
		{"repeat unbounded", Injection{Tick: 10, Every: 3}, 10 + 3*1000, true},
		{"repeat until inclusive", Injection{Tick: 0, Every: 2, Until: 4}, 4, true},
		{"repeat past until", Injection{Tick: 0, Every: 2, Until: 4}, 6, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.inj.Fires(tt.tick); got != tt.want {
				t.Errorf("Fires(%d) = %v, want %v", tt.tick, got, tt.want)
			}
		})
	}
}

func TestScriptApplyOrder(t *testing.T) {
	red := Color{Name: "Red", R: 255}
	s := NewScript([]Injection{
		{Tick: 0, Kind: config.InjectExplosion, X: 5, Y: 6, Power: 10, Color: red},
		{Tick: 0, Every: 1, Until: 1, Kind: config.InjectDensity, X: 1, Y: 2, Amount: 100, Color: red},
		{Tick: 1, Kind: config.InjectVelocity, X: 1, Y: 2, DX: 3, DY: -4},
		{Tick: 2, Kind: config.InjectReset},
	})

	target := &recordingTarget{}
	total := 0
	for tick := int64(0); tick < 4; tick++ {
		n, err := s.Apply(tick, target)
		if err != nil {
			t.Fatalf("tick %d: %v", tick, err)
		}
		total += n
	}

	want := []string{
		"explosion 5,6 10 255/0/0",
		"density 1,2 100 255/0/0",
		"density 1,2 100 255/0/0",
		"velocity 1,2 3,-4",
		"reset",
	}
	if total != len(want) {
		t.Errorf("fired %d events, want %d", total, len(want))
	}
	if len(target.calls) != len(want) {
		t.Fatalf("calls = %v", target.calls)
	}
	for i := range want {
		if target.calls[i] != want[i] {
			t.Errorf("call %d = %q, want %q", i, target.calls[i], want[i])
		}
	}
	if !s.Done(3) {
		t.Error("script should be done after tick 2")
	}
	if s.Done(2) {
		t.Error("script should not be done before its last event")
	}
}

func TestScriptApplyContinuesAfterError(t *testing.T) {
	s := NewScript([]Injection{
		{Kind: config.InjectDensity, X: -1},
		{Kind: config.InjectVelocity, X: 1, Y: 1, DX: 1},
		{Kind: "vortex"},
	})
	target := &recordingTarget{}

	n, err := s.Apply(0, target)
	if n != 3 {
		t.Errorf("fired %d, want 3", n)
	}
	if !errors.Is(err, errOutside) {
		t.Errorf("error = %v, want wrapped errOutside", err)
	}
	if len(target.calls) != 1 {
		t.Errorf("calls = %v, want only the velocity event", target.calls)
	}
}

func TestScriptFromConfig(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	p, _ := PaletteFromConfig(cfg.Palette)

	s, err := ScriptFromConfig(cfg.Scenario, p)
	if err != nil {
		t.Fatalf("ScriptFromConfig: %v", err)
	}
	if s.Len() != len(cfg.Scenario) {
		t.Errorf("Len() = %d, want %d", s.Len(), len(cfg.Scenario))
	}

	_, err = ScriptFromConfig([]config.InjectionConfig{{Kind: config.InjectDensity, Color: "Orange"}}, p)
	if !errors.Is(err, ErrUnknownColor) {
		t.Errorf("error = %v, want ErrUnknownColor", err)
	}

	var nilScript *Script
	if n, err := nilScript.Apply(0, &recordingTarget{}); n != 0 || err != nil {
		t.Error("nil script should be a no-op")
	}
}
