package controls

import (
	"errors"
	"fmt"

	"github.com/pthm-cable/fluid/config"
)

// Target receives scripted injections. *fluid.Simulation satisfies it.
type Target interface {
	AddDensity(x, y int, amount float32, r, g, b uint8) error
	AddVelocity(x, y int, dx, dy float32) error
	CreateExplosion(x, y int, power float32, r, g, b uint8) error
	Reset()
}

// Injection is one scheduled event.
type Injection struct {
	Tick  int64
	Every int64
	Until int64
	Kind  string
	X, Y  int

	Amount float32
	DX, DY float32
	Power  float32
	Color  Color
}

// Fires reports whether the injection is due on tick.
func (inj Injection) Fires(tick int64) bool {
	if tick < inj.Tick {
		return false
	}
	if inj.Every <= 0 {
		return tick == inj.Tick
	}
	if inj.Until > 0 && tick > inj.Until {
		return false
	}
	return (tick-inj.Tick)%inj.Every == 0
}

func (inj Injection) apply(t Target) error {
	c := inj.Color
	switch inj.Kind {
	case config.InjectDensity:
		return t.AddDensity(inj.X, inj.Y, inj.Amount, c.R, c.G, c.B)
	case config.InjectVelocity:
		return t.AddVelocity(inj.X, inj.Y, inj.DX, inj.DY)
	case config.InjectExplosion:
		return t.CreateExplosion(inj.X, inj.Y, inj.Power, c.R, c.G, c.B)
	case config.InjectReset:
		t.Reset()
		return nil
	default:
		return fmt.Errorf("unknown injection kind %q", inj.Kind)
	}
}

// Script replays a list of injections against a Target tick by tick.
type Script struct {
	events []Injection
}

// NewScript returns a script over events, in the given order.
func NewScript(events []Injection) *Script {
	return &Script{events: append([]Injection(nil), events...)}
}

// ScriptFromConfig builds a script from the scenario section, resolving
// color names against palette.
func ScriptFromConfig(entries []config.InjectionConfig, palette *Palette) (*Script, error) {
	events := make([]Injection, 0, len(entries))
	for i, e := range entries {
		inj := Injection{
			Tick:   e.Tick,
			Every:  e.Every,
			Until:  e.Until,
			Kind:   e.Kind,
			X:      e.X,
			Y:      e.Y,
			Amount: float32(e.Amount),
			DX:     float32(e.DX),
			DY:     float32(e.DY),
			Power:  float32(e.Power),
		}
		if e.Color != "" {
			c, err := palette.Lookup(e.Color)
			if err != nil {
				return nil, fmt.Errorf("scenario[%d]: %w", i, err)
			}
			inj.Color = c
		}
		events = append(events, inj)
	}
	return NewScript(events), nil
}

// Len returns the number of scheduled events.
func (s *Script) Len() int { return len(s.events) }

// Apply fires every injection due on tick, in script order, and returns how
// many fired. Injection failures do not stop later events; they are joined
// into the returned error.
func (s *Script) Apply(tick int64, t Target) (int, error) {
	if s == nil {
		return 0, nil
	}
	fired := 0
	var errs []error
	for i, inj := range s.events {
		if !inj.Fires(tick) {
			continue
		}
		fired++
		if err := inj.apply(t); err != nil {
			errs = append(errs, fmt.Errorf("tick %d event %d (%s): %w", tick, i, inj.Kind, err))
		}
	}
	return fired, errors.Join(errs...)
}

// Done reports whether no event can fire at or after tick.
func (s *Script) Done(tick int64) bool {
	if s == nil {
		return true
	}
	for _, inj := range s.events {
		if inj.Tick >= tick {
			return false
		}
		if inj.Every > 0 && (inj.Until == 0 || inj.Until >= tick) {
			return false
		}
	}
	return true
}
