// Package controls holds the interactive tool state and the scripted
// injections replayed by headless runs.
package controls

import (
	"errors"
	"fmt"

	"github.com/pthm-cable/fluid/config"
)

// ErrUnknownColor is returned when a palette lookup names no entry.
var ErrUnknownColor = errors.New("controls: unknown color")

// Tool selects what a left click does.
type Tool uint8

const (
	ToolFluid Tool = iota
	ToolExplosion
)

// Toggle returns the other tool.
func (t Tool) Toggle() Tool {
	if t == ToolFluid {
		return ToolExplosion
	}
	return ToolFluid
}

func (t Tool) String() string {
	switch t {
	case ToolFluid:
		return "Fluid"
	case ToolExplosion:
		return "Explosion"
	default:
		return "Unknown"
	}
}

// Color is a named brush color.
type Color struct {
	Name    string
	R, G, B uint8
}

// Palette is a fixed, cyclic list of brush colors.
type Palette struct {
	colors []Color
	idx    int
}

// NewPalette returns a palette starting at its first entry.
func NewPalette(colors []Color) (*Palette, error) {
	if len(colors) == 0 {
		return nil, fmt.Errorf("%w: empty palette", ErrUnknownColor)
	}
	return &Palette{colors: append([]Color(nil), colors...)}, nil
}

// PaletteFromConfig converts the configured palette.
func PaletteFromConfig(entries []config.ColorConfig) (*Palette, error) {
	colors := make([]Color, len(entries))
	for i, e := range entries {
		colors[i] = Color{Name: e.Name, R: e.R, G: e.G, B: e.B}
	}
	return NewPalette(colors)
}

// Current returns the selected color.
func (p *Palette) Current() Color { return p.colors[p.idx] }

// Index returns the position of the selected color.
func (p *Palette) Index() int { return p.idx }

// Len returns the number of colors.
func (p *Palette) Len() int { return len(p.colors) }

// Cycle advances to the next color, wrapping to the first, and returns it.
func (p *Palette) Cycle() Color {
	p.idx = (p.idx + 1) % len(p.colors)
	return p.colors[p.idx]
}

// Lookup returns the color with the given name.
func (p *Palette) Lookup(name string) (Color, error) {
	for _, c := range p.colors {
		if c.Name == name {
			return c, nil
		}
	}
	return Color{}, fmt.Errorf("%w: %q", ErrUnknownColor, name)
}
