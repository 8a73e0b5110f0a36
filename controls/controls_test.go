package controls

import (
	"errors"
	"testing"

	"github.com/pthm-cable/fluid/config"
)

func TestToolToggle(t *testing.T) {
	tool := ToolFluid
	if tool.String() != "Fluid" {
		t.Errorf("String() = %q, want Fluid", tool)
	}
	tool = tool.Toggle()
	if tool != ToolExplosion || tool.String() != "Explosion" {
		t.Errorf("after toggle = %v", tool)
	}
	if tool.Toggle() != ToolFluid {
		t.Error("second toggle should return to Fluid")
	}
}

func TestPaletteCycle(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	p, err := PaletteFromConfig(cfg.Palette)
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"Blue", "Red", "Green", "Purple", "Blue"}
	if p.Current().Name != want[0] {
		t.Fatalf("initial color = %q", p.Current().Name)
	}
	for _, name := range want[1:] {
		if got := p.Cycle(); got.Name != name {
			t.Errorf("Cycle() = %q, want %q", got.Name, name)
		}
	}
	if p.Index() != 0 || p.Len() != 4 {
		t.Errorf("index %d len %d", p.Index(), p.Len())
	}
}

func TestPaletteErrors(t *testing.T) {
	if _, err := NewPalette(nil); !errors.Is(err, ErrUnknownColor) {
		t.Errorf("NewPalette(nil) error = %v", err)
	}

	p, _ := NewPalette([]Color{{Name: "Blue", B: 255}})
	if _, err := p.Lookup("Orange"); !errors.Is(err, ErrUnknownColor) {
		t.Errorf("Lookup error = %v", err)
	}
	if c, err := p.Lookup("Blue"); err != nil || c.B != 255 {
		t.Errorf("Lookup(Blue) = %+v, %v", c, err)
	}
}
