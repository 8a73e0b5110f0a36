package ui

import (
	"fmt"
	"math"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// TuningValues are the live-editable simulation parameters.
type TuningValues struct {
	Diffusion      float32
	Viscosity      float32
	ExplosionPower float32
	BrushDensity   float32
}

// TuningAction reports which buttons were pressed in a frame.
type TuningAction struct {
	Reset bool
	Pause bool
}

// Rate sliders move the base-10 exponent between these bounds.
const (
	rateExpMin = -9
	rateExpMax = -2
)

// TuningPanel draws raygui sliders for the solver rates and tool strengths.
type TuningPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewTuningPanel creates a hidden tuning panel.
func NewTuningPanel(x, y, width int32) *TuningPanel {
	return &TuningPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (t *TuningPanel) SetPosition(x, y int32) {
	t.x = x
	t.y = y
}

// Toggle switches panel visibility.
func (t *TuningPanel) Toggle() bool {
	t.visible = !t.visible
	return t.visible
}

// IsVisible returns whether the panel is shown.
func (t *TuningPanel) IsVisible() bool {
	return t.visible
}

// Contains reports whether the screen point lies on the panel, so clicks on
// it are not forwarded to the fluid tools.
func (t *TuningPanel) Contains(sx, sy int32) bool {
	if !t.visible {
		return false
	}
	return sx >= t.x && sx < t.x+t.width && sy >= t.y && sy < t.y+t.height()
}

func (t *TuningPanel) height() int32 {
	return 4*38 + 30 + 50 + t.renderer.Theme.Padding*2
}

// Draw renders the panel and writes slider changes into v.
func (t *TuningPanel) Draw(v *TuningValues, paused bool) TuningAction {
	var action TuningAction
	if !t.visible {
		return action
	}

	r := t.renderer
	padding := r.Theme.Padding
	r.DrawPanel(t.x, t.y, t.width, t.height())

	x := float32(t.x + padding)
	y := float32(t.y + padding)
	sliderW := float32(t.width - padding*2 - 70)

	rl.DrawText("Tuning", int32(x), int32(y), 16, rl.White)
	y += 26

	v.Diffusion = t.rateSlider(x, &y, sliderW, "Diffusion", v.Diffusion)
	v.Viscosity = t.rateSlider(x, &y, sliderW, "Viscosity", v.Viscosity)
	v.ExplosionPower = t.linearSlider(x, &y, sliderW, "Explosion power", v.ExplosionPower, 0, 500)
	v.BrushDensity = t.linearSlider(x, &y, sliderW, "Brush density", v.BrushDensity, 0, 500)

	y += 4
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: 110, Height: 28}, "Reset") {
		action.Reset = true
	}
	if gui.Button(rl.Rectangle{X: x + 120, Y: y, Width: 110, Height: 28}, toggleText(paused, "Resume", "Pause")) {
		action.Pause = true
	}
	return action
}

func (t *TuningPanel) rateSlider(x float32, y *float32, w float32, label string, rate float32) float32 {
	rl.DrawText(label, int32(x), int32(*y), 12, rl.LightGray)
	*y += 14
	exp := gui.SliderBar(
		rl.Rectangle{X: x, Y: *y, Width: w, Height: 16},
		"", "",
		rateToExponent(rate), rateExpMin, rateExpMax,
	)
	rate = exponentToRate(exp)
	rl.DrawText(fmt.Sprintf("%.1e", rate), int32(x+w+6), int32(*y+2), 12, rl.LightGray)
	*y += 24
	return rate
}

func (t *TuningPanel) linearSlider(x float32, y *float32, w float32, label string, value, min, max float32) float32 {
	rl.DrawText(label, int32(x), int32(*y), 12, rl.LightGray)
	*y += 14
	value = gui.SliderBar(rl.Rectangle{X: x, Y: *y, Width: w, Height: 16}, "", "", value, min, max)
	rl.DrawText(fmt.Sprintf("%.0f", value), int32(x+w+6), int32(*y+2), 12, rl.LightGray)
	*y += 24
	return value
}

// rateToExponent maps a rate to the slider's exponent scale, clamped to the
// slider range. Zero maps to the lower bound.
func rateToExponent(rate float32) float32 {
	if rate <= 0 {
		return rateExpMin
	}
	e := float32(math.Log10(float64(rate)))
	if e < rateExpMin {
		return rateExpMin
	}
	if e > rateExpMax {
		return rateExpMax
	}
	return e
}

// exponentToRate is the inverse of rateToExponent. The lower bound maps to
// zero so the slider can switch a rate off.
func exponentToRate(e float32) float32 {
	if e <= rateExpMin {
		return 0
	}
	return float32(math.Pow(10, float64(e)))
}

func toggleText(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}
