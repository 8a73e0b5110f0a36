package ui

import (
	"math"
	"strings"
	"testing"
)

func TestHelpRect(t *testing.T) {
	x, y, w, h := helpRect(800, 600, 6)
	if x != 50 || w != 700 {
		t.Errorf("x=%d w=%d, want 50 and 700", x, w)
	}
	if h != 250 || y != 175 {
		t.Errorf("six lines: y=%d h=%d, want 175 and 250", y, h)
	}

	_, y, _, h = helpRect(800, 600, len(HelpLines))
	if h <= 250 {
		t.Errorf("full help height %d should exceed the minimum", h)
	}
	if y+h/2 != 300 && y+h/2 != 299 {
		t.Errorf("popup not centred: y=%d h=%d", y, h)
	}
}

func TestHelpMentionsEveryKey(t *testing.T) {
	keys := []string{"T -", "C -", "H -", "Right click", "Left click"}
	for _, k := range keys {
		found := false
		for _, line := range HelpLines {
			if strings.Contains(line, k) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("help text does not mention %q", k)
		}
	}
}

func TestAnchorOrigin(t *testing.T) {
	tests := []struct {
		anchor PanelAnchor
		x, y   int32
	}{
		{AnchorTopLeft, 10, 10},
		{AnchorTopRight, 590, 10},
		{AnchorBottomLeft, 10, 490},
		{AnchorBottomRight, 590, 490},
	}
	for _, tt := range tests {
		x, y := tt.anchor.Origin(800, 600, 200, 100, 10)
		if x != tt.x || y != tt.y {
			t.Errorf("anchor %d origin = (%d,%d), want (%d,%d)", tt.anchor, x, y, tt.x, tt.y)
		}
	}
}

func TestBarRatio(t *testing.T) {
	tests := []struct {
		current, max, want float32
	}{
		{5, 10, 0.5},
		{20, 10, 1},
		{-1, 10, 0},
		{3, 0, 0},
	}
	for _, tt := range tests {
		if got := barRatio(tt.current, tt.max); got != tt.want {
			t.Errorf("barRatio(%v, %v) = %v, want %v", tt.current, tt.max, got, tt.want)
		}
	}
}

func TestLoadLevel(t *testing.T) {
	tests := []struct {
		ratio float32
		want  int
	}{
		{0, 0},
		{0.59, 0},
		{0.6, 1},
		{0.89, 1},
		{0.9, 2},
		{1, 2},
	}
	for _, tt := range tests {
		if got := loadLevel(tt.ratio); got != tt.want {
			t.Errorf("loadLevel(%v) = %d, want %d", tt.ratio, got, tt.want)
		}
	}
}

func TestRateExponent(t *testing.T) {
	if got := rateToExponent(0); got != rateExpMin {
		t.Errorf("rateToExponent(0) = %v", got)
	}
	if got := exponentToRate(rateExpMin); got != 0 {
		t.Errorf("exponentToRate(min) = %v, want 0", got)
	}
	if got := rateToExponent(1); got != rateExpMax {
		t.Errorf("rateToExponent(1) = %v, want clamp to %v", got, rateExpMax)
	}

	for _, rate := range []float32{1e-7, 1e-5, 3e-4} {
		back := exponentToRate(rateToExponent(rate))
		if math.Abs(float64(back-rate))/float64(rate) > 1e-4 {
			t.Errorf("round trip %v -> %v", rate, back)
		}
	}
}
