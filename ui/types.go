// Package ui draws the HUD, panels and overlays on top of the fluid.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// PanelAnchor specifies where a panel is anchored on screen.
type PanelAnchor int

const (
	AnchorTopLeft PanelAnchor = iota
	AnchorTopRight
	AnchorBottomLeft
	AnchorBottomRight
)

// Origin returns the top-left corner of a width×height panel anchored inside
// a screenW×screenH window with the given margin.
func (a PanelAnchor) Origin(screenW, screenH, width, height, margin int32) (x, y int32) {
	switch a {
	case AnchorTopRight:
		return screenW - width - margin, margin
	case AnchorBottomLeft:
		return margin, screenH - height - margin
	case AnchorBottomRight:
		return screenW - width - margin, screenH - height - margin
	default:
		return margin, margin
	}
}

// Theme is the palette and metrics shared by every panel.
type Theme struct {
	Panel, Border rl.Color
	Header        rl.Color
	Label, Value  rl.Color
	Muted         rl.Color // inactive markers
	Track         rl.Color // empty part of a bar

	// Load colors a bar by fill: below 60%, below 90%, at or above 90%.
	Load [3]rl.Color

	Padding, LineHeight int32
	LabelWidth          int32
	BarHeight           int32
	TextSize            int32
	HeaderSize          int32
}

// DefaultTheme is a dark translucent theme that keeps the fluid visible
// under panels.
func DefaultTheme() Theme {
	return Theme{
		Panel:  rl.Color{R: 12, G: 16, B: 24, A: 210},
		Border: rl.Color{R: 70, G: 80, B: 96, A: 255},
		Header: rl.Color{R: 120, G: 190, B: 255, A: 255},
		Label:  rl.LightGray,
		Value:  rl.RayWhite,
		Muted:  rl.Color{R: 80, G: 80, B: 80, A: 255},
		Track:  rl.Color{R: 36, G: 40, B: 48, A: 255},
		Load: [3]rl.Color{
			{R: 90, G: 200, B: 120, A: 255},
			{R: 220, G: 190, B: 90, A: 255},
			{R: 220, G: 90, B: 90, A: 255},
		},
		Padding:    10,
		LineHeight: 16,
		LabelWidth: 96,
		BarHeight:  10,
		TextSize:   12,
		HeaderSize: 14,
	}
}
