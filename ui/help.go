package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// HelpLines is the text of the help popup, one entry per line.
var HelpLines = []string{
	"Controls:",
	"Left click and drag - Draw fluid",
	"Right click - Cycle colors",
	"T - Switch between fluid/explosion tools",
	"C - Clear simulation",
	"H - Toggle help",
	"Space - Pause, , / . - Steps per frame",
	"F1 - Tuning panel, S - Save snapshot",
	"V / B / I / P - Velocity, smoothing, stats, timing",
}

const (
	helpMargin      = 50
	helpPadding     = 30
	helpLineSpacing = 28
	helpMinHeight   = 250
)

// HelpOverlay draws the help popup centred vertically over the window.
type HelpOverlay struct {
	visible  bool
	fontSize int32
}

// NewHelpOverlay creates a hidden help popup.
func NewHelpOverlay() *HelpOverlay {
	return &HelpOverlay{fontSize: 20}
}

// Toggle switches visibility and returns the new state.
func (h *HelpOverlay) Toggle() bool {
	h.visible = !h.visible
	return h.visible
}

// IsVisible returns whether the popup is shown.
func (h *HelpOverlay) IsVisible() bool {
	return h.visible
}

// helpRect returns the popup rectangle for a window size. The popup spans the
// window width minus margins and grows with the number of lines.
func helpRect(screenW, screenH int32, lines int) (x, y, w, h int32) {
	w = screenW - helpMargin*2
	h = int32(lines)*helpLineSpacing + helpPadding*2 - (helpLineSpacing - 20)
	if h < helpMinHeight {
		h = helpMinHeight
	}
	return helpMargin, (screenH - h) / 2, w, h
}

// Draw renders the popup if visible.
func (h *HelpOverlay) Draw(screenW, screenH int32) {
	if !h.visible {
		return
	}

	x, y, w, ht := helpRect(screenW, screenH, len(HelpLines))
	rl.DrawRectangle(x, y, w, ht, rl.Color{R: 0, G: 0, B: 0, A: 200})

	ty := y + helpPadding
	for _, line := range HelpLines {
		rl.DrawText(line, x+helpPadding, ty, h.fontSize, rl.White)
		ty += helpLineSpacing
	}
}
