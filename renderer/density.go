// Package renderer draws simulation fields with raylib.
package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/pthm-cable/fluid/fluid"
)

// DensityRenderer uploads the rendered density grid to a texture and
// stretches it over the window.
type DensityRenderer struct {
	tex         rl.Texture2D
	texW, texH  int
	pixels      []color.RGBA
	smooth      bool
	initialized bool
}

// NewDensityRenderer creates a renderer. Init must run after the window exists.
func NewDensityRenderer() *DensityRenderer {
	return &DensityRenderer{}
}

// Init allocates the grid-sized texture.
func (r *DensityRenderer) Init(gridW, gridH int) {
	if r.initialized {
		return
	}
	r.texW = gridW
	r.texH = gridH

	img := rl.GenImageColor(gridW, gridH, rl.Black)
	r.tex = rl.LoadTextureFromImage(img)
	rl.SetTextureWrap(r.tex, rl.WrapClamp)
	rl.UnloadImage(img)
	r.applyFilter()

	r.initialized = true
}

// SetSmooth switches between nearest-cell and bilinear magnification.
func (r *DensityRenderer) SetSmooth(smooth bool) {
	r.smooth = smooth
	if r.initialized {
		r.applyFilter()
	}
}

// Smooth reports whether bilinear magnification is on.
func (r *DensityRenderer) Smooth() bool { return r.smooth }

func (r *DensityRenderer) applyFilter() {
	if r.smooth {
		rl.SetTextureFilter(r.tex, rl.FilterBilinear)
	} else {
		rl.SetTextureFilter(r.tex, rl.FilterPoint)
	}
}

// Update uploads the current density of sim.
func (r *DensityRenderer) Update(sim *fluid.Simulation) {
	g := sim.Grid()
	if !r.initialized {
		r.Init(g.Width, g.Height)
	}
	r.pixels = sim.Colors(r.pixels)
	rl.UpdateTexture(r.tex, r.pixels)
}

// Draw stretches the texture over a screenW×screenH area at the origin.
func (r *DensityRenderer) Draw(screenW, screenH float32) {
	if !r.initialized {
		return
	}
	srcRect := rl.Rectangle{X: 0, Y: 0, Width: float32(r.texW), Height: float32(r.texH)}
	dstRect := rl.Rectangle{X: 0, Y: 0, Width: screenW, Height: screenH}
	rl.DrawTexturePro(r.tex, srcRect, dstRect, rl.Vector2{}, 0, rl.White)
}

// Unload frees GPU resources.
func (r *DensityRenderer) Unload() {
	if r.initialized {
		rl.UnloadTexture(r.tex)
		r.initialized = false
	}
}
