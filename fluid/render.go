package fluid

import (
	"image"
	"image/color"
)

// channelByte maps a density value to a display intensity:
// clamp(v·255, 0, 255) truncated toward zero.
func channelByte(v float32) uint8 {
	c := v * 255
	if !(c > 0) {
		return 0
	}
	if c > 255 {
		return 255
	}
	return uint8(c)
}

// ColorAt returns the rendered color of cell (x, y).
func (s *Simulation) ColorAt(x, y int) (color.RGBA, error) {
	idx, err := s.grid.Checked(x, y)
	if err != nil {
		return color.RGBA{}, err
	}
	return s.colorAt(idx), nil
}

func (s *Simulation) colorAt(idx int) color.RGBA {
	return color.RGBA{
		R: channelByte(s.density[Red][idx]),
		G: channelByte(s.density[Green][idx]),
		B: channelByte(s.density[Blue][idx]),
		A: 0xff,
	}
}

// Pixels writes the rendered grid as packed RGBA8, row by row, into dst
// (grown if too small) and returns it. The result is suitable for uploading
// to a width×height texture.
func (s *Simulation) Pixels(dst []byte) []byte {
	n := s.grid.Cells() * 4
	if cap(dst) < n {
		dst = make([]byte, n)
	}
	dst = dst[:n]
	for idx := 0; idx < s.grid.Cells(); idx++ {
		c := s.colorAt(idx)
		o := idx * 4
		dst[o] = c.R
		dst[o+1] = c.G
		dst[o+2] = c.B
		dst[o+3] = c.A
	}
	return dst
}

// Colors writes the rendered grid as one color.RGBA per cell, row by row,
// into dst (grown if too small) and returns it.
func (s *Simulation) Colors(dst []color.RGBA) []color.RGBA {
	n := s.grid.Cells()
	if cap(dst) < n {
		dst = make([]color.RGBA, n)
	}
	dst = dst[:n]
	for idx := range dst {
		dst[idx] = s.colorAt(idx)
	}
	return dst
}

// Image renders the grid into a new RGBA image, one pixel per cell.
func (s *Simulation) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, s.grid.Width, s.grid.Height))
	img.Pix = s.Pixels(img.Pix)
	return img
}
