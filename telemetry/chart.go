package telemetry

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// History keeps one point per stats window for the shutdown chart.
type History struct {
	time       []float64
	energy     []float64
	divergence []float64
	mass       []float64
}

// NewHistory returns an empty history.
func NewHistory() *History {
	return &History{}
}

// Add appends the summary of one window.
func (h *History) Add(s WindowStats) {
	h.time = append(h.time, s.SimTimeSec)
	h.energy = append(h.energy, s.EnergyMean)
	h.divergence = append(h.divergence, s.DivergenceMean)
	h.mass = append(h.mass, s.TotalMass())
}

// Len returns the number of recorded windows.
func (h *History) Len() int {
	return len(h.time)
}

func (h *History) xys(ys []float64) plotter.XYs {
	pts := make(plotter.XYs, len(ys))
	for i := range ys {
		pts[i].X = h.time[i]
		pts[i].Y = ys[i]
	}
	return pts
}

// WriteChart saves a line chart of mean kinetic energy, residual divergence
// and total dye mass against simulated time. Each series is scaled to its own
// maximum so all three share one axis.
func (h *History) WriteChart(path string) error {
	p := plot.New()
	p.Title.Text = "Fluid history"
	p.X.Label.Text = "simulated time (s)"
	p.Y.Label.Text = "fraction of run maximum"
	p.Add(plotter.NewGrid())

	series := []struct {
		name  string
		ys    []float64
		color color.RGBA
	}{
		{"kinetic energy", h.energy, color.RGBA{R: 220, G: 60, B: 60, A: 255}},
		{"divergence", h.divergence, color.RGBA{R: 60, G: 60, B: 220, A: 255}},
		{"dye mass", h.mass, color.RGBA{R: 40, G: 160, B: 40, A: 255}},
	}
	for _, s := range series {
		line, err := plotter.NewLine(h.xys(normalized(s.ys)))
		if err != nil {
			return fmt.Errorf("chart %s: %w", s.name, err)
		}
		line.Color = s.color
		line.Width = vg.Points(1.5)
		p.Add(line)
		p.Legend.Add(s.name, line)
	}
	p.Legend.Top = true

	if err := p.Save(8*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("saving chart: %w", err)
	}
	return nil
}

// normalized scales ys into [0, 1] by its maximum absolute value.
func normalized(ys []float64) []float64 {
	out := make([]float64, len(ys))
	var peak float64
	for _, y := range ys {
		if y < 0 {
			y = -y
		}
		peak = max(peak, y)
	}
	if peak == 0 {
		return out
	}
	for i, y := range ys {
		out[i] = y / peak
	}
	return out
}
