package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int64   `csv:"-"`
	WindowEndTick   int64   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Dye mass per channel at window end
	MassRed   float64 `csv:"mass_red"`
	MassGreen float64 `csv:"mass_green"`
	MassBlue  float64 `csv:"mass_blue"`

	// Kinetic energy over the window
	EnergyEnd  float64 `csv:"energy"`
	EnergyMean float64 `csv:"energy_mean"`
	EnergyMax  float64 `csv:"energy_max"`
	MaxSpeed   float64 `csv:"max_speed"`

	// Divergence L2 norm after the final projection of each step
	DivergenceMean float64 `csv:"div_mean"`
	DivergenceP50  float64 `csv:"div_p50"`
	DivergenceP90  float64 `csv:"div_p90"`
	DivergenceMax  float64 `csv:"div_max"`

	// Divergence fed to the final projection, sampled at window end
	DivergencePre float64 `csv:"div_pre"`

	// Solver cost
	SweepsMean float64 `csv:"sweeps_mean"`

	// Injections during window
	Densities  int `csv:"densities"`
	Velocities int `csv:"velocities"`
	Explosions int `csv:"explosions"`
	Resets     int `csv:"resets"`
}

// TotalMass returns the summed mass of all three channels.
func (s WindowStats) TotalMass() float64 {
	return s.MassRed + s.MassGreen + s.MassBlue
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// SeriesStats summarises a window of per-tick samples.
type SeriesStats struct {
	Mean, P50, P90, Max float64
}

// ComputeSeriesStats calculates mean, median, p90 and max of values.
func ComputeSeriesStats(values []float64) SeriesStats {
	n := len(values)
	if n == 0 {
		return SeriesStats{}
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	return SeriesStats{
		Mean: floats.Sum(sorted) / float64(n),
		P50:  Percentile(sorted, 0.50),
		P90:  Percentile(sorted, 0.90),
		Max:  floats.Max(sorted),
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_start", s.WindowStartTick),
		slog.Int64("window_end", s.WindowEndTick),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Float64("mass_red", s.MassRed),
		slog.Float64("mass_green", s.MassGreen),
		slog.Float64("mass_blue", s.MassBlue),
		slog.Float64("energy", s.EnergyEnd),
		slog.Float64("energy_mean", s.EnergyMean),
		slog.Float64("energy_max", s.EnergyMax),
		slog.Float64("max_speed", s.MaxSpeed),
		slog.Float64("div_mean", s.DivergenceMean),
		slog.Float64("div_p50", s.DivergenceP50),
		slog.Float64("div_p90", s.DivergenceP90),
		slog.Float64("div_max", s.DivergenceMax),
		slog.Float64("div_pre", s.DivergencePre),
		slog.Float64("sweeps_mean", s.SweepsMean),
		slog.Int("densities", s.Densities),
		slog.Int("velocities", s.Velocities),
		slog.Int("explosions", s.Explosions),
		slog.Int("resets", s.Resets),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"mass", s.TotalMass(),
		"energy", s.EnergyEnd,
		"energy_max", s.EnergyMax,
		"max_speed", s.MaxSpeed,
		"div_p50", s.DivergenceP50,
		"div_max", s.DivergenceMax,
		"div_pre", s.DivergencePre,
		"sweeps_mean", s.SweepsMean,
		"densities", s.Densities,
		"velocities", s.Velocities,
		"explosions", s.Explosions,
		"resets", s.Resets,
	)
}
