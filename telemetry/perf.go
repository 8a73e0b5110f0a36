package telemetry

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/pthm-cable/fluid/fluid"
)

// Phase names for one tick. The solver stages come from fluid.Step via
// fluid.WithPhaseTimer; input and telemetry are marked by the game loop.
const (
	PhaseInput           = "input"
	PhaseDiffuseVelocity = fluid.PhaseDiffuseVelocity
	PhaseProject         = fluid.PhaseProject
	PhaseAdvectVelocity  = fluid.PhaseAdvectVelocity
	PhaseDensity         = fluid.PhaseDensity
	PhaseTelemetry       = "telemetry"
	PhaseOther           = "other"
)

const numPhases = 7

// Phases lists every tracked phase in tick order.
var Phases = [numPhases]string{
	PhaseInput,
	PhaseDiffuseVelocity,
	PhaseProject,
	PhaseAdvectVelocity,
	PhaseDensity,
	PhaseTelemetry,
	PhaseOther,
}

var phaseSlot = func() map[string]int {
	m := make(map[string]int, len(Phases))
	for i, p := range Phases {
		m[p] = i
	}
	return m
}()

const noPhase = -1

// PerfSample holds timing data for a single tick, indexed like Phases.
type PerfSample struct {
	TickDuration time.Duration
	Phases       [numPhases]time.Duration
}

// PerfCollector tracks performance metrics over a rolling window.
// It satisfies fluid.PhaseTimer.
type PerfCollector struct {
	windowSize  int
	samples     []PerfSample
	writeIndex  int
	sampleCount int
	current     PerfSample
	tickStart   time.Time
	phaseStart  time.Time
	lastPhase   int

	// Frame timing (for graphics mode)
	lastFrameTime time.Time
	frameDuration time.Duration
}

// NewPerfCollector creates a new performance collector.
// windowSize: number of ticks to average over (e.g., 60 for 1 second at 60fps).
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		windowSize: windowSize,
		samples:    make([]PerfSample, windowSize),
		lastPhase:  noPhase,
	}
}

// StartTick begins timing a new simulation tick.
func (p *PerfCollector) StartTick() {
	p.tickStart = time.Now()
	p.current = PerfSample{}
	p.lastPhase = noPhase
}

// StartPhase ends the running phase, if any, and begins timing the named
// one. Names outside Phases are accounted as PhaseOther.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	p.closePhase(now)
	slot, ok := phaseSlot[phase]
	if !ok {
		slot = phaseSlot[PhaseOther]
	}
	p.phaseStart = now
	p.lastPhase = slot
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.lastPhase != noPhase {
		p.current.Phases[p.lastPhase] += now.Sub(p.phaseStart)
	}
}

// EndTick finishes timing the current tick and records the sample.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	p.closePhase(now)
	p.lastPhase = noPhase
	p.current.TickDuration = now.Sub(p.tickStart)

	p.samples[p.writeIndex] = p.current
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// RecordFrame records frame timing for graphics mode.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrameTime.IsZero() {
		p.frameDuration = now.Sub(p.lastFrameTime)
	}
	p.lastFrameTime = now
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	// Tick timing
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration

	// Phase breakdown (average durations), only phases that ran
	PhaseAvg map[string]time.Duration

	// Phase percentages of total tick time
	PhasePct map[string]float64

	// Throughput
	TicksPerSecond float64

	// Frame timing (graphics mode)
	FrameDuration time.Duration
	FPS           float64
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	var fps float64
	if p.frameDuration > 0 {
		fps = float64(time.Second) / float64(p.frameDuration)
	}

	stats := PerfStats{
		PhaseAvg:      make(map[string]time.Duration),
		PhasePct:      make(map[string]float64),
		FrameDuration: p.frameDuration,
		FPS:           fps,
	}
	if p.sampleCount == 0 {
		return stats
	}

	var totalTick time.Duration
	var phaseSum [numPhases]time.Duration
	var seen [numPhases]bool

	for i := 0; i < p.sampleCount; i++ {
		s := p.samples[i]
		totalTick += s.TickDuration

		if i == 0 || s.TickDuration < stats.MinTickDuration {
			stats.MinTickDuration = s.TickDuration
		}
		if s.TickDuration > stats.MaxTickDuration {
			stats.MaxTickDuration = s.TickDuration
		}

		for slot, dur := range s.Phases {
			if dur > 0 {
				phaseSum[slot] += dur
				seen[slot] = true
			}
		}
	}

	n := time.Duration(p.sampleCount)
	stats.AvgTickDuration = totalTick / n

	for slot, name := range Phases {
		if !seen[slot] {
			continue
		}
		avg := phaseSum[slot] / n
		stats.PhaseAvg[name] = avg
		if stats.AvgTickDuration > 0 {
			stats.PhasePct[name] = float64(avg) / float64(stats.AvgTickDuration) * 100
		}
	}

	if stats.AvgTickDuration > 0 {
		stats.TicksPerSecond = float64(time.Second) / float64(stats.AvgTickDuration)
	}
	return stats
}

func (s PerfStats) attrs() []slog.Attr {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("min_tick_us", s.MinTickDuration.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTickDuration.Microseconds()),
		slog.Float64("ticks_per_sec", math.Round(s.TicksPerSecond)),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", math.Round(s.FPS)))
	}
	for _, phase := range Phases {
		if pct, ok := s.PhasePct[phase]; ok && pct >= 0.1 {
			attrs = append(attrs, slog.Float64(phase+"_pct", math.Round(pct*10)/10))
		}
	}
	return attrs
}

// LogStats logs the window at info level.
func (s PerfStats) LogStats() {
	slog.LogAttrs(context.Background(), slog.LevelInfo, "perf", s.attrs()...)
}

// LogValue implements slog.LogValuer.
func (s PerfStats) LogValue() slog.Value {
	return slog.GroupValue(s.attrs()...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	WindowEnd          int64   `csv:"window_end"`
	AvgTickUS          int64   `csv:"avg_tick_us"`
	MinTickUS          int64   `csv:"min_tick_us"`
	MaxTickUS          int64   `csv:"max_tick_us"`
	TicksPerSec        float64 `csv:"ticks_per_sec"`
	FPS                float64 `csv:"fps"`
	InputPct           float64 `csv:"input_pct"`
	DiffuseVelocityPct float64 `csv:"diffuse_velocity_pct"`
	ProjectPct         float64 `csv:"project_pct"`
	AdvectVelocityPct  float64 `csv:"advect_velocity_pct"`
	DensityPct         float64 `csv:"density_pct"`
	TelemetryPct       float64 `csv:"telemetry_pct"`
	OtherPct           float64 `csv:"other_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(windowEnd int64) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:          windowEnd,
		AvgTickUS:          s.AvgTickDuration.Microseconds(),
		MinTickUS:          s.MinTickDuration.Microseconds(),
		MaxTickUS:          s.MaxTickDuration.Microseconds(),
		TicksPerSec:        s.TicksPerSecond,
		FPS:                s.FPS,
		InputPct:           s.PhasePct[PhaseInput],
		DiffuseVelocityPct: s.PhasePct[PhaseDiffuseVelocity],
		ProjectPct:         s.PhasePct[PhaseProject],
		AdvectVelocityPct:  s.PhasePct[PhaseAdvectVelocity],
		DensityPct:         s.PhasePct[PhaseDensity],
		TelemetryPct:       s.PhasePct[PhaseTelemetry],
		OtherPct:           s.PhasePct[PhaseOther],
	}
}
