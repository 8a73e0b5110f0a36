// Package game wires the fluid solver to the window, input, UI and telemetry.
package game

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/fluid/config"
	"github.com/pthm-cable/fluid/controls"
	"github.com/pthm-cable/fluid/fluid"
	"github.com/pthm-cable/fluid/renderer"
	"github.com/pthm-cable/fluid/telemetry"
	"github.com/pthm-cable/fluid/ui"
	"github.com/pthm-cable/fluid/viewport"
)

// Steps-per-update bounds for the , and . keys.
const (
	minStepsPerUpdate = 1
	maxStepsPerUpdate = 10
)

// Options configures a Game.
type Options struct {
	LogStats       bool    // Log window and perf stats via slog
	StatsWindowSec float64 // Stats window in simulated seconds (0 = use config)
	SnapshotDir    string  // Save a snapshot on each bookmark (empty = off)
	OutputDir      string  // CSV, config and chart output (empty = off)
	Headless       bool    // No window; the scenario drives the simulation
	StepsPerUpdate int     // Simulation steps per Update call
}

// Game holds the complete application state.
type Game struct {
	sim    *fluid.Simulation
	script *controls.Script

	// Interaction state
	viewport       *viewport.Viewport
	palette        *controls.Palette
	tool           controls.Tool
	brush          brush
	tuning         ui.TuningValues
	paused         bool
	stepsPerUpdate int

	// Monotonic tick counter; survives Reset unlike sim.Steps
	tick int64

	// Telemetry
	collector        *telemetry.Collector
	perfCollector    *telemetry.PerfCollector
	bookmarkDetector *telemetry.BookmarkDetector
	outputManager    *telemetry.OutputManager
	history          *telemetry.History
	logStats         bool
	snapshotDir      string
	statsCallback    func(telemetry.WindowStats)

	// Rendering (nil when headless)
	headless        bool
	densityRenderer *renderer.DensityRenderer
	velocityOverlay *renderer.VelocityOverlay
	hud             *ui.HUD
	help            *ui.HelpOverlay
	overlays        *ui.OverlayRegistry
	controlsPanel   *ui.ControlsPanel
	statsPanel      *ui.StatsPanel
	perfPanel       *ui.PerfPanel
	tuningPanel     *ui.TuningPanel

	screenWidth, screenHeight float32
}

// NewGameWithOptions creates a game from the global configuration.
// config.Init must have been called.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := config.Cfg()

	palette, err := controls.PaletteFromConfig(cfg.Palette)
	if err != nil {
		return nil, fmt.Errorf("building palette: %w", err)
	}

	statsWindowSec := cfg.Telemetry.StatsWindow
	if opts.StatsWindowSec > 0 {
		statsWindowSec = opts.StatsWindowSec
	}
	stepsPerUpdate := clampSteps(opts.StepsPerUpdate)

	g := &Game{
		palette:          palette,
		tool:             controls.ToolFluid,
		stepsPerUpdate:   stepsPerUpdate,
		collector:        telemetry.NewCollector(statsWindowSec, cfg.Derived.DT32),
		perfCollector:    telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		bookmarkDetector: telemetry.NewBookmarkDetector(10),
		history:          telemetry.NewHistory(),
		logStats:         opts.LogStats,
		snapshotDir:      opts.SnapshotDir,
		headless:         opts.Headless,
		screenWidth:      cfg.Derived.ScreenW32,
		screenHeight:     cfg.Derived.ScreenH32,
		tuning: ui.TuningValues{
			Diffusion:      cfg.Derived.Diffusion32,
			Viscosity:      cfg.Derived.Viscosity32,
			ExplosionPower: float32(cfg.Explosion.Power),
			BrushDensity:   float32(cfg.Brush.Density),
		},
		brush: brush{velocityScale: float32(cfg.Brush.VelocityScale)},
	}

	g.sim, err = fluid.New(
		cfg.Grid.Width, cfg.Grid.Height,
		cfg.Derived.Diffusion32, cfg.Derived.Viscosity32, cfg.Derived.DT32,
		fluid.WithSolver(fluid.Solver{
			Iterations:      cfg.Fluid.Iterations,
			Tolerance:       float32(cfg.Fluid.Tolerance),
			IsolateChannels: cfg.Fluid.IsolateChannels,
		}),
		fluid.WithPhaseTimer(g.perfCollector),
	)
	if err != nil {
		return nil, fmt.Errorf("creating simulation: %w", err)
	}

	g.viewport = viewport.New(cfg.Screen.Width, cfg.Screen.Height, cfg.Grid.Width, cfg.Grid.Height)

	if opts.Headless {
		g.script, err = controls.ScriptFromConfig(cfg.Scenario, palette)
		if err != nil {
			return nil, fmt.Errorf("building scenario: %w", err)
		}
	}

	if opts.OutputDir != "" {
		g.outputManager, err = telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			return nil, fmt.Errorf("creating output manager: %w", err)
		}
		if err := g.outputManager.WriteConfig(cfg); err != nil {
			slog.Error("failed to write config", "error", err)
		}
	}

	if !opts.Headless {
		g.initRendering()
	}

	return g, nil
}

// initRendering creates GPU resources and UI. Requires an open window.
func (g *Game) initRendering() {
	cfg := config.Cfg()

	g.densityRenderer = renderer.NewDensityRenderer()
	g.densityRenderer.Init(cfg.Grid.Width, cfg.Grid.Height)
	g.velocityOverlay = renderer.NewVelocityOverlay()

	g.hud = ui.NewHUD()
	g.help = ui.NewHelpOverlay()
	g.overlays = ui.NewOverlayRegistry()
	g.controlsPanel = ui.NewControlsPanel(10, 100, 220)
	g.statsPanel = ui.NewStatsPanel(0, 0, 260)
	g.perfPanel = ui.NewPerfPanel(0, 0)
	g.tuningPanel = ui.NewTuningPanel(0, 0, 300)
	g.layoutPanels()
}

func clampSteps(n int) int {
	if n < minStepsPerUpdate {
		return minStepsPerUpdate
	}
	if n > maxStepsPerUpdate {
		return maxStepsPerUpdate
	}
	return n
}

// Update handles input and advances the simulation stepsPerUpdate times.
func (g *Game) Update() {
	g.perfCollector.RecordFrame()
	g.handleInput()

	if g.paused {
		return
	}
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.simulationStep()
	}
}

// UpdateHeadless replays due scenario events and advances the simulation
// without touching the window.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.perfCollector.StartTick()
		g.perfCollector.StartPhase(telemetry.PhaseInput)
		if _, err := g.script.Apply(g.tick, g.target()); err != nil {
			slog.Warn("scenario event failed", "tick", g.tick, "error", err)
		}
		g.step()
	}
}

// simulationStep runs one interactive tick. Input for the frame has already
// been applied by handleInput.
func (g *Game) simulationStep() {
	g.perfCollector.StartTick()
	g.step()
}

// step advances the solver, records telemetry and ends the perf tick.
func (g *Game) step() {
	g.sim.Step()
	g.tick++

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.collector.RecordTick(g.sim.Diagnostics())
	g.flushTelemetry()
	g.perfCollector.EndTick()
}

// target returns the simulation wrapped so injections are counted.
func (g *Game) target() controls.Target {
	return countingTarget{sim: g.sim, collector: g.collector}
}

// Reset clears the fluid.
func (g *Game) Reset() {
	g.target().Reset()
}

// Tick returns the number of steps taken since start.
func (g *Game) Tick() int64 {
	return g.tick
}

// Simulation returns the underlying solver.
func (g *Game) Simulation() *fluid.Simulation {
	return g.sim
}

// Paused reports whether stepping is suspended.
func (g *Game) Paused() bool {
	return g.paused
}

// ScenarioDone reports whether a headless scenario has no events left.
func (g *Game) ScenarioDone() bool {
	return g.script.Done(g.tick)
}

// SetStatsCallback registers fn to receive every flushed stats window.
func (g *Game) SetStatsCallback(fn func(telemetry.WindowStats)) {
	g.statsCallback = fn
}

// Unload releases resources and writes the end-of-run outputs.
func (g *Game) Unload() {
	if g.outputManager != nil {
		if config.Cfg().Telemetry.Chart && g.history.Len() > 1 {
			if err := g.outputManager.WriteChart(g.history); err != nil {
				slog.Error("failed to write chart", "error", err)
			}
		}
		if err := g.outputManager.Close(); err != nil {
			slog.Error("failed to close output", "error", err)
		}
	}
	if !g.headless {
		g.densityRenderer.Unload()
	}
	g.logRunSummary()
}
