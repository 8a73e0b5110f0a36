// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid is wrapped by every validation failure returned from Load.
var ErrInvalid = errors.New("config: invalid value")

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig      `yaml:"screen"`
	Grid      GridConfig        `yaml:"grid"`
	Fluid     FluidConfig       `yaml:"fluid"`
	Brush     BrushConfig       `yaml:"brush"`
	Explosion ExplosionConfig   `yaml:"explosion"`
	Palette   []ColorConfig     `yaml:"palette"`
	Telemetry TelemetryConfig   `yaml:"telemetry"`
	Scenario  []InjectionConfig `yaml:"scenario"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Title     string `yaml:"title"`
}

// GridConfig holds the simulation grid dimensions in cells.
// The grid is stretched over the whole window when drawn.
type GridConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// FluidConfig holds solver parameters.
type FluidConfig struct {
	Diffusion       float64 `yaml:"diffusion"`        // Density diffusion rate
	Viscosity       float64 `yaml:"viscosity"`        // Velocity diffusion rate
	DT              float64 `yaml:"dt"`               // Fixed timestep per step
	Iterations      int     `yaml:"iterations"`       // Gauss-Seidel sweeps per solve
	Tolerance       float64 `yaml:"tolerance"`        // Early exit threshold (0 = always run all sweeps)
	IsolateChannels bool    `yaml:"isolate_channels"` // Zero density scratch per color channel
}

// BrushConfig holds the drag tool parameters.
type BrushConfig struct {
	Density       float64 `yaml:"density"`        // Amount deposited per drag event
	VelocityScale float64 `yaml:"velocity_scale"` // Mouse delta (pixels) to velocity
}

// ExplosionConfig holds the explosion tool parameters.
type ExplosionConfig struct {
	Power float64 `yaml:"power"`
}

// ColorConfig is one named entry of the brush palette.
type ColorConfig struct {
	Name string `yaml:"name"`
	R    uint8  `yaml:"r"`
	G    uint8  `yaml:"g"`
	B    uint8  `yaml:"b"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`          // Seconds of simulated time per stats window
	PerfCollectorWindow int     `yaml:"perf_collector_window"` // Ticks of phase timings kept
	Chart               bool    `yaml:"chart"`                 // Write history.png on shutdown
}

// Injection kinds accepted in the scenario list.
const (
	InjectDensity   = "density"
	InjectVelocity  = "velocity"
	InjectExplosion = "explosion"
	InjectReset     = "reset"
)

// InjectionConfig is one scripted event replayed by headless runs.
type InjectionConfig struct {
	Tick   int64   `yaml:"tick"`   // First tick the event fires on
	Every  int64   `yaml:"every"`  // Repeat interval in ticks (0 = once)
	Until  int64   `yaml:"until"`  // Last tick a repeating event may fire on (0 = no limit)
	Kind   string  `yaml:"kind"`   // density, velocity, explosion or reset
	X      int     `yaml:"x"`      // Grid cell
	Y      int     `yaml:"y"`      // Grid cell
	Amount float64 `yaml:"amount"` // density only
	DX     float64 `yaml:"dx"`     // velocity only
	DY     float64 `yaml:"dy"`     // velocity only
	Power  float64 `yaml:"power"`  // explosion only
	Color  string  `yaml:"color"`  // Palette entry name (density, explosion)
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32             float32        // Fluid.DT as float32
	Diffusion32      float32        // Fluid.Diffusion as float32
	Viscosity32      float32        // Fluid.Viscosity as float32
	ScreenW32        float32        // Screen.Width as float32
	ScreenH32        float32        // Screen.Height as float32
	StatsWindowTicks int            // Telemetry.StatsWindow / Fluid.DT, at least 1
	PaletteIndex     map[string]int // name -> palette position
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in the file. Lists (palette,
		// scenario) are replaced wholesale.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT32 = float32(c.Fluid.DT)
	c.Derived.Diffusion32 = float32(c.Fluid.Diffusion)
	c.Derived.Viscosity32 = float32(c.Fluid.Viscosity)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	c.Derived.StatsWindowTicks = 1
	if c.Fluid.DT > 0 {
		if n := int(c.Telemetry.StatsWindow / c.Fluid.DT); n > 1 {
			c.Derived.StatsWindowTicks = n
		}
	}

	c.Derived.PaletteIndex = make(map[string]int, len(c.Palette))
	for i, col := range c.Palette {
		c.Derived.PaletteIndex[col.Name] = i
	}
}

// Validate reports the first out-of-range value.
func (c *Config) Validate() error {
	switch {
	case c.Screen.Width <= 0 || c.Screen.Height <= 0:
		return fmt.Errorf("%w: screen %dx%d", ErrInvalid, c.Screen.Width, c.Screen.Height)
	case c.Grid.Width < 3 || c.Grid.Height < 3:
		return fmt.Errorf("%w: grid %dx%d must be at least 3x3", ErrInvalid, c.Grid.Width, c.Grid.Height)
	case c.Fluid.DT <= 0:
		return fmt.Errorf("%w: fluid.dt %v must be positive", ErrInvalid, c.Fluid.DT)
	case c.Fluid.Diffusion < 0 || c.Fluid.Viscosity < 0:
		return fmt.Errorf("%w: fluid rates must be non-negative", ErrInvalid)
	case c.Fluid.Iterations < 1:
		return fmt.Errorf("%w: fluid.iterations %d", ErrInvalid, c.Fluid.Iterations)
	case c.Fluid.Tolerance < 0:
		return fmt.Errorf("%w: fluid.tolerance %v", ErrInvalid, c.Fluid.Tolerance)
	case len(c.Palette) == 0:
		return fmt.Errorf("%w: palette is empty", ErrInvalid)
	case len(c.Derived.PaletteIndex) != len(c.Palette):
		return fmt.Errorf("%w: duplicate palette names", ErrInvalid)
	}

	for i, inj := range c.Scenario {
		if err := c.validateInjection(inj); err != nil {
			return fmt.Errorf("scenario[%d]: %w", i, err)
		}
	}
	return nil
}

func (c *Config) validateInjection(inj InjectionConfig) error {
	if inj.Tick < 0 || inj.Every < 0 || inj.Until < 0 {
		return fmt.Errorf("%w: negative tick field", ErrInvalid)
	}
	switch inj.Kind {
	case InjectDensity, InjectExplosion:
		if _, ok := c.Derived.PaletteIndex[inj.Color]; !ok {
			return fmt.Errorf("%w: unknown color %q", ErrInvalid, inj.Color)
		}
	case InjectVelocity, InjectReset:
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalid, inj.Kind)
	}
	return nil
}

// Color returns the palette entry with the given name.
func (c *Config) Color(name string) (ColorConfig, bool) {
	i, ok := c.Derived.PaletteIndex[name]
	if !ok {
		return ColorConfig{}, false
	}
	return c.Palette[i], true
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
