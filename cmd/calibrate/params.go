package main

import (
	"math"

	"github.com/pthm-cable/fluid/config"
)

// RateParam is one searched fluid rate. The optimizer works on the base-10
// exponent of the rate, bounded to [Lo, Hi].
type RateParam struct {
	Name  string // column name, e.g. "log_viscosity"
	Key   string // YAML path of the rate
	Lo    float64
	Hi    float64
	Start float64

	get func(*config.FluidConfig) *float64
}

// ParamVector is the ordered set of searched rates.
type ParamVector struct {
	Params []RateParam
}

// NewParamVector searches viscosity then diffusion, each over 1e-6..1e-1.
func NewParamVector() *ParamVector {
	return &ParamVector{Params: []RateParam{
		{
			Name: "log_viscosity", Key: "fluid.viscosity", Lo: -6, Hi: -1, Start: -3.5,
			get: func(f *config.FluidConfig) *float64 { return &f.Viscosity },
		},
		{
			Name: "log_diffusion", Key: "fluid.diffusion", Lo: -6, Hi: -1, Start: -3.5,
			get: func(f *config.FluidConfig) *float64 { return &f.Diffusion },
		},
	}}
}

func (pv *ParamVector) Dim() int { return len(pv.Params) }

// DefaultVector returns the starting exponents.
func (pv *ParamVector) DefaultVector() []float64 {
	return pv.each(nil, func(p RateParam, _ float64) float64 { return p.Start })
}

// Normalize maps exponents onto the unit cube the simplex starts in.
func (pv *ParamVector) Normalize(exps []float64) []float64 {
	return pv.each(exps, func(p RateParam, v float64) float64 { return (v - p.Lo) / (p.Hi - p.Lo) })
}

// Denormalize is the inverse of Normalize.
func (pv *ParamVector) Denormalize(unit []float64) []float64 {
	return pv.each(unit, func(p RateParam, v float64) float64 { return p.Lo + v*(p.Hi-p.Lo) })
}

// Clamp bounds every exponent to its range.
func (pv *ParamVector) Clamp(exps []float64) []float64 {
	return pv.each(exps, func(p RateParam, v float64) float64 { return math.Min(math.Max(v, p.Lo), p.Hi) })
}

func (pv *ParamVector) each(in []float64, fn func(RateParam, float64) float64) []float64 {
	out := make([]float64, len(pv.Params))
	for i, p := range pv.Params {
		var v float64
		if in != nil {
			v = in[i]
		}
		out[i] = fn(p, v)
	}
	return out
}

// ApplyToConfig sets the rates in cfg from clamped exponents and refreshes
// the float32 copies the solver is built from.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, exps []float64) {
	for i, e := range pv.Clamp(exps) {
		*pv.Params[i].get(&cfg.Fluid) = math.Pow(10, e)
	}
	cfg.Derived.Viscosity32 = float32(cfg.Fluid.Viscosity)
	cfg.Derived.Diffusion32 = float32(cfg.Fluid.Diffusion)
}

// ExtractFromConfig returns the clamped exponents of cfg's rates. A zero
// rate maps to the lower bound.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	exps := make([]float64, len(pv.Params))
	for i, p := range pv.Params {
		exps[i] = logRate(*p.get(&cfg.Fluid))
	}
	return pv.Clamp(exps)
}

func logRate(rate float64) float64 {
	if rate <= 0 {
		return math.Inf(-1)
	}
	return math.Log10(rate)
}
