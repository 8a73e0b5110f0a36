// Command calibrate searches for viscosity and diffusion rates whose decay
// of kinetic energy and peak density over a fixed number of steps matches
// given targets.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/fluid/config"
)

// EvalRecord is one row of calibrate_log.csv.
type EvalRecord struct {
	Eval            int     `csv:"eval"`
	Fitness         float64 `csv:"fitness"`
	EnergyRetention float64 `csv:"energy_retention"`
	PeakRetention   float64 `csv:"peak_retention"`
	Viscosity       float64 `csv:"viscosity"`
	Diffusion       float64 `csv:"diffusion"`
}

// formatDuration formats a duration as HH:MM:SS or MM:SS for shorter durations.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	steps := flag.Int("steps", 200, "Simulation steps per run")
	target := flag.Float64("target", 0.06, "Target kinetic energy retention after -steps")
	peakTarget := flag.Float64("peak-target", 0.9, "Target peak density retention after -steps")
	maxEvals := flag.Int("max-evals", 60, "Maximum number of evaluations")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	baseCfg := config.Cfg()

	params := NewParamVector()
	evaluator := NewFitnessEvaluator(params, *steps, baseCfg)
	evaluator.EnergyTarget = *target
	evaluator.PeakTarget = *peakTarget

	logFile, err := os.Create(filepath.Join(*outputDir, "calibrate_log.csv"))
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer logFile.Close()

	run := &runLog{out: logFile, maxEvals: *maxEvals, best: math.Inf(1), start: time.Now()}

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			exps := params.Clamp(params.Denormalize(x))
			fitness := evaluator.Evaluate(exps)
			run.record(exps, fitness, evaluator.LastRetention())
			return fitness
		},
	}

	fmt.Printf("Calibrating %d parameters on a %dx%d grid, %d steps per run, max_evals=%d\n",
		params.Dim(), baseCfg.Grid.Width, baseCfg.Grid.Height, *steps, *maxEvals)

	result, err := optimize.Minimize(problem,
		params.Normalize(params.DefaultVector()),
		&optimize.Settings{FuncEvaluations: *maxEvals},
		&optimize.NelderMead{SimplexSize: 0.25},
	)
	if err != nil {
		log.Printf("optimization ended: %v", err)
	}
	bestParams := run.bestExps
	if bestParams == nil && result != nil {
		bestParams = params.Clamp(params.Denormalize(result.X))
	}
	if bestParams == nil {
		log.Fatal("no evaluation completed")
	}

	fmt.Printf("\nCalibration complete after %d evaluations in %s\n", run.evals, formatDuration(time.Since(run.start)))
	fmt.Printf("Best fitness: %.3g\n", run.best)
	fmt.Println("\nBest parameters:")
	for i, p := range params.Params {
		fmt.Printf("  %s: %.3e\n", p.Key, math.Pow(10, bestParams[i]))
	}

	bestCfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to reload config: %v", err)
	}
	params.ApplyToConfig(bestCfg, bestParams)

	configOutPath := filepath.Join(*outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(configOutPath); err != nil {
		log.Printf("failed to write best config: %v", err)
	} else {
		fmt.Printf("\nBest config saved to: %s\n", configOutPath)
	}
}

// runLog tracks the best evaluation and appends every evaluation to the
// CSV log. Nelder-Mead calls Func serially, so no locking is needed.
type runLog struct {
	out      *os.File
	maxEvals int
	start    time.Time

	evals    int
	best     float64
	bestExps []float64
}

func (r *runLog) record(exps []float64, fitness float64, ret Retention) {
	r.evals++
	if fitness < r.best {
		r.best = fitness
		r.bestExps = exps
	}

	rows := []EvalRecord{{
		Eval:            r.evals,
		Fitness:         fitness,
		EnergyRetention: ret.Energy,
		PeakRetention:   ret.Peak,
		Viscosity:       math.Pow(10, exps[0]),
		Diffusion:       math.Pow(10, exps[1]),
	}}
	var err error
	if r.evals == 1 {
		err = gocsv.Marshal(&rows, r.out)
	} else {
		err = gocsv.MarshalWithoutHeaders(&rows, r.out)
	}
	if err != nil {
		log.Printf("failed to log evaluation: %v", err)
	}

	elapsed := time.Since(r.start)
	remaining := time.Duration(max(r.maxEvals-r.evals, 0)) * (elapsed / time.Duration(r.evals))
	fmt.Printf("Eval %d/%d: energy=%.4f peak=%.4f fitness=%.3g (best=%.3g) | elapsed: %s, ETA: %s\n",
		r.evals, r.maxEvals, ret.Energy, ret.Peak, fitness, r.best,
		formatDuration(elapsed), formatDuration(remaining))
}
