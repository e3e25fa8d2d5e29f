package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/integrators"
	"github.com/san-kum/gravsim/internal/metrics"
	"github.com/san-kum/gravsim/internal/physics"
	"github.com/san-kum/gravsim/internal/sim"
	"github.com/san-kum/gravsim/internal/storage"
	"github.com/san-kum/gravsim/internal/tui"
	"github.com/san-kum/gravsim/internal/viz"
	"github.com/spf13/cobra"
)

// newSimulator builds the bodies, force model and metrics a config describes.
func newSimulator(cfg *config.Config) (*sim.Simulator, error) {
	bodies, err := cfg.ToBodies()
	if err != nil {
		return nil, err
	}

	g := cfg.Gravity()
	integ := integrators.NewSemiImplicitEuler(physics.NewGravityWith(g, cfg.MinDistance))
	s, err := sim.New(bodies, integ, g, sim.Config{
		BaseDt:        cfg.Dt,
		TimeScale:     cfg.TimeScale,
		ValidateState: true,
	})
	if err != nil {
		return nil, err
	}

	s.AddMetric(metrics.NewEnergyAccuracy(g))
	s.AddMetric(metrics.NewEnergyDrift(g))
	s.AddMetric(metrics.NewMeanSpeed())
	return s, nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	s, err := newSimulator(cfg)
	if err != nil {
		return err
	}
	return viz.Run(s, cfg.Preset)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	if cfg.Steps < 1 {
		return fmt.Errorf("steps must be positive, got %d", cfg.Steps)
	}

	s, err := newSimulator(cfg)
	if err != nil {
		return err
	}

	if watch {
		w := tui.NewWatcher(os.Stdout, cfg.Preset, frameRate)
		w.Start()
		defer w.Stop()
		s.AddObserver(w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running %s for %d steps...\n", cfg.Preset, cfg.Steps)
	start := time.Now()

	result, err := s.Run(ctx, cfg.Steps, cfg.SampleEvery)
	if err != nil && result == nil {
		return err
	}
	if err != nil {
		// keep what was simulated before the interruption
		fmt.Printf("stopped early: %v\n", err)
		log.Printf("run interrupted after %d steps: %v", result.StepsTaken, err)
	}
	elapsed := time.Since(start)

	st := storage.New(dataDir)
	runID, saveErr := st.Save(storage.RunInfo{
		Preset:    cfg.Preset,
		Dt:        cfg.Dt,
		TimeScale: cfg.TimeScale,
		G:         cfg.Gravity(),
	}, result)
	if saveErr != nil {
		return fmt.Errorf("save run: %w", saveErr)
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	u := physics.UnitsFor(cfg.Gravity())
	fmt.Printf("steps: %d (%.1f %s)\n", result.StepsTaken, s.Clock().Elapsed()/u.Time, u.TimeName)
	for _, e := range result.Errors {
		fmt.Printf("error: %v\n", e)
	}
	printMetrics(result.Metrics)

	if acc := sampleSeries(result.Samples, func(x sim.Sample) float64 { return x.Accuracy }); len(acc) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(acc,
			asciigraph.Height(8),
			asciigraph.Width(70),
			asciigraph.Precision(6),
			asciigraph.Caption("energy accuracy %"),
		))
	}
	return err
}

func printMetrics(m map[string]float64) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("\nmetrics:")
	for _, name := range names {
		fmt.Printf("  %-16s %.8g\n", name, m[name])
	}
}

func sampleSeries(samples []sim.Sample, pick func(sim.Sample) float64) []float64 {
	out := make([]float64, len(samples))
	for i, smp := range samples {
		out[i] = pick(smp)
	}
	return out
}

func compareScales(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[:1])
	if err != nil {
		return err
	}
	if cfg.Steps < 1 {
		return fmt.Errorf("steps must be positive, got %d", cfg.Steps)
	}

	scales := make([]float64, 0, len(args)-1)
	for _, a := range args[1:] {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return fmt.Errorf("invalid scale %q: %w", a, err)
		}
		scales = append(scales, v)
	}

	build := func(scale float64) (*sim.Simulator, error) {
		c := *cfg
		c.TimeScale = scale
		return newSimulator(&c)
	}

	fmt.Printf("comparing time scales for %s (dt=%gs, %d steps)\n\n", cfg.Preset, cfg.Dt, cfg.Steps)
	start := time.Now()
	results, err := sim.NewEnsemble(build, scales).Run(cmd.Context(), cfg.Steps, cfg.SampleEvery)
	if err != nil {
		return err
	}

	u := physics.UnitsFor(cfg.Gravity())
	fmt.Printf("%-10s  %-12s  %-14s  %-14s\n", "scale", "elapsed_"+u.TimeName, "energy_drift", "accuracy_%")
	fmt.Println(strings.Repeat("-", 56))
	for i, res := range results {
		elapsed := 0.0
		if n := len(res.Samples); n > 0 {
			elapsed = res.Samples[n-1].Time / u.Time
		}
		fmt.Printf("%-10g  %12.1f  %14.4e  %14.8f\n", scales[i], elapsed, res.EnergyDrift, res.Metrics["energy_accuracy"])
		for _, e := range res.Errors {
			fmt.Printf("%-10s  halted: %v\n", "", e)
		}
	}
	fmt.Printf("\nwall time: %v\n", time.Since(start))
	return nil
}

func benchPreset(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	cfg.TrailCapacity = 1
	s, err := newSimulator(cfg)
	if err != nil {
		return err
	}

	n := cfg.Steps
	if n < 1 {
		n = config.DefaultSteps
	}
	fmt.Printf("benchmarking %s (%d bodies, %d steps)...\n", cfg.Preset, len(s.Bodies()), n)

	start := time.Now()
	for i := 0; i < n; i++ {
		if _, err := s.Tick(); err != nil {
			return err
		}
	}
	elapsed := time.Since(start)

	pairs := len(s.Bodies()) * (len(s.Bodies()) - 1)
	fmt.Printf("total time: %v\n", elapsed)
	fmt.Printf("per step: %v\n", elapsed/time.Duration(n))
	fmt.Printf("steps/sec: %.0f\n", float64(n)/elapsed.Seconds())
	fmt.Printf("force evaluations/sec: %.0f\n", float64(n*pairs)/elapsed.Seconds())
	return nil
}
