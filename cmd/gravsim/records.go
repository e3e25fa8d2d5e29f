package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/gravsim/internal/analysis"
	"github.com/san-kum/gravsim/internal/export"
	"github.com/san-kum/gravsim/internal/physics"
	"github.com/san-kum/gravsim/internal/sim"
	"github.com/san-kum/gravsim/internal/storage"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r2"
)

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tSTEPS\tELAPSED\tBODIES\tDRIFT")

	for _, run := range runs {
		u := physics.UnitsFor(run.G)
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.1f %s\t%d\t%.3e\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Steps,
			float64(run.Steps)*run.Dt*run.TimeScale/u.Time,
			u.TimeName,
			len(run.Bodies),
			run.EnergyDrift,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}
	if len(samples) < 2 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("preset: %s\n", meta.Preset)
	fmt.Printf("samples: %d\n\n", len(samples))

	series := []struct {
		caption string
		pick    func(sim.Sample) float64
	}{
		{"total energy (J)", func(s sim.Sample) float64 { return s.Energy }},
		{"energy accuracy (%)", func(s sim.Sample) float64 { return s.Accuracy }},
		{"average speed (m/s)", func(s sim.Sample) float64 { return s.AvgSpeed }},
	}

	for _, sr := range series {
		graph := asciigraph.Plot(sampleSeries(samples, sr.pick),
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(sr.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	trajs, err := st.LoadTrajectories(runID)
	if err != nil {
		return err
	}
	if len(trajs) == 0 {
		return fmt.Errorf("no trajectories recorded")
	}

	// trails hold one point per step
	stepDt := meta.Dt * meta.TimeScale
	center, primary := primaryPosition(meta)

	fmt.Printf("orbit analysis: %s\n", meta.ID)
	fmt.Printf("preset: %s, %d points per trail at most\n\n", meta.Preset, maxPoints(trajs))
	u := physics.UnitsFor(meta.G)
	fmt.Printf("%-10s  %-12s  %-14s  %-14s  %-6s\n", "body",
		"period_"+u.TimeName, "min_dist_"+u.LengthName, "max_dist_"+u.LengthName, "ecc")

	var spectrum []float64
	for _, tr := range trajs {
		if tr.Name == primary || (bodyName != "" && tr.Name != bodyName) {
			continue
		}

		s, err := analysis.Orbit(tr.Points, center, stepDt)
		period := "-"
		switch {
		case err == nil:
			period = fmt.Sprintf("%.2f", s.Period/u.Time)
		case errors.Is(err, analysis.ErrShortSeries):
			fmt.Printf("%-10s  trail too short\n", tr.Name)
			continue
		}
		fmt.Printf("%-10s  %12s  %14.4f  %14.4f  %6.4f\n",
			tr.Name, period, s.MinDistance/u.Length, s.MaxDistance/u.Length, s.Eccentricity)

		if spectrum == nil && bodyName != "" {
			xs := make([]float64, len(tr.Points))
			for i, p := range tr.Points {
				xs[i] = p.X - center.X
			}
			spectrum = analysis.PowerSpectrum(xs)
		}
	}

	if len(spectrum) > 2 {
		plotData := spectrum[1:]
		if len(plotData) > 80 {
			plotData = plotData[:80]
		}
		fmt.Println()
		fmt.Println(asciigraph.Plot(plotData,
			asciigraph.Height(12),
			asciigraph.Width(80),
			asciigraph.Caption("power spectrum of x ("+bodyName+")"),
		))
	}
	return nil
}

// primaryPosition returns the final position and name of the primary, or the
// origin when the run had none.
func primaryPosition(meta *storage.RunMetadata) (r2.Vec, string) {
	b, ok := meta.Primary()
	if !ok {
		return r2.Vec{}, ""
	}
	return r2.Vec{X: b.X, Y: b.Y}, b.Name
}

func maxPoints(trajs []storage.Trajectory) int {
	n := 0
	for _, tr := range trajs {
		n = max(n, len(tr.Points))
	}
	return n
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	trajs, err := st.LoadTrajectories(runID)
	if err != nil {
		return err
	}

	paths := make([]export.Path, len(trajs))
	for i, tr := range trajs {
		paths[i] = export.Path{Name: tr.Name, Color: tr.Color, Points: tr.Points}
	}

	out := outPath
	if out == "" {
		out = runID + ".svg"
	}
	if err := export.WriteSVGFile(out, paths, svgWidth, svgHeight); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", out)
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	if outPath == "" {
		return st.ExportJSON(args[0], os.Stdout)
	}
	if err := st.ExportJSONFile(args[0], outPath); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", outPath)
	return nil
}
