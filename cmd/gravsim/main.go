package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/san-kum/gravsim/internal/config"
	"github.com/spf13/cobra"
)

const (
	logDirName  = "logs"
	logFileName = "gravsim.log"
)

var (
	dataDir     string
	configFile  string
	dt          float64
	timeScale   float64
	steps       int
	sampleEvery int
	trail       int
	minDistance float64
	debug       bool
	// run
	watch     bool
	frameRate int
	// export-svg
	outPath   string
	svgWidth  int
	svgHeight int
	// analyze
	bodyName string
)

func main() {
	var logFile *os.File

	rootCmd := &cobra.Command{
		Use:   "gravsim",
		Short: "2D newtonian gravity simulator",
		Args:  cobra.MaximumNArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			f, err := setupLogging(debug, dataDir)
			if err != nil {
				return err
			}
			logFile = f
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logFile != nil {
				logFile.Close()
			}
		},
		RunE: runLive,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".gravsim", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.Float64Var(&dt, "dt", config.DefaultDt, "base timestep in seconds")
	pf.Float64Var(&timeScale, "scale", config.DefaultTimeScale, "time scale multiplier")
	pf.IntVar(&steps, "steps", config.DefaultSteps, "steps for headless runs")
	pf.IntVar(&sampleEvery, "sample-every", config.DefaultSampleEvery, "steps between samples")
	pf.IntVar(&trail, "trail", config.DefaultTrailCapacity, "trail points kept per body (0 = all)")
	pf.Float64Var(&minDistance, "min-distance", 0, "distance below which force magnitude is clamped (m)")
	pf.BoolVar(&debug, "debug", false, "write diagnostic logs to <data>/logs")

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "run simulation with live visualization",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run a headless simulation and save the record",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	runCmd.Flags().BoolVar(&watch, "watch", false, "draw the bodies while running")
	runCmd.Flags().IntVar(&frameRate, "fps", 20, "frame rate for --watch")

	compareCmd := &cobra.Command{
		Use:   "compare [preset] [scale...]",
		Short: "run the same system at several time scales in parallel",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareScales,
	}

	benchCmd := &cobra.Command{
		Use:   "bench [preset]",
		Short: "measure integration throughput",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchPreset,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot energy, accuracy and speed of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "estimate orbital periods from recorded trails",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&bodyName, "body", "", "only analyze this body")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render recorded trails to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outPath, "output", "o", "", "output file (default <run_id>.svg)")
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 800, "image height")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outPath, "output", "o", "", "output file (default stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				p, _ := config.GetPreset(name)
				fmt.Printf("  %-12s %s\n", name, p.Description)
			}
		},
	}

	initConfigCmd := &cobra.Command{
		Use:   "init-config [preset] <path>",
		Short: "write a config file with the current settings",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  initConfig,
	}

	rootCmd.AddCommand(liveCmd, runCmd, compareCmd, benchCmd, listCmd, plotCmd, analyzeCmd,
		exportSVGCmd, exportJSONCmd, presetsCmd, initConfigCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setupLogging sends the standard logger to <dir>/logs/gravsim.log when debug
// is set and discards it otherwise. The live view owns the terminal, so logs
// never go to stderr.
func setupLogging(debug bool, dir string) (*os.File, error) {
	if !debug {
		log.SetOutput(io.Discard)
		return nil, nil
	}

	logDir := filepath.Join(dir, logDirName)
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(logDir, logFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	log.Printf("gravsim started, pid %d", os.Getpid())
	return f, nil
}

// resolveConfig layers preset, config file and explicitly set flags, in that
// order. The preset is the positional argument, else the one the config file
// names, else the default.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	name := config.DefaultPreset
	if configFile != "" {
		fromFile, err := config.FilePreset(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		if fromFile != "" {
			name = fromFile
		}
	}
	if len(args) > 0 {
		name = args[0]
	}
	cfg, ok := config.FromPreset(name)
	if !ok {
		return nil, fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets())
	}

	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		cfg.Preset = name
	}

	flags := cmd.Flags()
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("scale") {
		cfg.TimeScale = timeScale
	}
	if flags.Changed("steps") {
		cfg.Steps = steps
	}
	if flags.Changed("sample-every") {
		cfg.SampleEvery = sampleEvery
	}
	if flags.Changed("trail") {
		cfg.TrailCapacity = trail
	}
	if flags.Changed("min-distance") {
		cfg.MinDistance = minDistance
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log.Printf("config: preset=%s dt=%g scale=%g steps=%d trail=%d", cfg.Preset, cfg.Dt, cfg.TimeScale, cfg.Steps, cfg.TrailCapacity)
	return cfg, nil
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := args[len(args)-1]
	cfg, err := resolveConfig(cmd, args[:len(args)-1])
	if err != nil {
		return err
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
