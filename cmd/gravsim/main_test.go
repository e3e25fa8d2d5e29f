package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/gravsim/internal/config"
	"github.com/spf13/cobra"
)

func TestSetupLoggingDisabled(t *testing.T) {
	defer log.SetOutput(os.Stderr)

	f, err := setupLogging(false, t.TempDir())
	if err != nil {
		t.Fatalf("setupLogging failed: %v", err)
	}
	if f != nil {
		t.Error("expected no log file when debug is off")
	}
	if log.Writer() != io.Discard {
		t.Error("expected log output to be discarded")
	}
}

func TestSetupLoggingDebug(t *testing.T) {
	defer log.SetOutput(os.Stderr)

	dir := t.TempDir()
	f, err := setupLogging(true, dir)
	if err != nil {
		t.Fatalf("setupLogging failed: %v", err)
	}
	defer f.Close()

	log.Printf("tick")

	data, err := os.ReadFile(filepath.Join(dir, logDirName, logFileName))
	if err != nil {
		t.Fatalf("log file not created: %v", err)
	}
	if !strings.Contains(string(data), "gravsim started") || !strings.Contains(string(data), "tick") {
		t.Errorf("unexpected log contents: %q", data)
	}
}

func newFlagCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	fs := cmd.Flags()
	fs.Float64Var(&dt, "dt", 86400, "")
	fs.Float64Var(&timeScale, "scale", 1, "")
	fs.IntVar(&steps, "steps", 3650, "")
	fs.IntVar(&sampleEvery, "sample-every", 10, "")
	fs.IntVar(&trail, "trail", 2000, "")
	fs.Float64Var(&minDistance, "min-distance", 0, "")
	return cmd
}

func TestResolveConfigPrecedence(t *testing.T) {
	defer log.SetOutput(os.Stderr)
	log.SetOutput(io.Discard)

	path := filepath.Join(t.TempDir(), "gravsim.yaml")
	if err := os.WriteFile(path, []byte("time_scale: 4\nsteps: 20\n"), 0644); err != nil {
		t.Fatal(err)
	}
	configFile = path
	defer func() { configFile = "" }()

	cmd := newFlagCommand()
	if err := cmd.Flags().Set("steps", "7"); err != nil {
		t.Fatal(err)
	}

	cfg, err := resolveConfig(cmd, []string{"unit-circle"})
	if err != nil {
		t.Fatalf("resolveConfig failed: %v", err)
	}

	// preset supplies dt and G, the file the scale, the flag the steps
	if cfg.Preset != "unit-circle" || cfg.Dt != 0.01 || cfg.Gravity() != 1 {
		t.Errorf("preset values lost: %+v", cfg)
	}
	if cfg.TimeScale != 4 {
		t.Errorf("expected file time scale 4, got %v", cfg.TimeScale)
	}
	if cfg.Steps != 7 {
		t.Errorf("expected flag steps 7, got %d", cfg.Steps)
	}
	if cfg.TrailCapacity != 2000 {
		t.Errorf("unchanged flag should not override, got trail %d", cfg.TrailCapacity)
	}
}

func TestResolveConfigPresetFromFile(t *testing.T) {
	defer log.SetOutput(os.Stderr)
	log.SetOutput(io.Discard)
	defer func() { configFile = "" }()

	tests := []struct {
		name   string
		yaml   string
		args   []string
		preset string
		dt     float64
		g      float64
	}{
		{"file names preset", "preset: unit-circle\n", nil, "unit-circle", 0.01, 1},
		{"file dt beats its preset", "preset: unit-circle\ndt: 0.5\n", nil, "unit-circle", 0.5, 1},
		{"argument beats file preset", "preset: unit-circle\n", []string{"sun-earth"}, "sun-earth", 86400, 6.67428e-11},
		{"no preset anywhere", "steps: 3\n", nil, "solar", 86400, 6.67428e-11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configFile = filepath.Join(t.TempDir(), "gravsim.yaml")
			if err := os.WriteFile(configFile, []byte(tt.yaml), 0644); err != nil {
				t.Fatal(err)
			}

			cfg, err := resolveConfig(newFlagCommand(), tt.args)
			if err != nil {
				t.Fatalf("resolveConfig failed: %v", err)
			}
			if cfg.Preset != tt.preset || cfg.Dt != tt.dt || cfg.Gravity() != tt.g {
				t.Errorf("got preset=%s dt=%v g=%v, want preset=%s dt=%v g=%v",
					cfg.Preset, cfg.Dt, cfg.Gravity(), tt.preset, tt.dt, tt.g)
			}
		})
	}
}

func TestInitConfigPreset(t *testing.T) {
	defer log.SetOutput(os.Stderr)
	log.SetOutput(io.Discard)

	path := filepath.Join(t.TempDir(), "unit.yaml")
	if err := initConfig(newFlagCommand(), []string{"unit-circle", path}); err != nil {
		t.Fatalf("initConfig failed: %v", err)
	}

	saved, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if saved.Preset != "unit-circle" || saved.G != 1 || saved.Dt != 0.01 {
		t.Errorf("unexpected saved config %+v", saved)
	}

	plain := filepath.Join(t.TempDir(), "default.yaml")
	if err := initConfig(newFlagCommand(), []string{plain}); err != nil {
		t.Fatalf("initConfig failed: %v", err)
	}
	if saved, err := config.Load(plain); err != nil || saved.Preset != config.DefaultPreset {
		t.Errorf("expected default preset, got %+v (%v)", saved, err)
	}
}

func TestResolveConfigErrors(t *testing.T) {
	defer log.SetOutput(os.Stderr)
	log.SetOutput(io.Discard)

	if _, err := resolveConfig(newFlagCommand(), []string{"pluto"}); err == nil {
		t.Error("expected error for unknown preset")
	}

	cmd := newFlagCommand()
	if err := cmd.Flags().Set("dt", "0"); err != nil {
		t.Fatal(err)
	}
	if _, err := resolveConfig(cmd, nil); err == nil {
		t.Error("expected validation error for zero dt")
	}
}
