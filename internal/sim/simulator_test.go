package sim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/integrators"
	"github.com/san-kum/gravsim/internal/metrics"
	"github.com/san-kum/gravsim/internal/physics"
	"gonum.org/v1/gonum/spatial/r2"
)

func newSunEarth(t *testing.T, trail int) *Simulator {
	t.Helper()
	bodies, err := physics.Build(physics.SunEarth(), trail)
	if err != nil {
		t.Fatal(err)
	}
	s, err := New(bodies, integrators.NewSemiImplicitEuler(physics.NewGravity()), physics.G, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestSimulatorRun(t *testing.T) {
	s := newSunEarth(t, 0)
	s.AddMetric(metrics.NewEnergyDrift(physics.G))
	s.AddMetric(metrics.NewEnergyAccuracy(physics.G))

	result, err := s.Run(context.Background(), 365, 10)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.StepsTaken != 365 {
		t.Errorf("expected 365 steps, got %d", result.StepsTaken)
	}
	// initial + every 10th step + final
	if len(result.Samples) != 1+36+1 {
		t.Errorf("expected 38 samples, got %d", len(result.Samples))
	}
	if got := s.Clock().Elapsed(); got != 365*physics.Day {
		t.Errorf("elapsed = %v, want %v", got, 365*physics.Day)
	}
	if result.EnergyDrift > 0.01 {
		t.Errorf("energy drift %v too large", result.EnergyDrift)
	}
	if _, ok := result.Metrics["energy_drift"]; !ok {
		t.Error("metric not found in result")
	}
	if acc := result.Metrics["energy_accuracy"]; acc < 99 || acc > 100 {
		t.Errorf("energy accuracy %v out of range", acc)
	}
	if len(result.Bodies) != 2 || len(result.Bodies[1].Trail) != 365 {
		t.Errorf("expected a full trail for each body")
	}

	// roughly one orbit: back near the start
	start := physics.SunEarth()[1].Pos
	if d := r2.Norm(r2.Sub(result.Bodies[1].Pos, start)); d > 0.05*physics.AU {
		t.Errorf("earth ended %.3f AU from its start after a year", d/physics.AU)
	}
}

func TestSimulatorInvalidConfig(t *testing.T) {
	bodies, _ := physics.Build(physics.SunEarth(), 0)
	integ := integrators.NewSemiImplicitEuler(physics.NewGravity())

	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero dt", Config{BaseDt: 0, TimeScale: 1}},
		{"negative dt", Config{BaseDt: -1, TimeScale: 1}},
		{"infinite dt", Config{BaseDt: math.Inf(1), TimeScale: 1}},
		{"NaN scale", Config{BaseDt: 1, TimeScale: math.NaN()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(bodies, integ, physics.G, tt.cfg); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}

	if _, err := New(nil, integ, physics.G, DefaultConfig()); !errors.Is(err, dynamo.ErrEmptyState) {
		t.Errorf("expected ErrEmptyState for no bodies, got %v", err)
	}
}

func TestSimulatorRunArguments(t *testing.T) {
	s := newSunEarth(t, 0)
	if _, err := s.Run(context.Background(), 0, 1); err == nil {
		t.Error("expected error for zero steps")
	}

	s.Clock().Pause()
	if _, err := s.Run(context.Background(), 10, 1); !errors.Is(err, ErrPaused) {
		t.Errorf("expected ErrPaused, got %v", err)
	}
}

func TestSimulatorRunCanceled(t *testing.T) {
	s := newSunEarth(t, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := s.Run(ctx, 100, 1)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if result.StepsTaken != 0 {
		t.Errorf("canceled run should not step, took %d", result.StepsTaken)
	}
}

func TestSimulatorDegenerateStep(t *testing.T) {
	bodies, _ := physics.Build([]dynamo.BodySpec{
		{Name: "a", Mass: 1, Pos: r2.Vec{X: -1}, Vel: r2.Vec{X: 1}},
		{Name: "b", Mass: 1, Pos: r2.Vec{X: 1}, Vel: r2.Vec{X: -1}},
	}, 0)
	cfg := DefaultConfig()
	cfg.BaseDt = 1
	s, err := New(bodies, integrators.NewSemiImplicitEuler(physics.NewGravityWith(0, 0)), 1, cfg)
	if err != nil {
		t.Fatal(err)
	}

	// with G=0 the bodies coast into each other after one step
	if _, err := s.Tick(); err != nil {
		t.Fatal(err)
	}
	stepped, err := s.Tick()
	if stepped || !errors.Is(err, dynamo.ErrDegenerateConfiguration) {
		t.Fatalf("expected degenerate failure, got stepped=%v err=%v", stepped, err)
	}
	var simErr *dynamo.SimulationError
	if !errors.As(err, &simErr) || simErr.Step != 1 || simErr.Time != 1 {
		t.Errorf("error should carry step context, got %+v", simErr)
	}
	if s.Clock().Elapsed() != 1 || s.Steps() != 1 {
		t.Error("failed step must not advance the clock")
	}
}

func TestSimulatorStats(t *testing.T) {
	s := newSunEarth(t, 0)
	st, err := s.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if st.Accuracy != 100 || st.Bodies != 2 || st.Elapsed != 0 || st.Paused {
		t.Errorf("unexpected initial stats %+v", st)
	}
	if st.Energy != s.InitialEnergy() {
		t.Errorf("energy %v, want initial %v", st.Energy, s.InitialEnergy())
	}
	wantSpeed := physics.CircularSpeed(physics.G, physics.SunMass, physics.AU) / 2
	if math.Abs(st.AverageSpeed-wantSpeed) > 1e-9 {
		t.Errorf("average speed %v, want %v", st.AverageSpeed, wantSpeed)
	}
}

type countingObserver struct{ calls int }

func (c *countingObserver) OnStep(bodies []*dynamo.Body, t float64) { c.calls++ }

func TestSimulatorObserversAndReset(t *testing.T) {
	s := newSunEarth(t, 100)
	obs := &countingObserver{}
	s.AddObserver(obs)
	start := s.Bodies()[1].Pos

	for i := 0; i < 10; i++ {
		if _, err := s.Tick(); err != nil {
			t.Fatal(err)
		}
	}
	if obs.calls != 10 {
		t.Errorf("observer called %d times, want 10", obs.calls)
	}

	s.Clock().ScaleTime(4)
	s.Clock().Pause()
	if err := s.Reset(); err != nil {
		t.Fatal(err)
	}
	if s.Steps() != 0 || s.Clock().Elapsed() != 0 || s.Clock().Paused() || s.Clock().TimeScale() != 1 {
		t.Error("reset did not restart the clock")
	}
	earth := s.Bodies()[1]
	if earth.Pos != start || earth.Trail.Len() != 0 || earth.Trail.Cap() != 100 {
		t.Error("reset did not restore the initial bodies")
	}
}

func TestEnsembleRun(t *testing.T) {
	build := func(scale float64) (*Simulator, error) {
		bodies, err := physics.Build(physics.SunEarth(), 0)
		if err != nil {
			return nil, err
		}
		cfg := DefaultConfig()
		cfg.TimeScale = scale
		return New(bodies, integrators.NewSemiImplicitEuler(physics.NewGravity()), physics.G, cfg)
	}

	scales := []float64{0.5, 1, 2}
	results, err := NewEnsemble(build, scales).Run(context.Background(), 100, 50)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != len(scales) {
		t.Fatalf("expected %d results, got %d", len(scales), len(results))
	}
	for i, res := range results {
		last := res.Samples[len(res.Samples)-1]
		want := 100 * physics.Day * scales[i]
		if math.Abs(last.Time-want) > 1e-6 {
			t.Errorf("scale %v: final time %v, want %v", scales[i], last.Time, want)
		}
	}
}
