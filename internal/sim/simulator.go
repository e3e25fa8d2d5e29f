package sim

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/metrics"
)

var ErrPaused = errors.New("sim: simulator is paused")

type Simulator struct {
	initial    []dynamo.BodySpec
	bodies     []*dynamo.Body
	integrator dynamo.Integrator
	g          float64
	cfg        Config
	clock      *Clock
	metrics    []dynamo.Metric
	observers  []dynamo.Observer

	steps         int
	initialEnergy float64
}

// New wraps bodies in a simulator. The initial total energy is taken here, so
// an empty or degenerate body set is rejected.
func New(bodies []*dynamo.Body, integrator dynamo.Integrator, g float64, cfg Config) (*Simulator, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	e0, err := metrics.TotalEnergy(bodies, g)
	if err != nil {
		return nil, fmt.Errorf("initial energy: %w", err)
	}

	initial := make([]dynamo.BodySpec, len(bodies))
	for i, b := range bodies {
		initial[i] = b.Spec()
	}

	return &Simulator{
		initial:       initial,
		bodies:        bodies,
		integrator:    integrator,
		g:             g,
		cfg:           cfg,
		clock:         NewClock(cfg.BaseDt, cfg.TimeScale),
		metrics:       make([]dynamo.Metric, 0),
		observers:     make([]dynamo.Observer, 0),
		initialEnergy: e0,
	}, nil
}

func validateConfig(cfg Config) error {
	if !(cfg.BaseDt > 0) || math.IsInf(cfg.BaseDt, 0) {
		return fmt.Errorf("base dt must be positive and finite, got %g", cfg.BaseDt)
	}
	if math.IsNaN(cfg.TimeScale) || math.IsInf(cfg.TimeScale, 0) {
		return fmt.Errorf("time scale must be finite, got %g", cfg.TimeScale)
	}
	return nil
}

func (s *Simulator) AddMetric(m dynamo.Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o dynamo.Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Bodies() []*dynamo.Body { return s.bodies }
func (s *Simulator) Clock() *Clock           { return s.clock }
func (s *Simulator) Steps() int              { return s.steps }
func (s *Simulator) G() float64              { return s.g }
func (s *Simulator) InitialEnergy() float64  { return s.initialEnergy }

// Tick advances one step unless the clock is paused. A failed step leaves the
// bodies and the clock untouched.
func (s *Simulator) Tick() (bool, error) {
	if s.clock.Paused() {
		return false, nil
	}

	if err := s.integrator.Step(s.bodies, s.clock.TimeScale(), s.clock.BaseDt()); err != nil {
		var simErr *dynamo.SimulationError
		if errors.As(err, &simErr) {
			simErr.Step = s.steps
			simErr.Time = s.clock.Elapsed()
		}
		return false, err
	}

	s.clock.Advance()
	s.steps++
	t := s.clock.Elapsed()

	if s.cfg.ValidateState {
		for _, b := range s.bodies {
			if !b.IsValid() {
				return true, &dynamo.SimulationError{Step: s.steps, Time: t, Bodies: []string{b.Name}, Wrapped: dynamo.ErrInvalidState}
			}
		}
	}

	for _, obs := range s.observers {
		obs.OnStep(s.bodies, t)
	}
	for _, m := range s.metrics {
		m.Observe(s.bodies, t)
	}

	return true, nil
}

// Stats computes the monitoring quantities for the current state.
func (s *Simulator) Stats() (Stats, error) {
	st := Stats{
		Elapsed:   s.clock.Elapsed(),
		Steps:     s.steps,
		Bodies:    len(s.bodies),
		TimeScale: s.clock.TimeScale(),
		Paused:    s.clock.Paused(),
	}

	energy, err := metrics.TotalEnergy(s.bodies, s.g)
	if err != nil {
		return st, err
	}
	st.Energy = energy

	if st.Accuracy, err = metrics.Accuracy(energy, s.initialEnergy); err != nil {
		return st, err
	}
	if st.AverageSpeed, err = metrics.AverageSpeed(s.bodies); err != nil {
		return st, err
	}
	return st, nil
}

func (s *Simulator) sample() (Sample, error) {
	st, err := s.Stats()
	if err != nil {
		return Sample{}, err
	}
	return Sample{Time: st.Elapsed, Energy: st.Energy, Accuracy: st.Accuracy, AvgSpeed: st.AverageSpeed}, nil
}

// Run executes steps ticks headless, sampling every sampleEvery steps and
// once more at the end.
func (s *Simulator) Run(ctx context.Context, steps, sampleEvery int) (*Result, error) {
	if steps <= 0 {
		return nil, fmt.Errorf("steps must be positive, got %d", steps)
	}
	if s.clock.Paused() {
		return nil, ErrPaused
	}
	if sampleEvery <= 0 {
		sampleEvery = 1
	}

	result := &Result{
		Samples: make([]Sample, 0, steps/sampleEvery+2),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
		m.Observe(s.bodies, s.clock.Elapsed())
	}

	first, err := s.sample()
	if err != nil {
		return nil, err
	}
	result.Samples = append(result.Samples, first)

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			s.finish(result)
			return result, ctx.Err()
		default:
		}

		if _, err := s.Tick(); err != nil {
			result.Errors = append(result.Errors, err)
			break
		}

		if s.steps%sampleEvery == 0 || i == steps-1 {
			smp, err := s.sample()
			if err != nil {
				result.Errors = append(result.Errors, err)
				break
			}
			result.Samples = append(result.Samples, smp)
		}
	}

	s.finish(result)
	return result, nil
}

func (s *Simulator) finish(result *Result) {
	result.StepsTaken = s.steps
	result.Bodies = recordBodies(s.bodies)

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	if e, err := metrics.TotalEnergy(s.bodies, s.g); err == nil && s.initialEnergy != 0 {
		result.EnergyDrift = math.Abs(e-s.initialEnergy) / math.Abs(s.initialEnergy)
	}
}

// Reset rebuilds the bodies from their initial state and restarts the clock.
func (s *Simulator) Reset() error {
	bodies := make([]*dynamo.Body, len(s.initial))
	for i, spec := range s.initial {
		b, err := dynamo.NewBody(spec)
		if err != nil {
			return err
		}
		bodies[i] = b
	}

	s.bodies = bodies
	s.steps = 0
	s.clock.reset(s.cfg.TimeScale)
	for _, m := range s.metrics {
		m.Reset()
	}
	return nil
}
