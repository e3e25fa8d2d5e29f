package metrics

import (
	"math"

	"github.com/san-kum/gravsim/internal/dynamo"
)

// TotalEnergy is the kinetic energy of every body plus the potential energy
// of every unordered pair, summed in slice order.
func TotalEnergy(bodies []*dynamo.Body, g float64) (float64, error) {
	if len(bodies) == 0 {
		return 0, dynamo.ErrEmptyState
	}

	ke := 0.0
	for _, b := range bodies {
		ke += b.KineticEnergy()
	}

	pe := 0.0
	for i, a := range bodies {
		for _, b := range bodies[i+1:] {
			if a.Pos == b.Pos {
				return 0, &dynamo.SimulationError{Bodies: []string{a.Name, b.Name}, Wrapped: dynamo.ErrDegenerateConfiguration}
			}
			pe += a.PotentialEnergyWith(b, g)
		}
	}

	return ke + pe, nil
}

// AverageSpeed is the mean of |v| over all bodies.
func AverageSpeed(bodies []*dynamo.Body) (float64, error) {
	if len(bodies) == 0 {
		return 0, dynamo.ErrEmptyState
	}
	sum := 0.0
	for _, b := range bodies {
		sum += b.Speed()
	}
	return sum / float64(len(bodies)), nil
}

// Accuracy is 100 minus the relative energy error in percent.
// A zero reference yields NaN and ErrZeroReferenceEnergy.
func Accuracy(current, initial float64) (float64, error) {
	if initial == 0 {
		return math.NaN(), dynamo.ErrZeroReferenceEnergy
	}
	return 100 - math.Abs((current-initial)/initial)*100, nil
}

// EnergyAccuracy tracks Accuracy of the latest observation against the first.
type EnergyAccuracy struct {
	name     string
	g        float64
	initial  float64
	accuracy float64
	samples  int
}

func NewEnergyAccuracy(g float64) *EnergyAccuracy {
	return &EnergyAccuracy{name: "energy_accuracy", g: g, accuracy: 100}
}

func (e *EnergyAccuracy) Name() string { return e.name }

func (e *EnergyAccuracy) Observe(bodies []*dynamo.Body, t float64) {
	energy, err := TotalEnergy(bodies, e.g)
	if err != nil {
		return
	}
	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++

	if acc, err := Accuracy(energy, e.initial); err == nil {
		e.accuracy = acc
	}
}

func (e *EnergyAccuracy) Value() float64 {
	return e.accuracy
}

func (e *EnergyAccuracy) Reset() {
	e.initial = 0
	e.accuracy = 100
	e.samples = 0
}

// EnergyDrift records the largest relative energy error seen.
type EnergyDrift struct {
	name     string
	g        float64
	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift(g float64) *EnergyDrift {
	return &EnergyDrift{name: "energy_drift", g: g}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(bodies []*dynamo.Body, t float64) {
	energy, err := TotalEnergy(bodies, e.g)
	if err != nil {
		return
	}

	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(energy-e.initial) / math.Abs(e.initial)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}
