package dynamo

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// BodySpec holds everything needed to build a Body.
type BodySpec struct {
	Name    string
	Pos     r2.Vec
	Vel     r2.Vec
	Mass    float64
	Radius  float64
	Color   string
	Primary bool
	// TrailCapacity bounds the position history; 0 keeps every point.
	TrailCapacity int
}

// Body is a point mass taking part in the gravitational interaction.
type Body struct {
	Name    string
	Pos     r2.Vec
	Vel     r2.Vec
	Mass    float64
	Radius  float64
	Color   string
	Primary bool

	// DistanceToPrimary is refreshed by every integration step. Display only.
	DistanceToPrimary float64

	Trail *Trajectory
}

// NewBody validates spec and returns the body it describes.
func NewBody(spec BodySpec) (*Body, error) {
	if !(spec.Mass > 0) || math.IsInf(spec.Mass, 0) {
		return nil, fmt.Errorf("%w: %q has mass %g", ErrInvalidBody, spec.Name, spec.Mass)
	}
	if !finite(spec.Pos) || !finite(spec.Vel) {
		return nil, fmt.Errorf("%w: %q has non-finite position or velocity", ErrInvalidBody, spec.Name)
	}
	if spec.TrailCapacity < 0 {
		return nil, fmt.Errorf("%w: %q has negative trail capacity", ErrInvalidBody, spec.Name)
	}
	return &Body{
		Name:    spec.Name,
		Pos:     spec.Pos,
		Vel:     spec.Vel,
		Mass:    spec.Mass,
		Radius:  spec.Radius,
		Color:   spec.Color,
		Primary: spec.Primary,
		Trail:   NewTrajectory(spec.TrailCapacity),
	}, nil
}

// Spec returns the construction parameters that reproduce b in its current state.
func (b *Body) Spec() BodySpec {
	return BodySpec{
		Name:          b.Name,
		Pos:           b.Pos,
		Vel:           b.Vel,
		Mass:          b.Mass,
		Radius:        b.Radius,
		Color:         b.Color,
		Primary:       b.Primary,
		TrailCapacity: b.Trail.Cap(),
	}
}

func (b *Body) KineticEnergy() float64 {
	return 0.5 * b.Mass * r2.Dot(b.Vel, b.Vel)
}

// PotentialEnergyWith returns the pair potential -g*m1*m2/r. Coincident bodies give -Inf.
func (b *Body) PotentialEnergyWith(other *Body, g float64) float64 {
	return -g * b.Mass * other.Mass / r2.Norm(r2.Sub(other.Pos, b.Pos))
}

func (b *Body) Speed() float64 {
	return r2.Norm(b.Vel)
}

// IsValid reports whether position and velocity are finite.
func (b *Body) IsValid() bool {
	return finite(b.Pos) && finite(b.Vel)
}

func finite(v r2.Vec) bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

// ForceModel computes the force exerted on a by b.
// It returns the force, the true distance between the two, and
// ErrDegenerateConfiguration when they coincide.
type ForceModel interface {
	Attraction(a, b *Body) (r2.Vec, float64, error)
	G() float64
}

// Integrator advances every body by one step of baseDt*timeScale seconds.
type Integrator interface {
	Step(bodies []*Body, timeScale, baseDt float64) error
}

type Metric interface {
	Name() string
	Observe(bodies []*Body, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(bodies []*Body, t float64)
}
