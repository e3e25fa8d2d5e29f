package physics

import (
	"math"

	"github.com/san-kum/gravsim/internal/dynamo"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	G   = 6.67428e-11 // m^3 kg^-1 s^-2
	AU  = 149.6e6 * 1000
	Day = 3600 * 24.0
)

// Gravity is Newton's law of gravitation between point masses.
type Gravity struct {
	g float64
	// Separations below minDistance use minDistance for the magnitude.
	minDistance float64
}

// NewGravity returns the unclamped model with the SI gravitational constant.
func NewGravity() *Gravity {
	return &Gravity{g: G}
}

// NewGravityWith returns a model with a custom constant and a magnitude clamp.
// A minDistance of 0 disables clamping.
func NewGravityWith(g, minDistance float64) *Gravity {
	if minDistance < 0 {
		minDistance = 0
	}
	return &Gravity{g: g, minDistance: minDistance}
}

func (gr *Gravity) G() float64           { return gr.g }
func (gr *Gravity) MinDistance() float64 { return gr.minDistance }

// Attraction returns the force b exerts on a and their separation.
// Exactly coincident bodies yield a zero force and ErrDegenerateConfiguration.
func (gr *Gravity) Attraction(a, b *dynamo.Body) (r2.Vec, float64, error) {
	dx := b.Pos.X - a.Pos.X
	dy := b.Pos.Y - a.Pos.Y
	r := math.Sqrt(dx*dx + dy*dy)
	if r == 0 {
		return r2.Vec{}, 0, dynamo.ErrDegenerateConfiguration
	}

	rf := math.Max(r, gr.minDistance)
	force := gr.g * a.Mass * b.Mass / (rf * rf)
	sin, cos := math.Sincos(math.Atan2(dy, dx))
	return r2.Vec{X: force * cos, Y: force * sin}, r, nil
}

// CircularSpeed is the speed of a circular orbit of radius r around mass m.
func CircularSpeed(g, m, r float64) float64 {
	return math.Sqrt(g * m / r)
}

// CircularVelocity returns the velocity for a circular, counter-clockwise
// orbit of pos around center, perpendicular to the radius vector.
func CircularVelocity(g float64, center *dynamo.Body, pos r2.Vec) r2.Vec {
	rel := r2.Sub(pos, center.Pos)
	r := r2.Norm(rel)
	if r == 0 {
		return center.Vel
	}
	v := CircularSpeed(g, center.Mass, r)
	return r2.Add(center.Vel, r2.Vec{X: -rel.Y / r * v, Y: rel.X / r * v})
}
