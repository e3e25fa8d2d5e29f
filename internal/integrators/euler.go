package integrators

import (
	"errors"

	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/physics"
	"gonum.org/v1/gonum/spatial/r2"
)

// DefaultBaseDt is one day of simulated time per step.
const DefaultBaseDt = physics.Day

// SemiImplicitEuler updates velocity from the accumulated force first and
// then moves each body with the updated velocity.
type SemiImplicitEuler struct {
	force dynamo.ForceModel

	forces  []r2.Vec
	primary []float64
}

func NewSemiImplicitEuler(force dynamo.ForceModel) *SemiImplicitEuler {
	return &SemiImplicitEuler{force: force}
}

func (e *SemiImplicitEuler) Force() dynamo.ForceModel { return e.force }

func (e *SemiImplicitEuler) ensureScratch(n int) {
	if cap(e.forces) < n {
		e.forces = make([]r2.Vec, n)
		e.primary = make([]float64, n)
	}
	e.forces = e.forces[:n]
	e.primary = e.primary[:n]
}

// Step advances bodies by baseDt*timeScale seconds.
// All forces come from the positions at entry; if any pair coincides no body
// is modified and a *dynamo.SimulationError is returned.
func (e *SemiImplicitEuler) Step(bodies []*dynamo.Body, timeScale, baseDt float64) error {
	n := len(bodies)
	if n == 0 {
		return nil
	}
	e.ensureScratch(n)

	for i, a := range bodies {
		total := r2.Vec{}
		e.primary[i] = a.DistanceToPrimary
		for j, b := range bodies {
			if i == j {
				continue
			}
			f, r, err := e.force.Attraction(a, b)
			if err != nil {
				if errors.Is(err, dynamo.ErrDegenerateConfiguration) {
					return &dynamo.SimulationError{Bodies: []string{a.Name, b.Name}, Wrapped: err}
				}
				return err
			}
			if b.Primary {
				e.primary[i] = r
			}
			total = r2.Add(total, f)
		}
		e.forces[i] = total
	}

	dt := baseDt * timeScale
	for i, b := range bodies {
		f := e.forces[i]
		b.Vel.X += f.X / b.Mass * dt
		b.Vel.Y += f.Y / b.Mass * dt
		b.Pos.X += b.Vel.X * dt
		b.Pos.Y += b.Vel.Y * dt
		b.DistanceToPrimary = e.primary[i]
		if b.Trail != nil {
			b.Trail.Append(b.Pos)
		}
	}

	return nil
}
