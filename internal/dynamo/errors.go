package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrInvalidState indicates a body whose position or velocity became NaN or Inf.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrInvalidBody indicates a body constructed with a non-positive mass or non-finite values.
	ErrInvalidBody = errors.New("dynamo: invalid body")

	// ErrDegenerateConfiguration indicates two bodies at exactly the same position.
	ErrDegenerateConfiguration = errors.New("dynamo: degenerate configuration (coincident bodies)")

	// ErrEmptyState indicates an aggregate was requested over zero bodies.
	ErrEmptyState = errors.New("dynamo: empty body set")

	// ErrZeroReferenceEnergy indicates an accuracy relative to an initial energy of zero.
	ErrZeroReferenceEnergy = errors.New("dynamo: reference energy is zero")
)

// SimulationError wraps an error with simulation context.
type SimulationError struct {
	Step    int
	Time    float64
	Bodies  []string
	Wrapped error
}

func (e *SimulationError) Error() string {
	if len(e.Bodies) == 0 {
		return fmt.Sprintf("step %d (t=%.0fs): %v", e.Step, e.Time, e.Wrapped)
	}
	return fmt.Sprintf("step %d (t=%.0fs) %v: %v", e.Step, e.Time, e.Bodies, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
