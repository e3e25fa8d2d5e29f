package dynamo

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestNewBody_Validation(t *testing.T) {
	tests := []struct {
		name  string
		spec  BodySpec
		valid bool
	}{
		{"normal", BodySpec{Name: "earth", Mass: 5.9742e24}, true},
		{"zero mass", BodySpec{Name: "ghost", Mass: 0}, false},
		{"negative mass", BodySpec{Name: "anti", Mass: -1}, false},
		{"NaN mass", BodySpec{Name: "nan", Mass: math.NaN()}, false},
		{"Inf mass", BodySpec{Name: "inf", Mass: math.Inf(1)}, false},
		{"NaN position", BodySpec{Name: "p", Mass: 1, Pos: r2.Vec{X: math.NaN()}}, false},
		{"Inf velocity", BodySpec{Name: "v", Mass: 1, Vel: r2.Vec{Y: math.Inf(-1)}}, false},
		{"negative trail", BodySpec{Name: "t", Mass: 1, TrailCapacity: -1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := NewBody(tt.spec)
			if tt.valid {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if b.Trail == nil || b.Trail.Len() != 0 {
					t.Error("new body should have an empty trail")
				}
				return
			}
			if !errors.Is(err, ErrInvalidBody) {
				t.Errorf("expected ErrInvalidBody, got %v", err)
			}
		})
	}
}

func TestBody_KineticEnergy(t *testing.T) {
	b, _ := NewBody(BodySpec{Mass: 2, Vel: r2.Vec{X: 3, Y: 4}})
	if got := b.KineticEnergy(); got != 25 {
		t.Errorf("KineticEnergy() = %v, want 25", got)
	}
	if got := b.Speed(); got != 5 {
		t.Errorf("Speed() = %v, want 5", got)
	}
}

func TestBody_PotentialEnergyWith(t *testing.T) {
	a, _ := NewBody(BodySpec{Mass: 2})
	b, _ := NewBody(BodySpec{Mass: 3, Pos: r2.Vec{X: 3, Y: 4}})

	if got := a.PotentialEnergyWith(b, 1); math.Abs(got-(-1.2)) > 1e-12 {
		t.Errorf("PotentialEnergyWith = %v, want -1.2", got)
	}
	if a.PotentialEnergyWith(b, 1) != b.PotentialEnergyWith(a, 1) {
		t.Error("pair potential should be symmetric")
	}
}

func TestBody_Spec(t *testing.T) {
	spec := BodySpec{Name: "mars", Mass: 6.39e23, Pos: r2.Vec{X: 1}, Vel: r2.Vec{Y: 2}, Radius: 12, Color: "#bc2732", TrailCapacity: 10}
	b, err := NewBody(spec)
	if err != nil {
		t.Fatal(err)
	}
	if got := b.Spec(); got != spec {
		t.Errorf("Spec() = %+v, want %+v", got, spec)
	}
}

func TestSimulationError(t *testing.T) {
	err := &SimulationError{Step: 3, Time: 259200, Bodies: []string{"a", "b"}, Wrapped: ErrDegenerateConfiguration}
	if !errors.Is(err, ErrDegenerateConfiguration) {
		t.Error("SimulationError should unwrap to its cause")
	}
	expected := "step 3 (t=259200s) [a b]: dynamo: degenerate configuration (coincident bodies)"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}
