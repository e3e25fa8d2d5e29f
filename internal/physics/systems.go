package physics

import (
	"github.com/san-kum/gravsim/internal/dynamo"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	SunMass   = 1.98892e30
	EarthMass = 5.9742e24
)

// SolarSystem returns the Sun and the eight planets lined up on the x axis,
// each with its mean orbital speed along y.
func SolarSystem() []dynamo.BodySpec {
	return []dynamo.BodySpec{
		{Name: "Sun", Mass: SunMass, Radius: 30, Color: "#ffff00", Primary: true},
		{Name: "Earth", Pos: r2.Vec{X: -1 * AU}, Vel: r2.Vec{Y: 29.783 * 1000}, Mass: EarthMass, Radius: 16, Color: "#6495ed"},
		{Name: "Mars", Pos: r2.Vec{X: -1.524 * AU}, Vel: r2.Vec{Y: 24.077 * 1000}, Mass: 6.39e23, Radius: 12, Color: "#bc2732"},
		{Name: "Mercury", Pos: r2.Vec{X: 0.387 * AU}, Vel: r2.Vec{Y: -47.4 * 1000}, Mass: 3.30e23, Radius: 8, Color: "#504e51"},
		{Name: "Venus", Pos: r2.Vec{X: 0.723 * AU}, Vel: r2.Vec{Y: -35.02 * 1000}, Mass: 4.8685e24, Radius: 14, Color: "#ffffff"},
		{Name: "Jupiter", Pos: r2.Vec{X: 5.2 * AU}, Vel: r2.Vec{Y: -13.07 * 1000}, Mass: 1.898e27, Radius: 18, Color: "#ffa500"},
		{Name: "Saturn", Pos: r2.Vec{X: 9.5 * AU}, Vel: r2.Vec{Y: -9.68 * 1000}, Mass: 5.683e26, Radius: 16, Color: "#d3d3d3"},
		{Name: "Uranus", Pos: r2.Vec{X: 19.8 * AU}, Vel: r2.Vec{Y: -6.80 * 1000}, Mass: 8.681e25, Radius: 14, Color: "#add8e6"},
		{Name: "Neptune", Pos: r2.Vec{X: 30.0 * AU}, Vel: r2.Vec{Y: -5.43 * 1000}, Mass: 1.024e26, Radius: 14, Color: "#504e51"},
	}
}

// SunEarth is the Sun with one Earth-mass body on a circular 1 AU orbit.
func SunEarth() []dynamo.BodySpec {
	return []dynamo.BodySpec{
		{Name: "Sun", Mass: SunMass, Radius: 30, Color: "#ffff00", Primary: true},
		{Name: "Earth", Pos: r2.Vec{X: AU}, Vel: r2.Vec{Y: CircularSpeed(G, SunMass, AU)}, Mass: EarthMass, Radius: 16, Color: "#6495ed"},
	}
}

// UnitCircle is a G=1 test system: a unit primary and a 1e-6 satellite at
// distance 1 moving at circular speed 1. Its period is 2*pi.
func UnitCircle() []dynamo.BodySpec {
	return []dynamo.BodySpec{
		{Name: "primary", Mass: 1.0, Radius: 10, Color: "#ffff00", Primary: true},
		{Name: "satellite", Pos: r2.Vec{X: 1}, Vel: r2.Vec{Y: 1}, Mass: 1e-6, Radius: 4, Color: "#6495ed"},
	}
}

// Build turns specs into bodies, applying trailCapacity to every one.
func Build(specs []dynamo.BodySpec, trailCapacity int) ([]*dynamo.Body, error) {
	bodies := make([]*dynamo.Body, 0, len(specs))
	for _, s := range specs {
		s.TrailCapacity = trailCapacity
		b, err := dynamo.NewBody(s)
		if err != nil {
			return nil, err
		}
		bodies = append(bodies, b)
	}
	return bodies, nil
}

// Primary returns the first body flagged as primary, or nil.
func Primary(bodies []*dynamo.Body) *dynamo.Body {
	for _, b := range bodies {
		if b.Primary {
			return b
		}
	}
	return nil
}
