// Package physics provides the force model and the reference body systems.
//
//   - [Gravity]: Newtonian pairwise attraction implementing [dynamo.ForceModel]
//   - [SolarSystem]: the Sun and eight planets
//   - [SunEarth]: two-body 1 AU circular orbit
//   - [UnitCircle]: G=1 circular orbit with period 2*pi
//
// # Coincident Bodies
//
// Newton's law is singular at zero separation. [Gravity.Attraction] reports
// [dynamo.ErrDegenerateConfiguration] for exactly coincident bodies, and a
// model built with [NewGravityWith] caps the force magnitude for separations
// below its minimum distance:
//
//	grav := physics.NewGravityWith(physics.G, 1e6)
//	f, r, err := grav.Attraction(a, b)
package physics
