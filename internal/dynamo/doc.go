// Package dynamo provides the core primitives of the gravity simulation.
//
// The package defines the state and the seams the rest of the module plugs
// into:
//
//   - [Body]: point mass with position, velocity and a position history
//   - [Trajectory]: append-only (optionally ring-buffered) position history
//   - [ForceModel]: pairwise attraction between two bodies
//   - [Integrator]: advances every body by one step
//   - [Metric] and [Observer]: per-tick monitoring hooks
//
// # Example
//
//	sun, _ := dynamo.NewBody(dynamo.BodySpec{Name: "Sun", Mass: 1.98892e30, Primary: true})
//	earth, _ := dynamo.NewBody(dynamo.BodySpec{Name: "Earth", Mass: 5.9742e24, Pos: r2.Vec{X: -physics.AU}, Vel: r2.Vec{Y: 29783}})
//	integ := integrators.NewSemiImplicitEuler(physics.NewGravity())
//	err := integ.Step([]*dynamo.Body{sun, earth}, 1, integrators.DefaultBaseDt)
//
// # Thread Safety
//
// Bodies are plain mutable values owned by a single simulation loop. Nothing
// in this package locks.
package dynamo
