// Package viz is the terminal live view of a running simulation.
//
// The view is a Bubble Tea program driving a [sim.Simulator], one step per
// frame:
//
//   - [Canvas]: braille pixel grid with per-cell colour
//   - [Camera]: world to sub-pixel projection with zoom and pan
//   - [Model]: tick loop, input handling and the stats panel
//
// # Key Bindings
//
//	Space  - Pause/Resume
//	+ / -  - Double / halve the time scale
//	Z / X  - Zoom in / out (mouse wheel too)
//	Arrows - Pan (or drag with the left button)
//	O      - Toggle orbit trails
//	C      - Reset the view
//	R      - Reset the simulation
//	Tab    - Cycle the body whose distance and speed are shown
//	T      - Cycle themes
//	?      - Show help overlay
package viz
