// Package analysis estimates orbital properties from sampled trajectories.
//
//   - [PowerSpectrum]: one-sided amplitude spectrum of a real series
//   - [DominantPeriod]: period of the strongest non-zero frequency
//   - [Orbit]: period, closest and farthest distance of a trail around a primary
//
// Periods come from the spectrum of the X coordinate relative to the
// primary, so at least two full orbits should be in the trail for a usable
// estimate:
//
//	p, err := analysis.DominantPeriod(xs, dt)
//	days := p / physics.Day
package analysis
