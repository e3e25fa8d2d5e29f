package analysis

import (
	"errors"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/stat"
)

var (
	ErrShortSeries = errors.New("analysis: series too short")
	ErrNoPeriod    = errors.New("analysis: no periodic component")
)

// PowerSpectrum returns the amplitude of each non-negative frequency bin of
// data after removing its mean. Bin k corresponds to k/(len(data)*dt).
func PowerSpectrum(data []float64) []float64 {
	if len(data) < 2 {
		return nil
	}
	mean := stat.Mean(data, nil)
	centered := make([]float64, len(data))
	for i, v := range data {
		centered[i] = v - mean
	}

	fft := fourier.NewFFT(len(centered))
	coeff := fft.Coefficients(nil, centered)
	ps := make([]float64, len(coeff))
	for i, c := range coeff {
		ps[i] = cmplx.Abs(c)
	}
	return ps
}

// DominantPeriod returns the period, in the units of dt, of the strongest
// frequency in series. The peak bin is refined by parabolic interpolation.
func DominantPeriod(series []float64, dt float64) (float64, error) {
	if len(series) < 4 {
		return 0, ErrShortSeries
	}
	ps := PowerSpectrum(series)

	k := floats.MaxIdx(ps[1:]) + 1
	if ps[k] == 0 {
		return 0, ErrNoPeriod
	}

	peak := float64(k)
	if k > 1 && k < len(ps)-1 {
		a, b, c := ps[k-1], ps[k], ps[k+1]
		if den := a - 2*b + c; den != 0 {
			peak += 0.5 * (a - c) / den
		}
	}
	return float64(len(series)) * dt / peak, nil
}

// OrbitSummary describes a trail relative to its primary.
type OrbitSummary struct {
	Period       float64
	MinDistance  float64
	MaxDistance  float64
	Eccentricity float64
}

// Orbit summarises a trail sampled every dt seconds around a fixed center.
// A trail shorter than one orbit yields ErrNoPeriod and a zero period while
// the distance fields are still filled.
func Orbit(trail []r2.Vec, center r2.Vec, dt float64) (OrbitSummary, error) {
	if len(trail) < 4 {
		return OrbitSummary{}, ErrShortSeries
	}

	xs := make([]float64, len(trail))
	dist := make([]float64, len(trail))
	for i, p := range trail {
		rel := r2.Sub(p, center)
		xs[i] = rel.X
		dist[i] = r2.Norm(rel)
	}

	s := OrbitSummary{
		MinDistance: floats.Min(dist),
		MaxDistance: floats.Max(dist),
	}
	if sum := s.MinDistance + s.MaxDistance; sum > 0 {
		s.Eccentricity = (s.MaxDistance - s.MinDistance) / sum
	}

	p, err := DominantPeriod(xs, dt)
	if err != nil {
		return s, err
	}
	if p > float64(len(trail))*math.Abs(dt) {
		return s, ErrNoPeriod
	}
	s.Period = p
	return s, nil
}
