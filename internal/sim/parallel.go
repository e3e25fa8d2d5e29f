package sim

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Ensemble runs independent simulators side by side, one per time scale.
// Each member owns its bodies; nothing is shared between goroutines.
type Ensemble struct {
	build  func(timeScale float64) (*Simulator, error)
	scales []float64
}

func NewEnsemble(build func(timeScale float64) (*Simulator, error), scales []float64) *Ensemble {
	return &Ensemble{build: build, scales: scales}
}

// Run returns one result per time scale, in the order the scales were given.
func (e *Ensemble) Run(ctx context.Context, steps, sampleEvery int) ([]*Result, error) {
	results := make([]*Result, len(e.scales))

	g, ctx := errgroup.WithContext(ctx)
	for i, scale := range e.scales {
		i, scale := i, scale
		g.Go(func() error {
			s, err := e.build(scale)
			if err != nil {
				return err
			}
			res, err := s.Run(ctx, steps, sampleEvery)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
