package sim

import (
	"context"
	"sync"

	"github.com/ckopec-dev/Computational-Astronomy/internal/body"
)

// Source builds one run's worth of initial conditions from a seed.
type Source func(seed int64) []*body.Particle

// Ensemble runs the same scenario across consecutive seeds, one goroutine per
// run. Each run gets its own particle list and Stepper, so runs share nothing.
type Ensemble struct {
	cfg       Config
	source    Source
	numRuns   int
	seedStart int64
}

func NewEnsemble(cfg Config, source Source, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{cfg: cfg, source: source, numRuns: numRuns, seedStart: seedStart}
}

func (e *Ensemble) Run(ctx context.Context, metrics func() []Metric) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			particles := e.source(e.seedStart + int64(idx))
			stepper := NewStepper(particles, e.cfg)
			if metrics != nil {
				for _, m := range metrics() {
					stepper.AddMetric(m)
				}
			}

			results[idx], errs[idx] = stepper.Run(ctx)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return results, err
		}
	}

	return results, nil
}
