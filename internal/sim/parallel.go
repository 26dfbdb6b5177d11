package sim

import (
	"context"
	"sync"

	"github.com/san-kum/plexus/internal/metrics"
)

// Ensemble runs the same configuration under consecutive seeds in parallel.
type Ensemble struct {
	numRuns    int
	seedStart  int64
	newMetrics func() metrics.Set
}

// NewEnsemble builds an ensemble; newMetrics is called once per run so runs
// never share metric state. It may be nil.
func NewEnsemble(numRuns int, seedStart int64, newMetrics func() metrics.Set) *Ensemble {
	return &Ensemble{numRuns: numRuns, seedStart: seedStart, newMetrics: newMetrics}
}

func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfgCopy := cfg
			cfgCopy.Seed = e.seedStart + int64(idx)

			sim := New()
			if e.newMetrics != nil {
				sim.AddMetrics(e.newMetrics())
			}

			results[idx], errs[idx] = sim.Run(ctx, cfgCopy)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
