package dynamo

import (
	"context"
	"sync"
)

// Ensemble runs independent replicas of the same trajectory with distinct
// seeds. Each replica gets its own simulator (and therefore its own random
// stream) from the build function.
type Ensemble struct {
	build     func(seed int64) *Simulator
	numRuns   int
	seedStart int64
}

func NewEnsemble(build func(seed int64) *Simulator, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{build: build, numRuns: numRuns, seedStart: seedStart}
}

func (e *Ensemble) Run(ctx context.Context, x0 State, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfgCopy := cfg
			cfgCopy.Seed = e.seedStart + int64(idx)

			s := e.build(cfgCopy.Seed)
			results[idx], errs[idx] = s.Run(ctx, x0, cfgCopy)
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
