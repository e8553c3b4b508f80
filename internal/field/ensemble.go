package field

import (
	"context"
	"sync"
)

// Ensemble runs independent simulators that differ only in seed, one
// goroutine each. Every run gets its own store, builder, and metrics.
type Ensemble struct {
	opts      Options
	numRuns   int
	seedStart int64
	metrics   func() []Metric
}

// NewEnsemble prepares numRuns simulations seeded seedStart, seedStart+1, ...
// metrics may be nil.
func NewEnsemble(opts Options, numRuns int, seedStart int64, metrics func() []Metric) *Ensemble {
	return &Ensemble{opts: opts, numRuns: numRuns, seedStart: seedStart, metrics: metrics}
}

func (e *Ensemble) Run(ctx context.Context, frames int, schedule ControlSchedule) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			opts := e.opts
			opts.Seed = e.seedStart + int64(idx)

			s, err := New(opts)
			if err != nil {
				errs[idx] = err
				return
			}
			if e.metrics != nil {
				for _, m := range e.metrics() {
					s.AddMetric(m)
				}
			}

			results[idx], errs[idx] = s.Run(ctx, frames, schedule)
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

// MeanMetric averages a named metric over results that report it.
func MeanMetric(results []*Result, name string) float64 {
	sum, n := 0.0, 0
	for _, r := range results {
		if v, ok := r.Metrics[name]; ok {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
