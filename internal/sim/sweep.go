package sim

import (
	"context"

	"github.com/san-kum/cosmosim/internal/dynamo"
)

// Sweep runs base once per initial value, in parallel, and returns the
// results in input order. The first failing run's error is returned.
func (s *Simulator) Sweep(ctx context.Context, base Request, initialValues []float64) ([]*Result, error) {
	if err := base.Validate(); err != nil {
		return nil, err
	}

	results := make([]*Result, len(initialValues))
	errs := make([]error, len(initialValues))

	dynamo.ParallelFor(len(initialValues), 1, func(start, end int) {
		for i := start; i < end; i++ {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				continue
			}
			req := base
			req.InitialValue = initialValues[i]
			results[i], errs[i] = s.Simulate(req)
		}
	})

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
