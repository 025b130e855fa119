package scenario

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Materialize builds the view of every scenario, running at most
// parallelism lookups at once (no limit when parallelism <= 0), and returns
// the views in scenario order. Already cached scenarios are not rebuilt.
//
// The first failure stops scheduling further scenarios and is returned;
// scenarios built before it stay cached.
func (v *View[V]) Materialize(ctx context.Context, parallelism int) ([]V, error) {
	out := make([]V, len(v.cache))
	g, gctx := errgroup.WithContext(ctx)
	if parallelism > 0 {
		g.SetLimit(parallelism)
	}
	for i := range v.cache {
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			view, err := v.Scenario(i)
			if err != nil {
				return err
			}
			out[i] = view
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
