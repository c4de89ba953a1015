package gridastar

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
)

// ErrNilGrid is returned by SearchAll for a query without a grid.
var ErrNilGrid = errors.New("query has no grid")

// Query is one independent search handed to SearchAll.
type Query struct {
	Grid  *Grid
	Start Point
	Goal  Point
	// Options are applied after the ones passed to SearchAll.
	Options []Option
}

// SearchAll runs every query and returns results in query order.
//
// At most NumberOfWorkers queries run at once (see WithWorkers). Each query
// gets its own search state; grids are read-only and may be shared between
// queries. When ctx is cancelled no further queries start and ctx.Err() is
// returned.
func SearchAll(ctx context.Context, queries []Query, options ...Option) ([]Result, error) {
	searchOptions := buildOptions(options)
	for _, q := range queries {
		if q.Grid == nil {
			return nil, ErrNilGrid
		}
	}

	results := make([]Result, len(queries))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(searchOptions.NumberOfWorkers)

	for i, q := range queries {
		if groupCtx.Err() != nil {
			break
		}
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			queryOptions := searchOptions
			for _, option := range q.Options {
				option(&queryOptions)
			}
			s := newSearcher(q.Grid, q.Start, q.Goal, queryOptions)
			for s.step() == Running {
			}
			results[i] = s.result()
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
