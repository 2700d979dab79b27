package mock

import (
	"context"

	"github.com/fwojciec/faretrack"
)

var _ faretrack.ResultsFetcher = (*ResultsFetcher)(nil)

// ResultsFetcher is a mock implementation of faretrack.ResultsFetcher.
type ResultsFetcher struct {
	FetchResultsFn func(ctx context.Context, trip *faretrack.TripConfig) (string, error)
	CloseFn        func() error
}

func (f *ResultsFetcher) FetchResults(ctx context.Context, trip *faretrack.TripConfig) (string, error) {
	return f.FetchResultsFn(ctx, trip)
}

func (f *ResultsFetcher) Close() error {
	return f.CloseFn()
}
