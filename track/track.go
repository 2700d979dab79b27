// Package track runs fare searches end to end. It coordinates the browser
// search, result harvesting, extraction and price filtering.
package track

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/faretrack"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// DefaultConcurrency is the number of browser searches run at once by SearchAll.
const DefaultConcurrency = 2

// Limiter paces requests to the fare site.
type Limiter interface {
	Wait(ctx context.Context) error
}

// NewLimiter returns a limiter allowing one search per interval with no bursting.
func NewLimiter(interval time.Duration) *rate.Limiter {
	return rate.NewLimiter(rate.Every(interval), 1)
}

// Tracker runs fare searches.
type Tracker struct {
	Fetcher     faretrack.ResultsFetcher
	Harvester   faretrack.Harvester
	Limiter     Limiter
	Concurrency int
	RetryDelays []time.Duration
	Logger      LogFunc
}

// Result holds the outcome of one search in a batch.
type Result struct {
	Trip  *faretrack.TripConfig
	Trips *faretrack.TripOptions
	Err   error
}

// Search runs the search described by trip and returns the destinations
// priced at or below the trip's maximum price, cheapest first.
func (t *Tracker) Search(ctx context.Context, trip *faretrack.TripConfig) (*faretrack.TripOptions, error) {
	all, err := t.SearchUnfiltered(ctx, trip)
	if err != nil {
		return nil, err
	}
	return faretrack.FilterAndSort(all, trip.MaxPrice), nil
}

// SearchUnfiltered runs the search and returns every destination that
// parsed, in page order.
func (t *Tracker) SearchUnfiltered(ctx context.Context, trip *faretrack.TripConfig) (*faretrack.TripOptions, error) {
	if err := trip.Validate(); err != nil {
		return nil, err
	}

	if t.Limiter != nil {
		if err := t.Limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	html, err := FetchWithRetryDelays(ctx, trip, t.Fetcher.FetchResults, t.Logger, t.RetryDelays)
	if err != nil {
		return nil, fmt.Errorf("searching fares from %s: %w", trip.FromCity, err)
	}

	raw, err := t.Harvester.Harvest(html)
	if err != nil {
		return nil, err
	}

	return faretrack.Extract(raw.CityTexts, raw.PriceTexts), nil
}

// SearchAll runs every trip with bounded concurrency. Results are returned
// in the order of trips; a failed search records its error in its Result
// and does not stop the others. The returned error is non-nil only when ctx
// ends before all searches finish.
func (t *Tracker) SearchAll(ctx context.Context, trips []*faretrack.TripConfig) ([]Result, error) {
	concurrency := t.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	results := make([]Result, len(trips))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, trip := range trips {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i] = Result{Trip: trip, Err: err}
				return err
			}
			found, err := t.Search(gctx, trip)
			results[i] = Result{Trip: trip, Trips: found, Err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, ctx.Err()
}
