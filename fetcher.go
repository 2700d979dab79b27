package faretrack

import "context"

// ResultsFetcher runs a fare search on the site and returns the rendered
// results page once every result has been loaded.
// Implementations use browser automation to drive the site's search form.
type ResultsFetcher interface {
	// FetchResults fills in the search form from the trip, submits it,
	// loads all result pages and returns the rendered HTML.
	// The context controls timeout and cancellation.
	FetchResults(ctx context.Context, trip *TripConfig) (html string, err error)

	// Close releases browser resources.
	// Must be called when the ResultsFetcher is no longer needed.
	Close() error
}
