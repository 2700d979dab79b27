// Package slog provides logging decorators for faretrack services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/faretrack"
)

// Ensure LoggingResultsFetcher implements faretrack.ResultsFetcher.
var _ faretrack.ResultsFetcher = (*LoggingResultsFetcher)(nil)

// LoggingResultsFetcher wraps a ResultsFetcher with logging.
type LoggingResultsFetcher struct {
	next   faretrack.ResultsFetcher
	logger *slog.Logger
}

// NewLoggingResultsFetcher creates a new LoggingResultsFetcher.
func NewLoggingResultsFetcher(next faretrack.ResultsFetcher, logger *slog.Logger) *LoggingResultsFetcher {
	return &LoggingResultsFetcher{next: next, logger: logger}
}

// FetchResults logs the search and delegates to the wrapped fetcher.
func (f *LoggingResultsFetcher) FetchResults(ctx context.Context, trip *faretrack.TripConfig) (html string, err error) {
	defer func(begin time.Time) {
		f.logger.Info("fetch results",
			"from", trip.FromCity,
			"departure", trip.DepartureDate,
			"arrival", trip.ArrivalDate,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.FetchResults(ctx, trip)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingResultsFetcher) Close() error {
	return f.next.Close()
}
