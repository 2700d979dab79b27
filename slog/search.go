package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/faretrack"
)

// Ensure LoggingSearchService implements faretrack.SearchService.
var _ faretrack.SearchService = (*LoggingSearchService)(nil)

// LoggingSearchService wraps a SearchService with logging.
type LoggingSearchService struct {
	next   faretrack.SearchService
	logger *slog.Logger
}

// NewLoggingSearchService creates a new LoggingSearchService.
func NewLoggingSearchService(next faretrack.SearchService, logger *slog.Logger) *LoggingSearchService {
	return &LoggingSearchService{next: next, logger: logger}
}

func (s *LoggingSearchService) CreateSearch(ctx context.Context, search *faretrack.Search) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("create search",
			"id", search.ID,
			"fares", len(search.Fares),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateSearch(ctx, search)
}

func (s *LoggingSearchService) FindSearchByID(ctx context.Context, id string) (search *faretrack.Search, err error) {
	defer func(begin time.Time) {
		s.logger.Info("find search",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindSearchByID(ctx, id)
}

func (s *LoggingSearchService) FindSearches(ctx context.Context, filter faretrack.SearchFilter) (searches []*faretrack.Search, err error) {
	defer func(begin time.Time) {
		s.logger.Info("find searches",
			"count", len(searches),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindSearches(ctx, filter)
}

func (s *LoggingSearchService) DeleteSearch(ctx context.Context, id string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("delete search",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteSearch(ctx, id)
}
