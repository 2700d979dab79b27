package mock

import (
	"context"

	"github.com/fwojciec/faretrack"
)

var _ faretrack.SearchService = (*SearchService)(nil)

// SearchService is a mock implementation of faretrack.SearchService.
type SearchService struct {
	CreateSearchFn   func(ctx context.Context, search *faretrack.Search) error
	FindSearchByIDFn func(ctx context.Context, id string) (*faretrack.Search, error)
	FindSearchesFn   func(ctx context.Context, filter faretrack.SearchFilter) ([]*faretrack.Search, error)
	DeleteSearchFn   func(ctx context.Context, id string) error
}

func (s *SearchService) CreateSearch(ctx context.Context, search *faretrack.Search) error {
	return s.CreateSearchFn(ctx, search)
}

func (s *SearchService) FindSearchByID(ctx context.Context, id string) (*faretrack.Search, error) {
	return s.FindSearchByIDFn(ctx, id)
}

func (s *SearchService) FindSearches(ctx context.Context, filter faretrack.SearchFilter) ([]*faretrack.Search, error) {
	return s.FindSearchesFn(ctx, filter)
}

func (s *SearchService) DeleteSearch(ctx context.Context, id string) error {
	return s.DeleteSearchFn(ctx, id)
}
