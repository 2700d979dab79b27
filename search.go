package faretrack

import (
	"context"
	"time"
)

// Search is a completed fare search kept in history.
// Fares are stored in ranked order.
type Search struct {
	ID            string    `json:"id"`
	FromCity      string    `json:"fromCity"`
	DepartureDate string    `json:"departureDate"`
	ArrivalDate   string    `json:"arrivalDate"`
	MaxPrice      float64   `json:"maxPrice"`
	Fingerprint   string    `json:"fingerprint"`
	Fares         []Fare    `json:"fares"`
	CreatedAt     time.Time `json:"createdAt"`
}

// NewSearch builds a history record from a trip and its ranked results.
func NewSearch(trip *TripConfig, trips *TripOptions) *Search {
	return &Search{
		FromCity:      trip.FromCity,
		DepartureDate: trip.DepartureDate,
		ArrivalDate:   trip.ArrivalDate,
		MaxPrice:      trip.MaxPrice,
		Fingerprint:   trips.Fingerprint(),
		Fares:         trips.Fares(),
	}
}

// Trips returns the stored fares as TripOptions.
func (s *Search) Trips() *TripOptions {
	return TripOptionsFromFares(s.Fares)
}

// Validate returns an error if the search contains invalid fields.
func (s *Search) Validate() error {
	if s.FromCity == "" {
		return Errorf(EINVALID, "search departure city required")
	}
	if s.DepartureDate == "" || s.ArrivalDate == "" {
		return Errorf(EINVALID, "search dates required")
	}
	return nil
}

// SearchService represents a service for managing search history.
type SearchService interface {
	// CreateSearch stores a search and its fares.
	CreateSearch(ctx context.Context, search *Search) error

	// FindSearchByID retrieves a search with its fares.
	// Returns ENOTFOUND if search does not exist.
	FindSearchByID(ctx context.Context, id string) (*Search, error)

	// FindSearches retrieves searches matching the filter, newest first.
	// Fares are not loaded.
	FindSearches(ctx context.Context, filter SearchFilter) ([]*Search, error)

	// DeleteSearch permanently removes a search and its fares.
	// Returns ENOTFOUND if search does not exist.
	DeleteSearch(ctx context.Context, id string) error
}

// SearchFilter represents a filter for FindSearches.
type SearchFilter struct {
	ID       *string `json:"id"`
	FromCity *string `json:"fromCity"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
