package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/faretrack"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ faretrack.SearchService = (*SearchService)(nil)

// SearchService implements faretrack.SearchService using SQLite.
type SearchService struct {
	db *DB
}

// NewSearchService creates a new SearchService.
func NewSearchService(db *DB) *SearchService {
	return &SearchService{db: db}
}

// CreateSearch stores a search and its fares in one transaction.
func (s *SearchService) CreateSearch(ctx context.Context, search *faretrack.Search) error {
	if err := search.Validate(); err != nil {
		return err
	}

	search.ID = uuid.New().String()
	search.CreatedAt = time.Now().UTC()
	if search.Fingerprint == "" {
		search.Fingerprint = search.Trips().Fingerprint()
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO searches (id, from_city, departure_date, arrival_date, max_price, fingerprint, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, search.ID, search.FromCity, search.DepartureDate, search.ArrivalDate, search.MaxPrice,
		search.Fingerprint, search.CreatedAt.Format(timeLayout)); err != nil {
		return err
	}

	for i, f := range search.Fares {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO fares (search_id, position, destination, price)
			VALUES (?, ?, ?, ?)
		`, search.ID, i, f.Destination, f.Price); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindSearchByID retrieves a search with its fares in ranked order.
func (s *SearchService) FindSearchByID(ctx context.Context, id string) (*faretrack.Search, error) {
	search, err := scanSearch(s.db.QueryRowContext(ctx, `
		SELECT id, from_city, departure_date, arrival_date, max_price, fingerprint, created_at
		FROM searches
		WHERE id = ?
	`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, faretrack.Errorf(faretrack.ENOTFOUND, "search %q not found", id)
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT destination, price
		FROM fares
		WHERE search_id = ?
		ORDER BY position
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	search.Fares = []faretrack.Fare{}
	for rows.Next() {
		var f faretrack.Fare
		if err := rows.Scan(&f.Destination, &f.Price); err != nil {
			return nil, err
		}
		search.Fares = append(search.Fares, f)
	}

	return search, rows.Err()
}

// FindSearches retrieves searches matching the filter, newest first.
func (s *SearchService) FindSearches(ctx context.Context, filter faretrack.SearchFilter) ([]*faretrack.Search, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, from_city, departure_date, arrival_date, max_price, fingerprint, created_at FROM searches WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.FromCity != nil {
		query.WriteString(" AND from_city = ?")
		args = append(args, *filter.FromCity)
	}

	query.WriteString(" ORDER BY created_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var searches []*faretrack.Search
	for rows.Next() {
		search, err := scanSearch(rows)
		if err != nil {
			return nil, err
		}
		searches = append(searches, search)
	}

	return searches, rows.Err()
}

// DeleteSearch permanently removes a search. Its fares are removed by cascade.
func (s *SearchService) DeleteSearch(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM searches WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return faretrack.Errorf(faretrack.ENOTFOUND, "search %q not found", id)
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSearch(row scanner) (*faretrack.Search, error) {
	var search faretrack.Search
	var createdAt string

	if err := row.Scan(&search.ID, &search.FromCity, &search.DepartureDate, &search.ArrivalDate,
		&search.MaxPrice, &search.Fingerprint, &createdAt); err != nil {
		return nil, err
	}

	t, err := parseRFC3339(createdAt, "created_at")
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", search.ID, err)
	}
	search.CreatedAt = t

	return &search, nil
}
