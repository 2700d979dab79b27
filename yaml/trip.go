// Package yaml reads and writes trip files. A trip file holds the
// parameters of one search:
//
//	from_city: Strasbourg
//	departure_date: 12/06/2024
//	arrival_date: 19/06/2024
//	max_price: 150
//
// Environment variables (FARETRACK_FROM_CITY, FARETRACK_DEPARTURE_DATE,
// FARETRACK_ARRIVAL_DATE, FARETRACK_MAX_PRICE) override values from the file.
package yaml

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/fwojciec/faretrack"
	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"
)

// DefaultDir is the directory searched for trip files by name.
const DefaultDir = "./configs"

// TripPath returns the path of the named trip file in dir.
// A name without extension gets ".yaml".
func TripPath(dir, name string) string {
	if filepath.Ext(name) == "" {
		name += ".yaml"
	}
	return filepath.Join(dir, name)
}

// LoadTrip reads the named trip file from dir and validates it.
func LoadTrip(dir, name string) (*faretrack.TripConfig, error) {
	return LoadTripFile(TripPath(dir, name))
}

// LoadTripFile reads a trip file and validates it.
// Returns ENOTFOUND if the file does not exist.
func LoadTripFile(path string) (*faretrack.TripConfig, error) {
	trip, err := ReadTripFile(path)
	if err != nil {
		return nil, err
	}
	if err := trip.Validate(); err != nil {
		return nil, err
	}
	return trip, nil
}

// ReadTrip reads the named trip file from dir without validating it, so
// callers can apply overrides first.
func ReadTrip(dir, name string) (*faretrack.TripConfig, error) {
	return ReadTripFile(TripPath(dir, name))
}

// ReadTripFile reads a trip file without validating it.
// Returns ENOTFOUND if the file does not exist.
func ReadTripFile(path string) (*faretrack.TripConfig, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, faretrack.Errorf(faretrack.ENOTFOUND, "trip file %q not found", path)
	}

	var trip faretrack.TripConfig
	if err := cleanenv.ReadConfig(path, &trip); err != nil {
		return nil, faretrack.Errorf(faretrack.EINVALID, "reading trip file %q: %v", path, err)
	}
	return &trip, nil
}

// SaveTrip writes trip to path, creating parent directories.
func SaveTrip(path string, trip *faretrack.TripConfig) error {
	if err := trip.Validate(); err != nil {
		return err
	}

	data, err := yaml.Marshal(trip)
	if err != nil {
		return fmt.Errorf("encoding trip: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ListTrips returns the paths of every trip file in dir, sorted by name.
func ListTrips(dir string) ([]string, error) {
	var paths []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		paths = append(paths, matches...)
	}
	sort.Strings(paths)
	return paths, nil
}
