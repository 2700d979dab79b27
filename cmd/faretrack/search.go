package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/fwojciec/faretrack"
	farecsv "github.com/fwojciec/faretrack/csv"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	trip, err := resolveTrip(c.TripFlags, c.ConfigDir, c.Config)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", faretrack.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Searching from %s, %s to %s, up to %s euros...\n",
		trip.FromCity, trip.DepartureDate, trip.ArrivalDate, faretrack.FormatPrice(trip.MaxPrice))

	found, err := deps.Tracker.Search(deps.Ctx, trip)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", faretrack.ErrorMessage(err))
		return err
	}

	printTrips(deps, found, c.Limit)

	if c.CSV != "" {
		previous, err := readCSVFile(c.CSV)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", faretrack.ErrorMessage(err))
			return err
		}
		if err := writeCSVFile(c.CSV, found); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", faretrack.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Wrote %d fares to %s\n", found.Len(), c.CSV)
		if previous != nil {
			added, gone := compareDestinations(previous, found)
			fmt.Fprintf(deps.Stdout, "Since the previous export: %d new, %d gone\n", added, gone)
		}
	}

	if c.Save {
		if err := saveSearch(deps, trip, found); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", faretrack.ErrorMessage(err))
			return err
		}
	}

	return nil
}

// printTrips writes ranked trips, or a notice when there are none.
func printTrips(deps *Dependencies, trips *faretrack.TripOptions, limit int) {
	if trips.Len() == 0 {
		fmt.Fprintln(deps.Stdout, "No destinations found within budget.")
		return
	}

	fmt.Fprintln(deps.Stdout, "You can go to:")
	fmt.Fprintln(deps.Stdout, faretrack.FormatTrips(trips, limit))
	if limit > 0 && trips.Len() > limit {
		fmt.Fprintf(deps.Stdout, "... and %d more\n", trips.Len()-limit)
	}
}

// readCSVFile returns the fares of an earlier export at path, or nil when
// there is none or it cannot be decoded.
func readCSVFile(path string) (*faretrack.TripOptions, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open csv file: %w", err)
	}
	defer f.Close()

	fares, err := farecsv.ReadFares(f)
	if faretrack.ErrorCode(err) == faretrack.EINVALID {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return faretrack.TripOptionsFromFares(fares), nil
}

// compareDestinations counts destinations in current but not previous, and
// in previous but not current.
func compareDestinations(previous, current *faretrack.TripOptions) (added, gone int) {
	for _, f := range current.Fares() {
		if _, ok := previous.Get(f.Destination); !ok {
			added++
		}
	}
	for _, f := range previous.Fares() {
		if _, ok := current.Get(f.Destination); !ok {
			gone++
		}
	}
	return added, gone
}

func writeCSVFile(path string, trips *faretrack.TripOptions) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	return farecsv.WriteFares(f, trips.Fares())
}

// saveSearch stores the search in history and reports whether the ranked
// results changed since the last identical search.
func saveSearch(deps *Dependencies, trip *faretrack.TripConfig, trips *faretrack.TripOptions) error {
	search := faretrack.NewSearch(trip, trips)

	previous, err := deps.Searches.FindSearches(deps.Ctx, faretrack.SearchFilter{FromCity: &trip.FromCity})
	if err != nil {
		return err
	}
	for _, p := range previous {
		if p.DepartureDate != trip.DepartureDate || p.ArrivalDate != trip.ArrivalDate || p.MaxPrice != trip.MaxPrice {
			continue
		}
		if p.Fingerprint == search.Fingerprint {
			fmt.Fprintf(deps.Stdout, "Results unchanged since %s\n", p.CreatedAt.Local().Format(time.DateTime))
		} else {
			fmt.Fprintf(deps.Stdout, "Results changed since %s\n", p.CreatedAt.Local().Format(time.DateTime))
		}
		break
	}

	if err := deps.Searches.CreateSearch(deps.Ctx, search); err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Saved search %s\n", search.ID)
	return nil
}
