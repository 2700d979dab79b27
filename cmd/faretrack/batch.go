package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/fwojciec/faretrack"
	"github.com/fwojciec/faretrack/yaml"
)

var (
	headerColor = color.New(color.Bold)
	failColor   = color.New(color.FgRed)
)

// Run executes the batch command.
func (c *BatchCmd) Run(deps *Dependencies) error {
	paths, err := yaml.ListTrips(c.Dir)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", faretrack.ErrorMessage(err))
		return err
	}

	if len(paths) == 0 {
		fmt.Fprintf(deps.Stderr, "error: no trip files in %s. Use 'faretrack init' to create one.\n", c.Dir)
		return faretrack.Errorf(faretrack.ENOTFOUND, "no trip files in %s", c.Dir)
	}

	trips := make([]*faretrack.TripConfig, 0, len(paths))
	names := make([]string, 0, len(paths))
	for _, path := range paths {
		trip, err := yaml.LoadTripFile(path)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "skipping %s: %s\n", path, faretrack.ErrorMessage(err))
			continue
		}
		trips = append(trips, trip)
		names = append(names, path)
	}

	if len(trips) == 0 {
		fmt.Fprintf(deps.Stderr, "error: no valid trip files in %s\n", c.Dir)
		return faretrack.Errorf(faretrack.EINVALID, "no valid trip files in %s", c.Dir)
	}

	results, err := deps.Tracker.SearchAll(deps.Ctx, trips)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", faretrack.ErrorMessage(err))
		return err
	}

	var failed int
	for i, r := range results {
		headerColor.Fprintf(deps.Stdout, "\n== %s (from %s, %s to %s)\n",
			names[i], r.Trip.FromCity, r.Trip.DepartureDate, r.Trip.ArrivalDate)

		if r.Err != nil {
			failed++
			failColor.Fprintf(deps.Stdout, "failed: %s\n", faretrack.ErrorMessage(r.Err))
			continue
		}

		printTrips(deps, r.Trips, c.Limit)

		if c.Save {
			if err := saveSearch(deps, r.Trip, r.Trips); err != nil {
				fmt.Fprintf(deps.Stderr, "error: %s\n", faretrack.ErrorMessage(err))
				return err
			}
		}
	}

	if failed > 0 {
		return faretrack.Errorf(faretrack.EINTERNAL, "%d of %d searches failed", failed, len(results))
	}
	return nil
}
