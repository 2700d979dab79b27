package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/faretrack"
	farecsv "github.com/fwojciec/faretrack/csv"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	search, err := deps.Searches.FindSearchByID(deps.Ctx, c.ID)
	if err != nil {
		if faretrack.ErrorCode(err) == faretrack.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: search %q not found. Use 'faretrack history' to list searches.\n", c.ID)
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", faretrack.ErrorMessage(err))
		return err
	}

	trips := search.Trips()

	if c.CSV {
		if err := farecsv.WriteFares(deps.Stdout, trips.Head(c.Limit).Fares()); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", faretrack.ErrorMessage(err))
			return err
		}
		return nil
	}

	fmt.Fprintf(deps.Stdout, "From %s, %s to %s, up to %s euros (searched %s)\n",
		search.FromCity, search.DepartureDate, search.ArrivalDate,
		faretrack.FormatPrice(search.MaxPrice), search.CreatedAt.Local().Format(time.DateTime))
	printTrips(deps, trips, c.Limit)

	return nil
}
