package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/faretrack"
	"github.com/jedib0t/go-pretty/v6/table"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	filter := faretrack.SearchFilter{Limit: c.Limit}
	if c.From != "" {
		filter.FromCity = &c.From
	}

	searches, err := deps.Searches.FindSearches(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", faretrack.ErrorMessage(err))
		return err
	}

	if len(searches) == 0 {
		fmt.Fprintln(deps.Stdout, "No saved searches. Use 'faretrack search --save' to record one.")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(deps.Stdout)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"ID", "From", "Depart", "Return", "Max", "Searched"})
	for _, s := range searches {
		t.AppendRow(table.Row{
			s.ID,
			s.FromCity,
			s.DepartureDate,
			s.ArrivalDate,
			faretrack.FormatPrice(s.MaxPrice),
			s.CreatedAt.Local().Format(time.DateTime),
		})
	}
	t.Render()

	return nil
}
