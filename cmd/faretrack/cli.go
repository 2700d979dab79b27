package main

import (
	"context"
	"io"
	"strconv"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/faretrack"
	"github.com/fwojciec/faretrack/rod"
	"github.com/fwojciec/faretrack/sqlite"
	"github.com/fwojciec/faretrack/track"
	"github.com/fwojciec/faretrack/yaml"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	DB       *sqlite.DB
	Searches faretrack.SearchService
	Tracker  *track.Tracker
}

// Vars supplies flag defaults that come from package constants.
var Vars = kong.Vars{
	"configDir":   yaml.DefaultDir,
	"timeout":     rod.DefaultTimeout.String(),
	"maxLoadMore": strconv.Itoa(rod.DefaultMaxLoadMore),
	"concurrency": strconv.Itoa(track.DefaultConcurrency),
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log browser and storage operations to stderr"`

	Search  SearchCmd  `cmd:"" help:"Search destinations under a maximum price"`
	Batch   BatchCmd   `cmd:"" help:"Run every trip file in a directory"`
	Init    InitCmd    `cmd:"" help:"Write a trip file"`
	History HistoryCmd `cmd:"" help:"List saved searches"`
	Show    ShowCmd    `cmd:"" help:"Show the fares of a saved search"`
	Delete  DeleteCmd  `cmd:"" help:"Delete a saved search"`
}

// TripFlags are the trip parameters that can be given on the command line.
// MaxPrice is nil when --max-price is not given.
type TripFlags struct {
	From     string   `help:"Departure city"`
	Depart   string   `help:"Departure date (DD/MM/YYYY)"`
	Return   string   `help:"Return date (DD/MM/YYYY)"`
	MaxPrice *float64 `name:"max-price" help:"Maximum price in euros"`
}

// BrowserFlags control how searches drive the browser.
type BrowserFlags struct {
	Timeout     time.Duration `short:"t" default:"${timeout}" help:"Maximum time to wait for each page element"`
	Retries     int           `default:"0" help:"Retry a failed search this many times"`
	MaxLoadMore int           `name:"max-load-more" default:"${maxLoadMore}" help:"Maximum number of 'load more' clicks per search"`
	ShowBrowser bool          `name:"show-browser" help:"Run Chrome with a visible window"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	TripFlags    `embed:""`
	BrowserFlags `embed:""`

	Config    string `short:"c" help:"Trip file name to load from the config directory"`
	ConfigDir string `name:"config-dir" default:"${configDir}" help:"Directory holding trip files"`
	Limit     int    `short:"n" default:"0" help:"Show only the cheapest N destinations (0 shows all)"`
	Save      bool   `short:"s" help:"Save the search to history"`
	CSV       string `name:"csv" help:"Also write the fares to this CSV file"`
}

// BatchCmd is the "batch" subcommand.
type BatchCmd struct {
	BrowserFlags `embed:""`

	Dir         string        `arg:"" optional:"" default:"${configDir}" help:"Directory of trip files"`
	Concurrency int           `default:"${concurrency}" help:"Concurrent browser searches"`
	Interval    time.Duration `default:"10s" help:"Minimum time between searches"`
	Limit       int           `short:"n" default:"10" help:"Show only the cheapest N destinations per trip (0 shows all)"`
	Save        bool          `short:"s" help:"Save every successful search to history"`
}

// InitCmd is the "init" subcommand.
type InitCmd struct {
	TripFlags `embed:""`

	Name      string `arg:"" help:"Trip file name"`
	ConfigDir string `name:"config-dir" default:"${configDir}" help:"Directory holding trip files"`
	Force     bool   `short:"f" help:"Overwrite an existing trip file"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	From  string `help:"Only show searches from this departure city"`
	Limit int    `short:"n" default:"20" help:"Maximum number of searches to list"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID    string `arg:"" help:"Search ID"`
	Limit int    `short:"n" default:"0" help:"Show only the cheapest N destinations (0 shows all)"`
	CSV   bool   `name:"csv" help:"Print fares as CSV"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Search ID"`
	Force bool   `help:"Confirm deletion"`
}

// Override copies the flags that were given onto trip.
func (f TripFlags) Override(trip *faretrack.TripConfig) {
	if f.From != "" {
		trip.FromCity = f.From
	}
	if f.Depart != "" {
		trip.DepartureDate = f.Depart
	}
	if f.Return != "" {
		trip.ArrivalDate = f.Return
	}
	if f.MaxPrice != nil {
		trip.MaxPrice = *f.MaxPrice
	}
}

// resolveTrip reads the named trip file, if any, applies flag overrides and
// validates the result. Without a trip file --max-price is required.
func resolveTrip(flags TripFlags, dir, name string) (*faretrack.TripConfig, error) {
	trip := &faretrack.TripConfig{}
	if name != "" {
		var err error
		if trip, err = yaml.ReadTrip(dir, name); err != nil {
			return nil, err
		}
	} else if flags.MaxPrice == nil {
		return nil, faretrack.Errorf(faretrack.EINVALID, "--max-price is required without --config")
	}

	flags.Override(trip)
	if err := trip.Validate(); err != nil {
		return nil, err
	}
	return trip, nil
}
