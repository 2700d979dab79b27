package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/fwojciec/faretrack"
	"github.com/fwojciec/faretrack/yaml"
)

// Run executes the init command.
func (c *InitCmd) Run(deps *Dependencies) error {
	trip, err := resolveTrip(c.TripFlags, "", "")
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", faretrack.ErrorMessage(err))
		return err
	}

	path := yaml.TripPath(c.ConfigDir, c.Name)

	if !c.Force {
		if _, err := os.Stat(path); err == nil {
			fmt.Fprintf(deps.Stderr, "error: %s already exists. Use --force to overwrite.\n", path)
			return faretrack.Errorf(faretrack.ECONFLICT, "trip file %q already exists", path)
		} else if !errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintf(deps.Stderr, "error: %s\n", err)
			return err
		}
	}

	if err := yaml.SaveTrip(path, trip); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", faretrack.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Wrote trip file %s\n", path)
	return nil
}
