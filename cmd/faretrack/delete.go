package main

import (
	"fmt"

	"github.com/fwojciec/faretrack"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return faretrack.Errorf(faretrack.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Searches.DeleteSearch(deps.Ctx, c.ID); err != nil {
		if faretrack.ErrorCode(err) == faretrack.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: search %q not found. Use 'faretrack history' to list searches.\n", c.ID)
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", faretrack.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted search %s\n", c.ID)
	return nil
}
