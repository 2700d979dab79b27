package mock

import "github.com/fwojciec/faretrack"

var _ faretrack.Harvester = (*Harvester)(nil)

// Harvester is a mock implementation of faretrack.Harvester.
type Harvester struct {
	HarvestFn func(html string) (*faretrack.RawResults, error)
}

func (h *Harvester) Harvest(html string) (*faretrack.RawResults, error) {
	return h.HarvestFn(html)
}
