package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/faretrack"
)

// Ensure LoggingHarvester implements faretrack.Harvester.
var _ faretrack.Harvester = (*LoggingHarvester)(nil)

// LoggingHarvester wraps a Harvester with logging of cell counts. Unequal
// counts usually mean the page holds ads or placeholders.
type LoggingHarvester struct {
	next   faretrack.Harvester
	logger *slog.Logger
}

// NewLoggingHarvester creates a new LoggingHarvester.
func NewLoggingHarvester(next faretrack.Harvester, logger *slog.Logger) *LoggingHarvester {
	return &LoggingHarvester{next: next, logger: logger}
}

// Harvest delegates to the wrapped harvester and logs the cell counts.
func (h *LoggingHarvester) Harvest(html string) (raw *faretrack.RawResults, err error) {
	defer func(begin time.Time) {
		var cities, prices int
		if raw != nil {
			cities, prices = len(raw.CityTexts), len(raw.PriceTexts)
		}
		h.logger.Info("harvest",
			"cities", cities,
			"prices", prices,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return h.next.Harvest(html)
}
