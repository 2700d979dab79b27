package faretrack

import (
	"strconv"
	"strings"
)

// FormatPrice renders a price with the fewest digits needed, e.g. "120" or "79.5".
func FormatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', -1, 64)
}

// FormatTrips renders trips one per line as "- <destination> for <price> euros".
// When limit is positive only the first limit trips are rendered.
func FormatTrips(trips *TripOptions, limit int) string {
	fares := trips.Head(limit).Fares()
	if len(fares) == 0 {
		return ""
	}

	lines := make([]string, 0, len(fares))
	for _, f := range fares {
		lines = append(lines, "- "+f.Destination+" for "+FormatPrice(f.Price)+" euros")
	}

	return strings.Join(lines, "\n")
}
