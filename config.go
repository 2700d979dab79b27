package faretrack

import (
	"time"
)

// DateLayout is the layout of trip dates as entered by users (DD/MM/YYYY).
const DateLayout = "02/01/2006"

// siteDateLayout is the layout the fare site expects in its URLs.
const siteDateLayout = "20060102"

// TripConfig holds the parameters of one fare search.
type TripConfig struct {
	FromCity      string  `yaml:"from_city" env:"FARETRACK_FROM_CITY"`
	DepartureDate string  `yaml:"departure_date" env:"FARETRACK_DEPARTURE_DATE"`
	ArrivalDate   string  `yaml:"arrival_date" env:"FARETRACK_ARRIVAL_DATE"`
	MaxPrice      float64 `yaml:"max_price" env:"FARETRACK_MAX_PRICE"`
}

// Validate returns an error if the trip contains invalid fields.
func (c *TripConfig) Validate() error {
	if c.FromCity == "" {
		return Errorf(EINVALID, "departure city required")
	}
	departure, err := c.Departure()
	if err != nil {
		return err
	}
	arrival, err := c.Arrival()
	if err != nil {
		return err
	}
	if arrival.Before(departure) {
		return Errorf(EINVALID, "arrival date %s is before departure date %s", c.ArrivalDate, c.DepartureDate)
	}
	if c.MaxPrice < 0 {
		return Errorf(EINVALID, "maximum price must not be negative")
	}
	return nil
}

// Departure returns the parsed departure date.
func (c *TripConfig) Departure() (time.Time, error) {
	return parseTripDate("departure", c.DepartureDate)
}

// Arrival returns the parsed return date.
func (c *TripConfig) Arrival() (time.Time, error) {
	return parseTripDate("arrival", c.ArrivalDate)
}

// SiteDateRange returns the trip dates formatted for the fare site's
// explore URL, e.g. "20240612,20240619".
func (c *TripConfig) SiteDateRange() (string, error) {
	departure, err := c.Departure()
	if err != nil {
		return "", err
	}
	arrival, err := c.Arrival()
	if err != nil {
		return "", err
	}
	return departure.Format(siteDateLayout) + "," + arrival.Format(siteDateLayout), nil
}

func parseTripDate(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, Errorf(EINVALID, "%s date required", field)
	}
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, Errorf(EINVALID, "%s date %q must use DD/MM/YYYY", field, value)
	}
	return t, nil
}
