package faretrack

import (
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Fare is a single destination with its round-trip price in euros.
type Fare struct {
	Destination string  `json:"destination" csv:"destination"`
	Price       float64 `json:"price" csv:"price"`
}

// RawResults holds the text content of the city and price cells harvested
// from a results page. The two slices are aligned by position but may differ
// in length when the page contains partial entries.
type RawResults struct {
	CityTexts  []string
	PriceTexts []string
}

// TripOptions is an ordered mapping from destination to price.
// Iteration order is insertion order; setting an existing destination
// replaces its price in place.
type TripOptions struct {
	fares []Fare
	index map[string]int
}

// NewTripOptions returns an empty TripOptions.
func NewTripOptions() *TripOptions {
	return &TripOptions{index: make(map[string]int)}
}

// Set stores the price for a destination.
func (t *TripOptions) Set(destination string, price float64) {
	if t.index == nil {
		t.index = make(map[string]int)
	}
	if i, ok := t.index[destination]; ok {
		t.fares[i].Price = price
		return
	}
	t.index[destination] = len(t.fares)
	t.fares = append(t.fares, Fare{Destination: destination, Price: price})
}

// Get returns the price for a destination and whether it is present.
func (t *TripOptions) Get(destination string) (float64, bool) {
	if t == nil {
		return 0, false
	}
	i, ok := t.index[destination]
	if !ok {
		return 0, false
	}
	return t.fares[i].Price, true
}

// Len returns the number of destinations.
func (t *TripOptions) Len() int {
	if t == nil {
		return 0
	}
	return len(t.fares)
}

// Fares returns a copy of the entries in iteration order.
func (t *TripOptions) Fares() []Fare {
	if t == nil {
		return []Fare{}
	}
	return slices.Clone(t.fares)
}

// Head returns a new TripOptions holding the first n entries.
// A non-positive n returns a copy of all entries.
func (t *TripOptions) Head(n int) *TripOptions {
	fares := t.Fares()
	if n > 0 && n < len(fares) {
		fares = fares[:n]
	}
	return TripOptionsFromFares(fares)
}

// Fingerprint returns a hash of the entries and their order. Two searches
// with the same fingerprint returned the same ranked destinations.
func (t *TripOptions) Fingerprint() string {
	h := xxhash.New()
	for _, f := range t.Fares() {
		_, _ = h.WriteString(f.Destination)
		_, _ = h.WriteString("\x00")
		_, _ = h.WriteString(strconv.FormatFloat(f.Price, 'f', -1, 64))
		_, _ = h.WriteString("\n")
	}
	return strconv.FormatUint(h.Sum64(), 16)
}

// TripOptionsFromFares builds a TripOptions from fares in order.
// Later duplicates overwrite earlier ones.
func TripOptionsFromFares(fares []Fare) *TripOptions {
	t := NewTripOptions()
	for _, f := range fares {
		t.Set(f.Destination, f.Price)
	}
	return t
}

// ParsePrice parses a price cell such as "from 120". The amount is the
// second whitespace-separated token and must be a finite, non-negative number.
func ParsePrice(text string) (float64, error) {
	fields := strings.Fields(text)
	if len(fields) < 2 {
		return 0, Errorf(EINVALID, "price %q has no amount", text)
	}
	price, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return 0, Errorf(EINVALID, "price %q is not a number", text)
	}
	if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return 0, Errorf(EINVALID, "price %q is out of range", text)
	}
	if price == 0 {
		// "-0" parses to negative zero.
		price = 0
	}
	return price, nil
}

// ParseFare parses one city cell and its matching price cell.
func ParseFare(cityText, priceText string) (Fare, error) {
	if cityText == "" {
		return Fare{}, Errorf(EINVALID, "destination required")
	}
	price, err := ParsePrice(priceText)
	if err != nil {
		return Fare{}, err
	}
	return Fare{Destination: cityText, Price: price}, nil
}

// Extract pairs city and price texts by position and returns the fares that
// parse. Pairing stops at the end of the shorter slice. Pairs that fail to
// parse, such as ads or placeholders, are skipped.
func Extract(cityTexts, priceTexts []string) *TripOptions {
	trips := NewTripOptions()
	n := min(len(cityTexts), len(priceTexts))
	for i := 0; i < n; i++ {
		fare, err := ParseFare(cityTexts[i], priceTexts[i])
		if err != nil {
			continue
		}
		trips.Set(fare.Destination, fare.Price)
	}
	return trips
}

// FilterAndSort returns the entries priced at or below maxPrice, ordered by
// ascending price. Entries with equal prices keep their relative order.
// The input is not modified.
func FilterAndSort(trips *TripOptions, maxPrice float64) *TripOptions {
	var kept []Fare
	for _, f := range trips.Fares() {
		if f.Price <= maxPrice {
			kept = append(kept, f)
		}
	}
	slices.SortStableFunc(kept, func(a, b Fare) int {
		switch {
		case a.Price < b.Price:
			return -1
		case a.Price > b.Price:
			return 1
		}
		return 0
	})
	return TripOptionsFromFares(kept)
}
