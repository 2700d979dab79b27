// Package goquery harvests fare result cells from rendered HTML using goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/faretrack"
)

// Default CSS selectors for the explore view's result cards.
const (
	DefaultCitySelector  = "div[class='_ib0 _igh _ial _1O _iaj City__Name']"
	DefaultPriceSelector = "div[class='_ib0 _18 _igh _ial _iaj']"
)

// Ensure Harvester implements faretrack.Harvester at compile time.
var _ faretrack.Harvester = (*Harvester)(nil)

// Harvester collects city and price cell text with CSS selectors.
type Harvester struct {
	citySelector  string
	priceSelector string
}

// HarvesterOption configures a Harvester.
type HarvesterOption func(*Harvester)

// WithSelectors overrides the city and price cell selectors.
func WithSelectors(city, price string) HarvesterOption {
	return func(h *Harvester) {
		h.citySelector = city
		h.priceSelector = price
	}
}

// NewHarvester creates a new Harvester using the default selectors unless overridden.
func NewHarvester(opts ...HarvesterOption) *Harvester {
	h := &Harvester{
		citySelector:  DefaultCitySelector,
		priceSelector: DefaultPriceSelector,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Harvest parses HTML and returns the text of every matched city and price
// cell in document order. Text is trimmed of surrounding whitespace.
func (h *Harvester) Harvest(html string) (*faretrack.RawResults, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, faretrack.Errorf(faretrack.EINVALID, "failed to parse HTML: %v", err)
	}

	return &faretrack.RawResults{
		CityTexts:  texts(doc.Find(h.citySelector)),
		PriceTexts: texts(doc.Find(h.priceSelector)),
	}, nil
}

func texts(sel *goquery.Selection) []string {
	out := make([]string, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		out = append(out, strings.TrimSpace(s.Text()))
	})
	return out
}
