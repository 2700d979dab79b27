package rod

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"time"

	"github.com/fwojciec/faretrack"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultBaseURL is the home page of the fare search site.
const DefaultBaseURL = "https://www.kayak.fr"

// DefaultTimeout is how long to wait for each element to appear.
const DefaultTimeout = 5 * time.Second

// DefaultMaxLoadMore bounds the number of "load more" clicks per search.
const DefaultMaxLoadMore = 50

// hideWebdriver removes the automation marker some sites use to block headless browsers.
const hideWebdriver = `Object.defineProperty(navigator, 'webdriver', {get: () => undefined})`

// Ensure Searcher implements faretrack.ResultsFetcher at compile time.
var _ faretrack.ResultsFetcher = (*Searcher)(nil)

// Searcher runs fare searches through the site's explore view.
// Each search uses its own tab, so Searcher is safe for concurrent use.
type Searcher struct {
	manager     *BrowserManager
	baseURL     string
	timeout     time.Duration
	maxLoadMore int
	selectors   Selectors
}

// SearcherOption configures a Searcher.
type SearcherOption func(*Searcher)

// WithBaseURL sets the site home page. Defaults to DefaultBaseURL.
func WithBaseURL(u string) SearcherOption {
	return func(s *Searcher) {
		s.baseURL = u
	}
}

// WithTimeout sets how long to wait for each element. Defaults to 5 seconds.
func WithTimeout(d time.Duration) SearcherOption {
	return func(s *Searcher) {
		s.timeout = d
	}
}

// WithMaxLoadMore bounds the number of "load more" clicks. Defaults to 50.
func WithMaxLoadMore(n int) SearcherOption {
	return func(s *Searcher) {
		s.maxLoadMore = n
	}
}

// WithSelectors overrides the XPath selectors used by the search flow.
func WithSelectors(sel Selectors) SearcherOption {
	return func(s *Searcher) {
		s.selectors = sel
	}
}

// NewSearcher creates a Searcher that drives browsers from manager.
// The Searcher takes ownership of manager and closes it on Close.
func NewSearcher(manager *BrowserManager, opts ...SearcherOption) *Searcher {
	s := &Searcher{
		manager:     manager,
		baseURL:     DefaultBaseURL,
		timeout:     DefaultTimeout,
		maxLoadMore: DefaultMaxLoadMore,
		selectors:   DefaultSelectors(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FetchResults runs the search described by trip and returns the rendered
// results page after every "load more" batch has been loaded.
func (s *Searcher) FetchResults(ctx context.Context, trip *faretrack.TripConfig) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dates, err := trip.SiteDateRange()
	if err != nil {
		return "", err
	}

	browser := s.manager.Acquire()
	defer s.manager.Release()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", fmt.Errorf("opening tab: %w", err)
	}
	defer page.Close()

	page = page.Context(ctx)

	if _, err := page.EvalOnNewDocument(hideWebdriver); err != nil {
		return "", fmt.Errorf("hiding webdriver flag: %w", err)
	}
	if err := page.Navigate(s.baseURL); err != nil {
		return "", fmt.Errorf("opening %s: %w", s.baseURL, err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	steps := []func(*rod.Page) error{
		s.dismissCookies,
		s.clearCachedCities,
		func(p *rod.Page) error { return s.setFromCity(p, trip.FromCity) },
		s.pickFirstAirport,
		s.moveToDestination,
		s.chooseAnywhere,
		s.submit,
		func(p *rod.Page) error { return s.applyDates(p, dates) },
		s.loadAllResults,
	}
	for _, step := range steps {
		if err := step(page); err != nil {
			return "", err
		}
	}

	return page.HTML()
}

// Close releases browser resources.
func (s *Searcher) Close() error {
	return s.manager.Close()
}

func (s *Searcher) dismissCookies(page *rod.Page) error {
	el, err := s.visible(page, s.selectors.CookieClose, "cookie banner")
	if err != nil {
		return err
	}
	return el.Click(proto.InputMouseButtonLeft, 1)
}

// clearCachedCities removes origins the site pre-fills from earlier visits.
func (s *Searcher) clearCachedCities(page *rod.Page) error {
	if _, err := s.visible(page, s.selectors.CachedCity, "pre-filled origin"); err != nil {
		return err
	}

	buttons, err := page.ElementsX(s.selectors.CachedCity)
	if err != nil {
		return err
	}
	for _, b := range buttons {
		// Removing one chip can detach the others.
		_ = b.Click(proto.InputMouseButtonLeft, 1)
	}
	return nil
}

func (s *Searcher) setFromCity(page *rod.Page, city string) error {
	el, err := s.visible(page, s.selectors.FromInput, "origin input")
	if err != nil {
		return err
	}
	return el.Input(city)
}

func (s *Searcher) pickFirstAirport(page *rod.Page) error {
	if _, err := s.visible(page, s.selectors.AirportList, "airport suggestions"); err != nil {
		return err
	}

	options, err := page.ElementsX(s.selectors.AirportOption)
	if err != nil {
		return err
	}
	if len(options) == 0 {
		return faretrack.Errorf(faretrack.ENOTFOUND, "no airport suggested for the departure city")
	}
	return options.First().Click(proto.InputMouseButtonLeft, 1)
}

// moveToDestination confirms the origin and tabs over to the destination field.
func (s *Searcher) moveToDestination(page *rod.Page) error {
	return page.Keyboard.Type(input.Enter, input.Tab, input.Tab)
}

func (s *Searcher) chooseAnywhere(page *rod.Page) error {
	el, err := s.visible(page, s.selectors.Anywhere, "anywhere destination")
	if err != nil {
		return err
	}
	return el.Click(proto.InputMouseButtonLeft, 1)
}

func (s *Searcher) submit(page *rod.Page) error {
	el, err := s.visible(page, s.selectors.SearchButton, "search button")
	if err != nil {
		return err
	}
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return err
	}
	_, err = s.visible(page, s.selectors.ResultsLoaded, "search results")
	return err
}

// applyDates reloads the results for the trip's dates, which the explore
// view only accepts through its URL.
func (s *Searcher) applyDates(page *rod.Page, dates string) error {
	info, err := page.Info()
	if err != nil {
		return err
	}

	target, err := DateRangeURL(info.URL, dates)
	if err != nil {
		return err
	}

	if err := page.Navigate(target); err != nil {
		return fmt.Errorf("opening %s: %w", target, err)
	}
	if err := page.WaitLoad(); err != nil {
		return err
	}
	_, err = s.visible(page, s.selectors.ResultsLoaded, "dated search results")
	return err
}

// loadAllResults clicks "load more" until the button stops appearing.
func (s *Searcher) loadAllResults(page *rod.Page) error {
	for i := 0; i < s.maxLoadMore; i++ {
		el, err := s.visible(page, s.selectors.LoadMoreButton, "load more button")
		if faretrack.ErrorCode(err) == faretrack.ETIMEOUT {
			return nil
		}
		if err != nil {
			return err
		}
		if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
			return err
		}
	}
	return nil
}

// visible waits up to the configured timeout for the element at xpath to be
// visible. The returned element is bound to the page context rather than
// the wait deadline.
func (s *Searcher) visible(page *rod.Page, xpath, what string) (*rod.Element, error) {
	waiting := page.Timeout(s.timeout)
	defer waiting.CancelTimeout()

	el, err := waiting.ElementX(xpath)
	if err == nil {
		err = el.WaitVisible()
	}
	if err != nil {
		return nil, waitError(page.GetContext(), what, err)
	}
	return el.Context(page.GetContext()), nil
}

func waitError(ctx context.Context, what string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return faretrack.Errorf(faretrack.ETIMEOUT, "%s did not appear in time", what)
	}
	return fmt.Errorf("waiting for %s: %w", what, err)
}

// DateRangeURL replaces the last path segment of an explore URL with the
// given date range, e.g. /explore/SXB-anywhere/x → /explore/SXB-anywhere/20240612,20240619.
func DateRangeURL(rawURL, dates string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", faretrack.Errorf(faretrack.EINVALID, "invalid results URL: %v", err)
	}
	if u.Path == "" || u.Path == "/" {
		return "", faretrack.Errorf(faretrack.EINVALID, "results URL %q has no path", rawURL)
	}
	u.Path = path.Join(path.Dir(u.Path), dates)
	u.RawPath = ""
	return u.String(), nil
}
