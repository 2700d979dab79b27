//go:build integration

package rod_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/faretrack"
	"github.com/fwojciec/faretrack/goquery"
	"github.com/fwojciec/faretrack/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testSelectors match the fake site served by newFakeSite.
func testSelectors() rod.Selectors {
	return rod.Selectors{
		CookieClose:    "//div[@class='cookie-close']",
		CachedCity:     "//div[@class='chip-remove']",
		FromInput:      "//input[@class='origin']",
		AirportList:    "//ul[@class='suggestions']",
		AirportOption:  "//div[@class='suggestion']",
		Anywhere:       "//button[@class='anywhere']",
		SearchButton:   "//button[@class='search']",
		ResultsLoaded:  "//div[@class='results']",
		LoadMoreButton: "//button[@class='load-more']",
	}
}

const homePage = `<!DOCTYPE html>
<html>
<body>
<div id="banner"><div class="cookie-close" onclick="this.parentNode.remove()">x</div></div>
<div id="chips"><div class="chip-remove" onclick="this.remove()">Paris</div></div>
<input class="origin" oninput="document.getElementById('sugg').style.display='block'">
<ul class="suggestions" id="sugg" style="display:none"><li><div class="suggestion" onclick="window.picked=true">SXB</div></li></ul>
<button class="anywhere" onclick="window.anywhere=true">Anywhere</button>
<button class="search" onclick="history.pushState({}, '', '/explore/SXB-anywhere/now'); document.getElementById('res').style.display='block'">Search</button>
<div class="results" id="res" style="display:none"></div>
</body>
</html>`

const resultsPage = `<!DOCTYPE html>
<html>
<body>
<div class="results">
	<div class="card"><div class="city">Rome</div><div class="price">from 120</div></div>
	<div class="card"><div class="city">Madrid</div><div class="price">from 80</div></div>
</div>
<button class="load-more" onclick="
	var c = document.createElement('div');
	c.className = 'card';
	c.innerHTML = '<div class=&quot;city&quot;>Lisbon</div><div class=&quot;price&quot;>from 200</div>';
	document.querySelector('.results').appendChild(c);
	this.remove();
">Load more</button>
</body>
</html>`

// visitedPaths records the paths requested from the fake site.
type visitedPaths struct {
	mu    sync.Mutex
	paths []string
}

func (v *visitedPaths) add(p string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.paths = append(v.paths, p)
}

func (v *visitedPaths) list() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]string(nil), v.paths...)
}

func newFakeSite(t *testing.T) (*httptest.Server, *visitedPaths) {
	t.Helper()
	visited := &visitedPaths{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		visited.add(r.URL.Path)
		w.Header().Set("Content-Type", "text/html")
		if strings.HasPrefix(r.URL.Path, "/explore/") {
			_, _ = w.Write([]byte(resultsPage))
			return
		}
		_, _ = w.Write([]byte(homePage))
	}))
	t.Cleanup(srv.Close)
	return srv, visited
}

func trip() *faretrack.TripConfig {
	return &faretrack.TripConfig{
		FromCity:      "Strasbourg",
		DepartureDate: "12/06/2024",
		ArrivalDate:   "19/06/2024",
		MaxPrice:      150,
	}
}

func TestSearcher_FetchResults_RunsSearchFlow(t *testing.T) {
	t.Parallel()

	srv, visited := newFakeSite(t)

	manager, err := rod.NewBrowserManager()
	require.NoError(t, err)
	searcher := rod.NewSearcher(manager,
		rod.WithBaseURL(srv.URL),
		rod.WithSelectors(testSelectors()),
		rod.WithTimeout(2*time.Second),
	)
	defer searcher.Close()

	html, err := searcher.FetchResults(context.Background(), trip())
	require.NoError(t, err)

	assert.Contains(t, visited.list(), "/explore/SXB-anywhere/20240612,20240619")

	raw, err := goquery.NewHarvester(goquery.WithSelectors("div.city", "div.price")).Harvest(html)
	require.NoError(t, err)
	assert.Equal(t, []string{"Rome", "Madrid", "Lisbon"}, raw.CityTexts)
	assert.Equal(t, []string{"from 120", "from 80", "from 200"}, raw.PriceTexts)
}

func TestSearcher_FetchResults_TimesOutOnMissingElement(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body>maintenance</body></html>`))
	}))
	defer srv.Close()

	manager, err := rod.NewBrowserManager()
	require.NoError(t, err)
	searcher := rod.NewSearcher(manager,
		rod.WithBaseURL(srv.URL),
		rod.WithSelectors(testSelectors()),
		rod.WithTimeout(200*time.Millisecond),
	)
	defer searcher.Close()

	_, err = searcher.FetchResults(context.Background(), trip())

	require.Error(t, err)
	assert.Equal(t, faretrack.ETIMEOUT, faretrack.ErrorCode(err))
}

func TestSearcher_FetchResults_ContextCancellation(t *testing.T) {
	t.Parallel()

	manager, err := rod.NewBrowserManager()
	require.NoError(t, err)
	searcher := rod.NewSearcher(manager)
	defer searcher.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = searcher.FetchResults(ctx, trip())

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
