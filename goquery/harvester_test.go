package goquery_test

import (
	"testing"

	"github.com/fwojciec/faretrack"
	"github.com/fwojciec/faretrack/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const resultsHTML = `<!DOCTYPE html>
<html>
<body>
<div class="results">
	<a class="card">
		<div class="_ib0 _igh _ial _1O _iaj City__Name">
			Rome
		</div>
		<div class="_ib0 _18 _igh _ial _iaj">from 120 €</div>
	</a>
	<a class="card">
		<div class="_ib0 _igh _ial _1O _iaj City__Name">Madrid</div>
		<div class="_ib0 _18 _igh _ial _iaj">from <span>80</span> €</div>
	</a>
	<div class="ad">
		<div class="_ib0 _igh _ial _1O _iaj City__Name">Sponsored</div>
	</div>
</div>
</body>
</html>`

func TestHarvester_Harvest(t *testing.T) {
	t.Parallel()

	t.Run("collects city and price text in document order", func(t *testing.T) {
		t.Parallel()

		h := goquery.NewHarvester()

		raw, err := h.Harvest(resultsHTML)

		require.NoError(t, err)
		assert.Equal(t, []string{"Rome", "Madrid", "Sponsored"}, raw.CityTexts)
		assert.Equal(t, []string{"from 120 €", "from 80 €"}, raw.PriceTexts)
	})

	t.Run("harvested cells feed extraction", func(t *testing.T) {
		t.Parallel()

		raw, err := goquery.NewHarvester().Harvest(resultsHTML)
		require.NoError(t, err)

		trips := faretrack.Extract(raw.CityTexts, raw.PriceTexts)

		assert.Equal(t, []faretrack.Fare{
			{Destination: "Rome", Price: 120},
			{Destination: "Madrid", Price: 80},
		}, trips.Fares())
	})

	t.Run("does not match partial class lists", func(t *testing.T) {
		t.Parallel()

		html := `<div class="_ib0 _igh City__Name">Lyon</div>`

		raw, err := goquery.NewHarvester().Harvest(html)

		require.NoError(t, err)
		assert.Empty(t, raw.CityTexts)
	})

	t.Run("uses custom selectors", func(t *testing.T) {
		t.Parallel()

		html := `<ul>
<li><span class="city">Oslo</span><span class="price">from 55</span></li>
<li><span class="city">Bergen</span><span class="price">from 70</span></li>
</ul>`

		h := goquery.NewHarvester(goquery.WithSelectors("span.city", "span.price"))

		raw, err := h.Harvest(html)

		require.NoError(t, err)
		assert.Equal(t, []string{"Oslo", "Bergen"}, raw.CityTexts)
		assert.Equal(t, []string{"from 55", "from 70"}, raw.PriceTexts)
	})

	t.Run("returns empty slices for page without results", func(t *testing.T) {
		t.Parallel()

		raw, err := goquery.NewHarvester().Harvest("<html><body>No results</body></html>")

		require.NoError(t, err)
		assert.Empty(t, raw.CityTexts)
		assert.Empty(t, raw.PriceTexts)
	})
}
