package csv_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fwojciec/faretrack"
	"github.com/fwojciec/faretrack/csv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFares(t *testing.T) {
	t.Parallel()

	t.Run("writes header and rows in order", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		fares := []faretrack.Fare{
			{Destination: "Madrid", Price: 80},
			{Destination: "Rome", Price: 120.5},
		}

		require.NoError(t, csv.WriteFares(&buf, fares))

		assert.Equal(t, "destination,price\nMadrid,80\nRome,120.5\n", buf.String())
	})

	t.Run("quotes destinations containing commas", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer

		require.NoError(t, csv.WriteFares(&buf, []faretrack.Fare{{Destination: "Washington, D.C.", Price: 400}}))

		assert.Contains(t, buf.String(), "\"Washington, D.C.\",400")
	})

	t.Run("writes only header for no fares", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer

		require.NoError(t, csv.WriteFares(&buf, nil))

		assert.Equal(t, "destination,price\n", buf.String())
	})
}

func TestReadFares(t *testing.T) {
	t.Parallel()

	t.Run("reads written fares", func(t *testing.T) {
		t.Parallel()

		fares, err := csv.ReadFares(strings.NewReader("destination,price\nMadrid,80\nRome,120.5\n"))

		require.NoError(t, err)
		assert.Equal(t, []faretrack.Fare{
			{Destination: "Madrid", Price: 80},
			{Destination: "Rome", Price: 120.5},
		}, fares)
	})

	t.Run("returns empty slice for empty input", func(t *testing.T) {
		t.Parallel()

		fares, err := csv.ReadFares(strings.NewReader(""))

		require.NoError(t, err)
		assert.Empty(t, fares)
	})

	t.Run("rejects non-numeric price", func(t *testing.T) {
		t.Parallel()

		_, err := csv.ReadFares(strings.NewReader("destination,price\nMadrid,cheap\n"))

		assert.Equal(t, faretrack.EINVALID, faretrack.ErrorCode(err))
	})
}
