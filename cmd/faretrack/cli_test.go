package main_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/faretrack"
	main "github.com/fwojciec/faretrack/cmd/faretrack"
	"github.com/fwojciec/faretrack/mock"
	"github.com/fwojciec/faretrack/rod"
	"github.com/fwojciec/faretrack/track"
	"github.com/fwojciec/faretrack/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allCommands = []string{"search", "batch", "init", "history", "show", "delete"}

func TestCLI_HelpShowsAllCommands(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	parser, err := kong.New(cli,
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		main.Vars,
	)
	require.NoError(t, err)

	_, _ = parser.Parse([]string{"--help"})

	helpOutput := stdout.String()
	for _, cmd := range allCommands {
		assert.Contains(t, helpOutput, cmd, "Help should mention %s command", cmd)
	}
}

func TestCLI_ParsesSearchFlags(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	parser, err := kong.New(cli, kong.Exit(func(int) {}), main.Vars)
	require.NoError(t, err)

	_, err = parser.Parse([]string{
		"search",
		"--from", "Strasbourg",
		"--depart", "12/06/2024",
		"--return", "19/06/2024",
		"--max-price", "150",
		"-n", "10",
		"--csv", "out.csv",
	})
	require.NoError(t, err)

	assert.Equal(t, "Strasbourg", cli.Search.From)
	assert.Equal(t, "12/06/2024", cli.Search.Depart)
	assert.Equal(t, "19/06/2024", cli.Search.Return)
	require.NotNil(t, cli.Search.MaxPrice)
	assert.InDelta(t, 150.0, *cli.Search.MaxPrice, 0)
	assert.Equal(t, 10, cli.Search.Limit)
	assert.Equal(t, "out.csv", cli.Search.CSV)
	assert.Equal(t, yaml.DefaultDir, cli.Search.ConfigDir)
	assert.Equal(t, rod.DefaultTimeout, cli.Search.Timeout)
	assert.Equal(t, rod.DefaultMaxLoadMore, cli.Search.MaxLoadMore)
	assert.False(t, cli.Search.ShowBrowser)
}

func TestCLI_MaxPriceFlagPresence(t *testing.T) {
	t.Parallel()

	t.Run("unset when not given", func(t *testing.T) {
		t.Parallel()

		cli := &main.CLI{}
		parser, err := kong.New(cli, kong.Exit(func(int) {}), main.Vars)
		require.NoError(t, err)

		_, err = parser.Parse([]string{"search", "-c", "summer"})
		require.NoError(t, err)

		assert.Nil(t, cli.Search.MaxPrice)
	})

	t.Run("zero when given as zero", func(t *testing.T) {
		t.Parallel()

		cli := &main.CLI{}
		parser, err := kong.New(cli, kong.Exit(func(int) {}), main.Vars)
		require.NoError(t, err)

		_, err = parser.Parse([]string{"search", "-c", "summer", "--max-price", "0"})
		require.NoError(t, err)

		require.NotNil(t, cli.Search.MaxPrice)
		assert.Zero(t, *cli.Search.MaxPrice)
	})
}

func TestCLI_BatchDefaults(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	parser, err := kong.New(cli, kong.Exit(func(int) {}), main.Vars)
	require.NoError(t, err)

	_, err = parser.Parse([]string{"batch", "--max-load-more", "3", "--show-browser"})
	require.NoError(t, err)

	assert.Equal(t, yaml.DefaultDir, cli.Batch.Dir)
	assert.Equal(t, track.DefaultConcurrency, cli.Batch.Concurrency)
	assert.Equal(t, 3, cli.Batch.MaxLoadMore)
	assert.True(t, cli.Batch.ShowBrowser)
}

func TestMain_Run_HelpShowsKongOutput(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"--help"}, stdout, stderr)
	require.NoError(t, err)

	helpOutput := stdout.String()
	for _, cmd := range allCommands {
		assert.Contains(t, helpOutput, cmd, "Help should mention %s command", cmd)
	}
	assert.Contains(t, helpOutput, "Usage:")
	assert.Contains(t, helpOutput, "Flags:")
}

func TestMain_Run_NoArgsReturnsError(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")

	err := m.Run(context.Background(), nil, &bytes.Buffer{}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no command specified")
}

func TestMain_Run_HistoryOnEmptyDatabase(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")

	stdout := &bytes.Buffer{}
	err := m.Run(context.Background(), []string{"history"}, stdout, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "No saved searches")
}

// newTestTracker returns a tracker whose browser and harvester are replaced
// by mocks reporting the given city and price cells.
func newTestTracker(cities, prices []string) *track.Tracker {
	return &track.Tracker{
		Fetcher: &mock.ResultsFetcher{
			FetchResultsFn: func(_ context.Context, _ *faretrack.TripConfig) (string, error) {
				return "<html></html>", nil
			},
		},
		Harvester: &mock.Harvester{
			HarvestFn: func(_ string) (*faretrack.RawResults, error) {
				return &faretrack.RawResults{CityTexts: cities, PriceTexts: prices}, nil
			},
		},
	}
}
