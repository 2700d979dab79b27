package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/faretrack"
	main "github.com/fwojciec/faretrack/cmd/faretrack"
	"github.com/fwojciec/faretrack/mock"
	"github.com/fwojciec/faretrack/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTrip(t *testing.T, dir, name, from string) {
	t.Helper()
	trip := &faretrack.TripConfig{
		FromCity:      from,
		DepartureDate: "12/06/2024",
		ArrivalDate:   "19/06/2024",
		MaxPrice:      150,
	}
	require.NoError(t, yaml.SaveTrip(yaml.TripPath(dir, name), trip))
}

func TestBatchCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("searches every trip file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeTrip(t, dir, "lyon", "Lyon")
		writeTrip(t, dir, "strasbourg", "Strasbourg")

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			Tracker: newTestTracker([]string{"Rome"}, []string{"€ 80"}),
		}

		cmd := &main.BatchCmd{Dir: dir, Concurrency: 2}
		err := cmd.Run(deps)

		require.NoError(t, err)
		out := stdout.String()
		assert.Contains(t, out, "from Lyon")
		assert.Contains(t, out, "from Strasbourg")
		assert.Less(t, bytes.Index(stdout.Bytes(), []byte("Lyon")), bytes.Index(stdout.Bytes(), []byte("Strasbourg")))
		assert.Equal(t, 2, bytes.Count(stdout.Bytes(), []byte("- Rome for 80 euros")))
	})

	t.Run("reports failed searches and keeps going", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeTrip(t, dir, "lyon", "Lyon")
		writeTrip(t, dir, "strasbourg", "Strasbourg")

		tracker := newTestTracker([]string{"Rome"}, []string{"€ 80"})
		tracker.Fetcher = &mock.ResultsFetcher{
			FetchResultsFn: func(_ context.Context, trip *faretrack.TripConfig) (string, error) {
				if trip.FromCity == "Lyon" {
					return "", faretrack.Errorf(faretrack.ENOTFOUND, "no airport matches %q", trip.FromCity)
				}
				return "", nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			Tracker: tracker,
		}

		cmd := &main.BatchCmd{Dir: dir}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "1 of 2 searches failed")
		assert.Contains(t, stdout.String(), `failed: no airport matches "Lyon"`)
		assert.Contains(t, stdout.String(), "- Rome for 80 euros")
	})

	t.Run("skips invalid trip files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeTrip(t, dir, "lyon", "Lyon")
		require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("from_city: Paris\ndeparture_date: nope\n"), 0644))

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  &bytes.Buffer{},
			Stderr:  stderr,
			Tracker: newTestTracker([]string{"Rome"}, []string{"€ 80"}),
		}

		cmd := &main.BatchCmd{Dir: dir}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stderr.String(), "skipping")
		assert.Contains(t, stderr.String(), "broken.yaml")
	})

	t.Run("fails on empty directory", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  &bytes.Buffer{},
			Stderr:  stderr,
			Tracker: newTestTracker(nil, nil),
		}

		cmd := &main.BatchCmd{Dir: t.TempDir()}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, faretrack.ENOTFOUND, faretrack.ErrorCode(err))
		assert.Contains(t, stderr.String(), "faretrack init")
	})
}
