package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/faretrack"
	"github.com/fwojciec/faretrack/goquery"
	"github.com/fwojciec/faretrack/rod"
	fareslog "github.com/fwojciec/faretrack/slog"
	"github.com/fwojciec/faretrack/sqlite"
	"github.com/fwojciec/faretrack/track"
	"github.com/joho/godotenv"
)

func main() {
	ctx := context.Background()

	// A missing .env file is fine; real environment variables still apply.
	_ = godotenv.Load()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	SearchService faretrack.SearchService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("faretrack"),
		kong.Description("Find destinations you can fly to under a price ceiling"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
		Vars,
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'faretrack --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	var logger *slog.Logger
	if cli.Verbose {
		logger = slog.New(slog.NewTextHandler(stderr, nil))
	}

	if cmd != "init" {
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set FARETRACK_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()

		var searches faretrack.SearchService = sqlite.NewSearchService(m.DB)
		if logger != nil {
			searches = fareslog.NewLoggingSearchService(searches, logger)
		}
		m.SearchService = searches
		deps.DB = m.DB
		deps.Searches = searches
	}

	if cmd == "search" || cmd == "batch" {
		browser := cli.Search.BrowserFlags
		if cmd == "batch" {
			browser = cli.Batch.BrowserFlags
		}

		manager, err := rod.NewBrowserManager(rod.WithHeadless(!browser.ShowBrowser))
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return fmt.Errorf("failed to start browser: %w", err)
		}

		var fetcher faretrack.ResultsFetcher = rod.NewSearcher(manager,
			rod.WithTimeout(browser.Timeout),
			rod.WithMaxLoadMore(browser.MaxLoadMore),
		)
		var harvester faretrack.Harvester = goquery.NewHarvester()
		if logger != nil {
			fetcher = fareslog.NewLoggingResultsFetcher(fetcher, logger)
			harvester = fareslog.NewLoggingHarvester(harvester, logger)
		}
		defer fetcher.Close()

		deps.Tracker = &track.Tracker{
			Fetcher:     fetcher,
			Harvester:   harvester,
			RetryDelays: track.RetryDelays(browser.Retries),
			Logger: func(format string, args ...any) {
				fmt.Fprintf(stderr, format+"\n", args...)
			},
		}
		if cmd == "batch" {
			deps.Tracker.Concurrency = cli.Batch.Concurrency
			deps.Tracker.Limiter = track.NewLimiter(cli.Batch.Interval)
		}
	}

	return kongCtx.Run(deps)
}

func defaultDBPath() string {
	if path := os.Getenv("FARETRACK_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "faretrack.db"
	}
	dir := filepath.Join(home, ".faretrack")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "faretrack.db")
}
