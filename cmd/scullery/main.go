package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/fwojciec/scullery"
	"github.com/fwojciec/scullery/goquery"
	schttp "github.com/fwojciec/scullery/http"
	"github.com/fwojciec/scullery/scrape"
	scslog "github.com/fwojciec/scullery/slog"
	"github.com/fwojciec/scullery/sqlite"
)

func main() {
	ctx := context.Background()

	// Optional .env file for SCULLERY_DB and friends.
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
	IngredientService scullery.IngredientService
	RecipeService     scullery.RecipeService
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
		kong.Name("scullery"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'scullery --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set SCULLERY_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	// Wire core services into dependencies
	m.IngredientService = sqlite.NewIngredientService(m.DB)
	m.RecipeService = sqlite.NewRecipeService(m.DB)
	deps.DB = m.DB
	deps.Ingredients = m.IngredientService
	deps.Recipes = m.RecipeService
	deps.Confirmables = sqlite.NewConfirmableRecipeService(m.DB)
	deps.Commits = sqlite.NewCommitService(m.DB)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if cli.Verbose {
		logger = slog.New(slog.NewTextHandler(stderr, nil))
	}

	// Wire the scraping pipeline only for commands that fetch pages
	if cmd == "scrape" || cmd == "import" {
		fetcher := scslog.NewLoggingFetcher(schttp.NewFetcher(), logger)
		defer fetcher.Close()

		loader := &scrape.Loader{
			Fetcher:      fetcher,
			Extractor:    goquery.NewExtractor(),
			Matcher:      scrape.NewMatcher(deps.Ingredients),
			Confirmables: deps.Confirmables,
		}
		deps.Loader = scslog.NewLoggingLoader(loader, logger)
		deps.Sitemaps = scslog.NewLoggingSitemapService(schttp.NewSitemapService(nil), logger)

		rate := cli.Import.Rate
		if rate <= 0 {
			rate = 1
		}
		deps.Importer = &scrape.Importer{
			Sitemaps:    deps.Sitemaps,
			Loader:      deps.Loader,
			Limiter:     scrape.NewDomainLimiter(rate),
			Concurrency: cli.Import.Concurrency,
		}
	}

	return kongCtx.Run(deps)
}

func defaultDBPath() string {
	if path := os.Getenv("SCULLERY_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "scullery.db"
	}
	dir := filepath.Join(home, ".scullery")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "scullery.db")
}
