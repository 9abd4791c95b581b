package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/libdoc"
	"github.com/fwojciec/libdoc/goquery"
	"github.com/fwojciec/libdoc/htmltomarkdown"
	"github.com/fwojciec/libdoc/ingest"
	"github.com/fwojciec/libdoc/preset"
	"github.com/fwojciec/libdoc/readability"
	libslog "github.com/fwojciec/libdoc/slog"
	"github.com/fwojciec/libdoc/sqlite"
	"github.com/fwojciec/libdoc/trafilatura"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
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
	LibraryService  libdoc.LibraryService
	DocumentService libdoc.DocumentService
	SearchService   libdoc.SearchService
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
func (m *Main) Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("libdoc"),
		kong.Description("Index documentation locally and search it with full-text ranking."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'libdoc --help' to see available commands")
	}

	switch args[0] {
	case "help", "--help", "-h":
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := kongCtx.Selected().Name

	deps.Logger = newLogger(cli.Verbose, stderr)

	deps.Presets, err = loadPresets(cli.Presets)
	if err != nil {
		return err
	}

	// The presets command only reads the embedded registry.
	if cmd == "presets" {
		return kongCtx.Run(deps)
	}

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set LIBDOC_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	// Wire core services into dependencies
	m.LibraryService = libslog.NewLoggingLibraryService(sqlite.NewLibraryService(m.DB), deps.Logger)
	m.DocumentService = libslog.NewLoggingDocumentService(sqlite.NewDocumentService(m.DB), deps.Logger)
	m.SearchService = libslog.NewLoggingSearchService(
		sqlite.NewSearchServiceWithConfig(m.DB, cli.SearchConfig()), deps.Logger)
	deps.DB = m.DB
	deps.Libraries = m.LibraryService
	deps.Documents = m.DocumentService
	deps.Search = m.SearchService

	if cmd == "index" {
		extractor, err := newExtractor(cli.Index.Extractor)
		if err != nil {
			return err
		}
		deps.Ingestor = &ingest.Ingestor{
			Libraries:   m.LibraryService,
			Documents:   m.DocumentService,
			Extractor:   extractor,
			Converter:   htmltomarkdown.NewConverter(),
			Concurrency: ingest.DefaultConcurrency,
			Chunk:       true,
		}
	}

	return kongCtx.Run(deps)
}

func defaultDBPath() string {
	if path := os.Getenv("LIBDOC_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "libdoc.db"
	}
	dir := filepath.Join(home, ".libdoc")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "libdoc.db")
}

// newLogger returns a text logger on w when verbose is set and a logger
// that discards everything otherwise.
func newLogger(verbose bool, w io.Writer) *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// loadPresets returns the built-in presets, overridden by the presets in
// the YAML file at path if one is given.
func loadPresets(path string) (*preset.Registry, error) {
	registry, err := preset.Default()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return registry, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open presets file: %w", err)
	}
	defer f.Close()

	overrides, err := preset.Load(f)
	if err != nil {
		return nil, fmt.Errorf("presets file %q: %w", path, err)
	}
	registry.Merge(overrides)
	return registry, nil
}

// newExtractor returns the HTML extractor registered under name.
func newExtractor(name string) (libdoc.Extractor, error) {
	switch name {
	case "", "trafilatura":
		return trafilatura.NewExtractor(), nil
	case "goquery":
		return goquery.NewExtractor(), nil
	case "readability":
		return readability.NewExtractor(), nil
	default:
		return nil, libdoc.Errorf(libdoc.EINVALID, "unknown extractor %q", name)
	}
}
