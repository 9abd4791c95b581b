package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/fwojciec/libdoc"
	"github.com/fwojciec/libdoc/ingest"
	libslog "github.com/fwojciec/libdoc/slog"
	"github.com/schollz/progressbar/v3"
)

// Run executes the index command.
func (c *IndexCmd) Run(deps *Dependencies) error {
	if c.Batch {
		return c.runBatch(deps)
	}
	return c.runSingle(deps)
}

func (c *IndexCmd) runSingle(deps *Dependencies) error {
	if c.File == "" {
		fmt.Fprintf(deps.Stderr, "error: --file is required unless --batch is set\n")
		return libdoc.Errorf(libdoc.EINVALID, "--file is required in single-document mode")
	}

	content := c.Content
	if content == "" {
		b, err := io.ReadAll(deps.Stdin)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: reading stdin: %v\n", err)
			return err
		}
		content = string(b)
	}
	if strings.TrimSpace(content) == "" {
		fmt.Fprintf(deps.Stderr, "error: no content provided\n")
		return libdoc.Errorf(libdoc.EINVALID, "no content provided")
	}

	doc, err := deps.Ingestor.IngestDocument(deps.Ctx, c.Library, ingest.Input{
		Path:    c.File,
		Content: content,
		Title:   c.Title,
		URL:     c.URL,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", libdoc.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Indexed %q in %s (ID %d)\n", doc.Title, c.Library, doc.ID)
	return nil
}

func (c *IndexCmd) runBatch(deps *Dependencies) error {
	baseURL, stripPrefix := c.BaseURL, c.StripPrefix
	var match func(string) bool

	if c.Preset != "" {
		p, err := deps.Presets.Get(c.Preset)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s. Use 'libdoc presets' to see available presets.\n", libdoc.ErrorMessage(err))
			return err
		}
		if baseURL == "" {
			baseURL = p.BaseURL
		}
		if stripPrefix == "" && p.DocsPath != "." {
			stripPrefix = strings.TrimSuffix(p.DocsPath, "/") + "/"
		}
		match = p.Matches
	}

	paths, err := readPaths(deps.Stdin, match)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: reading stdin: %v\n", err)
		return err
	}
	if len(paths) == 0 {
		fmt.Fprintf(deps.Stderr, "error: no files to index\n")
		return libdoc.Errorf(libdoc.EINVALID, "no files to index")
	}

	deps.Ingestor.BaseURL = baseURL
	deps.Ingestor.StripPrefix = stripPrefix
	deps.Ingestor.Chunk = !c.NoChunk
	if c.Concurrency > 0 {
		deps.Ingestor.Concurrency = c.Concurrency
	}

	bar := newProgressBar(deps.Stderr, len(paths))
	progress := ingest.MultiProgress(
		barProgress(bar, deps.Stderr),
		libslog.IngestProgress(deps.Logger, time.Second),
	)

	result, err := deps.Ingestor.IngestFiles(deps.Ctx, c.Library, paths, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error indexing: %s\n", libdoc.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Indexed %d documents from %d files into %s (%s, %d skipped, %d failed)\n",
		result.Documents, result.Files, c.Library, ingest.FormatBytes(result.Bytes), result.Skipped, result.Failed)
	return nil
}

// readPaths reads one path per line from r, ignoring blank lines and
// paths rejected by match.
func readPaths(r io.Reader, match func(string) bool) ([]string, error) {
	var paths []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		path := strings.TrimSpace(scanner.Text())
		if path == "" {
			continue
		}
		if match != nil && !match(path) {
			continue
		}
		paths = append(paths, path)
	}
	return paths, scanner.Err()
}

func newProgressBar(w io.Writer, total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(color.BlueString("Indexing")),
		progressbar.OptionSetItsString("files"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionClearOnFinish(),
	)
}

// barProgress advances bar once per processed file and reports failures
// on w.
func barProgress(bar *progressbar.ProgressBar, w io.Writer) ingest.ProgressFunc {
	return func(e ingest.ProgressEvent) {
		switch e.Type {
		case ingest.ProgressStarted:
			bar.ChangeMax(e.Total)
		case ingest.ProgressCompleted, ingest.ProgressSkipped:
			bar.Describe(color.BlueString(ingest.TruncatePath(e.Path, 40)))
			_ = bar.Add(1)
		case ingest.ProgressFailed:
			_ = bar.Add(1)
			fmt.Fprintf(w, "\n  skip %s: %v\n", e.Path, e.Error)
		case ingest.ProgressFinished:
			_ = bar.Finish()
		}
	}
}
