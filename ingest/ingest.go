// Package ingest indexes documentation files into a library.
// It reads files, converts HTML sources to markdown, splits large documents
// into sections and stores every resulting chunk as a document.
package ingest

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync/atomic"

	"github.com/fwojciec/libdoc"
	"github.com/fwojciec/libdoc/bloom"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of files processed in parallel when
// Ingestor.Concurrency is not set.
const DefaultConcurrency = 4

// Ingestor stores documentation files as library documents.
type Ingestor struct {
	Libraries libdoc.LibraryService
	Documents libdoc.DocumentService

	// Extractor and Converter handle .html and .htm files. HTML files fail
	// to ingest when either is nil.
	Extractor libdoc.Extractor
	Converter libdoc.Converter

	Concurrency int

	// Chunk splits large documents into sections.
	Chunk bool

	// BaseURL and StripPrefix derive document URLs from file paths.
	BaseURL     string
	StripPrefix string

	locks keyedMutex
}

// Result holds the outcome of an ingest operation.
type Result struct {
	RunID     string
	Files     int
	Skipped   int
	Failed    int
	Documents int

	// Bytes is the total size of the stored document content.
	Bytes int
}

// ProgressEvent reports progress during batch ingestion.
type ProgressEvent struct {
	Type      ProgressType
	RunID     string
	Completed int
	Total     int
	Path      string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressSkipped
	ProgressFailed
	ProgressFinished
)

// String returns the lowercase name of the event type.
func (t ProgressType) String() string {
	switch t {
	case ProgressStarted:
		return "started"
	case ProgressCompleted:
		return "completed"
	case ProgressSkipped:
		return "skipped"
	case ProgressFailed:
		return "failed"
	case ProgressFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// ProgressFunc is a callback for reporting ingest progress.
type ProgressFunc func(event ProgressEvent)

// Input is a single document supplied directly rather than read from disk.
type Input struct {
	Path    string
	Content string
	Title   string
	URL     string
}

// fileResult holds the outcome of processing a single file.
type fileResult struct {
	path      string
	documents int
	bytes     int
	skipped   bool
	err       error
}

// IngestFiles reads the files at paths and stores them in library.
// Duplicate paths are processed once. A file that cannot be read, converted
// or stored is reported through progress and counted as failed; the batch
// continues with the remaining files. If ctx is canceled no further files
// are started, documents already stored are kept and ctx.Err() is returned
// alongside the partial result.
func (i *Ingestor) IngestFiles(ctx context.Context, library string, paths []string, progress ProgressFunc) (*Result, error) {
	if err := libdoc.ValidateLibraryName(library); err != nil {
		return nil, err
	}

	paths = dedupePaths(paths)
	result := &Result{RunID: uuid.NewString()}
	total := len(paths)

	if total == 0 {
		return result, nil
	}

	libraryID, err := i.Libraries.GetOrCreateLibrary(ctx, library)
	if err != nil {
		return nil, fmt.Errorf("library %q: %w", library, err)
	}

	concurrency := i.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	if progress != nil {
		progress(ProgressEvent{
			Type:  ProgressStarted,
			RunID: result.RunID,
			Total: total,
		})
	}

	resultCh := make(chan fileResult, total)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for _, path := range paths {
			if gctx.Err() != nil {
				break
			}
			g.Go(func() error {
				if gctx.Err() != nil {
					return nil
				}
				resultCh <- i.processFile(gctx, library, libraryID, path)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	var completed atomic.Int64
	for fr := range resultCh {
		event := ProgressEvent{
			RunID:     result.RunID,
			Completed: int(completed.Add(1)),
			Total:     total,
			Path:      fr.path,
		}

		switch {
		case fr.err != nil:
			result.Failed++
			event.Type = ProgressFailed
			event.Error = fr.err
		case fr.skipped:
			result.Skipped++
			event.Type = ProgressSkipped
		default:
			result.Files++
			result.Documents += fr.documents
			result.Bytes += fr.bytes
			event.Type = ProgressCompleted
		}

		if progress != nil {
			progress(event)
		}
	}

	if progress != nil {
		progress(ProgressEvent{
			Type:      ProgressFinished,
			RunID:     result.RunID,
			Completed: int(completed.Load()),
			Total:     total,
		})
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}
	return result, nil
}

// processFile reads, converts, chunks and stores a single file.
func (i *Ingestor) processFile(ctx context.Context, library string, libraryID int64, path string) fileResult {
	result := fileResult{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		result.err = err
		return result
	}

	content := strings.ToValidUTF8(string(data), "�")
	if strings.TrimSpace(content) == "" {
		result.skipped = true
		return result
	}

	if isHTML(path) {
		content, err = i.htmlToMarkdown(content)
		if err != nil {
			result.err = fmt.Errorf("convert %s: %w", path, err)
			return result
		}
		if strings.TrimSpace(content) == "" {
			result.skipped = true
			return result
		}
	}

	url := DocumentURL(i.BaseURL, i.StripPrefix, path)

	var chunks []libdoc.Chunk
	if i.Chunk {
		chunks = libdoc.ChunkDocument(content, path, url)
	} else {
		chunks = []libdoc.Chunk{{
			Path:    path,
			Content: content,
			Title:   libdoc.ExtractTitle(content, path),
			URL:     url,
		}}
	}

	for _, c := range chunks {
		doc := &libdoc.Document{
			LibraryID: libraryID,
			Path:      c.Path,
			URL:       c.URL,
			Title:     c.Title,
			Content:   c.Content,
		}
		if err := i.upsert(ctx, library, doc); err != nil {
			result.err = fmt.Errorf("store %s: %w", c.Path, err)
			return result
		}
		result.documents++
		result.bytes += len(c.Content)
	}

	keep := make([]string, len(chunks))
	for j, c := range chunks {
		keep[j] = c.Path
	}
	if err := i.prune(ctx, library, libraryID, path, keep); err != nil {
		result.err = fmt.Errorf("prune %s: %w", path, err)
	}

	return result
}

// IngestDocument stores a single document in library without chunking.
// The title is extracted from the content when in.Title is empty.
func (i *Ingestor) IngestDocument(ctx context.Context, library string, in Input) (*libdoc.Document, error) {
	if err := libdoc.ValidateLibraryName(library); err != nil {
		return nil, err
	}
	if in.Path == "" {
		return nil, libdoc.Errorf(libdoc.EINVALID, "document path required")
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, libdoc.Errorf(libdoc.EINVALID, "document content required")
	}

	libraryID, err := i.Libraries.GetOrCreateLibrary(ctx, library)
	if err != nil {
		return nil, fmt.Errorf("library %q: %w", library, err)
	}

	title := in.Title
	if title == "" {
		title = libdoc.ExtractTitle(in.Content, in.Path)
	}

	doc := &libdoc.Document{
		LibraryID: libraryID,
		Library:   library,
		Path:      in.Path,
		URL:       in.URL,
		Title:     title,
		Content:   in.Content,
	}
	if err := i.upsert(ctx, library, doc); err != nil {
		return nil, err
	}
	if err := i.prune(ctx, library, libraryID, in.Path, []string{in.Path}); err != nil {
		return nil, err
	}
	return doc, nil
}

// upsert stores doc while holding the lock for its library and path.
func (i *Ingestor) upsert(ctx context.Context, library string, doc *libdoc.Document) error {
	unlock := i.locks.Lock(library + "\x00" + doc.Path)
	defer unlock()
	return i.Documents.UpsertDocument(ctx, doc)
}

// prune removes documents left over from an earlier ingest of path, such as
// sections that no longer exist.
func (i *Ingestor) prune(ctx context.Context, library string, libraryID int64, path string, keep []string) error {
	unlock := i.locks.Lock(library + "\x00" + path)
	defer unlock()
	_, err := i.Documents.PruneDocuments(ctx, libraryID, path, keep)
	return err
}

// htmlToMarkdown extracts the main content of an HTML page as markdown.
// The page title becomes a level-1 heading unless the content has one.
func (i *Ingestor) htmlToMarkdown(html string) (string, error) {
	if i.Extractor == nil || i.Converter == nil {
		return "", libdoc.Errorf(libdoc.EINVALID, "HTML ingestion requires an extractor and converter")
	}

	extracted, err := i.Extractor.Extract(html)
	if err != nil {
		return "", err
	}

	markdown, err := i.Converter.Convert(extracted.ContentHTML)
	if err != nil {
		return "", err
	}

	title := strings.TrimSpace(extracted.Title)
	if title != "" && !h1Re.MatchString(markdown) {
		markdown = "# " + title + "\n\n" + markdown
	}
	return markdown, nil
}

// dedupePaths returns paths without blanks and repeated entries, keeping
// first occurrences in order. The bloom filter answers most lookups; a
// positive answer is confirmed against the exact set.
func dedupePaths(paths []string) []string {
	if len(paths) == 0 {
		return nil
	}

	filter := bloom.NewFilter(uint(len(paths)), 0.01)
	seen := make(map[string]struct{}, len(paths))
	out := make([]string, 0, len(paths))

	for _, p := range paths {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if filter.TestAndAdd(p) {
			if _, dup := seen[p]; dup {
				continue
			}
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

// MultiProgress returns a callback that forwards every event to each
// non-nil fn in order.
func MultiProgress(fns ...ProgressFunc) ProgressFunc {
	return func(e ProgressEvent) {
		for _, fn := range fns {
			if fn != nil {
				fn(e)
			}
		}
	}
}
