package main

import (
	"fmt"

	"github.com/fwojciec/libdoc"
)

// Run executes the docs command.
func (c *DocsCmd) Run(deps *Dependencies) error {
	if _, err := deps.Libraries.FindLibraryByName(deps.Ctx, c.Library); err != nil {
		if libdoc.ErrorCode(err) == libdoc.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: library %q not found. Use 'libdoc list' to see available libraries.\n", c.Library)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", libdoc.ErrorMessage(err))
		}
		return err
	}

	docs, err := deps.Documents.ListDocuments(deps.Ctx, c.Library)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", libdoc.ErrorMessage(err))
		return err
	}

	if c.JSON {
		type docJSON struct {
			ID    int64  `json:"id"`
			Path  string `json:"path"`
			Title string `json:"title"`
			URL   string `json:"url,omitempty"`
		}
		out := struct {
			Library   string    `json:"library"`
			Documents []docJSON `json:"documents"`
			Count     int       `json:"count"`
		}{Library: c.Library, Documents: make([]docJSON, len(docs)), Count: len(docs)}
		for i, doc := range docs {
			out.Documents[i] = docJSON{ID: doc.ID, Path: doc.Path, Title: doc.Title, URL: doc.URL}
		}
		return writeJSON(deps.Stdout, out)
	}

	if len(docs) == 0 {
		fmt.Fprintf(deps.Stdout, "Library %s has no documents.\n", c.Library)
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Documents in %s (%d docs):\n\n", c.Library, len(docs))
	for i, doc := range docs {
		title := doc.Title
		if title == "" {
			title = doc.Path
		}
		fmt.Fprintf(deps.Stdout, "%3d. %s  [ID %d, %s]\n", i+1, title, doc.ID, doc.Path)
		if doc.URL != "" {
			fmt.Fprintf(deps.Stdout, "     %s\n", doc.URL)
		}
	}

	return nil
}
