package main

import (
	"fmt"

	"github.com/fwojciec/libdoc"
)

// Run executes the read command.
func (c *ReadCmd) Run(deps *Dependencies) error {
	var lines *libdoc.LineRange
	if c.Lines != "" {
		lr, err := libdoc.ParseLineRange(c.Lines)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: invalid --lines argument: %s\n", libdoc.ErrorMessage(err))
			return err
		}
		lines = &lr
	}

	doc, err := libdoc.ResolveDocument(deps.Ctx, deps.Documents, c.Library, c.Identifier)
	if libdoc.ErrorCode(err) == libdoc.ENOTFOUND {
		fmt.Fprintf(deps.Stderr, "error: document %q not found in library %q.\n", c.Identifier, c.Library)
		fmt.Fprintf(deps.Stderr, "Tip: use 'libdoc search' to find documents, then read them by ID, path or exact title.\n")
		return err
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", libdoc.ErrorMessage(err))
		return err
	}

	if !c.JSON {
		fmt.Fprintln(deps.Stdout, libdoc.FormatDocument(doc, lines))
		return nil
	}

	out := struct {
		ID      int64  `json:"id"`
		Library string `json:"library"`
		Title   string `json:"title"`
		Path    string `json:"path"`
		URL     string `json:"url"`
		Content string `json:"content"`
		Lines   string `json:"lines,omitempty"`
	}{
		ID:      doc.ID,
		Library: doc.Library,
		Title:   doc.Title,
		Path:    doc.Path,
		URL:     doc.URL,
		Content: doc.Content,
	}
	if lines != nil {
		out.Content = lines.Apply(doc.Content)
		out.Lines = lines.String()
	}
	return writeJSON(deps.Stdout, out)
}
