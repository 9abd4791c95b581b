package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/fwojciec/libdoc"
)

// Markers the search service places around matched terms.
const (
	highlightStart = ">>>"
	highlightEnd   = "<<<"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	if c.Library != "" {
		if err := requireLibrary(deps, c.Library, c.JSON); err != nil {
			return err
		}
	}

	results, err := deps.Search.Search(deps.Ctx, c.Query, libdoc.SearchOptions{
		Library: c.Library,
		Limit:   c.Limit,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", libdoc.ErrorMessage(err))
		return err
	}

	if c.JSON {
		return writeJSON(deps.Stdout, struct {
			Query   string                `json:"query"`
			Results []libdoc.SearchResult `json:"results"`
			Count   int                   `json:"count"`
		}{c.Query, results, len(results)})
	}

	if len(results) == 0 {
		fmt.Fprintf(deps.Stdout, "No results found for %q.\n", c.Query)
		return nil
	}

	scope := ""
	if c.Library != "" {
		scope = fmt.Sprintf(" in %s", c.Library)
	}
	fmt.Fprintf(deps.Stdout, "Found %d result(s) for %q%s:\n\n", len(results), c.Query, scope)

	bold := color.New(color.Bold).SprintFunc()
	for i, r := range results {
		title := r.Title
		if title == "" {
			title = r.Path
		}
		fmt.Fprintf(deps.Stdout, "%d. [%s] %s (ID %d)\n", i+1, r.Library, title, r.ID)
		if r.URL != "" {
			fmt.Fprintf(deps.Stdout, "   %s\n", color.CyanString(r.URL))
		}
		fmt.Fprintf(deps.Stdout, "   %s\n\n", highlight(r.Snippet, bold))
	}

	return nil
}

// requireLibrary returns ENOTFOUND, after listing the available libraries,
// if the named library does not exist.
func requireLibrary(deps *Dependencies, name string, asJSON bool) error {
	_, err := deps.Libraries.FindLibraryByName(deps.Ctx, name)
	if err == nil {
		return nil
	}
	if libdoc.ErrorCode(err) != libdoc.ENOTFOUND {
		fmt.Fprintf(deps.Stderr, "error: %s\n", libdoc.ErrorMessage(err))
		return err
	}

	libs, err := deps.Libraries.ListLibraries(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", libdoc.ErrorMessage(err))
		return err
	}
	names := make([]string, len(libs))
	for i, lib := range libs {
		names[i] = lib.Name
	}

	if asJSON {
		_ = writeJSON(deps.Stdout, struct {
			Error     string   `json:"error"`
			Available []string `json:"available"`
		}{fmt.Sprintf("library %q not found", name), names})
	} else if len(names) > 0 {
		fmt.Fprintf(deps.Stderr, "error: library %q not found. Available libraries: %s\n", name, strings.Join(names, ", "))
	} else {
		fmt.Fprintf(deps.Stderr, "error: library %q not found. No libraries indexed yet.\n", name)
	}
	return libdoc.Errorf(libdoc.ENOTFOUND, "library %q not found", name)
}

// highlight collapses whitespace in snippet and replaces highlight markers
// by applying emphasize to the marked terms.
func highlight(snippet string, emphasize func(a ...any) string) string {
	snippet = strings.Join(strings.Fields(snippet), " ")

	var b strings.Builder
	for {
		before, rest, ok := strings.Cut(snippet, highlightStart)
		if !ok {
			b.WriteString(snippet)
			break
		}
		b.WriteString(before)
		term, after, _ := strings.Cut(rest, highlightEnd)
		b.WriteString(emphasize(term))
		snippet = after
	}
	return b.String()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
