package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/libdoc"
)

type libraryJSON struct {
	Name      string `json:"name"`
	DocCount  int    `json:"doc_count"`
	IndexedAt string `json:"indexed_at"`
}

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	libs, err := deps.Libraries.ListLibraries(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", libdoc.ErrorMessage(err))
		return err
	}

	var report *libdoc.IndexReport
	if c.Check {
		if report, err = deps.Documents.CheckIndex(deps.Ctx); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", libdoc.ErrorMessage(err))
			return err
		}
	}

	if c.JSON {
		out := struct {
			Libraries []libraryJSON       `json:"libraries"`
			Count     int                 `json:"count"`
			Index     *libdoc.IndexReport `json:"index,omitempty"`
		}{Libraries: make([]libraryJSON, len(libs)), Count: len(libs), Index: report}
		for i, lib := range libs {
			out.Libraries[i] = libraryJSON{
				Name:      lib.Name,
				DocCount:  lib.DocCount,
				IndexedAt: lib.IndexedAt.Format(time.RFC3339),
			}
		}
		if err := writeJSON(deps.Stdout, out); err != nil {
			return err
		}
	} else {
		printLibraries(deps, libs)
		if report != nil {
			fmt.Fprintf(deps.Stdout, "\nIndex: %d documents, %d entries, %d orphaned, %d missing\n",
				report.Documents, report.IndexEntries, report.Orphans, report.Missing)
		}
	}

	if report != nil && !report.Consistent() {
		fmt.Fprintf(deps.Stderr, "error: full-text index is out of sync with documents\n")
		return libdoc.Errorf(libdoc.EINTERNAL, "index inconsistent: %d orphaned, %d missing", report.Orphans, report.Missing)
	}
	return nil
}

func printLibraries(deps *Dependencies, libs []*libdoc.Library) {
	if len(libs) == 0 {
		fmt.Fprintln(deps.Stdout, "No libraries indexed yet. Use 'libdoc index' to add one.")
		return
	}

	fmt.Fprintf(deps.Stdout, "Indexed libraries:\n\n")
	for _, lib := range libs {
		fmt.Fprintf(deps.Stdout, "  %s: %d docs (indexed: %s)\n",
			lib.Name, lib.DocCount, lib.IndexedAt.Format(time.DateTime))
	}
	fmt.Fprintf(deps.Stdout, "\nTotal: %d libraries\n", len(libs))
}
