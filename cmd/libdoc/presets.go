package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/libdoc"
	"github.com/fwojciec/libdoc/preset"
)

// Run executes the presets command.
func (c *PresetsCmd) Run(deps *Dependencies) error {
	if c.Name != "" {
		return c.show(deps)
	}

	names := deps.Presets.Names()
	if c.JSON {
		presets := make([]*preset.Preset, 0, len(names))
		for _, name := range names {
			p, _ := deps.Presets.Lookup(name)
			presets = append(presets, p)
		}
		return writeJSON(deps.Stdout, struct {
			Presets []*preset.Preset `json:"presets"`
			Count   int              `json:"count"`
		}{presets, len(presets)})
	}

	fmt.Fprintf(deps.Stdout, "Available presets (%d):\n\n", len(names))
	for i := 0; i < len(names); i += 4 {
		var row strings.Builder
		for _, name := range names[i:min(i+4, len(names))] {
			fmt.Fprintf(&row, "%-18s  ", name)
		}
		fmt.Fprintf(deps.Stdout, "  %s\n", strings.TrimRight(row.String(), " "))
	}
	return nil
}

func (c *PresetsCmd) show(deps *Dependencies) error {
	p, err := deps.Presets.Get(c.Name)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s. Use 'libdoc presets' to see available presets.\n", libdoc.ErrorMessage(err))
		return err
	}

	if c.JSON {
		return writeJSON(deps.Stdout, p)
	}

	fmt.Fprintf(deps.Stdout, "Preset: %s\n", p.Name)
	fmt.Fprintf(deps.Stdout, "  repo:       %s\n", p.RepoURL())
	fmt.Fprintf(deps.Stdout, "  docs_path:  %s\n", p.DocsPath)
	fmt.Fprintf(deps.Stdout, "  base_url:   %s\n", p.BaseURL)
	fmt.Fprintf(deps.Stdout, "  branch:     %s\n", p.Branch)
	fmt.Fprintf(deps.Stdout, "  extensions: %s\n", strings.Join(p.Extensions, ", "))
	return nil
}
