package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/libdoc"
	"github.com/fwojciec/libdoc/ingest"
	"github.com/fwojciec/libdoc/preset"
	"github.com/fwojciec/libdoc/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdin     io.Reader
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	DB        *sqlite.DB
	Libraries libdoc.LibraryService
	Documents libdoc.DocumentService
	Search    libdoc.SearchService
	Presets   *preset.Registry
	Ingestor  *ingest.Ingestor
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool   `short:"v" help:"Log operations to stderr"`
	Presets string `name:"presets" env:"LIBDOC_PRESETS" help:"YAML file with additional presets"`

	TitleWeight   float64 `default:"10" env:"LIBDOC_TITLE_WEIGHT" help:"Ranking weight of title matches"`
	ContentWeight float64 `default:"1" env:"LIBDOC_CONTENT_WEIGHT" help:"Ranking weight of content matches"`
	PathWeight    float64 `default:"5" env:"LIBDOC_PATH_WEIGHT" help:"Ranking weight of path matches"`

	Index  IndexCmd   `cmd:"" help:"Index documentation files into a library"`
	Search SearchCmd  `cmd:"" help:"Search indexed documentation"`
	Read   ReadCmd    `cmd:"" help:"Read a document by ID, path or title"`
	List   ListCmd    `cmd:"" help:"List indexed libraries"`
	Docs   DocsCmd    `cmd:"" help:"List documents in a library"`
	Delete DeleteCmd  `cmd:"" help:"Delete a library and its documents"`
	Preset PresetsCmd `cmd:"" name:"presets" help:"Show documentation presets"`
	Serve  ServeCmd   `cmd:"" help:"Serve search and read tools over MCP"`
}

// SearchConfig returns the ranking configuration selected by the global
// weight flags.
func (c *CLI) SearchConfig() sqlite.SearchConfig {
	config := sqlite.DefaultSearchConfig()
	config.TitleWeight = c.TitleWeight
	config.ContentWeight = c.ContentWeight
	config.PathWeight = c.PathWeight
	return config
}

// IndexCmd is the "index" subcommand.
type IndexCmd struct {
	Library string `arg:"" help:"Library name"`

	File    string `short:"f" help:"File path within the docs (single-document mode)"`
	Content string `short:"c" help:"Document content (read from stdin if not provided)"`
	Title   string `short:"t" help:"Document title (extracted from content if not provided)"`
	URL     string `short:"u" name:"url" help:"Source URL"`

	Batch       bool   `short:"b" help:"Read file paths from stdin, one per line"`
	BaseURL     string `name:"base-url" help:"Base URL used to derive document URLs in batch mode"`
	StripPrefix string `name:"strip-prefix" help:"Prefix removed from paths before deriving URLs"`
	NoChunk     bool   `name:"no-chunk" help:"Store large documents whole instead of per section"`
	Preset      string `short:"p" help:"Take base URL, prefix and extensions from a preset"`
	Concurrency int    `default:"4" help:"Files processed in parallel"`
	Extractor   string `default:"trafilatura" enum:"trafilatura,goquery,readability" help:"HTML content extractor (${enum})"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query   string `arg:"" help:"Search query; every word is matched as a prefix"`
	Library string `short:"l" help:"Only search this library"`
	Limit   int    `short:"n" default:"10" help:"Maximum number of results"`
	JSON    bool   `short:"j" name:"json" help:"Output as JSON"`
}

// ReadCmd is the "read" subcommand.
type ReadCmd struct {
	Library    string `arg:"" help:"Library name"`
	Identifier string `arg:"" help:"Document ID, path or exact title"`
	Lines      string `help:"Line range to return, e.g. 1-50"`
	JSON       bool   `short:"j" name:"json" help:"Output as JSON"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	JSON  bool `short:"j" name:"json" help:"Output as JSON"`
	Check bool `help:"Verify the full-text index matches the documents"`
}

// DocsCmd is the "docs" subcommand.
type DocsCmd struct {
	Library string `arg:"" help:"Library name"`
	JSON    bool   `short:"j" name:"json" help:"Output as JSON"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	Library string `arg:"" help:"Library name"`
	Force   bool   `help:"Confirm deletion"`
}

// PresetsCmd is the "presets" subcommand.
type PresetsCmd struct {
	Name string `arg:"" optional:"" help:"Preset to show"`
	JSON bool   `short:"j" name:"json" help:"Output as JSON"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	HTTP string `name:"http" help:"Serve streamable HTTP on this address instead of stdio"`
}
