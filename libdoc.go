// Package libdoc provides a local full-text index for library documentation.
// It splits markdown documents into addressable sections, stores them in a
// SQLite database with a synchronized FTS5 index, and answers ranked queries
// and exact lookups against it.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, trafilatura/, mcp/).
package libdoc
