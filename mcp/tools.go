package mcp

import (
	"context"
	"time"

	"github.com/fwojciec/libdoc"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query   string `json:"query" jsonschema:"keywords to search for; any term may match and prefixes match longer words"`
	Library string `json:"library,omitempty" jsonschema:"restrict results to this library"`
	Limit   int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 10)"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Results []libdoc.SearchResult `json:"results"`
	Count   int                   `json:"count"`
}

// ReadInput is the input schema for the read tool.
type ReadInput struct {
	Library    string `json:"library" jsonschema:"library name"`
	Identifier string `json:"identifier" jsonschema:"document ID, exact path or title"`
	Lines      string `json:"lines,omitempty" jsonschema:"line range to return, e.g. 1-50"`
}

// ReadOutput is the output schema for the read tool.
type ReadOutput struct {
	Found    bool            `json:"found"`
	Document *DocumentOutput `json:"document,omitempty"`
	Lines    string          `json:"lines,omitempty"`
}

// DocumentOutput describes a document. Content is empty in listings.
type DocumentOutput struct {
	ID      int64  `json:"id"`
	Library string `json:"library"`
	Path    string `json:"path"`
	Title   string `json:"title"`
	URL     string `json:"url,omitempty"`
	Content string `json:"content,omitempty"`
}

// LibraryOutput describes a library.
type LibraryOutput struct {
	Name      string `json:"name"`
	DocCount  int    `json:"doc_count"`
	IndexedAt string `json:"indexed_at"`
}

// ListLibrariesInput is the input schema for the list_libraries tool.
type ListLibrariesInput struct{}

// ListLibrariesOutput is the output schema for the list_libraries tool.
type ListLibrariesOutput struct {
	Libraries []LibraryOutput `json:"libraries"`
}

// ListDocumentsInput is the input schema for the list_documents tool.
type ListDocumentsInput struct {
	Library string `json:"library" jsonschema:"library name"`
}

// ListDocumentsOutput is the output schema for the list_documents tool.
type ListDocumentsOutput struct {
	Documents []DocumentOutput `json:"documents"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Search indexed library documentation. Results are ranked with title matches first and include a snippet with >>>highlighted<<< terms.",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "read",
		Description: "Read a document by ID, path or title, optionally limited to a line range.",
	}, s.handleRead)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_libraries",
		Description: "List indexed libraries with their document counts.",
	}, s.handleListLibraries)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_documents",
		Description: "List the documents of a library.",
	}, s.handleListDocuments)
}

func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	results, err := s.services.Search.Search(ctx, input.Query, libdoc.SearchOptions{
		Library: input.Library,
		Limit:   input.Limit,
	})
	if err != nil {
		return nil, SearchOutput{}, err
	}

	return nil, SearchOutput{Results: results, Count: len(results)}, nil
}

// handleRead resolves a document. A missing document is reported with
// Found set to false rather than as a tool error.
func (s *Server) handleRead(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ReadInput,
) (*mcp.CallToolResult, ReadOutput, error) {
	var lines *libdoc.LineRange
	if input.Lines != "" {
		r, err := libdoc.ParseLineRange(input.Lines)
		if err != nil {
			return nil, ReadOutput{}, err
		}
		lines = &r
	}

	doc, err := libdoc.ResolveDocument(ctx, s.services.Documents, input.Library, input.Identifier)
	if libdoc.ErrorCode(err) == libdoc.ENOTFOUND {
		return nil, ReadOutput{Found: false}, nil
	} else if err != nil {
		return nil, ReadOutput{}, err
	}

	out := documentOutput(doc)
	output := ReadOutput{Found: true, Document: &out}
	if lines != nil {
		out.Content = lines.Apply(doc.Content)
		output.Lines = lines.String()
	}
	return nil, output, nil
}

func (s *Server) handleListLibraries(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListLibrariesInput,
) (*mcp.CallToolResult, ListLibrariesOutput, error) {
	libs, err := s.services.Libraries.ListLibraries(ctx)
	if err != nil {
		return nil, ListLibrariesOutput{}, err
	}
	output := ListLibrariesOutput{Libraries: make([]LibraryOutput, len(libs))}
	for i, lib := range libs {
		output.Libraries[i] = LibraryOutput{
			Name:      lib.Name,
			DocCount:  lib.DocCount,
			IndexedAt: lib.IndexedAt.Format(time.RFC3339),
		}
	}
	return nil, output, nil
}

func (s *Server) handleListDocuments(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListDocumentsInput,
) (*mcp.CallToolResult, ListDocumentsOutput, error) {
	if err := libdoc.ValidateLibraryName(input.Library); err != nil {
		return nil, ListDocumentsOutput{}, err
	}

	docs, err := s.services.Documents.ListDocuments(ctx, input.Library)
	if err != nil {
		return nil, ListDocumentsOutput{}, err
	}
	output := ListDocumentsOutput{Documents: make([]DocumentOutput, len(docs))}
	for i, doc := range docs {
		output.Documents[i] = documentOutput(doc)
	}
	return nil, output, nil
}

func documentOutput(doc *libdoc.Document) DocumentOutput {
	return DocumentOutput{
		ID:      doc.ID,
		Library: doc.Library,
		Path:    doc.Path,
		Title:   doc.Title,
		URL:     doc.URL,
		Content: doc.Content,
	}
}
