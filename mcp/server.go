// Package mcp exposes libdoc search and reading as Model Context Protocol
// tools so AI assistants can query indexed documentation.
package mcp

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/fwojciec/libdoc"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Version is the MCP server version.
const Version = "0.1.0"

// ErrMissingService is returned when a required service is not provided.
var ErrMissingService = errors.New("mcp: library, document and search services are required")

// Services aggregates the services the MCP tools are backed by.
type Services struct {
	Libraries libdoc.LibraryService
	Documents libdoc.DocumentService
	Search    libdoc.SearchService
}

// Validate returns ErrMissingService if any service is nil.
func (s *Services) Validate() error {
	if s.Libraries == nil || s.Documents == nil || s.Search == nil {
		return ErrMissingService
	}
	return nil
}

// Server is the MCP server for libdoc.
type Server struct {
	services *Services
	server   *mcp.Server
}

// NewServer creates a new MCP server with the search, read and listing
// tools registered.
func NewServer(services *Services) (*Server, error) {
	if err := services.Validate(); err != nil {
		return nil, err
	}

	impl := &mcp.Implementation{
		Name:    "libdoc",
		Version: Version,
	}

	s := &Server{
		services: services,
		server:   mcp.NewServer(impl, nil),
	}
	s.registerTools()

	return s, nil
}

// Run serves MCP over stdio until ctx is canceled or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP serves MCP over streamable HTTP on addr until ctx is canceled.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	handler := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background()) //nolint:errcheck
	}()

	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
