package main

import (
	"fmt"

	"github.com/fwojciec/libdoc"
	"github.com/fwojciec/libdoc/mcp"
)

// Run executes the serve command. Over stdio, stdout carries the protocol,
// so nothing else may be written to it.
func (c *ServeCmd) Run(deps *Dependencies) error {
	server, err := mcp.NewServer(&mcp.Services{
		Libraries: deps.Libraries,
		Documents: deps.Documents,
		Search:    deps.Search,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", libdoc.ErrorMessage(err))
		return err
	}

	if c.HTTP != "" {
		deps.Logger.Info("mcp serving", "transport", "http", "addr", c.HTTP)
		fmt.Fprintf(deps.Stderr, "Serving MCP on http://%s\n", c.HTTP)
		return server.RunHTTP(deps.Ctx, c.HTTP)
	}

	deps.Logger.Info("mcp serving", "transport", "stdio")
	return server.Run(deps.Ctx)
}
