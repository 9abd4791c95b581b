package main

import (
	"fmt"

	"github.com/fwojciec/libdoc"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return libdoc.Errorf(libdoc.EINVALID, "use --force to confirm deletion")
	}

	deleted, err := deps.Libraries.DeleteLibrary(deps.Ctx, c.Library)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", libdoc.ErrorMessage(err))
		return err
	}

	if !deleted {
		fmt.Fprintf(deps.Stderr, "error: library %q not found. Use 'libdoc list' to see available libraries.\n", c.Library)
		return libdoc.Errorf(libdoc.ENOTFOUND, "library %q not found", c.Library)
	}

	fmt.Fprintf(deps.Stdout, "Deleted library %q\n", c.Library)
	return nil
}
