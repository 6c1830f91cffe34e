package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "booksapi",
		Short:         "Library REST API for books, authors, adherents and loans",
		SilenceUsage:  true,
		SilenceErrors: true,
		// Running the bare binary serves, like the container entrypoint expects.
		RunE: func(cmd *cobra.Command, args []string) error { return runServe(cmd.Context()) },
	}
	root.AddCommand(newServeCmd(), newSeedCmd())
	return root
}
