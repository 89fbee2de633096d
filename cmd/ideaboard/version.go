package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joestump/ideaboard/internal/build"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			info := build.Current()
			fmt.Fprintf(cmd.OutOrStdout(), "ideaboard %s (commit %s, branch %s)\n", info.Version, info.Commit, info.Branch)
		},
	}
}
