package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joestump/ideaboard/internal/board"
	"github.com/joestump/ideaboard/internal/client"
)

const defaultEndpoint = "http://localhost:4000/graphql"

// errReported means the failure was already written to stderr as a notice.
var errReported = errors.New("reported")

func newIdeasCmd() *cobra.Command {
	var endpoint string

	cmd := &cobra.Command{
		Use:   "ideas",
		Short: "Browse and post ideas on a running server",
	}
	cmd.PersistentFlags().StringVar(&endpoint, "endpoint", defaultEndpoint, "GraphQL endpoint URL")

	view := func() *board.View { return board.NewView(client.New(endpoint)) }

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List ideas, most upvoted first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v := view()
			if err := v.Load(cmd.Context()); err != nil {
				return report(cmd, v)
			}
			return board.RenderIdeas(cmd.OutOrStdout(), v.Sorted())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Show a single idea",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v := view()
			idea, err := v.Show(cmd.Context(), args[0])
			if err != nil {
				return report(cmd, v)
			}
			if idea == nil {
				return fmt.Errorf("idea %s not found", args[0])
			}
			return board.RenderIdea(cmd.OutOrStdout(), *idea)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <text>",
		Short: "Share a new idea",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v := view()
			idea, err := v.Submit(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return report(cmd, v)
			}
			board.RenderNotices(cmd.ErrOrStderr(), v.Notices())
			return board.RenderIdea(cmd.OutOrStdout(), *idea)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "upvote <id>",
		Short: "Upvote an idea",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v := view()
			idea, err := v.Upvote(cmd.Context(), args[0])
			if err != nil {
				return report(cmd, v)
			}
			return board.RenderIdea(cmd.OutOrStdout(), *idea)
		},
	})

	return cmd
}

// report writes the view's notices to stderr and returns errReported so
// main exits non-zero without printing the error again.
func report(cmd *cobra.Command, v *board.View) error {
	board.RenderNotices(cmd.ErrOrStderr(), v.Notices())
	return errReported
}
