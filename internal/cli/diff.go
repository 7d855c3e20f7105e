package cli

import (
	"github.com/spf13/cobra"

	"gitkit.dev/gitkit/internal/cli/helpers"
	"gitkit.dev/gitkit/internal/runtime"
)

func newDiffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diff <commit> [path]",
		Short: "Show the changes a commit introduced, optionally limited to a path",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			commit := args[0]
			var path *string
			if len(args) > 1 {
				path = &args[1]
			}
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				diff, err := ctx.Repo.CommitDiff(ctx, commit, path)
				if err != nil {
					return err
				}
				return helpers.Emit(cmd, ctx, "diff "+commit, diff)
			})
		},
	}
}
