package cli

import (
	"github.com/spf13/cobra"

	"gitkit.dev/gitkit/internal/cli/helpers"
	"gitkit.dev/gitkit/internal/git"
	"gitkit.dev/gitkit/internal/runtime"
)

func newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add [path]",
		Short: "Stage changes under a path (default: the whole working tree)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := git.DefaultStagePath
			if len(args) > 0 {
				path = args[0]
			}
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				return ctx.Repo.Stage(ctx, path)
			})
		},
	}
}
