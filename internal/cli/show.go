package cli

import (
	"github.com/spf13/cobra"

	"gitkit.dev/gitkit/internal/cli/helpers"
	"gitkit.dev/gitkit/internal/git"
	"gitkit.dev/gitkit/internal/runtime"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [ref]",
		Short: "Show the commit a ref points at (default: HEAD)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref := git.DefaultRef
			if len(args) > 0 {
				ref = args[0]
			}
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				commit, err := ctx.Repo.GetCommit(ctx, ref)
				if err != nil {
					return err
				}
				return ctx.Renderer.Render(commit)
			})
		},
	}
}
