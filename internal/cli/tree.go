package cli

import (
	"github.com/spf13/cobra"

	"gitkit.dev/gitkit/internal/cli/helpers"
	"gitkit.dev/gitkit/internal/git"
	"gitkit.dev/gitkit/internal/runtime"
)

func newTreeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tree [ref] [path]",
		Short: "List the tree of a ref (default: HEAD) at a path (default: the root)",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, path := git.DefaultRef, ""
			if len(args) > 0 {
				ref = args[0]
			}
			if len(args) > 1 {
				path = args[1]
			}
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				tree, err := ctx.Repo.Tree(ctx, ref, path)
				if err != nil {
					return err
				}
				return helpers.Emit(cmd, ctx, "tree "+ref, tree)
			})
		},
	}
}
