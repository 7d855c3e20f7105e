package branch

import (
	"github.com/spf13/cobra"

	"gitkit.dev/gitkit/internal/cli/helpers"
	gitkiterrors "gitkit.dev/gitkit/internal/errors"
	"gitkit.dev/gitkit/internal/runtime"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "show <name>",
		Short:             "Show a single local branch",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: helpers.CompleteBranches,
		RunE: func(cmd *cobra.Command, args []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				branch, found, err := ctx.Repo.Branch(ctx, args[0])
				if err != nil {
					return err
				}
				if !found {
					return gitkiterrors.NewEntityNotFoundError("branch", args[0])
				}
				return ctx.Renderer.Render(branch)
			})
		},
	}
}
