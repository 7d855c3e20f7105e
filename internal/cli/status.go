package cli

import (
	"github.com/spf13/cobra"

	"gitkit.dev/gitkit/internal/cli/helpers"
	"gitkit.dev/gitkit/internal/runtime"
)

func newStatusCmd() *cobra.Command {
	var porcelain bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show changed and untracked paths",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				if porcelain {
					lines, err := ctx.Repo.Status(ctx)
					if err != nil {
						return err
					}
					return ctx.Renderer.Render(lines)
				}
				entries, err := ctx.Repo.StatusEntries(ctx)
				if err != nil {
					return err
				}
				return ctx.Renderer.Render(entries)
			})
		},
	}

	cmd.Flags().BoolVar(&porcelain, "porcelain", false, "Print the raw porcelain lines")

	return cmd
}
