// Package branch provides CLI commands for managing local branches.
package branch

import (
	"github.com/spf13/cobra"

	"gitkit.dev/gitkit/internal/cli/helpers"
	"gitkit.dev/gitkit/internal/runtime"
)

// NewBranchCmd creates the branch command. Without a subcommand it lists branches.
func NewBranchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "branch",
		Short: "List, create, delete and inspect local branches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return list(cmd)
		},
	}

	cmd.AddCommand(
		newListCmd(),
		NewCreateCmd(),
		NewDeleteCmd(),
		newMainCmd(),
		newShowCmd(),
	)
	return cmd
}

func list(cmd *cobra.Command) error {
	return helpers.Run(cmd, func(ctx *runtime.Context) error {
		branches, err := ctx.Repo.Branches(ctx)
		if err != nil {
			return err
		}
		return ctx.Renderer.Render(branches)
	})
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List local branches, the primary branch first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return list(cmd)
		},
	}
}

func newMainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "main",
		Short: "Show the checked-out branch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				branch, err := ctx.Repo.MainBranch(ctx)
				if err != nil {
					return err
				}
				return ctx.Renderer.Render(branch)
			})
		},
	}
}
