package branch

import (
	"github.com/spf13/cobra"

	"gitkit.dev/gitkit/internal/cli/helpers"
	"gitkit.dev/gitkit/internal/runtime"
)

// NewCreateCmd creates the branch create command
func NewCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <name> [start-point]",
		Short: "Create a branch at a start point (default: HEAD) without checking it out",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			var startPoint *string
			if len(args) > 1 {
				startPoint = &args[1]
			}
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				if err := ctx.Repo.CreateBranch(ctx, name, startPoint); err != nil {
					return err
				}
				ctx.Splog.Info("Created branch %s", name)
				return nil
			})
		},
	}
}
