package branch

import (
	"errors"

	"github.com/spf13/cobra"

	"gitkit.dev/gitkit/internal/cli/helpers"
	gitkiterrors "gitkit.dev/gitkit/internal/errors"
	"gitkit.dev/gitkit/internal/runtime"
	"gitkit.dev/gitkit/internal/tui"
)

// NewDeleteCmd creates the branch delete command
func NewDeleteCmd() *cobra.Command {
	var (
		force bool
		yes   bool
	)

	cmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a local branch",
		Long: `Delete a local branch.

Without --force git refuses to delete a branch that is not merged. With
--force the branch is deleted regardless, after confirmation when running
in a terminal.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: helpers.CompleteBranches,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				if !force {
					if err := ctx.Repo.DeleteBranch(ctx, name); err != nil {
						if errors.Is(err, gitkiterrors.ErrExternalCommand) {
							ctx.Splog.Tip("Use --force to delete %s even if it is not merged", name)
						}
						return err
					}
					ctx.Splog.Info("Deleted branch %s", name)
					return nil
				}

				if !yes && tui.Interactive() {
					ok, err := tui.PromptConfirm("Force delete branch "+name+"? Unmerged commits will be lost.", false)
					if err != nil {
						return err
					}
					if !ok {
						ctx.Splog.Info("Kept branch %s", name)
						return nil
					}
				}
				if err := ctx.Repo.ForceDeleteBranch(ctx, name); err != nil {
					return err
				}
				ctx.Splog.Info("Deleted branch %s", name)
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Delete the branch even if it is not merged")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")

	return cmd
}
