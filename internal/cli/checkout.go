package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"gitkit.dev/gitkit/internal/cli/helpers"
	gitkiterrors "gitkit.dev/gitkit/internal/errors"
	"gitkit.dev/gitkit/internal/runtime"
	"gitkit.dev/gitkit/internal/tui"
)

// newCheckoutCmd creates the checkout command
func newCheckoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "checkout [ref]",
		Aliases: []string{"co"},
		Short:   "Switch to a branch, tag or commit. If no ref is provided, opens an interactive selector.",
		Args:    cobra.MaximumNArgs(1),

		ValidArgsFunction: helpers.CompleteBranches,
		RunE: func(cmd *cobra.Command, args []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				ref := ""
				if len(args) > 0 {
					ref = args[0]
				} else {
					if !tui.Interactive() {
						return fmt.Errorf("a ref is required when not running in a terminal")
					}
					branches, err := ctx.Repo.Branches(ctx)
					if err != nil {
						return err
					}
					ref, err = tui.PromptBranch("Checkout a branch", branches)
					if err != nil {
						return err
					}
				}

				if err := ctx.Repo.Checkout(ctx, ref); err != nil {
					return err
				}
				ctx.Splog.Info("Checked out %s", ref)

				if _, err := ctx.Repo.MainBranch(ctx); errors.Is(err, gitkiterrors.ErrInvariantViolation) {
					ctx.Splog.Warn("HEAD is detached at %s", ref)
					ctx.Splog.Tip("Run `gitkit branch create <name>` to keep commits made here")
				} else if err != nil {
					return err
				}
				return nil
			})
		},
	}
}
