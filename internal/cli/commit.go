package cli

import (
	"github.com/spf13/cobra"

	"gitkit.dev/gitkit/internal/cli/helpers"
	"gitkit.dev/gitkit/internal/git"
	"gitkit.dev/gitkit/internal/runtime"
)

func newCommitCmd() *cobra.Command {
	var (
		message string
		all     bool
		amend   bool
		ref     string
	)

	cmd := &cobra.Command{
		Use:   "commit",
		Short: "Record staged changes",
		Long: `Record staged changes.

With --ref the commit is made on that branch and the branch that was
checked out before is restored afterwards, even if the commit fails.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			params := git.CommitParams{StageAll: all, Amend: amend}
			if cmd.Flags().Changed("ref") {
				params.Ref = &ref
			}
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				if err := ctx.Repo.Commit(ctx, message, params); err != nil {
					return err
				}
				commit, err := ctx.Repo.GetCommit(ctx, commitTarget(params))
				if err != nil {
					return err
				}
				ctx.Splog.Info("Committed %s %s", commit.ShortHash(), commit.Subject())
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "Commit message")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Stage modified and deleted tracked files first")
	cmd.Flags().BoolVar(&amend, "amend", false, "Replace the tip commit")
	cmd.Flags().StringVar(&ref, "ref", "", "Commit on this branch, then return to the current one")
	_ = cmd.MarkFlagRequired("message")
	_ = cmd.RegisterFlagCompletionFunc("ref", helpers.CompleteBranches)

	return cmd
}

func commitTarget(params git.CommitParams) string {
	if params.Ref != nil {
		return *params.Ref
	}
	return git.DefaultRef
}
