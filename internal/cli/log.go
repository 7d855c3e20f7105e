package cli

import (
	"github.com/spf13/cobra"

	"gitkit.dev/gitkit/internal/cli/helpers"
	"gitkit.dev/gitkit/internal/git"
	"gitkit.dev/gitkit/internal/runtime"
)

// newLogCmd creates the log command
func newLogCmd() *cobra.Command {
	var (
		branch string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "log [ref] [-- path]",
		Short: "Show commit history of a ref, newest first",
		Long: `Show commit history of a ref, newest first.

With --branch only commits not reachable from that branch are listed.`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref := git.DefaultRef
			opts := git.LogOptions{Limit: limit}
			if cmd.Flags().Changed("branch") {
				opts.Branch = &branch
			}

			dash := cmd.ArgsLenAtDash()
			positional := args
			if dash >= 0 {
				positional = args[:dash]
				if rest := args[dash:]; len(rest) > 0 {
					opts.Path = &rest[0]
				}
			}
			if len(positional) > 0 {
				ref = positional[0]
			}

			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				log, err := ctx.Repo.Log(ctx, ref, opts)
				if err != nil {
					return err
				}
				return helpers.Emit(cmd, ctx, "log "+ref, log)
			})
		},
	}

	cmd.Flags().StringVar(&branch, "branch", "", "Exclude commits reachable from this branch")
	cmd.Flags().IntVarP(&limit, "max-count", "n", 0, "Limit the number of commits")
	_ = cmd.RegisterFlagCompletionFunc("branch", helpers.CompleteBranches)

	return cmd
}
