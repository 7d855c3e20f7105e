package cli

import (
	"github.com/spf13/cobra"

	"gitkit.dev/gitkit/internal/cli/helpers"
	gitkiterrors "gitkit.dev/gitkit/internal/errors"
	"gitkit.dev/gitkit/internal/runtime"
)

// newTagCmd creates the tag command and its subcommands
func newTagCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tag",
		Short: "List, create, delete and inspect tags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return listTags(cmd)
		},
	}

	cmd.AddCommand(newTagListCmd(), newTagCreateCmd(), newTagDeleteCmd(), newTagShowCmd())
	return cmd
}

func listTags(cmd *cobra.Command) error {
	return helpers.Run(cmd, func(ctx *runtime.Context) error {
		tags, err := ctx.Repo.Tags(ctx)
		if err != nil {
			return err
		}
		return ctx.Renderer.Render(tags)
	})
}

func newTagListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tags",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return listTags(cmd)
		},
	}
}

func newTagCreateCmd() *cobra.Command {
	var message string

	cmd := &cobra.Command{
		Use:   "create <name> [start-point]",
		Short: "Create a tag. A message makes it annotated.",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			var startPoint, msg *string
			if len(args) > 1 {
				startPoint = &args[1]
			}
			if cmd.Flags().Changed("message") {
				msg = &message
			}
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				if err := ctx.Repo.CreateTag(ctx, name, startPoint, msg); err != nil {
					return err
				}
				ctx.Splog.Info("Created tag %s", name)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "Annotation message")
	return cmd
}

func newTagDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "delete <name>",
		Short:             "Delete a tag",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: helpers.CompleteTags,
		RunE: func(cmd *cobra.Command, args []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				if err := ctx.Repo.DeleteTag(ctx, args[0]); err != nil {
					return err
				}
				ctx.Splog.Info("Deleted tag %s", args[0])
				return nil
			})
		},
	}
}

func newTagShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "show <name>",
		Short:             "Show a single tag",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: helpers.CompleteTags,
		RunE: func(cmd *cobra.Command, args []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				tag, found, err := ctx.Repo.Tag(ctx, args[0])
				if err != nil {
					return err
				}
				if !found {
					return gitkiterrors.NewEntityNotFoundError("tag", args[0])
				}
				return ctx.Renderer.Render(tag)
			})
		},
	}
}
