// Package cli implements the gitkit command line.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"gitkit.dev/gitkit/internal/cli/branch"
	"gitkit.dev/gitkit/internal/cli/helpers"
)

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gitkit",
		Short: "gitkit is a structured front end for common git operations",
		Long: `gitkit is a structured front end for common git operations.

Every command runs the git executable and prints branches, tags, commits,
trees and diffs as text, JSON or YAML.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringP(helpers.FlagRepo, "C", ".", "Run as if gitkit was started in this directory")
	flags.String(helpers.FlagConfig, "", "Config file (default is .gitkit.yaml in the repository)")
	flags.Bool(helpers.FlagDebug, false, "Print every git invocation")
	flags.StringP(helpers.FlagOutput, "o", "", "Output format: text, json or yaml")
	flags.String(helpers.FlagColor, "", "Color output: auto, always or never")
	flags.Bool(helpers.FlagNoPager, false, "Never page long output")

	rootCmd.AddCommand(
		newInitCmd(),
		newAddCmd(),
		newCommitCmd(),
		newStatusCmd(),
		branch.NewBranchCmd(),
		newTagCmd(),
		newCheckoutCmd(),
		newShowCmd(),
		newLogCmd(),
		newTreeCmd(),
		newDiffCmd(),
		newRootPathCmd(),
	)

	return rootCmd
}
