package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"gitkit.dev/gitkit/internal/cli"
	gitkiterrors "gitkit.dev/gitkit/internal/errors"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := cli.NewRootCmd(version, commit, date)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		stop()
		os.Exit(exitCode(err))
	}
}

// exitCode passes a failed git's exit status through
func exitCode(err error) int {
	var cmdErr *gitkiterrors.ExternalCommandError
	if errors.As(err, &cmdErr) && cmdErr.Kind == gitkiterrors.KindExit && cmdErr.ExitCode > 0 {
		return cmdErr.ExitCode
	}
	return 1
}
