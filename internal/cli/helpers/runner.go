// Package helpers provides shared helper functions for CLI commands.
package helpers

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"

	"gitkit.dev/gitkit/internal/git"
	"gitkit.dev/gitkit/internal/output"
	"gitkit.dev/gitkit/internal/runtime"
	"gitkit.dev/gitkit/internal/tui"
)

// Persistent flag names shared by every command
const (
	FlagRepo    = "repo"
	FlagConfig  = "config"
	FlagDebug   = "debug"
	FlagOutput  = "output"
	FlagColor   = "color"
	FlagNoPager = "no-pager"
)

type invokerKey struct{}

// WithInvoker returns a context under which commands run git through inv
func WithInvoker(ctx context.Context, inv git.Invoker) context.Context {
	return context.WithValue(ctx, invokerKey{}, inv)
}

func invokerFrom(ctx context.Context) git.Invoker {
	if ctx == nil {
		return nil
	}
	inv, _ := ctx.Value(invokerKey{}).(git.Invoker)
	return inv
}

// Options reads the persistent flags of cmd into runtime options
func Options(cmd *cobra.Command) runtime.Options {
	flags := cmd.Flags()
	repo, _ := flags.GetString(FlagRepo)
	configFile, _ := flags.GetString(FlagConfig)
	debug, _ := flags.GetBool(FlagDebug)
	format, _ := flags.GetString(FlagOutput)
	color, _ := flags.GetString(FlagColor)

	return runtime.Options{
		RepoDir:    repo,
		ConfigFile: configFile,
		Debug:      debug,
		Format:     format,
		Color:      color,
		Out:        cmd.OutOrStdout(),
		Err:        cmd.ErrOrStderr(),
		Version:    cmd.Root().Version,
		Invoker:    invokerFrom(cmd.Context()),
	}
}

// Run is a helper that provides a runtime context to a command's execution function
func Run(cmd *cobra.Command, fn func(ctx *runtime.Context) error) (err error) {
	ctx, err := runtime.New(cmd.Context(), Options(cmd))
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, ctx.Close())
	}()
	return fn(ctx)
}

// Emit renders v, paging long text output on a terminal unless --no-pager is set
func Emit(cmd *cobra.Command, ctx *runtime.Context, title string, v any) error {
	noPager, _ := cmd.Flags().GetBool(FlagNoPager)
	if ctx.Renderer.Format() != output.FormatText || noPager || ctx.Renderer.Writer() != os.Stdout {
		return ctx.Renderer.Render(v)
	}

	text := ctx.Renderer.Text(v)
	if !tui.Interactive() || !tui.NeedsPager(text) {
		return ctx.Renderer.Render(v)
	}

	ctx.Splog.SetQuiet(true)
	defer ctx.Splog.SetQuiet(false)
	return tui.Page(title, text)
}
