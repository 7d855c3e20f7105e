package runtime

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gitkit.dev/gitkit/internal/config"
	"gitkit.dev/gitkit/internal/git"
	"gitkit.dev/gitkit/internal/output"
	"gitkit.dev/gitkit/internal/telemetry"
)

// Options selects the repository and overrides configuration for one run
type Options struct {
	RepoDir    string
	ConfigFile string
	Debug      bool
	// Format and Color override the configured output settings when set
	Format string
	Color  string
	Out    io.Writer
	Err    io.Writer
	// Version is reported on exported traces
	Version string
	// Invoker replaces the git process runner, e.g. in tests
	Invoker git.Invoker
}

// Context provides access to the repository and output for commands
type Context struct {
	context.Context
	Repo     *git.Repository
	Config   *config.Config
	Splog    *output.Splog
	Renderer *output.Renderer

	shutdown telemetry.ShutdownFunc
}

// New loads configuration and opens the repository described by opts
func New(ctx context.Context, opts Options) (*Context, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}
	if opts.RepoDir == "" {
		opts.RepoDir = "."
	}

	cfg, err := config.Load(opts.RepoDir, opts.ConfigFile)
	if err != nil {
		return nil, err
	}
	if opts.Format != "" {
		cfg.Output.Format = opts.Format
	}
	if opts.Color != "" {
		cfg.Output.Color = opts.Color
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	splog, err := output.NewSplogWithOptions(opts.Err, output.LogOptions{
		Debug:      opts.Debug || os.Getenv("DEBUG") != "",
		File:       cfg.Log.File,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
	})
	if err != nil {
		return nil, err
	}

	shutdown, err := telemetry.Setup(ctx, cfg.Tracing, opts.Version, opts.Err)
	if err != nil {
		_ = splog.Close()
		return nil, err
	}

	invoker := opts.Invoker
	if invoker == nil {
		invoker = git.NewCommandRunner(
			git.NewPathLocator(cfg.Git.Binary, cfg.Git.LocatorCacheTTL),
			git.WithTimeout(cfg.Git.Timeout),
			git.WithRunnerLogger(splog.Logger()),
		)
	}

	repo, err := git.Open(opts.RepoDir,
		git.WithInvoker(invoker),
		git.WithPrimaryBranch(cfg.Git.PrimaryBranch),
		git.WithLogger(splog.Logger()),
	)
	if err != nil {
		_ = shutdown(ctx)
		_ = splog.Close()
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}

	return &Context{
		Context:  ctx,
		Repo:     repo,
		Config:   cfg,
		Splog:    splog,
		Renderer: output.NewRenderer(opts.Out, cfg.Output.Format, cfg.Output.Color),
		shutdown: shutdown,
	}, nil
}

// Close flushes traces and closes the log file
func (c *Context) Close() error {
	return errors.Join(c.shutdown(context.WithoutCancel(c.Context)), c.Splog.Close())
}
