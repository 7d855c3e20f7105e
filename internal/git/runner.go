package git

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	gitkiterrors "gitkit.dev/gitkit/internal/errors"
)

// DefaultCommandTimeout is the default timeout for git commands
const DefaultCommandTimeout = 5 * time.Minute

const tracerName = "gitkit.dev/gitkit/internal/git"

// Result is the captured outcome of a single git invocation
type Result struct {
	ExitCode int
	Stdout   []string
	Stderr   string
}

// Invoker runs the git executable in a working directory.
// Implementations block until the process exits and fail with an
// *errors.ExternalCommandError when it exits non-zero.
type Invoker interface {
	Execute(ctx context.Context, dir string, argv []string) (*Result, error)
}

// CommandRunner handles execution of git commands
type CommandRunner struct {
	locator Locator
	timeout time.Duration
	logger  *slog.Logger
	env     []string
}

// RunnerOption configures a CommandRunner
type RunnerOption func(*CommandRunner)

// WithTimeout sets the per-invocation timeout. Zero or negative disables the default.
func WithTimeout(d time.Duration) RunnerOption {
	return func(r *CommandRunner) {
		r.timeout = d
	}
}

// WithRunnerLogger sets the logger used for per-invocation debug output
func WithRunnerLogger(logger *slog.Logger) RunnerOption {
	return func(r *CommandRunner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithEnv appends environment variables to every invocation
func WithEnv(env ...string) RunnerOption {
	return func(r *CommandRunner) {
		r.env = append(r.env, env...)
	}
}

// NewCommandRunner creates a new CommandRunner that resolves git through locator
func NewCommandRunner(locator Locator, opts ...RunnerOption) *CommandRunner {
	r := &CommandRunner{
		locator: locator,
		timeout: DefaultCommandTimeout,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Execute runs git with argv in dir and returns its output split into lines
func (r *CommandRunner) Execute(ctx context.Context, dir string, argv []string) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	binary, err := r.locator.Locate()
	if err != nil {
		return nil, gitkiterrors.NewExternalCommandError(r.locator.Name(), argv, -1, "", "", gitkiterrors.KindStart, err)
	}

	// If no timeout/deadline is set in the context, add the default one
	if _, ok := ctx.Deadline(); !ok && r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	invocationID := uuid.NewString()
	ctx, span := otel.Tracer(tracerName).Start(ctx, spanName(argv),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("git.invocation_id", invocationID),
			attribute.StringSlice("git.argv", argv),
			attribute.String("git.dir", dir),
		))
	defer span.End()

	cmd := exec.CommandContext(ctx, binary, argv...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0", "LC_ALL=C")
	cmd.Env = append(cmd.Env, r.env...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	runErr := cmd.Run()
	elapsed := time.Since(start)

	exitCode := 0
	if cmd.ProcessState != nil {
		exitCode = cmd.ProcessState.ExitCode()
	}
	span.SetAttributes(attribute.Int("git.exit_code", exitCode))
	r.logger.Debug("git invocation",
		"id", invocationID,
		"dir", dir,
		"argv", argv,
		"exit_code", exitCode,
		"duration", elapsed)

	if runErr != nil {
		cmdErr := classifyRunError(ctx, binary, argv, exitCode, stdout.String(), stderr.String(), runErr)
		span.RecordError(cmdErr)
		span.SetStatus(codes.Error, string(cmdErr.Kind))
		return nil, cmdErr
	}

	return &Result{
		ExitCode: exitCode,
		Stdout:   SplitLines(stdout.String()),
		Stderr:   stderr.String(),
	}, nil
}

func classifyRunError(ctx context.Context, binary string, argv []string, exitCode int, stdout, stderr string, runErr error) *gitkiterrors.ExternalCommandError {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return gitkiterrors.NewExternalCommandError(binary, argv, exitCode, stdout, stderr, gitkiterrors.KindTimeout, ctx.Err())
	}
	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		return gitkiterrors.NewExternalCommandError(binary, argv, exitCode, stdout, stderr, gitkiterrors.KindExit, runErr)
	}
	return gitkiterrors.NewExternalCommandError(binary, argv, exitCode, stdout, stderr, gitkiterrors.KindStart, runErr)
}

// SplitLines splits raw output on the line terminator without trimming.
// A single trailing terminator does not produce an empty final line.
func SplitLines(output string) []string {
	if output == "" {
		return []string{}
	}
	output = strings.TrimSuffix(output, "\n")
	return strings.Split(output, "\n")
}

func spanName(argv []string) string {
	if len(argv) == 0 {
		return "git"
	}
	return "git " + argv[0]
}
