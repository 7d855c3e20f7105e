package testhelpers

import (
	"context"
	"fmt"
	"slices"
	"sync"

	gitkiterrors "gitkit.dev/gitkit/internal/errors"
	"gitkit.dev/gitkit/internal/git"
)

// Invocation is one call observed by a RecordingInvoker
type Invocation struct {
	Dir  string
	Argv []string
}

// Subcommand returns the git subcommand, e.g. "checkout"
func (i Invocation) Subcommand() string {
	if len(i.Argv) == 0 {
		return ""
	}
	return i.Argv[0]
}

// Response is a scripted process outcome
type Response struct {
	Stdout   []string
	Stderr   string
	ExitCode int
	// Err is returned as is when set, ignoring the other fields
	Err error
}

// RecordingInvoker implements git.Invoker without running any process.
// It records every argv it receives and answers from scripted responses
// queued per subcommand. Unscripted calls succeed with no output.
type RecordingInvoker struct {
	mu        sync.Mutex
	calls     []Invocation
	responses map[string][]Response
}

// NewRecordingInvoker creates an invoker with no scripted responses
func NewRecordingInvoker() *RecordingInvoker {
	return &RecordingInvoker{responses: make(map[string][]Response)}
}

// On queues a response for the next call of subcommand. Responses for the
// same subcommand are used in order; the last one repeats.
func (r *RecordingInvoker) On(subcommand string, resp Response) *RecordingInvoker {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.responses[subcommand] = append(r.responses[subcommand], resp)
	return r
}

// OnOutput queues a successful response with the given stdout lines
func (r *RecordingInvoker) OnOutput(subcommand string, stdout ...string) *RecordingInvoker {
	if stdout == nil {
		stdout = []string{}
	}
	return r.On(subcommand, Response{Stdout: stdout})
}

// OnFailure queues a non-zero exit for subcommand
func (r *RecordingInvoker) OnFailure(subcommand string, exitCode int, stderr string) *RecordingInvoker {
	return r.On(subcommand, Response{ExitCode: exitCode, Stderr: stderr})
}

// Execute records the call and returns the scripted response
func (r *RecordingInvoker) Execute(_ context.Context, dir string, argv []string) (*git.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	call := Invocation{Dir: dir, Argv: slices.Clone(argv)}
	r.calls = append(r.calls, call)

	resp := Response{Stdout: []string{}}
	if queued := r.responses[call.Subcommand()]; len(queued) > 0 {
		resp = queued[0]
		if len(queued) > 1 {
			r.responses[call.Subcommand()] = queued[1:]
		}
	}

	if resp.Err != nil {
		return nil, resp.Err
	}
	if resp.ExitCode != 0 {
		return nil, gitkiterrors.NewExternalCommandError("git", call.Argv, resp.ExitCode, "", resp.Stderr,
			gitkiterrors.KindExit, fmt.Errorf("exit status %d", resp.ExitCode))
	}
	stdout := resp.Stdout
	if stdout == nil {
		stdout = []string{}
	}
	return &git.Result{Stdout: slices.Clone(stdout), Stderr: resp.Stderr}, nil
}

// Calls returns every recorded invocation in order
func (r *RecordingInvoker) Calls() []Invocation {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.calls)
}

// Subcommands returns the subcommand of every recorded invocation in order
func (r *RecordingInvoker) Subcommands() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.calls))
	for i, c := range r.calls {
		out[i] = c.Subcommand()
	}
	return out
}

// CallsTo returns the recorded invocations of one subcommand
func (r *RecordingInvoker) CallsTo(subcommand string) []Invocation {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Invocation
	for _, c := range r.calls {
		if c.Subcommand() == subcommand {
			out = append(out, c)
		}
	}
	return out
}

// Reset forgets recorded calls and scripted responses
func (r *RecordingInvoker) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
	r.responses = make(map[string][]Response)
}
