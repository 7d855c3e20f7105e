// Package errors provides sentinel errors and custom error types for gitkit.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the error taxonomy
var (
	// ErrInvalidRepositoryPath indicates the repository path is missing or not a directory
	ErrInvalidRepositoryPath = errors.New("invalid repository path")

	// ErrExternalCommand indicates the git executable failed
	ErrExternalCommand = errors.New("external command failed")

	// ErrTimeout indicates the git executable did not finish in time
	ErrTimeout = errors.New("external command timed out")

	// ErrParse indicates git output did not match the expected shape
	ErrParse = errors.New("unexpected command output")

	// ErrEntityNotFound indicates a single-entity lookup produced no output
	ErrEntityNotFound = errors.New("entity not found")

	// ErrInvariantViolation indicates git reported a state that contradicts an assumed invariant
	ErrInvariantViolation = errors.New("invariant violation")

	// ErrInvalidArgument indicates a command could not be built from the given arguments
	ErrInvalidArgument = errors.New("invalid argument")
)

// InvalidRepositoryPathError is returned when a Repository is opened on a path
// that does not exist or is not a directory
type InvalidRepositoryPathError struct {
	Path string
	Err  error
}

func (e *InvalidRepositoryPathError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid repository path %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("invalid repository path %s", e.Path)
}

// Is returns true if the target error is ErrInvalidRepositoryPath
func (e *InvalidRepositoryPathError) Is(target error) bool {
	return target == ErrInvalidRepositoryPath
}

func (e *InvalidRepositoryPathError) Unwrap() error {
	return e.Err
}

// NewInvalidRepositoryPathError creates a new InvalidRepositoryPathError
func NewInvalidRepositoryPathError(path string, err error) *InvalidRepositoryPathError {
	return &InvalidRepositoryPathError{Path: path, Err: err}
}

// CommandErrorKind classifies why an external command failed
type CommandErrorKind string

const (
	// KindExit means the process ran and exited with a non-zero status
	KindExit CommandErrorKind = "exit"
	// KindTimeout means the process was killed after its deadline passed
	KindTimeout CommandErrorKind = "timeout"
	// KindStart means the process could not be started at all
	KindStart CommandErrorKind = "start"
)

// ExternalCommandError represents an error from a git command execution
type ExternalCommandError struct {
	Binary   string
	Args     []string
	ExitCode int
	Stdout   string
	Stderr   string
	Kind     CommandErrorKind
	Err      error
}

func (e *ExternalCommandError) Error() string {
	msg := fmt.Sprintf("git command failed: %s", e.Binary)
	if len(e.Args) > 0 {
		msg += fmt.Sprintf(" %v", e.Args)
	}
	switch e.Kind {
	case KindTimeout:
		msg += " (timed out)"
	case KindStart:
		msg += " (could not start)"
	default:
		msg += fmt.Sprintf(" (exit code %d)", e.ExitCode)
	}
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += fmt.Sprintf("\nstderr: %s", stderr)
	}
	if e.Err != nil && e.Kind != KindExit {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

// Is returns true for ErrExternalCommand, and for ErrTimeout when the command timed out
func (e *ExternalCommandError) Is(target error) bool {
	if target == ErrExternalCommand {
		return true
	}
	return target == ErrTimeout && e.Kind == KindTimeout
}

func (e *ExternalCommandError) Unwrap() error {
	return e.Err
}

// NewExternalCommandError creates a new ExternalCommandError
func NewExternalCommandError(binary string, args []string, exitCode int, stdout, stderr string, kind CommandErrorKind, err error) *ExternalCommandError {
	return &ExternalCommandError{
		Binary:   binary,
		Args:     args,
		ExitCode: exitCode,
		Stdout:   stdout,
		Stderr:   stderr,
		Kind:     kind,
		Err:      err,
	}
}

// ParseError represents output that does not match the shape expected for its command family
type ParseError struct {
	Command string
	LineNo  int // 1-based, 0 when the error is not tied to a line
	Line    string
	Reason  string
	Err     error
}

func (e *ParseError) Error() string {
	if e.LineNo > 0 {
		return fmt.Sprintf("failed to parse %s output at line %d (%q): %s", e.Command, e.LineNo, e.Line, e.Reason)
	}
	return fmt.Sprintf("failed to parse %s output: %s", e.Command, e.Reason)
}

// Is returns true if the target error is ErrParse
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError for a specific line
func NewParseError(command string, lineNo int, line, reason string) *ParseError {
	return &ParseError{Command: command, LineNo: lineNo, Line: line, Reason: reason}
}

// EntityNotFoundError is returned by single-entity lookups that produce no output
type EntityNotFoundError struct {
	Entity string
	Ref    string
}

func (e *EntityNotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.Ref)
}

// Is returns true if the target error is ErrEntityNotFound
func (e *EntityNotFoundError) Is(target error) bool {
	return target == ErrEntityNotFound
}

// NewEntityNotFoundError creates a new EntityNotFoundError
func NewEntityNotFoundError(entity, ref string) *EntityNotFoundError {
	return &EntityNotFoundError{Entity: entity, Ref: ref}
}

// InvariantViolationError is returned when git output contradicts an invariant
// of the tool itself, such as exactly one checked-out branch
type InvariantViolationError struct {
	Invariant string
	Detail    string
}

func (e *InvariantViolationError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("invariant violated: %s: %s", e.Invariant, e.Detail)
	}
	return fmt.Sprintf("invariant violated: %s", e.Invariant)
}

// Is returns true if the target error is ErrInvariantViolation
func (e *InvariantViolationError) Is(target error) bool {
	return target == ErrInvariantViolation
}

// NewInvariantViolationError creates a new InvariantViolationError
func NewInvariantViolationError(invariant, detail string) *InvariantViolationError {
	return &InvariantViolationError{Invariant: invariant, Detail: detail}
}

// InvalidArgumentError is returned by command builders before any process is started
type InvalidArgumentError struct {
	Op     string
	Param  string
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("%s: invalid %s: %s", e.Op, e.Param, e.Reason)
}

// Is returns true if the target error is ErrInvalidArgument
func (e *InvalidArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// NewInvalidArgumentError creates a new InvalidArgumentError
func NewInvalidArgumentError(op, param, reason string) *InvalidArgumentError {
	return &InvalidArgumentError{Op: op, Param: param, Reason: reason}
}
