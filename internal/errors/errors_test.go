package errors_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gitkiterrors "gitkit.dev/gitkit/internal/errors"
)

func TestExternalCommandError(t *testing.T) {
	t.Run("exit", func(t *testing.T) {
		err := gitkiterrors.NewExternalCommandError("git", []string{"checkout", "nope"}, 1, "", "error: pathspec 'nope'\n", gitkiterrors.KindExit, errors.New("exit status 1"))
		assert.ErrorIs(t, err, gitkiterrors.ErrExternalCommand)
		assert.NotErrorIs(t, err, gitkiterrors.ErrTimeout)
		assert.Contains(t, err.Error(), "exit code 1")
		assert.Contains(t, err.Error(), "stderr: error: pathspec 'nope'")
	})

	t.Run("timeout", func(t *testing.T) {
		err := gitkiterrors.NewExternalCommandError("git", []string{"fetch"}, -1, "", "", gitkiterrors.KindTimeout, context.DeadlineExceeded)
		assert.ErrorIs(t, err, gitkiterrors.ErrExternalCommand)
		assert.ErrorIs(t, err, gitkiterrors.ErrTimeout)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Contains(t, err.Error(), "timed out")
	})

	t.Run("wrapped", func(t *testing.T) {
		inner := gitkiterrors.NewExternalCommandError("git", nil, 128, "", "", gitkiterrors.KindExit, nil)
		err := fmt.Errorf("failed to list branches: %w", inner)

		var cmdErr *gitkiterrors.ExternalCommandError
		require.ErrorAs(t, err, &cmdErr)
		assert.Equal(t, 128, cmdErr.ExitCode)
	})
}

func TestParseError(t *testing.T) {
	err := gitkiterrors.NewParseError("ls-tree", 3, "bad line", "missing tab")
	assert.ErrorIs(t, err, gitkiterrors.ErrParse)
	assert.Equal(t, `failed to parse ls-tree output at line 3 ("bad line"): missing tab`, err.Error())

	err.Err = gitkiterrors.NewInvariantViolationError("exactly one current branch", "")
	assert.ErrorIs(t, err, gitkiterrors.ErrInvariantViolation)

	noLine := &gitkiterrors.ParseError{Command: "show", Reason: "truncated"}
	assert.Equal(t, "failed to parse show output: truncated", noLine.Error())
}

func TestTaxonomyIsDisjoint(t *testing.T) {
	errs := map[error]error{
		gitkiterrors.ErrInvalidRepositoryPath: gitkiterrors.NewInvalidRepositoryPathError("/x", nil),
		gitkiterrors.ErrEntityNotFound:        gitkiterrors.NewEntityNotFoundError("commit", "HEAD"),
		gitkiterrors.ErrInvariantViolation:    gitkiterrors.NewInvariantViolationError("one current branch", "none"),
		gitkiterrors.ErrInvalidArgument:       gitkiterrors.NewInvalidArgumentError("checkout", "ref", "empty"),
	}
	for sentinel, err := range errs {
		for other := range errs {
			if other == sentinel {
				assert.ErrorIs(t, err, other)
			} else {
				assert.NotErrorIs(t, err, other)
			}
		}
		assert.NotErrorIs(t, err, gitkiterrors.ErrParse)
		assert.NotErrorIs(t, err, gitkiterrors.ErrExternalCommand)
	}

	assert.Equal(t, "commit HEAD not found", gitkiterrors.NewEntityNotFoundError("commit", "HEAD").Error())
}
