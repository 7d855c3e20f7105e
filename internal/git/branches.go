package git

import (
	"fmt"
	"slices"
	"strings"

	gitkiterrors "gitkit.dev/gitkit/internal/errors"
)

// DefaultPrimaryBranch sorts first in branch listings unless configured otherwise
const DefaultPrimaryBranch = "master"

// currentBranchMarker prefixes the checked-out branch in `git branch` output
const currentBranchMarker = '*'

// Branch is a local branch as listed by git
type Branch struct {
	Name      string `json:"name" yaml:"name"`
	IsCurrent bool   `json:"current" yaml:"current"`
	Commit    string `json:"commit,omitempty" yaml:"commit,omitempty"`
}

// ParseBranchLine parses one line of branch listing output.
// ok is false for lines that do not describe a branch (blank lines and
// the detached HEAD pseudo entry).
func ParseBranchLine(line string) (branch Branch, ok bool) {
	rest := strings.TrimRight(line, " \t\r")
	if rest != "" && rest[0] == currentBranchMarker {
		branch.IsCurrent = true
		rest = rest[1:]
	}
	rest = strings.TrimLeft(rest, " ")
	if rest == "" || isDetachedEntry(rest) {
		return Branch{}, false
	}

	fields := strings.Fields(rest)
	branch.Name = fields[0]
	if len(fields) > 1 {
		branch.Commit = fields[1]
	}
	return branch, true
}

// isDetachedEntry matches "(HEAD detached at 1a2b3c4)" and "(no branch, ...)".
// Branch names cannot contain spaces, so a space inside the parentheses
// rules out a real branch.
func isDetachedEntry(rest string) bool {
	if !strings.HasPrefix(rest, "(") {
		return false
	}
	end := strings.IndexByte(rest, ')')
	return end > 0 && strings.Contains(rest[:end], " ")
}

// ParseBranches parses branch listing output in emission order.
// More than one current branch is reported as a ParseError wrapping an
// InvariantViolationError.
func ParseBranches(lines []string) ([]Branch, error) {
	branches := make([]Branch, 0, len(lines))
	currentLine := 0
	for i, line := range lines {
		branch, ok := ParseBranchLine(line)
		if !ok {
			continue
		}
		if branch.Commit != "" && !IsHash(branch.Commit) {
			return nil, gitkiterrors.NewParseError("branch", i+1, line, "commit is not an object hash")
		}
		if branch.IsCurrent {
			if currentLine != 0 {
				parseErr := gitkiterrors.NewParseError("branch", i+1, line, "second current branch marker")
				parseErr.Err = gitkiterrors.NewInvariantViolationError("exactly one current branch",
					fmt.Sprintf("lines %d and %d are both marked current", currentLine, i+1))
				return nil, parseErr
			}
			currentLine = i + 1
		}
		branches = append(branches, branch)
	}
	return branches, nil
}

// SortBranches orders the primary branch first and keeps every other branch
// in its input order. The input slice is not modified.
func SortBranches(branches []Branch, primary string) []Branch {
	sorted := slices.Clone(branches)
	slices.SortStableFunc(sorted, func(a, b Branch) int {
		switch {
		case a.Name == primary && b.Name != primary:
			return -1
		case b.Name == primary && a.Name != primary:
			return 1
		default:
			return 0
		}
	})
	return sorted
}

// MainBranch returns the single checked-out branch
func MainBranch(branches []Branch) (Branch, error) {
	var current []Branch
	for _, b := range branches {
		if b.IsCurrent {
			current = append(current, b)
		}
	}

	switch len(current) {
	case 1:
		return current[0], nil
	case 0:
		return Branch{}, gitkiterrors.NewInvariantViolationError("exactly one current branch", "no branch is checked out")
	default:
		names := make([]string, len(current))
		for i, b := range current {
			names[i] = b.Name
		}
		return Branch{}, gitkiterrors.NewInvariantViolationError("exactly one current branch",
			fmt.Sprintf("%d branches are checked out: %s", len(current), strings.Join(names, ", ")))
	}
}

// FindBranch looks a branch up by name
func FindBranch(branches []Branch, name string) (Branch, bool) {
	for _, b := range branches {
		if b.Name == name {
			return b, true
		}
	}
	return Branch{}, false
}
