package git

import (
	"strings"
	"time"

	"github.com/go-git/go-git/v5/plumbing"

	gitkiterrors "gitkit.dev/gitkit/internal/errors"
)

// sha256HexSize is the length of an object name in a SHA-256 repository
const sha256HexSize = 64

// showCommitHeaderLines is the number of fixed lines before the message in showCommitFormat
const showCommitHeaderLines = 4

// Commit is a single commit as reported by `git show`
type Commit struct {
	Hash    string    `json:"hash" yaml:"hash"`
	Author  string    `json:"author" yaml:"author"`
	Date    time.Time `json:"date" yaml:"date"`
	Message string    `json:"message" yaml:"message"`
	Parents []string  `json:"parents,omitempty" yaml:"parents,omitempty"`
}

// Subject returns the first line of the commit message
func (c Commit) Subject() string {
	subject, _, _ := strings.Cut(c.Message, "\n")
	return subject
}

// ShortHash returns the abbreviated hash used in human output
func (c Commit) ShortHash() string {
	if len(c.Hash) > 7 {
		return c.Hash[:7]
	}
	return c.Hash
}

// IsHash reports whether s is a full SHA-1 or SHA-256 object name
func IsHash(s string) bool {
	if plumbing.IsHash(s) {
		return true
	}
	if len(s) != sha256HexSize {
		return false
	}
	for _, c := range s {
		if !strings.ContainsRune("0123456789abcdefABCDEF", c) {
			return false
		}
	}
	return true
}

// ParseCommit parses the output of ShowCommitArgs. ref is only used for errors.
func ParseCommit(ref string, lines []string) (Commit, error) {
	if len(lines) == 0 {
		return Commit{}, gitkiterrors.NewEntityNotFoundError("commit", ref)
	}
	if len(lines) < showCommitHeaderLines {
		return Commit{}, &gitkiterrors.ParseError{Command: "show", Reason: "truncated commit header"}
	}

	hash := lines[0]
	if !IsHash(hash) {
		return Commit{}, gitkiterrors.NewParseError("show", 1, lines[0], "not an object hash")
	}

	parents, err := parseParents("show", 2, lines[1])
	if err != nil {
		return Commit{}, err
	}

	author := lines[2]
	if strings.TrimSpace(author) == "" {
		return Commit{}, gitkiterrors.NewParseError("show", 3, lines[2], "missing author")
	}

	date, err := time.Parse(time.RFC3339, lines[3])
	if err != nil {
		return Commit{}, gitkiterrors.NewParseError("show", 4, lines[3], "date is not RFC 3339")
	}

	message := strings.Join(lines[showCommitHeaderLines:], "\n")
	message = strings.TrimRight(message, "\n")

	return Commit{
		Hash:    hash,
		Author:  author,
		Date:    date,
		Message: message,
		Parents: parents,
	}, nil
}

// parseParents splits a space separated %P field
func parseParents(command string, lineNo int, field string) ([]string, error) {
	parents := strings.Fields(field)
	for _, p := range parents {
		if !IsHash(p) {
			return nil, gitkiterrors.NewParseError(command, lineNo, field, "parent is not an object hash")
		}
	}
	if len(parents) == 0 {
		return nil, nil
	}
	return parents, nil
}
