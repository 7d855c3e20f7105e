package git

import (
	"encoding/json"
	"strings"

	gitkiterrors "gitkit.dev/gitkit/internal/errors"
)

// StatusEntry is one line of `git status --porcelain`
type StatusEntry struct {
	Index    byte // staged state, ' ' when unchanged
	Worktree byte // unstaged state, ' ' when unchanged
	Path     string
	OrigPath string // source of a rename or copy
}

// Code returns the two letter status code, e.g. "M " or "??"
func (e StatusEntry) Code() string {
	return string([]byte{e.Index, e.Worktree})
}

type statusEntryDoc struct {
	Code     string `json:"code" yaml:"code"`
	Path     string `json:"path" yaml:"path"`
	OrigPath string `json:"orig_path,omitempty" yaml:"orig_path,omitempty"`
}

// MarshalJSON encodes the entry with its two letter code
func (e StatusEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(statusEntryDoc{Code: e.Code(), Path: e.Path, OrigPath: e.OrigPath})
}

// MarshalYAML encodes the entry with its two letter code
func (e StatusEntry) MarshalYAML() (any, error) {
	return statusEntryDoc{Code: e.Code(), Path: e.Path, OrigPath: e.OrigPath}, nil
}

// IsUntracked reports whether the path is not known to git
func (e StatusEntry) IsUntracked() bool {
	return e.Index == '?' && e.Worktree == '?'
}

// TrimStatusLines trims trailing whitespace from status output and drops blank lines
func TrimStatusLines(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimRight(line, " \t\r")
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// ParseStatus parses porcelain v1 status lines
func ParseStatus(lines []string) ([]StatusEntry, error) {
	entries := make([]StatusEntry, 0, len(lines))
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		// Format is "XY path" where XY is status
		if len(line) < 4 || line[2] != ' ' {
			return nil, gitkiterrors.NewParseError("status", i+1, line, "expected two status letters and a path")
		}

		entry := StatusEntry{Index: line[0], Worktree: line[1]}
		path := line[3:]
		// Handle renamed files (format: "old -> new")
		if orig, renamed, found := strings.Cut(path, " -> "); found && (entry.Index == 'R' || entry.Index == 'C') {
			entry.OrigPath = unquotePath(orig)
			path = renamed
		}
		entry.Path = unquotePath(path)
		entries = append(entries, entry)
	}
	return entries, nil
}
