package git

import (
	"strconv"
	"strings"

	gitkiterrors "gitkit.dev/gitkit/internal/errors"
)

// ChangeKind describes what happened to a file in a diff
type ChangeKind string

// Change kinds reported by ParseDiff
const (
	ChangeAdded    ChangeKind = "added"
	ChangeDeleted  ChangeKind = "deleted"
	ChangeModified ChangeKind = "modified"
	ChangeRenamed  ChangeKind = "renamed"
	ChangeCopied   ChangeKind = "copied"
)

const devNull = "/dev/null"

// DiffChunk is the change to a single file
type DiffChunk struct {
	Path    string     `json:"path" yaml:"path"`
	OldPath string     `json:"old_path,omitempty" yaml:"old_path,omitempty"`
	Kind    ChangeKind `json:"kind" yaml:"kind"`
	Binary  bool       `json:"binary,omitempty" yaml:"binary,omitempty"`
	Hunks   []Hunk     `json:"hunks,omitempty" yaml:"hunks,omitempty"`
	Text    string     `json:"-" yaml:"-"` // the file's section of the patch, headers included
}

// Diff is the patch introduced by one commit
type Diff struct {
	Commit string      `json:"commit" yaml:"commit"`
	Path   *string     `json:"path,omitempty" yaml:"path,omitempty"`
	Chunks []DiffChunk `json:"chunks" yaml:"chunks"`
}

// Len returns the number of changed files
func (d Diff) Len() int {
	return len(d.Chunks)
}

// diffParser accumulates chunks line by line
type diffParser struct {
	chunks    []DiffChunk
	chunk     *DiffChunk
	hunk      *Hunk
	hunkLines []string
	text      []string
}

// ParseDiff parses unified diff output produced by DiffArgs.
// Empty output is an empty diff.
func ParseDiff(commit string, path *string, lines []string) (Diff, error) {
	p := &diffParser{}
	for i, line := range lines {
		if err := p.feed(i+1, line); err != nil {
			return Diff{}, err
		}
	}
	p.flushChunk()

	chunks := p.chunks
	if chunks == nil {
		chunks = []DiffChunk{}
	}
	return Diff{Commit: commit, Path: path, Chunks: chunks}, nil
}

func (p *diffParser) feed(lineNo int, line string) error {
	if rest, ok := strings.CutPrefix(line, "diff --git "); ok {
		p.flushChunk()
		oldPath, newPath := parseGitHeaderPaths(rest)
		p.chunk = &DiffChunk{Path: newPath, Kind: ChangeModified}
		if oldPath != newPath {
			p.chunk.OldPath = oldPath
		}
		p.text = []string{line}
		return nil
	}

	if p.chunk == nil {
		if line == "" {
			return nil
		}
		return gitkiterrors.NewParseError("diff", lineNo, line, "content before the first file header")
	}
	p.text = append(p.text, line)

	if hunk, ok := parseHunkHeader(line); ok {
		p.flushHunk()
		p.hunk = &hunk
		p.hunkLines = []string{line}
		return nil
	}

	if p.hunk != nil {
		if line == "" || strings.ContainsRune(" +-\\", rune(line[0])) {
			p.hunkLines = append(p.hunkLines, line)
			return nil
		}
		return gitkiterrors.NewParseError("diff", lineNo, line, "unexpected line inside hunk")
	}

	p.feedHeader(line)
	return nil
}

// feedHeader handles the extended header lines between "diff --git" and the first hunk
func (p *diffParser) feedHeader(line string) {
	c := p.chunk
	switch {
	case strings.HasPrefix(line, "new file mode "):
		c.Kind = ChangeAdded
	case strings.HasPrefix(line, "deleted file mode "):
		c.Kind = ChangeDeleted
	case strings.HasPrefix(line, "rename from "):
		c.Kind = ChangeRenamed
		c.OldPath = unquotePath(strings.TrimPrefix(line, "rename from "))
	case strings.HasPrefix(line, "rename to "):
		c.Kind = ChangeRenamed
		c.Path = unquotePath(strings.TrimPrefix(line, "rename to "))
	case strings.HasPrefix(line, "copy from "):
		c.Kind = ChangeCopied
		c.OldPath = unquotePath(strings.TrimPrefix(line, "copy from "))
	case strings.HasPrefix(line, "copy to "):
		c.Kind = ChangeCopied
		c.Path = unquotePath(strings.TrimPrefix(line, "copy to "))
	case strings.HasPrefix(line, "Binary files ") || line == "GIT binary patch":
		c.Binary = true
	case strings.HasPrefix(line, "--- "):
		if old := headerPath(line, "--- "); old != devNull {
			if old = strings.TrimPrefix(old, "a/"); old != c.Path {
				c.OldPath = old
			}
		}
	case strings.HasPrefix(line, "+++ "):
		if newPath := headerPath(line, "+++ "); newPath != devNull {
			c.Path = strings.TrimPrefix(newPath, "b/")
		}
	}
}

func (p *diffParser) flushHunk() {
	if p.hunk == nil {
		return
	}
	p.hunk.Content = strings.Join(p.hunkLines, "\n")
	p.chunk.Hunks = append(p.chunk.Hunks, *p.hunk)
	p.hunk = nil
	p.hunkLines = nil
}

func (p *diffParser) flushChunk() {
	if p.chunk == nil {
		return
	}
	p.flushHunk()
	if p.chunk.Kind == ChangeDeleted && p.chunk.OldPath != "" {
		p.chunk.Path, p.chunk.OldPath = p.chunk.OldPath, ""
	}
	p.chunk.Text = strings.Join(p.text, "\n")
	p.chunks = append(p.chunks, *p.chunk)
	p.chunk = nil
	p.text = nil
}

// parseGitHeaderPaths extracts both paths from the remainder of a
// "diff --git a/<old> b/<new>" line
func parseGitHeaderPaths(rest string) (oldPath, newPath string) {
	if strings.HasPrefix(rest, `"`) || strings.HasSuffix(rest, `"`) {
		return parseQuotedHeaderPaths(rest)
	}

	// Without a rename both sides are equal, so the split point is fixed
	// even when the path itself contains " b/".
	if (len(rest)-5)%2 == 0 && len(rest) > 5 {
		n := (len(rest) - 5) / 2
		a, b := rest[:2+n], rest[2+n+1:]
		if strings.HasPrefix(a, "a/") && strings.HasPrefix(b, "b/") && a[2:] == b[2:] {
			return a[2:], b[2:]
		}
	}

	if i := strings.LastIndex(rest, " b/"); i >= 0 {
		return strings.TrimPrefix(rest[:i], "a/"), rest[i+3:]
	}
	return rest, rest
}

func parseQuotedHeaderPaths(header string) (oldPath, newPath string) {
	var parts []string
	rest := header
	for rest != "" {
		rest = strings.TrimLeft(rest, " ")
		if strings.HasPrefix(rest, `"`) {
			end := closingQuote(rest)
			if end < 0 {
				parts = append(parts, rest)
				break
			}
			parts = append(parts, unquotePath(rest[:end+1]))
			rest = rest[end+1:]
			continue
		}
		token, remainder, _ := strings.Cut(rest, " ")
		parts = append(parts, token)
		rest = remainder
	}
	if len(parts) != 2 {
		return header, header
	}
	return strings.TrimPrefix(parts[0], "a/"), strings.TrimPrefix(parts[1], "b/")
}

// closingQuote returns the index of the quote that ends the C-quoted string at s[0]
func closingQuote(s string) int {
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			return i
		}
	}
	return -1
}

// headerPath reads the file name from a ---/+++ line. git appends a tab
// to names that contain spaces.
func headerPath(line, prefix string) string {
	return unquotePath(strings.TrimSuffix(strings.TrimPrefix(line, prefix), "\t"))
}

// unquotePath undoes git's C-style quoting of unusual file names
func unquotePath(s string) string {
	if len(s) < 2 || s[0] != '"' {
		return s
	}
	unquoted, err := strconv.Unquote(s)
	if err != nil {
		return s
	}
	return unquoted
}
