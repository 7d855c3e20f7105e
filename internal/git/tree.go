package git

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/filemode"

	gitkiterrors "gitkit.dev/gitkit/internal/errors"
)

// ObjectType is the kind of object a tree entry points at
type ObjectType string

// Object types that appear in tree listings
const (
	ObjectBlob   ObjectType = "blob"
	ObjectTree   ObjectType = "tree"
	ObjectCommit ObjectType = "commit" // submodule link
)

// TreeEntry is one line of `git ls-tree` output
type TreeEntry struct {
	Mode filemode.FileMode
	Type ObjectType
	Hash string
	Path string
}

// IsDir reports whether the entry is a subtree
func (e TreeEntry) IsDir() bool {
	return e.Type == ObjectTree
}

// Tree is an ordered, read-only listing of a tree at a ref and path
type Tree struct {
	ref     string
	path    string
	entries []TreeEntry
	index   map[string]int
}

// NewTree builds a Tree from already parsed entries
func NewTree(ref, path string, entries []TreeEntry) *Tree {
	t := &Tree{
		ref:     ref,
		path:    path,
		entries: make([]TreeEntry, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	copy(t.entries, entries)
	for i, e := range t.entries {
		t.index[e.Path] = i
	}
	return t
}

// Ref returns the ref the tree was read from
func (t *Tree) Ref() string { return t.ref }

// Path returns the subpath the tree was read from ("" for the root)
func (t *Tree) Path() string { return t.path }

// Len returns the number of entries
func (t *Tree) Len() int { return len(t.entries) }

// At returns the entry at position i in listing order
func (t *Tree) At(i int) TreeEntry { return t.entries[i] }

// Get looks an entry up by its path relative to the tree
func (t *Tree) Get(path string) (TreeEntry, bool) {
	i, ok := t.index[path]
	if !ok {
		return TreeEntry{}, false
	}
	return t.entries[i], true
}

// Entries returns a copy of the entries in listing order
func (t *Tree) Entries() []TreeEntry {
	out := make([]TreeEntry, len(t.entries))
	copy(out, t.entries)
	return out
}

type treeEntryDoc struct {
	Mode string     `json:"mode" yaml:"mode"`
	Type ObjectType `json:"type" yaml:"type"`
	Hash string     `json:"hash" yaml:"hash"`
	Path string     `json:"path" yaml:"path"`
}

type treeDoc struct {
	Ref     string         `json:"ref" yaml:"ref"`
	Path    string         `json:"path" yaml:"path"`
	Entries []treeEntryDoc `json:"entries" yaml:"entries"`
}

func (t *Tree) doc() treeDoc {
	doc := treeDoc{Ref: t.ref, Path: t.path, Entries: make([]treeEntryDoc, len(t.entries))}
	for i, e := range t.entries {
		doc.Entries[i] = treeEntryDoc{Mode: e.Mode.String(), Type: e.Type, Hash: e.Hash, Path: e.Path}
	}
	return doc
}

// MarshalJSON encodes the tree with its ref, path and entries
func (t *Tree) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.doc())
}

// MarshalYAML encodes the tree with its ref, path and entries
func (t *Tree) MarshalYAML() (any, error) {
	return t.doc(), nil
}

// ParseTree parses `git ls-tree` output. Empty output is an empty tree.
func ParseTree(ref, path string, lines []string) (*Tree, error) {
	entries := make([]TreeEntry, 0, len(lines))
	for i, line := range lines {
		if line == "" {
			continue
		}
		entry, err := parseTreeLine(i+1, line)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return NewTree(ref, path, entries), nil
}

// ParseTreeEntry parses the single entry listed for a path.
// Empty output means the path does not exist at ref.
func ParseTreeEntry(ref, path string, lines []string) (TreeEntry, error) {
	for i, line := range lines {
		if line == "" {
			continue
		}
		return parseTreeLine(i+1, line)
	}
	return TreeEntry{}, gitkiterrors.NewEntityNotFoundError("tree entry", ref+":"+path)
}

// parseTreeLine parses "<mode> SP <type> SP <hash> TAB <path>"
func parseTreeLine(lineNo int, line string) (TreeEntry, error) {
	meta, path, found := strings.Cut(line, "\t")
	if !found || path == "" {
		return TreeEntry{}, gitkiterrors.NewParseError("ls-tree", lineNo, line, "missing tab before path")
	}

	fields := strings.Split(meta, " ")
	if len(fields) != 3 {
		return TreeEntry{}, gitkiterrors.NewParseError("ls-tree", lineNo, line, "expected mode, type and hash")
	}

	mode, err := filemode.New(fields[0])
	if err != nil {
		return TreeEntry{}, gitkiterrors.NewParseError("ls-tree", lineNo, line, "invalid mode")
	}

	objType := ObjectType(fields[1])
	if !modeMatchesType(mode, objType) {
		return TreeEntry{}, gitkiterrors.NewParseError("ls-tree", lineNo, line, "mode does not match object type")
	}

	if !IsHash(fields[2]) {
		return TreeEntry{}, gitkiterrors.NewParseError("ls-tree", lineNo, line, "not an object hash")
	}

	if strings.HasPrefix(path, `"`) {
		unquoted, err := strconv.Unquote(path)
		if err != nil {
			return TreeEntry{}, gitkiterrors.NewParseError("ls-tree", lineNo, line, "malformed quoted path")
		}
		path = unquoted
	}

	return TreeEntry{Mode: mode, Type: objType, Hash: fields[2], Path: path}, nil
}

func modeMatchesType(mode filemode.FileMode, objType ObjectType) bool {
	switch objType {
	case ObjectTree:
		return mode == filemode.Dir
	case ObjectCommit:
		return mode == filemode.Submodule
	case ObjectBlob:
		return mode == filemode.Regular || mode == filemode.Executable ||
			mode == filemode.Symlink || mode == filemode.Deprecated
	default:
		return false
	}
}
