package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"gitkit.dev/gitkit/internal/git"
)

const (
	hashA = "1111111111111111111111111111111111111111"
	hashB = "2222222222222222222222222222222222222222"
)

func plainRenderer(format string) (*Renderer, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewRenderer(&buf, format, "never"), &buf
}

func TestUseColor(t *testing.T) {
	var buf bytes.Buffer
	assert.True(t, UseColor(&buf, "always"))
	assert.False(t, UseColor(&buf, "never"))
	assert.False(t, UseColor(&buf, "auto"), "buffers are not terminals")
}

func TestRender_TextBranches(t *testing.T) {
	r, buf := plainRenderer(FormatText)

	err := r.Render([]git.Branch{
		{Name: "master", IsCurrent: true, Commit: hashA},
		{Name: "feature", Commit: hashB},
	})
	require.NoError(t, err)
	assert.Equal(t, "* master 1111111\n  feature 2222222\n", buf.String())
}

func TestRender_TextTags(t *testing.T) {
	r, _ := plainRenderer(FormatText)
	msg := "Release one\n\nDetails"

	out := r.Text([]git.Tag{
		{Name: "v1", Target: hashA, Message: &msg},
		{Name: "v2", Target: hashB},
	})
	assert.Equal(t, "v1 1111111 Release one\nv2 2222222\n", out)
}

func TestRender_TextCommit(t *testing.T) {
	r, _ := plainRenderer(FormatText)
	date := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)

	out := r.Text(git.Commit{
		Hash:    hashA,
		Author:  "Ada <ada@example.com>",
		Date:    date,
		Message: "Subject\n\nBody line\n",
		Parents: []string{hashB},
	})
	assert.Contains(t, out, "commit "+hashA+"\n")
	assert.Contains(t, out, "Author: Ada <ada@example.com>\n")
	assert.Contains(t, out, "    Subject\n    \n    Body line\n")
	assert.NotContains(t, out, "Merge:")
}

func TestRender_TextLog(t *testing.T) {
	r, _ := plainRenderer(FormatText)

	out := r.Text(git.Log{Ref: "HEAD", Entries: []git.LogEntry{
		{Hash: hashA, Author: "Ada", Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Subject: "Add thing"},
	}})
	assert.Equal(t, "1111111 Add thing (Ada, 2024-03-01)\n", out)
}

func TestRender_TextTree(t *testing.T) {
	r, _ := plainRenderer(FormatText)
	tree := git.NewTree("HEAD", "", []git.TreeEntry{
		{Mode: filemode.Regular, Type: git.ObjectBlob, Hash: hashA, Path: "README.md"},
		{Mode: filemode.Dir, Type: git.ObjectTree, Hash: hashB, Path: "src"},
	})

	out := r.Text(tree)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "0100644 blob "+hashA+"\tREADME.md", lines[0])
	assert.Equal(t, "0040000 tree "+hashB+"\tsrc/", lines[1])
}

func TestRender_TextDiff(t *testing.T) {
	r, _ := plainRenderer(FormatText)

	out := r.Text(git.Diff{Commit: hashA, Chunks: []git.DiffChunk{
		{Path: "a.txt", Kind: git.ChangeModified, Hunks: []git.Hunk{{Content: "@@ -1 +1 @@\n-old\n+new"}}},
		{Path: "b.go", OldPath: "a.go", Kind: git.ChangeRenamed},
		{Path: "logo.png", Kind: git.ChangeModified, Binary: true},
	}})
	assert.Equal(t, "modified a.txt\n@@ -1 +1 @@\n-old\n+new\n"+
		"renamed a.go -> b.go\n"+
		"modified logo.png\nBinary files differ\n", out)
}

func TestRender_TextStatus(t *testing.T) {
	r, _ := plainRenderer(FormatText)

	out := r.Text([]git.StatusEntry{
		{Index: 'M', Worktree: ' ', Path: "a.txt"},
		{Index: 'R', Worktree: ' ', Path: "new.txt", OrigPath: "old.txt"},
		{Index: '?', Worktree: '?', Path: "untracked.txt"},
	})
	assert.Equal(t, "M  a.txt\nR  old.txt -> new.txt\n?? untracked.txt\n", out)
}

func TestRender_TextStrings(t *testing.T) {
	r, _ := plainRenderer(FormatText)
	assert.Equal(t, "M a\n?? b\n", r.Text([]string{"M a", "?? b"}))
	assert.Equal(t, "done\n", r.Text("done"))
	assert.Equal(t, "", r.Text(""))
}

func TestRender_JSON(t *testing.T) {
	r, buf := plainRenderer(FormatJSON)

	require.NoError(t, r.Render([]git.Branch{{Name: "master", IsCurrent: true, Commit: hashA}}))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "master", decoded[0]["name"])
	assert.Equal(t, true, decoded[0]["current"])
	assert.Equal(t, hashA, decoded[0]["commit"])
}

func TestRender_JSONTree(t *testing.T) {
	r, buf := plainRenderer(FormatJSON)
	tree := git.NewTree("HEAD", "src", []git.TreeEntry{
		{Mode: filemode.Regular, Type: git.ObjectBlob, Hash: hashA, Path: "src/main.go"},
	})

	require.NoError(t, r.Render(tree))
	assert.Contains(t, buf.String(), `"ref": "HEAD"`)
	assert.Contains(t, buf.String(), `"path": "src/main.go"`)
	assert.Contains(t, buf.String(), `"type": "blob"`)
}

func TestRender_YAML(t *testing.T) {
	r, buf := plainRenderer(FormatYAML)

	require.NoError(t, r.Render([]git.StatusEntry{{Index: 'A', Worktree: ' ', Path: "a.txt"}}))

	var decoded []map[string]string
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "A ", decoded[0]["code"])
	assert.Equal(t, "a.txt", decoded[0]["path"])
}

func TestRender_UnknownFormat(t *testing.T) {
	r, _ := plainRenderer("xml")
	require.Error(t, r.Render("x"))
}

func TestRender_ColorAlways(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, FormatText, "always")

	out := r.Text(git.Branch{Name: "master", IsCurrent: true})
	assert.Contains(t, out, "\x1b[", "forced color emits escape codes")
	assert.Contains(t, out, "master")
}
