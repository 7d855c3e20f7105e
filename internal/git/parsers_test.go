package git_test

import (
	"strings"
	"testing"
	"time"

	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gitkiterrors "gitkit.dev/gitkit/internal/errors"
	"gitkit.dev/gitkit/internal/git"
)

func TestParseTags(t *testing.T) {
	t.Run("field counts are detected per line", func(t *testing.T) {
		tags, err := git.ParseTags([]string{
			"v0.1",
			"v1.0\t" + hashA,
			"v2.0\t" + hashB + "\tRelease two",
			"v3.0\t" + hashC + "\t",
		})
		require.NoError(t, err)
		require.Len(t, tags, 4)

		assert.Equal(t, git.Tag{Name: "v0.1"}, tags[0])
		assert.Equal(t, git.Tag{Name: "v1.0", Target: hashA}, tags[1])
		assert.False(t, tags[1].IsAnnotated())

		require.NotNil(t, tags[2].Message)
		assert.Equal(t, "Release two", *tags[2].Message)
		assert.True(t, tags[2].IsAnnotated())

		require.NotNil(t, tags[3].Message, "annotated tag with empty message")
		assert.Equal(t, "", *tags[3].Message)
	})

	t.Run("empty output", func(t *testing.T) {
		tags, err := git.ParseTags([]string{})
		require.NoError(t, err)
		require.Empty(t, tags)
	})

	t.Run("bad target", func(t *testing.T) {
		_, err := git.ParseTags([]string{"v1\tzzz"})
		require.ErrorIs(t, err, gitkiterrors.ErrParse)
	})

	t.Run("find", func(t *testing.T) {
		tags := []git.Tag{{Name: "v1"}, {Name: "v2"}}
		_, found := git.FindTag(tags, "v3")
		require.False(t, found)
		tag, found := git.FindTag(tags, "v2")
		require.True(t, found)
		require.Equal(t, "v2", tag.Name)
	})
}

func TestParseCommit(t *testing.T) {
	t.Run("full commit", func(t *testing.T) {
		commit, err := git.ParseCommit("HEAD", []string{
			hashA,
			hashB + " " + hashC,
			"Test User <test@example.com>",
			"2024-03-01T12:30:00+01:00",
			"feat: subject line",
			"",
			"Body paragraph.",
			"",
		})
		require.NoError(t, err)

		assert.Equal(t, hashA, commit.Hash)
		assert.Equal(t, []string{hashB, hashC}, commit.Parents)
		assert.Equal(t, "Test User <test@example.com>", commit.Author)
		assert.True(t, commit.Date.Equal(time.Date(2024, 3, 1, 11, 30, 0, 0, time.UTC)))
		assert.Equal(t, "feat: subject line\n\nBody paragraph.", commit.Message)
		assert.Equal(t, "feat: subject line", commit.Subject())
		assert.Equal(t, "1111111", commit.ShortHash())
	})

	t.Run("root commit has no parents", func(t *testing.T) {
		commit, err := git.ParseCommit("HEAD", []string{hashA, "", "A <a@b>", "2024-01-01T00:00:00Z", "init"})
		require.NoError(t, err)
		assert.Empty(t, commit.Parents)
	})

	t.Run("empty output is not found", func(t *testing.T) {
		_, err := git.ParseCommit("HEAD", []string{})
		require.ErrorIs(t, err, gitkiterrors.ErrEntityNotFound)

		var notFound *gitkiterrors.EntityNotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "HEAD", notFound.Ref)
	})

	t.Run("truncated header", func(t *testing.T) {
		_, err := git.ParseCommit("HEAD", []string{hashA, ""})
		require.ErrorIs(t, err, gitkiterrors.ErrParse)
	})

	t.Run("bad date", func(t *testing.T) {
		_, err := git.ParseCommit("HEAD", []string{hashA, "", "A <a@b>", "yesterday", "msg"})
		require.ErrorIs(t, err, gitkiterrors.ErrParse)
	})

	t.Run("accepts sha256 object names", func(t *testing.T) {
		long := strings.Repeat("ab", 32)
		require.Len(t, long, 64)
		commit, err := git.ParseCommit("HEAD", []string{long, "", "A <a@b>", "2024-01-01T00:00:00Z", "msg"})
		require.NoError(t, err)
		assert.Equal(t, long, commit.Hash)
	})
}

func TestParseLog(t *testing.T) {
	branch := "master"
	log, err := git.ParseLog("feature", &branch, []string{
		hashC + "\t" + hashB + "\tA <a@b>\t2024-01-03T00:00:00Z\tthird\twith a tab",
		hashB + "\t" + hashA + "\tA <a@b>\t2024-01-02T00:00:00Z\tsecond",
		hashA + "\t\tA <a@b>\t2024-01-01T00:00:00Z\t",
	})
	require.NoError(t, err)

	assert.Equal(t, "feature", log.Ref)
	require.NotNil(t, log.Branch)
	assert.Equal(t, "master", *log.Branch)
	require.Equal(t, 3, log.Len())
	assert.Equal(t, "third\twith a tab", log.Entries[0].Subject)
	assert.Equal(t, []string{hashB}, log.Entries[0].Parents)
	assert.Equal(t, hashA, log.Entries[2].Hash)
	assert.Empty(t, log.Entries[2].Parents)
	assert.Equal(t, "", log.Entries[2].Subject)

	empty, err := git.ParseLog("HEAD", nil, []string{})
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Len())
	assert.Nil(t, empty.Branch)

	_, err = git.ParseLog("HEAD", nil, []string{"garbage"})
	require.ErrorIs(t, err, gitkiterrors.ErrParse)
}

func TestParseTree(t *testing.T) {
	t.Run("entries in listing order", func(t *testing.T) {
		tree, err := git.ParseTree("HEAD", "", []string{
			"100644 blob " + hashA + "\tREADME.md",
			"100755 blob " + hashB + "\tbuild.sh",
			"040000 tree " + hashC + "\tsrc",
			"160000 commit " + hashA + "\tvendor/lib",
			"120000 blob " + hashB + "\tlink",
			"100644 blob " + hashC + "\t\"sp\\303\\244ce name.txt\"",
		})
		require.NoError(t, err)
		require.Equal(t, 6, tree.Len())
		assert.Equal(t, "HEAD", tree.Ref())
		assert.Equal(t, "", tree.Path())

		readme := tree.At(0)
		assert.Equal(t, filemode.Regular, readme.Mode)
		assert.Equal(t, git.ObjectBlob, readme.Type)
		assert.Equal(t, "README.md", readme.Path)

		src, ok := tree.Get("src")
		require.True(t, ok)
		assert.True(t, src.IsDir())
		assert.Equal(t, filemode.Dir, src.Mode)

		assert.Equal(t, filemode.Executable, tree.At(1).Mode)
		assert.Equal(t, git.ObjectCommit, tree.At(3).Type)
		assert.Equal(t, filemode.Symlink, tree.At(4).Mode)
		assert.Equal(t, "späce name.txt", tree.At(5).Path)

		_, ok = tree.Get("missing")
		assert.False(t, ok)
	})

	t.Run("empty output is an empty tree", func(t *testing.T) {
		tree, err := git.ParseTree("HEAD", "", []string{})
		require.NoError(t, err)
		require.NotNil(t, tree)
		assert.Equal(t, 0, tree.Len())
		assert.Empty(t, tree.Entries())
	})

	t.Run("entries are copied out", func(t *testing.T) {
		tree, err := git.ParseTree("HEAD", "", []string{"100644 blob " + hashA + "\ta"})
		require.NoError(t, err)
		entries := tree.Entries()
		entries[0].Path = "changed"
		assert.Equal(t, "a", tree.At(0).Path)
	})

	t.Run("malformed lines", func(t *testing.T) {
		for _, line := range []string{
			"100644 blob " + hashA,
			"100644 " + hashA + "\tfile",
			"999999 blob " + hashA + "\tfile",
			"040000 blob " + hashA + "\tfile",
			"100644 blob nothash\tfile",
		} {
			_, err := git.ParseTree("HEAD", "", []string{line})
			assert.ErrorIs(t, err, gitkiterrors.ErrParse, "line %q", line)
		}
	})

	t.Run("single entry lookup", func(t *testing.T) {
		entry, err := git.ParseTreeEntry("HEAD", "README.md", []string{"100644 blob " + hashA + "\tREADME.md"})
		require.NoError(t, err)
		assert.Equal(t, hashA, entry.Hash)

		_, err = git.ParseTreeEntry("HEAD", "missing", []string{})
		require.ErrorIs(t, err, gitkiterrors.ErrEntityNotFound)
	})
}

func TestParseStatus(t *testing.T) {
	entries, err := git.ParseStatus([]string{
		" M modified.go",
		"A  added.go",
		"R  old.go -> new.go",
		"?? untracked file.txt",
		`?? "quoted\tname"`,
	})
	require.NoError(t, err)
	require.Len(t, entries, 5)

	assert.Equal(t, " M", entries[0].Code())
	assert.Equal(t, "modified.go", entries[0].Path)
	assert.Equal(t, byte('A'), entries[1].Index)
	assert.Equal(t, "new.go", entries[2].Path)
	assert.Equal(t, "old.go", entries[2].OrigPath)
	assert.True(t, entries[3].IsUntracked())
	assert.Equal(t, "untracked file.txt", entries[3].Path)
	assert.Equal(t, "quoted\tname", entries[4].Path)

	_, err = git.ParseStatus([]string{"M"})
	require.ErrorIs(t, err, gitkiterrors.ErrParse)

	assert.Equal(t, []string{"M  a.go", "?? b"}, git.TrimStatusLines([]string{"M  a.go  ", "", "?? b\t"}))
}
