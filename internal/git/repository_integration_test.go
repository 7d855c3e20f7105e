package git_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gitkiterrors "gitkit.dev/gitkit/internal/errors"
	"gitkit.dev/gitkit/internal/git"
	"gitkit.dev/gitkit/testhelpers"
)

func TestRepository_WithGit(t *testing.T) {
	requireBinary(t, "git")
	ctx := context.Background()

	t.Run("commit message survives the round trip", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		repo := scene.Open(t)

		require.NoError(t, scene.Repo.WriteFile("a.txt", "a"))
		require.NoError(t, repo.Stage(ctx, ""))

		msg := "fix: bug with \"quotes\" and  spaces\n\nbody; $(echo nope)"
		require.NoError(t, repo.Commit(ctx, msg, git.CommitParams{}))

		commit, err := repo.GetCommit(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, msg, commit.Message)
		assert.Equal(t, "Test User <test@example.com>", commit.Author)
		require.Len(t, commit.Parents, 1)

		head, err := scene.Repo.GetCurrentSHA()
		require.NoError(t, err)
		assert.Equal(t, head, commit.Hash)
	})

	t.Run("commit on another ref restores the current branch", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		require.NoError(t, scene.Repo.CreateBranch("release"))
		repo := scene.Open(t)

		ref := "release"
		require.NoError(t, repo.Commit(ctx, "empty release commit", git.CommitParams{Ref: &ref, Amend: true}))

		current, err := scene.Repo.CurrentBranchName()
		require.NoError(t, err)
		assert.Equal(t, testhelpers.DefaultBranch, current)

		log, err := repo.Log(ctx, "release", git.LogOptions{Limit: 1})
		require.NoError(t, err)
		require.Equal(t, 1, log.Len())
		assert.Equal(t, "empty release commit", log.Entries[0].Subject)
	})

	t.Run("failed commit on another ref still restores", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		require.NoError(t, scene.Repo.CreateBranch("release"))
		repo := scene.Open(t)

		ref := "release"
		err := repo.Commit(ctx, "nothing staged", git.CommitParams{Ref: &ref})
		require.ErrorIs(t, err, gitkiterrors.ErrExternalCommand)

		current, err := scene.Repo.CurrentBranchName()
		require.NoError(t, err)
		assert.Equal(t, testhelpers.DefaultBranch, current)
	})

	t.Run("branches", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		repo := scene.Open(t)

		require.NoError(t, repo.CreateBranch(ctx, "feature-b", nil))
		require.NoError(t, repo.CreateBranch(ctx, "feature-a", nil))

		branches, err := repo.Branches(ctx)
		require.NoError(t, err)
		require.Len(t, branches, 3)
		assert.Equal(t, "master", branches[0].Name)
		assert.True(t, branches[0].IsCurrent)

		main, err := repo.MainBranch(ctx)
		require.NoError(t, err)
		assert.Equal(t, "master", main.Name)

		require.NoError(t, repo.Checkout(ctx, "feature-a"))
		main, err = repo.MainBranch(ctx)
		require.NoError(t, err)
		assert.Equal(t, "feature-a", main.Name)

		require.NoError(t, repo.DeleteBranch(ctx, "feature-b"))
		_, found, err := repo.Branch(ctx, "feature-b")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("detached head has no main branch", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		require.NoError(t, scene.Repo.CheckoutDetached("HEAD"))
		repo := scene.Open(t)

		branches, err := repo.Branches(ctx)
		require.NoError(t, err)
		require.Len(t, branches, 1)
		assert.False(t, branches[0].IsCurrent)

		_, err = repo.MainBranch(ctx)
		require.ErrorIs(t, err, gitkiterrors.ErrInvariantViolation)
	})

	t.Run("tags", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		repo := scene.Open(t)

		msg := "release one"
		require.NoError(t, repo.CreateTag(ctx, "v1", nil, nil))
		require.NoError(t, repo.CreateTag(ctx, "v2", nil, &msg))

		head, err := scene.Repo.GetCurrentSHA()
		require.NoError(t, err)

		light, found, err := repo.Tag(ctx, "v1")
		require.NoError(t, err)
		require.True(t, found)
		assert.Nil(t, light.Message)
		assert.Equal(t, head, light.Target)

		annotated, found, err := repo.Tag(ctx, "v2")
		require.NoError(t, err)
		require.True(t, found)
		require.NotNil(t, annotated.Message)
		assert.Equal(t, msg, *annotated.Message)
		assert.Equal(t, head, annotated.Target, "annotated tags are peeled to their commit")

		commit, err := repo.GetCommit(ctx, "v2")
		require.NoError(t, err)
		assert.Equal(t, head, commit.Hash)

		require.NoError(t, repo.DeleteTag(ctx, "v1"))
		tags, err := repo.Tags(ctx)
		require.NoError(t, err)
		require.Len(t, tags, 1)
	})

	t.Run("branch and tag sharing a name", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		require.NoError(t, scene.Repo.CreateAndCheckoutBranch("v1"))
		require.NoError(t, scene.Repo.CreateTag("v1"))
		require.NoError(t, scene.Repo.CreateBranch("release"))
		repo := scene.Open(t)

		branch, found, err := repo.Branch(ctx, "v1")
		require.NoError(t, err)
		require.True(t, found)
		assert.True(t, branch.IsCurrent)

		tag, found, err := repo.Tag(ctx, "v1")
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, "v1", tag.Name)

		main, err := repo.MainBranch(ctx)
		require.NoError(t, err)
		assert.Equal(t, "v1", main.Name)

		ref := "release"
		require.NoError(t, repo.Commit(ctx, "empty", git.CommitParams{Ref: &ref, Amend: true}))
		current, err := scene.Repo.CurrentBranchName()
		require.NoError(t, err)
		assert.Equal(t, "v1", current)
	})

	t.Run("annotated tag message keeps its subject line", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		repo := scene.Open(t)

		msg := "release two\n\nhighlights follow"
		require.NoError(t, repo.CreateTag(ctx, "v2", nil, &msg))

		tag, found, err := repo.Tag(ctx, "v2")
		require.NoError(t, err)
		require.True(t, found)
		require.NotNil(t, tag.Message)
		assert.Equal(t, "release two", *tag.Message)
	})

	t.Run("tree and diff", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		require.NoError(t, scene.Repo.WriteFile("src/main.go", "package main\n"))
		require.NoError(t, scene.Repo.RunGitCommand("add", "."))
		require.NoError(t, scene.Repo.RunGitCommand("commit", "-m", "add src"))
		repo := scene.Open(t)

		tree, err := repo.Tree(ctx, "", "")
		require.NoError(t, err)
		src, ok := tree.Get("src")
		require.True(t, ok)
		assert.True(t, src.IsDir())

		sub, err := repo.Tree(ctx, "HEAD", "src")
		require.NoError(t, err)
		require.Equal(t, 1, sub.Len())
		assert.Equal(t, "main.go", sub.At(0).Path)

		entry, err := repo.TreeEntry(ctx, "HEAD", "src/main.go")
		require.NoError(t, err)
		assert.Equal(t, git.ObjectBlob, entry.Type)

		_, err = repo.TreeEntry(ctx, "HEAD", "nope.txt")
		require.ErrorIs(t, err, gitkiterrors.ErrEntityNotFound)

		diff, err := repo.CommitDiff(ctx, "HEAD", nil)
		require.NoError(t, err)
		require.Equal(t, 1, diff.Len())
		assert.Equal(t, "src/main.go", diff.Chunks[0].Path)
		assert.Equal(t, git.ChangeAdded, diff.Chunks[0].Kind)

		other := "1_test.txt"
		filtered, err := repo.CommitDiff(ctx, "HEAD", &other)
		require.NoError(t, err)
		assert.Equal(t, 0, filtered.Len())
	})

	t.Run("status and log branch filter", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		require.NoError(t, scene.Repo.CreateAndCheckoutBranch("feature"))
		require.NoError(t, scene.Repo.CreateChangeAndCommit("feature work", "f"))
		repo := scene.Open(t)

		branch := "master"
		log, err := repo.Log(ctx, "feature", git.LogOptions{Branch: &branch})
		require.NoError(t, err)
		require.Equal(t, 1, log.Len())
		assert.Equal(t, "feature work", log.Entries[0].Subject)

		require.NoError(t, scene.Repo.WriteFile("new.txt", "x"))
		status, err := repo.Status(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"?? new.txt"}, status)
	})

	t.Run("init", func(t *testing.T) {
		repo, err := git.Open(t.TempDir())
		require.NoError(t, err)
		require.NoError(t, repo.Init(ctx))

		status, err := repo.Status(ctx)
		require.NoError(t, err)
		assert.Empty(t, status)
	})
}
