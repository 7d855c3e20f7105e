package testhelpers

import (
	"os"
	"testing"

	"gitkit.dev/gitkit/internal/git"
)

// Scene is a temporary directory holding a fixture repository
type Scene struct {
	Dir  string
	Repo *GitRepo
}

// SceneSetup is a function type for setting up a scene.
type SceneSetup func(*Scene) error

// NewScene creates a repository in a temporary directory and runs setup on it.
// The directory is removed when the test ends unless DEBUG is set.
func NewScene(t *testing.T, setup SceneSetup) *Scene {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "gitkit-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() {
		if os.Getenv("DEBUG") == "" {
			_ = os.RemoveAll(tmpDir)
		}
	})

	repo, err := NewGitRepo(tmpDir)
	if err != nil {
		t.Fatalf("Failed to create Git repo: %v", err)
	}

	scene := &Scene{Dir: tmpDir, Repo: repo}
	if setup != nil {
		if err := setup(scene); err != nil {
			t.Fatalf("Setup failed: %v", err)
		}
	}
	return scene
}

// Open returns a Repository over the scene directory using the real git binary
func (s *Scene) Open(t *testing.T, opts ...git.Option) *git.Repository {
	t.Helper()
	opts = append([]git.Option{git.WithInvoker(git.NewCommandRunner(
		git.NewPathLocator(git.DefaultBinary, 0),
		git.WithEnv("GIT_CONFIG_GLOBAL=/dev/null", "GIT_CONFIG_NOSYSTEM=1"),
	))}, opts...)
	repo, err := git.Open(s.Dir, opts...)
	if err != nil {
		t.Fatalf("Failed to open repository: %v", err)
	}
	return repo
}

// BasicSceneSetup is a setup function that creates a basic scene with a single commit.
func BasicSceneSetup(scene *Scene) error {
	return scene.Repo.CreateChangeAndCommit("1", "1")
}
