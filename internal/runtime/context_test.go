package runtime_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitkit.dev/gitkit/internal/config"
	"gitkit.dev/gitkit/internal/runtime"
	"gitkit.dev/gitkit/testhelpers"
)

func TestNew(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), []byte("git:\n  primary_branch: main\n"), 0600))

	invoker := testhelpers.NewRecordingInvoker().OnOutput("branch", "* main "+hash)
	var out, errOut bytes.Buffer

	ctx, err := runtime.New(context.Background(), runtime.Options{
		RepoDir: dir,
		Format:  config.FormatJSON,
		Out:     &out,
		Err:     &errOut,
		Invoker: invoker,
	})
	require.NoError(t, err)
	defer func() { require.NoError(t, ctx.Close()) }()

	assert.Equal(t, "main", ctx.Repo.PrimaryBranch())
	assert.Equal(t, config.FormatJSON, ctx.Renderer.Format())

	main, err := ctx.Repo.MainBranch(ctx)
	require.NoError(t, err)
	assert.Equal(t, "main", main.Name)
	require.Len(t, invoker.Calls(), 1)
	assert.Equal(t, ctx.Repo.Path(), invoker.Calls()[0].Dir)

	require.NoError(t, ctx.Renderer.Render(main))
	assert.Contains(t, out.String(), `"name": "main"`)
}

func TestNew_InvalidOverride(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	_, err := runtime.New(context.Background(), runtime.Options{
		RepoDir: t.TempDir(),
		Format:  "xml",
		Invoker: testhelpers.NewRecordingInvoker(),
	})
	require.Error(t, err)
}

func TestNew_MissingRepoDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	_, err := runtime.New(context.Background(), runtime.Options{
		RepoDir: filepath.Join(t.TempDir(), "missing"),
		Out:     &bytes.Buffer{},
		Err:     &bytes.Buffer{},
		Invoker: testhelpers.NewRecordingInvoker(),
	})
	require.Error(t, err)
}

const hash = "1111111111111111111111111111111111111111"
