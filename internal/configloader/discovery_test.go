package configloader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindProjectConfig_WalksUp(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
	want := writeConfig(t, root, "langmark.yaml", "jobs: 1\n")

	nested := filepath.Join(root, "docs", "guide")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	got, err := FindProjectConfig(context.Background(), nested)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFindProjectConfig_PrefersDotFile(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
	writeConfig(t, root, "langmark.yml", "")
	want := writeConfig(t, root, ".langmark.yml", "")

	got, err := FindProjectConfig(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFindProjectConfig_StopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	outer := t.TempDir()
	writeConfig(t, outer, ".langmark.yml", "")
	repo := filepath.Join(outer, "repo")
	require.NoError(t, os.MkdirAll(filepath.Join(repo, ".hg"), 0o755))

	got, err := FindProjectConfig(context.Background(), repo)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFindProjectConfig_IgnoresDirectories(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(root, ".langmark.yml"), 0o755))

	got, err := FindProjectConfig(context.Background(), root)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDiscoverPaths_UserConfig(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	require.NoError(t, os.Mkdir(filepath.Join(xdg, "langmark"), 0o755))
	want := writeConfig(t, filepath.Join(xdg, "langmark"), "config.yaml", "")

	work := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(work, ".git"), 0o755))

	paths, err := DiscoverPaths(context.Background(), work)
	require.NoError(t, err)
	assert.Equal(t, want, paths.User)
	assert.Empty(t, paths.Project)
}

func TestDiscoverPaths_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := DiscoverPaths(ctx, t.TempDir())
	require.ErrorIs(t, err, context.Canceled)
}
