package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/langmark/pkg/fsutil"
)

func TestReadSource(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "doc.lm")
	require.NoError(t, os.WriteFile(path, []byte("= T =\n"), 0o644))

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr error
	}{
		{name: "file", path: path, want: "= T =\n"},
		{name: "missing", path: filepath.Join(dir, "nope.lm"), wantErr: fsutil.ErrNotFound},
		{name: "directory", path: dir, wantErr: fsutil.ErrIsDirectory},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := fsutil.ReadSource(context.Background(), tc.path)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				assert.Contains(t, err.Error(), tc.path)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, string(got))
		})
	}
}

func TestReadSource_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := fsutil.ReadSource(ctx, "whatever.lm")
	require.ErrorIs(t, err, context.Canceled)
}

func TestReadSource_PermissionDenied(t *testing.T) {
	t.Parallel()

	if os.Geteuid() == 0 {
		t.Skip("root ignores file permissions")
	}

	path := filepath.Join(t.TempDir(), "secret.lm")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o000))

	_, err := fsutil.ReadSource(context.Background(), path)
	require.ErrorIs(t, err, fsutil.ErrPermissionDenied)
}

func TestReadOutput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	got, err := fsutil.ReadOutput(context.Background(), filepath.Join(dir, "a.html"))
	require.NoError(t, err)
	assert.Nil(t, got, "a missing output reads as nil")

	_, err = fsutil.ReadOutput(context.Background(), dir)
	require.ErrorIs(t, err, fsutil.ErrIsDirectory)
}

func TestWriteOutput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "site", "docs", "a.html")

	require.NoError(t, fsutil.WriteOutput(context.Background(), path, []byte("<p>one</p>\n")))
	require.NoError(t, fsutil.WriteOutput(context.Background(), path, []byte("<p>two</p>\n")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<p>two</p>\n", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, fsutil.OutputMode, info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files are left behind")
}

func TestWriteOutput_Errors(t *testing.T) {
	t.Parallel()

	t.Run("cancelled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		path := filepath.Join(t.TempDir(), "a.html")
		require.ErrorIs(t, fsutil.WriteOutput(ctx, path, []byte("x")), context.Canceled)
		assert.NoFileExists(t, path)
	})

	t.Run("target is a directory", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		target := filepath.Join(dir, "a.html")
		require.NoError(t, os.Mkdir(target, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(target, "keep"), nil, 0o644))

		require.Error(t, fsutil.WriteOutput(context.Background(), target, []byte("x")))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1, "the temp file is removed on failure")
	})

	t.Run("parent is a file", func(t *testing.T) {
		t.Parallel()

		parent := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(parent, nil, 0o644))

		require.Error(t, fsutil.WriteOutput(context.Background(), filepath.Join(parent, "a.html"), []byte("x")))
	})
}

func TestUpdateOutput(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "a.html")

	previous, written, err := fsutil.UpdateOutput(ctx, path, []byte("<p>a</p>\n"))
	require.NoError(t, err)
	assert.True(t, written)
	assert.Nil(t, previous)

	old := time.Now().Add(-time.Hour).Truncate(time.Second)
	require.NoError(t, os.Chtimes(path, old, old))

	previous, written, err = fsutil.UpdateOutput(ctx, path, []byte("<p>a</p>\n"))
	require.NoError(t, err)
	assert.False(t, written)
	assert.Equal(t, "<p>a</p>\n", string(previous))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(old), "unchanged output keeps its mtime")

	previous, written, err = fsutil.UpdateOutput(ctx, path, []byte("<p>b</p>\n"))
	require.NoError(t, err)
	assert.True(t, written)
	assert.Equal(t, "<p>a</p>\n", string(previous))
}

func TestUpdateOutput_EmptyContent(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "empty.html")

	_, written, err := fsutil.UpdateOutput(context.Background(), path, nil)
	require.NoError(t, err)
	assert.True(t, written, "a missing output is created even when empty")

	_, written, err = fsutil.UpdateOutput(context.Background(), path, nil)
	require.NoError(t, err)
	assert.False(t, written)
}
