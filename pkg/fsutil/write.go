package fsutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Permissions for generated files and the directories that hold them.
const (
	OutputMode    os.FileMode = 0o644
	OutputDirMode os.FileMode = 0o755
)

// WriteOutput replaces path with content. The bytes go to a temp file in the
// same directory which is then renamed over path, so readers never see a
// partial file. Missing parent directories are created.
func WriteOutput(ctx context.Context, path string, content []byte) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, OutputDirMode); err != nil {
		return classify("create directory", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return classify("create temp file in", dir, err)
	}
	if err := fill(tmp, content); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return classify("replace", path, err)
	}
	return nil
}

// fill writes, syncs and closes f, leaving it with OutputMode.
func fill(f *os.File, content []byte) error {
	_, err := f.Write(content)
	if err == nil {
		err = f.Sync()
	}
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Chmod(f.Name(), OutputMode)
	}
	if err != nil {
		return fmt.Errorf("write temp file %s: %w", f.Name(), err)
	}
	return nil
}

// UpdateOutput writes content to path unless path already holds exactly
// that. It returns the previous content, nil if there was none, and
// whether a write happened. An unchanged file keeps its modification time.
func UpdateOutput(ctx context.Context, path string, content []byte) ([]byte, bool, error) {
	previous, err := ReadOutput(ctx, path)
	if err != nil {
		return nil, false, err
	}
	if previous != nil && bytes.Equal(previous, content) {
		return previous, false, nil
	}
	if err := WriteOutput(ctx, path, content); err != nil {
		return previous, false, err
	}
	return previous, true, nil
}
