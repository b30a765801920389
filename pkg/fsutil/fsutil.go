// Package fsutil provides the file system primitives langmark builds on:
// classified reads of source files and atomic writes of converted output.
package fsutil

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// Sentinel errors for error categorization via errors.Is.
var (
	ErrNotFound         = errors.New("file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrIsDirectory      = errors.New("path is a directory")
)

// ReadSource reads a document to convert. Failures wrap one of the
// sentinel errors when they fit.
func ReadSource(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, classify("stat", path, err)
	}
	if stat.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, classify("read", path, err)
	}
	return data, nil
}

// ReadOutput returns the current content of a generated file. A file that
// does not exist yet reads as nil without error.
func ReadOutput(ctx context.Context, path string) ([]byte, error) {
	data, err := ReadSource(ctx, path)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return data, err
}

func classify(op, path string, err error) error {
	switch {
	case errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	case errors.Is(err, os.ErrPermission):
		return fmt.Errorf("%w: %s", ErrPermissionDenied, path)
	default:
		return fmt.Errorf("%s %s: %w", op, path, err)
	}
}
