package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// ConfigPaths holds the config files found for each layer. An empty field
// means no file exists for that layer.
type ConfigPaths struct {
	System   string
	User     string
	Project  string
	Explicit string
}

// Names tried inside system and user config directories.
//
//nolint:gochecknoglobals // Read-only lookup table.
var globalNames = []string{"config.yml", "config.yaml"}

// Names tried in each directory while walking up from the working directory.
//
//nolint:gochecknoglobals // Read-only lookup table.
var projectNames = []string{
	".langmark.yml",
	".langmark.yaml",
	"langmark.yml",
	"langmark.yaml",
}

// A directory holding any of these ends the upward walk.
//
//nolint:gochecknoglobals // Read-only lookup table.
var stopMarkers = []string{".git", ".hg", ".svn"}

// DiscoverPaths locates the system, user and project config files for a
// build rooted at workDir.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("discover config: %w", err)
	}

	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}

	return &ConfigPaths{
		System:  firstFile(systemConfigDir(), globalNames),
		User:    firstFile(UserConfigDir(), globalNames),
		Project: project,
	}, nil
}

func systemConfigDir() string {
	if runtime.GOOS != "windows" {
		return "/etc/langmark"
	}
	base := os.Getenv("ProgramData")
	if base == "" {
		base = `C:\ProgramData`
	}
	return filepath.Join(base, "langmark")
}

// UserConfigDir returns $XDG_CONFIG_HOME/langmark, falling back to
// ~/.config/langmark. It returns "" when no home directory is known.
func UserConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "langmark")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "langmark")
}

// FindProjectConfig walks from startDir toward the root and returns the
// first project config file it sees. The walk stops at a VCS root or the
// home directory.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", startDir, err)
	}
	home, _ := os.UserHomeDir()

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("discover config: %w", err)
		}
		if found := firstFile(dir, projectNames); found != "" {
			return found, nil
		}
		if dir == home || hasMarker(dir) {
			return "", nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// firstFile returns the first regular file dir/name for name in names.
func firstFile(dir string, names []string) string {
	if dir == "" {
		return ""
	}
	for _, name := range names {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
			return candidate
		}
	}
	return ""
}

func hasMarker(dir string) bool {
	for _, marker := range stopMarkers {
		if info, err := os.Stat(filepath.Join(dir, marker)); err == nil && info.IsDir() {
			return true
		}
	}
	return false
}
