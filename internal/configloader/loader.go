// Package configloader resolves the effective langmark configuration from
// config files, LANGMARK_* variables and command flags.
package configloader

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/yaklabco/langmark/pkg/config"
)

// Layer identifies an optional configuration source. Layers combine as a
// bit set in LoadOptions.Skip.
type Layer uint8

const (
	LayerSystem Layer = 1 << iota
	LayerUser
	LayerProject
	LayerEnv
)

// LoadOptions selects the configuration sources for Load.
type LoadOptions struct {
	// Dir anchors the project config search. Empty means the process
	// working directory.
	Dir string

	// File is read after every discovered file, as with --config.
	File string

	// Skip turns off the listed layers.
	Skip Layer

	// Overrides holds flag values and wins over every other source.
	Overrides *config.Config
}

// LoadResult is the effective configuration plus where it came from.
type LoadResult struct {
	Config *config.Config
	Paths  *ConfigPaths

	// Sources lists the config files read, lowest precedence first.
	Sources []string

	Warnings []string
}

// Load merges, in increasing precedence: defaults, the system file, the
// user file, the project file, opts.File, LANGMARK_* variables and
// opts.Overrides. The result is normalized and validated.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	dir := opts.Dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolve working directory: %w", err)
		}
		dir = wd
	}

	paths, err := DiscoverPaths(ctx, dir)
	if err != nil {
		return nil, err
	}
	paths.Explicit = opts.File

	res := &LoadResult{Paths: paths}
	layers := []*config.Config{config.NewConfig()}

	files := []struct {
		layer Layer
		name  string
		path  string
	}{
		{LayerSystem, "system", paths.System},
		{LayerUser, "user", paths.User},
		{LayerProject, "project", paths.Project},
		{0, "explicit", paths.Explicit},
	}
	for _, f := range files {
		if f.path == "" || opts.Skip&f.layer != 0 {
			continue
		}
		layerCfg, err := readFile(f.path)
		if err != nil {
			return nil, fmt.Errorf("%s config: %w", f.name, err)
		}
		if err := res.check(layerCfg, f.path); err != nil {
			return nil, err
		}
		layers = append(layers, layerCfg)
		res.Sources = append(res.Sources, f.path)
	}
	cfg := MergeAll(layers...)

	if opts.Skip&LayerEnv == 0 {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("environment: %w", err)
		}
	}
	if opts.Overrides != nil {
		cfg = merge(cfg, opts.Overrides)
	}
	normalize(cfg)

	if err := res.check(cfg, ""); err != nil {
		return nil, err
	}
	res.Config = cfg
	return res, nil
}

// check validates layerCfg over the defaults so a finding names the file
// that introduced it. Warnings accumulate on res; the first error is
// returned.
func (res *LoadResult) check(layerCfg *config.Config, path string) error {
	target := layerCfg
	if path != "" {
		target = merge(config.NewConfig(), layerCfg)
		normalize(target)
	}

	findings := Validate(target, path)
	for _, w := range findings.Warnings {
		res.Warnings = append(res.Warnings, w.Error())
	}
	if len(findings.Errors) > 0 {
		return &findings.Errors[0]
	}
	return nil
}

// readFile decodes one YAML config file. An empty file decodes to an
// empty configuration.
func readFile(path string) (*config.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	cfg, err := config.FromYAML(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// IsValidationError reports whether err carries a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
