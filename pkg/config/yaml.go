package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"

	"gopkg.in/yaml.v3"
)

// yamlIndent is the indentation of written config files.
const yamlIndent = 2

// YAMLIndent returns the indentation used when writing config files.
func YAMLIndent() int { return yamlIndent }

// ToYAML encodes the persisted fields of c.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var out bytes.Buffer
	enc := yaml.NewEncoder(&out)
	enc.SetIndent(yamlIndent)
	err := enc.Encode(c)
	if closeErr := enc.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return out.Bytes(), nil
}

// FromYAML decodes a config file. Keys that match no setting are errors.
// Absent settings keep their zero value; callers merge onto defaults.
func FromYAML(data []byte) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return cfg, nil
}

// Clone returns a copy of c that shares no slices with it.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	dup := *c
	dup.Grammar.Disable = slices.Clone(c.Grammar.Disable)
	dup.Input.Extensions = slices.Clone(c.Input.Extensions)
	dup.Input.MarkdownExtensions = slices.Clone(c.Input.MarkdownExtensions)
	dup.Ignore = slices.Clone(c.Ignore)
	return &dup
}
