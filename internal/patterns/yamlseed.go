package patterns

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// YAMLSource adapts a flat YAML pattern seed file to the Source
// interface Loader expects, so a hot-reload tick simply re-reads the file
// from disk.
type YAMLSource struct {
	Path string
}

// LoadAll implements Source.
func (y YAMLSource) LoadAll(_ context.Context) (*MemoryLibrary, error) {
	return LoadYAMLFile(y.Path)
}

// yamlPattern mirrors Pattern's on-disk shape; Pattern itself carries an
// unexported compiled field that yaml.v3 would otherwise need a custom
// marshaler for.
type yamlPattern struct {
	Kind       string   `yaml:"kind"`
	Term       string   `yaml:"term"`
	Aliases    []string `yaml:"aliases"`
	Regex      string   `yaml:"regex"`
	Priority   int      `yaml:"priority"`
	FormatType string   `yaml:"format_type"`
	Active     bool     `yaml:"active"`
}

type yamlFile struct {
	Patterns []yamlPattern `yaml:"patterns"`
}

// LoadYAMLFile reads a flat YAML pattern seed file (the backend selected by
// PatternStoreConfig.Driver="yaml") and returns a validated, ready-to-serve
// Library.
func LoadYAMLFile(path string) (*MemoryLibrary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pattern seed %s: %w", path, err)
	}
	return LoadYAML(data)
}

// LoadYAML parses raw YAML pattern-seed bytes into a validated Library.
func LoadYAML(data []byte) (*MemoryLibrary, error) {
	var file yamlFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse pattern seed: %w", err)
	}

	raw := make([]Pattern, len(file.Patterns))
	for i, p := range file.Patterns {
		raw[i] = Pattern{
			Kind:       Kind(p.Kind),
			Term:       p.Term,
			Aliases:    p.Aliases,
			Regex:      p.Regex,
			Priority:   p.Priority,
			FormatType: FormatType(p.FormatType),
			Active:     p.Active,
		}
	}
	return NewMemoryLibrary(raw)
}
