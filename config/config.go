// Package config resolves the compile options used for conditional
// compilation from config files, package manifests and CLI flags.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// DefaultManifestQuery is the gjson path used to read features from a manifest.
const DefaultManifestQuery = "features.default"

// ErrNoConfig is returned by Load when the config file does not exist.
var ErrNoConfig = errors.New("config file not found")

// Config is the on-disk form of the compile options.
type Config struct {
	Test     bool           `yaml:"test" json:"test"`
	Features []string       `yaml:"features" json:"features"`
	Manifest manifestConfig `yaml:"manifest" json:"manifest"`
}

type manifestConfig struct {
	Path  string `yaml:"path" json:"path"`
	Query string `yaml:"query" json:"query"`
}

// Load reads a YAML or JSON config file, chosen by extension.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNoConfig, path)
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := &Config{}
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config json: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config yaml: %w", err)
		}
	}
	return cfg, nil
}

// Options builds the compile options described by c. A relative manifest
// path is resolved against baseDir.
func (c *Config) Options(baseDir string) (CompileOptions, error) {
	if c == nil {
		return New(), nil
	}

	names := append([]string(nil), c.Features...)
	if c.Manifest.Path != "" {
		manifestPath := c.Manifest.Path
		if !filepath.IsAbs(manifestPath) {
			manifestPath = filepath.Join(baseDir, manifestPath)
		}
		fromManifest, err := ManifestFeatures(manifestPath, c.Manifest.Query)
		if err != nil {
			return CompileOptions{}, fmt.Errorf("manifest: %w", err)
		}
		names = append(names, fromManifest...)
	}

	opts := WithFeatures(names...)
	return opts.SetTestMode(c.Test), nil
}

// ManifestFeatures reads the feature names found at query in a JSON manifest.
// The query result may be a single string or an array of strings.
func ManifestFeatures(path, query string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("manifest %s is not valid json", path)
	}
	if query == "" {
		query = DefaultManifestQuery
	}

	result := gjson.GetBytes(data, query)
	if !result.Exists() {
		return nil, nil
	}

	var names []string
	if result.IsArray() {
		for _, v := range result.Array() {
			if v.Type != gjson.String {
				return nil, fmt.Errorf("manifest %s: %s contains non-string value %s", path, query, v.Raw)
			}
			names = append(names, v.String())
		}
		return names, nil
	}
	if result.Type != gjson.String {
		return nil, fmt.Errorf("manifest %s: %s is not a string or array of strings", path, query)
	}
	return []string{result.String()}, nil
}
