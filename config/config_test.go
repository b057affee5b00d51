package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "dream.yaml", `
test: true
features:
  - json
  - async
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Test)
	assert.Equal(t, []string{"json", "async"}, cfg.Features)

	opts, err := cfg.Options(dir)
	require.NoError(t, err)
	assert.True(t, opts.TestMode())
	assert.Equal(t, []string{"async", "json"}, opts.Features())
}

func TestLoadJSON(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "dream.json", `{"test": false, "features": ["yaml"]}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	opts, err := cfg.Options(dir)
	require.NoError(t, err)
	assert.False(t, opts.TestMode())
	assert.True(t, opts.HasFeature("yaml"))
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, ErrNoConfig)
}

func TestLoadInvalid(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(writeFile(t, dir, "bad.json", `{"features": `))
	assert.Error(t, err)

	_, err = Load(writeFile(t, dir, "bad.yaml", "features: [a"))
	assert.Error(t, err)
}

func TestNilConfigOptions(t *testing.T) {
	var cfg *Config
	opts, err := cfg.Options("")
	require.NoError(t, err)
	assert.False(t, opts.TestMode())
	assert.Empty(t, opts.Features())
}

func TestManifestFeatures(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "package.json", `{
  "name": "demo",
  "features": {"default": ["json", "cli"], "extra": "async"}
}`)
	path := writeFile(t, dir, "dream.yaml", `
features: [local]
manifest:
  path: package.json
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	opts, err := cfg.Options(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"cli", "json", "local"}, opts.Features())

	names, err := ManifestFeatures(filepath.Join(dir, "package.json"), "features.extra")
	require.NoError(t, err)
	assert.Equal(t, []string{"async"}, names)

	names, err = ManifestFeatures(filepath.Join(dir, "package.json"), "features.missing")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestManifestFeaturesErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := ManifestFeatures(writeFile(t, dir, "broken.json", `{"features":`), "")
	assert.Error(t, err)

	_, err = ManifestFeatures(writeFile(t, dir, "numbers.json", `{"features": {"default": [1, 2]}}`), "")
	assert.Error(t, err)

	_, err = ManifestFeatures(writeFile(t, dir, "object.json", `{"features": {"default": {"a": 1}}}`), "")
	assert.Error(t, err)

	_, err = ManifestFeatures(filepath.Join(dir, "none.json"), "")
	assert.Error(t, err)
}
