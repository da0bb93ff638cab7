package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "projmeta.manifest.yaml", cfg.Manifest)
	assert.Equal(t, FormatTable, cfg.Format)
	assert.False(t, cfg.IgnoreCase)
	assert.False(t, cfg.Strict)
	assert.Equal(t, ".", cfg.Gen.OutputDir)
	assert.Equal(t, "projmeta_gen.go", cfg.Gen.Filename)
}

func TestLoad_FileEnvAndFlags(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "projmeta.yaml"), []byte(`
manifest: model/shop.yaml
format: JSON
strict: true
gen:
  package: metadata
`), 0o644))

	t.Setenv("PROJMETA_IGNORE_CASE", "true")

	cfg, err := Load("", func(v *viper.Viper) error {
		v.Set("strict", false)
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, "model/shop.yaml", cfg.Manifest)
	assert.Equal(t, FormatJSON, cfg.Format)
	assert.True(t, cfg.IgnoreCase)
	assert.False(t, cfg.Strict, "flags override the file")
	assert.Equal(t, "metadata", cfg.Gen.Package)
}

func TestLoad_ExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("format: yaml\n"), 0o644))

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, cfg.Format)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_InvalidFormat(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PROJMETA_FORMAT", "xml")

	_, err := Load("", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "format must be one of")
}
