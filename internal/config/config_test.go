package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
jobs = 4

[validate]
reserved_names = true

[generate]
out_dir = "gen"
`)

	cfg, err := Load(path, true)
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Jobs)
	assert.True(t, cfg.Validate.ReservedNames)
	assert.Equal(t, "gen", cfg.Generate.OutDir)

	// Untouched keys keep their defaults
	assert.Equal(t, "ts", cfg.Generate.Target)
	assert.Equal(t, Default().Generate.Header, cfg.Generate.Header)
}

func TestLoadMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)

	cfg, err := Load(path, false)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	_, err = Load(path, true)
	assert.Error(t, err)
}

func TestLoadUnknownKeys(t *testing.T) {
	path := writeConfig(t, "[generate]\nlanguage = \"go\"\n")

	_, err := Load(path, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown keys: generate.language")
}

func TestLoadInvalid(t *testing.T) {
	_, err := Load(writeConfig(t, "jobs = -1"), true)
	assert.ErrorContains(t, err, "jobs must not be negative")

	_, err = Load(writeConfig(t, "jobs = "), true)
	assert.ErrorContains(t, err, "failed to parse TOML")
}
