package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, ":8000", cfg.Addr)
	assert.Equal(t, "ipa", cfg.Dict)
	assert.NotEmpty(t, cfg.AllowedOrigins)
	assert.Positive(t, cfg.BatchLimit)
	assert.Positive(t, cfg.BatchWorkers)
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "furigana.yaml")
	data := []byte("addr: \":9090\"\ndict: uni\nbatch_limit: 8\nallowed_origins:\n  - \"*\"\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "uni", cfg.Dict)
	assert.Equal(t, 8, cfg.BatchLimit)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	// untouched keys keep their defaults
	assert.Equal(t, Default().BatchWorkers, cfg.BatchWorkers)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "furigana.yaml")
	require.NoError(t, os.WriteFile(path, []byte("addr: ["), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("CONVOLAB_ADDR", ":7777")
	t.Setenv("CONVOLAB_DICT", "uni")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, ":7777", cfg.Addr)
	assert.Equal(t, "uni", cfg.Dict)
}
