package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/rematch/meta"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	config, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, meta.DefaultConfig(), config)

	path := writeFile(t, "rematch.yaml", "enable_bitnfa: false\nmin_literal_len: 3\n")
	config, err = loadConfig(path)
	require.NoError(t, err)
	assert.False(t, config.EnableBitNFA)
	assert.Equal(t, 3, config.MinLiteralLen)
	assert.True(t, config.EnablePrefilter, "unset keys keep defaults")
	assert.Equal(t, meta.DefaultConfig().MaxUnrollPositions, config.MaxUnrollPositions)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = loadConfig(writeFile(t, "bad.yaml", "min_literal_len: [1, 2]\n"))
	assert.ErrorContains(t, err, "parsing config")

	_, err = loadConfig(writeFile(t, "invalid.yaml", "max_unroll_positions: 0\n"))
	var cfgErr *meta.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "MaxUnrollPositions", cfgErr.Field)
}
