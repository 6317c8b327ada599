package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wbarnes/lineshell/internal/config"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, "auto", cfg.Theme)
	assert.Equal(t, 1000, cfg.HistorySize)
	assert.Empty(t, cfg.HistoryFile)
}

func TestConfigPath(t *testing.T) {
	path, err := config.ConfigPath()
	assert.NoError(t, err)
	assert.Contains(t, path, ".lineshell/config.yaml")
}

func TestHistoryPath_DefaultsUnderConfigDir(t *testing.T) {
	path, err := config.HistoryPath(config.Default())
	require.NoError(t, err)
	assert.Contains(t, path, ".lineshell")
	assert.Equal(t, "history", filepath.Base(path))
}

func TestHistoryPath_HonorsOverride(t *testing.T) {
	cfg := &config.Config{HistoryFile: "/tmp/custom-history"}
	path, err := config.HistoryPath(cfg)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom-history", path)
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg := &config.Config{Theme: "dark", HistorySize: 500, HistoryFile: "/tmp/x"}
	require.NoError(t, config.Save(cfg))

	loaded, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	path, err := config.ConfigPath()
	require.NoError(t, err)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}
