package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nadirahdurr/route-planner/internal/config"
)

func TestLoadMissingPathReturnsDefault(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadEmptyPathReturnsDefault(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadOverlaysYAMLOntoDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("exportRoot: /tmp/out\nmaxCandidates: 2\nlog:\n  pretty: true\n  level: debug\n"), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/out", cfg.ExportRoot)
	assert.Equal(t, 2, cfg.MaxCandidates)
	assert.True(t, cfg.Log.Pretty)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 720, cfg.DefaultTTLHours)
}

func TestLoadParsesProfileWeightOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yamlBody := "profileWeights:\n  trail_pref:\n    slope: 0.1\n    terrain: 0.7\n"
	require.NoError(t, os.WriteFile(path, []byte(yamlBody), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Contains(t, cfg.ProfileWeights, "trail_pref")
	assert.Equal(t, 0.1, cfg.ProfileWeights["trail_pref"]["slope"])
	assert.Equal(t, 0.7, cfg.ProfileWeights["trail_pref"]["terrain"])
}
