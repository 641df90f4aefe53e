package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := Default()

	require.NoError(t, Validate(cfg))
	assert.Equal(t, "turf-engine", cfg.App.Name)
	assert.Equal(t, "TURF_ENGINE_LITE_AU", cfg.Engine.EngineSpecID)
	assert.Equal(t, "0.2.1p2", cfg.Engine.EngineVersion)
	assert.InDelta(t, 0.12, cfg.Overlay.Tau, 1e-12)
	assert.Equal(t, "flat", cfg.Simulation.Policy)
	assert.Equal(t, 2000, cfg.Simulation.Iters)
	assert.Equal(t, int64(42), cfg.Simulation.Seed)
	assert.InDelta(t, 1000.0, cfg.Simulation.BankrollStart, 1e-12)
	assert.True(t, cfg.Simulation.RequirePositiveEV)
	assert.False(t, cfg.Metrics.Enabled)

	// insight feature options all default off
	assert.False(t, cfg.Overlay.EnableEVBands)
	assert.False(t, cfg.Overlay.EnableRaceSummary)
	assert.False(t, cfg.Overlay.EnableRunnerNarratives)
	assert.False(t, cfg.Overlay.EnableRunnerFitness)
	assert.False(t, cfg.Overlay.EnableRunnerRisk)
	assert.False(t, cfg.Overlay.EnableTrapRace)
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfigFile(t, `
app:
  name: turf-engine
  environment: production
  log_level: debug
simulation:
  policy: fractional_kelly
  iters: 500
  seed: 7
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.App.Environment)
	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.Equal(t, "fractional_kelly", cfg.Simulation.Policy)
	assert.Equal(t, 500, cfg.Simulation.Iters)
	assert.Equal(t, int64(7), cfg.Simulation.Seed)
	// untouched keys keep their defaults
	assert.InDelta(t, 0.05, cfg.Simulation.MaxStakeFrac, 1e-12)
}

func TestLoadExpandsEnvironmentVariables(t *testing.T) {
	t.Setenv("TEST_TURF_LOG_LEVEL", "warn")
	path := writeConfigFile(t, `
app:
  log_level: ${TEST_TURF_LOG_LEVEL}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.App.LogLevel)
}

func TestLoadRejectsInvalidPolicy(t *testing.T) {
	path := writeConfigFile(t, `
simulation:
  policy: martingale
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stakepolicy")
}

func TestLoadRejectsInvalidEnvironment(t *testing.T) {
	path := writeConfigFile(t, `
app:
  environment: sandbox
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "environment")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
