package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{EnvInput, EnvOutDir, EnvDB, EnvLogLevel} {
		t.Setenv(k, "")
	}
}

func TestDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load(filepath.Join(t.TempDir(), "no.env"))

	assert.Equal(t, "Orthogroups.complete.tsv", cfg.InputPath)
	assert.Equal(t, ".", cfg.OutDir)
	assert.Empty(t, cfg.DBPath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.Quiet)
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvInput, "/data/og.tsv.gz")
	t.Setenv(EnvOutDir, "/tmp/out")
	t.Setenv(EnvDB, "/tmp/runs.db")
	t.Setenv(EnvLogLevel, "debug")

	cfg := Default()
	cfg.applyEnvOverrides()

	assert.Equal(t, "/data/og.tsv.gz", cfg.InputPath)
	assert.Equal(t, "/tmp/out", cfg.OutDir)
	assert.Equal(t, "/tmp/runs.db", cfg.DBPath)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestDotEnvFile(t *testing.T) {
	clearEnv(t)
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("OGSTAT_OUTDIR=results\n"), 0o644))

	// godotenv.Load only sets variables that are not already present
	require.NoError(t, os.Unsetenv(EnvOutDir))

	cfg := Load(envFile)
	t.Cleanup(func() { os.Unsetenv(EnvOutDir) })

	assert.Equal(t, "results", cfg.OutDir)
	assert.Equal(t, DefaultInput, cfg.InputPath)
}
