// Runtime configuration: defaults, then .env, then environment, then flags.

package config

import (
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/yumyai/ogstat/logger"
)

const (
	DefaultInput  = "Orthogroups.complete.tsv"
	DefaultOutDir = "."

	EnvInput    = "OGSTAT_INPUT"
	EnvOutDir   = "OGSTAT_OUTDIR"
	EnvDB       = "OGSTAT_DB"
	EnvLogLevel = "OGSTAT_LOG_LEVEL"
)

type Config struct {
	InputPath string
	OutDir    string
	DBPath    string // empty disables the result store
	LogLevel  string
	Quiet     bool // skip printing tables to stdout
}

func Default() *Config {
	return &Config{
		InputPath: DefaultInput,
		OutDir:    DefaultOutDir,
		LogLevel:  "info",
	}
}

// Load reads an optional .env file and applies environment overrides on
// top of the defaults. A missing .env is not an error.
func Load(envFiles ...string) *Config {
	cfg := Default()

	if err := godotenv.Load(envFiles...); err != nil {
		logger.Debug("No .env found, using local environment", zap.Error(err))
	}

	cfg.applyEnvOverrides()
	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(EnvInput); v != "" {
		c.InputPath = v
	}
	if v := os.Getenv(EnvOutDir); v != "" {
		c.OutDir = v
	}
	if v := os.Getenv(EnvDB); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
}
