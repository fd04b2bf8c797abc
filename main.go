package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yumyai/ogstat/internal/config"
	"github.com/yumyai/ogstat/logger"
	"github.com/yumyai/ogstat/pkg/model"
	"github.com/yumyai/ogstat/pkg/pipeline"
)

const VERSION = "0.1.0"

func main() {
	os.Exit(execute(os.Args[1:]))
}

func execute(args []string) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)

	err := cmd.Execute()
	defer logger.Sync() // Make sure that the buffered is flushed.

	if err == nil {
		return 0
	}

	var le *model.LoadError
	if errors.As(err, &le) {
		fmt.Fprintln(cmd.OutOrStdout(), le.Message())
		logger.Debug("Load failed", zap.Error(err))
		return 1
	}

	fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
	return 1
}

func newRootCmd() *cobra.Command {
	cfg := config.Default()

	cmd := &cobra.Command{
		Use:   "ogstat",
		Short: "Classify orthogroups into core, shell and cloud",
		Long: `ogstat reads an orthogroup table (Orthogroups.complete.tsv by default),
counts the genes of every orthogroup in every genome and classifies each
orthogroup as core (present in all genomes), cloud (absent from all genome
columns) or shell (anything in between).

It prints the tables and writes Gene_Counts.csv, Summary.csv,
Percentage_Summary.csv, Zero_Count_Summary.csv and
Category_Percentage_Summary.csv.

Settings can also come from a .env file or OGSTAT_INPUT, OGSTAT_OUTDIR,
OGSTAT_DB and OGSTAT_LOG_LEVEL.`,
		Version:       VERSION,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			env := config.Load()
			mergeFlags(cmd, cfg, env)

			level, err := logger.ParseLevel(cfg.LogLevel)
			if err != nil {
				return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
			}
			if err := logger.InitLogger(level); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			logger.Debug("Start:", zap.String("Version", VERSION))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := pipeline.Run(context.Background(), cfg, cmd.OutOrStdout())
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&cfg.InputPath, "input", "i", cfg.InputPath, "orthogroup table (tab separated, may be gzipped)")
	flags.StringVarP(&cfg.OutDir, "outdir", "o", cfg.OutDir, "directory for the output tables")
	flags.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite database to record the run in (disabled when empty)")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	flags.BoolVarP(&cfg.Quiet, "quiet", "q", cfg.Quiet, "do not print the tables")

	return cmd
}

// mergeFlags keeps explicitly set flags and takes everything else from env.
func mergeFlags(cmd *cobra.Command, cfg, env *config.Config) {
	flags := cmd.Flags()
	if !flags.Changed("input") {
		cfg.InputPath = env.InputPath
	}
	if !flags.Changed("outdir") {
		cfg.OutDir = env.OutDir
	}
	if !flags.Changed("db") {
		cfg.DBPath = env.DBPath
	}
	if !flags.Changed("log-level") {
		cfg.LogLevel = env.LogLevel
	}
}
