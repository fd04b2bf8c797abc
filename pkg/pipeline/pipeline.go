// Package pipeline runs one classification pass: load, count, aggregate,
// print, write the tables and optionally record the run in SQLite.
package pipeline

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/yumyai/ogstat/internal/config"
	"github.com/yumyai/ogstat/logger"
	"github.com/yumyai/ogstat/pkg/db"
	"github.com/yumyai/ogstat/pkg/middle"
	"github.com/yumyai/ogstat/pkg/model"
	"github.com/yumyai/ogstat/pkg/render"
)

type Result struct {
	RunID  string
	Report *model.Report
	Files  []string // output tables written, in order
}

// Run executes the whole pipeline. A load error is returned before any
// output is printed or written; it is a *model.LoadError.
func Run(ctx context.Context, cfg *config.Config, stdout io.Writer) (*Result, error) {

	runID := middle.NewRunID()
	ctx = middle.WithRunID(ctx, runID)
	res := &Result{RunID: runID}

	var (
		table  *model.OrthogroupTable
		counts *model.GeneCounts
	)

	stages := []middle.NamedStage{
		{Name: "load", Run: func(ctx context.Context) (err error) {
			table, err = model.LoadOrthogroups(cfg.InputPath)
			return err
		}},
		{Name: "count", Run: func(ctx context.Context) error {
			counts = model.CountGenes(table)
			return nil
		}},
		{Name: "aggregate", Run: func(ctx context.Context) error {
			res.Report = model.BuildReport(table, counts)
			res.Report.RunID = runID
			res.Report.InputPath = cfg.InputPath
			return nil
		}},
		{Name: "report", Run: func(ctx context.Context) error {
			if cfg.Quiet || stdout == nil {
				return nil
			}
			return render.RenderReport(stdout, res.Report)
		}},
		{Name: "write", Run: func(ctx context.Context) (err error) {
			res.Files, err = db.WriteReport(cfg.OutDir, res.Report)
			return err
		}},
		{Name: "store", Run: func(ctx context.Context) error {
			if cfg.DBPath == "" {
				return nil
			}
			return saveRun(ctx, cfg.DBPath, res.Report)
		}},
	}

	logger.Info("Start run", zap.String("run_id", runID), zap.String("input", cfg.InputPath))

	if err := middle.Chain(ctx, logger.L(), stages); err != nil {
		return res, err
	}

	logger.Info("Run finished",
		zap.String("run_id", runID),
		zap.Int("orthogroups", len(res.Report.Counts.Rows)),
		zap.Int("files", len(res.Files)))

	return res, nil
}

func saveRun(ctx context.Context, path string, report *model.Report) error {
	rdb, err := db.OpenResultDB(ctx, path)
	if err != nil {
		return fmt.Errorf("open result database: %w", err)
	}
	defer rdb.Close()

	if err := rdb.SaveRun(ctx, report); err != nil {
		return fmt.Errorf("save run %s: %w", report.RunID, err)
	}
	logger.Info("Run stored", zap.String("db", path), zap.String("run_id", report.RunID))
	return nil
}
