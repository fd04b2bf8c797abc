package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/yumyai/ogstat/logger"
	"github.com/yumyai/ogstat/pkg/model"

	_ "modernc.org/sqlite"
)

var ErrRunNotFound = errors.New("run not found")

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id       TEXT PRIMARY KEY,
	input_path   TEXT NOT NULL,
	genomes      TEXT NOT NULL,
	orthogroups  INTEGER NOT NULL,
	skipped      INTEGER NOT NULL,
	created_at   TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS category_summary (
	run_id    TEXT NOT NULL REFERENCES runs(run_id),
	category  TEXT NOT NULL,
	total     INTEGER NOT NULL,
	percent   REAL,
	PRIMARY KEY (run_id, category)
);
CREATE TABLE IF NOT EXISTS zero_count_summary (
	run_id      TEXT NOT NULL REFERENCES runs(run_id),
	zero_count  INTEGER NOT NULL,
	total       INTEGER NOT NULL,
	category    TEXT NOT NULL,
	PRIMARY KEY (run_id, zero_count)
);
CREATE TABLE IF NOT EXISTS category_percentage (
	run_id    TEXT NOT NULL REFERENCES runs(run_id),
	category  TEXT NOT NULL,
	genome    TEXT NOT NULL,
	percent   REAL,
	PRIMARY KEY (run_id, category, genome)
);
`

// ResultDB keeps the summaries of every run in one SQLite file.
type ResultDB struct {
	db *sql.DB
}

func OpenResultDB(ctx context.Context, path string) (*ResultDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema in %s: %w", path, err)
	}

	return &ResultDB{db: db}, nil
}

func (r *ResultDB) Close() error {
	return r.db.Close()
}

// NULL for percentages that are not computable
func nullPercent(p model.Percent) sql.NullFloat64 {
	return sql.NullFloat64{Float64: float64(p), Valid: p.Valid()}
}

// SaveRun stores every summary table of report under report.RunID.
func (r *ResultDB) SaveRun(ctx context.Context, report *model.Report) error {

	skipped := 0
	if report.Input != nil {
		skipped = report.Input.Skipped
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (run_id, input_path, genomes, orthogroups, skipped, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		report.RunID, report.InputPath, strings.Join(report.Counts.Genomes, ","),
		len(report.Counts.Rows), skipped, time.Now().UTC().Format(time.RFC3339),
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	catStm, err := tx.PrepareContext(ctx, `INSERT INTO category_summary (run_id, category, total, percent) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer catStm.Close()

	for i, s := range report.Summary {
		pct := sql.NullFloat64{}
		if i < len(report.Percentage) {
			pct = nullPercent(report.Percentage[i].Percent)
		}
		if _, err := catStm.ExecContext(ctx, report.RunID, string(s.Category), s.Total, pct); err != nil {
			return fmt.Errorf("insert category summary: %w", err)
		}
	}

	zeroStm, err := tx.PrepareContext(ctx, `INSERT INTO zero_count_summary (run_id, zero_count, total, category) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer zeroStm.Close()

	for _, a := range report.Absence {
		if _, err := zeroStm.ExecContext(ctx, report.RunID, a.ZeroCount, a.Total, string(a.Category)); err != nil {
			return fmt.Errorf("insert zero count summary: %w", err)
		}
	}

	pctStm, err := tx.PrepareContext(ctx, `INSERT INTO category_percentage (run_id, category, genome, percent) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer pctStm.Close()

	for _, row := range report.PerGenome {
		for g, p := range row.Percents {
			if _, err := pctStm.ExecContext(ctx, report.RunID, string(row.Category), report.Counts.Genomes[g], nullPercent(p)); err != nil {
				return fmt.Errorf("insert category percentage: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	logger.Debug("Saved run", zap.String("run_id", report.RunID))
	return nil
}

// LoadRunSummary returns the category totals stored for runID, in the
// usual core, shell, cloud order.
func (r *ResultDB) LoadRunSummary(ctx context.Context, runID string) ([]model.CategorySummary, error) {

	stm, err := r.db.PrepareContext(ctx, `SELECT category, total FROM category_summary WHERE run_id == ?`)
	if err != nil {
		return nil, err
	}
	defer stm.Close()

	rows, err := stm.QueryContext(ctx, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := make(map[model.Category]int)
	for rows.Next() {
		var cat string
		var total int
		if err := rows.Scan(&cat, &total); err != nil {
			return nil, err
		}
		totals[model.Category(cat)] = total
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(totals) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}

	summary := make([]model.CategorySummary, 0, len(model.Categories))
	for _, cat := range model.Categories {
		summary = append(summary, model.CategorySummary{Category: cat, Total: totals[cat]})
	}
	return summary, nil
}

// LoadCategoryPercentages returns the per genome percentages of runID.
// Not computable values come back as NaN.
func (r *ResultDB) LoadCategoryPercentages(ctx context.Context, runID string) (map[model.Category]map[string]model.Percent, error) {

	rows, err := r.db.QueryContext(ctx,
		`SELECT category, genome, percent FROM category_percentage WHERE run_id == ?`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[model.Category]map[string]model.Percent)
	for rows.Next() {
		var cat, genome string
		var pct sql.NullFloat64
		if err := rows.Scan(&cat, &genome, &pct); err != nil {
			return nil, err
		}
		if out[model.Category(cat)] == nil {
			out[model.Category(cat)] = make(map[string]model.Percent)
		}
		if pct.Valid {
			out[model.Category(cat)][genome] = model.Percent(pct.Float64)
		} else {
			out[model.Category(cat)][genome] = model.NotComputable()
		}
	}
	return out, rows.Err()
}
