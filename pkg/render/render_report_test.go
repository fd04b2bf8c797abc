package render

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yumyai/ogstat/pkg/model"
)

func buildReport(table *model.OrthogroupTable) *model.Report {
	return model.BuildReport(table, model.CountGenes(table))
}

func TestRenderReport(t *testing.T) {
	report := buildReport(&model.OrthogroupTable{
		Genomes: []string{"G1", "G2"},
		Rows: []model.RawOrthogroup{
			{ID: "OG1", Cells: []string{"a,b", "c"}},
			{ID: "OG2", Cells: []string{"", "d"}},
			{ID: "OG3", Cells: []string{"", ""}},
		},
	})

	var buf bytes.Buffer
	require.NoError(t, RenderReport(&buf, report))
	out := buf.String()

	titles := []string{
		"Orthogroups Data:",
		"Gene Counts with Zero Count, Category, and Total:",
		"Summary with Totals:",
		"Percentage Summary:",
		"Zero Count Summary:",
		"Category Percentage:",
	}
	last := -1
	for _, title := range titles {
		idx := strings.Index(out, title)
		require.GreaterOrEqual(t, idx, 0, title)
		assert.Greater(t, idx, last, "%q out of order", title)
		last = idx
	}

	assert.Contains(t, out, "75.00")
	assert.Contains(t, out, "25.00")
	assert.Regexp(t, `OG1\s+2\s+1\s+0\s+core\s+3`, out)
}

func TestRenderNotComputable(t *testing.T) {
	report := buildReport(&model.OrthogroupTable{
		Genomes: []string{"G1"},
		Rows:    []model.RawOrthogroup{{ID: "OG1", Cells: []string{""}}},
	})

	var buf bytes.Buffer
	require.NoError(t, WriteTables(&buf, PercentageTable(report.Percentage)))

	assert.Regexp(t, `core\s+NA`, buf.String())
	assert.NotContains(t, buf.String(), "NaN")
}

func TestLongTablesAreElided(t *testing.T) {
	table := &model.OrthogroupTable{Genomes: []string{"G1"}}
	for i := 0; i < 100; i++ {
		table.Rows = append(table.Rows, model.RawOrthogroup{
			ID:    fmt.Sprintf("OG%07d", i),
			Cells: []string{"g"},
		})
	}

	var buf bytes.Buffer
	require.NoError(t, WriteTables(&buf, GeneCountsTable(model.CountGenes(table))))
	out := buf.String()

	assert.Contains(t, out, "OG0000000")
	assert.Contains(t, out, "OG0000099")
	assert.NotContains(t, out, "OG0000050")
	assert.Contains(t, out, "...")
	assert.Contains(t, out, "[100 rows x 5 columns]")
}

func TestPreviewTable(t *testing.T) {
	table := &model.OrthogroupTable{Genomes: []string{"G1", "G2"}}
	for i := 0; i < 8; i++ {
		table.Rows = append(table.Rows, model.RawOrthogroup{
			ID:    fmt.Sprintf("OG%d", i),
			Cells: []string{"a", ""},
		})
	}

	preview := PreviewTable(table)

	assert.Len(t, preview.Rows, 5)
	assert.Equal(t, []string{"OG0", "a", "NA"}, preview.Rows[0])
	assert.Equal(t, "(5 of 8 orthogroups)", preview.Note)
}
