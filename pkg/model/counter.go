package model

import "strings"

// CountCell is the number of comma separated gene identifiers in a cell.
// Empty cells are 0. Identifiers are not trimmed or deduplicated.
func CountCell(cell string) int {
	if cell == "" {
		return 0
	}
	return strings.Count(cell, ",") + 1
}

// Classify maps an absence count to its category. Core is checked first,
// so with a single genome every orthogroup is core.
func Classify(zeroCount, genomes int) Category {
	switch {
	case zeroCount == 0:
		return Core
	case zeroCount == genomes:
		return Cloud
	default:
		return Shell
	}
}

// CountGenes turns every cell into a gene count and derives the absence
// count, category and total of each orthogroup.
func CountGenes(table *OrthogroupTable) *GeneCounts {

	nGenomes := len(table.Genomes)
	gc := &GeneCounts{
		Genomes: table.Genomes,
		Rows:    make([]OrthogroupRow, 0, len(table.Rows)),
	}

	for _, raw := range table.Rows {
		row := OrthogroupRow{
			ID:     raw.ID,
			Counts: make([]int, nGenomes),
		}

		for i := 0; i < nGenomes; i++ {
			var cell string
			if i < len(raw.Cells) {
				cell = raw.Cells[i]
			}
			n := CountCell(cell)
			row.Counts[i] = n
			row.Total += n
			if n == 0 {
				row.ZeroCount++
			}
		}
		row.Category = Classify(row.ZeroCount, nGenomes)

		gc.Rows = append(gc.Rows, row)
	}

	return gc
}
