package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountCell(t *testing.T) {
	tests := []struct {
		name string
		cell string
		want int
	}{
		{"Empty", "", 0},
		{"Single", "g1", 1},
		{"Several", "g1, g2, g3", 3},
		{"NoDedup", "g1,g1", 2},
		{"TrailingComma", "g1,", 2},
		{"Whitespace", " ", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CountCell(tt.cell))
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		zeroCount int
		genomes   int
		want      Category
	}{
		{"PresentEverywhere", 0, 5, Core},
		{"AbsentEverywhere", 5, 5, Cloud},
		{"AbsentSomewhere", 1, 5, Shell},
		{"PresentInOne", 4, 5, Shell},
		{"SingleGenomeIsCore", 0, 1, Core},
		{"SingleGenomeAbsent", 1, 1, Cloud},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.zeroCount, tt.genomes))
		})
	}
}

// Every category must be derivable from the absence count alone.
func TestClassifyExhaustive(t *testing.T) {
	for genomes := 1; genomes <= 8; genomes++ {
		for z := 0; z <= genomes; z++ {
			c := Classify(z, genomes)
			assert.Contains(t, Categories, c)
			assert.Equal(t, z == 0, c == Core, "genomes=%d zero=%d", genomes, z)
			assert.Equal(t, z == genomes && z != 0, c == Cloud, "genomes=%d zero=%d", genomes, z)
		}
	}
}

func scenarioTable() *OrthogroupTable {
	return &OrthogroupTable{
		Genomes: []string{"G1", "G2"},
		Rows: []RawOrthogroup{
			{ID: "OG1", Cells: []string{"a,b", "c"}},
			{ID: "OG2", Cells: []string{"", "d"}},
			{ID: "OG3", Cells: []string{"", ""}},
		},
	}
}

func TestCountGenes(t *testing.T) {
	gc := CountGenes(scenarioTable())

	require.Len(t, gc.Rows, 3)
	assert.Equal(t, []string{"G1", "G2"}, gc.Genomes)

	want := []OrthogroupRow{
		{ID: "OG1", Counts: []int{2, 1}, ZeroCount: 0, Category: Core, Total: 3},
		{ID: "OG2", Counts: []int{0, 1}, ZeroCount: 1, Category: Shell, Total: 1},
		{ID: "OG3", Counts: []int{0, 0}, ZeroCount: 2, Category: Cloud, Total: 0},
	}
	assert.Equal(t, want, gc.Rows)
}

func TestCountGenesShortCells(t *testing.T) {
	table := &OrthogroupTable{
		Genomes: []string{"G1", "G2", "G3"},
		Rows:    []RawOrthogroup{{ID: "OG1", Cells: []string{"a"}}},
	}

	gc := CountGenes(table)

	assert.Equal(t, []int{1, 0, 0}, gc.Rows[0].Counts)
	assert.Equal(t, 2, gc.Rows[0].ZeroCount)
	assert.Equal(t, Shell, gc.Rows[0].Category)
}
