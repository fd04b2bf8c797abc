package db

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/yumyai/ogstat/pkg/model"
)

var ErrBadGeneCounts = errors.New("not a Gene_Counts table")

// ReadGeneCountsFile reads a Gene_Counts.csv written by WriteReport.
func ReadGeneCountsFile(path string) (*model.GeneCounts, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	gc, err := ReadGeneCounts(fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return gc, nil
}

// ReadGeneCounts parses a Gene_Counts table. The stored category is kept
// as is, not recomputed.
func ReadGeneCounts(r io.Reader) (*model.GeneCounts, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadGeneCounts, err)
	}

	n := len(header)
	if n < 5 || header[0] != model.IDColumn ||
		header[n-3] != colZeroCount || header[n-2] != colCategory || header[n-1] != colTotal {
		return nil, fmt.Errorf("%w: unexpected header %v", ErrBadGeneCounts, header)
	}

	nGenomes := n - 4
	gc := &model.GeneCounts{
		Genomes: append([]string(nil), header[1:1+nGenomes]...),
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadGeneCounts, err)
		}

		row := model.OrthogroupRow{
			ID:       record[0],
			Counts:   make([]int, nGenomes),
			Category: model.Category(record[n-2]),
		}
		for i := 0; i < nGenomes; i++ {
			if row.Counts[i], err = strconv.Atoi(record[i+1]); err != nil {
				return nil, fmt.Errorf("%w: orthogroup %s: %v", ErrBadGeneCounts, row.ID, err)
			}
		}
		if row.ZeroCount, err = strconv.Atoi(record[n-3]); err != nil {
			return nil, fmt.Errorf("%w: orthogroup %s: %v", ErrBadGeneCounts, row.ID, err)
		}
		if row.Total, err = strconv.Atoi(record[n-1]); err != nil {
			return nil, fmt.Errorf("%w: orthogroup %s: %v", ErrBadGeneCounts, row.ID, err)
		}

		gc.Rows = append(gc.Rows, row)
	}

	return gc, nil
}
