// Load an orthogroup presence table (OrthoFinder Orthogroups.tsv layout)

package model

import (
	"compress/gzip"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/yumyai/ogstat/internal/util"
	"github.com/yumyai/ogstat/logger"
)

const (
	IDColumn = "Orthogroup"

	// Rows whose identifier contains this are repeated headers, not data.
	headerArtifact = "Orthogroup"
)

// Defining possible error
var (
	ErrNotFound  = errors.New("input file not found")
	ErrEmpty     = errors.New("input file is empty")
	ErrMalformed = errors.New("input file cannot be parsed")
)

type LoadError struct {
	Path string
	Kind error // one of ErrNotFound, ErrEmpty, ErrMalformed
	Err  error // underlying cause, may be nil
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Path)
}

func (e *LoadError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

// Message is the sentence shown to a user of the command line tool.
func (e *LoadError) Message() string {
	switch e.Kind {
	case ErrNotFound:
		return fmt.Sprintf("Error: The file '%s' was not found.", e.Path)
	case ErrEmpty:
		return fmt.Sprintf("Error: The file '%s' is empty.", e.Path)
	default:
		return fmt.Sprintf("Error: There was an error parsing the file '%s'.", e.Path)
	}
}

func loadErr(path string, kind, cause error) *LoadError {
	return &LoadError{Path: path, Kind: kind, Err: cause}
}

// multiReadCloser closes the gzip stream and the file underneath it.
type multiReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiReadCloser) Close() error {
	var err error
	for _, c := range m.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

type gzipError struct{ err error }

func (e *gzipError) Error() string { return "gzip: " + e.err.Error() }
func (e *gzipError) Unwrap() error { return e.err }

// openInput detects gzip by magic number (1F 8B) or by .gz suffix.
func openInput(path string) (io.ReadCloser, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	var sig [2]byte
	n, _ := io.ReadFull(fh, sig[:])
	if _, err := fh.Seek(0, io.SeekStart); err != nil {
		_ = fh.Close()
		return nil, err
	}

	if (n == 2 && sig[0] == 0x1f && sig[1] == 0x8b) || (n > 0 && strings.HasSuffix(path, ".gz")) {
		gr, err := gzip.NewReader(fh)
		if err != nil {
			_ = fh.Close()
			return nil, &gzipError{err}
		}
		return &multiReadCloser{Reader: gr, closers: []io.Closer{gr, fh}}, nil
	}
	return fh, nil
}

// LoadOrthogroups reads a tab separated orthogroup table. The first column
// is the orthogroup identifier and is always kept as text; every other
// column is a genome holding comma separated gene identifiers.
//
// Errors are *LoadError and match ErrNotFound, ErrEmpty or ErrMalformed
// with errors.Is.
func LoadOrthogroups(path string) (*OrthogroupTable, error) {

	if !util.FileExists(path) {
		return nil, loadErr(path, ErrNotFound, nil)
	}

	rc, err := openInput(path)
	if err != nil {
		var gz *gzipError
		if errors.As(err, &gz) {
			return nil, loadErr(path, ErrMalformed, err)
		}
		return nil, loadErr(path, ErrNotFound, err)
	}
	defer rc.Close()

	table, err := ReadOrthogroups(rc)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = path
			return nil, le
		}
		return nil, loadErr(path, ErrMalformed, err)
	}

	logger.Info("Loaded orthogroups",
		zap.String("path", path),
		zap.Int("genomes", len(table.Genomes)),
		zap.Int("orthogroups", len(table.Rows)),
		zap.Int("skipped", table.Skipped))

	return table, nil
}

// ReadOrthogroups parses the table from r. Path in returned errors is empty.
func ReadOrthogroups(r io.Reader) (*OrthogroupTable, error) {

	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1 // short rows are padded below, like missing values

	header, err := reader.Read()
	if err == io.EOF {
		return nil, loadErr("", ErrEmpty, nil)
	}
	if err != nil {
		return nil, loadErr("", ErrMalformed, err)
	}

	genomes, err := parseHeader(header)
	if err != nil {
		return nil, loadErr("", ErrMalformed, err)
	}

	table := &OrthogroupTable{
		Genomes: genomes,
		Rows:    make([]RawOrthogroup, 0, 1024),
	}
	seen := make(map[string]struct{})

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, loadErr("", ErrMalformed, err)
		}

		if len(record) > len(header) {
			line, _ := reader.FieldPos(0)
			return nil, loadErr("", ErrMalformed,
				fmt.Errorf("line %d: expected %d fields, saw %d", line, len(header), len(record)))
		}

		id := record[0]
		if strings.Contains(id, headerArtifact) {
			table.Skipped++
			continue
		}

		if _, dup := seen[id]; dup {
			logger.Warn("Duplicated orthogroup identifier", zap.String("orthogroup", id))
		}
		seen[id] = struct{}{}

		cells := make([]string, len(genomes))
		copy(cells, record[1:])

		table.Rows = append(table.Rows, RawOrthogroup{ID: id, Cells: cells})
	}

	if len(table.Rows) == 0 {
		return nil, loadErr("", ErrEmpty, fmt.Errorf("no orthogroup rows (%d header rows skipped)", table.Skipped))
	}

	return table, nil
}

func parseHeader(header []string) ([]string, error) {
	// Strip a UTF-8 byte order mark some spreadsheet exports add.
	first := strings.TrimPrefix(header[0], "\ufeff")
	if first != IDColumn {
		return nil, fmt.Errorf("first column is %q, want %q", first, IDColumn)
	}
	if len(header) < 2 {
		return nil, errors.New("no genome columns")
	}

	genomes := make([]string, 0, len(header)-1)
	seen := make(map[string]struct{}, len(header)-1)
	for _, name := range header[1:] {
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("genome column %q appears twice", name)
		}
		seen[name] = struct{}{}
		genomes = append(genomes, name)
	}
	return genomes, nil
}
