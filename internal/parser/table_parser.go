package parser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"gonum.org/v1/gonum/mat"
)

const commentPrefix = "#"

var errNoRows = errors.New("no numeric rows found")

// isFieldSeparator accepts whitespace, comma and semicolon delimited tables.
func isFieldSeparator(r rune) bool {
	return unicode.IsSpace(r) || r == ',' || r == ';'
}

// ParseTable reads a plain-text numeric table from disk.
func ParseTable(path string) (*DataFile, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &DataFormatError{Path: path, Err: fmt.Errorf("failed to open file: %w", err)}
	}
	defer file.Close()

	return ParseTableReader(path, file)
}

// ParseTableReader parses a numeric table from r. Blank lines and lines
// starting with '#' are skipped. Every data row must carry the same number of
// fields as the first one.
func ParseTableReader(path string, r io.Reader) (*DataFile, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var values []float64
	cols := 0
	rows := 0
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, commentPrefix) {
			continue
		}
		fields := strings.FieldsFunc(line, isFieldSeparator)
		if len(fields) == 0 {
			continue
		}
		if cols == 0 {
			cols = len(fields)
		} else if len(fields) != cols {
			return nil, &DataFormatError{
				Path: path,
				Line: lineNo,
				Err:  fmt.Errorf("expected %d fields, found %d", cols, len(fields)),
			}
		}
		for _, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, &DataFormatError{Path: path, Line: lineNo, Err: fmt.Errorf("invalid number %q", field)}
			}
			values = append(values, v)
		}
		rows++
	}
	if err := scanner.Err(); err != nil {
		return nil, &DataFormatError{Path: path, Line: lineNo, Err: err}
	}
	if rows == 0 {
		return nil, &DataFormatError{Path: path, Err: errNoRows}
	}

	return &DataFile{Path: path, Table: mat.NewDense(rows, cols, values)}, nil
}

// LoadDataset parses every path and checks that the tables agree in shape.
// A failure leaves nothing behind: the caller keeps whatever Dataset it had.
func LoadDataset(paths []string, opts LoadOptions) (*Dataset, error) {
	if len(paths) == 0 {
		return nil, ErrNothingToLoad
	}

	ds := NewDataset()
	var first *DataFile
	for _, path := range paths {
		if _, seen := ds.Files[path]; seen {
			continue
		}
		f, err := ParseTable(path)
		if err != nil {
			return nil, err
		}
		if first == nil {
			first = f
		} else if err := checkShape(first, f, opts); err != nil {
			return nil, err
		}
		ds.add(f)
	}
	return ds, nil
}

func checkShape(ref, f *DataFile, opts LoadOptions) error {
	if f.Cols() != ref.Cols() {
		return &DatasetShapeError{Path: f.Path, Reference: ref.Path, Dimension: "columns", Want: ref.Cols(), Got: f.Cols()}
	}
	if !opts.AllowRaggedRows && f.Rows() != ref.Rows() {
		return &DatasetShapeError{Path: f.Path, Reference: ref.Path, Dimension: "rows", Want: ref.Rows(), Got: f.Rows()}
	}
	return nil
}
