package report

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/user/slice_analyzer_go/internal/analysis"
	"github.com/user/slice_analyzer_go/internal/parser"
)

// ErrEmptySlice is returned when there is nothing to export or draw.
var ErrEmptySlice = errors.New("report: slice has no points")

// numberFormat matches numpy.savetxt's default so exports stay comparable
// with files written by the earlier tooling.
const numberFormat = "%.18e"

// Pair is one row of an exported slice.
type Pair struct {
	X float64
	Y float64
}

// ExportFileName names the export after the reference readout and the
// 1-based slice index.
func ExportFileName(res *analysis.SliceResult) string {
	return fmt.Sprintf("slice at wavelength %.2fnm (%d point).txt", res.Reference, res.Index)
}

// WriteSlice writes res as two space separated columns, energy then value,
// in result order.
func WriteSlice(w io.Writer, res *analysis.SliceResult) error {
	bw := bufio.NewWriter(w)
	for _, p := range res.Points {
		if _, err := fmt.Fprintf(bw, numberFormat+" "+numberFormat+"\n", p.Energy, p.Value); err != nil {
			return fmt.Errorf("failed to write slice row: %w", err)
		}
	}
	return bw.Flush()
}

// ExportSlice writes res into dir under ExportFileName and returns the path.
func ExportSlice(dir string, res *analysis.SliceResult) (string, error) {
	if res.Empty() {
		return "", ErrEmptySlice
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}
	path := filepath.Join(dir, ExportFileName(res))
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create export file: %w", err)
	}
	if err := WriteSlice(file, res); err != nil {
		file.Close()
		return "", err
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("failed to close export file: %w", err)
	}
	return path, nil
}

// ReadSlice loads an exported slice back into (energy, value) pairs.
func ReadSlice(path string) ([]Pair, error) {
	f, err := parser.ParseTable(path)
	if err != nil {
		return nil, err
	}
	if f.Cols() != 2 {
		return nil, &parser.DataFormatError{Path: path, Err: fmt.Errorf("expected 2 columns, found %d", f.Cols())}
	}
	pairs := make([]Pair, f.Rows())
	for i := range pairs {
		pairs[i] = Pair{X: f.Table.At(i, 0), Y: f.Table.At(i, 1)}
	}
	return pairs, nil
}
