package analysis

import (
	"errors"
	"fmt"

	"github.com/user/slice_analyzer_go/internal/matcher"
	"github.com/user/slice_analyzer_go/internal/parser"
)

// ExtractSlice reads 1-based row index from every file of params and pairs
// the value column with the energy derived from the file's parameter.
//
// Structural problems (index or columns out of range, unknown reference
// file) fail the whole call. A zero parameter only drops that file's point.
func ExtractSlice(ds *parser.Dataset, params *matcher.ParameterMap, index int, opts SliceOptions) (*SliceResult, error) {
	if ds == nil || ds.Len() == 0 {
		return nil, ErrNoData
	}
	if opts.ValueColumn < 0 || opts.ValueColumn >= ds.Cols() {
		return nil, fmt.Errorf("value column %d with %d columns: %w", opts.ValueColumn, ds.Cols(), ErrColumnOutOfRange)
	}
	if opts.XColumn < 0 || opts.XColumn >= ds.Cols() {
		return nil, fmt.Errorf("x column %d with %d columns: %w", opts.XColumn, ds.Cols(), ErrColumnOutOfRange)
	}

	ref := ds.First()
	if opts.ReferencePath != "" {
		f, ok := ds.File(opts.ReferencePath)
		if !ok {
			return nil, fmt.Errorf("reference file %s is not loaded", opts.ReferencePath)
		}
		ref = f
	}

	row, err := rowIndex(ref, index)
	if err != nil {
		return nil, err
	}

	result := NewSliceResult(index)
	result.ReferencePath = ref.Path
	result.Reference = ref.Table.At(row, opts.XColumn)

	for _, path := range params.Paths() {
		f, ok := ds.File(path)
		if !ok {
			result.Warnings = append(result.Warnings, fmt.Sprintf("Warning: '%s' has a parameter but is not loaded; skipped.", path))
			continue
		}
		if _, err := rowIndex(f, index); err != nil {
			return nil, err
		}
		param, _ := params.Value(path)
		energy, err := photonEnergy(path, param, opts.EnergyConstant)
		if err != nil {
			result.Dropped = append(result.Dropped, err)
			result.Warnings = append(result.Warnings, fmt.Sprintf("Warning: %v; point dropped.", err))
			continue
		}
		result.Points = append(result.Points, SlicePoint{
			Path:      path,
			Parameter: param,
			Energy:    energy,
			Value:     f.Table.At(row, opts.ValueColumn),
		})
	}

	return result, nil
}

// CheckIndex reports whether every file of ds can serve 1-based row index.
// The error names the shortest file.
func CheckIndex(ds *parser.Dataset, index int) error {
	if ds == nil || ds.Len() == 0 {
		return ErrNoData
	}
	var shortest *parser.DataFile
	for _, path := range ds.Paths() {
		f, _ := ds.File(path)
		if shortest == nil || f.Rows() < shortest.Rows() {
			shortest = f
		}
	}
	_, err := rowIndex(shortest, index)
	return err
}

// rowIndex converts a 1-based index into a row of f.
func rowIndex(f *parser.DataFile, index int) (int, error) {
	if index < 1 || index > f.Rows() {
		return 0, &IndexOutOfRangeError{Index: index, Path: f.Path, Rows: f.Rows()}
	}
	return index - 1, nil
}

func photonEnergy(path string, param, k float64) (float64, error) {
	if param == 0 {
		return 0, &DivisionByZeroError{Path: path}
	}
	return k / param, nil
}

// IsIndexOutOfRange reports whether err carries an IndexOutOfRangeError.
func IsIndexOutOfRange(err error) bool {
	var target *IndexOutOfRangeError
	return errors.As(err, &target)
}
