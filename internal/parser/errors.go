package parser

import (
	"errors"
	"fmt"
)

// ErrNothingToLoad is returned for an empty file list. Callers treat it as a
// no-op rather than a failure.
var ErrNothingToLoad = errors.New("parser: nothing to load")

// DataFormatError reports a file whose content is not a numeric table.
type DataFormatError struct {
	Path string
	Line int // 1-based, 0 when the problem is not tied to a line
	Err  error
}

func (e *DataFormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("data format error in %s (line %d): %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("data format error in %s: %v", e.Path, e.Err)
}

func (e *DataFormatError) Unwrap() error { return e.Err }

// DatasetShapeError reports a file whose table shape disagrees with the
// first loaded file.
type DatasetShapeError struct {
	Path      string
	Reference string
	Dimension string // "rows" or "columns"
	Want      int
	Got       int
}

func (e *DatasetShapeError) Error() string {
	return fmt.Sprintf("dataset shape error: %s has %d %s, expected %d (as in %s)",
		e.Path, e.Got, e.Dimension, e.Want, e.Reference)
}
