package analysis

import (
	"errors"
	"fmt"
)

var (
	// ErrNoData is returned when a slice is requested without a dataset.
	ErrNoData = errors.New("analysis: no dataset loaded")

	// ErrColumnOutOfRange indicates a configured column the tables do not have.
	ErrColumnOutOfRange = errors.New("analysis: column out of range")
)

// IndexOutOfRangeError reports a 1-based slice index that the named file
// cannot serve.
type IndexOutOfRangeError struct {
	Index int
	Path  string
	Rows  int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("slice index %d out of range: %s has %d rows", e.Index, e.Path, e.Rows)
}

// DivisionByZeroError reports a file whose series parameter is zero, so no
// energy can be derived for it.
type DivisionByZeroError struct {
	Path string
}

func (e *DivisionByZeroError) Error() string {
	return fmt.Sprintf("division by zero: series parameter of %s is 0", e.Path)
}
