package parser

import (
	"path/filepath"

	"gonum.org/v1/gonum/mat"
)

// DataFile holds one parsed numeric table. It is never mutated after load.
type DataFile struct {
	Path  string
	Table *mat.Dense
}

// Rows returns the number of records in the table.
func (f *DataFile) Rows() int {
	r, _ := f.Table.Dims()
	return r
}

// Cols returns the number of fields per record.
func (f *DataFile) Cols() int {
	_, c := f.Table.Dims()
	return c
}

// Name is the basename of the file path.
func (f *DataFile) Name() string {
	return filepath.Base(f.Path)
}

// Dataset maps file paths to their tables.
// Key: file path as supplied by the file source
// Order: load order, used by every downstream stage
type Dataset struct {
	Files   map[string]*DataFile
	order   []string
	minRows int
	cols    int
}

// Helper to initialize an empty Dataset
func NewDataset() *Dataset {
	return &Dataset{
		Files: make(map[string]*DataFile),
		order: make([]string, 0),
	}
}

// Paths returns the loaded paths in load order.
func (d *Dataset) Paths() []string {
	if d == nil {
		return nil
	}
	out := make([]string, len(d.order))
	copy(out, d.order)
	return out
}

// Names returns the basenames of the loaded files in load order.
func (d *Dataset) Names() []string {
	if d == nil {
		return nil
	}
	out := make([]string, 0, len(d.order))
	for _, p := range d.order {
		out = append(out, filepath.Base(p))
	}
	return out
}

// Len is the number of loaded files.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.order)
}

// File looks up a DataFile by path.
func (d *Dataset) File(path string) (*DataFile, bool) {
	if d == nil {
		return nil, false
	}
	f, ok := d.Files[path]
	return f, ok
}

// First returns the first loaded file, the conventional reference file.
func (d *Dataset) First() *DataFile {
	if d.Len() == 0 {
		return nil
	}
	return d.Files[d.order[0]]
}

// MinRows is the smallest row count across all files. It is the upper bound
// of the 1-based slice index.
func (d *Dataset) MinRows() int {
	if d == nil {
		return 0
	}
	return d.minRows
}

// Cols is the shared column count.
func (d *Dataset) Cols() int {
	if d == nil {
		return 0
	}
	return d.cols
}

func (d *Dataset) add(f *DataFile) {
	if len(d.order) == 0 || f.Rows() < d.minRows {
		d.minRows = f.Rows()
	}
	d.cols = f.Cols()
	d.Files[f.Path] = f
	d.order = append(d.order, f.Path)
}

// LoadOptions controls shape validation across files.
type LoadOptions struct {
	// AllowRaggedRows accepts files with differing row counts. The column
	// count must still agree.
	AllowRaggedRows bool
}
