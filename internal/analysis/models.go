package analysis

import (
	"path/filepath"
	"sort"
)

// Defaults of the reference configuration.
const (
	DefaultValueColumn = 3
	DefaultXColumn     = 0
	// DefaultEnergyConstant converts a wavelength in nm to a photon energy in eV.
	DefaultEnergyConstant = 1239.8
)

// SliceOptions selects the columns used by ExtractSlice.
type SliceOptions struct {
	ValueColumn    int
	XColumn        int
	EnergyConstant float64
	ReferencePath  string // empty selects the first loaded file
}

// DefaultSliceOptions returns the reference configuration.
func DefaultSliceOptions() SliceOptions {
	return SliceOptions{
		ValueColumn:    DefaultValueColumn,
		XColumn:        DefaultXColumn,
		EnergyConstant: DefaultEnergyConstant,
	}
}

// SlicePoint is one file's contribution to a slice.
type SlicePoint struct {
	Path      string
	Parameter float64 // series parameter recovered from the filename
	Energy    float64 // EnergyConstant / Parameter, the plotted x
	Value     float64 // value column at the slice row, the plotted y
}

// Name is the basename of the contributing file.
func (p SlicePoint) Name() string { return filepath.Base(p.Path) }

// SliceResult holds one row taken across all matched files.
type SliceResult struct {
	Index         int // 1-based row
	ReferencePath string
	Reference     float64 // x column of the reference file at Index
	Points        []SlicePoint
	Dropped       []error // per-file failures, the slice is still computed
	Warnings      []string
}

func NewSliceResult(index int) *SliceResult {
	return &SliceResult{
		Index:    index,
		Points:   make([]SlicePoint, 0),
		Dropped:  make([]error, 0),
		Warnings: make([]string, 0),
	}
}

// Len is the number of points.
func (r *SliceResult) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Points)
}

// XY returns point i as (energy, value). It lets the result serve as a
// plotter.XYer directly.
func (r *SliceResult) XY(i int) (float64, float64) {
	return r.Points[i].Energy, r.Points[i].Value
}

// Empty reports whether the slice holds no points.
func (r *SliceResult) Empty() bool { return r.Len() == 0 }

// SortedByEnergy returns a copy of the points in ascending energy.
func (r *SliceResult) SortedByEnergy() []SlicePoint {
	if r == nil {
		return nil
	}
	out := make([]SlicePoint, len(r.Points))
	copy(out, r.Points)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Energy < out[j].Energy
	})
	return out
}
