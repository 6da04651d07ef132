package report

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/user/slice_analyzer_go/internal/matcher"
	"github.com/user/slice_analyzer_go/internal/parser"
)

// ErrHeatmapTooSmall is returned when fewer than two files or rows are
// available; a heat map needs neighbours on both axes.
var ErrHeatmapTooSmall = errors.New("report: heat map needs at least two files and two rows")

// seriesGrid exposes the value column of every matched file as a grid:
// columns are files in map order, rows are 1-based table rows.
type seriesGrid struct {
	files  []*parser.DataFile
	rows   int
	column int
	logZ   bool
}

func (g seriesGrid) Dims() (c, r int) { return len(g.files), g.rows }

func (g seriesGrid) Z(c, r int) float64 {
	v := g.files[c].Table.At(r, g.column)
	if g.logZ {
		if v <= 0 {
			return math.NaN()
		}
		return math.Log10(v)
	}
	return v
}

func (g seriesGrid) X(c int) float64 { return float64(c) }
func (g seriesGrid) Y(r int) float64 { return float64(r + 1) }

// CreateSeriesHeatmap renders the value column of every matched file over
// all rows, with the current slice row marked. With logZ the colour scale is
// log10 of the value and non-positive cells are drawn grey.
func CreateSeriesHeatmap(ds *parser.Dataset, params *matcher.ParameterMap, valueColumn, sliceIndex int, logZ bool) ([]byte, error) {
	if ds == nil || params.Len() == 0 {
		return nil, ErrEmptySlice
	}
	if valueColumn < 0 || valueColumn >= ds.Cols() {
		return nil, fmt.Errorf("value column %d with %d columns", valueColumn, ds.Cols())
	}

	grid := seriesGrid{rows: ds.MinRows(), column: valueColumn, logZ: logZ}
	for _, path := range params.Paths() {
		if f, ok := ds.File(path); ok {
			grid.files = append(grid.files, f)
		}
	}
	if len(grid.files) < 2 || grid.rows < 2 {
		return nil, ErrHeatmapTooSmall
	}

	minZ, maxZ := math.Inf(1), math.Inf(-1)
	for c := range grid.files {
		for r := 0; r < grid.rows; r++ {
			z := grid.Z(c, r)
			if math.IsNaN(z) || math.IsInf(z, 0) {
				continue
			}
			minZ = math.Min(minZ, z)
			maxZ = math.Max(maxZ, z)
		}
	}
	if math.IsInf(minZ, 0) {
		minZ, maxZ = 0, 1
	}
	if minZ == maxZ {
		maxZ = minZ + 1
	}

	p := plot.New()
	p.Title.Text = "Value column across the series"
	if logZ {
		p.Title.Text += " (log10)"
	}
	p.X.Label.Text = "File"
	p.Y.Label.Text = "Row"

	xTicks := make([]plot.Tick, len(grid.files))
	for i, f := range grid.files {
		xTicks[i] = plot.Tick{Value: float64(i), Label: f.Name()}
	}
	p.X.Tick.Marker = plot.ConstantTicks(xTicks)
	p.X.Min = -0.5
	p.X.Max = float64(len(grid.files)) - 0.5
	p.Y.Min = 0.5
	p.Y.Max = float64(grid.rows) + 0.5

	hm := plotter.NewHeatMap(grid, palette.Heat(12, 1))
	hm.Min = minZ
	hm.Max = maxZ
	hm.NaN = color.Gray{Y: 200}
	p.Add(hm)

	if sliceIndex >= 1 && sliceIndex <= grid.rows {
		marker, err := plotter.NewLine(plotter.XYs{
			{X: p.X.Min, Y: float64(sliceIndex)},
			{X: p.X.Max, Y: float64(sliceIndex)},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create slice marker: %v", err)
		}
		marker.Color = color.RGBA{B: 255, A: 255}
		marker.LineStyle.Width = vg.Points(1.5)
		marker.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(5)}
		p.Add(marker)
	}

	return renderPNG(p, vg.Points(1000), vg.Points(500))
}
