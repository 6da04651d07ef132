package report

import (
	"bytes"
	"fmt"
	"image/color"
	"log/slog"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/user/slice_analyzer_go/internal/analysis"
)

// PlotOptions controls how a slice is drawn.
type PlotOptions struct {
	Title   string
	LogY    bool
	Connect bool // join points in ascending energy
	Width   vg.Length
	Height  vg.Length
	Logger  *slog.Logger
}

// DefaultPlotOptions mirrors the interactive view: log-scaled values.
func DefaultPlotOptions() PlotOptions {
	return PlotOptions{
		LogY:   true,
		Width:  vg.Points(800),
		Height: vg.Points(500),
	}
}

func (o PlotOptions) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// NewSlicePlot builds the plot for res. The whole plot is rebuilt on every
// call. Values that a log axis cannot show are skipped and logged.
func NewSlicePlot(res *analysis.SliceResult, opts PlotOptions) (*plot.Plot, error) {
	if res.Empty() {
		return nil, ErrEmptySlice
	}

	sorted := res.SortedByEnergy()
	pts := make(plotter.XYs, 0, len(sorted))
	logY := opts.LogY
	for _, p := range sorted {
		if math.IsNaN(p.Value) || math.IsInf(p.Value, 0) {
			opts.logger().Warn("skipping non-finite value", "file", p.Name(), "value", p.Value)
			continue
		}
		if logY && p.Value <= 0 {
			opts.logger().Warn("skipping non-positive value on log axis", "file", p.Name(), "value", p.Value)
			continue
		}
		pts = append(pts, plotter.XY{X: p.Energy, Y: p.Value})
	}
	if len(pts) == 0 && logY {
		opts.logger().Warn("no positive values, falling back to a linear axis")
		logY = false
		for _, p := range sorted {
			if !math.IsNaN(p.Value) && !math.IsInf(p.Value, 0) {
				pts = append(pts, plotter.XY{X: p.Energy, Y: p.Value})
			}
		}
	}
	if len(pts) == 0 {
		return nil, ErrEmptySlice
	}

	p := plot.New()
	p.Title.Text = opts.Title
	if p.Title.Text == "" {
		p.Title.Text = fmt.Sprintf("Slice at %.2f nm (point %d)", res.Reference, res.Index)
	}
	p.X.Label.Text = "Energy (eV)"
	p.Y.Label.Text = "Value"
	if logY {
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	}
	p.Add(plotter.NewGrid())

	if opts.Connect && len(pts) > 1 {
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("failed to create slice line: %v", err)
		}
		line.Color = color.Gray{Y: 128}
		line.LineStyle.Width = vg.Points(1)
		p.Add(line)
	}

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, fmt.Errorf("failed to create slice scatter: %v", err)
	}
	scatter.GlyphStyle.Shape = draw.CircleGlyph{}
	scatter.GlyphStyle.Radius = vg.Points(3)
	scatter.GlyphStyle.Color = color.RGBA{B: 255, A: 255}
	p.Add(scatter)

	return p, nil
}

// CreateSlicePlot renders res to PNG bytes.
func CreateSlicePlot(res *analysis.SliceResult, opts PlotOptions) ([]byte, error) {
	p, err := NewSlicePlot(res, opts)
	if err != nil {
		return nil, err
	}
	return renderPNG(p, opts.Width, opts.Height)
}

// SaveSlicePlot writes the plot to path; the extension (.png, .svg, .pdf)
// picks the format.
func SaveSlicePlot(path string, res *analysis.SliceResult, opts PlotOptions) error {
	p, err := NewSlicePlot(res, opts)
	if err != nil {
		return err
	}
	width, height := size(opts.Width, opts.Height)
	if err := p.Save(width, height, path); err != nil {
		return fmt.Errorf("failed to save plot: %w", err)
	}
	return nil
}

func size(width, height vg.Length) (vg.Length, vg.Length) {
	if width <= 0 {
		width = vg.Points(800)
	}
	if height <= 0 {
		height = vg.Points(500)
	}
	return width, height
}

func renderPNG(p *plot.Plot, width, height vg.Length) ([]byte, error) {
	width, height = size(width, height)
	writer, err := p.WriterTo(width, height, "png")
	if err != nil {
		return nil, fmt.Errorf("failed to create plot writer: %v", err)
	}
	buf := new(bytes.Buffer)
	if _, err := writer.WriteTo(buf); err != nil {
		return nil, fmt.Errorf("failed to write plot to buffer: %v", err)
	}
	return buf.Bytes(), nil
}
