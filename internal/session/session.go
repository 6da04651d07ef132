// Package session owns the loaded dataset and everything derived from it.
//
// Each action (load, pattern edit, slice move) recomputes the downstream
// structures in full and publishes them as one immutable State. Readers get
// either the previous or the new State, never a mix.
package session

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"gonum.org/v1/plot/vg"

	"github.com/user/slice_analyzer_go/internal/analysis"
	"github.com/user/slice_analyzer_go/internal/config"
	"github.com/user/slice_analyzer_go/internal/matcher"
	"github.com/user/slice_analyzer_go/internal/parser"
	"github.com/user/slice_analyzer_go/internal/report"
)

// State is a consistent view of the session. Its fields must not be
// modified.
type State struct {
	Dataset *parser.Dataset
	Pattern string
	Params  *matcher.ParameterMap
	Index   int // 1-based slice row
	Result  *analysis.SliceResult
	Err     error // why Result is missing, if it is
}

// MaxIndex is the largest valid slice index, 0 without data.
func (s *State) MaxIndex() int {
	return s.Dataset.MinRows()
}

// Session serialises actions and publishes State snapshots.
type Session struct {
	mu     sync.RWMutex
	cfg    *config.Config
	logger *slog.Logger
	state  *State
}

// New creates an empty session. A nil cfg selects config.Default().
func New(cfg *config.Config, logger *slog.Logger) *Session {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		cfg:    cfg,
		logger: logger,
		state:  &State{Params: matcher.NewParameterMap(), Index: 1},
	}
}

// Snapshot returns the current state.
func (s *Session) Snapshot() *State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Session) sliceOptions() analysis.SliceOptions {
	return analysis.SliceOptions{
		ValueColumn:    s.cfg.Slice.ValueColumn,
		XColumn:        s.cfg.Slice.XColumn,
		EnergyConstant: s.cfg.Slice.EnergyConstant,
	}
}

// PlotOptions derives plot settings from the configuration.
func (s *Session) PlotOptions() report.PlotOptions {
	return report.PlotOptions{
		Title:   s.cfg.Plot.Title,
		LogY:    s.cfg.Plot.LogY,
		Connect: s.cfg.Plot.Connect,
		Width:   vg.Points(s.cfg.Plot.Width),
		Height:  vg.Points(s.cfg.Plot.Height),
		Logger:  s.logger,
	}
}

// Load replaces the dataset with the given files. On any load error the
// previous state is kept. An empty list returns parser.ErrNothingToLoad and
// changes nothing. Once the dataset is committed Load returns nil; a pattern
// or slice problem of the new state is reported through State.Err.
func (s *Session) Load(paths []string) error {
	ds, err := parser.LoadDataset(paths, parser.LoadOptions{AllowRaggedRows: s.cfg.Slice.AllowRaggedRows})
	if errors.Is(err, parser.ErrNothingToLoad) {
		s.logger.Info("nothing to load")
		return err
	}
	if err != nil {
		s.logger.Error("load failed, keeping previous dataset", "error", err)
		return err
	}
	s.logger.Info("dataset loaded", "files", ds.Len(), "rows", ds.MinRows(), "columns", ds.Cols())

	s.mu.Lock()
	defer s.mu.Unlock()

	pattern := s.state.Pattern
	if pattern == "" {
		pattern = ds.First().Name()
	}
	index := clamp(s.state.Index, 1, ds.MinRows())

	next := s.recompute(ds, pattern, index)
	s.state = next
	if next.Err != nil {
		s.logger.Warn("dataset loaded without a slice", "error", next.Err)
	}
	return nil
}

// SetPattern re-matches the loaded files. An invalid pattern clears the
// parameter map and is returned.
func (s *Session) SetPattern(pattern string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.recompute(s.state.Dataset, pattern, s.state.Index)
	s.state = next
	return next.Err
}

// SetSliceIndex moves the slice to 1-based row index. An index the dataset
// cannot serve is rejected and the previous slice stays in place.
func (s *Session) SetSliceIndex(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.state
	if cur.Dataset == nil {
		if index < 1 {
			return &analysis.IndexOutOfRangeError{Index: index}
		}
		next := *cur
		next.Index = index
		s.state = &next
		return nil
	}

	if err := analysis.CheckIndex(cur.Dataset, index); err != nil {
		s.logger.Warn("slice index rejected", "index", index, "max", cur.MaxIndex(), "error", err)
		return err
	}
	next := s.recompute(cur.Dataset, cur.Pattern, index)
	s.state = next
	return next.Err
}

// recompute runs Matcher and Extractor for the given inputs.
func (s *Session) recompute(ds *parser.Dataset, pattern string, index int) *State {
	next := &State{Dataset: ds, Pattern: pattern, Index: index}

	p, err := matcher.Compile(pattern)
	if err != nil {
		s.logger.Warn("pattern rejected", "pattern", pattern, "error", err)
		next.Params = matcher.NewParameterMap()
		next.Err = err
		return next
	}
	next.Params = matcher.Match(ds.Paths(), p)
	for _, w := range next.Params.Warnings() {
		s.logger.Warn(w)
	}
	if ds == nil {
		return next
	}

	res, err := analysis.ExtractSlice(ds, next.Params, index, s.sliceOptions())
	if err != nil {
		next.Err = err
		return next
	}
	for _, w := range res.Warnings {
		s.logger.Warn(w)
	}
	if res.Empty() {
		s.logger.Info("no files matched", "pattern", pattern)
	}
	s.logger.Debug("slice computed", "index", index, "reference", res.Reference, "points", res.Len())
	next.Result = res
	return next
}

func (s *Session) currentResult() (*analysis.SliceResult, error) {
	return resultOf(s.Snapshot())
}

func resultOf(st *State) (*analysis.SliceResult, error) {
	if st.Result == nil {
		if st.Err != nil {
			return nil, st.Err
		}
		return nil, analysis.ErrNoData
	}
	return st.Result, nil
}

// Export writes the current slice as a two column text file into dir, or
// into the configured export directory when dir is empty.
func (s *Session) Export(dir string) (string, error) {
	res, err := s.currentResult()
	if err != nil {
		return "", err
	}
	if dir == "" {
		dir = s.cfg.Export.Dir
	}
	path, err := report.ExportSlice(dir, res)
	if err != nil {
		return "", fmt.Errorf("export slice: %w", err)
	}
	s.logger.Info("slice exported", "path", path, "points", res.Len())
	return path, nil
}

// Plot renders the current slice to PNG.
func (s *Session) Plot() ([]byte, error) {
	res, err := s.currentResult()
	if err != nil {
		return nil, err
	}
	return report.CreateSlicePlot(res, s.PlotOptions())
}

// SavePlot writes the current slice plot to path.
func (s *Session) SavePlot(path string) error {
	res, err := s.currentResult()
	if err != nil {
		return err
	}
	return report.SaveSlicePlot(path, res, s.PlotOptions())
}

// Heatmap renders the value column of all matched files.
func (s *Session) Heatmap() ([]byte, error) {
	return s.heatmapOf(s.Snapshot())
}

func (s *Session) heatmapOf(st *State) ([]byte, error) {
	return report.CreateSeriesHeatmap(st.Dataset, st.Params, s.cfg.Slice.ValueColumn, st.Index, s.cfg.Plot.LogY)
}

// Report writes a PDF of the current slice. Plots that cannot be drawn are
// left out and logged.
func (s *Session) Report(path string) error {
	st := s.Snapshot()
	res, err := resultOf(st)
	if err != nil {
		return err
	}
	images := make(map[string][]byte)
	if img, err := report.CreateSlicePlot(res, s.PlotOptions()); err != nil {
		s.logger.Warn("slice plot left out of report", "error", err)
	} else {
		images[report.ImageSlice] = img
	}
	if img, err := s.heatmapOf(st); err != nil {
		s.logger.Warn("heat map left out of report", "error", err)
	} else {
		images[report.ImageHeatmap] = img
	}
	if err := report.BuildSliceReport(path, res, images); err != nil {
		return fmt.Errorf("build report: %w", err)
	}
	s.logger.Info("report written", "path", path)
	return nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
