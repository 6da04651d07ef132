package main

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/wailsapp/wails/v2/pkg/runtime"

	"github.com/user/slice_analyzer_go/internal/config"
	"github.com/user/slice_analyzer_go/internal/logging"
	"github.com/user/slice_analyzer_go/internal/parser"
	"github.com/user/slice_analyzer_go/internal/report"
	"github.com/user/slice_analyzer_go/internal/session"
)

// App is bound to the frontend. Every method runs one action to completion
// and pushes the new view before returning.
type App struct {
	ctx     context.Context
	session *session.Session
	logger  *slog.Logger
}

// NewApp loads configuration from SLICER_CONFIG (optional) and the
// environment.
func NewApp() (*App, error) {
	cfg, err := config.Load(os.Getenv("SLICER_CONFIG"))
	if err != nil {
		return nil, err
	}
	logger := logging.New(cfg.Logging, os.Stderr)
	return &App{session: session.New(cfg, logger), logger: logger}, nil
}

// Startup is called when the app starts. The context is saved
// so we can call the runtime methods
func (a *App) Startup(ctx context.Context) {
	a.ctx = ctx
	runtime.WindowSetTitle(a.ctx, "Slice Analyzer")
}

func (a *App) sendStatus(message string) {
	if a.ctx != nil {
		runtime.EventsEmit(a.ctx, "statusUpdate", message)
	}
	a.logger.Info(message)
}

// publish sends the current view and plot; the frontend replaces its plot
// wholesale on every "sliceUpdate".
func (a *App) publish() session.View {
	view := session.NewView(a.session.Snapshot())
	plot := ""
	if len(view.Points) > 0 {
		if png, err := a.session.Plot(); err != nil {
			a.sendStatus(fmt.Sprintf("Plot unavailable: %v", err))
		} else {
			plot = base64.StdEncoding.EncodeToString(png)
		}
	}
	for _, w := range view.Warnings {
		a.sendStatus(w)
	}
	if a.ctx != nil {
		runtime.EventsEmit(a.ctx, "sliceUpdate", view, plot)
	}
	return view
}

// AddData asks for a set of files and replaces the dataset with them.
func (a *App) AddData() (session.View, error) {
	paths, err := runtime.OpenMultipleFilesDialog(a.ctx, runtime.OpenDialogOptions{
		Title:   "Open Files",
		Filters: []runtime.FileFilter{{DisplayName: "Data (*.dat, *.txt)", Pattern: "*.dat;*.txt"}},
	})
	if err != nil {
		return a.publish(), err
	}
	if err := a.session.Load(paths); err != nil {
		if errors.Is(err, parser.ErrNothingToLoad) {
			a.sendStatus("Nothing to load.")
			return a.publish(), nil
		}
		a.sendStatus(fmt.Sprintf("Load failed: %v", err))
		return a.publish(), err
	}
	a.sendStatus(fmt.Sprintf("Loaded %d file(s).", len(paths)))
	return a.publish(), nil
}

// SetReference re-matches the files against a new pattern.
func (a *App) SetReference(pattern string) (session.View, error) {
	err := a.session.SetPattern(pattern)
	if err != nil {
		a.sendStatus(err.Error())
	}
	return a.publish(), err
}

// SetSlice moves the slice row (1-based).
func (a *App) SetSlice(row int) (session.View, error) {
	err := a.session.SetSliceIndex(row)
	if err != nil {
		a.sendStatus(err.Error())
	}
	return a.publish(), err
}

// SaveSlice writes the two-column export next to the first loaded file.
func (a *App) SaveSlice() (string, error) {
	dir := ""
	if ds := a.session.Snapshot().Dataset; ds.Len() > 0 {
		dir = filepath.Dir(ds.First().Path)
	}
	path, err := a.session.Export(dir)
	if err != nil {
		if errors.Is(err, report.ErrEmptySlice) {
			a.sendStatus("Nothing to save: no files match the reference pattern.")
		} else {
			a.sendStatus(fmt.Sprintf("Save failed: %v", err))
		}
		return "", err
	}
	a.sendStatus(fmt.Sprintf("Saved %s", path))
	return path, nil
}

// SaveReport asks for a destination and writes the PDF slice report.
func (a *App) SaveReport() (string, error) {
	path, err := runtime.SaveFileDialog(a.ctx, runtime.SaveDialogOptions{
		Title:           "Save Report",
		DefaultFilename: "slice report.pdf",
		Filters:         []runtime.FileFilter{{DisplayName: "PDF (*.pdf)", Pattern: "*.pdf"}},
	})
	if err != nil || path == "" {
		return "", err
	}
	if err := a.session.Report(path); err != nil {
		a.sendStatus(fmt.Sprintf("Report failed: %v", err))
		return "", err
	}
	a.sendStatus(fmt.Sprintf("PDF report successfully generated: %s", path))
	return path, nil
}
