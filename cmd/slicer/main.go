// Command slicer extracts one row across a series of data files and saves it
// as a function of photon energy.
//
//	slicer -pattern 'A_float.dat' -row 2 -plot slice.png data/*.dat
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/user/slice_analyzer_go/internal/config"
	"github.com/user/slice_analyzer_go/internal/logging"
	"github.com/user/slice_analyzer_go/internal/session"
)

// Flags holds the parsed command line.
type Flags struct {
	configPath string
	pattern    string
	row        int
	exportDir  string
	noExport   bool
	plotPath   string
	reportPath string
	list       bool
	ragged     bool
	valueCol   int
	xCol       int
	logLevel   string
	files      []string
}

func parseFlags(args []string) (Flags, error) {
	var f Flags
	fs := flag.NewFlagSet("slicer", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&f.configPath, "config", "", "YAML config file")
	fs.StringVar(&f.pattern, "pattern", "", "filename pattern; the token 'float' stands for the series number (default: first file's name)")
	fs.IntVar(&f.row, "row", 1, "1-based slice row")
	fs.StringVar(&f.exportDir, "out", "", "export directory (default from config)")
	fs.BoolVar(&f.noExport, "no-export", false, "do not write the two-column slice file")
	fs.StringVar(&f.plotPath, "plot", "", "write the slice plot (.png, .svg or .pdf)")
	fs.StringVar(&f.reportPath, "report", "", "write a PDF slice report")
	fs.BoolVar(&f.list, "list", false, "print loaded and matched files")
	fs.BoolVar(&f.ragged, "ragged", false, "accept files with differing row counts")
	fs.IntVar(&f.valueCol, "value-col", -1, "value column (default from config)")
	fs.IntVar(&f.xCol, "x-col", -1, "wavelength column (default from config)")
	fs.StringVar(&f.logLevel, "log-level", "", "debug, info, warn or error")
	if err := fs.Parse(args); err != nil {
		return f, err
	}
	f.files = fs.Args()
	if len(f.files) == 0 {
		return f, errors.New("usage: slicer [flags] <file>...")
	}
	if f.row < 1 {
		return f, fmt.Errorf("-row must be at least 1, got %d", f.row)
	}
	return f, nil
}

// applyFlags lets explicit flags override the loaded configuration.
func applyFlags(cfg *config.Config, f Flags) error {
	if f.exportDir != "" {
		cfg.Export.Dir = f.exportDir
	}
	if f.ragged {
		cfg.Slice.AllowRaggedRows = true
	}
	if f.valueCol >= 0 {
		cfg.Slice.ValueColumn = f.valueCol
	}
	if f.xCol >= 0 {
		cfg.Slice.XColumn = f.xCol
	}
	if f.logLevel != "" {
		cfg.Logging.Level = f.logLevel
	}
	return cfg.Validate()
}

func run(f Flags, stdout, stderr io.Writer) error {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return err
	}
	if err := applyFlags(cfg, f); err != nil {
		return err
	}
	logger := logging.New(cfg.Logging, stderr)
	s := session.New(cfg, logger)

	if err := s.Load(f.files); err != nil {
		return err
	}
	if f.pattern != "" {
		if err := s.SetPattern(f.pattern); err != nil {
			return err
		}
	}
	if err := s.SetSliceIndex(f.row); err != nil {
		return err
	}

	st := s.Snapshot()
	if st.Result == nil {
		return st.Err
	}
	if f.list {
		printFiles(stdout, st)
	}
	fmt.Fprintf(stdout, "slice row %d of %d, wavelength %g, %d point(s)\n",
		st.Index, st.MaxIndex(), st.Result.Reference, st.Result.Len())
	for _, p := range st.Result.Points {
		fmt.Fprintf(stdout, "%-40s %12.6f %14.6g\n", p.Name(), p.Energy, p.Value)
	}

	if !f.noExport && !st.Result.Empty() {
		path, err := s.Export("")
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "saved %s\n", path)
	}
	if f.plotPath != "" {
		if err := s.SavePlot(f.plotPath); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "saved %s\n", f.plotPath)
	}
	if f.reportPath != "" {
		if err := s.Report(f.reportPath); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "saved %s\n", f.reportPath)
	}
	return nil
}

func printFiles(w io.Writer, st *session.State) {
	fmt.Fprintf(w, "pattern %q matched %d of %d file(s)\n", st.Pattern, st.Params.Len(), st.Dataset.Len())
	for _, path := range st.Dataset.Paths() {
		mark := " "
		if v, ok := st.Params.Value(path); ok {
			mark = fmt.Sprintf("* %g", v)
		}
		fmt.Fprintf(w, "  %s %s\n", filepath.Base(path), strings.TrimSpace(mark))
	}
}

func main() {
	f, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := run(f, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
