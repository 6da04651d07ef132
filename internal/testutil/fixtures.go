// Package testutil writes data file fixtures for package tests.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteFile writes content to dir/name and returns the full path.
func WriteFile(t testing.TB, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// WriteTable writes rows as a whitespace separated table.
func WriteTable(t testing.TB, dir, name string, rows [][]float64) string {
	t.Helper()
	var b strings.Builder
	for _, row := range rows {
		for i, v := range row {
			if i > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "%g", v)
		}
		b.WriteByte('\n')
	}
	return WriteFile(t, dir, name, b.String())
}

// SpectrumRows builds n rows of four columns: wavelength, two filler columns
// and a value column. Row i has wavelength 400+10*i and value offset+i.
func SpectrumRows(n int, offset float64) [][]float64 {
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = []float64{400 + 10*float64(i), 0, 0, offset + float64(i)}
	}
	return rows
}
