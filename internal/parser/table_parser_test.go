package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/slice_analyzer_go/internal/parser"
	"github.com/user/slice_analyzer_go/internal/testutil"
)

func TestParseTableSeparators(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "spaces", content: "1 2 3\n4 5 6\n"},
		{name: "tabs", content: "1\t2\t3\n4\t5\t6\n"},
		{name: "commas", content: "1,2,3\n4,5,6\n"},
		{name: "mixed with comments", content: "# header\n1, 2; 3\n\n  4 5 6  \r\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := testutil.WriteFile(t, t.TempDir(), "t.dat", tc.content)
			f, err := parser.ParseTable(path)
			require.NoError(t, err)
			assert.Equal(t, 2, f.Rows())
			assert.Equal(t, 3, f.Cols())
			assert.Equal(t, 6.0, f.Table.At(1, 2))
			assert.Equal(t, "t.dat", f.Name())
		})
	}
}

func TestParseTableFormatErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		line    int
	}{
		{name: "non numeric", content: "1 2\n3 x\n", line: 2},
		{name: "ragged", content: "1 2\n3\n", line: 2},
		{name: "empty", content: "# only a comment\n\n", line: 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := testutil.WriteFile(t, t.TempDir(), "bad.dat", tc.content)
			_, err := parser.ParseTable(path)
			var formatErr *parser.DataFormatError
			require.ErrorAs(t, err, &formatErr)
			assert.Equal(t, path, formatErr.Path)
			assert.Equal(t, tc.line, formatErr.Line)
			assert.Contains(t, err.Error(), path)
		})
	}
}

func TestParseTableMissingFile(t *testing.T) {
	_, err := parser.ParseTable("/does/not/exist.dat")
	var formatErr *parser.DataFormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, "/does/not/exist.dat", formatErr.Path)
}

func TestLoadDatasetEmptyList(t *testing.T) {
	ds, err := parser.LoadDataset(nil, parser.LoadOptions{})
	require.ErrorIs(t, err, parser.ErrNothingToLoad)
	assert.Nil(t, ds)
}

func TestLoadDatasetOrderAndShape(t *testing.T) {
	dir := t.TempDir()
	b := testutil.WriteTable(t, dir, "B_2.0.dat", testutil.SpectrumRows(5, 20))
	a := testutil.WriteTable(t, dir, "A_1.0.dat", testutil.SpectrumRows(5, 10))

	ds, err := parser.LoadDataset([]string{b, a, b}, parser.LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{b, a}, ds.Paths())
	assert.Equal(t, []string{"B_2.0.dat", "A_1.0.dat"}, ds.Names())
	assert.Equal(t, 2, ds.Len())
	assert.Equal(t, 5, ds.MinRows())
	assert.Equal(t, 4, ds.Cols())
	assert.Equal(t, b, ds.First().Path)

	f, ok := ds.File(a)
	require.True(t, ok)
	assert.Equal(t, 12.0, f.Table.At(2, 3))
}

func TestLoadDatasetIdempotent(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		testutil.WriteTable(t, dir, "A_1.0.dat", testutil.SpectrumRows(4, 1)),
		testutil.WriteTable(t, dir, "A_2.0.dat", testutil.SpectrumRows(4, 2)),
	}
	first, err := parser.LoadDataset(paths, parser.LoadOptions{})
	require.NoError(t, err)
	second, err := parser.LoadDataset(paths, parser.LoadOptions{})
	require.NoError(t, err)

	require.Equal(t, first.Paths(), second.Paths())
	for _, p := range paths {
		assert.Equal(t, first.Files[p].Table.RawMatrix().Data, second.Files[p].Table.RawMatrix().Data)
	}
}

func TestLoadDatasetShapeMismatch(t *testing.T) {
	dir := t.TempDir()
	ref := testutil.WriteTable(t, dir, "ref.dat", testutil.SpectrumRows(5, 0))
	short := testutil.WriteTable(t, dir, "short.dat", testutil.SpectrumRows(3, 0))
	narrow := testutil.WriteTable(t, dir, "narrow.dat", [][]float64{{1, 2}, {3, 4}, {5, 6}, {7, 8}, {9, 10}})

	_, err := parser.LoadDataset([]string{ref, short}, parser.LoadOptions{})
	var shapeErr *parser.DatasetShapeError
	require.ErrorAs(t, err, &shapeErr)
	assert.Equal(t, "rows", shapeErr.Dimension)
	assert.Equal(t, short, shapeErr.Path)
	assert.Equal(t, 5, shapeErr.Want)
	assert.Equal(t, 3, shapeErr.Got)

	_, err = parser.LoadDataset([]string{ref, narrow}, parser.LoadOptions{AllowRaggedRows: true})
	require.ErrorAs(t, err, &shapeErr)
	assert.Equal(t, "columns", shapeErr.Dimension)
}

func TestLoadDatasetRaggedRowsUsesMinimum(t *testing.T) {
	dir := t.TempDir()
	long := testutil.WriteTable(t, dir, "long.dat", testutil.SpectrumRows(6, 0))
	short := testutil.WriteTable(t, dir, "short.dat", testutil.SpectrumRows(3, 0))

	ds, err := parser.LoadDataset([]string{long, short}, parser.LoadOptions{AllowRaggedRows: true})
	require.NoError(t, err)
	assert.Equal(t, 3, ds.MinRows())
}

func TestLoadDatasetFormatErrorNamesPath(t *testing.T) {
	dir := t.TempDir()
	good := testutil.WriteTable(t, dir, "good.dat", testutil.SpectrumRows(2, 0))
	bad := testutil.WriteFile(t, dir, "bad.dat", "a b c d\n")

	_, err := parser.LoadDataset([]string{good, bad}, parser.LoadOptions{})
	var formatErr *parser.DataFormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, bad, formatErr.Path)
}
