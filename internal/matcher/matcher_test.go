package matcher_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/slice_analyzer_go/internal/matcher"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		want float64
		ok   bool
	}{
		{name: "A_1.0.dat", want: 1.0, ok: true},
		{name: "A_-2.5.dat", want: -2.5, ok: true},
		{name: "run+3.txt", want: 3, ok: true},
		{name: "A_2.dat", want: 2, ok: true},
		{name: "A_.5nm.dat", want: 0.5, ok: true},
		{name: "sample 640nm 12.txt", want: 640, ok: true},
		{name: "no-digits.dat", ok: false},
		{name: "", ok: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := matcher.Extract(tc.name)
			require.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.InDelta(t, tc.want, got, 1e-12)
			}
		})
	}
}

func TestCompileExpandsPlaceholder(t *testing.T) {
	p, err := matcher.Compile("A_float.dat")
	require.NoError(t, err)
	assert.True(t, p.HasPlaceholder())
	assert.Equal(t, "A_float.dat", p.String())
	assert.Equal(t, `A_(?:`+matcher.NumberPattern+`).dat`, p.Expanded())

	assert.True(t, p.Match("A_1.0.dat"))
	assert.True(t, p.Match("prefix_A_-3.dat_suffix"))
	assert.False(t, p.Match("B_1.0.dat"))
}

func TestCompileWithoutPlaceholder(t *testing.T) {
	p, err := matcher.Compile("scan")
	require.NoError(t, err)
	assert.False(t, p.HasPlaceholder())
	assert.True(t, p.Match("my_scan_12.dat"))
	assert.False(t, p.Match("other_12.dat"))
}

func TestCompileInvalidPattern(t *testing.T) {
	_, err := matcher.Compile("A_(float")
	var patternErr *matcher.PatternError
	require.ErrorAs(t, err, &patternErr)
	assert.Equal(t, "A_(float", patternErr.Pattern)
}

func TestMatchScenario(t *testing.T) {
	paths := []string{"/data/A_1.0.dat", "/data/A_2.0.dat", "/data/A_0.0.dat", "/data/B_5.0.dat"}
	m, err := matcher.MatchString(paths, "A_float.dat")
	require.NoError(t, err)

	assert.Equal(t, []string{"/data/A_1.0.dat", "/data/A_2.0.dat", "/data/A_0.0.dat"}, m.Paths())
	for path, want := range map[string]float64{
		"/data/A_1.0.dat": 1.0,
		"/data/A_2.0.dat": 2.0,
		"/data/A_0.0.dat": 0.0,
	} {
		got, ok := m.Value(path)
		require.True(t, ok, path)
		assert.Equal(t, want, got)
	}
	_, ok := m.Value("/data/B_5.0.dat")
	assert.False(t, ok)
	assert.Empty(t, m.Warnings())
}

func TestMatchUsesBasenameOnly(t *testing.T) {
	m, err := matcher.MatchString([]string{"/A_dir_7/x.dat", "/tmp/A_3.dat"}, "A_")
	require.NoError(t, err)
	assert.Equal(t, []string{"/tmp/A_3.dat"}, m.Paths())
}

func TestMatchExtractionIgnoresPlaceholderPosition(t *testing.T) {
	paths := []string{"/d/2.5_sample_7.dat"}
	for _, pattern := range []string{"float_sample", "sample_float", "sample", "_float.dat"} {
		m, err := matcher.MatchString(paths, pattern)
		require.NoError(t, err, pattern)
		require.Equal(t, 1, m.Len(), pattern)
		v, _ := m.Value(paths[0])
		assert.Equal(t, 2.5, v, pattern)
	}
}

func TestMatchEmptyPatternKeepsNumberedFiles(t *testing.T) {
	paths := []string{"/d/a1.dat", "/d/notes.txt", "/d/b2.dat"}
	m, err := matcher.MatchString(paths, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"/d/a1.dat", "/d/b2.dat"}, m.Paths())
	require.Len(t, m.Warnings(), 1)
	assert.Contains(t, m.Warnings()[0], "notes.txt")
}

func TestMatchEmptyInputs(t *testing.T) {
	m, err := matcher.MatchString(nil, "A_float.dat")
	require.NoError(t, err)
	assert.Equal(t, 0, m.Len())
	assert.Empty(t, m.Paths())

	assert.Equal(t, 0, matcher.Match([]string{"/d/a1.dat"}, nil).Len())

	var nilMap *matcher.ParameterMap
	assert.Equal(t, 0, nilMap.Len())
	_, ok := nilMap.Value("x")
	assert.False(t, ok)
}

func TestMatchStringInvalidPatternReturnsEmptyMap(t *testing.T) {
	m, err := matcher.MatchString([]string{"/d/a1.dat"}, "[")
	require.Error(t, err)
	require.NotNil(t, m)
	assert.Equal(t, 0, m.Len())
}
