package session_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/slice_analyzer_go/internal/analysis"
	"github.com/user/slice_analyzer_go/internal/session"
)

func TestNewViewEmpty(t *testing.T) {
	v := session.NewView(session.New(nil, nil).Snapshot())
	assert.Empty(t, v.Files)
	assert.Empty(t, v.Points)
	assert.Equal(t, 0, v.MaxIndex)
	assert.Equal(t, "", v.SliceValue)
	assert.Equal(t, "", v.Error)
}

func TestNewViewScenario(t *testing.T) {
	s, _ := newSession(t)
	require.NoError(t, s.Load(seriesFiles(t)))
	require.NoError(t, s.SetPattern("A_float.dat"))
	require.NoError(t, s.SetSliceIndex(2))

	v := session.NewView(s.Snapshot())
	assert.Equal(t, []string{"A_1.0.dat", "A_2.0.dat", "A_0.0.dat"}, v.Files)
	assert.Equal(t, v.Files, v.Matched)
	assert.Equal(t, "A_float.dat", v.Pattern)
	assert.Equal(t, 2, v.Index)
	assert.Equal(t, 5, v.MaxIndex)
	assert.Equal(t, "410.0", v.SliceValue)
	require.Len(t, v.Points, 2)
	assert.Equal(t, 21.0, v.Points[1][1])
	require.Len(t, v.Warnings, 1)
}

func TestNewViewCarriesError(t *testing.T) {
	s, _ := newSession(t)
	require.NoError(t, s.Load(seriesFiles(t)))
	require.Error(t, s.SetPattern("("))
	v := session.NewView(s.Snapshot())
	assert.Contains(t, v.Error, "invalid pattern")
	assert.Empty(t, v.Points)
}

func TestNewViewKeepsDecimalPointOnWholeReadout(t *testing.T) {
	ref := func(x float64) *session.State {
		res := analysis.NewSliceResult(1)
		res.Reference = x
		return &session.State{Index: 1, Result: res}
	}
	for in, want := range map[float64]string{
		400:     "400.0",
		410.127: "410.127",
		-3:      "-3.0",
		1e21:    "1e+21",
	} {
		assert.Equal(t, want, session.NewView(ref(in)).SliceValue, "%v", in)
	}
}
