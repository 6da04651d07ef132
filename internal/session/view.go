package session

import (
	"errors"
	"strconv"
	"strings"

	"github.com/user/slice_analyzer_go/internal/parser"
)

// View is a display-ready summary of a State for front-ends that only
// understand plain data (the desktop shell serialises it to JSON).
type View struct {
	Files      []string     `json:"files"`
	Matched    []string     `json:"matched"`
	Pattern    string       `json:"pattern"`
	Index      int          `json:"index"`
	MaxIndex   int          `json:"maxIndex"`
	SliceValue string       `json:"sliceValue"`
	Points     [][2]float64 `json:"points"`
	Warnings   []string     `json:"warnings"`
	Error      string       `json:"error,omitempty"`
}

// NewView flattens st. Points are (energy, value) in result order.
func NewView(st *State) View {
	v := View{
		Files:    st.Dataset.Names(),
		Matched:  make([]string, 0, st.Params.Len()),
		Pattern:  st.Pattern,
		Index:    st.Index,
		MaxIndex: st.MaxIndex(),
		Points:   make([][2]float64, 0),
		Warnings: st.Params.Warnings(),
	}
	for _, path := range st.Params.Paths() {
		if f, ok := st.Dataset.File(path); ok {
			v.Matched = append(v.Matched, f.Name())
		}
	}
	if st.Result != nil {
		v.SliceValue = formatReadout(st.Result.Reference)
		for _, p := range st.Result.Points {
			v.Points = append(v.Points, [2]float64{p.Energy, p.Value})
		}
		v.Warnings = append(v.Warnings, st.Result.Warnings...)
	}
	if st.Err != nil && !errors.Is(st.Err, parser.ErrNothingToLoad) {
		v.Error = st.Err.Error()
	}
	return v
}

// formatReadout prints v in shortest form, keeping a decimal point on whole
// numbers (400 reads "400.0").
func formatReadout(v float64) string {
	out := strconv.FormatFloat(v, 'g', -1, 64)
	if strings.ContainsAny(out, ".eIN") {
		return out
	}
	return out + ".0"
}
