package matcher

import (
	"fmt"
	"path/filepath"
)

// ParameterMap holds the series parameter of every matching file, in the
// order of the paths it was built from.
type ParameterMap struct {
	paths    []string
	values   map[string]float64
	warnings []string
}

// NewParameterMap returns an empty map.
func NewParameterMap() *ParameterMap {
	return &ParameterMap{
		paths:    make([]string, 0),
		values:   make(map[string]float64),
		warnings: make([]string, 0),
	}
}

// Len is the number of matched files.
func (m *ParameterMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.paths)
}

// Paths returns the matched paths in order.
func (m *ParameterMap) Paths() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.paths))
	copy(out, m.paths)
	return out
}

// Value returns the parameter recovered for path.
func (m *ParameterMap) Value(path string) (float64, bool) {
	if m == nil {
		return 0, false
	}
	v, ok := m.values[path]
	return v, ok
}

// Warnings lists files that matched the pattern but were excluded.
func (m *ParameterMap) Warnings() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.warnings))
	copy(out, m.warnings)
	return out
}

func (m *ParameterMap) set(path string, v float64) {
	if _, dup := m.values[path]; !dup {
		m.paths = append(m.paths, path)
	}
	m.values[path] = v
}

// Match tests the basename of every path against pattern and records the
// number extracted from each match. A nil pattern, like an empty path list,
// yields an empty map.
func Match(paths []string, pattern *Pattern) *ParameterMap {
	m := NewParameterMap()
	if pattern == nil {
		return m
	}
	for _, path := range paths {
		name := filepath.Base(path)
		if !pattern.Match(name) {
			continue
		}
		v, ok := Extract(name)
		if !ok {
			m.warnings = append(m.warnings, fmt.Sprintf("Warning: '%s' matches pattern %q but contains no number; excluded.", name, pattern.String()))
			continue
		}
		m.set(path, v)
	}
	return m
}

// MatchString compiles pattern and matches paths against it.
func MatchString(paths []string, pattern string) (*ParameterMap, error) {
	p, err := Compile(pattern)
	if err != nil {
		return NewParameterMap(), err
	}
	return Match(paths, p), nil
}
