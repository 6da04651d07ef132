// Package matcher recovers the series parameter of each data file from its
// filename.
//
// A pattern is a Go regular expression in which the literal token "float"
// stands for a signed decimal number. The pattern only decides which files
// take part. The number itself is always found by a separate scan of the
// basename for the first decimal run, wherever the token sits in the pattern.
package matcher

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Placeholder is the only token of the pattern grammar.
const Placeholder = "float"

// NumberPattern matches an optional sign, digits, an optional decimal point
// and more digits.
const NumberPattern = `[+-]?[0-9]*\.?[0-9]*`

var numberRe = regexp.MustCompile(NumberPattern)

// PatternError reports a pattern that does not compile after placeholder
// expansion.
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid pattern %q: %v", e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error { return e.Err }

// Pattern is a compiled filename pattern.
type Pattern struct {
	source      string
	placeholder bool
	re          *regexp.Regexp
}

// Compile expands every placeholder token and compiles the result once.
func Compile(pattern string) (*Pattern, error) {
	segments := strings.Split(pattern, Placeholder)
	expanded := strings.Join(segments, "(?:"+NumberPattern+")")

	re, err := regexp.Compile(expanded)
	if err != nil {
		return nil, &PatternError{Pattern: pattern, Err: err}
	}
	return &Pattern{
		source:      pattern,
		placeholder: len(segments) > 1,
		re:          re,
	}, nil
}

// String returns the pattern as typed.
func (p *Pattern) String() string { return p.source }

// HasPlaceholder reports whether the pattern contains the token.
func (p *Pattern) HasPlaceholder() bool { return p.placeholder }

// Expanded returns the regular expression actually used for matching.
func (p *Pattern) Expanded() string { return p.re.String() }

// Match searches name for the pattern anywhere, not anchored.
func (p *Pattern) Match(name string) bool {
	return p.re.MatchString(name)
}

// Extract returns the first decimal number found in name. Runs of the number
// pattern that carry no digit ("", "-", ".") are skipped.
func Extract(name string) (float64, bool) {
	for _, m := range numberRe.FindAllString(name, -1) {
		if !strings.ContainsAny(m, "0123456789") {
			continue
		}
		v, err := strconv.ParseFloat(m, 64)
		if err != nil {
			continue
		}
		return v, true
	}
	return 0, false
}
