// Package filter selects the rows of a survey Dataset that match the current
// widget state and keeps a front end in sync through typed change events.
package filter

import (
	"strconv"
	"strings"
)

// State is the complete widget state: the selected column, its inclusive
// [Lo, Hi] range and the raw minimum-GPA text.
type State struct {
	Column  string  `json:"column" yaml:"column"`
	Lo      float64 `json:"lo" yaml:"lo"`
	Hi      float64 `json:"hi" yaml:"hi"`
	GPAText string  `json:"gpa_text,omitempty" yaml:"gpa_text,omitempty"`
}

// GPA returns the parsed threshold and whether one is set.
func (s State) GPA() (float64, bool) { return ParseGPA(s.GPAText) }

// ParseGPA reads an optional minimum GPA. Blank text means no threshold; a
// comma is accepted as decimal separator. Unparseable text also means no
// threshold: the filter fails open instead of rejecting input.
func ParseGPA(text string) (float64, bool) {
	txt := strings.TrimSpace(text)
	if txt == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(txt, ",", "."), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// gpaIgnored reports whether non-blank GPA text was discarded as unparseable.
func gpaIgnored(text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}
	_, ok := ParseGPA(text)
	return !ok
}
