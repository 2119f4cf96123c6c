package filter

import (
	"fmt"

	"github.com/KaramelBytes/likertlens/internal/dataset"
)

// InvalidColumnError indicates a column that cannot be filtered on.
type InvalidColumnError struct {
	Column string
	Reason string
}

func (e *InvalidColumnError) Error() string {
	return fmt.Sprintf("invalid column %q: %s", e.Column, e.Reason)
}

// Engine applies filter states to one Dataset. It is read-only and may be
// shared.
type Engine struct {
	data      *dataset.Dataset
	allowed   []string
	gpaColumn string
}

// NewEngine returns an Engine over ds. Only columns in allowed can be
// selected; an empty allow-list permits every numeric column. gpaColumn
// names the column compared against the GPA threshold.
func NewEngine(ds *dataset.Dataset, allowed []string, gpaColumn string) *Engine {
	return &Engine{data: ds, allowed: append([]string(nil), allowed...), gpaColumn: gpaColumn}
}

// Dataset returns the underlying dataset.
func (e *Engine) Dataset() *dataset.Dataset { return e.data }

// Options returns the selectable columns, in allow-list order.
func (e *Engine) Options() []string {
	src := e.allowed
	if len(src) == 0 {
		src = e.data.Columns()
	}
	out := make([]string, 0, len(src))
	for _, c := range src {
		if e.data.IsNumeric(c) {
			out = append(out, c)
		}
	}
	return out
}

// DefaultColumn returns preferred when it is selectable, else the first option.
func (e *Engine) DefaultColumn(preferred string) (string, error) {
	opts := e.Options()
	if len(opts) == 0 {
		return "", &InvalidColumnError{Column: preferred, Reason: "no selectable numeric columns in dataset"}
	}
	for _, c := range opts {
		if c == preferred {
			return c, nil
		}
	}
	return opts[0], nil
}

// Validate checks that column can be filtered on.
func (e *Engine) Validate(column string) error {
	if len(e.allowed) > 0 {
		found := false
		for _, c := range e.allowed {
			if c == column {
				found = true
				break
			}
		}
		if !found {
			return &InvalidColumnError{Column: column, Reason: "not in the selectable column list"}
		}
	}
	if !e.data.Has(column) {
		return &InvalidColumnError{Column: column, Reason: "not present in dataset"}
	}
	if !e.data.IsNumeric(column) {
		return &InvalidColumnError{Column: column, Reason: "not numeric"}
	}
	return nil
}

// Range estimates the slider bounds of column.
func (e *Engine) Range(column string) dataset.ColumnRange {
	return dataset.EstimateRange(e.data, column)
}

// Apply returns the rows whose column value lies in [Lo, Hi] and, when a GPA
// threshold is set and the GPA column exists, whose GPA is at least the
// threshold. A threshold without a GPA column is ignored.
func (e *Engine) Apply(s State) (*View, Summary, error) {
	if err := e.Validate(s.Column); err != nil {
		return nil, Summary{}, err
	}
	r := dataset.ColumnRange{Lo: s.Lo, Hi: s.Hi}.Normalize()
	col, _ := e.data.Index(s.Column)

	gpa, gpaSet := s.GPA()
	gpaCol := -1
	if gpaSet && e.gpaColumn != "" && e.data.IsNumeric(e.gpaColumn) {
		gpaCol, _ = e.data.Index(e.gpaColumn)
	}

	rows := make([]int, 0, e.data.Len())
	for i := 0; i < e.data.Len(); i++ {
		if !r.Contains(e.data.At(i, col).Num) {
			continue
		}
		if gpaCol >= 0 && !(e.data.At(i, gpaCol).Num >= gpa) {
			continue
		}
		rows = append(rows, i)
	}

	view := &View{data: e.data, rows: rows}
	sum := Summary{
		Rows:   len(rows),
		Total:  e.data.Len(),
		Column: s.Column,
		Lo:     r.Lo,
		Hi:     r.Hi,
	}
	if gpaCol >= 0 {
		sum.GPA, sum.GPASet = gpa, true
	}
	return view, sum, nil
}
