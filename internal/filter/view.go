package filter

import (
	"encoding/csv"
	"fmt"
	"html"
	"io"
	"strconv"
	"strings"

	"github.com/KaramelBytes/likertlens/internal/dataset"
)

// View is the filtered subset of a Dataset, as row indices in dataset order.
type View struct {
	data *dataset.Dataset
	rows []int
}

// Len returns the number of rows in the view.
func (v *View) Len() int {
	if v == nil {
		return 0
	}
	return len(v.rows)
}

// Rows returns the dataset row indices of the view. The result is never nil,
// so an empty view stays distinguishable from "all rows".
func (v *View) Rows() []int {
	if v == nil {
		return []int{}
	}
	out := make([]int, len(v.rows))
	copy(out, v.rows)
	return out
}

// Dataset returns the dataset the view selects from.
func (v *View) Dataset() *dataset.Dataset { return v.data }

// ColumnData returns the chart buffer: every column name mapped to the
// view's values in row order. Numbers are float64, text is string.
func (v *View) ColumnData() map[string][]any {
	out := map[string][]any{}
	if v == nil || v.data == nil {
		return out
	}
	for j, name := range v.data.Columns() {
		vals := make([]any, len(v.rows))
		for k, i := range v.rows {
			vals[k] = v.data.At(i, j).Any()
		}
		out[name] = vals
	}
	return out
}

// Floats returns the numeric values of column for the view's rows.
func (v *View) Floats(column string) []float64 {
	if v == nil || v.data == nil {
		return nil
	}
	j, ok := v.data.Index(column)
	if !ok {
		return nil
	}
	out := make([]float64, 0, len(v.rows))
	for _, i := range v.rows {
		if val := v.data.At(i, j); val.IsNumber() {
			out = append(out, val.Num)
		}
	}
	return out
}

// Records returns the selected columns of up to limit rows as strings; a
// limit <= 0 returns every row. Unknown columns are skipped.
func (v *View) Records(columns []string, limit int) [][]string {
	if v == nil || v.data == nil {
		return nil
	}
	var idx []int
	for _, c := range columns {
		if j, ok := v.data.Index(c); ok {
			idx = append(idx, j)
		}
	}
	n := len(v.rows)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([][]string, n)
	for k := 0; k < n; k++ {
		rec := make([]string, len(idx))
		for m, j := range idx {
			rec[m] = v.data.At(v.rows[k], j).String()
		}
		out[k] = rec
	}
	return out
}

// WriteCSV writes the view with a header row.
func (v *View) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	cols := v.data.Columns()
	if err := cw.Write(cols); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, rec := range v.Records(cols, 0) {
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Summary describes a filter result for display.
type Summary struct {
	Rows   int     `json:"rows"`
	Total  int     `json:"total"`
	Column string  `json:"column"`
	Lo     float64 `json:"lo"`
	Hi     float64 `json:"hi"`
	GPA    float64 `json:"gpa"`
	GPASet bool    `json:"gpa_set"`
	Err    string  `json:"error,omitempty"`
}

func errorSummary(err error) Summary { return Summary{Err: err.Error()} }

// HTML renders the summary for HTML-capable displays.
func (s Summary) HTML() string {
	if s.Err != "" {
		return "<b>Error:</b> " + html.EscapeString(s.Err)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "<b>Rows after filter:</b> %d / %d<br>", s.Rows, s.Total)
	fmt.Fprintf(&b, "<b>Likert column:</b> %s in [%s, %s]<br>", html.EscapeString(s.Column), formatFloat(s.Lo), formatFloat(s.Hi))
	if s.GPASet {
		b.WriteString("<b>GPA ≥</b> " + formatFloat(s.GPA))
	} else {
		b.WriteString("<i>GPA filter off</i>")
	}
	return b.String()
}

// Text renders the summary as plain lines for terminals.
func (s Summary) Text() string {
	if s.Err != "" {
		return "Error: " + s.Err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Rows after filter: %d / %d\n", s.Rows, s.Total)
	fmt.Fprintf(&b, "Likert column: %s in [%s, %s]\n", s.Column, formatFloat(s.Lo), formatFloat(s.Hi))
	if s.GPASet {
		b.WriteString("GPA ≥ " + formatFloat(s.GPA))
	} else {
		b.WriteString("GPA filter off")
	}
	return b.String()
}

func formatFloat(x float64) string { return strconv.FormatFloat(x, 'f', -1, 64) }
