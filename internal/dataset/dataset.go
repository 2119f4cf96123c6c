// Package dataset loads survey tables into an immutable, typed Dataset and
// derives display ranges for its numeric columns.
package dataset

import (
	"strconv"
)

// Kind is the type of a cell value.
type Kind int

const (
	KindString Kind = iota
	KindNumber
)

// Value is a single cell: a number or a string.
type Value struct {
	Kind Kind
	Num  float64
	Str  string
}

// Number returns a numeric Value.
func Number(x float64) Value { return Value{Kind: KindNumber, Num: x} }

// Text returns a string Value.
func Text(s string) Value { return Value{Kind: KindString, Str: s} }

// IsNumber reports whether v holds a number.
func (v Value) IsNumber() bool { return v.Kind == KindNumber }

// Any returns the value as float64 or string, for chart buffers and JSON.
func (v Value) Any() any {
	if v.Kind == KindNumber {
		return v.Num
	}
	return v.Str
}

func (v Value) String() string {
	if v.Kind == KindNumber {
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	}
	return v.Str
}

// Dataset is an ordered, read-only table. Column names are unique, and every
// row holds a value for every column.
type Dataset struct {
	Name    string
	columns []string
	numeric []bool
	index   map[string]int
	rows    [][]Value
}

func newDataset(name string, columns []string, numeric []bool, rows [][]Value) *Dataset {
	idx := make(map[string]int, len(columns))
	for i, c := range columns {
		idx[c] = i
	}
	return &Dataset{Name: name, columns: columns, numeric: numeric, index: idx, rows: rows}
}

// New builds a Dataset from already typed rows. Column names must be unique
// and every row must have len(columns) values; numeric columns are those
// whose values are all numbers.
func New(name string, columns []string, rows [][]Value) *Dataset {
	cols := append([]string(nil), columns...)
	numeric := make([]bool, len(cols))
	for j := range cols {
		numeric[j] = len(rows) > 0
		for _, r := range rows {
			if !r[j].IsNumber() {
				numeric[j] = false
				break
			}
		}
	}
	return newDataset(name, cols, numeric, rows)
}

// Columns returns the column names in order.
func (d *Dataset) Columns() []string {
	return append([]string(nil), d.columns...)
}

// Len returns the number of rows.
func (d *Dataset) Len() int { return len(d.rows) }

// Index returns the position of column name.
func (d *Dataset) Index(name string) (int, bool) {
	i, ok := d.index[name]
	return i, ok
}

// Has reports whether the dataset has column name.
func (d *Dataset) Has(name string) bool {
	_, ok := d.index[name]
	return ok
}

// IsNumeric reports whether column name exists and holds numbers only.
func (d *Dataset) IsNumeric(name string) bool {
	i, ok := d.index[name]
	return ok && d.numeric[i]
}

// At returns the value at row i, column j.
func (d *Dataset) At(i, j int) Value { return d.rows[i][j] }

// Row returns a copy of row i.
func (d *Dataset) Row(i int) []Value {
	return append([]Value(nil), d.rows[i]...)
}

// Floats returns the numeric values of column name in row order.
func (d *Dataset) Floats(name string) []float64 {
	j, ok := d.index[name]
	if !ok {
		return nil
	}
	out := make([]float64, 0, len(d.rows))
	for _, r := range d.rows {
		if r[j].IsNumber() {
			out = append(out, r[j].Num)
		}
	}
	return out
}
