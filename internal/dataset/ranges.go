package dataset

import (
	"math"
)

// ColumnRange is a closed display interval [Lo, Hi] for a numeric column.
type ColumnRange struct {
	Lo float64 `json:"lo" yaml:"lo"`
	Hi float64 `json:"hi" yaml:"hi"`
}

// DefaultRange is used for columns without numeric values.
var DefaultRange = ColumnRange{Lo: 0, Hi: 1}

// EstimateRange returns the span of column's numeric values. Data lying
// within [1, 5] is treated as a Likert scale: bounds are rounded outward to
// whole points and clamped to [1, 5].
func EstimateRange(ds *Dataset, column string) ColumnRange {
	lo, hi := math.Inf(1), math.Inf(-1)
	n := 0
	for _, x := range ds.Floats(column) {
		if math.IsNaN(x) {
			continue
		}
		n++
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}
	if n == 0 {
		return DefaultRange
	}
	if lo >= 1 && hi <= 5 {
		lo = math.Max(1, math.Floor(lo))
		hi = math.Min(5, math.Ceil(hi))
	}
	return ColumnRange{Lo: lo, Hi: hi}
}

// Step is the slider granularity for the range: whole points for narrow
// ranges, half points otherwise.
func (r ColumnRange) Step() float64 {
	if r.Hi-r.Lo <= 10 {
		return 1.0
	}
	return 0.5
}

// Contains reports whether x lies in [Lo, Hi].
func (r ColumnRange) Contains(x float64) bool {
	return x >= r.Lo && x <= r.Hi
}

// Pad widens the range by d on both sides.
func (r ColumnRange) Pad(d float64) ColumnRange {
	return ColumnRange{Lo: r.Lo - d, Hi: r.Hi + d}
}

// Normalize returns the range with Lo <= Hi.
func (r ColumnRange) Normalize() ColumnRange {
	if r.Lo > r.Hi {
		return ColumnRange{Lo: r.Hi, Hi: r.Lo}
	}
	return r
}
