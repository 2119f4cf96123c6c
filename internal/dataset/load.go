package dataset

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/KaramelBytes/likertlens/internal/table"
)

// Options controls which columns are loaded and how they are typed.
type Options struct {
	// Columns to keep, in order. Empty keeps every source column.
	Columns []string
	// Numeric lists columns coerced to numbers; unparseable cells count as missing.
	Numeric []string
	// SentinelColumn and SentinelValue identify an aggregate row to exclude.
	// The sentinel column is dropped from the result.
	SentinelColumn string
	SentinelValue  string
	// Table selects the sheet or delimiter of the source file.
	Table table.Options
	// Numeric locale. If DecimalSeparator is 0, it is detected per value: the
	// right-most of ',' and '.' is the decimal mark, so a lone comma is always
	// decimal ("9,5" is 9.5 and "1,000" is 1.0). Set ',' or '.' explicitly
	// for files that use a comma as the thousands separator.
	DecimalSeparator   rune
	ThousandsSeparator rune
}

// Load reads the file at path and builds a Dataset.
func Load(path string, opt Options) (*Dataset, error) {
	raw, err := table.ReadFile(path, opt.Table)
	if err != nil {
		return nil, &DataLoadError{Path: path, Err: err}
	}
	ds, err := FromRaw(raw, opt)
	var le *DataLoadError
	if errors.As(err, &le) && le.Path == "" {
		le.Path = path
	}
	return ds, err
}

// FromRaw selects, cleans and types an in-memory table:
//  1. restrict to opt.Columns (SchemaError if one is absent)
//  2. drop sentinel rows, then the sentinel column
//  3. deduplicate column names
//  4. coerce numeric columns; bad numbers become missing
//  5. drop rows with any missing value
func FromRaw(raw *table.Raw, opt Options) (*Dataset, error) {
	if raw == nil || raw.Width() == 0 {
		return nil, &DataLoadError{Reason: "no header row"}
	}
	byName := make(map[string][]int, raw.Width())
	for j, h := range raw.Header {
		byName[h] = append(byName[h], j)
	}
	want := opt.Columns
	if len(want) == 0 {
		want = raw.Header
	}

	var src []int
	var names []string
	for _, name := range want {
		idxs, ok := byName[name]
		if !ok {
			return nil, &SchemaError{Column: name, Available: raw.Header}
		}
		for _, j := range idxs {
			src = append(src, j)
			names = append(names, name)
		}
	}

	sentinel := -1
	if opt.SentinelColumn != "" {
		idxs, ok := byName[opt.SentinelColumn]
		if !ok {
			return nil, &SchemaError{Column: opt.SentinelColumn, Available: raw.Header}
		}
		sentinel = idxs[0]
		keptSrc, keptNames := src[:0:0], names[:0:0]
		for k, name := range names {
			if name != opt.SentinelColumn {
				keptSrc = append(keptSrc, src[k])
				keptNames = append(keptNames, name)
			}
		}
		src, names = keptSrc, keptNames
	}

	names = DedupeNames(names)
	numeric := make([]bool, len(names))
	for _, n := range opt.Numeric {
		for k, name := range names {
			if name == n {
				numeric[k] = true
			}
		}
	}

	rows := make([][]Value, 0, len(raw.Rows))
	for i := range raw.Rows {
		if sentinel >= 0 && sameValue(raw.Cell(i, sentinel), opt.SentinelValue) {
			continue
		}
		row, ok := buildRow(raw, i, src, numeric, opt)
		if ok {
			rows = append(rows, row)
		}
	}
	if len(rows) == 0 {
		return nil, &DataLoadError{Reason: fmt.Sprintf("no rows left after filtering %d source rows", len(raw.Rows))}
	}
	return newDataset(raw.Name, names, numeric, rows), nil
}

// buildRow types one source row; ok is false when any retained cell is missing.
func buildRow(raw *table.Raw, i int, src []int, numeric []bool, opt Options) ([]Value, bool) {
	row := make([]Value, len(src))
	for k, j := range src {
		cell := raw.Cell(i, j)
		if isMissing(cell) {
			return nil, false
		}
		if numeric[k] {
			x, ok := parseNumber(cell, opt.DecimalSeparator, opt.ThousandsSeparator)
			if !ok {
				return nil, false
			}
			row[k] = Number(x)
			continue
		}
		row[k] = Text(cell)
	}
	return row, true
}

// sameValue compares a cell to the sentinel, numerically when both parse.
func sameValue(cell, sentinel string) bool {
	sentinel = strings.TrimSpace(sentinel)
	a, errA := strconv.ParseFloat(cell, 64)
	b, errB := strconv.ParseFloat(sentinel, 64)
	if errA == nil && errB == nil {
		return a == b
	}
	return cell == sentinel
}

// DedupeNames makes column names unique while preserving order. The first
// occurrence keeps its name; repeats get _2, _3, ... suffixes, skipping any
// suffixed name that is already taken.
func DedupeNames(names []string) []string {
	out := make([]string, len(names))
	count := make(map[string]int, len(names))
	taken := make(map[string]bool, len(names))
	for i, n := range names {
		name := n
		if taken[name] {
			k := max(count[n], 1)
			for {
				k++
				name = fmt.Sprintf("%s_%d", n, k)
				if !taken[name] {
					break
				}
			}
			count[n] = k
		}
		taken[name] = true
		out[i] = name
	}
	return out
}
