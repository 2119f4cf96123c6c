// Package analysis summarizes the rows of a filtered survey view: per-column
// statistics, correlations and optional group-by means.
package analysis

import (
	"fmt"
	"sort"

	"github.com/KaramelBytes/likertlens/internal/dataset"
)

// Options controls what Describe computes.
type Options struct {
	// Columns limits the report to these columns; empty means all.
	Columns []string
	// SampleRows determines how many example rows to include in the report.
	SampleRows int
	// TopValues is the number of most frequent values listed per categorical column.
	TopValues int
	// GroupBy computes per-group means keyed by this text column.
	GroupBy string
	// Correlations computes Pearson correlations among numeric columns.
	Correlations bool
	// Outliers counts values whose robust Z-score (MAD) exceeds OutlierThreshold.
	Outliers         bool
	OutlierThreshold float64
}

// DefaultOptions returns reasonable defaults for describing a view.
func DefaultOptions() Options {
	return Options{
		SampleRows:       5,
		TopValues:        5,
		Correlations:     true,
		OutlierThreshold: 3.5,
	}
}

// categoricalMaxUnique is the largest distinct-value count still reported as
// categorical rather than free text.
const categoricalMaxUnique = 20

// Describe summarizes rows of ds. rows are dataset row indices, typically a
// filtered view; nil means every row.
func Describe(ds *dataset.Dataset, rows []int, opt Options) (*Report, error) {
	if opt.SampleRows < 0 {
		opt.SampleRows = DefaultOptions().SampleRows
	}
	if rows == nil {
		rows = make([]int, ds.Len())
		for i := range rows {
			rows[i] = i
		}
	}
	names := opt.Columns
	if len(names) == 0 {
		names = ds.Columns()
	}
	idx := make([]int, len(names))
	for k, n := range names {
		j, ok := ds.Index(n)
		if !ok {
			return nil, &dataset.SchemaError{Column: n, Available: ds.Columns()}
		}
		idx[k] = j
	}
	groupCol := -1
	if opt.GroupBy != "" {
		j, ok := ds.Index(opt.GroupBy)
		if !ok {
			return nil, &dataset.SchemaError{Column: opt.GroupBy, Available: ds.Columns()}
		}
		groupCol = j
	}

	rep := &Report{Name: ds.Name, Rows: len(rows), Total: ds.Len()}
	var numeric []int // positions into names
	for k, n := range names {
		if ds.IsNumeric(n) {
			numeric = append(numeric, k)
		}
	}

	for k, n := range names {
		j := idx[k]
		s := ColumnSummary{Name: n}
		if ds.IsNumeric(n) {
			s.Kind = "numeric"
			var w welford
			vals := make([]float64, 0, len(rows))
			seen := map[float64]struct{}{}
			for _, i := range rows {
				x := ds.At(i, j).Num
				w.add(x)
				vals = append(vals, x)
				seen[x] = struct{}{}
			}
			s.NonNull, s.Unique = w.n, len(seen)
			s.Min, s.Max, s.Mean, s.Std = w.min, w.max, w.mean, w.std()
			var mad float64
			s.Median, mad = medianMAD(vals)
			if opt.Outliers && len(vals) >= 8 {
				applyOutliers(&s, vals, mad, opt.OutlierThreshold)
			}
		} else {
			counts := map[string]int{}
			var order []string
			for _, i := range rows {
				v := ds.At(i, j).String()
				if counts[v] == 0 {
					order = append(order, v)
				}
				counts[v]++
				s.NonNull++
			}
			s.Unique = len(counts)
			if s.Unique <= categoricalMaxUnique && s.Unique < s.NonNull {
				s.Kind = "categorical"
				s.TopValues = topValues(counts, opt.TopValues)
			} else {
				s.Kind = "text"
				s.ExampleTexts = order[:min(3, len(order))]
			}
		}
		rep.Cols = append(rep.Cols, s)
	}

	if opt.Correlations && len(numeric) >= 2 {
		rep.Corr = correlations(ds, rows, names, idx, numeric)
	}
	if groupCol >= 0 {
		rep.Groups = groupMeans(ds, rows, groupCol, names, idx, numeric)
	}
	for _, i := range rows[:min(opt.SampleRows, len(rows))] {
		rec := make([]string, len(idx))
		for k, j := range idx {
			rec[k] = ds.At(i, j).String()
		}
		rep.Samples = append(rep.Samples, rec)
	}

	switch {
	case len(rows) == 0:
		rep.Warnings = append(rep.Warnings, "No rows match the current filter.")
	case len(rows) < 3 && rep.Corr != nil:
		rep.Warnings = append(rep.Warnings, fmt.Sprintf("Only %d rows: correlations are not meaningful.", len(rows)))
	}
	return rep, nil
}

func applyOutliers(s *ColumnSummary, vals []float64, mad, thr float64) {
	if thr <= 0 {
		thr = 3.5
	}
	s.OutlierThreshold = thr
	if mad == 0 {
		return
	}
	for _, v := range vals {
		az := 0.6745 * (v - s.Median) / mad
		if az < 0 {
			az = -az
		}
		if az > thr {
			s.OutliersCount++
		}
		s.OutliersMaxAbsZ = max(s.OutliersMaxAbsZ, az)
	}
}

func topValues(counts map[string]int, n int) []CategoryCount {
	tops := make([]CategoryCount, 0, len(counts))
	for k, v := range counts {
		tops = append(tops, CategoryCount{Value: k, Count: v})
	}
	sort.Slice(tops, func(i, j int) bool {
		if tops[i].Count == tops[j].Count {
			return tops[i].Value < tops[j].Value
		}
		return tops[i].Count > tops[j].Count
	})
	if n > 0 && len(tops) > n {
		tops = tops[:n]
	}
	return tops
}

func correlations(ds *dataset.Dataset, rows []int, names []string, idx, numeric []int) *CorrMatrix {
	n := len(numeric)
	cols := make([]string, n)
	mat := make([][]float64, n)
	for a := range numeric {
		cols[a] = names[numeric[a]]
		mat[a] = make([]float64, n)
	}
	for a := 0; a < n; a++ {
		mat[a][a] = 1
		for b := a + 1; b < n; b++ {
			var p pairAcc
			ja, jb := idx[numeric[a]], idx[numeric[b]]
			for _, i := range rows {
				p.add(ds.At(i, ja).Num, ds.At(i, jb).Num)
			}
			mat[a][b] = p.r()
			mat[b][a] = mat[a][b]
		}
	}
	return &CorrMatrix{Columns: cols, Values: mat}
}

func groupMeans(ds *dataset.Dataset, rows []int, groupCol int, names []string, idx, numeric []int) []GroupResult {
	type acc struct {
		size  int
		stats map[string]*welford
	}
	groups := map[string]*acc{}
	for _, i := range rows {
		key := ds.At(i, groupCol).String()
		g := groups[key]
		if g == nil {
			g = &acc{stats: map[string]*welford{}}
			groups[key] = g
		}
		g.size++
		for _, k := range numeric {
			w := g.stats[names[k]]
			if w == nil {
				w = &welford{}
				g.stats[names[k]] = w
			}
			w.add(ds.At(i, idx[k]).Num)
		}
	}
	out := make([]GroupResult, 0, len(groups))
	for key, g := range groups {
		gr := GroupResult{Key: key, Size: g.size, Metrics: map[string]NumSummary{}}
		for name, w := range g.stats {
			gr.Metrics[name] = NumSummary{Count: w.n, Min: w.min, Max: w.max, Mean: w.mean}
		}
		out = append(out, gr)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Size == out[j].Size {
			return out[i].Key < out[j].Key
		}
		return out[i].Size > out[j].Size
	})
	return out
}
