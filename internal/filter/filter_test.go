package filter

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/likertlens/internal/dataset"
)

var likertColumns = []string{"stress", "ensom", "fagligmiljo"}

// surveyData has six programmes with stress values 1, 2, 3, 4, 5, 5.
func surveyData(withGPA bool) *dataset.Dataset {
	cols := []string{"titel", "stress", "ensom"}
	if withGPA {
		cols = append(cols, "gpa")
	}
	raw := []struct {
		title         string
		stress, ensom float64
		gpa           float64
	}{
		{"Datalogi", 1, 2, 10.5},
		{"Medicin", 2, 3, 11.8},
		{"Jura", 3, 4, 9.2},
		{"Historie", 4, 2, 7.0},
		{"Biologi", 5, 3, 8.1},
		{"Fysik", 5, 1, 9.0},
	}
	rows := make([][]dataset.Value, len(raw))
	for i, r := range raw {
		row := []dataset.Value{dataset.Text(r.title), dataset.Number(r.stress), dataset.Number(r.ensom)}
		if withGPA {
			row = append(row, dataset.Number(r.gpa))
		}
		rows[i] = row
	}
	return dataset.New("survey", cols, rows)
}

func TestParseGPA(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"9", 9.0, true},
		{"9,5", 9.5, true},
		{" 10.2 ", 10.2, true},
		{"", 0, false},
		{"   ", 0, false},
		{"abc", 0, false},
		{"9,5,1", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseGPA(tt.in)
		assert.Equal(t, tt.wantOK, ok, "ParseGPA(%q)", tt.in)
		assert.Equal(t, tt.want, got, "ParseGPA(%q)", tt.in)
	}
}

func TestApply_RangeScenario(t *testing.T) {
	e := NewEngine(surveyData(true), likertColumns, "gpa")
	view, sum, err := e.Apply(State{Column: "stress", Lo: 2, Hi: 4})
	require.NoError(t, err)

	assert.Equal(t, 3, view.Len())
	assert.Equal(t, []float64{2, 3, 4}, view.Floats("stress"))
	assert.Equal(t, 3, sum.Rows)
	assert.Equal(t, 6, sum.Total)
	assert.Contains(t, sum.HTML(), "3 / 6")
	assert.Contains(t, sum.HTML(), "<b>Likert column:</b> stress in [2, 4]")
	assert.Contains(t, sum.HTML(), "<i>GPA filter off</i>")
	assert.Contains(t, sum.Text(), "Rows after filter: 3 / 6")
}

func TestApply_GPAThreshold(t *testing.T) {
	e := NewEngine(surveyData(true), likertColumns, "gpa")
	view, sum, err := e.Apply(State{Column: "stress", Lo: 1, Hi: 5, GPAText: "9"})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 5}, view.Rows())
	assert.True(t, sum.GPASet)
	assert.Contains(t, sum.HTML(), "<b>GPA ≥</b> 9")

	view, _, err = e.Apply(State{Column: "stress", Lo: 1, Hi: 5, GPAText: "9,5"})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, view.Rows())
}

func TestSummary_JSONKeepsZeroThreshold(t *testing.T) {
	e := NewEngine(surveyData(true), likertColumns, "gpa")
	_, sum, err := e.Apply(State{Column: "stress", Lo: 1, Hi: 5, GPAText: "0"})
	require.NoError(t, err)
	require.True(t, sum.GPASet)

	b, err := json.Marshal(sum)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"gpa":0,`)
	assert.Contains(t, string(b), `"gpa_set":true`)
}

func TestApply_GPAColumnAbsentIgnoresThreshold(t *testing.T) {
	e := NewEngine(surveyData(false), likertColumns, "gpa")
	view, sum, err := e.Apply(State{Column: "stress", Lo: 2, Hi: 5, GPAText: "9"})
	require.NoError(t, err)
	assert.Equal(t, 5, view.Len())
	assert.False(t, sum.GPASet)
	assert.Contains(t, sum.Text(), "GPA filter off")
}

func TestApply_UnparseableGPAFailsOpen(t *testing.T) {
	e := NewEngine(surveyData(true), likertColumns, "gpa")
	view, sum, err := e.Apply(State{Column: "stress", Lo: 1, Hi: 5, GPAText: "abc"})
	require.NoError(t, err)
	assert.Equal(t, 6, view.Len())
	assert.False(t, sum.GPASet)
}

func TestApply_InvalidColumn(t *testing.T) {
	e := NewEngine(surveyData(true), likertColumns, "gpa")
	for _, col := range []string{"titel", "gpa", "fagligmiljo", "nope"} {
		_, _, err := e.Apply(State{Column: col, Lo: 0, Hi: 10})
		var ice *InvalidColumnError
		require.True(t, errors.As(err, &ice), "column %q: %v", col, err)
		assert.Equal(t, col, ice.Column)
	}
}

func TestApply_EmptyAllowListAcceptsNumericColumns(t *testing.T) {
	e := NewEngine(surveyData(true), nil, "gpa")
	assert.Equal(t, []string{"stress", "ensom", "gpa"}, e.Options())
	_, _, err := e.Apply(State{Column: "gpa", Lo: 0, Hi: 20})
	require.NoError(t, err)
	_, _, err = e.Apply(State{Column: "titel", Lo: 0, Hi: 20})
	require.Error(t, err)
}

func TestApply_Idempotent(t *testing.T) {
	e := NewEngine(surveyData(true), likertColumns, "gpa")
	st := State{Column: "ensom", Lo: 2, Hi: 3, GPAText: "8"}
	v1, s1, err := e.Apply(st)
	require.NoError(t, err)
	v2, s2, err := e.Apply(st)
	require.NoError(t, err)
	assert.Equal(t, v1.Rows(), v2.Rows())
	assert.Equal(t, s1, s2)
	assert.Equal(t, s1.HTML(), s2.HTML())
}

func TestApply_NarrowingIsMonotone(t *testing.T) {
	e := NewEngine(surveyData(true), likertColumns, "gpa")
	ranges := [][2]float64{{1, 5}, {1, 4}, {2, 4}, {2, 3}, {3, 3}, {3.5, 3.5}}
	prev, _, err := e.Apply(State{Column: "stress", Lo: ranges[0][0], Hi: ranges[0][1]})
	require.NoError(t, err)
	for _, r := range ranges[1:] {
		cur, _, err := e.Apply(State{Column: "stress", Lo: r[0], Hi: r[1]})
		require.NoError(t, err)
		assert.Subset(t, prev.Rows(), cur.Rows(), "range %v", r)
		prev = cur
	}
}

func TestApply_ReversedRangeIsSwapped(t *testing.T) {
	e := NewEngine(surveyData(true), likertColumns, "gpa")
	view, sum, err := e.Apply(State{Column: "stress", Lo: 4, Hi: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, view.Len())
	assert.Equal(t, 2.0, sum.Lo)
}

func TestView_ColumnDataAndCSV(t *testing.T) {
	e := NewEngine(surveyData(true), likertColumns, "gpa")
	view, _, err := e.Apply(State{Column: "stress", Lo: 5, Hi: 5})
	require.NoError(t, err)

	data := view.ColumnData()
	assert.Len(t, data, 4)
	assert.Equal(t, []any{"Biologi", "Fysik"}, data["titel"])
	assert.Equal(t, []any{5.0, 5.0}, data["stress"])

	var buf bytes.Buffer
	require.NoError(t, view.WriteCSV(&buf))
	assert.Equal(t, "titel,stress,ensom,gpa\nBiologi,5,3,8.1\nFysik,5,1,9\n", buf.String())

	assert.Equal(t, [][]string{{"Biologi", "3"}}, view.Records([]string{"titel", "missing", "ensom"}, 1))
}

func TestSession_InitialAndEvents(t *testing.T) {
	var published []Update
	sink := SinkFunc(func(u Update) { published = append(published, u) })
	s, err := NewSession(NewEngine(surveyData(true), likertColumns, "gpa"), sink, "fagligmiljo")
	require.NoError(t, err)

	// fagligmiljo is not in the dataset, so the first option is used.
	require.Len(t, published, 1)
	assert.Equal(t, "stress", s.State().Column)
	assert.Equal(t, dataset.ColumnRange{Lo: 1, Hi: 5}, s.Bounds())
	assert.Equal(t, 6, published[0].View.Len())
	assert.Equal(t, 1.0, published[0].Step)

	u := s.Dispatch(RangeChanged{Lo: 2, Hi: 4})
	assert.Equal(t, 3, u.View.Len())

	u = s.Dispatch(ThresholdTextChanged{Text: "9,5"})
	assert.Equal(t, 1, u.View.Len())
	assert.Empty(t, u.Warning)

	u = s.Dispatch(ColumnChanged{Column: "ensom"})
	assert.Equal(t, State{Column: "ensom", Lo: 1, Hi: 4, GPAText: "9,5"}, u.State)
	assert.Equal(t, 2, u.View.Len(), "range resets but GPA threshold stays")

	u = s.Dispatch(ThresholdTextChanged{Text: "lots"})
	assert.Equal(t, 6, u.View.Len())
	assert.NotEmpty(t, u.Warning)

	assert.Len(t, published, 5)
	assert.Equal(t, u, s.Last())
}

func TestSession_InvalidColumnKeepsLoopAlive(t *testing.T) {
	s, err := NewSession(NewEngine(surveyData(true), likertColumns, "gpa"), nil, "stress")
	require.NoError(t, err)
	s.Dispatch(RangeChanged{Lo: 2, Hi: 3})

	u := s.Dispatch(ColumnChanged{Column: "titel"})
	require.Error(t, u.Err)
	assert.Equal(t, 0, u.View.Len())
	assert.Contains(t, u.Summary.HTML(), "<b>Error:</b>")
	assert.Equal(t, State{Column: "stress", Lo: 2, Hi: 3}, s.State(), "state unchanged")

	u = s.Dispatch(RangeChanged{Lo: 1, Hi: 2})
	require.NoError(t, u.Err)
	assert.Equal(t, 2, u.View.Len())
}

func TestSession_Restore(t *testing.T) {
	s, err := NewSession(NewEngine(surveyData(true), likertColumns, "gpa"), nil, "stress")
	require.NoError(t, err)
	u := s.Restore(State{Column: "ensom", Lo: 3, Hi: 2, GPAText: "9"})
	require.NoError(t, u.Err)
	assert.Equal(t, State{Column: "ensom", Lo: 2, Hi: 3, GPAText: "9"}, s.State())
	assert.Equal(t, []int{0, 1}, u.View.Rows())
}

func TestSession_NoSelectableColumns(t *testing.T) {
	ds := dataset.New("t", []string{"titel"}, [][]dataset.Value{{dataset.Text("x")}})
	_, err := NewSession(NewEngine(ds, likertColumns, ""), nil, "stress")
	var ice *InvalidColumnError
	require.True(t, errors.As(err, &ice))
}

func TestApply_NaNRangeSelectsNothing(t *testing.T) {
	e := NewEngine(surveyData(true), likertColumns, "gpa")
	view, _, err := e.Apply(State{Column: "stress", Lo: math.NaN(), Hi: 5})
	require.NoError(t, err)
	assert.Equal(t, 0, view.Len())
}
