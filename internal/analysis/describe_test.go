package analysis

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/KaramelBytes/likertlens/internal/dataset"
)

func surveyFixture() *dataset.Dataset {
	titles := []string{"Datalogi", "Medicin", "Jura", "Historie", "Biologi", "Fysik"}
	regions := []string{"Nord", "Syd", "Nord", "Syd", "Nord", "Nord"}
	stress := []float64{1, 2, 3, 4, 5, 5}
	gpa := []float64{10.5, 11.8, 9.2, 7.0, 8.1, 9.0}
	rows := make([][]dataset.Value, len(titles))
	for i := range titles {
		rows[i] = []dataset.Value{
			dataset.Text(titles[i]),
			dataset.Text(regions[i]),
			dataset.Number(stress[i]),
			dataset.Number(6 - stress[i]),
			dataset.Number(gpa[i]),
		}
	}
	return dataset.New("survey.xlsx", []string{"titel", "region", "stress", "trivsel", "gpa"}, rows)
}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestDescribe_NumericStats(t *testing.T) {
	rep, err := Describe(surveyFixture(), nil, DefaultOptions())
	if err != nil {
		t.Fatalf("describe: %v", err)
	}
	if rep.Rows != 6 || rep.Total != 6 {
		t.Fatalf("rows=%d total=%d", rep.Rows, rep.Total)
	}
	c, ok := rep.Column("stress")
	if !ok || c.Kind != "numeric" {
		t.Fatalf("stress summary missing or wrong kind: %+v", c)
	}
	if c.Min != 1 || c.Max != 5 || c.NonNull != 6 || c.Unique != 5 {
		t.Fatalf("unexpected extrema/counts: %+v", c)
	}
	if !approx(c.Mean, 20.0/6.0) {
		t.Fatalf("mean=%v", c.Mean)
	}
	if !approx(c.Median, 3.5) {
		t.Fatalf("median=%v", c.Median)
	}
	// sum of squared deviations is 40/3
	if !approx(c.Std, math.Sqrt((40.0/3.0)/5.0)) {
		t.Fatalf("std=%v", c.Std)
	}
}

func TestDescribe_TextKinds(t *testing.T) {
	rep, err := Describe(surveyFixture(), nil, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	title, _ := rep.Column("titel")
	if title.Kind != "text" || len(title.ExampleTexts) != 3 {
		t.Fatalf("titel: %+v", title)
	}
	region, _ := rep.Column("region")
	if region.Kind != "categorical" {
		t.Fatalf("region kind=%s", region.Kind)
	}
	if region.TopValues[0] != (CategoryCount{Value: "Nord", Count: 4}) {
		t.Fatalf("top value=%+v", region.TopValues[0])
	}
}

func TestDescribe_Correlations(t *testing.T) {
	rep, err := Describe(surveyFixture(), nil, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if rep.Corr == nil || len(rep.Corr.Columns) != 3 {
		t.Fatalf("expected 3x3 matrix, got %+v", rep.Corr)
	}
	top := rep.Corr.TopPairs(1)
	if len(top) != 1 || top[0].A != "stress" || top[0].B != "trivsel" || !approx(top[0].R, -1) {
		t.Fatalf("top pair=%+v", top)
	}
	for i := range rep.Corr.Columns {
		if rep.Corr.Values[i][i] != 1 {
			t.Fatalf("diagonal[%d]=%v", i, rep.Corr.Values[i][i])
		}
	}
}

func TestDescribe_FilteredRowsAndGroups(t *testing.T) {
	opt := DefaultOptions()
	opt.GroupBy = "region"
	opt.Columns = []string{"stress", "gpa"}
	rep, err := Describe(surveyFixture(), []int{1, 2, 3}, opt)
	if err != nil {
		t.Fatal(err)
	}
	if rep.Rows != 3 || rep.Total != 6 || len(rep.Cols) != 2 {
		t.Fatalf("unexpected shape: rows=%d total=%d cols=%d", rep.Rows, rep.Total, len(rep.Cols))
	}
	c, _ := rep.Column("stress")
	if c.Min != 2 || c.Max != 4 || !approx(c.Mean, 3) {
		t.Fatalf("stress over view: %+v", c)
	}
	if len(rep.Groups) != 2 || rep.Groups[0].Key != "Syd" || rep.Groups[0].Size != 2 {
		t.Fatalf("groups=%+v", rep.Groups)
	}
	if m := rep.Groups[0].Metrics["stress"]; !approx(m.Mean, 3) || m.Count != 2 {
		t.Fatalf("Syd stress=%+v", m)
	}
}

func TestDescribe_NegativeSampleRowsUsesDefault(t *testing.T) {
	opt := DefaultOptions()
	opt.SampleRows = -1
	rep, err := Describe(surveyFixture(), nil, opt)
	if err != nil {
		t.Fatal(err)
	}
	if len(rep.Samples) != 5 {
		t.Fatalf("samples = %d, want 5", len(rep.Samples))
	}

	rep, err = Describe(surveyFixture(), []int{0, 1}, opt)
	if err != nil {
		t.Fatal(err)
	}
	if len(rep.Samples) != 2 {
		t.Fatalf("samples = %d, want 2", len(rep.Samples))
	}
}

func TestDescribe_EmptyViewAndUnknownColumn(t *testing.T) {
	rep, err := Describe(surveyFixture(), []int{}, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	md := rep.Markdown()
	if !strings.Contains(md, "Rows: 0 of 6") || !strings.Contains(md, "No rows match") {
		t.Fatalf("markdown:\n%s", md)
	}

	opt := DefaultOptions()
	opt.Columns = []string{"nope"}
	_, err = Describe(surveyFixture(), nil, opt)
	var se *dataset.SchemaError
	if !errors.As(err, &se) || se.Column != "nope" {
		t.Fatalf("expected SchemaError, got %v", err)
	}
}

func TestDescribe_Outliers(t *testing.T) {
	vals := []float64{10, 11, 9.5, 10.5, 9.8, 10.2, 8.8, 9.7, 50}
	rows := make([][]dataset.Value, len(vals))
	for i, v := range vals {
		rows[i] = []dataset.Value{dataset.Number(v)}
	}
	opt := DefaultOptions()
	opt.Outliers = true
	rep, err := Describe(dataset.New("scores", []string{"score"}, rows), nil, opt)
	if err != nil {
		t.Fatal(err)
	}
	c, _ := rep.Column("score")
	if c.OutliersCount != 1 || c.OutlierThreshold != 3.5 {
		t.Fatalf("outliers=%d thr=%v", c.OutliersCount, c.OutlierThreshold)
	}
}

func TestReport_MarkdownSections(t *testing.T) {
	opt := DefaultOptions()
	opt.GroupBy = "region"
	rep, err := Describe(surveyFixture(), nil, opt)
	if err != nil {
		t.Fatal(err)
	}
	md := rep.Markdown()
	for _, want := range []string{
		"[DATASET SUMMARY]", "File: survey.xlsx", "[SCHEMA]", "- stress: numeric (non-null 6)",
		"- region: categorical", "Nord(4)", "[GROUP-BY SUMMARY]", "[CORRELATIONS]",
		"- stress ~ trivsel: r=-1.000", "[SAMPLE ROWS]", "| Datalogi | Nord | 1 | 5 | 10.5 |",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q\n%s", want, md)
		}
	}
}
