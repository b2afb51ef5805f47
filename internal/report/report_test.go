package report

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/bargain-cli/internal/model"
)

func strPtr(s string) *string { return &s }

func classPtr(c model.Class) *model.Class { return &c }

type rec struct {
	payoff   string
	deal     bool
	manager  bool
	mistakes int
	class    *model.Class
	baseline string
	second   *string
}

func table(recs ...rec) *model.Table {
	t := &model.Table{Columns: []string{model.ColPayoff, model.ColBaseline}}
	for i, r := range recs {
		t.Records = append(t.Records, model.Record{
			Line: i + 2,
			Values: map[string]string{
				model.ColPayoff:   r.payoff,
				model.ColBaseline: r.baseline,
			},
			Derived: model.Derived{
				ComprehensionMistakes: r.mistakes,
				IsManager:             r.manager,
				HumanDeal:             r.deal,
				ProductClass:          r.class,
				SecondMoverChoice:     r.second,
			},
		})
	}
	return t
}

func TestNewHistogram(t *testing.T) {
	h := NewHistogram([]float64{0, 1, 2, 3, 4, 5, 6, 7}, 7)

	assert.Equal(t, 8, h.Count)
	assert.InDelta(t, 3.5, h.Mean, 1e-9)
	assert.InDelta(t, 3.5, h.Median, 1e-9)
	require.Len(t, h.Edges, 8)
	assert.InDelta(t, 0, h.Edges[0], 1e-9)
	assert.InDelta(t, 7, h.Edges[7], 1e-9)
	// Maximum lands in the closed last bin.
	assert.Equal(t, []int{1, 1, 1, 1, 1, 1, 2}, h.Counts)
}

func TestNewHistogram_OddMedian(t *testing.T) {
	h := NewHistogram([]float64{10, 0, 5}, 7)
	assert.InDelta(t, 5, h.Median, 1e-9)
	assert.InDelta(t, 5, h.Mean, 1e-9)
	assert.Equal(t, 3, sum(h.Counts))
}

func TestNewHistogram_Constant(t *testing.T) {
	h := NewHistogram([]float64{4, 4, 4}, 7)
	assert.InDelta(t, 3.5, h.Edges[0], 1e-9)
	assert.InDelta(t, 4.5, h.Edges[7], 1e-9)
	assert.Equal(t, 3, h.Counts[3])
	assert.Equal(t, 3, sum(h.Counts))
}

func TestNewHistogram_Empty(t *testing.T) {
	h := NewHistogram(nil, 7)
	assert.True(t, h.Empty())
	assert.Nil(t, h.Counts)
}

func sum(xs []int) int {
	n := 0
	for _, x := range xs {
		n += x
	}
	return n
}

func TestPayoffs(t *testing.T) {
	tbl := table(
		rec{payoff: "10", deal: true},
		rec{payoff: "20", deal: false},
		rec{payoff: "30", deal: true},
		rec{payoff: "", deal: true},
		rec{payoff: "n/a", deal: true},
	)

	p := Payoffs(tbl)
	assert.Equal(t, 3, p.All.Count)
	assert.InDelta(t, 20, p.All.Mean, 1e-9)
	assert.Equal(t, 2, p.HumanDeal.Count)
	assert.InDelta(t, 20, p.HumanDeal.Median, 1e-9)
}

func TestComprehension(t *testing.T) {
	tbl := table(
		rec{manager: false, mistakes: 0},
		rec{manager: false, mistakes: 0},
		rec{manager: false, mistakes: 2},
		rec{manager: false, mistakes: 2},
		rec{manager: true, mistakes: 1},
	)

	ct := Comprehension(tbl)
	assert.Equal(t, []int{0, 1, 2}, ct.Mistakes)
	require.Len(t, ct.Rows, 2)

	assert.False(t, ct.Rows[0].IsManager)
	assert.Equal(t, 4, ct.Rows[0].Count)
	assert.InDeltaSlice(t, []float64{50, 0, 50}, ct.Rows[0].Percent, 1e-9)

	assert.True(t, ct.Rows[1].IsManager)
	assert.InDeltaSlice(t, []float64{0, 100, 0}, ct.Rows[1].Percent, 1e-9)
}

func TestComprehension_OnlyObservedGroups(t *testing.T) {
	ct := Comprehension(table(rec{manager: true, mistakes: 3}))
	require.Len(t, ct.Rows, 1)
	assert.True(t, ct.Rows[0].IsManager)
}

func TestDecisions(t *testing.T) {
	a, c := classPtr(model.ClassA), classPtr(model.ClassC)
	tbl := table(
		rec{manager: true, class: a, baseline: "0", second: strPtr("HS")},
		rec{manager: true, class: a, baseline: "0", second: strPtr("HS")},
		rec{manager: true, class: a, baseline: "1", second: strPtr("AJ")},
		rec{manager: true, class: a, baseline: "1", second: strPtr("XX")},
		rec{manager: false, class: a, baseline: "1", second: strPtr("AJ")},
		rec{manager: true, class: a, baseline: "", second: strPtr("AJ")},
		rec{manager: true, class: a, baseline: "1", second: nil},
		rec{manager: true, class: c, baseline: "0", second: strPtr("AJ")},
		rec{manager: true, class: nil, baseline: "0", second: strPtr("AJ")},
	)

	ds := Decisions(tbl)
	require.Len(t, ds, 3)

	assert.Equal(t, model.ClassA, ds[0].Class)
	assert.Equal(t, "A", ds[0].Superior)
	assert.Equal(t, []ChoiceCount{
		{Choice: "AJ", Label: "Option B (AI if treated)", Treatment: 0, Control: 1},
		{Choice: "HS", Label: "Option A", Treatment: 2, Control: 0},
		{Choice: "XX", Label: "Choice XX", Treatment: 0, Control: 1},
	}, ds[0].Choices)

	assert.Equal(t, "NONE", ds[1].Superior)
	assert.Empty(t, ds[1].Choices)

	assert.Equal(t, "B", ds[2].Superior)
	assert.Equal(t, []ChoiceCount{{Choice: "AJ", Label: "Option B (AI if treated)", Treatment: 1}}, ds[2].Choices)
}

func sampleReport() *Report {
	a := classPtr(model.ClassA)
	return Build("run-1", table(
		rec{payoff: "10", deal: true, manager: true, mistakes: 0, class: a, baseline: "0", second: strPtr("HS")},
		rec{payoff: "30", deal: false, manager: false, mistakes: 2, class: a, baseline: "1", second: strPtr("AJ")},
	))
}

func TestMarkdown(t *testing.T) {
	md := Markdown(sampleReport())

	assert.Contains(t, md, "Run: run-1")
	assert.Contains(t, md, "Participants: 2")
	assert.Contains(t, md, "- Mean: 20.0")
	assert.Contains(t, md, "| false | 1 | 0.0% | 100.0% |")
	assert.Contains(t, md, "### Class A (superior: Option A)")
	assert.Contains(t, md, "| Option A | 1 | 0 |")
	assert.Contains(t, md, "### Class B (superior: Option NONE)\nNo decisions.")
	assert.Contains(t, md, "| [27.14, 30.00] | 1 |")
}

func TestMarkdown_Empty(t *testing.T) {
	md := Markdown(Build("run-2", &model.Table{}))
	assert.Contains(t, md, "No payoffs.")
	assert.Contains(t, md, "No participants.")
}

func TestWriteWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, WriteWorkbook(sampleReport(), path))

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	require.Len(t, f.Sheets, 3)
	assert.Equal(t, SheetPayoffs, f.Sheets[0].Name)
	assert.Equal(t, SheetComprehension, f.Sheets[1].Name)
	assert.Equal(t, SheetDecisions, f.Sheets[2].Name)

	// Header plus seven bins for each sample.
	assert.Len(t, f.Sheets[0].Rows, 1+2*PayoffBins)
	// Header plus the single manager decision in class A.
	assert.Len(t, f.Sheets[2].Rows, 2)
	assert.Equal(t, "Option A", f.Sheets[2].Rows[1].Cells[3].String())
}

func TestPanel(t *testing.T) {
	out := Panel(sampleReport())
	assert.Contains(t, out, "bargain-cli run run-1")
	assert.Contains(t, out, "n=2 mean=20.0 median=20.0")
	assert.Contains(t, out, "HS 1/0")
	assert.Contains(t, out, "none")
}
