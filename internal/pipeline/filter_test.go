package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/bargain-cli/internal/model"
)

func TestFilter(t *testing.T) {
	base := rowFor(model.Treatment{Class: model.ClassA, FirstMover: model.RoleRetailer, Baseline: model.BaselineAI})
	tbl := &model.Table{
		Columns: testColumns,
		Records: []model.Record{
			{Line: 2, Values: base},
			{Line: 3, Values: with(base, model.ColPageName, "Intro")},
			{Line: 4, Values: with(base, model.ColSessionName, "Full Experiment")},
			{Line: 5, Values: with(base, model.ColPageName, "")},
			{Line: 6, Values: with(base, model.ColSessionName, "")},
			{Line: 7, Values: with(base, model.ColPageName, " Results ")},
		},
	}

	out := Filter(tbl, DefaultFilterOptions())

	var lines []int
	for _, r := range out.Records {
		lines = append(lines, r.Line)
	}
	assert.Equal(t, []int{2, 6, 7}, lines)
	assert.Equal(t, tbl.Columns, out.Columns)
	assert.Len(t, tbl.Records, 6, "input untouched")
}

func TestFilter_CustomSentinels(t *testing.T) {
	base := rowFor(model.Treatment{Class: model.ClassA, FirstMover: model.RoleRetailer, Baseline: model.BaselineAI})
	tbl := &model.Table{
		Columns: testColumns,
		Records: []model.Record{
			{Line: 2, Values: with(base, model.ColPageName, "Done", model.ColSessionName, "pilot")},
			{Line: 3, Values: with(base, model.ColPageName, "Done", model.ColSessionName, "main")},
		},
	}

	out := Filter(tbl, FilterOptions{CompletedPage: "Done", ExcludedSession: "pilot"})
	assert.Equal(t, 1, out.Len())
	assert.Equal(t, 3, out.Records[0].Line)
}

func TestFilter_Empty(t *testing.T) {
	out := Filter(&model.Table{Columns: testColumns}, DefaultFilterOptions())
	assert.Equal(t, 0, out.Len())
	assert.NotNil(t, out.Records)
}
