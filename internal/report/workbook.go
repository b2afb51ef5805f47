package report

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// Sheet names of the report workbook.
const (
	SheetPayoffs       = "Payoffs"
	SheetComprehension = "Comprehension"
	SheetDecisions     = "Decisions"
)

// Workbook lays the report out as one sheet per aggregate.
func Workbook(r *Report) (*xlsx.File, error) {
	f := xlsx.NewFile()

	payoffs, err := f.AddSheet(SheetPayoffs)
	if err != nil {
		return nil, eris.Wrap(err, "report: add payoffs sheet")
	}
	addStrings(payoffs, "sample", "bin", "count", "mean", "median")
	for _, s := range []struct {
		name string
		h    Histogram
	}{
		{"all", r.Payoff.All},
		{"human_deal", r.Payoff.HumanDeal},
	} {
		for i, c := range s.h.Counts {
			row := payoffs.AddRow()
			row.AddCell().SetString(s.name)
			row.AddCell().SetString(binLabel(s.h, i))
			row.AddCell().SetInt(c)
			row.AddCell().SetFloat(s.h.Mean)
			row.AddCell().SetFloat(s.h.Median)
		}
	}

	comp, err := f.AddSheet(SheetComprehension)
	if err != nil {
		return nil, eris.Wrap(err, "report: add comprehension sheet")
	}
	header := comp.AddRow()
	header.AddCell().SetString("is_manager")
	header.AddCell().SetString("n")
	for _, m := range r.Comprehension.Mistakes {
		header.AddCell().SetString(fmt.Sprintf("%d mistakes %%", m))
	}
	for _, cr := range r.Comprehension.Rows {
		row := comp.AddRow()
		row.AddCell().SetBool(cr.IsManager)
		row.AddCell().SetInt(cr.Count)
		for _, p := range cr.Percent {
			row.AddCell().SetFloat(p)
		}
	}

	dec, err := f.AddSheet(SheetDecisions)
	if err != nil {
		return nil, eris.Wrap(err, "report: add decisions sheet")
	}
	addStrings(dec, "class", "superior", "choice", "label", "ai_treatment", "control")
	for _, cd := range r.Decisions {
		for _, c := range cd.Choices {
			row := dec.AddRow()
			row.AddCell().SetString(string(cd.Class))
			row.AddCell().SetString(cd.Superior)
			row.AddCell().SetString(c.Choice)
			row.AddCell().SetString(c.Label)
			row.AddCell().SetInt(c.Treatment)
			row.AddCell().SetInt(c.Control)
		}
	}

	return f, nil
}

// WriteWorkbook saves the report workbook to path.
func WriteWorkbook(r *Report, path string) error {
	f, err := Workbook(r)
	if err != nil {
		return err
	}
	if err := f.Save(path); err != nil {
		return eris.Wrapf(err, "report: save workbook %s", path)
	}
	return nil
}

func addStrings(sheet *xlsx.Sheet, values ...string) {
	row := sheet.AddRow()
	for _, v := range values {
		row.AddCell().SetString(v)
	}
}
