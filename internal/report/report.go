// Package report aggregates a validated session table into the summaries
// behind the payoff, comprehension and decision charts.
package report

import (
	"sort"
	"strconv"

	"github.com/sells-group/bargain-cli/internal/model"
)

// PayoffBins is the number of equal-width payoff histogram bins.
const PayoffBins = 7

// Report holds every aggregate of one run.
type Report struct {
	RunID         string           `json:"run_id"`
	Rows          int              `json:"rows"`
	Payoff        PayoffSummary    `json:"payoff"`
	Comprehension Crosstab         `json:"comprehension"`
	Decisions     []ClassDecisions `json:"decisions"`
}

// PayoffSummary compares all payoffs with payoffs of rows that reached a
// human deal.
type PayoffSummary struct {
	All       Histogram `json:"all"`
	HumanDeal Histogram `json:"human_deal"`
}

// Build computes the report over a derived table.
func Build(runID string, t *model.Table) *Report {
	return &Report{
		RunID:         runID,
		Rows:          t.Len(),
		Payoff:        Payoffs(t),
		Comprehension: Comprehension(t),
		Decisions:     Decisions(t),
	}
}

// Payoffs builds the payoff histograms. Blank and non-numeric payoffs are
// skipped.
func Payoffs(t *model.Table) PayoffSummary {
	var all, deal []float64
	for _, r := range t.Records {
		s, ok := r.Get(model.ColPayoff)
		if !ok {
			continue
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			continue
		}
		all = append(all, v)
		if r.Derived.HumanDeal {
			deal = append(deal, v)
		}
	}
	return PayoffSummary{
		All:       NewHistogram(all, PayoffBins),
		HumanDeal: NewHistogram(deal, PayoffBins),
	}
}

// Crosstab is the distribution of comprehension mistakes per role group,
// in percent of the group.
type Crosstab struct {
	Mistakes []int         `json:"mistakes"`
	Rows     []CrosstabRow `json:"rows"`
}

// CrosstabRow is one is_manager group. Percent is aligned with
// Crosstab.Mistakes and sums to 100.
type CrosstabRow struct {
	IsManager bool      `json:"is_manager"`
	Count     int       `json:"count"`
	Percent   []float64 `json:"percent"`
}

// Comprehension builds the mistakes-by-role crosstab. Only groups present
// in the table get a row; non-managers come first.
func Comprehension(t *model.Table) Crosstab {
	counts := map[bool]map[int]int{}
	totals := map[bool]int{}
	seen := map[int]bool{}
	for _, r := range t.Records {
		d := r.Derived
		if counts[d.IsManager] == nil {
			counts[d.IsManager] = map[int]int{}
		}
		counts[d.IsManager][d.ComprehensionMistakes]++
		totals[d.IsManager]++
		seen[d.ComprehensionMistakes] = true
	}

	ct := Crosstab{Mistakes: make([]int, 0, len(seen))}
	for m := range seen {
		ct.Mistakes = append(ct.Mistakes, m)
	}
	sort.Ints(ct.Mistakes)

	for _, manager := range []bool{false, true} {
		total := totals[manager]
		if total == 0 {
			continue
		}
		row := CrosstabRow{IsManager: manager, Count: total, Percent: make([]float64, len(ct.Mistakes))}
		for i, m := range ct.Mistakes {
			row.Percent[i] = float64(counts[manager][m]) * 100 / float64(total)
		}
		ct.Rows = append(ct.Rows, row)
	}
	return ct
}

// superior is the option that pays best in each product class.
var superior = map[model.Class]string{
	model.ClassA: "A",
	model.ClassB: "NONE",
	model.ClassC: "B",
}

// Superior returns the best option for a class.
func Superior(c model.Class) string {
	return superior[c]
}

// ChoiceLabel names a raw choice code for display.
func ChoiceLabel(choice string) string {
	switch choice {
	case "AJ":
		return "Option B (AI if treated)"
	case "HS":
		return "Option A"
	default:
		return "Choice " + choice
	}
}

// ClassDecisions counts second-mover choices of managers in one class.
// Treatment rows ran with the AI baseline, Control rows with the human one.
type ClassDecisions struct {
	Class    model.Class   `json:"class"`
	Superior string        `json:"superior"`
	Choices  []ChoiceCount `json:"choices"`
}

// ChoiceCount is one choice code across both baselines.
type ChoiceCount struct {
	Choice    string `json:"choice"`
	Label     string `json:"label"`
	Treatment int    `json:"ai_treatment"`
	Control   int    `json:"control"`
}

// Decisions builds per-class choice counts over manager rows. Each class
// lists the union of choices seen under either baseline in code order.
// Rows with a null second-mover choice, class or baseline are not counted.
func Decisions(t *model.Table) []ClassDecisions {
	out := make([]ClassDecisions, 0, len(model.Classes))
	for _, class := range model.Classes {
		treatment := map[string]int{}
		control := map[string]int{}
		for _, r := range t.Records {
			d := r.Derived
			if !d.IsManager || d.ProductClass == nil || *d.ProductClass != class || d.SecondMoverChoice == nil {
				continue
			}
			switch r.Flag(model.ColBaseline) {
			case model.FlagFalse:
				treatment[*d.SecondMoverChoice]++
			case model.FlagTrue:
				control[*d.SecondMoverChoice]++
			}
		}

		codes := make([]string, 0, len(treatment)+len(control))
		for c := range treatment {
			codes = append(codes, c)
		}
		for c := range control {
			if _, ok := treatment[c]; !ok {
				codes = append(codes, c)
			}
		}
		sort.Strings(codes)

		cd := ClassDecisions{Class: class, Superior: Superior(class), Choices: make([]ChoiceCount, 0, len(codes))}
		for _, c := range codes {
			cd.Choices = append(cd.Choices, ChoiceCount{
				Choice:    c,
				Label:     ChoiceLabel(c),
				Treatment: treatment[c],
				Control:   control[c],
			})
		}
		out = append(out, cd)
	}
	return out
}
