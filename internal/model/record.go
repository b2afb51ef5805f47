// Package model defines the session table, its records and the fully
// enumerated set of derived fields.
package model

import (
	"strconv"
	"strings"
)

// Raw export columns read by the pipeline.
const (
	ColPageName              = "participant._current_page_name"
	ColSessionName           = "session.config.name"
	ColRole                  = "participant.role"
	ColFirstMover            = "session.first_mover_role"
	ColComprehensionAttempts = "intro.1.player.comprehension_attempts"
	ColRetailerChoice        = "intro.1.group.retailer_choice"
	ColSupplierChoice        = "intro.1.group.supplier_choice"
	ColPayoff                = "experiment.1.player.payoff"
	ColProfit                = "experiment.1.player.profit"
	ColPriceAccepted         = "experiment.1.player.price_accepted"
	ColClassA                = "session.config.class_a"
	ColClassB                = "session.config.class_b"
	ColClassC                = "session.config.class_c"
	ColBaseline              = "session.config.baseline"
	ColForceRetailerFirst    = "session.config.force_retailer_first"
	ColForceSupplierFirst    = "session.config.force_supplier_first"
)

// Derived column names, in export order.
const (
	ColComprehensionMistakes = "defined.comprehension_mistakes"
	ColIsManager             = "defined.is_manager"
	ColHumanDeal             = "defined.human_deal"
	ColFirstMoverChoice      = "defined.first_mover_choice"
	ColSecondMoverChoice     = "defined.second_mover_choice"
	ColChoice                = "defined.choice"
	ColProductClass          = "defined.product_class"
	ColTreatmentName         = "treatment_name"
	ColCorrectTreatmentName  = "Correct_treatment_name"
)

// DerivedColumns is the complete derived schema.
var DerivedColumns = []string{
	ColComprehensionMistakes,
	ColIsManager,
	ColHumanDeal,
	ColFirstMoverChoice,
	ColSecondMoverChoice,
	ColChoice,
	ColProductClass,
	ColTreatmentName,
	ColCorrectTreatmentName,
}

// Null is how a missing value is shown in diagnostics.
const Null = "<null>"

// Flag is a tri-state 0/1 configuration value.
type Flag int

const (
	FlagNull Flag = iota
	FlagFalse
	FlagTrue
)

// ParseFlag reads 1/0, 1.0/0.0 and true/false. Blank or unrecognised
// input is FlagNull.
func ParseFlag(s string) Flag {
	s = strings.TrimSpace(s)
	if s == "" {
		return FlagNull
	}
	if b, err := strconv.ParseBool(s); err == nil {
		if b {
			return FlagTrue
		}
		return FlagFalse
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		switch f {
		case 1:
			return FlagTrue
		case 0:
			return FlagFalse
		}
	}
	return FlagNull
}

// Derived holds the fields computed for one record. Pointer fields are
// nullable.
type Derived struct {
	ComprehensionMistakes int     `json:"comprehension_mistakes"`
	IsManager             bool    `json:"is_manager"`
	HumanDeal             bool    `json:"human_deal"`
	FirstMoverChoice      *string `json:"first_mover_choice"`
	SecondMoverChoice     *string `json:"second_mover_choice"`
	Choice                *string `json:"choice"`
	ProductClass          *Class  `json:"product_class"`
	TreatmentName         *string `json:"treatment_name"`
	CorrectTreatmentName  string  `json:"correct_treatment_name"`
}

// Values renders the derived fields in DerivedColumns order. Null is "".
func (d Derived) Values() []string {
	class := ""
	if d.ProductClass != nil {
		class = string(*d.ProductClass)
	}
	return []string{
		strconv.Itoa(d.ComprehensionMistakes),
		strconv.FormatBool(d.IsManager),
		strconv.FormatBool(d.HumanDeal),
		deref(d.FirstMoverChoice),
		deref(d.SecondMoverChoice),
		deref(d.Choice),
		class,
		deref(d.TreatmentName),
		d.CorrectTreatmentName,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// OrNull formats a nullable string for diagnostics.
func OrNull(s *string) string {
	if s == nil {
		return Null
	}
	return *s
}

// Record is one participant-round row.
type Record struct {
	Line    int               `json:"line"`
	Values  map[string]string `json:"values"`
	Derived Derived           `json:"derived"`
}

// Get returns the trimmed value of a raw column; ok is false when the
// column is absent or blank.
func (r Record) Get(col string) (string, bool) {
	v := strings.TrimSpace(r.Values[col])
	return v, v != ""
}

// Opt returns a raw column as a nullable string.
func (r Record) Opt(col string) *string {
	v, ok := r.Get(col)
	if !ok {
		return nil
	}
	return &v
}

// Flag parses a raw 0/1 column.
func (r Record) Flag(col string) Flag {
	return ParseFlag(r.Values[col])
}

// Raw returns the untrimmed value of a column, or "<null>" when blank.
func (r Record) Raw(col string) string {
	if _, ok := r.Get(col); !ok {
		return Null
	}
	return r.Values[col]
}

// Table is the in-memory session export.
type Table struct {
	Columns []string `json:"columns"`
	Records []Record `json:"records"`
}

// Len returns the number of records.
func (t *Table) Len() int {
	return len(t.Records)
}

// HasColumn reports whether the raw header contains col.
func (t *Table) HasColumn(col string) bool {
	for _, c := range t.Columns {
		if c == col {
			return true
		}
	}
	return false
}

// IsDerivedColumn reports whether col is one of DerivedColumns.
func IsDerivedColumn(col string) bool {
	for _, d := range DerivedColumns {
		if d == col {
			return true
		}
	}
	return false
}

// RawColumns returns the input columns minus any that share a derived
// column's name. Re-reading an exported table brings those back as raw
// input; the freshly derived values replace them.
func (t *Table) RawColumns() []string {
	cols := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		if !IsDerivedColumn(c) {
			cols = append(cols, c)
		}
	}
	return cols
}

// Header returns the raw columns followed by the derived columns.
func (t *Table) Header() []string {
	raw := t.RawColumns()
	h := make([]string, 0, len(raw)+len(DerivedColumns))
	h = append(h, raw...)
	return append(h, DerivedColumns...)
}

// Row renders record i in Header order.
func (t *Table) Row(i int) []string {
	r := t.Records[i]
	raw := t.RawColumns()
	row := make([]string, 0, len(raw)+len(DerivedColumns))
	for _, c := range raw {
		row = append(row, r.Values[c])
	}
	return append(row, r.Derived.Values()...)
}

// Clone copies the record slice. Values maps are shared and treated as
// read-only by every stage.
func (t *Table) Clone() *Table {
	out := &Table{
		Columns: append([]string(nil), t.Columns...),
		Records: make([]Record, len(t.Records)),
	}
	copy(out.Records, t.Records)
	return out
}
