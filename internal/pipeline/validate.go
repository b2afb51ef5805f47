package pipeline

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/sells-group/bargain-cli/internal/model"
)

// AmbiguousRow is a record whose first-mover flags do not pick a side.
type AmbiguousRow struct {
	Position      int
	Line          int
	RetailerFirst string
	SupplierFirst string
}

// AmbiguousAssignmentError lists every record where
// force_retailer_first and force_supplier_first are not exactly one set.
type AmbiguousAssignmentError struct {
	Rows []AmbiguousRow
}

func (e *AmbiguousAssignmentError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "random assignment detected: %d rows have %s == %s\nAmbiguous rows:\n",
		len(e.Rows), shortCol(model.ColForceRetailerFirst), shortCol(model.ColForceSupplierFirst))
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "row\tline\t%s\t%s\n", shortCol(model.ColForceRetailerFirst), shortCol(model.ColForceSupplierFirst))
	for _, r := range e.Rows {
		fmt.Fprintf(w, "%d\t%d\t%s\t%s\n", r.Position, r.Line, r.RetailerFirst, r.SupplierFirst)
	}
	_ = w.Flush()
	return strings.TrimRight(b.String(), "\n")
}

// MismatchRow is a record whose configuration implies a different
// treatment than the design expects at its position.
type MismatchRow struct {
	Position int
	Line     int
	Got      string
	Want     string
}

// TreatmentMismatchError lists every record where treatment_name differs
// from Correct_treatment_name.
type TreatmentMismatchError struct {
	Rows []MismatchRow
}

func (e *TreatmentMismatchError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d rows differ between %s and %s\nMismatched rows:\n",
		len(e.Rows), model.ColTreatmentName, model.ColCorrectTreatmentName)
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "row\tline\t%s\t%s\n", model.ColTreatmentName, model.ColCorrectTreatmentName)
	for _, r := range e.Rows {
		fmt.Fprintf(w, "%d\t%d\t%s\t%s\n", r.Position, r.Line, r.Got, r.Want)
	}
	_ = w.Flush()
	return strings.TrimRight(b.String(), "\n")
}

func shortCol(col string) string {
	return col[strings.LastIndex(col, ".")+1:]
}

// Validate checks a derived table. It first rejects ambiguous first-mover
// assignment, then any treatment label that disagrees with the design.
// Each check sweeps the whole table and reports every offending row.
func Validate(t *model.Table) error {
	if err := CheckAssignment(t); err != nil {
		return err
	}
	return CheckTreatments(t)
}

// CheckAssignment returns an *AmbiguousAssignmentError unless every
// record has exactly one force-first flag set and the other cleared.
func CheckAssignment(t *model.Table) error {
	var rows []AmbiguousRow
	for pos, r := range t.Records {
		ret := r.Flag(model.ColForceRetailerFirst)
		sup := r.Flag(model.ColForceSupplierFirst)
		if exactlyOne(ret, sup) {
			continue
		}
		rows = append(rows, AmbiguousRow{
			Position:      pos,
			Line:          r.Line,
			RetailerFirst: r.Raw(model.ColForceRetailerFirst),
			SupplierFirst: r.Raw(model.ColForceSupplierFirst),
		})
	}
	if len(rows) > 0 {
		return &AmbiguousAssignmentError{Rows: rows}
	}
	return nil
}

func exactlyOne(a, b model.Flag) bool {
	return (a == model.FlagTrue && b == model.FlagFalse) ||
		(a == model.FlagFalse && b == model.FlagTrue)
}

// CheckTreatments returns a *TreatmentMismatchError listing every record
// whose treatment_name is null or differs from Correct_treatment_name.
func CheckTreatments(t *model.Table) error {
	var rows []MismatchRow
	for pos, r := range t.Records {
		d := r.Derived
		if d.TreatmentName != nil && *d.TreatmentName == d.CorrectTreatmentName {
			continue
		}
		rows = append(rows, MismatchRow{
			Position: pos,
			Line:     r.Line,
			Got:      model.OrNull(d.TreatmentName),
			Want:     d.CorrectTreatmentName,
		})
	}
	if len(rows) > 0 {
		return &TreatmentMismatchError{Rows: rows}
	}
	return nil
}
