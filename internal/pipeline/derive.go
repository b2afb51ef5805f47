package pipeline

import (
	"fmt"
	"strings"

	"github.com/sells-group/bargain-cli/internal/design"
	"github.com/sells-group/bargain-cli/internal/model"
)

// RowError ties a derivation failure to the record that caused it.
type RowError struct {
	Position int
	Line     int
	Err      error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d (line %d): %v", e.Position, e.Line, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// Derive computes every derived field for every record. Row positions
// are zero-based over the given (already filtered) table. It stops at the
// first malformed attempts record. The input table is not modified, and
// deriving an already derived table yields the same values.
func Derive(t *model.Table, seq design.Sequence) (*model.Table, error) {
	out := t.Clone()
	for pos := range out.Records {
		d, err := DeriveRecord(out.Records[pos], pos, seq)
		if err != nil {
			return nil, &RowError{Position: pos, Line: out.Records[pos].Line, Err: err}
		}
		out.Records[pos].Derived = d
	}
	return out, nil
}

// DeriveRecord computes the derived fields of one record at a row
// position. It reads only raw columns.
func DeriveRecord(r model.Record, pos int, seq design.Sequence) (model.Derived, error) {
	var d model.Derived

	raw, _ := r.Get(model.ColComprehensionAttempts)
	attempts, err := DecodeAttempts(raw)
	if err != nil {
		return model.Derived{}, err
	}
	d.ComprehensionMistakes = attempts.Mistakes()

	role, _ := r.Get(model.ColRole)
	d.IsManager = IsManager(role)

	_, d.HumanDeal = r.Get(model.ColPriceAccepted)

	choices := Choices{
		Retailer: r.Opt(model.ColRetailerChoice),
		Supplier: r.Opt(model.ColSupplierChoice),
	}
	firstMover, _ := r.Get(model.ColFirstMover)
	first, second := MoverSides(firstMover)
	d.FirstMoverChoice = choices.Select(first)
	d.SecondMoverChoice = choices.Select(second)
	d.Choice = choices.Select(OwnSide(role))

	d.ProductClass = ProductClass(r.Flag(model.ColClassA), r.Flag(model.ColClassB), r.Flag(model.ColClassC))

	d.TreatmentName = treatmentName(seq.Index(pos), d.ProductClass, firstMover, r.Flag(model.ColBaseline))
	d.CorrectTreatmentName = seq.At(pos).String()

	return d, nil
}

// IsManager reports whether a role names a manager, ignoring case.
func IsManager(role string) bool {
	return strings.Contains(strings.ToLower(role), "manager")
}

// ProductClass returns the class whose flag alone is set. Any other
// combination, including missing flags, is null.
func ProductClass(a, b, c model.Flag) *model.Class {
	var class model.Class
	switch {
	case a == model.FlagTrue && b == model.FlagFalse && c == model.FlagFalse:
		class = model.ClassA
	case a == model.FlagFalse && b == model.FlagTrue && c == model.FlagFalse:
		class = model.ClassB
	case a == model.FlagFalse && b == model.FlagFalse && c == model.FlagTrue:
		class = model.ClassC
	default:
		return nil
	}
	return &class
}

// treatmentName builds the label a record's own configuration implies.
// It is null when the class, first mover or baseline is unknown.
func treatmentName(index int, class *model.Class, firstMover string, baseline model.Flag) *string {
	if class == nil {
		return nil
	}
	role, ok := model.ParseRole(firstMover)
	if !ok {
		return nil
	}
	b, ok := model.BaselineFromFlag(baseline)
	if !ok {
		return nil
	}
	name := model.TreatmentName(index, *class, role, b)
	return &name
}
