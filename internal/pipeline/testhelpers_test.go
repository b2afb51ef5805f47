package pipeline

import (
	"github.com/sells-group/bargain-cli/internal/design"
	"github.com/sells-group/bargain-cli/internal/model"
)

var testColumns = []string{
	model.ColPageName,
	model.ColSessionName,
	model.ColRole,
	model.ColFirstMover,
	model.ColComprehensionAttempts,
	model.ColRetailerChoice,
	model.ColSupplierChoice,
	model.ColPayoff,
	model.ColPriceAccepted,
	model.ColClassA,
	model.ColClassB,
	model.ColClassC,
	model.ColBaseline,
	model.ColForceRetailerFirst,
	model.ColForceSupplierFirst,
}

// rowFor returns raw values for a completed participant whose session is
// configured for treatment tr.
func rowFor(tr model.Treatment) map[string]string {
	v := map[string]string{
		model.ColPageName:              "Results",
		model.ColSessionName:           "negotiation",
		model.ColRole:                  string(model.RoleRetailer),
		model.ColFirstMover:            string(tr.FirstMover),
		model.ColComprehensionAttempts: "{'q1': 1, 'q2': 2, 'q3': 1}",
		model.ColRetailerChoice:        "AJ",
		model.ColSupplierChoice:        "HS",
		model.ColPayoff:                "40",
		model.ColPriceAccepted:         "12",
		model.ColClassA:                "0",
		model.ColClassB:                "0",
		model.ColClassC:                "0",
		model.ColBaseline:              "0",
		model.ColForceRetailerFirst:    "0",
		model.ColForceSupplierFirst:    "0",
	}
	switch tr.Class {
	case model.ClassA:
		v[model.ColClassA] = "1"
	case model.ClassB:
		v[model.ColClassB] = "1"
	case model.ClassC:
		v[model.ColClassC] = "1"
	}
	if tr.Baseline == model.BaselineHuman {
		v[model.ColBaseline] = "1"
	}
	if tr.FirstMover == model.RoleRetailer {
		v[model.ColForceRetailerFirst] = "1"
	} else {
		v[model.ColForceSupplierFirst] = "1"
	}
	return v
}

// designTable builds n records that follow the default design exactly.
func designTable(n int) *model.Table {
	seq := design.Default()
	t := &model.Table{Columns: append([]string(nil), testColumns...)}
	for pos := range n {
		t.Records = append(t.Records, model.Record{Line: pos + 2, Values: rowFor(seq.At(pos))})
	}
	return t
}

// with returns a copy of values with overrides applied.
func with(values map[string]string, kv ...string) map[string]string {
	out := make(map[string]string, len(values))
	for k, v := range values {
		out[k] = v
	}
	for i := 0; i+1 < len(kv); i += 2 {
		out[kv[i]] = kv[i+1]
	}
	return out
}
