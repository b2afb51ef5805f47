package model

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

// Class is the product class a session trades in.
type Class string

const (
	ClassA Class = "A"
	ClassB Class = "B"
	ClassC Class = "C"
)

// Classes lists the product classes in report order.
var Classes = []Class{ClassA, ClassB, ClassC}

// ParseClass returns the class for a single letter.
func ParseClass(s string) (Class, error) {
	switch c := Class(strings.ToUpper(strings.TrimSpace(s))); c {
	case ClassA, ClassB, ClassC:
		return c, nil
	}
	return "", eris.Errorf("model: unknown product class %q", s)
}

// Role is a participant role as exported in participant.role and
// session.first_mover_role.
type Role string

const (
	RoleRetailer Role = "Retailer Manager"
	RoleSupplier Role = "Supplier Manager"
)

const roleSuffix = " Manager"

// Short strips the manager suffix: "Retailer Manager" -> "Retailer".
func (r Role) Short() string {
	return strings.TrimSuffix(string(r), roleSuffix)
}

// ParseRole matches an exact manager role. Anything else, employees
// included, is not a negotiating role.
func ParseRole(s string) (Role, bool) {
	switch r := Role(strings.TrimSpace(s)); r {
	case RoleRetailer, RoleSupplier:
		return r, true
	}
	return "", false
}

// parseShortRole accepts either the short or the full role name.
func parseShortRole(s string) (Role, error) {
	s = strings.TrimSpace(s)
	if r, ok := ParseRole(s); ok {
		return r, nil
	}
	if r, ok := ParseRole(s + roleSuffix); ok {
		return r, nil
	}
	return "", eris.Errorf("model: unknown role %q", s)
}

// Baseline distinguishes the human control from the AI-assisted condition.
type Baseline string

const (
	BaselineHuman Baseline = "Human"
	BaselineAI    Baseline = "AI"
)

// BaselineFromFlag maps session.config.baseline: 1 is Human, 0 is AI.
func BaselineFromFlag(f Flag) (Baseline, bool) {
	switch f {
	case FlagTrue:
		return BaselineHuman, true
	case FlagFalse:
		return BaselineAI, true
	}
	return "", false
}

// ParseBaseline accepts "Human" or "AI" in any case.
func ParseBaseline(s string) (Baseline, error) {
	switch {
	case strings.EqualFold(strings.TrimSpace(s), string(BaselineHuman)):
		return BaselineHuman, nil
	case strings.EqualFold(strings.TrimSpace(s), string(BaselineAI)):
		return BaselineAI, nil
	}
	return "", eris.Errorf("model: unknown baseline %q", s)
}

// Treatment is one of the 12 experimental conditions.
type Treatment struct {
	Number     int      `json:"number" yaml:"number,omitempty"`
	Class      Class    `json:"class" yaml:"class"`
	FirstMover Role     `json:"first_mover" yaml:"first_mover"`
	Baseline   Baseline `json:"baseline" yaml:"baseline"`
}

// TreatmentName formats the label used in treatment_name columns,
// e.g. "3_B_Retailer_First_AI".
func TreatmentName(number int, class Class, firstMover Role, baseline Baseline) string {
	return fmt.Sprintf("%d_%s_%s_First_%s", number, class, firstMover.Short(), baseline)
}

func (t Treatment) String() string {
	return TreatmentName(t.Number, t.Class, t.FirstMover, t.Baseline)
}

// Key identifies the condition independent of its position in a sequence.
func (t Treatment) Key() string {
	return fmt.Sprintf("%s/%s/%s", t.Class, t.FirstMover.Short(), t.Baseline)
}

// ParseTreatment parses a label produced by Treatment.String.
func ParseTreatment(s string) (Treatment, error) {
	parts := strings.Split(strings.TrimSpace(s), "_")
	if len(parts) != 5 || parts[3] != "First" {
		return Treatment{}, eris.Errorf("model: malformed treatment name %q", s)
	}
	n, err := strconv.Atoi(parts[0])
	if err != nil || n < 1 {
		return Treatment{}, eris.Errorf("model: malformed treatment number in %q", s)
	}
	class, err := ParseClass(parts[1])
	if err != nil {
		return Treatment{}, eris.Wrapf(err, "model: parse treatment %q", s)
	}
	role, err := parseShortRole(parts[2])
	if err != nil {
		return Treatment{}, eris.Wrapf(err, "model: parse treatment %q", s)
	}
	baseline, err := ParseBaseline(parts[4])
	if err != nil {
		return Treatment{}, eris.Wrapf(err, "model: parse treatment %q", s)
	}
	return Treatment{Number: n, Class: class, FirstMover: role, Baseline: baseline}, nil
}

// UnmarshalText lets roles be written short ("Retailer") in YAML designs.
func (r *Role) UnmarshalText(b []byte) error {
	role, err := parseShortRole(string(b))
	if err != nil {
		return err
	}
	*r = role
	return nil
}

// MarshalText writes the short role name.
func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.Short()), nil
}

// UnmarshalText normalises the class letter.
func (c *Class) UnmarshalText(b []byte) error {
	class, err := ParseClass(string(b))
	if err != nil {
		return err
	}
	*c = class
	return nil
}

// UnmarshalText accepts "human" or "ai" in any case.
func (b *Baseline) UnmarshalText(text []byte) error {
	baseline, err := ParseBaseline(string(text))
	if err != nil {
		return err
	}
	*b = baseline
	return nil
}
