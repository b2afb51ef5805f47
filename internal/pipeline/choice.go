package pipeline

import (
	"github.com/sells-group/bargain-cli/internal/model"
)

// Side names whose decision column a derived field copies.
type Side int

const (
	SideNone Side = iota
	SideRetailer
	SideSupplier
)

// sideOf maps a manager role to its decision column.
func sideOf(r model.Role) Side {
	switch r {
	case model.RoleRetailer:
		return SideRetailer
	case model.RoleSupplier:
		return SideSupplier
	}
	return SideNone
}

// MoverSides returns which decision belongs to the first and second
// mover for a session's configured first-mover role. An unrecognised
// role selects nothing.
func MoverSides(firstMover string) (first, second Side) {
	role, ok := model.ParseRole(firstMover)
	if !ok {
		return SideNone, SideNone
	}
	switch sideOf(role) {
	case SideRetailer:
		return SideRetailer, SideSupplier
	case SideSupplier:
		return SideSupplier, SideRetailer
	}
	return SideNone, SideNone
}

// OwnSide returns the decision column belonging to a participant's own
// role. Employees and unknown roles select nothing.
func OwnSide(role string) Side {
	r, ok := model.ParseRole(role)
	if !ok {
		return SideNone
	}
	return sideOf(r)
}

// Choices holds the group's two decisions; either may be null.
type Choices struct {
	Retailer *string
	Supplier *string
}

// Select returns the decision for a side, or nil for SideNone.
func (c Choices) Select(s Side) *string {
	switch s {
	case SideRetailer:
		return c.Retailer
	case SideSupplier:
		return c.Supplier
	}
	return nil
}
