package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMoverSides(t *testing.T) {
	tests := []struct {
		firstMover   string
		first, other Side
	}{
		{"Retailer Manager", SideRetailer, SideSupplier},
		{"Supplier Manager", SideSupplier, SideRetailer},
		{"", SideNone, SideNone},
		{"Retailer Employee", SideNone, SideNone},
		{"Retailer", SideNone, SideNone},
	}
	for _, tt := range tests {
		t.Run(tt.firstMover, func(t *testing.T) {
			first, second := MoverSides(tt.firstMover)
			assert.Equal(t, tt.first, first)
			assert.Equal(t, tt.other, second)
		})
	}
}

func TestOwnSide(t *testing.T) {
	assert.Equal(t, SideRetailer, OwnSide("Retailer Manager"))
	assert.Equal(t, SideSupplier, OwnSide("Supplier Manager"))
	assert.Equal(t, SideNone, OwnSide("Supplier Employee"))
	assert.Equal(t, SideNone, OwnSide(""))
}

func TestChoicesSelect(t *testing.T) {
	aj, hs := "AJ", "HS"
	c := Choices{Retailer: &aj, Supplier: &hs}
	assert.Equal(t, &aj, c.Select(SideRetailer))
	assert.Equal(t, &hs, c.Select(SideSupplier))
	assert.Nil(t, c.Select(SideNone))
	assert.Nil(t, Choices{}.Select(SideRetailer))
}
