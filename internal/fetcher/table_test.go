package fetcher

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTable(t *testing.T) {
	tbl, err := BuildTable([][]string{
		{" participant.role ", "session.config.baseline", "extra"},
		{"Retailer Manager", "1", "x"},
		{"Supplier Manager"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"participant.role", "session.config.baseline", "extra"}, tbl.Columns)
	require.Equal(t, 2, tbl.Len())
	assert.Equal(t, 2, tbl.Records[0].Line)
	assert.Equal(t, 3, tbl.Records[1].Line)
	assert.Equal(t, "1", tbl.Records[0].Values["session.config.baseline"])

	_, ok := tbl.Records[1].Get("session.config.baseline")
	assert.False(t, ok, "padded cell is null")
}

func TestBuildTable_Errors(t *testing.T) {
	tests := []struct {
		name string
		rows [][]string
		want string
	}{
		{"no header", nil, "no header row"},
		{"blank column", [][]string{{"a", " "}}, "blank column name at position 2"},
		{"duplicate column", [][]string{{"a", "b", "a"}}, `duplicate column "a" at positions 1 and 3`},
		{"overlong row", [][]string{{"a"}, {"1", "2"}}, "line 2 has 2 cells"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildTable(tt.rows)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestBuildTable_TrailingBlankCellsAllowed(t *testing.T) {
	tbl, err := BuildTable([][]string{{"a"}, {"1", "", " "}})
	require.NoError(t, err)
	assert.Equal(t, "1", tbl.Records[0].Values["a"])
}

func TestLoadTable_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.csv")
	require.NoError(t, writeTestFile(path, "participant.role,intro.1.player.comprehension_attempts\nRetailer Manager,\"q1:2,q2:1\"\n"))

	tbl, err := LoadTable(context.Background(), path, TableOptions{})
	require.NoError(t, err)
	require.Equal(t, 1, tbl.Len())
	assert.Equal(t, "q1:2,q2:1", tbl.Records[0].Values["intro.1.player.comprehension_attempts"])
}

func TestLoadTable_XLSX(t *testing.T) {
	path := createTestXLSX(t,
		sheetData{"Notes", [][]string{{"ignored"}}},
		sheetData{"Data", [][]string{{"participant.role"}, {"Supplier Manager"}}},
	)

	tbl, err := LoadTable(context.Background(), path, TableOptions{Sheet: "Data"})
	require.NoError(t, err)
	require.Equal(t, 1, tbl.Len())
	assert.Equal(t, "Supplier Manager", tbl.Records[0].Values["participant.role"])
}

func TestLoadTable_XLSXSheetIndex(t *testing.T) {
	path := createTestXLSX(t,
		sheetData{"Notes", [][]string{{"ignored"}}},
		sheetData{"Data", [][]string{{"participant.role"}, {"Retailer Manager"}}},
		sheetData{"0", [][]string{{"participant.role"}, {"Supplier Manager"}}},
	)

	tests := []struct {
		sheet string
		want  string
	}{
		{"1", "Retailer Manager"},
		// A sheet literally named "0" wins over index 0.
		{"0", "Supplier Manager"},
	}
	for _, tt := range tests {
		t.Run(tt.sheet, func(t *testing.T) {
			tbl, err := LoadTable(context.Background(), path, TableOptions{Sheet: tt.sheet})
			require.NoError(t, err)
			require.Equal(t, 1, tbl.Len())
			assert.Equal(t, tt.want, tbl.Records[0].Values["participant.role"])
		})
	}

	_, err := LoadTable(context.Background(), path, TableOptions{Sheet: "7"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestSheetOptions(t *testing.T) {
	assert.Equal(t, XLSXOptions{}, SheetOptions(""))
	assert.Equal(t, XLSXOptions{SheetName: "Data"}, SheetOptions(" Data "))
	assert.Equal(t, XLSXOptions{SheetIndex: 2, SheetName: "2"}, SheetOptions("2"))
}

func TestLoadTable_MissingFile(t *testing.T) {
	_, err := LoadTable(context.Background(), filepath.Join(t.TempDir(), "nope.csv"), TableOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetcher: open")
}
