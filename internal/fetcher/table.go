package fetcher

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/bargain-cli/internal/model"
)

// TableOptions configures LoadTable.
type TableOptions struct {
	Charset string // CSV only
	Sheet   string // XLSX only; name or zero-based index, first sheet when empty
}

// LoadTable reads a session export into a model.Table. The file type is
// chosen by extension: .xlsx is read as a workbook, anything else as CSV.
func LoadTable(ctx context.Context, path string, opts TableOptions) (*model.Table, error) {
	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		rows, err = ReadXLSX(path, SheetOptions(opts.Sheet))
	default:
		rows, err = readCSVFile(ctx, path, opts.Charset)
	}
	if err != nil {
		return nil, err
	}
	return BuildTable(rows)
}

func readCSVFile(ctx context.Context, path, charset string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "fetcher: open %s", path)
	}
	defer f.Close() //nolint:errcheck

	return CollectCSV(ctx, f, CSVOptions{Charset: charset, LazyQuotes: true})
}

// BuildTable turns header-first rows into a table. Record.Line is the
// 1-based source row, so the first data row is line 2. Short rows are
// padded with blanks; cells beyond the header are an error.
func BuildTable(rows [][]string) (*model.Table, error) {
	if len(rows) == 0 {
		return nil, eris.New("fetcher: table has no header row")
	}

	header := make([]string, len(rows[0]))
	seen := make(map[string]int, len(rows[0]))
	for i, col := range rows[0] {
		col = strings.TrimSpace(col)
		if col == "" {
			return nil, eris.Errorf("fetcher: blank column name at position %d", i+1)
		}
		if prev, ok := seen[col]; ok {
			return nil, eris.Errorf("fetcher: duplicate column %q at positions %d and %d", col, prev+1, i+1)
		}
		seen[col] = i
		header[i] = col
	}

	tbl := &model.Table{
		Columns: header,
		Records: make([]model.Record, 0, len(rows)-1),
	}
	for i, row := range rows[1:] {
		line := i + 2
		if len(row) > len(header) && !blankRow(row[len(header):]) {
			return nil, eris.Errorf("fetcher: line %d has %d cells, header has %d", line, len(row), len(header))
		}
		values := make(map[string]string, len(header))
		for j, col := range header {
			if j < len(row) {
				values[col] = row[j]
			} else {
				values[col] = ""
			}
		}
		tbl.Records = append(tbl.Records, model.Record{Line: line, Values: values})
	}
	return tbl, nil
}
