// Package export writes the validated table and its report to disk.
package export

import (
	"encoding/csv"
	"os"

	"github.com/rotisserie/eris"

	"github.com/sells-group/bargain-cli/internal/model"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteCSV writes raw columns followed by the derived columns. Null
// derived values are empty cells. The BOM helps spreadsheet tools detect
// UTF-8.
func WriteCSV(t *model.Table, path string, bom bool) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "export: create csv")
	}
	defer f.Close() //nolint:errcheck

	if bom {
		if _, err := f.Write(utf8BOM); err != nil {
			return eris.Wrap(err, "export: write bom")
		}
	}

	w := csv.NewWriter(f)
	if err := w.Write(t.Header()); err != nil {
		return eris.Wrap(err, "export: write header")
	}
	for i := range t.Records {
		if err := w.Write(t.Row(i)); err != nil {
			return eris.Wrapf(err, "export: write row %d", i)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return eris.Wrap(err, "export: flush csv")
	}
	return f.Close()
}
