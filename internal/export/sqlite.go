package export

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/bargain-cli/internal/model"
)

// RecordsTable is the table WriteSQLite recreates.
const RecordsTable = "records"

// WriteSQLite replaces the records table of the database at path with the
// derived table. Each row keeps its position and source line. Blank raw
// values and null derived values are stored as NULL.
func WriteSQLite(ctx context.Context, t *model.Table, path string) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return eris.Wrap(err, "sqlite: open")
	}
	defer db.Close() //nolint:errcheck

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			return eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin")
	}
	defer tx.Rollback() //nolint:errcheck

	header := t.Header()
	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+RecordsTable); err != nil {
		return eris.Wrap(err, "sqlite: drop records")
	}
	if _, err := tx.ExecContext(ctx, createStatement(header)); err != nil {
		return eris.Wrap(err, "sqlite: create records")
	}

	stmt, err := tx.PrepareContext(ctx, insertStatement(header))
	if err != nil {
		return eris.Wrap(err, "sqlite: prepare insert")
	}
	defer stmt.Close() //nolint:errcheck

	raw := t.RawColumns()
	for pos, r := range t.Records {
		args := make([]any, 0, len(header)+2)
		args = append(args, pos, r.Line)
		for _, col := range raw {
			args = append(args, nullable(r.Opt(col)))
		}
		args = append(args, derivedArgs(r.Derived)...)
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return eris.Wrapf(err, "sqlite: insert row %d", pos)
		}
	}

	if err := tx.Commit(); err != nil {
		return eris.Wrap(err, "sqlite: commit")
	}
	return nil
}

func createStatement(header []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE %s (\n\tposition INTEGER PRIMARY KEY,\n\tline INTEGER NOT NULL", RecordsTable)
	for _, col := range header {
		fmt.Fprintf(&b, ",\n\t%s %s", quoteIdent(col), columnType(col))
	}
	b.WriteString("\n)")
	return b.String()
}

func insertStatement(header []string) string {
	cols := make([]string, 0, len(header)+2)
	cols = append(cols, "position", "line")
	for _, col := range header {
		cols = append(cols, quoteIdent(col))
	}
	marks := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", RecordsTable, strings.Join(cols, ", "), marks)
}

func columnType(col string) string {
	switch col {
	case model.ColComprehensionMistakes, model.ColIsManager, model.ColHumanDeal:
		return "INTEGER NOT NULL"
	default:
		return "TEXT"
	}
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

// derivedArgs follows model.DerivedColumns order.
func derivedArgs(d model.Derived) []any {
	var class any
	if d.ProductClass != nil {
		class = string(*d.ProductClass)
	}
	return []any{
		d.ComprehensionMistakes,
		d.IsManager,
		d.HumanDeal,
		nullable(d.FirstMoverChoice),
		nullable(d.SecondMoverChoice),
		nullable(d.Choice),
		class,
		nullable(d.TreatmentName),
		d.CorrectTreatmentName,
	}
}
