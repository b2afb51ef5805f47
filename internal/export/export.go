package export

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/bargain-cli/internal/model"
	"github.com/sells-group/bargain-cli/internal/report"
)

// Artifact file names inside the output directory.
const (
	FileDerivedCSV = "derived.csv"
	FileSummary    = "summary.md"
	FileWorkbook   = "report.xlsx"
)

// Options configures WriteAll.
type Options struct {
	Dir        string
	CSVBOM     bool
	SQLitePath string // skipped when empty
}

// WriteAll writes every artifact of a validated run concurrently and
// returns the written paths in a fixed order. The first failure cancels
// the remaining writers.
func WriteAll(ctx context.Context, t *model.Table, rep *report.Report, opts Options) ([]string, error) {
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, eris.Wrapf(err, "export: create dir %s", opts.Dir)
	}

	paths := []string{
		filepath.Join(opts.Dir, FileDerivedCSV),
		filepath.Join(opts.Dir, FileSummary),
		filepath.Join(opts.Dir, FileWorkbook),
	}
	writers := []func(context.Context) error{
		func(context.Context) error { return WriteCSV(t, paths[0], opts.CSVBOM) },
		func(context.Context) error { return writeFile(paths[1], []byte(report.Markdown(rep))) },
		func(context.Context) error { return report.WriteWorkbook(rep, paths[2]) },
	}
	if opts.SQLitePath != "" {
		paths = append(paths, opts.SQLitePath)
		writers = append(writers, func(ctx context.Context) error { return WriteSQLite(ctx, t, opts.SQLitePath) })
	}

	g, gCtx := errgroup.WithContext(ctx)
	for i, write := range writers {
		path := paths[i]
		g.Go(func() error {
			start := time.Now()
			if err := write(gCtx); err != nil {
				return err
			}
			zap.L().Debug("export: artifact written",
				zap.String("path", path),
				zap.Int64("duration_ms", time.Since(start).Milliseconds()),
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "export: write %s", path)
	}
	return nil
}
