package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/bargain-cli/internal/export"
	"github.com/sells-group/bargain-cli/internal/report"
)

var (
	runOutput string
	runSQLite string
	runNoBOM  bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Validate the export and write reports",
	Long: `Runs load, filter, derive and validate over the session export. When
validation passes it writes derived.csv, summary.md and report.xlsx to the
output directory (plus an optional SQLite copy) and prints a summary.
Nothing is written when validation fails.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if runOutput != "" {
			cfg.Output.Dir = runOutput
		}
		if runSQLite != "" {
			cfg.Output.SQLitePath = runSQLite
		}
		if runNoBOM {
			cfg.Output.CSVBOM = false
		}
		if err := cfg.Validate("run"); err != nil {
			return err
		}

		p, err := initPipeline()
		if err != nil {
			return err
		}

		res, err := p.Run(cmd.Context())
		if err != nil {
			return err
		}

		rep := report.Build(res.RunID, res.Table)
		paths, err := export.WriteAll(cmd.Context(), res.Table, rep, export.Options{
			Dir:        cfg.Output.Dir,
			CSVBOM:     cfg.Output.CSVBOM,
			SQLitePath: cfg.Output.SQLitePath,
		})
		if err != nil {
			return err
		}

		zap.L().Info("run complete",
			zap.String("run_id", res.RunID),
			zap.Int("loaded", res.Loaded),
			zap.Int("rows", res.Table.Len()),
			zap.Strings("artifacts", paths),
		)

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, report.Panel(rep))
		for _, path := range paths {
			fmt.Fprintf(out, "wrote %s\n", path)
		}
		return nil
	},
}

func init() {
	runCmd.Flags().StringVar(&runOutput, "output", "", "output directory (default from config)")
	runCmd.Flags().StringVar(&runSQLite, "sqlite", "", "also write the derived table to this SQLite file")
	runCmd.Flags().BoolVar(&runNoBOM, "no-bom", false, "omit the UTF-8 BOM from derived.csv")
	rootCmd.AddCommand(runCmd)
}
