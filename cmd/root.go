package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/bargain-cli/internal/config"
)

var cfg *config.Config

var (
	flagInput  string
	flagDesign string
)

var rootCmd = &cobra.Command{
	Use:   "bargain-cli",
	Short: "Negotiation experiment data pipeline",
	Long:  "Filters an exported session table, derives analysis fields, checks every row against the treatment design, and writes reports.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if flagInput != "" {
			cfg.Input.Path = flagInput
		}
		if flagDesign != "" {
			cfg.Design.Path = flagDesign
		}

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagInput, "input", "", "session export to read (.csv or .xlsx; default from config)")
	rootCmd.PersistentFlags().StringVar(&flagDesign, "design", "", "treatment design YAML (default: built-in sequence)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
