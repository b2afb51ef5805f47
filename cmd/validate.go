package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the export against the treatment design without writing files",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("validate"); err != nil {
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

		fmt.Fprintf(cmd.OutOrStdout(), "data validation passed: %d of %d rows kept\n", res.Table.Len(), res.Loaded)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
