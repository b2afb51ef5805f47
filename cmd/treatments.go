package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var treatmentsCmd = &cobra.Command{
	Use:   "treatments",
	Short: "Print the active treatment design as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		seq, err := loadDesign()
		if err != nil {
			return err
		}
		data, err := seq.Marshal()
		if err != nil {
			return eris.Wrap(err, "marshal design")
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	rootCmd.AddCommand(treatmentsCmd)
}
