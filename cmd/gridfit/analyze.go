package gridfit

import (
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Print utilization of every subscreen",
	RunE: func(cmd *cobra.Command, _ []string) error {
		l, err := loadLayout()
		if err != nil {
			return err
		}

		writeReports(cmd.OutOrStdout(), l.Reports())

		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}
