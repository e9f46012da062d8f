// Package clean handles interactive category dictionary maintenance
package clean

import (
	"fjacquet/budget-csv/cmd/root"

	"github.com/spf13/cobra"
)

// Cmd represents the clean command
var Cmd = &cobra.Command{
	Use:   "clean",
	Short: "Interactively tidy the category dictionary",
	Long: `Clean walks through every dictionary entry and lets you rename it,
change its category, or delete it. Deletions are confirmed in bulk before
anything is written back.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return root.C.GetCleaner().Run()
	},
}
