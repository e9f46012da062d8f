// Package root contains the root command for the application
package root

import (
	"fmt"

	"fjacquet/budget-csv/internal/config"
	"fjacquet/budget-csv/internal/container"

	"github.com/spf13/cobra"
)

// C is the shared dependency container, wired before any subcommand runs.
var C *container.Container

// Cmd is the root command
var Cmd = &cobra.Command{
	Use:   "budget-csv",
	Short: "A CLI tool to categorize bank transaction exports into a spending workbook.",
	Long: `budget-csv reads credit-card transaction exports, normalizes merchant
names, categorizes each transaction against a persistent dictionary and
renders the results into an Excel workbook with per-category summaries.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), "Welcome to budget-csv!")
		return cmd.Help()
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.LoadEnv()

		cfg, err := config.InitializeConfig()
		if err != nil {
			return err
		}

		C, err = container.NewContainer(cfg, container.Options{})
		return err
	},
	// Flush any pending dictionary changes when ANY command finishes
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if C == nil {
			return nil
		}
		return C.Close()
	},
}

// Init initializes the root command flags.
func Init() {
	Cmd.SilenceUsage = true
}
