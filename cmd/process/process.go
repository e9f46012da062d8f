// Package process handles transaction file processing commands
package process

import (
	"fmt"

	"fjacquet/budget-csv/cmd/root"
	"fjacquet/budget-csv/internal/batch"
	"fjacquet/budget-csv/internal/logging"

	"github.com/spf13/cobra"
)

var (
	inputFile string
	sheetName string
	allFiles  bool
)

// Cmd represents the process command
var Cmd = &cobra.Command{
	Use:   "process",
	Short: "Process transaction exports into the spending workbook",
	Long: `Process reads one transaction export (or every export in the data
directory with --all), resolves merchant names and categories interactively
where needed, and writes one workbook sheet per input file.`,
	RunE: processFunc,
}

func init() {
	Cmd.Flags().StringVarP(&inputFile, "input", "i", "", "Transaction export CSV file")
	Cmd.Flags().StringVarP(&sheetName, "sheet", "s", "", "Worksheet name (default: derived from the file name)")
	Cmd.Flags().BoolVarP(&allFiles, "all", "a", false, "Process every export in the data directory")
	Cmd.MarkFlagsMutuallyExclusive("input", "all")
	Cmd.MarkFlagsOneRequired("input", "all")
}

func processFunc(cmd *cobra.Command, args []string) error {
	logger := root.C.GetLogger()

	var (
		jobs []batch.Job
		err  error
	)
	if allFiles {
		dataDir := root.C.GetConfig().Files.DataDir
		jobs, err = batch.DiscoverJobs(dataDir)
		if err != nil {
			return err
		}
		if len(jobs) == 0 {
			return fmt.Errorf("no transaction exports found in %s", dataDir)
		}
	} else {
		sheet := sheetName
		if sheet == "" {
			sheet = batch.SheetNameFor(inputFile)
		}
		jobs = []batch.Job{{FilePath: inputFile, SheetName: sheet}}
	}

	for _, job := range jobs {
		fmt.Fprintf(cmd.OutOrStdout(), "Processing %s -> sheet %q\n", job.FilePath, job.SheetName)
	}

	summary, err := root.C.GetProcessor().Run(jobs)
	if err != nil {
		return err
	}

	logger.WithFields(
		logging.Field{Key: "processed", Value: summary.Processed},
		logging.Field{Key: "failed", Value: summary.Failed},
	).Info("Processing finished")
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %d sheet(s) to %s\n", summary.Processed, root.C.GetWriter().Path())
	if summary.Failed > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "%d file(s) were skipped, see the log for details\n", summary.Failed)
	}
	return nil
}
