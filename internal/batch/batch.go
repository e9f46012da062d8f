// Package batch processes a set of transaction exports into the workbook,
// one sheet per file, sharing a single category dictionary so names learned
// in one file carry into the next.
package batch

import (
	"errors"
	"path/filepath"
	"strings"

	"fjacquet/budget-csv/internal/bankparser"
	"fjacquet/budget-csv/internal/budgeterror"
	"fjacquet/budget-csv/internal/fileutils"
	"fjacquet/budget-csv/internal/logging"
	"fjacquet/budget-csv/internal/pipeline"
	"fjacquet/budget-csv/internal/report"
)

// exportSuffix marks transaction exports in the data directory, e.g.
// JanExp.csv becomes sheet Jan.
const exportSuffix = "Exp.csv"

// Job pairs one input file with the worksheet it renders to.
type Job struct {
	FilePath  string
	SheetName string
}

// Summary reports the outcome of a batch run.
type Summary struct {
	Processed int
	Failed    int
}

// Processor runs jobs through the pipeline and into the workbook.
type Processor struct {
	pipeline *pipeline.Pipeline
	writer   *report.Writer
	logger   logging.Logger
}

// NewProcessor creates a batch processor.
func NewProcessor(p *pipeline.Pipeline, w *report.Writer, logger logging.Logger) *Processor {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Processor{pipeline: p, writer: w, logger: logger}
}

// SheetNameFor derives the worksheet name from a file name: the export
// suffix is stripped, otherwise just the extension.
func SheetNameFor(filePath string) string {
	base := filepath.Base(filePath)
	if strings.HasSuffix(strings.ToLower(base), strings.ToLower(exportSuffix)) {
		return base[:len(base)-len(exportSuffix)]
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// DiscoverJobs lists the export files in the data directory as jobs,
// sorted by file name.
func DiscoverJobs(dataDir string) ([]Job, error) {
	files, err := fileutils.ListFilesWithSuffix(dataDir, exportSuffix)
	if err != nil {
		return nil, err
	}

	jobs := make([]Job, 0, len(files))
	for _, file := range files {
		jobs = append(jobs, Job{FilePath: file, SheetName: SheetNameFor(file)})
	}
	return jobs, nil
}

// Run processes each job in order. A malformed input file fails that file
// only; a workbook save failure is reported and the batch moves on. Only a
// broken interactive session aborts the whole run.
func (p *Processor) Run(jobs []Job) (Summary, error) {
	var summary Summary

	for _, job := range jobs {
		fields := []logging.Field{
			{Key: logging.FieldFile, Value: job.FilePath},
			{Key: logging.FieldSheet, Value: job.SheetName},
		}
		p.logger.WithFields(fields...).Info("Processing transaction file")

		rows, err := bankparser.ParseFile(job.FilePath, p.logger)
		if err != nil {
			var formatErr *budgeterror.InputFormatError
			if errors.As(err, &formatErr) {
				p.logger.WithError(err).WithFields(fields...).Error("Skipping malformed file")
				summary.Failed++
				continue
			}
			return summary, err
		}

		result, err := p.pipeline.Process(rows)
		if err != nil {
			return summary, err
		}

		if err := p.writer.WriteSheet(job.SheetName, result); err != nil {
			var persistErr *budgeterror.PersistenceError
			if !errors.As(err, &persistErr) {
				return summary, err
			}
			p.logger.WithError(err).WithFields(fields...).Error("Failed to save workbook sheet")
			summary.Failed++
			continue
		}

		summary.Processed++
	}

	return summary, nil
}
