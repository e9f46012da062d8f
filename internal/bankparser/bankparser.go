// Package bankparser reads bank-exported transaction CSV files.
// It handles the credit-card export schema with Transaction Date, Description,
// Debit, Credit and Category columns; Posted Date, Card No. and Memo are
// accepted and ignored.
package bankparser

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"fjacquet/budget-csv/internal/budgeterror"
	"fjacquet/budget-csv/internal/logging"

	"github.com/gocarina/gocsv"
)

// Row represents a single row of a bank transaction export.
type Row struct {
	TransactionDate string `csv:"Transaction Date"`
	PostedDate      string `csv:"Posted Date"`
	CardNo          string `csv:"Card No."`
	Description     string `csv:"Description"`
	Category        string `csv:"Category"`
	Debit           string `csv:"Debit"`
	Credit          string `csv:"Credit"`
	Memo            string `csv:"Memo"`
}

// requiredColumns are the columns a transaction export must carry. A file
// missing any of them is rejected as a whole.
var requiredColumns = []string{"Transaction Date", "Description", "Debit", "Credit", "Category"}

// delimiter separates fields in transaction exports, comma by default.
var delimiter = ','

// SetDelimiter overrides the field delimiter used when reading exports.
func SetDelimiter(d rune) {
	delimiter = d
}

// ValidateFormat checks that the file header carries the required columns.
// A missing column yields an InputFormatError, fatal for this file only.
func ValidateFormat(filePath string, logger logging.Logger) error {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}

	file, err := os.Open(filePath) // #nosec G304 -- CLI tool requires user-provided file paths
	if err != nil {
		return fmt.Errorf("error opening file for validation: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close file")
		}
	}()

	reader := csv.NewReader(file)
	reader.Comma = delimiter
	header, err := reader.Read()
	if err == io.EOF {
		return &budgeterror.InputFormatError{File: filePath, Msg: "empty file"}
	}
	if err != nil {
		return fmt.Errorf("error reading CSV header: %w", err)
	}

	columnSet := make(map[string]bool, len(header))
	for _, col := range header {
		columnSet[col] = true
	}

	for _, required := range requiredColumns {
		if !columnSet[required] {
			logger.WithFields(
				logging.Field{Key: logging.FieldFile, Value: filePath},
				logging.Field{Key: "column", Value: required},
			).Error("Required column not found")
			return &budgeterror.InputFormatError{File: filePath, Column: required}
		}
	}

	return nil
}

// ParseFile validates and reads a transaction export into rows.
func ParseFile(filePath string, logger logging.Logger) ([]Row, error) {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	logger.WithField(logging.FieldFile, filePath).Info("Reading transaction file")

	if err := ValidateFormat(filePath, logger); err != nil {
		return nil, err
	}

	file, err := os.Open(filePath) // #nosec G304 -- CLI tool requires user-provided file paths
	if err != nil {
		return nil, fmt.Errorf("error opening transaction file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close file")
		}
	}()

	reader := csv.NewReader(file)
	reader.Comma = delimiter

	var rows []Row
	if err := gocsv.UnmarshalCSV(reader, &rows); err != nil {
		return nil, fmt.Errorf("error parsing transaction file: %w", err)
	}

	// Drop rows with no transaction date, e.g. trailing blank lines
	filtered := rows[:0]
	for _, row := range rows {
		if row.TransactionDate == "" {
			continue
		}
		filtered = append(filtered, row)
	}

	logger.WithFields(
		logging.Field{Key: logging.FieldFile, Value: filePath},
		logging.Field{Key: logging.FieldCount, Value: len(filtered)},
	).Info("Successfully read transaction rows")
	return filtered, nil
}
