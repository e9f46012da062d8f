// Package report renders processed transactions into an Excel workbook.
// Each input file becomes one worksheet holding the transaction table, the
// two pivot summaries and a doughnut chart of spending by category.
package report

import (
	"fmt"

	"fjacquet/budget-csv/internal/budgeterror"
	"fjacquet/budget-csv/internal/fileutils"
	"fjacquet/budget-csv/internal/logging"
	"fjacquet/budget-csv/internal/pipeline"

	"github.com/xuri/excelize/v2"
)

// Worksheet layout. The transaction table starts at B2, the pivot tables
// share row 26 so the chart above them has room.
const (
	tableHeaderRow = 2
	tableStartCol  = 2 // column B
	pivotHeaderRow = 26
	totalPivotCol  = 7  // column G
	countPivotCol  = 10 // column J
	chartAnchor    = "G2"

	staleSheetName = "__replaced__"
)

// accountingFormat renders amounts as dollar values with red negatives.
const accountingFormat = `"$"* #,##0.00_);[Red]"$"* #,##0.00;"-";@`

var transactionHeaders = []string{"Date", "Name", "Amount", "Category"}

// Writer writes processed results into the workbook at a fixed path,
// creating the file on first use and replacing sheets on reruns.
type Writer struct {
	path   string
	logger logging.Logger
}

// NewWriter creates a workbook writer for the given path.
func NewWriter(path string, logger logging.Logger) *Writer {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Writer{path: path, logger: logger}
}

// Path returns the workbook file path.
func (w *Writer) Path() string {
	return w.path
}

// WriteSheet renders one processed result onto the named sheet, replacing
// any previous sheet of that name, and saves the workbook. A failure to
// save yields a PersistenceError; the caller's in-memory state is intact.
func (w *Writer) WriteSheet(sheetName string, result *pipeline.Result) error {
	f, created, err := w.openWorkbook()
	if err != nil {
		return err
	}
	defer func() {
		if err := f.Close(); err != nil {
			w.logger.WithError(err).Warn("Failed to close workbook")
		}
	}()

	index, err := replaceSheet(f, sheetName, created)
	if err != nil {
		return err
	}

	styles, err := newStyleSet(f)
	if err != nil {
		return err
	}

	if err := writeTransactionTable(f, sheetName, result, styles); err != nil {
		return err
	}
	if err := writePivotTables(f, sheetName, result, styles); err != nil {
		return err
	}
	if err := adjustDimensions(f, sheetName, result); err != nil {
		return err
	}
	if err := addDoughnutChart(f, sheetName, len(result.ByTotal)); err != nil {
		return err
	}

	f.SetActiveSheet(index)
	if err := f.SaveAs(w.path); err != nil {
		return &budgeterror.PersistenceError{Path: w.path, Op: "save workbook", Err: err}
	}

	w.logger.WithFields(
		logging.Field{Key: logging.FieldFile, Value: w.path},
		logging.Field{Key: logging.FieldSheet, Value: sheetName},
		logging.Field{Key: logging.FieldCount, Value: result.GrandCount},
	).Info("Saved processed transactions to workbook")
	return nil
}

// openWorkbook loads the existing workbook or starts a fresh one. The
// second return value reports whether the file is new.
func (w *Writer) openWorkbook() (*excelize.File, bool, error) {
	if !fileutils.FileExists(w.path) {
		return excelize.NewFile(), true, nil
	}
	f, err := excelize.OpenFile(w.path)
	if err != nil {
		return nil, false, &budgeterror.PersistenceError{Path: w.path, Op: "open workbook", Err: err}
	}
	return f, false, nil
}

// replaceSheet makes sheetName a fresh empty sheet. An existing sheet of
// that name is renamed aside first so its index can be reused, then
// dropped; the default sheet of a brand new workbook is dropped too.
func replaceSheet(f *excelize.File, sheetName string, created bool) (int, error) {
	if idx, err := f.GetSheetIndex(sheetName); err == nil && idx != -1 {
		if err := f.SetSheetName(sheetName, staleSheetName); err != nil {
			return 0, fmt.Errorf("error renaming existing sheet: %w", err)
		}
	}

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return 0, fmt.Errorf("error creating sheet %s: %w", sheetName, err)
	}

	if idx, err := f.GetSheetIndex(staleSheetName); err == nil && idx != -1 {
		if err := f.DeleteSheet(staleSheetName); err != nil {
			return 0, fmt.Errorf("error dropping replaced sheet: %w", err)
		}
	}
	if created && sheetName != "Sheet1" {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return 0, fmt.Errorf("error dropping default sheet: %w", err)
		}
	}
	return index, nil
}

// styleSet holds the style IDs used across the sheet. Border runs use
// thin sides on every edge for headers, open bottoms inside tables and a
// closing bottom edge on the last row.
type styleSet struct {
	header       int
	side         int
	bottom       int
	all          int
	sideAmount   int
	bottomAmount int
	allAmount    int
}

func newStyleSet(f *excelize.File) (*styleSet, error) {
	thin := func(types ...string) []excelize.Border {
		borders := make([]excelize.Border, 0, len(types))
		for _, t := range types {
			borders = append(borders, excelize.Border{Type: t, Color: "000000", Style: 1})
		}
		return borders
	}
	numFmt := accountingFormat

	var (
		s   styleSet
		err error
	)
	if s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border:    thin("left", "right", "top", "bottom"),
	}); err != nil {
		return nil, fmt.Errorf("error creating styles: %w", err)
	}
	if s.side, err = f.NewStyle(&excelize.Style{Border: thin("left", "right")}); err != nil {
		return nil, fmt.Errorf("error creating styles: %w", err)
	}
	if s.bottom, err = f.NewStyle(&excelize.Style{Border: thin("left", "right", "bottom")}); err != nil {
		return nil, fmt.Errorf("error creating styles: %w", err)
	}
	if s.all, err = f.NewStyle(&excelize.Style{Border: thin("left", "right", "top", "bottom")}); err != nil {
		return nil, fmt.Errorf("error creating styles: %w", err)
	}
	if s.sideAmount, err = f.NewStyle(&excelize.Style{Border: thin("left", "right"), CustomNumFmt: &numFmt}); err != nil {
		return nil, fmt.Errorf("error creating styles: %w", err)
	}
	if s.bottomAmount, err = f.NewStyle(&excelize.Style{Border: thin("left", "right", "bottom"), CustomNumFmt: &numFmt}); err != nil {
		return nil, fmt.Errorf("error creating styles: %w", err)
	}
	if s.allAmount, err = f.NewStyle(&excelize.Style{Border: thin("left", "right", "top", "bottom"), CustomNumFmt: &numFmt}); err != nil {
		return nil, fmt.Errorf("error creating styles: %w", err)
	}
	return &s, nil
}

func setCell(f *excelize.File, sheet string, col, row int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("error resolving cell: %w", err)
	}
	return f.SetCellValue(sheet, cell, value)
}

func styleRange(f *excelize.File, sheet string, colStart, rowStart, colEnd, rowEnd, styleID int) error {
	start, err := excelize.CoordinatesToCellName(colStart, rowStart)
	if err != nil {
		return fmt.Errorf("error resolving cell: %w", err)
	}
	end, err := excelize.CoordinatesToCellName(colEnd, rowEnd)
	if err != nil {
		return fmt.Errorf("error resolving cell: %w", err)
	}
	return f.SetCellStyle(sheet, start, end, styleID)
}

// writeTransactionTable lays out Date, Name, Amount and Category starting
// at B2 with a bordered header and accounting-formatted amounts.
func writeTransactionTable(f *excelize.File, sheet string, result *pipeline.Result, styles *styleSet) error {
	for i, header := range transactionHeaders {
		if err := setCell(f, sheet, tableStartCol+i, tableHeaderRow, header); err != nil {
			return err
		}
	}

	for i, tx := range result.Transactions {
		row := tableHeaderRow + 1 + i
		amount, _ := tx.Amount.Float64()
		values := []interface{}{tx.Date, tx.Name, amount, tx.Category}
		for j, value := range values {
			if err := setCell(f, sheet, tableStartCol+j, row, value); err != nil {
				return err
			}
		}
	}

	return borderedColumns(f, sheet, tableStartCol, tableStartCol+len(transactionHeaders)-1,
		tableHeaderRow, len(result.Transactions), tableStartCol+2, styles)
}

// writePivotTables lays out the by-total pivot at G26, the by-count pivot
// at J26 and the trailing Grand Total / Transaction Count rows.
func writePivotTables(f *excelize.File, sheet string, result *pipeline.Result, styles *styleSet) error {
	grandRow := pivotHeaderRow + len(result.ByTotal) + 2
	grandTotal, _ := result.GrandTotal.Float64()

	headers := []struct {
		col   int
		left  string
		right string
	}{
		{totalPivotCol, "Category", "Amount"},
		{countPivotCol, "Category", "Count"},
	}
	for _, h := range headers {
		if err := setCell(f, sheet, h.col, pivotHeaderRow, h.left); err != nil {
			return err
		}
		if err := setCell(f, sheet, h.col+1, pivotHeaderRow, h.right); err != nil {
			return err
		}
	}

	for i, row := range result.ByTotal {
		total, _ := row.Total.Float64()
		if err := setCell(f, sheet, totalPivotCol, pivotHeaderRow+1+i, row.Category); err != nil {
			return err
		}
		if err := setCell(f, sheet, totalPivotCol+1, pivotHeaderRow+1+i, total); err != nil {
			return err
		}
	}
	for i, row := range result.ByCount {
		if err := setCell(f, sheet, countPivotCol, pivotHeaderRow+1+i, row.Category); err != nil {
			return err
		}
		if err := setCell(f, sheet, countPivotCol+1, pivotHeaderRow+1+i, row.Count); err != nil {
			return err
		}
	}

	if err := setCell(f, sheet, totalPivotCol, grandRow, "Grand Total"); err != nil {
		return err
	}
	if err := setCell(f, sheet, totalPivotCol+1, grandRow, grandTotal); err != nil {
		return err
	}
	if err := setCell(f, sheet, countPivotCol, grandRow, "Transaction Count"); err != nil {
		return err
	}
	if err := setCell(f, sheet, countPivotCol+1, grandRow, result.GrandCount); err != nil {
		return err
	}

	rows := len(result.ByTotal)
	if err := borderedColumns(f, sheet, totalPivotCol, totalPivotCol+1, pivotHeaderRow, rows, totalPivotCol+1, styles); err != nil {
		return err
	}
	if err := borderedColumns(f, sheet, countPivotCol, countPivotCol+1, pivotHeaderRow, rows, 0, styles); err != nil {
		return err
	}

	if err := styleRange(f, sheet, totalPivotCol, grandRow, totalPivotCol, grandRow, styles.header); err != nil {
		return err
	}
	if err := styleRange(f, sheet, totalPivotCol+1, grandRow, totalPivotCol+1, grandRow, styles.allAmount); err != nil {
		return err
	}
	if err := styleRange(f, sheet, countPivotCol, grandRow, countPivotCol, grandRow, styles.header); err != nil {
		return err
	}
	return styleRange(f, sheet, countPivotCol+1, grandRow, countPivotCol+1, grandRow, styles.all)
}

// borderedColumns styles one table block: bold bordered header row,
// side-bordered body rows and a closing bottom border on the last row.
// amountCol, when non-zero, additionally gets the accounting format.
func borderedColumns(f *excelize.File, sheet string, colStart, colEnd, headerRow, dataRows, amountCol int, styles *styleSet) error {
	if err := styleRange(f, sheet, colStart, headerRow, colEnd, headerRow, styles.header); err != nil {
		return err
	}
	if dataRows == 0 {
		return nil
	}

	lastRow := headerRow + dataRows
	if dataRows > 1 {
		if err := styleRange(f, sheet, colStart, headerRow+1, colEnd, lastRow-1, styles.side); err != nil {
			return err
		}
	}
	if err := styleRange(f, sheet, colStart, lastRow, colEnd, lastRow, styles.bottom); err != nil {
		return err
	}

	if amountCol == 0 {
		return nil
	}
	if dataRows > 1 {
		if err := styleRange(f, sheet, amountCol, headerRow+1, amountCol, lastRow-1, styles.sideAmount); err != nil {
			return err
		}
	}
	return styleRange(f, sheet, amountCol, lastRow, amountCol, lastRow, styles.bottomAmount)
}

// adjustDimensions sizes columns to their content plus the fixed widths
// the layout relies on: a sliver first column, narrow gutters between the
// tables and room for the formatted amounts.
func adjustDimensions(f *excelize.File, sheet string, result *pipeline.Result) error {
	nameWidth, categoryWidth := 4.0, 8.0
	for _, tx := range result.Transactions {
		nameWidth = maxWidth(nameWidth, tx.Name)
		categoryWidth = maxWidth(categoryWidth, tx.Category)
	}
	pivotWidth := maxWidth(0, "Transaction Count")
	for _, row := range result.ByTotal {
		pivotWidth = maxWidth(pivotWidth, row.Category)
	}

	widths := []struct {
		col   string
		width float64
	}{
		{"A", 1.54},
		{"B", 11.71},
		{"C", nameWidth},
		{"D", 10.85},
		{"E", categoryWidth},
		{"F", 2.71},
		{"G", pivotWidth},
		{"H", 10.85},
		{"I", 2.71},
		{"J", pivotWidth},
		{"K", 7.71},
	}
	for _, w := range widths {
		if err := f.SetColWidth(sheet, w.col, w.col, w.width); err != nil {
			return fmt.Errorf("error setting column width: %w", err)
		}
	}
	if err := f.SetRowHeight(sheet, 1, 7.5); err != nil {
		return fmt.Errorf("error setting row height: %w", err)
	}
	return nil
}

func maxWidth(current float64, value string) float64 {
	width := float64(len(value)+2) * 1.08
	if width > current {
		return width
	}
	return current
}

// addDoughnutChart charts the by-total pivot as a doughnut with percent
// and value labels. Skipped when there are no categories to plot.
func addDoughnutChart(f *excelize.File, sheet string, categories int) error {
	if categories == 0 {
		return nil
	}

	firstDataRow := pivotHeaderRow + 1
	lastDataRow := pivotHeaderRow + categories
	varyColors := true

	chart := &excelize.Chart{
		Type: excelize.Doughnut,
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("'%s'!$H$%d", sheet, pivotHeaderRow),
			Categories: fmt.Sprintf("'%s'!$G$%d:$G$%d", sheet, firstDataRow, lastDataRow),
			Values:     fmt.Sprintf("'%s'!$H$%d:$H$%d", sheet, firstDataRow, lastDataRow),
		}},
		Title:      []excelize.RichTextRun{{Text: "Expense Distribution"}},
		VaryColors: &varyColors,
		HoleSize:   50,
		PlotArea: excelize.ChartPlotArea{
			ShowPercent: true,
			ShowVal:     true,
		},
		Dimension: excelize.ChartDimension{Width: 570, Height: 455},
	}
	if err := f.AddChart(sheet, chartAnchor, chart); err != nil {
		return fmt.Errorf("error adding chart: %w", err)
	}
	return nil
}
