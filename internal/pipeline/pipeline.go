// Package pipeline turns raw bank-export rows into named, categorized
// transactions and per-category pivot summaries.
package pipeline

import (
	"sort"
	"strings"

	"fjacquet/budget-csv/internal/bankparser"
	"fjacquet/budget-csv/internal/classifier"
	"fjacquet/budget-csv/internal/logging"
	"fjacquet/budget-csv/internal/models"

	"github.com/shopspring/decimal"
)

// Result is the output of processing one transaction file: the processed
// table, the two pivot summaries and the trailing grand rows.
type Result struct {
	Transactions []models.Transaction
	ByTotal      []models.PivotRow
	ByCount      []models.PivotRow
	GrandTotal   decimal.Decimal
	GrandCount   int
}

// Pipeline processes transaction rows through normalization and
// categorization against a shared classifier. Files processed later in a
// batch benefit from names learned while processing earlier ones.
type Pipeline struct {
	classifier    *classifier.Classifier
	paymentMarker string
	logger        logging.Logger
}

// New creates a Pipeline. paymentMarker is the case-insensitive substring
// that identifies transfer rows to drop, typically "payment".
func New(cl *classifier.Classifier, paymentMarker string, logger logging.Logger) *Pipeline {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if paymentMarker == "" {
		paymentMarker = "payment"
	}
	return &Pipeline{
		classifier:    cl,
		paymentMarker: strings.ToLower(paymentMarker),
		logger:        logger,
	}
}

// Process runs the full pipeline over the rows of one file.
func (p *Pipeline) Process(rows []bankparser.Row) (*Result, error) {
	transactions := make([]models.Transaction, 0, len(rows))

	for _, row := range rows {
		// Transfer rows are account movements, not expenses
		if strings.Contains(strings.ToLower(row.Category), p.paymentMarker) {
			p.logger.WithField(logging.FieldName, row.Description).Debug("Dropping payment row")
			continue
		}

		name, err := p.classifier.ResolveName(row.Description)
		if err != nil {
			return nil, err
		}
		if name == "" {
			name = strings.ToUpper(strings.TrimSpace(row.Description))
		}

		category, err := p.classifier.ResolveCategory(name)
		if err != nil {
			return nil, err
		}

		transactions = append(transactions, models.Transaction{
			Date:     row.TransactionDate,
			Name:     name,
			Amount:   rowAmount(row),
			Category: category,
		})
	}

	// Edits made while categorizing later rows may have renamed a merchant;
	// re-resolve display names so earlier rows pick the edits up too.
	for i := range transactions {
		if key, ok := p.classifier.MatchName(transactions[i].Name); ok {
			transactions[i].Name = key
		}
	}

	result := &Result{
		Transactions: transactions,
		ByTotal:      pivotByTotal(transactions),
		ByCount:      pivotByCount(transactions),
		GrandCount:   len(transactions),
	}
	result.GrandTotal = decimal.Zero
	for _, tx := range transactions {
		result.GrandTotal = result.GrandTotal.Add(tx.Amount)
	}

	p.logger.WithFields(
		logging.Field{Key: logging.FieldCount, Value: len(transactions)},
		logging.Field{Key: "categories", Value: len(result.ByTotal)},
	).Info("Processed transactions")
	return result, nil
}

// rowAmount merges the Debit/Credit pair into a single signed amount:
// debits are positive spend, credits are negated.
func rowAmount(row bankparser.Row) decimal.Decimal {
	if strings.TrimSpace(row.Debit) != "" {
		return models.ParseAmount(row.Debit)
	}
	return models.ParseAmount(row.Credit).Neg()
}

func pivotByTotal(transactions []models.Transaction) []models.PivotRow {
	rows := groupByCategory(transactions)
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].Total.Equal(rows[j].Total) {
			return rows[i].Total.GreaterThan(rows[j].Total)
		}
		return rows[i].Category < rows[j].Category
	})
	return rows
}

func pivotByCount(transactions []models.Transaction) []models.PivotRow {
	rows := groupByCategory(transactions)
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Category < rows[j].Category
	})
	return rows
}

func groupByCategory(transactions []models.Transaction) []models.PivotRow {
	totals := make(map[string]*models.PivotRow)
	var order []string

	for _, tx := range transactions {
		row, exists := totals[tx.Category]
		if !exists {
			row = &models.PivotRow{Category: tx.Category, Total: decimal.Zero}
			totals[tx.Category] = row
			order = append(order, tx.Category)
		}
		row.Total = row.Total.Add(tx.Amount)
		row.Count++
	}

	rows := make([]models.PivotRow, 0, len(order))
	for _, category := range order {
		rows = append(rows, *totals[category])
	}
	return rows
}
