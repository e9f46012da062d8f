// Package models defines the core data types shared across the application.
package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CategoryUncategorized is the category assigned to newly learned merchants
// until the user supplies a real category.
const CategoryUncategorized = "Uncategorized"

// Transaction represents a single processed bank transaction.
// Amount is signed: debits are positive spend, credits are negated.
type Transaction struct {
	Date     string          `csv:"Date"`
	Name     string          `csv:"Name"`
	Amount   decimal.Decimal `csv:"Amount"`
	Category string          `csv:"Category"`
}

// PivotRow is one row of a per-category pivot summary.
type PivotRow struct {
	Category string
	Total    decimal.Decimal
	Count    int
}

// CategoryEntry is one row of the persisted category table.
type CategoryEntry struct {
	Name     string `csv:"Name"`
	Category string `csv:"Category"`
}

// ParseAmount converts a string to a decimal amount, returning zero for
// empty or unparseable input.
func ParseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	// Tolerate thousands separators in bank exports
	s = strings.ReplaceAll(s, ",", "")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Capitalize normalizes a free-text category label to capitalized-first-letter
// form, e.g. "dining OUT" becomes "Dining out".
func Capitalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	lower := strings.ToLower(s)
	return strings.ToUpper(lower[:1]) + lower[1:]
}
