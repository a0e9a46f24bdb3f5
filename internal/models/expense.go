package models

import "strings"

// ExpenseCategory is the business category assigned to an expense record.
type ExpenseCategory string

const (
	CategoryMarketing  ExpenseCategory = "marketing"
	CategoryCommission ExpenseCategory = "commission"
	CategoryLogistics  ExpenseCategory = "logistics"
	CategoryFines      ExpenseCategory = "fines"
)

// Expense is the canonical, alias-resolved form of an upstream expense
// record. Amount is always non-negative (absolute value of any signed
// source). Category is derived locally, never supplied upstream.
type Expense struct {
	ID          string          `json:"id"`
	TimestampMs int64           `json:"timestamp_ms"`
	Amount      float64         `json:"amount"`
	Type        string          `json:"type"`
	Source      string          `json:"source"`
	Description string          `json:"description"`
	Category    ExpenseCategory `json:"category"`
}

// validExpenseCategories lists all defined categories.
var validExpenseCategories = map[ExpenseCategory]bool{
	CategoryMarketing:  true,
	CategoryCommission: true,
	CategoryLogistics:  true,
	CategoryFines:      true,
}

// ValidExpenseCategory returns true if c is a defined expense category.
func ValidExpenseCategory(c ExpenseCategory) bool {
	return validExpenseCategories[c]
}

// categoryKeywords holds the keyword sets in match-priority order. Some
// texts match multiple categories, so the order is part of the contract:
// marketing, then commission, then logistics, then fines. Keywords cover
// both Latin and Cyrillic labels seen in upstream payloads.
var categoryKeywords = []struct {
	category ExpenseCategory
	keywords []string
}{
	{CategoryMarketing, []string{"market", "маркет"}},
	{CategoryCommission, []string{"commi", "комисс"}},
	{CategoryLogistics, []string{"logist", "логист", "delivery", "доставк"}},
	{CategoryFines, []string{"fine", "штраф", "penalty"}},
}

// ClassifyExpense assigns a category from the concatenated text fields.
// Matching is case-insensitive substring search, first match wins.
// Unmatched expenses are attributed to commission rather than left
// uncategorized, so category sums always add up to the expense total.
func ClassifyExpense(typeText, sourceText, description string) ExpenseCategory {
	haystack := strings.ToLower(typeText + " " + sourceText + " " + description)

	for _, set := range categoryKeywords {
		for _, kw := range set.keywords {
			if strings.Contains(haystack, kw) {
				return set.category
			}
		}
	}
	return CategoryCommission
}

// Classify returns the category for this expense's text fields.
func (e *Expense) Classify() ExpenseCategory {
	return ClassifyExpense(e.Type, e.Source, e.Description)
}
