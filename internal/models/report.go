package models

import "time"

// SummaryReport is the envelope returned by the summary entry point.
// Truncated is set when the upstream fetch stopped early (retry cap or
// page cap) and the figures cover only the records gathered so far.
type SummaryReport struct {
	ShopID    string                      `json:"shop_id"`
	From      time.Time                   `json:"from"`
	To        time.Time                   `json:"to"`
	Summary   FinancialSummary            `json:"summary"`
	Expenses  map[ExpenseCategory]float64 `json:"expenses"`
	Orders    int                         `json:"orders"`
	Truncated bool                        `json:"truncated"`
}

// ExpenseReport is the envelope returned by the expense-breakdown entry
// point. Unlike SummaryReport it is backed by the expense source alone.
type ExpenseReport struct {
	ShopID    string                      `json:"shop_id"`
	From      time.Time                   `json:"from"`
	To        time.Time                   `json:"to"`
	Expenses  map[ExpenseCategory]float64 `json:"expenses"`
	Truncated bool                        `json:"truncated"`
}

// DailyReport is the envelope returned by the day-bucketed entry point.
type DailyReport struct {
	ShopID    string     `json:"shop_id"`
	From      time.Time  `json:"from"`
	To        time.Time  `json:"to"`
	Days      []DayStats `json:"days"`
	Issued    int        `json:"issued"`
	Pending   int        `json:"pending"`
	Truncated bool       `json:"truncated"`
}
