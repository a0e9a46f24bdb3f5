package models

import "math"

// FinancialSummary is the reduced financial view of a set of orders and
// expenses over a period. RevenueNet and Balance may be negative; the
// remaining fields are non-negative sums.
type FinancialSummary struct {
	RevenueGross float64 `json:"revenue_gross"`
	Commission   float64 `json:"commission"`
	Logistics    float64 `json:"logistics"`
	Refunds      float64 `json:"refunds"`
	Payouts      float64 `json:"payouts"`
	RevenueNet   float64 `json:"revenue_net"`
	Balance      float64 `json:"balance"`
}

// Sanitize coerces any non-finite field to 0. This is the last line of
// defense and runs even when upstream normalization already guaranteed
// finite values, because summaries may also be assembled incrementally by
// callers.
func (s *FinancialSummary) Sanitize() {
	for _, f := range []*float64{
		&s.RevenueGross, &s.Commission, &s.Logistics,
		&s.Refunds, &s.Payouts, &s.RevenueNet, &s.Balance,
	} {
		if math.IsNaN(*f) || math.IsInf(*f, 0) {
			*f = 0
		}
	}
}

// DayStats holds per-calendar-day order counters in the report timezone.
type DayStats struct {
	Date     string `json:"date"` // YYYY-MM-DD in the report timezone
	Sold     int    `json:"sold"`
	Canceled int    `json:"canceled"`
}
