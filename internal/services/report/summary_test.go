package report

import (
	"math"
	"testing"

	"github.com/rustamq/sellerpulse/internal/models"
)

func TestSummarizeWorkedExample(t *testing.T) {
	orders := []models.Order{
		{UnitPrice: 1000, Quantity: 2, Commission: 50, LogisticsFee: 20, SellerProfit: 900, Status: "COMPLETED"},
		{UnitPrice: 500, Quantity: 1, Status: "CANCELED", Cancelled: true},
	}

	s := Summarize(orders)

	if s.RevenueGross != 2000 {
		t.Errorf("RevenueGross = %v, want 2000", s.RevenueGross)
	}
	if s.Refunds != 500 {
		t.Errorf("Refunds = %v, want 500", s.Refunds)
	}
	if s.Commission != 50 {
		t.Errorf("Commission = %v, want 50", s.Commission)
	}
	if s.Logistics != 20 {
		t.Errorf("Logistics = %v, want 20", s.Logistics)
	}
	if s.RevenueNet != 1430 {
		t.Errorf("RevenueNet = %v, want 1430", s.RevenueNet)
	}
	if s.Payouts != 1800 {
		t.Errorf("Payouts = %v, want 1800", s.Payouts)
	}
	if s.Balance != -370 {
		t.Errorf("Balance = %v, want -370", s.Balance)
	}
}

func TestSummarizeCancelledExcludedFromGross(t *testing.T) {
	orders := []models.Order{
		{UnitPrice: 300, Quantity: 2, Status: "DELIVERED", Cancelled: true},
	}

	s := Summarize(orders)

	if s.RevenueGross != 0 {
		t.Errorf("RevenueGross = %v, want 0 for a cancelled order", s.RevenueGross)
	}
	if s.Refunds != 600 {
		t.Errorf("Refunds = %v, want 600", s.Refunds)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)

	if s != (models.FinancialSummary{}) {
		t.Errorf("empty input summary = %+v, want all zeros", s)
	}
}

func TestSummarizeOutputAlwaysFinite(t *testing.T) {
	// Upstream normalization guarantees finite fields, but the calculator
	// may also be fed hand-assembled orders; the sanitize pass must hold.
	orders := []models.Order{
		{UnitPrice: math.NaN(), Quantity: 1, Commission: math.Inf(1), Status: "COMPLETED"},
	}

	s := Summarize(orders)

	for name, v := range map[string]float64{
		"RevenueGross": s.RevenueGross,
		"Commission":   s.Commission,
		"Logistics":    s.Logistics,
		"Refunds":      s.Refunds,
		"Payouts":      s.Payouts,
		"RevenueNet":   s.RevenueNet,
		"Balance":      s.Balance,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Errorf("%s = %v, want finite", name, v)
		}
	}
}

func TestExpenseBreakdownNoLeakage(t *testing.T) {
	expenses := []models.Expense{
		{Amount: 100, Category: models.CategoryMarketing},
		{Amount: 200, Category: models.CategoryCommission},
		{Amount: 50, Category: models.CategoryLogistics},
		{Amount: 25, Category: models.CategoryFines},
		{Amount: 10, Category: models.CategoryCommission},
	}

	breakdown := ExpenseBreakdown(expenses)

	var total float64
	for _, v := range breakdown {
		total += v
	}
	if total != 385 {
		t.Errorf("category total = %v, want 385 (no leakage)", total)
	}
	if breakdown[models.CategoryMarketing] != 100 {
		t.Errorf("marketing = %v, want 100", breakdown[models.CategoryMarketing])
	}
	if breakdown[models.CategoryCommission] != 210 {
		t.Errorf("commission = %v, want 210", breakdown[models.CategoryCommission])
	}
}

func TestExpenseBreakdownAllCategoriesPresent(t *testing.T) {
	breakdown := ExpenseBreakdown(nil)

	for _, cat := range []models.ExpenseCategory{
		models.CategoryMarketing, models.CategoryCommission,
		models.CategoryLogistics, models.CategoryFines,
	} {
		if _, ok := breakdown[cat]; !ok {
			t.Errorf("category %q missing from empty breakdown", cat)
		}
	}
}

func TestExpenseBreakdownUnsetCategory(t *testing.T) {
	// Records assembled without classification fall into commission, the
	// same fallback the classifier uses.
	breakdown := ExpenseBreakdown([]models.Expense{{Amount: 40}})

	if breakdown[models.CategoryCommission] != 40 {
		t.Errorf("commission = %v, want 40", breakdown[models.CategoryCommission])
	}
}
