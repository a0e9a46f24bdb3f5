package report

import (
	"github.com/rustamq/sellerpulse/internal/models"
)

// Summarize reduces normalized orders into a financial summary. Cancelled
// and returned orders are excluded from gross revenue and counted as
// refunds instead. Commission and logistics here are the per-order fee
// fields summed as line items; they are not re-derived from expense-record
// classification, which covers a separate data source (see
// ExpenseBreakdown).
func Summarize(orders []models.Order) models.FinancialSummary {
	var summary models.FinancialSummary

	for i := range orders {
		order := &orders[i]
		gross := order.GrossAmount()

		if order.Bucket() == models.BucketCanceled {
			summary.Refunds += gross
		} else {
			summary.RevenueGross += gross
		}

		summary.Commission += order.Commission
		summary.Logistics += order.LogisticsFee
		summary.Payouts += order.SellerProfit * float64(order.Quantity)
	}

	summary.RevenueNet = summary.RevenueGross - summary.Commission - summary.Logistics - summary.Refunds
	summary.Balance = summary.RevenueNet - summary.Payouts

	summary.Sanitize()
	return summary
}

// ExpenseBreakdown sums expense amounts per category. Every category is
// present in the result, so the dashboard always renders all four slices,
// and the category sums add up to the total expense amount. Expenses with
// an unknown date still count here; date-bucketed views are the only place
// they are excluded.
func ExpenseBreakdown(expenses []models.Expense) map[models.ExpenseCategory]float64 {
	breakdown := map[models.ExpenseCategory]float64{
		models.CategoryMarketing:  0,
		models.CategoryCommission: 0,
		models.CategoryLogistics:  0,
		models.CategoryFines:      0,
	}

	for i := range expenses {
		category := expenses[i].Category
		if _, ok := breakdown[category]; !ok {
			// Unset category on an incrementally-assembled record.
			category = models.CategoryCommission
		}
		breakdown[category] += expenses[i].Amount
	}

	return breakdown
}
