package interfaces

import (
	"context"
	"time"

	"github.com/rustamq/sellerpulse/internal/models"
)

// ReportService computes financial reports from marketplace records.
type ReportService interface {
	// Summarize fetches orders and expenses for the period and reduces them
	// into a financial summary with a per-category expense breakdown. With
	// categories set, only expenses in those categories enter the breakdown.
	Summarize(ctx context.Context, shopID string, from, to time.Time, categories []models.ExpenseCategory) (*models.SummaryReport, error)

	// Expenses fetches only expense records for the period and reduces them
	// to a per-category breakdown, skipping the orders fetch entirely.
	Expenses(ctx context.Context, shopID string, from, to time.Time, categories []models.ExpenseCategory) (*models.ExpenseReport, error)

	// BucketByDay fetches orders for the period and groups them into dense
	// calendar-day buckets in the report timezone.
	BucketByDay(ctx context.Context, shopID string, from, to time.Time) (*models.DailyReport, error)

	// BucketByWeek is the ISO-week convenience form of BucketByDay, covering
	// the current week or the previous one relative to now.
	BucketByWeek(ctx context.Context, shopID string, previous bool) (*models.DailyReport, error)
}
