// Package report computes financial summaries and day-bucketed statistics
// from marketplace order and expense records.
package report

import (
	"context"
	"errors"
	"time"

	"github.com/rustamq/sellerpulse/internal/clients/marketplace"
	"github.com/rustamq/sellerpulse/internal/common"
	"github.com/rustamq/sellerpulse/internal/interfaces"
	"github.com/rustamq/sellerpulse/internal/models"
)

// Compile-time interface check
var _ interfaces.ReportService = (*Service)(nil)

// Service implements ReportService on top of a marketplace client.
type Service struct {
	client interfaces.MarketplaceClient
	logger *common.Logger
	loc    *time.Location
	now    func() time.Time
}

// NewService creates a new report service. timezone is the IANA zone for
// calendar-day bucketing; an unknown zone falls back to UTC.
func NewService(client interfaces.MarketplaceClient, logger *common.Logger, timezone string) *Service {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		logger.Warn().Str("timezone", timezone).Msg("Unknown report timezone, falling back to UTC")
		loc = time.UTC
	}

	return &Service{
		client: client,
		logger: logger,
		loc:    loc,
		now:    time.Now,
	}
}

// Location returns the timezone used for day bucketing.
func (s *Service) Location() *time.Location {
	return s.loc
}

type fetchResult struct {
	records []models.RawRecord
	err     error
}

// Summarize fetches orders and expenses for the period and reduces them
// into a financial summary with a per-category expense breakdown. The two
// fetch jobs run concurrently; each stays sequential internally to respect
// the upstream rate limit. A partial fetch still produces a summary, with
// Truncated set on the report. With categories set, only expenses in those
// categories enter the breakdown.
func (s *Service) Summarize(ctx context.Context, shopID string, from, to time.Time, categories []models.ExpenseCategory) (*models.SummaryReport, error) {
	ordersCh := make(chan fetchResult, 1)
	expensesCh := make(chan fetchResult, 1)

	go func() {
		records, err := s.client.FetchOrders(ctx, shopID, from, to)
		ordersCh <- fetchResult{records: records, err: err}
	}()
	go func() {
		records, err := s.client.FetchExpenses(ctx, shopID, from, to)
		expensesCh <- fetchResult{records: records, err: err}
	}()

	ordersRes := <-ordersCh
	expensesRes := <-expensesCh

	truncated := false
	for _, res := range []fetchResult{ordersRes, expensesRes} {
		if res.err == nil {
			continue
		}
		var partial *marketplace.PartialError
		if errors.As(res.err, &partial) {
			truncated = true
			continue
		}
		return nil, res.err
	}

	orders := make([]models.Order, len(ordersRes.records))
	for i, raw := range ordersRes.records {
		orders[i] = marketplace.NormalizeOrder(raw)
	}
	expenses := make([]models.Expense, 0, len(expensesRes.records))
	for _, raw := range expensesRes.records {
		expense := marketplace.NormalizeExpense(raw)
		if !matchesCategories(expense.Category, categories) {
			continue
		}
		expenses = append(expenses, expense)
	}

	summary := Summarize(orders)

	s.logger.Info().Str("shop", shopID).
		Int("orders", len(orders)).Int("expenses", len(expenses)).
		Bool("truncated", truncated).
		Float64("revenue_gross", summary.RevenueGross).
		Msg("Financial summary computed")

	return &models.SummaryReport{
		ShopID:    shopID,
		From:      from,
		To:        to,
		Summary:   summary,
		Expenses:  ExpenseBreakdown(expenses),
		Orders:    len(orders),
		Truncated: truncated,
	}, nil
}

// matchesCategories reports whether category passes the filter; an empty
// filter passes everything.
func matchesCategories(category models.ExpenseCategory, categories []models.ExpenseCategory) bool {
	if len(categories) == 0 {
		return true
	}
	for _, c := range categories {
		if c == category {
			return true
		}
	}
	return false
}

// Expenses fetches only expense records for the period and reduces them to
// a per-category breakdown. The summary path needs both data sources; this
// one skips the orders fetch entirely to spare the upstream rate limit.
func (s *Service) Expenses(ctx context.Context, shopID string, from, to time.Time, categories []models.ExpenseCategory) (*models.ExpenseReport, error) {
	records, err := s.client.FetchExpenses(ctx, shopID, from, to)

	truncated := false
	if err != nil {
		var partial *marketplace.PartialError
		if !errors.As(err, &partial) {
			return nil, err
		}
		truncated = true
	}

	expenses := make([]models.Expense, 0, len(records))
	for _, raw := range records {
		expense := marketplace.NormalizeExpense(raw)
		if !matchesCategories(expense.Category, categories) {
			continue
		}
		expenses = append(expenses, expense)
	}

	s.logger.Info().Str("shop", shopID).Int("expenses", len(expenses)).
		Bool("truncated", truncated).
		Msg("Expense breakdown computed")

	return &models.ExpenseReport{
		ShopID:    shopID,
		From:      from,
		To:        to,
		Expenses:  ExpenseBreakdown(expenses),
		Truncated: truncated,
	}, nil
}

// BucketByDay fetches orders for the period and groups them into dense
// calendar-day buckets in the report timezone. Issued and pending counts
// are tracked at the report level, not per day.
func (s *Service) BucketByDay(ctx context.Context, shopID string, from, to time.Time) (*models.DailyReport, error) {
	records, err := s.client.FetchOrders(ctx, shopID, from, to)

	truncated := false
	if err != nil {
		var partial *marketplace.PartialError
		if !errors.As(err, &partial) {
			return nil, err
		}
		truncated = true
	}

	orders := make([]models.Order, len(records))
	for i, raw := range records {
		orders[i] = marketplace.NormalizeOrder(raw)
	}

	report := &models.DailyReport{
		ShopID:    shopID,
		From:      from,
		To:        to,
		Days:      BucketByDay(orders, from, to, s.loc),
		Truncated: truncated,
	}

	for i := range orders {
		switch orders[i].Bucket() {
		case models.BucketIssued:
			report.Issued++
		case models.BucketPending:
			report.Pending++
		}
	}

	s.logger.Info().Str("shop", shopID).Int("orders", len(orders)).
		Int("days", len(report.Days)).Bool("truncated", truncated).
		Msg("Daily report computed")

	return report, nil
}

// BucketByWeek covers the current ISO week, or the previous one, relative
// to now in the report timezone. Weeks run Monday through Sunday.
func (s *Service) BucketByWeek(ctx context.Context, shopID string, previous bool) (*models.DailyReport, error) {
	start, end := WeekRange(s.now(), s.loc, previous)
	return s.BucketByDay(ctx, shopID, start, end)
}
