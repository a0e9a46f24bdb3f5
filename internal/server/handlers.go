package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rustamq/sellerpulse/internal/clients/marketplace"
	"github.com/rustamq/sellerpulse/internal/common"
	"github.com/rustamq/sellerpulse/internal/models"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"version": common.GetVersion(),
	})
}

// parseDateRange reads shop_id, from and to query parameters. Dates use
// the YYYY-MM-DD form; both are required.
func parseDateRange(r *http.Request) (shopID string, from, to time.Time, err error) {
	shopID = r.URL.Query().Get("shop_id")
	if shopID == "" {
		return "", time.Time{}, time.Time{}, fmt.Errorf("shop_id is required")
	}

	from, err = time.Parse("2006-01-02", r.URL.Query().Get("from"))
	if err != nil {
		return "", time.Time{}, time.Time{}, fmt.Errorf("from must be a YYYY-MM-DD date")
	}
	to, err = time.Parse("2006-01-02", r.URL.Query().Get("to"))
	if err != nil {
		return "", time.Time{}, time.Time{}, fmt.Errorf("to must be a YYYY-MM-DD date")
	}
	if to.Before(from) {
		return "", time.Time{}, time.Time{}, fmt.Errorf("to must not be before from")
	}
	return shopID, from, to, nil
}

// parseCategories reads the optional comma-separated categories filter.
func parseCategories(r *http.Request) ([]models.ExpenseCategory, error) {
	raw := r.URL.Query().Get("categories")
	if raw == "" {
		return nil, nil
	}

	var categories []models.ExpenseCategory
	for _, part := range strings.Split(raw, ",") {
		category := models.ExpenseCategory(strings.TrimSpace(part))
		if !models.ValidExpenseCategory(category) {
			return nil, fmt.Errorf("unknown category %q; must be marketing, commission, logistics, or fines", part)
		}
		categories = append(categories, category)
	}
	return categories, nil
}

// writeReportError maps engine errors to HTTP responses. Auth failures are
// surfaced as 401 so the dashboard can re-authenticate; upstream API
// failures become 502.
func writeReportError(w http.ResponseWriter, err error) {
	if marketplace.IsAuthError(err) {
		WriteError(w, http.StatusUnauthorized, "Marketplace rejected the configured token")
		return
	}
	var apiErr *marketplace.APIError
	if errors.As(err, &apiErr) {
		WriteError(w, http.StatusBadGateway, fmt.Sprintf("Marketplace API error: status %d", apiErr.StatusCode))
		return
	}
	WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Report error: %v", err))
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	shopID, from, to, err := parseDateRange(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	categories, err := parseCategories(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	summary, err := s.app.ReportService.Summarize(r.Context(), shopID, from, to, categories)
	if err != nil {
		writeReportError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, summary)
}

func (s *Server) handleDaily(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	shopID := r.URL.Query().Get("shop_id")
	if shopID == "" {
		WriteError(w, http.StatusBadRequest, "shop_id is required")
		return
	}

	// week=current|previous is the convenience form; otherwise from/to.
	switch week := r.URL.Query().Get("week"); week {
	case "current", "previous":
		report, err := s.app.ReportService.BucketByWeek(r.Context(), shopID, week == "previous")
		if err != nil {
			writeReportError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, report)
		return
	case "":
	default:
		WriteError(w, http.StatusBadRequest, "week must be 'current' or 'previous'")
		return
	}

	_, from, to, err := parseDateRange(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	report, err := s.app.ReportService.BucketByDay(r.Context(), shopID, from, to)
	if err != nil {
		writeReportError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, report)
}

func (s *Server) handleExpenses(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	shopID, from, to, err := parseDateRange(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	categories, err := parseCategories(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	report, err := s.app.ReportService.Expenses(r.Context(), shopID, from, to, categories)
	if err != nil {
		writeReportError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, report)
}
