package marketplace

import (
	"math"
	"testing"
	"time"

	"github.com/rustamq/sellerpulse/internal/models"
)

func TestNormalizeOrderAliasPriority(t *testing.T) {
	// First present alias wins, regardless of map iteration order.
	raw := models.RawRecord{
		"id":          "ord-1",
		"order_id":    "ord-shadowed",
		"date":        "2025-03-10T12:00:00Z",
		"created_at":  "2020-01-01T00:00:00Z",
		"price":       float64(1000),
		"sellerPrice": float64(9999),
	}

	order := NormalizeOrder(raw)

	if order.ID != "ord-1" {
		t.Errorf("ID = %q, want ord-1", order.ID)
	}
	want := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC).UnixMilli()
	if order.TimestampMs != want {
		t.Errorf("TimestampMs = %d, want %d", order.TimestampMs, want)
	}
	if order.UnitPrice != 1000 {
		t.Errorf("UnitPrice = %v, want 1000", order.UnitPrice)
	}
}

func TestNormalizeOrderAliasFallbackChain(t *testing.T) {
	raw := models.RawRecord{
		"postingNumber":  "P-77",
		"dateCreated":    float64(1741600800000),
		"orderStatus":    "DELIVERING",
		"is_cancelled":   true,
		"purchasePrice":  "250.50",
		"qty":            float64(3),
		"fee":            float64(12),
		"deliveryAmount": float64(8),
		"toPay":          float64(200),
	}

	order := NormalizeOrder(raw)

	if order.ID != "P-77" {
		t.Errorf("ID = %q, want P-77", order.ID)
	}
	if order.TimestampMs != 1741600800000 {
		t.Errorf("TimestampMs = %d, want 1741600800000", order.TimestampMs)
	}
	if order.Status != "DELIVERING" {
		t.Errorf("Status = %q, want DELIVERING", order.Status)
	}
	if !order.Cancelled {
		t.Error("Cancelled = false, want true")
	}
	if order.UnitPrice != 250.50 {
		t.Errorf("UnitPrice = %v, want 250.50 (numeric string coercion)", order.UnitPrice)
	}
	if order.Quantity != 3 {
		t.Errorf("Quantity = %d, want 3", order.Quantity)
	}
	if order.Commission != 12 || order.LogisticsFee != 8 || order.SellerProfit != 200 {
		t.Errorf("fees = (%v, %v, %v), want (12, 8, 200)", order.Commission, order.LogisticsFee, order.SellerProfit)
	}
}

func TestNormalizeOrderEmptyRecord(t *testing.T) {
	// An empty record normalizes to defaults, never NaN and never an error.
	order := NormalizeOrder(models.RawRecord{})

	if order.ID != "" || order.Status != "" || order.Cancelled {
		t.Errorf("string/bool defaults wrong: %+v", order)
	}
	if order.TimestampMs != 0 {
		t.Errorf("TimestampMs = %d, want 0", order.TimestampMs)
	}
	if order.Quantity != 1 {
		t.Errorf("Quantity = %d, want default 1", order.Quantity)
	}
	for name, v := range map[string]float64{
		"UnitPrice":    order.UnitPrice,
		"Commission":   order.Commission,
		"LogisticsFee": order.LogisticsFee,
		"SellerProfit": order.SellerProfit,
	} {
		if v != 0 {
			t.Errorf("%s = %v, want 0", name, v)
		}
		if math.IsNaN(v) {
			t.Errorf("%s is NaN", name)
		}
	}
}

func TestNormalizeOrderGarbageValues(t *testing.T) {
	raw := models.RawRecord{
		"price":      "not a number",
		"quantity":   "zero",
		"commission": map[string]interface{}{"nested": true},
		"date":       "sometime last week",
		"cancelled":  "yes",
	}

	order := NormalizeOrder(raw)

	if order.UnitPrice != 0 || order.Commission != 0 {
		t.Errorf("garbage numerics not coerced to 0: %+v", order)
	}
	if order.Quantity != 1 {
		t.Errorf("Quantity = %d, want 1", order.Quantity)
	}
	if order.TimestampMs != 0 {
		t.Errorf("unparseable date TimestampMs = %d, want 0", order.TimestampMs)
	}
	if order.Cancelled {
		t.Error("Cancelled = true for unrecognized string, want false")
	}
}

func TestNormalizeOrderNonFiniteNumbers(t *testing.T) {
	raw := models.RawRecord{
		"price":      math.NaN(),
		"commission": math.Inf(1),
	}

	order := NormalizeOrder(raw)

	if order.UnitPrice != 0 || order.Commission != 0 {
		t.Errorf("non-finite values must coerce to 0, got %+v", order)
	}
}

func TestTimestampFormats(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want int64
	}{
		{"epoch millis number", float64(1741600800000), 1741600800000},
		{"epoch millis string", "1741600800000", 1741600800000},
		{"rfc3339", "2025-03-10T10:00:00Z", time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC).UnixMilli()},
		{"rfc3339 offset", "2025-03-10T15:00:00+05:00", time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC).UnixMilli()},
		{"naive datetime", "2025-03-10T10:00:00", time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC).UnixMilli()},
		{"space datetime", "2025-03-10 10:00:00", time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC).UnixMilli()},
		{"date only", "2025-03-10", time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC).UnixMilli()},
		{"garbage", "next tuesday", 0},
		{"empty", "", 0},
		{"negative", float64(-5), 0},
		{"nil", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := models.RawRecord{}
			if tt.in != nil {
				raw["date"] = tt.in
			}
			if got := timestampField(raw, orderDateAliases); got != tt.want {
				t.Errorf("timestampField(%v) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeExpense(t *testing.T) {
	raw := models.RawRecord{
		"transactionId":   "tx-9",
		"transactionDate": "2025-03-10",
		"sum":             float64(-150), // signed source amounts fold to absolute
		"transactionType": "Штраф",
		"serviceName":     "Marketplace",
		"comment":         "за отмену",
	}

	expense := NormalizeExpense(raw)

	if expense.ID != "tx-9" {
		t.Errorf("ID = %q, want tx-9", expense.ID)
	}
	if expense.Amount != 150 {
		t.Errorf("Amount = %v, want 150 (absolute value)", expense.Amount)
	}
	if expense.Category != models.CategoryFines {
		t.Errorf("Category = %q, want fines", expense.Category)
	}
	if expense.TimestampMs != time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC).UnixMilli() {
		t.Errorf("TimestampMs = %d", expense.TimestampMs)
	}
}

func TestNormalizeExpenseEmptyRecord(t *testing.T) {
	expense := NormalizeExpense(models.RawRecord{})

	if expense.Amount != 0 || math.IsNaN(expense.Amount) {
		t.Errorf("Amount = %v, want 0", expense.Amount)
	}
	// Even an empty expense gets the fallback category.
	if expense.Category != models.CategoryCommission {
		t.Errorf("Category = %q, want commission fallback", expense.Category)
	}
}

func TestNormalizeExpenseNumericID(t *testing.T) {
	expense := NormalizeExpense(models.RawRecord{"id": float64(123456)})
	if expense.ID != "123456" {
		t.Errorf("ID = %q, want 123456", expense.ID)
	}
}
