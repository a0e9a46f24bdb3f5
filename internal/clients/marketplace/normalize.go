package marketplace

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/rustamq/sellerpulse/internal/models"
)

// Field alias tables, one per canonical field, in resolution order. The
// upstream API renames fields between endpoint versions; the first alias
// present in a record wins, and a missing field falls back to the zero
// value instead of failing.
var (
	orderIDAliases        = []string{"id", "orderId", "order_id", "postingNumber"}
	orderDateAliases      = []string{"date", "createdAt", "created_at", "dateCreated", "orderDate"}
	orderStatusAliases    = []string{"status", "state", "orderStatus"}
	orderCancelledAliases = []string{"cancelled", "canceled", "isCancelled", "is_cancelled"}
	unitPriceAliases      = []string{"price", "sellerPrice", "purchasePrice", "amount"}
	quantityAliases       = []string{"quantity", "qty", "amount_items", "count"}
	commissionAliases     = []string{"commission", "commissionAmount", "fee"}
	logisticsAliases      = []string{"logistics", "logisticsFee", "deliveryAmount", "shippingFee"}
	profitAliases         = []string{"sellerProfit", "profit", "payout", "toPay"}

	expenseIDAliases     = []string{"id", "transactionId", "transaction_id", "operationId"}
	expenseDateAliases   = []string{"date", "createdAt", "created_at", "dateCreated", "transactionDate", "operationDate"}
	expenseAmountAliases = []string{"amount", "sum", "value", "total"}
	expenseTypeAliases   = []string{"type", "transactionType", "operationType"}
	expenseSourceAliases = []string{"source", "serviceName", "category"}
	expenseDescAliases   = []string{"description", "comment", "details"}
)

// NormalizeOrder maps a raw API record to the canonical order form.
// Pure function: any record shape, including an empty one, produces an
// order with finite numeric fields and quantity >= 1.
func NormalizeOrder(raw models.RawRecord) models.Order {
	quantity := int(floatField(raw, quantityAliases))
	if quantity < 1 {
		quantity = 1
	}

	return models.Order{
		ID:           stringField(raw, orderIDAliases),
		TimestampMs:  timestampField(raw, orderDateAliases),
		Status:       stringField(raw, orderStatusAliases),
		Cancelled:    boolField(raw, orderCancelledAliases),
		UnitPrice:    floatField(raw, unitPriceAliases),
		Quantity:     quantity,
		Commission:   floatField(raw, commissionAliases),
		LogisticsFee: floatField(raw, logisticsAliases),
		SellerProfit: floatField(raw, profitAliases),
	}
}

// NormalizeExpense maps a raw API record to the canonical expense form and
// assigns its category. Signed source amounts are folded to absolute values.
func NormalizeExpense(raw models.RawRecord) models.Expense {
	expense := models.Expense{
		ID:          stringField(raw, expenseIDAliases),
		TimestampMs: timestampField(raw, expenseDateAliases),
		Amount:      math.Abs(floatField(raw, expenseAmountAliases)),
		Type:        stringField(raw, expenseTypeAliases),
		Source:      stringField(raw, expenseSourceAliases),
		Description: stringField(raw, expenseDescAliases),
	}
	expense.Category = expense.Classify()
	return expense
}

func resolve(raw models.RawRecord, aliases []string) (interface{}, bool) {
	for _, alias := range aliases {
		if v, ok := raw[alias]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func stringField(raw models.RawRecord, aliases []string) string {
	v, ok := resolve(raw, aliases)
	if !ok {
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	case json.Number:
		return s.String()
	case float64:
		// Upstream sometimes sends numeric ids.
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	default:
		return ""
	}
}

// floatField resolves a numeric field, coercing any non-numeric, missing,
// or non-finite value to 0. NaN never crosses this boundary.
func floatField(raw models.RawRecord, aliases []string) float64 {
	v, ok := resolve(raw, aliases)
	if !ok {
		return 0
	}
	return coerceFloat(v)
}

func coerceFloat(v interface{}) float64 {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func boolField(raw models.RawRecord, aliases []string) bool {
	v, ok := resolve(raw, aliases)
	if !ok {
		return false
	}
	switch b := v.(type) {
	case bool:
		return b
	case string:
		return b == "true" || b == "1"
	case float64:
		return b != 0
	case int:
		return b != 0
	default:
		return false
	}
}

// timestampLayouts are tried in order for string dates. Layouts without a
// zone parse as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// timestampField resolves a timestamp to epoch milliseconds. Numeric values
// are taken as epoch milliseconds; strings are parsed as ISO-8601.
// Anything ambiguous normalizes to 0, which downstream bucketing treats as
// "unknown date" and excludes.
func timestampField(raw models.RawRecord, aliases []string) int64 {
	v, ok := resolve(raw, aliases)
	if !ok {
		return 0
	}

	switch t := v.(type) {
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) || t < 0 {
			return 0
		}
		return int64(t)
	case int:
		if t < 0 {
			return 0
		}
		return int64(t)
	case int64:
		if t < 0 {
			return 0
		}
		return t
	case json.Number:
		if ms, err := t.Int64(); err == nil {
			if ms < 0 {
				return 0
			}
			return ms
		}
		return parseTimestampString(t.String())
	case string:
		return parseTimestampString(t)
	default:
		return 0
	}
}

func parseTimestampString(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	// Numeric strings carry epoch milliseconds.
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		if ms < 0 {
			return 0
		}
		return ms
	}

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UnixMilli()
		}
	}
	return 0
}
