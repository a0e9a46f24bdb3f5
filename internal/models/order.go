// Package models defines the canonical data types for marketplace reports.
package models

import "strings"

// RawRecord is an upstream API record exactly as decoded from a page payload.
// Field names and value types vary per endpoint version; no invariants hold.
type RawRecord map[string]interface{}

// Order is the canonical, alias-resolved form of an upstream order record.
// TimestampMs is epoch milliseconds; 0 means the source date was unparseable.
// Numeric fields are always finite; Quantity is at least 1.
type Order struct {
	ID           string  `json:"id"`
	TimestampMs  int64   `json:"timestamp_ms"`
	Status       string  `json:"status"`
	Cancelled    bool    `json:"cancelled"`
	UnitPrice    float64 `json:"unit_price"`
	Quantity     int     `json:"quantity"`
	Commission   float64 `json:"commission"`
	LogisticsFee float64 `json:"logistics_fee"`
	SellerProfit float64 `json:"seller_profit"`
}

// OrderBucket is the funnel stage derived from an order's status and
// cancellation flag. It is never stored upstream.
type OrderBucket string

const (
	BucketSold     OrderBucket = "sold"
	BucketIssued   OrderBucket = "issued"
	BucketPending  OrderBucket = "pending"
	BucketCanceled OrderBucket = "canceled"
)

// Upstream status labels, grouped by funnel stage. These are terminal and
// non-terminal labels owned by the marketplace, not locally-owned transitions.
var (
	canceledStatuses = map[string]bool{
		"CANCELED": true,
		"RETURNED": true,
	}
	soldStatuses = map[string]bool{
		"COMPLETED": true,
		"DELIVERED": true,
		"DELIVERED_TO_CUSTOMER_DELIVERY_POINT": true,
	}
	issuedStatuses = map[string]bool{
		"ACCEPTED_AT_DP":   true,
		"DELIVERING":       true,
		"PENDING_DELIVERY": true,
	}
)

// Bucket classifies the order into its funnel stage.
// Cancellation is checked first: a record can carry both a terminal
// "delivered" status and a cancelled flag from a later correction.
// Unrecognized statuses (CREATED, PACKING, PENDING_CANCELLATION, anything
// new) fall through to pending.
func (o *Order) Bucket() OrderBucket {
	status := strings.ToUpper(strings.TrimSpace(o.Status))

	switch {
	case o.Cancelled || canceledStatuses[status]:
		return BucketCanceled
	case soldStatuses[status]:
		return BucketSold
	case issuedStatuses[status]:
		return BucketIssued
	default:
		return BucketPending
	}
}

// GrossAmount returns the order's contribution to gross revenue.
func (o *Order) GrossAmount() float64 {
	return o.UnitPrice * float64(o.Quantity)
}
