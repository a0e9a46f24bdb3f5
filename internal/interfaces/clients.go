// Package interfaces defines service and client contracts for SellerPulse
package interfaces

import (
	"context"
	"time"

	"github.com/rustamq/sellerpulse/internal/models"
)

// MarketplaceClient retrieves raw paginated records from the marketplace
// seller API. Both methods fetch pages strictly sequentially under the
// configured rate limit and may return records together with a
// *marketplace.PartialError when the fetch stopped early.
type MarketplaceClient interface {
	// FetchOrders retrieves all order records for a shop within a date range.
	FetchOrders(ctx context.Context, shopID string, from, to time.Time) ([]models.RawRecord, error)

	// FetchExpenses retrieves all expense records for a shop within a date range.
	FetchExpenses(ctx context.Context, shopID string, from, to time.Time) ([]models.RawRecord, error)
}
