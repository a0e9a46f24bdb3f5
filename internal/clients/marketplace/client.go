// Package marketplace provides a client for the marketplace seller API
package marketplace

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/time/rate"

	"github.com/rustamq/sellerpulse/internal/common"
	"github.com/rustamq/sellerpulse/internal/interfaces"
	"github.com/rustamq/sellerpulse/internal/models"
)

const (
	DefaultBaseURL    = "https://api-seller.marketplace.example/api/seller"
	DefaultTimeout    = 30 * time.Second
	DefaultPageSize   = 100
	DefaultMaxPages   = 50
	DefaultPageDelay  = 150 * time.Millisecond
	DefaultMaxRetries = 3
)

// Client implements the MarketplaceClient interface. Pages are fetched
// strictly sequentially; the limiter enforces the minimum spacing between
// page requests required by the upstream rate limit.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
	pageSize   int
	maxPages   int
	maxRetries uint64
	newBackoff func() backoff.BackOff
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithTimeout sets the per-page HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithPageSize sets the page size requested from the API
func WithPageSize(size int) ClientOption {
	return func(c *Client) {
		if size > 0 {
			c.pageSize = size
		}
	}
}

// WithMaxPages caps the number of pages fetched per call, bounding
// worst-case work against a server that keeps returning full pages
func WithMaxPages(maxPages int) ClientOption {
	return func(c *Client) {
		if maxPages > 0 {
			c.maxPages = maxPages
		}
	}
}

// WithPageDelay sets the minimum spacing between page requests
func WithPageDelay(delay time.Duration) ClientOption {
	return func(c *Client) {
		if delay > 0 {
			c.limiter = rate.NewLimiter(rate.Every(delay), 1)
		}
	}
}

// WithMaxRetries sets the retry attempt cap per page
func WithMaxRetries(retries int) ClientOption {
	return func(c *Client) {
		if retries >= 0 {
			c.maxRetries = uint64(retries)
		}
	}
}

// WithBackoff sets the factory for the per-page retry backoff policy
func WithBackoff(factory func() backoff.BackOff) ClientOption {
	return func(c *Client) {
		c.newBackoff = factory
	}
}

// NewClient creates a new marketplace client. The token must already be
// valid; obtaining and refreshing credentials belongs to the caller.
func NewClient(token string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger:     common.NewSilentLogger(),
		limiter:    rate.NewLimiter(rate.Every(DefaultPageDelay), 1),
		pageSize:   DefaultPageSize,
		maxPages:   DefaultMaxPages,
		maxRetries: DefaultMaxRetries,
	}
	c.newBackoff = func() backoff.BackOff {
		b := backoff.NewExponentialBackOff()
		b.InitialInterval = 500 * time.Millisecond
		return b
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents an API error response
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("marketplace API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// IsAuthError reports whether err is a 401/403 from the API. Auth failures
// are never retried; a fresh token is the only fix.
func IsAuthError(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden
	}
	return false
}

// retryable reports whether a page failure is worth retrying: 5xx, 429,
// or a network/timeout error. Other API responses are permanent.
func retryable(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusTooManyRequests || apiErr.StatusCode >= 500
	}
	// Network errors and per-page timeouts surface as transport errors.
	return true
}

// FetchOrders retrieves all order records for a shop within a date range.
func (c *Client) FetchOrders(ctx context.Context, shopID string, from, to time.Time) ([]models.RawRecord, error) {
	path := fmt.Sprintf("/v1/shops/%s/orders", url.PathEscape(shopID))
	return c.fetchAllPages(ctx, path, dateRangeParams(from, to))
}

// FetchExpenses retrieves all expense records for a shop within a date range.
func (c *Client) FetchExpenses(ctx context.Context, shopID string, from, to time.Time) ([]models.RawRecord, error) {
	path := fmt.Sprintf("/v1/shops/%s/finance/expenses", url.PathEscape(shopID))
	return c.fetchAllPages(ctx, path, dateRangeParams(from, to))
}

func dateRangeParams(from, to time.Time) url.Values {
	params := url.Values{}
	if !from.IsZero() {
		params.Set("from", from.Format("2006-01-02"))
	}
	if !to.IsZero() {
		params.Set("to", to.Format("2006-01-02"))
	}
	return params
}

// getPage performs a single GET for one page and unwraps the records.
func (c *Client) getPage(ctx context.Context, path string, params url.Values, page int) ([]models.RawRecord, error) {
	query := url.Values{}
	for k, v := range params {
		query[k] = v
	}
	query.Set("page", strconv.Itoa(page))
	query.Set("size", strconv.Itoa(c.pageSize))

	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	c.logger.Debug().Str("endpoint", path).Int("page", page).Msg("Marketplace API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Endpoint:   path,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return unwrapRecords(body)
}

// wrapperKeys lists the envelope field names observed across endpoint
// versions, in the order they are tried.
var wrapperKeys = []string{"items", "data", "orders", "expenses", "payments"}

// unwrapRecords extracts the record array from a page payload. Pages are
// either a bare JSON array or an object wrapping the array under one of
// the known keys (including the nested payload.payments shape). A payload
// with no recognizable wrapper counts as an empty page, not an error.
func unwrapRecords(body []byte) ([]models.RawRecord, error) {
	var direct []models.RawRecord
	if err := json.Unmarshal(body, &direct); err == nil {
		return direct, nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode page payload: %w", err)
	}

	for _, key := range wrapperKeys {
		raw, ok := envelope[key]
		if !ok {
			continue
		}
		var records []models.RawRecord
		if err := json.Unmarshal(raw, &records); err == nil {
			return records, nil
		}
	}

	if payload, ok := envelope["payload"]; ok {
		var inner map[string]json.RawMessage
		if err := json.Unmarshal(payload, &inner); err == nil {
			if raw, ok := inner["payments"]; ok {
				var records []models.RawRecord
				if err := json.Unmarshal(raw, &records); err == nil {
					return records, nil
				}
			}
		}
	}

	return nil, nil
}

// Ensure Client implements MarketplaceClient
var _ interfaces.MarketplaceClient = (*Client)(nil)
