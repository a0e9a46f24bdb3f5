package marketplace

import (
	"context"
	"fmt"
	"net/url"

	"github.com/cenkalti/backoff/v4"

	"github.com/rustamq/sellerpulse/internal/models"
)

// PartialError reports a fetch that stopped before the upstream data was
// exhausted. The records gathered before the stop are still returned
// alongside it, so callers can render partial data with a warning.
type PartialError struct {
	Pages     int   // pages fetched successfully
	Truncated bool  // stopped by the page cap rather than a failed page
	Err       error // the fatal page error, nil when Truncated
}

func (e *PartialError) Error() string {
	if e.Truncated {
		return fmt.Sprintf("partial marketplace fetch: page cap reached after %d pages", e.Pages)
	}
	return fmt.Sprintf("partial marketplace fetch: %d pages fetched, then: %v", e.Pages, e.Err)
}

func (e *PartialError) Unwrap() error {
	return e.Err
}

// fetchAllPages retrieves pages 0, 1, 2, ... sequentially until a short or
// empty page, the page cap, or an unrecoverable failure. A failure on the
// first page is a total failure; a failure after at least one page yields
// the partial result with a *PartialError.
func (c *Client) fetchAllPages(ctx context.Context, path string, params url.Values) ([]models.RawRecord, error) {
	var all []models.RawRecord

	for page := 0; ; page++ {
		if page >= c.maxPages {
			c.logger.Warn().Str("endpoint", path).Int("pages", page).Msg("Marketplace fetch hit page cap")
			return all, &PartialError{Pages: page, Truncated: true}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			if page == 0 {
				return nil, fmt.Errorf("rate limit wait: %w", err)
			}
			return all, &PartialError{Pages: page, Err: err}
		}

		records, err := c.getPageWithRetry(ctx, path, params, page)
		if err != nil {
			if page == 0 {
				return nil, err
			}
			c.logger.Warn().Err(err).Str("endpoint", path).Int("page", page).
				Msg("Marketplace fetch stopped early, returning partial result")
			return all, &PartialError{Pages: page, Err: err}
		}

		all = append(all, records...)

		// A short or empty page means the upstream is exhausted.
		if len(records) < c.pageSize {
			c.logger.Debug().Str("endpoint", path).Int("pages", page+1).Int("records", len(all)).
				Msg("Marketplace fetch complete")
			return all, nil
		}
	}
}

// getPageWithRetry retries a single page on transient failures with the
// configured backoff policy. Auth failures and other 4xx responses are
// permanent and surface immediately.
func (c *Client) getPageWithRetry(ctx context.Context, path string, params url.Values, page int) ([]models.RawRecord, error) {
	policy := backoff.WithContext(backoff.WithMaxRetries(c.newBackoff(), c.maxRetries), ctx)

	return backoff.RetryWithData(func() ([]models.RawRecord, error) {
		records, err := c.getPage(ctx, path, params, page)
		if err != nil {
			if !retryable(err) {
				return nil, backoff.Permanent(err)
			}
			c.logger.Debug().Err(err).Str("endpoint", path).Int("page", page).Msg("Retrying marketplace page")
			return nil, err
		}
		return records, nil
	}, policy)
}
