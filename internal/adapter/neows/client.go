package neows

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/couchcryptid/neo-impact-service/internal/domain"
	"github.com/couchcryptid/neo-impact-service/internal/observability"
)

// Client implements domain.FeedSource using the NASA NeoWs feed API.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a NeoWs feed client. Requests are bounded by timeout and never retried.
func NewClient(baseURL, apiKey string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		metrics: metrics,
		logger:  logger,
	}
}

// FetchFeed returns the objects the feed lists for date (YYYY-MM-DD). All
// failures wrap domain.ErrFeedUnavailable.
func (c *Client) FetchFeed(ctx context.Context, date string) ([]domain.NearEarthObject, error) {
	params := url.Values{
		"start_date": {date},
		"end_date":   {date},
		"api_key":    {c.apiKey},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %w", domain.ErrFeedUnavailable, err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.FeedAPIDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.FeedRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: feed request: %w", domain.ErrFeedUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.metrics.FeedRequests.WithLabelValues("error").Inc()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("%w: neows API error: status %d: %s", domain.ErrFeedUnavailable, resp.StatusCode, body)
	}

	objects, err := DecodeFeed(resp.Body, date)
	if err != nil {
		c.metrics.FeedRequests.WithLabelValues("error").Inc()
		return nil, err
	}

	if len(objects) == 0 {
		c.metrics.FeedRequests.WithLabelValues("empty").Inc()
	} else {
		c.metrics.FeedRequests.WithLabelValues("success").Inc()
	}
	c.logger.Debug("neo feed fetched", "date", date, "objects", len(objects), "duration", time.Since(start))
	return objects, nil
}
