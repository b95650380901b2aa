package sbdb

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/neo-impact-service/internal/domain"
	"github.com/couchcryptid/neo-impact-service/internal/observability"
	"github.com/go-resty/resty/v2"
)

// SBDB API response types.

type lookupResponse struct {
	Message string     `json:"message"`
	Object  *sbdbObj   `json:"object"`
	Orbit   *sbdbOrbit `json:"orbit"`
}

type sbdbObj struct {
	FullName   string `json:"fullname"`
	PHA        bool   `json:"pha"`
	OrbitClass struct {
		Name string `json:"name"`
	} `json:"orbit_class"`
}

type sbdbOrbit struct {
	MOID          string `json:"moid"`
	ConditionCode string `json:"condition_code"`
	FirstObserved string `json:"first_obs"`
	LastObserved  string `json:"last_obs"`
}

// Client implements domain.BodyLookup using the JPL Small-Body Database API.
type Client struct {
	rest    *resty.Client
	baseURL string
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewClient creates an SBDB client. Lookups are bounded by timeout and never retried.
func NewClient(baseURL string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		rest: resty.New().
			SetTimeout(timeout).
			SetHeader("Accept", "application/json"),
		baseURL: baseURL,
		metrics: metrics,
		logger:  logger,
	}
}

// LookupBody returns orbital details for designation. An unknown or
// ambiguous designation yields an empty SmallBody and no error.
func (c *Client) LookupBody(ctx context.Context, designation string) (domain.SmallBody, error) {
	resp, err := c.rest.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"des": designation,
		}).
		SetResult(&lookupResponse{}).
		Get(c.baseURL)
	if err != nil {
		c.metrics.BodyLookups.WithLabelValues("error").Inc()
		return domain.SmallBody{}, fmt.Errorf("sbdb request: %w", err)
	}

	switch resp.StatusCode() {
	case http.StatusOK:
	case http.StatusNotFound, http.StatusMultipleChoices:
		c.metrics.BodyLookups.WithLabelValues("empty").Inc()
		return domain.SmallBody{}, nil
	default:
		c.metrics.BodyLookups.WithLabelValues("error").Inc()
		return domain.SmallBody{}, fmt.Errorf("sbdb API error: status %d: %s", resp.StatusCode(), truncate(resp.String(), 512))
	}

	result, ok := resp.Result().(*lookupResponse)
	if !ok || result.Object == nil {
		c.metrics.BodyLookups.WithLabelValues("empty").Inc()
		c.logger.Debug("sbdb returned no object", "designation", designation)
		return domain.SmallBody{}, nil
	}

	c.metrics.BodyLookups.WithLabelValues("success").Inc()
	return toDomain(result), nil
}

func toDomain(r *lookupResponse) domain.SmallBody {
	body := domain.SmallBody{
		FullName:   r.Object.FullName,
		OrbitClass: r.Object.OrbitClass.Name,
		Hazardous:  r.Object.PHA,
	}
	if r.Orbit != nil {
		body.MOIDAU = r.Orbit.MOID
		body.ConditionCode = r.Orbit.ConditionCode
		body.FirstObserved = r.Orbit.FirstObserved
		body.LastObserved = r.Orbit.LastObserved
	}
	return body
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
