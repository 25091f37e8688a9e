package poi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/FACorreiaa/go-travel-concierge/app/observability/metrics"
	"github.com/FACorreiaa/go-travel-concierge/internal/models"
)

// Client abstracts the Overpass interpreter so tests can substitute a fake.
type Client interface {
	Query(ctx context.Context, query string) (*models.OverpassResponse, error)
}

var _ Client = (*OverpassClient)(nil)

// OverpassClient posts OverpassQL to an interpreter endpoint.
type OverpassClient struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

func NewOverpassClient(baseURL string, timeout time.Duration, logger *slog.Logger) *OverpassClient {
	return &OverpassClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

func (c *OverpassClient) Query(ctx context.Context, query string) (*models.OverpassResponse, error) {
	providerAttr := metric.WithAttributes(attribute.String("provider", "overpass"))
	start := time.Now()
	m := metrics.Get()
	m.UpstreamRequestsTotal.Add(ctx, 1, providerAttr)
	defer func() {
		m.UpstreamDurationSeconds.Record(ctx, time.Since(start).Seconds(), providerAttr)
	}()

	form := url.Values{}
	form.Set("data", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/interpreter", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build overpass request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	c.logger.DebugContext(ctx, "Executing Overpass query")

	resp, err := c.client.Do(req)
	if err != nil {
		m.UpstreamErrorsTotal.Add(ctx, 1, providerAttr)
		return nil, fmt.Errorf("overpass request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		m.UpstreamErrorsTotal.Add(ctx, 1, providerAttr)
		return nil, fmt.Errorf("overpass request returned status %d", resp.StatusCode)
	}

	var payload models.OverpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		m.UpstreamErrorsTotal.Add(ctx, 1, providerAttr)
		return nil, fmt.Errorf("failed to decode overpass response: %w", err)
	}

	c.logger.DebugContext(ctx, "Overpass query completed", slog.Int("elements", len(payload.Elements)))
	return &payload, nil
}
