package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/FACorreiaa/go-travel-concierge/app/observability/metrics"
	"github.com/FACorreiaa/go-travel-concierge/internal/models"
)

// Client abstracts the geocoding provider so tests can substitute a fake.
type Client interface {
	Search(ctx context.Context, query string, limit int) ([]models.GeocodeResult, error)
}

var _ Client = (*NominatimClient)(nil)

// NominatimClient queries a Nominatim-compatible search endpoint.
type NominatimClient struct {
	baseURL   string
	userAgent string
	client    *http.Client
	logger    *slog.Logger
}

func NewNominatimClient(baseURL, userAgent string, timeout time.Duration, logger *slog.Logger) *NominatimClient {
	return &NominatimClient{
		baseURL:   baseURL,
		userAgent: userAgent,
		client:    &http.Client{Timeout: timeout},
		logger:    logger,
	}
}

// Search asks for up to limit hits with address details and extra tags.
// Nominatim's usage policy requires an identifying User-Agent.
func (c *NominatimClient) Search(ctx context.Context, query string, limit int) ([]models.GeocodeResult, error) {
	providerAttr := metric.WithAttributes(attribute.String("provider", "nominatim"))
	start := time.Now()
	m := metrics.Get()
	m.UpstreamRequestsTotal.Add(ctx, 1, providerAttr)
	defer func() {
		m.UpstreamDurationSeconds.Record(ctx, time.Since(start).Seconds(), providerAttr)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build geocoding request: %w", err)
	}

	q := url.Values{}
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("limit", strconv.Itoa(limit))
	q.Set("addressdetails", "1")
	q.Set("extratags", "1")
	req.URL.RawQuery = q.Encode()
	req.Header.Set("User-Agent", c.userAgent)

	c.logger.DebugContext(ctx, "Fetching geocoding candidates", slog.String("query", query))

	resp, err := c.client.Do(req)
	if err != nil {
		m.UpstreamErrorsTotal.Add(ctx, 1, providerAttr)
		return nil, fmt.Errorf("geocoding request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		m.UpstreamErrorsTotal.Add(ctx, 1, providerAttr)
		return nil, fmt.Errorf("geocoding request returned status %d", resp.StatusCode)
	}

	var results []models.GeocodeResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		m.UpstreamErrorsTotal.Add(ctx, 1, providerAttr)
		return nil, fmt.Errorf("failed to decode geocoding response: %w", err)
	}

	c.logger.DebugContext(ctx, "Geocoding search completed",
		slog.String("query", query),
		slog.Int("results", len(results)),
	)
	return results, nil
}
