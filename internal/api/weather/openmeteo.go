package weather

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

// Client abstracts the weather provider so tests can substitute a fake.
type Client interface {
	Forecast(ctx context.Context, lat, lon float64) (*models.OpenMeteoResponse, error)
}

var _ Client = (*OpenMeteoClient)(nil)

// OpenMeteoClient queries an Open-Meteo compatible forecast endpoint.
type OpenMeteoClient struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

func NewOpenMeteoClient(baseURL string, timeout time.Duration, logger *slog.Logger) *OpenMeteoClient {
	return &OpenMeteoClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// Forecast fetches current temperature and precipitation probability for a
// one-day window.
func (c *OpenMeteoClient) Forecast(ctx context.Context, lat, lon float64) (*models.OpenMeteoResponse, error) {
	providerAttr := metric.WithAttributes(attribute.String("provider", "open-meteo"))
	start := time.Now()
	m := metrics.Get()
	m.UpstreamRequestsTotal.Add(ctx, 1, providerAttr)
	defer func() {
		m.UpstreamDurationSeconds.Record(ctx, time.Since(start).Seconds(), providerAttr)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/forecast", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build weather request: %w", err)
	}

	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("current", "temperature_2m,precipitation_probability")
	q.Set("forecast_days", "1")
	req.URL.RawQuery = q.Encode()

	c.logger.DebugContext(ctx, "Fetching weather forecast",
		slog.Float64("lat", lat),
		slog.Float64("lon", lon),
	)

	resp, err := c.client.Do(req)
	if err != nil {
		m.UpstreamErrorsTotal.Add(ctx, 1, providerAttr)
		return nil, fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		m.UpstreamErrorsTotal.Add(ctx, 1, providerAttr)
		return nil, fmt.Errorf("weather request returned status %d", resp.StatusCode)
	}

	var payload models.OpenMeteoResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		m.UpstreamErrorsTotal.Add(ctx, 1, providerAttr)
		return nil, fmt.Errorf("failed to decode weather response: %w", err)
	}
	return &payload, nil
}
