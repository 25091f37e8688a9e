package weather

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-travel-concierge/internal/models"
)

var _ Service = (*ServiceImpl)(nil)

// Service defines the business logic contract for weather lookups.
type Service interface {
	// CurrentWeather returns nil on any upstream failure; readings are
	// never cached.
	CurrentWeather(ctx context.Context, lat, lon float64) *models.WeatherReading
	FormatResponse(placeName string, reading *models.WeatherReading) string
}

type ServiceImpl struct {
	logger *slog.Logger
	client Client
}

func NewServiceImpl(client Client, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger: logger,
		client: client,
	}
}

func (s *ServiceImpl) CurrentWeather(ctx context.Context, lat, lon float64) *models.WeatherReading {
	ctx, span := otel.Tracer("WeatherService").Start(ctx, "CurrentWeather", trace.WithAttributes(
		attribute.Float64("geo.latitude", lat),
		attribute.Float64("geo.longitude", lon),
	))
	defer span.End()

	payload, err := s.client.Forecast(ctx, lat, lon)
	if err != nil {
		s.logger.WarnContext(ctx, "Weather lookup failed", slog.Any("error", err))
		span.RecordError(err)
		return nil
	}
	if payload.Current == nil {
		s.logger.WarnContext(ctx, "Weather response missing current conditions")
		return nil
	}

	// A missing temperature stays nil: "no reading" must not collapse
	// into 0°C.
	reading := &models.WeatherReading{
		TemperatureC: payload.Current.Temperature2m,
	}
	if payload.Current.PrecipitationProbability != nil {
		reading.PrecipitationProbability = int(*payload.Current.PrecipitationProbability)
	}
	return reading
}

// FormatResponse renders the one-line weather sentence. A numeric
// temperature is truncated toward zero; a missing one renders as N/A.
func (s *ServiceImpl) FormatResponse(placeName string, reading *models.WeatherReading) string {
	if reading == nil {
		return fmt.Sprintf("Sorry, I couldn't fetch weather information for %s.", placeName)
	}

	tempStr := "N/A"
	if reading.TemperatureC != nil {
		tempStr = fmt.Sprintf("%d", int(*reading.TemperatureC))
	}
	return fmt.Sprintf("In %s it's currently %s°C with a chance of %d%% to rain.", placeName, tempStr, reading.PrecipitationProbability)
}
