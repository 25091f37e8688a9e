package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/FACorreiaa/go-travel-concierge/app/observability/metrics"
	"github.com/FACorreiaa/go-travel-concierge/internal/api/geocode"
	"github.com/FACorreiaa/go-travel-concierge/internal/api/poi"
	"github.com/FACorreiaa/go-travel-concierge/internal/api/weather"
)

const (
	msgNoPlace = "I couldn't identify the place you want to visit. Please specify a place name."

	msgUnknownPlace = "I don't know this place exists. Could you please check the spelling or provide more details about the location?"
)

var _ Service = (*ServiceImpl)(nil)

// Service defines the business logic contract for assistant queries.
type Service interface {
	// ProcessRequest answers one natural-language travel query. Expected
	// failures (no place, unknown place, upstreams down) come back as
	// user-facing sentences with a nil error; the error return is for
	// unexpected failures only.
	ProcessRequest(ctx context.Context, userText string) (string, error)
}

type ServiceImpl struct {
	logger          *slog.Logger
	geocodeService  geocode.Service
	weatherService  weather.Service
	poiService      poi.Service
	branchTimeout   time.Duration
	attractionLimit int
}

func NewServiceImpl(
	geocodeService geocode.Service,
	weatherService weather.Service,
	poiService poi.Service,
	branchTimeout time.Duration,
	attractionLimit int,
	logger *slog.Logger,
) *ServiceImpl {
	return &ServiceImpl{
		logger:          logger,
		geocodeService:  geocodeService,
		weatherService:  weatherService,
		poiService:      poiService,
		branchTimeout:   branchTimeout,
		attractionLimit: attractionLimit,
	}
}

func (s *ServiceImpl) ProcessRequest(ctx context.Context, userText string) (string, error) {
	ctx, span := otel.Tracer("AssistantService").Start(ctx, "ProcessRequest")
	defer span.End()

	m := metrics.Get()
	start := time.Now()
	m.AssistantRequestsTotal.Add(ctx, 1)
	defer func() {
		m.AssistantDurationSeconds.Record(ctx, time.Since(start).Seconds())
	}()

	placeName, ok := extractPlaceName(userText)
	if !ok {
		s.logger.InfoContext(ctx, "Could not extract a place name from query")
		span.SetStatus(codes.Ok, "No place name extracted")
		return msgNoPlace, nil
	}
	span.SetAttributes(attribute.String("place.name", placeName))

	coords, err := s.geocodeService.Resolve(ctx, placeName)
	if err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("failed to resolve place %q: %w", placeName, err)
	}
	if coords == nil {
		s.logger.InfoContext(ctx, "Place could not be resolved", slog.String("place", placeName))
		span.SetStatus(codes.Ok, "Place not resolved")
		return msgUnknownPlace, nil
	}

	intent := classifyIntent(userText)
	span.SetAttributes(
		attribute.Bool("intent.weather", intent.Weather),
		attribute.Bool("intent.places", intent.Places),
	)

	// Fan out to the requested branches. Each branch has its own bounded
	// context and writes its own variable, so one branch failing or timing
	// out never takes the other's result with it.
	var (
		wg              sync.WaitGroup
		weatherSentence string
		attractions     []string
	)

	if intent.Weather {
		wg.Add(1)
		go func() {
			defer wg.Done()
			branchCtx, cancel := context.WithTimeout(ctx, s.branchTimeout)
			defer cancel()
			if reading := s.weatherService.CurrentWeather(branchCtx, coords.Latitude, coords.Longitude); reading != nil {
				weatherSentence = s.weatherService.FormatResponse(placeName, reading)
			}
		}()
	}

	if intent.Places {
		wg.Add(1)
		go func() {
			defer wg.Done()
			branchCtx, cancel := context.WithTimeout(ctx, s.branchTimeout)
			defer cancel()
			attractions = s.poiService.NearbyAttractions(branchCtx, coords.Latitude, coords.Longitude, s.attractionLimit)
		}()
	}

	wg.Wait()

	switch {
	case weatherSentence != "" && len(attractions) > 0:
		return fmt.Sprintf("%s. And these are the places you can go:\n\n%s", weatherSentence, strings.Join(attractions, "\n")), nil
	case weatherSentence != "":
		return weatherSentence, nil
	case len(attractions) > 0:
		return s.poiService.FormatResponse(placeName, attractions), nil
	default:
		s.logger.WarnContext(ctx, "All requested branches came back empty", slog.String("place", placeName))
		return fmt.Sprintf("I couldn't fetch information for %s. Please try again.", placeName), nil
	}
}
