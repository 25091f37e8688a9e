package geocode

import (
	"context"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"github.com/FACorreiaa/go-travel-concierge/internal/models"
)

// searchLimit is how many raw hits we request per lookup; more hits give
// the scorer a better shot at the intended city.
const searchLimit = 10

var _ Service = (*ServiceImpl)(nil)

// Service defines the business logic contract for coordinate resolution.
type Service interface {
	// Resolve turns a free-text place name into coordinates. Absence
	// (unknown place, upstream failure) is a nil result with a nil error;
	// the error return is reserved for context cancellation.
	Resolve(ctx context.Context, placeName string) (*models.Coordinates, error)
}

type ServiceImpl struct {
	logger   *slog.Logger
	client   Client
	cache    *cache.Cache
	group    singleflight.Group
	throttle time.Duration
}

// NewServiceImpl wires a resolver around an injected cache so tests get
// isolated instances. Entries live for the process lifetime, absence
// included, to avoid re-querying the geocoder for known misses.
func NewServiceImpl(client Client, coordCache *cache.Cache, throttle time.Duration, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:   logger,
		client:   client,
		cache:    coordCache,
		throttle: throttle,
	}
}

func (s *ServiceImpl) Resolve(ctx context.Context, placeName string) (*models.Coordinates, error) {
	ctx, span := otel.Tracer("GeocodeService").Start(ctx, "Resolve", trace.WithAttributes(
		attribute.String("place.name", placeName),
	))
	defer span.End()

	key := strings.ToLower(strings.TrimSpace(placeName))

	if cached, found := s.cache.Get(key); found {
		span.AddEvent("cache hit")
		coords, _ := cached.(*models.Coordinates)
		return coords, nil
	}

	// Collapse concurrent lookups for the same key into one upstream call.
	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		// A sibling flight may have filled the cache between our miss
		// and winning the flight.
		if cached, found := s.cache.Get(key); found {
			coords, _ := cached.(*models.Coordinates)
			return coords, nil
		}

		coords, err := s.lookup(ctx, key, placeName)
		if err != nil {
			return nil, err
		}
		s.cache.Set(key, coords, cache.NoExpiration)
		return coords, nil
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	coords, _ := v.(*models.Coordinates)
	if coords == nil {
		span.SetStatus(codes.Ok, "Place not found")
	} else {
		span.SetAttributes(
			attribute.Float64("geo.latitude", coords.Latitude),
			attribute.Float64("geo.longitude", coords.Longitude),
		)
	}
	return coords, nil
}

// lookup performs one uncached geocoder round trip. Upstream failures are
// logged and mapped to absence; only context errors surface.
func (s *ServiceImpl) lookup(ctx context.Context, normalized, placeName string) (*models.Coordinates, error) {
	// Courtesy delay, Nominatim rate limits aggressively.
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(s.throttle):
	}

	results, err := s.client.Search(ctx, placeName, searchLimit)
	if err != nil {
		s.logger.WarnContext(ctx, "Geocoding search failed, treating as unknown place",
			slog.String("place", placeName),
			slog.Any("error", err),
		)
		return nil, nil
	}

	candidates := scoreCandidates(normalized, results)
	if len(candidates) > 0 {
		// Stable sort keeps the geocoder's ordering on ties.
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].Score > candidates[j].Score
		})
		best := candidates[0]
		s.logger.DebugContext(ctx, "Selected geocoding candidate",
			slog.String("place", placeName),
			slog.Int("score", best.Score),
		)
		return &best.Coords, nil
	}

	// Scoring excluded everything; fall back to the first raw hit.
	if len(results) > 0 {
		lat, lon := parseCoords(results[0])
		if lat != 0 && lon != 0 {
			s.logger.DebugContext(ctx, "Falling back to first raw geocoding result",
				slog.String("place", placeName),
			)
			return &models.Coordinates{Latitude: lat, Longitude: lon}, nil
		}
	}

	s.logger.InfoContext(ctx, "No coordinates found", slog.String("place", placeName))
	return nil, nil
}

// scoreCandidates ranks raw hits by how city-like they are and whether the
// query appears in their names. Hits with a zero coordinate never qualify,
// zero means unset upstream data rather than the equator.
func scoreCandidates(normalized string, results []models.GeocodeResult) []models.GeocodeCandidate {
	var candidates []models.GeocodeCandidate
	for _, loc := range results {
		lat, lon := parseCoords(loc)
		if lat == 0 || lon == 0 {
			continue
		}

		score := 0
		switch strings.ToLower(loc.Type) {
		case "city", "town", "administrative", "village":
			score += 10
		}
		switch strings.ToLower(loc.Class) {
		case "place", "boundary":
			score += 5
		}
		if strings.Contains(strings.ToLower(loc.DisplayName), normalized) ||
			strings.Contains(strings.ToLower(loc.Name), normalized) {
			score += 15
		}

		candidates = append(candidates, models.GeocodeCandidate{
			Score:  score,
			Coords: models.Coordinates{Latitude: lat, Longitude: lon},
		})
	}
	return candidates
}

func parseCoords(loc models.GeocodeResult) (float64, float64) {
	lat, err := strconv.ParseFloat(loc.Lat, 64)
	if err != nil {
		return 0, 0
	}
	lon, err := strconv.ParseFloat(loc.Lon, 64)
	if err != nil {
		return 0, 0
	}
	return lat, lon
}
