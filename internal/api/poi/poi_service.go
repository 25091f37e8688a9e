package poi

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-travel-concierge/internal/models"
)

// nameTagPreference is the order in which OSM name tags are consulted,
// English variants first for international coverage.
var nameTagPreference = []string{
	"name:en",
	"name:en-GB",
	"name:en-US",
	"name",
	"official_name",
	"alt_name",
	"short_name",
}

// genericNames are tag values too generic to present as an attraction.
var genericNames = map[string]struct{}{
	"park":       {},
	"museum":     {},
	"gallery":    {},
	"monument":   {},
	"attraction": {},
	"place":      {},
}

var _ Service = (*ServiceImpl)(nil)

// Service defines the business logic contract for attraction lookups.
type Service interface {
	// NearbyAttractions returns up to limit deduplicated attraction names
	// in discovery order. Upstream failures degrade to fewer results.
	NearbyAttractions(ctx context.Context, lat, lon float64, limit int) []string
	FormatResponse(placeName string, places []string) string
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

// NearbyAttractions widens the search in stages: one combined
// tourism/historic/leisure query, then museums and galleries, then any
// named feature over a larger radius. Each stage shares one seen-set so a
// name surfaces only once, and later stages only run while the running
// total is short of the limit.
func (s *ServiceImpl) NearbyAttractions(ctx context.Context, lat, lon float64, limit int) []string {
	ctx, span := otel.Tracer("POIService").Start(ctx, "NearbyAttractions", trace.WithAttributes(
		attribute.Float64("geo.latitude", lat),
		attribute.Float64("geo.longitude", lon),
		attribute.Int("limit", limit),
	))
	defer span.End()

	seen := make(map[string]struct{})

	places := s.runStage(ctx, "combined", combinedQuery(lat, lon, limit*3), limit*3, seen)
	if len(places) >= limit {
		span.SetAttributes(attribute.Int("attractions.count", limit))
		return places[:limit]
	}

	places = append(places, s.runStage(ctx, "museums", museumsQuery(lat, lon), limit-len(places), seen)...)

	if len(places) < limit {
		places = append(places, s.runStage(ctx, "named", namedQuery(lat, lon), limit-len(places), seen)...)
	}

	if len(places) > limit {
		places = places[:limit]
	}
	span.SetAttributes(attribute.Int("attractions.count", len(places)))
	return places
}

// runStage executes one query and extracts names; a failed stage
// contributes nothing instead of aborting the whole lookup.
func (s *ServiceImpl) runStage(ctx context.Context, stage, query string, limit int, seen map[string]struct{}) []string {
	payload, err := s.client.Query(ctx, query)
	if err != nil {
		s.logger.WarnContext(ctx, "Attraction search stage failed",
			slog.String("stage", stage),
			slog.Any("error", err),
		)
		return nil
	}
	return extractNames(payload.Elements, limit, seen)
}

// extractNames picks the best available name per element, skipping short,
// generic and already-seen names, up to limit.
func extractNames(elements []models.OverpassElement, limit int, seen map[string]struct{}) []string {
	var places []string
	for _, element := range elements {
		if len(places) >= limit {
			break
		}

		var name string
		for _, tag := range nameTagPreference {
			if v, ok := element.Tags[tag]; ok && v != "" {
				name = v
				break
			}
		}

		name = strings.TrimSpace(name)
		if len(name) <= 2 {
			continue
		}
		if _, generic := genericNames[strings.ToLower(name)]; generic {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}

		places = append(places, name)
		seen[name] = struct{}{}
	}
	return places
}

// FormatResponse renders the standalone attractions answer.
func (s *ServiceImpl) FormatResponse(placeName string, places []string) string {
	if len(places) == 0 {
		return fmt.Sprintf("Sorry, I couldn't find tourist attractions for %s.", placeName)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "In %s these are the places you can go,\n\n", placeName)
	for _, place := range places {
		b.WriteString(place)
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}

func combinedQuery(lat, lon float64, rawLimit int) string {
	return fmt.Sprintf(`[out:json][timeout:20];
(
  node["tourism"](around:15000,%[1]f,%[2]f);
  way["tourism"](around:15000,%[1]f,%[2]f);
  node["historic"](around:15000,%[1]f,%[2]f);
  way["historic"](around:15000,%[1]f,%[2]f);
  node["leisure"](around:15000,%[1]f,%[2]f);
  way["leisure"](around:15000,%[1]f,%[2]f);
);
out center;
limit %[3]d;`, lat, lon, rawLimit)
}

func museumsQuery(lat, lon float64) string {
	return fmt.Sprintf(`[out:json][timeout:25];
(
  node["tourism"="museum"](around:15000,%[1]f,%[2]f);
  way["tourism"="museum"](around:15000,%[1]f,%[2]f);
  node["tourism"="gallery"](around:15000,%[1]f,%[2]f);
  way["tourism"="gallery"](around:15000,%[1]f,%[2]f);
);
out center;`, lat, lon)
}

func namedQuery(lat, lon float64) string {
	return fmt.Sprintf(`[out:json][timeout:25];
(
  node["name"](around:20000,%[1]f,%[2]f)["tourism"];
  way["name"](around:20000,%[1]f,%[2]f)["tourism"];
  node["name"](around:20000,%[1]f,%[2]f)["historic"];
  way["name"](around:20000,%[1]f,%[2]f)["historic"];
  node["name"](around:20000,%[1]f,%[2]f)["leisure"];
  way["name"](around:20000,%[1]f,%[2]f)["leisure"];
);
out center;`, lat, lon)
}
