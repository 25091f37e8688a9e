package container

import (
	"log/slog"

	"github.com/patrickmn/go-cache"

	"github.com/FACorreiaa/go-travel-concierge/config"
	"github.com/FACorreiaa/go-travel-concierge/internal/api/assistant"
	"github.com/FACorreiaa/go-travel-concierge/internal/api/geocode"
	"github.com/FACorreiaa/go-travel-concierge/internal/api/poi"
	"github.com/FACorreiaa/go-travel-concierge/internal/api/weather"
)

// Container holds all application dependencies
type Container struct {
	Config           *config.Config
	Logger           *slog.Logger
	GeocodeService   geocode.Service
	WeatherService   weather.Service
	POIService       poi.Service
	AssistantService assistant.Service
	AssistantHandler *assistant.Handler
}

// NewContainer initializes and returns a new dependency container
func NewContainer(cfg *config.Config, logger *slog.Logger) *Container {
	nominatimClient := geocode.NewNominatimClient(
		cfg.Upstreams.Nominatim.BaseURL,
		cfg.Upstreams.Nominatim.UserAgent,
		cfg.Upstreams.Nominatim.Timeout,
		logger,
	)
	openMeteoClient := weather.NewOpenMeteoClient(
		cfg.Upstreams.OpenMeteo.BaseURL,
		cfg.Upstreams.OpenMeteo.Timeout,
		logger,
	)
	overpassClient := poi.NewOverpassClient(
		cfg.Upstreams.Overpass.BaseURL,
		cfg.Upstreams.Overpass.Timeout,
		logger,
	)

	// Coordinates never expire; absence is cached too so known misses
	// don't hit the geocoder again.
	coordCache := cache.New(cache.NoExpiration, 0)

	geocodeService := geocode.NewServiceImpl(nominatimClient, coordCache, cfg.Upstreams.Nominatim.Throttle, logger)
	weatherService := weather.NewServiceImpl(openMeteoClient, logger)
	poiService := poi.NewServiceImpl(overpassClient, logger)

	assistantService := assistant.NewServiceImpl(
		geocodeService,
		weatherService,
		poiService,
		cfg.Assistant.BranchTimeout,
		cfg.Assistant.AttractionLimit,
		logger,
	)
	assistantHandler := assistant.NewHandler(assistantService, logger)

	return &Container{
		Config:           cfg,
		Logger:           logger,
		GeocodeService:   geocodeService,
		WeatherService:   weatherService,
		POIService:       poiService,
		AssistantService: assistantService,
		AssistantHandler: assistantHandler,
	}
}
