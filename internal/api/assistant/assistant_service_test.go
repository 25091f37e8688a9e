package assistant

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-travel-concierge/app/observability/metrics"
	"github.com/FACorreiaa/go-travel-concierge/internal/models"
)

// MockGeocodeService is a mock implementation of geocode.Service
type MockGeocodeService struct {
	mock.Mock
}

func (m *MockGeocodeService) Resolve(ctx context.Context, placeName string) (*models.Coordinates, error) {
	args := m.Called(ctx, placeName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Coordinates), args.Error(1)
}

// MockWeatherService is a mock implementation of weather.Service
type MockWeatherService struct {
	mock.Mock
}

func (m *MockWeatherService) CurrentWeather(ctx context.Context, lat, lon float64) *models.WeatherReading {
	args := m.Called(ctx, lat, lon)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*models.WeatherReading)
}

func (m *MockWeatherService) FormatResponse(placeName string, reading *models.WeatherReading) string {
	args := m.Called(placeName, reading)
	return args.String(0)
}

// MockPOIService is a mock implementation of poi.Service
type MockPOIService struct {
	mock.Mock
}

func (m *MockPOIService) NearbyAttractions(ctx context.Context, lat, lon float64, limit int) []string {
	args := m.Called(ctx, lat, lon, limit)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]string)
}

func (m *MockPOIService) FormatResponse(placeName string, places []string) string {
	args := m.Called(placeName, places)
	return args.String(0)
}

type serviceMocks struct {
	geocode *MockGeocodeService
	weather *MockWeatherService
	poi     *MockPOIService
}

func newTestService(t *testing.T) (*ServiceImpl, serviceMocks) {
	t.Helper()
	metrics.InitAppMetrics()

	mocks := serviceMocks{
		geocode: new(MockGeocodeService),
		weather: new(MockWeatherService),
		poi:     new(MockPOIService),
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	service := NewServiceImpl(mocks.geocode, mocks.weather, mocks.poi, 5*time.Second, 5, logger)
	return service, mocks
}

var parisCoords = &models.Coordinates{Latitude: 48.8566, Longitude: 2.3522}

func floatPtr(f float64) *float64 { return &f }

func TestProcessRequest_NoPlaceExtracted(t *testing.T) {
	service, mocks := newTestService(t)

	response, err := service.ProcessRequest(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "I couldn't identify the place you want to visit. Please specify a place name.", response)

	mocks.geocode.AssertNotCalled(t, "Resolve")
}

func TestProcessRequest_UnknownPlace(t *testing.T) {
	service, mocks := newTestService(t)

	mocks.geocode.On("Resolve", mock.Anything, "Tell About Atlantis").Return(nil, nil).Once()

	response, err := service.ProcessRequest(context.Background(), "tell me about Atlantis")
	require.NoError(t, err)
	assert.Equal(t, "I don't know this place exists. Could you please check the spelling or provide more details about the location?", response)

	mocks.weather.AssertNotCalled(t, "CurrentWeather")
	mocks.poi.AssertNotCalled(t, "NearbyAttractions")
}

func TestProcessRequest_WeatherOnly(t *testing.T) {
	service, mocks := newTestService(t)

	reading := &models.WeatherReading{TemperatureC: floatPtr(18.7), PrecipitationProbability: 10}
	mocks.geocode.On("Resolve", mock.Anything, "Paris").Return(parisCoords, nil).Once()
	mocks.weather.On("CurrentWeather", mock.Anything, parisCoords.Latitude, parisCoords.Longitude).Return(reading, nil).Once()
	mocks.weather.On("FormatResponse", "Paris", reading).
		Return("In Paris it's currently 18°C with a chance of 10% to rain.").Once()

	response, err := service.ProcessRequest(context.Background(), "what is the temperature in Paris")
	require.NoError(t, err)
	assert.Equal(t, "In Paris it's currently 18°C with a chance of 10% to rain.", response)

	// Weather-only intent never touches the POI branch
	mocks.poi.AssertNotCalled(t, "NearbyAttractions")
}

func TestProcessRequest_BothBranches(t *testing.T) {
	service, mocks := newTestService(t)

	reading := &models.WeatherReading{TemperatureC: floatPtr(22.3), PrecipitationProbability: 0}
	mocks.geocode.On("Resolve", mock.Anything, "Paris").Return(parisCoords, nil).Once()
	mocks.weather.On("CurrentWeather", mock.Anything, mock.Anything, mock.Anything).Return(reading, nil).Once()
	mocks.weather.On("FormatResponse", "Paris", reading).
		Return("In Paris it's currently 22°C with a chance of 0% to rain.").Once()
	mocks.poi.On("NearbyAttractions", mock.Anything, parisCoords.Latitude, parisCoords.Longitude, 5).
		Return([]string{"Louvre", "Eiffel Tower"}, nil).Once()

	response, err := service.ProcessRequest(context.Background(), "I'm going to go to Paris, what is the temperature there? And what are the places I can visit?")
	require.NoError(t, err)
	assert.Equal(t, "In Paris it's currently 22°C with a chance of 0% to rain.. And these are the places you can go:\n\nLouvre\nEiffel Tower", response)
}

func TestProcessRequest_WeatherBranchFailureDoesNotLeak(t *testing.T) {
	service, mocks := newTestService(t)

	mocks.geocode.On("Resolve", mock.Anything, "Paris").Return(parisCoords, nil).Once()
	// Weather branch resolves to absence
	mocks.weather.On("CurrentWeather", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil).Once()
	mocks.poi.On("NearbyAttractions", mock.Anything, mock.Anything, mock.Anything, 5).
		Return([]string{"Louvre"}, nil).Once()
	mocks.poi.On("FormatResponse", "Paris", []string{"Louvre"}).
		Return("In Paris these are the places you can go,\n\nLouvre").Once()

	response, err := service.ProcessRequest(context.Background(), "I'm going to go to Paris, what is the temperature there? And what are the places I can visit?")
	require.NoError(t, err)
	assert.Equal(t, "In Paris these are the places you can go,\n\nLouvre", response)

	mocks.weather.AssertNotCalled(t, "FormatResponse")
}

func TestProcessRequest_TotalUpstreamFailure(t *testing.T) {
	service, mocks := newTestService(t)

	mocks.geocode.On("Resolve", mock.Anything, "Paris").Return(parisCoords, nil).Once()
	mocks.weather.On("CurrentWeather", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil).Once()
	mocks.poi.On("NearbyAttractions", mock.Anything, mock.Anything, mock.Anything, 5).Return(nil, nil).Once()

	response, err := service.ProcessRequest(context.Background(), "I'm going to go to Paris, what is the temperature there? And what are the places I can visit?")
	require.NoError(t, err)
	assert.Equal(t, "I couldn't fetch information for Paris. Please try again.", response)
}
