package models

// WeatherReading holds the current conditions for one set of coordinates.
// TemperatureC is nil when the provider returned no reading, which is a
// different situation from a reading of 0°C.
type WeatherReading struct {
	TemperatureC             *float64 `json:"temperature_c"`
	PrecipitationProbability int      `json:"precipitation_probability"`
}

// OpenMeteoResponse mirrors the subset of the forecast payload we consume.
type OpenMeteoResponse struct {
	Current *OpenMeteoCurrent `json:"current"`
}

type OpenMeteoCurrent struct {
	Temperature2m            *float64 `json:"temperature_2m"`
	PrecipitationProbability *float64 `json:"precipitation_probability"`
}
