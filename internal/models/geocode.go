package models

// Coordinates is a WGS84 latitude/longitude pair in degrees.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// GeocodeResult is one raw hit from the geocoding provider. Nominatim
// returns lat/lon as JSON strings, so they stay strings until scoring.
type GeocodeResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	Type        string `json:"type"`
	Class       string `json:"class"`
	DisplayName string `json:"display_name"`
	Name        string `json:"name"`
}

// GeocodeCandidate is a scored geocoder hit. A lat or lon of exactly 0 is
// treated as unset upstream data and never becomes a candidate.
type GeocodeCandidate struct {
	Score  int
	Coords Coordinates
}
