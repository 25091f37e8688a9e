package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPlaceName_Patterns(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "going to go to",
			input:    "I'm going to go to Paris, what is the temperature there?",
			expected: "Paris",
		},
		{
			name:     "going to go to without punctuation",
			input:    "I'm going to go to Bangalore",
			expected: "Bangalore",
		},
		{
			name:     "visit",
			input:    "I want to visit New York, any suggestions?",
			expected: "New York",
		},
		{
			name:     "trip to",
			input:    "planning a trip to Lisbon.",
			expected: "Lisbon",
		},
		{
			name:     "in",
			input:    "what's the weather in Tokyo?",
			expected: "Tokyo",
		},
		{
			name:     "lowercase input is title cased",
			input:    "I'm going to go to san francisco, let's plan my trip",
			expected: "San Francisco",
		},
		{
			name:     "hyphenated place",
			input:    "trip to Stratford-upon-Avon, please",
			expected: "Stratford-upon-avon",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			place, ok := extractPlaceName(tt.input)
			require.True(t, ok)
			assert.Equal(t, tt.expected, place)
		})
	}
}

func TestExtractPlaceName_FallbackSignificantWords(t *testing.T) {
	// No pattern matches; significant words survive the stop-word filter
	place, ok := extractPlaceName("tell me about Atlantis")
	require.True(t, ok)
	assert.Equal(t, "Tell About Atlantis", place)
}

func TestExtractPlaceName_Absence(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty string", input: ""},
		{name: "only stop words", input: "i am going to go"},
		{name: "only short tokens", input: "a b cd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := extractPlaceName(tt.input)
			assert.False(t, ok)
		})
	}
}

func TestClassifyIntent(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		wantsWeather  bool
		wantsPlaces   bool
	}{
		{name: "weather only", input: "what is the temperature in Paris", wantsWeather: true, wantsPlaces: false},
		{name: "places only", input: "what attractions are in Paris", wantsWeather: false, wantsPlaces: true},
		{name: "both explicit", input: "weather and places to visit in Paris", wantsWeather: true, wantsPlaces: true},
		{name: "go to implies places", input: "I'm going to go to Paris", wantsWeather: false, wantsPlaces: true},
		{name: "neither implies both", input: "tell me about Paris", wantsWeather: true, wantsPlaces: true},
		{name: "empty string implies both", input: "", wantsWeather: true, wantsPlaces: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intent := classifyIntent(tt.input)
			assert.Equal(t, tt.wantsWeather, intent.Weather)
			assert.Equal(t, tt.wantsPlaces, intent.Places)
			assert.True(t, intent.Weather || intent.Places, "at least one intent flag must be set")
		})
	}
}
