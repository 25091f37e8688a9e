package assistant

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/FACorreiaa/go-travel-concierge/internal/models"
)

// placePatterns are tried in order; the first match wins. Captures stop at
// punctuation, end of input, or the words let/what/and, which in practice
// delimit the place in queries like "going to go to Paris, what is ...".
var placePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)going to go to ([a-zA-Z\s\-']+?)(?:,|\.|$|\?|let|what|and)`),
	regexp.MustCompile(`(?i)going to (?:go to |visit )?([a-zA-Z\s\-']+?)(?:,|\.|$|\?|let|what|and)`),
	regexp.MustCompile(`(?i)visit (?:to )?([a-zA-Z\s\-']+?)(?:,|\.|$|\?|let|what|and)`),
	regexp.MustCompile(`(?i)trip to ([a-zA-Z\s\-']+?)(?:,|\.|$|\?|let|what|and)`),
	regexp.MustCompile(`(?i)in ([a-zA-Z\s\-']+?)(?:,|\.|$|\?|let|what|and)`),
	regexp.MustCompile(`(?i)to ([a-zA-Z\s\-']+?)(?:,|\.|$|\?|let|what|and)`),
	regexp.MustCompile(`(?i)plan.*?([a-zA-Z\s\-']+?)(?:,|\.|$|\?|let|what|and)`),
}

var (
	fillerWords   = regexp.MustCompile(`(?i)\b(?:the|a|an|my|our|trip|visit|going|go)\b`)
	trailingPunct = regexp.MustCompile(`[,.!?]+$`)
)

// stopWords are dropped by the fallback extractor: function words plus the
// domain words users wrap a place name in.
var stopWords = map[string]struct{}{
	"i": {}, "im": {}, "going": {}, "go": {}, "to": {}, "the": {}, "a": {},
	"an": {}, "my": {}, "our": {}, "trip": {}, "visit": {}, "plan": {},
	"lets": {}, "let": {}, "what": {}, "is": {}, "are": {}, "there": {},
	"and": {}, "can": {}, "places": {}, "temperature": {},
}

var (
	weatherKeywords = []string{"temperature", "temp", "weather", "rain", "forecast", "climate"}
	placesKeywords  = []string{"places", "attractions", "visit", "see", "tourist", "sightseeing", "go to"}
)

// extractPlaceName pulls a place name out of free text. This is a
// best-effort heuristic, not a parser: pattern order and the stop-word set
// are user-visible behavior and must not be "improved" casually.
func extractPlaceName(text string) (string, bool) {
	for _, pattern := range placePatterns {
		match := pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		place := strings.TrimSpace(match[1])
		place = strings.TrimSpace(fillerWords.ReplaceAllString(place, ""))
		place = strings.TrimSpace(trailingPunct.ReplaceAllString(place, ""))
		if len(place) > 2 {
			return titleCase(place), true
		}
	}

	// Fallback: keep the first few significant words as the place name.
	var significant []string
	for _, word := range strings.Fields(text) {
		cleaned := strings.Trim(word, ".,!?")
		if len(cleaned) <= 2 {
			continue
		}
		if _, skip := stopWords[strings.ToLower(cleaned)]; skip {
			continue
		}
		significant = append(significant, cleaned)
	}
	if len(significant) > 0 {
		if len(significant) > 3 {
			significant = significant[:3]
		}
		return titleCase(strings.Join(significant, " ")), true
	}

	return "", false
}

// classifyIntent decides whether the user wants weather, places, or both.
// A query mentioning neither implies "tell me everything".
func classifyIntent(text string) models.Intent {
	lower := strings.ToLower(text)

	var intent models.Intent
	for _, keyword := range weatherKeywords {
		if strings.Contains(lower, keyword) {
			intent.Weather = true
			break
		}
	}
	for _, keyword := range placesKeywords {
		if strings.Contains(lower, keyword) {
			intent.Places = true
			break
		}
	}

	if !intent.Weather && !intent.Places {
		intent.Weather = true
		intent.Places = true
	}
	return intent
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		runes := []rune(strings.ToLower(word))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
