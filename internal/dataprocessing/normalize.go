package dataprocessing

import (
	"strconv"
	"strings"

	"ottpulse/pkg/contracts/domain"
)

// bracketStripper removes the list punctuation some exports wrap around
// their country field ("['USA', 'UK']" style).
var bracketStripper = strings.NewReplacer("[", "", "]", "", "'", "")

// primaryCountry takes the first entry of a comma-separated country list.
// Empty or missing input yields the Unknown sentinel, never "".
func primaryCountry(raw string, bracketed bool) string {
	if bracketed {
		raw = bracketStripper.Replace(raw)
	}
	first := strings.TrimSpace(strings.SplitN(raw, ",", 2)[0])
	if first == "" {
		return domain.UnknownCountry
	}
	return first
}

// isDomestic reports whether the raw country field names the home market.
// Matching is case-sensitive substring containment against ANY alias.
func isDomestic(countryRaw string, aliases []string) bool {
	for _, alias := range aliases {
		if strings.Contains(countryRaw, alias) {
			return true
		}
	}
	return false
}

// coerceYear parses a release-year cell. Exports carry years as integers,
// floats ("2015.0"), or garbage; anything non-numeric or non-positive is a
// coercion failure and the row is dropped by the caller.
func coerceYear(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	year := int(f)
	if year <= 0 || float64(year) != f {
		return 0, false
	}
	return year, true
}

// parseRuntimeMinutes parses a movie duration like "90 min".
// Unparseable input yields nil, never zero.
func parseRuntimeMinutes(raw string) *float64 {
	raw = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(raw), " min"))
	return parsePositiveFloat(raw)
}

// parseSeasonCount parses a TV duration like "3 Seasons" or "1 Season".
// Both the singular and plural suffix occur in the wild.
func parseSeasonCount(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimSuffix(raw, " Seasons")
	raw = strings.TrimSuffix(raw, " Season")
	return parsePositiveFloat(strings.TrimSpace(raw))
}

func parsePositiveFloat(raw string) *float64 {
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f < 0 {
		return nil
	}
	return &f
}

// splitGenres explodes the delimited genre field ("Dramas, Thrillers") into
// an ordered slice. Empty input yields nil.
func splitGenres(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	genres := make([]string, 0, len(parts))
	for _, p := range parts {
		if g := strings.TrimSpace(p); g != "" {
			genres = append(genres, g)
		}
	}
	if len(genres) == 0 {
		return nil
	}
	return genres
}
