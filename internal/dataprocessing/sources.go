package dataprocessing

import (
	"ottpulse/pkg/contracts/domain"
)

// SourceID identifies one catalog source table.
type SourceID string

const (
	SourceNetflix     SourceID = "netflix"
	SourceAmazonPrime SourceID = "amazon_prime"
	SourceDisneyPlus  SourceID = "disney_plus"
	SourceAppleTV     SourceID = "apple_tv"
	SourceCrunchyroll SourceID = "crunchyroll"
	SourceHBO         SourceID = "hbo"
)

// SourceSpec declares how one source file maps onto the canonical schema.
// The registry of specs replaces ad hoc per-file branching: adding a platform
// means adding an entry here, not touching the loader.
type SourceSpec struct {
	ID       SourceID
	Platform domain.Platform
	// File is the default file name inside the data directory. Both .csv and
	// .xlsx files are supported.
	File string
	// CountryColumn names the source's native country field.
	CountryColumn string
	// YearColumn names the source's release-year field; renamed to the
	// canonical release_year before merging.
	YearColumn string
	// BracketedCountries marks sources whose country field is a bracketed,
	// quoted list representation (e.g. "['USA', 'UK']") rather than a plain
	// comma-separated string.
	BracketedCountries bool
}

// sourceOrder fixes the merge order; it matches the order the sources are
// concatenated in so downstream first-appearance tie-breaks are stable.
var sourceOrder = []SourceID{
	SourceNetflix,
	SourceAmazonPrime,
	SourceDisneyPlus,
	SourceAppleTV,
	SourceCrunchyroll,
	SourceHBO,
}

var sourceRegistry = map[SourceID]SourceSpec{
	SourceNetflix: {
		ID:            SourceNetflix,
		Platform:      domain.PlatformNetflix,
		File:          "netflix_titles.csv",
		CountryColumn: "country",
		YearColumn:    "release_year",
	},
	SourceAmazonPrime: {
		ID:            SourceAmazonPrime,
		Platform:      domain.PlatformAmazonPrime,
		File:          "amazon_prime_titles.csv",
		CountryColumn: "country",
		YearColumn:    "release_year",
	},
	SourceDisneyPlus: {
		ID:            SourceDisneyPlus,
		Platform:      domain.PlatformDisneyPlus,
		File:          "disney_plus_shows.csv",
		CountryColumn: "country",
		YearColumn:    "year",
	},
	SourceAppleTV: {
		ID:                 SourceAppleTV,
		Platform:           domain.PlatformAppleTV,
		File:               "apple_tv_titles.csv",
		CountryColumn:      "production_countries",
		YearColumn:         "release_year",
		BracketedCountries: true,
	},
	SourceCrunchyroll: {
		ID:                 SourceCrunchyroll,
		Platform:           domain.PlatformCrunchyroll,
		File:               "crunchyroll_titles.csv",
		CountryColumn:      "production_countries",
		YearColumn:         "release_year",
		BracketedCountries: true,
	},
	SourceHBO: {
		ID:                 SourceHBO,
		Platform:           domain.PlatformHBO,
		File:               "hbo_titles.csv",
		CountryColumn:      "production_countries",
		YearColumn:         "release_year",
		BracketedCountries: true,
	},
}

// Sources returns every registered source spec in merge order.
func Sources() []SourceSpec {
	specs := make([]SourceSpec, 0, len(sourceOrder))
	for _, id := range sourceOrder {
		specs = append(specs, sourceRegistry[id])
	}
	return specs
}

// LookupSource returns the source descriptor for an ID.
func LookupSource(id SourceID) (SourceSpec, bool) {
	spec, ok := sourceRegistry[id]
	return spec, ok
}
