package domain

// ContentType classifies a catalog entry.
type ContentType string

const (
	ContentTypeMovie   ContentType = "Movie"
	ContentTypeTVShow  ContentType = "TV Show"
	ContentTypeUnknown ContentType = "Unknown"
)

// ParseContentType maps a raw type cell to a ContentType. Anything that is
// not an exact Movie/TV Show value is treated as Unknown rather than dropped.
func ParseContentType(raw string) ContentType {
	switch raw {
	case "Movie":
		return ContentTypeMovie
	case "TV Show":
		return ContentTypeTVShow
	default:
		return ContentTypeUnknown
	}
}

// Platform identifies the distribution source a title was ingested from.
type Platform string

const (
	PlatformNetflix     Platform = "Netflix"
	PlatformAmazonPrime Platform = "Amazon Prime"
	PlatformDisneyPlus  Platform = "Disney+"
	PlatformAppleTV     Platform = "Apple TV"
	PlatformCrunchyroll Platform = "Crunchyroll"
	PlatformHBO         Platform = "HBO"
)

// AllPlatforms lists every platform in stable display order.
func AllPlatforms() []Platform {
	return []Platform{
		PlatformNetflix,
		PlatformAmazonPrime,
		PlatformDisneyPlus,
		PlatformAppleTV,
		PlatformCrunchyroll,
		PlatformHBO,
	}
}

// UnknownCountry is the explicit sentinel for missing or unparseable
// country data. OriginCountry is never empty after normalization.
const UnknownCountry = "Unknown"

// Title is the canonical per-row record shared by every catalog source.
// Tables of Title are built once at ingestion and never mutated afterwards;
// aggregation queries only read them.
type Title struct {
	Title       string      `json:"title" csv:"Title"`
	ContentType ContentType `json:"content_type" csv:"ContentType"`

	// ReleaseYear is only meaningful when HasYear is true. Rows whose year
	// fails numeric coercion are dropped before year-based aggregation, so
	// merged tables always carry HasYear=true.
	ReleaseYear int  `json:"release_year" csv:"ReleaseYear"`
	HasYear     bool `json:"has_year" csv:"HasYear"`

	CountryRaw    string `json:"country_raw,omitempty" csv:"CountryRaw"`
	OriginCountry string `json:"origin_country" csv:"OriginCountry"`
	IsDomestic    bool   `json:"is_domestic" csv:"IsDomestic"`

	Platform Platform `json:"platform" csv:"Platform"`

	// RuntimeMinutes is set only for Movies, SeasonCount only for TV Shows.
	// nil means the duration was absent or unparseable, never zero.
	DurationRaw    string   `json:"duration_raw,omitempty" csv:"DurationRaw"`
	RuntimeMinutes *float64 `json:"runtime_minutes,omitempty" csv:"RuntimeMinutes"`
	SeasonCount    *float64 `json:"season_count,omitempty" csv:"SeasonCount"`

	Genres []string `json:"genres,omitempty" csv:"Genres"`
	Rating string   `json:"rating,omitempty" csv:"Rating"`
}

// IsMovie reports whether the title is classified as a movie.
func (t Title) IsMovie() bool { return t.ContentType == ContentTypeMovie }

// IsTVShow reports whether the title is classified as a TV show.
func (t Title) IsTVShow() bool { return t.ContentType == ContentTypeTVShow }
