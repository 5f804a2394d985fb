package analytics

import (
	"github.com/go-playground/validator/v10"

	"ottpulse/pkg/contracts/domain"
)

// validate checks filter structs before any query runs.
var validate = validator.New()

// LocalizationFilter scopes the localization queries to a year range and a
// platform set. An empty platform set means every platform.
type LocalizationFilter struct {
	YearFrom  int               `json:"year_from" validate:"required,gt=0"`
	YearTo    int               `json:"year_to" validate:"required,gtefield=YearFrom"`
	Platforms []domain.Platform `json:"platforms,omitempty"`
}

// RecencyFilter scopes recency queries. ContentType empty means all content.
type RecencyFilter struct {
	ContentType domain.ContentType `json:"content_type,omitempty"`
	CutoffYear  int                `json:"cutoff_year" validate:"required,gt=0"`
}

// CountryFilter scopes country-sourcing queries. The count threshold is
// inclusive: a country at exactly MinCount is kept.
type CountryFilter struct {
	ContentType domain.ContentType `json:"content_type,omitempty"`
	MinCount    int                `json:"min_count" validate:"gte=1"`
}

// TreemapFilter scopes the genre-by-country treemap.
type TreemapFilter struct {
	ContentType  domain.ContentType `json:"content_type,omitempty"`
	TopCountries int                `json:"top_countries" validate:"gte=1"`
}

// RatingFilter scopes the runtime-by-rating query.
type RatingFilter struct {
	TopRatings int `json:"top_ratings" validate:"gte=1"`
}

// PlatformRatio is one row of the local-content comparison: the share of a
// platform's catalog produced in the home market. Ratio is a fraction in
// [0,1]; percentage display belongs to the rendering layer.
type PlatformRatio struct {
	Platform      domain.Platform `json:"platform"`
	Ratio         float64         `json:"ratio"`
	DomesticCount int             `json:"domestic_count"`
	TotalCount    int             `json:"total_count"`
}

// LocalRatioSummary is the per-platform domestic-content comparison,
// sorted by ratio descending (platform name ascending on ties).
type LocalRatioSummary struct {
	NoData    bool            `json:"no_data"`
	Platforms []PlatformRatio `json:"platforms,omitempty"`
}

// TrendPoint is one (platform, year) observation of the domestic ratio.
// Years absent from a platform's catalog produce no point; callers must
// handle gaps rather than expect zero-fill.
type TrendPoint struct {
	Platform      domain.Platform `json:"platform"`
	Year          int             `json:"year"`
	Ratio         float64         `json:"ratio"`
	DomesticCount int             `json:"domestic_count"`
	TotalCount    int             `json:"total_count"`
}

// TrendSummary is the localization time series, ordered by platform then year.
type TrendSummary struct {
	NoData bool         `json:"no_data"`
	Points []TrendPoint `json:"points,omitempty"`
}

// GrowthPoint is the year-over-year percent change of a platform's domestic
// ratio. PrevYear names the prior observation the change is computed
// against; across a gap that is the last year the platform appeared in.
type GrowthPoint struct {
	Platform      domain.Platform `json:"platform"`
	Year          int             `json:"year"`
	PrevYear      int             `json:"prev_year"`
	ChangePercent float64         `json:"change_percent"`
}

// GrowthSummary is the year-over-year growth table of the localization pivot.
type GrowthSummary struct {
	NoData bool          `json:"no_data"`
	Points []GrowthPoint `json:"points,omitempty"`
}

// RecencySummary splits the catalog at a cutoff year. Recent is strictly
// greater than the cutoff; titles released in the cutoff year count as older.
type RecencySummary struct {
	NoData      bool    `json:"no_data"`
	RecentCount int     `json:"recent_count"`
	OlderCount  int     `json:"older_count"`
	RecentShare float64 `json:"recent_share"`
	MedianYear  float64 `json:"median_year"`
	MeanYear    float64 `json:"mean_year"`
}

// TimelinePoint is the title count of one release year.
type TimelinePoint struct {
	Year   int  `json:"year"`
	Count  int  `json:"count"`
	Recent bool `json:"recent"`
}

// TimelineSummary is the per-year content volume series, ordered by year.
type TimelineSummary struct {
	NoData bool            `json:"no_data"`
	Points []TimelinePoint `json:"points,omitempty"`
}

// TypeYearPoint is the title count of one (year, content type) cell.
type TypeYearPoint struct {
	Year        int                `json:"year"`
	ContentType domain.ContentType `json:"content_type"`
	Count       int                `json:"count"`
}

// ProductionSummary is the content-type production series (post-2000),
// ordered by year then content type.
type ProductionSummary struct {
	NoData bool            `json:"no_data"`
	Points []TypeYearPoint `json:"points,omitempty"`
}

// YearStatsSummary carries the descriptive statistics of the release-year
// distribution.
type YearStatsSummary struct {
	NoData   bool    `json:"no_data"`
	StdDev   float64 `json:"std_dev"`
	MinYear  int     `json:"min_year"`
	MaxYear  int     `json:"max_year"`
	ModeYear int     `json:"mode_year"`
	Q1       float64 `json:"q1"`
	Q2       float64 `json:"q2"`
	Q3       float64 `json:"q3"`
}

// CountryCount is one country's title count.
type CountryCount struct {
	Country string `json:"country"`
	Count   int    `json:"count"`
}

// CountrySummary is the per-country sourcing table, sorted by count
// descending (country name ascending on ties). The Unknown sentinel and
// countries under the threshold are excluded.
type CountrySummary struct {
	NoData    bool           `json:"no_data"`
	Countries []CountryCount `json:"countries,omitempty"`
}

// CountryHighlights is the metric row of the international-sourcing panel.
type CountryHighlights struct {
	NoData       bool   `json:"no_data"`
	TotalTitles  int    `json:"total_titles"`
	CountryCount int    `json:"country_count"`
	TopCountry   string `json:"top_country"`
}

// CountryGenreCount is one (country, genre) cell of the treemap.
type CountryGenreCount struct {
	Country string `json:"country"`
	Genre   string `json:"genre"`
	Count   int    `json:"count"`
}

// TreemapSummary is the genre-by-country count hierarchy restricted to the
// top-N countries by total count.
type TreemapSummary struct {
	NoData bool                `json:"no_data"`
	Cells  []CountryGenreCount `json:"cells,omitempty"`
}

// RuntimeSummary describes the movie runtime distribution. Values is the
// raw sample in row order; density estimation is a rendering concern.
type RuntimeSummary struct {
	NoData bool      `json:"no_data"`
	Count  int       `json:"count"`
	Mean   float64   `json:"mean"`
	Min    float64   `json:"min"`
	Max    float64   `json:"max"`
	Values []float64 `json:"values,omitempty"`
}

// SeasonBucket is one bar of the season-count histogram.
type SeasonBucket struct {
	Seasons int `json:"seasons"`
	Count   int `json:"count"`
}

// SeasonSummary is the discrete season-count histogram, ordered by season
// count ascending.
type SeasonSummary struct {
	NoData  bool           `json:"no_data"`
	Buckets []SeasonBucket `json:"buckets,omitempty"`
}

// RatingRuntime is the runtime distribution of one age rating.
type RatingRuntime struct {
	Rating string  `json:"rating"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Q1     float64 `json:"q1"`
	Q3     float64 `json:"q3"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// RatingSummary is the per-rating runtime comparison for the top-N ratings
// by movie count, ordered by count descending.
type RatingSummary struct {
	NoData  bool            `json:"no_data"`
	Ratings []RatingRuntime `json:"ratings,omitempty"`
}

// HeatmapSummary is the genre-by-decade count matrix: Counts[i][j] is the
// number of titles of Genres[i] released in Decades[j]. Missing cells are
// zero-filled.
type HeatmapSummary struct {
	NoData  bool     `json:"no_data"`
	Genres  []string `json:"genres,omitempty"`
	Decades []int    `json:"decades,omitempty"`
	Counts  [][]int  `json:"counts,omitempty"`
}
