package analytics

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ottpulse/pkg/contracts/domain"
)

func countryTitle(country string, domestic bool, genres ...string) domain.Title {
	return domain.Title{
		Title:         "t",
		ContentType:   domain.ContentTypeMovie,
		ReleaseYear:   2018,
		HasYear:       true,
		Platform:      domain.PlatformNetflix,
		OriginCountry: country,
		IsDomestic:    domestic,
		Genres:        genres,
	}
}

func TestCountrySourcing(t *testing.T) {
	a := NewAnalyzer(slog.Default())

	rows := []domain.Title{
		countryTitle("India", false),
		countryTitle("India", false),
		countryTitle("India", false),
		countryTitle("France", false),
		countryTitle("France", false),
		countryTitle("Japan", false),
		countryTitle("United States", true), // domestic, excluded
		countryTitle("Unknown", false),      // sentinel, excluded
	}

	summary, err := a.CountrySourcing(context.Background(), rows, CountryFilter{MinCount: 2})
	require.NoError(t, err)
	require.Len(t, summary.Countries, 2)

	assert.Equal(t, CountryCount{Country: "India", Count: 3}, summary.Countries[0])
	assert.Equal(t, CountryCount{Country: "France", Count: 2}, summary.Countries[1])
}

func TestCountrySourcing_InclusiveThreshold(t *testing.T) {
	a := NewAnalyzer(slog.Default())

	var rows []domain.Title
	for i := 0; i < 15; i++ {
		rows = append(rows, countryTitle("India", false))
	}
	for i := 0; i < 14; i++ {
		rows = append(rows, countryTitle("France", false))
	}

	summary, err := a.CountrySourcing(context.Background(), rows, CountryFilter{MinCount: 15})
	require.NoError(t, err)
	// Exactly at the threshold is kept; one below is dropped.
	require.Len(t, summary.Countries, 1)
	assert.Equal(t, "India", summary.Countries[0].Country)
	assert.Equal(t, 15, summary.Countries[0].Count)
}

func TestCountrySourcing_TieBreakByName(t *testing.T) {
	a := NewAnalyzer(slog.Default())

	rows := []domain.Title{
		countryTitle("Japan", false),
		countryTitle("France", false),
	}

	summary, err := a.CountrySourcing(context.Background(), rows, CountryFilter{MinCount: 1})
	require.NoError(t, err)
	require.Len(t, summary.Countries, 2)
	// Equal counts order alphabetically.
	assert.Equal(t, "France", summary.Countries[0].Country)
	assert.Equal(t, "Japan", summary.Countries[1].Country)
}

func TestCountrySourcing_NoData(t *testing.T) {
	a := NewAnalyzer(slog.Default())

	// Only domestic and unknown rows leave nothing to count.
	rows := []domain.Title{
		countryTitle("United States", true),
		countryTitle("Unknown", false),
	}

	summary, err := a.CountrySourcing(context.Background(), rows, CountryFilter{MinCount: 1})
	require.NoError(t, err)
	assert.True(t, summary.NoData)
}

func TestSourcingHighlights(t *testing.T) {
	a := NewAnalyzer(slog.Default())

	rows := []domain.Title{
		countryTitle("India", false),
		countryTitle("India", false),
		countryTitle("France", false),
		countryTitle("United States", true),
	}

	summary, err := a.SourcingHighlights(context.Background(), rows, CountryFilter{MinCount: 1})
	require.NoError(t, err)
	assert.False(t, summary.NoData)
	assert.Equal(t, 3, summary.TotalTitles)
	assert.Equal(t, 2, summary.CountryCount)
	assert.Equal(t, "India", summary.TopCountry)
}

func TestGenreByCountryTreemap(t *testing.T) {
	a := NewAnalyzer(slog.Default())

	rows := []domain.Title{
		countryTitle("India", false, "Dramas", "Comedies"),
		countryTitle("India", false, "Dramas"),
		countryTitle("France", false, "Dramas"),
		countryTitle("Japan", false, "Anime"),
		countryTitle("United States", true, "Dramas"), // domestic, excluded
	}

	summary, err := a.GenreByCountryTreemap(context.Background(), rows, TreemapFilter{TopCountries: 2})
	require.NoError(t, err)
	assert.False(t, summary.NoData)

	countries := map[string]bool{}
	for _, c := range summary.Cells {
		countries[c.Country] = true
	}
	// India weighs 3 (two titles, three genre tags); France and Japan tie
	// at 1, and France appears first.
	assert.True(t, countries["India"])
	assert.True(t, countries["France"])
	assert.False(t, countries["Japan"])
	assert.False(t, countries["United States"])

	// India's cells: Dramas counted per title, Comedies once.
	want := map[string]int{}
	for _, c := range summary.Cells {
		if c.Country == "India" {
			want[c.Genre] = c.Count
		}
	}
	assert.Equal(t, map[string]int{"Dramas": 2, "Comedies": 1}, want)
}

func TestGenreByCountryTreemap_RanksByGenreWeight(t *testing.T) {
	a := NewAnalyzer(slog.Default())

	// Japan has more titles, but France carries more genre tags overall:
	// 2 titles x 3 genres = 6 versus Japan's 3 x 1 = 3. The weight, not
	// the title count, decides the top-N cut.
	rows := []domain.Title{
		countryTitle("France", false, "Dramas", "Comedies", "Thrillers"),
		countryTitle("France", false, "Dramas", "Comedies", "Thrillers"),
		countryTitle("Japan", false, "Anime"),
		countryTitle("Japan", false, "Anime"),
		countryTitle("Japan", false, "Anime"),
	}

	summary, err := a.GenreByCountryTreemap(context.Background(), rows, TreemapFilter{TopCountries: 1})
	require.NoError(t, err)
	require.Len(t, summary.Cells, 3)
	for _, c := range summary.Cells {
		assert.Equal(t, "France", c.Country)
		assert.Equal(t, 2, c.Count)
	}
}

func TestGenreByCountryTreemap_KeepsUnknownBucket(t *testing.T) {
	a := NewAnalyzer(slog.Default())

	// Unlike sourcing counts, the treemap keeps titles with an unknown
	// origin as their own bucket.
	rows := []domain.Title{
		countryTitle("Unknown", false, "Dramas"),
		countryTitle("Unknown", false, "Dramas"),
		countryTitle("India", false, "Comedies"),
	}

	summary, err := a.GenreByCountryTreemap(context.Background(), rows, TreemapFilter{TopCountries: 2})
	require.NoError(t, err)
	require.Len(t, summary.Cells, 2)

	assert.Equal(t, CountryGenreCount{Country: "Unknown", Genre: "Dramas", Count: 2}, summary.Cells[0])
	assert.Equal(t, CountryGenreCount{Country: "India", Genre: "Comedies", Count: 1}, summary.Cells[1])
}

func TestGenreByCountryTreemap_Deterministic(t *testing.T) {
	a := NewAnalyzer(slog.Default())

	// Three countries with equal totals; top-2 must keep first-appearance
	// order on every run.
	rows := []domain.Title{
		countryTitle("Japan", false, "Anime"),
		countryTitle("France", false, "Dramas"),
		countryTitle("India", false, "Comedies"),
	}

	first, err := a.GenreByCountryTreemap(context.Background(), rows, TreemapFilter{TopCountries: 2})
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		again, err := a.GenreByCountryTreemap(context.Background(), rows, TreemapFilter{TopCountries: 2})
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}

	require.Len(t, first.Cells, 2)
	assert.Equal(t, "Japan", first.Cells[0].Country)
	assert.Equal(t, "France", first.Cells[1].Country)
}

func TestGenreByCountryTreemap_NoData(t *testing.T) {
	a := NewAnalyzer(slog.Default())

	// Rows without genres contribute nothing.
	rows := []domain.Title{countryTitle("India", false)}

	summary, err := a.GenreByCountryTreemap(context.Background(), rows, TreemapFilter{TopCountries: 10})
	require.NoError(t, err)
	assert.True(t, summary.NoData)
}
