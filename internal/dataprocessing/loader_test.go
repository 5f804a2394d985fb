package dataprocessing

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ottpulse/internal/config"
	apperrors "ottpulse/internal/errors"
	"ottpulse/pkg/contracts/domain"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Data: config.DataConfig{Dir: t.TempDir()},
		Analytics: config.AnalyticsConfig{
			HomeMarketAliases: []string{"United States", "US"},
			DefaultCutoffYear: 2015,
			MinTitleYear:      1920,
		},
	}
}

func writeSourceFile(t *testing.T, cfg *config.Config, name, content string) {
	t.Helper()
	path := filepath.Join(cfg.Data.Dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoadSource_Netflix(t *testing.T) {
	cfg := testConfig(t)
	writeSourceFile(t, cfg, "netflix_titles.csv",
		"show_id,type,title,country,release_year\n"+
			"s1,Movie,Title A,United States,2019\n"+
			"s2,TV Show,Title B,\"India, United States\",2015\n"+
			"s3,Movie,Title C,,2010\n")

	loader := NewLoader(cfg, slog.Default())
	result, err := loader.LoadSource(context.Background(), SourceNetflix)
	require.NoError(t, err)
	require.Len(t, result.Rows, 3)
	assert.Empty(t, result.Warnings)

	first := result.Rows[0]
	assert.Equal(t, "Title A", first.Title)
	assert.Equal(t, domain.ContentTypeMovie, first.ContentType)
	assert.Equal(t, 2019, first.ReleaseYear)
	assert.True(t, first.HasYear)
	assert.Equal(t, "United States", first.OriginCountry)
	assert.True(t, first.IsDomestic)
	assert.Equal(t, domain.PlatformNetflix, first.Platform)

	// The list row is domestic because an alias appears anywhere in it, but
	// its origin country is the first entry.
	second := result.Rows[1]
	assert.Equal(t, "India", second.OriginCountry)
	assert.True(t, second.IsDomestic)

	// Missing country collapses to the sentinel.
	third := result.Rows[2]
	assert.Equal(t, domain.UnknownCountry, third.OriginCountry)
	assert.False(t, third.IsDomestic)
}

func TestLoadSource_DropsUnparseableYears(t *testing.T) {
	cfg := testConfig(t)
	writeSourceFile(t, cfg, "netflix_titles.csv",
		"title,country,release_year\n"+
			"Good,US,2018\n"+
			"Bad,US,unknown\n"+
			"Float,US,2015.0\n")

	loader := NewLoader(cfg, slog.Default())
	result, err := loader.LoadSource(context.Background(), SourceNetflix)
	require.NoError(t, err)
	require.Len(t, result.Rows, 2)
	assert.Equal(t, 2018, result.Rows[0].ReleaseYear)
	assert.Equal(t, 2015, result.Rows[1].ReleaseYear)
}

func TestLoadSource_BracketedCountries(t *testing.T) {
	cfg := testConfig(t)
	writeSourceFile(t, cfg, "hbo_titles.csv",
		"title,production_countries,release_year\n"+
			"Show A,\"['United States', 'United Kingdom']\",2020\n"+
			"Show B,\"['JP']\",2019\n"+
			"Show C,[],2018\n")

	loader := NewLoader(cfg, slog.Default())
	result, err := loader.LoadSource(context.Background(), SourceHBO)
	require.NoError(t, err)
	require.Len(t, result.Rows, 3)

	assert.Equal(t, "United States", result.Rows[0].OriginCountry)
	assert.True(t, result.Rows[0].IsDomestic)
	assert.Equal(t, "JP", result.Rows[1].OriginCountry)
	assert.False(t, result.Rows[1].IsDomestic)
	assert.Equal(t, domain.UnknownCountry, result.Rows[2].OriginCountry)
}

func TestLoadSource_MissingFile(t *testing.T) {
	cfg := testConfig(t)

	loader := NewLoader(cfg, slog.Default())
	result, err := loader.LoadSource(context.Background(), SourceNetflix)
	require.NoError(t, err)
	assert.Empty(t, result.Rows)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, apperrors.ErrTypeSourceUnavailable, result.Warnings[0].Type)
}

func TestLoadSource_SchemaMismatchExcludesSource(t *testing.T) {
	cfg := testConfig(t)
	// Country column renamed out from under us; the whole source is excluded.
	writeSourceFile(t, cfg, "netflix_titles.csv",
		"title,nation,release_year\nSomething,US,2018\n")

	loader := NewLoader(cfg, slog.Default())
	result, err := loader.LoadSource(context.Background(), SourceNetflix)
	require.NoError(t, err)
	assert.Empty(t, result.Rows)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, apperrors.ErrTypeSchemaMismatch, result.Warnings[0].Type)
}

func TestLoadSource_UnknownID(t *testing.T) {
	loader := NewLoader(testConfig(t), slog.Default())
	_, err := loader.LoadSource(context.Background(), SourceID("hulu"))
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeNotFound))
}

func TestLoadMerged_PartialSources(t *testing.T) {
	cfg := testConfig(t)
	writeSourceFile(t, cfg, "netflix_titles.csv",
		"title,country,release_year\nN1,United States,2018\nN2,India,2019\n")
	writeSourceFile(t, cfg, "amazon_prime_titles.csv",
		"title,country,release_year\nA1,Canada,2017\n")
	writeSourceFile(t, cfg, "disney_plus_shows.csv",
		"title,country,year\nD1,United States,2016\n")
	// apple_tv, crunchyroll, hbo files absent

	loader := NewLoader(cfg, slog.Default())
	result := loader.LoadMerged(context.Background())

	assert.Len(t, result.Rows, 4)
	assert.Len(t, result.Warnings, 3)
	for _, w := range result.Warnings {
		assert.Equal(t, apperrors.ErrTypeSourceUnavailable, w.Type)
	}

	// Merge order follows the registry order.
	assert.Equal(t, domain.PlatformNetflix, result.Rows[0].Platform)
	assert.Equal(t, domain.PlatformAmazonPrime, result.Rows[2].Platform)
	assert.Equal(t, domain.PlatformDisneyPlus, result.Rows[3].Platform)
}

func TestLoadDetail_ParsesDurationGenresRating(t *testing.T) {
	cfg := testConfig(t)
	writeSourceFile(t, cfg, "netflix_titles.csv",
		"title,type,country,release_year,duration,listed_in,rating\n"+
			"Movie A,Movie,United States,2019,90 min,\"Dramas, Thrillers\",TV-MA\n"+
			"Show B,TV Show,Japan,2020,3 Seasons,Anime Series,TV-14\n"+
			"Movie C,Movie,France,2018,not a duration,Dramas,R\n")

	loader := NewLoader(cfg, slog.Default())
	result := loader.LoadDetail(context.Background())
	require.Len(t, result.Rows, 3)

	movie := result.Rows[0]
	require.NotNil(t, movie.RuntimeMinutes)
	assert.Equal(t, 90.0, *movie.RuntimeMinutes)
	assert.Nil(t, movie.SeasonCount)
	assert.Equal(t, []string{"Dramas", "Thrillers"}, movie.Genres)
	assert.Equal(t, "TV-MA", movie.Rating)

	show := result.Rows[1]
	require.NotNil(t, show.SeasonCount)
	assert.Equal(t, 3.0, *show.SeasonCount)
	assert.Nil(t, show.RuntimeMinutes)

	// Unparseable duration stays nil, never zero.
	broken := result.Rows[2]
	assert.Nil(t, broken.RuntimeMinutes)
	assert.Equal(t, "not a duration", broken.DurationRaw)
}

func TestLoadMerged_OmitsDetailColumns(t *testing.T) {
	cfg := testConfig(t)
	writeSourceFile(t, cfg, "netflix_titles.csv",
		"title,type,country,release_year,duration,listed_in,rating\n"+
			"Movie A,Movie,United States,2019,90 min,Dramas,TV-MA\n")

	loader := NewLoader(cfg, slog.Default())
	result := loader.LoadMerged(context.Background())
	require.NotEmpty(t, result.Rows)

	// The comparison table carries canonical columns only.
	row := result.Rows[0]
	assert.Nil(t, row.RuntimeMinutes)
	assert.Nil(t, row.Genres)
	assert.Empty(t, row.Rating)
}
