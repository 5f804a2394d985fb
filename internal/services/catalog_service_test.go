package services

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ottpulse/internal/analytics"
	"ottpulse/internal/config"
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

func writeNetflixFixture(t *testing.T, cfg *config.Config) {
	t.Helper()
	content := "title,type,country,release_year,duration,listed_in,rating\n" +
		"Movie A,Movie,United States,2019,90 min,Dramas,TV-MA\n" +
		"Show B,TV Show,Japan,2016,2 Seasons,Anime Series,TV-14\n" +
		"Movie C,Movie,India,2012,110 min,\"Dramas, International Movies\",R\n"
	path := filepath.Join(cfg.Data.Dir, "netflix_titles.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestCatalogService_DetailLoadsOnce(t *testing.T) {
	cfg := testConfig(t)
	writeNetflixFixture(t, cfg)

	svc := NewCatalogServiceWithLogger(cfg, slog.Default())
	ctx := context.Background()

	first, err := svc.Detail(ctx)
	require.NoError(t, err)
	require.Len(t, first, 3)

	// Removing the file after the first load must not matter: the table is
	// cached for the life of the process.
	require.NoError(t, os.Remove(filepath.Join(cfg.Data.Dir, "netflix_titles.csv")))

	second, err := svc.Detail(ctx)
	require.NoError(t, err)
	assert.Len(t, second, 3)
}

func TestCatalogService_ConcurrentFirstLoad(t *testing.T) {
	cfg := testConfig(t)
	writeNetflixFixture(t, cfg)

	svc := NewCatalogServiceWithLogger(cfg, slog.Default())
	ctx := context.Background()

	var wg sync.WaitGroup
	results := make([][]int, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rows, err := svc.Detail(ctx)
			assert.NoError(t, err)
			results[i] = []int{len(rows)}
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, []int{3}, r)
	}
}

func TestCatalogService_WarningsRetained(t *testing.T) {
	cfg := testConfig(t)
	// No source files at all: every source contributes a warning.

	svc := NewCatalogServiceWithLogger(cfg, slog.Default())
	rows, err := svc.Merged(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.Len(t, svc.Warnings("merged"), 6)
	assert.Nil(t, svc.Warnings("detail"))
}

func TestCatalogService_QueriesOverDetail(t *testing.T) {
	cfg := testConfig(t)
	writeNetflixFixture(t, cfg)

	svc := NewCatalogServiceWithLogger(cfg, slog.Default())
	ctx := context.Background()

	recency, err := svc.RecencySplit(ctx, analytics.RecencyFilter{CutoffYear: 2015})
	require.NoError(t, err)
	assert.Equal(t, 2, recency.RecentCount)
	assert.Equal(t, 1, recency.OlderCount)

	runtime, err := svc.RuntimeDistribution(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, runtime.Count)
	assert.InDelta(t, 100.0, runtime.Mean, 1e-9)

	seasons, err := svc.SeasonDistribution(ctx)
	require.NoError(t, err)
	require.Len(t, seasons.Buckets, 1)
	assert.Equal(t, 2, seasons.Buckets[0].Seasons)

	countries, err := svc.CountrySourcing(ctx, analytics.CountryFilter{MinCount: 1})
	require.NoError(t, err)
	require.Len(t, countries.Countries, 2)
}

func TestCatalogService_DefaultCutoffYear(t *testing.T) {
	svc := NewCatalogServiceWithLogger(testConfig(t), slog.Default())
	assert.Equal(t, 2015, svc.DefaultCutoffYear())
}
