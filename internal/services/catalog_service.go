package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"ottpulse/internal/analytics"
	"ottpulse/internal/config"
	"ottpulse/internal/dataprocessing"
	apperrors "ottpulse/internal/errors"
	"ottpulse/internal/infrastructure"
	"ottpulse/pkg/contracts/domain"
)

const (
	tableMerged = "merged"
	tableDetail = "detail"
)

// cachedTable holds one loaded catalog table with the warnings absorbed
// while building it.
type cachedTable struct {
	rows     []domain.Title
	warnings []*apperrors.AppError
	loadedAt time.Time
}

// CatalogService loads the catalog tables once per process and serves the
// analytics queries over them. Loads go through singleflight so concurrent
// first callers share one read of the source files; the tables are immutable
// after load and safe for concurrent queries.
type CatalogService struct {
	config   *config.Config
	loader   *dataprocessing.Loader
	analyzer *analytics.Analyzer
	logger   *slog.Logger

	group  singleflight.Group
	mu     sync.RWMutex
	tables map[string]*cachedTable
}

// NewCatalogService creates a catalog service using the default logger.
func NewCatalogService(cfg *config.Config) *CatalogService {
	return NewCatalogServiceWithLogger(cfg, slog.Default())
}

// NewCatalogServiceWithLogger creates a catalog service with a specific logger.
func NewCatalogServiceWithLogger(cfg *config.Config, logger *slog.Logger) *CatalogService {
	if logger == nil {
		logger = slog.Default()
	}
	logger = infrastructure.WithComponent(logger, "catalog-service")

	logger.Info("CatalogService initialized",
		slog.String("data_dir", cfg.Data.Dir),
		slog.Int("sources", len(dataprocessing.Sources())))

	return &CatalogService{
		config:   cfg,
		loader:   dataprocessing.NewLoader(cfg, logger),
		analyzer: analytics.NewAnalyzer(logger),
		logger:   logger,
		tables:   make(map[string]*cachedTable),
	}
}

// Merged returns the cross-platform comparison table, loading it on first use.
func (s *CatalogService) Merged(ctx context.Context) ([]domain.Title, error) {
	t, err := s.table(ctx, tableMerged)
	if err != nil {
		return nil, err
	}
	return t.rows, nil
}

// Detail returns the single-platform detail table, loading it on first use.
func (s *CatalogService) Detail(ctx context.Context) ([]domain.Title, error) {
	t, err := s.table(ctx, tableDetail)
	if err != nil {
		return nil, err
	}
	return t.rows, nil
}

// Warnings returns the ingestion warnings absorbed while loading the named
// table, or nil if it has not been loaded yet.
func (s *CatalogService) Warnings(table string) []*apperrors.AppError {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if t, ok := s.tables[table]; ok {
		return t.warnings
	}
	return nil
}

func (s *CatalogService) table(ctx context.Context, name string) (*cachedTable, error) {
	s.mu.RLock()
	t, ok := s.tables[name]
	s.mu.RUnlock()
	if ok {
		return t, nil
	}

	v, err, _ := s.group.Do(name, func() (interface{}, error) {
		s.mu.RLock()
		cached, ok := s.tables[name]
		s.mu.RUnlock()
		if ok {
			return cached, nil
		}

		var result dataprocessing.LoadResult
		switch name {
		case tableDetail:
			result = s.loader.LoadDetail(ctx)
		default:
			result = s.loader.LoadMerged(ctx)
		}

		loaded := &cachedTable{
			rows:     result.Rows,
			warnings: result.Warnings,
			loadedAt: time.Now(),
		}

		catalogLoads.WithLabelValues(name).Inc()
		catalogRows.WithLabelValues(name).Set(float64(len(loaded.rows)))
		for _, w := range loaded.warnings {
			catalogWarnings.WithLabelValues(string(w.Type)).Inc()
		}

		s.logger.InfoContext(ctx, "catalog table loaded",
			slog.String("table", name),
			slog.Int("rows", len(loaded.rows)),
			slog.Int("warnings", len(loaded.warnings)))

		s.mu.Lock()
		s.tables[name] = loaded
		s.mu.Unlock()
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*cachedTable), nil
}

// DefaultCutoffYear exposes the configured recency cutoff for callers that
// do not supply one.
func (s *CatalogService) DefaultCutoffYear() int {
	return s.config.Analytics.DefaultCutoffYear
}

// LocalContentRatio runs the per-platform domestic ratio query over the
// merged table.
func (s *CatalogService) LocalContentRatio(ctx context.Context, filter analytics.LocalizationFilter) (analytics.LocalRatioSummary, error) {
	rows, err := s.Merged(ctx)
	if err != nil {
		return analytics.LocalRatioSummary{}, err
	}
	summary, err := s.analyzer.LocalContentRatio(ctx, rows, filter)
	observeQuery("local_content_ratio", err)
	return summary, err
}

// LocalizationTrend runs the per-(platform, year) ratio series over the
// merged table.
func (s *CatalogService) LocalizationTrend(ctx context.Context, filter analytics.LocalizationFilter) (analytics.TrendSummary, error) {
	rows, err := s.Merged(ctx)
	if err != nil {
		return analytics.TrendSummary{}, err
	}
	summary, err := s.analyzer.LocalizationTrend(ctx, rows, filter)
	observeQuery("localization_trend", err)
	return summary, err
}

// LocalizationGrowth runs the year-over-year ratio change query over the
// merged table.
func (s *CatalogService) LocalizationGrowth(ctx context.Context, filter analytics.LocalizationFilter) (analytics.GrowthSummary, error) {
	rows, err := s.Merged(ctx)
	if err != nil {
		return analytics.GrowthSummary{}, err
	}
	summary, err := s.analyzer.LocalizationGrowth(ctx, rows, filter)
	observeQuery("localization_growth", err)
	return summary, err
}

// RecencySplit partitions the detail table at the cutoff year.
func (s *CatalogService) RecencySplit(ctx context.Context, filter analytics.RecencyFilter) (analytics.RecencySummary, error) {
	rows, err := s.Detail(ctx)
	if err != nil {
		return analytics.RecencySummary{}, err
	}
	summary, err := s.analyzer.RecencySplit(ctx, rows, filter)
	observeQuery("recency_split", err)
	return summary, err
}

// VolumeTimeline counts detail-table titles per release year.
func (s *CatalogService) VolumeTimeline(ctx context.Context, filter analytics.RecencyFilter) (analytics.TimelineSummary, error) {
	rows, err := s.Detail(ctx)
	if err != nil {
		return analytics.TimelineSummary{}, err
	}
	summary, err := s.analyzer.VolumeTimeline(ctx, rows, filter, s.config.Analytics.MinTitleYear)
	observeQuery("volume_timeline", err)
	return summary, err
}

// ProductionByType counts detail-table titles per (year, content type).
func (s *CatalogService) ProductionByType(ctx context.Context) (analytics.ProductionSummary, error) {
	rows, err := s.Detail(ctx)
	if err != nil {
		return analytics.ProductionSummary{}, err
	}
	summary, err := s.analyzer.ProductionByType(ctx, rows)
	observeQuery("production_by_type", err)
	return summary, err
}

// YearStats describes the release-year distribution of the detail table.
func (s *CatalogService) YearStats(ctx context.Context, contentType domain.ContentType) (analytics.YearStatsSummary, error) {
	rows, err := s.Detail(ctx)
	if err != nil {
		return analytics.YearStatsSummary{}, err
	}
	summary, err := s.analyzer.YearStats(ctx, rows, contentType)
	observeQuery("year_stats", err)
	return summary, err
}

// CountrySourcing counts imported detail-table titles per origin country.
func (s *CatalogService) CountrySourcing(ctx context.Context, filter analytics.CountryFilter) (analytics.CountrySummary, error) {
	rows, err := s.Detail(ctx)
	if err != nil {
		return analytics.CountrySummary{}, err
	}
	summary, err := s.analyzer.CountrySourcing(ctx, rows, filter)
	observeQuery("country_sourcing", err)
	return summary, err
}

// SourcingHighlights summarizes the imported subset of the detail table.
func (s *CatalogService) SourcingHighlights(ctx context.Context, filter analytics.CountryFilter) (analytics.CountryHighlights, error) {
	rows, err := s.Detail(ctx)
	if err != nil {
		return analytics.CountryHighlights{}, err
	}
	summary, err := s.analyzer.SourcingHighlights(ctx, rows, filter)
	observeQuery("sourcing_highlights", err)
	return summary, err
}

// GenreByCountryTreemap builds the (country, genre) counts over the detail
// table.
func (s *CatalogService) GenreByCountryTreemap(ctx context.Context, filter analytics.TreemapFilter) (analytics.TreemapSummary, error) {
	rows, err := s.Detail(ctx)
	if err != nil {
		return analytics.TreemapSummary{}, err
	}
	summary, err := s.analyzer.GenreByCountryTreemap(ctx, rows, filter)
	observeQuery("genre_by_country_treemap", err)
	return summary, err
}

// RuntimeDistribution summarizes movie runtimes in the detail table.
func (s *CatalogService) RuntimeDistribution(ctx context.Context) (analytics.RuntimeSummary, error) {
	rows, err := s.Detail(ctx)
	if err != nil {
		return analytics.RuntimeSummary{}, err
	}
	summary, err := s.analyzer.RuntimeDistribution(ctx, rows)
	observeQuery("runtime_distribution", err)
	return summary, err
}

// SeasonDistribution builds the TV-show season histogram from the detail
// table.
func (s *CatalogService) SeasonDistribution(ctx context.Context) (analytics.SeasonSummary, error) {
	rows, err := s.Detail(ctx)
	if err != nil {
		return analytics.SeasonSummary{}, err
	}
	summary, err := s.analyzer.SeasonDistribution(ctx, rows)
	observeQuery("season_distribution", err)
	return summary, err
}

// RuntimeByRating reports per-rating runtime statistics from the detail
// table.
func (s *CatalogService) RuntimeByRating(ctx context.Context, filter analytics.RatingFilter) (analytics.RatingSummary, error) {
	rows, err := s.Detail(ctx)
	if err != nil {
		return analytics.RatingSummary{}, err
	}
	summary, err := s.analyzer.RuntimeByRating(ctx, rows, filter)
	observeQuery("runtime_by_rating", err)
	return summary, err
}

// GenreDecadeHeatmap cross-tabulates genres against decades from the detail
// table.
func (s *CatalogService) GenreDecadeHeatmap(ctx context.Context) (analytics.HeatmapSummary, error) {
	rows, err := s.Detail(ctx)
	if err != nil {
		return analytics.HeatmapSummary{}, err
	}
	summary, err := s.analyzer.GenreDecadeHeatmap(ctx, rows)
	observeQuery("genre_decade_heatmap", err)
	return summary, err
}
