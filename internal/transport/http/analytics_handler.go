package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"ottpulse/internal/analytics"
	apierrors "ottpulse/internal/errors"
	"ottpulse/pkg/contracts/domain"
)

// CatalogReader is the service surface the analytics handler needs. The
// concrete implementation is services.CatalogService.
type CatalogReader interface {
	DefaultCutoffYear() int
	LocalContentRatio(ctx context.Context, filter analytics.LocalizationFilter) (analytics.LocalRatioSummary, error)
	LocalizationTrend(ctx context.Context, filter analytics.LocalizationFilter) (analytics.TrendSummary, error)
	LocalizationGrowth(ctx context.Context, filter analytics.LocalizationFilter) (analytics.GrowthSummary, error)
	RecencySplit(ctx context.Context, filter analytics.RecencyFilter) (analytics.RecencySummary, error)
	VolumeTimeline(ctx context.Context, filter analytics.RecencyFilter) (analytics.TimelineSummary, error)
	ProductionByType(ctx context.Context) (analytics.ProductionSummary, error)
	YearStats(ctx context.Context, contentType domain.ContentType) (analytics.YearStatsSummary, error)
	CountrySourcing(ctx context.Context, filter analytics.CountryFilter) (analytics.CountrySummary, error)
	SourcingHighlights(ctx context.Context, filter analytics.CountryFilter) (analytics.CountryHighlights, error)
	GenreByCountryTreemap(ctx context.Context, filter analytics.TreemapFilter) (analytics.TreemapSummary, error)
	RuntimeDistribution(ctx context.Context) (analytics.RuntimeSummary, error)
	SeasonDistribution(ctx context.Context) (analytics.SeasonSummary, error)
	RuntimeByRating(ctx context.Context, filter analytics.RatingFilter) (analytics.RatingSummary, error)
	GenreDecadeHeatmap(ctx context.Context) (analytics.HeatmapSummary, error)
}

// AnalyticsHandler handles analytics query HTTP requests
type AnalyticsHandler struct {
	service      CatalogReader
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(service CatalogReader, logger *slog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		service:      service,
		logger:       logger,
		errorHandler: apierrors.NewErrorHandler(logger),
	}
}

// RegisterRoutes registers the analytics routes
func (h *AnalyticsHandler) RegisterRoutes(r chi.Router) {
	r.Route("/analytics", func(r chi.Router) {
		r.Get("/local-ratio", h.GetLocalRatio)
		r.Get("/localization-trend", h.GetLocalizationTrend)
		r.Get("/localization-growth", h.GetLocalizationGrowth)
		r.Get("/recency", h.GetRecency)
		r.Get("/volume-timeline", h.GetVolumeTimeline)
		r.Get("/production-by-type", h.GetProductionByType)
		r.Get("/year-stats", h.GetYearStats)
		r.Get("/country-sourcing", h.GetCountrySourcing)
		r.Get("/sourcing-highlights", h.GetSourcingHighlights)
		r.Get("/genre-treemap", h.GetGenreTreemap)
		r.Get("/runtime-distribution", h.GetRuntimeDistribution)
		r.Get("/season-distribution", h.GetSeasonDistribution)
		r.Get("/runtime-by-rating", h.GetRuntimeByRating)
		r.Get("/genre-decade-heatmap", h.GetGenreDecadeHeatmap)
	})
}

// localizationFilter parses year_from, year_to, and platforms query params.
func (h *AnalyticsHandler) localizationFilter(r *http.Request) (analytics.LocalizationFilter, *apierrors.APIError) {
	filter := analytics.LocalizationFilter{
		YearFrom: 2000,
		YearTo:   time.Now().Year(),
	}

	var apiErr *apierrors.APIError
	if v, err := intParam(r, "year_from", filter.YearFrom); err != nil {
		apiErr = err
	} else {
		filter.YearFrom = v
	}
	if v, err := intParam(r, "year_to", filter.YearTo); err != nil {
		apiErr = err
	} else {
		filter.YearTo = v
	}
	if apiErr != nil {
		return filter, apiErr
	}

	if raw := r.URL.Query().Get("platforms"); raw != "" {
		for _, name := range strings.Split(raw, ",") {
			name = strings.TrimSpace(name)
			if name != "" {
				filter.Platforms = append(filter.Platforms, domain.Platform(name))
			}
		}
	}
	return filter, nil
}

// recencyFilter parses cutoff_year and content_type query params, defaulting
// the cutoff from configuration.
func (h *AnalyticsHandler) recencyFilter(r *http.Request) (analytics.RecencyFilter, *apierrors.APIError) {
	filter := analytics.RecencyFilter{
		ContentType: contentTypeParam(r),
	}
	v, err := intParam(r, "cutoff_year", h.service.DefaultCutoffYear())
	if err != nil {
		return filter, err
	}
	filter.CutoffYear = v
	return filter, nil
}

// GetLocalRatio returns the per-platform domestic content ratio
func (h *AnalyticsHandler) GetLocalRatio(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter, apiErr := h.localizationFilter(r)
	if apiErr != nil {
		h.errorHandler.HandleError(w, r, apiErr)
		return
	}

	h.logger.InfoContext(ctx, "Getting local content ratio",
		slog.Int("year_from", filter.YearFrom),
		slog.Int("year_to", filter.YearTo))

	summary, err := h.service.LocalContentRatio(ctx, filter)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, summary)
}

// GetLocalizationTrend returns the per-(platform, year) ratio series
func (h *AnalyticsHandler) GetLocalizationTrend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter, apiErr := h.localizationFilter(r)
	if apiErr != nil {
		h.errorHandler.HandleError(w, r, apiErr)
		return
	}

	summary, err := h.service.LocalizationTrend(ctx, filter)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, summary)
}

// GetLocalizationGrowth returns the year-over-year ratio change series
func (h *AnalyticsHandler) GetLocalizationGrowth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter, apiErr := h.localizationFilter(r)
	if apiErr != nil {
		h.errorHandler.HandleError(w, r, apiErr)
		return
	}

	summary, err := h.service.LocalizationGrowth(ctx, filter)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, summary)
}

// GetRecency returns the recent/older split at the cutoff year
func (h *AnalyticsHandler) GetRecency(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter, apiErr := h.recencyFilter(r)
	if apiErr != nil {
		h.errorHandler.HandleError(w, r, apiErr)
		return
	}

	h.logger.InfoContext(ctx, "Getting recency split",
		slog.Int("cutoff_year", filter.CutoffYear))

	summary, err := h.service.RecencySplit(ctx, filter)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, summary)
}

// GetVolumeTimeline returns per-year title counts
func (h *AnalyticsHandler) GetVolumeTimeline(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter, apiErr := h.recencyFilter(r)
	if apiErr != nil {
		h.errorHandler.HandleError(w, r, apiErr)
		return
	}

	summary, err := h.service.VolumeTimeline(ctx, filter)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, summary)
}

// GetProductionByType returns per-(year, content type) counts
func (h *AnalyticsHandler) GetProductionByType(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.ProductionByType(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, summary)
}

// GetYearStats returns release-year distribution statistics
func (h *AnalyticsHandler) GetYearStats(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.YearStats(r.Context(), contentTypeParam(r))
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, summary)
}

// GetCountrySourcing returns per-country counts of imported titles
func (h *AnalyticsHandler) GetCountrySourcing(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	minCount, apiErr := intParam(r, "min_count", 1)
	if apiErr != nil {
		h.errorHandler.HandleError(w, r, apiErr)
		return
	}
	filter := analytics.CountryFilter{
		ContentType: contentTypeParam(r),
		MinCount:    minCount,
	}

	summary, err := h.service.CountrySourcing(ctx, filter)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, summary)
}

// GetSourcingHighlights returns headline numbers for the imported subset
func (h *AnalyticsHandler) GetSourcingHighlights(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	minCount, apiErr := intParam(r, "min_count", 1)
	if apiErr != nil {
		h.errorHandler.HandleError(w, r, apiErr)
		return
	}
	filter := analytics.CountryFilter{
		ContentType: contentTypeParam(r),
		MinCount:    minCount,
	}

	summary, err := h.service.SourcingHighlights(ctx, filter)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, summary)
}

// GetGenreTreemap returns (country, genre) counts for the top countries
func (h *AnalyticsHandler) GetGenreTreemap(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	topCountries, apiErr := intParam(r, "top_countries", 10)
	if apiErr != nil {
		h.errorHandler.HandleError(w, r, apiErr)
		return
	}
	filter := analytics.TreemapFilter{
		ContentType:  contentTypeParam(r),
		TopCountries: topCountries,
	}

	summary, err := h.service.GenreByCountryTreemap(ctx, filter)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, summary)
}

// GetRuntimeDistribution returns the movie runtime sample and spread
func (h *AnalyticsHandler) GetRuntimeDistribution(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.RuntimeDistribution(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, summary)
}

// GetSeasonDistribution returns the TV show season histogram
func (h *AnalyticsHandler) GetSeasonDistribution(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.SeasonDistribution(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, summary)
}

// GetRuntimeByRating returns per-rating runtime statistics
func (h *AnalyticsHandler) GetRuntimeByRating(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	topRatings, apiErr := intParam(r, "top_ratings", 10)
	if apiErr != nil {
		h.errorHandler.HandleError(w, r, apiErr)
		return
	}

	summary, err := h.service.RuntimeByRating(ctx, analytics.RatingFilter{TopRatings: topRatings})
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, summary)
}

// GetGenreDecadeHeatmap returns the genre/decade count matrix
func (h *AnalyticsHandler) GetGenreDecadeHeatmap(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.GenreDecadeHeatmap(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, summary)
}

// intParam parses an optional integer query parameter.
func intParam(r *http.Request, name string, defaultValue int) (int, *apierrors.APIError) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apierrors.New(
			http.StatusBadRequest,
			"INVALID_PARAMETER",
			"Parameter "+name+" must be an integer",
		)
	}
	return v, nil
}

// contentTypeParam parses the optional content_type query parameter. An
// absent value means no type filter; unrecognized values collapse to
// Unknown, matching ingestion.
func contentTypeParam(r *http.Request) domain.ContentType {
	raw := r.URL.Query().Get("content_type")
	if raw == "" {
		return ""
	}
	return domain.ParseContentType(raw)
}
