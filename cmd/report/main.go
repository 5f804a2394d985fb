package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"ottpulse/internal/analytics"
	"ottpulse/internal/config"
	"ottpulse/internal/exporter"
	"ottpulse/internal/infrastructure"
	"ottpulse/internal/services"
	"ottpulse/pkg/contracts/domain"
)

func main() {
	outputDir := flag.String("out", "reports", "output directory for summary reports")
	format := flag.String("format", "csv", "output format: csv, json, or xlsx")
	yearFrom := flag.Int("year-from", 2000, "first release year for localization queries")
	yearTo := flag.Int("year-to", time.Now().Year(), "last release year for localization queries")
	cutoffYear := flag.Int("cutoff", 0, "recency cutoff year (defaults to configuration)")
	minCount := flag.Int("min-count", 1, "minimum titles per country in sourcing report")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	if _, err := infrastructure.InitializeLogger(cfg.Logging); err != nil {
		slog.Error("Failed to initialize logger", "error", err)
		os.Exit(1)
	}
	defer infrastructure.CloseLogFile()

	ctx := infrastructure.EnsureTraceID(context.Background())
	logger := infrastructure.LoggerWithContext(ctx)
	catalog := services.NewCatalogServiceWithLogger(cfg, logger)

	if *cutoffYear == 0 {
		*cutoffYear = catalog.DefaultCutoffYear()
	}

	tables, err := buildTables(ctx, catalog, *yearFrom, *yearTo, *cutoffYear, *minCount)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to build summary tables", "error", err)
		os.Exit(1)
	}

	logger.InfoContext(ctx, "Writing summary reports",
		slog.String("format", *format),
		slog.String("out", *outputDir),
		slog.Int("tables", len(tables)))

	switch *format {
	case "csv":
		err = exporter.NewCSVWriter(*outputDir).WriteTables(tables)
	case "json":
		err = exporter.NewJSONWriter(*outputDir).WriteTables(tables)
	case "xlsx":
		err = exporter.NewExcelWriter(*outputDir).WriteWorkbook("catalog_summary", tables)
	default:
		logger.Error("Unknown format", slog.String("format", *format))
		os.Exit(1)
	}
	if err != nil {
		logger.ErrorContext(ctx, "Failed to write reports", "error", err)
		os.Exit(1)
	}

	logger.InfoContext(ctx, "Reports written successfully")
}

// buildTables runs every query and flattens the summaries. Queries that
// report no data still contribute a header-only table.
func buildTables(ctx context.Context, catalog *services.CatalogService, yearFrom, yearTo, cutoffYear, minCount int) ([]exporter.Table, error) {
	locFilter := analytics.LocalizationFilter{YearFrom: yearFrom, YearTo: yearTo}
	recFilter := analytics.RecencyFilter{CutoffYear: cutoffYear}
	countryFilter := analytics.CountryFilter{MinCount: minCount}

	var tables []exporter.Table

	ratio, err := catalog.LocalContentRatio(ctx, locFilter)
	if err != nil {
		return nil, err
	}
	tables = append(tables, exporter.LocalRatioTable(ratio))

	trend, err := catalog.LocalizationTrend(ctx, locFilter)
	if err != nil {
		return nil, err
	}
	tables = append(tables, exporter.TrendTable(trend))

	growth, err := catalog.LocalizationGrowth(ctx, locFilter)
	if err != nil {
		return nil, err
	}
	tables = append(tables, exporter.GrowthTable(growth))

	recency, err := catalog.RecencySplit(ctx, recFilter)
	if err != nil {
		return nil, err
	}
	tables = append(tables, exporter.RecencyTable(recency))

	timeline, err := catalog.VolumeTimeline(ctx, recFilter)
	if err != nil {
		return nil, err
	}
	tables = append(tables, exporter.TimelineTable(timeline))

	production, err := catalog.ProductionByType(ctx)
	if err != nil {
		return nil, err
	}
	tables = append(tables, exporter.ProductionTable(production))

	yearStats, err := catalog.YearStats(ctx, domain.ContentType(""))
	if err != nil {
		return nil, err
	}
	tables = append(tables, exporter.YearStatsTable(yearStats))

	countries, err := catalog.CountrySourcing(ctx, countryFilter)
	if err != nil {
		return nil, err
	}
	tables = append(tables, exporter.CountryTable(countries))

	highlights, err := catalog.SourcingHighlights(ctx, countryFilter)
	if err != nil {
		return nil, err
	}
	tables = append(tables, exporter.HighlightsTable(highlights))

	treemap, err := catalog.GenreByCountryTreemap(ctx, analytics.TreemapFilter{TopCountries: 10})
	if err != nil {
		return nil, err
	}
	tables = append(tables, exporter.TreemapTable(treemap))

	runtime, err := catalog.RuntimeDistribution(ctx)
	if err != nil {
		return nil, err
	}
	tables = append(tables, exporter.RuntimeTable(runtime))

	seasons, err := catalog.SeasonDistribution(ctx)
	if err != nil {
		return nil, err
	}
	tables = append(tables, exporter.SeasonTable(seasons))

	ratings, err := catalog.RuntimeByRating(ctx, analytics.RatingFilter{TopRatings: 10})
	if err != nil {
		return nil, err
	}
	tables = append(tables, exporter.RatingTable(ratings))

	heatmap, err := catalog.GenreDecadeHeatmap(ctx)
	if err != nil {
		return nil, err
	}
	tables = append(tables, exporter.HeatmapTable(heatmap))

	return tables, nil
}
