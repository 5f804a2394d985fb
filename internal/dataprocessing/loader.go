package dataprocessing

import (
	"context"
	"log/slog"

	"ottpulse/internal/config"
	apperrors "ottpulse/internal/errors"
	"ottpulse/pkg/contracts/domain"
)

// LoadResult carries a normalized table together with the per-source
// warnings accumulated while building it. Warnings accompany a best-effort
// result; they never replace it.
type LoadResult struct {
	Rows     []domain.Title
	Warnings []*apperrors.AppError
}

// Loader reads catalog source files and normalizes them into domain.Title
// rows. It is stateless; callers cache the resulting tables.
type Loader struct {
	cfg     *config.Config
	logger  *slog.Logger
	aliases []string
}

// NewLoader creates a loader using the configured home-market aliases.
func NewLoader(cfg *config.Config, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		cfg:     cfg,
		logger:  logger,
		aliases: cfg.Analytics.HomeMarketAliases,
	}
}

// LoadSource loads and normalizes a single source. An unreadable file or a
// schema mismatch yields an empty table plus a warning; the only hard error
// is an unknown source ID.
func (l *Loader) LoadSource(ctx context.Context, id SourceID) (LoadResult, error) {
	spec, ok := LookupSource(id)
	if !ok {
		return LoadResult{}, apperrors.NewNotFoundError("source " + string(id))
	}
	rows, warnings := l.loadOne(ctx, spec, false)
	return LoadResult{Rows: rows, Warnings: warnings}, nil
}

// LoadMerged concatenates every registered source into the unified
// comparison table, retaining only the canonical common columns. Sources
// that fail to load contribute nothing; the merge proceeds with the rest.
func (l *Loader) LoadMerged(ctx context.Context) LoadResult {
	var result LoadResult
	for _, spec := range Sources() {
		rows, warnings := l.loadOne(ctx, spec, false)
		result.Rows = append(result.Rows, rows...)
		result.Warnings = append(result.Warnings, warnings...)
	}

	l.logger.InfoContext(ctx, "merged catalog sources",
		slog.Int("rows", len(result.Rows)),
		slog.Int("warnings", len(result.Warnings)))

	return result
}

// LoadDetail loads the full-detail table (durations, genres, ratings) from
// the Netflix source. Recency, country, genre and distribution queries run
// against this table.
func (l *Loader) LoadDetail(ctx context.Context) LoadResult {
	spec := sourceRegistry[SourceNetflix]
	rows, warnings := l.loadOne(ctx, spec, true)
	return LoadResult{Rows: rows, Warnings: warnings}
}

// loadOne reads one source file and maps it into canonical rows. detail
// additionally parses duration, genre, and rating columns when present.
func (l *Loader) loadOne(ctx context.Context, spec SourceSpec, detail bool) ([]domain.Title, []*apperrors.AppError) {
	path := l.cfg.SourcePath(string(spec.ID), spec.File)

	tbl, err := readTable(path)
	if err != nil {
		l.logger.WarnContext(ctx, "catalog source unavailable",
			slog.String("source", string(spec.ID)),
			slog.String("path", path),
			slog.String("error", err.Error()))
		return nil, []*apperrors.AppError{apperrors.NewSourceUnavailableError(string(spec.ID), err)}
	}

	// A source missing any required canonical column is excluded from the
	// merge entirely rather than partially included with nulls.
	for _, col := range []string{"title", spec.YearColumn, spec.CountryColumn} {
		if !tbl.hasColumn(col) {
			l.logger.WarnContext(ctx, "catalog source schema mismatch",
				slog.String("source", string(spec.ID)),
				slog.String("missing_column", col))
			return nil, []*apperrors.AppError{apperrors.NewSchemaMismatchError(string(spec.ID), col)}
		}
	}

	hasType := tbl.hasColumn("type")
	titles := make([]domain.Title, 0, len(tbl.rows))
	droppedYears := 0

	for _, row := range tbl.rows {
		if len(row) == 0 {
			continue
		}

		year, ok := coerceYear(tbl.cell(row, spec.YearColumn))
		if !ok {
			droppedYears++
			continue
		}

		countryRaw := tbl.cell(row, spec.CountryColumn)
		if spec.BracketedCountries {
			countryRaw = primaryCountry(countryRaw, true)
		}
		if countryRaw == "" {
			countryRaw = domain.UnknownCountry
		}

		contentType := domain.ContentTypeUnknown
		if hasType {
			contentType = domain.ParseContentType(tbl.cell(row, "type"))
		}

		title := domain.Title{
			Title:         tbl.cell(row, "title"),
			ContentType:   contentType,
			ReleaseYear:   year,
			HasYear:       true,
			CountryRaw:    countryRaw,
			OriginCountry: primaryCountry(countryRaw, false),
			IsDomestic:    isDomestic(countryRaw, l.aliases),
			Platform:      spec.Platform,
		}

		if detail {
			l.parseDetailColumns(tbl, row, &title)
		}

		titles = append(titles, title)
	}

	l.logger.InfoContext(ctx, "loaded catalog source",
		slog.String("source", string(spec.ID)),
		slog.Int("rows", len(titles)),
		slog.Int("dropped_year_rows", droppedYears))

	return titles, nil
}

// parseDetailColumns fills the duration, genre, and rating fields when the
// source exposes them. Runtime applies to movies only, season count to TV
// shows only; the two never coexist on one row.
func (l *Loader) parseDetailColumns(tbl *rawTable, row []string, title *domain.Title) {
	if tbl.hasColumn("duration") {
		title.DurationRaw = tbl.cell(row, "duration")
		switch title.ContentType {
		case domain.ContentTypeMovie:
			title.RuntimeMinutes = parseRuntimeMinutes(title.DurationRaw)
		case domain.ContentTypeTVShow:
			title.SeasonCount = parseSeasonCount(title.DurationRaw)
		}
	}
	if tbl.hasColumn("listed_in") {
		title.Genres = splitGenres(tbl.cell(row, "listed_in"))
	}
	if tbl.hasColumn("rating") {
		title.Rating = tbl.cell(row, "rating")
	}
}
