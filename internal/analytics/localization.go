package analytics

import (
	"context"
	"log/slog"
	"sort"

	"ottpulse/pkg/contracts/domain"
)

// LocalContentRatio computes, per platform, the share of catalog titles
// produced in the home market within the filtered year range. Rows are
// sorted by ratio descending; equal ratios fall back to platform name
// ascending so the ordering is stable.
func (a *Analyzer) LocalContentRatio(ctx context.Context, rows []domain.Title, filter LocalizationFilter) (LocalRatioSummary, error) {
	if err := checkFilter(filter); err != nil {
		return LocalRatioSummary{}, err
	}

	set := platformSet(filter.Platforms)

	type counts struct {
		domestic int
		total    int
	}
	perPlatform := make(map[domain.Platform]*counts)

	for _, t := range rows {
		if t.ReleaseYear < filter.YearFrom || t.ReleaseYear > filter.YearTo {
			continue
		}
		if !inPlatformSet(set, t.Platform) {
			continue
		}
		c := perPlatform[t.Platform]
		if c == nil {
			c = &counts{}
			perPlatform[t.Platform] = c
		}
		c.total++
		if t.IsDomestic {
			c.domestic++
		}
	}

	if len(perPlatform) == 0 {
		return LocalRatioSummary{NoData: true}, nil
	}

	summary := LocalRatioSummary{Platforms: make([]PlatformRatio, 0, len(perPlatform))}
	for platform, c := range perPlatform {
		summary.Platforms = append(summary.Platforms, PlatformRatio{
			Platform:      platform,
			Ratio:         ratio(c.domestic, c.total),
			DomesticCount: c.domestic,
			TotalCount:    c.total,
		})
	}

	sort.Slice(summary.Platforms, func(i, j int) bool {
		if summary.Platforms[i].Ratio != summary.Platforms[j].Ratio {
			return summary.Platforms[i].Ratio > summary.Platforms[j].Ratio
		}
		return summary.Platforms[i].Platform < summary.Platforms[j].Platform
	})

	a.logger.DebugContext(ctx, "computed local content ratio",
		slog.Int("platforms", len(summary.Platforms)))

	return summary, nil
}

// LocalizationTrend computes the per-(platform, year) domestic ratio series
// within the filtered range. Years without titles for a platform yield no
// point; the series is not zero-filled.
func (a *Analyzer) LocalizationTrend(ctx context.Context, rows []domain.Title, filter LocalizationFilter) (TrendSummary, error) {
	if err := checkFilter(filter); err != nil {
		return TrendSummary{}, err
	}

	set := platformSet(filter.Platforms)

	type key struct {
		platform domain.Platform
		year     int
	}
	type counts struct {
		domestic int
		total    int
	}
	cells := make(map[key]*counts)

	for _, t := range rows {
		if t.ReleaseYear < filter.YearFrom || t.ReleaseYear > filter.YearTo {
			continue
		}
		if !inPlatformSet(set, t.Platform) {
			continue
		}
		k := key{platform: t.Platform, year: t.ReleaseYear}
		c := cells[k]
		if c == nil {
			c = &counts{}
			cells[k] = c
		}
		c.total++
		if t.IsDomestic {
			c.domestic++
		}
	}

	if len(cells) == 0 {
		return TrendSummary{NoData: true}, nil
	}

	summary := TrendSummary{Points: make([]TrendPoint, 0, len(cells))}
	for k, c := range cells {
		summary.Points = append(summary.Points, TrendPoint{
			Platform:      k.platform,
			Year:          k.year,
			Ratio:         ratio(c.domestic, c.total),
			DomesticCount: c.domestic,
			TotalCount:    c.total,
		})
	}

	sort.Slice(summary.Points, func(i, j int) bool {
		if summary.Points[i].Platform != summary.Points[j].Platform {
			return summary.Points[i].Platform < summary.Points[j].Platform
		}
		return summary.Points[i].Year < summary.Points[j].Year
	})

	return summary, nil
}

// LocalizationGrowth derives the year-over-year percent change of each
// platform's domestic ratio from the trend pivot. The first observation of
// a platform produces no point; across a gap the change is computed against
// the last year the platform appeared in. A zero previous ratio maps to a
// zero change rather than a division error.
func (a *Analyzer) LocalizationGrowth(ctx context.Context, rows []domain.Title, filter LocalizationFilter) (GrowthSummary, error) {
	trend, err := a.LocalizationTrend(ctx, rows, filter)
	if err != nil {
		return GrowthSummary{}, err
	}
	if trend.NoData {
		return GrowthSummary{NoData: true}, nil
	}

	// Trend points arrive grouped by platform, years ascending.
	summary := GrowthSummary{}
	for i := 1; i < len(trend.Points); i++ {
		prev, curr := trend.Points[i-1], trend.Points[i]
		if prev.Platform != curr.Platform {
			continue
		}
		change := 0.0
		if prev.Ratio != 0 {
			change = (curr.Ratio - prev.Ratio) / prev.Ratio * 100
		}
		summary.Points = append(summary.Points, GrowthPoint{
			Platform:      curr.Platform,
			Year:          curr.Year,
			PrevYear:      prev.Year,
			ChangePercent: change,
		})
	}

	if len(summary.Points) == 0 {
		return GrowthSummary{NoData: true}, nil
	}

	return summary, nil
}
