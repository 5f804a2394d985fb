package analytics

import (
	"context"
	"log/slog"
	"sort"

	"ottpulse/pkg/contracts/domain"
)

// RecencySplit partitions the filtered catalog at the cutoff year. A title
// is recent only when its release year is strictly greater than the cutoff;
// titles released in the cutoff year itself belong to the older bucket.
func (a *Analyzer) RecencySplit(ctx context.Context, rows []domain.Title, filter RecencyFilter) (RecencySummary, error) {
	if err := checkFilter(filter); err != nil {
		return RecencySummary{}, err
	}

	var years []float64
	summary := RecencySummary{}

	for _, t := range rows {
		if !matchesType(t, filter.ContentType) {
			continue
		}
		if t.ReleaseYear > filter.CutoffYear {
			summary.RecentCount++
		} else {
			summary.OlderCount++
		}
		years = append(years, float64(t.ReleaseYear))
	}

	if len(years) == 0 {
		return RecencySummary{NoData: true}, nil
	}

	summary.RecentShare = ratio(summary.RecentCount, len(years))
	summary.MedianYear = median(years)
	summary.MeanYear = mean(years)

	a.logger.DebugContext(ctx, "computed recency split",
		slog.Int("recent", summary.RecentCount),
		slog.Int("older", summary.OlderCount))

	return summary, nil
}

// VolumeTimeline counts titles per release year, flagging each year as
// recent or older relative to the cutoff. Years at or below minYear are
// excluded as catalog noise.
func (a *Analyzer) VolumeTimeline(ctx context.Context, rows []domain.Title, filter RecencyFilter, minYear int) (TimelineSummary, error) {
	if err := checkFilter(filter); err != nil {
		return TimelineSummary{}, err
	}

	perYear := make(map[int]int)
	for _, t := range rows {
		if !matchesType(t, filter.ContentType) {
			continue
		}
		if t.ReleaseYear <= minYear {
			continue
		}
		perYear[t.ReleaseYear]++
	}

	if len(perYear) == 0 {
		return TimelineSummary{NoData: true}, nil
	}

	summary := TimelineSummary{Points: make([]TimelinePoint, 0, len(perYear))}
	for year, count := range perYear {
		summary.Points = append(summary.Points, TimelinePoint{
			Year:   year,
			Count:  count,
			Recent: year > filter.CutoffYear,
		})
	}
	sort.Slice(summary.Points, func(i, j int) bool {
		return summary.Points[i].Year < summary.Points[j].Year
	})

	return summary, nil
}

// ProductionByType counts titles per (year, content type) for years after
// 2000, the window the production swimlane renders.
func (a *Analyzer) ProductionByType(ctx context.Context, rows []domain.Title) (ProductionSummary, error) {
	type key struct {
		year        int
		contentType domain.ContentType
	}
	cells := make(map[key]int)

	for _, t := range rows {
		if t.ReleaseYear <= 2000 {
			continue
		}
		cells[key{year: t.ReleaseYear, contentType: t.ContentType}]++
	}

	if len(cells) == 0 {
		return ProductionSummary{NoData: true}, nil
	}

	summary := ProductionSummary{Points: make([]TypeYearPoint, 0, len(cells))}
	for k, count := range cells {
		summary.Points = append(summary.Points, TypeYearPoint{
			Year:        k.year,
			ContentType: k.contentType,
			Count:       count,
		})
	}
	sort.Slice(summary.Points, func(i, j int) bool {
		if summary.Points[i].Year != summary.Points[j].Year {
			return summary.Points[i].Year < summary.Points[j].Year
		}
		return summary.Points[i].ContentType < summary.Points[j].ContentType
	})

	return summary, nil
}

// YearStats computes the descriptive statistics of the release-year
// distribution: sample standard deviation, range, mode, and quartiles.
func (a *Analyzer) YearStats(ctx context.Context, rows []domain.Title, contentType domain.ContentType) (YearStatsSummary, error) {
	var years []float64
	var yearInts []int

	for _, t := range rows {
		if !matchesType(t, contentType) {
			continue
		}
		years = append(years, float64(t.ReleaseYear))
		yearInts = append(yearInts, t.ReleaseYear)
	}

	if len(years) == 0 {
		return YearStatsSummary{NoData: true}, nil
	}

	minYear, maxYear := yearInts[0], yearInts[0]
	for _, y := range yearInts {
		if y < minYear {
			minYear = y
		}
		if y > maxYear {
			maxYear = y
		}
	}

	return YearStatsSummary{
		StdDev:   sampleStdDev(years),
		MinYear:  minYear,
		MaxYear:  maxYear,
		ModeYear: modeInt(yearInts),
		Q1:       quantile(years, 0.25),
		Q2:       quantile(years, 0.50),
		Q3:       quantile(years, 0.75),
	}, nil
}
