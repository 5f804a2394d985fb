package analytics

import (
	"context"
	"log/slog"
	"sort"

	"ottpulse/pkg/contracts/domain"
)

// RuntimeDistribution collects movie runtimes in minutes and reports their
// spread. Titles without a parseable runtime are skipped.
func (a *Analyzer) RuntimeDistribution(ctx context.Context, rows []domain.Title) (RuntimeSummary, error) {
	var values []float64
	for _, t := range rows {
		if !t.IsMovie() || t.RuntimeMinutes == nil {
			continue
		}
		values = append(values, *t.RuntimeMinutes)
	}

	if len(values) == 0 {
		return RuntimeSummary{NoData: true}, nil
	}

	minVal, maxVal := values[0], values[0]
	for _, v := range values {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}

	return RuntimeSummary{
		Count:  len(values),
		Mean:   mean(values),
		Min:    minVal,
		Max:    maxVal,
		Values: values,
	}, nil
}

// SeasonDistribution builds a discrete histogram of season counts across
// TV shows, one bucket per distinct count.
func (a *Analyzer) SeasonDistribution(ctx context.Context, rows []domain.Title) (SeasonSummary, error) {
	counts := make(map[int]int)
	for _, t := range rows {
		if !t.IsTVShow() || t.SeasonCount == nil {
			continue
		}
		counts[int(*t.SeasonCount)]++
	}

	if len(counts) == 0 {
		return SeasonSummary{NoData: true}, nil
	}

	summary := SeasonSummary{Buckets: make([]SeasonBucket, 0, len(counts))}
	for seasons, count := range counts {
		summary.Buckets = append(summary.Buckets, SeasonBucket{Seasons: seasons, Count: count})
	}
	sort.Slice(summary.Buckets, func(i, j int) bool {
		return summary.Buckets[i].Seasons < summary.Buckets[j].Seasons
	})

	return summary, nil
}

// RuntimeByRating reports runtime statistics per maturity rating for the
// top N ratings by movie count. Ties between ratings with equal counts
// order alphabetically.
func (a *Analyzer) RuntimeByRating(ctx context.Context, rows []domain.Title, filter RatingFilter) (RatingSummary, error) {
	if err := checkFilter(filter); err != nil {
		return RatingSummary{}, err
	}

	perRating := make(map[string][]float64)
	for _, t := range rows {
		if !t.IsMovie() || t.RuntimeMinutes == nil || t.Rating == "" {
			continue
		}
		perRating[t.Rating] = append(perRating[t.Rating], *t.RuntimeMinutes)
	}

	if len(perRating) == 0 {
		return RatingSummary{NoData: true}, nil
	}

	ratings := make([]string, 0, len(perRating))
	for rating := range perRating {
		ratings = append(ratings, rating)
	}
	sort.Slice(ratings, func(i, j int) bool {
		ni, nj := len(perRating[ratings[i]]), len(perRating[ratings[j]])
		if ni != nj {
			return ni > nj
		}
		return ratings[i] < ratings[j]
	})
	if len(ratings) > filter.TopRatings {
		ratings = ratings[:filter.TopRatings]
	}

	summary := RatingSummary{Ratings: make([]RatingRuntime, 0, len(ratings))}
	for _, rating := range ratings {
		values := perRating[rating]
		minVal, maxVal := values[0], values[0]
		for _, v := range values {
			if v < minVal {
				minVal = v
			}
			if v > maxVal {
				maxVal = v
			}
		}
		summary.Ratings = append(summary.Ratings, RatingRuntime{
			Rating: rating,
			Count:  len(values),
			Mean:   mean(values),
			Median: median(values),
			Q1:     quantile(values, 0.25),
			Q3:     quantile(values, 0.75),
			Min:    minVal,
			Max:    maxVal,
		})
	}

	a.logger.DebugContext(ctx, "computed runtime by rating",
		slog.Int("ratings", len(summary.Ratings)))

	return summary, nil
}

// GenreDecadeHeatmap cross-tabulates the ten most frequent genres against
// release decades from 1980 on. The count matrix is zero filled so every
// genre row spans every decade column.
func (a *Analyzer) GenreDecadeHeatmap(ctx context.Context, rows []domain.Title) (HeatmapSummary, error) {
	const (
		minDecade = 1980
		topGenres = 10
	)

	type cell struct {
		genre  string
		decade int
	}
	cells := make(map[cell]int)
	genreTotals := make(map[string]int)
	decadeSet := make(map[int]bool)

	for _, t := range rows {
		decade := (t.ReleaseYear / 10) * 10
		if decade < minDecade {
			continue
		}
		for _, genre := range t.Genres {
			cells[cell{genre: genre, decade: decade}]++
			genreTotals[genre]++
			decadeSet[decade] = true
		}
	}

	if len(cells) == 0 {
		return HeatmapSummary{NoData: true}, nil
	}

	genres := make([]string, 0, len(genreTotals))
	for genre := range genreTotals {
		genres = append(genres, genre)
	}
	sort.Slice(genres, func(i, j int) bool {
		if genreTotals[genres[i]] != genreTotals[genres[j]] {
			return genreTotals[genres[i]] > genreTotals[genres[j]]
		}
		return genres[i] < genres[j]
	})
	if len(genres) > topGenres {
		genres = genres[:topGenres]
	}

	decades := make([]int, 0, len(decadeSet))
	for decade := range decadeSet {
		decades = append(decades, decade)
	}
	sort.Ints(decades)

	counts := make([][]int, len(genres))
	for i, genre := range genres {
		counts[i] = make([]int, len(decades))
		for j, decade := range decades {
			counts[i][j] = cells[cell{genre: genre, decade: decade}]
		}
	}

	return HeatmapSummary{
		Genres:  genres,
		Decades: decades,
		Counts:  counts,
	}, nil
}
