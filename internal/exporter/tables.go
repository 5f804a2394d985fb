package exporter

import (
	"strconv"

	"ottpulse/internal/analytics"
)

// Table is a flattened summary ready for any writer: ordered headers and
// string records. An empty Records slice means the query reported no data.
type Table struct {
	Name    string
	Headers []string
	Records [][]string
}

// LocalRatioTable flattens the per-platform domestic ratio summary.
func LocalRatioTable(s analytics.LocalRatioSummary) Table {
	t := Table{
		Name:    "local_content_ratio",
		Headers: []string{"platform", "ratio", "domestic_count", "total_count"},
	}
	for _, p := range s.Platforms {
		t.Records = append(t.Records, []string{
			string(p.Platform),
			formatRatio(p.Ratio),
			formatInt(p.DomesticCount),
			formatInt(p.TotalCount),
		})
	}
	return t
}

// TrendTable flattens the per-(platform, year) ratio series.
func TrendTable(s analytics.TrendSummary) Table {
	t := Table{
		Name:    "localization_trend",
		Headers: []string{"platform", "year", "ratio", "domestic_count", "total_count"},
	}
	for _, p := range s.Points {
		t.Records = append(t.Records, []string{
			string(p.Platform),
			formatInt(p.Year),
			formatRatio(p.Ratio),
			formatInt(p.DomesticCount),
			formatInt(p.TotalCount),
		})
	}
	return t
}

// GrowthTable flattens the year-over-year ratio change series.
func GrowthTable(s analytics.GrowthSummary) Table {
	t := Table{
		Name:    "localization_growth",
		Headers: []string{"platform", "year", "prev_year", "change_percent"},
	}
	for _, p := range s.Points {
		t.Records = append(t.Records, []string{
			string(p.Platform),
			formatInt(p.Year),
			formatInt(p.PrevYear),
			formatFloat(p.ChangePercent),
		})
	}
	return t
}

// RecencyTable flattens the recency split into a single record.
func RecencyTable(s analytics.RecencySummary) Table {
	t := Table{
		Name:    "recency_split",
		Headers: []string{"recent_count", "older_count", "recent_share", "median_year", "mean_year"},
	}
	if !s.NoData {
		t.Records = append(t.Records, []string{
			formatInt(s.RecentCount),
			formatInt(s.OlderCount),
			formatRatio(s.RecentShare),
			formatFloat(s.MedianYear),
			formatFloat(s.MeanYear),
		})
	}
	return t
}

// TimelineTable flattens the per-year volume series.
func TimelineTable(s analytics.TimelineSummary) Table {
	t := Table{
		Name:    "volume_timeline",
		Headers: []string{"year", "count", "recent"},
	}
	for _, p := range s.Points {
		t.Records = append(t.Records, []string{
			formatInt(p.Year),
			formatInt(p.Count),
			formatBool(p.Recent),
		})
	}
	return t
}

// ProductionTable flattens the per-(year, type) production counts.
func ProductionTable(s analytics.ProductionSummary) Table {
	t := Table{
		Name:    "production_by_type",
		Headers: []string{"year", "content_type", "count"},
	}
	for _, p := range s.Points {
		t.Records = append(t.Records, []string{
			formatInt(p.Year),
			string(p.ContentType),
			formatInt(p.Count),
		})
	}
	return t
}

// YearStatsTable flattens the release-year statistics into a single record.
func YearStatsTable(s analytics.YearStatsSummary) Table {
	t := Table{
		Name:    "year_stats",
		Headers: []string{"std_dev", "min_year", "max_year", "mode_year", "q1", "q2", "q3"},
	}
	if !s.NoData {
		t.Records = append(t.Records, []string{
			formatFloat(s.StdDev),
			formatInt(s.MinYear),
			formatInt(s.MaxYear),
			formatInt(s.ModeYear),
			formatFloat(s.Q1),
			formatFloat(s.Q2),
			formatFloat(s.Q3),
		})
	}
	return t
}

// CountryTable flattens the per-country sourcing counts.
func CountryTable(s analytics.CountrySummary) Table {
	t := Table{
		Name:    "country_sourcing",
		Headers: []string{"country", "count"},
	}
	for _, c := range s.Countries {
		t.Records = append(t.Records, []string{c.Country, formatInt(c.Count)})
	}
	return t
}

// HighlightsTable flattens the sourcing highlights into a single record.
func HighlightsTable(s analytics.CountryHighlights) Table {
	t := Table{
		Name:    "sourcing_highlights",
		Headers: []string{"total_titles", "country_count", "top_country"},
	}
	if !s.NoData {
		t.Records = append(t.Records, []string{
			formatInt(s.TotalTitles),
			formatInt(s.CountryCount),
			s.TopCountry,
		})
	}
	return t
}

// TreemapTable flattens the (country, genre) counts.
func TreemapTable(s analytics.TreemapSummary) Table {
	t := Table{
		Name:    "genre_by_country",
		Headers: []string{"country", "genre", "count"},
	}
	for _, c := range s.Cells {
		t.Records = append(t.Records, []string{c.Country, c.Genre, formatInt(c.Count)})
	}
	return t
}

// RuntimeTable flattens the movie runtime summary into a single record.
// The raw sample stays in memory; exports carry the descriptive numbers.
func RuntimeTable(s analytics.RuntimeSummary) Table {
	t := Table{
		Name:    "runtime_distribution",
		Headers: []string{"count", "mean", "min", "max"},
	}
	if !s.NoData {
		t.Records = append(t.Records, []string{
			formatInt(s.Count),
			formatFloat(s.Mean),
			formatFloat(s.Min),
			formatFloat(s.Max),
		})
	}
	return t
}

// SeasonTable flattens the season-count histogram.
func SeasonTable(s analytics.SeasonSummary) Table {
	t := Table{
		Name:    "season_distribution",
		Headers: []string{"seasons", "count"},
	}
	for _, b := range s.Buckets {
		t.Records = append(t.Records, []string{formatInt(b.Seasons), formatInt(b.Count)})
	}
	return t
}

// RatingTable flattens the per-rating runtime statistics.
func RatingTable(s analytics.RatingSummary) Table {
	t := Table{
		Name:    "runtime_by_rating",
		Headers: []string{"rating", "count", "mean", "median", "q1", "q3", "min", "max"},
	}
	for _, r := range s.Ratings {
		t.Records = append(t.Records, []string{
			r.Rating,
			formatInt(r.Count),
			formatFloat(r.Mean),
			formatFloat(r.Median),
			formatFloat(r.Q1),
			formatFloat(r.Q3),
			formatFloat(r.Min),
			formatFloat(r.Max),
		})
	}
	return t
}

// HeatmapTable flattens the genre/decade matrix, one record per genre with
// one column per decade.
func HeatmapTable(s analytics.HeatmapSummary) Table {
	t := Table{Name: "genre_decade_heatmap"}
	if s.NoData {
		t.Headers = []string{"genre"}
		return t
	}
	t.Headers = make([]string, 0, len(s.Decades)+1)
	t.Headers = append(t.Headers, "genre")
	for _, decade := range s.Decades {
		t.Headers = append(t.Headers, strconv.Itoa(decade)+"s")
	}
	for i, genre := range s.Genres {
		record := make([]string, 0, len(s.Decades)+1)
		record = append(record, genre)
		for j := range s.Decades {
			record = append(record, formatInt(s.Counts[i][j]))
		}
		t.Records = append(t.Records, record)
	}
	return t
}
