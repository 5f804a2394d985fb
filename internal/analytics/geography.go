package analytics

import (
	"context"
	"log/slog"
	"sort"

	"ottpulse/pkg/contracts/domain"
)

// CountrySourcing counts imported titles per origin country. Domestic
// titles and titles with an unknown origin are excluded; countries below
// the minimum count threshold are dropped (the threshold is inclusive).
func (a *Analyzer) CountrySourcing(ctx context.Context, rows []domain.Title, filter CountryFilter) (CountrySummary, error) {
	if err := checkFilter(filter); err != nil {
		return CountrySummary{}, err
	}

	counts := make(map[string]int)
	for _, t := range rows {
		if !matchesType(t, filter.ContentType) {
			continue
		}
		if t.IsDomestic || t.OriginCountry == domain.UnknownCountry {
			continue
		}
		counts[t.OriginCountry]++
	}

	summary := CountrySummary{}
	for country, count := range counts {
		if count < filter.MinCount {
			continue
		}
		summary.Countries = append(summary.Countries, CountryCount{Country: country, Count: count})
	}

	if len(summary.Countries) == 0 {
		return CountrySummary{NoData: true}, nil
	}

	sort.Slice(summary.Countries, func(i, j int) bool {
		if summary.Countries[i].Count != summary.Countries[j].Count {
			return summary.Countries[i].Count > summary.Countries[j].Count
		}
		return summary.Countries[i].Country < summary.Countries[j].Country
	})

	a.logger.DebugContext(ctx, "computed country sourcing",
		slog.Int("countries", len(summary.Countries)),
		slog.Int("min_count", filter.MinCount))

	return summary, nil
}

// SourcingHighlights summarizes the imported subset: how many titles it
// holds, how many distinct origin countries, and the largest contributor.
func (a *Analyzer) SourcingHighlights(ctx context.Context, rows []domain.Title, filter CountryFilter) (CountryHighlights, error) {
	if err := checkFilter(filter); err != nil {
		return CountryHighlights{}, err
	}

	counts := make(map[string]int)
	total := 0
	for _, t := range rows {
		if !matchesType(t, filter.ContentType) {
			continue
		}
		if t.IsDomestic || t.OriginCountry == domain.UnknownCountry {
			continue
		}
		counts[t.OriginCountry]++
		total++
	}

	if total == 0 {
		return CountryHighlights{NoData: true}, nil
	}

	top := ""
	topCount := 0
	for country, count := range counts {
		if count > topCount || (count == topCount && country < top) {
			top = country
			topCount = count
		}
	}

	return CountryHighlights{
		TotalTitles:  total,
		CountryCount: len(counts),
		TopCountry:   top,
	}, nil
}

// GenreByCountryTreemap builds per-(country, genre) counts for the imported
// subset, restricted to the top N countries. A country's weight is the sum
// of its per-genre counts, so a title tagged with three genres adds three.
// Titles with an unknown origin stay in as their own bucket. Ties between
// countries with equal weight keep the country seen first in row order.
func (a *Analyzer) GenreByCountryTreemap(ctx context.Context, rows []domain.Title, filter TreemapFilter) (TreemapSummary, error) {
	if err := checkFilter(filter); err != nil {
		return TreemapSummary{}, err
	}

	type cell struct {
		country string
		genre   string
	}
	cells := make(map[cell]int)
	totals := make(map[string]int)
	var seen []string

	for _, t := range rows {
		if !matchesType(t, filter.ContentType) {
			continue
		}
		if t.IsDomestic {
			continue
		}
		if len(t.Genres) == 0 {
			continue
		}
		if _, ok := totals[t.OriginCountry]; !ok {
			seen = append(seen, t.OriginCountry)
		}
		totals[t.OriginCountry] += len(t.Genres)
		for _, genre := range t.Genres {
			cells[cell{country: t.OriginCountry, genre: genre}]++
		}
	}

	if len(cells) == 0 {
		return TreemapSummary{NoData: true}, nil
	}

	firstSeen := make(map[string]int, len(seen))
	for i, country := range seen {
		firstSeen[country] = i
	}
	ranked := append([]string(nil), seen...)
	sort.SliceStable(ranked, func(i, j int) bool {
		if totals[ranked[i]] != totals[ranked[j]] {
			return totals[ranked[i]] > totals[ranked[j]]
		}
		return firstSeen[ranked[i]] < firstSeen[ranked[j]]
	})
	if len(ranked) > filter.TopCountries {
		ranked = ranked[:filter.TopCountries]
	}
	keep := make(map[string]bool, len(ranked))
	for _, country := range ranked {
		keep[country] = true
	}

	summary := TreemapSummary{}
	for c, count := range cells {
		if !keep[c.country] {
			continue
		}
		summary.Cells = append(summary.Cells, CountryGenreCount{
			Country: c.country,
			Genre:   c.genre,
			Count:   count,
		})
	}
	sort.Slice(summary.Cells, func(i, j int) bool {
		ci, cj := summary.Cells[i], summary.Cells[j]
		if firstSeen[ci.Country] != firstSeen[cj.Country] {
			ri := firstSeen[ci.Country]
			rj := firstSeen[cj.Country]
			if totals[ci.Country] != totals[cj.Country] {
				return totals[ci.Country] > totals[cj.Country]
			}
			return ri < rj
		}
		if ci.Count != cj.Count {
			return ci.Count > cj.Count
		}
		return ci.Genre < cj.Genre
	})

	a.logger.DebugContext(ctx, "computed genre treemap",
		slog.Int("countries", len(ranked)),
		slog.Int("cells", len(summary.Cells)))

	return summary, nil
}
