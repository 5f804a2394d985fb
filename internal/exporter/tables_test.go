package exporter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ottpulse/internal/analytics"
	"ottpulse/pkg/contracts/domain"
)

func TestLocalRatioTable(t *testing.T) {
	summary := analytics.LocalRatioSummary{
		Platforms: []analytics.PlatformRatio{
			{Platform: domain.PlatformHBO, Ratio: 1, DomesticCount: 3, TotalCount: 3},
			{Platform: domain.PlatformNetflix, Ratio: 0.5, DomesticCount: 2, TotalCount: 4},
		},
	}

	table := LocalRatioTable(summary)
	assert.Equal(t, "local_content_ratio", table.Name)
	assert.Equal(t, []string{"platform", "ratio", "domestic_count", "total_count"}, table.Headers)
	require.Len(t, table.Records, 2)
	assert.Equal(t, []string{"HBO", "1.0000", "3", "3"}, table.Records[0])
	assert.Equal(t, []string{"Netflix", "0.5000", "2", "4"}, table.Records[1])
}

func TestRecencyTable_NoData(t *testing.T) {
	table := RecencyTable(analytics.RecencySummary{NoData: true})
	// Headers survive so consumers still see the schema.
	assert.NotEmpty(t, table.Headers)
	assert.Empty(t, table.Records)
}

func TestYearStatsTable(t *testing.T) {
	table := YearStatsTable(analytics.YearStatsSummary{
		StdDev:   3.8471,
		MinYear:  2010,
		MaxYear:  2020,
		ModeYear: 2012,
		Q1:       2012,
		Q2:       2012,
		Q3:       2014,
	})
	require.Len(t, table.Records, 1)
	assert.Equal(t, []string{"3.85", "2010", "2020", "2012", "2012.00", "2012.00", "2014.00"}, table.Records[0])
}

func TestHeatmapTable(t *testing.T) {
	table := HeatmapTable(analytics.HeatmapSummary{
		Genres:  []string{"Dramas", "Comedies"},
		Decades: []int{1990, 2000},
		Counts:  [][]int{{2, 1}, {0, 3}},
	})

	assert.Equal(t, []string{"genre", "1990s", "2000s"}, table.Headers)
	require.Len(t, table.Records, 2)
	assert.Equal(t, []string{"Dramas", "2", "1"}, table.Records[0])
	assert.Equal(t, []string{"Comedies", "0", "3"}, table.Records[1])
}

func TestHeatmapTable_NoData(t *testing.T) {
	table := HeatmapTable(analytics.HeatmapSummary{NoData: true})
	assert.Empty(t, table.Records)
}

func TestTimelineTable(t *testing.T) {
	table := TimelineTable(analytics.TimelineSummary{
		Points: []analytics.TimelinePoint{
			{Year: 2014, Count: 3, Recent: false},
			{Year: 2018, Count: 5, Recent: true},
		},
	})
	require.Len(t, table.Records, 2)
	assert.Equal(t, []string{"2014", "3", "false"}, table.Records[0])
	assert.Equal(t, []string{"2018", "5", "true"}, table.Records[1])
}
