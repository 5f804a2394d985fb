package analytics

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ottpulse/pkg/contracts/domain"
)

func yearTitle(year int, contentType domain.ContentType) domain.Title {
	return domain.Title{
		Title:       "t",
		ContentType: contentType,
		ReleaseYear: year,
		HasYear:     true,
		Platform:    domain.PlatformNetflix,
	}
}

func TestRecencySplit_CutoffBoundary(t *testing.T) {
	a := NewAnalyzer(slog.Default())

	rows := []domain.Title{
		yearTitle(2014, domain.ContentTypeMovie),
		yearTitle(2015, domain.ContentTypeMovie), // cutoff year itself is older
		yearTitle(2016, domain.ContentTypeMovie),
		yearTitle(2020, domain.ContentTypeMovie),
	}

	summary, err := a.RecencySplit(context.Background(), rows, RecencyFilter{CutoffYear: 2015})
	require.NoError(t, err)
	assert.False(t, summary.NoData)
	assert.Equal(t, 2, summary.RecentCount)
	assert.Equal(t, 2, summary.OlderCount)
	assert.InDelta(t, 0.5, summary.RecentShare, 1e-9)
	assert.InDelta(t, 2015.5, summary.MedianYear, 1e-9)
	assert.InDelta(t, 2016.25, summary.MeanYear, 1e-9)
}

func TestRecencySplit_TypeFilter(t *testing.T) {
	a := NewAnalyzer(slog.Default())

	rows := []domain.Title{
		yearTitle(2020, domain.ContentTypeMovie),
		yearTitle(2010, domain.ContentTypeTVShow),
	}

	summary, err := a.RecencySplit(context.Background(), rows, RecencyFilter{
		ContentType: domain.ContentTypeMovie,
		CutoffYear:  2015,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.RecentCount)
	assert.Equal(t, 0, summary.OlderCount)
}

func TestRecencySplit_NoData(t *testing.T) {
	a := NewAnalyzer(slog.Default())

	summary, err := a.RecencySplit(context.Background(), nil, RecencyFilter{CutoffYear: 2015})
	require.NoError(t, err)
	assert.True(t, summary.NoData)
}

func TestRecencySplit_MissingCutoffRejected(t *testing.T) {
	a := NewAnalyzer(slog.Default())

	_, err := a.RecencySplit(context.Background(), nil, RecencyFilter{})
	require.Error(t, err)
}

func TestVolumeTimeline(t *testing.T) {
	a := NewAnalyzer(slog.Default())

	rows := []domain.Title{
		yearTitle(2014, domain.ContentTypeMovie),
		yearTitle(2016, domain.ContentTypeMovie),
		yearTitle(2016, domain.ContentTypeTVShow),
		yearTitle(1900, domain.ContentTypeMovie), // below the floor, excluded
	}

	summary, err := a.VolumeTimeline(context.Background(), rows, RecencyFilter{CutoffYear: 2015}, 1920)
	require.NoError(t, err)
	require.Len(t, summary.Points, 2)

	assert.Equal(t, 2014, summary.Points[0].Year)
	assert.Equal(t, 1, summary.Points[0].Count)
	assert.False(t, summary.Points[0].Recent)

	assert.Equal(t, 2016, summary.Points[1].Year)
	assert.Equal(t, 2, summary.Points[1].Count)
	assert.True(t, summary.Points[1].Recent)
}

func TestProductionByType(t *testing.T) {
	a := NewAnalyzer(slog.Default())

	rows := []domain.Title{
		yearTitle(2010, domain.ContentTypeMovie),
		yearTitle(2010, domain.ContentTypeMovie),
		yearTitle(2010, domain.ContentTypeTVShow),
		yearTitle(2012, domain.ContentTypeMovie),
		yearTitle(1999, domain.ContentTypeMovie), // pre-2001, excluded
	}

	summary, err := a.ProductionByType(context.Background(), rows)
	require.NoError(t, err)
	require.Len(t, summary.Points, 3)

	assert.Equal(t, TypeYearPoint{Year: 2010, ContentType: domain.ContentTypeMovie, Count: 2}, summary.Points[0])
	assert.Equal(t, TypeYearPoint{Year: 2010, ContentType: domain.ContentTypeTVShow, Count: 1}, summary.Points[1])
	assert.Equal(t, TypeYearPoint{Year: 2012, ContentType: domain.ContentTypeMovie, Count: 1}, summary.Points[2])
}

func TestYearStats(t *testing.T) {
	a := NewAnalyzer(slog.Default())

	rows := []domain.Title{
		yearTitle(2010, domain.ContentTypeMovie),
		yearTitle(2012, domain.ContentTypeMovie),
		yearTitle(2012, domain.ContentTypeMovie),
		yearTitle(2014, domain.ContentTypeMovie),
		yearTitle(2020, domain.ContentTypeMovie),
	}

	summary, err := a.YearStats(context.Background(), rows, "")
	require.NoError(t, err)
	assert.False(t, summary.NoData)
	assert.Equal(t, 2010, summary.MinYear)
	assert.Equal(t, 2020, summary.MaxYear)
	assert.Equal(t, 2012, summary.ModeYear)
	assert.InDelta(t, 2012.0, summary.Q1, 1e-9)
	assert.InDelta(t, 2012.0, summary.Q2, 1e-9)
	assert.InDelta(t, 2014.0, summary.Q3, 1e-9)
	// Sample standard deviation over {2010,2012,2012,2014,2020}.
	assert.InDelta(t, 3.8471, summary.StdDev, 1e-3)
}

func TestYearStats_NoData(t *testing.T) {
	a := NewAnalyzer(slog.Default())

	summary, err := a.YearStats(context.Background(), nil, domain.ContentTypeMovie)
	require.NoError(t, err)
	assert.True(t, summary.NoData)
}
