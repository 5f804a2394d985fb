package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrimaryCountry(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		bracketed bool
		want      string
	}{
		{
			name: "single country",
			raw:  "United States",
			want: "United States",
		},
		{
			name: "comma list keeps first",
			raw:  "United States, India, France",
			want: "United States",
		},
		{
			name: "empty yields unknown",
			raw:  "",
			want: "Unknown",
		},
		{
			name: "whitespace only yields unknown",
			raw:  "   ",
			want: "Unknown",
		},
		{
			name:      "bracketed list",
			raw:       "['United States', 'United Kingdom']",
			bracketed: true,
			want:      "United States",
		},
		{
			name:      "bracketed single",
			raw:       "['JP']",
			bracketed: true,
			want:      "JP",
		},
		{
			name:      "empty brackets yield unknown",
			raw:       "[]",
			bracketed: true,
			want:      "Unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, primaryCountry(tt.raw, tt.bracketed))
		})
	}
}

func TestIsDomestic(t *testing.T) {
	aliases := []string{"United States", "US"}

	tests := []struct {
		name string
		raw  string
		want bool
	}{
		{name: "exact match", raw: "United States", want: true},
		{name: "short alias", raw: "US", want: true},
		{name: "within list", raw: "India, United States", want: true},
		{name: "substring of longer token", raw: "USA", want: true},
		{name: "case sensitive", raw: "united states", want: false},
		{name: "no match", raw: "India", want: false},
		{name: "empty", raw: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isDomestic(tt.raw, aliases))
		})
	}
}

func TestCoerceYear(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   int
		wantOK bool
	}{
		{name: "plain integer", raw: "2015", want: 2015, wantOK: true},
		{name: "float export", raw: "2015.0", want: 2015, wantOK: true},
		{name: "padded", raw: " 1999 ", want: 1999, wantOK: true},
		{name: "fractional year rejected", raw: "2015.5", wantOK: false},
		{name: "text rejected", raw: "unknown", wantOK: false},
		{name: "empty rejected", raw: "", wantOK: false},
		{name: "zero rejected", raw: "0", wantOK: false},
		{name: "negative rejected", raw: "-3", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := coerceYear(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseRuntimeMinutes(t *testing.T) {
	t.Run("standard duration", func(t *testing.T) {
		got := parseRuntimeMinutes("90 min")
		require.NotNil(t, got)
		assert.Equal(t, 90.0, *got)
	})

	t.Run("bare number", func(t *testing.T) {
		got := parseRuntimeMinutes("105")
		require.NotNil(t, got)
		assert.Equal(t, 105.0, *got)
	})

	t.Run("unparseable yields nil not zero", func(t *testing.T) {
		assert.Nil(t, parseRuntimeMinutes("two hours"))
		assert.Nil(t, parseRuntimeMinutes(""))
	})
}

func TestParseSeasonCount(t *testing.T) {
	t.Run("plural", func(t *testing.T) {
		got := parseSeasonCount("3 Seasons")
		require.NotNil(t, got)
		assert.Equal(t, 3.0, *got)
	})

	t.Run("singular", func(t *testing.T) {
		got := parseSeasonCount("1 Season")
		require.NotNil(t, got)
		assert.Equal(t, 1.0, *got)
	})

	t.Run("unparseable yields nil", func(t *testing.T) {
		assert.Nil(t, parseSeasonCount("limited series"))
		assert.Nil(t, parseSeasonCount(""))
	})
}

func TestSplitGenres(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "multiple genres",
			raw:  "Dramas, International Movies, Thrillers",
			want: []string{"Dramas", "International Movies", "Thrillers"},
		},
		{
			name: "single genre",
			raw:  "Documentaries",
			want: []string{"Documentaries"},
		},
		{
			name: "empty yields nil",
			raw:  "",
			want: nil,
		},
		{
			name: "stray commas dropped",
			raw:  "Dramas, ,Comedies",
			want: []string{"Dramas", "Comedies"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitGenres(tt.raw))
		})
	}
}
