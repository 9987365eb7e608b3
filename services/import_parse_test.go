package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResultsCell(t *testing.T) {
	results, err := parseResultsCell("anna: 54\n\nBEN: 32 pts\n  carol : 18\n")
	require.NoError(t, err)
	require.Len(t, results, 3)

	// Names are normalized, ranks follow line order, blank lines don't
	// consume a rank.
	assert.Equal(t, importedResult{PlayerName: "Anna", Score: 54, Rank: 1}, results[0])
	assert.Equal(t, importedResult{PlayerName: "Ben", Score: 32, Rank: 2}, results[1])
	assert.Equal(t, importedResult{PlayerName: "Carol", Score: 18, Rank: 3}, results[2])
}

func TestParseResultsCell_UnparseableScoreDefaultsToZero(t *testing.T) {
	results, err := parseResultsCell("Anna: won")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 0, results[0].Score)
}

func TestParseResultsCell_MalformedLine(t *testing.T) {
	_, err := parseResultsCell("Anna: 54\njust some note")
	assert.Error(t, err)

	_, err = parseResultsCell(": 54")
	assert.Error(t, err)
}

func TestParseImportDate_Formats(t *testing.T) {
	for _, input := range []string{"31/01/2024", "2024-01-31"} {
		d, err := parseImportDate(input)
		require.NoError(t, err, input)
		assert.Equal(t, 2024, d.Year())
		assert.Equal(t, time.January, d.Month())
		assert.Equal(t, 31, d.Day())
	}

	_, err := parseImportDate("sometime in march")
	assert.Error(t, err)
}

func TestParseClock(t *testing.T) {
	day := time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC)

	got, err := parseClock(day, "19:30")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 19, got.Hour())
	assert.Equal(t, 30, got.Minute())

	got, err = parseClock(day, "0945")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 9, got.Hour())
	assert.Equal(t, 45, got.Minute())

	got, err = parseClock(day, "")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = parseClock(day, "25:99")
	assert.Error(t, err)
}

func TestDerivedDuration(t *testing.T) {
	start := time.Date(2024, time.March, 2, 19, 0, 0, 0, time.UTC)
	end := start.Add(95 * time.Minute)

	assert.Equal(t, 95, derivedDuration(&start, &end))
	assert.Equal(t, 0, derivedDuration(nil, &end))
	assert.Equal(t, 0, derivedDuration(&start, nil))
}
