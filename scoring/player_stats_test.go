package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayerStats_Composite(t *testing.T) {
	facts := buildFacts([]factSpec{
		{"g1", "alice", "catan", day(2024, time.March, 2), "1"},
		{"g1", "bob", "catan", day(2024, time.March, 2), "0.5"},
		{"g2", "alice", "azul", day(2025, time.February, 11), "0.5"},
		{"g2", "bob", "azul", day(2025, time.February, 11), "1"},
	})

	stats, err := PlayerStats(facts, "alice", []int{2023, 2024, 2025})
	require.NoError(t, err)

	assert.Equal(t, "alice", stats.PlayerID)
	assert.Equal(t, 2, stats.Overall.TotalPlays)
	assert.True(t, stats.Overall.TotalVPs.Equal(dec("1.5")))
	assert.True(t, stats.Overall.VictoryRate.Equal(dec("0.75")))
	assert.Equal(t, 1, stats.Overall.Rank) // ties with bob, alice wins the id tie-break

	// 2023 has no plays at all and is omitted rather than zeroed.
	require.Len(t, stats.Yearly, 2)
	assert.NotContains(t, stats.Yearly, 2023)
	assert.Equal(t, 1, stats.Yearly[2024].Rank)
	assert.True(t, stats.Yearly[2024].TotalVPs.Equal(dec("1")))
	assert.Equal(t, 2, stats.Yearly[2025].Rank)
	assert.True(t, stats.Yearly[2025].TotalVPs.Equal(dec("0.5")))

	require.Len(t, stats.GameStats, 2)
	assert.Equal(t, "catan", stats.GameStats[0].GameID)
	assert.Equal(t, "azul", stats.GameStats[1].GameID)
}

func TestPlayerStats_UnknownPlayer(t *testing.T) {
	facts := buildFacts([]factSpec{
		{"g1", "alice", "catan", day(2024, time.March, 2), "1"},
	})

	stats, err := PlayerStats(facts, "nobody", []int{2024})
	assert.Nil(t, stats)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPlayerStats_EmptyFacts(t *testing.T) {
	stats, err := PlayerStats(nil, "alice", []int{2024})
	assert.Nil(t, stats)
	assert.ErrorIs(t, err, ErrNotFound)
}
