package scoring

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 19, 0, 0, 0, time.UTC)
}

type factSpec struct {
	play   string
	player string
	game   string
	at     time.Time
	vp     string
}

func buildFacts(specs []factSpec) []Fact {
	names := map[string]string{
		"alice": "Alice", "bob": "Bob", "carol": "Carol", "dave": "Dave",
	}
	games := map[string]string{
		"catan": "Catan", "azul": "Azul", "root": "Root",
	}
	facts := make([]Fact, len(specs))
	for i, s := range specs {
		facts[i] = Fact{
			PlayID:        s.play,
			PlayerID:      s.player,
			PlayerName:    names[s.player],
			GameID:        s.game,
			GameName:      games[s.game],
			PlayedAt:      s.at,
			VictoryPoints: dec(s.vp),
		}
	}
	return facts
}

func TestRankOverall_OrderAndTotals(t *testing.T) {
	facts := buildFacts([]factSpec{
		{"g1", "alice", "catan", day(2024, time.March, 2), "1"},
		{"g1", "bob", "catan", day(2024, time.March, 2), "0.5"},
		{"g2", "alice", "azul", day(2024, time.April, 9), "0.5"},
		{"g2", "bob", "azul", day(2024, time.April, 9), "1"},
		{"g3", "alice", "catan", day(2025, time.January, 5), "1"},
		{"g3", "carol", "catan", day(2025, time.January, 5), "0"},
	})

	entries, err := RankOverall(facts)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// alice: 2.5 VP over 3 plays; bob: 1.5 over 2; carol: 0 over 1.
	assert.Equal(t, "alice", entries[0].PlayerID)
	assert.Equal(t, "Alice", entries[0].Name)
	assert.Equal(t, 3, entries[0].TotalPlays)
	assert.True(t, entries[0].TotalVPs.Equal(dec("2.5")))

	assert.Equal(t, "bob", entries[1].PlayerID)
	assert.Equal(t, 2, entries[1].TotalPlays)
	assert.True(t, entries[1].VictoryRate.Equal(dec("0.75")))

	assert.Equal(t, "carol", entries[2].PlayerID)
	assert.True(t, entries[2].VictoryRate.IsZero())

	// Rates descend and ranks are dense 1..n.
	for i, e := range entries {
		assert.Equal(t, i+1, e.Rank)
		if i > 0 {
			assert.True(t, entries[i-1].VictoryRate.Cmp(e.VictoryRate) >= 0)
		}
	}
}

func TestRankOverall_RateReconstructsFromFacts(t *testing.T) {
	facts := buildFacts([]factSpec{
		{"g1", "alice", "catan", day(2024, time.March, 2), "1"},
		{"g2", "alice", "azul", day(2024, time.April, 9), "0.33"},
		{"g3", "alice", "root", day(2024, time.May, 1), "0.5"},
	})

	entries, err := RankOverall(facts)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	e := entries[0]
	want := e.TotalVPs.Div(decimal.NewFromInt(int64(e.TotalPlays)))
	assert.True(t, e.VictoryRate.Equal(want), "rate %s, want %s", e.VictoryRate, want)
}

func TestRankOverall_EqualRatesTieBreakByPlayerID(t *testing.T) {
	facts := buildFacts([]factSpec{
		{"g1", "dave", "catan", day(2024, time.March, 2), "0.5"},
		{"g1", "bob", "catan", day(2024, time.March, 2), "0.5"},
		{"g1", "alice", "catan", day(2024, time.March, 2), "0.5"},
	})

	entries, err := RankOverall(facts)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Same rate everywhere: order falls back to player id ascending, and
	// ranks stay dense with no shared positions.
	assert.Equal(t, []string{"alice", "bob", "dave"},
		[]string{entries[0].PlayerID, entries[1].PlayerID, entries[2].PlayerID})
	assert.Equal(t, []int{1, 2, 3},
		[]int{entries[0].Rank, entries[1].Rank, entries[2].Rank})
}

func TestRankOverall_Empty(t *testing.T) {
	entries, err := RankOverall(nil)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRankByYear_FiltersOnPlayYear(t *testing.T) {
	facts := buildFacts([]factSpec{
		{"g1", "alice", "catan", day(2024, time.March, 2), "1"},
		{"g2", "bob", "catan", day(2025, time.June, 20), "1"},
		{"g3", "alice", "azul", day(2025, time.July, 4), "0"},
	})

	entries, err := RankByYear(facts, 2025)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "bob", entries[0].PlayerID)
	assert.Equal(t, 1, entries[0].TotalPlays)
	assert.Equal(t, "alice", entries[1].PlayerID)

	entries, err = RankByYear(facts, 2023)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRankByGame_FiltersOnGame(t *testing.T) {
	facts := buildFacts([]factSpec{
		{"g1", "alice", "catan", day(2024, time.March, 2), "0.5"},
		{"g1", "bob", "catan", day(2024, time.March, 2), "1"},
		{"g2", "alice", "azul", day(2024, time.April, 9), "1"},
	})

	entries, err := RankByGame(facts, "catan")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "bob", entries[0].PlayerID)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, "alice", entries[1].PlayerID)

	entries, err = RankByGame(facts, "unplayed")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRankAcrossGames_GroupsByGame(t *testing.T) {
	facts := buildFacts([]factSpec{
		{"g1", "alice", "catan", day(2024, time.March, 2), "0.5"},
		{"g2", "alice", "catan", day(2024, time.April, 9), "0"},
		{"g3", "alice", "azul", day(2024, time.May, 1), "1"},
		{"g3", "bob", "azul", day(2024, time.May, 1), "0.5"},
	})

	entries, err := RankAcrossGames(facts, "alice")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "azul", entries[0].GameID)
	assert.Equal(t, "Azul", entries[0].GameName)
	assert.True(t, entries[0].VictoryRate.Equal(dec("1")))

	assert.Equal(t, "catan", entries[1].GameID)
	assert.Equal(t, 2, entries[1].TotalPlays)
	assert.True(t, entries[1].VictoryRate.Equal(dec("0.25")))
}

func TestRankAcrossGames_DistinctPlayCount(t *testing.T) {
	// Two facts from the same play must count that play once.
	facts := buildFacts([]factSpec{
		{"g1", "alice", "catan", day(2024, time.March, 2), "0.5"},
		{"g1", "alice", "catan", day(2024, time.March, 2), "0.5"},
	})

	entries, err := RankAcrossGames(facts, "alice")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 1, entries[0].TotalPlays)
	assert.True(t, entries[0].TotalVPs.Equal(dec("1")))
}
