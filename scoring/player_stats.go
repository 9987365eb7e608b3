package scoring

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// StatLine is a player's totals within one ranking scope (overall or one
// year), together with the player's rank in that scope.
type StatLine struct {
	TotalPlays  int             `json:"total_plays"`
	TotalVPs    decimal.Decimal `json:"total_vps"`
	VictoryRate decimal.Decimal `json:"victory_rate"`
	Rank        int             `json:"rank"`
}

// PlayerStatsResult is the composite view for one player: overall standing,
// a breakdown per candidate year (years without a recorded play are
// omitted, not zeroed), and the per-game record.
type PlayerStatsResult struct {
	PlayerID  string
	Overall   StatLine
	Yearly    map[int]StatLine
	GameStats []GameRankingEntry
}

// PlayerStats assembles the composite stats view for playerID.
//
// candidateYears is the span of years worth inspecting — it comes from the
// caller's clock and configuration, never from a constant baked in here.
// Returns ErrNotFound when no fact references the player; distinguishing
// "unknown player" from "known player with no plays" is the caller's job,
// it alone can consult the player registry.
func PlayerStats(facts []Fact, playerID string, candidateYears []int) (*PlayerStatsResult, error) {
	overall, err := RankOverall(facts)
	if err != nil {
		return nil, err
	}

	stats := &PlayerStatsResult{
		PlayerID: playerID,
		Yearly:   make(map[int]StatLine),
	}

	found := false
	for _, e := range overall {
		if e.PlayerID == playerID {
			stats.Overall = StatLine{
				TotalPlays:  e.TotalPlays,
				TotalVPs:    e.TotalVPs,
				VictoryRate: e.VictoryRate,
				Rank:        e.Rank,
			}
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("player %q: %w", playerID, ErrNotFound)
	}

	for _, year := range candidateYears {
		yearly, err := RankByYear(facts, year)
		if err != nil {
			return nil, err
		}
		for _, e := range yearly {
			if e.PlayerID == playerID {
				stats.Yearly[year] = StatLine{
					TotalPlays:  e.TotalPlays,
					TotalVPs:    e.TotalVPs,
					VictoryRate: e.VictoryRate,
					Rank:        e.Rank,
				}
				break
			}
		}
	}

	stats.GameStats, err = RankAcrossGames(facts, playerID)
	if err != nil {
		return nil, err
	}
	return stats, nil
}
