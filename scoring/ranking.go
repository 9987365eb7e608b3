package scoring

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Fact is one stored play result joined with its play and game — the row
// shape the ranking aggregations consume. Victory points are read exactly
// as persisted; aggregation only ever sums them, it never recomputes.
type Fact struct {
	PlayID        string
	PlayerID      string
	PlayerName    string
	GameID        string
	GameName      string
	PlayedAt      time.Time
	VictoryPoints decimal.Decimal
}

// Year returns the calendar year the play belongs to.
func (f Fact) Year() int { return f.PlayedAt.Year() }

// RankingEntry is one row of a player ranking.
type RankingEntry struct {
	Rank        int             `json:"rank"`
	PlayerID    string          `json:"player_id"`
	Name        string          `json:"name"`
	TotalPlays  int             `json:"total_plays"`
	TotalVPs    decimal.Decimal `json:"total_vps"`
	VictoryRate decimal.Decimal `json:"victory_rate"`
}

// GameRankingEntry is one row of a single player's per-game breakdown.
// It carries no rank column: the list is that player's record, best victory
// rate first, not a leaderboard of players.
type GameRankingEntry struct {
	GameID      string          `json:"game_id"`
	GameName    string          `json:"game_name"`
	TotalPlays  int             `json:"total_plays"`
	TotalVPs    decimal.Decimal `json:"total_vps"`
	VictoryRate decimal.Decimal `json:"victory_rate"`
}

type group struct {
	id    string
	name  string
	plays map[string]struct{}
	total decimal.Decimal
}

type row struct {
	ID          string
	Name        string
	TotalPlays  int
	TotalVPs    decimal.Decimal
	VictoryRate decimal.Decimal
}

// aggregate is the one grouping routine behind every ranking view: filter
// facts by the predicate, group them by the selected key, total victory
// points per group over the group's distinct plays, then order by victory
// rate descending with ties broken by group id ascending.
func aggregate(facts []Fact, include func(Fact) bool, key func(Fact) (id, name string)) ([]row, error) {
	var groups []*group
	index := make(map[string]*group)

	for _, f := range facts {
		if !include(f) {
			continue
		}
		id, name := key(f)
		g, ok := index[id]
		if !ok {
			g = &group{id: id, name: name, plays: make(map[string]struct{}), total: decimal.Zero}
			index[id] = g
			groups = append(groups, g)
		}
		g.plays[f.PlayID] = struct{}{}
		g.total = g.total.Add(f.VictoryPoints)
	}

	rows := make([]row, 0, len(groups))
	for _, g := range groups {
		plays := len(g.plays)
		if plays == 0 {
			// Unreachable for facts ingested above, but a hostile fact
			// source must fail loudly rather than divide by zero.
			return nil, fmt.Errorf("group %q: %w", g.id, ErrInvariant)
		}
		rows = append(rows, row{
			ID:          g.id,
			Name:        g.name,
			TotalPlays:  plays,
			TotalVPs:    g.total,
			VictoryRate: g.total.Div(decimal.NewFromInt(int64(plays))),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if c := rows[i].VictoryRate.Cmp(rows[j].VictoryRate); c != 0 {
			return c > 0
		}
		return rows[i].ID < rows[j].ID
	})
	return rows, nil
}

// rankRows assigns dense 1-based ranks by sorted position. Equal rates do
// not share a rank and create no gaps — deliberate, it is the established
// reference behavior of this ranking.
func rankRows(rows []row) []RankingEntry {
	entries := make([]RankingEntry, len(rows))
	for i, r := range rows {
		entries[i] = RankingEntry{
			Rank:        i + 1,
			PlayerID:    r.ID,
			Name:        r.Name,
			TotalPlays:  r.TotalPlays,
			TotalVPs:    r.TotalVPs,
			VictoryRate: r.VictoryRate,
		}
	}
	return entries
}

func playerKey(f Fact) (string, string) { return f.PlayerID, f.PlayerName }

// RankOverall ranks every player across all recorded plays.
func RankOverall(facts []Fact) ([]RankingEntry, error) {
	rows, err := aggregate(facts, func(Fact) bool { return true }, playerKey)
	if err != nil {
		return nil, err
	}
	return rankRows(rows), nil
}

// RankByYear ranks players over the plays of one calendar year.
func RankByYear(facts []Fact, year int) ([]RankingEntry, error) {
	rows, err := aggregate(facts, func(f Fact) bool { return f.Year() == year }, playerKey)
	if err != nil {
		return nil, err
	}
	return rankRows(rows), nil
}

// RankByGame ranks players over the plays of one game. The caller owns the
// game lookup and attaches the game's name to its response envelope.
func RankByGame(facts []Fact, gameID string) ([]RankingEntry, error) {
	rows, err := aggregate(facts, func(f Fact) bool { return f.GameID == gameID }, playerKey)
	if err != nil {
		return nil, err
	}
	return rankRows(rows), nil
}

// RankAcrossGames breaks one player's record down per game.
func RankAcrossGames(facts []Fact, playerID string) ([]GameRankingEntry, error) {
	rows, err := aggregate(facts,
		func(f Fact) bool { return f.PlayerID == playerID },
		func(f Fact) (string, string) { return f.GameID, f.GameName })
	if err != nil {
		return nil, err
	}
	entries := make([]GameRankingEntry, len(rows))
	for i, r := range rows {
		entries[i] = GameRankingEntry{
			GameID:      r.ID,
			GameName:    r.Name,
			TotalPlays:  r.TotalPlays,
			TotalVPs:    r.TotalVPs,
			VictoryRate: r.VictoryRate,
		}
	}
	return entries, nil
}
