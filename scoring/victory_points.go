// Package scoring holds the victory-point formula and the ranking
// aggregations. Everything here is a pure function over explicitly passed
// data: no database access, no cached state.
package scoring

import (
	"sort"

	"github.com/shopspring/decimal"
)

// PlayerRank is one player's finishing rank in a single game play.
// Rank 1 is best; equal rank values mean a shared finish.
type PlayerRank struct {
	PlayerID string
	Rank     int
}

// ComputeVictoryPoints awards fractional victory points for one complete
// game play.
//
// Half of the field, rounded up, forms the scoring slots. Walking the
// results sorted by rank, a new points tier starts wherever the rank value
// changes; a tier starting at sorted position i is worth 1/(i+1) when i is
// inside the scoring slots and 0 otherwise. Every player sharing a rank
// gets the tier's award. So with four distinct finishers: 1st → 1.0,
// 2nd → 0.5, 3rd and 4th → 0.
//
// Must be called with the play's full result set — the award depends on the
// whole rank ordering, never on a single row. An empty input yields an
// empty map. Awards are rounded to two decimal places, matching the
// numeric(5,2) column they are persisted into.
func ComputeVictoryPoints(results []PlayerRank) map[string]decimal.Decimal {
	vp := make(map[string]decimal.Decimal, len(results))
	if len(results) == 0 {
		return vp
	}

	sorted := make([]PlayerRank, len(results))
	copy(sorted, results)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Rank < sorted[j].Rank
	})

	scoringSlots := (len(sorted) + 1) / 2 // ceil(n/2)

	var tierRank int
	var tierAward decimal.Decimal
	for i, r := range sorted {
		if i == 0 || r.Rank != tierRank {
			tierRank = r.Rank
			if i < scoringSlots {
				tierAward = decimal.New(1, 0).DivRound(decimal.NewFromInt(int64(i+1)), 2)
			} else {
				tierAward = decimal.Zero
			}
		}
		vp[r.PlayerID] = tierAward
	}
	return vp
}
