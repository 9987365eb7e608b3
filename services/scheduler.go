// services/scheduler.go
package services

import (
	"log"
	"time"

	"boardgame-tracker/models"
	"boardgame-tracker/scoring"

	"github.com/go-co-op/gocron/v2"
)

// StartAuditScheduler runs a daily sweep that re-derives every play's
// victory points from its stored ranks and reports rows that drifted from
// the persisted value (usually hand-edited data). The job only reports;
// fixing a play is an explicit update through the API.
func (s *PlayService) StartAuditScheduler() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(24*time.Hour),
		gocron.NewTask(func() {
			var plays []models.GamePlay
			if err := s.DB.Preload("Results").Find(&plays).Error; err != nil {
				log.Printf("[Audit] DB error: %v", err)
				return
			}

			drifted := 0
			for _, play := range plays {
				ranks := make([]scoring.PlayerRank, len(play.Results))
				for i, r := range play.Results {
					ranks[i] = scoring.PlayerRank{PlayerID: r.PlayerID, Rank: r.Rank}
				}
				expected := scoring.ComputeVictoryPoints(ranks)

				for _, r := range play.Results {
					if !r.VictoryPoints.Equal(expected[r.PlayerID]) {
						drifted++
						log.Printf("[Audit] play %s player %s: stored %s, derived %s",
							play.ID, r.PlayerID, r.VictoryPoints, expected[r.PlayerID])
					}
				}
			}
			if drifted > 0 {
				log.Printf("[Audit] %d result(s) out of sync with the scoring formula", drifted)
			}
		}),
	)
}
