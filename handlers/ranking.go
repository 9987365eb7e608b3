// handlers/ranking.go
package handlers

import (
	"boardgame-tracker/services"

	"github.com/gofiber/fiber/v2"
)

func SetupRankingRoutes(app *fiber.App, rankingService *services.RankingService) {
	rankings := app.Group("/api/rankings")

	rankings.Get("/overall", rankingService.GetOverallRanking)
	rankings.Get("/yearly/:year", rankingService.GetYearlyRanking)
	rankings.Get("/games/:game_id", rankingService.GetGameRanking)
	rankings.Get("/players/:player_id", rankingService.GetPlayerStats)
}
