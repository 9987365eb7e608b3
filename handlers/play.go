// handlers/play.go
package handlers

import (
	"boardgame-tracker/services"

	"github.com/gofiber/fiber/v2"
)

func SetupPlayRoutes(app *fiber.App, playService *services.PlayService, importService *services.ImportService) {
	plays := app.Group("/api/game-plays")

	plays.Get("/", playService.GetAllPlays)
	plays.Get("/recent", playService.GetRecentPlays)
	plays.Get("/statistics", playService.GetPlayStatistics)
	plays.Get("/game/:game_id", playService.GetPlaysByGame)
	plays.Get("/:id", playService.GetPlayByID)
	plays.Post("/", playService.CreatePlay)
	plays.Put("/:id", playService.UpdatePlay)
	plays.Delete("/:id", playService.DeletePlay)

	app.Post("/api/imports/plays", importService.ImportPlays)
}
