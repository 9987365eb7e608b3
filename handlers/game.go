// handlers/game.go
package handlers

import (
	"boardgame-tracker/services"

	"github.com/gofiber/fiber/v2"
)

func SetupGameRoutes(app *fiber.App, gameService *services.GameService) {
	games := app.Group("/api/games")

	games.Get("/", gameService.GetAllGames)
	games.Get("/slug/:slug", gameService.GetGameBySlug)
	games.Get("/:id", gameService.GetGameByID)
	games.Post("/", gameService.CreateGame)
	games.Put("/:id", gameService.UpdateGame)
	games.Patch("/:id", gameService.UpdateGame)
	games.Delete("/:id", gameService.DeleteGame)
}
