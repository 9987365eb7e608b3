// handlers/player.go
package handlers

import (
	"boardgame-tracker/services"

	"github.com/gofiber/fiber/v2"
)

func SetupPlayerRoutes(app *fiber.App, playerService *services.PlayerService) {
	players := app.Group("/api/players")

	players.Get("/", playerService.GetAllPlayers)
	players.Get("/:id", playerService.GetPlayerByID)
	players.Post("/", playerService.CreatePlayer)
	players.Put("/:id", playerService.UpdatePlayer)
	players.Delete("/:id", playerService.DeletePlayer)
}
