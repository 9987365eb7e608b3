package services

import (
	"errors"

	"boardgame-tracker/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PlayerService struct {
	DB *gorm.DB
}

func NewPlayerService(db *gorm.DB) *PlayerService {
	return &PlayerService{DB: db}
}

type playerInput struct {
	Name  string `json:"name"`
	Alias string `json:"alias"`
}

func (s *PlayerService) GetAllPlayers(c *fiber.Ctx) error {
	var players []models.Player
	if err := s.DB.Order("name").Find(&players).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch players"})
	}
	return c.JSON(players)
}

func (s *PlayerService) GetPlayerByID(c *fiber.Ctx) error {
	id := c.Params("id")

	var player models.Player
	if err := s.DB.First(&player, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "player not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}
	return c.JSON(player)
}

func (s *PlayerService) CreatePlayer(c *fiber.Ctx) error {
	var input playerInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if input.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
	}

	player := models.Player{
		ID:    uuid.NewString(),
		Name:  input.Name,
		Alias: input.Alias,
	}
	if err := s.DB.Create(&player).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create player"})
	}
	return c.Status(fiber.StatusCreated).JSON(player)
}

func (s *PlayerService) UpdatePlayer(c *fiber.Ctx) error {
	id := c.Params("id")

	var player models.Player
	if err := s.DB.First(&player, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "player not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	var input playerInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if input.Name != "" {
		player.Name = input.Name
	}
	if input.Alias != "" {
		player.Alias = input.Alias
	}

	if err := s.DB.Save(&player).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to update player"})
	}
	return c.JSON(player)
}

func (s *PlayerService) DeletePlayer(c *fiber.Ctx) error {
	id := c.Params("id")

	var player models.Player
	if err := s.DB.First(&player, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "player not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	// Results reference the player; deleting those would silently rewrite
	// history for everyone else in the affected plays.
	var resultCount int64
	s.DB.Model(&models.PlayResult{}).Where("player_id = ?", id).Count(&resultCount)
	if resultCount > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":        "cannot delete player: recorded play results exist",
			"result_count": resultCount,
		})
	}

	if err := s.DB.Delete(&player).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to delete player"})
	}
	return c.JSON(fiber.Map{"message": "player deleted successfully", "id": id})
}
