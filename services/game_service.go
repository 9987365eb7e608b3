package services

import (
	"errors"
	"path/filepath"
	"strconv"

	"boardgame-tracker/models"
	"boardgame-tracker/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type GameService struct {
	DB *gorm.DB
}

func NewGameService(db *gorm.DB) *GameService {
	return &GameService{DB: db}
}

// atoiForm reads an optional integer form field; malformed or absent
// values fall back to 0.
func atoiForm(c *fiber.Ctx, key string) int {
	n, err := strconv.Atoi(c.FormValue(key))
	if err != nil {
		return 0
	}
	return n
}

func (s *GameService) GetAllGames(c *fiber.Ctx) error {
	var games []models.Game
	if err := s.DB.Order("name").Find(&games).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch games"})
	}
	return c.JSON(games)
}

func (s *GameService) GetGameByID(c *fiber.Ctx) error {
	id := c.Params("id")

	var game models.Game
	if err := s.DB.First(&game, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "game not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}
	return c.JSON(game)
}

func (s *GameService) GetGameBySlug(c *fiber.Ctx) error {
	var game models.Game
	if err := s.DB.First(&game, "slug = ?", c.Params("slug")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "game not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}
	return c.JSON(game)
}

// CreateGame registers a new game from a multipart form. An optional
// "image" file becomes the cover art and is pushed to R2; only the public
// URL is stored.
func (s *GameService) CreateGame(c *fiber.Ctx) error {
	name := c.FormValue("name")
	if name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
	}

	game := models.Game{
		ID:          uuid.NewString(),
		Name:        name,
		Slug:        slug.Make(name),
		Description: c.FormValue("description"),
		MinPlayers:  atoiForm(c, "min_players"),
		MaxPlayers:  atoiForm(c, "max_players"),
		AvgPlayTime: atoiForm(c, "avg_play_time"),
	}

	if imageFile, err := c.FormFile("image"); err == nil && imageFile.Size > 0 {
		ext := filepath.Ext(imageFile.Filename)
		if ext == "" {
			ext = ".png"
		}
		imageURL, err := utils.UploadFileToR2(imageFile, "covers/"+uuid.NewString()+ext)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to upload cover image"})
		}
		game.ImageURL = imageURL
	}

	if err := s.DB.Create(&game).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create game"})
	}
	return c.Status(fiber.StatusCreated).JSON(game)
}

func (s *GameService) UpdateGame(c *fiber.Ctx) error {
	id := c.Params("id")

	var game models.Game
	if err := s.DB.First(&game, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "game not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	if name := c.FormValue("name"); name != "" {
		game.Name = name
		game.Slug = slug.Make(name)
	}
	if desc := c.FormValue("description"); desc != "" {
		game.Description = desc
	}
	if v := c.FormValue("min_players"); v != "" {
		game.MinPlayers = atoiForm(c, "min_players")
	}
	if v := c.FormValue("max_players"); v != "" {
		game.MaxPlayers = atoiForm(c, "max_players")
	}
	if v := c.FormValue("avg_play_time"); v != "" {
		game.AvgPlayTime = atoiForm(c, "avg_play_time")
	}

	if imageFile, err := c.FormFile("image"); err == nil && imageFile.Size > 0 {
		ext := filepath.Ext(imageFile.Filename)
		if ext == "" {
			ext = ".png"
		}
		imageURL, err := utils.UploadFileToR2(imageFile, "covers/"+uuid.NewString()+ext)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to upload cover image"})
		}
		game.ImageURL = imageURL
	}

	if err := s.DB.Save(&game).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to update game"})
	}
	return c.JSON(game)
}

func (s *GameService) DeleteGame(c *fiber.Ctx) error {
	id := c.Params("id")

	var game models.Game
	if err := s.DB.First(&game, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "game not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	var playCount int64
	s.DB.Model(&models.GamePlay{}).Where("game_id = ?", id).Count(&playCount)
	if playCount > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":      "cannot delete game: recorded plays exist",
			"play_count": playCount,
		})
	}

	if err := s.DB.Delete(&game).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to delete game"})
	}
	return c.JSON(fiber.Map{"message": "game deleted successfully", "id": id})
}
