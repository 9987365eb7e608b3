package services

import (
	"errors"
	"time"

	"boardgame-tracker/models"
	"boardgame-tracker/scoring"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PlayService struct {
	DB *gorm.DB
}

func NewPlayService(db *gorm.DB) *PlayService {
	return &PlayService{DB: db}
}

type playResultInput struct {
	PlayerID string `json:"player_id"`
	Score    *int   `json:"score"`
	Rank     int    `json:"rank"`
	Notes    string `json:"notes"`
}

type gamePlayInput struct {
	GameID    string             `json:"game_id"`
	StartTime *time.Time         `json:"start_time"`
	EndTime   *time.Time         `json:"end_time"`
	Duration  *int               `json:"duration"`
	Mode      string             `json:"mode"`
	Notes     string             `json:"notes"`
	Results   *[]playResultInput `json:"results"`
}

// buildPlayResults turns the request's result rows into PlayResult records.
// Victory points are always derived from the complete rank set — the award
// formula depends on the whole ordering, so partial recomputation is never
// valid.
func buildPlayResults(playID string, inputs []playResultInput) []models.PlayResult {
	ranks := make([]scoring.PlayerRank, len(inputs))
	for i, in := range inputs {
		ranks[i] = scoring.PlayerRank{PlayerID: in.PlayerID, Rank: in.Rank}
	}
	vpMap := scoring.ComputeVictoryPoints(ranks)

	results := make([]models.PlayResult, len(inputs))
	for i, in := range inputs {
		results[i] = models.PlayResult{
			ID:            uuid.NewString(),
			PlayID:        playID,
			PlayerID:      in.PlayerID,
			Score:         in.Score,
			Rank:          in.Rank,
			VictoryPoints: vpMap[in.PlayerID],
			Notes:         in.Notes,
		}
	}
	return results
}

func derivedDuration(start, end *time.Time) int {
	if start == nil || end == nil {
		return 0
	}
	return int(end.Sub(*start).Minutes())
}

func (s *PlayService) GetAllPlays(c *fiber.Ctx) error {
	var plays []models.GamePlay
	if err := s.DB.Preload("Results").Order("created_at DESC").Find(&plays).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch game plays"})
	}
	return c.JSON(plays)
}

func (s *PlayService) GetPlayByID(c *fiber.Ctx) error {
	id := c.Params("id")

	var play models.GamePlay
	if err := s.DB.Preload("Results").First(&play, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "game play not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}
	return c.JSON(play)
}

func (s *PlayService) GetRecentPlays(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 5)
	if limit <= 0 {
		limit = 5
	}

	var plays []models.GamePlay
	if err := s.DB.Preload("Results").Order("created_at DESC").Limit(limit).Find(&plays).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch game plays"})
	}
	return c.JSON(plays)
}

func (s *PlayService) GetPlaysByGame(c *fiber.Ctx) error {
	var plays []models.GamePlay
	if err := s.DB.Preload("Results").Where("game_id = ?", c.Params("game_id")).Order("created_at DESC").Find(&plays).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch game plays"})
	}
	return c.JSON(plays)
}

// CreatePlay records a game play together with its full result set. The
// play and all derived victory points land in one transaction, so readers
// never observe a play with half its results.
func (s *PlayService) CreatePlay(c *fiber.Ctx) error {
	var input gamePlayInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if input.GameID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "game_id is required"})
	}

	var game models.Game
	if err := s.DB.First(&game, "id = ?", input.GameID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "game not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	play := models.GamePlay{
		ID:        uuid.NewString(),
		GameID:    input.GameID,
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
		Mode:      input.Mode,
		Notes:     input.Notes,
	}
	if input.Duration != nil {
		play.Duration = *input.Duration
	} else {
		play.Duration = derivedDuration(input.StartTime, input.EndTime)
	}

	var results []playResultInput
	if input.Results != nil {
		results = *input.Results
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&play).Error; err != nil {
			return err
		}
		rows := buildPlayResults(play.ID, results)
		if len(rows) > 0 {
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}
		play.Results = rows
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create game play"})
	}
	return c.Status(fiber.StatusCreated).JSON(play)
}

// UpdatePlay updates a game play. When the request carries a results array
// the stored set is replaced wholesale — delete-all-then-insert inside the
// transaction — and victory points are recomputed from the new ranks.
func (s *PlayService) UpdatePlay(c *fiber.Ctx) error {
	id := c.Params("id")

	var play models.GamePlay
	if err := s.DB.Preload("Results").First(&play, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "game play not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	var input gamePlayInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	if input.GameID != "" {
		play.GameID = input.GameID
	}
	if input.StartTime != nil {
		play.StartTime = input.StartTime
	}
	if input.EndTime != nil {
		play.EndTime = input.EndTime
	}
	if input.Duration != nil {
		play.Duration = *input.Duration
	} else if play.Duration == 0 {
		play.Duration = derivedDuration(play.StartTime, play.EndTime)
	}
	if input.Mode != "" {
		play.Mode = input.Mode
	}
	if input.Notes != "" {
		play.Notes = input.Notes
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&play).Error; err != nil {
			return err
		}
		if input.Results == nil {
			return nil
		}
		if err := tx.Where("play_id = ?", play.ID).Delete(&models.PlayResult{}).Error; err != nil {
			return err
		}
		rows := buildPlayResults(play.ID, *input.Results)
		if len(rows) > 0 {
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}
		play.Results = rows
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to update game play"})
	}
	return c.JSON(play)
}

func (s *PlayService) DeletePlay(c *fiber.Ctx) error {
	id := c.Params("id")

	var play models.GamePlay
	if err := s.DB.First(&play, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "game play not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("play_id = ?", id).Delete(&models.PlayResult{}).Error; err != nil {
			return err
		}
		return tx.Delete(&play).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to delete game play"})
	}
	return c.JSON(fiber.Map{"message": "game play deleted successfully", "id": id})
}

// GetPlayStatistics reports the library-wide play counters shown on the
// dashboard.
func (s *PlayService) GetPlayStatistics(c *fiber.Ctx) error {
	var totalPlays int64
	if err := s.DB.Model(&models.GamePlay{}).Count(&totalPlays).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	var gamesPlayed int64
	if err := s.DB.Model(&models.GamePlay{}).Distinct("game_id").Count(&gamesPlayed).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	// Average duration is a display default, not a computed rate: with no
	// plays recorded it reports 0 rather than dividing by zero.
	avgDuration := 0
	if totalPlays > 0 {
		var avg float64
		if err := s.DB.Model(&models.GamePlay{}).Select("COALESCE(AVG(duration), 0)").Scan(&avg).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
		}
		avgDuration = int(avg + 0.5)
	}

	return c.JSON(fiber.Map{
		"total_plays":        totalPlays,
		"total_games_played": gamesPlayed,
		"average_duration":   avgDuration,
	})
}
