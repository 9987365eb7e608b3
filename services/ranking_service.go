package services

import (
	"errors"
	"log"
	"time"

	"boardgame-tracker/models"
	"boardgame-tracker/scoring"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RankingService serves the leaderboard endpoints. It only loads stored
// facts and hands them to the scoring package; nothing is cached, every
// request recomputes from the database.
type RankingService struct {
	DB *gorm.DB

	// Now supplies the current time for the candidate-year range; injected
	// so yearly stats never depend on a baked-in calendar year.
	Now func() time.Time

	// FirstYear is the earliest year worth inspecting for yearly stats.
	FirstYear int
}

func NewRankingService(db *gorm.DB, firstYear int, now func() time.Time) *RankingService {
	if now == nil {
		now = time.Now
	}
	return &RankingService{DB: db, Now: now, FirstYear: firstYear}
}

type factRow struct {
	PlayID        string
	PlayerID      string
	PlayerName    string
	GameID        string
	GameName      string
	PlayedAt      *time.Time
	VictoryPoints decimal.Decimal
}

// loadFacts reads every (player, play, victory-points) row with its play
// and game attached. Plays without a start time keep a zero timestamp:
// they count toward overall and per-game totals but belong to no year.
func (s *RankingService) loadFacts() ([]scoring.Fact, error) {
	var rows []factRow
	err := s.DB.Table("play_results").
		Select("play_results.play_id AS play_id, " +
			"play_results.player_id AS player_id, " +
			"players.name AS player_name, " +
			"game_plays.game_id AS game_id, " +
			"games.name AS game_name, " +
			"game_plays.start_time AS played_at, " +
			"play_results.victory_points AS victory_points").
		Joins("JOIN game_plays ON game_plays.id = play_results.play_id").
		Joins("JOIN players ON players.id = play_results.player_id").
		Joins("JOIN games ON games.id = game_plays.game_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	facts := make([]scoring.Fact, len(rows))
	for i, r := range rows {
		f := scoring.Fact{
			PlayID:        r.PlayID,
			PlayerID:      r.PlayerID,
			PlayerName:    r.PlayerName,
			GameID:        r.GameID,
			GameName:      r.GameName,
			VictoryPoints: r.VictoryPoints,
		}
		if r.PlayedAt != nil {
			f.PlayedAt = *r.PlayedAt
		}
		facts[i] = f
	}
	return facts, nil
}

// candidateYears spans FirstYear through the injected clock's current year.
func (s *RankingService) candidateYears() []int {
	current := s.Now().Year()
	var years []int
	for y := s.FirstYear; y <= current; y++ {
		years = append(years, y)
	}
	return years
}

func (s *RankingService) GetOverallRanking(c *fiber.Ctx) error {
	facts, err := s.loadFacts()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load play results"})
	}

	entries, err := scoring.RankOverall(facts)
	if err != nil {
		log.Printf("[Rankings] overall aggregation failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "ranking aggregation failed"})
	}
	return c.JSON(entries)
}

func (s *RankingService) GetYearlyRanking(c *fiber.Ctx) error {
	year, err := c.ParamsInt("year")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid year"})
	}

	facts, err := s.loadFacts()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load play results"})
	}

	entries, err := scoring.RankByYear(facts, year)
	if err != nil {
		log.Printf("[Rankings] yearly aggregation failed for %d: %v", year, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "ranking aggregation failed"})
	}
	return c.JSON(entries)
}

func (s *RankingService) GetGameRanking(c *fiber.Ctx) error {
	gameID := c.Params("game_id")

	var game models.Game
	if err := s.DB.First(&game, "id = ?", gameID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "game not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	facts, err := s.loadFacts()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load play results"})
	}

	entries, err := scoring.RankByGame(facts, gameID)
	if err != nil {
		log.Printf("[Rankings] game aggregation failed for %s: %v", gameID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "ranking aggregation failed"})
	}

	return c.JSON(fiber.Map{
		"game_id":   game.ID,
		"game_name": game.Name,
		"rankings":  entries,
	})
}

func (s *RankingService) GetPlayerStats(c *fiber.Ctx) error {
	playerID := c.Params("player_id")

	var player models.Player
	if err := s.DB.First(&player, "id = ?", playerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "player not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	facts, err := s.loadFacts()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load play results"})
	}

	stats, err := scoring.PlayerStats(facts, playerID, s.candidateYears())
	if err != nil {
		if errors.Is(err, scoring.ErrNotFound) {
			// The player exists but has no recorded plays yet: an empty
			// record, not an error.
			return c.JSON(fiber.Map{
				"player_id": player.ID,
				"name":      player.Name,
				"alias":     player.Alias,
				"overall": scoring.StatLine{
					TotalVPs:    decimal.Zero,
					VictoryRate: decimal.Zero,
				},
				"yearly_stats": map[int]scoring.StatLine{},
				"game_stats":   []scoring.GameRankingEntry{},
			})
		}
		log.Printf("[Rankings] player stats failed for %s: %v", playerID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "ranking aggregation failed"})
	}

	return c.JSON(fiber.Map{
		"player_id":    player.ID,
		"name":         player.Name,
		"alias":        player.Alias,
		"overall":      stats.Overall,
		"yearly_stats": stats.Yearly,
		"game_stats":   stats.GameStats,
	})
}
