package services

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"boardgame-tracker/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

// ImportService ingests game-log spreadsheets. Expected columns: No, Date,
// Time start, Time end, Duration (min), Mode, Results — one play per row,
// the Results cell holding newline-separated "Name: Score" lines ordered
// best first.
type ImportService struct {
	DB *gorm.DB
}

func NewImportService(db *gorm.DB) *ImportService {
	return &ImportService{DB: db}
}

var nameCaser = cases.Title(language.English)

// importedResult is one parsed line of a Results cell. Rank is the line's
// position: the sheet lists finishers best first.
type importedResult struct {
	PlayerName string
	Score      int
	Rank       int
}

// parseResultsCell parses a Results cell. Blank lines are skipped, lines
// without a "Name: Score" separator are rejected, and player names are
// title-cased so "anna", "Anna " and "ANNA" land on one player.
func parseResultsCell(cell string) ([]importedResult, error) {
	var results []importedResult
	rank := 0
	for _, line := range strings.Split(cell, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		name, scorePart, found := strings.Cut(line, ":")
		name = strings.TrimSpace(name)
		if !found || name == "" {
			return nil, fmt.Errorf("invalid result line %q", line)
		}

		score := 0
		if fields := strings.Fields(scorePart); len(fields) > 0 {
			if n, err := strconv.Atoi(fields[0]); err == nil {
				score = n
			}
		}

		rank++
		results = append(results, importedResult{
			PlayerName: nameCaser.String(strings.ToLower(name)),
			Score:      score,
			Rank:       rank,
		})
	}
	return results, nil
}

var importDateFormats = []string{"02/01/2006", "01/02/2006", "2006-01-02"}

func parseImportDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range importDateFormats {
		if d, err := time.Parse(layout, s); err == nil {
			return d, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// parseClock combines a day with a clock reading in "HH:MM" or "HHMM" form.
func parseClock(day time.Time, s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	var hours, minutes int
	if h, m, found := strings.Cut(s, ":"); found {
		var err error
		if hours, err = strconv.Atoi(h); err != nil {
			return nil, fmt.Errorf("unrecognized time %q", s)
		}
		if minutes, err = strconv.Atoi(m); err != nil {
			return nil, fmt.Errorf("unrecognized time %q", s)
		}
	} else {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("unrecognized time %q", s)
		}
		hours, minutes = n/100, n%100
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return nil, fmt.Errorf("unrecognized time %q", s)
	}

	t := time.Date(day.Year(), day.Month(), day.Day(), hours, minutes, 0, 0, day.Location())
	return &t, nil
}

// ImportPlays ingests an uploaded .xlsx game log for one game. Each sheet
// row becomes a play with its full result set; unknown player names are
// registered on the fly. Rows are committed independently, so one bad row
// doesn't sink the rest of the sheet.
func (s *ImportService) ImportPlays(c *fiber.Ctx) error {
	gameID := c.FormValue("game_id")
	if gameID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "game_id is required"})
	}

	var game models.Game
	if err := s.DB.First(&game, "id = ?", gameID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "game not found"})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "file is required"})
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "failed to open uploaded file"})
	}
	defer file.Close()

	book, err := excelize.OpenReader(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "not a readable xlsx file"})
	}
	defer book.Close()

	rows, err := book.GetRows(book.GetSheetName(0))
	if err != nil || len(rows) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "empty spreadsheet"})
	}

	columns := make(map[string]int)
	for i, header := range rows[0] {
		columns[strings.TrimSpace(header)] = i
	}
	for _, required := range []string{"No", "Date", "Results"} {
		if _, ok := columns[required]; !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing column: " + required})
		}
	}

	cell := func(row []string, name string) string {
		i, ok := columns[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	imported, skipped := 0, 0
	for n, row := range rows[1:] {
		no := cell(row, "No")
		dateStr := cell(row, "Date")
		resultsStr := cell(row, "Results")
		if no == "" || dateStr == "" || resultsStr == "" {
			continue // header/footer padding rows
		}

		if err := s.importRow(gameID, row, cell); err != nil {
			log.Printf("[Import] row %d (play #%s): %v", n+2, no, err)
			skipped++
			continue
		}
		imported++
	}

	return c.JSON(fiber.Map{
		"game_id":  gameID,
		"imported": imported,
		"skipped":  skipped,
	})
}

func (s *ImportService) importRow(gameID string, row []string, cell func([]string, string) string) error {
	day, err := parseImportDate(cell(row, "Date"))
	if err != nil {
		return err
	}
	startTime, err := parseClock(day, cell(row, "Time start"))
	if err != nil {
		return err
	}
	endTime, err := parseClock(day, cell(row, "Time end"))
	if err != nil {
		return err
	}
	if startTime == nil {
		startTime = &day
	}

	duration, _ := strconv.Atoi(cell(row, "Duration (min)"))
	if duration == 0 {
		duration = derivedDuration(startTime, endTime)
	}

	parsed, err := parseResultsCell(cell(row, "Results"))
	if err != nil {
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		play := models.GamePlay{
			ID:        uuid.NewString(),
			GameID:    gameID,
			StartTime: startTime,
			EndTime:   endTime,
			Duration:  duration,
			Mode:      cell(row, "Mode"),
		}
		if err := tx.Create(&play).Error; err != nil {
			return err
		}

		inputs := make([]playResultInput, len(parsed))
		for i, p := range parsed {
			var player models.Player
			err := tx.Where("name = ?", p.PlayerName).First(&player).Error
			if err == gorm.ErrRecordNotFound {
				player = models.Player{ID: uuid.NewString(), Name: p.PlayerName}
				err = tx.Create(&player).Error
			}
			if err != nil {
				return err
			}
			score := p.Score
			inputs[i] = playResultInput{PlayerID: player.ID, Score: &score, Rank: p.Rank}
		}

		results := buildPlayResults(play.ID, inputs)
		if len(results) > 0 {
			if err := tx.Create(&results).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
