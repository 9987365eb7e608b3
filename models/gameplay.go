// models/gameplay.go
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// GamePlay is one recorded session of a game. Its calendar year (for yearly
// rankings) is derived from StartTime.
type GamePlay struct {
	ID        string     `json:"play_id" gorm:"primaryKey"`
	GameID    string     `json:"game_id" gorm:"not null;index"`
	StartTime *time.Time `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`
	Duration  int        `json:"duration"` // minutes
	Mode      string     `json:"mode"`
	Notes     string     `json:"notes"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`

	// Relationships
	Game    Game         `json:"-" gorm:"foreignKey:GameID"`
	Results []PlayResult `json:"results" gorm:"foreignKey:PlayID;constraint:OnDelete:CASCADE"`
}

// PlayResult is one player's finishing record inside a game play. Rank 1 is
// best and ranks may be shared. VictoryPoints is derived from the play's
// complete rank set and is only ever written together with its siblings.
type PlayResult struct {
	ID            string          `json:"result_id" gorm:"primaryKey"`
	PlayID        string          `json:"play_id" gorm:"not null;index"`
	PlayerID      string          `json:"player_id" gorm:"not null;index"`
	Score         *int            `json:"score"`
	Rank          int             `json:"rank"`
	VictoryPoints decimal.Decimal `json:"victory_points" gorm:"type:numeric(5,2)"`
	Notes         string          `json:"notes"`
	CreatedAt     time.Time       `json:"created_at" gorm:"autoCreateTime"`

	// Relationships
	Player Player `json:"-" gorm:"foreignKey:PlayerID"`
}
