// models/game.go
package models

import (
	"time"
)

type Game struct {
	ID          string `json:"game_id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"not null"`
	Slug        string `json:"slug" gorm:"uniqueIndex"`
	Description string `json:"description"`
	MinPlayers  int    `json:"min_players"`
	MaxPlayers  int    `json:"max_players"`
	AvgPlayTime int    `json:"avg_play_time"` // minutes

	// 🖼️ Cover art — public CDN URL, file itself lives on R2
	ImageURL string `json:"image_url"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Relationships
	Plays []GamePlay `json:"-" gorm:"foreignKey:GameID"`
}
