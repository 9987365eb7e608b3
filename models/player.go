// models/player.go
package models

import (
	"time"
)

type Player struct {
	ID        string    `json:"player_id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null;uniqueIndex"`
	Alias     string    `json:"alias"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Relationships
	Results []PlayResult `json:"-" gorm:"foreignKey:PlayerID"`
}
