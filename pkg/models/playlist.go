package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Playlist struct {
	ID          string          `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID     string          `gorm:"type:uuid;not null;index" json:"owner"`
	Name        string          `gorm:"type:varchar(255);not null" json:"name"`
	Description string          `gorm:"type:text;not null" json:"description"`
	Videos      []PlaylistVideo `gorm:"foreignKey:PlaylistID" json:"-"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (p *Playlist) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

// PlaylistVideo keeps playlist order; the pair is unique.
type PlaylistVideo struct {
	PlaylistID string    `gorm:"type:uuid;primaryKey" json:"playlistId"`
	VideoID    string    `gorm:"type:uuid;primaryKey;index" json:"videoId"`
	Position   int       `gorm:"not null" json:"position"`
	CreatedAt  time.Time `json:"createdAt"`
}

// All lists every table in dependency order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Video{},
		&Comment{},
		&Tweet{},
		&Like{},
		&Subscription{},
		&Playlist{},
		&PlaylistVideo{},
	}
}
