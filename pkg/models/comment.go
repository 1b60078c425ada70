package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment rows are hard-deleted together with their video.
type Comment struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	VideoID   string    `gorm:"type:uuid;not null;index:idx_comments_video_created,priority:1" json:"video"`
	OwnerID   string    `gorm:"type:uuid;not null;index" json:"owner"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"index:idx_comments_video_created,priority:2" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

type Tweet struct {
	ID        string         `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID   string         `gorm:"type:uuid;not null;index" json:"owner"`
	Content   string         `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (t *Tweet) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return nil
}
