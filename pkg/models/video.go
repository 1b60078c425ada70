package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Video struct {
	ID               string         `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID          string         `gorm:"type:uuid;not null;index" json:"owner"`
	Title            string         `gorm:"type:varchar(255);not null" json:"title"`
	Description      string         `gorm:"type:text;not null" json:"description"`
	VideoFileURL     string         `gorm:"type:varchar(500);not null" json:"videoFile"`
	VideoFileAssetID string         `gorm:"type:varchar(255);not null" json:"-"`
	ThumbnailURL     string         `gorm:"type:varchar(500);not null" json:"thumbnail"`
	ThumbnailAssetID string         `gorm:"type:varchar(255);not null" json:"-"`
	Duration         float64        `gorm:"default:0" json:"duration"`
	Views            int64          `gorm:"default:0" json:"views"`
	IsPublished      bool           `gorm:"default:true;index" json:"isPublished"`
	CreatedAt        time.Time      `gorm:"index" json:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

func (v *Video) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	return nil
}
