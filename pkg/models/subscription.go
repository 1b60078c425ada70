package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Subscription struct {
	ID           string    `gorm:"type:uuid;primary_key" json:"id"`
	SubscriberID string    `gorm:"type:uuid;not null;uniqueIndex:idx_subscriptions_pair,priority:1" json:"subscriber"`
	ChannelID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_subscriptions_pair,priority:2;index" json:"channel"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (s *Subscription) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}
