package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LikeTarget string

const (
	LikeTargetVideo   LikeTarget = "video"
	LikeTargetComment LikeTarget = "comment"
	LikeTargetTweet   LikeTarget = "tweet"
)

func (t LikeTarget) Valid() bool {
	switch t {
	case LikeTargetVideo, LikeTargetComment, LikeTargetTweet:
		return true
	}
	return false
}

// Like points at exactly one target. Rows are hard-deleted on unlike so the
// unique index always describes the live state.
type Like struct {
	ID         string     `gorm:"type:uuid;primary_key" json:"id"`
	LikedBy    string     `gorm:"type:uuid;not null;uniqueIndex:idx_likes_actor_target,priority:1" json:"likedBy"`
	TargetType LikeTarget `gorm:"type:varchar(10);not null;uniqueIndex:idx_likes_actor_target,priority:2;index:idx_likes_target,priority:1" json:"targetType"`
	TargetID   string     `gorm:"type:uuid;not null;uniqueIndex:idx_likes_actor_target,priority:3;index:idx_likes_target,priority:2" json:"targetId"`
	CreatedAt  time.Time  `json:"createdAt"`
}

func (l *Like) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}
