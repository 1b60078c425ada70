package entity

import (
	"time"

	"videotube/pkg/identity"
)

type Tweet struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"ownerId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type TweetView struct {
	*Tweet
	Owner      *identity.UserProfile `json:"owner"`
	LikesCount int64                 `json:"likesCount"`
	IsLiked    bool                  `json:"isLiked"`
}
