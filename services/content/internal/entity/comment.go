package entity

import (
	"time"

	"videotube/pkg/identity"
	"videotube/pkg/pagination"
)

type Comment struct {
	ID        string    `json:"id"`
	VideoID   string    `json:"videoId"`
	OwnerID   string    `json:"ownerId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CommentView struct {
	ID         string                `json:"id"`
	Content    string                `json:"content"`
	CreatedAt  time.Time             `json:"createdAt"`
	Owner      *identity.UserProfile `json:"owner"`
	LikesCount int64                 `json:"likesCount"`
	IsLiked    bool                  `json:"isLiked"`
}

type CommentFeed struct {
	pagination.Page[*CommentView]
	NoComments bool `json:"noComments"`
}
