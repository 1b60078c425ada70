package entity

import (
	"time"

	"videotube/pkg/identity"
)

type LikedVideo struct {
	ID           string                `json:"id"`
	Title        string                `json:"title"`
	Description  string                `json:"description"`
	VideoFileURL string                `json:"videoFile"`
	ThumbnailURL string                `json:"thumbnail"`
	Duration     float64               `json:"duration"`
	Views        int64                 `json:"views"`
	OwnerID      string                `json:"-"`
	Owner        *identity.UserProfile `json:"owner"`
	CreatedAt    time.Time             `json:"createdAt"`
	LikedAt      time.Time             `json:"likedAt"`
}

type ChannelStats struct {
	ChannelID        string `json:"channelId"`
	TotalVideos      int64  `json:"totalVideos"`
	TotalViews       int64  `json:"totalViews"`
	TotalLikes       int64  `json:"totalLikes"`
	TotalSubscribers int64  `json:"totalSubscribers"`
}

type ChannelVideo struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	ThumbnailURL string    `json:"thumbnail"`
	Duration     float64   `json:"duration"`
	Views        int64     `json:"views"`
	IsPublished  bool      `json:"isPublished"`
	LikesCount   int64     `json:"likesCount"`
	CreatedAt    time.Time `json:"createdAt"`
}

// SubscriberSummary is one row of a subscriber or subscribed-channel list.
type SubscriberSummary struct {
	*identity.UserProfile
	SubscribedAt time.Time `json:"subscribedAt"`
}
