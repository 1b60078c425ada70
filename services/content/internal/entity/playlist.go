package entity

import (
	"time"

	"videotube/pkg/identity"
)

type Playlist struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"ownerId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	VideoIDs    []string  `json:"videoIds"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type PlaylistSummary struct {
	*Playlist
	TotalVideos int `json:"totalVideos"`
}

type PlaylistDetails struct {
	*Playlist
	Owner  *identity.UserProfile `json:"owner"`
	Videos []*Video              `json:"videos"`
}
