package entity

import (
	"time"

	"videotube/pkg/identity"
	"videotube/pkg/storage"
)

type Video struct {
	ID               string    `json:"id"`
	OwnerID          string    `json:"ownerId"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	VideoFileURL     string    `json:"videoFile"`
	VideoFileAssetID string    `json:"-"`
	ThumbnailURL     string    `json:"thumbnail"`
	ThumbnailAssetID string    `json:"-"`
	Duration         float64   `json:"duration"`
	Views            int64     `json:"views"`
	IsPublished      bool      `json:"isPublished"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

type VideoDetails struct {
	*Video
	Owner      *identity.UserProfile `json:"owner"`
	LikesCount int64                 `json:"likesCount"`
	IsLiked    bool                  `json:"isLiked"`
}

type AssetFailure struct {
	AssetID        string       `json:"assetId"`
	Kind           storage.Kind `json:"kind"`
	Error          string       `json:"error"`
	RetryScheduled bool         `json:"retryScheduled"`
}

// DeleteReport describes a completed video deletion. The record is gone even
// when AssetFailures is non-empty.
type DeleteReport struct {
	VideoID         string         `json:"videoId"`
	CommentsDeleted int64          `json:"commentsDeleted"`
	AssetFailures   []AssetFailure `json:"assetFailures"`
}
