package persistent

import (
	"videotube/pkg/models"
	"videotube/services/content/internal/entity"
)

func ToVideoEntity(m *models.Video) *entity.Video {
	if m == nil {
		return nil
	}

	return &entity.Video{
		ID:               m.ID,
		OwnerID:          m.OwnerID,
		Title:            m.Title,
		Description:      m.Description,
		VideoFileURL:     m.VideoFileURL,
		VideoFileAssetID: m.VideoFileAssetID,
		ThumbnailURL:     m.ThumbnailURL,
		ThumbnailAssetID: m.ThumbnailAssetID,
		Duration:         m.Duration,
		Views:            m.Views,
		IsPublished:      m.IsPublished,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

func ToVideoModel(e *entity.Video) *models.Video {
	if e == nil {
		return nil
	}

	return &models.Video{
		ID:               e.ID,
		OwnerID:          e.OwnerID,
		Title:            e.Title,
		Description:      e.Description,
		VideoFileURL:     e.VideoFileURL,
		VideoFileAssetID: e.VideoFileAssetID,
		ThumbnailURL:     e.ThumbnailURL,
		ThumbnailAssetID: e.ThumbnailAssetID,
		Duration:         e.Duration,
		Views:            e.Views,
		IsPublished:      e.IsPublished,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
}

func ToCommentEntity(m *models.Comment) *entity.Comment {
	if m == nil {
		return nil
	}

	return &entity.Comment{
		ID:        m.ID,
		VideoID:   m.VideoID,
		OwnerID:   m.OwnerID,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func ToTweetEntity(m *models.Tweet) *entity.Tweet {
	if m == nil {
		return nil
	}

	return &entity.Tweet{
		ID:        m.ID,
		OwnerID:   m.OwnerID,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func ToPlaylistEntity(m *models.Playlist) *entity.Playlist {
	if m == nil {
		return nil
	}

	videoIDs := make([]string, 0, len(m.Videos))
	for _, pv := range m.Videos {
		videoIDs = append(videoIDs, pv.VideoID)
	}

	return &entity.Playlist{
		ID:          m.ID,
		OwnerID:     m.OwnerID,
		Name:        m.Name,
		Description: m.Description,
		VideoIDs:    videoIDs,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
