package persistent

import (
	"context"

	"videotube/pkg/models"
	"videotube/services/content/internal/entity"

	"gorm.io/gorm"
)

type PlaylistRepository interface {
	Create(ctx context.Context, playlist *entity.Playlist) error
	GetByID(ctx context.Context, id string) (*entity.Playlist, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*entity.Playlist, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
	AddVideo(ctx context.Context, playlistID, videoID string) error
	RemoveVideo(ctx context.Context, playlistID, videoID string) error
}

type playlistRepository struct {
	db *gorm.DB
}

func NewPlaylistRepository(db *gorm.DB) PlaylistRepository {
	return &playlistRepository{db: db}
}

func orderedVideos(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

func (r *playlistRepository) Create(ctx context.Context, playlist *entity.Playlist) error {
	m := &models.Playlist{
		OwnerID:     playlist.OwnerID,
		Name:        playlist.Name,
		Description: playlist.Description,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return translate(err, "create playlist")
	}
	*playlist = *ToPlaylistEntity(m)
	return nil
}

func (r *playlistRepository) GetByID(ctx context.Context, id string) (*entity.Playlist, error) {
	var m models.Playlist
	if err := r.db.WithContext(ctx).Preload("Videos", orderedVideos).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translate(err, "get playlist")
	}
	return ToPlaylistEntity(&m), nil
}

func (r *playlistRepository) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Playlist, error) {
	var rows []models.Playlist
	err := r.db.WithContext(ctx).
		Preload("Videos", orderedVideos).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, translate(err, "list playlists")
	}

	playlists := make([]*entity.Playlist, 0, len(rows))
	for i := range rows {
		playlists = append(playlists, ToPlaylistEntity(&rows[i]))
	}
	return playlists, nil
}

func (r *playlistRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	err := r.db.WithContext(ctx).Model(&models.Playlist{}).Where("id = ?", id).Updates(fields).Error
	return translate(err, "update playlist")
}

func (r *playlistRepository) Delete(ctx context.Context, id string) error {
	return translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("playlist_id = ?", id).Delete(&models.PlaylistVideo{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.Playlist{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	}), "delete playlist")
}

// AddVideo appends videoID. A second add of the same video hits the composite
// primary key and reports ErrAlreadyExists.
func (r *playlistRepository) AddVideo(ctx context.Context, playlistID, videoID string) error {
	return translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var next int
		if err := tx.Model(&models.PlaylistVideo{}).
			Select("COALESCE(MAX(position), -1) + 1").
			Where("playlist_id = ?", playlistID).
			Scan(&next).Error; err != nil {
			return err
		}
		return tx.Create(&models.PlaylistVideo{
			PlaylistID: playlistID,
			VideoID:    videoID,
			Position:   next,
		}).Error
	}), "add video to playlist")
}

func (r *playlistRepository) RemoveVideo(ctx context.Context, playlistID, videoID string) error {
	res := r.db.WithContext(ctx).Where("playlist_id = ? AND video_id = ?", playlistID, videoID).Delete(&models.PlaylistVideo{})
	if res.Error != nil {
		return translate(res.Error, "remove video from playlist")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
