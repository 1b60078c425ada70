package persistent

import (
	"context"
	"time"

	"videotube/pkg/models"
	"videotube/services/engagement/internal/entity"

	"gorm.io/gorm"
)

type LikeRepository interface {
	Find(ctx context.Context, actorID string, target models.LikeTarget, targetID string) (*entity.Like, error)
	Create(ctx context.Context, actorID string, target models.LikeTarget, targetID string) (*entity.Like, error)
	Remove(ctx context.Context, id string) error
	LikedVideos(ctx context.Context, actorID string) ([]*entity.LikedVideo, error)
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) Find(ctx context.Context, actorID string, target models.LikeTarget, targetID string) (*entity.Like, error) {
	var m models.Like
	err := r.db.WithContext(ctx).
		Where("liked_by = ? AND target_type = ? AND target_id = ?", actorID, target, targetID).
		First(&m).Error
	if err != nil {
		return nil, translate(err, "find like")
	}
	return ToLikeEntity(&m), nil
}

// Create relies on idx_likes_actor_target; a concurrent duplicate surfaces as
// ErrAlreadyExists.
func (r *likeRepository) Create(ctx context.Context, actorID string, target models.LikeTarget, targetID string) (*entity.Like, error) {
	m := &models.Like{LikedBy: actorID, TargetType: target, TargetID: targetID}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, translate(err, "create like")
	}
	return ToLikeEntity(m), nil
}

func (r *likeRepository) Remove(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Like{})
	if res.Error != nil {
		return translate(res.Error, "remove like")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

type likedVideoRow struct {
	ID           string
	OwnerID      string
	Title        string
	Description  string
	VideoFileURL string
	ThumbnailURL string
	Duration     float64
	Views        int64
	CreatedAt    time.Time
	LikedAt      time.Time
}

// LikedVideos joins the actor's video likes with the videos they still point
// at and may see, most recent like first.
func (r *likeRepository) LikedVideos(ctx context.Context, actorID string) ([]*entity.LikedVideo, error) {
	var rows []likedVideoRow
	err := r.db.WithContext(ctx).
		Table("likes").
		Select("videos.id, videos.owner_id, videos.title, videos.description, videos.video_file_url, "+
			"videos.thumbnail_url, videos.duration, videos.views, videos.created_at, likes.created_at AS liked_at").
		Joins("INNER JOIN videos ON videos.id = likes.target_id AND videos.deleted_at IS NULL "+
			"AND (videos.is_published = TRUE OR videos.owner_id = likes.liked_by)").
		Where("likes.liked_by = ? AND likes.target_type = ?", actorID, models.LikeTargetVideo).
		Order("likes.created_at DESC").
		Order("likes.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, translate(err, "list liked videos")
	}

	videos := make([]*entity.LikedVideo, 0, len(rows))
	for _, row := range rows {
		videos = append(videos, &entity.LikedVideo{
			ID:           row.ID,
			Title:        row.Title,
			Description:  row.Description,
			VideoFileURL: row.VideoFileURL,
			ThumbnailURL: row.ThumbnailURL,
			Duration:     row.Duration,
			Views:        row.Views,
			OwnerID:      row.OwnerID,
			CreatedAt:    row.CreatedAt,
			LikedAt:      row.LikedAt,
		})
	}
	return videos, nil
}
