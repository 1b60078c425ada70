package persistent

import (
	"context"

	"videotube/pkg/models"
	"videotube/services/content/internal/entity"

	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *entity.Comment) error
	GetByID(ctx context.Context, id string) (*entity.Comment, error)
	UpdateContent(ctx context.Context, id, content string) error
	Delete(ctx context.Context, id string) error
	ListByVideo(ctx context.Context, videoID string, limit, offset int) ([]*entity.Comment, error)
	CountByVideo(ctx context.Context, videoID string) (int64, error)
	DeleteByVideo(ctx context.Context, videoID string) (int64, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	m := &models.Comment{
		VideoID: comment.VideoID,
		OwnerID: comment.OwnerID,
		Content: comment.Content,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return translate(err, "create comment")
	}
	*comment = *ToCommentEntity(m)
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id string) (*entity.Comment, error) {
	var m models.Comment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translate(err, "get comment")
	}
	return ToCommentEntity(&m), nil
}

func (r *commentRepository) UpdateContent(ctx context.Context, id, content string) error {
	err := r.db.WithContext(ctx).Model(&models.Comment{}).Where("id = ?", id).Update("content", content).Error
	return translate(err, "update comment")
}

func (r *commentRepository) Delete(ctx context.Context, id string) error {
	return translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("target_type = ? AND target_id = ?", models.LikeTargetComment, id).
			Delete(&models.Like{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.Comment{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	}), "delete comment")
}

// ListByVideo returns comments newest first; id breaks ties so pages are stable.
func (r *commentRepository) ListByVideo(ctx context.Context, videoID string, limit, offset int) ([]*entity.Comment, error) {
	var rows []models.Comment
	err := r.db.WithContext(ctx).
		Where("video_id = ?", videoID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, translate(err, "list comments")
	}

	comments := make([]*entity.Comment, 0, len(rows))
	for i := range rows {
		comments = append(comments, ToCommentEntity(&rows[i]))
	}
	return comments, nil
}

func (r *commentRepository) CountByVideo(ctx context.Context, videoID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Comment{}).Where("video_id = ?", videoID).Count(&count).Error
	return count, translate(err, "count comments")
}

// DeleteByVideo purges a video's comments and the likes on them.
func (r *commentRepository) DeleteByVideo(ctx context.Context, videoID string) (int64, error) {
	var purged int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		commentIDs := tx.Model(&models.Comment{}).Select("id").Where("video_id = ?", videoID)
		if err := tx.Where("target_type = ? AND target_id IN (?)", models.LikeTargetComment, commentIDs).
			Delete(&models.Like{}).Error; err != nil {
			return err
		}
		res := tx.Where("video_id = ?", videoID).Delete(&models.Comment{})
		purged = res.RowsAffected
		return res.Error
	})
	return purged, translate(err, "purge comments")
}
