package persistent

import (
	"context"
	"strings"

	"videotube/pkg/models"
	"videotube/services/content/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VideoFilter struct {
	Query         string
	OwnerID       string
	PublishedOnly bool
	SortColumn    string
	Descending    bool
	Limit         int
	Offset        int
}

type VideoRepository interface {
	Create(ctx context.Context, video *entity.Video) error
	GetByID(ctx context.Context, id string) (*entity.Video, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Video, error)
	List(ctx context.Context, filter VideoFilter) ([]*entity.Video, int64, error)
	Update(ctx context.Context, video *entity.Video) error
	SetPublished(ctx context.Context, id string, published bool) error
	IncrementViews(ctx context.Context, id string) error
	DeleteWithComments(ctx context.Context, id string) (int64, error)
}

type videoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) VideoRepository {
	return &videoRepository{db: db}
}

func (r *videoRepository) Create(ctx context.Context, video *entity.Video) error {
	m := ToVideoModel(video)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return translate(err, "create video")
	}
	*video = *ToVideoEntity(m)
	return nil
}

func (r *videoRepository) GetByID(ctx context.Context, id string) (*entity.Video, error) {
	var m models.Video
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translate(err, "get video")
	}
	return ToVideoEntity(&m), nil
}

func (r *videoRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Video, error) {
	result := make(map[string]*entity.Video, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var rows []models.Video
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, translate(err, "get videos")
	}
	for i := range rows {
		result[rows[i].ID] = ToVideoEntity(&rows[i])
	}
	return result, nil
}

func (r *videoRepository) List(ctx context.Context, filter VideoFilter) ([]*entity.Video, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Video{})
	if filter.OwnerID != "" {
		query = query.Where("owner_id = ?", filter.OwnerID)
	}
	if filter.PublishedOnly {
		query = query.Where("is_published = ?", true)
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		pattern := "%" + strings.ToLower(q) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translate(err, "count videos")
	}

	column := filter.SortColumn
	if column == "" {
		column = "created_at"
	}
	var rows []models.Video
	err := query.
		Order(clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: filter.Descending}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}, Desc: filter.Descending}).
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&rows).Error
	if err != nil {
		return nil, 0, translate(err, "list videos")
	}

	videos := make([]*entity.Video, 0, len(rows))
	for i := range rows {
		videos = append(videos, ToVideoEntity(&rows[i]))
	}
	return videos, total, nil
}

func (r *videoRepository) Update(ctx context.Context, video *entity.Video) error {
	err := r.db.WithContext(ctx).Model(&models.Video{}).Where("id = ?", video.ID).Updates(map[string]interface{}{
		"title":              video.Title,
		"description":        video.Description,
		"thumbnail_url":      video.ThumbnailURL,
		"thumbnail_asset_id": video.ThumbnailAssetID,
	}).Error
	return translate(err, "update video")
}

func (r *videoRepository) SetPublished(ctx context.Context, id string, published bool) error {
	err := r.db.WithContext(ctx).Model(&models.Video{}).Where("id = ?", id).Update("is_published", published).Error
	return translate(err, "toggle publish status")
}

func (r *videoRepository) IncrementViews(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Model(&models.Video{}).Where("id = ?", id).
		UpdateColumn("views", clause.Expr{SQL: "views + ?", Vars: []interface{}{1}}).Error
	return translate(err, "increment views")
}

// DeleteWithComments removes the video together with everything that points at
// it: its comments, likes on the video and on those comments, and playlist
// entries. It returns the number of comments purged.
func (r *videoRepository) DeleteWithComments(ctx context.Context, id string) (int64, error) {
	var purged int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		commentIDs := tx.Model(&models.Comment{}).Select("id").Where("video_id = ?", id)
		if err := tx.Where("target_type = ? AND target_id IN (?)", models.LikeTargetComment, commentIDs).
			Delete(&models.Like{}).Error; err != nil {
			return err
		}

		res := tx.Where("video_id = ?", id).Delete(&models.Comment{})
		if res.Error != nil {
			return res.Error
		}
		purged = res.RowsAffected

		if err := tx.Where("target_type = ? AND target_id = ?", models.LikeTargetVideo, id).
			Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("video_id = ?", id).Delete(&models.PlaylistVideo{}).Error; err != nil {
			return err
		}

		res = tx.Where("id = ?", id).Delete(&models.Video{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return 0, translate(err, "delete video")
	}
	return purged, nil
}
