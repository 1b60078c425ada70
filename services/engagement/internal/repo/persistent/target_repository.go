package persistent

import (
	"context"
	"fmt"

	"videotube/pkg/models"

	"gorm.io/gorm"
)

// TargetRepository resolves a like target to its owner. A missing target, or
// an unpublished video the viewer does not own, is ErrNotFound.
type TargetRepository interface {
	OwnerOf(ctx context.Context, target models.LikeTarget, id, viewerID string) (string, error)
}

type targetRepository struct {
	db *gorm.DB
}

func NewTargetRepository(db *gorm.DB) TargetRepository {
	return &targetRepository{db: db}
}

func (r *targetRepository) OwnerOf(ctx context.Context, target models.LikeTarget, id, viewerID string) (string, error) {
	var model interface{}
	switch target {
	case models.LikeTargetVideo:
		model = &models.Video{}
	case models.LikeTargetComment:
		model = &models.Comment{}
	case models.LikeTargetTweet:
		model = &models.Tweet{}
	default:
		return "", fmt.Errorf("unknown like target %q", target)
	}

	query := r.db.WithContext(ctx).Model(model).Where("id = ?", id)
	if target == models.LikeTargetVideo {
		query = query.Where("is_published = ? OR owner_id = ?", true, viewerID)
	}

	var owners []string
	if err := query.Limit(1).Pluck("owner_id", &owners).Error; err != nil {
		return "", translate(err, "lookup target")
	}
	if len(owners) == 0 {
		return "", ErrNotFound
	}
	return owners[0], nil
}
