package persistent

import (
	"context"

	"videotube/pkg/models"

	"gorm.io/gorm"
)

// LikeReader gives content views live like counts. Writes belong to the
// engagement service.
type LikeReader interface {
	CountByTargets(ctx context.Context, target models.LikeTarget, ids []string) (map[string]int64, error)
	LikedTargets(ctx context.Context, actorID string, target models.LikeTarget, ids []string) (map[string]bool, error)
}

type likeReader struct {
	db *gorm.DB
}

func NewLikeReader(db *gorm.DB) LikeReader {
	return &likeReader{db: db}
}

type targetCount struct {
	TargetID string
	Total    int64
}

func (r *likeReader) CountByTargets(ctx context.Context, target models.LikeTarget, ids []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(ids))
	if len(ids) == 0 {
		return counts, nil
	}

	var rows []targetCount
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Select("target_id, COUNT(*) AS total").
		Where("target_type = ? AND target_id IN ?", target, ids).
		Group("target_id").
		Scan(&rows).Error
	if err != nil {
		return nil, translate(err, "count likes")
	}
	for _, row := range rows {
		counts[row.TargetID] = row.Total
	}
	return counts, nil
}

func (r *likeReader) LikedTargets(ctx context.Context, actorID string, target models.LikeTarget, ids []string) (map[string]bool, error) {
	liked := make(map[string]bool, len(ids))
	if actorID == "" || len(ids) == 0 {
		return liked, nil
	}

	var targetIDs []string
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("liked_by = ? AND target_type = ? AND target_id IN ?", actorID, target, ids).
		Pluck("target_id", &targetIDs).Error
	if err != nil {
		return nil, translate(err, "check likes")
	}
	for _, id := range targetIDs {
		liked[id] = true
	}
	return liked, nil
}
