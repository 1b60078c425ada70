package persistent

import (
	"context"

	"videotube/pkg/models"
	"videotube/services/engagement/internal/entity"

	"gorm.io/gorm"
)

// channelStatsQuery folds every metric in a single round trip. Likes only
// count when they target one of the channel's live videos.
const channelStatsQuery = `
SELECT
	(SELECT COUNT(*) FROM videos WHERE owner_id = @channel AND deleted_at IS NULL) AS total_videos,
	(SELECT COALESCE(SUM(views), 0) FROM videos WHERE owner_id = @channel AND deleted_at IS NULL) AS total_views,
	(SELECT COUNT(*) FROM likes
		INNER JOIN videos ON videos.id = likes.target_id
		WHERE likes.target_type = @target AND videos.owner_id = @channel AND videos.deleted_at IS NULL) AS total_likes,
	(SELECT COUNT(*) FROM subscriptions WHERE channel_id = @channel) AS total_subscribers`

type DashboardRepository interface {
	ChannelStats(ctx context.Context, channelID string) (*entity.ChannelStats, error)
	ChannelVideos(ctx context.Context, channelID string) ([]*entity.ChannelVideo, error)
}

type dashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{db: db}
}

func (r *dashboardRepository) ChannelStats(ctx context.Context, channelID string) (*entity.ChannelStats, error) {
	var stats entity.ChannelStats
	err := r.db.WithContext(ctx).Raw(channelStatsQuery, map[string]interface{}{
		"channel": channelID,
		"target":  models.LikeTargetVideo,
	}).Scan(&stats).Error
	if err != nil {
		return nil, translate(err, "channel stats")
	}
	stats.ChannelID = channelID
	return &stats, nil
}

func (r *dashboardRepository) ChannelVideos(ctx context.Context, channelID string) ([]*entity.ChannelVideo, error) {
	var videos []*entity.ChannelVideo
	err := r.db.WithContext(ctx).
		Table("videos").
		Select("videos.id, videos.title, videos.description, videos.thumbnail_url, videos.duration, "+
			"videos.views, videos.is_published, videos.created_at, COUNT(likes.id) AS likes_count").
		Joins("LEFT JOIN likes ON likes.target_id = videos.id AND likes.target_type = ?", models.LikeTargetVideo).
		Where("videos.owner_id = ? AND videos.deleted_at IS NULL", channelID).
		Group("videos.id").
		Order("videos.created_at DESC").
		Scan(&videos).Error
	if err != nil {
		return nil, translate(err, "channel videos")
	}
	if videos == nil {
		videos = []*entity.ChannelVideo{}
	}
	return videos, nil
}
