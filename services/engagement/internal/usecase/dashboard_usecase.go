package usecase

import (
	"context"

	"videotube/pkg/apperr"
	"videotube/pkg/logger"
	"videotube/services/engagement/internal/entity"
	"videotube/services/engagement/internal/repo/persistent"

	"go.opentelemetry.io/otel/attribute"
)

type DashboardUseCase interface {
	GetChannelStats(ctx context.Context, channelID string) (*entity.ChannelStats, error)
	GetChannelVideos(ctx context.Context, channelID string) ([]*entity.ChannelVideo, error)
}

type dashboardUseCase struct {
	dashboardRepo persistent.DashboardRepository
	logger        *logger.Logger
}

func NewDashboardUseCase(dashboardRepo persistent.DashboardRepository, logger *logger.Logger) DashboardUseCase {
	return &dashboardUseCase{
		dashboardRepo: dashboardRepo,
		logger:        logger,
	}
}

// GetChannelStats aggregates live counts; a channel without videos reports
// zeros rather than NotFound.
func (uc *dashboardUseCase) GetChannelStats(ctx context.Context, channelID string) (*entity.ChannelStats, error) {
	ctx, span := tracer.Start(ctx, "Engagement.Dashboard.Stats")
	defer span.End()
	span.SetAttributes(attribute.String("dashboard.channel_id", channelID))

	if !canonicalID(&channelID) {
		return nil, apperr.Validation("Invalid channel id")
	}

	stats, err := uc.dashboardRepo.ChannelStats(ctx, channelID)
	if err != nil {
		span.RecordError(err)
		uc.logger.Error("Failed to aggregate stats for channel %s: %v", channelID, err)
		return nil, apperr.Internal(err, "Failed to fetch channel stats")
	}
	return stats, nil
}

func (uc *dashboardUseCase) GetChannelVideos(ctx context.Context, channelID string) ([]*entity.ChannelVideo, error) {
	ctx, span := tracer.Start(ctx, "Engagement.Dashboard.Videos")
	defer span.End()
	span.SetAttributes(attribute.String("dashboard.channel_id", channelID))

	if !canonicalID(&channelID) {
		return nil, apperr.Validation("Invalid channel id")
	}

	videos, err := uc.dashboardRepo.ChannelVideos(ctx, channelID)
	if err != nil {
		span.RecordError(err)
		uc.logger.Error("Failed to list videos for channel %s: %v", channelID, err)
		return nil, apperr.Internal(err, "Failed to fetch channel videos")
	}
	return videos, nil
}
