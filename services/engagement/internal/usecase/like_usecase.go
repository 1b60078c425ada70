package usecase

import (
	"context"

	"videotube/pkg/apperr"
	"videotube/pkg/identity"
	"videotube/pkg/logger"
	"videotube/pkg/models"
	"videotube/services/engagement/internal/entity"
	"videotube/services/engagement/internal/repo/persistent"
)

type LikeUseCase interface {
	ToggleVideoLike(ctx context.Context, videoID, actorID string) (*entity.LikeToggle, error)
	ToggleCommentLike(ctx context.Context, commentID, actorID string) (*entity.LikeToggle, error)
	ToggleTweetLike(ctx context.Context, tweetID, actorID string) (*entity.LikeToggle, error)
	GetLikedVideos(ctx context.Context, actorID string) ([]*entity.LikedVideo, error)
}

type likeUseCase struct {
	engine   ToggleEngine
	likeRepo persistent.LikeRepository
	users    identity.Store
	logger   *logger.Logger
}

func NewLikeUseCase(engine ToggleEngine, likeRepo persistent.LikeRepository, users identity.Store, logger *logger.Logger) LikeUseCase {
	return &likeUseCase{
		engine:   engine,
		likeRepo: likeRepo,
		users:    users,
		logger:   logger,
	}
}

func (uc *likeUseCase) ToggleVideoLike(ctx context.Context, videoID, actorID string) (*entity.LikeToggle, error) {
	return uc.engine.ToggleLike(ctx, models.LikeTargetVideo, videoID, actorID)
}

func (uc *likeUseCase) ToggleCommentLike(ctx context.Context, commentID, actorID string) (*entity.LikeToggle, error) {
	return uc.engine.ToggleLike(ctx, models.LikeTargetComment, commentID, actorID)
}

func (uc *likeUseCase) ToggleTweetLike(ctx context.Context, tweetID, actorID string) (*entity.LikeToggle, error) {
	return uc.engine.ToggleLike(ctx, models.LikeTargetTweet, tweetID, actorID)
}

// GetLikedVideos lists every live video the actor likes, most recently liked
// first, each with its owner's profile.
func (uc *likeUseCase) GetLikedVideos(ctx context.Context, actorID string) ([]*entity.LikedVideo, error) {
	ctx, span := tracer.Start(ctx, "Engagement.Likes.LikedVideos")
	defer span.End()

	if actorID == "" {
		return nil, apperr.Unauthorized("User ID not found")
	}

	videos, err := uc.likeRepo.LikedVideos(ctx, actorID)
	if err != nil {
		span.RecordError(err)
		uc.logger.Error("Failed to load liked videos for %s: %v", actorID, err)
		return nil, apperr.Internal(err, "Failed to fetch liked videos")
	}

	ownerIDs := make([]string, 0, len(videos))
	for _, v := range videos {
		ownerIDs = append(ownerIDs, v.OwnerID)
	}
	owners, err := uc.users.GetUsersByIDs(ctx, ownerIDs)
	if err != nil {
		span.RecordError(err)
		return nil, apperr.Internal(err, "Failed to load video owners")
	}
	for _, v := range videos {
		v.Owner = owners[v.OwnerID]
	}
	return videos, nil
}
