package usecase

import (
	"context"

	"videotube/pkg/apperr"
	"videotube/pkg/identity"
	"videotube/pkg/logger"
	"videotube/pkg/models"
	"videotube/pkg/pagination"
	"videotube/services/content/internal/entity"
	"videotube/services/content/internal/repo/persistent"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
)

type CommentUseCase interface {
	GetVideoComments(ctx context.Context, videoID, actorID string, params pagination.Params) (*entity.CommentFeed, error)
	AddComment(ctx context.Context, videoID, actorID, content string) (*entity.Comment, error)
	UpdateComment(ctx context.Context, commentID, actorID, content string) (*entity.Comment, error)
	DeleteComment(ctx context.Context, commentID, actorID string) error
}

type commentUseCase struct {
	commentRepo persistent.CommentRepository
	videoRepo   persistent.VideoRepository
	likeRepo    persistent.LikeReader
	users       identity.Store
	guard       OwnershipGuard
	logger      *logger.Logger
}

func NewCommentUseCase(
	commentRepo persistent.CommentRepository,
	videoRepo persistent.VideoRepository,
	likeRepo persistent.LikeReader,
	users identity.Store,
	guard OwnershipGuard,
	logger *logger.Logger,
) CommentUseCase {
	return &commentUseCase{
		commentRepo: commentRepo,
		videoRepo:   videoRepo,
		likeRepo:    likeRepo,
		users:       users,
		guard:       guard,
		logger:      logger,
	}
}

// GetVideoComments returns one page of the video's comments, newest first,
// each with its owner profile and live like metadata for actorID.
// A video that no longer exists has its leftover comments purged.
func (uc *commentUseCase) GetVideoComments(ctx context.Context, videoID, actorID string, params pagination.Params) (*entity.CommentFeed, error) {
	ctx, span := tracer.Start(ctx, "Content.CommentUseCase.GetVideoComments")
	defer span.End()
	span.SetAttributes(attribute.String("video.id", videoID))

	if err := requireID(entity.KindVideo, &videoID); err != nil {
		return nil, err
	}

	video, err := uc.videoRepo.GetByID(ctx, videoID)
	if errors.Is(err, persistent.ErrNotFound) {
		purged, err := uc.commentRepo.DeleteByVideo(ctx, videoID)
		if err != nil {
			span.RecordError(errors.Wrap(err, "failed to purge orphaned comments"))
			return nil, apperr.Internal(err, "Failed to clean up comments")
		}
		if purged > 0 {
			uc.logger.Info("Purged %d orphaned comments of missing video %s", purged, videoID)
		}
		return nil, apperr.NotFound("There is no such video. All associated comments have been deleted.")
	}
	if err != nil {
		span.RecordError(err)
		return nil, apperr.Internal(err, "Failed to fetch video")
	}
	if !visibleTo(video, actorID) {
		return nil, apperr.NotFound("Video not found")
	}

	params = params.Normalize()
	total, err := uc.commentRepo.CountByVideo(ctx, videoID)
	if err != nil {
		span.RecordError(err)
		return nil, apperr.Internal(err, "Failed to count comments")
	}
	if total == 0 {
		return &entity.CommentFeed{
			Page:       pagination.NewPage([]*entity.CommentView{}, params, 0),
			NoComments: true,
		}, nil
	}

	comments, err := uc.commentRepo.ListByVideo(ctx, videoID, params.Limit, params.Offset())
	if err != nil {
		span.RecordError(err)
		return nil, apperr.Internal(err, "Failed to fetch comments")
	}

	ids := make([]string, 0, len(comments))
	ownerIDs := make([]string, 0, len(comments))
	for _, c := range comments {
		ids = append(ids, c.ID)
		ownerIDs = append(ownerIDs, c.OwnerID)
	}

	owners, err := uc.users.GetUsersByIDs(ctx, ownerIDs)
	if err != nil {
		span.RecordError(err)
		return nil, apperr.Internal(err, "Failed to fetch comment owners")
	}
	counts, err := uc.likeRepo.CountByTargets(ctx, models.LikeTargetComment, ids)
	if err != nil {
		span.RecordError(err)
		return nil, apperr.Internal(err, "Failed to count likes")
	}
	liked, err := uc.likeRepo.LikedTargets(ctx, actorID, models.LikeTargetComment, ids)
	if err != nil {
		span.RecordError(err)
		return nil, apperr.Internal(err, "Failed to check like status")
	}

	views := make([]*entity.CommentView, 0, len(comments))
	for _, c := range comments {
		views = append(views, &entity.CommentView{
			ID:         c.ID,
			Content:    c.Content,
			CreatedAt:  c.CreatedAt,
			Owner:      owners[c.OwnerID],
			LikesCount: counts[c.ID],
			IsLiked:    liked[c.ID],
		})
	}

	return &entity.CommentFeed{Page: pagination.NewPage(views, params, total)}, nil
}

func (uc *commentUseCase) AddComment(ctx context.Context, videoID, actorID, content string) (*entity.Comment, error) {
	if err := requireID(entity.KindVideo, &videoID); err != nil {
		return nil, err
	}
	content, err := requireText(content, "Content")
	if err != nil {
		return nil, err
	}

	if _, err := visibleVideo(ctx, uc.videoRepo, videoID, actorID); err != nil {
		return nil, err
	}

	comment := &entity.Comment{VideoID: videoID, OwnerID: actorID, Content: content}
	if err := uc.commentRepo.Create(ctx, comment); err != nil {
		uc.logger.Error("Failed to create comment: %v", err)
		return nil, apperr.Internal(err, "Failed to add comment")
	}
	return comment, nil
}

func (uc *commentUseCase) UpdateComment(ctx context.Context, commentID, actorID, content string) (*entity.Comment, error) {
	if err := requireID(entity.KindComment, &commentID); err != nil {
		return nil, err
	}
	content, err := requireText(content, "Content")
	if err != nil {
		return nil, err
	}
	if err := uc.guard.Authorize(ctx, entity.KindComment, commentID, actorID); err != nil {
		return nil, err
	}

	if err := uc.commentRepo.UpdateContent(ctx, commentID, content); err != nil {
		return nil, storeErr(err, entity.KindComment, "update comment")
	}
	comment, err := uc.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, storeErr(err, entity.KindComment, "fetch comment")
	}
	return comment, nil
}

func (uc *commentUseCase) DeleteComment(ctx context.Context, commentID, actorID string) error {
	if err := requireID(entity.KindComment, &commentID); err != nil {
		return err
	}
	if err := uc.guard.Authorize(ctx, entity.KindComment, commentID, actorID); err != nil {
		return err
	}
	if err := uc.commentRepo.Delete(ctx, commentID); err != nil {
		uc.logger.Error("Failed to delete comment %s: %v", commentID, err)
		return storeErr(err, entity.KindComment, "delete comment")
	}
	return nil
}
