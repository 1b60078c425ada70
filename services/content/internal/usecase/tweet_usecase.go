package usecase

import (
	"context"

	"videotube/pkg/apperr"
	"videotube/pkg/identity"
	"videotube/pkg/logger"
	"videotube/pkg/models"
	"videotube/services/content/internal/entity"
	"videotube/services/content/internal/repo/persistent"
)

type TweetUseCase interface {
	CreateTweet(ctx context.Context, actorID, content string) (*entity.Tweet, error)
	GetUserTweets(ctx context.Context, userID, actorID string) ([]*entity.TweetView, error)
	UpdateTweet(ctx context.Context, tweetID, actorID, content string) (*entity.Tweet, error)
	DeleteTweet(ctx context.Context, tweetID, actorID string) error
}

type tweetUseCase struct {
	tweetRepo persistent.TweetRepository
	likeRepo  persistent.LikeReader
	users     identity.Store
	guard     OwnershipGuard
	logger    *logger.Logger
}

func NewTweetUseCase(
	tweetRepo persistent.TweetRepository,
	likeRepo persistent.LikeReader,
	users identity.Store,
	guard OwnershipGuard,
	logger *logger.Logger,
) TweetUseCase {
	return &tweetUseCase{
		tweetRepo: tweetRepo,
		likeRepo:  likeRepo,
		users:     users,
		guard:     guard,
		logger:    logger,
	}
}

func (uc *tweetUseCase) CreateTweet(ctx context.Context, actorID, content string) (*entity.Tweet, error) {
	content, err := requireText(content, "Content")
	if err != nil {
		return nil, err
	}

	tweet := &entity.Tweet{OwnerID: actorID, Content: content}
	if err := uc.tweetRepo.Create(ctx, tweet); err != nil {
		uc.logger.Error("Failed to create tweet: %v", err)
		return nil, apperr.Internal(err, "Failed to create tweet")
	}
	return tweet, nil
}

func (uc *tweetUseCase) GetUserTweets(ctx context.Context, userID, actorID string) ([]*entity.TweetView, error) {
	ctx, span := tracer.Start(ctx, "Content.TweetUseCase.GetUserTweets")
	defer span.End()

	if !canonicalID(&userID) {
		return nil, apperr.Validation("Invalid user id")
	}
	owner, err := uc.users.GetUserByID(ctx, userID)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return nil, err
		}
		span.RecordError(err)
		return nil, apperr.Internal(err, "Failed to fetch user")
	}

	tweets, err := uc.tweetRepo.ListByOwner(ctx, userID)
	if err != nil {
		span.RecordError(err)
		return nil, apperr.Internal(err, "Failed to fetch tweets")
	}

	ids := make([]string, 0, len(tweets))
	for _, t := range tweets {
		ids = append(ids, t.ID)
	}
	counts, err := uc.likeRepo.CountByTargets(ctx, models.LikeTargetTweet, ids)
	if err != nil {
		span.RecordError(err)
		return nil, apperr.Internal(err, "Failed to count likes")
	}
	liked, err := uc.likeRepo.LikedTargets(ctx, actorID, models.LikeTargetTweet, ids)
	if err != nil {
		span.RecordError(err)
		return nil, apperr.Internal(err, "Failed to check like status")
	}

	views := make([]*entity.TweetView, 0, len(tweets))
	for _, t := range tweets {
		views = append(views, &entity.TweetView{
			Tweet:      t,
			Owner:      owner,
			LikesCount: counts[t.ID],
			IsLiked:    liked[t.ID],
		})
	}
	return views, nil
}

func (uc *tweetUseCase) UpdateTweet(ctx context.Context, tweetID, actorID, content string) (*entity.Tweet, error) {
	if err := requireID(entity.KindTweet, &tweetID); err != nil {
		return nil, err
	}
	content, err := requireText(content, "Content")
	if err != nil {
		return nil, err
	}
	if err := uc.guard.Authorize(ctx, entity.KindTweet, tweetID, actorID); err != nil {
		return nil, err
	}

	if err := uc.tweetRepo.UpdateContent(ctx, tweetID, content); err != nil {
		return nil, storeErr(err, entity.KindTweet, "update tweet")
	}
	tweet, err := uc.tweetRepo.GetByID(ctx, tweetID)
	if err != nil {
		return nil, storeErr(err, entity.KindTweet, "fetch tweet")
	}
	return tweet, nil
}

func (uc *tweetUseCase) DeleteTweet(ctx context.Context, tweetID, actorID string) error {
	if err := requireID(entity.KindTweet, &tweetID); err != nil {
		return err
	}
	if err := uc.guard.Authorize(ctx, entity.KindTweet, tweetID, actorID); err != nil {
		return err
	}
	if err := uc.tweetRepo.Delete(ctx, tweetID); err != nil {
		uc.logger.Error("Failed to delete tweet %s: %v", tweetID, err)
		return storeErr(err, entity.KindTweet, "delete tweet")
	}
	return nil
}
