package usecase

import (
	"context"

	"videotube/pkg/apperr"
	"videotube/pkg/identity"
	"videotube/pkg/logger"
	"videotube/services/engagement/internal/entity"
	"videotube/services/engagement/internal/repo/persistent"

	"go.opentelemetry.io/otel/attribute"
)

type SubscriptionUseCase interface {
	ToggleSubscription(ctx context.Context, channelID, actorID string) (*entity.SubscriptionToggle, error)
	GetChannelSubscribers(ctx context.Context, channelID string) ([]*entity.SubscriberSummary, error)
	GetSubscribedChannels(ctx context.Context, subscriberID string) ([]*entity.SubscriberSummary, error)
	IsSubscribed(ctx context.Context, channelID, actorID string) (bool, error)
}

type subscriptionUseCase struct {
	engine  ToggleEngine
	subRepo persistent.SubscriptionRepository
	users   identity.Store
	logger  *logger.Logger
}

func NewSubscriptionUseCase(engine ToggleEngine, subRepo persistent.SubscriptionRepository, users identity.Store, logger *logger.Logger) SubscriptionUseCase {
	return &subscriptionUseCase{
		engine:  engine,
		subRepo: subRepo,
		users:   users,
		logger:  logger,
	}
}

func (uc *subscriptionUseCase) ToggleSubscription(ctx context.Context, channelID, actorID string) (*entity.SubscriptionToggle, error) {
	return uc.engine.ToggleSubscription(ctx, channelID, actorID)
}

func (uc *subscriptionUseCase) GetChannelSubscribers(ctx context.Context, channelID string) ([]*entity.SubscriberSummary, error) {
	ctx, span := tracer.Start(ctx, "Engagement.Subscriptions.Subscribers")
	defer span.End()
	span.SetAttributes(attribute.String("subscription.channel_id", channelID))

	if !canonicalID(&channelID) {
		return nil, apperr.Validation("Invalid channel id")
	}

	edges, err := uc.subRepo.ListSubscribers(ctx, channelID)
	if err != nil {
		span.RecordError(err)
		uc.logger.Error("Failed to list subscribers of %s: %v", channelID, err)
		return nil, apperr.Internal(err, "Failed to fetch subscribers")
	}
	return uc.summaries(ctx, edges)
}

func (uc *subscriptionUseCase) GetSubscribedChannels(ctx context.Context, subscriberID string) ([]*entity.SubscriberSummary, error) {
	ctx, span := tracer.Start(ctx, "Engagement.Subscriptions.Channels")
	defer span.End()
	span.SetAttributes(attribute.String("subscription.subscriber_id", subscriberID))

	if !canonicalID(&subscriberID) {
		return nil, apperr.Validation("Invalid subscriber id")
	}

	edges, err := uc.subRepo.ListChannels(ctx, subscriberID)
	if err != nil {
		span.RecordError(err)
		uc.logger.Error("Failed to list channels of %s: %v", subscriberID, err)
		return nil, apperr.Internal(err, "Failed to fetch subscribed channels")
	}
	return uc.summaries(ctx, edges)
}

func (uc *subscriptionUseCase) IsSubscribed(ctx context.Context, channelID, actorID string) (bool, error) {
	if !canonicalID(&channelID) {
		return false, apperr.Validation("Invalid channel id")
	}
	if actorID == "" {
		return false, nil
	}

	ok, err := uc.subRepo.Exists(ctx, actorID, channelID)
	if err != nil {
		return false, apperr.Internal(err, "Failed to check subscription")
	}
	return ok, nil
}

// summaries keeps edge order and drops users that no longer exist.
func (uc *subscriptionUseCase) summaries(ctx context.Context, edges []persistent.SubscriptionEdge) ([]*entity.SubscriberSummary, error) {
	ids := make([]string, 0, len(edges))
	for _, e := range edges {
		ids = append(ids, e.UserID)
	}
	profiles, err := uc.users.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, apperr.Internal(err, "Failed to load user profiles")
	}

	result := make([]*entity.SubscriberSummary, 0, len(edges))
	for _, e := range edges {
		profile, ok := profiles[e.UserID]
		if !ok {
			continue
		}
		result = append(result, &entity.SubscriberSummary{UserProfile: profile, SubscribedAt: e.CreatedAt})
	}
	return result, nil
}
