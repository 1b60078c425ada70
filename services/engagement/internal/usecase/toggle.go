package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"videotube/pkg/apperr"
	"videotube/pkg/identity"
	"videotube/pkg/lock"
	"videotube/pkg/logger"
	"videotube/pkg/models"
	"videotube/pkg/queue"
	"videotube/services/engagement/internal/entity"
	"videotube/services/engagement/internal/repo/persistent"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("engagement")

const publishTimeout = 5 * time.Second

var likeEvents = map[models.LikeTarget]queue.EventType{
	models.LikeTargetVideo:   queue.EventVideoLike,
	models.LikeTargetComment: queue.EventCommentLike,
	models.LikeTargetTweet:   queue.EventTweetLike,
}

// ToggleEngine flips a relationship between an actor and a target. Each call
// inserts or deletes exactly one row.
type ToggleEngine interface {
	ToggleLike(ctx context.Context, target models.LikeTarget, targetID, actorID string) (*entity.LikeToggle, error)
	ToggleSubscription(ctx context.Context, channelID, actorID string) (*entity.SubscriptionToggle, error)
	// Drain waits for in-flight event publishes or for ctx to end.
	Drain(ctx context.Context) error
}

type toggleEngine struct {
	likes     persistent.LikeRepository
	subs      persistent.SubscriptionRepository
	targets   persistent.TargetRepository
	users     identity.Store
	locker    lock.Locker
	publisher queue.Publisher
	logger    *logger.Logger

	pending sync.WaitGroup
}

func NewToggleEngine(
	likes persistent.LikeRepository,
	subs persistent.SubscriptionRepository,
	targets persistent.TargetRepository,
	users identity.Store,
	locker lock.Locker,
	publisher queue.Publisher,
	logger *logger.Logger,
) ToggleEngine {
	return &toggleEngine{
		likes:     likes,
		subs:      subs,
		targets:   targets,
		users:     users,
		locker:    locker,
		publisher: publisher,
		logger:    logger,
	}
}

// toggleOps are the store operations of one relation. find reports an absent
// row as persistent.ErrNotFound, create reports a duplicate as
// persistent.ErrAlreadyExists.
type toggleOps[T any] struct {
	find   func(ctx context.Context) (T, error)
	create func(ctx context.Context) (T, error)
	remove func(ctx context.Context, record T) error
}

// toggle runs find-then-act inside the key's critical section. If another
// writer outside the lock wins the insert, the unique index rejects ours and
// the existing row is removed instead, which is what a second sequential
// toggle would have done.
func toggle[T any](ctx context.Context, locker lock.Locker, key string, ops toggleOps[T]) (created bool, record T, err error) {
	release, err := locker.Acquire(ctx, key)
	if err != nil {
		return false, record, apperr.Internal(err, "Failed to acquire toggle lock")
	}
	defer release()

	existing, err := ops.find(ctx)
	switch {
	case err == nil:
		if err := ops.remove(ctx, existing); err != nil && !errors.Is(err, persistent.ErrNotFound) {
			return false, record, err
		}
		return false, existing, nil
	case !errors.Is(err, persistent.ErrNotFound):
		return false, record, err
	}

	inserted, err := ops.create(ctx)
	if err == nil {
		return true, inserted, nil
	}
	if !errors.Is(err, persistent.ErrAlreadyExists) {
		return false, record, err
	}

	winner, err := ops.find(ctx)
	if errors.Is(err, persistent.ErrNotFound) {
		return false, record, nil
	}
	if err != nil {
		return false, record, err
	}
	if err := ops.remove(ctx, winner); err != nil && !errors.Is(err, persistent.ErrNotFound) {
		return false, record, err
	}
	return false, winner, nil
}

func toggleKey(relation, targetID, actorID string) string {
	return fmt.Sprintf("toggle:%s:%s:%s", relation, targetID, actorID)
}

func (e *toggleEngine) ToggleLike(ctx context.Context, target models.LikeTarget, targetID, actorID string) (*entity.LikeToggle, error) {
	ctx, span := tracer.Start(ctx, "Engagement.Toggle.Like")
	defer span.End()
	span.SetAttributes(
		attribute.String("like.target", string(target)),
		attribute.String("like.target_id", targetID),
	)

	if !target.Valid() {
		return nil, apperr.Validation("Invalid like target")
	}
	if !canonicalID(&targetID) {
		return nil, apperr.Validation("Invalid %s id", target)
	}
	if actorID == "" {
		return nil, apperr.Unauthorized("User ID not found")
	}

	ownerID, err := e.targets.OwnerOf(ctx, target, targetID, actorID)
	if errors.Is(err, persistent.ErrNotFound) {
		return nil, apperr.NotFound("%s not found", title(string(target)))
	}
	if err != nil {
		span.RecordError(err)
		return nil, apperr.Internal(err, "Failed to load "+string(target))
	}

	created, record, err := toggle(ctx, e.locker, toggleKey(string(target)+"_like", targetID, actorID), toggleOps[*entity.Like]{
		find: func(ctx context.Context) (*entity.Like, error) {
			return e.likes.Find(ctx, actorID, target, targetID)
		},
		create: func(ctx context.Context) (*entity.Like, error) {
			return e.likes.Create(ctx, actorID, target, targetID)
		},
		remove: func(ctx context.Context, like *entity.Like) error {
			return e.likes.Remove(ctx, like.ID)
		},
	})
	if err != nil {
		span.RecordError(err)
		e.logger.Error("Failed to toggle %s like: %v", target, err)
		return nil, toggleErr(err, "Failed to toggle like")
	}

	if !created {
		return &entity.LikeToggle{State: entity.StateUnliked, Record: record}, nil
	}

	e.notify(ctx, queue.EngagementEvent{
		Type:       likeEvents[target],
		ActorID:    actorID,
		OwnerID:    ownerID,
		TargetID:   targetID,
		OccurredAt: record.CreatedAt,
	})
	return &entity.LikeToggle{State: entity.StateLiked, IsLiked: true, Record: record}, nil
}

func (e *toggleEngine) ToggleSubscription(ctx context.Context, channelID, actorID string) (*entity.SubscriptionToggle, error) {
	ctx, span := tracer.Start(ctx, "Engagement.Toggle.Subscription")
	defer span.End()
	span.SetAttributes(attribute.String("subscription.channel_id", channelID))

	if !canonicalID(&channelID) {
		return nil, apperr.Validation("Invalid channel id")
	}
	if actorID == "" {
		return nil, apperr.Unauthorized("User ID not found")
	}
	if channelID == actorID {
		return nil, apperr.Validation("You cannot subscribe to your own channel")
	}

	exists, err := e.users.Exists(ctx, channelID)
	if err != nil {
		span.RecordError(err)
		return nil, apperr.Internal(err, "Failed to load channel")
	}
	if !exists {
		return nil, apperr.NotFound("Channel not found")
	}

	created, record, err := toggle(ctx, e.locker, toggleKey("subscription", channelID, actorID), toggleOps[*entity.Subscription]{
		find: func(ctx context.Context) (*entity.Subscription, error) {
			return e.subs.Find(ctx, actorID, channelID)
		},
		create: func(ctx context.Context) (*entity.Subscription, error) {
			return e.subs.Create(ctx, actorID, channelID)
		},
		remove: func(ctx context.Context, sub *entity.Subscription) error {
			return e.subs.Remove(ctx, sub.ID)
		},
	})
	if err != nil {
		span.RecordError(err)
		e.logger.Error("Failed to toggle subscription: %v", err)
		return nil, toggleErr(err, "Failed to toggle subscription")
	}

	if !created {
		return &entity.SubscriptionToggle{State: entity.StateUnsubscribed, Record: record}, nil
	}

	e.notify(ctx, queue.EngagementEvent{
		Type:       queue.EventSubscribe,
		ActorID:    actorID,
		OwnerID:    channelID,
		TargetID:   channelID,
		OccurredAt: record.CreatedAt,
	})
	return &entity.SubscriptionToggle{State: entity.StateSubscribed, IsSubscribed: true, Record: record}, nil
}

// notify publishes in the background; a queue outage never fails a toggle.
// The publish span is linked to, not parented by, the request span.
func (e *toggleEngine) notify(reqCtx context.Context, event queue.EngagementEvent) {
	if e.publisher == nil || event.OwnerID == event.ActorID {
		return
	}
	link := trace.LinkFromContext(reqCtx)

	e.pending.Add(1)
	go func() {
		defer e.pending.Done()
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		ctx, span := tracer.Start(ctx, "Engagement.Publish", trace.WithLinks(link))
		defer span.End()

		e.logger.Info("[NOTIFICATION QUEUE] Publishing %s event: actor_id=%s, owner_id=%s, target_id=%s", event.Type, event.ActorID, event.OwnerID, event.TargetID)
		if err := e.publisher.PublishEngagementEvent(ctx, event); err != nil {
			span.RecordError(err)
			e.logger.Error("[NOTIFICATION QUEUE] Failed to publish %s event: %v", event.Type, err)
			return
		}
		e.logger.Info("[NOTIFICATION QUEUE] Successfully published %s event", event.Type)
	}()
}

func (e *toggleEngine) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		e.pending.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func toggleErr(err error, message string) error {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return err
	}
	return apperr.Internal(err, message)
}

// canonicalID rewrites *id to its canonical form so lock keys and lookups
// agree on one spelling per id.
func canonicalID(id *string) bool {
	parsed, err := uuid.Parse(*id)
	if err != nil {
		return false
	}
	*id = parsed.String()
	return true
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
