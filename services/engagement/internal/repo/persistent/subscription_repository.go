package persistent

import (
	"context"
	"time"

	"videotube/pkg/models"
	"videotube/services/engagement/internal/entity"

	"gorm.io/gorm"
)

// SubscriptionEdge is one side of a subscription as seen from the other side.
type SubscriptionEdge struct {
	UserID    string
	CreatedAt time.Time
}

type SubscriptionRepository interface {
	Find(ctx context.Context, subscriberID, channelID string) (*entity.Subscription, error)
	Create(ctx context.Context, subscriberID, channelID string) (*entity.Subscription, error)
	Remove(ctx context.Context, id string) error
	Exists(ctx context.Context, subscriberID, channelID string) (bool, error)
	ListSubscribers(ctx context.Context, channelID string) ([]SubscriptionEdge, error)
	ListChannels(ctx context.Context, subscriberID string) ([]SubscriptionEdge, error)
}

type subscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) Find(ctx context.Context, subscriberID, channelID string) (*entity.Subscription, error) {
	var m models.Subscription
	err := r.db.WithContext(ctx).
		Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		First(&m).Error
	if err != nil {
		return nil, translate(err, "find subscription")
	}
	return ToSubscriptionEntity(&m), nil
}

func (r *subscriptionRepository) Create(ctx context.Context, subscriberID, channelID string) (*entity.Subscription, error) {
	m := &models.Subscription{SubscriberID: subscriberID, ChannelID: channelID}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, translate(err, "create subscription")
	}
	return ToSubscriptionEntity(m), nil
}

func (r *subscriptionRepository) Remove(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Subscription{})
	if res.Error != nil {
		return translate(res.Error, "remove subscription")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *subscriptionRepository) Exists(ctx context.Context, subscriberID, channelID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Subscription{}).
		Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		Count(&count).Error
	return count > 0, translate(err, "check subscription")
}

func (r *subscriptionRepository) ListSubscribers(ctx context.Context, channelID string) ([]SubscriptionEdge, error) {
	return r.edges(ctx, "subscriber_id", "channel_id = ?", channelID)
}

func (r *subscriptionRepository) ListChannels(ctx context.Context, subscriberID string) ([]SubscriptionEdge, error) {
	return r.edges(ctx, "channel_id", "subscriber_id = ?", subscriberID)
}

func (r *subscriptionRepository) edges(ctx context.Context, column, where, id string) ([]SubscriptionEdge, error) {
	var rows []SubscriptionEdge
	err := r.db.WithContext(ctx).Model(&models.Subscription{}).
		Select(column+" AS user_id, created_at").
		Where(where, id).
		Order("created_at DESC").
		Order("id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, translate(err, "list subscriptions")
	}
	return rows, nil
}
