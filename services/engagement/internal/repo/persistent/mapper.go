package persistent

import (
	"videotube/pkg/models"
	"videotube/services/engagement/internal/entity"
)

func ToLikeEntity(m *models.Like) *entity.Like {
	if m == nil {
		return nil
	}

	return &entity.Like{
		ID:         m.ID,
		LikedBy:    m.LikedBy,
		TargetType: m.TargetType,
		TargetID:   m.TargetID,
		CreatedAt:  m.CreatedAt,
	}
}

func ToSubscriptionEntity(m *models.Subscription) *entity.Subscription {
	if m == nil {
		return nil
	}

	return &entity.Subscription{
		ID:           m.ID,
		SubscriberID: m.SubscriberID,
		ChannelID:    m.ChannelID,
		CreatedAt:    m.CreatedAt,
	}
}
