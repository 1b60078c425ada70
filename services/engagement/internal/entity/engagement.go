package entity

import (
	"time"

	"videotube/pkg/models"
)

type ToggleState string

const (
	StateLiked        ToggleState = "liked"
	StateUnliked      ToggleState = "unliked"
	StateSubscribed   ToggleState = "subscribed"
	StateUnsubscribed ToggleState = "unsubscribed"
)

type Like struct {
	ID         string            `json:"id"`
	LikedBy    string            `json:"likedBy"`
	TargetType models.LikeTarget `json:"targetType"`
	TargetID   string            `json:"targetId"`
	CreatedAt  time.Time         `json:"createdAt"`
}

// LikeToggle is the outcome of one toggle call. Record is the row that was
// created or removed; it is nil when a concurrent toggle removed it first.
type LikeToggle struct {
	State   ToggleState `json:"state"`
	IsLiked bool        `json:"isLiked"`
	Record  *Like       `json:"record,omitempty"`
}

type Subscription struct {
	ID           string    `json:"id"`
	SubscriberID string    `json:"subscriberId"`
	ChannelID    string    `json:"channelId"`
	CreatedAt    time.Time `json:"createdAt"`
}

type SubscriptionToggle struct {
	State        ToggleState   `json:"state"`
	IsSubscribed bool          `json:"isSubscribed"`
	Record       *Subscription `json:"record,omitempty"`
}
