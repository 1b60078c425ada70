package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const viewMarkerTTL = 365 * 24 * time.Hour

// ViewTracker remembers which viewer already counted towards a video.
type ViewTracker interface {
	MarkViewed(ctx context.Context, videoID, viewerID string) (bool, error)
	Forget(ctx context.Context, videoID, viewerID string) error
}

type redisViewTracker struct {
	client *redis.Client
}

func NewViewTracker(client *redis.Client) ViewTracker {
	return &redisViewTracker{client: client}
}

func viewKey(videoID, viewerID string) string {
	return fmt.Sprintf("video_viewed:%s:%s", videoID, viewerID)
}

// MarkViewed reports true only for the first view of (video, viewer).
func (t *redisViewTracker) MarkViewed(ctx context.Context, videoID, viewerID string) (bool, error) {
	return t.client.SetNX(ctx, viewKey(videoID, viewerID), "1", viewMarkerTTL).Result()
}

func (t *redisViewTracker) Forget(ctx context.Context, videoID, viewerID string) error {
	return t.client.Del(ctx, viewKey(videoID, viewerID)).Err()
}
