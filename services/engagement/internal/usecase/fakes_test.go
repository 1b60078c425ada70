package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"videotube/pkg/apperr"
	"videotube/pkg/identity"
	"videotube/pkg/lock"
	"videotube/pkg/models"
	"videotube/pkg/queue"
	"videotube/services/engagement/internal/entity"
	"videotube/services/engagement/internal/repo/persistent"

	"github.com/google/uuid"
)

type memVideo struct {
	id        string
	ownerID   string
	title     string
	views     int64
	published bool
	deleted   bool
	createdAt time.Time
}

// memStore mirrors the relational store: likes are unique per
// (actor, target), subscriptions per (subscriber, channel).
type memStore struct {
	mu       sync.Mutex
	clock    time.Time
	videos   map[string]*memVideo
	comments map[string]string
	tweets   map[string]string
	likes    map[string]*entity.Like
	subs     map[string]*entity.Subscription

	// beforeCreate runs inside Create before the uniqueness check.
	beforeCreate func()
}

func newMemStore() *memStore {
	return &memStore{
		clock:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		videos:   map[string]*memVideo{},
		comments: map[string]string{},
		tweets:   map[string]string{},
		likes:    map[string]*entity.Like{},
		subs:     map[string]*entity.Subscription{},
	}
}

func (s *memStore) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func (s *memStore) addVideo(ownerID string, views int64) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.NewString()
	s.videos[id] = &memVideo{id: id, ownerID: ownerID, title: "video " + id[:4], views: views, published: true, createdAt: s.tick()}
	return id
}

func (s *memStore) addComment(ownerID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.NewString()
	s.comments[id] = ownerID
	return id
}

func (s *memStore) addTweet(ownerID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.NewString()
	s.tweets[id] = ownerID
	return id
}

func (s *memStore) insertLike(actorID string, target models.LikeTarget, targetID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.NewString()
	s.likes[id] = &entity.Like{ID: id, LikedBy: actorID, TargetType: target, TargetID: targetID, CreatedAt: s.tick()}
	return id
}

func (s *memStore) insertSub(subscriberID, channelID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.NewString()
	s.subs[id] = &entity.Subscription{ID: id, SubscriberID: subscriberID, ChannelID: channelID, CreatedAt: s.tick()}
}

func (s *memStore) likeCount(target models.LikeTarget, targetID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, l := range s.likes {
		if l.TargetType == target && l.TargetID == targetID {
			n++
		}
	}
	return n
}

func (s *memStore) subCount(channelID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, sub := range s.subs {
		if sub.ChannelID == channelID {
			n++
		}
	}
	return n
}

type fakeLikeRepo struct{ s *memStore }

func (r *fakeLikeRepo) Find(ctx context.Context, actorID string, target models.LikeTarget, targetID string) (*entity.Like, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, l := range r.s.likes {
		if l.LikedBy == actorID && l.TargetType == target && l.TargetID == targetID {
			cp := *l
			return &cp, nil
		}
	}
	return nil, persistent.ErrNotFound
}

func (r *fakeLikeRepo) Create(ctx context.Context, actorID string, target models.LikeTarget, targetID string) (*entity.Like, error) {
	r.s.mu.Lock()
	hook := r.s.beforeCreate
	r.s.beforeCreate = nil
	r.s.mu.Unlock()
	if hook != nil {
		hook()
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, l := range r.s.likes {
		if l.LikedBy == actorID && l.TargetType == target && l.TargetID == targetID {
			return nil, persistent.ErrAlreadyExists
		}
	}
	like := &entity.Like{ID: uuid.NewString(), LikedBy: actorID, TargetType: target, TargetID: targetID, CreatedAt: r.s.tick()}
	r.s.likes[like.ID] = like
	cp := *like
	return &cp, nil
}

func (r *fakeLikeRepo) Remove(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.likes[id]; !ok {
		return persistent.ErrNotFound
	}
	delete(r.s.likes, id)
	return nil
}

func (r *fakeLikeRepo) LikedVideos(ctx context.Context, actorID string) ([]*entity.LikedVideo, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var result []*entity.LikedVideo
	for _, l := range r.s.likes {
		if l.LikedBy != actorID || l.TargetType != models.LikeTargetVideo {
			continue
		}
		v, ok := r.s.videos[l.TargetID]
		if !ok || v.deleted || !(v.published || v.ownerID == actorID) {
			continue
		}
		result = append(result, &entity.LikedVideo{
			ID:        v.id,
			Title:     v.title,
			Views:     v.views,
			OwnerID:   v.ownerID,
			CreatedAt: v.createdAt,
			LikedAt:   l.CreatedAt,
		})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].LikedAt.After(result[j].LikedAt) })
	return result, nil
}

type fakeSubRepo struct{ s *memStore }

func (r *fakeSubRepo) Find(ctx context.Context, subscriberID, channelID string) (*entity.Subscription, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, sub := range r.s.subs {
		if sub.SubscriberID == subscriberID && sub.ChannelID == channelID {
			cp := *sub
			return &cp, nil
		}
	}
	return nil, persistent.ErrNotFound
}

func (r *fakeSubRepo) Create(ctx context.Context, subscriberID, channelID string) (*entity.Subscription, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, sub := range r.s.subs {
		if sub.SubscriberID == subscriberID && sub.ChannelID == channelID {
			return nil, persistent.ErrAlreadyExists
		}
	}
	sub := &entity.Subscription{ID: uuid.NewString(), SubscriberID: subscriberID, ChannelID: channelID, CreatedAt: r.s.tick()}
	r.s.subs[sub.ID] = sub
	cp := *sub
	return &cp, nil
}

func (r *fakeSubRepo) Remove(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.subs[id]; !ok {
		return persistent.ErrNotFound
	}
	delete(r.s.subs, id)
	return nil
}

func (r *fakeSubRepo) Exists(ctx context.Context, subscriberID, channelID string) (bool, error) {
	_, err := r.Find(ctx, subscriberID, channelID)
	if err == persistent.ErrNotFound {
		return false, nil
	}
	return err == nil, err
}

func (r *fakeSubRepo) ListSubscribers(ctx context.Context, channelID string) ([]persistent.SubscriptionEdge, error) {
	return r.edges(func(sub *entity.Subscription) (string, bool) {
		return sub.SubscriberID, sub.ChannelID == channelID
	}), nil
}

func (r *fakeSubRepo) ListChannels(ctx context.Context, subscriberID string) ([]persistent.SubscriptionEdge, error) {
	return r.edges(func(sub *entity.Subscription) (string, bool) {
		return sub.ChannelID, sub.SubscriberID == subscriberID
	}), nil
}

func (r *fakeSubRepo) edges(match func(*entity.Subscription) (string, bool)) []persistent.SubscriptionEdge {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var edges []persistent.SubscriptionEdge
	for _, sub := range r.s.subs {
		if id, ok := match(sub); ok {
			edges = append(edges, persistent.SubscriptionEdge{UserID: id, CreatedAt: sub.CreatedAt})
		}
	}
	sort.Slice(edges, func(i, j int) bool { return edges[i].CreatedAt.After(edges[j].CreatedAt) })
	return edges
}

type fakeTargetRepo struct{ s *memStore }

func (r *fakeTargetRepo) OwnerOf(ctx context.Context, target models.LikeTarget, id, viewerID string) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	switch target {
	case models.LikeTargetVideo:
		if v, ok := r.s.videos[id]; ok && !v.deleted && (v.published || v.ownerID == viewerID) {
			return v.ownerID, nil
		}
	case models.LikeTargetComment:
		if owner, ok := r.s.comments[id]; ok {
			return owner, nil
		}
	case models.LikeTargetTweet:
		if owner, ok := r.s.tweets[id]; ok {
			return owner, nil
		}
	}
	return "", persistent.ErrNotFound
}

type fakeDashboardRepo struct{ s *memStore }

func (r *fakeDashboardRepo) ChannelStats(ctx context.Context, channelID string) (*entity.ChannelStats, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stats := &entity.ChannelStats{ChannelID: channelID}
	for _, v := range r.s.videos {
		if v.ownerID != channelID || v.deleted {
			continue
		}
		stats.TotalVideos++
		stats.TotalViews += v.views
		for _, l := range r.s.likes {
			if l.TargetType == models.LikeTargetVideo && l.TargetID == v.id {
				stats.TotalLikes++
			}
		}
	}
	for _, sub := range r.s.subs {
		if sub.ChannelID == channelID {
			stats.TotalSubscribers++
		}
	}
	return stats, nil
}

func (r *fakeDashboardRepo) ChannelVideos(ctx context.Context, channelID string) ([]*entity.ChannelVideo, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	videos := []*entity.ChannelVideo{}
	for _, v := range r.s.videos {
		if v.ownerID != channelID || v.deleted {
			continue
		}
		cv := &entity.ChannelVideo{ID: v.id, Title: v.title, Views: v.views, IsPublished: v.published, CreatedAt: v.createdAt}
		for _, l := range r.s.likes {
			if l.TargetType == models.LikeTargetVideo && l.TargetID == v.id {
				cv.LikesCount++
			}
		}
		videos = append(videos, cv)
	}
	sort.Slice(videos, func(i, j int) bool { return videos[i].CreatedAt.After(videos[j].CreatedAt) })
	return videos, nil
}

type fakeUsers struct {
	profiles map[string]*identity.UserProfile
}

func newFakeUsers(ids ...string) *fakeUsers {
	u := &fakeUsers{profiles: map[string]*identity.UserProfile{}}
	for i, id := range ids {
		name := string(rune('a' + i))
		u.profiles[id] = &identity.UserProfile{ID: id, Username: name, FullName: "User " + name, AvatarURL: "https://cdn.test/" + name + ".png"}
	}
	return u
}

func (u *fakeUsers) GetUserByID(ctx context.Context, id string) (*identity.UserProfile, error) {
	if p, ok := u.profiles[id]; ok {
		return p, nil
	}
	return nil, apperr.NotFound("User not found")
}

func (u *fakeUsers) GetUsersByIDs(ctx context.Context, ids []string) (map[string]*identity.UserProfile, error) {
	out := map[string]*identity.UserProfile{}
	for _, id := range ids {
		if p, ok := u.profiles[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (u *fakeUsers) Exists(ctx context.Context, id string) (bool, error) {
	_, ok := u.profiles[id]
	return ok, nil
}

type fakePublisher struct {
	events chan queue.EngagementEvent
}

func newFakePublisher() *fakePublisher {
	return &fakePublisher{events: make(chan queue.EngagementEvent, 16)}
}

func (p *fakePublisher) PublishEngagementEvent(ctx context.Context, event queue.EngagementEvent) error {
	p.events <- event
	return nil
}

// gatedPublisher holds every publish until gate is closed.
type gatedPublisher struct {
	gate      chan struct{}
	published chan queue.EngagementEvent
}

func newGatedPublisher() *gatedPublisher {
	return &gatedPublisher{gate: make(chan struct{}), published: make(chan queue.EngagementEvent, 4)}
}

func (p *gatedPublisher) PublishEngagementEvent(ctx context.Context, event queue.EngagementEvent) error {
	select {
	case <-p.gate:
	case <-ctx.Done():
		return ctx.Err()
	}
	p.published <- event
	return nil
}

// keyRecorder records lock keys and serializes through a KeyedMutex.
type keyRecorder struct {
	mu    sync.Mutex
	keys  []string
	inner lock.Locker
}

func (r *keyRecorder) Acquire(ctx context.Context, key string) (func(), error) {
	r.mu.Lock()
	r.keys = append(r.keys, key)
	r.mu.Unlock()
	return r.inner.Acquire(ctx, key)
}
