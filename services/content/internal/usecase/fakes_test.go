package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"videotube/pkg/apperr"
	"videotube/pkg/identity"
	"videotube/pkg/models"
	"videotube/pkg/storage"
	"videotube/services/content/internal/entity"
	"videotube/services/content/internal/repo/persistent"

	"github.com/google/uuid"
)

// memStore backs every repository fake so cascades stay consistent.
type memStore struct {
	mu        sync.Mutex
	clock     time.Time
	videos    map[string]*entity.Video
	comments  map[string]*entity.Comment
	tweets    map[string]*entity.Tweet
	playlists map[string]*entity.Playlist
	likes     map[models.LikeTarget]map[string]map[string]bool // target -> id -> actor
	failNext  error
}

func newMemStore() *memStore {
	return &memStore{
		clock:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		videos:    map[string]*entity.Video{},
		comments:  map[string]*entity.Comment{},
		tweets:    map[string]*entity.Tweet{},
		playlists: map[string]*entity.Playlist{},
		likes:     map[models.LikeTarget]map[string]map[string]bool{},
	}
}

func (s *memStore) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func (s *memStore) like(target models.LikeTarget, id, actor string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.likes[target] == nil {
		s.likes[target] = map[string]map[string]bool{}
	}
	if s.likes[target][id] == nil {
		s.likes[target][id] = map[string]bool{}
	}
	s.likes[target][id][actor] = true
}

func (s *memStore) takeFailure() error {
	err := s.failNext
	s.failNext = nil
	return err
}

type fakeVideoRepo struct{ s *memStore }

func (r *fakeVideoRepo) Create(_ context.Context, v *entity.Video) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.takeFailure(); err != nil {
		return err
	}
	v.ID = uuid.NewString()
	v.CreatedAt = r.s.tick()
	v.UpdatedAt = v.CreatedAt
	cp := *v
	r.s.videos[v.ID] = &cp
	return nil
}

func (r *fakeVideoRepo) GetByID(_ context.Context, id string) (*entity.Video, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.videos[id]
	if !ok {
		return nil, persistent.ErrNotFound
	}
	cp := *v
	return &cp, nil
}

func (r *fakeVideoRepo) GetByIDs(_ context.Context, ids []string) (map[string]*entity.Video, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := map[string]*entity.Video{}
	for _, id := range ids {
		if v, ok := r.s.videos[id]; ok {
			cp := *v
			out[id] = &cp
		}
	}
	return out, nil
}

func (r *fakeVideoRepo) List(_ context.Context, f persistent.VideoFilter) ([]*entity.Video, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var all []*entity.Video
	for _, v := range r.s.videos {
		if f.OwnerID != "" && v.OwnerID != f.OwnerID {
			continue
		}
		if f.PublishedOnly && !v.IsPublished {
			continue
		}
		cp := *v
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	total := int64(len(all))
	if f.Offset >= len(all) {
		return []*entity.Video{}, total, nil
	}
	end := f.Offset + f.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[f.Offset:end], total, nil
}

func (r *fakeVideoRepo) Update(_ context.Context, v *entity.Video) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.takeFailure(); err != nil {
		return err
	}
	cur, ok := r.s.videos[v.ID]
	if !ok {
		return persistent.ErrNotFound
	}
	cur.Title, cur.Description = v.Title, v.Description
	cur.ThumbnailURL, cur.ThumbnailAssetID = v.ThumbnailURL, v.ThumbnailAssetID
	return nil
}

func (r *fakeVideoRepo) SetPublished(_ context.Context, id string, published bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.videos[id]
	if !ok {
		return persistent.ErrNotFound
	}
	v.IsPublished = published
	return nil
}

func (r *fakeVideoRepo) IncrementViews(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.videos[id]
	if !ok {
		return persistent.ErrNotFound
	}
	v.Views++
	return nil
}

func (r *fakeVideoRepo) DeleteWithComments(_ context.Context, id string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.videos[id]; !ok {
		return 0, persistent.ErrNotFound
	}
	var purged int64
	for cid, c := range r.s.comments {
		if c.VideoID == id {
			delete(r.s.comments, cid)
			delete(r.s.likes[models.LikeTargetComment], cid)
			purged++
		}
	}
	delete(r.s.likes[models.LikeTargetVideo], id)
	delete(r.s.videos, id)
	return purged, nil
}

type fakeCommentRepo struct{ s *memStore }

func (r *fakeCommentRepo) Create(_ context.Context, c *entity.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c.ID = uuid.NewString()
	c.CreatedAt = r.s.tick()
	c.UpdatedAt = c.CreatedAt
	cp := *c
	r.s.comments[c.ID] = &cp
	return nil
}

func (r *fakeCommentRepo) GetByID(_ context.Context, id string) (*entity.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.comments[id]
	if !ok {
		return nil, persistent.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCommentRepo) UpdateContent(_ context.Context, id, content string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.comments[id]
	if !ok {
		return persistent.ErrNotFound
	}
	c.Content = content
	return nil
}

func (r *fakeCommentRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.comments[id]; !ok {
		return persistent.ErrNotFound
	}
	delete(r.s.comments, id)
	delete(r.s.likes[models.LikeTargetComment], id)
	return nil
}

func (r *fakeCommentRepo) byVideo(videoID string) []*entity.Comment {
	var out []*entity.Comment
	for _, c := range r.s.comments {
		if c.VideoID == videoID {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *fakeCommentRepo) ListByVideo(_ context.Context, videoID string, limit, offset int) ([]*entity.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	all := r.byVideo(videoID)
	if offset >= len(all) {
		return []*entity.Comment{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *fakeCommentRepo) CountByVideo(_ context.Context, videoID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.byVideo(videoID))), nil
}

func (r *fakeCommentRepo) DeleteByVideo(_ context.Context, videoID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for id, c := range r.s.comments {
		if c.VideoID == videoID {
			delete(r.s.comments, id)
			n++
		}
	}
	return n, nil
}

type fakeTweetRepo struct{ s *memStore }

func (r *fakeTweetRepo) Create(_ context.Context, t *entity.Tweet) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t.ID = uuid.NewString()
	t.CreatedAt = r.s.tick()
	cp := *t
	r.s.tweets[t.ID] = &cp
	return nil
}

func (r *fakeTweetRepo) GetByID(_ context.Context, id string) (*entity.Tweet, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tweets[id]
	if !ok {
		return nil, persistent.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTweetRepo) ListByOwner(_ context.Context, ownerID string) ([]*entity.Tweet, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*entity.Tweet{}
	for _, t := range r.s.tweets {
		if t.OwnerID == ownerID {
			cp := *t
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeTweetRepo) UpdateContent(_ context.Context, id, content string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tweets[id]
	if !ok {
		return persistent.ErrNotFound
	}
	t.Content = content
	return nil
}

func (r *fakeTweetRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.tweets[id]; !ok {
		return persistent.ErrNotFound
	}
	delete(r.s.tweets, id)
	return nil
}

type fakePlaylistRepo struct{ s *memStore }

func (r *fakePlaylistRepo) copyOf(p *entity.Playlist) *entity.Playlist {
	cp := *p
	cp.VideoIDs = append([]string{}, p.VideoIDs...)
	return &cp
}

func (r *fakePlaylistRepo) Create(_ context.Context, p *entity.Playlist) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p.ID = uuid.NewString()
	p.CreatedAt = r.s.tick()
	p.VideoIDs = []string{}
	r.s.playlists[p.ID] = r.copyOf(p)
	return nil
}

func (r *fakePlaylistRepo) GetByID(_ context.Context, id string) (*entity.Playlist, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.playlists[id]
	if !ok {
		return nil, persistent.ErrNotFound
	}
	return r.copyOf(p), nil
}

func (r *fakePlaylistRepo) ListByOwner(_ context.Context, ownerID string) ([]*entity.Playlist, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*entity.Playlist{}
	for _, p := range r.s.playlists {
		if p.OwnerID == ownerID {
			out = append(out, r.copyOf(p))
		}
	}
	return out, nil
}

func (r *fakePlaylistRepo) Update(_ context.Context, id string, fields map[string]interface{}) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.playlists[id]
	if !ok {
		return persistent.ErrNotFound
	}
	if v, ok := fields["name"]; ok {
		p.Name = v.(string)
	}
	if v, ok := fields["description"]; ok {
		p.Description = v.(string)
	}
	return nil
}

func (r *fakePlaylistRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.playlists[id]; !ok {
		return persistent.ErrNotFound
	}
	delete(r.s.playlists, id)
	return nil
}

func (r *fakePlaylistRepo) AddVideo(_ context.Context, playlistID, videoID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.playlists[playlistID]
	if !ok {
		return persistent.ErrNotFound
	}
	for _, id := range p.VideoIDs {
		if id == videoID {
			return persistent.ErrAlreadyExists
		}
	}
	p.VideoIDs = append(p.VideoIDs, videoID)
	return nil
}

func (r *fakePlaylistRepo) RemoveVideo(_ context.Context, playlistID, videoID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.playlists[playlistID]
	if !ok {
		return persistent.ErrNotFound
	}
	for i, id := range p.VideoIDs {
		if id == videoID {
			p.VideoIDs = append(p.VideoIDs[:i], p.VideoIDs[i+1:]...)
			return nil
		}
	}
	return persistent.ErrNotFound
}

type fakeOwnerRepo struct{ s *memStore }

func (r *fakeOwnerRepo) OwnerOf(_ context.Context, kind entity.Kind, id string) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	switch kind {
	case entity.KindVideo:
		if v, ok := r.s.videos[id]; ok {
			return v.OwnerID, nil
		}
	case entity.KindComment:
		if c, ok := r.s.comments[id]; ok {
			return c.OwnerID, nil
		}
	case entity.KindTweet:
		if t, ok := r.s.tweets[id]; ok {
			return t.OwnerID, nil
		}
	case entity.KindPlaylist:
		if p, ok := r.s.playlists[id]; ok {
			return p.OwnerID, nil
		}
	}
	return "", persistent.ErrNotFound
}

type fakeLikeReader struct{ s *memStore }

func (r *fakeLikeReader) CountByTargets(_ context.Context, target models.LikeTarget, ids []string) (map[string]int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := map[string]int64{}
	for _, id := range ids {
		if n := len(r.s.likes[target][id]); n > 0 {
			out[id] = int64(n)
		}
	}
	return out, nil
}

func (r *fakeLikeReader) LikedTargets(_ context.Context, actorID string, target models.LikeTarget, ids []string) (map[string]bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := map[string]bool{}
	for _, id := range ids {
		if r.s.likes[target][id][actorID] {
			out[id] = true
		}
	}
	return out, nil
}

type fakeUsers struct {
	profiles map[string]*identity.UserProfile
}

func newFakeUsers(ids ...string) *fakeUsers {
	u := &fakeUsers{profiles: map[string]*identity.UserProfile{}}
	for i, id := range ids {
		name := string(rune('a' + i))
		u.profiles[id] = &identity.UserProfile{ID: id, Username: name, FullName: "User " + name}
	}
	return u
}

func (u *fakeUsers) GetUserByID(_ context.Context, id string) (*identity.UserProfile, error) {
	if p, ok := u.profiles[id]; ok {
		return p, nil
	}
	return nil, apperr.NotFound("User not found")
}

func (u *fakeUsers) GetUsersByIDs(_ context.Context, ids []string) (map[string]*identity.UserProfile, error) {
	out := map[string]*identity.UserProfile{}
	for _, id := range ids {
		if p, ok := u.profiles[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (u *fakeUsers) Exists(_ context.Context, id string) (bool, error) {
	_, ok := u.profiles[id]
	return ok, nil
}

type fakeFiles struct {
	mu         sync.Mutex
	stored     map[string]storage.Kind
	removed    []string
	failStore  map[string]bool // local path -> fail
	failRemove map[string]bool // asset id -> fail
	seq        int
}

func newFakeFiles() *fakeFiles {
	return &fakeFiles{
		stored:     map[string]storage.Kind{},
		failStore:  map[string]bool{},
		failRemove: map[string]bool{},
	}
}

func (f *fakeFiles) Store(_ context.Context, localPath string, kind storage.Kind) (*storage.Asset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failStore[localPath] {
		return nil, apperr.UploadFailed(errors.New("bucket unavailable"), "Failed to upload file")
	}
	f.seq++
	id := string(kind) + "s/" + uuid.NewString()
	f.stored[id] = kind
	asset := &storage.Asset{ID: id, URL: "http://cdn/" + id}
	if kind == storage.KindVideo {
		asset.Duration = 42.5
	}
	return asset, nil
}

func (f *fakeFiles) Remove(_ context.Context, assetID string, _ storage.Kind) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failRemove[assetID] {
		return apperr.DeleteFailed(errors.New("bucket unavailable"), "Failed to delete file")
	}
	delete(f.stored, assetID)
	f.removed = append(f.removed, assetID)
	return nil
}

type fakeCleanup struct {
	scheduled []string
}

func (c *fakeCleanup) ScheduleRemoval(_ context.Context, assetID string, _ storage.Kind) error {
	c.scheduled = append(c.scheduled, assetID)
	return nil
}

type fakeViews struct {
	seen map[string]bool
}

func (v *fakeViews) MarkViewed(_ context.Context, videoID, viewerID string) (bool, error) {
	key := videoID + ":" + viewerID
	if v.seen[key] {
		return false, nil
	}
	v.seen[key] = true
	return true, nil
}

func (v *fakeViews) Forget(_ context.Context, videoID, viewerID string) error {
	delete(v.seen, videoID+":"+viewerID)
	return nil
}
