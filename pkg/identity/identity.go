package identity

import (
	"context"
	"fmt"
	"time"

	"videotube/pkg/apperr"
	"videotube/pkg/models"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"gorm.io/gorm"
)

type UserProfile struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FullName  string `json:"fullName"`
	AvatarURL string `json:"avatarUrl"`
}

// Store resolves user profiles. GetUserByID fails with apperr NotFound for
// unknown or malformed ids; GetUsersByIDs silently skips them.
type Store interface {
	GetUserByID(ctx context.Context, id string) (*UserProfile, error)
	GetUsersByIDs(ctx context.Context, ids []string) (map[string]*UserProfile, error)
	Exists(ctx context.Context, id string) (bool, error)
}

type store struct {
	db    *gorm.DB
	cache *gocache.Cache
}

func NewStore(db *gorm.DB, ttl time.Duration) Store {
	return &store{
		db:    db,
		cache: gocache.New(ttl, 2*ttl),
	}
}

func (s *store) GetUserByID(ctx context.Context, id string) (*UserProfile, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperr.NotFound("User not found")
	}
	if cached, ok := s.cache.Get(id); ok {
		return cached.(*UserProfile), nil
	}

	var profiles []*UserProfile
	err := s.db.WithContext(ctx).
		Model(&models.User{}).
		Select("id, username, full_name, avatar_url").
		Where("id = ?", id).
		Limit(1).
		Find(&profiles).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load user %s: %w", id, err)
	}
	if len(profiles) == 0 {
		return nil, apperr.NotFound("User not found")
	}

	s.cache.SetDefault(id, profiles[0])
	return profiles[0], nil
}

func (s *store) GetUsersByIDs(ctx context.Context, ids []string) (map[string]*UserProfile, error) {
	result := make(map[string]*UserProfile, len(ids))
	missing := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))

	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if _, err := uuid.Parse(id); err != nil {
			continue
		}
		if cached, ok := s.cache.Get(id); ok {
			result[id] = cached.(*UserProfile)
			continue
		}
		missing = append(missing, id)
	}
	if len(missing) == 0 {
		return result, nil
	}

	var profiles []*UserProfile
	err := s.db.WithContext(ctx).
		Model(&models.User{}).
		Select("id, username, full_name, avatar_url").
		Where("id IN ?", missing).
		Find(&profiles).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}

	for _, p := range profiles {
		s.cache.SetDefault(p.ID, p)
		result[p.ID] = p
	}
	return result, nil
}

func (s *store) Exists(ctx context.Context, id string) (bool, error) {
	_, err := s.GetUserByID(ctx, id)
	if err == nil {
		return true, nil
	}
	if apperr.KindOf(err) == apperr.KindNotFound {
		return false, nil
	}
	return false, err
}
