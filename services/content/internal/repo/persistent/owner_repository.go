package persistent

import (
	"context"
	"fmt"

	"videotube/pkg/models"
	"videotube/services/content/internal/entity"

	"gorm.io/gorm"
)

// OwnerRepository reads the owner column of any ownable entity.
type OwnerRepository interface {
	OwnerOf(ctx context.Context, kind entity.Kind, id string) (string, error)
}

type ownerRepository struct {
	db *gorm.DB
}

func NewOwnerRepository(db *gorm.DB) OwnerRepository {
	return &ownerRepository{db: db}
}

func (r *ownerRepository) OwnerOf(ctx context.Context, kind entity.Kind, id string) (string, error) {
	var model interface{}
	switch kind {
	case entity.KindVideo:
		model = &models.Video{}
	case entity.KindComment:
		model = &models.Comment{}
	case entity.KindTweet:
		model = &models.Tweet{}
	case entity.KindPlaylist:
		model = &models.Playlist{}
	default:
		return "", fmt.Errorf("unknown entity kind %q", kind)
	}

	var owners []string
	if err := r.db.WithContext(ctx).Model(model).Where("id = ?", id).Limit(1).Pluck("owner_id", &owners).Error; err != nil {
		return "", translate(err, "lookup owner")
	}
	if len(owners) == 0 {
		return "", ErrNotFound
	}
	return owners[0], nil
}
