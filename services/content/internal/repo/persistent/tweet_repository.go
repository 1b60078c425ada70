package persistent

import (
	"context"

	"videotube/pkg/models"
	"videotube/services/content/internal/entity"

	"gorm.io/gorm"
)

type TweetRepository interface {
	Create(ctx context.Context, tweet *entity.Tweet) error
	GetByID(ctx context.Context, id string) (*entity.Tweet, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*entity.Tweet, error)
	UpdateContent(ctx context.Context, id, content string) error
	Delete(ctx context.Context, id string) error
}

type tweetRepository struct {
	db *gorm.DB
}

func NewTweetRepository(db *gorm.DB) TweetRepository {
	return &tweetRepository{db: db}
}

func (r *tweetRepository) Create(ctx context.Context, tweet *entity.Tweet) error {
	m := &models.Tweet{OwnerID: tweet.OwnerID, Content: tweet.Content}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return translate(err, "create tweet")
	}
	*tweet = *ToTweetEntity(m)
	return nil
}

func (r *tweetRepository) GetByID(ctx context.Context, id string) (*entity.Tweet, error) {
	var m models.Tweet
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translate(err, "get tweet")
	}
	return ToTweetEntity(&m), nil
}

func (r *tweetRepository) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Tweet, error) {
	var rows []models.Tweet
	err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("created_at DESC").Order("id DESC").Find(&rows).Error
	if err != nil {
		return nil, translate(err, "list tweets")
	}

	tweets := make([]*entity.Tweet, 0, len(rows))
	for i := range rows {
		tweets = append(tweets, ToTweetEntity(&rows[i]))
	}
	return tweets, nil
}

func (r *tweetRepository) UpdateContent(ctx context.Context, id, content string) error {
	err := r.db.WithContext(ctx).Model(&models.Tweet{}).Where("id = ?", id).Update("content", content).Error
	return translate(err, "update tweet")
}

func (r *tweetRepository) Delete(ctx context.Context, id string) error {
	return translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("target_type = ? AND target_id = ?", models.LikeTargetTweet, id).
			Delete(&models.Like{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.Tweet{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	}), "delete tweet")
}
