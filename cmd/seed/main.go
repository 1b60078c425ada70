package main

import (
	"errors"
	"flag"
	"fmt"

	"videotube/pkg/config"
	"videotube/pkg/database"
	"videotube/pkg/logger"
	"videotube/pkg/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const placeholderCDN = "https://placehold.videotube.local"

type seedUser struct {
	email    string
	username string
	fullName string
	password string
}

var testUsers = []seedUser{
	{"alice@test.com", "alice", "Alice Archer", "password123"},
	{"bob@test.com", "bob", "Bob Baker", "password123"},
	{"charlie@test.com", "charlie", "Charlie Chen", "password123"},
	{"diana@test.com", "diana", "Diana Diaz", "password123"},
}

func main() {
	var migrate bool
	flag.BoolVar(&migrate, "automigrate", false, "create missing tables with gorm before seeding")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New().With("service", "seed")
	db, err := database.NewDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	if migrate {
		if err := db.AutoMigrate(models.All()...); err != nil {
			log.Error("Failed to migrate: %v", err)
			panic(err)
		}
	}

	if err := seedDatabase(db, log); err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	log.Info("Database seeded successfully!")
}

func seedDatabase(db *gorm.DB, log *logger.Logger) error {
	userIDs := make([]string, 0, len(testUsers))
	for _, u := range testUsers {
		id, err := ensureUser(db, u, log)
		if err != nil {
			return err
		}
		userIDs = append(userIDs, id)
	}

	videoIDs := make(map[string][]string, len(userIDs))
	for i, ownerID := range userIDs {
		count := 2 + i%2
		for n := 0; n < count; n++ {
			id, err := ensureVideo(db, ownerID, testUsers[i].username, n)
			if err != nil {
				return err
			}
			videoIDs[ownerID] = append(videoIDs[ownerID], id)
		}
	}
	log.Info("Ensured videos for %d users", len(userIDs))

	// Everyone follows the next user and likes their first video.
	for i, subscriberID := range userIDs {
		channelID := userIDs[(i+1)%len(userIDs)]

		sub := &models.Subscription{SubscriberID: subscriberID, ChannelID: channelID}
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(sub).Error; err != nil {
			return fmt.Errorf("failed to create subscription: %w", err)
		}

		like := &models.Like{LikedBy: subscriberID, TargetType: models.LikeTargetVideo, TargetID: videoIDs[channelID][0]}
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(like).Error; err != nil {
			return fmt.Errorf("failed to create like: %w", err)
		}
	}
	log.Info("Created test subscriptions and likes")
	return nil
}

func ensureUser(db *gorm.DB, u seedUser, log *logger.Logger) (string, error) {
	var existing models.User
	err := db.Where("email = ? OR username = ?", u.email, u.username).First(&existing).Error
	if err == nil {
		log.Info("User %s already exists, skipping", u.username)
		return existing.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("failed to look up user %s: %w", u.username, err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:     u.email,
		Username:  u.username,
		FullName:  u.fullName,
		AvatarURL: fmt.Sprintf("%s/avatars/%s.png", placeholderCDN, u.username),
		Password:  string(hashed),
	}
	if err := db.Create(user).Error; err != nil {
		return "", fmt.Errorf("failed to create user %s: %w", u.username, err)
	}

	log.Info("Created user: %s (%s)", user.Username, user.Email)
	return user.ID, nil
}

// ensureVideo is keyed by owner and title so reruns do not duplicate videos.
func ensureVideo(db *gorm.DB, ownerID, username string, n int) (string, error) {
	title := fmt.Sprintf("%s's video #%d", username, n+1)

	var existing models.Video
	err := db.Where("owner_id = ? AND title = ?", ownerID, title).First(&existing).Error
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("failed to look up video: %w", err)
	}

	videoKey := fmt.Sprintf("seed/%s/video_%d.mp4", username, n)
	thumbKey := fmt.Sprintf("seed/%s/thumb_%d.jpg", username, n)
	video := &models.Video{
		OwnerID:          ownerID,
		Title:            title,
		Description:      fmt.Sprintf("Seeded video %d uploaded by %s", n+1, username),
		VideoFileURL:     placeholderCDN + "/" + videoKey,
		VideoFileAssetID: videoKey,
		ThumbnailURL:     placeholderCDN + "/" + thumbKey,
		ThumbnailAssetID: thumbKey,
		Duration:         float64(30 + 15*n),
		Views:            int64(10 * (n + 1)),
		IsPublished:      true,
	}
	if err := db.Create(video).Error; err != nil {
		return "", fmt.Errorf("failed to create video: %w", err)
	}
	return video.ID, nil
}
