package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBeforeCreate_AssignsIDs(t *testing.T) {
	user := &User{Email: "test@example.com", Username: "testuser"}
	video := &Video{OwnerID: "owner-1", Title: "t"}
	comment := &Comment{VideoID: "v1", OwnerID: "u1", Content: "nice"}
	tweet := &Tweet{OwnerID: "u1", Content: "hello"}
	like := &Like{LikedBy: "u1", TargetType: LikeTargetVideo, TargetID: "v1"}
	sub := &Subscription{SubscriberID: "u1", ChannelID: "u2"}
	playlist := &Playlist{OwnerID: "u1", Name: "mix"}

	assert.NoError(t, user.BeforeCreate(nil))
	assert.NoError(t, video.BeforeCreate(nil))
	assert.NoError(t, comment.BeforeCreate(nil))
	assert.NoError(t, tweet.BeforeCreate(nil))
	assert.NoError(t, like.BeforeCreate(nil))
	assert.NoError(t, sub.BeforeCreate(nil))
	assert.NoError(t, playlist.BeforeCreate(nil))

	for _, id := range []string{user.ID, video.ID, comment.ID, tweet.ID, like.ID, sub.ID, playlist.ID} {
		assert.Len(t, id, 36)
	}
}

func TestBeforeCreate_KeepsExistingID(t *testing.T) {
	video := &Video{ID: "existing-video-id"}

	assert.NoError(t, video.BeforeCreate(nil))
	assert.Equal(t, "existing-video-id", video.ID)
}

func TestLikeTarget_Valid(t *testing.T) {
	assert.True(t, LikeTargetVideo.Valid())
	assert.True(t, LikeTargetComment.Valid())
	assert.True(t, LikeTargetTweet.Valid())
	assert.False(t, LikeTarget("channel").Valid())
	assert.False(t, LikeTarget("").Valid())
}

func TestAll_ListsEveryTable(t *testing.T) {
	assert.Len(t, All(), 8)
}
