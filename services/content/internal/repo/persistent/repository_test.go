package persistent

import (
	"context"
	"errors"
	"testing"

	"videotube/pkg/models"
	"videotube/services/content/internal/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)
	return db, mock
}

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate(nil, "op"))
	assert.Equal(t, ErrNotFound, translate(gorm.ErrRecordNotFound, "op"))
	assert.Equal(t, ErrAlreadyExists, translate(gorm.ErrDuplicatedKey, "op"))

	err := translate(errors.New("boom"), "load video")
	assert.EqualError(t, err, "load video: boom")
}

func TestOwnerOf(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOwnerRepository(db)

	mock.ExpectQuery(`SELECT "owner_id" FROM "videos" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"owner_id"}).AddRow("u1"))
	owner, err := repo.OwnerOf(context.Background(), entity.KindVideo, "v1")
	require.NoError(t, err)
	assert.Equal(t, "u1", owner)

	mock.ExpectQuery(`SELECT "owner_id" FROM "comments" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"owner_id"}))
	_, err = repo.OwnerOf(context.Background(), entity.KindComment, "c1")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.OwnerOf(context.Background(), entity.Kind("channel"), "x")
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLikeReader_CountByTargets(t *testing.T) {
	db, mock := newMockDB(t)
	reader := NewLikeReader(db)

	mock.ExpectQuery(`SELECT target_id, COUNT\(\*\) AS total FROM "likes" WHERE target_type = \$1 AND target_id IN \(\$2,\$3\) GROUP BY "target_id"`).
		WithArgs(models.LikeTargetComment, "c1", "c2").
		WillReturnRows(sqlmock.NewRows([]string{"target_id", "total"}).AddRow("c1", 2))

	counts, err := reader.CountByTargets(context.Background(), models.LikeTargetComment, []string{"c1", "c2"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts["c1"])
	assert.Equal(t, int64(0), counts["c2"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLikeReader_SkipsQueryWithoutInput(t *testing.T) {
	db, mock := newMockDB(t)
	reader := NewLikeReader(db)

	counts, err := reader.CountByTargets(context.Background(), models.LikeTargetVideo, nil)
	require.NoError(t, err)
	assert.Empty(t, counts)

	liked, err := reader.LikedTargets(context.Background(), "", models.LikeTargetVideo, []string{"v1"})
	require.NoError(t, err)
	assert.Empty(t, liked)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLikeReader_LikedTargets(t *testing.T) {
	db, mock := newMockDB(t)
	reader := NewLikeReader(db)

	mock.ExpectQuery(`SELECT "target_id" FROM "likes" WHERE liked_by = \$1 AND target_type = \$2 AND target_id IN`).
		WithArgs("u1", models.LikeTargetTweet, "t1", "t2").
		WillReturnRows(sqlmock.NewRows([]string{"target_id"}).AddRow("t2"))

	liked, err := reader.LikedTargets(context.Background(), "u1", models.LikeTargetTweet, []string{"t1", "t2"})
	require.NoError(t, err)
	assert.False(t, liked["t1"])
	assert.True(t, liked["t2"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

// MySQL reports zero affected rows when the stored content is unchanged.
func TestCommentRepository_UpdateContentUnchangedRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCommentRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "comments" SET "content"=\$1,"updated_at"=\$2 WHERE id = \$3`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	assert.NoError(t, repo.UpdateContent(context.Background(), "c1", "same"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlaylistRepository_UpdateUnchangedRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPlaylistRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "playlists" SET "name"=\$1,"updated_at"=\$2 WHERE id = \$3`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	assert.NoError(t, repo.Update(context.Background(), "p1", map[string]interface{}{"name": "Same"}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_DeleteByVideoPurgesCommentLikes(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCommentRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "likes" WHERE target_type = \$1 AND target_id IN \(SELECT "id" FROM "comments" WHERE video_id = \$2\)`).
		WithArgs(models.LikeTargetComment, "v1").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`DELETE FROM "comments" WHERE video_id = \$1`).
		WithArgs("v1").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	purged, err := repo.DeleteByVideo(context.Background(), "v1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), purged)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_ListByVideoOrdersNewestFirst(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCommentRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "comments" WHERE video_id = \$1 ORDER BY created_at DESC,id DESC LIMIT \$2 OFFSET \$3`).
		WithArgs("v1", 10, 10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "video_id", "owner_id", "content"}).
			AddRow("c2", "v1", "u1", "second").
			AddRow("c1", "v1", "u2", "first"))

	comments, err := repo.ListByVideo(context.Background(), "v1", 10, 10)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "c2", comments[0].ID)
	assert.Equal(t, "u2", comments[1].OwnerID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVideoRepository_DeleteWithComments(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewVideoRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "likes" WHERE target_type = \$1 AND target_id IN \(SELECT "id" FROM "comments" WHERE video_id = \$2\)`).
		WithArgs(models.LikeTargetComment, "v1").
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectExec(`DELETE FROM "comments" WHERE video_id = \$1`).
		WithArgs("v1").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM "likes" WHERE target_type = \$1 AND target_id = \$2`).
		WithArgs(models.LikeTargetVideo, "v1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "playlist_videos" WHERE video_id = \$1`).
		WithArgs("v1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`UPDATE "videos" SET "deleted_at"=\$1 WHERE id = \$2`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	purged, err := repo.DeleteWithComments(context.Background(), "v1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), purged)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVideoRepository_DeleteWithCommentsMissingRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewVideoRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "likes"`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM "comments"`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM "likes"`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM "playlist_videos"`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`UPDATE "videos" SET "deleted_at"`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := repo.DeleteWithComments(context.Background(), "v1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
