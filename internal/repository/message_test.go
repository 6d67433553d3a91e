package repository

import (
	"context"
	"regexp"
	"testing"

	"warbler/internal/cache"
	"warbler/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMessageRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewMessageRepository(db)
	ctx := context.Background()

	message := &models.Message{Text: "first warble", UserID: 1}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "messages"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE users SET warbles_count = warbles_count + 1 WHERE id = $1`)).
		WithArgs(message.UserID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Create(ctx, message)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageRepository_Create_RollsBackOnCounterFailure(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewMessageRepository(db)
	ctx := context.Background()

	message := &models.Message{Text: "orphan warble", UserID: 1}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "messages"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE users SET warbles_count = warbles_count + 1 WHERE id = $1`)).
		WithArgs(message.UserID).
		WillReturnError(gorm.ErrInvalidDB)
	mock.ExpectRollback()

	err := repo.Create(ctx, message)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageRepository_GetByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewMessageRepository(db)
	ctx := context.Background()

	t.Run("Anonymous viewer", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "text", "user_id", "likes_count", "liked"}).
			AddRow(10, "hello", 1, 3, false)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT messages.*, false as liked FROM "messages" WHERE "messages"."id" = $1`)).
			WithArgs(10, 1).
			WillReturnRows(rows)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1`)).
			WithArgs(1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(1, "warblefan"))

		message, err := repo.GetByID(ctx, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, "hello", message.Text)
		assert.Equal(t, 3, message.LikesCount)
		assert.False(t, message.Liked)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Authenticated viewer gets liked flag", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "text", "user_id", "likes_count", "liked"}).
			AddRow(10, "hello", 1, 3, true)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT messages.*, EXISTS(SELECT 1 FROM likes WHERE likes.message_id = messages.id AND likes.user_id = $1) as liked FROM "messages" WHERE "messages"."id" = $2`)).
			WithArgs(5, 10, 1).
			WillReturnRows(rows)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1`)).
			WithArgs(1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(1, "warblefan"))

		message, err := repo.GetByID(ctx, 10, 5)
		require.NoError(t, err)
		assert.True(t, message.Liked)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT messages.*, false as liked FROM "messages" WHERE "messages"."id" = $1`)).
			WithArgs(99, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		message, err := repo.GetByID(ctx, 99, 0)
		assert.Nil(t, message)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestMessageRepository_Feed_ClampsLimit(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewMessageRepository(db)
	ctx := context.Background()

	// limit <= 0 and limit > FeedLimit both fall back to FeedLimit
	for _, requested := range []int{0, 500} {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT messages.*, false as liked FROM "messages" ORDER BY created_at DESC LIMIT $1`)).
			WithArgs(FeedLimit).
			WillReturnRows(sqlmock.NewRows([]string{"id", "text", "user_id"}))

		_, err := repo.Feed(ctx, requested, 0)
		assert.NoError(t, err)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageRepository_Feed_CachesAnonymousDefault(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewMessageRepository(db)
	ctx := context.Background()

	mr := miniredis.RunT(t)
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	defer cache.SetClient(nil)

	// One database round trip; the second anonymous read comes from Redis.
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT messages.*, false as liked FROM "messages" ORDER BY created_at DESC LIMIT $1`)).
		WithArgs(FeedLimit).
		WillReturnRows(sqlmock.NewRows([]string{"id", "text", "user_id"}).AddRow(10, "hello", 1))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1`)).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(1, "warblefan"))

	first, err := repo.Feed(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := repo.Feed(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, "hello", second[0].Text)
	assert.True(t, mr.Exists(cache.FeedKey))
	assert.NoError(t, mock.ExpectationsWereMet())

	// Authenticated feeds carry per-viewer liked flags and skip the cache.
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT messages.*, EXISTS(SELECT 1 FROM likes WHERE likes.message_id = messages.id AND likes.user_id = $1) as liked FROM "messages" ORDER BY created_at DESC LIMIT $2`)).
		WithArgs(5, FeedLimit).
		WillReturnRows(sqlmock.NewRows([]string{"id", "text", "user_id"}))

	_, err = repo.Feed(ctx, 0, 5)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageRepository_Delete(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewMessageRepository(db)
	ctx := context.Background()

	messageID := uint(10)
	authorID := uint(1)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "likes" WHERE message_id = $1`)).
		WithArgs(messageID).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "messages" WHERE "messages"."id" = $1`)).
		WithArgs(messageID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE users SET warbles_count = warbles_count - 1 WHERE id = $1 AND warbles_count > 0`)).
		WithArgs(authorID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Delete(ctx, messageID, authorID)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageRepository_Delete_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewMessageRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "likes" WHERE message_id = $1`)).
		WithArgs(99).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "messages" WHERE "messages"."id" = $1`)).
		WithArgs(99).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Delete(ctx, 99, 1)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
