// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"

	"warbler/internal/cache"
	"warbler/internal/models"

	"gorm.io/gorm"
)

// FeedLimit caps how many messages a single feed query returns.
const FeedLimit = 100

// MessageRepository defines the interface for warble data operations
type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Message, error)
	GetByUserID(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Message, error)
	Feed(ctx context.Context, limit int, currentUserID uint) ([]*models.Message, error)
	LikedByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Message, error)
	Delete(ctx context.Context, id, authorID uint) error
}

// messageRepository implements MessageRepository
type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

// Create inserts the message and bumps the author's warble counter in the
// same transaction, so the counter only moves on a confirmed insert.
func (r *messageRepository) Create(ctx context.Context, message *models.Message) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(message).Error; err != nil {
			return err
		}
		return tx.Exec(
			`UPDATE users SET warbles_count = warbles_count + 1 WHERE id = ?`,
			message.UserID,
		).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}

	cache.InvalidateUser(ctx, message.UserID)
	cache.InvalidateFeed(ctx)
	return nil
}

func (r *messageRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Message, error) {
	var message models.Message

	var err error
	if currentUserID == 0 {
		key := cache.MessageKey(id)
		err = cache.Aside(ctx, key, &message, cache.MessageTTL, func() error {
			return r.applyLiked(r.db.WithContext(ctx), 0).
				Preload("User").
				First(&message, id).Error
		})
	} else {
		err = r.applyLiked(r.db.WithContext(ctx), currentUserID).
			Preload("User").
			First(&message, id).Error
	}

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Message", id)
		}
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, models.NewInternalError(err)
	}
	return &message, nil
}

func (r *messageRepository) GetByUserID(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Message, error) {
	var messages []*models.Message
	err := r.applyLiked(r.db.WithContext(ctx), currentUserID).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&messages).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return messages, nil
}

// Feed returns the most recent messages across the whole network,
// newest first, capped at FeedLimit. The anonymous default feed is served
// through the cache; authenticated feeds carry per-viewer liked flags and
// stay uncached.
func (r *messageRepository) Feed(ctx context.Context, limit int, currentUserID uint) ([]*models.Message, error) {
	if limit <= 0 || limit > FeedLimit {
		limit = FeedLimit
	}

	var messages []*models.Message
	fetch := func() error {
		return r.applyLiked(r.db.WithContext(ctx), currentUserID).
			Preload("User").
			Order("created_at DESC").
			Limit(limit).
			Find(&messages).Error
	}

	var err error
	if currentUserID == 0 && limit == FeedLimit {
		err = cache.Aside(ctx, cache.FeedKey, &messages, cache.FeedTTL, fetch)
	} else {
		err = fetch()
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return messages, nil
}

func (r *messageRepository) LikedByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Message, error) {
	var messages []*models.Message
	err := r.db.WithContext(ctx).
		Select("messages.*, true as liked").
		Joins("JOIN likes ON likes.message_id = messages.id").
		Where("likes.user_id = ?", userID).
		Order("likes.created_at DESC").
		Limit(limit).
		Offset(offset).
		Preload("User").
		Find(&messages).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return messages, nil
}

// Delete removes the message, its likes, and settles the author's warble
// counter, all inside one transaction.
func (r *messageRepository) Delete(ctx context.Context, id, authorID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("message_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.Message{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return models.NewNotFoundError("Message", id)
		}

		return tx.Exec(
			`UPDATE users SET warbles_count = warbles_count - 1 WHERE id = ? AND warbles_count > 0`,
			authorID,
		).Error
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return err
		}
		return models.NewInternalError(err)
	}

	cache.InvalidateMessage(ctx, id)
	cache.InvalidateUser(ctx, authorID)
	cache.InvalidateFeed(ctx)
	return nil
}

// applyLiked adds the has-liked flag for the viewing user in a single query.
func (r *messageRepository) applyLiked(db *gorm.DB, currentUserID uint) *gorm.DB {
	if currentUserID != 0 {
		return db.Select(
			"messages.*, EXISTS(SELECT 1 FROM likes WHERE likes.message_id = messages.id AND likes.user_id = ?) as liked",
			currentUserID,
		)
	}
	return db.Select("messages.*, false as liked")
}
