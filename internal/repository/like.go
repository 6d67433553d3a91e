// Package repository implements the data access layer for the application.
package repository

import (
	"context"

	"warbler/internal/cache"
	"warbler/internal/models"

	"gorm.io/gorm"
)

// LikeRepository defines the interface for like-edge data operations
type LikeRepository interface {
	Create(ctx context.Context, userID, messageID uint) error
	Delete(ctx context.Context, userID, messageID uint) error
	Exists(ctx context.Context, userID, messageID uint) (bool, error)
	UsersForMessage(ctx context.Context, messageID uint, limit, offset int) ([]models.User, error)
}

// likeRepository implements LikeRepository
type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository creates a new like repository
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Create inserts the like edge and bumps the message counter only when a
// row was actually inserted, so racing duplicates never double-count.
func (r *likeRepository) Create(ctx context.Context, userID, messageID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Exec(
			`INSERT INTO likes (user_id, message_id, created_at)
			 VALUES (?, ?, NOW())
			 ON CONFLICT (user_id, message_id) DO NOTHING`,
			userID, messageID,
		)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		return tx.Exec(
			`UPDATE messages SET likes_count = likes_count + 1 WHERE id = ?`,
			messageID,
		).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}

	cache.InvalidateMessage(ctx, messageID)
	cache.InvalidateFeed(ctx)
	return nil
}

// Delete removes the like edge; the counter only moves when a row was
// actually removed.
func (r *likeRepository) Delete(ctx context.Context, userID, messageID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND message_id = ?", userID, messageID).
			Delete(&models.Like{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		return tx.Exec(
			`UPDATE messages SET likes_count = likes_count - 1 WHERE id = ? AND likes_count > 0`,
			messageID,
		).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}

	cache.InvalidateMessage(ctx, messageID)
	cache.InvalidateFeed(ctx)
	return nil
}

func (r *likeRepository) Exists(ctx context.Context, userID, messageID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND message_id = ?", userID, messageID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *likeRepository) UsersForMessage(ctx context.Context, messageID uint, limit, offset int) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Table("users").
		Joins("JOIN likes l ON users.id = l.user_id").
		Where("l.message_id = ?", messageID).
		Order("l.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}
