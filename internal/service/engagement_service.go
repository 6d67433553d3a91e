package service

import (
	"context"

	"warbler/internal/middleware"
	"warbler/internal/models"
	"warbler/internal/repository"
)

// EngagementService provides like/unlike business logic.
type EngagementService struct {
	likeRepo    repository.LikeRepository
	messageRepo repository.MessageRepository
}

// NewEngagementService returns a new EngagementService.
func NewEngagementService(likeRepo repository.LikeRepository, messageRepo repository.MessageRepository) *EngagementService {
	return &EngagementService{
		likeRepo:    likeRepo,
		messageRepo: messageRepo,
	}
}

// Like records that actorID likes the message. Liking an already-liked
// message is a no-op; users cannot like their own warbles.
func (s *EngagementService) Like(ctx context.Context, actorID, messageID uint) error {
	message, err := s.messageRepo.GetByID(ctx, messageID, 0)
	if err != nil {
		return err
	}
	if message.UserID == actorID {
		return models.NewSelfLikeError()
	}

	if err := s.likeRepo.Create(ctx, actorID, messageID); err != nil {
		return err
	}

	middleware.LikeEdgesChanged.WithLabelValues("like").Inc()
	return nil
}

// Unlike removes the like edge; removing an absent edge is a no-op.
func (s *EngagementService) Unlike(ctx context.Context, actorID, messageID uint) error {
	if _, err := s.messageRepo.GetByID(ctx, messageID, 0); err != nil {
		return err
	}

	if err := s.likeRepo.Delete(ctx, actorID, messageID); err != nil {
		return err
	}

	middleware.LikeEdgesChanged.WithLabelValues("unlike").Inc()
	return nil
}

// HasLiked reports whether userID has liked the message.
func (s *EngagementService) HasLiked(ctx context.Context, userID, messageID uint) (bool, error) {
	return s.likeRepo.Exists(ctx, userID, messageID)
}

// LikesForMessage returns the users who liked the message.
func (s *EngagementService) LikesForMessage(ctx context.Context, messageID uint, limit, offset int) ([]models.User, error) {
	if _, err := s.messageRepo.GetByID(ctx, messageID, 0); err != nil {
		return nil, err
	}
	return s.likeRepo.UsersForMessage(ctx, messageID, limit, offset)
}

// LikedMessagesForUser returns the messages a user has liked, most
// recently liked first.
func (s *EngagementService) LikedMessagesForUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Message, error) {
	return s.messageRepo.LikedByUser(ctx, userID, limit, offset)
}
