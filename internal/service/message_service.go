package service

import (
	"context"
	"strings"

	"warbler/internal/middleware"
	"warbler/internal/models"
	"warbler/internal/repository"
	"warbler/internal/validation"
)

// MessageService provides warble business logic.
type MessageService struct {
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
}

// NewMessageService returns a new MessageService.
func NewMessageService(messageRepo repository.MessageRepository, userRepo repository.UserRepository) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		userRepo:    userRepo,
	}
}

// Post creates a new warble for the author.
func (s *MessageService) Post(ctx context.Context, authorID uint, text string) (*models.Message, error) {
	text = strings.TrimSpace(text)
	if err := validation.ValidateMessageText(text); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	message := &models.Message{
		Text:   text,
		UserID: authorID,
	}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	middleware.WarblesCreated.Inc()
	return message, nil
}

// Get returns a single warble with the viewer's liked flag resolved.
func (s *MessageService) Get(ctx context.Context, messageID, viewerID uint) (*models.Message, error) {
	return s.messageRepo.GetByID(ctx, messageID, viewerID)
}

// Delete removes a warble. Only its author may delete it.
func (s *MessageService) Delete(ctx context.Context, actorID, messageID uint) error {
	message, err := s.messageRepo.GetByID(ctx, messageID, 0)
	if err != nil {
		return err
	}
	if message.UserID != actorID {
		return models.NewUnauthorizedError("You can only delete your own warbles")
	}

	return s.messageRepo.Delete(ctx, messageID, message.UserID)
}

// Feed returns the most recent warbles across the whole network.
func (s *MessageService) Feed(ctx context.Context, limit int, viewerID uint) ([]*models.Message, error) {
	return s.messageRepo.Feed(ctx, limit, viewerID)
}

// Timeline returns a user's own warbles, newest first.
func (s *MessageService) Timeline(ctx context.Context, userID uint, limit, offset int, viewerID uint) ([]*models.Message, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.messageRepo.GetByUserID(ctx, userID, limit, offset, viewerID)
}
