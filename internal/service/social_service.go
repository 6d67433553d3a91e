package service

import (
	"context"

	"warbler/internal/middleware"
	"warbler/internal/models"
	"warbler/internal/repository"
)

// SocialService provides follow-graph business logic.
type SocialService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

// NewSocialService returns a new SocialService.
func NewSocialService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *SocialService {
	return &SocialService{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// Follow makes actorID follow targetID. Following someone already
// followed is a no-op.
func (s *SocialService) Follow(ctx context.Context, actorID, targetID uint) error {
	if actorID == targetID {
		return models.NewSelfFollowError()
	}

	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return err
	}

	if err := s.followRepo.Create(ctx, actorID, targetID); err != nil {
		return err
	}

	middleware.FollowEdgesChanged.WithLabelValues("follow").Inc()
	return nil
}

// Unfollow removes the edge; unfollowing someone not followed is a no-op.
func (s *SocialService) Unfollow(ctx context.Context, actorID, targetID uint) error {
	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return err
	}

	if err := s.followRepo.Delete(ctx, actorID, targetID); err != nil {
		return err
	}

	middleware.FollowEdgesChanged.WithLabelValues("unfollow").Inc()
	return nil
}

// IsFollowing reports whether userID follows otherID.
func (s *SocialService) IsFollowing(ctx context.Context, userID, otherID uint) (bool, error) {
	return s.followRepo.Exists(ctx, userID, otherID)
}

// IsFollowedBy reports whether otherID follows userID.
func (s *SocialService) IsFollowedBy(ctx context.Context, userID, otherID uint) (bool, error) {
	return s.followRepo.Exists(ctx, otherID, userID)
}

// Followers returns users who follow the given user.
func (s *SocialService) Followers(ctx context.Context, userID uint, limit, offset int) ([]models.User, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.followRepo.Followers(ctx, userID, limit, offset)
}

// Following returns users the given user follows.
func (s *SocialService) Following(ctx context.Context, userID uint, limit, offset int) ([]models.User, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.followRepo.Following(ctx, userID, limit, offset)
}

// FollowCounts returns follower and following totals for the user.
func (s *SocialService) FollowCounts(ctx context.Context, userID uint) (followers, following int64, err error) {
	followers, err = s.followRepo.CountFollowers(ctx, userID)
	if err != nil {
		return 0, 0, err
	}
	following, err = s.followRepo.CountFollowing(ctx, userID)
	if err != nil {
		return 0, 0, err
	}
	return followers, following, nil
}
