package service

import (
	"context"
	"errors"
	"testing"

	"warbler/internal/models"
)

type followRepoStub struct {
	createFn         func(context.Context, uint, uint) error
	deleteFn         func(context.Context, uint, uint) error
	existsFn         func(context.Context, uint, uint) (bool, error)
	followersFn      func(context.Context, uint, int, int) ([]models.User, error)
	followingFn      func(context.Context, uint, int, int) ([]models.User, error)
	countFollowersFn func(context.Context, uint) (int64, error)
	countFollowingFn func(context.Context, uint) (int64, error)
}

func (s *followRepoStub) Create(ctx context.Context, followerID, followedID uint) error {
	return s.createFn(ctx, followerID, followedID)
}
func (s *followRepoStub) Delete(ctx context.Context, followerID, followedID uint) error {
	return s.deleteFn(ctx, followerID, followedID)
}
func (s *followRepoStub) Exists(ctx context.Context, followerID, followedID uint) (bool, error) {
	return s.existsFn(ctx, followerID, followedID)
}
func (s *followRepoStub) Followers(ctx context.Context, userID uint, limit, offset int) ([]models.User, error) {
	return s.followersFn(ctx, userID, limit, offset)
}
func (s *followRepoStub) Following(ctx context.Context, userID uint, limit, offset int) ([]models.User, error) {
	return s.followingFn(ctx, userID, limit, offset)
}
func (s *followRepoStub) CountFollowers(ctx context.Context, userID uint) (int64, error) {
	return s.countFollowersFn(ctx, userID)
}
func (s *followRepoStub) CountFollowing(ctx context.Context, userID uint) (int64, error) {
	return s.countFollowingFn(ctx, userID)
}

func noopFollowRepo() *followRepoStub {
	return &followRepoStub{
		createFn:         func(context.Context, uint, uint) error { return nil },
		deleteFn:         func(context.Context, uint, uint) error { return nil },
		existsFn:         func(context.Context, uint, uint) (bool, error) { return false, nil },
		followersFn:      func(context.Context, uint, int, int) ([]models.User, error) { return nil, nil },
		followingFn:      func(context.Context, uint, int, int) ([]models.User, error) { return nil, nil },
		countFollowersFn: func(context.Context, uint) (int64, error) { return 0, nil },
		countFollowingFn: func(context.Context, uint) (int64, error) { return 0, nil },
	}
}

func TestSocialServiceFollowSelf(t *testing.T) {
	svc := NewSocialService(noopFollowRepo(), noopUserRepo())
	err := svc.Follow(context.Background(), 3, 3)
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "SELF_FOLLOW" {
		t.Fatalf("expected self-follow app error, got %#v", err)
	}
}

func TestSocialServiceFollowMissingTarget(t *testing.T) {
	users := noopUserRepo()
	users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return nil, models.NewNotFoundError("User", id)
	}

	svc := NewSocialService(noopFollowRepo(), users)
	err := svc.Follow(context.Background(), 1, 99)
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "NOT_FOUND" {
		t.Fatalf("expected not-found app error, got %#v", err)
	}
}

func TestSocialServiceFollowIdempotent(t *testing.T) {
	calls := 0
	follows := noopFollowRepo()
	follows.createFn = func(context.Context, uint, uint) error {
		calls++
		return nil
	}

	svc := NewSocialService(follows, noopUserRepo())
	ctx := context.Background()
	// Repeating the same follow never errors
	if err := svc.Follow(ctx, 1, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Follow(ctx, 1, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected 2 repository calls, got %d", calls)
	}
}

func TestSocialServiceUnfollowIdempotent(t *testing.T) {
	svc := NewSocialService(noopFollowRepo(), noopUserRepo())
	if err := svc.Unfollow(context.Background(), 1, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSocialServiceIsFollowedByInvertsArguments(t *testing.T) {
	var gotFollower, gotFollowed uint
	follows := noopFollowRepo()
	follows.existsFn = func(_ context.Context, followerID, followedID uint) (bool, error) {
		gotFollower, gotFollowed = followerID, followedID
		return true, nil
	}

	svc := NewSocialService(follows, noopUserRepo())
	ok, err := svc.IsFollowedBy(context.Background(), 1, 2)
	if err != nil || !ok {
		t.Fatalf("expected true, nil, got %v, %v", ok, err)
	}
	if gotFollower != 2 || gotFollowed != 1 {
		t.Fatalf("expected edge (2 -> 1), got (%d -> %d)", gotFollower, gotFollowed)
	}
}

func TestSocialServiceFollowCounts(t *testing.T) {
	follows := noopFollowRepo()
	follows.countFollowersFn = func(context.Context, uint) (int64, error) { return 3, nil }
	follows.countFollowingFn = func(context.Context, uint) (int64, error) { return 7, nil }

	svc := NewSocialService(follows, noopUserRepo())
	followers, following, err := svc.FollowCounts(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if followers != 3 || following != 7 {
		t.Fatalf("expected 3/7, got %d/%d", followers, following)
	}
}
