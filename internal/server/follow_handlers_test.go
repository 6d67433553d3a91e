package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"warbler/internal/config"
	"warbler/internal/models"
	"warbler/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockFollowRepository is a mock of the FollowRepository interface
type MockFollowRepository struct {
	mock.Mock
}

func (m *MockFollowRepository) Create(ctx context.Context, followerID, followedID uint) error {
	args := m.Called(ctx, followerID, followedID)
	return args.Error(0)
}

func (m *MockFollowRepository) Delete(ctx context.Context, followerID, followedID uint) error {
	args := m.Called(ctx, followerID, followedID)
	return args.Error(0)
}

func (m *MockFollowRepository) Exists(ctx context.Context, followerID, followedID uint) (bool, error) {
	args := m.Called(ctx, followerID, followedID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFollowRepository) Followers(ctx context.Context, userID uint, limit, offset int) ([]models.User, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockFollowRepository) Following(ctx context.Context, userID uint, limit, offset int) ([]models.User, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockFollowRepository) CountFollowers(ctx context.Context, userID uint) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFollowRepository) CountFollowing(ctx context.Context, userID uint) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func newFollowTestApp(followRepo *MockFollowRepository, userRepo *MockUserRepository) (*fiber.App, *Server) {
	s := &Server{
		config:     &config.Config{JWTSecret: "test_secret"},
		userRepo:   userRepo,
		followRepo: followRepo,
	}
	s.socialService = service.NewSocialService(followRepo, userRepo)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", uint(1))
		return c.Next()
	})
	app.Post("/follows/:userId", s.FollowUser)
	app.Delete("/follows/:userId", s.UnfollowUser)
	app.Get("/follows/status/:userId", s.GetFollowStatus)
	return app, s
}

func TestFollowUser(t *testing.T) {
	followRepo := new(MockFollowRepository)
	userRepo := new(MockUserRepository)
	app, _ := newFollowTestApp(followRepo, userRepo)

	t.Run("Success", func(t *testing.T) {
		userRepo.On("GetByID", mock.Anything, uint(2)).Return(&models.User{ID: 2}, nil).Once()
		followRepo.On("Create", mock.Anything, uint(1), uint(2)).Return(nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/follows/2", nil)
		resp, _ := app.Test(req)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		_ = resp.Body.Close()
	})

	t.Run("Self follow", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/follows/1", nil)
		resp, _ := app.Test(req)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		_ = resp.Body.Close()
	})

	t.Run("Missing target", func(t *testing.T) {
		userRepo.On("GetByID", mock.Anything, uint(99)).
			Return(nil, models.NewNotFoundError("User", uint(99))).Once()

		req := httptest.NewRequest(http.MethodPost, "/follows/99", nil)
		resp, _ := app.Test(req)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		_ = resp.Body.Close()
	})

	followRepo.AssertExpectations(t)
	userRepo.AssertExpectations(t)
}

func TestUnfollowUserIdempotent(t *testing.T) {
	followRepo := new(MockFollowRepository)
	userRepo := new(MockUserRepository)
	app, _ := newFollowTestApp(followRepo, userRepo)

	userRepo.On("GetByID", mock.Anything, uint(2)).Return(&models.User{ID: 2}, nil)
	followRepo.On("Delete", mock.Anything, uint(1), uint(2)).Return(nil)

	// Unfollowing twice responds OK both times
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodDelete, "/follows/2", nil)
		resp, _ := app.Test(req)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		_ = resp.Body.Close()
	}
}

func TestGetFollowStatus(t *testing.T) {
	followRepo := new(MockFollowRepository)
	userRepo := new(MockUserRepository)
	app, _ := newFollowTestApp(followRepo, userRepo)

	// user 1 follows 2, but 2 does not follow back
	followRepo.On("Exists", mock.Anything, uint(1), uint(2)).Return(true, nil).Once()
	followRepo.On("Exists", mock.Anything, uint(2), uint(1)).Return(false, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/follows/status/2", nil)
	resp, _ := app.Test(req)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Following  bool `json:"following"`
		FollowedBy bool `json:"followed_by"`
	}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.True(t, out.Following)
	assert.False(t, out.FollowedBy)

	followRepo.AssertExpectations(t)
}
