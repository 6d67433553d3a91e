// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"warbler/internal/models"

	"github.com/gofiber/fiber/v2"
)

// FollowUser handles POST /api/follows/:userId
func (s *Server) FollowUser(c *fiber.Ctx) error {
	actorID := c.Locals("userID").(uint)
	targetID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	if err := s.socialService.Follow(c.Context(), actorID, targetID); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{"message": "Following"})
}

// UnfollowUser handles DELETE /api/follows/:userId
func (s *Server) UnfollowUser(c *fiber.Ctx) error {
	actorID := c.Locals("userID").(uint)
	targetID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	if err := s.socialService.Unfollow(c.Context(), actorID, targetID); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{"message": "Unfollowed"})
}

// GetFollowStatus handles GET /api/follows/status/:userId
func (s *Server) GetFollowStatus(c *fiber.Ctx) error {
	actorID := c.Locals("userID").(uint)
	targetID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	following, err := s.socialService.IsFollowing(c.Context(), actorID, targetID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	followedBy, err := s.socialService.IsFollowedBy(c.Context(), actorID, targetID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{
		"following":   following,
		"followed_by": followedBy,
	})
}
