// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"warbler/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetFeed handles GET /api/warbles
// Returns the most recent warbles across the whole network, newest first.
func (s *Server) GetFeed(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 100)
	viewerID, _ := s.optionalUserID(c)

	messages, err := s.messageService.Feed(c.Context(), limit, viewerID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(messages)
}

// CreateWarble handles POST /api/warbles
func (s *Server) CreateWarble(c *fiber.Ctx) error {
	authorID := c.Locals("userID").(uint)

	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	message, err := s.messageService.Post(c.Context(), authorID, req.Text)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(message)
}

// GetWarble handles GET /api/warbles/:id
func (s *Server) GetWarble(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	viewerID, _ := s.optionalUserID(c)
	message, err := s.messageService.Get(c.Context(), id, viewerID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(message)
}

// DeleteWarble handles DELETE /api/warbles/:id
func (s *Server) DeleteWarble(c *fiber.Ctx) error {
	actorID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.messageService.Delete(c.Context(), actorID, id); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{"message": "Warble deleted"})
}

// LikeWarble handles POST /api/warbles/:id/like
func (s *Server) LikeWarble(c *fiber.Ctx) error {
	actorID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.engagementService.Like(c.Context(), actorID, id); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{"message": "Liked"})
}

// UnlikeWarble handles DELETE /api/warbles/:id/like
func (s *Server) UnlikeWarble(c *fiber.Ctx) error {
	actorID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.engagementService.Unlike(c.Context(), actorID, id); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{"message": "Unliked"})
}

// GetWarbleLikes handles GET /api/warbles/:id/likes
func (s *Server) GetWarbleLikes(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	page := parsePagination(c, 20)
	users, err := s.engagementService.LikesForMessage(c.Context(), id, page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(users)
}
