package server

import (
	"milemeet/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetProfile handles GET /users/:id/profile (protected, owner only)
// @Summary Get a user's profile
// @Tags profiles
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.Profile
// @Failure 401 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /users/{id}/profile [get]
func (s *Server) GetProfile(c *fiber.Ctx) error {
	ctx := c.UserContext()
	requesterID := c.Locals("userID").(uint)

	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	profile, err := s.profileService.Get(ctx, requesterID, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(profile)
}

// UpdateProfile handles PATCH /users/:id/profile (protected, owner only)
// @Summary Update a user's bio
// @Tags profiles
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body object{profile=object{bio=string}} true "Profile payload"
// @Success 200 {object} models.Profile
// @Failure 401 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /users/{id}/profile [patch]
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	ctx := c.UserContext()
	requesterID := c.Locals("userID").(uint)

	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Profile struct {
			Bio string `json:"bio"`
		} `json:"profile"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	profile, err := s.profileService.UpdateBio(ctx, requesterID, userID, req.Profile.Bio)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(profile)
}
