package server

import (
	"github.com/gofiber/fiber/v2"
)

// JoinMeetup handles POST /meetups/:id/join (protected)
// @Summary Join a meetup
// @Description Adds the authenticated user as a participant. Joining twice is
// @Description rejected with a validation error.
// @Tags meetups
// @Produce json
// @Param id path int true "Meetup ID"
// @Success 201 {object} models.MeetupParticipant
// @Failure 404 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /meetups/{id}/join [post]
func (s *Server) JoinMeetup(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	meetupID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	participant, err := s.meetupService.Join(ctx, meetupID, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(participant)
}

// LeaveMeetup handles DELETE /meetups/:id/leave (protected)
// @Summary Leave a meetup
// @Tags meetups
// @Produce json
// @Param id path int true "Meetup ID"
// @Success 200 {object} object{message=string}
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /meetups/{id}/leave [delete]
func (s *Server) LeaveMeetup(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	meetupID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.meetupService.Leave(ctx, meetupID, userID); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Successfully left the meetup",
	})
}
