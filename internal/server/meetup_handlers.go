package server

import (
	"encoding/json"
	"time"

	"milemeet/internal/models"
	"milemeet/internal/service"

	"github.com/gofiber/fiber/v2"
)

type locationPayload struct {
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
	Country string `json:"country"`
}

type meetupPayload struct {
	Title              string          `json:"title"`
	Activity           models.Activity `json:"activity"`
	StartDateTime      time.Time       `json:"start_date_time"`
	EndDateTime        time.Time       `json:"end_date_time"`
	Guests             int             `json:"guests"`
	LocationAttributes locationPayload `json:"location_attributes"`
}

func (p meetupPayload) toInput(userID uint) service.MeetupInput {
	return service.MeetupInput{
		UserID:        userID,
		Title:         p.Title,
		Activity:      p.Activity,
		StartDateTime: p.StartDateTime,
		EndDateTime:   p.EndDateTime,
		Guests:        p.Guests,
		Location: service.LocationInput{
			Address: p.LocationAttributes.Address,
			City:    p.LocationAttributes.City,
			State:   p.LocationAttributes.State,
			ZipCode: p.LocationAttributes.ZipCode,
			Country: p.LocationAttributes.Country,
		},
	}
}

// GetMeetups handles GET /meetups
// @Summary List meetups
// @Description Returns one page of meetups ordered by start time. The list is
// @Description embedded as a JSON-encoded string alongside pagination fields.
// @Tags meetups
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Success 200 {object} object{meetups=string,total_pages=int,current_page=int}
// @Router /meetups [get]
func (s *Server) GetMeetups(c *fiber.Ctx) error {
	ctx := c.UserContext()

	page, err := s.meetupService.List(ctx, parsePage(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	// The collection travels as a JSON string so the payload shape matches
	// what existing clients parse.
	embedded, err := json.Marshal(page.Meetups)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"meetups":      string(embedded),
		"total_pages":  page.TotalPages,
		"current_page": page.CurrentPage,
	})
}

// GetMeetup handles GET /meetups/:id
// @Summary Get one meetup
// @Description Returns a meetup with its location, participants, and comments
// @Tags meetups
// @Produce json
// @Param id path int true "Meetup ID"
// @Success 200 {object} models.Meetup
// @Failure 404 {object} models.ErrorResponse
// @Router /meetups/{id} [get]
func (s *Server) GetMeetup(c *fiber.Ctx) error {
	ctx := c.UserContext()

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	meetup, err := s.meetupService.Get(ctx, id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(meetup)
}

// CreateMeetup handles POST /meetups (protected)
// @Summary Create a meetup
// @Tags meetups
// @Accept json
// @Produce json
// @Param request body object{meetup=server.meetupPayload} true "Meetup payload"
// @Success 201 {object} models.Meetup
// @Failure 422 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /meetups [post]
func (s *Server) CreateMeetup(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	var req struct {
		Meetup meetupPayload `json:"meetup"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	meetup, err := s.meetupService.Create(ctx, req.Meetup.toInput(userID))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(meetup)
}

// UpdateMeetup handles PUT /meetups/:id (protected, owner only)
// @Summary Update a meetup
// @Tags meetups
// @Accept json
// @Produce json
// @Param id path int true "Meetup ID"
// @Param request body object{meetup=server.meetupPayload} true "Meetup payload"
// @Success 200 {object} models.Meetup
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /meetups/{id} [put]
func (s *Server) UpdateMeetup(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Meetup meetupPayload `json:"meetup"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	meetup, err := s.meetupService.Update(ctx, id, req.Meetup.toInput(userID))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(meetup)
}

// DeleteMeetup handles DELETE /meetups/:id (protected, owner only)
// @Summary Delete a meetup
// @Tags meetups
// @Param id path int true "Meetup ID"
// @Success 204
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /meetups/{id} [delete]
func (s *Server) DeleteMeetup(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.meetupService.Delete(ctx, id, userID); err != nil {
		return respondServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
