package server

import (
	"encoding/json"

	"milemeet/internal/models"
	"milemeet/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetComments handles GET /meetups/:id/comments
// @Summary List comments for a meetup
// @Description Returns one page of comments in chronological order. The list
// @Description is embedded as a JSON-encoded string alongside pagination fields.
// @Tags comments
// @Produce json
// @Param id path int true "Meetup ID"
// @Param page query int false "Page number (default 1)"
// @Success 200 {object} object{comments=string,total_pages=int,current_page=int}
// @Failure 404 {object} models.ErrorResponse
// @Router /meetups/{id}/comments [get]
func (s *Server) GetComments(c *fiber.Ctx) error {
	ctx := c.UserContext()

	meetupID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	page, err := s.commentService.List(ctx, meetupID, parsePage(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	embedded, err := json.Marshal(page.Comments)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"comments":     string(embedded),
		"total_pages":  page.TotalPages,
		"current_page": page.CurrentPage,
	})
}

// CreateComment handles POST /meetups/:id/comments (protected)
// @Summary Comment on a meetup
// @Tags comments
// @Accept json
// @Produce json
// @Param id path int true "Meetup ID"
// @Param request body object{comment=object{content=string}} true "Comment payload"
// @Success 201 {object} models.Comment
// @Failure 404 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /meetups/{id}/comments [post]
func (s *Server) CreateComment(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	meetupID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Comment struct {
			Content string `json:"content"`
		} `json:"comment"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.Create(ctx, service.CreateCommentInput{
		UserID:   userID,
		MeetupID: meetupID,
		Content:  req.Comment.Content,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}
