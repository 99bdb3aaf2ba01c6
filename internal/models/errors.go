package models

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// ErrorResponse is the standardized API error body. Validation failures carry
// one message per failed field; everything else carries a single message.
type ErrorResponse struct {
	Errors []string `json:"errors"`
	Code   string   `json:"code,omitempty"`
}

// AppError represents a custom application error.
type AppError struct {
	Code     string
	Messages []string
	Err      error
}

func (e *AppError) Error() string {
	msg := "unknown error"
	if len(e.Messages) > 0 {
		msg = e.Messages[0]
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Predefined error constructors

func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:     "NOT_FOUND",
		Messages: []string{fmt.Sprintf("%s with ID %v not found", resource, id)},
	}
}

func NewValidationError(messages ...string) *AppError {
	return &AppError{
		Code:     "VALIDATION_ERROR",
		Messages: messages,
	}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Code:     "UNAUTHORIZED",
		Messages: []string{message},
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:     "INTERNAL_ERROR",
		Messages: []string{"Internal server error"},
		Err:      err,
	}
}

// RespondWithError writes a standardized error response.
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	var response ErrorResponse

	if appErr, ok := err.(*AppError); ok {
		response = ErrorResponse{
			Errors: appErr.Messages,
			Code:   appErr.Code,
		}
	} else {
		response = ErrorResponse{
			Errors: []string{err.Error()},
		}
	}

	return c.Status(status).JSON(response)
}
