package presenters

import (
	"errors"

	"foodbank-backend/domain"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

type Response struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func SuccessResponse(c *fiber.Ctx, data any, statusCode int, message string) error {
	return c.Status(statusCode).JSON(Response{
		Status:  true,
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(c *fiber.Ctx, statusCode int, message string, err error) error {
	res := Response{
		Status:  false,
		Message: message,
	}
	if err != nil {
		res.Error = err.Error()
	}
	return c.Status(statusCode).JSON(res)
}

// FailResponse maps err onto a status code and logs anything that is not a
// client error.
func FailResponse(c *fiber.Ctx, message string, err error) error {
	code := StatusFromError(err)
	if code >= fiber.StatusInternalServerError {
		log.Errorf("%s %s: %s: %v", c.Method(), c.Path(), message, err)
	}
	return ErrorResponse(c, code, message, err)
}

func StatusFromError(err error) int {
	var validationErrs validator.ValidationErrors
	var fiberErr *fiber.Error

	switch {
	case err == nil:
		return fiber.StatusOK
	case errors.As(err, &validationErrs),
		errors.Is(err, domain.ErrInvalidObjectID),
		errors.Is(err, domain.ErrInvalidImageFormat),
		errors.Is(err, domain.ErrImageTooLarge):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrFoodNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrNoFavorites),
		errors.Is(err, domain.ErrFavoriteNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrTokenNotFound),
		errors.Is(err, domain.ErrTokenInvalid),
		errors.Is(err, domain.ErrTokenExpired):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrUserNotAllowed):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrStorageNotConfigured):
		return fiber.StatusServiceUnavailable
	case errors.As(err, &fiberErr):
		return fiberErr.Code
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandler is the fiber app error handler for errors that escape a
// handler, including recovered panics.
func ErrorHandler(c *fiber.Ctx, err error) error {
	return FailResponse(c, domain.MessageFailedProcessRequest, err)
}
