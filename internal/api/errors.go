package api

import (
	"errors"
	"net/http"

	"github.com/bilgisen/resourcehub/internal/logger"
	"github.com/bilgisen/resourcehub/internal/source"
	"github.com/gofiber/fiber/v2"
)

// ErrorHandler is the app-wide Fiber error handler.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := http.StatusText(code)

	var fe *fiber.Error
	switch {
	case errors.Is(err, source.ErrNotFound):
		code = fiber.StatusNotFound
		message = "Resource not found"
	case errors.As(err, &fe):
		code = fe.Code
		message = fe.Message
	}

	event := logger.Get().Error()
	if code < fiber.StatusInternalServerError {
		event = logger.Get().Warn()
	}
	event.
		Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Int("status", code).
		Msg("HTTP error")

	return c.Status(code).JSON(fiber.Map{
		"error": message,
	})
}
