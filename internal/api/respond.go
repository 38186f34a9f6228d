package api

import (
	"errors"

	"github.com/labstack/echo/v4"

	"storefront-service/internal/service"
)

// jsonError maps service errors onto the wire shape every endpoint uses.
func jsonError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(404, map[string]string{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrEmptyCart):
		return c.JSON(400, map[string]string{"error": err.Error()})
	case errors.Is(err, service.ErrWrongPassword),
		errors.Is(err, service.ErrSessionNotFound):
		return c.JSON(401, map[string]string{"error": err.Error()})
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrDuplicateProduct),
		errors.Is(err, service.ErrInvalidTransition):
		return c.JSON(409, map[string]string{"error": err.Error()})
	}
	return c.JSON(500, map[string]string{"error": err.Error()})
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(400, map[string]string{"error": msg})
}
