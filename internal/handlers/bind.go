package handlers

import (
	"net/http"

	"github.com/agamariel/uniformes/internal/validation"
	"github.com/labstack/echo/v4"
)

// bindAndValidate разбирает JSON и проверяет его валидатором echo.
// Ошибки возвращаются как 400 с перечнем полей.
func bindAndValidate(c echo.Context, out interface{}) error {
	if err := c.Bind(out); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request format")
	}
	if err := c.Validate(out); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]interface{}{
			"error":  "validation_failed",
			"fields": validation.Fields(err),
		})
	}
	return nil
}
