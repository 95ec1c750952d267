package handlers

import (
	"errors"
	"net/http"

	"github.com/agamariel/uniformes/internal/auth"
	"github.com/agamariel/uniformes/internal/models"
	"github.com/agamariel/uniformes/internal/services"
	"github.com/agamariel/uniformes/internal/storage"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ReservationHandler обрабатывает запросы, связанные с резервами.
type ReservationHandler struct {
	reservationService services.ReservationService
}

func NewReservationHandler(reservationService services.ReservationService) *ReservationHandler {
	return &ReservationHandler{reservationService: reservationService}
}

// Create обрабатывает POST /api/reservations.
func (h *ReservationHandler) Create(c echo.Context) error {
	identity, err := auth.GetIdentityFromContext(c)
	if err != nil {
		return err
	}

	var req models.CreateReservationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	resp, err := h.reservationService.Create(c.Request().Context(), identity, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrForbidden):
			return echo.NewHTTPError(http.StatusForbidden, "forbidden")
		case errors.Is(err, storage.ErrUniformNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "uniform not found")
		case errors.Is(err, services.ErrUniformSchoolMismatch), errors.Is(err, services.ErrMissingChest):
			return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
		default:
			c.Logger().Errorf("failed to create reservation: %v", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
		}
	}

	return c.JSON(http.StatusCreated, resp)
}

// List обрабатывает GET /api/reservations.
func (h *ReservationHandler) List(c echo.Context) error {
	identity, err := auth.GetIdentityFromContext(c)
	if err != nil {
		return err
	}

	reservations, err := h.reservationService.List(c.Request().Context(), identity)
	if err != nil {
		if errors.Is(err, services.ErrForbidden) {
			return echo.NewHTTPError(http.StatusForbidden, "forbidden")
		}
		c.Logger().Errorf("failed to list reservations: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	if len(reservations) == 0 {
		return c.NoContent(http.StatusNoContent)
	}

	return c.JSON(http.StatusOK, reservations)
}

// UpdateStatus обрабатывает PATCH /api/reservations/:id/status.
func (h *ReservationHandler) UpdateStatus(c echo.Context) error {
	identity, err := auth.GetIdentityFromContext(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid reservation id")
	}

	var req models.UpdateStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	resp, err := h.reservationService.UpdateStatus(c.Request().Context(), identity, id, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnknownStatus):
			return echo.NewHTTPError(http.StatusUnprocessableEntity, "unknown status")
		case errors.Is(err, services.ErrForbidden):
			return echo.NewHTTPError(http.StatusForbidden, "forbidden")
		case errors.Is(err, storage.ErrReservationNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "reservation not found")
		case errors.Is(err, storage.ErrReservationClosed):
			return echo.NewHTTPError(http.StatusConflict, "reservation is closed")
		case errors.Is(err, storage.ErrVersionConflict):
			return echo.NewHTTPError(http.StatusConflict, "reservation was modified")
		default:
			c.Logger().Errorf("failed to update reservation status: %v", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
		}
	}

	return c.JSON(http.StatusOK, resp)
}
