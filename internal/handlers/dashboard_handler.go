package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/agamariel/uniformes/internal/auth"
	"github.com/agamariel/uniformes/internal/models"
	"github.com/agamariel/uniformes/internal/services"
	"github.com/agamariel/uniformes/internal/utils"
	"github.com/labstack/echo/v4"
)

// DashboardHandler отдаёт аналитику резервов.
type DashboardHandler struct {
	analyticsService services.AnalyticsService
}

func NewDashboardHandler(analyticsService services.AnalyticsService) *DashboardHandler {
	return &DashboardHandler{analyticsService: analyticsService}
}

// Analytics обрабатывает GET /api/dashboard/analytics?days=N.
// Отсутствующий или нечисловой days означает значение по умолчанию.
func (h *DashboardHandler) Analytics(c echo.Context) error {
	identity, err := auth.GetIdentityFromContext(c)
	if err != nil {
		return err
	}

	days, err := strconv.Atoi(c.QueryParam("days"))
	if err != nil {
		days = utils.DefaultRangeDays
	}

	dashboard, err := h.analyticsService.Dashboard(c.Request().Context(), identity, days)
	if err != nil {
		if errors.Is(err, services.ErrForbidden) {
			return echo.NewHTTPError(http.StatusForbidden, "forbidden")
		}
		c.Logger().Errorf("failed to build dashboard: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	return c.JSON(http.StatusOK, dashboard)
}

// UpdateSettings обрабатывает PUT /api/dashboard/settings.
func (h *DashboardHandler) UpdateSettings(c echo.Context) error {
	identity, err := auth.GetIdentityFromContext(c)
	if err != nil {
		return err
	}

	var req models.DashboardSettingsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.analyticsService.SetChartsEnabled(c.Request().Context(), identity, *req.DashboardChartsEnabled); err != nil {
		if errors.Is(err, services.ErrForbidden) {
			return echo.NewHTTPError(http.StatusForbidden, "forbidden")
		}
		c.Logger().Errorf("failed to update dashboard settings: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	return c.JSON(http.StatusOK, models.Dashboard{DashboardChartsEnabled: *req.DashboardChartsEnabled})
}
