package handlers

import (
	"net/http"

	"github.com/agamariel/uniformes/internal/models"
	"github.com/agamariel/uniformes/internal/services"
	"github.com/labstack/echo/v4"
)

// SizeHandler обрабатывает подбор размера.
type SizeHandler struct {
	sizeService services.SizeService
}

func NewSizeHandler(sizeService services.SizeService) *SizeHandler {
	return &SizeHandler{sizeService: sizeService}
}

// Recommend обрабатывает POST /api/sizes/recommend.
func (h *SizeHandler) Recommend(c echo.Context) error {
	var req models.RecommendSizeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, h.sizeService.Recommend(req))
}
