package services

import (
	"math"

	"github.com/agamariel/uniformes/internal/models"
	"github.com/agamariel/uniformes/internal/sizing"
)

const (
	messageSizeFound  = "recommended size found"
	messageSizeManual = "measurements do not fit the size chart, request a manual fitting"
)

// SizeService определяет интерфейс подбора размера.
type SizeService interface {
	Recommend(req models.RecommendSizeRequest) *models.RecommendSizeResponse
}

// SizeServiceImpl реализует SizeService поверх таблиц размеров.
type SizeServiceImpl struct{}

// NewSizeService создаёт новый сервис подбора размера.
func NewSizeService() *SizeServiceImpl {
	return &SizeServiceImpl{}
}

// Recommend подбирает размер. Пустая таблица означает верхнюю одежду.
func (s *SizeServiceImpl) Recommend(req models.RecommendSizeRequest) *models.RecommendSizeResponse {
	chart := sizing.ChartFor(req.Chart)
	result := chart.Recommend(req.Measurements)

	resp := &models.RecommendSizeResponse{
		Size:       result.Size,
		Score:      result.Score,
		Confidence: math.Round(chart.Confidence(result)*100) / 100,
		Message:    messageSizeFound,
	}
	if result.IsManual() {
		resp.Message = messageSizeManual
	}
	return resp
}
