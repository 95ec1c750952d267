package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SizeChartKind - таблица размеров, по которой подбирается форма.
type SizeChartKind string

const (
	ChartGarment SizeChartKind = "garment"
	ChartPants   SizeChartKind = "pants"
)

// RequiresChest сообщает, нужен ли обхват груди для подбора.
// Пустая таблица считается garment.
func (k SizeChartKind) RequiresChest() bool {
	return k != ChartPants
}

// Supplier - поставщик, привязанный к учётной записи.
type Supplier struct {
	ID        uuid.UUID `db:"id"`
	UserID    uuid.UUID `db:"user_id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}

// Uniform - предмет формы, предлагаемый школой.
type Uniform struct {
	ID             uuid.UUID       `db:"id"`
	SchoolID       uuid.UUID       `db:"school_id"`
	SupplierID     *uuid.UUID      `db:"supplier_id"`
	Name           string          `db:"name"`
	Chart          SizeChartKind   `db:"chart"`
	Price          decimal.Decimal `db:"price"`
	AvailableSizes []string        `db:"available_sizes"`
}

// RecommendSizeRequest - обмеры для подбора размера.
type RecommendSizeRequest struct {
	Measurements
	Chart SizeChartKind `json:"chart" validate:"omitempty,chart"`
}

// RecommendSizeResponse - результат подбора размера.
type RecommendSizeResponse struct {
	Size       string  `json:"size"`
	Score      float64 `json:"score"`
	Confidence float64 `json:"confidence"`
	Message    string  `json:"message"`
}
