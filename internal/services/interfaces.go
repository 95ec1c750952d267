package services

import (
	"context"

	"github.com/agamariel/uniformes/internal/models"
	"github.com/google/uuid"
)

// EventBackfillStorage - часть хранилища резервов, нужная воркеру
// восстановления журналов.
type EventBackfillStorage interface {
	ListWithoutEvents(ctx context.Context, limit int) ([]*models.Reservation, error)
	FillEmptyEvents(ctx context.Context, id uuid.UUID, events []models.ReservationEvent) (bool, error)
}
