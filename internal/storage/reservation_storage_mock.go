package storage

import (
	"context"
	"time"

	"github.com/agamariel/uniformes/internal/models"
	"github.com/google/uuid"
)

// MockReservationStorage - мок для тестирования
type MockReservationStorage struct {
	CreateFunc            func(ctx context.Context, r *models.Reservation) error
	GetByIDFunc           func(ctx context.Context, id uuid.UUID) (*models.Reservation, error)
	ListFunc              func(ctx context.Context, filter ReservationFilter) ([]*models.Reservation, error)
	ListActiveSinceFunc   func(ctx context.Context, since time.Time, supplierID *uuid.UUID) ([]*models.Reservation, error)
	AppendEventFunc       func(ctx context.Context, id uuid.UUID, event models.ReservationEvent, expectedVersion *int) (*models.Reservation, error)
	ListWithoutEventsFunc func(ctx context.Context, limit int) ([]*models.Reservation, error)
	FillEmptyEventsFunc   func(ctx context.Context, id uuid.UUID, events []models.ReservationEvent) (bool, error)
}

func (m *MockReservationStorage) Create(ctx context.Context, r *models.Reservation) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, r)
	}
	return nil
}

func (m *MockReservationStorage) GetByID(ctx context.Context, id uuid.UUID) (*models.Reservation, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, ErrReservationNotFound
}

func (m *MockReservationStorage) List(ctx context.Context, filter ReservationFilter) ([]*models.Reservation, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, nil
}

func (m *MockReservationStorage) ListActiveSince(ctx context.Context, since time.Time, supplierID *uuid.UUID) ([]*models.Reservation, error) {
	if m.ListActiveSinceFunc != nil {
		return m.ListActiveSinceFunc(ctx, since, supplierID)
	}
	return nil, nil
}

func (m *MockReservationStorage) AppendEvent(ctx context.Context, id uuid.UUID, event models.ReservationEvent, expectedVersion *int) (*models.Reservation, error) {
	if m.AppendEventFunc != nil {
		return m.AppendEventFunc(ctx, id, event, expectedVersion)
	}
	return nil, ErrReservationNotFound
}

func (m *MockReservationStorage) ListWithoutEvents(ctx context.Context, limit int) ([]*models.Reservation, error) {
	if m.ListWithoutEventsFunc != nil {
		return m.ListWithoutEventsFunc(ctx, limit)
	}
	return nil, nil
}

func (m *MockReservationStorage) FillEmptyEvents(ctx context.Context, id uuid.UUID, events []models.ReservationEvent) (bool, error) {
	if m.FillEmptyEventsFunc != nil {
		return m.FillEmptyEventsFunc(ctx, id, events)
	}
	return false, nil
}
