package storage

import (
	"context"

	"github.com/agamariel/uniformes/internal/models"
	"github.com/google/uuid"
)

// MockCatalogStorage - мок справочников
type MockCatalogStorage struct {
	GetSupplierByUserIDFunc func(ctx context.Context, userID uuid.UUID) (*models.Supplier, error)
	GetUniformByIDFunc      func(ctx context.Context, id uuid.UUID) (*models.Uniform, error)
}

func (m *MockCatalogStorage) GetSupplierByUserID(ctx context.Context, userID uuid.UUID) (*models.Supplier, error) {
	if m.GetSupplierByUserIDFunc != nil {
		return m.GetSupplierByUserIDFunc(ctx, userID)
	}
	return nil, ErrSupplierNotFound
}

func (m *MockCatalogStorage) GetUniformByID(ctx context.Context, id uuid.UUID) (*models.Uniform, error) {
	if m.GetUniformByIDFunc != nil {
		return m.GetUniformByIDFunc(ctx, id)
	}
	return nil, ErrUniformNotFound
}

// MockSettingsStorage - мок настроек
type MockSettingsStorage struct {
	GetBoolFunc  func(ctx context.Context, key string, fallback bool) (bool, error)
	SetBoolFunc  func(ctx context.Context, key string, value bool) error
	InitBoolFunc func(ctx context.Context, key string, value bool) (bool, error)
}

func (m *MockSettingsStorage) GetBool(ctx context.Context, key string, fallback bool) (bool, error) {
	if m.GetBoolFunc != nil {
		return m.GetBoolFunc(ctx, key, fallback)
	}
	return fallback, nil
}

func (m *MockSettingsStorage) SetBool(ctx context.Context, key string, value bool) error {
	if m.SetBoolFunc != nil {
		return m.SetBoolFunc(ctx, key, value)
	}
	return nil
}

func (m *MockSettingsStorage) InitBool(ctx context.Context, key string, value bool) (bool, error) {
	if m.InitBoolFunc != nil {
		return m.InitBoolFunc(ctx, key, value)
	}
	return true, nil
}
