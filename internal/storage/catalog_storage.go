package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/agamariel/uniformes/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrSupplierNotFound = errors.New("supplier not found")
	ErrUniformNotFound  = errors.New("uniform not found")
)

// CatalogStorage определяет интерфейс для чтения справочников.
type CatalogStorage interface {
	GetSupplierByUserID(ctx context.Context, userID uuid.UUID) (*models.Supplier, error)
	GetUniformByID(ctx context.Context, id uuid.UUID) (*models.Uniform, error)
}

// PostgresCatalogStorage читает справочники поставщиков и форм.
type PostgresCatalogStorage struct {
	pool *pgxpool.Pool
}

// NewPostgresCatalogStorage создаёт новый экземпляр PostgresCatalogStorage.
func NewPostgresCatalogStorage(pool *pgxpool.Pool) *PostgresCatalogStorage {
	return &PostgresCatalogStorage{pool: pool}
}

// GetSupplierByUserID возвращает поставщика, привязанного к учётной записи.
func (s *PostgresCatalogStorage) GetSupplierByUserID(ctx context.Context, userID uuid.UUID) (*models.Supplier, error) {
	query := `
		SELECT id, user_id, name, created_at
		FROM suppliers
		WHERE user_id = $1
	`

	supplier := &models.Supplier{}
	err := s.pool.QueryRow(ctx, query, userID).Scan(
		&supplier.ID,
		&supplier.UserID,
		&supplier.Name,
		&supplier.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSupplierNotFound
		}
		return nil, fmt.Errorf("failed to get supplier: %w", err)
	}

	return supplier, nil
}

// GetUniformByID возвращает предмет формы.
func (s *PostgresCatalogStorage) GetUniformByID(ctx context.Context, id uuid.UUID) (*models.Uniform, error) {
	query := `
		SELECT id, school_id, supplier_id, name, chart, price, available_sizes
		FROM uniforms
		WHERE id = $1
	`

	uniform := &models.Uniform{}
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&uniform.ID,
		&uniform.SchoolID,
		&uniform.SupplierID,
		&uniform.Name,
		&uniform.Chart,
		&uniform.Price,
		&uniform.AvailableSizes,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUniformNotFound
		}
		return nil, fmt.Errorf("failed to get uniform: %w", err)
	}

	return uniform, nil
}
