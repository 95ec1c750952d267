package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Ключи настроек приложения.
const (
	SettingDashboardChartsEnabled = "dashboard_charts_enabled"
)

// SettingsStorage определяет интерфейс для работы с настройками.
type SettingsStorage interface {
	GetBool(ctx context.Context, key string, fallback bool) (bool, error)
	SetBool(ctx context.Context, key string, value bool) error
	InitBool(ctx context.Context, key string, value bool) (bool, error)
}

// PostgresSettingsStorage хранит настройки приложения в таблице app_settings.
type PostgresSettingsStorage struct {
	pool *pgxpool.Pool
}

// NewPostgresSettingsStorage создаёт новый экземпляр PostgresSettingsStorage.
func NewPostgresSettingsStorage(pool *pgxpool.Pool) *PostgresSettingsStorage {
	return &PostgresSettingsStorage{pool: pool}
}

// GetBool читает логическую настройку. Если настройка не сохранена,
// возвращается fallback.
func (s *PostgresSettingsStorage) GetBool(ctx context.Context, key string, fallback bool) (bool, error) {
	query := `SELECT value FROM app_settings WHERE key = $1`

	var raw []byte
	err := s.pool.QueryRow(ctx, query, key).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fallback, nil
		}
		return fallback, fmt.Errorf("failed to get setting %s: %w", key, err)
	}

	var value bool
	if err := json.Unmarshal(raw, &value); err != nil {
		return fallback, fmt.Errorf("setting %s is not a boolean: %w", key, err)
	}
	return value, nil
}

// SetBool сохраняет логическую настройку.
func (s *PostgresSettingsStorage) SetBool(ctx context.Context, key string, value bool) error {
	query := `
		INSERT INTO app_settings (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`

	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}

	if _, err := s.pool.Exec(ctx, query, key, string(payload)); err != nil {
		return fmt.Errorf("failed to set setting %s: %w", key, err)
	}
	return nil
}

// InitBool сохраняет настройку, только если её ещё нет.
// Возвращает true, если значение было записано.
func (s *PostgresSettingsStorage) InitBool(ctx context.Context, key string, value bool) (bool, error) {
	query := `
		INSERT INTO app_settings (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO NOTHING
	`

	payload, err := json.Marshal(value)
	if err != nil {
		return false, err
	}

	tag, err := s.pool.Exec(ctx, query, key, string(payload))
	if err != nil {
		return false, fmt.Errorf("failed to init setting %s: %w", key, err)
	}
	return tag.RowsAffected() == 1, nil
}
