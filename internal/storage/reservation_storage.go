package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/agamariel/uniformes/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrReservationNotFound = errors.New("reservation not found")
	ErrReservationClosed   = errors.New("reservation is in a terminal status")
	ErrVersionConflict     = errors.New("reservation version conflict")
)

// ReservationFilter ограничивает выборку резервов. Пустые поля не фильтруют.
type ReservationFilter struct {
	UserID     *uuid.UUID
	SupplierID *uuid.UUID
}

// ReservationStorage определяет интерфейс для работы с резервами.
type ReservationStorage interface {
	Create(ctx context.Context, r *models.Reservation) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Reservation, error)
	List(ctx context.Context, filter ReservationFilter) ([]*models.Reservation, error)
	ListActiveSince(ctx context.Context, since time.Time, supplierID *uuid.UUID) ([]*models.Reservation, error)
	AppendEvent(ctx context.Context, id uuid.UUID, event models.ReservationEvent, expectedVersion *int) (*models.Reservation, error)
	ListWithoutEvents(ctx context.Context, limit int) ([]*models.Reservation, error)
	FillEmptyEvents(ctx context.Context, id uuid.UUID, events []models.ReservationEvent) (bool, error)
}

// PostgresReservationStorage реализует ReservationStorage для PostgreSQL.
type PostgresReservationStorage struct {
	pool *pgxpool.Pool
}

// NewPostgresReservationStorage создаёт новый экземпляр PostgresReservationStorage.
func NewPostgresReservationStorage(pool *pgxpool.Pool) *PostgresReservationStorage {
	return &PostgresReservationStorage{pool: pool}
}

const reservationColumns = `
	id, user_id, child_name, school_id, uniform_id, supplier_id, measurements,
	suggested_size, status, value, version, events, created_at, updated_at`

// Create сохраняет новый резерв вместе с начальным журналом событий.
func (s *PostgresReservationStorage) Create(ctx context.Context, r *models.Reservation) error {
	query := `
		INSERT INTO reservations (
			id, user_id, child_name, school_id, uniform_id, supplier_id, measurements,
			suggested_size, status, value, version, events, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $13)
	`

	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	r.UpdatedAt = r.CreatedAt

	measurements, err := encodeMeasurements(r.Measurements)
	if err != nil {
		return err
	}
	events, err := encodeEvents(r.Events)
	if err != nil {
		return err
	}

	_, err = s.pool.Exec(ctx, query,
		r.ID,
		r.UserID,
		r.ChildName,
		r.SchoolID,
		r.UniformID,
		r.SupplierID,
		measurements,
		r.SuggestedSize,
		r.Status,
		r.Value,
		r.Version,
		events,
		r.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create reservation: %w", err)
	}

	return nil
}

// GetByID возвращает резерв по идентификатору.
func (s *PostgresReservationStorage) GetByID(ctx context.Context, id uuid.UUID) (*models.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`
	return scanReservation(s.pool.QueryRow(ctx, query, id))
}

// List возвращает резервы по фильтру, новые первыми.
func (s *PostgresReservationStorage) List(ctx context.Context, filter ReservationFilter) ([]*models.Reservation, error) {
	query := `SELECT ` + reservationColumns + `
		FROM reservations
		WHERE ($1::uuid IS NULL OR user_id = $1)
		  AND ($2::uuid IS NULL OR supplier_id = $2)
		ORDER BY created_at DESC
	`

	rows, err := s.pool.Query(ctx, query, filter.UserID, filter.SupplierID)
	if err != nil {
		return nil, fmt.Errorf("failed to query reservations: %w", err)
	}
	return collectReservations(rows)
}

// ListActiveSince возвращает резервы, у которых была любая активность
// начиная с since: создание, обновление или событие журнала.
func (s *PostgresReservationStorage) ListActiveSince(ctx context.Context, since time.Time, supplierID *uuid.UUID) ([]*models.Reservation, error) {
	// reservation_event_time разбирает время события так же, как DecodeEvents.
	query := `SELECT ` + reservationColumns + `
		FROM reservations r
		WHERE (
			r.created_at >= $1
			OR r.updated_at >= $1
			OR CASE WHEN jsonb_typeof(r.events) = 'array' THEN EXISTS (
				SELECT 1 FROM jsonb_array_elements(r.events) e WHERE reservation_event_time(e) >= $1
			) ELSE FALSE END
		)
		AND ($2::uuid IS NULL OR r.supplier_id = $2)
		ORDER BY r.created_at ASC
	`

	rows, err := s.pool.Query(ctx, query, since.UTC(), supplierID)
	if err != nil {
		return nil, fmt.Errorf("failed to query active reservations: %w", err)
	}
	return collectReservations(rows)
}

// AppendEvent одним UPDATE меняет статус, дописывает событие в журнал и
// увеличивает версию. Если expectedVersion задана и не совпадает с текущей,
// возвращается ErrVersionConflict. Резервы в терминальном статусе не меняются.
func (s *PostgresReservationStorage) AppendEvent(ctx context.Context, id uuid.UUID, event models.ReservationEvent, expectedVersion *int) (*models.Reservation, error) {
	query := `
		UPDATE reservations
		SET status = $2,
			events = CASE WHEN jsonb_typeof(events) = 'array' THEN events ELSE '[]'::jsonb END || $3::jsonb,
			version = version + 1,
			updated_at = $4
		WHERE id = $1
		  AND ($5::int IS NULL OR version = $5)
		  AND status NOT IN ('entregue', 'cancelada', 'enviado')
		RETURNING ` + reservationColumns

	payload, err := encodeEvents([]models.ReservationEvent{event})
	if err != nil {
		return nil, err
	}

	r, err := scanReservation(s.pool.QueryRow(ctx, query, id, event.Status, payload, event.At, expectedVersion))
	if err == nil {
		return r, nil
	}
	if !errors.Is(err, ErrReservationNotFound) {
		return nil, fmt.Errorf("failed to append reservation event: %w", err)
	}

	// Ни одна строка не обновлена: выясняем причину.
	current, gErr := s.GetByID(ctx, id)
	if gErr != nil {
		return nil, gErr
	}
	if models.IsTerminal(models.NormalizeStatus(current.Status)) {
		return nil, ErrReservationClosed
	}
	return nil, ErrVersionConflict
}

// ListWithoutEvents возвращает до limit резервов с пустым журналом.
func (s *PostgresReservationStorage) ListWithoutEvents(ctx context.Context, limit int) ([]*models.Reservation, error) {
	query := `SELECT ` + reservationColumns + `
		FROM reservations
		WHERE events = '[]'::jsonb
		ORDER BY created_at ASC
		LIMIT $1
	`

	rows, err := s.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query reservations without events: %w", err)
	}
	return collectReservations(rows)
}

// FillEmptyEvents записывает журнал, только если он всё ещё пуст.
// Возвращает false, если журнал уже был заполнен.
func (s *PostgresReservationStorage) FillEmptyEvents(ctx context.Context, id uuid.UUID, events []models.ReservationEvent) (bool, error) {
	query := `
		UPDATE reservations
		SET events = $2
		WHERE id = $1 AND events = '[]'::jsonb
	`

	payload, err := encodeEvents(events)
	if err != nil {
		return false, err
	}

	result, err := s.pool.Exec(ctx, query, id, payload)
	if err != nil {
		return false, fmt.Errorf("failed to fill reservation events: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

func collectReservations(rows pgx.Rows) ([]*models.Reservation, error) {
	defer rows.Close()

	var reservations []*models.Reservation
	for rows.Next() {
		r, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, r)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}

	return reservations, nil
}

// scanReservation читает резерв из строки результата. Повреждённый журнал
// не считается ошибкой: резерв возвращается без событий.
func scanReservation(row pgx.Row) (*models.Reservation, error) {
	var (
		r            models.Reservation
		measurements []byte
		events       []byte
	)

	err := row.Scan(
		&r.ID,
		&r.UserID,
		&r.ChildName,
		&r.SchoolID,
		&r.UniformID,
		&r.SupplierID,
		&measurements,
		&r.SuggestedSize,
		&r.Status,
		&r.Value,
		&r.Version,
		&events,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrReservationNotFound
		}
		return nil, fmt.Errorf("failed to scan reservation: %w", err)
	}

	if len(measurements) > 0 {
		var m models.Measurements
		if json.Unmarshal(measurements, &m) == nil {
			r.Measurements = &m
		}
	}
	if decoded, derr := models.DecodeEvents(events); derr == nil {
		r.Events = decoded
	}

	return &r, nil
}

func encodeMeasurements(m *models.Measurements) (any, error) {
	if m == nil {
		return nil, nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encode measurements: %w", err)
	}
	return string(data), nil
}

func encodeEvents(events []models.ReservationEvent) (string, error) {
	if events == nil {
		events = []models.ReservationEvent{}
	}
	data, err := json.Marshal(events)
	if err != nil {
		return "", fmt.Errorf("encode events: %w", err)
	}
	return string(data), nil
}
