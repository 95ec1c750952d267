package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/agamariel/uniformes/internal/models"
	"github.com/agamariel/uniformes/internal/sizing"
	"github.com/agamariel/uniformes/internal/storage"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrForbidden             = errors.New("operation not allowed for this user")
	ErrUnknownStatus         = errors.New("unknown reservation status")
	ErrUniformSchoolMismatch = errors.New("uniform does not belong to the school")
	ErrMissingChest          = errors.New("chest measurement is required for this uniform")
)

// ReservationService определяет интерфейс работы с резервами.
type ReservationService interface {
	Create(ctx context.Context, identity models.Identity, req models.CreateReservationRequest) (*models.ReservationResponse, error)
	List(ctx context.Context, identity models.Identity) ([]*models.ReservationResponse, error)
	UpdateStatus(ctx context.Context, identity models.Identity, id uuid.UUID, req models.UpdateStatusRequest) (*models.ReservationResponse, error)
}

// ReservationServiceImpl реализует ReservationService.
type ReservationServiceImpl struct {
	reservations storage.ReservationStorage
	catalog      storage.CatalogStorage
	logger       logrus.FieldLogger
	now          func() time.Time
}

// NewReservationService создаёт новый сервис резервов.
func NewReservationService(reservations storage.ReservationStorage, catalog storage.CatalogStorage, logger logrus.FieldLogger) *ReservationServiceImpl {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &ReservationServiceImpl{
		reservations: reservations,
		catalog:      catalog,
		logger:       logger,
		now:          time.Now,
	}
}

// Create оформляет резерв формы. Если переданы обмеры, размер подбирается
// по таблице формы и подгоняется под доступные размеры.
func (s *ReservationServiceImpl) Create(ctx context.Context, identity models.Identity, req models.CreateReservationRequest) (*models.ReservationResponse, error) {
	if identity.Role != models.RoleResponsavel && identity.Role != models.RoleAdmin {
		return nil, ErrForbidden
	}

	uniform, err := s.catalog.GetUniformByID(ctx, req.UniformID)
	if err != nil {
		if errors.Is(err, storage.ErrUniformNotFound) {
			return nil, storage.ErrUniformNotFound
		}
		return nil, fmt.Errorf("get uniform: %w", err)
	}
	if uniform.SchoolID != req.SchoolID {
		return nil, ErrUniformSchoolMismatch
	}
	if req.Measurements != nil && uniform.Chart.RequiresChest() && req.Measurements.Chest <= 0 {
		return nil, ErrMissingChest
	}

	now := s.now().UTC()
	r := &models.Reservation{
		ID:           uuid.New(),
		UserID:       identity.UserID,
		ChildName:    strings.TrimSpace(req.ChildName),
		SchoolID:     req.SchoolID,
		UniformID:    uniform.ID,
		SupplierID:   uniform.SupplierID,
		Measurements: req.Measurements,
		Status:       models.StatusAguardando,
		Value:        uniform.Price,
		CreatedAt:    now,
		Events: []models.ReservationEvent{
			models.NewEvent(models.EventCreated, now, models.StatusAguardando, identity.Role),
		},
	}
	if req.Measurements != nil {
		result := sizing.Recommend(uniform.Chart, *req.Measurements)
		r.SuggestedSize = sizing.ClosestAvailable(result.Size, uniform.AvailableSizes)
	}

	if err := s.reservations.Create(ctx, r); err != nil {
		return nil, fmt.Errorf("create reservation: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"reservation_id": r.ID,
		"suggested_size": r.SuggestedSize,
	}).Info("reservation created")

	return toReservationResponse(r), nil
}

// List возвращает резервы, видимые пользователю: свои для responsavel,
// резервы своего поставщика для supplier, все для admin.
func (s *ReservationServiceImpl) List(ctx context.Context, identity models.Identity) ([]*models.ReservationResponse, error) {
	var filter storage.ReservationFilter

	switch identity.Role {
	case models.RoleAdmin:
	case models.RoleSupplier:
		supplierID, err := supplierOf(ctx, s.catalog, identity.UserID)
		if err != nil {
			return nil, err
		}
		if supplierID == nil {
			return []*models.ReservationResponse{}, nil
		}
		filter.SupplierID = supplierID
	case models.RoleResponsavel:
		userID := identity.UserID
		filter.UserID = &userID
	default:
		return nil, ErrForbidden
	}

	list, err := s.reservations.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}

	resp := make([]*models.ReservationResponse, 0, len(list))
	for _, r := range list {
		resp = append(resp, toReservationResponse(r))
	}
	return resp, nil
}

// UpdateStatus переводит резерв в новый статус и дописывает событие
// в журнал. Версия проверяется, только если она передана.
func (s *ReservationServiceImpl) UpdateStatus(ctx context.Context, identity models.Identity, id uuid.UUID, req models.UpdateStatusRequest) (*models.ReservationResponse, error) {
	target := req.Status
	if !models.IsKnownStatus(target) {
		return nil, ErrUnknownStatus
	}

	r, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrReservationNotFound) {
			return nil, storage.ErrReservationNotFound
		}
		return nil, fmt.Errorf("get reservation: %w", err)
	}

	if err := s.authorize(ctx, identity, r, target); err != nil {
		return nil, err
	}

	if models.IsTerminal(models.NormalizeStatus(r.Status)) {
		return nil, storage.ErrReservationClosed
	}
	if req.Version != nil && *req.Version != r.Version {
		return nil, storage.ErrVersionConflict
	}

	event := models.NewEvent(models.EventStatusChanged, s.now(), target, identity.Role)
	updated, err := s.reservations.AppendEvent(ctx, id, event, req.Version)
	if err != nil {
		if errors.Is(err, storage.ErrReservationClosed) ||
			errors.Is(err, storage.ErrVersionConflict) ||
			errors.Is(err, storage.ErrReservationNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("append reservation event: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"reservation_id": id,
		"from":           r.Status,
		"to":             target,
		"role":           identity.Role,
	}).Info("reservation status changed")

	return toReservationResponse(updated), nil
}

func (s *ReservationServiceImpl) authorize(ctx context.Context, identity models.Identity, r *models.Reservation, target models.ReservationStatus) error {
	switch identity.Role {
	case models.RoleAdmin:
		return nil
	case models.RoleSupplier:
		supplierID, err := supplierOf(ctx, s.catalog, identity.UserID)
		if err != nil {
			return err
		}
		if supplierID == nil || r.SupplierID == nil || *supplierID != *r.SupplierID {
			return ErrForbidden
		}
		return nil
	case models.RoleResponsavel:
		// Родитель может только отменить свой резерв
		if r.UserID != identity.UserID || target != models.StatusCancelada {
			return ErrForbidden
		}
		return nil
	}
	return ErrForbidden
}

// supplierOf возвращает поставщика пользователя или nil, если он не привязан.
func supplierOf(ctx context.Context, catalog storage.CatalogStorage, userID uuid.UUID) (*uuid.UUID, error) {
	supplier, err := catalog.GetSupplierByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrSupplierNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return &supplier.ID, nil
}

func toReservationResponse(r *models.Reservation) *models.ReservationResponse {
	value, _ := r.Value.Float64()
	resp := &models.ReservationResponse{
		ID:            r.ID.String(),
		ChildName:     r.ChildName,
		SchoolID:      r.SchoolID.String(),
		UniformID:     r.UniformID.String(),
		Measurements:  r.Measurements,
		SuggestedSize: r.SuggestedSize,
		Status:        string(models.NormalizeStatus(r.Status)),
		Value:         value,
		Version:       r.Version,
		CreatedAt:     r.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     r.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if r.SupplierID != nil {
		resp.SupplierID = r.SupplierID.String()
	}
	return resp
}
