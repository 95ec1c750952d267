package services

import (
	"context"
	"fmt"
	"time"

	"github.com/agamariel/uniformes/internal/analytics"
	"github.com/agamariel/uniformes/internal/models"
	"github.com/agamariel/uniformes/internal/storage"
	"github.com/agamariel/uniformes/internal/utils"
	"github.com/sirupsen/logrus"
)

// AnalyticsService определяет интерфейс дашборда.
type AnalyticsService interface {
	Dashboard(ctx context.Context, identity models.Identity, days int) (*models.Dashboard, error)
	SetChartsEnabled(ctx context.Context, identity models.Identity, enabled bool) error
}

// AnalyticsServiceImpl выбирает резервы в окне и передаёт их в analytics.
type AnalyticsServiceImpl struct {
	reservations   storage.ReservationStorage
	catalog        storage.CatalogStorage
	settings       storage.SettingsStorage
	defaultEnabled bool
	logger         logrus.FieldLogger
	now            func() time.Time
}

// NewAnalyticsService создаёт новый сервис аналитики. defaultEnabled
// используется, пока флаг не сохранён в настройках.
func NewAnalyticsService(reservations storage.ReservationStorage, catalog storage.CatalogStorage, settings storage.SettingsStorage, defaultEnabled bool, logger logrus.FieldLogger) *AnalyticsServiceImpl {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &AnalyticsServiceImpl{
		reservations:   reservations,
		catalog:        catalog,
		settings:       settings,
		defaultEnabled: defaultEnabled,
		logger:         logger,
		now:            time.Now,
	}
}

// Dashboard считает CFD, throughput, cycle time и aging WIP за последние
// days дней. Admin видит все резервы, supplier - только свои.
func (s *AnalyticsServiceImpl) Dashboard(ctx context.Context, identity models.Identity, days int) (*models.Dashboard, error) {
	if identity.Role != models.RoleAdmin && identity.Role != models.RoleSupplier {
		return nil, ErrForbidden
	}

	enabled, err := s.settings.GetBool(ctx, storage.SettingDashboardChartsEnabled, s.defaultEnabled)
	if err != nil {
		s.logger.WithError(err).Warn("failed to read dashboard flag, using default")
		enabled = s.defaultEnabled
	}
	if !enabled {
		return analytics.Compute(nil, analytics.Options{Enabled: false}), nil
	}

	now := s.now().UTC()
	days = utils.ClampDays(days)
	opts := analytics.Options{Enabled: true, Days: days, Now: now}

	scope := storage.ReservationFilter{}
	if identity.Role == models.RoleSupplier {
		supplierID, err := supplierOf(ctx, s.catalog, identity.UserID)
		if err != nil {
			return nil, err
		}
		if supplierID == nil {
			// Поставщик без привязки видит пустой дашборд
			return analytics.Compute(nil, opts), nil
		}
		scope.SupplierID = supplierID
	}

	list, err := s.reservations.ListActiveSince(ctx, utils.WindowStart(now, days), scope.SupplierID)
	if err != nil {
		return nil, fmt.Errorf("list reservations for dashboard: %w", err)
	}

	if dropped := analytics.CountUnparseable(list); dropped > 0 {
		s.logger.WithField("events", dropped).Debug("events without valid timestamp ignored")
	}

	return analytics.Compute(list, opts), nil
}

// SetChartsEnabled включает или выключает графики дашборда. Только для admin.
func (s *AnalyticsServiceImpl) SetChartsEnabled(ctx context.Context, identity models.Identity, enabled bool) error {
	if identity.Role != models.RoleAdmin {
		return ErrForbidden
	}
	if err := s.settings.SetBool(ctx, storage.SettingDashboardChartsEnabled, enabled); err != nil {
		return fmt.Errorf("save dashboard flag: %w", err)
	}
	s.logger.WithFields(logrus.Fields{
		"user_id": identity.UserID,
		"enabled": enabled,
	}).Info("dashboard charts flag changed")
	return nil
}

// SeedSettings записывает значение флага из конфигурации, если в базе его ещё нет.
func (s *AnalyticsServiceImpl) SeedSettings(ctx context.Context) error {
	created, err := s.settings.InitBool(ctx, storage.SettingDashboardChartsEnabled, s.defaultEnabled)
	if err != nil {
		return fmt.Errorf("seed dashboard flag: %w", err)
	}
	if created {
		s.logger.WithField("enabled", s.defaultEnabled).Info("dashboard charts flag seeded")
	}
	return nil
}
