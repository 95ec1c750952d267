package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/agamariel/uniformes/internal/auth"
	"github.com/agamariel/uniformes/internal/config"
	"github.com/agamariel/uniformes/internal/handlers"
	"github.com/agamariel/uniformes/internal/migrations"
	"github.com/agamariel/uniformes/internal/models"
	"github.com/agamariel/uniformes/internal/services"
	"github.com/agamariel/uniformes/internal/storage"
	"github.com/agamariel/uniformes/internal/validation"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

// App структура для управления приложением и его зависимостями.
type App struct {
	cfg    *config.Config
	logger *logrus.Logger
	dbPool *pgxpool.Pool
	echo   *echo.Echo
	worker *services.EventBackfillWorker

	// Handlers
	userHandler        *handlers.UserHandler
	sizeHandler        *handlers.SizeHandler
	reservationHandler *handlers.ReservationHandler
	dashboardHandler   *handlers.DashboardHandler
}

// NewApp создаёт и инициализирует новое приложение.
func NewApp(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*App, error) {
	app := &App{
		cfg:    cfg,
		logger: logger,
	}

	if err := app.initDatabase(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := app.initDependencies(ctx); err != nil {
		app.dbPool.Close()
		return nil, fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	app.initServer()

	return app, nil
}

// initDatabase инициализирует подключение к базе данных и выполняет миграции.
func (app *App) initDatabase(ctx context.Context) error {
	if app.cfg.DatabaseURI == "" {
		return fmt.Errorf("DATABASE_URI is required")
	}

	// Применение миграций
	app.logger.Info("running database migrations")
	sqlDB, err := sql.Open("pgx", app.cfg.DatabaseURI)
	if err != nil {
		return fmt.Errorf("unable to open database connection: %w", err)
	}
	defer sqlDB.Close()

	if err := migrations.Run(sqlDB, app.logger); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	if version, err := migrations.Version(sqlDB); err == nil {
		app.logger.WithField("version", version).Info("migrations completed")
	}

	// Подключение к базе данных через pgxpool
	dbPool, err := pgxpool.New(ctx, app.cfg.DatabaseURI)
	if err != nil {
		return fmt.Errorf("unable to connect to database: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		dbPool.Close()
		return fmt.Errorf("unable to ping database: %w", err)
	}

	app.dbPool = dbPool
	app.logger.Info("connected to database")

	return nil
}

// initDependencies инициализирует storage, services и handlers.
func (app *App) initDependencies(ctx context.Context) error {
	// Storage layer
	userStorage := storage.NewPostgresUserStorage(app.dbPool)
	reservationStorage := storage.NewPostgresReservationStorage(app.dbPool)
	catalogStorage := storage.NewPostgresCatalogStorage(app.dbPool)
	settingsStorage := storage.NewPostgresSettingsStorage(app.dbPool)

	// Service layer
	userService := services.NewUserService(userStorage, app.cfg.JWTSecret, app.cfg.TokenExpiration)
	sizeService := services.NewSizeService()
	reservationService := services.NewReservationService(reservationStorage, catalogStorage, app.logger.WithField("module", "reservations"))
	analyticsService := services.NewAnalyticsService(reservationStorage, catalogStorage, settingsStorage, app.cfg.DashboardChartsEnabled, app.logger.WithField("module", "analytics"))
	if err := analyticsService.SeedSettings(ctx); err != nil {
		return err
	}

	// Handler layer
	app.userHandler = handlers.NewUserHandler(userService)
	app.sizeHandler = handlers.NewSizeHandler(sizeService)
	app.reservationHandler = handlers.NewReservationHandler(reservationService)
	app.dashboardHandler = handlers.NewDashboardHandler(analyticsService)

	// Восстановление журналов старых резервов
	if app.cfg.BackfillEvents {
		app.worker = services.NewEventBackfillWorker(reservationStorage, 0, app.logger.WithField("module", "backfill"))
	} else {
		app.logger.Info("event backfill disabled")
	}

	return nil
}

// initServer инициализирует HTTP-сервер и настраивает маршруты.
func (app *App) initServer() {
	e := echo.New()
	e.HideBanner = true
	e.Validator = validation.New()

	// Middleware
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			entry := app.logger.WithFields(logrus.Fields{
				"method": v.Method,
				"uri":    v.URI,
				"status": v.Status,
			})
			if login, err := auth.GetUserLoginFromContext(c); err == nil {
				entry = entry.WithField("login", login)
			}
			if v.Error != nil {
				entry = entry.WithError(v.Error)
			}
			entry.Info("request")
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.Gzip())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.PATCH, echo.DELETE},
	}))

	// Публичные маршруты (не требуют аутентификации)
	e.POST("/api/user/register", app.userHandler.Register)
	e.POST("/api/user/login", app.userHandler.Login)

	// Защищённые маршруты (требуют аутентификации)
	api := e.Group("/api")
	api.Use(auth.JWTMiddleware(app.cfg.JWTSecret))

	api.POST("/sizes/recommend", app.sizeHandler.Recommend)

	api.GET("/reservations", app.reservationHandler.List)
	api.POST("/reservations", app.reservationHandler.Create, auth.RequireRoles(models.RoleResponsavel, models.RoleAdmin))
	api.PATCH("/reservations/:id/status", app.reservationHandler.UpdateStatus)

	api.GET("/dashboard/analytics", app.dashboardHandler.Analytics, auth.RequireRoles(models.RoleAdmin, models.RoleSupplier))
	api.PUT("/dashboard/settings", app.dashboardHandler.UpdateSettings, auth.RequireRoles(models.RoleAdmin))

	app.echo = e
}

// Start запускает приложение.
func (app *App) Start(ctx context.Context) error {
	if app.worker != nil {
		app.logger.Info("starting event backfill")
		app.worker.Start(ctx)
	}

	// Запуск сервера
	app.logger.WithField("address", app.cfg.RunAddress).Info("starting server")
	if err := app.echo.Start(app.cfg.RunAddress); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server stopped: %w", err)
	}

	return nil
}

// Shutdown корректно завершает работу приложения.
func (app *App) Shutdown(ctx context.Context) error {
	app.logger.Info("shutting down server")

	if err := app.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	if app.dbPool != nil {
		app.dbPool.Close()
	}

	app.logger.Info("server gracefully stopped")
	return nil
}
