package config

import (
	"flag"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultRunAddress      = "localhost:8080"
	defaultJWTSecret       = "default-secret-change-in-production"
	defaultTokenExpiration = 24 * time.Hour
	defaultLogLevel        = "info"
)

// Config содержит конфигурацию приложения.
type Config struct {
	RunAddress      string
	DatabaseURI     string
	JWTSecret       string
	TokenExpiration time.Duration
	LogLevel        string

	// DashboardChartsEnabled - значение флага аналитики, если в app_settings
	// ничего не сохранено.
	DashboardChartsEnabled bool
	// BackfillEvents включает восстановление журналов при старте.
	BackfillEvents bool
}

// Load загружает конфигурацию из флагов командной строки и переменных окружения.
// Приоритет: переменные окружения > флаги > значения по умолчанию.
// Файл .env в рабочей директории читается, если он есть, и не перекрывает
// уже заданные переменные.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{}

	flag.StringVar(&cfg.RunAddress, "a", defaultRunAddress, "адрес и порт запуска сервиса")
	flag.StringVar(&cfg.DatabaseURI, "d", "", "строка подключения к PostgreSQL")
	flag.DurationVar(&cfg.TokenExpiration, "t", defaultTokenExpiration, "время жизни JWT токена")
	flag.StringVar(&cfg.LogLevel, "l", defaultLogLevel, "уровень логирования")
	flag.Parse()

	if envRunAddr := os.Getenv("RUN_ADDRESS"); envRunAddr != "" {
		cfg.RunAddress = envRunAddr
	}
	if envDBURI := os.Getenv("DATABASE_URI"); envDBURI != "" {
		cfg.DatabaseURI = envDBURI
	}
	if envLevel := os.Getenv("LOG_LEVEL"); envLevel != "" {
		cfg.LogLevel = envLevel
	}

	// Невалидное значение из окружения игнорируется
	if envExp := os.Getenv("TOKEN_EXPIRATION"); envExp != "" {
		if d, err := time.ParseDuration(envExp); err == nil && d > 0 {
			cfg.TokenExpiration = d
		}
	}

	// JWT секрет
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = defaultJWTSecret
	}

	cfg.DashboardChartsEnabled = envBool("DASHBOARD_CHARTS_ENABLED", true)
	cfg.BackfillEvents = envBool("BACKFILL_EVENTS", true)

	return cfg
}

func envBool(key string, fallback bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return v
}
