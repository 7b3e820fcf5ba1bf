package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/lumiere-salon/salon-backend-go/internal/pkg/validator"
)

const (
	DataSourceMemory   = "memory"
	DataSourcePostgres = "postgres"
)

type Config struct {
	App          AppConfig
	Database     DatabaseConfig
	JWT          JWTConfig
	Payroll      PayrollConfig
	PayrollAPI   PayrollAPIConfig
	Redis        RedisConfig
	Notification NotificationConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Name           string
	Version        string
	Port           int
	Env            string
	LogLevel       string
	DataSource     string
	Timezone       string
	AllowedOrigins []string
	// SeedPassword is shared by the demo accounts in memory mode.
	SeedPassword string
}

type DatabaseConfig struct {
	// URL wins over the discrete fields when set.
	URL      string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret            string
	RefreshExpiration string
	AccessExpiration  string
}

type PayrollConfig struct {
	// ScheduledStart is the shift start ("HH:MM") for employees without one.
	ScheduledStart   string
	Currency         string
	BatchConcurrency int
}

// PayrollAPIConfig points at the external payroll service. An empty URL
// keeps payslips local.
type PayrollAPIConfig struct {
	URL             string
	ClientID        string
	ClientSecret    string
	TokenURL        string
	Scopes          []string
	RatePerSecond   float64
	Burst           int
	Timeout         time.Duration
	FallbackTimeout time.Duration
}

type RedisConfig struct {
	URL      string
	CacheTTL time.Duration
}

type NotificationConfig struct {
	Interval  time.Duration
	LongShift time.Duration
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	config := &Config{}
	var err error

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Name:           getEnv("APP_NAME", "lumiere-salon"),
		Version:        getEnv("APP_VERSION", "v1.0.0"),
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		DataSource:     strings.ToLower(getEnv("DATA_SOURCE", DataSourceMemory)),
		Timezone:       getEnv("TIMEZONE", "Africa/Cairo"),
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS"),
		SeedPassword:   getEnv("SEED_PASSWORD", "lumiere123"),
	}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	maxConns, err := strconv.Atoi(getEnv("DB_MAX_CONNS", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}
	minConns, err := strconv.Atoi(getEnv("DB_MIN_CONNS", "2"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	config.Database = DatabaseConfig{
		URL:      getEnv("DATABASE_URL", ""),
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "lumiere_salon"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: int32(maxConns),
		MinConns: int32(minConns),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		RefreshExpiration: getEnv("JWT_REFRESH_EXPIRATION_TIME", "168h"),
		AccessExpiration:  getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Payroll
	batch, err := strconv.Atoi(getEnv("PAYROLL_BATCH_CONCURRENCY", "8"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_BATCH_CONCURRENCY: %w", err)
	}
	config.Payroll = PayrollConfig{
		ScheduledStart:   getEnv("PAYROLL_SCHEDULED_START", "09:00"),
		Currency:         getEnv("REPORT_CURRENCY", "ج.م"),
		BatchConcurrency: batch,
	}

	// Remote payroll API
	rps, err := strconv.ParseFloat(getEnv("PAYROLL_API_RATE", "5"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_API_RATE: %w", err)
	}
	burst, err := strconv.Atoi(getEnv("PAYROLL_API_BURST", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_API_BURST: %w", err)
	}
	config.PayrollAPI = PayrollAPIConfig{
		URL:           getEnv("PAYROLL_API_URL", ""),
		ClientID:      getEnv("PAYROLL_API_CLIENT_ID", ""),
		ClientSecret:  getEnv("PAYROLL_API_CLIENT_SECRET", ""),
		TokenURL:      getEnv("PAYROLL_API_TOKEN_URL", ""),
		Scopes:        getEnvSlice("PAYROLL_API_SCOPES"),
		RatePerSecond: rps,
		Burst:         burst,
	}
	if config.PayrollAPI.Timeout, err = getEnvDuration("PAYROLL_API_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if config.PayrollAPI.FallbackTimeout, err = getEnvDuration("PAYROLL_API_FALLBACK_TIMEOUT", "3s"); err != nil {
		return nil, err
	}

	// Redis
	config.Redis = RedisConfig{URL: getEnv("REDIS_URL", "")}
	if config.Redis.CacheTTL, err = getEnvDuration("CACHE_TTL", "10m"); err != nil {
		return nil, err
	}

	// Notifications
	if config.Notification.Interval, err = getEnvDuration("NOTIFY_INTERVAL", "5m"); err != nil {
		return nil, err
	}
	longShiftHours, err := strconv.ParseFloat(getEnv("LONG_SHIFT_HOURS", "10"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid LONG_SHIFT_HOURS: %w", err)
	}
	config.Notification.LongShift = time.Duration(longShiftHours * float64(time.Hour))

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}

	switch c.App.DataSource {
	case DataSourceMemory:
	case DataSourcePostgres:
		if c.Database.URL == "" && c.Database.Password == "" {
			return fmt.Errorf("DATABASE_URL or DB_PASSWORD is required for postgres")
		}
	default:
		return fmt.Errorf("DATA_SOURCE must be %q or %q, got %q", DataSourceMemory, DataSourcePostgres, c.App.DataSource)
	}

	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("invalid TIMEZONE %q: %w", c.App.Timezone, err)
	}
	if !validator.IsValidClock(c.Payroll.ScheduledStart) {
		return fmt.Errorf("PAYROLL_SCHEDULED_START must be HH:MM, got %q", c.Payroll.ScheduledStart)
	}
	if c.PayrollAPI.ClientID != "" && c.PayrollAPI.TokenURL == "" {
		return fmt.Errorf("PAYROLL_API_TOKEN_URL is required with PAYROLL_API_CLIENT_ID")
	}
	if c.Notification.Interval <= 0 || c.Notification.LongShift <= 0 {
		return fmt.Errorf("NOTIFY_INTERVAL and LONG_SHIFT_HOURS must be positive")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	if c.Database.URL != "" {
		return c.Database.URL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// Location returns the salon time zone. Validate has already checked it.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// SlogLevel maps LOG_LEVEL to a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.App.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	var result []string
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			result = append(result, v)
		}
	}
	return result
}

func getEnvDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
