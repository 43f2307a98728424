// Package config provides application configuration loaded from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	App       AppConfig
	Admin     AdminConfig
	Branding  BrandingConfig
	Redis     RedisConfig
	Telemetry TelemetryConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string
	ReadTimeout  int // seconds
	WriteTimeout int // seconds
	IdleTimeout  int // seconds
}

// DatabaseConfig selects sqlite (default) or PostgreSQL.
type DatabaseConfig struct {
	Driver     string // "sqlite" or "postgres"
	SQLitePath string
	Host       string
	Port       int
	User       string
	Password   string
	DBName     string
	SSLMode    string
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Dev        bool
	Migrations bool
}

// AdminConfig holds the shared admin password and session signing key.
// PasswordHash (bcrypt) wins over Password when both are set.
type AdminConfig struct {
	Password      string
	PasswordHash  string
	SessionSecret string
}

// BrandingConfig holds the printed identity of the clinic.
type BrandingConfig struct {
	Brand                 string
	Subtitle              string
	BusinessCaption       string
	BusinessSignaturePath string
}

// RedisConfig enables the shared wizard session store when Addr is set.
type RedisConfig struct {
	Addr       string
	Password   string
	DB         int
	SessionTTL time.Duration
}

// Enabled reports whether a Redis server is configured.
func (r RedisConfig) Enabled() bool { return r.Addr != "" }

// TelemetryConfig configures OpenTelemetry tracing export.
type TelemetryConfig struct {
	Enabled      bool
	ServiceName  string
	OTLPEndpoint string
	SampleRatio  float64
}

// IsPostgres reports whether PostgreSQL is selected.
func (d DatabaseConfig) IsPostgres() bool {
	return d.Driver == "postgres" || d.Driver == "postgresql"
}

// DSN returns the connection string for the selected driver.
// PostgreSQL uses key=value format; sqlite uses the file path.
func (d DatabaseConfig) DSN() string {
	if !d.IsPostgres() {
		return d.SQLitePath
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// URL returns the PostgreSQL connection string in URL format.
func (d DatabaseConfig) URL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// Load reads configuration from environment variables.
// It uses sensible defaults for local development.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			ReadTimeout:  getEnvInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvInt("SERVER_WRITE_TIMEOUT", 30),
			IdleTimeout:  getEnvInt("SERVER_IDLE_TIMEOUT", 60),
		},
		Database: DatabaseConfig{
			Driver:     getEnv("DB_DRIVER", "sqlite"),
			SQLitePath: getEnv("DB_PATH", "contratos.db"),
			Host:       getEnv("DB_HOST", "localhost"),
			Port:       getEnvInt("DB_PORT", 5432),
			User:       getEnv("DB_USER", "contracts"),
			Password:   getEnv("DB_PASSWORD", "contracts123"),
			DBName:     getEnv("DB_NAME", "contracts"),
			SSLMode:    getEnv("DB_SSLMODE", "disable"),
		},
		App: AppConfig{
			Dev:        getEnvBool("DEV", false),
			Migrations: getEnvBool("MIGRATIONS", false),
		},
		Admin: AdminConfig{
			Password:      getEnv("ADMIN_PASSWORD", "admin123"),
			PasswordHash:  getEnv("ADMIN_PASSWORD_HASH", ""),
			SessionSecret: getEnv("SESSION_SECRET", "devsessionsecret"),
		},
		Branding: BrandingConfig{
			Brand:                 getEnv("BRAND_NAME", "MICAELA SAMPAIO"),
			Subtitle:              getEnv("BRAND_SUBTITLE", "CLUBE + ESTETICA 3.0"),
			BusinessCaption:       getEnv("BRAND_SIGNATURE_CAPTION", "Micaela Sampaio - Clube Estetica"),
			BusinessSignaturePath: getEnv("BUSINESS_SIGNATURE_PATH", "assets/assinatura_micaela.png"),
		},
		Redis: RedisConfig{
			Addr:       getEnv("REDIS_ADDR", ""),
			Password:   getEnv("REDIS_PASSWORD", ""),
			DB:         getEnvInt("REDIS_DB", 0),
			SessionTTL: time.Duration(getEnvInt("WIZARD_SESSION_TTL_MINUTES", 60)) * time.Minute,
		},
		Telemetry: TelemetryConfig{
			Enabled:      getEnvBool("OTEL_ENABLED", false),
			ServiceName:  getEnv("OTEL_SERVICE_NAME", "contracts"),
			OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			SampleRatio:  getEnvFloat("OTEL_SAMPLING_RATIO", 1),
		},
	}
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns the integer value of an environment variable or a default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

// getEnvFloat returns a ratio in [0,1] or the default.
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil && f >= 0 && f <= 1 {
			return f
		}
	}
	return defaultValue
}

// getEnvBool returns the boolean value of an environment variable or a default.
// Accepts "1", "true", "yes" as true; everything else is false.
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "1" || value == "true" || value == "yes"
}
