package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application, bound from
// environment variables (a local .env is picked up if present).
type Config struct {
	HTTPServer HTTPServerConfig
	Database   DatabaseConfig
	Health     HealthConfig
	Cache      CacheConfig
	LogLevel   string
}

type HTTPServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN assembles the postgres connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

type HealthConfig struct {
	CheckInterval time.Duration
	CheckTimeout  time.Duration
}

type CacheConfig struct {
	EntryCountCap int
	EntrySizeCap  int
}

// Load populates the config from the environment with sane local
// defaults for everything except the database password.
func Load() (*Config, error) {
	// Best effort: absence of a .env file is not an error.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("HTTP_READ_TIMEOUT", 5*time.Second)
	v.SetDefault("HTTP_WRITE_TIMEOUT", 10*time.Second)
	v.SetDefault("HTTP_IDLE_TIMEOUT", 60*time.Second)
	v.SetDefault("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "broncos")
	v.SetDefault("DB_NAME", "broncos_pizza_db")
	v.SetDefault("DB_SSLMODE", "disable")

	v.SetDefault("HEALTH_CHECK_INTERVAL", 10*time.Second)
	v.SetDefault("HEALTH_CHECK_TIMEOUT", 2*time.Second)

	v.SetDefault("CACHE_ENTRY_COUNT_CAP", 1024)
	v.SetDefault("CACHE_ENTRY_SIZE_CAP", 64*1024)

	v.SetDefault("LOG_LEVEL", "info")

	if v.GetString("DB_PASSWORD") == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required")
	}

	return &Config{
		HTTPServer: HTTPServerConfig{
			Port:            v.GetString("HTTP_PORT"),
			ReadTimeout:     v.GetDuration("HTTP_READ_TIMEOUT"),
			WriteTimeout:    v.GetDuration("HTTP_WRITE_TIMEOUT"),
			IdleTimeout:     v.GetDuration("HTTP_IDLE_TIMEOUT"),
			ShutdownTimeout: v.GetDuration("HTTP_SHUTDOWN_TIMEOUT"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		Health: HealthConfig{
			CheckInterval: v.GetDuration("HEALTH_CHECK_INTERVAL"),
			CheckTimeout:  v.GetDuration("HEALTH_CHECK_TIMEOUT"),
		},
		Cache: CacheConfig{
			EntryCountCap: v.GetInt("CACHE_ENTRY_COUNT_CAP"),
			EntrySizeCap:  v.GetInt("CACHE_ENTRY_SIZE_CAP"),
		},
		LogLevel: v.GetString("LOG_LEVEL"),
	}, nil
}
