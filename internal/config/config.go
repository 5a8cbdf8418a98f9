package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	Biometric  BiometricConfig
	Attendance AttendanceConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret            string
	RefreshExpiration string
	AccessExpiration  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
	Timezone string
}

// BiometricConfig holds connection settings for the hardware attendance terminal.
type BiometricConfig struct {
	Host           string
	Port           int
	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
	PollInterval   time.Duration
}

// AttendanceConfig holds attendance business rules that are tunable per deployment.
type AttendanceConfig struct {
	// LateThreshold is the local wall-clock time ("HH:MM") after which a
	// punch-in counts as a late mark.
	LateThreshold string
}

func Load() (*Config, error) {
	// .env is optional; deployments may inject env vars directly
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "nimbus-hrms"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Timezone: getEnv("APP_TIMEZONE", "Asia/Kolkata"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		RefreshExpiration: getEnv("JWT_REFRESH_EXPIRATION_TIME", "168h"),
		AccessExpiration:  getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Biometric terminal configuration
	bioPort, err := strconv.Atoi(getEnv("BIOMETRIC_PORT", "4370"))
	if err != nil {
		return nil, fmt.Errorf("invalid BIOMETRIC_PORT: %w", err)
	}

	connectTimeout, err := time.ParseDuration(getEnv("BIOMETRIC_CONNECT_TIMEOUT", "5s"))
	if err != nil {
		return nil, fmt.Errorf("invalid BIOMETRIC_CONNECT_TIMEOUT: %w", err)
	}

	readTimeout, err := time.ParseDuration(getEnv("BIOMETRIC_READ_TIMEOUT", "5s"))
	if err != nil {
		return nil, fmt.Errorf("invalid BIOMETRIC_READ_TIMEOUT: %w", err)
	}

	pollInterval, err := time.ParseDuration(getEnv("BIOMETRIC_POLL_INTERVAL", "60s"))
	if err != nil {
		return nil, fmt.Errorf("invalid BIOMETRIC_POLL_INTERVAL: %w", err)
	}

	config.Biometric = BiometricConfig{
		Host:           getEnv("BIOMETRIC_HOST", "192.168.1.199"),
		Port:           bioPort,
		ConnectTimeout: connectTimeout,
		ReadTimeout:    readTimeout,
		PollInterval:   pollInterval,
	}

	config.Attendance = AttendanceConfig{
		LateThreshold: getEnv("ATTENDANCE_LATE_THRESHOLD", "10:00"),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := time.Parse("15:04", c.Attendance.LateThreshold); err != nil {
		return fmt.Errorf("invalid ATTENDANCE_LATE_THRESHOLD: %w", err)
	}
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// Location resolves the configured application timezone. Every "calendar day"
// computation in the attendance core runs in this location.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// LateThresholdClock parses the late threshold into hour and minute parts.
func (c *Config) LateThresholdClock() (hour, minute int) {
	t, err := time.Parse("15:04", c.Attendance.LateThreshold)
	if err != nil {
		return 10, 0
	}
	return t.Hour(), t.Minute()
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
