package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Database configuration
	Database DatabaseConfig

	// Upload configuration
	Upload UploadConfig

	// Background file cleanup configuration
	Cleanup CleanupConfig

	// Logging configuration
	Log LogConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string
	AllowedOrigin   string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// DatabaseConfig holds MongoDB connection settings
type DatabaseConfig struct {
	URI            string
	Name           string
	ConnectTimeout time.Duration
}

// UploadConfig holds file upload settings
type UploadConfig struct {
	Dir           string
	MaxUploadSize int64 // per file, in bytes
	MaxImageWidth int   // 0 disables image normalization
}

// CleanupConfig holds background file deletion settings
type CleanupConfig struct {
	PollInterval time.Duration
	MaxAttempts  int
	QueueSize    int
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string
	Format string // "json" or "pretty"
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			AllowedOrigin:   getEnv("ALLOWED_ORIGIN", "http://localhost:5173"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Database: DatabaseConfig{
			URI:            getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Name:           getEnv("DB_NAME", "blog"),
			ConnectTimeout: getDurationEnv("DB_CONNECT_TIMEOUT", 10*time.Second),
		},
		Upload: UploadConfig{
			Dir:           getEnv("UPLOAD_DIR", "./data/uploads"),
			MaxUploadSize: getInt64Env("MAX_UPLOAD_SIZE", 10*1024*1024), // 10MB
			MaxImageWidth: getIntEnv("MAX_IMAGE_WIDTH", 0),
		},
		Cleanup: CleanupConfig{
			PollInterval: getDurationEnv("CLEANUP_POLL_INTERVAL", 2*time.Second),
			MaxAttempts:  getIntEnv("CLEANUP_MAX_ATTEMPTS", 3),
			QueueSize:    getIntEnv("CLEANUP_QUEUE_SIZE", 256),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Database.URI == "" {
		return fmt.Errorf("MONGO_URI is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	if c.Upload.Dir == "" {
		return fmt.Errorf("UPLOAD_DIR is required")
	}
	return nil
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getInt64Env(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
