package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"dataprep/internal"
	"dataprep/internal/errors"

	"github.com/joho/godotenv"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig
	Upload    UploadConfig
	Profiling ProfilingConfig
	LogLevel  internal.LogLevel
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port               string
	GinMode            string
	CORSAllowedOrigins []string
	ShutdownTimeout    time.Duration
}

// UploadConfig limits accepted files
type UploadConfig struct {
	MaxSizeMB     int
	MaxConcurrent int // Uploads decoded and analysed at the same time
}

// MaxBytes is the upload limit in bytes
func (u UploadConfig) MaxBytes() int64 {
	return int64(u.MaxSizeMB) << 20
}

// ProfilingConfig holds the pprof listener settings
type ProfilingConfig struct {
	Port    string
	Enabled bool
}

// Load reads an optional .env file, then the environment, and validates the result
func Load() (*Config, error) {
	// A missing .env is normal outside development
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv reads configuration from environment variables only
func FromEnv() (*Config, error) {
	config := &Config{}

	logLevel, err := internal.ParseLogLevel(getEnvOrDefault("LOG_LEVEL", "INFO"))
	if err != nil {
		return nil, errors.Wrap(errors.ConfigInvalid(err.Error()), "invalid LOG_LEVEL")
	}
	config.LogLevel = logLevel

	serverConfig, err := loadServerConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load server configuration")
	}
	config.Server = *serverConfig

	maxMB, err := getEnvInt("MAX_UPLOAD_MB", 50)
	if err != nil {
		return nil, err
	}
	maxConcurrent, err := getEnvInt("MAX_CONCURRENT_ANALYSES", 8)
	if err != nil {
		return nil, err
	}
	config.Upload = UploadConfig{MaxSizeMB: maxMB, MaxConcurrent: maxConcurrent}

	profilingConfig, err := loadProfilingConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load profiling configuration")
	}
	config.Profiling = *profilingConfig

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadServerConfig() (*ServerConfig, error) {
	timeout, err := getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	return &ServerConfig{
		Port:               getEnvOrDefault("PORT", "8000"),
		GinMode:            getEnvOrDefault("GIN_MODE", "release"),
		CORSAllowedOrigins: splitList(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "*")),
		ShutdownTimeout:    timeout,
	}, nil
}

func loadProfilingConfig() (*ProfilingConfig, error) {
	enabled, err := getEnvBool("PPROF_ENABLED", false)
	if err != nil {
		return nil, err
	}
	return &ProfilingConfig{
		Port:    getEnvOrDefault("PPROF_PORT", "6060"),
		Enabled: enabled,
	}, nil
}

func validateConfig(config *Config) error {
	if !isPort(config.Server.Port) {
		return errors.ConfigInvalid("PORT must be a number between 1 and 65535")
	}
	switch config.Server.GinMode {
	case "debug", "release", "test":
	default:
		return errors.ConfigInvalid("GIN_MODE must be debug, release or test")
	}
	if len(config.Server.CORSAllowedOrigins) == 0 {
		return errors.ConfigInvalid("CORS_ALLOWED_ORIGINS must list at least one origin")
	}
	if config.Server.ShutdownTimeout <= 0 {
		return errors.ConfigInvalid("SHUTDOWN_TIMEOUT must be positive")
	}
	if config.Upload.MaxSizeMB <= 0 {
		return errors.ConfigInvalid("MAX_UPLOAD_MB must be positive")
	}
	if config.Upload.MaxConcurrent <= 0 {
		return errors.ConfigInvalid("MAX_CONCURRENT_ANALYSES must be positive")
	}
	if config.Profiling.Enabled && !isPort(config.Profiling.Port) {
		return errors.ConfigInvalid("PPROF_PORT must be a number between 1 and 65535")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return 0, errors.ConfigInvalid(key + " must be an integer")
	}
	return intValue, nil
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return false, errors.ConfigInvalid(key + " must be a boolean")
	}
	return boolValue, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return 0, errors.ConfigInvalid(key + " must be a duration such as 10s")
	}
	return duration, nil
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func isPort(value string) bool {
	port, err := strconv.Atoi(value)
	return err == nil && port > 0 && port <= 65535
}
