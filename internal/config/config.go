package config

import (
	"os"
	"strconv"

	"pharmarisk/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig
	Model     ModelConfig
	Data      DataConfig
	Profiling ProfilingConfig
	LogLevel  string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// ModelConfig points at the serialized classifier artifact
type ModelConfig struct {
	Path string
}

// DataConfig holds mock data settings
type DataConfig struct {
	LotCount int
	// Seed of 0 draws a fresh dataset on every render.
	Seed int64
}

// ProfilingConfig holds the ops/pprof side server settings
type ProfilingConfig struct {
	Port    string
	Enabled bool
}

const (
	DefaultModelPath = "modelo_risco_vencimento.json"
	DefaultLotCount  = 5000
)

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server:    *loadServerConfig(),
		Model:     *loadModelConfig(),
		Data:      *loadDataConfig(),
		Profiling: *loadProfilingConfig(),
		LogLevel:  getEnvOrDefault("LOG_LEVEL", "INFO"),
	}

	if err := Validate(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:    getEnvOrDefault("PORT", "8080"),
		GinMode: getEnvOrDefault("GIN_MODE", "release"),
	}
}

func loadModelConfig() *ModelConfig {
	return &ModelConfig{
		Path: getEnvOrDefault("MODEL_PATH", DefaultModelPath),
	}
}

func loadDataConfig() *DataConfig {
	return &DataConfig{
		LotCount: getEnvIntOrDefault("MOCK_LOT_COUNT", DefaultLotCount),
		Seed:     getEnvInt64OrDefault("MOCK_SEED", 0),
	}
}

func loadProfilingConfig() *ProfilingConfig {
	return &ProfilingConfig{
		Port:    getEnvOrDefault("PPROF_PORT", "6060"),
		Enabled: getEnvBoolOrDefault("PPROF_ENABLED", false),
	}
}

// Validate checks the fields the server cannot start without
func Validate(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	if _, err := strconv.Atoi(config.Server.Port); err != nil {
		return errors.ConfigInvalid("server port must be numeric, got " + config.Server.Port)
	}
	if config.Model.Path == "" {
		return errors.ConfigInvalid("model path is required")
	}
	if config.Data.LotCount <= 0 {
		return errors.ConfigInvalid("mock lot count must be positive")
	}
	if config.Profiling.Enabled && config.Profiling.Port == config.Server.Port {
		return errors.ConfigInvalid("pprof port must differ from server port")
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

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
