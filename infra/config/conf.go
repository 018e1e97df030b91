package config

import (
	"os"
	"strconv"
	"strings"
)

// AppConfig represents the application configuration. Secrets are not part
// of it; they are read lazily by the components that need them.
type AppConfig struct {
	Port             string
	Environment      string
	AllowedOrigins   []string
	EnableLogging    bool
	OpenSearchURL    string
	OpenSearchUser   string
	OpenSearchPass   string
	LogRetentionDays int
	EventDBPath      string
}

var appConfigInstance *AppConfig

// App returns the application configuration, built from the environment on
// first call.
func App() *AppConfig {
	if appConfigInstance == nil {
		appConfigInstance = &AppConfig{
			Port:             GetEnv("APP_PORT", "8080"),
			Environment:      GetEnv("ENVIRONMENT", "development"),
			AllowedOrigins:   strings.Split(GetEnv("ALLOWED_ORIGINS", "*"), ","),
			EnableLogging:    GetBoolEnv("ENABLE_OPENSEARCH_LOGGING", false),
			OpenSearchURL:    GetEnv("OPENSEARCH_URL", "http://localhost:9200"),
			OpenSearchUser:   GetEnv("OPENSEARCH_USER", ""),
			OpenSearchPass:   GetEnv("OPENSEARCH_PASSWORD", ""),
			LogRetentionDays: GetIntEnv("LOG_RETENTION_DAYS", 30),
			EventDBPath:      GetEnv("WEBHOOK_DB_PATH", ""),
		}
	}
	return appConfigInstance
}

// GetEnv returns the value of an environment variable or a default value
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetBoolEnv returns the boolean value of an environment variable or a default value
func GetBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// GetIntEnv returns the integer value of an environment variable or a default value
func GetIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
