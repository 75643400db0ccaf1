package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the client
type Config struct {
	API           APIConfig
	Identity      IdentityConfig
	Notifications NotificationsConfig
	State         StateConfig
	Metrics       MetricsConfig
}

// APIConfig holds the school-management REST backend configuration
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// NotificationsConfig holds the notification service configuration
type NotificationsConfig struct {
	BaseURL      string
	PollInterval time.Duration
}

// IdentityConfig holds the identity provider configuration
type IdentityConfig struct {
	BaseURL string
	APIKey  string
}

// StateConfig holds local persisted state configuration
type StateConfig struct {
	Dir string
}

// MetricsConfig holds the optional metrics endpoint configuration
type MetricsConfig struct {
	Addr string
}

// Load reads configuration from a .env file (when present) and the environment
func Load() Config {
	_ = godotenv.Load()

	return Config{
		API: APIConfig{
			BaseURL: getEnv("API_URL", "http://localhost:3000"),
			Timeout: parseDuration(getEnv("HTTP_TIMEOUT", "10s"), 10*time.Second),
		},
		Notifications: NotificationsConfig{
			BaseURL:      getEnv("NOTIFICATIONS_URL", "http://localhost:8081"),
			PollInterval: parseDuration(getEnv("POLL_INTERVAL", "30s"), 30*time.Second),
		},
		Identity: IdentityConfig{
			BaseURL: getEnv("IDENTITY_URL", "https://identitytoolkit.googleapis.com"),
			APIKey:  getEnv("IDENTITY_API_KEY", ""),
		},
		State: StateConfig{
			Dir: getEnv("STATE_DIR", defaultStateDir()),
		},
		Metrics: MetricsConfig{
			Addr: getEnv("METRICS_ADDR", ""),
		},
	}
}

func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".schoolmanage"
	}
	return filepath.Join(home, ".schoolmanage")
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parseDuration parses a duration string or returns a default value
func parseDuration(value string, defaultValue time.Duration) time.Duration {
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}
	return defaultValue
}
