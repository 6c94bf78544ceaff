package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

const defaultLogoutTimeout = 10 * time.Second

// Config holds the environment-driven configuration of the CLI
type Config struct {
	// State Configuration
	State StateConfig

	// Logout Configuration
	Logout LogoutConfig

	// Logging Configuration
	Logging LoggingConfig
}

// StateConfig holds the location of the local client state database
type StateConfig struct {
	DatabasePath string
}

// LogoutConfig bounds the remote logout call
type LogoutConfig struct {
	Timeout time.Duration
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level  string
	Format string // json, console
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env files (fails silently if files don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	dbPath := os.Getenv("WAHLFANG_STATE_DB")
	if dbPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		dbPath = filepath.Join(homeDir, ".config", "wahlfang", "state.db")
	}

	timeout := defaultLogoutTimeout
	if raw := os.Getenv("WAHLFANG_LOGOUT_TIMEOUT"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid WAHLFANG_LOGOUT_TIMEOUT %q: %w", raw, err)
		}
		if parsed <= 0 {
			return nil, fmt.Errorf("WAHLFANG_LOGOUT_TIMEOUT must be positive, got %s", parsed)
		}
		timeout = parsed
	}

	// Quiet by default, the CLI prints its own progress
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "warn"
	}

	logFormat := os.Getenv("LOG_FORMAT")
	if logFormat == "" {
		logFormat = "console"
	}

	return &Config{
		State: StateConfig{
			DatabasePath: dbPath,
		},
		Logout: LogoutConfig{
			Timeout: timeout,
		},
		Logging: LoggingConfig{
			Level:  logLevel,
			Format: logFormat,
		},
	}, nil
}
