package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Logger   LoggerConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host string
	Port int
}

// DatabaseConfig holds database-related configuration. Two roles connect
// to the same database: the anon role is subject to row-level security,
// the service role bypasses it for admin operations.
type DatabaseConfig struct {
	Host            string
	Port            int
	Database        string
	AnonUser        string
	AnonPassword    string
	ServiceUser     string
	ServicePassword string
	MaxConnections  int
	MinConnections  int
	MaxConnLifetime int // seconds
}

// AuthConfig holds the platform auth API configuration.
type AuthConfig struct {
	PlatformURL string
	AnonKey     string
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// Load loads configuration from environment variables. A .env file in
// the working directory is applied first when present.
func Load() (*Config, error) {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8000),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			Database:        getEnv("DB_NAME", "workshop_bridge"),
			AnonUser:        getEnv("DB_ANON_USER", "anon"),
			AnonPassword:    getEnv("DB_ANON_PASSWORD", ""),
			ServiceUser:     getEnv("DB_SERVICE_USER", "service_role"),
			ServicePassword: getEnv("DB_SERVICE_PASSWORD", ""),
			MaxConnections:  getEnvAsInt("DB_MAX_CONNECTIONS", 25),
			MinConnections:  getEnvAsInt("DB_MIN_CONNECTIONS", 5),
			MaxConnLifetime: getEnvAsInt("DB_MAX_CONN_LIFETIME", 300),
		},
		Auth: AuthConfig{
			PlatformURL: getEnv("AUTH_PLATFORM_URL", ""),
			AnonKey:     getEnv("AUTH_ANON_KEY", ""),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("invalid database port: %d", c.Database.Port)
	}

	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.Database.AnonUser == "" {
		return fmt.Errorf("database anon user is required")
	}

	if c.Database.ServiceUser == "" {
		return fmt.Errorf("database service user is required")
	}

	if c.Database.MaxConnections < 1 {
		return fmt.Errorf("database max connections must be at least 1")
	}

	if c.Database.MinConnections < 1 {
		return fmt.Errorf("database min connections must be at least 1")
	}

	if c.Database.MinConnections > c.Database.MaxConnections {
		return fmt.Errorf("database min connections cannot exceed max connections")
	}

	if c.Auth.PlatformURL == "" {
		return fmt.Errorf("auth platform URL is required")
	}

	if c.Auth.AnonKey == "" {
		return fmt.Errorf("auth anon key is required")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	return nil
}

// AnonConnectionString returns the connection string for the RLS-governed
// anon role.
func (c *DatabaseConfig) AnonConnectionString() string {
	return c.connectionString(c.AnonUser, c.AnonPassword)
}

// ServiceConnectionString returns the connection string for the service
// role that bypasses row-level security.
func (c *DatabaseConfig) ServiceConnectionString() string {
	return c.connectionString(c.ServiceUser, c.ServicePassword)
}

func (c *DatabaseConfig) connectionString(user, password string) string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		user,
		password,
		c.Host,
		c.Port,
		c.Database,
	)
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
