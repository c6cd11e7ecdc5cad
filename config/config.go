package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/futureprocessing/auth-gateway/utils"
)

// defaultAdminPassword is the development fallback for the static admin
// credential. Production deployments must override it by external property.
const defaultAdminPassword = "remember_to_change_me_by_external_property_on_deploy"

// Config represents the complete application configuration
type Config struct {
	Server        ServerConfig
	Admin         AdminConfig
	Verifier      VerifierConfig
	AuditDatabase *DatabaseConfig // Optional: Postgres sink for auth events. When nil, auditing is log-only.
	Observability ObservabilityConfig
	Environment   string
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int `validate:"gt=0,lte=65535"`
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	TLS             struct {
		Enabled  bool
		CertFile string
		KeyFile  string
	}
}

// AdminConfig holds the static backend admin credential pair. This is a
// fixed operational credential, independent of per-user identities, and
// grants access to the metrics route only.
type AdminConfig struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

// VerifierConfig holds the external authenticator configuration
type VerifierConfig struct {
	BaseURL         string `validate:"required,url"`
	Issuer          string `validate:"required"`
	AssertionSecret string `validate:"required"`
	HTTPTimeout     time.Duration
}

// DatabaseConfig holds PostgreSQL database configuration.
// When ConnectionString (from DATABASE_URL_AUDIT) is set, it takes precedence over individual fields.
type DatabaseConfig struct {
	ConnectionString string
	Host             string
	Port             int
	User             string
	Password         string
	Database         string
	SSLMode          string
	MaxOpenConns     int
	MaxIdleConns     int
	ConnMaxLifetime  time.Duration
}

// ObservabilityConfig holds logging configuration
type ObservabilityConfig struct {
	LogLevel  string `validate:"required,oneof=debug info warn error"`
	LogFormat string `validate:"oneof=json console"`
}

// New creates a new Config instance by loading environment variables
func New() (*Config, error) {
	// Load .env file if it exists (repo root or current directory)
	_ = godotenv.Load(".env")

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getPort(),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
			TLS: struct {
				Enabled  bool
				CertFile string
				KeyFile  string
			}{
				Enabled:  getEnvAsBool("TLS_ENABLED", true),
				CertFile: getEnv("TLS_CERT_FILE", "certs/cert.pem"),
				KeyFile:  getEnv("TLS_KEY_FILE", "certs/key.pem"),
			},
		},
		Admin: AdminConfig{
			Username: getEnv("ADMIN_USERNAME", "backend_admin"),
			Password: getEnv("ADMIN_PASSWORD", defaultAdminPassword),
		},
		Verifier: VerifierConfig{
			BaseURL:         getEnv("VERIFIER_URL", "https://localhost:9443"),
			Issuer:          getEnv("VERIFIER_ISSUER", "https://localhost:9443"),
			AssertionSecret: getEnv("VERIFIER_ASSERTION_SECRET", "dev-assertion-secret"),
			HTTPTimeout:     getEnvAsDuration("VERIFIER_TIMEOUT", 10*time.Second),
		},
		AuditDatabase: loadAuditDatabaseConfig(),
		Observability: ObservabilityConfig{
			LogLevel:  getEnv("LOG_LEVEL", "info"),
			LogFormat: getEnv("LOG_FORMAT", "json"),
		},
	}

	// Validate the configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks if all required configuration fields are set
func (c *Config) Validate() error {
	if err := utils.ValidateStruct(c.Server); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := utils.ValidateStruct(c.Admin); err != nil {
		return fmt.Errorf("admin: %w", err)
	}
	if err := utils.ValidateStruct(c.Verifier); err != nil {
		return fmt.Errorf("verifier: %w", err)
	}
	if err := utils.ValidateStruct(c.Observability); err != nil {
		return fmt.Errorf("observability: %w", err)
	}

	// Development fallbacks must not leak into production.
	if c.IsProduction() {
		if c.Admin.Password == defaultAdminPassword {
			return fmt.Errorf("ADMIN_PASSWORD must be set explicitly in production")
		}
		if c.Verifier.AssertionSecret == "dev-assertion-secret" {
			return fmt.Errorf("VERIFIER_ASSERTION_SECRET must be set explicitly in production")
		}
	}

	return nil
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Environment == "production" || c.Environment == "prod"
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development" || c.Environment == "dev"
}

// DSN returns the PostgreSQL connection string.
// Uses ConnectionString (from DATABASE_URL_AUDIT) when set; otherwise builds from individual fields.
func (c *DatabaseConfig) DSN() string {
	if c.ConnectionString != "" {
		return c.ConnectionString
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// LogString returns a safe string for logging (no password). Parses ConnectionString when set.
func (c *DatabaseConfig) LogString() string {
	if c.ConnectionString != "" {
		u, err := url.Parse(c.ConnectionString)
		if err == nil {
			host := u.Hostname()
			port := u.Port()
			if port == "" {
				port = "5432"
			}
			db := strings.TrimPrefix(u.Path, "/")
			return fmt.Sprintf("host=%s port=%s database=%s", host, port, db)
		}
		return "host=<from DATABASE_URL_AUDIT>"
	}
	return fmt.Sprintf("host=%s port=%d database=%s", c.Host, c.Port, c.Database)
}

// loadAuditDatabaseConfig loads the audit DB config from DATABASE_URL_AUDIT
// or AUDIT_DB_* env vars. Returns nil when neither is set (auditing becomes
// log-only).
func loadAuditDatabaseConfig() *DatabaseConfig {
	if dbURL := getEnv("DATABASE_URL_AUDIT", ""); dbURL != "" {
		return &DatabaseConfig{
			ConnectionString: dbURL,
			MaxOpenConns:     getEnvAsInt("AUDIT_DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:     getEnvAsInt("AUDIT_DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime:  getEnvAsDuration("AUDIT_DB_CONN_MAX_LIFETIME", 5*time.Minute),
		}
	}
	if getEnv("AUDIT_DB_HOST", "") == "" {
		return nil
	}
	return &DatabaseConfig{
		Host:            getEnv("AUDIT_DB_HOST", "localhost"),
		Port:            getEnvAsInt("AUDIT_DB_PORT", 5432),
		User:            getEnv("AUDIT_DB_USER", "audit"),
		Password:        getEnv("AUDIT_DB_PASSWORD", ""),
		Database:        getEnv("AUDIT_DB_NAME", "auth_audit"),
		SSLMode:         getEnv("AUDIT_DB_SSLMODE", "disable"),
		MaxOpenConns:    getEnvAsInt("AUDIT_DB_MAX_OPEN_CONNS", 25),
		MaxIdleConns:    getEnvAsInt("AUDIT_DB_MAX_IDLE_CONNS", 5),
		ConnMaxLifetime: getEnvAsDuration("AUDIT_DB_CONN_MAX_LIFETIME", 5*time.Minute),
	}
}

// Address returns the HTTP server address
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Helper functions

// getPort returns the server port from PORT or SERVER_PORT env vars (default: 8443)
func getPort() int {
	if value := os.Getenv("PORT"); value != "" {
		if p, err := strconv.Atoi(value); err == nil {
			return p
		}
	}
	if value := os.Getenv("SERVER_PORT"); value != "" {
		if p, err := strconv.Atoi(value); err == nil {
			return p
		}
	}
	return 8443
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
