package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
		wantErr bool
		check   func(*testing.T, *Config)
	}{
		{
			name: "default configuration",
			envVars: map[string]string{
				"ENVIRONMENT": "development",
			},
			wantErr: false,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "development", cfg.Environment)
				assert.Equal(t, "0.0.0.0", cfg.Server.Host)
				assert.Equal(t, 8443, cfg.Server.Port)
				assert.True(t, cfg.Server.TLS.Enabled)
				assert.Equal(t, "backend_admin", cfg.Admin.Username)
				assert.NotEmpty(t, cfg.Admin.Password)
				assert.Equal(t, "https://localhost:9443", cfg.Verifier.BaseURL)
				assert.Equal(t, 10*time.Second, cfg.Verifier.HTTPTimeout)
				assert.Nil(t, cfg.AuditDatabase)
				assert.Equal(t, "info", cfg.Observability.LogLevel)
			},
		},
		{
			name: "explicit configuration",
			envVars: map[string]string{
				"ENVIRONMENT":               "production",
				"SERVER_PORT":               "9000",
				"TLS_ENABLED":               "false",
				"ADMIN_USERNAME":            "ops_admin",
				"ADMIN_PASSWORD":            "s3cret",
				"VERIFIER_URL":              "https://auth.internal:9443",
				"VERIFIER_ISSUER":           "https://auth.internal",
				"VERIFIER_ASSERTION_SECRET": "shared-hmac-key",
				"VERIFIER_TIMEOUT":          "3s",
				"LOG_LEVEL":                 "warn",
			},
			wantErr: false,
			check: func(t *testing.T, cfg *Config) {
				assert.True(t, cfg.IsProduction())
				assert.False(t, cfg.IsDevelopment())
				assert.Equal(t, 9000, cfg.Server.Port)
				assert.False(t, cfg.Server.TLS.Enabled)
				assert.Equal(t, "ops_admin", cfg.Admin.Username)
				assert.Equal(t, "s3cret", cfg.Admin.Password)
				assert.Equal(t, "https://auth.internal:9443", cfg.Verifier.BaseURL)
				assert.Equal(t, 3*time.Second, cfg.Verifier.HTTPTimeout)
				assert.Equal(t, "warn", cfg.Observability.LogLevel)
			},
		},
		{
			name: "PORT takes precedence over SERVER_PORT",
			envVars: map[string]string{
				"PORT":        "8081",
				"SERVER_PORT": "9000",
			},
			wantErr: false,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 8081, cfg.Server.Port)
			},
		},
		{
			name: "audit database from URL",
			envVars: map[string]string{
				"DATABASE_URL_AUDIT": "postgres://audit:pw@audit-db.internal:5432/auth_audit?sslmode=require",
			},
			wantErr: false,
			check: func(t *testing.T, cfg *Config) {
				require.NotNil(t, cfg.AuditDatabase)
				assert.Contains(t, cfg.AuditDatabase.DSN(), "audit-db.internal")
				assert.NotContains(t, cfg.AuditDatabase.LogString(), "pw")
			},
		},
		{
			name: "audit database from individual vars",
			envVars: map[string]string{
				"AUDIT_DB_HOST":     "localhost",
				"AUDIT_DB_USER":     "audit",
				"AUDIT_DB_PASSWORD": "pw",
				"AUDIT_DB_NAME":     "auth_audit",
			},
			wantErr: false,
			check: func(t *testing.T, cfg *Config) {
				require.NotNil(t, cfg.AuditDatabase)
				assert.Equal(t, "localhost", cfg.AuditDatabase.Host)
				assert.Equal(t, 5432, cfg.AuditDatabase.Port)
			},
		},
		{
			name: "production rejects default admin password",
			envVars: map[string]string{
				"ENVIRONMENT":               "production",
				"VERIFIER_ASSERTION_SECRET": "shared-hmac-key",
			},
			wantErr: true,
		},
		{
			name: "production rejects default assertion secret",
			envVars: map[string]string{
				"ENVIRONMENT":    "production",
				"ADMIN_PASSWORD": "s3cret",
			},
			wantErr: true,
		},
		{
			name: "invalid log level rejected",
			envVars: map[string]string{
				"LOG_LEVEL": "verbose",
			},
			wantErr: true,
		},
		{
			name: "invalid verifier url rejected",
			envVars: map[string]string{
				"VERIFIER_URL": "not a url",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg, err := New()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestServerConfig_Address(t *testing.T) {
	cfg := ServerConfig{Host: "127.0.0.1", Port: 8443}
	assert.Equal(t, "127.0.0.1:8443", cfg.Address())
}
