package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/futureprocessing/auth-gateway/config"
	"github.com/futureprocessing/auth-gateway/handlers"
	"github.com/futureprocessing/auth-gateway/internal/observability"
	"github.com/futureprocessing/auth-gateway/middleware"
	"github.com/futureprocessing/auth-gateway/repositories"
	"github.com/futureprocessing/auth-gateway/repositories/postgres"
	"github.com/futureprocessing/auth-gateway/services/audit"
	"github.com/futureprocessing/auth-gateway/services/stuff"
	"github.com/futureprocessing/auth-gateway/services/tokens"
	"github.com/futureprocessing/auth-gateway/services/verifier"
)

// Dependencies holds all application dependencies. This is the central
// wiring point for dependency injection.
type Dependencies struct {
	// Infrastructure
	Config  *config.Config
	Logger  *zap.Logger
	Metrics *observability.Metrics

	// Audit trail (DB is nil when no audit database is configured)
	AuditDB   *postgres.DB
	AuditRepo repositories.AuthEventRepository
	Audit     *audit.Service

	// Core services
	Tokens        *tokens.Service
	Authenticator verifier.Authenticator

	// Access policy middleware
	TokenAuth  *middleware.TokenAuth
	AdminGuard *middleware.StaticCredential

	// Handlers
	HealthHandler *handlers.HealthHandler
	AuthHandler   *handlers.AuthHandler
	StuffHandler  *handlers.StuffHandler
}

// NewDependencies creates and wires up all application dependencies.
func NewDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config:  cfg,
		Logger:  logger,
		Metrics: observability.NewMetrics(),
	}

	if err := deps.initAudit(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize audit trail: %w", err)
	}

	deps.initCore(cfg)
	deps.initHandlers()

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

// initAudit sets up the auth event audit trail. Without an audit database
// the service still runs, writing events to the log only.
func (d *Dependencies) initAudit(ctx context.Context, cfg *config.Config) error {
	if cfg.AuditDatabase != nil {
		db, err := postgres.NewDB(*cfg.AuditDatabase, d.Logger)
		if err != nil {
			return fmt.Errorf("failed to connect to audit database: %w", err)
		}
		if err := db.InitSchema(ctx); err != nil {
			_ = db.Close()
			return fmt.Errorf("failed to initialize audit schema: %w", err)
		}
		d.AuditDB = db
		d.AuditRepo = postgres.NewAuthEventRepository(db, d.Logger)
		d.Logger.Info("audit database connected",
			zap.String("connection", cfg.AuditDatabase.LogString()))
	}

	d.Audit = audit.NewService(d.AuditRepo, d.Logger, audit.DefaultConfig())
	return d.Audit.Start()
}

// initCore wires the token store, the external credential verifier and the
// access policy middleware.
func (d *Dependencies) initCore(cfg *config.Config) {
	d.Tokens = tokens.NewService(d.Logger,
		tokens.WithIssueHook(d.Metrics.RecordTokenIssued),
		tokens.WithLookupHook(d.Metrics.RecordTokenLookup),
	)

	d.Authenticator = verifier.NewExternalAuthenticator(verifier.Config{
		BaseURL:         cfg.Verifier.BaseURL,
		Issuer:          cfg.Verifier.Issuer,
		AssertionSecret: []byte(cfg.Verifier.AssertionSecret),
		HTTPTimeout:     cfg.Verifier.HTTPTimeout,
	}, d.Logger)

	d.TokenAuth = middleware.NewTokenAuth(d.Tokens, d.Logger).
		WithEventRecorder(d.Audit)

	d.AdminGuard = middleware.NewStaticCredential(cfg.Admin.Username, cfg.Admin.Password, d.Logger).
		WithRejectHook(d.Metrics.AdminRejectsTotal.Inc).
		WithEventRecorder(d.Audit)
}

// initHandlers constructs the HTTP handlers.
func (d *Dependencies) initHandlers() {
	d.HealthHandler = handlers.NewHealthHandler(d.Logger)
	d.AuthHandler = handlers.NewAuthHandler(d.Authenticator, d.Tokens, d.Logger).
		WithEventRecorder(d.Audit).
		WithAttemptRecorder(d.Metrics)
	d.StuffHandler = handlers.NewStuffHandler(stuff.NewStaticGateway(), d.Logger)
}

// Close gracefully shuts down all dependencies
func (d *Dependencies) Close(ctx context.Context) error {
	d.Logger.Info("shutting down dependencies")

	var errs []error

	if d.Audit != nil {
		if err := d.Audit.Stop(5 * time.Second); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop audit service: %w", err))
		}
	}

	if d.AuditDB != nil {
		if err := d.AuditDB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close audit database: %w", err))
		} else {
			d.Logger.Info("audit database connection closed")
		}
	}

	if d.Logger != nil {
		_ = d.Logger.Sync()
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors during shutdown: %v", errs)
	}

	return nil
}
