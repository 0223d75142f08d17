package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/outreach-console/internal/backend"
	"github.com/GriffinCanCode/outreach-console/internal/client"
	"github.com/GriffinCanCode/outreach-console/internal/domain/session"
	"github.com/GriffinCanCode/outreach-console/internal/domain/view"
	"github.com/GriffinCanCode/outreach-console/internal/infrastructure/config"
	"github.com/GriffinCanCode/outreach-console/internal/infrastructure/logging"
	"github.com/GriffinCanCode/outreach-console/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/outreach-console/internal/storage"
)

// errNotSignedIn is returned by dashboard commands without a session.
var errNotSignedIn = errors.New("not signed in; run `console login` first")

// app is the object graph every command runs against.
type app struct {
	cfg       *config.Config
	log       *logging.Logger
	registry  *prometheus.Registry
	metrics   *monitoring.Metrics
	store     storage.Store
	client    *client.Client
	api       *backend.API
	session   *session.Manager
	sanitizer *view.Sanitizer
	json      bool
}

// newApp loads configuration, applies flag overrides and wires the session
// to the backend client. The session is restored before returning.
func newApp(ctx context.Context, flags *globalFlags) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	applyFlags(cfg, flags)

	log := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
	})

	store, err := openStore(cfg.Storage)
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := monitoring.NewMetrics(registry)

	c := client.New(client.Options{
		BaseURL:    cfg.API.BaseURL,
		Timeout:    cfg.API.Timeout,
		MaxRetries: cfg.API.MaxRetries,
		RateLimit:  cfg.API.RateLimit,
		Logger:     log,
		Metrics:    metrics,
	})
	api := backend.New(c)

	mgr := session.NewManager(api, store, session.Options{
		Logger:               log,
		Metrics:              metrics,
		LogoutOnUnauthorized: cfg.Session.LogoutOnUnauthorized,
	})
	c.SetAuthorizer(mgr)
	c.OnUnauthorized(mgr.HandleUnauthorized)

	if err := mgr.Restore(ctx); err != nil {
		log.Warn("Stored session could not be read", zap.Error(err))
	}

	return &app{
		cfg:       cfg,
		log:       log,
		registry:  registry,
		metrics:   metrics,
		store:     store,
		client:    c,
		api:       api,
		session:   mgr,
		sanitizer: view.NewSanitizer(),
		json:      flags.json,
	}, nil
}

func applyFlags(cfg *config.Config, flags *globalFlags) {
	if flags.apiURL != "" {
		cfg.API.BaseURL = flags.apiURL
	}
	if flags.tokenFile != "" {
		cfg.Storage.TokenFile = flags.tokenFile
	}
	if flags.ephemeral {
		cfg.Storage.Ephemeral = true
	}
	if flags.logLevel != "" {
		cfg.Logging.Level = flags.logLevel
	}
	if flags.logDev {
		cfg.Logging.Development = true
	}
	if flags.logoutOnUnauthorized {
		cfg.Session.LogoutOnUnauthorized = true
	}
}

// openStore picks the token store: memory when ephemeral, otherwise the
// token file, sealed when a passphrase is configured.
func openStore(cfg config.StorageConfig) (storage.Store, error) {
	if cfg.Ephemeral {
		return storage.NewMemoryStore(), nil
	}

	file, err := storage.NewFileStore(cfg.TokenFile)
	if err != nil {
		return nil, fmt.Errorf("token file: %w", err)
	}
	if cfg.Passphrase == "" {
		return file, nil
	}
	return storage.NewSealed(file, cfg.Passphrase)
}

// close flushes the logger.
func (a *app) close() {
	_ = a.log.Sync()
}

// requireSession fails unless the session gates to the dashboard.
func (a *app) requireSession() error {
	if view.Gate(a.session.Snapshot()) != view.ViewDashboard {
		return errNotSignedIn
	}
	return nil
}

// run builds the app for cmd and calls fn with it.
func run(cmd *cobra.Command, flags *globalFlags, fn func(ctx context.Context, a *app) error) error {
	a, err := newApp(cmd.Context(), flags)
	if err != nil {
		return err
	}
	defer a.close()
	return fn(cmd.Context(), a)
}

// runAuthed is run for commands that need a signed-in session.
func runAuthed(cmd *cobra.Command, flags *globalFlags, fn func(ctx context.Context, a *app) error) error {
	return run(cmd, flags, func(ctx context.Context, a *app) error {
		if err := a.requireSession(); err != nil {
			return err
		}
		return fn(ctx, a)
	})
}
