// Package app wires configuration, credential storage, telemetry and the API
// client together for a single CLI invocation.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tonimelisma/sponsorctl/internal/config"
	"github.com/tonimelisma/sponsorctl/internal/logger"
	"github.com/tonimelisma/sponsorctl/internal/session"
	"github.com/tonimelisma/sponsorctl/internal/telemetry"
	"github.com/tonimelisma/sponsorctl/pkg/sponsorapi"
	"golang.org/x/time/rate"
)

type App struct {
	Config    *config.Configuration
	Storage   *session.Store
	Client    *sponsorapi.Client
	SDK       SDK
	Logger    *logger.SlogLogger
	Telemetry *telemetry.Provider
}

// NewApp loads configuration, applies the global flags of cmd and builds the
// API client. The credential persisted by a previous login is restored.
func NewApp(cmd *cobra.Command) (*App, error) {
	cfg, err := config.LoadOrCreate()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	if err := applyFlags(cmd, cfg); err != nil {
		return nil, err
	}

	log := logger.NewDefaultLogger(cfg.Debug)

	tp, err := telemetry.Setup(os.Stderr, cfg.Trace, cmd.Root().Version)
	if err != nil {
		return nil, fmt.Errorf("initializing telemetry: %w", err)
	}

	dir, err := config.GetConfigDir()
	if err != nil {
		return nil, err
	}
	store := session.NewStore(dir)

	creds, err := restoreCredentials(store, log)
	if err != nil {
		return nil, err
	}

	a := &App{
		Config:    cfg,
		Storage:   store,
		Logger:    log,
		Telemetry: tp,
	}

	nav := NewCommandNavigator(cmd, os.Stderr, func() {
		if err := store.DeleteUser(); err != nil {
			log.Warn("could not forget cached user", "error", err)
		}
	})

	a.Client = sponsorapi.NewClient(clientOptions(cfg, creds, nav, log, tp))
	a.SDK = a.Client
	log.Debug("client ready", "base_url", a.Client.BaseURL(), "authenticated", a.Client.Authenticated())
	return a, nil
}

// restoreCredentials loads the persisted token. A corrupt storage file is
// discarded so the user can log in again instead of every command failing.
func restoreCredentials(store *session.Store, log *logger.SlogLogger) (*sponsorapi.CredentialStore, error) {
	creds, err := sponsorapi.NewCredentialStore(store, log)
	if err == nil {
		return creds, nil
	}
	if !errors.Is(err, session.ErrCorrupt) {
		return nil, fmt.Errorf("loading credentials: %w", err)
	}

	log.Warn("discarding unreadable session storage, please log in again", "path", store.Path(), "error", err)
	if resetErr := store.Reset(); resetErr != nil {
		return nil, fmt.Errorf("resetting session storage: %w", resetErr)
	}
	creds, err = sponsorapi.NewCredentialStore(store, log)
	if err != nil {
		return nil, fmt.Errorf("loading credentials: %w", err)
	}
	return creds, nil
}

func applyFlags(cmd *cobra.Command, cfg *config.Configuration) error {
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		cfg.Debug = true
	}
	if trace, _ := cmd.Flags().GetBool("trace"); trace {
		cfg.Trace = true
	}
	if origin, _ := cmd.Flags().GetString("origin"); origin != "" {
		if err := cfg.Set("origin", origin); err != nil {
			return err
		}
	}
	return nil
}

func clientOptions(cfg *config.Configuration, creds *sponsorapi.CredentialStore, nav sponsorapi.Navigator, log logger.Logger, tp *telemetry.Provider) sponsorapi.Options {
	opts := sponsorapi.Options{
		BaseURL: sponsorapi.ResolveBaseURL(cfg.Origin),
		Timeout: cfg.HTTP.Timeout,
		Retry: sponsorapi.RetryPolicy{
			MaxAttempts:  cfg.HTTP.RetryAttempts,
			InitialDelay: cfg.HTTP.RetryDelay,
		},
		Credentials: creds,
		Navigator:   nav,
		Logger:      log,
	}
	if tp != nil {
		opts.TracerProvider = tp.TracerProvider
	}
	if cfg.HTTP.RequestsPerSecond > 0 {
		opts.RateLimiter = rate.NewLimiter(rate.Limit(cfg.HTTP.RequestsPerSecond), cfg.HTTP.RateBurst)
	}
	return opts
}

// Close flushes any exported spans.
func (a *App) Close(ctx context.Context) error {
	if a == nil {
		return nil
	}
	return a.Telemetry.Shutdown(ctx)
}

// Logout ends the session on the server and forgets the local credential and
// cached user. Local state is cleared even when the server call fails.
func (a *App) Logout(ctx context.Context) error {
	err := a.SDK.Logout(ctx)
	if a.Storage != nil {
		if delErr := a.Storage.DeleteUser(); delErr != nil {
			a.Logger.Warn("could not forget cached user", "error", delErr)
		}
	}
	return err
}
