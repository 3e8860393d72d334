// Package cli wires the jobdeck CLI: configuration, logging, storage, and
// the shortcut registry.
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jobdeck/jobdeck/internal/config"
	"github.com/jobdeck/jobdeck/internal/logging"
	"github.com/jobdeck/jobdeck/internal/shortcuts"
	"github.com/jobdeck/jobdeck/internal/storage/sqlite"
)

// App holds the composed dependencies shared by CLI commands.
type App struct {
	Config   *config.Manager
	Logger   zerolog.Logger
	Registry *shortcuts.Registry

	ctx   context.Context
	store *sqlite.Store
}

// NewApp loads configuration, opens the store, and constructs the registry
// with the built-in shortcut catalogue registered.
func NewApp() (*App, error) {
	mgr, err := config.NewManager()
	if err != nil {
		return nil, fmt.Errorf("create config manager: %w", err)
	}
	if err := mgr.Load(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg := mgr.Get()

	logger := logging.New(logging.Config{
		Level:      logging.ParseLevel(cfg.Logging.Level),
		Format:     cfg.Logging.Format,
		TimeFormat: time.RFC3339,
	})
	ctx := logging.WithContext(context.Background(), logger)

	store, err := sqlite.Open(logging.WithComponent(ctx, "storage"), cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open shortcut store: %w", err)
	}

	regCtx := logging.WithComponent(ctx, "shortcuts")
	reg := shortcuts.New(regCtx, shortcuts.Options{
		StorageKey:      cfg.Shortcuts.StorageKey,
		SequenceTimeout: cfg.Shortcuts.SequenceTimeout(),
		Store:           store,
	})

	// The CLI manages customizations; it never dispatches actions, so the
	// catalogue is registered with no-op handlers.
	if err := shortcuts.RegisterDefaults(regCtx, reg, shortcuts.Handlers{}); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("register default shortcuts: %w", err)
	}

	// Config file edits reach the live registry through the reload
	// callback. Only the sequence timeout can change on a running
	// registry; storage key and database path take effect on the next
	// start. The watch itself is started by long-running commands via
	// WatchConfig.
	mgr.OnConfigChange(func(c *config.Config) {
		reg.SetSequenceTimeout(c.Shortcuts.SequenceTimeout())
	})

	return &App{
		Config:   mgr,
		Logger:   logger,
		Registry: reg,
		ctx:      ctx,
		store:    store,
	}, nil
}

// Ctx returns the app context carrying the logger.
func (a *App) Ctx() context.Context { return a.ctx }

// WatchConfig starts watching the config file so edits apply without a
// restart. Meant for long-running commands; one-shot commands read the
// config once and exit.
func (a *App) WatchConfig() {
	a.Config.Watch()
}

// Close releases the registry and the store.
func (a *App) Close() error {
	a.Registry.Destroy()
	return a.store.Close()
}
