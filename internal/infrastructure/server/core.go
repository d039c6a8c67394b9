package server

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/aurora/internal/domain/app"
	"github.com/GriffinCanCode/aurora/internal/domain/settings"
	"github.com/GriffinCanCode/aurora/internal/domain/vfs"
	"github.com/GriffinCanCode/aurora/internal/infrastructure/config"
	"github.com/GriffinCanCode/aurora/internal/infrastructure/logging"
	"github.com/GriffinCanCode/aurora/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/aurora/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/aurora/internal/infrastructure/storage"
	"github.com/GriffinCanCode/aurora/internal/shell"
)

// Core is the desktop without any transport: storage, filesystem, settings,
// windows and the shell. The HTTP server and the CLI both run on one.
type Core struct {
	Config   *config.Config
	Logger   *logging.Logger
	Metrics  *monitoring.Metrics
	Backend  storage.Backend
	Store    *vfs.Store
	Apps     *app.Manager
	Volume   *settings.Manager
	Shell    *shell.Interpreter
	Sessions *shell.Manager
}

// NewCore opens storage and builds every domain service from cfg.
func NewCore(cfg *config.Config, logger *logging.Logger) (*Core, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	metrics := monitoring.NewMetrics()

	raw, err := storage.Open(storage.Config{
		Kind: storage.Kind(cfg.Storage.Backend),
		Dir:  cfg.Storage.BadgerDir(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}
	backend := resilience.NewBackend(raw, resilience.Settings{
		Threshold: 5,
		Cooldown:  30 * time.Second,
		OnStateChange: func(name string, from, to resilience.State) {
			logger.Warn("Storage breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
	logger.Info("Storage opened",
		zap.String("backend", cfg.Storage.Backend),
		zap.String("dir", cfg.Storage.BadgerDir()),
	)

	store := vfs.NewStore(backend, logger,
		vfs.WithMetrics(metrics),
		vfs.WithCompression(cfg.Storage.Compression == "zstd"),
		vfs.WithCurrentUser(cfg.Shell.User),
	)
	apps := app.NewManager().WithMetrics(metrics)
	volume := settings.NewManager(backend, logger)

	interp := shell.NewInterpreter(store, logger,
		shell.WithHostname(cfg.Shell.Hostname),
		shell.WithMetrics(metrics),
		shell.WithLauncher(func(appID string, args []string) {
			if _, err := apps.Launch(appID, args); err != nil {
				logger.Warn("Application launch failed", zap.String("app", appID), zap.Error(err))
			}
		}),
	)
	sessions := shell.NewManager(store, cfg.Shell.Path).WithMetrics(metrics)

	return &Core{
		Config:   cfg,
		Logger:   logger,
		Metrics:  metrics,
		Backend:  backend,
		Store:    store,
		Apps:     apps,
		Volume:   volume,
		Shell:    interp,
		Sessions: sessions,
	}, nil
}

// Close releases storage.
func (c *Core) Close() error {
	if err := c.Backend.Close(); err != nil {
		return fmt.Errorf("failed to close storage: %w", err)
	}
	return nil
}
