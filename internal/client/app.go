package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/vkotlyar/go-host-keeper/internal/adapter"
	"github.com/vkotlyar/go-host-keeper/internal/config"
	"github.com/vkotlyar/go-host-keeper/internal/logger"
	"github.com/vkotlyar/go-host-keeper/internal/service"
	"github.com/vkotlyar/go-host-keeper/internal/store"
	"github.com/vkotlyar/go-host-keeper/internal/tui"
	"github.com/vkotlyar/go-host-keeper/internal/workers"
	"github.com/vkotlyar/go-host-keeper/models"
)

// App is the interactive client runtime: TUI flows on the foreground,
// background workers behind them.
type App struct {
	services *service.ClientServices
	tui      *tui.TUI
	workers  *workers.Workers

	logger *logger.Logger
}

// NewApp wires the full client dependency graph from configuration: local
// SQLite storage, the HTTP remote client, the service layer, and the TUI.
func NewApp(cfg *config.ClientConfig, buildInfo models.AppBuildInfo, log *logger.Logger) (*App, error) {
	ctx := context.Background()

	storages, err := store.NewClientStorages(ctx, cfg.Storage.DB, log)
	if err != nil {
		return nil, fmt.Errorf("create local storage: %w", err)
	}

	remote := adapter.NewHTTPRemoteClient(adapter.HTTPClientConfig{
		BaseURL: cfg.Adapter.HTTPAddress,
		Timeout: cfg.Adapter.RequestTimeout,
	}, log)

	services := service.NewClientServices(storages, remote, cfg, log)

	ui, err := tui.New(services, buildInfo, log)
	if err != nil {
		return nil, fmt.Errorf("create ui: %w", err)
	}

	syncCfg := cfg.SyncConfig()
	background := workers.New()
	if syncCfg.AutoSync {
		background = workers.New(workers.NewSyncWorker(services.SyncJob, syncCfg.Interval))
	}

	return &App{
		services: services,
		tui:      ui,
		workers:  background,
		logger:   log,
	}, nil
}

// Run drives the login flow and the main loop until the user quits. A logout
// from the main loop restarts the login flow with the same process state; the
// sync job is stopped for the duration of the login screens because no token
// is available to sync with.
func (a *App) Run() error {
	ctx := context.Background()

	for {
		userID, err := a.tui.LoginFlow(ctx)
		if err != nil {
			if errors.Is(err, tui.ErrUserQuit) {
				return nil
			}
			return fmt.Errorf("login flow: %w", err)
		}

		a.logger.Info().Int64("user_id", userID).Msg("user authenticated")

		a.workers.Start(ctx)

		logout, err := a.tui.MainLoop(ctx, userID)

		a.workers.Stop()

		if err != nil {
			return fmt.Errorf("main loop: %w", err)
		}
		if !logout {
			return nil
		}

		a.logger.Info().Int64("user_id", userID).Msg("user logged out")
	}
}
