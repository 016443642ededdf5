package config

import (
	"fmt"
	"time"

	"github.com/vkotlyar/go-host-keeper/models"
)

// ClientApp holds client-side application settings derived from the shared
// structured config.
type ClientApp struct {
	// Version is the application version string shown in the TUI.
	Version string
}

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the server base URL used by the client.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DB holds local database settings.
	DB ClientDB
}

// ClientSync holds the synchronization settings used by the client.
type ClientSync struct {
	// DefaultStrategy is applied when a sync pass starts without an
	// explicit strategy. Empty means merge.
	DefaultStrategy models.SyncStrategy
	// AutoSync enables the background sync job.
	AutoSync bool
	// Interval is the background sync period.
	Interval time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// App contains application-level client settings.
	App ClientApp
	// Adapter contains client transport addresses and timeouts.
	Adapter ClientAdapter
	// Storage contains client storage settings.
	Storage ClientStorage
	// Sync contains synchronization settings.
	Sync ClientSync
}

// SyncConfig maps the client sync settings onto the engine's config type,
// filling in defaults for anything left unset.
func (cfg *ClientConfig) SyncConfig() models.SyncConfig {
	strategy := cfg.Sync.DefaultStrategy
	if strategy == "" {
		strategy = models.StrategyMerge
	}

	interval := cfg.Sync.Interval
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	return models.SyncConfig{
		DefaultStrategy: strategy,
		AutoSync:        cfg.Sync.AutoSync,
		Interval:        interval,
	}
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], maps only the fields
// relevant to the client runtime, and validates the resulting [ClientConfig].
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		App: ClientApp{
			Version: cfg.App.Version,
		},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: ClientStorage{
			DB: ClientDB{
				DSN: cfg.Storage.Local.DSN,
			},
		},
		Sync: ClientSync{
			DefaultStrategy: models.SyncStrategy(cfg.Sync.DefaultStrategy),
			AutoSync:        cfg.Sync.AutoSync,
			Interval:        cfg.Sync.Interval,
		},
	}

	return clientCfg, clientCfg.validate()
}
