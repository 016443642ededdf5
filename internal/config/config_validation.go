// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"

	"github.com/vkotlyar/go-host-keeper/models"
)

// validate checks that the final merged [StructuredConfig] satisfies the
// invariants shared by both runtimes. Runtime-specific requirements are
// checked by the [ClientConfig] and [ServerConfig] views.
func (cfg *StructuredConfig) validate() error {
	if cfg.Sync.DefaultStrategy != "" && !models.SyncStrategy(cfg.Sync.DefaultStrategy).IsValid() {
		return fmt.Errorf("%w: unknown strategy %q", ErrInvalidSyncConfigs, cfg.Sync.DefaultStrategy)
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout == 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Sync.AutoSync && cfg.Sync.Interval <= 0 {
		return fmt.Errorf("%w: auto sync requires a positive interval", ErrInvalidSyncConfigs)
	}

	return nil
}

func (cfg *ServerConfig) validate() error {
	if cfg.Storage.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.App.TokenSignKey == "" {
		return ErrInvalidAppConfigs
	}

	return nil
}
