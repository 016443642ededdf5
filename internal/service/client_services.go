package service

import (
	"github.com/vkotlyar/go-host-keeper/internal/adapter"
	"github.com/vkotlyar/go-host-keeper/internal/config"
	"github.com/vkotlyar/go-host-keeper/internal/crypto"
	"github.com/vkotlyar/go-host-keeper/internal/logger"
	"github.com/vkotlyar/go-host-keeper/internal/store"
)

// ClientServices aggregates every device-side service the UI and the
// background workers depend on.
type ClientServices struct {
	Auth         ClientAuthService
	Profiles     ClientProfileService
	Orchestrator SyncOrchestrator
	SyncJob      SyncJob
}

// NewClientServices wires the device-side service graph: one cipher and one
// key chain shared by the auth and profile services, and one sync
// orchestrator shared by the UI and the periodic job.
func NewClientServices(
	storages *store.ClientStorages,
	remote adapter.RemoteProfileClient,
	cfg *config.ClientConfig,
	logger *logger.Logger,
) *ClientServices {
	keys := crypto.NewKeyChain()
	cipher := crypto.NewCredentialCipher()

	orchestrator := NewSyncOrchestrator(storages.ProfileRepository, remote, cfg.SyncConfig, logger)

	return &ClientServices{
		Auth:         NewClientAuthService(remote, keys, cipher, logger),
		Profiles:     NewClientProfileService(storages.ProfileRepository, cipher, logger),
		Orchestrator: orchestrator,
		SyncJob:      NewSyncJob(orchestrator),
	}
}
