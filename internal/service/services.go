package service

import (
	"github.com/vkotlyar/go-host-keeper/internal/config"
	"github.com/vkotlyar/go-host-keeper/internal/logger"
	"github.com/vkotlyar/go-host-keeper/internal/store"
)

// Services bundles the server-side services for transport-layer wiring.
type Services struct {
	AuthService    AuthService
	ProfileService ProfileService
}

// NewServices wires the service layer on top of the storage layer.
func NewServices(storages *store.Storages, cfg *config.ServerConfig, logger *logger.Logger) *Services {
	return &Services{
		AuthService:    NewAuthService(storages.UserRepository, cfg.App, logger),
		ProfileService: NewProfileService(storages.ProfileRepository, logger),
	}
}
