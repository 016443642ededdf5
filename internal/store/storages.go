package store

import (
	"context"
	"fmt"

	"github.com/vkotlyar/go-host-keeper/internal/config"
	"github.com/vkotlyar/go-host-keeper/internal/logger"
)

// Storages groups the server-side repositories into a single value that can
// be passed around the service layer.
type Storages struct {
	UserRepository    UserRepository
	ProfileRepository ServerProfileRepository
}

// NewStorages initialises the server storage layer: it opens the PostgreSQL
// connection described by cfg, runs pending schema migrations, and wires the
// repositories.
func NewStorages(ctx context.Context, cfg config.DBConfig, logger *logger.Logger) (*Storages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectPostgres(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("postgres connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &Storages{
		UserRepository:    NewUserRepository(db, logger),
		ProfileRepository: NewProfileRepository(db, logger),
	}, nil
}
