package store

import (
	"context"
	"fmt"

	"github.com/vkotlyar/go-host-keeper/internal/config"
	"github.com/vkotlyar/go-host-keeper/internal/logger"
)

// ClientStorages groups the client-side repositories into a single value
// that can be passed around the service layer. Currently it holds only
// [ProfileStore]; additional repositories can be added here as the feature
// set grows.
type ClientStorages struct {
	// ProfileRepository is the SQLite-backed store of connection profiles
	// kept locally on the device.
	ProfileRepository ProfileStore
}

// NewClientStorages initialises the client storage layer using the supplied
// configuration and logger. It opens an SQLite connection to the file path
// in cfg.DSN, creating the database file if it does not yet exist, applies
// the schema, and returns a [ClientStorages] wired to a fresh profile
// repository.
func NewClientStorages(ctx context.Context, cfg config.ClientDB, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	return &ClientStorages{
		ProfileRepository: NewLocalProfileRepository(db, logger),
	}, nil
}
