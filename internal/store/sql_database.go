package store

import (
	"database/sql"

	"github.com/vkotlyar/go-host-keeper/internal/logger"
	"github.com/vkotlyar/go-host-keeper/migrations"
)

type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// Migrate brings the server database schema up to date.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}
