package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"

	"github.com/vkotlyar/go-host-keeper/internal/config"
	"github.com/vkotlyar/go-host-keeper/internal/logger"
)

// clientSchema is the local database schema. Applied unconditionally on
// startup; CREATE IF NOT EXISTS keeps it idempotent across runs.
const clientSchema = `
	CREATE TABLE IF NOT EXISTS profiles (
		id               TEXT PRIMARY KEY,
		name             TEXT NOT NULL,
		host             TEXT NOT NULL,
		port             INTEGER NOT NULL,
		username         TEXT NOT NULL,
		auth_method      TEXT NOT NULL,
		encrypted_secret BLOB,
		updated_at       TIMESTAMP NOT NULL
	);`

// NewConnectSQLite opens (creating if necessary) the client's local SQLite
// database and applies the schema.
func NewConnectSQLite(ctx context.Context, cfg config.ClientDB, log *logger.Logger) (*DB, error) {
	if err := createLocalDBFileIfNotExists(cfg.DSN); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error creating database file")
		return nil, fmt.Errorf("error creating database file")
	}

	conn, err := sql.Open("sqlite3", cfg.DSN)
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database")
		return nil, fmt.Errorf("error opening connection to DB")
	}

	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database (ping)")
		return nil, err
	}

	if _, err = conn.ExecContext(ctx, clientSchema); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error applying local schema")
		return nil, fmt.Errorf("apply local schema: %w", err)
	}
	log.Debug().Str("func", "NewConnectSQLite").Msg("connected to local database successfully")

	return &DB{DB: conn, logger: log}, nil
}

func createLocalDBFileIfNotExists(dbFile string) error {
	if dbFile == ":memory:" {
		return nil
	}
	if _, err := os.Stat(dbFile); os.IsNotExist(err) {
		f, err := os.Create(dbFile)
		if err != nil {
			return fmt.Errorf("error creating DB file: %w", err)
		}
		f.Close()
	}

	return nil
}
