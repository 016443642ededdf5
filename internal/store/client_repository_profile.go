package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vkotlyar/go-host-keeper/internal/logger"
	"github.com/vkotlyar/go-host-keeper/models"
)

type localProfileRepository struct {
	*DB
	logger *logger.Logger
}

// NewLocalProfileRepository builds a [ProfileStore] over the client's local
// SQLite database.
func NewLocalProfileRepository(db *DB, logger *logger.Logger) ProfileStore {
	return &localProfileRepository{
		DB:     db,
		logger: logger,
	}
}

// List reads every profile inside one transaction, so the returned snapshot
// is a single point-in-time view even when the TUI writes concurrently.
func (l *localProfileRepository) List(ctx context.Context) (models.Snapshot, error) {
	log := logger.FromContext(ctx)

	tx, err := l.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "localProfileRepository.List").
			Msg("failed to begin snapshot transaction")
		return nil, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, listProfiles)
	if err != nil {
		log.Err(err).
			Str("func", "localProfileRepository.List").
			Msg("failed to execute query for listing profiles")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	snapshot := make(models.Snapshot)

	for rows.Next() {
		var (
			p        models.Profile
			id       string
			method   string
			modified time.Time
		)

		scanErr := rows.Scan(
			&id,
			&p.Name,
			&p.Host,
			&p.Port,
			&p.Username,
			&method,
			&p.EncryptedSecret,
			&modified,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "localProfileRepository.List").
				Msg("failed to scan profile row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		p.ID, err = uuid.Parse(id)
		if err != nil {
			log.Err(err).
				Str("func", "localProfileRepository.List").
				Str("id", id).
				Msg("stored profile id is not a valid uuid")
			return nil, fmt.Errorf("parse stored profile id %q: %w", id, err)
		}
		p.AuthMethod = models.AuthMethod(method)
		p.UpdatedAt = modified.UTC()

		snapshot[p.ID] = p
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "localProfileRepository.List").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("error iterating profile rows: %w", rowsErr)
	}

	return snapshot, nil
}

// Upsert inserts the profile or overwrites the stored version wholesale.
func (l *localProfileRepository) Upsert(ctx context.Context, profile models.Profile) error {
	log := logger.FromContext(ctx)

	_, err := l.DB.ExecContext(ctx, upsertProfile,
		profile.ID.String(),
		profile.Name,
		profile.Host,
		profile.Port,
		profile.Username,
		string(profile.AuthMethod),
		profile.EncryptedSecret,
		profile.UpdatedAt.UTC(),
	)
	if err != nil {
		log.Err(err).
			Str("func", "localProfileRepository.Upsert").
			Str("profile_id", profile.ID.String()).
			Msg("failed to execute upsert for profile")
		return fmt.Errorf("failed to save profile (id=%s): %w", profile.ID, err)
	}

	return nil
}

// Delete removes the profile. Deleting an absent ID is not an error.
func (l *localProfileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContext(ctx)

	_, err := l.DB.ExecContext(ctx, deleteProfile, id.String())
	if err != nil {
		log.Err(err).
			Str("func", "localProfileRepository.Delete").
			Str("profile_id", id.String()).
			Msg("failed to execute delete for profile")
		return fmt.Errorf("failed to delete profile (id=%s): %w", id, err)
	}

	return nil
}
