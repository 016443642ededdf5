package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vkotlyar/go-host-keeper/internal/logger"
	"github.com/vkotlyar/go-host-keeper/models"
)

// profileRepository is the PostgreSQL-backed implementation of
// [ServerProfileRepository]. Write operations are retried once when the
// database error is classified as transient.
type profileRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewProfileRepository constructs a [ServerProfileRepository] backed by the
// provided database connection and logger.
func NewProfileRepository(db *DB, logger *logger.Logger) ServerProfileRepository {
	logger.Debug().Msg("creating profile repository")
	return &profileRepository{
		db:     db,
		logger: logger,
	}
}

// ListByUser returns every profile owned by userID.
func (r *profileRepository) ListByUser(ctx context.Context, userID int64) ([]models.Profile, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListProfilesQuery(userID)
	if err != nil {
		return nil, fmt.Errorf("build list profiles query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "*profileRepository.ListByUser").
			Int64("user_id", userID).
			Msg("failed to execute query for listing profiles")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	profiles := make([]models.Profile, 0)

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
				Str("func", "*profileRepository.ListByUser").
				Int64("user_id", userID).
				Msg("failed to scan profile row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		p.ID, err = uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("parse stored profile id %q: %w", id, err)
		}
		p.AuthMethod = models.AuthMethod(method)
		p.UpdatedAt = modified.UTC()

		profiles = append(profiles, p)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "*profileRepository.ListByUser").
			Int64("user_id", userID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("error iterating profile rows: %w", rowsErr)
	}

	return profiles, nil
}

// Upsert inserts the profile or overwrites the stored version wholesale.
func (r *profileRepository) Upsert(ctx context.Context, userID int64, profile models.Profile) error {
	log := logger.FromContext(ctx)

	query, args, err := buildUpsertProfileQuery(userID, profile)
	if err != nil {
		return fmt.Errorf("build upsert profile query: %w", err)
	}

	if err = r.execWithRetry(ctx, query, args); err != nil {
		log.Err(err).
			Str("func", "*profileRepository.Upsert").
			Int64("user_id", userID).
			Str("profile_id", profile.ID.String()).
			Msg("failed to execute upsert for profile")
		return fmt.Errorf("failed to save profile (id=%s): %w", profile.ID, err)
	}

	return nil
}

// Delete removes the profile. Deleting an absent ID is not an error.
func (r *profileRepository) Delete(ctx context.Context, userID int64, id uuid.UUID) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteProfileQuery(userID, id)
	if err != nil {
		return fmt.Errorf("build delete profile query: %w", err)
	}

	if err = r.execWithRetry(ctx, query, args); err != nil {
		log.Err(err).
			Str("func", "*profileRepository.Delete").
			Int64("user_id", userID).
			Str("profile_id", id.String()).
			Msg("failed to execute delete for profile")
		return fmt.Errorf("failed to delete profile (id=%s): %w", id, err)
	}

	return nil
}

// execWithRetry runs the statement, retrying once when the classifier marks
// the failure transient (connection loss, deadlock rollback).
func (r *profileRepository) execWithRetry(ctx context.Context, query string, args []any) error {
	_, err := r.db.ExecContext(ctx, query, args...)
	if err == nil {
		return nil
	}

	if r.db.errorClassificator != nil && r.db.errorClassificator.Classify(err) == Retryable {
		logger.FromContext(ctx).Warn().Err(err).Msg("transient database error, retrying statement")
		_, err = r.db.ExecContext(ctx, query, args...)
	}

	return err
}
